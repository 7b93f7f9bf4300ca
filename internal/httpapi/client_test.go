package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetDecodesJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s", r.Method)
		}
		if r.Header.Get("User-Agent") != "fedwallet/1.0" {
			t.Errorf("user agent = %q", r.Header.Get("User-Agent"))
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"username": "alice"})
	}))
	defer server.Close()

	var out struct {
		Username string `json:"username"`
	}
	if err := New().Get(context.Background(), server.URL, &out); err != nil {
		t.Fatal(err)
	}
	if out.Username != "alice" {
		t.Errorf("username = %q", out.Username)
	}
}

func TestPostSendsJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("content type = %q", r.Header.Get("Content-Type"))
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["id"] != "abc" {
			t.Errorf("body = %v", body)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := New().Post(context.Background(), server.URL, map[string]string{"id": "abc"}, nil)
	if err != nil {
		t.Fatal(err)
	}
}

func TestErrorStatusSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	if err := New().Get(context.Background(), server.URL, nil); err == nil {
		t.Error("expected an error for a 422 response")
	}
}
