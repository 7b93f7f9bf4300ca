package lnurl

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/user/fedwallet/pkg/types"
)

func payServer(t *testing.T, pr PayRequest) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(pr)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestResolveLNURLWithdraw(t *testing.T) {
	server := payServer(t, PayRequest{Tag: "withdrawRequest", MaxWithdrawable: 50000})
	encoded, err := Encode(server.URL + "/lnurlp/alice")
	if err != nil {
		t.Fatal(err)
	}

	r := NewResolver(types.FederationConfig{ID: "lawallet.ar"})
	transfer := r.Resolve(context.Background(), encoded)

	if transfer.Type != TypeLNURLW {
		t.Fatalf("type = %s, want LNURLW", transfer.Type)
	}
	if transfer.Amount != 50 {
		t.Errorf("amount = %d, want 50 sats", transfer.Amount)
	}
}

func TestResolveLNURLPayInternalDowngrade(t *testing.T) {
	server := payServer(t, PayRequest{
		Tag:           "payRequest",
		MinSendable:   1000,
		MaxSendable:   100000,
		FederationID:  "lawallet.ar",
		AccountPubkey: "abc123",
	})
	encoded, err := Encode(server.URL + "/lnurlp/alice")
	if err != nil {
		t.Fatal(err)
	}

	r := NewResolver(types.FederationConfig{ID: "lawallet.ar"})
	transfer := r.Resolve(context.Background(), encoded)

	if transfer.Type != TypeInternal {
		t.Fatalf("type = %s, want INTERNAL", transfer.Type)
	}
	if transfer.PayRequest == nil || transfer.PayRequest.AccountPubkey != "abc123" {
		t.Errorf("pay request = %+v", transfer.PayRequest)
	}
}

func TestResolveLNURLPayForeignFederation(t *testing.T) {
	server := payServer(t, PayRequest{
		Tag:          "payRequest",
		MinSendable:  21000,
		MaxSendable:  21000,
		FederationID: "other.federation",
		Metadata:     `[["text/identifier","alice@ln.example"]]`,
	})
	encoded, err := Encode(server.URL + "/lnurlp/alice")
	if err != nil {
		t.Fatal(err)
	}

	r := NewResolver(types.FederationConfig{ID: "lawallet.ar"})
	transfer := r.Resolve(context.Background(), encoded)

	if transfer.Type != TypeLNURL {
		t.Fatalf("type = %s, want LNURL", transfer.Type)
	}
	if transfer.Amount != 21 {
		t.Errorf("amount = %d, want 21", transfer.Amount)
	}
	if transfer.Data != "alice@ln.example" {
		t.Errorf("data = %q", transfer.Data)
	}
}

func TestResolveEmptyAndInvoice(t *testing.T) {
	r := NewResolver(types.FederationConfig{ID: "lawallet.ar"})

	if got := r.Resolve(context.Background(), ""); got.Type != TypeNone {
		t.Errorf("empty: type = %s", got.Type)
	}
	if got := r.Resolve(context.Background(), "lnbc100n1pinvoice"); got.Type != TypeNone {
		t.Errorf("invoice: type = %s", got.Type)
	}
}

func TestResolveUnreachableEndpoint(t *testing.T) {
	encoded, err := Encode("http://127.0.0.1:1/lnurlp/alice")
	if err != nil {
		t.Fatal(err)
	}

	r := NewResolver(types.FederationConfig{ID: "lawallet.ar"})
	if got := r.Resolve(context.Background(), encoded); got.Type != TypeNone {
		t.Errorf("type = %s, want NONE", got.Type)
	}
}
