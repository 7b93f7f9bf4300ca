package lnurl

import (
	"testing"
)

func TestDetectTransferType(t *testing.T) {
	tests := []struct {
		data string
		want TransferType
	}{
		{"", TypeNone},
		{"user@lawallet.ar", TypeLUD16},
		{"USER@LAWALLET.AR", TypeLUD16},
		{"lnurl1dp68gurn8ghj7um9wfmxjcm99e3k7mf0v9cxj0m385ekvcenxc6r2c35xvukxefcv5mkvv34x5ekzd3ev56nyd3hxqurzepexejxxepnxscrvwfnv9nxzcn9xq6xyefhvgcxxcmyxymnserxfq5fns", TypeLNURL},
		{"lnbc100n1p3...", TypeInvoice},
		{"plainhandle", TypeInternal},
	}
	for _, tt := range tests {
		if got := DetectTransferType(tt.data); got != tt.want {
			t.Errorf("DetectTransferType(%q) = %s, want %s", tt.data, got, tt.want)
		}
	}
}

func TestRemoveLightningStandard(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"lightning:USER@Lawallet.ar", "user@lawallet.ar"},
		{"lightning://user@lawallet.ar", "user@lawallet.ar"},
		{"lnurlw://withdraw.example/abc", "withdraw.example/abc"},
		{"User@Lawallet.ar", "user@lawallet.ar"},
	}
	for _, tt := range tests {
		if got := RemoveLightningStandard(tt.in); got != tt.want {
			t.Errorf("RemoveLightningStandard(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeLightningDomain(t *testing.T) {
	if got := NormalizeLightningDomain("https://lawallet.ar"); got != "lawallet.ar" {
		t.Errorf("got %q", got)
	}
	if got := NormalizeLightningDomain("https://lawallet.ar:443/path"); got != "lawallet.ar" {
		t.Errorf("got %q", got)
	}
	if got := NormalizeLightningDomain("not a url"); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestSplitHandle(t *testing.T) {
	user, domain := SplitHandle("alice@ln.example", "https://lawallet.ar")
	if user != "alice" || domain != "ln.example" {
		t.Errorf("got %q@%q", user, domain)
	}

	user, domain = SplitHandle("bob", "https://lawallet.ar")
	if user != "bob" || domain != "lawallet.ar" {
		t.Errorf("bare handle: got %q@%q", user, domain)
	}

	user, domain = SplitHandle("", "https://lawallet.ar")
	if user != "" || domain != "" {
		t.Errorf("empty handle: got %q@%q", user, domain)
	}
}

func TestWalias(t *testing.T) {
	if got := Walias("alice", "https://lawallet.ar"); got != "alice@lawallet.ar" {
		t.Errorf("got %q", got)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := "https://lawallet.ar/.well-known/lnurlp/alice"

	encoded, err := Encode(original)
	if err != nil {
		t.Fatal(err)
	}
	if DetectTransferType(encoded) != TypeLNURL {
		t.Errorf("encoded value %q is not detected as LNURL", encoded)
	}

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if decoded != original {
		t.Errorf("round trip = %q, want %q", decoded, original)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode("lnurl1notbech32!!!"); err == nil {
		t.Error("expected an error")
	}
}

func TestFixedAmount(t *testing.T) {
	if got := fixedAmount(&PayRequest{MinSendable: 21000, MaxSendable: 21000}); got != 21 {
		t.Errorf("fixed endpoint: got %d, want 21", got)
	}
	if got := fixedAmount(&PayRequest{MinSendable: 1000, MaxSendable: 50000}); got != 0 {
		t.Errorf("ranged endpoint: got %d, want 0", got)
	}
}

func TestMetadataIdentifier(t *testing.T) {
	metadata := `[["text/plain","pay alice"],["text/identifier","alice@lawallet.ar"]]`
	if got := metadataIdentifier(metadata); got != "alice@lawallet.ar" {
		t.Errorf("got %q", got)
	}
	if got := metadataIdentifier("not json"); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestHandleFromEndpoint(t *testing.T) {
	tests := []struct {
		endpoint string
		want     string
	}{
		{"https://lawallet.ar/.well-known/lnurlp/alice", "alice@lawallet.ar"},
		{"https://www.ln.example/lnurlp/bob", "bob@ln.example"},
		{"https://example.com/other/path", "fallback"},
	}
	for _, tt := range tests {
		if got := handleFromEndpoint(tt.endpoint, "fallback"); got != tt.want {
			t.Errorf("handleFromEndpoint(%q) = %q, want %q", tt.endpoint, got, tt.want)
		}
	}
}
