package lnurl

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/user/fedwallet/internal/httpapi"
	"github.com/user/fedwallet/pkg/types"
)

// PayRequest is a lnurlp endpoint's response (LUD-06/LUD-16), extended
// with the federation fields used to detect internal transfers.
type PayRequest struct {
	Tag             string `json:"tag"`
	Callback        string `json:"callback"`
	Metadata        string `json:"metadata"`
	CommentAllowed  int    `json:"commentAllowed"`
	MinSendable     int64  `json:"minSendable,omitempty"`
	MaxSendable     int64  `json:"maxSendable,omitempty"`
	K1              string `json:"k1,omitempty"`
	MinWithdrawable int64  `json:"minWithdrawable,omitempty"`
	MaxWithdrawable int64  `json:"maxWithdrawable,omitempty"`
	FederationID    string `json:"federationId,omitempty"`
	AccountPubkey   string `json:"accountPubKey,omitempty"`
}

// Transfer is the resolved form of a payment destination.
type Transfer struct {
	Data       string
	Amount     int64 // sats; 0 when the endpoint accepts a range
	Type       TransferType
	PayRequest *PayRequest
}

// Resolver resolves LNURL and lightning-address destinations against
// their HTTP endpoints, downgrading same-federation targets to
// internal transfers.
type Resolver struct {
	fed types.FederationConfig
	api *httpapi.Client
}

// NewResolver creates a Resolver for one federation.
func NewResolver(fed types.FederationConfig) *Resolver {
	return &Resolver{fed: fed, api: httpapi.New()}
}

// Resolve classifies and resolves a destination string. Resolution is
// best effort: unreachable or malformed endpoints yield a zero Transfer
// with type NONE rather than an error, matching the read-path policy of
// always producing an answer.
func (r *Resolver) Resolve(ctx context.Context, data string) Transfer {
	if data == "" {
		return Transfer{Type: TypeNone}
	}
	clean := RemoveLightningStandard(data)

	switch DetectTransferType(clean) {
	case TypeNone, TypeInvoice:
		return Transfer{Type: TypeNone}
	case TypeLUD16, TypeInternal:
		return r.resolveLUD16(ctx, clean)
	default:
		return r.resolveLNURL(ctx, clean)
	}
}

func (r *Resolver) resolveLUD16(ctx context.Context, handle string) Transfer {
	username, domain := SplitHandle(handle, r.fed.Endpoints.LightningDomain)
	if username == "" || domain == "" {
		return Transfer{Type: TypeNone}
	}

	var pr PayRequest
	endpoint := fmt.Sprintf("https://%s/.well-known/lnurlp/%s", domain, username)
	if err := r.api.Get(ctx, endpoint, &pr); err != nil {
		return Transfer{Type: TypeNone}
	}

	transfer := Transfer{
		Data:       handle,
		Amount:     fixedAmount(&pr),
		Type:       TypeLUD16,
		PayRequest: &pr,
	}
	if pr.FederationID != "" && pr.FederationID == r.fed.ID {
		transfer.Type = TypeInternal
	}
	return transfer
}

func (r *Resolver) resolveLNURL(ctx context.Context, data string) Transfer {
	endpoint, err := Decode(data)
	if err != nil {
		return Transfer{Type: TypeNone}
	}

	var pr PayRequest
	if err := r.api.Get(ctx, endpoint, &pr); err != nil {
		return Transfer{Type: TypeNone}
	}

	transfer := Transfer{Data: data, Type: TypeLNURL, PayRequest: &pr}

	if pr.Tag == "withdrawRequest" {
		transfer.Type = TypeLNURLW
		transfer.Amount = pr.MaxWithdrawable / 1000
		return transfer
	}

	if pr.Tag == "payRequest" {
		transfer.Amount = fixedAmount(&pr)
		if pr.FederationID != "" && pr.FederationID == r.fed.ID {
			transfer.Type = TypeInternal
			transfer.Data = handleFromEndpoint(endpoint, data)
			return transfer
		}
		if identifier := metadataIdentifier(pr.Metadata); identifier != "" {
			transfer.Data = identifier
			return transfer
		}
	}

	transfer.Data = handleFromEndpoint(endpoint, data)
	return transfer
}

// fixedAmount returns the endpoint's only acceptable amount in sats, or
// 0 when it accepts a range.
func fixedAmount(pr *PayRequest) int64 {
	if pr.MinSendable != 0 && pr.MinSendable == pr.MaxSendable {
		return pr.MaxSendable / 1000
	}
	return 0
}

// metadataIdentifier pulls the text/identifier entry out of a lnurlp
// metadata array.
func metadataIdentifier(metadata string) string {
	var entries [][]string
	if err := json.Unmarshal([]byte(metadata), &entries); err != nil {
		return ""
	}
	for _, entry := range entries {
		if len(entry) == 2 && entry[0] == "text/identifier" {
			return entry[1]
		}
	}
	return ""
}

// handleFromEndpoint reconstructs "user@domain" from a lnurlp endpoint
// URL, falling back to the original data.
func handleFromEndpoint(endpoint, fallback string) string {
	stripped := strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")
	stripped = strings.TrimPrefix(stripped, "www.")

	var domain, username string
	switch {
	case strings.Contains(stripped, "/.well-known/lnurlp/"):
		parts := strings.SplitN(stripped, "/.well-known/lnurlp/", 2)
		domain, username = parts[0], parts[1]
	case strings.Contains(stripped, "/lnurlp/"):
		parts := strings.SplitN(stripped, "/lnurlp/", 2)
		domain, username = parts[0], parts[1]
	default:
		return fallback
	}
	if domain == "" || username == "" {
		return fallback
	}
	return fmt.Sprintf("%s@%s", username, domain)
}
