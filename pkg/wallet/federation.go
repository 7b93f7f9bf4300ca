package wallet

import (
	"context"
	"fmt"
	"strings"

	"github.com/nbd-wtf/go-nostr"

	"github.com/user/fedwallet/internal/httpapi"
	"github.com/user/fedwallet/pkg/lnurl"
	"github.com/user/fedwallet/pkg/types"
)

// Federation couples a federation's static configuration with the HTTP
// surfaces its gateway exposes.
type Federation struct {
	config types.FederationConfig
	api    *httpapi.Client
}

// NewFederation wraps an explicit federation configuration. There is no
// process-wide default configuration.
func NewFederation(config types.FederationConfig) *Federation {
	return &Federation{config: config, api: httpapi.New()}
}

// ID returns the federation identifier.
func (f *Federation) ID() string { return f.config.ID }

// Config returns the federation's static configuration.
func (f *Federation) Config() types.FederationConfig { return f.config }

// Modules returns the federation's well-known module pubkeys.
func (f *Federation) Modules() types.ModulePubkeys { return f.config.Modules }

// Relays returns the federation's relay list.
func (f *Federation) Relays() []string { return f.config.Relays }

// HTTPPublish submits a signed event through the federation gateway.
func (f *Federation) HTTPPublish(ctx context.Context, event *nostr.Event) error {
	endpoint := fmt.Sprintf("%s/nostr/publish", strings.TrimSuffix(f.config.Endpoints.Gateway, "/"))
	if err := f.api.Post(ctx, endpoint, event, nil); err != nil {
		return fmt.Errorf("gateway publish: %w", err)
	}
	return nil
}

// Username resolves a member pubkey to its federation username, or ""
// when the pubkey is not registered.
func (f *Federation) Username(ctx context.Context, pubkey string) (string, error) {
	endpoint := fmt.Sprintf("%s/api/pubkey/%s", strings.TrimSuffix(f.config.Endpoints.Gateway, "/"), pubkey)
	var response struct {
		Username string `json:"username"`
	}
	if err := f.api.Get(ctx, endpoint, &response); err != nil {
		return "", err
	}
	return response.Username, nil
}

// LnurlpData fetches the lnurlp record for a federation username.
func (f *Federation) LnurlpData(ctx context.Context, username string) (*lnurl.PayRequest, error) {
	domain := lnurl.NormalizeLightningDomain(f.config.Endpoints.LightningDomain)
	endpoint := fmt.Sprintf("https://%s/.well-known/lnurlp/%s", domain, username)
	var pr lnurl.PayRequest
	if err := f.api.Get(ctx, endpoint, &pr); err != nil {
		return nil, err
	}
	return &pr, nil
}

// LUD06 builds the fallback pay request for a member that has no
// registered username.
func (f *Federation) LUD06(pubkey string) *lnurl.PayRequest {
	gateway := strings.TrimSuffix(f.config.Endpoints.Gateway, "/")
	return &lnurl.PayRequest{
		Tag:            "payRequest",
		Callback:       fmt.Sprintf("%s/lnurlp/%s/callback", gateway, pubkey),
		Metadata:       fmt.Sprintf(`[["text/plain","lightning deposit to %s"]]`, pubkey),
		CommentAllowed: 255,
		MinSendable:    1000,
		MaxSendable:    10000000000,
		FederationID:   f.config.ID,
		AccountPubkey:  pubkey,
	}
}
