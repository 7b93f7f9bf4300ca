package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/nbd-wtf/go-nostr/nip19"

	"github.com/user/fedwallet/pkg/lnurl"
)

// Identity is a federation member addressed by public key. It holds the
// federation configuration it belongs to; there is no inheritance
// between identities, wallets, and clients, only composition.
type Identity struct {
	pubkey     string
	federation *Federation

	username string
	lnurlp   *lnurl.PayRequest
}

// NewIdentity creates an identity for a hex public key.
func NewIdentity(pubkey string, federation *Federation) (*Identity, error) {
	if pubkey == "" {
		return nil, errors.New("an identity needs a public key")
	}
	return &Identity{pubkey: pubkey, federation: federation}, nil
}

// Pubkey returns the hex public key.
func (i *Identity) Pubkey() string { return i.pubkey }

// Npub returns the bech32 npub encoding of the public key.
func (i *Identity) Npub() (string, error) {
	return nip19.EncodePublicKey(i.pubkey)
}

// Federation returns the federation this identity belongs to.
func (i *Identity) Federation() *Federation { return i.federation }

// Username returns the resolved federation username, or "" before
// Resolve has run (or when the pubkey is unregistered).
func (i *Identity) Username() string { return i.username }

// Walias returns the identity's lightning address, or "" without a
// resolved username.
func (i *Identity) Walias() string {
	if i.username == "" {
		return ""
	}
	return lnurl.Walias(i.username, i.federation.Config().Endpoints.LightningDomain)
}

// Lnurlp returns the resolved pay request, or nil before Resolve.
func (i *Identity) Lnurlp() *lnurl.PayRequest { return i.lnurlp }

// Resolve looks up the identity's username and lnurlp record through
// the federation. An unregistered pubkey falls back to the generated
// LUD06 record rather than failing.
func (i *Identity) Resolve(ctx context.Context) error {
	username, err := i.federation.Username(ctx, i.pubkey)
	if err != nil || username == "" {
		i.lnurlp = i.federation.LUD06(i.pubkey)
		if err != nil {
			return fmt.Errorf("resolve username: %w", err)
		}
		return nil
	}
	i.username = username

	pr, err := i.federation.LnurlpData(ctx, username)
	if err != nil {
		i.lnurlp = i.federation.LUD06(i.pubkey)
		return fmt.Errorf("resolve lnurlp data: %w", err)
	}
	i.lnurlp = pr
	return nil
}
