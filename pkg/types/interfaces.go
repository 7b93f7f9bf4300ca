package types

import (
	"context"

	"github.com/nbd-wtf/go-nostr"
)

// Publisher broadcasts a signed event. Best effort: a nil error means
// some endpoint accepted the event, nothing more.
type Publisher interface {
	Publish(ctx context.Context, event *nostr.Event) error
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(ctx context.Context, event *nostr.Event) error

func (f PublisherFunc) Publish(ctx context.Context, event *nostr.Event) error {
	return f(ctx, event)
}

// Querier runs one bounded query and returns every matching event found
// before the context deadline.
type Querier interface {
	Query(ctx context.Context, filters []nostr.Filter) ([]*nostr.Event, error)
}

// QuerierFunc adapts a function to the Querier interface.
type QuerierFunc func(ctx context.Context, filters []nostr.Filter) ([]*nostr.Event, error)

func (f QuerierFunc) Query(ctx context.Context, filters []nostr.Filter) ([]*nostr.Event, error) {
	return f(ctx, filters)
}

// Signer fills in and signs an unsigned event on behalf of one key.
type Signer interface {
	// Public returns the hex public key the signer signs as.
	Public() string
	// Sign computes the event id and signature in place.
	Sign(ctx context.Context, event *nostr.Event) error
}

// Cipher is per-recipient asymmetric encryption between the holder's
// key and a counterparty key.
type Cipher interface {
	Encrypt(ctx context.Context, recipientPubkey, plaintext string) (string, error)
	Decrypt(ctx context.Context, senderPubkey, ciphertext string) (string, error)
}
