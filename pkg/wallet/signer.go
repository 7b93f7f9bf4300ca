package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/nbd-wtf/go-nostr"
	"github.com/nbd-wtf/go-nostr/nip04"
)

// ErrNoSigner is returned by operations that need a signer on a wallet
// built without one.
var ErrNoSigner = errors.New("no signer configured")

// PrivateKeySigner signs events and encrypts per-recipient payloads
// with a single secp256k1 private key. Encryption follows NIP-04.
type PrivateKeySigner struct {
	sk string
	pk string
}

// NewPrivateKeySigner derives the public key from a hex private key.
func NewPrivateKeySigner(privateKey string) (*PrivateKeySigner, error) {
	pk, err := nostr.GetPublicKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("derive public key: %w", err)
	}
	return &PrivateKeySigner{sk: privateKey, pk: pk}, nil
}

// GenerateSigner creates a signer with a fresh private key.
func GenerateSigner() *PrivateKeySigner {
	signer, _ := NewPrivateKeySigner(nostr.GeneratePrivateKey())
	return signer
}

// Public returns the hex public key the signer signs as.
func (s *PrivateKeySigner) Public() string { return s.pk }

// Sign fills in the author key if absent and computes the event id and
// signature in place.
func (s *PrivateKeySigner) Sign(_ context.Context, event *nostr.Event) error {
	if event.PubKey == "" {
		event.PubKey = s.pk
	}
	return event.Sign(s.sk)
}

// Encrypt encrypts plaintext for one recipient.
func (s *PrivateKeySigner) Encrypt(_ context.Context, recipientPubkey, plaintext string) (string, error) {
	secret, err := nip04.ComputeSharedSecret(recipientPubkey, s.sk)
	if err != nil {
		return "", fmt.Errorf("shared secret with %s: %w", recipientPubkey, err)
	}
	return nip04.Encrypt(plaintext, secret)
}

// Decrypt decrypts a ciphertext from one sender.
func (s *PrivateKeySigner) Decrypt(_ context.Context, senderPubkey, ciphertext string) (string, error) {
	secret, err := nip04.ComputeSharedSecret(senderPubkey, s.sk)
	if err != nil {
		return "", fmt.Errorf("shared secret with %s: %w", senderPubkey, err)
	}
	return nip04.Decrypt(ciphertext, secret)
}
