package cards

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nbd-wtf/go-nostr"
	"golang.org/x/sync/errgroup"

	"github.com/user/fedwallet/pkg/protocol"
	"github.com/user/fedwallet/pkg/types"
)

// BuildConfigEvent encrypts the card-config payload independently for
// each recipient (the card module and the owner) and wraps the
// ciphertexts in one signed parametrized-replaceable event. The content
// is a JSON object keyed by recipient pubkey so either party can pick
// its own ciphertext.
func BuildConfigEvent(ctx context.Context, signer types.Signer, cipher types.Cipher, fed types.FederationConfig, payload types.CardConfigPayload) (*nostr.Event, error) {
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal card config: %w", err)
	}

	owner := signer.Public()
	recipients := []string{fed.Modules.Card, owner}

	ciphertexts := make(map[string]string, len(recipients))
	tags := nostr.Tags{
		{protocol.TagSubkind, protocol.ContentTypeCardConfig},
		{protocol.TagAddress, fmt.Sprintf("%s:%s", owner, protocol.ContentTypeCardConfig)},
	}
	for _, recipient := range recipients {
		ct, err := cipher.Encrypt(ctx, recipient, string(plaintext))
		if err != nil {
			return nil, fmt.Errorf("encrypt card config for %s: %w", recipient, err)
		}
		ciphertexts[recipient] = ct
		tags = append(tags, nostr.Tag{protocol.TagPubkey, recipient})
	}

	content, err := json.Marshal(ciphertexts)
	if err != nil {
		return nil, fmt.Errorf("marshal ciphertexts: %w", err)
	}

	event := &nostr.Event{
		PubKey:    owner,
		Kind:      protocol.KindParametrizedReplaceable,
		Content:   string(content),
		Tags:      tags,
		CreatedAt: nostr.Now(),
	}
	if err := signer.Sign(ctx, event); err != nil {
		return nil, fmt.Errorf("sign card config event: %w", err)
	}
	return event, nil
}

// DecodeEvents decrypts a card module's data and config records for
// owner and merges them into a CardsInfo. Decryption runs as a
// scatter-gather; the merge applies in input order, so later events of
// the same content type overwrite earlier ones. Events that fail to
// decrypt or parse are skipped.
func DecodeEvents(ctx context.Context, owner string, cipher types.Cipher, events []*nostr.Event) types.CardsInfo {
	info := types.CardsInfo{
		Data:   types.CardDataPayload{},
		Config: types.CardConfigPayload{Cards: map[string]types.CardPayload{}},
	}

	decoded := make([]map[string]any, len(events))
	g, gctx := errgroup.WithContext(ctx)
	for i, event := range events {
		i, event := i, event
		g.Go(func() error {
			plaintext, err := decryptForRecipient(gctx, cipher, event, owner)
			if err != nil {
				slog.Debug("skipping undecryptable card event", "event_id", event.ID, "error", err)
				return nil
			}
			decoded[i] = protocol.ParseContent(plaintext)
			return nil
		})
	}
	_ = g.Wait()

	for i, event := range events {
		if decoded[i] == nil {
			continue
		}
		raw, err := json.Marshal(decoded[i])
		if err != nil {
			continue
		}
		switch protocol.TagValue(event.Tags, protocol.TagSubkind) {
		case protocol.ContentTypeCardData:
			var data types.CardDataPayload
			if json.Unmarshal(raw, &data) == nil {
				info.Data = data
			}
		case protocol.ContentTypeCardConfig:
			var config types.CardConfigPayload
			if json.Unmarshal(raw, &config) == nil {
				if config.Cards == nil {
					config.Cards = map[string]types.CardPayload{}
				}
				info.Config = config
			}
		}
	}

	return info
}

// decryptForRecipient picks the recipient's ciphertext out of a
// multi-recipient content map and decrypts it with the event author as
// sender. Content that is not a ciphertext map is treated as a single
// ciphertext for backwards compatibility.
func decryptForRecipient(ctx context.Context, cipher types.Cipher, event *nostr.Event, recipient string) (string, error) {
	var ciphertexts map[string]string
	if err := json.Unmarshal([]byte(event.Content), &ciphertexts); err == nil {
		ct, ok := ciphertexts[recipient]
		if !ok {
			return "", fmt.Errorf("no ciphertext for %s", recipient)
		}
		return cipher.Decrypt(ctx, event.PubKey, ct)
	}
	return cipher.Decrypt(ctx, event.PubKey, event.Content)
}
