package protocol

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/nbd-wtf/go-nostr"
)

// StartParams describe a transaction start event.
type StartParams struct {
	TokenID      string
	Amount       int64
	SenderPubkey string
	Comment      string
	Tags         nostr.Tags // extra tags appended after the protocol tags
}

// NewStartEvent builds the unsigned start event for an internal
// transaction: kind regular, subkind internal-transaction-start, the
// ledger as participant, and a JSON content carrying the token amounts
// and optional memo.
func NewStartEvent(params StartParams, ledgerPubkey string) nostr.Event {
	content := map[string]any{
		"tokens": map[string]string{params.TokenID: strconv.FormatInt(params.Amount, 10)},
	}
	if params.Comment != "" {
		content["memo"] = params.Comment
	}
	raw, _ := json.Marshal(content)

	tags := nostr.Tags{
		{TagSubkind, SubkindInternalStart},
		{TagPubkey, ledgerPubkey},
	}
	tags = append(tags, params.Tags...)

	return nostr.Event{
		PubKey:    params.SenderPubkey,
		Kind:      KindRegular,
		Content:   string(raw),
		Tags:      tags,
		CreatedAt: nostr.Now(),
	}
}

// NewZapRequest builds the unsigned ephemeral zap-request event for a
// donation to receiverPubkey over the given relays.
func NewZapRequest(senderPubkey, receiverPubkey string, amount int64, relays []string, extra nostr.Tags) (nostr.Event, error) {
	if len(relays) == 0 {
		return nostr.Event{}, errors.New("zap request needs at least one relay")
	}

	tags := nostr.Tags{
		{TagPubkey, receiverPubkey},
		{TagAmount, strconv.FormatInt(amount, 10)},
		append(nostr.Tag{TagRelays}, relays...),
	}
	tags = append(tags, extra...)

	return nostr.Event{
		PubKey:    senderPubkey,
		Kind:      KindZapRequest,
		Content:   "",
		Tags:      tags,
		CreatedAt: nostr.Now(),
	}, nil
}
