package reconcile

import (
	"strconv"

	"github.com/nbd-wtf/go-nostr"

	"github.com/user/fedwallet/pkg/protocol"
	"github.com/user/fedwallet/pkg/types"
)

// Keys identifies the caller and the federation module authors relevant
// to transaction building.
type Keys struct {
	Owner  string // the caller's public key
	Card   string // card module public key
	Ledger string // ledger module public key
}

// BuildTransaction converts a start event into a Transaction. A start
// authored by the card module must reference the owner in a p tag, or
// it belongs to someone else and yields nil. Building never fails on
// malformed content; absent tokens or memo default to empty values.
func BuildTransaction(keys Keys, start *nostr.Event) *types.Transaction {
	authorIsCard := start.PubKey == keys.Card
	if authorIsCard {
		delegated := false
		for _, p := range protocol.TagValues(start.Tags, protocol.TagPubkey) {
			if p == keys.Owner {
				delegated = true
				break
			}
		}
		if !delegated {
			return nil
		}
	}

	direction := types.DirectionIncoming
	if start.PubKey == keys.Owner {
		direction = types.DirectionOutgoing
	}

	content := protocol.ParseContent(start.Content)

	tx := &types.Transaction{
		ID:        start.ID,
		Status:    types.StatusPending,
		Direction: direction,
		Type:      types.TypeInternal,
		Tokens:    parseTokens(content),
		Memo:      protocol.ContentString(content, "memo"),
		Errors:    []any{},
		Events:    []*nostr.Event{start},
		CreatedAt: int64(start.CreatedAt) * 1000,
		Metadata:  map[string]string{},
	}

	if authorIsCard {
		tx.Type = types.TypeCard
	} else if protocol.TagValue(start.Tags, protocol.TagBolt11) != "" {
		tx.Type = types.TypeLN
	}

	return tx
}

// parseTokens reads the token amounts declared in a start event's
// content. Amounts arrive either as JSON numbers or as decimal strings;
// anything unparseable is skipped.
func parseTokens(content map[string]any) map[string]int64 {
	tokens := map[string]int64{}
	declared, ok := content["tokens"].(map[string]any)
	if !ok {
		return tokens
	}
	for id, raw := range declared {
		switch v := raw.(type) {
		case float64:
			tokens[id] = int64(v)
		case string:
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				tokens[id] = n
			}
		}
	}
	return tokens
}
