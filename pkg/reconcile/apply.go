package reconcile

import (
	"github.com/nbd-wtf/go-nostr"

	"github.com/user/fedwallet/pkg/protocol"
	"github.com/user/fedwallet/pkg/types"
)

// ApplyStatus folds a ledger status event into the transaction. An
// error subkind moves the transaction to ERROR and records the parsed
// content; any other status subkind confirms it. An inbound settlement
// on an incoming transaction upgrades its type to LN. The raw event is
// always appended.
func ApplyStatus(tx *types.Transaction, status *nostr.Event) {
	subkind := protocol.TagValue(status.Tags, protocol.TagSubkind)
	if subkind == "" {
		return
	}

	if tx.Direction == types.DirectionIncoming && protocol.MarksInbound(subkind) {
		tx.Type = types.TypeLN
	}

	if protocol.MarksError(subkind) {
		tx.Status = types.StatusError
		tx.Errors = append(tx.Errors, protocol.ParseContent(status.Content))
	} else {
		tx.Status = types.StatusConfirmed
	}

	tx.Events = append(tx.Events, status)
}

// ApplyRefund folds a refund chain into the transaction. REVERTED is a
// terminal override: it replaces any prior CONFIRMED or ERROR state.
// Both refund events (start, then status when present) are appended;
// the refund memo, when present, is recorded as an error payload.
func ApplyRefund(tx *types.Transaction, refund Chain) {
	tx.Status = types.StatusReverted

	memoSource := refund.Status
	if memoSource == nil {
		memoSource = refund.Start
	}
	if memo, ok := protocol.ParseContent(memoSource.Content)["memo"]; ok {
		tx.Errors = append(tx.Errors, memo)
	}

	tx.Events = append(tx.Events, refund.Start)
	if refund.Status != nil {
		tx.Events = append(tx.Events, refund.Status)
	}
}
