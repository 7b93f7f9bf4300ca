package reconcile

import (
	"github.com/nbd-wtf/go-nostr"

	"github.com/user/fedwallet/pkg/protocol"
)

// Chain pairs a start event with its associated status event, if one
// was found.
type Chain struct {
	Start  *nostr.Event
	Status *nostr.Event
}

// Correlate finds the status event associated with start and, if
// present, the refund chain hanging off it (refund start plus the
// refund's own status). A status event is associated with a start event
// when any of its e tags equals the start event's id.
//
// When several events match, the first in bucket order wins. That
// tie-break is a protocol compatibility requirement, not a timestamp
// ordering; see TestCorrelateFirstMatchWins.
func Correlate(start *nostr.Event, status, refunds []*nostr.Event) (tx Chain, refund Chain) {
	tx = Chain{Start: start, Status: associated(status, start.ID)}

	refundStart := associated(refunds, start.ID)
	if refundStart != nil {
		refund = Chain{Start: refundStart, Status: associated(refunds, refundStart.ID)}
	}
	return tx, refund
}

func associated(events []*nostr.Event, eventID string) *nostr.Event {
	for _, e := range events {
		for _, ref := range protocol.TagValues(e.Tags, protocol.TagEvent) {
			if ref == eventID {
				return e
			}
		}
	}
	return nil
}
