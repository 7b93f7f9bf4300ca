// Package reconcile turns an unordered bag of federation events into a
// consistent set of transactions: it classifies events into causal
// roles, correlates status and refund chains to their start events, and
// folds each chain into a Transaction.
package reconcile

import (
	"github.com/nbd-wtf/go-nostr"

	"github.com/user/fedwallet/pkg/protocol"
)

// Buckets partitions a flat event set into the three causal roles an
// event can play in a transaction's lifecycle. Input order is preserved
// within each bucket.
type Buckets struct {
	Starts  []*nostr.Event
	Status  []*nostr.Event
	Refunds []*nostr.Event
}

// Classify partitions events in a single pass. An event with a status
// subkind is a status event. Otherwise, an event referencing an
// already-classified start via an e tag is a refund; any other event is
// a start. Starts without e tags are deduplicated by id so that
// reclassifying an already-classified set yields the same buckets.
func Classify(events []*nostr.Event) Buckets {
	var b Buckets
	startByID := make(map[string]bool, len(events))

	for _, e := range events {
		subkind := protocol.TagValue(e.Tags, protocol.TagSubkind)
		if subkind == "" {
			continue
		}

		if protocol.IsStatusSubkind(subkind) {
			b.Status = append(b.Status, e)
			continue
		}

		refs := protocol.TagValues(e.Tags, protocol.TagEvent)
		if len(refs) > 0 {
			refund := false
			for _, id := range refs {
				if startByID[id] {
					refund = true
					break
				}
			}
			if refund {
				b.Refunds = append(b.Refunds, e)
			} else {
				b.Starts = append(b.Starts, e)
				startByID[e.ID] = true
			}
			continue
		}

		if !startByID[e.ID] {
			b.Starts = append(b.Starts, e)
			startByID[e.ID] = true
		}
	}

	return b
}
