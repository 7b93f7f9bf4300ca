package reconcile

import (
	"context"
	"sync"

	"github.com/nbd-wtf/go-nostr"
	"golang.org/x/sync/errgroup"

	"github.com/user/fedwallet/pkg/types"
)

// Reconcile derives keys.Owner's transaction view from an unordered,
// possibly duplicated event set. It never fails: disqualified starts
// are dropped and malformed content is absorbed. Per-start chains are
// built concurrently, so the order of the returned transactions is not
// defined; callers needing an order should sort by CreatedAt.
func Reconcile(ctx context.Context, keys Keys, events []*nostr.Event) []*types.Transaction {
	b := Classify(events)

	var (
		mu  sync.Mutex
		txs []*types.Transaction
	)

	g, _ := errgroup.WithContext(ctx)
	for _, start := range b.Starts {
		start := start
		g.Go(func() error {
			tx := buildChain(keys, start, b)
			if tx == nil {
				return nil
			}
			mu.Lock()
			txs = append(txs, tx)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // chain builders never fail; they drop instead

	return txs
}

func buildChain(keys Keys, start *nostr.Event, b Buckets) *types.Transaction {
	chain, refund := Correlate(start, b.Status, b.Refunds)

	tx := BuildTransaction(keys, chain.Start)
	if tx == nil {
		return nil
	}
	if chain.Status != nil {
		ApplyStatus(tx, chain.Status)
	}
	if refund.Start != nil {
		ApplyRefund(tx, refund)
	}
	return tx
}
