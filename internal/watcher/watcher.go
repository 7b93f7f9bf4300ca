// Package watcher runs a wallet refresh on a cron schedule and reports
// changes between consecutive snapshots.
package watcher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nbd-wtf/go-nostr"
	"github.com/robfig/cron/v3"

	"github.com/user/fedwallet/pkg/types"
	"github.com/user/fedwallet/pkg/wallet"
)

// Snapshot is one observation of the wallet's ledger state.
type Snapshot struct {
	Taken        time.Time
	Balance      int64
	Transactions []*types.Transaction
}

// Change describes what moved between two consecutive snapshots.
type Change struct {
	Previous *Snapshot
	Current  *Snapshot
	// NewTransactions are transactions absent from the previous
	// snapshot, and transactions whose status changed since then.
	NewTransactions []*types.Transaction
}

// Handler is the callback invoked after each refresh that observed a
// change.
type Handler func(Change)

// cronParser accepts both standard 5-field cron expressions and 6-field
// expressions with an optional seconds field.
var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Watcher polls a wallet on a cron schedule, diffing each snapshot
// against the last and firing the handler when something changed.
type Watcher struct {
	wallet  *wallet.Wallet
	tokenID string
	handler Handler
	cron    *cron.Cron

	mu   sync.Mutex
	last *Snapshot
}

// New creates a Watcher over the given wallet and token. The handler is
// called each time a refresh observes new or updated transactions or a
// balance change.
func New(w *wallet.Wallet, tokenID string, handler Handler) *Watcher {
	return &Watcher{
		wallet:  w,
		tokenID: tokenID,
		handler: handler,
		cron:    cron.New(cron.WithParser(cronParser)),
	}
}

// Start takes an initial snapshot, registers the refresh job, and
// starts the cron ticker.
func (w *Watcher) Start(ctx context.Context, schedule string) error {
	initial, err := w.snapshot(ctx)
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.last = initial
	w.mu.Unlock()

	_, err = w.cron.AddFunc(schedule, func() {
		w.refresh(ctx)
	})
	if err != nil {
		return err
	}

	w.cron.Start()
	slog.Info("watcher started", "schedule", schedule, "token", w.tokenID)
	return nil
}

// Stop stops the cron ticker.
func (w *Watcher) Stop() {
	w.cron.Stop()
}

func (w *Watcher) refresh(ctx context.Context) {
	current, err := w.snapshot(ctx)
	if err != nil {
		slog.Error("wallet refresh failed", "error", err)
		return
	}

	w.mu.Lock()
	previous := w.last
	w.last = current
	w.mu.Unlock()

	change := Diff(previous, current)
	if len(change.NewTransactions) == 0 && previous.Balance == current.Balance {
		return
	}
	slog.Info("wallet changed",
		"balance", current.Balance,
		"new_transactions", len(change.NewTransactions))
	if w.handler != nil {
		w.handler(change)
	}
}

func (w *Watcher) snapshot(ctx context.Context) (*Snapshot, error) {
	balance, err := w.wallet.Balance(ctx, w.tokenID)
	if err != nil {
		return nil, err
	}
	txs, err := w.wallet.Transactions(ctx, nostr.Filter{})
	if err != nil {
		return nil, err
	}
	return &Snapshot{Taken: time.Now(), Balance: balance, Transactions: txs}, nil
}

// Diff compares two snapshots and returns the transactions that are new
// or whose status changed.
func Diff(previous, current *Snapshot) Change {
	known := make(map[string]types.TransactionStatus, len(previous.Transactions))
	for _, tx := range previous.Transactions {
		known[tx.ID] = tx.Status
	}

	change := Change{Previous: previous, Current: current}
	for _, tx := range current.Transactions {
		status, ok := known[tx.ID]
		if !ok || status != tx.Status {
			change.NewTransactions = append(change.NewTransactions, tx)
		}
	}
	return change
}
