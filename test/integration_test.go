//go:build integration

package test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/nbd-wtf/go-nostr"

	"github.com/user/fedwallet/pkg/execute"
	"github.com/user/fedwallet/pkg/protocol"
	"github.com/user/fedwallet/pkg/types"
	"github.com/user/fedwallet/pkg/wallet"
)

// memoryRelay is an in-process stand-in for the relay pool: it stores
// every published event and answers queries by matching filters.
type memoryRelay struct {
	mu     sync.Mutex
	events []*nostr.Event
}

func (m *memoryRelay) Publish(_ context.Context, event *nostr.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *memoryRelay) Query(_ context.Context, filters []nostr.Filter) ([]*nostr.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*nostr.Event
	seen := map[string]bool{}
	for _, filter := range filters {
		for _, event := range m.events {
			if !seen[event.ID] && filter.Matches(event) {
				seen[event.ID] = true
				out = append(out, event)
			}
		}
	}
	return out, nil
}

// runLedgerStub settles every published start event with a status
// event, the way the federation's ledger module would.
func runLedgerStub(t *testing.T, relay *memoryRelay, ledger *wallet.PrivateKeySigner) {
	t.Helper()
	go func() {
		settled := map[string]bool{}
		for i := 0; i < 100; i++ {
			time.Sleep(10 * time.Millisecond)

			relay.mu.Lock()
			var starts []*nostr.Event
			for _, event := range relay.events {
				subkind := protocol.TagValue(event.Tags, protocol.TagSubkind)
				if subkind == protocol.SubkindInternalStart && !settled[event.ID] {
					starts = append(starts, event)
				}
			}
			relay.mu.Unlock()

			for _, start := range starts {
				settled[start.ID] = true
				status := &nostr.Event{
					Kind:      protocol.KindRegular,
					CreatedAt: nostr.Now(),
					Content:   "{}",
					Tags: nostr.Tags{
						{protocol.TagSubkind, protocol.SubkindInternalOK},
						{protocol.TagEvent, start.ID},
						{protocol.TagPubkey, start.PubKey},
					},
				}
				if err := ledger.Sign(context.Background(), status); err != nil {
					t.Errorf("ledger sign: %v", err)
					return
				}
				_ = relay.Publish(context.Background(), status)
			}
		}
	}()
}

func TestEndToEndInternalTransfer(t *testing.T) {
	ctx := context.Background()
	relay := &memoryRelay{}

	ledger := wallet.GenerateSigner()
	receiver := wallet.GenerateSigner()

	fed := types.FederationConfig{
		ID:      "test.federation",
		Modules: types.ModulePubkeys{Ledger: ledger.Public(), Card: wallet.GenerateSigner().Public()},
		Relays:  []string{"wss://unused"},
	}

	sender, err := wallet.New(wallet.Options{
		Federation: fed,
		Publisher:  relay,
		Querier:    relay,
		Execute:    execute.Options{PreDelay: 50 * time.Millisecond, QueryTimeout: time.Second},
	})
	if err != nil {
		t.Fatal(err)
	}

	runLedgerStub(t, relay, ledger)

	status, err := sender.SendInternal(ctx, wallet.SendParams{
		TokenID:        "BTC",
		Amount:         1000,
		ReceiverPubkey: receiver.Public(),
		Comment:        "integration transfer",
	})
	if err != nil {
		t.Fatal(err)
	}
	if status == nil {
		t.Fatal("transfer did not settle before the deadline")
	}
	if got := protocol.TagValue(status.Tags, protocol.TagSubkind); got != protocol.SubkindInternalOK {
		t.Errorf("status subkind = %q", got)
	}

	// The read path must agree with the write path's outcome.
	txs, err := sender.Transactions(ctx, nostr.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txs))
	}
	tx := txs[0]
	if tx.Status != types.StatusConfirmed {
		t.Errorf("status = %s, want CONFIRMED", tx.Status)
	}
	if tx.Direction != types.DirectionOutgoing || tx.Type != types.TypeInternal {
		t.Errorf("tx = %s/%s", tx.Direction, tx.Type)
	}
	if tx.Tokens["BTC"] != 1000 {
		t.Errorf("tokens = %v", tx.Tokens)
	}
	if tx.Memo != "integration transfer" {
		t.Errorf("memo = %q", tx.Memo)
	}
}
