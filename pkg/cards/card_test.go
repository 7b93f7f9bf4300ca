package cards_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/nbd-wtf/go-nostr"

	"github.com/user/fedwallet/pkg/cards"
	"github.com/user/fedwallet/pkg/types"
	"github.com/user/fedwallet/pkg/wallet"
)

type recordingPublisher struct {
	events []*nostr.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event *nostr.Event) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func newTestSet(t *testing.T, publisher types.Publisher, status types.CardStatus) *cards.Set {
	t.Helper()
	signer := wallet.GenerateSigner()
	fed := testFederation(wallet.GenerateSigner().Public())
	info := types.CardsInfo{Config: configPayload("card-1", status)}
	return cards.NewSet(fed, signer, signer, publisher, info)
}

func TestCardUnknown(t *testing.T) {
	set := newTestSet(t, &recordingPublisher{}, types.CardDisabled)
	if _, err := set.Card("missing"); !errors.Is(err, cards.ErrUnknownCard) {
		t.Errorf("err = %v, want ErrUnknownCard", err)
	}
}

func TestCardEnableDisable(t *testing.T) {
	publisher := &recordingPublisher{}
	set := newTestSet(t, publisher, types.CardDisabled)
	card, err := set.Card("card-1")
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if err := card.Enable(ctx); err != nil {
		t.Fatal(err)
	}
	if !card.Enabled() {
		t.Error("card should be enabled after Enable")
	}
	if len(publisher.events) != 1 {
		t.Fatalf("published %d events, want 1", len(publisher.events))
	}

	if err := card.Enable(ctx); !errors.Is(err, cards.ErrAlreadyEnabled) {
		t.Errorf("second Enable err = %v, want ErrAlreadyEnabled", err)
	}
	if len(publisher.events) != 1 {
		t.Error("precondition failure must not publish")
	}

	if err := card.Disable(ctx); err != nil {
		t.Fatal(err)
	}
	if card.Enabled() {
		t.Error("card should be disabled after Disable")
	}
	if err := card.Disable(ctx); !errors.Is(err, cards.ErrAlreadyDisabled) {
		t.Errorf("second Disable err = %v, want ErrAlreadyDisabled", err)
	}
}

func TestCardMutationRollsBackOnPublishFailure(t *testing.T) {
	publisher := &recordingPublisher{err: errors.New("gateway unreachable")}
	set := newTestSet(t, publisher, types.CardDisabled)
	card, err := set.Card("card-1")
	if err != nil {
		t.Fatal(err)
	}

	if err := card.Enable(context.Background()); err == nil {
		t.Fatal("expected publish failure to surface")
	}
	if card.Enabled() {
		t.Error("failed mutation must leave the previous state in place")
	}
}

type failingCipher struct{ types.Cipher }

func (failingCipher) Encrypt(context.Context, string, string) (string, error) {
	return "", errors.New("no shared secret")
}

func TestCardMutationRollsBackOnEncryptFailure(t *testing.T) {
	publisher := &recordingPublisher{}
	signer := wallet.GenerateSigner()
	fed := testFederation(wallet.GenerateSigner().Public())
	info := types.CardsInfo{Config: configPayload("card-1", types.CardDisabled)}
	set := cards.NewSet(fed, signer, failingCipher{}, publisher, info)

	card, err := set.Card("card-1")
	if err != nil {
		t.Fatal(err)
	}
	if err := card.Enable(context.Background()); err == nil {
		t.Fatal("expected encrypt failure to surface")
	}
	if card.Enabled() {
		t.Error("failed mutation must leave the previous state in place")
	}
	if len(publisher.events) != 0 {
		t.Error("nothing may be published when the event cannot be built")
	}
}

func TestAddLimitDeduplicatesByDelta(t *testing.T) {
	publisher := &recordingPublisher{}
	set := newTestSet(t, publisher, types.CardEnabled)
	card, err := set.Card("card-1")
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	daily := cards.LimitParams{TokenID: "BTC", Amount: big.NewInt(5000), LimitType: "days", LimitTime: 1}
	if err := card.AddLimit(ctx, daily); err != nil {
		t.Fatal(err)
	}
	perTx := cards.LimitParams{TokenID: "BTC", Amount: big.NewInt(100), LimitType: "transaction"}
	if err := card.AddLimit(ctx, perTx); err != nil {
		t.Fatal(err)
	}
	if got := len(card.Payload().Limits); got != 2 {
		t.Fatalf("got %d limits, want 2", got)
	}

	// Same window again: replaced, not accumulated.
	daily.Amount = big.NewInt(9000)
	if err := card.AddLimit(ctx, daily); err != nil {
		t.Fatal(err)
	}
	limits := card.Payload().Limits
	if len(limits) != 2 {
		t.Fatalf("got %d limits after replacement, want 2", len(limits))
	}

	var found bool
	for _, limit := range limits {
		if limit.Delta == 86400 {
			found = true
			if limit.Amount != "9000" {
				t.Errorf("daily limit amount = %s, want 9000", limit.Amount)
			}
			if limit.Token != "BTC" {
				t.Errorf("daily limit token = %s", limit.Token)
			}
		}
	}
	if !found {
		t.Error("daily limit missing after replacement")
	}
}

func TestAddLimitRejectsBadWindow(t *testing.T) {
	publisher := &recordingPublisher{}
	set := newTestSet(t, publisher, types.CardEnabled)
	card, err := set.Card("card-1")
	if err != nil {
		t.Fatal(err)
	}

	bad := cards.LimitParams{TokenID: "BTC", Amount: big.NewInt(1), LimitType: "days", LimitTime: 0}
	if err := card.AddLimit(context.Background(), bad); !errors.Is(err, cards.ErrNonPositiveTime) {
		t.Errorf("err = %v, want ErrNonPositiveTime", err)
	}
	if len(publisher.events) != 0 {
		t.Error("invalid limit must not publish")
	}
}
