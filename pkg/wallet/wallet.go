// Package wallet composes an identity, a signer, and a transport into
// the federated wallet API: balances, reconciled transactions, card
// management, and the send protocol.
package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/nbd-wtf/go-nostr"

	"github.com/user/fedwallet/pkg/cards"
	"github.com/user/fedwallet/pkg/execute"
	"github.com/user/fedwallet/pkg/lnurl"
	"github.com/user/fedwallet/pkg/protocol"
	"github.com/user/fedwallet/pkg/reconcile"
	"github.com/user/fedwallet/pkg/types"
)

// Protocol violations raised before any network call.
var (
	ErrSelfTransfer      = errors.New("cannot send a transaction to yourself")
	ErrAmountOutOfBounds = errors.New("amount outside the receiver's accepted bounds")
	ErrExternalReceiver  = errors.New("receiver does not belong to this federation")
	ErrNoTransport       = errors.New("no transport configured")
)

// Options configure a Wallet. Federation is mandatory; a missing Signer
// gets a freshly generated key. Publisher and Querier are the transport
// collaborators; Publisher defaults to the federation gateway.
type Options struct {
	Federation types.FederationConfig
	Signer     *PrivateKeySigner
	Publisher  types.Publisher
	Querier    types.Querier
	Execute    execute.Options
}

// Wallet is an identity that can sign, encrypt, and move funds.
type Wallet struct {
	identity  *Identity
	signer    *PrivateKeySigner
	publisher types.Publisher
	querier   types.Querier
	resolver  *lnurl.Resolver
	execOpts  execute.Options
}

// New creates a Wallet from explicit options.
func New(opts Options) (*Wallet, error) {
	signer := opts.Signer
	if signer == nil {
		signer = GenerateSigner()
	}

	federation := NewFederation(opts.Federation)
	identity, err := NewIdentity(signer.Public(), federation)
	if err != nil {
		return nil, err
	}

	publisher := opts.Publisher
	if publisher == nil {
		publisher = types.PublisherFunc(federation.HTTPPublish)
	}

	return &Wallet{
		identity:  identity,
		signer:    signer,
		publisher: publisher,
		querier:   opts.Querier,
		resolver:  lnurl.NewResolver(opts.Federation),
		execOpts:  opts.Execute,
	}, nil
}

// Identity returns the wallet's identity.
func (w *Wallet) Identity() *Identity { return w.identity }

// Pubkey returns the wallet's hex public key.
func (w *Wallet) Pubkey() string { return w.identity.Pubkey() }

// Federation returns the federation the wallet belongs to.
func (w *Wallet) Federation() *Federation { return w.identity.Federation() }

// Signer returns the wallet's signer.
func (w *Wallet) Signer() types.Signer { return w.signer }

func (w *Wallet) keys() reconcile.Keys {
	modules := w.Federation().Modules()
	return reconcile.Keys{Owner: w.Pubkey(), Card: modules.Card, Ledger: modules.Ledger}
}

// SignEvent fills the template defaults (kind 0, empty content, now)
// into event and signs it.
func (w *Wallet) SignEvent(ctx context.Context, event *nostr.Event) error {
	if w.signer == nil {
		return ErrNoSigner
	}
	if event.CreatedAt == 0 {
		event.CreatedAt = nostr.Now()
	}
	if event.Tags == nil {
		event.Tags = nostr.Tags{}
	}
	event.PubKey = w.Pubkey()
	return w.signer.Sign(ctx, event)
}

// Balance reads the ledger's replaceable balance snapshot for one
// token. A missing snapshot is a zero balance.
func (w *Wallet) Balance(ctx context.Context, tokenID string) (int64, error) {
	if w.querier == nil {
		return 0, ErrNoTransport
	}
	filter := protocol.BalanceFilter(w.Pubkey(), w.Federation().Modules().Ledger, tokenID)
	events, err := w.querier.Query(ctx, []nostr.Filter{filter})
	if err != nil {
		return 0, fmt.Errorf("query balance: %w", err)
	}
	if len(events) == 0 {
		return 0, nil
	}
	amount := protocol.TagValue(events[0].Tags, protocol.TagAmount)
	if amount == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(amount, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse balance amount %q: %w", amount, err)
	}
	return n, nil
}

// Transactions queries every event that can belong to one of the
// wallet's transactions and reconciles them. base contributes optional
// bounds (Since, Until, Limit) to the queries.
func (w *Wallet) Transactions(ctx context.Context, base nostr.Filter) ([]*types.Transaction, error) {
	if w.querier == nil {
		return nil, ErrNoTransport
	}
	filters := protocol.TransactionFilters(w.Pubkey(), w.Federation().Modules().Ledger, base)
	events, err := w.querier.Query(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	return reconcile.Reconcile(ctx, w.keys(), events), nil
}

// Cards fetches and decodes the wallet's card records into a live Set.
func (w *Wallet) Cards(ctx context.Context) (*cards.Set, error) {
	if w.querier == nil {
		return nil, ErrNoTransport
	}
	filter := protocol.CardsFilter(w.Pubkey(), w.Federation().Modules().Card)
	events, err := w.querier.Query(ctx, []nostr.Filter{filter})
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	info := cards.DecodeEvents(ctx, w.Pubkey(), w.signer, events)
	return cards.NewSet(w.Federation().Config(), w.signer, w.signer, w.publisher, info), nil
}

// SendParams describe an internal transfer.
type SendParams struct {
	TokenID        string
	Amount         int64
	ReceiverPubkey string
	Comment        string
	// Metadata carries human-readable sender/receiver handles,
	// encrypted for the receiver on the start event.
	Metadata  map[string]string
	OnSuccess func(*nostr.Event)
	OnError   func(reason string)
}

// SendInternal signs and publishes an internal transaction start event
// and waits for the ledger's status event. Sending to oneself is a
// precondition error. See execute.Coordinator.Run for the outcome
// contract; in particular a nil event with nil error means the outcome
// is unknown until the next reconciliation pass.
func (w *Wallet) SendInternal(ctx context.Context, params SendParams) (*nostr.Event, error) {
	if params.ReceiverPubkey == w.Pubkey() {
		return nil, ErrSelfTransfer
	}

	extra := nostr.Tags{{protocol.TagPubkey, params.ReceiverPubkey}}
	if len(params.Metadata) > 0 {
		tag, err := w.encryptedMetadataTag(ctx, params.ReceiverPubkey, params.Metadata)
		if err != nil {
			return nil, err
		}
		extra = append(extra, tag)
	}

	start := protocol.NewStartEvent(protocol.StartParams{
		TokenID:      params.TokenID,
		Amount:       params.Amount,
		SenderPubkey: w.Pubkey(),
		Comment:      params.Comment,
		Tags:         extra,
	}, w.Federation().Modules().Ledger)

	if err := w.signer.Sign(ctx, &start); err != nil {
		return nil, fmt.Errorf("sign start event: %w", err)
	}

	coordinator := execute.New(execute.Params{
		Start:        &start,
		LedgerPubkey: w.Federation().Modules().Ledger,
		Publisher:    w.publisher,
		Querier:      w.querier,
		OnSuccess:    params.OnSuccess,
		OnError:      params.OnError,
		Options:      w.execOpts,
	})
	return coordinator.Run(ctx)
}

// SendTo resolves a destination handle (walias, lightning address, or
// LNURL) and runs an internal transfer to it. Destinations outside the
// federation are rejected; amounts outside the endpoint's declared
// bounds are rejected before anything is published.
func (w *Wallet) SendTo(ctx context.Context, receiver string, params SendParams) (*nostr.Event, error) {
	transfer := w.resolver.Resolve(ctx, receiver)
	if transfer.Type != lnurl.TypeInternal || transfer.PayRequest == nil || transfer.PayRequest.AccountPubkey == "" {
		return nil, ErrExternalReceiver
	}

	pr := transfer.PayRequest
	if pr.MinSendable > 0 && params.Amount < pr.MinSendable/1000 {
		return nil, ErrAmountOutOfBounds
	}
	if pr.MaxSendable > 0 && params.Amount > pr.MaxSendable/1000 {
		return nil, ErrAmountOutOfBounds
	}

	params.ReceiverPubkey = pr.AccountPubkey
	return w.SendInternal(ctx, params)
}

// ZapRequest builds and signs an ephemeral zap request for a receiver
// over the federation's relays.
func (w *Wallet) ZapRequest(ctx context.Context, receiverPubkey string, amount int64, extra nostr.Tags) (*nostr.Event, error) {
	event, err := protocol.NewZapRequest(w.Pubkey(), receiverPubkey, amount, w.Federation().Relays(), extra)
	if err != nil {
		return nil, err
	}
	if err := w.signer.Sign(ctx, &event); err != nil {
		return nil, fmt.Errorf("sign zap request: %w", err)
	}
	return &event, nil
}

func (w *Wallet) encryptedMetadataTag(ctx context.Context, receiverPubkey string, metadata map[string]string) (nostr.Tag, error) {
	plaintext, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}
	ciphertext, err := w.signer.Encrypt(ctx, receiverPubkey, string(plaintext))
	if err != nil {
		return nil, fmt.Errorf("encrypt metadata: %w", err)
	}
	return protocol.MetadataTag("nip04", ciphertext), nil
}
