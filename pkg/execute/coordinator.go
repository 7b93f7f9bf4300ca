// Package execute drives the fire-and-wait half of the protocol: it
// publishes one signed start event and waits for the ledger's status
// event, producing exactly one terminal outcome per attempt.
package execute

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nbd-wtf/go-nostr"

	"github.com/user/fedwallet/pkg/protocol"
	"github.com/user/fedwallet/pkg/types"
)

// State tracks a coordinator through its lifecycle.
type State int

const (
	StateCreated State = iota
	StatePublished
	StateAwaiting
	StateConfirmed
	StateRejected
	StateTimedOut
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StatePublished:
		return "published"
	case StateAwaiting:
		return "awaiting"
	case StateConfirmed:
		return "confirmed"
	case StateRejected:
		return "rejected"
	case StateTimedOut:
		return "timed_out"
	}
	return "unknown"
}

// ErrAlreadyRun is returned when a coordinator is run a second time.
var ErrAlreadyRun = errors.New("coordinator already ran")

const (
	// DefaultPreDelay gives relays time to propagate the start event and
	// the ledger time to react before the confirmation query is issued.
	DefaultPreDelay = 500 * time.Millisecond
	// DefaultQueryTimeout bounds the confirmation query.
	DefaultQueryTimeout = 10 * time.Second
)

// Options control the debounce before the confirmation query and the
// query's own deadline.
type Options struct {
	PreDelay     time.Duration
	QueryTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.PreDelay <= 0 {
		o.PreDelay = DefaultPreDelay
	}
	if o.QueryTimeout <= 0 {
		o.QueryTimeout = DefaultQueryTimeout
	}
	return o
}

// Params configure one publish-and-await exchange.
type Params struct {
	Start        *nostr.Event // signed start event
	LedgerPubkey string
	Publisher    types.Publisher
	Querier      types.Querier
	OnSuccess    func(*nostr.Event)
	OnError      func(reason string)
	Options      Options
}

// Coordinator runs one publish-and-await exchange. It is single use:
// Run produces exactly one terminal outcome and refuses to run again.
type Coordinator struct {
	id     string
	state  State
	params Params
}

// New creates a Coordinator in the created state.
func New(params Params) *Coordinator {
	return &Coordinator{
		id:     uuid.New().String(),
		state:  StateCreated,
		params: params,
	}
}

// State returns the coordinator's current lifecycle state.
func (c *Coordinator) State() State { return c.state }

// Run publishes the start event and waits for the ledger's status
// event. It returns the status event on confirmation and on rejection
// (the rejection reason reaches OnError and the final state is
// StateRejected). A publish failure rejects immediately with an error
// and no query. When the deadline passes without a matching status
// event, Run returns (nil, nil): the intent may or may not have
// succeeded, and callers must reconcile later through the read path
// rather than assume failure.
func (c *Coordinator) Run(ctx context.Context) (*nostr.Event, error) {
	if c.state != StateCreated {
		return nil, ErrAlreadyRun
	}

	if err := c.params.Publisher.Publish(ctx, c.params.Start); err != nil {
		c.state = StateRejected
		c.emitError("publish failed")
		return nil, fmt.Errorf("publish failed: %w", err)
	}
	c.state = StatePublished

	opts := c.params.Options.withDefaults()
	slog.Debug("start event published, awaiting status",
		"coordinator_id", c.id, "event_id", c.params.Start.ID, "pre_delay", opts.PreDelay)

	select {
	case <-time.After(opts.PreDelay):
	case <-ctx.Done():
		c.state = StateTimedOut
		return nil, ctx.Err()
	}
	c.state = StateAwaiting

	qctx, cancel := context.WithTimeout(ctx, opts.QueryTimeout)
	defer cancel()

	filter := protocol.StatusFilter(c.params.Start.ID, c.params.LedgerPubkey)
	events, err := c.params.Querier.Query(qctx, []nostr.Filter{filter})
	if err != nil {
		c.state = StateTimedOut
		c.emitError("unexpected error")
		return nil, nil
	}

	status := firstStatusEvent(events)
	if status == nil {
		c.state = StateTimedOut
		c.emitError("unexpected error")
		return nil, nil
	}

	subkind := protocol.TagValue(status.Tags, protocol.TagSubkind)
	if protocol.IsErrorSubkind(subkind) {
		c.state = StateRejected
		c.emitError(status.Content)
		return status, nil
	}

	c.state = StateConfirmed
	if c.params.OnSuccess != nil {
		c.params.OnSuccess(status)
	}
	return status, nil
}

func (c *Coordinator) emitError(reason string) {
	if c.params.OnError != nil {
		c.params.OnError(reason)
	}
}

// firstStatusEvent returns the first event whose subkind belongs to the
// status vocabulary, in query result order.
func firstStatusEvent(events []*nostr.Event) *nostr.Event {
	for _, e := range events {
		if protocol.IsStatusSubkind(protocol.TagValue(e.Tags, protocol.TagSubkind)) {
			return e
		}
	}
	return nil
}
