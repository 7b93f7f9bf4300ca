package cards

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/user/fedwallet/pkg/types"
)

// Protocol violations raised before any network call is attempted.
var (
	ErrAlreadyEnabled  = errors.New("card is already enabled")
	ErrAlreadyDisabled = errors.New("card is already disabled")
	ErrUnknownCard     = errors.New("unknown card")
)

// Set is a holder's card collection together with the capabilities
// needed to publish configuration changes. Concurrent mutations of the
// same set are the caller's responsibility.
type Set struct {
	fed       types.FederationConfig
	signer    types.Signer
	cipher    types.Cipher
	publisher types.Publisher
	info      types.CardsInfo
}

// NewSet wraps decoded card records in a Set.
func NewSet(fed types.FederationConfig, signer types.Signer, cipher types.Cipher, publisher types.Publisher, info types.CardsInfo) *Set {
	if info.Config.Cards == nil {
		info.Config.Cards = map[string]types.CardPayload{}
	}
	return &Set{fed: fed, signer: signer, cipher: cipher, publisher: publisher, info: info}
}

// Info returns the current decoded records.
func (s *Set) Info() types.CardsInfo { return s.info }

// Card returns a live handle on one card by identifier.
func (s *Set) Card(uuid string) (*Card, error) {
	if _, ok := s.info.Config.Cards[uuid]; !ok {
		return nil, ErrUnknownCard
	}
	return &Card{set: s, uuid: uuid}, nil
}

// Cards returns handles for every card in the config record.
func (s *Set) Cards() []*Card {
	cards := make([]*Card, 0, len(s.info.Config.Cards))
	for uuid := range s.info.Config.Cards {
		cards = append(cards, &Card{set: s, uuid: uuid})
	}
	return cards
}

// commit swaps in the proposed config, builds and publishes the updated
// config event, and restores the previous config if either step fails.
// Mutations are never left half-applied.
func (s *Set) commit(ctx context.Context, proposed types.CardConfigPayload) error {
	previous := s.info.Config
	s.info.Config = proposed

	event, err := BuildConfigEvent(ctx, s.signer, s.cipher, s.fed, proposed)
	if err != nil {
		s.info.Config = previous
		return err
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.info.Config = previous
		return fmt.Errorf("publish card config: %w", err)
	}
	return nil
}

// withCard returns a copy of the config with one card's payload
// replaced. The copy keeps rollback a pure swap of values.
func withCard(config types.CardConfigPayload, uuid string, payload types.CardPayload) types.CardConfigPayload {
	next := config
	next.Cards = make(map[string]types.CardPayload, len(config.Cards))
	for id, p := range config.Cards {
		next.Cards[id] = p
	}
	next.Cards[uuid] = payload
	return next
}

// Card is a live handle on one card's mutable configuration.
type Card struct {
	set  *Set
	uuid string
}

// UUID returns the card's identifier.
func (c *Card) UUID() string { return c.uuid }

// Design returns the card's immutable design metadata, when the data
// record carries it.
func (c *Card) Design() types.Design {
	return c.set.info.Data[c.uuid].Design
}

// Payload returns the card's current operational configuration.
func (c *Card) Payload() types.CardPayload {
	return c.set.info.Config.Cards[c.uuid]
}

// Enabled reports whether the card is currently enabled.
func (c *Card) Enabled() bool {
	return c.Payload().Status == types.CardEnabled
}

// Enable turns the card on. Enabling an enabled card is a precondition
// error; no network call is made.
func (c *Card) Enable(ctx context.Context) error {
	if c.Enabled() {
		return ErrAlreadyEnabled
	}
	payload := c.Payload()
	payload.Status = types.CardEnabled
	return c.set.commit(ctx, withCard(c.set.info.Config, c.uuid, payload))
}

// Disable turns the card off. Disabling a disabled card is a
// precondition error; no network call is made.
func (c *Card) Disable(ctx context.Context) error {
	if !c.Enabled() {
		return ErrAlreadyDisabled
	}
	payload := c.Payload()
	payload.Status = types.CardDisabled
	return c.set.commit(ctx, withCard(c.set.info.Config, c.uuid, payload))
}

// LimitParams describe a new spending limit.
type LimitParams struct {
	TokenID   string
	Amount    *big.Int
	LimitType string // "transaction" or a time unit
	LimitTime int64  // window length in LimitType units
}

// AddLimit replaces any limit sharing the new limit's delta and appends
// the new one, so at most one limit exists per period.
func (c *Card) AddLimit(ctx context.Context, params LimitParams) error {
	delta, err := CalculateDelta(params.LimitType, params.LimitTime)
	if err != nil {
		return err
	}

	name := fmt.Sprintf("%s limit", params.LimitType)
	description := fmt.Sprintf("%s every %d %s", params.Amount, params.LimitTime, params.LimitType)
	if params.LimitType == LimitTypeTransaction {
		description = fmt.Sprintf("%s per %s", params.Amount, params.LimitType)
	}

	payload := c.Payload()
	kept := payload.Limits[:0:0]
	for _, limit := range payload.Limits {
		if limit.Delta != delta {
			kept = append(kept, limit)
		}
	}
	payload.Limits = append(kept, types.Limit{
		Name:        name,
		Description: description,
		Token:       params.TokenID,
		Amount:      params.Amount.String(),
		Delta:       delta,
	})

	return c.set.commit(ctx, withCard(c.set.info.Config, c.uuid, payload))
}
