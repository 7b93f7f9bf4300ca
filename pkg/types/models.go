// Package types holds the domain models shared across the SDK and the
// narrow interfaces through which it consumes transport and crypto
// collaborators.
package types

import "github.com/nbd-wtf/go-nostr"

// TransactionStatus is the reconciled state of a payment flow.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusConfirmed TransactionStatus = "CONFIRMED"
	StatusError     TransactionStatus = "ERROR"
	StatusReverted  TransactionStatus = "REVERTED"
)

// TransactionDirection is fixed at creation from the start event's
// author.
type TransactionDirection string

const (
	DirectionIncoming TransactionDirection = "INCOMING"
	DirectionOutgoing TransactionDirection = "OUTGOING"
)

// TransactionType is fixed at creation and refinable once to LN when a
// status event signals an inbound Lightning settlement.
type TransactionType string

const (
	TypeCard     TransactionType = "CARD"
	TypeInternal TransactionType = "INTERNAL"
	TypeLN       TransactionType = "LN"
)

// Transaction is the reconciled view of one payment flow. It is created
// from exactly one start event and only ever appended to afterwards.
type Transaction struct {
	ID        string
	Status    TransactionStatus
	Direction TransactionDirection
	Type      TransactionType
	Tokens    map[string]int64
	Memo      string
	Errors    []any
	Events    []*nostr.Event
	CreatedAt int64 // milliseconds
	Metadata  map[string]string
}
