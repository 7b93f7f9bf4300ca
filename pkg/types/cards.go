package types

// CardStatus is a card's enablement state.
type CardStatus string

const (
	CardEnabled  CardStatus = "ENABLED"
	CardDisabled CardStatus = "DISABLED"
)

// Limit caps spending for one token over a rolling window of Delta
// seconds. Delta 0 means per-transaction. At most one limit may exist
// per distinct Delta within a card's limit set.
type Limit struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Token       string `json:"token"`
	Amount      string `json:"amount"` // arbitrary-precision integer, decimal string
	Delta       int64  `json:"delta"`  // seconds
}

// Design is a card's immutable design metadata.
type Design struct {
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CardPayload is one card's mutable operational configuration.
type CardPayload struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      CardStatus `json:"status"`
	Limits      []Limit    `json:"limits"`
}

// CardDataPayload is the card module's card-data record: immutable
// design metadata keyed by card identifier.
type CardDataPayload map[string]struct {
	Design Design `json:"design"`
}

// TrustedMerchant is a merchant pubkey the federation exempts from
// per-card restrictions.
type TrustedMerchant struct {
	Pubkey string `json:"pubkey"`
}

// CardConfigPayload is the card module's card-config record: mutable
// operational config for every card plus the federation-wide trusted
// merchant list.
type CardConfigPayload struct {
	TrustedMerchants []TrustedMerchant      `json:"trusted-merchants"`
	Cards            map[string]CardPayload `json:"cards"`
}

// CardsInfo is the union of the two parallel records describing a
// holder's cards.
type CardsInfo struct {
	Data   CardDataPayload
	Config CardConfigPayload
}
