// Package protocol defines the wire vocabulary of the federation:
// event kinds, subkind tags, tag lookups, filters, and the unsigned
// event templates the rest of the SDK builds on.
package protocol

// Event kind classes used by the federation. Regular events are durable
// (one event per id), ephemeral events are not retained by relays, and
// parametrized-replaceable events keep only the newest event per
// (author, d-tag) pair.
const (
	KindRegular                 = 1112
	KindEphemeral               = 21111
	KindParametrizedReplaceable = 31111
)

// KindZapRequest is the standard zap-request kind (NIP-57).
const KindZapRequest = 9734
