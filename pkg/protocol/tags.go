package protocol

import "github.com/nbd-wtf/go-nostr"

// Well-known tag keys.
const (
	TagSubkind   = "t"
	TagPubkey    = "p"
	TagEvent     = "e"
	TagAddress   = "d"
	TagAmount    = "amount"
	TagBolt11    = "bolt11"
	TagMetadata  = "metadata"
	TagExpiry    = "expiry"
	TagNonce     = "nonce"
	TagName      = "name"
	TagRelays    = "relays"
)

// TagValue returns the first value of the first tag with the given key,
// or "" when the event carries no such tag.
func TagValue(tags nostr.Tags, key string) string {
	for _, tag := range tags {
		if len(tag) >= 2 && tag[0] == key {
			return tag[1]
		}
	}
	return ""
}

// TagValues returns the first value of every tag with the given key, in
// tag order.
func TagValues(tags nostr.Tags, key string) []string {
	var values []string
	for _, tag := range tags {
		if len(tag) >= 2 && tag[0] == key {
			values = append(values, tag[1])
		}
	}
	return values
}

// MetadataTag wraps an encrypted side-channel payload as a metadata tag:
// ["metadata", "true", <cipher scheme>, <ciphertext>].
func MetadataTag(scheme, ciphertext string) nostr.Tag {
	return nostr.Tag{TagMetadata, "true", scheme, ciphertext}
}
