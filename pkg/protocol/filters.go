package protocol

import (
	"fmt"

	"github.com/nbd-wtf/go-nostr"
)

// TransactionFilters returns the three-filter set covering every event
// that can belong to one of pubkey's transactions: its own internal
// starts, starts from other parties referencing it, and the ledger's
// status events about it. base contributes optional bounds (Since,
// Until, Limit) to each filter.
func TransactionFilters(pubkey, ledgerPubkey string, base nostr.Filter) []nostr.Filter {
	own := base
	own.Authors = []string{pubkey}
	own.Kinds = []int{KindRegular}
	own.Tags = nostr.TagMap{TagSubkind: {SubkindInternalStart}}

	referenced := base
	referenced.Kinds = []int{KindRegular}
	referenced.Tags = nostr.TagMap{
		TagPubkey:  {pubkey},
		TagSubkind: append([]string(nil), StartSubkinds...),
	}

	status := base
	status.Authors = []string{ledgerPubkey}
	status.Kinds = []int{KindRegular}
	status.Tags = nostr.TagMap{
		TagPubkey:  {pubkey},
		TagSubkind: append([]string(nil), StatusSubkinds...),
	}

	return []nostr.Filter{own, referenced, status}
}

// StatusFilter matches the ledger's status events for one start event.
func StatusFilter(startEventID, ledgerPubkey string) nostr.Filter {
	return nostr.Filter{
		Authors: []string{ledgerPubkey},
		Kinds:   []int{KindRegular},
		Tags:    nostr.TagMap{TagEvent: {startEventID}},
	}
}

// CardsFilter matches the card module's replaceable data and config
// records for pubkey.
func CardsFilter(pubkey, cardPubkey string) nostr.Filter {
	return nostr.Filter{
		Authors: []string{cardPubkey},
		Kinds:   []int{KindParametrizedReplaceable},
		Tags: nostr.TagMap{TagAddress: {
			fmt.Sprintf("%s:%s", pubkey, ContentTypeCardData),
			fmt.Sprintf("%s:%s", pubkey, ContentTypeCardConfig),
		}},
	}
}

// BalanceFilter matches the ledger's replaceable balance snapshot for
// one token held by pubkey.
func BalanceFilter(pubkey, ledgerPubkey, tokenID string) nostr.Filter {
	return nostr.Filter{
		Authors: []string{ledgerPubkey},
		Kinds:   []int{KindParametrizedReplaceable},
		Tags:    nostr.TagMap{TagAddress: {fmt.Sprintf("balance:%s:%s", tokenID, pubkey)}},
	}
}
