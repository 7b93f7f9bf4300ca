package protocol

import "strings"

// Subkinds carried as the first `t` tag value of an event. The exact
// strings are part of the federation protocol and must not change.
const (
	SubkindInternalStart = "internal-transaction-start"
	SubkindInternalOK    = "internal-transaction-ok"
	SubkindInternalError = "internal-transaction-error"
	SubkindInboundStart  = "inbound-transaction-start"
	SubkindInboundOK     = "inbound-transaction-ok"
	SubkindInboundError  = "inbound-transaction-error"
	SubkindOutboundOK    = "outbound-transaction-ok"
	SubkindOutboundError = "outbound-transaction-error"

	SubkindCreateIdentity         = "create-identity"
	SubkindCardActivationRequest  = "card-activation-request"
	SubkindCardTransferDonation   = "card-transfer-donation"
	SubkindCardTransferAcceptance = "card-transfer-acceptance"
	SubkindBuyHandleRequest       = "buy-handle-request"
	SubkindCreateNonce            = "create-nonce"
)

// Content types for the card module's replaceable records, addressed by
// a d tag of the form "<owner>:<content-type>".
const (
	ContentTypeCardData   = "card-data"
	ContentTypeCardConfig = "card-config"
)

// StartSubkinds are the subkinds that open a transaction.
var StartSubkinds = []string{
	SubkindInternalStart,
	SubkindInboundStart,
}

// StatusSubkinds are the subkinds the ledger emits to settle a
// transaction, success and error alike.
var StatusSubkinds = []string{
	SubkindInternalOK,
	SubkindInternalError,
	SubkindOutboundOK,
	SubkindOutboundError,
	SubkindInboundOK,
	SubkindInboundError,
}

// SuccessSubkinds are the status subkinds that confirm a transaction.
var SuccessSubkinds = []string{
	SubkindInternalOK,
	SubkindOutboundOK,
	SubkindInboundOK,
}

// ErrorSubkinds are the status subkinds that reject a transaction.
var ErrorSubkinds = []string{
	SubkindInternalError,
	SubkindOutboundError,
	SubkindInboundError,
}

// IsStatusSubkind reports whether s belongs to the status vocabulary.
func IsStatusSubkind(s string) bool { return contains(StatusSubkinds, s) }

// IsSuccessSubkind reports whether s belongs to the success vocabulary.
func IsSuccessSubkind(s string) bool { return contains(SuccessSubkinds, s) }

// IsErrorSubkind reports whether s belongs to the error vocabulary.
func IsErrorSubkind(s string) bool { return contains(ErrorSubkinds, s) }

// MarksError reports whether a status subkind signals an error outcome.
// The ledger encodes the outcome in the subkind name itself.
func MarksError(subkind string) bool { return strings.Contains(subkind, "error") }

// MarksInbound reports whether a status subkind signals an inbound
// Lightning settlement.
func MarksInbound(subkind string) bool { return strings.Contains(subkind, "inbound") }

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
