// Package lnurl classifies and resolves Lightning payment endpoints:
// LNURL strings, LUD16 lightning addresses, and raw invoices.
package lnurl

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// TransferType classifies a payment destination string.
type TransferType string

const (
	TypeInternal TransferType = "INTERNAL"
	TypeLUD16    TransferType = "LUD16"
	TypeInvoice  TransferType = "INVOICE"
	TypeLNURL    TransferType = "LNURL"
	TypeLNURLW   TransferType = "LNURLW"
	TypeNone     TransferType = "NONE"
)

var lud16Pattern = regexp.MustCompile(`^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)

// DetectTransferType classifies a destination string. Anything that is
// neither a lightning address, an LNURL, nor an invoice is assumed to
// be a federation handle.
func DetectTransferType(data string) TransferType {
	if data == "" {
		return TypeNone
	}
	upper := strings.ToUpper(data)
	if lud16Pattern.MatchString(upper) {
		return TypeLUD16
	}
	if strings.HasPrefix(upper, "LNURL") {
		return TypeLNURL
	}
	if strings.HasPrefix(upper, "LNBC") {
		return TypeInvoice
	}
	return TypeInternal
}

// RemoveLightningStandard strips the lightning: / lightning:// /
// lnurlw:// URI prefixes and lowercases the rest.
func RemoveLightningStandard(s string) string {
	low := strings.ToLower(s)
	for _, prefix := range []string{"lightning://", "lightning:", "lnurlw://"} {
		if strings.HasPrefix(low, prefix) {
			return strings.TrimPrefix(low, prefix)
		}
	}
	return low
}

// NormalizeLightningDomain extracts the hostname from a lightning
// domain URL, or "" when it cannot be parsed.
func NormalizeLightningDomain(lightningDomain string) string {
	u, err := url.Parse(lightningDomain)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Hostname()
}

// SplitHandle splits "user@domain" into its parts. A bare handle gets
// the federation's lightning domain.
func SplitHandle(handle, lightningDomain string) (username, domain string) {
	if handle == "" {
		return "", ""
	}
	if strings.Contains(handle, "@") {
		parts := strings.SplitN(handle, "@", 2)
		return parts[0], parts[1]
	}
	return handle, NormalizeLightningDomain(lightningDomain)
}

// Walias joins a username with the federation's lightning domain.
func Walias(username, lightningDomain string) string {
	return fmt.Sprintf("%s@%s", username, NormalizeLightningDomain(lightningDomain))
}

// Decode unwraps a bech32-encoded LNURL into the URL it carries.
func Decode(lnurlStr string) (string, error) {
	_, data, err := bech32.DecodeNoLimit(strings.ToLower(lnurlStr))
	if err != nil {
		return "", fmt.Errorf("decode lnurl: %w", err)
	}
	converted, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return "", fmt.Errorf("convert lnurl bits: %w", err)
	}
	return string(converted), nil
}

// Encode wraps a URL as a bech32 LNURL string.
func Encode(rawURL string) (string, error) {
	converted, err := bech32.ConvertBits([]byte(rawURL), 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("convert lnurl bits: %w", err)
	}
	encoded, err := bech32.Encode("lnurl", converted)
	if err != nil {
		return "", fmt.Errorf("encode lnurl: %w", err)
	}
	return strings.ToUpper(encoded), nil
}
