// Package cards encodes and decodes the card module's encrypted
// configuration records and exposes live card handles with
// transactional mutations.
package cards

import (
	"errors"
	"fmt"
)

// LimitTypeTransaction scopes a limit to a single transaction
// (delta 0) instead of a rolling time window.
const LimitTypeTransaction = "transaction"

// limitUnitSeconds maps a limit period unit to its length in seconds.
var limitUnitSeconds = map[string]int64{
	"seconds": 1,
	"minutes": 60,
	"hours":   3600,
	"days":    86400,
	"weeks":   604800,
	"months":  2592000,
	"years":   31536000,
}

// ErrNonPositiveTime rejects limit windows of zero or negative length.
var ErrNonPositiveTime = errors.New("limit time must be positive")

// CalculateDelta returns the rolling-window length in seconds for a
// limit: 0 for transaction-scoped limits, otherwise limitTime
// multiplied by the unit's length in seconds. Unknown units and
// non-positive times are precondition errors.
func CalculateDelta(limitType string, limitTime int64) (int64, error) {
	if limitType == LimitTypeTransaction {
		return 0, nil
	}
	unit, ok := limitUnitSeconds[limitType]
	if !ok {
		return 0, fmt.Errorf("unknown limit type %q", limitType)
	}
	if limitTime <= 0 {
		return 0, ErrNonPositiveTime
	}
	return unit * limitTime, nil
}
