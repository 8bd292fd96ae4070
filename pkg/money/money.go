// Package money represents monetary values as integer minor currency units
// (e.g. cents, kuruş). All wire traffic uses the integer form; decimal
// conversion happens only at the display and input boundaries.
package money

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrFractionTooFine is returned when a parsed value carries more precision
// than two decimal places.
var ErrFractionTooFine = errors.New("amount has more than two decimal places")

// Amount is a monetary value in minor currency units.
type Amount int64

// Zero is the zero amount.
const Zero Amount = 0

// FromMajor converts a whole major-unit value (e.g. 12 → 12.00) to an Amount.
func FromMajor(v int64) Amount {
	return Amount(v * 100)
}

// Parse converts a human-entered decimal string ("12.34") to an Amount.
// Values with sub-minor-unit precision are rejected rather than rounded,
// since silently rounding operator input hides data entry mistakes.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.Wrap(err, "parse amount")
	}
	minor := d.Shift(2)
	if !minor.IsInteger() {
		return 0, ErrFractionTooFine
	}
	return Amount(minor.IntPart()), nil
}

// String formats the amount with two decimal places, e.g. 1234 → "12.34".
func (a Amount) String() string {
	return decimal.New(int64(a), -2).StringFixed(2)
}

// IsNegative reports whether the amount is below zero.
func (a Amount) IsNegative() bool {
	return a < 0
}
