package dto

import (
	"errors"

	"github.com/shopspring/decimal"
)

var errBadPrice = errors.New("price must be a non-negative amount with at most 2 decimal places")

// FormatCents renders a cent amount as a fixed two-decimal string ("25.50").
func FormatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// ParseCents parses a decimal price string into cents, rejecting negative
// amounts and sub-cent precision.
func ParseCents(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errBadPrice
	}
	if d.IsNegative() {
		return 0, errBadPrice
	}
	shifted := d.Shift(2)
	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, errBadPrice
	}
	return shifted.IntPart(), nil
}
