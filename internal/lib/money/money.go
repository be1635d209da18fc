// Package money converts dollar amounts to whole cents so comparisons and
// change arithmetic never touch binary floating point.
package money

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Cents is an amount of US currency in its smallest unit.
type Cents int64

const (
	Penny   Cents = 1
	Nickel  Cents = 5
	Dime    Cents = 10
	Quarter Cents = 25
)

var (
	ErrSubCent     = errors.New("amount has fractions of a cent")
	ErrOutOfRange  = errors.New("amount out of range")
	centsPerDollar = decimal.NewFromInt(100)
	maxCents       = decimal.NewFromInt(math.MaxInt64)
	minCents       = decimal.NewFromInt(math.MinInt64)
)

// FromDecimal converts an exact dollar amount. It fails if the amount cannot be
// expressed in whole cents.
func FromDecimal(dollars decimal.Decimal) (Cents, error) {
	c := dollars.Mul(centsPerDollar)
	if !c.IsInteger() {
		return 0, fmt.Errorf("%s: %w", dollars.String(), ErrSubCent)
	}
	return toCents(dollars, c)
}

// Truncate converts a dollar amount dropping any fraction of a cent.
func Truncate(dollars decimal.Decimal) (Cents, error) {
	return toCents(dollars, dollars.Mul(centsPerDollar).Truncate(0))
}

func toCents(dollars, cents decimal.Decimal) (Cents, error) {
	if cents.GreaterThan(maxCents) || cents.LessThan(minCents) {
		return 0, fmt.Errorf("%s: %w", dollars.String(), ErrOutOfRange)
	}
	return Cents(cents.IntPart()), nil
}

func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}
