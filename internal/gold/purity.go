package gold

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PurityFromWeight converts a gross weight and touch percentage to fine-gold
// grams: weight × touch / 100, rounded to three decimals. Touch is trusted to
// be pre-clamped by the input layer; out-of-range values fail loudly rather
// than being coerced.
func PurityFromWeight(weight, touch decimal.Decimal) (decimal.Decimal, error) {
	if weight.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: negative weight %s", ErrInvalidInput, weight)
	}
	if touch.IsNegative() || touch.GreaterThan(hundred) {
		return decimal.Zero, fmt.Errorf("%w: touch %s outside [0,100]", ErrInvalidInput, touch)
	}
	return RoundWeight(weight.Mul(touch).Div(hundred)), nil
}

// GoldEquivalent converts a cash amount to grams at the given gold rate.
// A zero or unset rate is not fatal for the caller's flow: the conversion is
// deferred until a rate is supplied, so the caller must treat the error as
// "pending", not as a failure.
func GoldEquivalent(amount, goldRate decimal.Decimal) (decimal.Decimal, error) {
	if goldRate.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: gold rate not set", ErrDivisionByZero)
	}
	return amount.Div(goldRate), nil
}

// CashFromPurity values fine-gold grams at the given rate, rounded to two
// decimals.
func CashFromPurity(purity, goldRate decimal.Decimal) decimal.Decimal {
	return RoundCurrency(purity.Mul(goldRate))
}
