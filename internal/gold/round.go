package gold

import "github.com/shopspring/decimal"

// Persisted-precision contract: weight and purity columns carry three
// decimals, currency columns carry two. Intermediate accumulation stays
// unrounded; these helpers are applied only at the boundary of a stored
// field or a response payload.
const (
	WeightScale   = 3
	CurrencyScale = 2
)

func RoundWeight(d decimal.Decimal) decimal.Decimal { return d.Round(WeightScale) }

func RoundCurrency(d decimal.Decimal) decimal.Decimal { return d.Round(CurrencyScale) }
