package gold

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LineItem is one coin line of a bill: Quantity coins of CoinValue grams
// each, in the touch class labelled by Percentage (e.g. "916").
type LineItem struct {
	CoinValue  decimal.Decimal
	Quantity   int
	Percentage string
	Touch      decimal.Decimal
	Weight     decimal.Decimal
	Purity     decimal.Decimal
	GoldRate   decimal.Decimal
	Amount     decimal.Decimal
}

// ComputeItem derives the weight, purity and amount of a line from its coin
// value, quantity and touch. Amount stays zero while the line is unpriced
// (no gold rate yet); it is filled in before the bill is saved.
func ComputeItem(it LineItem) (LineItem, error) {
	if it.Quantity < 0 {
		return it, fmt.Errorf("%w: negative quantity %d", ErrInvalidInput, it.Quantity)
	}
	it.Weight = RoundWeight(it.CoinValue.Mul(decimal.NewFromInt(int64(it.Quantity))))

	purity, err := PurityFromWeight(it.Weight, it.Touch)
	if err != nil {
		return it, err
	}
	it.Purity = purity

	if it.GoldRate.IsPositive() {
		it.Amount = CashFromPurity(it.Purity, it.GoldRate)
	} else {
		it.Amount = decimal.Zero
	}
	return it, nil
}

// Totals is the bill-level aggregate over its lines.
type Totals struct {
	Weight decimal.Decimal
	Purity decimal.Decimal
	Amount decimal.Decimal
}

// AggregateItems sums weight, purity and amount across a bill's lines.
// Unpriced lines contribute zero to the amount.
func AggregateItems(items []LineItem) Totals {
	t := Totals{Weight: decimal.Zero, Purity: decimal.Zero, Amount: decimal.Zero}
	for _, it := range items {
		t.Weight = t.Weight.Add(it.Weight)
		t.Purity = t.Purity.Add(it.Purity)
		if it.GoldRate.IsPositive() {
			t.Amount = t.Amount.Add(CashFromPurity(it.Purity, it.GoldRate))
		}
	}
	return t
}

// StockLevel is a live snapshot of one coin-stock row, keyed by
// (coinType, gram).
type StockLevel struct {
	CoinType string
	Gram     decimal.Decimal
	Quantity int
}

// ValidateStock checks every line's requested quantity against the snapshot
// before any mutation happens. Quantities are aggregated per (coinType, gram)
// so two lines of the same coin cannot each pass individually and jointly
// overdraw the row.
func ValidateStock(items []LineItem, levels []StockLevel) error {
	type key struct {
		coinType string
		gram     string
	}

	available := make(map[key]int, len(levels))
	for _, l := range levels {
		available[key{l.CoinType, l.Gram.String()}] = l.Quantity
	}

	requested := make(map[key]int)
	for _, it := range items {
		requested[key{it.Percentage, it.CoinValue.String()}] += it.Quantity
	}

	for _, it := range items {
		k := key{it.Percentage, it.CoinValue.String()}
		want, ok := requested[k]
		if !ok {
			continue
		}
		if have := available[k]; want > have {
			return &InsufficientStockError{
				CoinType:  it.Percentage,
				Gram:      it.CoinValue,
				Requested: want,
				Available: have,
			}
		}
		delete(requested, k)
	}
	return nil
}
