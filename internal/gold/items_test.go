package gold_test

import (
	"errors"
	"testing"

	"github.com/boobalan-mca23/jeevagold/internal/gold"
)

func TestComputeItem(t *testing.T) {
	it, err := gold.ComputeItem(gold.LineItem{
		CoinValue:  dec("8"),
		Quantity:   3,
		Percentage: "916",
		Touch:      dec("91.6"),
		GoldRate:   dec("6000"),
	})
	if err != nil {
		t.Fatalf("ComputeItem: %v", err)
	}
	if !it.Weight.Equal(dec("24.000")) {
		t.Errorf("weight = %s, want 24.000", it.Weight)
	}
	if !it.Purity.Equal(dec("21.984")) {
		t.Errorf("purity = %s, want 21.984", it.Purity)
	}
	if !it.Amount.Equal(dec("131904.00")) {
		t.Errorf("amount = %s, want 131904.00", it.Amount)
	}
}

func TestComputeItem_UnpricedLine(t *testing.T) {
	it, err := gold.ComputeItem(gold.LineItem{
		CoinValue: dec("1"),
		Quantity:  5,
		Touch:     dec("99.9"),
	})
	if err != nil {
		t.Fatalf("ComputeItem: %v", err)
	}
	if !it.Amount.IsZero() {
		t.Errorf("amount = %s, want 0 for unpriced line", it.Amount)
	}
	if !it.Purity.Equal(dec("4.995")) {
		t.Errorf("purity = %s, want 4.995", it.Purity)
	}
}

func TestComputeItem_NegativeQuantity(t *testing.T) {
	_, err := gold.ComputeItem(gold.LineItem{CoinValue: dec("8"), Quantity: -1, Touch: dec("91.6")})
	if !errors.Is(err, gold.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestAggregateItems(t *testing.T) {
	items := []gold.LineItem{
		{CoinValue: dec("8"), Quantity: 2, Percentage: "916", Touch: dec("91.6"), GoldRate: dec("6000")},
		{CoinValue: dec("1"), Quantity: 10, Percentage: "999", Touch: dec("99.9")}, // unpriced
	}
	for i := range items {
		var err error
		items[i], err = gold.ComputeItem(items[i])
		if err != nil {
			t.Fatalf("ComputeItem[%d]: %v", i, err)
		}
	}

	got := gold.AggregateItems(items)
	if !got.Weight.Equal(dec("26.000")) {
		t.Errorf("total weight = %s, want 26.000", got.Weight)
	}
	// 16*91.6/100 = 14.656, 10*99.9/100 = 9.990
	if !got.Purity.Equal(dec("24.646")) {
		t.Errorf("total purity = %s, want 24.646", got.Purity)
	}
	// Only the priced line contributes: 14.656 * 6000
	if !got.Amount.Equal(dec("87936.00")) {
		t.Errorf("total amount = %s, want 87936.00", got.Amount)
	}
}

func TestValidateStock(t *testing.T) {
	levels := []gold.StockLevel{
		{CoinType: "916", Gram: dec("8"), Quantity: 5},
		{CoinType: "999", Gram: dec("1"), Quantity: 2},
	}

	ok := []gold.LineItem{
		{Percentage: "916", CoinValue: dec("8"), Quantity: 3},
		{Percentage: "999", CoinValue: dec("1"), Quantity: 2},
	}
	if err := gold.ValidateStock(ok, levels); err != nil {
		t.Errorf("ValidateStock = %v, want nil", err)
	}

	short := []gold.LineItem{
		{Percentage: "999", CoinValue: dec("1"), Quantity: 3},
	}
	err := gold.ValidateStock(short, levels)
	if !errors.Is(err, gold.ErrInsufficientStock) {
		t.Fatalf("ValidateStock = %v, want ErrInsufficientStock", err)
	}
	var ise *gold.InsufficientStockError
	if !errors.As(err, &ise) {
		t.Fatalf("error is not *InsufficientStockError: %v", err)
	}
	if ise.Requested != 3 || ise.Available != 2 {
		t.Errorf("requested/available = %d/%d, want 3/2", ise.Requested, ise.Available)
	}
}

func TestValidateStock_AggregatesDuplicateLines(t *testing.T) {
	// Two lines of the same coin that individually fit but jointly overdraw.
	levels := []gold.StockLevel{{CoinType: "916", Gram: dec("8"), Quantity: 4}}
	items := []gold.LineItem{
		{Percentage: "916", CoinValue: dec("8"), Quantity: 3},
		{Percentage: "916", CoinValue: dec("8"), Quantity: 3},
	}
	err := gold.ValidateStock(items, levels)
	var ise *gold.InsufficientStockError
	if !errors.As(err, &ise) {
		t.Fatalf("ValidateStock = %v, want *InsufficientStockError", err)
	}
	if ise.Requested != 6 || ise.Available != 4 {
		t.Errorf("requested/available = %d/%d, want 6/4", ise.Requested, ise.Available)
	}
}

func TestValidateStock_UnknownCoin(t *testing.T) {
	items := []gold.LineItem{{Percentage: "750", CoinValue: dec("2"), Quantity: 1}}
	if err := gold.ValidateStock(items, nil); !errors.Is(err, gold.ErrInsufficientStock) {
		t.Errorf("ValidateStock = %v, want ErrInsufficientStock for unknown coin", err)
	}
}
