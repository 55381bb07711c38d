package gold

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// BillSummary is the slice of a bill the report aggregator needs: its totals
// plus the received-payment rows, already in persisted order.
type BillSummary struct {
	ID              uint
	CustomerID      uint
	Date            time.Time
	TotalWeight     decimal.Decimal
	TotalPurity     decimal.Decimal
	TotalAmount     decimal.Decimal
	HallmarkCharges decimal.Decimal
	Rows            []PaymentRow
}

// AdvanceRow is a customer advance ledger transaction.
type AdvanceRow struct {
	CustomerID uint
	Date       time.Time
	Type       string // "Cash" or "Gold"
	Value      decimal.Decimal
	Purity     decimal.Decimal
	GoldRate   decimal.Decimal
}

// BillBalance is a customer report line: one bill's pure balance and how
// much of the customer's advance pot it consumed.
type BillBalance struct {
	BillID           uint
	Balance          decimal.Decimal
	AdvanceUsed      decimal.Decimal
	RemainingAdvance decimal.Decimal
	// Net is the customer-facing figure after advance offset; never
	// negative, zero when the shop is the one owing.
	Net decimal.Decimal
}

// CustomerBillBalances walks one customer's bills in date order, letting
// advances dated on or before each bill accumulate into a pot that earlier
// bills consume first. A bill with a positive balance draws the pot down
// by min(pot, balance); a negative balance (shop owes) draws by
// min(pot, excess).
func CustomerBillBalances(bills []BillSummary, advances []AdvanceRow, p Policy) []BillBalance {
	ordered := make([]BillSummary, len(bills))
	copy(ordered, bills)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].Date.Before(ordered[j].Date)
	})

	pending := make([]AdvanceRow, len(advances))
	copy(pending, advances)
	sort.SliceStable(pending, func(i, j int) bool { return pending[i].Date.Before(pending[j].Date) })

	pot := decimal.Zero
	next := 0

	out := make([]BillBalance, 0, len(ordered))
	for _, b := range ordered {
		for next < len(pending) && !pending[next].Date.After(b.Date) {
			pot = pot.Add(advancePurity(pending[next]))
			next++
		}

		balance := Reconcile(b.TotalPurity, b.HallmarkCharges, b.TotalAmount, b.Rows, p).PureBalance

		used := decimal.Zero
		if balance.IsPositive() {
			used = decimal.Min(pot, balance)
		} else if balance.IsNegative() {
			used = decimal.Min(pot, balance.Abs())
		}
		if used.IsNegative() {
			used = decimal.Zero
		}
		pot = pot.Sub(used)

		net := decimal.Zero
		if balance.IsPositive() {
			net = balance.Sub(used)
		}

		out = append(out, BillBalance{
			BillID:           b.ID,
			Balance:          balance,
			AdvanceUsed:      used,
			RemainingAdvance: pot,
			Net:              net,
		})
	}
	return out
}

// Summary is the daily/overall sales rollup across a set of bills.
type Summary struct {
	Bills               int
	TotalWeight         decimal.Decimal
	TotalPurity         decimal.Decimal
	TotalAmount         decimal.Decimal
	CustomerOwedPure    decimal.Decimal
	OwnerOwedPure       decimal.Decimal
	OutstandingHallmark decimal.Decimal
	TotalCashBalance    decimal.Decimal
}

// Summarize folds the reconciliation output of each bill into shop-level
// totals. Customer-owed (positive) and owner-owed (negative) pure balances
// are summed separately; the positive test uses the 3-decimal rounded figure
// so sub-milligram residue does not flip a settled bill back to "owed".
func Summarize(bills []BillSummary, p Policy) Summary {
	s := Summary{
		TotalWeight:         decimal.Zero,
		TotalPurity:         decimal.Zero,
		TotalAmount:         decimal.Zero,
		CustomerOwedPure:    decimal.Zero,
		OwnerOwedPure:       decimal.Zero,
		OutstandingHallmark: decimal.Zero,
		TotalCashBalance:    decimal.Zero,
	}
	for _, b := range bills {
		s.Bills++
		s.TotalWeight = s.TotalWeight.Add(b.TotalWeight)
		s.TotalPurity = s.TotalPurity.Add(b.TotalPurity)
		s.TotalAmount = s.TotalAmount.Add(b.TotalAmount)

		bal := Reconcile(b.TotalPurity, b.HallmarkCharges, b.TotalAmount, b.Rows, p)
		pure := RoundWeight(bal.PureBalance)
		if pure.IsPositive() {
			s.CustomerOwedPure = s.CustomerOwedPure.Add(bal.PureBalance)
		} else if pure.IsNegative() {
			s.OwnerOwedPure = s.OwnerOwedPure.Add(bal.PureBalance.Abs())
		}
		s.OutstandingHallmark = s.OutstandingHallmark.Add(bal.HallmarkBalance)
		s.TotalCashBalance = s.TotalCashBalance.Add(bal.TotalCashBalance)
	}
	return s
}

// AdvanceTotal sums the purity of advance transactions. A Cash row without a
// stored purity derives it from value and gold rate; with neither, the row
// contributes nothing.
func AdvanceTotal(advances []AdvanceRow) decimal.Decimal {
	total := decimal.Zero
	for _, a := range advances {
		total = total.Add(advancePurity(a))
	}
	return total
}

func advancePurity(a AdvanceRow) decimal.Decimal {
	if a.Purity.IsPositive() {
		return a.Purity
	}
	if a.Type == "Cash" && a.Value.IsPositive() && a.GoldRate.IsPositive() {
		grams, err := GoldEquivalent(a.Value, a.GoldRate)
		if err == nil {
			return grams
		}
	}
	return decimal.Zero
}

// OverallReport is the whole-shop valuation, all figures in fine-gold grams.
type OverallReport struct {
	CustomerBalance     decimal.Decimal
	ManualEntriesPurity decimal.Decimal
	ReceivedPurity      decimal.Decimal
	CashGoldPurity      decimal.Decimal // entries + received, net of CashOrGold expenses
	CoinStockPurity     decimal.Decimal
	JewelStockPurity    decimal.Decimal
	AdvancePurity       decimal.Decimal // advances net of Advance expenses
	OverallValue        decimal.Decimal
}

// ComputeOverall rolls the shop's position into one figure:
// customer balance + adjusted cash/gold purity + coin stock + jewel stock
// − adjusted advances.
func ComputeOverall(bills []BillSummary, manualEntriesPurity, coinStockPurity, jewelStockPurity decimal.Decimal,
	advances []AdvanceRow, expenseCashGold, expenseAdvance decimal.Decimal, p Policy) OverallReport {

	customerBalance := decimal.Zero
	received := decimal.Zero
	for _, b := range bills {
		bal, effects := ReconcileEffects(b.TotalPurity, b.HallmarkCharges, b.TotalAmount, b.Rows, p)
		if RoundWeight(bal.PureBalance).IsPositive() {
			customerBalance = customerBalance.Add(bal.PureBalance)
		}
		for _, e := range effects {
			received = received.Sub(e.PureDelta)
		}
	}

	r := OverallReport{
		CustomerBalance:     customerBalance,
		ManualEntriesPurity: manualEntriesPurity,
		ReceivedPurity:      received,
		CashGoldPurity:      manualEntriesPurity.Add(received).Sub(expenseCashGold),
		CoinStockPurity:     coinStockPurity,
		JewelStockPurity:    jewelStockPurity,
		AdvancePurity:       AdvanceTotal(advances).Sub(expenseAdvance),
	}
	r.OverallValue = r.CustomerBalance.
		Add(r.CashGoldPurity).
		Add(r.CoinStockPurity).
		Add(r.JewelStockPurity).
		Sub(r.AdvancePurity)
	return r
}
