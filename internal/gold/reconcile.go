package gold

import (
	"time"

	"github.com/shopspring/decimal"
)

// Mode discriminates the two shapes of a received-payment row. Exactly one
// side of a row is populated: gold repaid by weight, or cash at a gold rate.
type Mode string

const (
	ModeWeight Mode = "weight"
	ModeAmount Mode = "amount"
)

// PaymentRow is one received-payment entry of a bill, in the order it was
// added. Amount is cash received from the customer; PaidAmount is cash the
// shop paid back out (a correcting row that raises what the customer owes).
type PaymentRow struct {
	Date         time.Time
	Mode         Mode
	GoldRate     decimal.Decimal
	GivenGold    decimal.Decimal
	Touch        decimal.Decimal
	PurityWeight decimal.Decimal
	Amount       decimal.Decimal
	PaidAmount   decimal.Decimal
	Hallmark     decimal.Decimal
}

// Policy holds the knobs the source left ambiguous. The default (zero value)
// matches observed behavior: hallmark overpayment is clamped to zero rather
// than carried as customer credit.
type Policy struct {
	CarryHallmarkCredit bool
}

// Balances is the engine's output for one bill.
type Balances struct {
	// PureBalance is fine-gold grams still owed by the customer; negative
	// means the shop owes the customer.
	PureBalance decimal.Decimal
	// HallmarkBalance is the currency still owed for making charges.
	HallmarkBalance decimal.Decimal
	// TotalCashBalance is the cash value of the remaining pure balance plus
	// the remaining hallmark balance, at the latest gold rate seen in the
	// rows (array order, not date order).
	TotalCashBalance decimal.Decimal
	// LatestGoldRate is the rate used for TotalCashBalance; zero when no row
	// carried one.
	LatestGoldRate decimal.Decimal
}

// RowEffect reports how one row moved the running balances. PureDelta is
// negative when the row reduced principal. Pending marks an amount row whose
// cash remainder could not convert to grams because no rate was set.
type RowEffect struct {
	PureDelta     decimal.Decimal
	HallmarkDelta decimal.Decimal
	Pending       bool
}

// Reconcile folds a bill's received-payment rows, strictly in the order
// given, into the three running figures. It is a pure function of its
// arguments and safe to re-run on every call.
//
// displayedTotal is the bill's own computed total, used as the cash-balance
// fallback when no row carries a gold rate.
func Reconcile(totalPurity, hallmarkCharges, displayedTotal decimal.Decimal, rows []PaymentRow, p Policy) Balances {
	b, _ := ReconcileEffects(totalPurity, hallmarkCharges, displayedTotal, rows, p)
	return b
}

// ReconcileEffects is Reconcile plus the per-row deltas, for callers that
// persist each row's purity contribution.
func ReconcileEffects(totalPurity, hallmarkCharges, displayedTotal decimal.Decimal, rows []PaymentRow, p Policy) (Balances, []RowEffect) {
	pure := totalPurity
	hallmark := hallmarkCharges
	effects := make([]RowEffect, len(rows))

	for i, row := range rows {
		switch {
		case row.Mode == ModeWeight && row.PurityWeight.IsPositive():
			// Direct gold repayment reduces principal only.
			pure = pure.Sub(row.PurityWeight)
			effects[i].PureDelta = row.PurityWeight.Neg()

		case row.Mode == ModeAmount && row.Amount.IsPositive():
			// Cash received pays outstanding hallmark first; the remainder
			// buys back gold principal at the row's rate.
			due := hallmark
			if due.IsNegative() {
				due = decimal.Zero
			}
			deduction := decimal.Min(row.Amount, due)
			hallmark = hallmark.Sub(deduction)
			effects[i].HallmarkDelta = deduction.Neg()

			remaining := row.Amount.Sub(deduction)
			if remaining.IsPositive() {
				grams, err := GoldEquivalent(remaining, row.GoldRate)
				if err != nil {
					// No rate yet: the conversion stays pending until a
					// later row supplies one.
					effects[i].Pending = true
					break
				}
				pure = pure.Sub(grams)
				effects[i].PureDelta = grams.Neg()
			}

		case row.Mode == ModeAmount && row.PaidAmount.IsPositive():
			// Shop paid the customer back: the inverse of the received case,
			// and hallmark is untouched.
			grams, err := GoldEquivalent(row.PaidAmount, row.GoldRate)
			if err != nil {
				effects[i].Pending = true
				break
			}
			pure = pure.Add(grams)
			effects[i].PureDelta = grams
		}
	}

	b := Balances{PureBalance: pure, HallmarkBalance: hallmark}
	if hallmark.IsNegative() && !p.CarryHallmarkCredit {
		b.HallmarkBalance = decimal.Zero
	}

	b.LatestGoldRate = latestGoldRate(rows)
	b.TotalCashBalance = totalCash(b, hallmarkCharges, displayedTotal)
	return b, effects
}

// latestGoldRate picks the last row in array order carrying a positive rate.
// Array order is deliberate: rows edited out of date order still value the
// balance at the most recently entered rate.
func latestGoldRate(rows []PaymentRow) decimal.Decimal {
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].GoldRate.IsPositive() {
			return rows[i].GoldRate
		}
	}
	return decimal.Zero
}

func totalCash(b Balances, hallmarkCharges, displayedTotal decimal.Decimal) decimal.Decimal {
	if b.LatestGoldRate.IsPositive() {
		cash := RoundWeight(b.PureBalance).Mul(b.LatestGoldRate)
		if b.PureBalance.IsPositive() || b.HallmarkBalance.IsPositive() {
			return cash.Add(b.HallmarkBalance)
		}
		return cash
	}
	if displayedTotal.IsPositive() {
		return displayedTotal.Add(hallmarkCharges)
	}
	if hallmarkCharges.IsPositive() {
		return hallmarkCharges
	}
	return decimal.Zero
}
