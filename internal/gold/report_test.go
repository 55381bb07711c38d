package gold_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/boobalan-mca23/jeevagold/internal/gold"
)

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestCustomerBillBalances_AdvancePot(t *testing.T) {
	bills := []gold.BillSummary{
		{ID: 2, CustomerID: 1, Date: day(10), TotalPurity: dec("3.000")},
		{ID: 1, CustomerID: 1, Date: day(5), TotalPurity: dec("4.000")},
	}
	advances := []gold.AdvanceRow{
		{CustomerID: 1, Date: day(1), Type: "Gold", Purity: dec("5.000")},
		{CustomerID: 1, Date: day(8), Type: "Cash", Value: dec("6000"), GoldRate: dec("6000")},
	}

	out := gold.CustomerBillBalances(bills, advances, gold.Policy{})
	if len(out) != 2 {
		t.Fatalf("got %d balances, want 2", len(out))
	}

	// Bills are walked in date order: bill 1 first, consuming the day-1
	// advance of 5g -- 4g used, 1g left in the pot.
	if out[0].BillID != 1 {
		t.Fatalf("first balance is bill %d, want 1", out[0].BillID)
	}
	if !out[0].AdvanceUsed.Equal(dec("4.000")) {
		t.Errorf("bill 1 advance used = %s, want 4.000", out[0].AdvanceUsed)
	}
	if !out[0].Net.IsZero() {
		t.Errorf("bill 1 net = %s, want 0", out[0].Net)
	}

	// Bill 2 sees the leftover 1g plus the day-8 cash advance (1g).
	if out[1].BillID != 2 {
		t.Fatalf("second balance is bill %d, want 2", out[1].BillID)
	}
	if !out[1].AdvanceUsed.Equal(dec("2.000")) {
		t.Errorf("bill 2 advance used = %s, want 2.000", out[1].AdvanceUsed)
	}
	if !out[1].Net.Equal(dec("1.000")) {
		t.Errorf("bill 2 net = %s, want 1.000", out[1].Net)
	}
	if !out[1].RemainingAdvance.IsZero() {
		t.Errorf("remaining advance = %s, want 0", out[1].RemainingAdvance)
	}
}

func TestCustomerBillBalances_LaterAdvanceNotVisibleEarlier(t *testing.T) {
	bills := []gold.BillSummary{
		{ID: 1, CustomerID: 1, Date: day(5), TotalPurity: dec("2.000")},
	}
	advances := []gold.AdvanceRow{
		{CustomerID: 1, Date: day(9), Type: "Gold", Purity: dec("2.000")},
	}
	out := gold.CustomerBillBalances(bills, advances, gold.Policy{})
	if !out[0].AdvanceUsed.IsZero() {
		t.Errorf("advance used = %s, want 0 for advance dated after the bill", out[0].AdvanceUsed)
	}
	if !out[0].Net.Equal(dec("2.000")) {
		t.Errorf("net = %s, want 2.000", out[0].Net)
	}
}

func TestSummarize(t *testing.T) {
	bills := []gold.BillSummary{
		{
			ID: 1, Date: day(3),
			TotalWeight: dec("10.917"), TotalPurity: dec("10.000"),
			TotalAmount: dec("60000.00"), HallmarkCharges: dec("500"),
			Rows: []gold.PaymentRow{
				{Mode: gold.ModeAmount, Amount: dec("1200"), GoldRate: dec("6000")},
			},
		},
		{
			ID: 2, Date: day(4),
			TotalWeight: dec("2.000"), TotalPurity: dec("1.832"),
			Rows: []gold.PaymentRow{
				{Mode: gold.ModeWeight, PurityWeight: dec("2.000")},
			},
		},
	}

	s := gold.Summarize(bills, gold.Policy{})
	if s.Bills != 2 {
		t.Errorf("bills = %d, want 2", s.Bills)
	}
	if !s.TotalPurity.Equal(dec("11.832")) {
		t.Errorf("total purity = %s, want 11.832", s.TotalPurity)
	}
	// Bill 1 still owes ~9.8833g; bill 2 is overpaid by 0.168g.
	if got := gold.RoundWeight(s.CustomerOwedPure); !got.Equal(dec("9.883")) {
		t.Errorf("customer owed = %s, want 9.883", got)
	}
	if !s.OwnerOwedPure.Equal(dec("0.168")) {
		t.Errorf("owner owed = %s, want 0.168", s.OwnerOwedPure)
	}
	if !s.OutstandingHallmark.IsZero() {
		t.Errorf("outstanding hallmark = %s, want 0", s.OutstandingHallmark)
	}
}

func TestSummarize_RoundedResidueNotOwed(t *testing.T) {
	// A bill settled to within a fraction of a milligram must not count as
	// customer-owed.
	bills := []gold.BillSummary{
		{
			ID: 1, Date: day(1), TotalPurity: dec("1.0004"),
			Rows: []gold.PaymentRow{
				{Mode: gold.ModeWeight, PurityWeight: dec("1.000")},
			},
		},
	}
	s := gold.Summarize(bills, gold.Policy{})
	if !s.CustomerOwedPure.IsZero() {
		t.Errorf("customer owed = %s, want 0 for sub-milligram residue", s.CustomerOwedPure)
	}
}

func TestAdvanceTotal(t *testing.T) {
	advances := []gold.AdvanceRow{
		{Type: "Gold", Purity: dec("2.500")},
		{Type: "Cash", Value: dec("12000"), GoldRate: dec("6000")},
		{Type: "Cash", Value: dec("500")}, // no rate, contributes nothing
	}
	got := gold.AdvanceTotal(advances)
	if !got.Equal(dec("4.5")) {
		t.Errorf("advance total = %s, want 4.5", got)
	}
}

func TestComputeOverall(t *testing.T) {
	// Customer balance 12g, manual entries 8g, coin stock 20g, jewel 5g,
	// advances 3g: overall 12 + 8 + 20 + 5 - 3 = 42g.
	bills := []gold.BillSummary{
		{ID: 1, Date: day(2), TotalPurity: dec("12.000")},
	}
	advances := []gold.AdvanceRow{{Type: "Gold", Purity: dec("3.000")}}

	r := gold.ComputeOverall(bills, dec("8.000"), dec("20.000"), dec("5.000"),
		advances, decimal.Zero, decimal.Zero, gold.Policy{})

	if !r.CustomerBalance.Equal(dec("12.000")) {
		t.Errorf("customer balance = %s, want 12.000", r.CustomerBalance)
	}
	if !r.OverallValue.Equal(dec("42.000")) {
		t.Errorf("overall value = %s, want 42.000", r.OverallValue)
	}
}

func TestComputeOverall_ReceivedAndExpenses(t *testing.T) {
	bills := []gold.BillSummary{
		{
			ID: 1, Date: day(2), TotalPurity: dec("10.000"),
			Rows: []gold.PaymentRow{
				{Mode: gold.ModeWeight, PurityWeight: dec("4.000")},
			},
		},
	}
	r := gold.ComputeOverall(bills, dec("1.000"), decimal.Zero, decimal.Zero,
		nil, dec("0.500"), decimal.Zero, gold.Policy{})

	if !r.ReceivedPurity.Equal(dec("4.000")) {
		t.Errorf("received purity = %s, want 4.000", r.ReceivedPurity)
	}
	// entries 1 + received 4 - cash/gold expenses 0.5
	if !r.CashGoldPurity.Equal(dec("4.500")) {
		t.Errorf("cash/gold purity = %s, want 4.500", r.CashGoldPurity)
	}
	// balance 6 + cashgold 4.5
	if !r.OverallValue.Equal(dec("10.500")) {
		t.Errorf("overall value = %s, want 10.500", r.OverallValue)
	}
}
