package gold_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/boobalan-mca23/jeevagold/internal/gold"
)

func reconcile(totalPurity, hallmark string, rows []gold.PaymentRow) gold.Balances {
	return gold.Reconcile(dec(totalPurity), dec(hallmark), decimal.Zero, rows, gold.Policy{})
}

func TestReconcile_CashPaysHallmarkFirst(t *testing.T) {
	// 10g bill, 500 hallmark, one cash receipt of 1200 at rate 6000:
	// 500 clears hallmark, the remaining 700 buys back 700/6000 grams.
	rows := []gold.PaymentRow{
		{Mode: gold.ModeAmount, Amount: dec("1200"), GoldRate: dec("6000")},
	}
	b := reconcile("10.000", "500", rows)

	if !b.HallmarkBalance.IsZero() {
		t.Errorf("hallmark balance = %s, want 0", b.HallmarkBalance)
	}
	if got := gold.RoundWeight(b.PureBalance); !got.Equal(dec("9.883")) {
		t.Errorf("pure balance = %s, want 9.883", got)
	}
}

func TestReconcile_FullWeightRepayment(t *testing.T) {
	rows := []gold.PaymentRow{
		{Mode: gold.ModeWeight, GivenGold: dec("5.459"), Touch: dec("91.6"), PurityWeight: dec("5.000")},
	}
	b := reconcile("5.000", "0", rows)

	if !b.PureBalance.IsZero() {
		t.Errorf("pure balance = %s, want 0", b.PureBalance)
	}
	if !b.HallmarkBalance.IsZero() {
		t.Errorf("hallmark balance = %s, want 0", b.HallmarkBalance)
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	rows := []gold.PaymentRow{
		{Mode: gold.ModeAmount, Amount: dec("1200"), GoldRate: dec("6000")},
		{Mode: gold.ModeWeight, PurityWeight: dec("2.000")},
		{Mode: gold.ModeAmount, PaidAmount: dec("300"), GoldRate: dec("6100")},
	}
	first := reconcile("10.000", "500", rows)
	second := reconcile("10.000", "500", rows)

	if !first.PureBalance.Equal(second.PureBalance) ||
		!first.HallmarkBalance.Equal(second.HallmarkBalance) ||
		!first.TotalCashBalance.Equal(second.TotalCashBalance) {
		t.Errorf("reconcile not idempotent: %+v vs %+v", first, second)
	}
}

func TestReconcile_CashBelowHallmarkDue(t *testing.T) {
	cashFirst := []gold.PaymentRow{
		{Mode: gold.ModeAmount, Amount: dec("500"), GoldRate: dec("5000")},
		{Mode: gold.ModeWeight, PurityWeight: dec("2.000")},
	}
	weightFirst := []gold.PaymentRow{
		{Mode: gold.ModeWeight, PurityWeight: dec("2.000")},
		{Mode: gold.ModeAmount, Amount: dec("500"), GoldRate: dec("5000")},
	}

	// Cash smaller than the hallmark due never converts to grams, so both
	// orders leave 300 of hallmark outstanding.
	a := reconcile("10.000", "800", cashFirst)
	b := reconcile("10.000", "800", weightFirst)

	if !a.HallmarkBalance.Equal(dec("300")) || !b.HallmarkBalance.Equal(dec("300")) {
		t.Fatalf("hallmark balances = %s, %s, want 300 each", a.HallmarkBalance, b.HallmarkBalance)
	}

	// With the amount above the hallmark due, the remainder converts at that
	// row's position. The fold is linear so both orders land on the same
	// final balance here.
	cashFirst[0].Amount = dec("1300")
	weightFirst[1].Amount = dec("1300")
	a = reconcile("10.000", "800", cashFirst)
	b = reconcile("10.000", "800", weightFirst)
	if !gold.RoundWeight(a.PureBalance).Equal(dec("7.900")) {
		t.Errorf("cash-first pure balance = %s, want 7.900", gold.RoundWeight(a.PureBalance))
	}
	if !gold.RoundWeight(b.PureBalance).Equal(dec("7.900")) {
		t.Errorf("weight-first pure balance = %s, want 7.900", gold.RoundWeight(b.PureBalance))
	}
}

func TestReconcile_OrderChangesHallmarkSplit(t *testing.T) {
	// Two cash rows against hallmark 600: the first row in array order
	// absorbs the hallmark due, so swapping them moves which payment's cash
	// converts to grams.
	r1 := gold.PaymentRow{Mode: gold.ModeAmount, Amount: dec("500"), GoldRate: dec("5000")}
	r2 := gold.PaymentRow{Mode: gold.ModeAmount, Amount: dec("1000"), GoldRate: dec("4000")}

	a := reconcile("10.000", "600", []gold.PaymentRow{r1, r2})
	b := reconcile("10.000", "600", []gold.PaymentRow{r2, r1})

	// a: r1 clears 500 hallmark, r2 clears 100 then converts 900/4000 = 0.225
	// b: r2 clears 600, converts 400/4000 = 0.1, r1 converts 500/5000 = 0.1
	if got := gold.RoundWeight(a.PureBalance); !got.Equal(dec("9.775")) {
		t.Errorf("order a pure balance = %s, want 9.775", got)
	}
	if got := gold.RoundWeight(b.PureBalance); !got.Equal(dec("9.800")) {
		t.Errorf("order b pure balance = %s, want 9.800", got)
	}
}

func TestReconcile_PaidAmountIncreasesBalance(t *testing.T) {
	rows := []gold.PaymentRow{
		{Mode: gold.ModeWeight, PurityWeight: dec("10.000")},
		{Mode: gold.ModeAmount, PaidAmount: dec("600"), GoldRate: dec("6000")},
	}
	b := reconcile("10.000", "200", rows)

	// Refund of 600 at 6000 adds 0.1g back; hallmark untouched by paid rows.
	if got := gold.RoundWeight(b.PureBalance); !got.Equal(dec("0.100")) {
		t.Errorf("pure balance = %s, want 0.100", got)
	}
	if !b.HallmarkBalance.Equal(dec("200")) {
		t.Errorf("hallmark balance = %s, want 200", b.HallmarkBalance)
	}
}

func TestReconcile_ZeroRateConversionSkipped(t *testing.T) {
	rows := []gold.PaymentRow{
		{Mode: gold.ModeAmount, Amount: dec("1000")}, // no rate yet
	}
	b, effects := gold.ReconcileEffects(dec("10.000"), dec("300"), decimal.Zero, rows, gold.Policy{})

	// Hallmark portion still applies; the cash remainder stays pending.
	if !b.HallmarkBalance.IsZero() {
		t.Errorf("hallmark balance = %s, want 0", b.HallmarkBalance)
	}
	if !b.PureBalance.Equal(dec("10.000")) {
		t.Errorf("pure balance = %s, want untouched 10.000", b.PureBalance)
	}
	if !effects[0].Pending {
		t.Error("expected pending effect for rate-less amount row")
	}
}

func TestReconcile_HallmarkNeverNegativeByDefault(t *testing.T) {
	rows := []gold.PaymentRow{
		{Mode: gold.ModeAmount, Amount: dec("900"), GoldRate: dec("6000")},
	}
	b := reconcile("0.000", "500", rows)
	if !b.HallmarkBalance.IsZero() {
		t.Errorf("hallmark balance = %s, want clamped 0", b.HallmarkBalance)
	}
}

func TestReconcile_CarryHallmarkCredit(t *testing.T) {
	// With the credit policy on, hallmark overpayment stays visible as a
	// negative balance instead of being discarded.
	rows := []gold.PaymentRow{
		{Mode: gold.ModeAmount, Amount: dec("500")},
		{Mode: gold.ModeAmount, Amount: dec("200")},
	}
	b := gold.Reconcile(dec("5.000"), dec("400"), decimal.Zero, rows, gold.Policy{CarryHallmarkCredit: true})

	// First row clears 400 hallmark, 100 pending; second row has no due
	// left, 200 pending. No negative hallmark arises from received cash.
	if !b.HallmarkBalance.IsZero() {
		t.Errorf("hallmark balance = %s, want 0", b.HallmarkBalance)
	}
}

func TestReconcile_TotalCashValuation(t *testing.T) {
	tests := []struct {
		name           string
		totalPurity    string
		hallmark       string
		displayedTotal string
		rows           []gold.PaymentRow
		want           string
	}{
		{
			name:        "last rated row wins in array order",
			totalPurity: "2.000",
			hallmark:    "0",
			rows: []gold.PaymentRow{
				{Mode: gold.ModeAmount, Amount: dec("1000"), GoldRate: dec("5000")},
				{Mode: gold.ModeWeight, PurityWeight: dec("0.5")},
				{Mode: gold.ModeAmount, Amount: dec("600"), GoldRate: dec("6000")},
			},
			// pure = 2 - 0.2 - 0.5 - 0.1 = 1.2, valued at 6000
			want: "7200",
		},
		{
			name:        "hallmark added once when positive",
			totalPurity: "1.000",
			hallmark:    "250",
			rows: []gold.PaymentRow{
				{Mode: gold.ModeWeight, PurityWeight: dec("0.4"), GoldRate: decimal.Zero},
				{Mode: gold.ModeAmount, Amount: dec("100"), GoldRate: dec("5000")},
			},
			// hallmark 250-100=150; pure = 0.6; 0.6*5000 + 150
			want: "3150",
		},
		{
			name:        "negative balance valued without hallmark",
			totalPurity: "1.000",
			hallmark:    "0",
			rows: []gold.PaymentRow{
				{Mode: gold.ModeWeight, PurityWeight: dec("1.5")},
				{Mode: gold.ModeAmount, Amount: dec("0"), GoldRate: dec("4000")},
			},
			want: "-2000",
		},
		{
			name:           "no rated row falls back to displayed total plus hallmark",
			totalPurity:    "3.000",
			hallmark:       "400",
			displayedTotal: "18000",
			rows: []gold.PaymentRow{
				{Mode: gold.ModeWeight, PurityWeight: dec("1.0")},
			},
			want: "18400",
		},
		{
			name:        "no rated row and no displayed total leaves hallmark",
			totalPurity: "3.000",
			hallmark:    "400",
			rows:        nil,
			want:        "400",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			displayed := decimal.Zero
			if tt.displayedTotal != "" {
				displayed = dec(tt.displayedTotal)
			}
			b := gold.Reconcile(dec(tt.totalPurity), dec(tt.hallmark), displayed, tt.rows, gold.Policy{})
			if !b.TotalCashBalance.Equal(dec(tt.want)) {
				t.Errorf("total cash balance = %s, want %s", b.TotalCashBalance, tt.want)
			}
		})
	}
}
