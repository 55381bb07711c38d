package printer_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/boobalan-mca23/jeevagold/internal/gold"
	"github.com/boobalan-mca23/jeevagold/internal/models"
	"github.com/boobalan-mca23/jeevagold/internal/printer"
)

func TestBillPDF(t *testing.T) {
	bill := models.Bill{
		BillNo:          "BILL-1",
		BillDate:        time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
		Customer:        models.Customer{Name: "Test Customer"},
		HallmarkCharges: decimal.RequireFromString("500"),
		TotalWeight:     decimal.RequireFromString("10.917"),
		TotalPurity:     decimal.RequireFromString("10.000"),
		TotalAmount:     decimal.RequireFromString("60000.00"),
		Items: []models.BillItem{
			{
				CoinValue:  decimal.RequireFromString("8"),
				Quantity:   1,
				Percentage: "916",
				Touch:      decimal.RequireFromString("91.6"),
				Weight:     decimal.RequireFromString("8.000"),
				Purity:     decimal.RequireFromString("7.328"),
				Amount:     decimal.RequireFromString("43968.00"),
			},
		},
		ReceivedDetails: []models.ReceivedDetail{
			{
				Date:     time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC),
				Mode:     "amount",
				GoldRate: decimal.RequireFromString("6000"),
				Amount:   decimal.RequireFromString("1200"),
			},
		},
	}

	bal := gold.Reconcile(bill.TotalPurity, bill.HallmarkCharges, bill.TotalAmount,
		[]gold.PaymentRow{{Mode: gold.ModeAmount, Amount: decimal.RequireFromString("1200"), GoldRate: decimal.RequireFromString("6000")}},
		gold.Policy{})

	pdf, err := printer.BillPDF(models.ShopInfo{Name: "Test Jewellers", Phone: "0000000000"}, bill, bal)
	if err != nil {
		t.Fatalf("BillPDF: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("empty PDF output")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output does not start with PDF magic: %q", pdf[:8])
	}
}
