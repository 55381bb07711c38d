package printer

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/boobalan-mca23/jeevagold/internal/gold"
	"github.com/boobalan-mca23/jeevagold/internal/models"
)

// BillPDF renders a bill with its line items, payment history and running
// balances as an A4 PDF.
func BillPDF(shop models.ShopInfo, bill models.Bill, bal gold.Balances) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Shop header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, shop.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	if shop.Address != "" {
		pdf.CellFormat(190, 5, shop.Address, "", 1, "C", false, 0, "")
	}
	if shop.Phone != "" {
		pdf.CellFormat(190, 5, fmt.Sprintf("Phone: %s", shop.Phone), "", 1, "C", false, 0, "")
	}
	if shop.GSTIN != "" {
		pdf.CellFormat(190, 5, fmt.Sprintf("GSTIN: %s", shop.GSTIN), "", 1, "C", false, 0, "")
	}
	pdf.Ln(3)

	// Bill info
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, fmt.Sprintf("Bill %s", bill.BillNo), "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Customer: %s", bill.Customer.Name), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Date: %s", bill.BillDate.Format("02-Jan-2006")), "RB", 1, "L", false, 0, "")

	// Items
	pdf.Ln(3)
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(30, 7, "Coin", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Touch", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Weight (g)", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Purity (g)", "1", 0, "C", true, 0, "")
	pdf.CellFormat(45, 7, "Amount", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, it := range bill.Items {
		pdf.CellFormat(30, 6, fmt.Sprintf("%sg %s", it.CoinValue, it.Percentage), "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", it.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, it.Touch.String(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, it.Weight.StringFixed(3), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, it.Purity.StringFixed(3), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, fmt.Sprintf("Rs. %s", it.Amount.StringFixed(2)), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(75, 7, "Total", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, bill.TotalWeight.StringFixed(3), "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, bill.TotalPurity.StringFixed(3), "1", 0, "R", true, 0, "")
	pdf.CellFormat(45, 7, fmt.Sprintf("Rs. %s", bill.TotalAmount.StringFixed(2)), "1", 1, "R", true, 0, "")

	if bill.HallmarkCharges.IsPositive() {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(145, 6, "Hallmark charges", "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, fmt.Sprintf("Rs. %s", bill.HallmarkCharges.StringFixed(2)), "1", 1, "R", false, 0, "")
	}

	// Payment history
	if len(bill.ReceivedDetails) > 0 {
		pdf.Ln(5)
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(190, 8, "Payments Received", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(35, 7, "Date", "1", 0, "C", true, 0, "")
		pdf.CellFormat(25, 7, "Mode", "1", 0, "C", true, 0, "")
		pdf.CellFormat(35, 7, "Rate", "1", 0, "C", true, 0, "")
		pdf.CellFormat(35, 7, "Purity (g)", "1", 0, "C", true, 0, "")
		pdf.CellFormat(60, 7, "Amount", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, d := range bill.ReceivedDetails {
			amount := d.Amount
			if d.PaidAmount.IsPositive() {
				amount = d.PaidAmount.Neg()
			}
			pdf.CellFormat(35, 6, d.Date.Format("02-Jan-2006"), "1", 0, "C", false, 0, "")
			pdf.CellFormat(25, 6, d.Mode, "1", 0, "C", false, 0, "")
			pdf.CellFormat(35, 6, d.GoldRate.StringFixed(2), "1", 0, "R", false, 0, "")
			pdf.CellFormat(35, 6, d.PurityWeight.StringFixed(3), "1", 0, "R", false, 0, "")
			pdf.CellFormat(60, 6, fmt.Sprintf("Rs. %s", amount.StringFixed(2)), "1", 1, "R", false, 0, "")
		}
	}

	// Balances
	pdf.Ln(5)
	pdf.SetFont("Arial", "B", 14)
	balanceText := fmt.Sprintf("Balance: %s g pure | Hallmark due: Rs. %s",
		gold.RoundWeight(bal.PureBalance).StringFixed(3), bal.HallmarkBalance.StringFixed(2))
	if !gold.RoundWeight(bal.PureBalance).IsPositive() && !bal.HallmarkBalance.IsPositive() {
		balanceText = "FULLY SETTLED"
	}
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(190, 10, balanceText, "1", 1, "C", true, 0, "")

	if bal.LatestGoldRate.IsPositive() {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(190, 6, fmt.Sprintf("Cash value at Rs. %s/g: Rs. %s",
			bal.LatestGoldRate.StringFixed(2), bal.TotalCashBalance.StringFixed(2)), "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
