package handler

import (
	"gorm.io/gorm"

	"github.com/boobalan-mca23/jeevagold/internal/gold"
	"github.com/boobalan-mca23/jeevagold/internal/models"
)

// paymentRows maps persisted received-payment rows into the calculation
// shape, preserving their stored order.
func paymentRows(details []models.ReceivedDetail) []gold.PaymentRow {
	rows := make([]gold.PaymentRow, len(details))
	for i, d := range details {
		rows[i] = gold.PaymentRow{
			Date:         d.Date,
			Mode:         gold.Mode(d.Mode),
			GoldRate:     d.GoldRate,
			GivenGold:    d.GivenGold,
			Touch:        d.Touch,
			PurityWeight: d.PurityWeight,
			Amount:       d.Amount,
			PaidAmount:   d.PaidAmount,
			Hallmark:     d.Hallmark,
		}
	}
	return rows
}

func billSummary(b models.Bill) gold.BillSummary {
	return gold.BillSummary{
		ID:              b.ID,
		CustomerID:      b.CustomerID,
		Date:            b.BillDate,
		TotalWeight:     b.TotalWeight,
		TotalPurity:     b.TotalPurity,
		TotalAmount:     b.TotalAmount,
		HallmarkCharges: b.HallmarkCharges,
		Rows:            paymentRows(b.ReceivedDetails),
	}
}

// loadBillSummaries fetches bills with their payment rows in persisted
// order. The optional scope narrows the query (customer, date range).
func loadBillSummaries(db *gorm.DB, scope func(*gorm.DB) *gorm.DB) ([]gold.BillSummary, error) {
	query := db.Preload("ReceivedDetails", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("id asc")
	})
	if scope != nil {
		query = scope(query)
	}

	var bills []models.Bill
	if err := query.Find(&bills).Error; err != nil {
		return nil, err
	}

	out := make([]gold.BillSummary, len(bills))
	for i, b := range bills {
		out[i] = billSummary(b)
	}
	return out, nil
}

func advanceRows(txns []models.Transaction) []gold.AdvanceRow {
	rows := make([]gold.AdvanceRow, len(txns))
	for i, t := range txns {
		rows[i] = gold.AdvanceRow{
			CustomerID: t.CustomerID,
			Date:       t.Date,
			Type:       t.Type,
			Value:      t.Value,
			Purity:     t.Purity,
			GoldRate:   t.GoldRate,
		}
	}
	return rows
}
