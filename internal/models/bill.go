package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Bill struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	BillNo          string           `gorm:"size:50;unique;not null" json:"bill_no"`
	BillDate        time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"bill_date"`
	CustomerID      uint             `gorm:"index;not null" json:"customer_id"`
	Customer        Customer         `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	GoldRate        decimal.Decimal  `gorm:"type:decimal(12,2)" json:"gold_rate"`
	HallmarkCharges decimal.Decimal  `gorm:"type:decimal(12,2);default:0.00" json:"hallmark_charges"`
	HallmarkBalance decimal.Decimal  `gorm:"type:decimal(12,2);default:0.00" json:"hallmark_balance"`
	TotalWeight     decimal.Decimal  `gorm:"type:decimal(12,3);not null" json:"total_weight"`
	TotalPurity     decimal.Decimal  `gorm:"type:decimal(12,3);not null" json:"total_purity"`
	TotalAmount     decimal.Decimal  `gorm:"type:decimal(12,2)" json:"total_amount"`
	Items           []BillItem       `gorm:"foreignKey:BillID" json:"items"`
	ReceivedDetails []ReceivedDetail `gorm:"foreignKey:BillID" json:"received_details"`
	CreatedAt       time.Time        `json:"created_at"`
}

// BillItem is one coin line. Percentage is the touch-class label ("916",
// "999"); Touch is its numeric value used in the purity derivation.
type BillItem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	BillID     uint            `gorm:"index;not null" json:"bill_id"`
	CoinValue  decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"coin_value"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	Percentage string          `gorm:"size:10;not null" json:"percentage"`
	Touch      decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"touch"`
	Weight     decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"weight"`
	Purity     decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"purity"`
	GoldRate   decimal.Decimal `gorm:"type:decimal(12,2)" json:"gold_rate"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
}

// ReceivedDetail is one received-payment row of a bill. Mode 'weight' rows
// populate GivenGold/Touch/PurityWeight; mode 'amount' rows populate either
// Amount (received from the customer) or PaidAmount (paid back out).
type ReceivedDetail struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	BillID       uint            `gorm:"index;not null" json:"bill_id"`
	Date         time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"date"`
	Mode         string          `gorm:"type:enum('weight','amount');not null" json:"mode"`
	GoldRate     decimal.Decimal `gorm:"type:decimal(12,2)" json:"gold_rate"`
	GivenGold    decimal.Decimal `gorm:"type:decimal(12,3)" json:"given_gold"`
	Touch        decimal.Decimal `gorm:"type:decimal(5,2)" json:"touch"`
	PurityWeight decimal.Decimal `gorm:"type:decimal(12,3)" json:"purity_weight"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	PaidAmount   decimal.Decimal `gorm:"type:decimal(12,2)" json:"paid_amount"`
	Hallmark     decimal.Decimal `gorm:"type:decimal(12,2)" json:"hallmark"`
	CreatedAt    time.Time       `json:"created_at"`
}
