package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is a manual cash/gold ledger row kept outside any bill. Gold rows
// carry GoldValue+Touch, cash rows carry CashAmount+GoldRate; Purity is the
// derived fine-gold figure either way.
type Entry struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	Date       time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"date"`
	Type       string          `gorm:"type:enum('Cash','Gold');not null" json:"type"`
	CashAmount decimal.Decimal `gorm:"type:decimal(12,2)" json:"cash_amount"`
	GoldValue  decimal.Decimal `gorm:"type:decimal(12,3)" json:"gold_value"`
	Touch      decimal.Decimal `gorm:"type:decimal(5,2)" json:"touch"`
	GoldRate   decimal.Decimal `gorm:"type:decimal(12,2)" json:"gold_rate"`
	Purity     decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"purity"`
	Remarks    string          `gorm:"size:191" json:"remarks"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Expense spends fine gold out of one of the two pools: the cash/gold ledger
// or the customer-advance pot.
type Expense struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Date      time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"date"`
	ValueType string          `gorm:"type:enum('CashOrGold','Advance');not null" json:"value_type"`
	Purity    decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"purity"`
	Remarks   string          `gorm:"size:191" json:"remarks"`
	CreatedAt time.Time       `json:"created_at"`
}
