package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Phone     string    `gorm:"size:15" json:"phone"`
	Address   string    `gorm:"type:text" json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// Transaction is a customer advance: gold or cash deposited against future
// bills. Touch is set for Gold rows, GoldRate for Cash rows.
type Transaction struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	CustomerID uint            `gorm:"index;not null" json:"customer_id"`
	Customer   Customer        `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Date       time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"date"`
	Type       string          `gorm:"type:enum('Cash','Gold');not null" json:"type"`
	Value      decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"value"` // grams for Gold, currency for Cash
	Touch      decimal.Decimal `gorm:"type:decimal(5,2)" json:"touch"`
	GoldRate   decimal.Decimal `gorm:"type:decimal(12,2)" json:"gold_rate"`
	Purity     decimal.Decimal `gorm:"type:decimal(12,3)" json:"purity"`
	CreatedAt  time.Time       `json:"created_at"`
}
