package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CoinStock is one coin bucket, identified by (coin_type, gram). TotalWeight
// and Purity are derived columns kept in sync with Quantity.
type CoinStock struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CoinType    string          `gorm:"size:10;not null;uniqueIndex:idx_coin_gram" json:"coin_type"`
	Gram        decimal.Decimal `gorm:"type:decimal(12,3);not null;uniqueIndex:idx_coin_gram" json:"gram"`
	Quantity    int             `gorm:"not null;default:0" json:"quantity"`
	Touch       decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"touch"`
	TotalWeight decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"total_weight"`
	Purity      decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"purity"`
	StockLogs   []StockLog      `gorm:"foreignKey:CoinStockID" json:"stock_logs,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type StockLog struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CoinStockID uint            `gorm:"index;not null" json:"coin_stock_id"`
	CoinType    string          `gorm:"size:10;not null" json:"coin_type"`
	Gram        decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"gram"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	ChangeType  string          `gorm:"type:enum('ADD','REMOVE');not null" json:"change_type"`
	Reason      string          `gorm:"size:191" json:"reason"`
	CreatedAt   time.Time       `json:"created_at"`
}

type JewelStock struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	JewelName   string          `gorm:"size:100;not null" json:"jewel_name"`
	Weight      decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"weight"`
	StoneWeight decimal.Decimal `gorm:"type:decimal(12,3);default:0.000" json:"stone_weight"`
	FinalWeight decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"final_weight"`
	Touch       decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"touch"`
	PurityValue decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"purity_value"`
	CreatedAt   time.Time       `json:"created_at"`
}
