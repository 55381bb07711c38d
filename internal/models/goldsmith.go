package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Goldsmith struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Phone     string    `gorm:"size:15" json:"phone"`
	Address   string    `gorm:"type:text" json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

type MasterItem struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ItemName string `gorm:"size:100;unique;not null" json:"item_name"`
}

// JobCard tracks gold handed to a goldsmith for making and what came back.
type JobCard struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Date        time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"date"`
	Description string        `gorm:"type:text" json:"description"`
	GoldsmithID uint          `gorm:"index;not null" json:"goldsmith_id"`
	Goldsmith   Goldsmith     `gorm:"foreignKey:GoldsmithID" json:"goldsmith,omitempty"`
	Items       []JobCardItem `gorm:"foreignKey:JobCardID" json:"items"`
	CreatedAt   time.Time     `json:"created_at"`
}

// JobCardItem is one piece on a job card. GivenWeight is the original weight
// plus any additional-weight adjustments; Wastage = GivenWeight −
// FinalWeight once the piece is delivered.
type JobCardItem struct {
	ID                  uint               `gorm:"primaryKey" json:"id"`
	JobCardID           uint               `gorm:"index;not null" json:"job_card_id"`
	MasterItemID        uint               `gorm:"index;not null" json:"master_item_id"`
	MasterItem          MasterItem         `gorm:"foreignKey:MasterItemID" json:"master_item,omitempty"`
	OriginalGivenWeight decimal.Decimal    `gorm:"type:decimal(12,3);not null" json:"original_given_weight"`
	GivenWeight         decimal.Decimal    `gorm:"type:decimal(12,3);not null" json:"given_weight"`
	Touch               decimal.Decimal    `gorm:"type:decimal(5,2);not null" json:"touch"`
	EstimateWeight      decimal.Decimal    `gorm:"type:decimal(12,3)" json:"estimate_weight"`
	FinalWeight         decimal.Decimal    `gorm:"type:decimal(12,3)" json:"final_weight"`
	Wastage             decimal.Decimal    `gorm:"type:decimal(12,3)" json:"wastage"`
	Purity              decimal.Decimal    `gorm:"type:decimal(12,3)" json:"purity"`
	AdditionalWeights   []AdditionalWeight `gorm:"foreignKey:ItemID" json:"additional_weights"`
}

// AdditionalWeight adjusts a job-card item's given weight up or down.
// Operator is "+" or "-".
type AdditionalWeight struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	ItemID   uint            `gorm:"index;not null" json:"item_id"`
	Name     string          `gorm:"size:100;not null" json:"name"`
	Weight   decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"weight"`
	Operator string          `gorm:"size:1;not null" json:"operator"`
}
