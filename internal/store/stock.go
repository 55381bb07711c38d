package store

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/boobalan-mca23/jeevagold/internal/gold"
	"github.com/boobalan-mca23/jeevagold/internal/models"
)

// syncDerived recomputes the derived columns of a coin-stock row from its
// quantity. Purity uses the same derivation as bill lines.
func syncDerived(s *models.CoinStock) {
	qty := decimal.NewFromInt(int64(s.Quantity))
	s.TotalWeight = gold.RoundWeight(s.Gram.Mul(qty))
	purity, err := gold.PurityFromWeight(s.TotalWeight, s.Touch)
	if err == nil {
		s.Purity = purity
	}
}

// ReduceStock decrements one coin bucket inside tx, holding a row lock so
// two concurrent bills cannot both pass the quantity check. The shortfall is
// reported as a *gold.InsufficientStockError and nothing is written.
func ReduceStock(tx *gorm.DB, coinType string, gram decimal.Decimal, quantity int, reason string) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", gold.ErrInvalidInput)
	}

	var stock models.CoinStock
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("coin_type = ? AND gram = ?", coinType, gram).
		First(&stock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &gold.InsufficientStockError{CoinType: coinType, Gram: gram, Requested: quantity, Available: 0}
	}
	if err != nil {
		return err
	}

	if stock.Quantity < quantity {
		return &gold.InsufficientStockError{
			CoinType:  coinType,
			Gram:      gram,
			Requested: quantity,
			Available: stock.Quantity,
		}
	}

	stock.Quantity -= quantity
	syncDerived(&stock)
	if err := tx.Save(&stock).Error; err != nil {
		return err
	}

	return tx.Create(&models.StockLog{
		CoinStockID: stock.ID,
		CoinType:    stock.CoinType,
		Gram:        stock.Gram,
		Quantity:    -quantity,
		ChangeType:  "REMOVE",
		Reason:      reason,
	}).Error
}

// IncreaseStock adds coins back to a bucket, creating it when absent (a
// deleted bill may restore coins whose bucket was since removed).
func IncreaseStock(tx *gorm.DB, coinType string, gram, touch decimal.Decimal, quantity int, reason string) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", gold.ErrInvalidInput)
	}

	var stock models.CoinStock
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("coin_type = ? AND gram = ?", coinType, gram).
		First(&stock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		stock = models.CoinStock{CoinType: coinType, Gram: gram, Touch: touch}
	} else if err != nil {
		return err
	}

	stock.Quantity += quantity
	syncDerived(&stock)
	if err := tx.Save(&stock).Error; err != nil {
		return err
	}

	return tx.Create(&models.StockLog{
		CoinStockID: stock.ID,
		CoinType:    stock.CoinType,
		Gram:        stock.Gram,
		Quantity:    quantity,
		ChangeType:  "ADD",
		Reason:      reason,
	}).Error
}

// StockLevels snapshots all coin buckets into the shape the bill validator
// consumes.
func StockLevels(db *gorm.DB) ([]gold.StockLevel, error) {
	var stocks []models.CoinStock
	if err := db.Find(&stocks).Error; err != nil {
		return nil, err
	}
	levels := make([]gold.StockLevel, len(stocks))
	for i, s := range stocks {
		levels[i] = gold.StockLevel{CoinType: s.CoinType, Gram: s.Gram, Quantity: s.Quantity}
	}
	return levels, nil
}
