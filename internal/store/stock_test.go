package store_test

import (
	"errors"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/boobalan-mca23/jeevagold/internal/gold"
	"github.com/boobalan-mca23/jeevagold/internal/models"
	"github.com/boobalan-mca23/jeevagold/internal/store"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_DSN (a plain MySQL DSN) to run integration tests.
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set — skipping integration test to protect live database")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&models.CoinStock{}, &models.StockLog{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	if err := db.Exec("DELETE FROM stock_logs").Error; err != nil {
		t.Fatalf("Failed to clean stock_logs: %v", err)
	}
	if err := db.Exec("DELETE FROM coin_stocks").Error; err != nil {
		t.Fatalf("Failed to clean coin_stocks: %v", err)
	}

	return db
}

func seedBucket(t *testing.T, db *gorm.DB, coinType string, gram, touch decimal.Decimal, quantity int) models.CoinStock {
	stock := models.CoinStock{CoinType: coinType, Gram: gram, Touch: touch, Quantity: quantity}
	qty := decimal.NewFromInt(int64(quantity))
	stock.TotalWeight = gold.RoundWeight(gram.Mul(qty))
	purity, err := gold.PurityFromWeight(stock.TotalWeight, touch)
	if err != nil {
		t.Fatalf("Failed to derive seed purity: %v", err)
	}
	stock.Purity = purity
	if err := db.Create(&stock).Error; err != nil {
		t.Fatalf("Failed to seed coin bucket: %v", err)
	}
	return stock
}

func fetchBucket(t *testing.T, db *gorm.DB, id uint) models.CoinStock {
	var stock models.CoinStock
	if err := db.First(&stock, id).Error; err != nil {
		t.Fatalf("Failed to reload coin bucket: %v", err)
	}
	return stock
}

func TestReduceStock_ShortfallFailsWithoutWriting(t *testing.T) {
	db := setupTestDB(t)

	seeded := seedBucket(t, db, "916", decimal.RequireFromString("8"), decimal.RequireFromString("91.60"), 4)

	err := store.ReduceStock(db, "916", seeded.Gram, 6, "bill")
	if err == nil {
		t.Fatal("Expected shortfall error, got nil")
	}
	if !errors.Is(err, gold.ErrInsufficientStock) {
		t.Fatalf("Expected ErrInsufficientStock, got %v", err)
	}
	var shortfall *gold.InsufficientStockError
	if !errors.As(err, &shortfall) {
		t.Fatalf("Expected *gold.InsufficientStockError, got %T", err)
	}
	if shortfall.Requested != 6 || shortfall.Available != 4 {
		t.Errorf("Shortfall reported %d/%d, want 6/4", shortfall.Requested, shortfall.Available)
	}

	// Nothing clamps: the row keeps its full quantity and no log is written.
	after := fetchBucket(t, db, seeded.ID)
	if after.Quantity != 4 {
		t.Errorf("Quantity = %d after failed reduce, want 4", after.Quantity)
	}
	var logs int64
	if err := db.Model(&models.StockLog{}).Where("coin_stock_id = ?", seeded.ID).Count(&logs).Error; err != nil {
		t.Fatalf("Failed to count stock logs: %v", err)
	}
	if logs != 0 {
		t.Errorf("Found %d stock logs after failed reduce, want 0", logs)
	}
}

func TestReduceStock_MissingBucketIsShortfall(t *testing.T) {
	db := setupTestDB(t)

	err := store.ReduceStock(db, "999", decimal.RequireFromString("1"), 1, "bill")
	var shortfall *gold.InsufficientStockError
	if !errors.As(err, &shortfall) {
		t.Fatalf("Expected *gold.InsufficientStockError for missing bucket, got %v", err)
	}
	if shortfall.Available != 0 {
		t.Errorf("Available = %d for missing bucket, want 0", shortfall.Available)
	}
}

func TestReduceIncrease_RoundTripRestoresRow(t *testing.T) {
	db := setupTestDB(t)

	seeded := seedBucket(t, db, "916", decimal.RequireFromString("8"), decimal.RequireFromString("91.60"), 10)

	if err := store.ReduceStock(db, "916", seeded.Gram, 3, "bill 7"); err != nil {
		t.Fatalf("ReduceStock: %v", err)
	}

	reduced := fetchBucket(t, db, seeded.ID)
	if reduced.Quantity != 7 {
		t.Fatalf("Quantity = %d after reduce, want 7", reduced.Quantity)
	}
	// 7 × 8g = 56.000g, purity 56 × 91.60 / 100 = 51.296g.
	if !reduced.TotalWeight.Equal(decimal.RequireFromString("56.000")) {
		t.Errorf("TotalWeight = %s after reduce, want 56.000", reduced.TotalWeight)
	}
	if !reduced.Purity.Equal(decimal.RequireFromString("51.296")) {
		t.Errorf("Purity = %s after reduce, want 51.296", reduced.Purity)
	}

	if err := store.IncreaseStock(db, "916", seeded.Gram, seeded.Touch, 3, "bill 7 deleted"); err != nil {
		t.Fatalf("IncreaseStock: %v", err)
	}

	restored := fetchBucket(t, db, seeded.ID)
	if restored.Quantity != seeded.Quantity {
		t.Errorf("Quantity = %d after round trip, want %d", restored.Quantity, seeded.Quantity)
	}
	if !restored.TotalWeight.Equal(seeded.TotalWeight) {
		t.Errorf("TotalWeight = %s after round trip, want %s", restored.TotalWeight, seeded.TotalWeight)
	}
	if !restored.Purity.Equal(seeded.Purity) {
		t.Errorf("Purity = %s after round trip, want %s", restored.Purity, seeded.Purity)
	}

	// The audit trail carries one REMOVE and one ADD row with signed quantities.
	var logs []models.StockLog
	if err := db.Where("coin_stock_id = ?", seeded.ID).Order("id asc").Find(&logs).Error; err != nil {
		t.Fatalf("Failed to load stock logs: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("Got %d stock logs, want 2", len(logs))
	}
	if logs[0].ChangeType != "REMOVE" || logs[0].Quantity != -3 {
		t.Errorf("First log = %s %d, want REMOVE -3", logs[0].ChangeType, logs[0].Quantity)
	}
	if logs[1].ChangeType != "ADD" || logs[1].Quantity != 3 {
		t.Errorf("Second log = %s %d, want ADD 3", logs[1].ChangeType, logs[1].Quantity)
	}
}

func TestIncreaseStock_RecreatesDeletedBucket(t *testing.T) {
	db := setupTestDB(t)

	gram := decimal.RequireFromString("4")
	touch := decimal.RequireFromString("91.60")
	if err := store.IncreaseStock(db, "916", gram, touch, 5, "bill deleted"); err != nil {
		t.Fatalf("IncreaseStock: %v", err)
	}

	var stock models.CoinStock
	if err := db.Where("coin_type = ? AND gram = ?", "916", gram).First(&stock).Error; err != nil {
		t.Fatalf("Recreated bucket not found: %v", err)
	}
	if stock.Quantity != 5 {
		t.Errorf("Quantity = %d, want 5", stock.Quantity)
	}
	if !stock.TotalWeight.Equal(decimal.RequireFromString("20.000")) {
		t.Errorf("TotalWeight = %s, want 20.000", stock.TotalWeight)
	}
	if !stock.Touch.Equal(touch) {
		t.Errorf("Touch = %s, want %s", stock.Touch, touch)
	}
}
