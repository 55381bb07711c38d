package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/boobalan-mca23/jeevagold/internal/gold"
	"github.com/boobalan-mca23/jeevagold/internal/models"
	"github.com/boobalan-mca23/jeevagold/internal/store"
	"github.com/boobalan-mca23/jeevagold/pkg/database"
)

type StockHandler struct{}

type StockRequest struct {
	CoinType string          `json:"coin_type" binding:"required"`
	Gram     decimal.Decimal `json:"gram" binding:"required"`
	Quantity int             `json:"quantity" binding:"required"`
	Touch    decimal.Decimal `json:"touch" binding:"required"`
}

// Upsert creates a coin bucket or tops up an existing one with the same
// (coin_type, gram) identity.
func (h *StockHandler) Upsert(c *gin.Context) {
	var req StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be positive"})
		return
	}

	tx := database.DB.Begin()
	if err := store.IncreaseStock(tx, req.CoinType, req.Gram, req.Touch, req.Quantity, "stock intake"); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add stock"})
		return
	}
	tx.Commit()

	var stock models.CoinStock
	database.DB.Where("coin_type = ? AND gram = ?", req.CoinType, req.Gram).First(&stock)
	c.JSON(http.StatusCreated, stock)
}

func (h *StockHandler) List(c *gin.Context) {
	var stocks []models.CoinStock
	if err := database.DB.Order("coin_type asc, gram asc").Find(&stocks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stock"})
		return
	}

	totalPurity := decimal.Zero
	for _, s := range stocks {
		totalPurity = totalPurity.Add(s.Purity)
	}
	c.JSON(http.StatusOK, gin.H{"stocks": stocks, "total_purity": totalPurity})
}

type StockAdjustRequest struct {
	CoinType string          `json:"coin_type" binding:"required"`
	Gram     decimal.Decimal `json:"gram" binding:"required"`
	Quantity int             `json:"quantity" binding:"required"`
	Touch    decimal.Decimal `json:"touch"`
	Reason   string          `json:"reason"`
}

func (h *StockHandler) Add(c *gin.Context) {
	var req StockAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reason := req.Reason
	if reason == "" {
		reason = "manual add"
	}

	tx := database.DB.Begin()
	if err := store.IncreaseStock(tx, req.CoinType, req.Gram, req.Touch, req.Quantity, reason); err != nil {
		tx.Rollback()
		if errors.Is(err, gold.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add stock"})
		return
	}
	tx.Commit()
	c.JSON(http.StatusOK, gin.H{"message": "Stock added"})
}

func (h *StockHandler) Reduce(c *gin.Context) {
	var req StockAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reason := req.Reason
	if reason == "" {
		reason = "manual remove"
	}

	tx := database.DB.Begin()
	err := store.ReduceStock(tx, req.CoinType, req.Gram, req.Quantity, reason)
	if err != nil {
		tx.Rollback()
		var ise *gold.InsufficientStockError
		if errors.As(err, &ise) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ise.Error()})
			return
		}
		if errors.Is(err, gold.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reduce stock"})
		return
	}
	tx.Commit()
	c.JSON(http.StatusOK, gin.H{"message": "Stock reduced"})
}

func (h *StockHandler) Logs(c *gin.Context) {
	query := database.DB.Order("created_at desc")
	if coinType := c.Query("coin_type"); coinType != "" {
		query = query.Where("coin_type = ?", coinType)
	}

	var logs []models.StockLog
	if err := query.Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stock logs"})
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (h *StockHandler) Delete(c *gin.Context) {
	tx := database.DB.Begin()
	var stock models.CoinStock
	if err := tx.First(&stock, c.Param("id")).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": "Stock not found"})
		return
	}
	if err := tx.Where("coin_stock_id = ?", stock.ID).Delete(&models.StockLog{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete stock logs"})
		return
	}
	if err := tx.Delete(&stock).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete stock"})
		return
	}
	tx.Commit()
	c.JSON(http.StatusOK, gin.H{"message": "Stock deleted"})
}

// Update rewrites a bucket's identity or touch and re-derives its totals.
// Quantity changes go through Add/Reduce so the log stays complete.
func (h *StockHandler) Update(c *gin.Context) {
	var stock models.CoinStock
	if err := database.DB.First(&stock, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Stock not found"})
		return
	}

	var req struct {
		CoinType string          `json:"coin_type" binding:"required"`
		Gram     decimal.Decimal `json:"gram" binding:"required"`
		Touch    decimal.Decimal `json:"touch" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stock.CoinType = req.CoinType
	stock.Gram = req.Gram
	stock.Touch = req.Touch

	qty := decimal.NewFromInt(int64(stock.Quantity))
	stock.TotalWeight = gold.RoundWeight(stock.Gram.Mul(qty))
	purity, err := gold.PurityFromWeight(stock.TotalWeight, stock.Touch)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	stock.Purity = purity

	if err := database.DB.Save(&stock).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
		return
	}
	c.JSON(http.StatusOK, stock)
}
