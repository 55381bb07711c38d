package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/boobalan-mca23/jeevagold/internal/gold"
	"github.com/boobalan-mca23/jeevagold/internal/models"
	"github.com/boobalan-mca23/jeevagold/pkg/database"
)

type TransactionHandler struct{}

type TransactionRequest struct {
	CustomerID uint            `json:"customer_id" binding:"required"`
	Date       time.Time       `json:"date"`
	Type       string          `json:"type" binding:"required,oneof=Cash Gold"`
	Value      decimal.Decimal `json:"value" binding:"required"`
	Touch      decimal.Decimal `json:"touch"`
	GoldRate   decimal.Decimal `json:"gold_rate"`
}

// transactionPurity fixes the advance's fine-gold figure at entry time so a
// later rate change cannot reprice it.
func transactionPurity(req TransactionRequest) (decimal.Decimal, error) {
	if req.Type == "Gold" {
		return gold.PurityFromWeight(req.Value, req.Touch)
	}
	grams, err := gold.GoldEquivalent(req.Value, req.GoldRate)
	if err != nil {
		return decimal.Zero, err
	}
	return gold.RoundWeight(grams), nil
}

func (h *TransactionHandler) Create(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var customer models.Customer
	if err := database.DB.First(&customer, req.CustomerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	purity, err := transactionPurity(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}

	txn := models.Transaction{
		CustomerID: req.CustomerID,
		Date:       date,
		Type:       req.Type,
		Value:      req.Value,
		Touch:      req.Touch,
		GoldRate:   req.GoldRate,
		Purity:     purity,
	}
	if err := database.DB.Create(&txn).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		return
	}
	c.JSON(http.StatusCreated, txn)
}

func (h *TransactionHandler) List(c *gin.Context) {
	query := database.DB.Preload("Customer").Order("date desc")
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	var txns []models.Transaction
	if err := query.Find(&txns).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	total := gold.AdvanceTotal(advanceRows(txns))
	c.JSON(http.StatusOK, gin.H{"transactions": txns, "total_purity": total})
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	if err := database.DB.Delete(&models.Transaction{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}

func (h *TransactionHandler) Update(c *gin.Context) {
	var txn models.Transaction
	if err := database.DB.First(&txn, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	purity, err := transactionPurity(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txn.CustomerID = req.CustomerID
	if !req.Date.IsZero() {
		txn.Date = req.Date
	}
	txn.Type = req.Type
	txn.Value = req.Value
	txn.Touch = req.Touch
	txn.GoldRate = req.GoldRate
	txn.Purity = purity
	if err := database.DB.Save(&txn).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
		return
	}
	c.JSON(http.StatusOK, txn)
}
