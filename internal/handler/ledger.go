package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/boobalan-mca23/jeevagold/internal/gold"
	"github.com/boobalan-mca23/jeevagold/internal/models"
	"github.com/boobalan-mca23/jeevagold/pkg/database"
)

type EntryHandler struct{}

type EntryRequest struct {
	Type       string          `json:"type" binding:"required,oneof=Cash Gold"`
	CashAmount decimal.Decimal `json:"cash_amount"`
	GoldValue  decimal.Decimal `json:"gold_value"`
	Touch      decimal.Decimal `json:"touch"`
	GoldRate   decimal.Decimal `json:"gold_rate"`
	Remarks    string          `json:"remarks"`
}

// entryPurity derives the fine-gold figure of a manual ledger row: gold rows
// from weight and touch, cash rows from amount and rate.
func entryPurity(req EntryRequest) (decimal.Decimal, error) {
	if req.Type == "Gold" {
		return gold.PurityFromWeight(req.GoldValue, req.Touch)
	}
	grams, err := gold.GoldEquivalent(req.CashAmount, req.GoldRate)
	if err != nil {
		return decimal.Zero, err
	}
	return gold.RoundWeight(grams), nil
}

func (h *EntryHandler) Create(c *gin.Context) {
	var req EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	purity, err := entryPurity(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := models.Entry{
		Type:       req.Type,
		CashAmount: req.CashAmount,
		GoldValue:  req.GoldValue,
		Touch:      req.Touch,
		GoldRate:   req.GoldRate,
		Purity:     purity,
		Remarks:    req.Remarks,
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry"})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *EntryHandler) List(c *gin.Context) {
	var entries []models.Entry
	if err := database.DB.Order("date desc").Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch entries"})
		return
	}

	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Purity)
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "total_purity": total})
}

func (h *EntryHandler) Update(c *gin.Context) {
	var entry models.Entry
	if err := database.DB.First(&entry, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		return
	}

	var req EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	purity, err := entryPurity(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry.Type = req.Type
	entry.CashAmount = req.CashAmount
	entry.GoldValue = req.GoldValue
	entry.Touch = req.Touch
	entry.GoldRate = req.GoldRate
	entry.Purity = purity
	entry.Remarks = req.Remarks
	if err := database.DB.Save(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update entry"})
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *EntryHandler) Delete(c *gin.Context) {
	if err := database.DB.Delete(&models.Entry{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted"})
}

type ExpenseHandler struct{}

type ExpenseRequest struct {
	ValueType string          `json:"value_type" binding:"required,oneof=CashOrGold Advance"`
	Purity    decimal.Decimal `json:"purity" binding:"required"`
	Remarks   string          `json:"remarks"`
}

// pools computes the two spendable fine-gold pools: the cash/gold ledger
// (manual entries plus everything received against bills) and the customer
// advance pot, each net of the expenses already drawn from it.
func pools(p gold.Policy) (cashGold, advance decimal.Decimal, err error) {
	bills, err := loadBillSummaries(database.DB, nil)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	received := decimal.Zero
	for _, b := range bills {
		_, effects := gold.ReconcileEffects(b.TotalPurity, b.HallmarkCharges, b.TotalAmount, b.Rows, p)
		for _, e := range effects {
			received = received.Sub(e.PureDelta)
		}
	}

	var entries []models.Entry
	if err := database.DB.Find(&entries).Error; err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	manual := decimal.Zero
	for _, e := range entries {
		manual = manual.Add(e.Purity)
	}

	var txns []models.Transaction
	if err := database.DB.Find(&txns).Error; err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	advance = gold.AdvanceTotal(advanceRows(txns))

	var expenses []models.Expense
	if err := database.DB.Find(&expenses).Error; err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	cashGold = manual.Add(received)
	for _, e := range expenses {
		switch e.ValueType {
		case "CashOrGold":
			cashGold = cashGold.Sub(e.Purity)
		case "Advance":
			advance = advance.Sub(e.Purity)
		}
	}
	return cashGold, advance, nil
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Purity.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Purity must be positive"})
		return
	}

	cashGold, advance, err := pools(gold.Policy{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute pools"})
		return
	}

	available := cashGold
	if req.ValueType == "Advance" {
		available = advance
	}
	if req.Purity.GreaterThan(available) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Expense exceeds available pool",
			"available": available,
		})
		return
	}

	expense := models.Expense{ValueType: req.ValueType, Purity: req.Purity, Remarks: req.Remarks}
	if err := database.DB.Create(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create expense"})
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (h *ExpenseHandler) List(c *gin.Context) {
	var expenses []models.Expense
	if err := database.DB.Order("date desc").Find(&expenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expenses"})
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// Summary exposes both pools so the client can bound an expense form before
// submitting.
func (h *ExpenseHandler) Summary(c *gin.Context) {
	cashGold, advance, err := pools(gold.Policy{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute pools"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"cash_gold_available": cashGold,
		"advance_available":   advance,
	})
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	if err := database.DB.Delete(&models.Expense{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expense"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
}

// Update revalidates the expense against its pool, excluding the row's own
// current draw.
func (h *ExpenseHandler) Update(c *gin.Context) {
	var expense models.Expense
	if err := database.DB.First(&expense, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Purity.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Purity must be positive"})
		return
	}

	cashGold, advance, err := pools(gold.Policy{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute pools"})
		return
	}

	available := cashGold
	if req.ValueType == "Advance" {
		available = advance
	}
	if expense.ValueType == req.ValueType {
		available = available.Add(expense.Purity)
	}
	if req.Purity.GreaterThan(available) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Expense exceeds available pool",
			"available": available,
		})
		return
	}

	expense.ValueType = req.ValueType
	expense.Purity = req.Purity
	expense.Remarks = req.Remarks
	if err := database.DB.Save(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update expense"})
		return
	}
	c.JSON(http.StatusOK, expense)
}
