package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/boobalan-mca23/jeevagold/config"
	"github.com/boobalan-mca23/jeevagold/internal/gold"
	"github.com/boobalan-mca23/jeevagold/internal/models"
	"github.com/boobalan-mca23/jeevagold/internal/printer"
	"github.com/boobalan-mca23/jeevagold/internal/store"
	"github.com/boobalan-mca23/jeevagold/pkg/database"
)

type BillingHandler struct{}

// generateBillNo produces PREFIX-<n> from the last persisted bill ID.
func generateBillNo() string {
	var lastBill models.Bill
	database.DB.Order("id desc").First(&lastBill)
	return fmt.Sprintf("%s-%d", config.AppConfig.Defaults.BillPrefix, lastBill.ID+1)
}

type BillItemRequest struct {
	CoinValue  decimal.Decimal `json:"coin_value" binding:"required"`
	Quantity   int             `json:"quantity" binding:"required"`
	Percentage string          `json:"percentage" binding:"required"`
	Touch      decimal.Decimal `json:"touch" binding:"required"`
	GoldRate   decimal.Decimal `json:"gold_rate"`
}

type CreateBillRequest struct {
	CustomerID      uint              `json:"customer_id" binding:"required"`
	BillDate        time.Time         `json:"bill_date"`
	GoldRate        decimal.Decimal   `json:"gold_rate"`
	HallmarkCharges decimal.Decimal   `json:"hallmark_charges"`
	Items           []BillItemRequest `json:"items" binding:"required,min=1"`
}

// CreateBill computes each line's weight, purity and amount, validates and
// decrements coin stock, and persists the bill atomically. A stock shortfall
// rolls everything back.
func (h *BillingHandler) CreateBill(c *gin.Context) {
	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var customer models.Customer
	if err := database.DB.First(&customer, req.CustomerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	lines := make([]gold.LineItem, len(req.Items))
	for i, itemReq := range req.Items {
		rate := itemReq.GoldRate
		if !rate.IsPositive() {
			rate = req.GoldRate
		}
		line, err := gold.ComputeItem(gold.LineItem{
			CoinValue:  itemReq.CoinValue,
			Quantity:   itemReq.Quantity,
			Percentage: itemReq.Percentage,
			Touch:      itemReq.Touch,
			GoldRate:   rate,
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		lines[i] = line
	}
	totals := gold.AggregateItems(lines)

	levels, err := store.StockLevels(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read stock"})
		return
	}
	if err := gold.ValidateStock(lines, levels); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	billDate := req.BillDate
	if billDate.IsZero() {
		billDate = time.Now()
	}

	tx := database.DB.Begin()

	bill := models.Bill{
		BillNo:          generateBillNo(),
		BillDate:        billDate,
		CustomerID:      req.CustomerID,
		GoldRate:        req.GoldRate,
		HallmarkCharges: req.HallmarkCharges,
		HallmarkBalance: req.HallmarkCharges,
		TotalWeight:     totals.Weight,
		TotalPurity:     totals.Purity,
		TotalAmount:     totals.Amount,
	}
	if err := tx.Create(&bill).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bill record"})
		return
	}

	for _, line := range lines {
		// Validation above used a snapshot; the locked decrement is the
		// authoritative check.
		err := store.ReduceStock(tx, line.Percentage, line.CoinValue, line.Quantity,
			fmt.Sprintf("bill %s", bill.BillNo))
		if err != nil {
			tx.Rollback()
			var ise *gold.InsufficientStockError
			if errors.As(err, &ise) {
				c.JSON(http.StatusBadRequest, gin.H{"error": ise.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
			return
		}

		billItem := models.BillItem{
			BillID:     bill.ID,
			CoinValue:  line.CoinValue,
			Quantity:   line.Quantity,
			Percentage: line.Percentage,
			Touch:      line.Touch,
			Weight:     line.Weight,
			Purity:     line.Purity,
			GoldRate:   line.GoldRate,
			Amount:     line.Amount,
		}
		if err := tx.Create(&billItem).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add bill item"})
			return
		}
	}

	tx.Commit()
	c.JSON(http.StatusCreated, gin.H{"message": "Bill created successfully", "bill_no": bill.BillNo, "bill_id": bill.ID})
}

func (h *BillingHandler) ListBills(c *gin.Context) {
	page := 1
	limit := 10
	if c.Query("page") != "" {
		fmt.Sscanf(c.Query("page"), "%d", &page)
	}
	if c.Query("limit") != "" {
		fmt.Sscanf(c.Query("limit"), "%d", &limit)
	}
	offset := (page - 1) * limit

	query := database.DB.Model(&models.Bill{})
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	var total int64
	query.Count(&total)

	var bills []models.Bill
	if err := query.
		Preload("Customer").Preload("Items").
		Preload("ReceivedDetails", func(tx *gorm.DB) *gorm.DB { return tx.Order("id asc") }).
		Order("bill_date desc").Limit(limit).Offset(offset).
		Find(&bills).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bills"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bills": bills, "total": total, "page": page, "limit": limit})
}

func (h *BillingHandler) GetBill(c *gin.Context) {
	bill, ok := h.fetchBill(c)
	if !ok {
		return
	}

	bal := gold.Reconcile(bill.TotalPurity, bill.HallmarkCharges, bill.TotalAmount,
		paymentRows(bill.ReceivedDetails), gold.Policy{})
	c.JSON(http.StatusOK, gin.H{"bill": bill, "balances": bal})
}

func (h *BillingHandler) fetchBill(c *gin.Context) (models.Bill, bool) {
	var bill models.Bill
	err := database.DB.
		Preload("Customer").Preload("Items").
		Preload("ReceivedDetails", func(tx *gorm.DB) *gorm.DB { return tx.Order("id asc") }).
		First(&bill, c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bill not found"})
		return models.Bill{}, false
	}
	return bill, true
}

// DeleteBill removes a bill and restores the coin stock its items consumed,
// atomically.
func (h *BillingHandler) DeleteBill(c *gin.Context) {
	tx := database.DB.Begin()

	var bill models.Bill
	if err := tx.Preload("Items").First(&bill, c.Param("id")).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": "Bill not found"})
		return
	}

	for _, item := range bill.Items {
		err := store.IncreaseStock(tx, item.Percentage, item.CoinValue, item.Touch, item.Quantity,
			fmt.Sprintf("bill %s deleted", bill.BillNo))
		if err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restore stock"})
			return
		}
	}

	if err := tx.Where("bill_id = ?", bill.ID).Delete(&models.ReceivedDetail{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete payment rows"})
		return
	}
	if err := tx.Where("bill_id = ?", bill.ID).Delete(&models.BillItem{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete bill items"})
		return
	}
	if err := tx.Delete(&bill).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete bill"})
		return
	}

	tx.Commit()
	c.JSON(http.StatusOK, gin.H{"message": "Bill deleted and stock restored"})
}

type ReceivedDetailRequest struct {
	Date       time.Time       `json:"date"`
	Mode       string          `json:"mode" binding:"required,oneof=weight amount"`
	GoldRate   decimal.Decimal `json:"gold_rate"`
	GivenGold  decimal.Decimal `json:"given_gold"`
	Touch      decimal.Decimal `json:"touch"`
	Amount     decimal.Decimal `json:"amount"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
	Hallmark   decimal.Decimal `json:"hallmark"`
}

// Receive appends payment rows to a bill, re-runs the reconciliation over
// the full persisted sequence and stores the updated hallmark balance.
func (h *BillingHandler) Receive(c *gin.Context) {
	var req struct {
		Rows []ReceivedDetailRequest `json:"rows" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx := database.DB.Begin()

	var bill models.Bill
	if err := tx.Preload("ReceivedDetails", func(q *gorm.DB) *gorm.DB { return q.Order("id asc") }).
		First(&bill, c.Param("id")).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": "Bill not found"})
		return
	}

	for _, rowReq := range req.Rows {
		date := rowReq.Date
		if date.IsZero() {
			date = time.Now()
		}

		detail := models.ReceivedDetail{
			BillID:     bill.ID,
			Date:       date,
			Mode:       rowReq.Mode,
			GoldRate:   rowReq.GoldRate,
			GivenGold:  rowReq.GivenGold,
			Touch:      rowReq.Touch,
			Amount:     rowReq.Amount,
			PaidAmount: rowReq.PaidAmount,
			Hallmark:   rowReq.Hallmark,
		}
		if rowReq.Mode == "weight" {
			purity, err := gold.PurityFromWeight(rowReq.GivenGold, rowReq.Touch)
			if err != nil {
				tx.Rollback()
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			detail.PurityWeight = purity
		}

		if err := tx.Create(&detail).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save payment row"})
			return
		}
		bill.ReceivedDetails = append(bill.ReceivedDetails, detail)
	}

	// Received cash folds into the bill's displayed total.
	receivedCash := decimal.Zero
	for _, rowReq := range req.Rows {
		if rowReq.Mode == "amount" && rowReq.Amount.IsPositive() {
			receivedCash = receivedCash.Add(rowReq.Amount)
		}
	}

	bal := gold.Reconcile(bill.TotalPurity, bill.HallmarkCharges, bill.TotalAmount,
		paymentRows(bill.ReceivedDetails), gold.Policy{})

	updates := map[string]interface{}{
		"hallmark_balance": bal.HallmarkBalance,
		"total_amount":     bill.TotalAmount.Add(receivedCash),
	}
	if err := tx.Model(&bill).Updates(updates).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update bill"})
		return
	}

	tx.Commit()
	c.JSON(http.StatusOK, gin.H{"message": "Payments recorded", "balances": bal})
}

// Balances recomputes the bill's running figures from the persisted rows.
func (h *BillingHandler) Balances(c *gin.Context) {
	bill, ok := h.fetchBill(c)
	if !ok {
		return
	}

	bal, effects := gold.ReconcileEffects(bill.TotalPurity, bill.HallmarkCharges, bill.TotalAmount,
		paymentRows(bill.ReceivedDetails), gold.Policy{})
	c.JSON(http.StatusOK, gin.H{"balances": bal, "row_effects": effects})
}

// Print renders the bill as a PDF.
func (h *BillingHandler) Print(c *gin.Context) {
	bill, ok := h.fetchBill(c)
	if !ok {
		return
	}

	bal := gold.Reconcile(bill.TotalPurity, bill.HallmarkCharges, bill.TotalAmount,
		paymentRows(bill.ReceivedDetails), gold.Policy{})

	pdf, err := printer.BillPDF(config.AppConfig.Shop, bill, bal)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render bill"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%s.pdf", bill.BillNo))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
