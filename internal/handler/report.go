package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/boobalan-mca23/jeevagold/internal/gold"
	"github.com/boobalan-mca23/jeevagold/internal/models"
	"github.com/boobalan-mca23/jeevagold/pkg/database"
)

type ReportHandler struct{}

// dateRange parses optional from/to query params (YYYY-MM-DD); the upper
// bound is exclusive end-of-day.
func dateRange(c *gin.Context) (from, to time.Time, ok bool) {
	const layout = "2006-01-02"
	var err error

	if s := c.Query("from"); s != "" {
		from, err = time.Parse(layout, s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date"})
			return from, to, false
		}
	}
	if s := c.Query("to"); s != "" {
		to, err = time.Parse(layout, s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date"})
			return from, to, false
		}
		to = to.AddDate(0, 0, 1)
	}
	return from, to, true
}

func billScope(from, to time.Time) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if !from.IsZero() {
			q = q.Where("bill_date >= ?", from)
		}
		if !to.IsZero() {
			q = q.Where("bill_date < ?", to)
		}
		return q
	}
}

// Daily summarizes bills in a date range (defaults to today).
func (h *ReportHandler) Daily(c *gin.Context) {
	from, to, ok := dateRange(c)
	if !ok {
		return
	}
	if from.IsZero() && to.IsZero() {
		now := time.Now()
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		to = from.AddDate(0, 0, 1)
	}

	bills, err := loadBillSummaries(database.DB, billScope(from, to))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bills"})
		return
	}

	c.JSON(http.StatusOK, gold.Summarize(bills, gold.Policy{}))
}

// Customer reports one customer's bills with advance consumption applied in
// date order.
func (h *ReportHandler) Customer(c *gin.Context) {
	customerID := c.Param("id")

	var customer models.Customer
	if err := database.DB.First(&customer, customerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	bills, err := loadBillSummaries(database.DB, func(q *gorm.DB) *gorm.DB {
		return q.Where("customer_id = ?", customerID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bills"})
		return
	}

	var txns []models.Transaction
	if err := database.DB.Where("customer_id = ?", customerID).Find(&txns).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch advances"})
		return
	}

	balances := gold.CustomerBillBalances(bills, advanceRows(txns), gold.Policy{})

	remaining := gold.AdvanceTotal(advanceRows(txns))
	if len(balances) > 0 {
		remaining = balances[len(balances)-1].RemainingAdvance
	}

	c.JSON(http.StatusOK, gin.H{
		"customer":          customer,
		"bills":             balances,
		"remaining_advance": remaining,
	})
}

// Balance lists every customer still owing, with their outstanding purity
// and hallmark.
func (h *ReportHandler) Balance(c *gin.Context) {
	bills, err := loadBillSummaries(database.DB, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bills"})
		return
	}

	type customerBalance struct {
		CustomerID uint            `json:"customer_id"`
		Pure       decimal.Decimal `json:"pure"`
		Hallmark   decimal.Decimal `json:"hallmark"`
	}

	byCustomer := make(map[uint]*customerBalance)
	for _, b := range bills {
		bal := gold.Reconcile(b.TotalPurity, b.HallmarkCharges, b.TotalAmount, b.Rows, gold.Policy{})
		pure := gold.RoundWeight(bal.PureBalance)
		if !pure.IsPositive() && !bal.HallmarkBalance.IsPositive() {
			continue
		}
		cb := byCustomer[b.CustomerID]
		if cb == nil {
			cb = &customerBalance{CustomerID: b.CustomerID, Pure: decimal.Zero, Hallmark: decimal.Zero}
			byCustomer[b.CustomerID] = cb
		}
		if pure.IsPositive() {
			cb.Pure = cb.Pure.Add(bal.PureBalance)
		}
		cb.Hallmark = cb.Hallmark.Add(bal.HallmarkBalance)
	}

	ids := make([]uint, 0, len(byCustomer))
	for id := range byCustomer {
		ids = append(ids, id)
	}
	var customers []models.Customer
	if len(ids) > 0 {
		if err := database.DB.Where("id IN ?", ids).Find(&customers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
			return
		}
	}

	type row struct {
		Customer models.Customer `json:"customer"`
		Pure     decimal.Decimal `json:"pure"`
		Hallmark decimal.Decimal `json:"hallmark"`
	}
	out := make([]row, 0, len(customers))
	for _, cust := range customers {
		cb := byCustomer[cust.ID]
		out = append(out, row{Customer: cust, Pure: cb.Pure, Hallmark: cb.Hallmark})
	}
	c.JSON(http.StatusOK, out)
}

// Advance lists advance totals per customer.
func (h *ReportHandler) Advance(c *gin.Context) {
	var txns []models.Transaction
	if err := database.DB.Preload("Customer").Order("date asc").Find(&txns).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch advances"})
		return
	}

	grouped := make(map[uint][]models.Transaction)
	for _, t := range txns {
		grouped[t.CustomerID] = append(grouped[t.CustomerID], t)
	}

	type row struct {
		Customer models.Customer `json:"customer"`
		Total    decimal.Decimal `json:"total"`
	}
	out := make([]row, 0, len(grouped))
	for _, group := range grouped {
		out = append(out, row{
			Customer: group[0].Customer,
			Total:    gold.AdvanceTotal(advanceRows(group)),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"customers": out,
		"total":     gold.AdvanceTotal(advanceRows(txns)),
	})
}

// Overall values the whole shop in fine-gold grams.
func (h *ReportHandler) Overall(c *gin.Context) {
	bills, err := loadBillSummaries(database.DB, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bills"})
		return
	}

	var entries []models.Entry
	if err := database.DB.Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch entries"})
		return
	}
	manual := decimal.Zero
	for _, e := range entries {
		manual = manual.Add(e.Purity)
	}

	var stocks []models.CoinStock
	if err := database.DB.Find(&stocks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch coin stock"})
		return
	}
	coin := decimal.Zero
	for _, s := range stocks {
		coin = coin.Add(s.Purity)
	}

	var jewels []models.JewelStock
	if err := database.DB.Find(&jewels).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch jewel stock"})
		return
	}
	jewel := decimal.Zero
	for _, j := range jewels {
		jewel = jewel.Add(j.PurityValue)
	}

	var txns []models.Transaction
	if err := database.DB.Find(&txns).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch advances"})
		return
	}

	var expenses []models.Expense
	if err := database.DB.Find(&expenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expenses"})
		return
	}
	expenseCashGold := decimal.Zero
	expenseAdvance := decimal.Zero
	for _, e := range expenses {
		switch e.ValueType {
		case "CashOrGold":
			expenseCashGold = expenseCashGold.Add(e.Purity)
		case "Advance":
			expenseAdvance = expenseAdvance.Add(e.Purity)
		}
	}

	report := gold.ComputeOverall(bills, manual, coin, jewel,
		advanceRows(txns), expenseCashGold, expenseAdvance, gold.Policy{})
	c.JSON(http.StatusOK, report)
}
