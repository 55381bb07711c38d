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

type JobCardHandler struct{}

type JobCardItemRequest struct {
	MasterItemID   uint            `json:"master_item_id" binding:"required"`
	GivenWeight    decimal.Decimal `json:"given_weight" binding:"required"`
	Touch          decimal.Decimal `json:"touch" binding:"required"`
	EstimateWeight decimal.Decimal `json:"estimate_weight"`
}

type JobCardRequest struct {
	GoldsmithID uint                 `json:"goldsmith_id" binding:"required"`
	Date        time.Time            `json:"date"`
	Description string               `json:"description"`
	Items       []JobCardItemRequest `json:"items" binding:"required,min=1"`
}

func (h *JobCardHandler) Create(c *gin.Context) {
	var req JobCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var goldsmith models.Goldsmith
	if err := database.DB.First(&goldsmith, req.GoldsmithID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Goldsmith not found"})
		return
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}

	tx := database.DB.Begin()

	card := models.JobCard{
		Date:        date,
		Description: req.Description,
		GoldsmithID: req.GoldsmithID,
	}
	if err := tx.Create(&card).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job card"})
		return
	}

	for _, itemReq := range req.Items {
		purity, err := gold.PurityFromWeight(itemReq.GivenWeight, itemReq.Touch)
		if err != nil {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		item := models.JobCardItem{
			JobCardID:           card.ID,
			MasterItemID:        itemReq.MasterItemID,
			OriginalGivenWeight: itemReq.GivenWeight,
			GivenWeight:         itemReq.GivenWeight,
			Touch:               itemReq.Touch,
			EstimateWeight:      itemReq.EstimateWeight,
			Purity:              purity,
		}
		if err := tx.Create(&item).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job card item"})
			return
		}
	}

	tx.Commit()
	c.JSON(http.StatusCreated, gin.H{"message": "Job card created", "job_card_id": card.ID})
}

func (h *JobCardHandler) List(c *gin.Context) {
	query := database.DB.
		Preload("Goldsmith").
		Preload("Items").Preload("Items.MasterItem").Preload("Items.AdditionalWeights").
		Order("date desc")
	if goldsmithID := c.Query("goldsmith_id"); goldsmithID != "" {
		query = query.Where("goldsmith_id = ?", goldsmithID)
	}

	var cards []models.JobCard
	if err := query.Find(&cards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch job cards"})
		return
	}
	c.JSON(http.StatusOK, cards)
}

func (h *JobCardHandler) Get(c *gin.Context) {
	var card models.JobCard
	err := database.DB.
		Preload("Goldsmith").
		Preload("Items").Preload("Items.MasterItem").Preload("Items.AdditionalWeights").
		First(&card, c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job card not found"})
		return
	}
	c.JSON(http.StatusOK, card)
}

type DeliveryRequest struct {
	FinalWeight decimal.Decimal `json:"final_weight" binding:"required"`
}

// Deliver records the finished piece's weight; wastage is the difference
// against the estimate.
func (h *JobCardHandler) Deliver(c *gin.Context) {
	var req DeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var item models.JobCardItem
	if err := database.DB.First(&item, c.Param("itemId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job card item not found"})
		return
	}

	item.FinalWeight = req.FinalWeight
	item.Wastage = gold.RoundWeight(item.GivenWeight.Sub(req.FinalWeight))
	if err := database.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record delivery"})
		return
	}
	c.JSON(http.StatusOK, item)
}

type AdditionalWeightRequest struct {
	Name     string          `json:"name" binding:"required"`
	Weight   decimal.Decimal `json:"weight" binding:"required"`
	Operator string          `json:"operator" binding:"required,oneof=+ -"`
}

// AddWeight attaches an adjustment to a job-card item and re-derives its
// effective given weight and purity.
func (h *JobCardHandler) AddWeight(c *gin.Context) {
	var req AdditionalWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx := database.DB.Begin()

	var item models.JobCardItem
	if err := tx.Preload("AdditionalWeights").First(&item, c.Param("itemId")).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": "Job card item not found"})
		return
	}

	aw := models.AdditionalWeight{
		ItemID:   item.ID,
		Name:     req.Name,
		Weight:   req.Weight,
		Operator: req.Operator,
	}
	if err := tx.Create(&aw).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add weight"})
		return
	}
	item.AdditionalWeights = append(item.AdditionalWeights, aw)

	given := item.OriginalGivenWeight
	for _, w := range item.AdditionalWeights {
		if w.Operator == "-" {
			given = given.Sub(w.Weight)
		} else {
			given = given.Add(w.Weight)
		}
	}
	item.GivenWeight = gold.RoundWeight(given)

	purity, err := gold.PurityFromWeight(item.GivenWeight, item.Touch)
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item.Purity = purity

	if err := tx.Save(&item).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}

	tx.Commit()
	c.JSON(http.StatusOK, item)
}

func (h *JobCardHandler) Delete(c *gin.Context) {
	tx := database.DB.Begin()

	var card models.JobCard
	if err := tx.Preload("Items").First(&card, c.Param("id")).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": "Job card not found"})
		return
	}

	for _, item := range card.Items {
		if err := tx.Where("item_id = ?", item.ID).Delete(&models.AdditionalWeight{}).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete adjustments"})
			return
		}
	}
	if err := tx.Where("job_card_id = ?", card.ID).Delete(&models.JobCardItem{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete job card items"})
		return
	}
	if err := tx.Delete(&card).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete job card"})
		return
	}

	tx.Commit()
	c.JSON(http.StatusOK, gin.H{"message": "Job card deleted"})
}

// AppendItems adds more pieces to an existing job card.
func (h *JobCardHandler) AppendItems(c *gin.Context) {
	var req struct {
		Items []JobCardItemRequest `json:"items" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var card models.JobCard
	if err := database.DB.First(&card, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job card not found"})
		return
	}

	tx := database.DB.Begin()
	for _, itemReq := range req.Items {
		purity, err := gold.PurityFromWeight(itemReq.GivenWeight, itemReq.Touch)
		if err != nil {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		item := models.JobCardItem{
			JobCardID:           card.ID,
			MasterItemID:        itemReq.MasterItemID,
			OriginalGivenWeight: itemReq.GivenWeight,
			GivenWeight:         itemReq.GivenWeight,
			Touch:               itemReq.Touch,
			EstimateWeight:      itemReq.EstimateWeight,
			Purity:              purity,
		}
		if err := tx.Create(&item).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to append item"})
			return
		}
	}
	tx.Commit()
	c.JSON(http.StatusOK, gin.H{"message": "Items added"})
}
