package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/boobalan-mca23/jeevagold/internal/gold"
	"github.com/boobalan-mca23/jeevagold/internal/models"
	"github.com/boobalan-mca23/jeevagold/pkg/database"
)

type JewelStockHandler struct{}

type JewelStockRequest struct {
	JewelName   string          `json:"jewel_name" binding:"required"`
	Weight      decimal.Decimal `json:"weight" binding:"required"`
	StoneWeight decimal.Decimal `json:"stone_weight"`
	Touch       decimal.Decimal `json:"touch" binding:"required"`
}

// buildJewel derives the net metal weight and its fine-gold content.
func buildJewel(req JewelStockRequest) (models.JewelStock, error) {
	final := gold.RoundWeight(req.Weight.Sub(req.StoneWeight))
	purity, err := gold.PurityFromWeight(final, req.Touch)
	if err != nil {
		return models.JewelStock{}, err
	}
	return models.JewelStock{
		JewelName:   req.JewelName,
		Weight:      req.Weight,
		StoneWeight: req.StoneWeight,
		FinalWeight: final,
		Touch:       req.Touch,
		PurityValue: purity,
	}, nil
}

func (h *JewelStockHandler) Create(c *gin.Context) {
	var req JewelStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	jewel, err := buildJewel(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := database.DB.Create(&jewel).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create jewel stock"})
		return
	}
	c.JSON(http.StatusCreated, jewel)
}

func (h *JewelStockHandler) List(c *gin.Context) {
	var jewels []models.JewelStock
	if err := database.DB.Order("created_at desc").Find(&jewels).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch jewel stock"})
		return
	}

	totalPurity := decimal.Zero
	for _, j := range jewels {
		totalPurity = totalPurity.Add(j.PurityValue)
	}
	c.JSON(http.StatusOK, gin.H{"jewels": jewels, "total_purity": totalPurity})
}

func (h *JewelStockHandler) Update(c *gin.Context) {
	var jewel models.JewelStock
	if err := database.DB.First(&jewel, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Jewel stock not found"})
		return
	}

	var req JewelStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := buildJewel(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated.ID = jewel.ID
	updated.CreatedAt = jewel.CreatedAt
	if err := database.DB.Save(&updated).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update jewel stock"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *JewelStockHandler) Delete(c *gin.Context) {
	if err := database.DB.Delete(&models.JewelStock{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete jewel stock"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Jewel stock deleted"})
}
