package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boobalan-mca23/jeevagold/internal/models"
	"github.com/boobalan-mca23/jeevagold/pkg/database"
)

type GoldsmithHandler struct{}

type GoldsmithRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (h *GoldsmithHandler) Create(c *gin.Context) {
	var req GoldsmithRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goldsmith := models.Goldsmith{Name: req.Name, Phone: req.Phone, Address: req.Address}
	if err := database.DB.Create(&goldsmith).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create goldsmith"})
		return
	}
	c.JSON(http.StatusCreated, goldsmith)
}

func (h *GoldsmithHandler) List(c *gin.Context) {
	var goldsmiths []models.Goldsmith
	if err := database.DB.Order("name asc").Find(&goldsmiths).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch goldsmiths"})
		return
	}
	c.JSON(http.StatusOK, goldsmiths)
}

func (h *GoldsmithHandler) Update(c *gin.Context) {
	var goldsmith models.Goldsmith
	if err := database.DB.First(&goldsmith, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Goldsmith not found"})
		return
	}

	var req GoldsmithRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goldsmith.Name = req.Name
	goldsmith.Phone = req.Phone
	goldsmith.Address = req.Address
	if err := database.DB.Save(&goldsmith).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update goldsmith"})
		return
	}
	c.JSON(http.StatusOK, goldsmith)
}

func (h *GoldsmithHandler) Delete(c *gin.Context) {
	var count int64
	database.DB.Model(&models.JobCard{}).Where("goldsmith_id = ?", c.Param("id")).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Goldsmith has job cards and cannot be deleted"})
		return
	}

	if err := database.DB.Delete(&models.Goldsmith{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete goldsmith"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Goldsmith deleted"})
}

type MasterItemHandler struct{}

func (h *MasterItemHandler) Create(c *gin.Context) {
	var req struct {
		ItemName string `json:"item_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := models.MasterItem{ItemName: req.ItemName}
	if err := database.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Item already exists"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *MasterItemHandler) List(c *gin.Context) {
	var items []models.MasterItem
	if err := database.DB.Order("item_name asc").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch master items"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *MasterItemHandler) Update(c *gin.Context) {
	var item models.MasterItem
	if err := database.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	var req struct {
		ItemName string `json:"item_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item.ItemName = req.ItemName
	if err := database.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *MasterItemHandler) Delete(c *gin.Context) {
	if err := database.DB.Delete(&models.MasterItem{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}
