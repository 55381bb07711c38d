package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boobalan-mca23/jeevagold/internal/models"
	"github.com/boobalan-mca23/jeevagold/pkg/database"
)

type CustomerHandler struct{}

type CustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Phone != "" {
		var existing models.Customer
		if err := database.DB.Where("phone = ?", req.Phone).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Customer with this phone already exists"})
			return
		}
	}

	customer := models.Customer{Name: req.Name, Phone: req.Phone, Address: req.Address}
	if err := database.DB.Create(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) List(c *gin.Context) {
	query := database.DB.Order("name asc")
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ? OR phone LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var customers []models.Customer
	if err := query.Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) Get(c *gin.Context) {
	var customer models.Customer
	if err := database.DB.First(&customer, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Update(c *gin.Context) {
	var customer models.Customer
	if err := database.DB.First(&customer, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer.Name = req.Name
	customer.Phone = req.Phone
	customer.Address = req.Address
	if err := database.DB.Save(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	var count int64
	database.DB.Model(&models.Bill{}).Where("customer_id = ?", c.Param("id")).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Customer has bills and cannot be deleted"})
		return
	}

	if err := database.DB.Delete(&models.Customer{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete customer"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted"})
}
