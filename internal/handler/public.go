package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boobalan-mca23/jeevagold/config"
)

type PublicHandler struct{}

// GetShopInfo serves the shop identity for the client header and printed
// bills.
func (h *PublicHandler) GetShopInfo(c *gin.Context) {
	c.JSON(http.StatusOK, config.AppConfig.Shop)
}
