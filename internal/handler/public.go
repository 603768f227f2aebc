package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bodo2020/market-maadaoui-sells-sub000/config"
	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/models"
	"github.com/bodo2020/market-maadaoui-sells-sub000/pkg/database"
)

type PublicHandler struct{}

func (h *PublicHandler) GetStoreInfo(c *gin.Context) {
	c.JSON(http.StatusOK, config.AppConfig.Store)
}

func (h *PublicHandler) GetPublicConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"company_name":    config.AppConfig.Defaults.CompanyName,
		"company_address": config.AppConfig.Defaults.CompanyAddress,
		"company_phone":   config.AppConfig.Defaults.CompanyPhone,
	})
}

func (h *PublicHandler) ListPublicProducts(c *gin.Context) {
	var products []models.Product
	// Show all active products (including out of stock)
	if err := database.DB.Preload("Category").Where("is_active = ?", true).Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// ListPublicZones exposes delivery fees so customers can check their
// neighborhood before ordering.
func (h *PublicHandler) ListPublicZones(c *gin.Context) {
	var zones []models.DeliveryZone
	if err := database.DB.Where("is_active = ?", true).Order("name asc").Find(&zones).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch zones"})
		return
	}
	c.JSON(http.StatusOK, zones)
}
