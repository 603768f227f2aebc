package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/models"
	"github.com/bodo2020/market-maadaoui-sells-sub000/pkg/database"
)

type DeliveryHandler struct{}

type DeliveryZoneRequest struct {
	Name string          `json:"name" binding:"required"`
	Fee  decimal.Decimal `json:"fee"`
}

func (h *DeliveryHandler) CreateZone(c *gin.Context) {
	var req DeliveryZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Fee.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fee cannot be negative"})
		return
	}

	zone := models.DeliveryZone{
		Name:     req.Name,
		Fee:      req.Fee,
		IsActive: true,
	}

	if err := database.DB.Create(&zone).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create zone (name might be duplicate)"})
		return
	}
	c.JSON(http.StatusCreated, zone)
}

func (h *DeliveryHandler) ListZones(c *gin.Context) {
	var zones []models.DeliveryZone
	query := database.DB.Order("name asc")
	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&zones).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch zones"})
		return
	}
	c.JSON(http.StatusOK, zones)
}

func (h *DeliveryHandler) UpdateZone(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		Name     string          `json:"name" binding:"required"`
		Fee      decimal.Decimal `json:"fee"`
		IsActive bool            `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Fee.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fee cannot be negative"})
		return
	}

	if err := database.DB.Model(&models.DeliveryZone{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":      req.Name,
		"fee":       req.Fee,
		"is_active": req.IsActive,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update zone"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Zone updated"})
}

func (h *DeliveryHandler) DeleteZone(c *gin.Context) {
	id := c.Param("id")

	var count int64
	database.DB.Model(&models.Customer{}).Where("delivery_zone_id = ?", id).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Zone still has customers assigned"})
		return
	}

	if err := database.DB.Delete(&models.DeliveryZone{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete zone"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Zone deleted"})
}
