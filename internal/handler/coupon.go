package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/models"
	"github.com/bodo2020/market-maadaoui-sells-sub000/pkg/database"
)

type CouponHandler struct{}

type CouponRequest struct {
	Code            string          `json:"code" binding:"required"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	ExpiresAt       *time.Time      `json:"expires_at"`
}

func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// one discount kind per coupon
	if req.DiscountPercent.IsPositive() == req.DiscountAmount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coupon needs exactly one of discount_percent or discount_amount"})
		return
	}

	coupon := models.Coupon{
		Code:            strings.ToUpper(strings.TrimSpace(req.Code)),
		DiscountPercent: req.DiscountPercent,
		DiscountAmount:  req.DiscountAmount,
		ExpiresAt:       req.ExpiresAt,
		IsActive:        true,
	}

	if err := database.DB.Create(&coupon).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create coupon (code might be duplicate)"})
		return
	}
	c.JSON(http.StatusCreated, coupon)
}

func (h *CouponHandler) ListCoupons(c *gin.Context) {
	var coupons []models.Coupon
	if err := database.DB.Order("created_at desc").Find(&coupons).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch coupons"})
		return
	}
	c.JSON(http.StatusOK, coupons)
}

func (h *CouponHandler) DeactivateCoupon(c *gin.Context) {
	id := c.Param("id")
	if err := database.DB.Model(&models.Coupon{}).Where("id = ?", id).Update("is_active", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate coupon"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Coupon deactivated"})
}

// ValidateCoupon resolves an entered code for the POS screen.
func (h *CouponHandler) ValidateCoupon(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.Query("code")))
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coupon code required"})
		return
	}

	var coupon models.Coupon
	if err := database.DB.Where("code = ? AND is_active = ?", code, true).First(&coupon).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
		return
	}

	if coupon.ExpiresAt != nil && coupon.ExpiresAt.Before(time.Now()) {
		c.JSON(http.StatusGone, gin.H{"error": "Coupon expired"})
		return
	}

	c.JSON(http.StatusOK, coupon)
}
