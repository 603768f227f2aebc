package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/cache"
	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/models"
	"github.com/bodo2020/market-maadaoui-sells-sub000/pkg/database"
)

type InventoryHandler struct {
	// scanCache is nil when redis is not configured
	scanCache *cache.CachedProductLookup
}

func NewInventoryHandler(scanCache *cache.CachedProductLookup) *InventoryHandler {
	return &InventoryHandler{scanCache: scanCache}
}

func (h *InventoryHandler) invalidate(c *gin.Context, product *models.Product) {
	if h.scanCache != nil {
		h.scanCache.Invalidate(c.Request.Context(), product)
	}
}

func (h *InventoryHandler) ListProducts(c *gin.Context) {
	var products []models.Product
	query := database.DB.Preload("Category").Where("is_active = ?", true)

	if q := c.Query("q"); q != "" {
		query = query.Where("name LIKE ? OR barcode = ?", "%"+q+"%", q)
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	if err := query.Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

type CreateProductRequest struct {
	Name              string           `json:"name" binding:"required"`
	CategoryID        *uint            `json:"category_id"`
	Description       string           `json:"description"`
	UnitPrice         decimal.Decimal  `json:"unit_price" binding:"required"`
	OfferPrice        *decimal.Decimal `json:"offer_price"`
	PurchasePrice     decimal.Decimal  `json:"purchase_price"`
	Barcode           string           `json:"barcode"`
	BarcodeKind       string           `json:"barcode_kind"`
	ScaleCode         string           `json:"scale_code"`
	BulkBarcode       string           `json:"bulk_barcode"`
	BulkQuantity      int              `json:"bulk_quantity"`
	BulkPrice         decimal.Decimal  `json:"bulk_price"`
	LowStockThreshold decimal.Decimal  `json:"low_stock_threshold"`
	OpeningStock      decimal.Decimal  `json:"opening_stock"`
	ImageURL          string           `json:"image_url"`
}

func (req *CreateProductRequest) validate() string {
	if req.BarcodeKind == "" {
		req.BarcodeKind = models.BarcodeKindNormal
	}
	if req.BarcodeKind != models.BarcodeKindNormal && req.BarcodeKind != models.BarcodeKindScale {
		return "barcode_kind must be 'normal' or 'scale'"
	}
	if req.BarcodeKind == models.BarcodeKindScale && len(req.ScaleCode) != 6 {
		return "scale products require a 6-digit scale_code"
	}
	// bulk pricing must be independent of unit price, so all three fields
	// come together or not at all
	bulkConfigured := req.BulkBarcode != "" || req.BulkQuantity != 0 || req.BulkPrice.IsPositive()
	if bulkConfigured && (req.BulkBarcode == "" || req.BulkQuantity <= 0 || !req.BulkPrice.IsPositive()) {
		return "bulk pack requires barcode, positive quantity and positive price"
	}
	return ""
}

func (h *InventoryHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	userID := c.GetUint("userID")

	tx := database.DB.Begin()

	product := models.Product{
		Name:              req.Name,
		CategoryID:        req.CategoryID,
		Description:       req.Description,
		UnitPrice:         req.UnitPrice,
		OfferPrice:        req.OfferPrice,
		PurchasePrice:     req.PurchasePrice,
		Barcode:           req.Barcode,
		BarcodeKind:       req.BarcodeKind,
		ScaleCode:         req.ScaleCode,
		BulkBarcode:       req.BulkBarcode,
		BulkQuantity:      req.BulkQuantity,
		BulkPrice:         req.BulkPrice,
		LowStockThreshold: req.LowStockThreshold,
		StockQuantity:     req.OpeningStock,
		ImageURL:          req.ImageURL,
		IsActive:          true,
	}

	if err := tx.Create(&product).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	if req.OpeningStock.IsPositive() {
		entry := models.StockEntry{
			ProductID:     product.ID,
			QuantityAdded: req.OpeningStock,
			AddedBy:       userID,
		}
		if err := tx.Create(&entry).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log opening stock"})
			return
		}
	}

	tx.Commit()

	c.JSON(http.StatusCreated, product)
}

func (h *InventoryHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")

	var product models.Product
	if err := database.DB.First(&product, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	// Drop stale scan-cache entries for the old barcodes before they change
	h.invalidate(c, &product)

	updates := map[string]interface{}{
		"name":                req.Name,
		"category_id":         req.CategoryID,
		"description":         req.Description,
		"unit_price":          req.UnitPrice,
		"offer_price":         req.OfferPrice,
		"purchase_price":      req.PurchasePrice,
		"barcode":             req.Barcode,
		"barcode_kind":        req.BarcodeKind,
		"scale_code":          req.ScaleCode,
		"bulk_barcode":        req.BulkBarcode,
		"bulk_quantity":       req.BulkQuantity,
		"bulk_price":          req.BulkPrice,
		"low_stock_threshold": req.LowStockThreshold,
		"image_url":           req.ImageURL,
	}

	if err := database.DB.Model(&product).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *InventoryHandler) DeactivateProduct(c *gin.Context) {
	id := c.Param("id")

	var product models.Product
	if err := database.DB.First(&product, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if err := database.DB.Model(&product).Update("is_active", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate product"})
		return
	}

	h.invalidate(c, &product)
	c.JSON(http.StatusOK, gin.H{"message": "Product deactivated"})
}

type AddStockRequest struct {
	ProductID uint            `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
}

func (h *InventoryHandler) AddStock(c *gin.Context) {
	var req AddStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Quantity.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be positive"})
		return
	}

	userID := c.GetUint("userID")

	tx := database.DB.Begin()

	res := tx.Model(&models.Product{}).Where("id = ?", req.ProductID).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", req.Quantity))
	if res.Error != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
		return
	}
	// Zero rows means the product does not exist; never write an audit row
	// pointing at nothing.
	if res.RowsAffected == 0 {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	entry := models.StockEntry{
		ProductID:     req.ProductID,
		QuantityAdded: req.Quantity,
		AddedBy:       userID,
	}

	if err := tx.Create(&entry).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log stock entry"})
		return
	}

	tx.Commit()
	c.JSON(http.StatusOK, gin.H{"message": "Stock added successfully"})
}

func (h *InventoryHandler) GetLowStockAlerts(c *gin.Context) {
	var products []models.Product
	if err := database.DB.Preload("Category").Where("stock_quantity <= low_stock_threshold AND is_active = ?", true).Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch alerts"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// Category Handlers
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *InventoryHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := database.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *InventoryHandler) UpdateCategory(c *gin.Context) {
	id := c.Param("id")
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := database.DB.Model(&models.Category{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category updated"})
}

func (h *InventoryHandler) DeleteCategory(c *gin.Context) {
	id := c.Param("id")

	var count int64
	database.DB.Model(&models.Product{}).Where("category_id = ?", id).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Category still has products"})
		return
	}

	if err := database.DB.Delete(&models.Category{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

func (h *InventoryHandler) ListCategories(c *gin.Context) {
	var categories []models.Category
	if err := database.DB.Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}
