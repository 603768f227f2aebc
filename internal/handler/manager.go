package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/models"
	"github.com/bodo2020/market-maadaoui-sells-sub000/pkg/database"
)

type ManagerHandler struct{}

func (h *ManagerHandler) GetSalesReport(c *gin.Context) {
	startDateStr := c.Query("start_date")
	endDateStr := c.Query("end_date")

	var sales []models.Sale
	query := database.DB.Preload("Items").Preload("User")

	if startDateStr != "" && endDateStr != "" {
		startDate, _ := time.Parse("2006-01-02", startDateStr)
		endDate, _ := time.Parse("2006-01-02", endDateStr)
		endDate = endDate.Add(23*time.Hour + 59*time.Minute + 59*time.Second)

		query = query.Where("sale_date BETWEEN ? AND ?", startDate, endDate)
	}

	if err := query.Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales report"})
		return
	}

	totalRevenue := decimal.Zero
	totalProfit := decimal.Zero
	var totalTransactions int
	var itemsSold int
	byMethod := map[string]decimal.Decimal{}

	for _, sale := range sales {
		totalRevenue = totalRevenue.Add(sale.Total)
		totalProfit = totalProfit.Add(sale.Profit)
		totalTransactions++
		byMethod[sale.PaymentMethod] = byMethod[sale.PaymentMethod].Add(sale.Total)
		for _, item := range sale.Items {
			if item.Weight != nil {
				itemsSold++ // a weighed line counts as one item
			} else {
				itemsSold += item.Quantity
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": gin.H{
			"total_revenue":      totalRevenue,
			"total_profit":       totalProfit,
			"total_transactions": totalTransactions,
			"items_sold":         itemsSold,
			"by_payment_method":  byMethod,
		},
		"transactions": sales,
	})
}

func (h *ManagerHandler) ListSales(c *gin.Context) {
	page := 1
	limit := 10

	if c.Query("page") != "" {
		fmt.Sscanf(c.Query("page"), "%d", &page)
	}
	if c.Query("limit") != "" {
		fmt.Sscanf(c.Query("limit"), "%d", &limit)
	}

	offset := (page - 1) * limit

	var sales []models.Sale
	var total int64

	database.DB.Model(&models.Sale{}).Count(&total)

	if err := database.DB.Preload("User").Preload("Items").Preload("Items.Product").Order("sale_date desc").Limit(limit).Offset(offset).Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  sales,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func (h *ManagerHandler) MyTodaySales(c *gin.Context) {
	userID := c.GetUint("userID")
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	var sales []models.Sale
	if err := database.DB.Where("user_id = ? AND sale_date >= ? AND sale_date < ?", userID, startOfDay, endOfDay).
		Order("sale_date desc").Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales data"})
		return
	}

	total := decimal.Zero
	hourlySales := make([]decimal.Decimal, 24)

	for _, sale := range sales {
		total = total.Add(sale.Total)
		hour := sale.SaleDate.Hour()
		if hour >= 0 && hour < 24 {
			hourlySales[hour] = hourlySales[hour].Add(sale.Total)
		}
	}

	var recentSales []models.Sale
	if len(sales) > 5 {
		recentSales = sales[:5]
	} else {
		recentSales = sales
	}

	c.JSON(http.StatusOK, gin.H{
		"sales":        total,
		"hourly_sales": hourlySales,
		"recent_sales": recentSales,
	})
}

func (h *ManagerHandler) GetDashboardStats(c *gin.Context) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var todayCount int64
	database.DB.Model(&models.Sale{}).Where("sale_date >= ?", startOfDay).Count(&todayCount)

	var todaySales []models.Sale
	database.DB.Where("sale_date >= ?", startOfDay).Find(&todaySales)

	todayRevenue := decimal.Zero
	todayProfit := decimal.Zero
	for _, sale := range todaySales {
		todayRevenue = todayRevenue.Add(sale.Total)
		todayProfit = todayProfit.Add(sale.Profit)
	}

	var lowStock int64
	database.DB.Model(&models.Product{}).Where("stock_quantity <= low_stock_threshold AND is_active = ?", true).Count(&lowStock)

	var customers int64
	database.DB.Model(&models.Customer{}).Count(&customers)

	c.JSON(http.StatusOK, gin.H{
		"today_transactions": todayCount,
		"today_revenue":      todayRevenue,
		"today_profit":       todayProfit,
		"low_stock_products": lowStock,
		"total_customers":    customers,
	})
}
