package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/models"
	"github.com/bodo2020/market-maadaoui-sells-sub000/pkg/database"
)

type CRMHandler struct{}

type CreateCustomerRequest struct {
	Name           string `json:"name" binding:"required"`
	Mobile         string `json:"mobile" binding:"required"`
	Address        string `json:"address"`
	DeliveryZoneID *uint  `json:"delivery_zone_id"`
	Notes          string `json:"notes"`
}

func (h *CRMHandler) CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer := models.Customer{
		Name:           req.Name,
		Mobile:         req.Mobile,
		Address:        req.Address,
		DeliveryZoneID: req.DeliveryZoneID,
		Notes:          req.Notes,
	}

	if err := database.DB.Create(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer (Mobile might be duplicate)"})
		return
	}

	c.JSON(http.StatusCreated, customer)
}

func (h *CRMHandler) UpdateCustomer(c *gin.Context) {
	id := c.Param("id")
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := database.DB.Model(&models.Customer{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":             req.Name,
		"mobile":           req.Mobile,
		"address":          req.Address,
		"delivery_zone_id": req.DeliveryZoneID,
		"notes":            req.Notes,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer updated"})
}

func (h *CRMHandler) SearchCustomers(c *gin.Context) {
	query := c.Query("q")
	customers := []models.Customer{}
	if query == "" {
		database.DB.Preload("DeliveryZone").Limit(20).Find(&customers)
	} else {
		database.DB.Preload("DeliveryZone").Where("name LIKE ? OR mobile LIKE ?", "%"+query+"%", "%"+query+"%").Find(&customers)
	}
	c.JSON(http.StatusOK, customers)
}

// GetCustomerHistory lists a customer's past sales matched by phone number;
// POS sales only snapshot name and phone, they carry no customer foreign key.
func (h *CRMHandler) GetCustomerHistory(c *gin.Context) {
	id := c.Param("id")

	var customer models.Customer
	if err := database.DB.First(&customer, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	var sales []models.Sale
	if err := database.DB.Preload("Items").
		Where("customer_phone = ?", customer.Mobile).
		Order("sale_date desc").Limit(50).
		Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchase history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer": customer,
		"sales":    sales,
	})
}
