package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/models"
	"github.com/bodo2020/market-maadaoui-sells-sub000/pkg/database"
)

type RegisterHandler struct{}

func validRegisterKind(kind string) bool {
	return kind == models.RegisterStore || kind == models.RegisterOnline
}

func (h *RegisterHandler) ListMovements(c *gin.Context) {
	kind := c.DefaultQuery("register", models.RegisterStore)
	if !validRegisterKind(kind) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown register"})
		return
	}

	query := database.DB.Preload("User").Where("register_kind = ?", kind).Order("created_at desc")

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			query = query.Where("created_at >= ?", startDate)
		}
	}
	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			query = query.Where("created_at < ?", endDate.Add(24*time.Hour))
		}
	}

	var movements []models.CashMovement
	if err := query.Limit(200).Find(&movements).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch movements"})
		return
	}
	c.JSON(http.StatusOK, movements)
}

type ManualMovementRequest struct {
	RegisterKind string          `json:"register_kind" binding:"required"`
	Type         string          `json:"type" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Description  string          `json:"description"`
}

func (h *RegisterHandler) CreateMovement(c *gin.Context) {
	var req ManualMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !validRegisterKind(req.RegisterKind) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown register"})
		return
	}
	if req.Type != models.MovementDeposit && req.Type != models.MovementWithdrawal {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type must be deposit or withdrawal"})
		return
	}
	if !req.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be positive"})
		return
	}

	movement := models.CashMovement{
		RegisterKind: req.RegisterKind,
		Type:         req.Type,
		Amount:       req.Amount,
		Description:  req.Description,
		CreatedBy:    c.GetUint("userID"),
	}

	if err := database.DB.Create(&movement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record movement"})
		return
	}
	c.JSON(http.StatusCreated, movement)
}

// GetBalance sums the ledger: deposits minus withdrawals per register.
func (h *RegisterHandler) GetBalance(c *gin.Context) {
	type kindBalance struct {
		RegisterKind string          `json:"register_kind"`
		Balance      decimal.Decimal `json:"balance"`
	}

	balances := []kindBalance{}
	for _, kind := range []string{models.RegisterStore, models.RegisterOnline} {
		var movements []models.CashMovement
		if err := database.DB.Where("register_kind = ?", kind).Find(&movements).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
			return
		}

		balance := decimal.Zero
		for _, m := range movements {
			if m.Type == models.MovementDeposit {
				balance = balance.Add(m.Amount)
			} else {
				balance = balance.Sub(m.Amount)
			}
		}
		balances = append(balances, kindBalance{RegisterKind: kind, Balance: balance})
	}

	c.JSON(http.StatusOK, balances)
}
