package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/models"
	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/pos"
	"github.com/bodo2020/market-maadaoui-sells-sub000/pkg/database"
)

// POSHandler exposes the point-of-sale flow: session lifecycle, scanning,
// cart mutation and checkout.
type POSHandler struct {
	sessions    *pos.SessionStore
	interpreter *pos.Interpreter
	finalizer   *pos.Finalizer
}

func NewPOSHandler(sessions *pos.SessionStore, interpreter *pos.Interpreter, finalizer *pos.Finalizer) *POSHandler {
	return &POSHandler{
		sessions:    sessions,
		interpreter: interpreter,
		finalizer:   finalizer,
	}
}

func (h *POSHandler) OpenSession(c *gin.Context) {
	var req struct {
		RegisterKind string `json:"register_kind"`
	}
	// body is optional; register defaults to the store register
	_ = c.ShouldBindJSON(&req)

	userID := c.GetUint("userID")
	session := h.sessions.Open(userID, req.RegisterKind)

	c.JSON(http.StatusCreated, gin.H{
		"session_id":    session.ID,
		"register_kind": session.RegisterKind,
	})
}

func (h *POSHandler) CloseSession(c *gin.Context) {
	h.sessions.Close(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "Session closed"})
}

func (h *POSHandler) GetCart(c *gin.Context) {
	session, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	session.Lock()
	defer session.Unlock()
	c.JSON(http.StatusOK, cartView(session.Cart))
}

type ScanRequest struct {
	Token string `json:"token" binding:"required"`
}

// Scan runs a scanned or typed token through the barcode interpreter and
// applies the resulting cart action. Tokens that need disambiguation or a
// manual weight are returned to the client unapplied.
func (h *POSHandler) Scan(c *gin.Context) {
	session, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.interpreter.Interpret(c.Request.Context(), req.Token)
	if err != nil {
		posError(c, err)
		return
	}

	session.Lock()
	defer session.Unlock()
	h.applyScanResult(c, session, result)
}

// applyScanResult applies an interpreted token to the session cart and writes
// the response. Caller must hold the session lock.
func (h *POSHandler) applyScanResult(c *gin.Context, session *pos.Session, result *pos.ScanResult) {
	switch result.Action {
	case pos.ActionAddUnit:
		session.Cart.AddNormal(result.Product)
	case pos.ActionAddBulk:
		if err := session.Cart.AddBulk(result.Product); err != nil {
			posError(c, err)
			return
		}
	case pos.ActionAddWeighted:
		if err := session.Cart.AddWeighted(result.Product, result.WeightKg); err != nil {
			posError(c, err)
			return
		}
	case pos.ActionNeedWeight:
		c.JSON(http.StatusOK, gin.H{"action": result.Action, "product": result.Product})
		return
	case pos.ActionSearchResult:
		c.JSON(http.StatusOK, gin.H{"action": result.Action, "matches": result.Matches})
		return
	}

	c.JSON(http.StatusOK, gin.H{"action": result.Action, "cart": cartView(session.Cart)})
}

type KeyRequest struct {
	Char string `json:"char" binding:"required"`
}

// PushKey feeds one keyboard-wedge keystroke into the session's scan buffer.
// Enter flushes the pending token; otherwise a token completes when the gap
// since the previous keystroke exceeds the debounce window. Completed tokens
// run through the interpreter; sub-length fragments are typing noise and are
// dropped silently.
func (h *POSHandler) PushKey(c *gin.Context) {
	session, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	var req KeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session.Lock()
	defer session.Unlock()

	r := []rune(req.Char)[0]
	var token string
	var done bool
	if r == '\n' || r == '\r' {
		token, done = session.Scanner.Flush()
	} else {
		token, done = session.Scanner.Push(r)
	}

	if !done {
		c.JSON(http.StatusAccepted, gin.H{"status": "buffered"})
		return
	}

	result, err := h.interpreter.Interpret(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, pos.ErrTokenTooShort) {
			c.JSON(http.StatusAccepted, gin.H{"status": "discarded"})
			return
		}
		posError(c, err)
		return
	}
	h.applyScanResult(c, session, result)
}

type AddLineRequest struct {
	ProductID uint             `json:"product_id" binding:"required"`
	Weight    *decimal.Decimal `json:"weight"`
	Bulk      bool             `json:"bulk"`
}

// AddLine adds a product picked manually (search result click or favorite).
// Scale products require an explicit weight.
func (h *POSHandler) AddLine(c *gin.Context) {
	session, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	var req AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var product models.Product
	if err := database.DB.Where("id = ? AND is_active = ?", req.ProductID, true).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	session.Lock()
	defer session.Unlock()

	switch {
	case req.Bulk:
		if err := session.Cart.AddBulk(&product); err != nil {
			posError(c, err)
			return
		}
	case product.BarcodeKind == models.BarcodeKindScale:
		if req.Weight == nil || !req.Weight.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Weight required for scale products"})
			return
		}
		if err := session.Cart.AddWeighted(&product, *req.Weight); err != nil {
			posError(c, err)
			return
		}
	default:
		session.Cart.AddNormal(&product)
	}

	c.JSON(http.StatusOK, cartView(session.Cart))
}

func (h *POSHandler) ChangeQuantity(c *gin.Context) {
	session, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid line index"})
		return
	}

	var req struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session.Lock()
	defer session.Unlock()

	if err := session.Cart.ChangeQuantity(index, req.Delta); err != nil {
		posError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartView(session.Cart))
}

func (h *POSHandler) RemoveLine(c *gin.Context) {
	session, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid line index"})
		return
	}

	session.Lock()
	defer session.Unlock()

	if err := session.Cart.Remove(index); err != nil {
		posError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartView(session.Cart))
}

// PaymentDefaults returns the pre-filled amounts for a freshly selected
// payment method.
func (h *POSHandler) PaymentDefaults(c *gin.Context) {
	session, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	session.Lock()
	total := session.Cart.Total()
	session.Unlock()

	payment := pos.DefaultPayment(c.Query("method"), total)
	c.JSON(http.StatusOK, payment)
}

type CheckoutRequest struct {
	IdempotencyKey string          `json:"idempotency_key"`
	Method         string          `json:"method" binding:"required"`
	CashAmount     decimal.Decimal `json:"cash_amount"`
	CardAmount     decimal.Decimal `json:"card_amount"`
	CustomerName   string          `json:"customer_name"`
	CustomerPhone  string          `json:"customer_phone"`
}

func (h *POSHandler) Checkout(c *gin.Context) {
	session, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session.Lock()
	defer session.Unlock()

	if err := session.BeginCheckout(); err != nil {
		posError(c, err)
		return
	}
	defer session.EndCheckout()

	result, err := h.finalizer.Complete(c.Request.Context(), session.Cart, pos.CheckoutRequest{
		IdempotencyKey: req.IdempotencyKey,
		Payment: pos.Payment{
			Method: req.Method,
			Cash:   req.CashAmount,
			Card:   req.CardAmount,
		},
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		RegisterKind:  session.RegisterKind,
		UserID:        session.UserID,
	})
	if err != nil {
		posError(c, err)
		return
	}

	if !result.Duplicate {
		session.Cart.Clear()
	}

	c.JSON(http.StatusCreated, gin.H{
		"invoice_no": result.Sale.InvoiceNo,
		"sale_id":    result.Sale.ID,
		"total":      result.Sale.Total,
		"change":     result.Change,
		"duplicate":  result.Duplicate,
		"warnings":   result.Warnings,
	})
}

func cartView(cart *pos.Cart) gin.H {
	lines := cart.Lines()
	if lines == nil {
		lines = []pos.CartLine{}
	}
	return gin.H{
		"lines":    lines,
		"subtotal": cart.Subtotal(),
		"discount": cart.Discount(),
		"total":    cart.Total(),
	}
}

// posError maps core errors onto HTTP statuses following the failure
// taxonomy: lookup failures 404, validation failures 400, contention 409.
func posError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pos.ErrProductNotFound), errors.Is(err, pos.ErrLineNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, pos.ErrCheckoutInProgress), errors.Is(err, pos.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, pos.ErrTokenTooShort),
		errors.Is(err, pos.ErrOutOfStock),
		errors.Is(err, pos.ErrStockLimit),
		errors.Is(err, pos.ErrBulkIncomplete),
		errors.Is(err, pos.ErrWeightLineQuantity),
		errors.Is(err, pos.ErrPaymentMismatch),
		errors.Is(err, pos.ErrUnknownMethod),
		errors.Is(err, pos.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed, please retry"})
	}
}
