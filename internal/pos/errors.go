package pos

import "errors"

var (
	ErrTokenTooShort      = errors.New("scan token too short to be a barcode")
	ErrProductNotFound    = errors.New("product not found")
	ErrOutOfStock         = errors.New("product is out of stock")
	ErrStockLimit         = errors.New("requested quantity exceeds available stock")
	ErrBulkIncomplete     = errors.New("bulk pack configuration is incomplete")
	ErrWeightLineQuantity = errors.New("weight-based line quantity cannot be changed")
	ErrLineNotFound       = errors.New("cart line not found")
	ErrPaymentMismatch    = errors.New("payment amounts do not reconcile with total")
	ErrUnknownMethod      = errors.New("unknown payment method")
	ErrEmptyCart          = errors.New("cart is empty, nothing to checkout")
	ErrInsufficientStock  = errors.New("insufficient stock to complete sale")
	ErrCheckoutInProgress = errors.New("checkout already in progress for this session")
	ErrSaleNotFound       = errors.New("sale not found")
)
