package pos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/models"
)

// SaleRepository owns the transactional part of checkout: the sale insert and
// the stock decrements succeed or fail together.
type SaleRepository interface {
	// FindByIdempotencyKey returns ErrSaleNotFound when no sale carries the key.
	FindByIdempotencyKey(ctx context.Context, key string) (*models.Sale, error)
	NextInvoiceNo(ctx context.Context) (string, error)
	// CreateWithStockDecrement persists the sale and conditionally decrements
	// stock for every item in one transaction. Returns ErrInsufficientStock
	// when any decrement would drive stock negative.
	CreateWithStockDecrement(ctx context.Context, sale *models.Sale) error
}

// RegisterLedger appends deposit movements to a register. Best-effort from
// the finalizer's point of view.
type RegisterLedger interface {
	RecordDeposit(ctx context.Context, movement *models.CashMovement) error
}

// Printer is the receipt peripheral. Connection state is queried, not managed.
type Printer interface {
	Connected() bool
	Print(payload string) error
}

type Finalizer struct {
	sales   SaleRepository
	ledger  RegisterLedger
	printer Printer
	log     *zap.Logger
}

func NewFinalizer(sales SaleRepository, ledger RegisterLedger, printer Printer, log *zap.Logger) *Finalizer {
	return &Finalizer{sales: sales, ledger: ledger, printer: printer, log: log}
}

type CheckoutRequest struct {
	IdempotencyKey string
	Payment        Payment
	CustomerName   string
	CustomerPhone  string
	RegisterKind   string
	UserID         uint
}

type CheckoutResult struct {
	Sale      *models.Sale
	Change    decimal.Decimal
	Duplicate bool
	// Warnings carry secondary side-effect failures (ledger, printing) that
	// did not roll back the sale.
	Warnings []string
}

// Complete finalizes a checkout. Payment validation and the sale/stock
// transaction abort on failure and leave the cart untouched; the register
// deposit and receipt print run after commit and only surface warnings.
func (f *Finalizer) Complete(ctx context.Context, cart *Cart, req CheckoutRequest) (*CheckoutResult, error) {
	// The idempotency lookup must run before any cart or payment check: on a
	// retry after a committed sale the cart is already cleared, and the
	// client still needs the committed result back.
	if req.IdempotencyKey != "" {
		existing, err := f.sales.FindByIdempotencyKey(ctx, req.IdempotencyKey)
		if err != nil && !errors.Is(err, ErrSaleNotFound) {
			return nil, fmt.Errorf("idempotency check failed: %w", err)
		}
		if existing != nil {
			f.log.Info("duplicate checkout request",
				zap.String("idempotency_key", req.IdempotencyKey),
				zap.String("invoice_no", existing.InvoiceNo))
			return &CheckoutResult{Sale: existing, Change: existing.ChangeDue, Duplicate: true}, nil
		}
	}

	if cart.Empty() {
		return nil, ErrEmptyCart
	}

	total := cart.Total()

	// Amounts are re-validated here regardless of what the client checked.
	change, err := ValidatePayment(req.Payment, total)
	if err != nil {
		return nil, err
	}

	invoiceNo, err := f.sales.NextInvoiceNo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate invoice number: %w", err)
	}

	sale := f.buildSale(cart, req, invoiceNo, total, change)

	if err := f.sales.CreateWithStockDecrement(ctx, sale); err != nil {
		return nil, err
	}

	result := &CheckoutResult{Sale: sale, Change: change}

	cash := CashSettled(req.Payment, total)
	if cash.IsPositive() {
		movement := &models.CashMovement{
			RegisterKind: sale.RegisterKind,
			Type:         models.MovementDeposit,
			Amount:       cash,
			Description:  "Sale " + sale.InvoiceNo,
			SaleID:       &sale.ID,
			CreatedBy:    req.UserID,
		}
		if err := f.ledger.RecordDeposit(ctx, movement); err != nil {
			f.log.Warn("register deposit failed after committed sale",
				zap.String("invoice_no", sale.InvoiceNo),
				zap.Error(err))
			result.Warnings = append(result.Warnings, "sale completed but register deposit failed")
		}
	}

	if f.printer != nil && f.printer.Connected() {
		payload := RenderReceipt(sale)
		go func() {
			if err := f.printer.Print(payload); err != nil {
				f.log.Warn("receipt print failed",
					zap.String("invoice_no", sale.InvoiceNo),
					zap.Error(err))
			}
		}()
	}

	return result, nil
}

func (f *Finalizer) buildSale(cart *Cart, req CheckoutRequest, invoiceNo string, total, change decimal.Decimal) *models.Sale {
	registerKind := req.RegisterKind
	if registerKind == "" {
		registerKind = models.RegisterStore
	}

	// The key column is unique; generate one when the client did not supply
	// any so keyless sales never collide on the empty string.
	key := req.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}

	sale := &models.Sale{
		InvoiceNo:      invoiceNo,
		IdempotencyKey: key,
		SaleDate:       time.Now(),
		UserID:         req.UserID,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		Subtotal:       cart.Subtotal(),
		Discount:       cart.Discount(),
		Total:          total,
		PaymentMethod:  req.Payment.Method,
		CashAmount:     req.Payment.Cash,
		CardAmount:     req.Payment.Card,
		ChangeDue:      change,
		RegisterKind:   registerKind,
	}

	profit := decimal.Zero
	for _, line := range cart.Lines() {
		item := models.SaleItem{
			ProductID:     line.Product.ID,
			ProductName:   line.Product.Name,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
			PurchasePrice: line.Product.PurchasePrice,
			Discount:      line.Discount,
			Total:         line.Total,
		}

		consumed := decimal.NewFromInt(int64(line.Quantity))
		if line.Weighted() {
			w := *line.Weight
			item.Weight = &w
			item.Quantity = 0
			consumed = w
		}

		profit = profit.Add(line.Total.Sub(consumed.Mul(line.Product.PurchasePrice)))
		sale.Items = append(sale.Items, item)
	}
	sale.Profit = profit

	return sale
}
