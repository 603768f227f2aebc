package pos

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/models"
)

type mockSaleRepo struct {
	existing  *models.Sale
	findErr   error
	invoiceNo string
	createErr error
	created   *models.Sale
}

func (m *mockSaleRepo) FindByIdempotencyKey(_ context.Context, _ string) (*models.Sale, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if m.existing != nil {
		return m.existing, nil
	}
	return nil, ErrSaleNotFound
}

func (m *mockSaleRepo) NextInvoiceNo(_ context.Context) (string, error) {
	if m.invoiceNo == "" {
		return "INV-20260101-00001", nil
	}
	return m.invoiceNo, nil
}

func (m *mockSaleRepo) CreateWithStockDecrement(_ context.Context, sale *models.Sale) error {
	if m.createErr != nil {
		return m.createErr
	}
	sale.ID = 42
	m.created = sale
	return nil
}

type mockLedger struct {
	err      error
	deposits []*models.CashMovement
}

func (m *mockLedger) RecordDeposit(_ context.Context, movement *models.CashMovement) error {
	if m.err != nil {
		return m.err
	}
	m.deposits = append(m.deposits, movement)
	return nil
}

type mockPrinter struct {
	connected bool
	printed   chan string
	printErr  error
}

func newMockPrinter(connected bool) *mockPrinter {
	return &mockPrinter{connected: connected, printed: make(chan string, 1)}
}

func (m *mockPrinter) Connected() bool { return m.connected }

func (m *mockPrinter) Print(payload string) error {
	m.printed <- payload
	return m.printErr
}

func newTestFinalizer(repo *mockSaleRepo, ledger *mockLedger, printer *mockPrinter) *Finalizer {
	return NewFinalizer(repo, ledger, printer, zap.NewNop())
}

func checkoutCart(t *testing.T) *Cart {
	t.Helper()
	milk := normalProduct()
	milk.PurchasePrice = dec("18.00")

	cart := NewCart()
	cart.AddNormal(milk)
	cart.AddNormal(milk) // 2 x 25.50 = 51.00
	return cart
}

func TestComplete_CashSale(t *testing.T) {
	repo := &mockSaleRepo{}
	ledger := &mockLedger{}
	printer := newMockPrinter(false)
	f := newTestFinalizer(repo, ledger, printer)

	cart := checkoutCart(t)
	res, err := f.Complete(context.Background(), cart, CheckoutRequest{
		IdempotencyKey: "key-1",
		Payment:        Payment{Method: models.PaymentCash, Cash: dec("100")},
		RegisterKind:   models.RegisterStore,
		UserID:         7,
	})

	require.NoError(t, err)
	assert.True(t, res.Change.Equal(dec("49.00")))
	assert.False(t, res.Duplicate)
	assert.Empty(t, res.Warnings)

	require.NotNil(t, repo.created)
	sale := repo.created
	assert.Equal(t, "INV-20260101-00001", sale.InvoiceNo)
	assert.Equal(t, "key-1", sale.IdempotencyKey)
	assert.Equal(t, uint(7), sale.UserID)
	assert.True(t, sale.Total.Equal(dec("51.00")))
	// profit = 51.00 - 2*18.00
	assert.True(t, sale.Profit.Equal(dec("15.00")))
	require.Len(t, sale.Items, 1)
	assert.Equal(t, 2, sale.Items[0].Quantity)
	assert.True(t, sale.Items[0].PurchasePrice.Equal(dec("18.00")))

	// cash sale deposits the total, not the tendered amount
	require.Len(t, ledger.deposits, 1)
	assert.True(t, ledger.deposits[0].Amount.Equal(dec("51.00")))
	assert.Equal(t, models.MovementDeposit, ledger.deposits[0].Type)
	require.NotNil(t, ledger.deposits[0].SaleID)
	assert.Equal(t, uint(42), *ledger.deposits[0].SaleID)
}

func TestComplete_WeightedProfit(t *testing.T) {
	repo := &mockSaleRepo{}
	f := newTestFinalizer(repo, &mockLedger{}, newMockPrinter(false))

	tomato := scaleProduct()
	tomato.PurchasePrice = dec("8.00")
	cart := NewCart()
	require.NoError(t, cart.AddWeighted(tomato, dec("1.5"))) // 18.00

	res, err := f.Complete(context.Background(), cart, CheckoutRequest{
		Payment: Payment{Method: models.PaymentCard, Card: dec("18.00")},
		UserID:  7,
	})

	require.NoError(t, err)
	sale := res.Sale
	// profit = 18.00 - 1.5*8.00
	assert.True(t, sale.Profit.Equal(dec("6.00")))
	require.Len(t, sale.Items, 1)
	assert.Equal(t, 0, sale.Items[0].Quantity)
	require.NotNil(t, sale.Items[0].Weight)
	assert.True(t, sale.Items[0].Weight.Equal(dec("1.5")))
}

func TestComplete_DepositFailureKeepsSale(t *testing.T) {
	repo := &mockSaleRepo{}
	ledger := &mockLedger{err: errors.New("register offline")}
	f := newTestFinalizer(repo, ledger, newMockPrinter(false))

	res, err := f.Complete(context.Background(), checkoutCart(t), CheckoutRequest{
		Payment: Payment{Method: models.PaymentCash, Cash: dec("51.00")},
		UserID:  7,
	})

	require.NoError(t, err)
	require.NotNil(t, repo.created)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "register deposit failed")
}

func TestComplete_DuplicateIdempotencyKey(t *testing.T) {
	existing := &models.Sale{InvoiceNo: "INV-20251231-00009", ChangeDue: dec("5.00")}
	repo := &mockSaleRepo{existing: existing}
	ledger := &mockLedger{}
	f := newTestFinalizer(repo, ledger, newMockPrinter(false))

	res, err := f.Complete(context.Background(), checkoutCart(t), CheckoutRequest{
		IdempotencyKey: "key-1",
		Payment:        Payment{Method: models.PaymentCash, Cash: dec("51.00")},
	})

	require.NoError(t, err)
	assert.True(t, res.Duplicate)
	assert.Same(t, existing, res.Sale)
	assert.True(t, res.Change.Equal(dec("5.00")))
	// nothing new persisted, no double deposit
	assert.Nil(t, repo.created)
	assert.Empty(t, ledger.deposits)
}

func TestComplete_RetryAfterCartClearReturnsCommittedSale(t *testing.T) {
	repo := &mockSaleRepo{}
	ledger := &mockLedger{}
	f := newTestFinalizer(repo, ledger, newMockPrinter(false))

	cart := checkoutCart(t)
	req := CheckoutRequest{
		IdempotencyKey: "key-1",
		Payment:        Payment{Method: models.PaymentCash, Cash: dec("51.00")},
		UserID:         7,
	}

	first, err := f.Complete(context.Background(), cart, req)
	require.NoError(t, err)
	require.False(t, first.Duplicate)

	// The handler clears the cart once the sale commits; a client that never
	// saw the response resubmits the same key against the emptied cart.
	cart.Clear()
	repo.existing = repo.created

	second, err := f.Complete(context.Background(), cart, req)
	require.NoError(t, err)
	assert.True(t, second.Duplicate)
	assert.Equal(t, first.Sale.InvoiceNo, second.Sale.InvoiceNo)
	// the committed sale was not re-persisted or re-deposited
	assert.Len(t, ledger.deposits, 1)
}

func TestComplete_InsufficientStockAborts(t *testing.T) {
	repo := &mockSaleRepo{createErr: ErrInsufficientStock}
	ledger := &mockLedger{}
	f := newTestFinalizer(repo, ledger, newMockPrinter(false))

	_, err := f.Complete(context.Background(), checkoutCart(t), CheckoutRequest{
		Payment: Payment{Method: models.PaymentCash, Cash: dec("51.00")},
	})

	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Empty(t, ledger.deposits)
}

func TestComplete_EmptyCart(t *testing.T) {
	f := newTestFinalizer(&mockSaleRepo{}, &mockLedger{}, newMockPrinter(false))

	_, err := f.Complete(context.Background(), NewCart(), CheckoutRequest{
		Payment: Payment{Method: models.PaymentCash, Cash: dec("100")},
	})

	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestComplete_PaymentMismatchAbortsBeforePersist(t *testing.T) {
	repo := &mockSaleRepo{}
	f := newTestFinalizer(repo, &mockLedger{}, newMockPrinter(false))

	_, err := f.Complete(context.Background(), checkoutCart(t), CheckoutRequest{
		Payment: Payment{Method: models.PaymentCard, Card: dec("50.00")},
	})

	assert.ErrorIs(t, err, ErrPaymentMismatch)
	assert.Nil(t, repo.created)
}

func TestComplete_CardSaleNoDeposit(t *testing.T) {
	ledger := &mockLedger{}
	f := newTestFinalizer(&mockSaleRepo{}, ledger, newMockPrinter(false))

	_, err := f.Complete(context.Background(), checkoutCart(t), CheckoutRequest{
		Payment: Payment{Method: models.PaymentCard, Card: dec("51.00")},
	})

	require.NoError(t, err)
	assert.Empty(t, ledger.deposits)
}

func TestComplete_MixedSaleDepositsCashPortion(t *testing.T) {
	ledger := &mockLedger{}
	f := newTestFinalizer(&mockSaleRepo{}, ledger, newMockPrinter(false))

	_, err := f.Complete(context.Background(), checkoutCart(t), CheckoutRequest{
		Payment: Payment{Method: models.PaymentMixed, Cash: dec("20.00"), Card: dec("31.00")},
	})

	require.NoError(t, err)
	require.Len(t, ledger.deposits, 1)
	assert.True(t, ledger.deposits[0].Amount.Equal(dec("20.00")))
}

func TestComplete_PrintsWhenConnected(t *testing.T) {
	printer := newMockPrinter(true)
	f := newTestFinalizer(&mockSaleRepo{}, &mockLedger{}, printer)

	res, err := f.Complete(context.Background(), checkoutCart(t), CheckoutRequest{
		Payment: Payment{Method: models.PaymentCash, Cash: dec("51.00")},
	})
	require.NoError(t, err)

	select {
	case payload := <-printer.printed:
		assert.Contains(t, payload, res.Sale.InvoiceNo)
	case <-time.After(time.Second):
		t.Fatal("expected receipt to be printed")
	}
}

func TestComplete_SkipsDisconnectedPrinter(t *testing.T) {
	printer := newMockPrinter(false)
	f := newTestFinalizer(&mockSaleRepo{}, &mockLedger{}, printer)

	_, err := f.Complete(context.Background(), checkoutCart(t), CheckoutRequest{
		Payment: Payment{Method: models.PaymentCash, Cash: dec("51.00")},
	})
	require.NoError(t, err)

	select {
	case <-printer.printed:
		t.Fatal("printer should not receive jobs while disconnected")
	case <-time.After(50 * time.Millisecond):
	}
}
