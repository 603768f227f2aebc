package pos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/models"
)

func TestRenderReceipt(t *testing.T) {
	weight := dec("1.500")
	sale := &models.Sale{
		InvoiceNo:     "INV-20260101-00001",
		SaleDate:      time.Date(2026, 1, 1, 10, 30, 0, 0, time.UTC),
		CustomerName:  "Ahmed",
		Subtotal:      dec("69.00"),
		Discount:      dec("3.00"),
		Total:         dec("69.00"),
		PaymentMethod: models.PaymentCash,
		CashAmount:    dec("100.00"),
		ChangeDue:     dec("31.00"),
		Items: []models.SaleItem{
			{ProductName: "Whole Milk 1L", Quantity: 2, UnitPrice: dec("25.50"), Total: dec("51.00")},
			{ProductName: "Tomatoes", Weight: &weight, UnitPrice: dec("12.00"), Total: dec("18.00")},
		},
	}

	out := RenderReceipt(sale)

	assert.Contains(t, out, "Invoice: INV-20260101-00001")
	assert.Contains(t, out, "Customer: Ahmed")
	assert.Contains(t, out, "2 x 25.50 = 51.00")
	assert.Contains(t, out, "1.500 kg x 12.00 = 18.00")
	assert.Contains(t, out, "You saved: 3.00")
	assert.Contains(t, out, "TOTAL: 69.00")
	assert.Contains(t, out, "Cash: 100.00  Change: 31.00")
}
