package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentCash  = "cash"
	PaymentCard  = "card"
	PaymentMixed = "mixed"
)

// Sale is an immutable ledger entry created once at checkout completion.
type Sale struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	InvoiceNo      string    `gorm:"size:50;unique;not null" json:"invoice_no"`
	IdempotencyKey string    `gorm:"size:36;uniqueIndex;not null" json:"idempotency_key"`
	SaleDate       time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"sale_date"`
	UserID         uint      `json:"user_id"`
	User           User      `gorm:"foreignKey:UserID" json:"user"`
	CustomerName   string    `gorm:"size:100" json:"customer_name"`
	CustomerPhone  string    `gorm:"size:15" json:"customer_phone"`

	Subtotal decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	Discount decimal.Decimal `gorm:"type:decimal(12,2);default:0.00" json:"discount"`
	Total    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Profit   decimal.Decimal `gorm:"type:decimal(12,2);default:0.00" json:"profit"`

	PaymentMethod string          `gorm:"type:enum('cash','card','mixed');default:'cash'" json:"payment_method"`
	CashAmount    decimal.Decimal `gorm:"type:decimal(12,2);default:0.00" json:"cash_amount"`
	CardAmount    decimal.Decimal `gorm:"type:decimal(12,2);default:0.00" json:"card_amount"`
	ChangeDue     decimal.Decimal `gorm:"type:decimal(12,2);default:0.00" json:"change_due"`

	RegisterKind string     `gorm:"type:enum('store','online');default:'store'" json:"register_kind"`
	Items        []SaleItem `gorm:"foreignKey:SaleID" json:"items"`
}

// SaleItem snapshots a cart line; prices are copied so later product edits
// never rewrite history.
type SaleItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	SaleID      uint    `json:"sale_id"`
	ProductID   uint    `json:"product_id"`
	Product     Product `gorm:"foreignKey:ProductID" json:"product"`
	ProductName string  `gorm:"size:150" json:"product_name"`

	Quantity int              `json:"quantity"`
	Weight   *decimal.Decimal `gorm:"type:decimal(12,3)" json:"weight"` // kg, scale items only

	UnitPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(12,2);default:0.00" json:"purchase_price"`
	Discount      decimal.Decimal `gorm:"type:decimal(12,2);default:0.00" json:"discount"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
}
