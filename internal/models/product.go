package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	BarcodeKindNormal = "normal"
	BarcodeKindScale  = "scale"
)

type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;unique;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Products    []Product `json:"-"`
}

type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:150;not null" json:"name"`
	CategoryID  *uint     `json:"category_id"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category"`
	Description string    `gorm:"type:text" json:"description"`

	Barcode     string `gorm:"size:50;index" json:"barcode"`
	BarcodeKind string `gorm:"type:enum('normal','scale');default:'normal'" json:"barcode_kind"`
	// ScaleCode is the 6-digit lookup code embedded in weight barcodes.
	// Only meaningful for scale-kind products.
	ScaleCode string `gorm:"size:6;index" json:"scale_code"`

	// UnitPrice is price per unit for normal products and price per kilogram
	// for scale-kind products.
	UnitPrice     decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	OfferPrice    *decimal.Decimal `gorm:"type:decimal(12,2)" json:"offer_price"`
	PurchasePrice decimal.Decimal  `gorm:"type:decimal(12,2);default:0.00" json:"purchase_price"`

	// Bulk pack: a separately barcoded fixed-quantity package with its own
	// price, independent of quantity x unit price.
	BulkBarcode  string          `gorm:"size:50;index" json:"bulk_barcode"`
	BulkQuantity int             `gorm:"default:0" json:"bulk_quantity"`
	BulkPrice    decimal.Decimal `gorm:"type:decimal(12,2);default:0.00" json:"bulk_price"`

	// StockQuantity is tracked as an exact decimal so weight sales decrement
	// the sold weight without flooring.
	StockQuantity     decimal.Decimal `gorm:"type:decimal(12,3);default:0.000" json:"stock_quantity"`
	LowStockThreshold decimal.Decimal `gorm:"type:decimal(12,3);default:10.000" json:"low_stock_threshold"`

	ImageURL  string         `gorm:"size:255" json:"image_url"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// OnOffer reports whether a promotional price currently overrides the list price.
func (p *Product) OnOffer() bool {
	return p.OfferPrice != nil && p.OfferPrice.IsPositive() && p.OfferPrice.LessThan(p.UnitPrice)
}

// ResolvedUnitPrice is the offer price when active, else the list price.
func (p *Product) ResolvedUnitPrice() decimal.Decimal {
	if p.OnOffer() {
		return *p.OfferPrice
	}
	return p.UnitPrice
}

// BulkEnabled reports whether the product carries a complete bulk-pack configuration.
func (p *Product) BulkEnabled() bool {
	return p.BulkBarcode != "" && p.BulkQuantity > 0 && p.BulkPrice.IsPositive()
}

type StockEntry struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	ProductID     uint            `json:"product_id"`
	Product       Product         `gorm:"foreignKey:ProductID" json:"product"`
	QuantityAdded decimal.Decimal `gorm:"type:decimal(12,3)" json:"quantity_added"`
	AddedBy       uint            `json:"added_by"`
	User          User            `gorm:"foreignKey:AddedBy" json:"user"`
	EntryDate     time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"entry_date"`
}
