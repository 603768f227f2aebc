package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	Name           string        `gorm:"size:100;not null" json:"name"`
	Mobile         string        `gorm:"size:15;unique;not null" json:"mobile"`
	Address        string        `gorm:"type:text" json:"address"`
	DeliveryZoneID *uint         `json:"delivery_zone_id"`
	DeliveryZone   *DeliveryZone `gorm:"foreignKey:DeliveryZoneID" json:"delivery_zone,omitempty"`
	Notes          string        `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time     `json:"created_at"`
}

// DeliveryZone maps a neighborhood to its delivery fee.
type DeliveryZone struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"size:100;unique;not null" json:"name"`
	Fee       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"fee"`
	IsActive  bool            `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type Coupon struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Code            string          `gorm:"size:50;unique;not null" json:"code"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);default:0.00" json:"discount_percent"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(12,2);default:0.00" json:"discount_amount"`
	ExpiresAt       *time.Time      `json:"expires_at"`
	IsActive        bool            `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
}
