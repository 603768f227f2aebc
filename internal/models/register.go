package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RegisterStore  = "store"
	RegisterOnline = "online"

	MovementDeposit    = "deposit"
	MovementWithdrawal = "withdrawal"
)

// CashMovement is an append-only entry in a register's ledger. Movements are
// never updated or deleted; corrections are recorded as inverse entries.
type CashMovement struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	RegisterKind string          `gorm:"type:enum('store','online');not null;index" json:"register_kind"`
	Type         string          `gorm:"type:enum('deposit','withdrawal');not null" json:"type"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Description  string          `gorm:"size:255" json:"description"`
	SaleID       *uint           `json:"sale_id"`
	CreatedBy    uint            `json:"created_by"`
	User         User            `gorm:"foreignKey:CreatedBy" json:"user"`
	CreatedAt    time.Time       `json:"created_at"`
}
