package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/models"
)

// RegisterRepository appends movements to the cash-register ledger.
type RegisterRepository struct {
	db *gorm.DB
}

func NewRegisterRepository(db *gorm.DB) *RegisterRepository {
	return &RegisterRepository{db: db}
}

func (r *RegisterRepository) RecordDeposit(ctx context.Context, movement *models.CashMovement) error {
	movement.Type = models.MovementDeposit
	return r.db.WithContext(ctx).Create(movement).Error
}
