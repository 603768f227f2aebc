package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/models"
	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/pos"
)

type SaleRepository struct {
	db            *gorm.DB
	invoicePrefix string
}

func NewSaleRepository(db *gorm.DB, invoicePrefix string) *SaleRepository {
	return &SaleRepository{db: db, invoicePrefix: invoicePrefix}
}

func (r *SaleRepository) FindByIdempotencyKey(ctx context.Context, key string) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("idempotency_key = ?", key).
		First(&sale).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pos.ErrSaleNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// NextInvoiceNo generates PREFIX-YYYYMMDD-SEQ from the last sale id.
func (r *SaleRepository) NextInvoiceNo(ctx context.Context) (string, error) {
	dateStr := time.Now().Format("20060102")

	var lastSale models.Sale
	err := r.db.WithContext(ctx).Order("id desc").First(&lastSale).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	return fmt.Sprintf("%s-%s-%05d", r.invoicePrefix, dateStr, lastSale.ID+1), nil
}

// CreateWithStockDecrement inserts the sale with its items and decrements
// stock for every item in a single transaction. Each decrement is a
// conditional update so concurrent terminals cannot oversell: zero rows
// affected means another sale consumed the stock first.
func (r *SaleRepository) CreateWithStockDecrement(ctx context.Context, sale *models.Sale) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Create(sale).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to create sale record: %w", err)
	}

	for _, item := range sale.Items {
		consumed := decimal.NewFromInt(int64(item.Quantity))
		if item.Weight != nil {
			consumed = *item.Weight
		}

		res := tx.Model(&models.Product{}).
			Where("id = ? AND stock_quantity >= ?", item.ProductID, consumed).
			Update("stock_quantity", gorm.Expr("stock_quantity - ?", consumed))
		if res.Error != nil {
			tx.Rollback()
			return fmt.Errorf("failed to update stock for product %d: %w", item.ProductID, res.Error)
		}
		if res.RowsAffected == 0 {
			tx.Rollback()
			return pos.ErrInsufficientStock
		}
	}

	return tx.Commit().Error
}
