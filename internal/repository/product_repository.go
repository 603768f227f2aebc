package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/models"
	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/pos"
)

// ProductRepository is the GORM-backed catalog lookup used by the POS scan path.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) ByBarcode(ctx context.Context, code string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("barcode = ? AND is_active = ?", code, true).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pos.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) ByBulkBarcode(ctx context.Context, code string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("bulk_barcode = ? AND is_active = ?", code, true).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pos.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) ByScaleCode(ctx context.Context, code string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("scale_code = ? AND barcode_kind = ? AND is_active = ?", code, models.BarcodeKindScale, true).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pos.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) Search(ctx context.Context, query string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("(name LIKE ? OR barcode = ?) AND is_active = ?", "%"+query+"%", query, true).
		Limit(20).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
