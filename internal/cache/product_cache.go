package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/models"
	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/pos"
)

const (
	productTTL  = 5 * time.Minute
	notFoundTTL = time.Minute

	notFoundSentinel = "notfound"
)

// CachedProductLookup fronts the catalog lookup with redis for the scan hot
// path. Redis failures fall through to the database; they never fail a scan.
type CachedProductLookup struct {
	next  pos.ProductLookup
	redis *redis.Client
	log   *zap.Logger
}

func NewCachedProductLookup(next pos.ProductLookup, rdb *redis.Client, log *zap.Logger) *CachedProductLookup {
	return &CachedProductLookup{next: next, redis: rdb, log: log}
}

func (c *CachedProductLookup) ByBarcode(ctx context.Context, code string) (*models.Product, error) {
	return c.getThrough(ctx, "product:barcode:"+code, func() (*models.Product, error) {
		return c.next.ByBarcode(ctx, code)
	})
}

func (c *CachedProductLookup) ByBulkBarcode(ctx context.Context, code string) (*models.Product, error) {
	return c.getThrough(ctx, "product:bulk:"+code, func() (*models.Product, error) {
		return c.next.ByBulkBarcode(ctx, code)
	})
}

func (c *CachedProductLookup) ByScaleCode(ctx context.Context, code string) (*models.Product, error) {
	return c.getThrough(ctx, "product:scale:"+code, func() (*models.Product, error) {
		return c.next.ByScaleCode(ctx, code)
	})
}

// Search results are not cached; fuzzy queries have too little reuse.
func (c *CachedProductLookup) Search(ctx context.Context, query string) ([]models.Product, error) {
	return c.next.Search(ctx, query)
}

func (c *CachedProductLookup) getThrough(ctx context.Context, key string, load func() (*models.Product, error)) (*models.Product, error) {
	data, err := c.redis.Get(ctx, key).Bytes()

	switch {
	case err == nil:
		if string(data) == notFoundSentinel {
			return nil, pos.ErrProductNotFound
		}
		var product models.Product
		if err := json.Unmarshal(data, &product); err != nil {
			c.log.Warn("failed to unmarshal cached product, falling back to DB", zap.Error(err))
			break
		}
		return &product, nil

	case errors.Is(err, redis.Nil):

	default:
		c.log.Warn("redis error, falling back to DB", zap.Error(err))
	}

	product, err := load()
	if err != nil {
		if errors.Is(err, pos.ErrProductNotFound) {
			if setErr := c.redis.Set(ctx, key, notFoundSentinel, notFoundTTL).Err(); setErr != nil {
				c.log.Warn("failed to cache notfound sentinel", zap.Error(setErr))
			}
		}
		return nil, err
	}

	jsonData, err := json.Marshal(product)
	if err != nil {
		c.log.Warn("failed to marshal product for cache", zap.Error(err))
		return product, nil
	}
	if err := c.redis.Set(ctx, key, jsonData, productTTL).Err(); err != nil {
		c.log.Warn("failed to cache product", zap.Error(err))
	}

	return product, nil
}

// Invalidate drops every scan key a product can be reached by. Called after
// catalog writes.
func (c *CachedProductLookup) Invalidate(ctx context.Context, product *models.Product) {
	keys := []string{fmt.Sprintf("product:barcode:%s", product.Barcode)}
	if product.BulkBarcode != "" {
		keys = append(keys, fmt.Sprintf("product:bulk:%s", product.BulkBarcode))
	}
	if product.ScaleCode != "" {
		keys = append(keys, fmt.Sprintf("product:scale:%s", product.ScaleCode))
	}

	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("failed to invalidate product cache", zap.Uint("product_id", product.ID), zap.Error(err))
	}
}
