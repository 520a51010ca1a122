package postgres

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Anantaverma20/Retailmind/internal/domain"
	"github.com/Anantaverma20/Retailmind/internal/ports"
)

type InventoryRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewInventoryRepository(db *gorm.DB, log *zap.Logger) ports.InventoryRepository {
	return &InventoryRepository{
		db:  db,
		log: log,
	}
}

// FindProducts filters inventory by the normalized entity values. SKU wins
// over attribute filters when both are present; name matches partially so
// "hoodie" finds "Zip Hoodie".
func (r *InventoryRepository) FindProducts(ctx context.Context, filter ports.ProductFilter) ([]domain.Product, error) {
	limit := filter.Limit
	if limit <= 0 || limit > domain.MaxQueryResults {
		limit = domain.MaxQueryResults
	}

	q := r.db.WithContext(ctx).Model(&domain.Product{})

	if filter.SKU != "" {
		q = q.Where("sku = ?", filter.SKU)
	} else {
		if filter.Name != "" {
			q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
		}
		if filter.Color != "" {
			q = q.Where("color ILIKE ?", filter.Color)
		}
		if filter.Size != "" {
			q = q.Where("size ILIKE ?", filter.Size)
		}
	}

	var products []domain.Product
	if err := q.Limit(limit).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
