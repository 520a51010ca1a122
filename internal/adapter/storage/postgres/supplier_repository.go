package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Anantaverma20/Retailmind/internal/domain"
	"github.com/Anantaverma20/Retailmind/internal/ports"
)

type SupplierRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewSupplierRepository(db *gorm.DB, log *zap.Logger) ports.SupplierRepository {
	return &SupplierRepository{
		db:  db,
		log: log,
	}
}

// FindByID looks up a supplier by exact id, then by the trailing digits of
// the id. The dataset mixes formats (SUP-007 vs SUP00054), so inventory rows
// and supplier rows do not always agree byte for byte.
func (r *SupplierRepository) FindByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	var supplier domain.Supplier
	err := r.db.WithContext(ctx).First(&supplier, "supplier_id = ?", supplierID).Error
	if err == nil {
		return &supplier, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	suffix := supplierID
	if len(suffix) > 3 {
		suffix = suffix[len(suffix)-3:]
	}
	err = r.db.WithContext(ctx).
		Where("supplier_id ILIKE ?", "%"+suffix+"%").
		First(&supplier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &supplier, nil
}
