package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Anantaverma20/Retailmind/internal/domain"
	"github.com/Anantaverma20/Retailmind/internal/ports"
)

type PurchaseOrderRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewPurchaseOrderRepository(db *gorm.DB, log *zap.Logger) ports.PurchaseOrderRepository {
	return &PurchaseOrderRepository{
		db:  db,
		log: log,
	}
}

// FindByID looks up an order by exact id, then by suffix. Spoken ids often
// arrive as the bare number ("order 1042") while the dataset stores PO-1042.
func (r *PurchaseOrderRepository) FindByID(ctx context.Context, purchaseOrderID string) (*domain.PurchaseOrder, error) {
	var order domain.PurchaseOrder
	err := r.db.WithContext(ctx).First(&order, "purchase_order_id = ?", purchaseOrderID).Error
	if err == nil {
		return &order, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Where("purchase_order_id ILIKE ?", "%"+purchaseOrderID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *PurchaseOrderRepository) FindRecentOpen(ctx context.Context, limit int) ([]domain.PurchaseOrder, error) {
	if limit <= 0 || limit > domain.MaxDeliveryOrders {
		limit = domain.MaxDeliveryOrders
	}

	var orders []domain.PurchaseOrder
	err := r.db.WithContext(ctx).
		Where("status IN ?", []string{domain.OrderStatusPending, domain.OrderStatusShipped}).
		Order("order_date desc").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}
