package postgres

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Anantaverma20/Retailmind/internal/domain"
	"github.com/Anantaverma20/Retailmind/internal/ports"
)

type SalesRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewSalesRepository(db *gorm.DB, log *zap.Logger) ports.SalesRepository {
	return &SalesRepository{
		db:  db,
		log: log,
	}
}

func (r *SalesRepository) LatestSaleDate(ctx context.Context) (time.Time, error) {
	var tx domain.SalesTransaction
	err := r.db.WithContext(ctx).Order("sale_date desc").First(&tx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	return tx.SaleDate, nil
}

func (r *SalesRepository) SummarizeWindow(ctx context.Context, start, end time.Time) (domain.SalesWindow, error) {
	var row struct {
		TotalQuantity    int
		TotalRevenue     float64
		TransactionCount int
	}

	err := r.db.WithContext(ctx).
		Model(&domain.SalesTransaction{}).
		Select("COALESCE(SUM(quantity_sold), 0) AS total_quantity, COALESCE(SUM(revenue), 0) AS total_revenue, COUNT(*) AS transaction_count").
		Where("sale_date >= ? AND sale_date <= ?", start, end).
		Scan(&row).Error
	if err != nil {
		return domain.SalesWindow{}, err
	}

	return domain.SalesWindow{
		TotalQuantity:    row.TotalQuantity,
		TotalRevenue:     row.TotalRevenue,
		TransactionCount: row.TransactionCount,
	}, nil
}
