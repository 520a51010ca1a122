package ports

import (
	"context"
	"time"

	"github.com/Anantaverma20/Retailmind/internal/domain"
)

// ProductFilter narrows inventory lookups. Name matches partially and
// case-insensitively; the other fields match exactly on canonical values.
type ProductFilter struct {
	SKU   string
	Name  string
	Color string
	Size  string
	Limit int
}

type InventoryRepository interface {
	FindProducts(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
}

type SalesRepository interface {
	// LatestSaleDate returns the most recent recorded sale date, used as the
	// reference point for relative windows. Zero time when no sales exist.
	LatestSaleDate(ctx context.Context) (time.Time, error)
	SummarizeWindow(ctx context.Context, start, end time.Time) (domain.SalesWindow, error)
}

type SupplierRepository interface {
	// FindByID tolerates the differing supplier id formats in the dataset
	// (SUP-007 vs SUP00054) by falling back to a suffix match.
	FindByID(ctx context.Context, supplierID string) (*domain.Supplier, error)
}

type PurchaseOrderRepository interface {
	FindByID(ctx context.Context, purchaseOrderID string) (*domain.PurchaseOrder, error)
	// FindRecentOpen returns the latest pending or shipped orders, newest
	// first.
	FindRecentOpen(ctx context.Context, limit int) ([]domain.PurchaseOrder, error)
}

type ReorderRepository interface {
	Create(ctx context.Context, task *domain.ReorderTask) error
}

type VoiceLogRepository interface {
	Save(ctx context.Context, entry *domain.VoiceLog) error
	// FindRecent returns the newest entries, optionally filtered by session.
	FindRecent(ctx context.Context, sessionID string, limit int) ([]domain.VoiceLog, error)
}
