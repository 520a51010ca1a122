package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/Anantaverma20/Retailmind/internal/domain"
	"github.com/Anantaverma20/Retailmind/internal/ports"
)

// MockInventoryRepository is a mock implementation of InventoryRepository
type MockInventoryRepository struct {
	FindProductsFunc func(ctx context.Context, filter ports.ProductFilter) ([]domain.Product, error)
}

func (m *MockInventoryRepository) FindProducts(ctx context.Context, filter ports.ProductFilter) ([]domain.Product, error) {
	if m.FindProductsFunc != nil {
		return m.FindProductsFunc(ctx, filter)
	}
	return nil, nil
}

// MockSalesRepository is a mock implementation of SalesRepository
type MockSalesRepository struct {
	LatestSaleDateFunc  func(ctx context.Context) (time.Time, error)
	SummarizeWindowFunc func(ctx context.Context, start, end time.Time) (domain.SalesWindow, error)
}

func (m *MockSalesRepository) LatestSaleDate(ctx context.Context) (time.Time, error) {
	if m.LatestSaleDateFunc != nil {
		return m.LatestSaleDateFunc(ctx)
	}
	return time.Time{}, nil
}

func (m *MockSalesRepository) SummarizeWindow(ctx context.Context, start, end time.Time) (domain.SalesWindow, error) {
	if m.SummarizeWindowFunc != nil {
		return m.SummarizeWindowFunc(ctx, start, end)
	}
	return domain.SalesWindow{}, nil
}

// MockSupplierRepository is a mock implementation of SupplierRepository
type MockSupplierRepository struct {
	FindByIDFunc func(ctx context.Context, supplierID string) (*domain.Supplier, error)
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, supplierID)
	}
	return nil, nil
}

// MockPurchaseOrderRepository is a mock implementation of PurchaseOrderRepository
type MockPurchaseOrderRepository struct {
	FindByIDFunc       func(ctx context.Context, purchaseOrderID string) (*domain.PurchaseOrder, error)
	FindRecentOpenFunc func(ctx context.Context, limit int) ([]domain.PurchaseOrder, error)
}

func (m *MockPurchaseOrderRepository) FindByID(ctx context.Context, purchaseOrderID string) (*domain.PurchaseOrder, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, purchaseOrderID)
	}
	return nil, nil
}

func (m *MockPurchaseOrderRepository) FindRecentOpen(ctx context.Context, limit int) ([]domain.PurchaseOrder, error) {
	if m.FindRecentOpenFunc != nil {
		return m.FindRecentOpenFunc(ctx, limit)
	}
	return nil, nil
}

// MockReorderRepository is a mock implementation of ReorderRepository
type MockReorderRepository struct {
	mu         sync.Mutex
	Created    []*domain.ReorderTask
	CreateFunc func(ctx context.Context, task *domain.ReorderTask) error
}

func (m *MockReorderRepository) Create(ctx context.Context, task *domain.ReorderTask) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, task)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Created = append(m.Created, task)
	return nil
}

// MockVoiceLogRepository is a mock implementation of VoiceLogRepository
type MockVoiceLogRepository struct {
	mu             sync.Mutex
	Saved          []*domain.VoiceLog
	SaveFunc       func(ctx context.Context, entry *domain.VoiceLog) error
	FindRecentFunc func(ctx context.Context, sessionID string, limit int) ([]domain.VoiceLog, error)
}

func (m *MockVoiceLogRepository) Save(ctx context.Context, entry *domain.VoiceLog) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saved = append(m.Saved, entry)
	return nil
}

func (m *MockVoiceLogRepository) FindRecent(ctx context.Context, sessionID string, limit int) ([]domain.VoiceLog, error) {
	if m.FindRecentFunc != nil {
		return m.FindRecentFunc(ctx, sessionID, limit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := make([]domain.VoiceLog, 0, len(m.Saved))
	for _, e := range m.Saved {
		entries = append(entries, *e)
	}
	return entries, nil
}

// SavedEntries returns a copy of the saved voice logs.
func (m *MockVoiceLogRepository) SavedEntries() []*domain.VoiceLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.VoiceLog(nil), m.Saved...)
}
