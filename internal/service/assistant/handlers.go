package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Anantaverma20/Retailmind/internal/adapter/queue"
	"github.com/Anantaverma20/Retailmind/internal/domain"
	"github.com/Anantaverma20/Retailmind/internal/ports"
)

// Handlers binds each intent to persistence. One method per intent, all with
// the Handler signature.
type Handlers struct {
	inventory ports.InventoryRepository
	sales     ports.SalesRepository
	suppliers ports.SupplierRepository
	orders    ports.PurchaseOrderRepository
	reorders  ports.ReorderRepository
	queue     queue.MessageQueue
	log       *zap.Logger
}

func NewHandlers(
	inventory ports.InventoryRepository,
	sales ports.SalesRepository,
	suppliers ports.SupplierRepository,
	orders ports.PurchaseOrderRepository,
	reorders ports.ReorderRepository,
	mq queue.MessageQueue,
	log *zap.Logger,
) *Handlers {
	return &Handlers{
		inventory: inventory,
		sales:     sales,
		suppliers: suppliers,
		orders:    orders,
		reorders:  reorders,
		queue:     mq,
		log:       log,
	}
}

// RegisterAll wires every intent into the registry.
func (h *Handlers) RegisterAll(r *Registry) {
	r.Register(domain.IntentGetStock, h.GetStock)
	r.Register(domain.IntentCreateReorder, h.CreateReorder)
	r.Register(domain.IntentGetSalesSummary, h.GetSalesSummary)
	r.Register(domain.IntentGetSupplierInfo, h.GetSupplierInfo)
	r.Register(domain.IntentGetDeliveryStatus, h.GetDeliveryStatus)
	r.Register(domain.IntentUnknown, h.Clarify)
}

func (h *Handlers) GetStock(ctx context.Context, entities domain.EntitySet) (domain.HandlerResult, error) {
	products, err := h.inventory.FindProducts(ctx, productFilter(entities, domain.MaxQueryResults))
	if err != nil {
		return nil, domain.NewHandlerError(domain.ErrPersistenceUnavailable, err)
	}

	items := make([]domain.StockItem, 0, len(products))
	for _, p := range products {
		items = append(items, stockItem(p))
	}
	return domain.StockResult{Items: items}, nil
}

func (h *Handlers) CreateReorder(ctx context.Context, entities domain.EntitySet) (domain.HandlerResult, error) {
	quantity := entities.Quantity
	if quantity == 0 {
		quantity = domain.DefaultReorderQuantity
	}

	// Limit 2 so a second match is detectable without fetching the world.
	products, err := h.inventory.FindProducts(ctx, productFilter(entities, 2))
	if err != nil {
		return nil, domain.NewHandlerError(domain.ErrPersistenceUnavailable, err)
	}
	if len(products) == 0 {
		return nil, domain.NewHandlerError(domain.ErrProductNotFound, nil)
	}
	if len(products) > 1 {
		return nil, &domain.AmbiguousMatchError{
			Intent:     domain.IntentCreateReorder,
			Reference:  productReference(entities),
			Candidates: len(products),
		}
	}

	product := products[0]
	now := time.Now().UTC()
	task := &domain.ReorderTask{
		TaskID:         "TASK" + strings.ToUpper(uuid.NewString()[:6]),
		EmployeeName:   domain.SystemEmployee,
		EmployeeRole:   domain.SystemEmployee,
		TaskType:       domain.ReorderTaskType,
		AssignedDate:   now,
		DueDate:        now.AddDate(0, 0, domain.ReorderDueDays),
		Status:         domain.ReorderStatusPending,
		RelatedProduct: product.ProductID,
		Quantity:       quantity,
	}

	if err := h.reorders.Create(ctx, task); err != nil {
		return nil, domain.NewHandlerError(domain.ErrPersistenceUnavailable, err)
	}

	result := domain.ReorderResult{
		TaskID:      task.TaskID,
		ProductID:   product.ProductID,
		ProductName: product.Name,
		Quantity:    quantity,
		Status:      strings.ToLower(domain.ReorderStatusPending),
		SupplierID:  product.SupplierID,
		DueDate:     task.DueDate.Format("2006-01-02"),
	}
	h.publishReorderCreated(result)
	return result, nil
}

func (h *Handlers) GetSalesSummary(ctx context.Context, entities domain.EntitySet) (domain.HandlerResult, error) {
	windowDays := entities.WindowDays
	if windowDays == 0 {
		windowDays = domain.DefaultSalesWindowDays
	}

	// The window anchors at the most recent recorded sale, not wall-clock
	// today, so demo datasets from another year still answer sensibly.
	reference, err := h.sales.LatestSaleDate(ctx)
	if err != nil {
		return nil, domain.NewHandlerError(domain.ErrPersistenceUnavailable, err)
	}
	if reference.IsZero() {
		reference = time.Now().UTC()
	}

	start := reference.AddDate(0, 0, -windowDays)
	window, err := h.sales.SummarizeWindow(ctx, start, reference)
	if err != nil {
		return nil, domain.NewHandlerError(domain.ErrPersistenceUnavailable, err)
	}

	return domain.SalesSummaryResult{
		TotalQuantity:    window.TotalQuantity,
		TotalRevenue:     window.TotalRevenue,
		WindowDays:       windowDays,
		TransactionCount: window.TransactionCount,
		StartDate:        start.Format("2006-01-02"),
		EndDate:          reference.Format("2006-01-02"),
	}, nil
}

func (h *Handlers) GetSupplierInfo(ctx context.Context, entities domain.EntitySet) (domain.HandlerResult, error) {
	products, err := h.inventory.FindProducts(ctx, productFilter(entities, 1))
	if err != nil {
		return nil, domain.NewHandlerError(domain.ErrPersistenceUnavailable, err)
	}
	if len(products) == 0 {
		return nil, domain.NewHandlerError(domain.ErrProductNotFound, nil)
	}
	product := products[0]
	if product.SupplierID == "" {
		return nil, domain.NewHandlerError(domain.ErrSupplierNotFound, fmt.Errorf("product %s has no supplier", product.ProductID))
	}

	supplier, err := h.suppliers.FindByID(ctx, product.SupplierID)
	if err != nil {
		return nil, domain.NewHandlerError(domain.ErrPersistenceUnavailable, err)
	}
	if supplier == nil {
		return nil, domain.NewHandlerError(domain.ErrSupplierNotFound, nil)
	}

	return domain.SupplierInfoResult{
		SupplierID:   supplier.SupplierID,
		SupplierName: supplier.Name,
		ContactName:  supplier.ContactName,
		ContactEmail: supplier.ContactEmail,
		Phone:        supplier.Phone,
		City:         supplier.City,
		LeadTimeDays: supplier.LeadTimeDays,
		ProductName:  product.Name,
	}, nil
}

func (h *Handlers) GetDeliveryStatus(ctx context.Context, entities domain.EntitySet) (domain.HandlerResult, error) {
	var (
		orders []domain.PurchaseOrder
		err    error
	)
	if entities.ReorderID != "" {
		var order *domain.PurchaseOrder
		order, err = h.orders.FindByID(ctx, entities.ReorderID)
		if order != nil {
			orders = []domain.PurchaseOrder{*order}
		}
	} else {
		orders, err = h.orders.FindRecentOpen(ctx, domain.MaxDeliveryOrders)
	}
	if err != nil {
		return nil, domain.NewHandlerError(domain.ErrPersistenceUnavailable, err)
	}

	result := domain.DeliveryStatusResult{Orders: make([]domain.DeliveryOrder, 0, len(orders))}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	for _, order := range orders {
		entry := domain.DeliveryOrder{
			PurchaseOrderID: order.PurchaseOrderID,
			SupplierName:    order.SupplierName,
			Status:          order.Status,
			OrderDate:       order.OrderDate.Format("2006-01-02"),
			TotalCost:       order.TotalCost,
			PaymentStatus:   order.PaymentStatus,
		}
		if order.DeliveryDate != nil {
			entry.DeliveryDate = order.DeliveryDate.Format("2006-01-02")
			days := int(order.DeliveryDate.Truncate(24 * time.Hour).Sub(today).Hours() / 24)
			entry.DaysUntilDelivery = &days
		}
		result.Orders = append(result.Orders, entry)
	}
	return result, nil
}

// Clarify answers unknown: an empty result telling the renderer to ask the
// user to rephrase.
func (h *Handlers) Clarify(_ context.Context, _ domain.EntitySet) (domain.HandlerResult, error) {
	return domain.ClarificationResult{}, nil
}

func (h *Handlers) publishReorderCreated(result domain.ReorderResult) {
	if h.queue == nil {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		h.log.Error("Failed to encode reorder event", zap.Error(err))
		return
	}
	if err := h.queue.Publish(queue.SubjectReorderCreated, payload); err != nil {
		h.log.Error("Failed to publish reorder event",
			zap.String("task_id", result.TaskID),
			zap.Error(err))
	}
}

func productFilter(entities domain.EntitySet, limit int) ports.ProductFilter {
	return ports.ProductFilter{
		SKU:   entities.SKU,
		Name:  entities.ProductName,
		Color: entities.Color,
		Size:  entities.Size,
		Limit: limit,
	}
}

func productReference(entities domain.EntitySet) string {
	if entities.SKU != "" {
		return entities.SKU
	}
	parts := make([]string, 0, 3)
	for _, s := range []string{entities.Color, entities.Size, entities.ProductName} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func stockItem(p domain.Product) domain.StockItem {
	return domain.StockItem{
		ProductID:        p.ProductID,
		SKU:              p.SKU,
		Name:             p.Name,
		Category:         p.Category,
		Color:            p.Color,
		Size:             p.Size,
		Quantity:         p.StockQuantity,
		LowStock:         p.LowStock(),
		ReorderThreshold: p.ReorderThreshold,
		Location:         p.Location,
		SellingPrice:     p.SellingPrice,
		SupplierID:       p.SupplierID,
	}
}
