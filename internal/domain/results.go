package domain

// HandlerResult is the structured, language-independent payload a handler
// returns. Every implementation is JSON-serializable; the renderer type
// switches on the concrete type.
type HandlerResult interface {
	handlerResult()
}

// StockItem is one matching inventory row.
type StockItem struct {
	ProductID        string  `json:"product_id"`
	SKU              string  `json:"sku"`
	Name             string  `json:"name"`
	Category         string  `json:"category,omitempty"`
	Color            string  `json:"color,omitempty"`
	Size             string  `json:"size,omitempty"`
	Quantity         int     `json:"quantity"`
	LowStock         bool    `json:"low_stock"`
	ReorderThreshold int     `json:"reorder_threshold"`
	Location         string  `json:"location,omitempty"`
	SellingPrice     float64 `json:"selling_price,omitempty"`
	SupplierID       string  `json:"supplier_id,omitempty"`
}

// StockResult answers get_stock. Zero items is a business outcome, not an
// error.
type StockResult struct {
	Items []StockItem `json:"items"`
}

func (StockResult) handlerResult() {}

// ReorderResult answers create_reorder.
type ReorderResult struct {
	TaskID      string `json:"task_id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Status      string `json:"status"`
	SupplierID  string `json:"supplier_id,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
}

func (ReorderResult) handlerResult() {}

// SalesSummaryResult answers get_sales_summary. The window is anchored at the
// most recent recorded sale, not wall-clock today.
type SalesSummaryResult struct {
	TotalQuantity    int     `json:"total_quantity"`
	TotalRevenue     float64 `json:"total_revenue"`
	WindowDays       int     `json:"window_days"`
	TransactionCount int     `json:"transaction_count"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
}

func (SalesSummaryResult) handlerResult() {}

// SupplierInfoResult answers get_supplier_info.
type SupplierInfoResult struct {
	SupplierID   string `json:"supplier_id"`
	SupplierName string `json:"supplier_name"`
	ContactName  string `json:"contact_name,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	City         string `json:"city,omitempty"`
	LeadTimeDays int    `json:"lead_time_days"`
	ProductName  string `json:"product_name,omitempty"`
}

func (SupplierInfoResult) handlerResult() {}

// DeliveryOrder is one open or recent purchase order.
type DeliveryOrder struct {
	PurchaseOrderID   string  `json:"purchase_order_id"`
	SupplierName      string  `json:"supplier_name,omitempty"`
	Status            string  `json:"status"`
	OrderDate         string  `json:"order_date,omitempty"`
	DeliveryDate      string  `json:"delivery_date,omitempty"`
	DaysUntilDelivery *int    `json:"days_until_delivery,omitempty"`
	TotalCost         float64 `json:"total_cost,omitempty"`
	PaymentStatus     string  `json:"payment_status,omitempty"`
}

// DeliveryStatusResult answers get_delivery_status.
type DeliveryStatusResult struct {
	Orders []DeliveryOrder `json:"orders"`
}

func (DeliveryStatusResult) handlerResult() {}

// ClarificationResult answers unknown and validation failures. Missing lists
// the entity keys the validator wanted, when that is what sent us here.
type ClarificationResult struct {
	Missing []string `json:"missing,omitempty"`
}

func (ClarificationResult) handlerResult() {}
