package domain

import "time"

// Table names match the retail dataset the store runs on.
const (
	TableInventory      = "clothing_retail_inventory"
	TableSales          = "retail_sales_transactions"
	TableSuppliers      = "suppliers"
	TablePurchaseOrders = "supplier_purchase_orders"
	TableReorderTasks   = "employee_task_logs"
	TableVoiceLogs      = "voice_logs"
)

// Reorder task defaults.
const (
	DefaultReorderQuantity = 50
	DefaultSalesWindowDays = 7
	ReorderDueDays         = 7
	ReorderTaskType        = "Reorder"
	ReorderStatusPending   = "Pending"
	SystemEmployee         = "System"
)

// Query limits.
const (
	MaxQueryResults   = 20
	MaxDeliveryOrders = 5
)

// Purchase order statuses.
const (
	OrderStatusPending   = "Pending"
	OrderStatusShipped   = "Shipped"
	OrderStatusDelivered = "Delivered"
)

// Product is one inventory row.
type Product struct {
	ProductID        string  `gorm:"column:product_id;primaryKey" json:"product_id"`
	SKU              string  `gorm:"column:sku" json:"sku"`
	Name             string  `gorm:"column:name" json:"name"`
	Category         string  `gorm:"column:category" json:"category"`
	Color            string  `gorm:"column:color" json:"color"`
	Size             string  `gorm:"column:size" json:"size"`
	StockQuantity    int     `gorm:"column:stock_quantity" json:"stock_quantity"`
	ReorderThreshold int     `gorm:"column:reorder_threshold" json:"reorder_threshold"`
	Location         string  `gorm:"column:location" json:"location"`
	SellingPrice     float64 `gorm:"column:selling_price" json:"selling_price"`
	SupplierID       string  `gorm:"column:supplier_id" json:"supplier_id"`
}

func (Product) TableName() string { return TableInventory }

// LowStock reports whether the row is at or below its reorder threshold.
func (p Product) LowStock() bool { return p.StockQuantity <= p.ReorderThreshold }

// SalesTransaction is one recorded sale.
type SalesTransaction struct {
	ID           string    `gorm:"column:id;primaryKey" json:"id"`
	ProductID    string    `gorm:"column:product_id" json:"product_id"`
	SaleDate     time.Time `gorm:"column:sale_date" json:"sale_date"`
	QuantitySold int       `gorm:"column:quantity_sold" json:"quantity_sold"`
	Revenue      float64   `gorm:"column:revenue" json:"revenue"`
}

func (SalesTransaction) TableName() string { return TableSales }

// SalesWindow is the aggregate over a date range.
type SalesWindow struct {
	TotalQuantity    int
	TotalRevenue     float64
	TransactionCount int
}

// Supplier is one vendor record.
type Supplier struct {
	SupplierID   string `gorm:"column:supplier_id;primaryKey" json:"supplier_id"`
	Name         string `gorm:"column:supplier_name" json:"supplier_name"`
	ContactName  string `gorm:"column:contact_name" json:"contact_name"`
	ContactEmail string `gorm:"column:contact_email" json:"contact_email"`
	Phone        string `gorm:"column:phone_number" json:"phone"`
	City         string `gorm:"column:city" json:"city"`
	State        string `gorm:"column:state" json:"state"`
	LeadTimeDays int    `gorm:"column:lead_time_days" json:"lead_time_days"`
}

func (Supplier) TableName() string { return TableSuppliers }

// PurchaseOrder is one reorder placed with a supplier.
type PurchaseOrder struct {
	PurchaseOrderID string     `gorm:"column:purchase_order_id;primaryKey" json:"purchase_order_id"`
	SupplierID      string     `gorm:"column:supplier_id" json:"supplier_id"`
	SupplierName    string     `gorm:"column:supplier_name" json:"supplier_name"`
	Status          string     `gorm:"column:status" json:"status"`
	OrderDate       time.Time  `gorm:"column:order_date" json:"order_date"`
	DeliveryDate    *time.Time `gorm:"column:delivery_date" json:"delivery_date,omitempty"`
	TotalCost       float64    `gorm:"column:total_cost" json:"total_cost"`
	PaymentStatus   string     `gorm:"column:payment_status" json:"payment_status"`
}

func (PurchaseOrder) TableName() string { return TablePurchaseOrders }

// ReorderTask is the employee task row created by create_reorder.
type ReorderTask struct {
	TaskID         string    `gorm:"column:task_id;primaryKey" json:"task_id"`
	EmployeeName   string    `gorm:"column:employee_name" json:"employee_name"`
	EmployeeRole   string    `gorm:"column:employee_role" json:"employee_role"`
	TaskType       string    `gorm:"column:task_type" json:"task_type"`
	AssignedDate   time.Time `gorm:"column:assigned_date" json:"assigned_date"`
	DueDate        time.Time `gorm:"column:due_date" json:"due_date"`
	Status         string    `gorm:"column:status" json:"status"`
	RelatedProduct string    `gorm:"column:related_product" json:"related_product"`
	Quantity       int       `gorm:"column:quantity" json:"quantity"`
}

func (ReorderTask) TableName() string { return TableReorderTasks }

// VoiceLog is one recorded interaction. Written after the response is
// computed, never on the response path; immutable once written.
type VoiceLog struct {
	ID         string    `gorm:"column:id;primaryKey" json:"id"`
	SessionID  string    `gorm:"column:session_id" json:"session_id,omitempty"`
	Transcript string    `gorm:"column:transcript" json:"transcript"`
	Intent     string    `gorm:"column:intent" json:"intent"`
	Entities   string    `gorm:"column:entities;type:jsonb" json:"entities"`
	Result     string    `gorm:"column:result;type:jsonb" json:"result"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

func (VoiceLog) TableName() string { return TableVoiceLogs }
