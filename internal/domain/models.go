// backend-go/internal/domain/models.go
package domain

import "time"

// SalesRecord represents a single order line from the Sales Data sheet
type SalesRecord struct {
	OrderNumber   string    `json:"order_number" db:"order_number"`
	OrderDate     time.Time `json:"order_date" db:"order_date"`
	SKUID         string    `json:"sku_id" db:"sku_id"`
	WarehouseID   string    `json:"warehouse_id" db:"warehouse_id"`
	CustomerType  string    `json:"customer_type" db:"customer_type"`
	OrderQuantity int       `json:"order_quantity" db:"order_quantity"`
	UnitSalePrice float64   `json:"unit_sale_price" db:"unit_sale_price"`
	Revenue       float64   `json:"revenue" db:"revenue"`
}

// InventoryControl represents a row from the Inventory Control sheet
type InventoryControl struct {
	SKUID                string  `json:"sku_id" db:"sku_id"`
	VendorName           string  `json:"vendor_name" db:"vendor_name"`
	WarehouseID          string  `json:"warehouse_id" db:"warehouse_id"`
	CurrentStockQuantity float64 `json:"current_stock_quantity" db:"current_stock_quantity"`
	UnitCost             float64 `json:"unit_cost" db:"unit_cost"`
	TotalValue           float64 `json:"total_value" db:"total_value"`
	Units                string  `json:"units" db:"units"`
	AverageLeadTimeDays  float64 `json:"average_lead_time_days" db:"average_lead_time_days"`
	MaximumLeadTimeDays  float64 `json:"maximum_lead_time_days" db:"maximum_lead_time_days"`
	UnitPrice            float64 `json:"unit_price" db:"unit_price"`
}

// LeadTime returns the vendor lead-time statistics of this inventory row
func (ic InventoryControl) LeadTime() LeadTimeProfile {
	return LeadTimeProfile{
		AverageDays: ic.AverageLeadTimeDays,
		MaxDays:     ic.MaximumLeadTimeDays,
	}
}

// SKUItem maps a SKU id to its display name
type SKUItem struct {
	SKUID   string `json:"sku_id" db:"sku_id"`
	SKUName string `json:"sku_name" db:"sku_name"`
}

// SKUOption is a selectable SKU, joined from inventory control and SKU items
type SKUOption struct {
	SKUID   string `json:"sku_id" db:"sku_id"`
	SKUName string `json:"sku_name" db:"sku_name"`
}

// Label renders the option the way the selector shows it
func (o SKUOption) Label() string {
	return o.SKUID + " - " + o.SKUName
}

// SimulationRun is the listing entry of a persisted simulation report
type SimulationRun struct {
	ID        string    `json:"id" db:"id"`
	SKUID     string    `json:"sku_id" db:"sku_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
