package postgres

import (
	"context"
	"fmt"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/dataset"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type datasetRepository struct {
	db *DB
}

func NewDatasetRepository(db *DB) *datasetRepository {
	return &datasetRepository{db: db}
}

// Load reads the three dataset tables in their import order
func (r *datasetRepository) Load(ctx context.Context) (*dataset.Dataset, error) {
	var sales []domain.SalesRecord
	query := `
		SELECT order_number, order_date, sku_id, warehouse_id, customer_type,
			order_quantity, unit_sale_price, revenue
		FROM sales_orders
		ORDER BY order_date, id
	`
	if err := sqlx.SelectContext(ctx, r.db, &sales, query); err != nil {
		return nil, fmt.Errorf("failed to load sales orders: %w", err)
	}
	for i := range sales {
		sales[i].OrderDate = domain.Day(sales[i].OrderDate)
	}

	var inventory []domain.InventoryControl
	query = `
		SELECT sku_id, vendor_name, warehouse_id, current_stock_quantity, unit_cost,
			total_value, units, average_lead_time_days, maximum_lead_time_days, unit_price
		FROM inventory_control
		ORDER BY position, sku_id
	`
	if err := sqlx.SelectContext(ctx, r.db, &inventory, query); err != nil {
		return nil, fmt.Errorf("failed to load inventory control: %w", err)
	}

	var items []domain.SKUItem
	query = `
		SELECT sku_id, sku_name
		FROM sku_items
		ORDER BY position, sku_id
	`
	if err := sqlx.SelectContext(ctx, r.db, &items, query); err != nil {
		return nil, fmt.Errorf("failed to load sku items: %w", err)
	}

	log.Info().
		Int("sales", len(sales)).
		Int("inventory", len(inventory)).
		Int("items", len(items)).
		Msg("dataset loaded from postgres")

	return dataset.New(sales, inventory, items), nil
}
