package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/dataset"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/domain"
)

// ImportStats counts the rows written by Import
type ImportStats struct {
	Sales     int
	Inventory int
	Items     int
}

type IngestRepository struct {
	db *sql.DB
}

func NewIngestRepository(db *sql.DB) *IngestRepository {
	return &IngestRepository{db: db}
}

// Import replaces the stored dataset with ds in a single transaction
func (r *IngestRepository) Import(ctx context.Context, ds *dataset.Dataset) (ImportStats, error) {
	var stats ImportStats

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return stats, fmt.Errorf("failed to begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `TRUNCATE sales_orders, inventory_control, sku_items`); err != nil {
		return stats, fmt.Errorf("failed to clear dataset tables: %w", err)
	}

	for _, rec := range ds.Sales() {
		if err := r.InsertSalesRecord(ctx, tx, rec); err != nil {
			return stats, err
		}
		stats.Sales++
	}
	for i, row := range ds.Inventory() {
		inserted, err := r.UpsertInventoryControl(ctx, tx, row, i)
		if err != nil {
			return stats, err
		}
		if inserted {
			stats.Inventory++
		}
	}
	for i, item := range ds.Items() {
		inserted, err := r.UpsertSKUItem(ctx, tx, item, i)
		if err != nil {
			return stats, err
		}
		if inserted {
			stats.Items++
		}
	}

	if err := tx.Commit(); err != nil {
		return stats, fmt.Errorf("failed to commit import: %w", err)
	}
	return stats, nil
}

func (r *IngestRepository) InsertSalesRecord(ctx context.Context, tx *sql.Tx, rec domain.SalesRecord) error {
	query := `
		INSERT INTO sales_orders (
			order_number, order_date, sku_id, warehouse_id, customer_type,
			order_quantity, unit_sale_price, revenue
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := tx.ExecContext(ctx, query,
		rec.OrderNumber,
		domain.Day(rec.OrderDate),
		rec.SKUID,
		rec.WarehouseID,
		rec.CustomerType,
		rec.OrderQuantity,
		rec.UnitSalePrice,
		rec.Revenue,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sales order %s: %w", rec.OrderNumber, err)
	}
	return nil
}

// UpsertInventoryControl keeps the first row seen for a SKU, matching the workbook loader
func (r *IngestRepository) UpsertInventoryControl(ctx context.Context, tx *sql.Tx, row domain.InventoryControl, position int) (bool, error) {
	query := `
		INSERT INTO inventory_control (
			sku_id, vendor_name, warehouse_id, current_stock_quantity, unit_cost,
			total_value, units, average_lead_time_days, maximum_lead_time_days,
			unit_price, position
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (sku_id) DO NOTHING
	`
	res, err := tx.ExecContext(ctx, query,
		row.SKUID,
		row.VendorName,
		row.WarehouseID,
		row.CurrentStockQuantity,
		row.UnitCost,
		row.TotalValue,
		row.Units,
		row.AverageLeadTimeDays,
		row.MaximumLeadTimeDays,
		row.UnitPrice,
		position,
	)
	if err != nil {
		return false, fmt.Errorf("failed to upsert inventory control %s: %w", row.SKUID, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *IngestRepository) UpsertSKUItem(ctx context.Context, tx *sql.Tx, item domain.SKUItem, position int) (bool, error) {
	query := `
		INSERT INTO sku_items (sku_id, sku_name, position)
		VALUES ($1, $2, $3)
		ON CONFLICT (sku_id) DO NOTHING
	`
	res, err := tx.ExecContext(ctx, query, item.SKUID, item.SKUName, position)
	if err != nil {
		return false, fmt.Errorf("failed to upsert sku item %s: %w", item.SKUID, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
