package postgres

// Schema holds the tables backing the postgres dataset source and the run history
const Schema = `
CREATE TABLE IF NOT EXISTS sales_orders (
	id              BIGSERIAL PRIMARY KEY,
	order_number    TEXT NOT NULL,
	order_date      DATE NOT NULL,
	sku_id          TEXT NOT NULL,
	warehouse_id    TEXT NOT NULL DEFAULT '',
	customer_type   TEXT NOT NULL DEFAULT '',
	order_quantity  INTEGER NOT NULL DEFAULT 0,
	unit_sale_price DOUBLE PRECISION NOT NULL DEFAULT 0,
	revenue         DOUBLE PRECISION NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_sales_orders_sku_date ON sales_orders (sku_id, order_date);

CREATE TABLE IF NOT EXISTS inventory_control (
	sku_id                 TEXT PRIMARY KEY,
	vendor_name            TEXT NOT NULL DEFAULT '',
	warehouse_id           TEXT NOT NULL DEFAULT '',
	current_stock_quantity DOUBLE PRECISION NOT NULL DEFAULT 0,
	unit_cost              DOUBLE PRECISION NOT NULL DEFAULT 0,
	total_value            DOUBLE PRECISION NOT NULL DEFAULT 0,
	units                  TEXT NOT NULL DEFAULT '',
	average_lead_time_days DOUBLE PRECISION NOT NULL DEFAULT 0,
	maximum_lead_time_days DOUBLE PRECISION NOT NULL DEFAULT 0,
	unit_price             DOUBLE PRECISION NOT NULL DEFAULT 0,
	position               INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS sku_items (
	sku_id   TEXT PRIMARY KEY,
	sku_name TEXT NOT NULL DEFAULT '',
	position INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS simulation_runs (
	id         UUID PRIMARY KEY,
	sku_id     TEXT NOT NULL,
	report     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_simulation_runs_sku ON simulation_runs (sku_id, created_at DESC);
`
