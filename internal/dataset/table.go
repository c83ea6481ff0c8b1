package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Sheet and column names of the inventory workbook
const (
	SheetSales     = "Sales Data"
	SheetInventory = "Inventory Control"
	SheetItems     = "SKU Items"

	ColOrderNumber   = "Order Number"
	ColOrderDate     = "Order Date"
	ColSKUID         = "SKU ID"
	ColWarehouseID   = "Warehouse ID"
	ColCustomerType  = "Customer Type"
	ColOrderQuantity = "Order Quantity"
	ColUnitSalePrice = "Unit Sale Price"
	ColRevenue       = "Revenue"

	ColVendorName   = "Vendor Name"
	ColCurrentStock = "Current Stock Quantity"
	ColUnitCost     = "Unit Cost"
	ColTotalValue   = "Total Value"
	ColUnits        = "Units"
	ColAvgLeadTime  = "Average Lead Time (days)"
	ColMaxLeadTime  = "Maximum Lead Time (days)"
	ColUnitPrice    = "Unit Price"
	ColSKUName      = "SKU Name"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"1/2/06",
	"02-Jan-2006",
}

// table is a header-indexed view of a sheet's rows
type table struct {
	name    string
	columns map[string]int
	rows    [][]string
}

func newTable(name string, rows [][]string, required ...string) (*table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", name)
	}

	columns := make(map[string]int, len(rows[0]))
	for i, header := range rows[0] {
		header = strings.TrimSpace(header)
		if header == "" || strings.HasPrefix(header, "Unnamed:") {
			continue
		}
		if _, dup := columns[header]; !dup {
			columns[header] = i
		}
	}

	for _, col := range required {
		if _, ok := columns[col]; !ok {
			return nil, fmt.Errorf("sheet %s is missing column %q", name, col)
		}
	}

	return &table{name: name, columns: columns, rows: rows[1:]}, nil
}

func (t *table) str(row []string, col string) string {
	i, ok := t.columns[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// number coerces a cell to float64; unparseable cells become 0
func (t *table) number(row []string, col string) float64 {
	raw := strings.ReplaceAll(t.str(row, col), ",", "")
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func (t *table) date(row []string, col string) (time.Time, bool) {
	raw := t.str(row, col)
	if raw == "" {
		return time.Time{}, false
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		ts, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return domain.Day(ts), true
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return domain.Day(ts), true
		}
	}
	return time.Time{}, false
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseSales drops rows without a SKU or a parseable order date
func parseSales(rows [][]string) ([]domain.SalesRecord, error) {
	t, err := newTable(SheetSales, rows, ColOrderDate, ColSKUID, ColOrderQuantity)
	if err != nil {
		return nil, err
	}

	records := make([]domain.SalesRecord, 0, len(t.rows))
	for _, row := range t.rows {
		if blank(row) {
			continue
		}
		sku := t.str(row, ColSKUID)
		date, ok := t.date(row, ColOrderDate)
		if sku == "" || !ok {
			continue
		}
		records = append(records, domain.SalesRecord{
			OrderNumber:   t.str(row, ColOrderNumber),
			OrderDate:     date,
			SKUID:         sku,
			WarehouseID:   t.str(row, ColWarehouseID),
			CustomerType:  t.str(row, ColCustomerType),
			OrderQuantity: int(math.Round(t.number(row, ColOrderQuantity))),
			UnitSalePrice: t.number(row, ColUnitSalePrice),
			Revenue:       t.number(row, ColRevenue),
		})
	}
	return records, nil
}

func parseInventory(rows [][]string) ([]domain.InventoryControl, error) {
	t, err := newTable(SheetInventory, rows, ColSKUID, ColAvgLeadTime, ColMaxLeadTime)
	if err != nil {
		return nil, err
	}

	out := make([]domain.InventoryControl, 0, len(t.rows))
	for _, row := range t.rows {
		sku := t.str(row, ColSKUID)
		if sku == "" {
			continue
		}
		out = append(out, domain.InventoryControl{
			SKUID:                sku,
			VendorName:           t.str(row, ColVendorName),
			WarehouseID:          t.str(row, ColWarehouseID),
			CurrentStockQuantity: t.number(row, ColCurrentStock),
			UnitCost:             t.number(row, ColUnitCost),
			TotalValue:           t.number(row, ColTotalValue),
			Units:                t.str(row, ColUnits),
			AverageLeadTimeDays:  t.number(row, ColAvgLeadTime),
			MaximumLeadTimeDays:  t.number(row, ColMaxLeadTime),
			UnitPrice:            t.number(row, ColUnitPrice),
		})
	}
	return out, nil
}

func parseItems(rows [][]string) ([]domain.SKUItem, error) {
	t, err := newTable(SheetItems, rows, ColSKUID, ColSKUName)
	if err != nil {
		return nil, err
	}

	out := make([]domain.SKUItem, 0, len(t.rows))
	for _, row := range t.rows {
		sku := t.str(row, ColSKUID)
		if sku == "" {
			continue
		}
		out = append(out, domain.SKUItem{SKUID: sku, SKUName: t.str(row, ColSKUName)})
	}
	return out, nil
}
