package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/domain"
	"github.com/pkg/errors"
)

// Dataset holds the three normalized tables of an inventory workbook.
// It is immutable after New and safe for concurrent reads.
type Dataset struct {
	sales     []domain.SalesRecord
	inventory []domain.InventoryControl
	items     []domain.SKUItem

	salesBySKU     map[string][]domain.SalesRecord
	inventoryBySKU map[string]domain.InventoryControl
	nameBySKU      map[string]string
}

// New indexes the tables by SKU
func New(sales []domain.SalesRecord, inventory []domain.InventoryControl, items []domain.SKUItem) *Dataset {
	d := &Dataset{
		sales:          sales,
		inventory:      inventory,
		items:          items,
		salesBySKU:     make(map[string][]domain.SalesRecord),
		inventoryBySKU: make(map[string]domain.InventoryControl, len(inventory)),
		nameBySKU:      make(map[string]string, len(items)),
	}

	for _, rec := range sales {
		d.salesBySKU[rec.SKUID] = append(d.salesBySKU[rec.SKUID], rec)
	}
	for sku := range d.salesBySKU {
		recs := d.salesBySKU[sku]
		sort.SliceStable(recs, func(i, j int) bool { return recs[i].OrderDate.Before(recs[j].OrderDate) })
	}

	// the first inventory row of a SKU wins
	for _, row := range inventory {
		if _, ok := d.inventoryBySKU[row.SKUID]; !ok {
			d.inventoryBySKU[row.SKUID] = row
		}
	}
	for _, item := range items {
		if _, ok := d.nameBySKU[item.SKUID]; !ok {
			d.nameBySKU[item.SKUID] = item.SKUName
		}
	}

	return d
}

// Sales returns every sales record in load order
func (d *Dataset) Sales() []domain.SalesRecord {
	return d.sales
}

// Inventory returns every inventory control row in load order
func (d *Dataset) Inventory() []domain.InventoryControl {
	return d.inventory
}

// Items returns every SKU item in load order
func (d *Dataset) Items() []domain.SKUItem {
	return d.items
}

// SKUs lists the SKUs present in both inventory control and SKU items
func (d *Dataset) SKUs() []domain.SKUOption {
	seen := make(map[string]bool, len(d.inventory))
	options := make([]domain.SKUOption, 0, len(d.inventory))
	for _, row := range d.inventory {
		name, ok := d.nameBySKU[row.SKUID]
		if !ok || seen[row.SKUID] {
			continue
		}
		seen[row.SKUID] = true
		options = append(options, domain.SKUOption{SKUID: row.SKUID, SKUName: name})
	}
	return options
}

// InventoryFor returns the inventory control row of a SKU
func (d *Dataset) InventoryFor(sku string) (domain.InventoryControl, error) {
	row, ok := d.inventoryBySKU[sku]
	if !ok {
		return domain.InventoryControl{}, errors.Wrapf(domain.ErrSKUNotFound, "sku %s", sku)
	}
	return row, nil
}

// SKUName returns the display name of a SKU, or the id when unnamed
func (d *Dataset) SKUName(sku string) string {
	if name, ok := d.nameBySKU[sku]; ok {
		return name
	}
	return sku
}

// SalesFor returns the sales of a SKU sorted by order date
func (d *Dataset) SalesFor(sku string) []domain.SalesRecord {
	return d.salesBySKU[sku]
}

// Open loads a dataset from an .xlsx workbook or a directory of CSV exports
func Open(path string) (*Dataset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	if info.IsDir() {
		return LoadCSVDir(path)
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".xlsx" && ext != ".xlsm" {
		return nil, fmt.Errorf("dataset %s: unsupported file type %q", path, ext)
	}
	return LoadWorkbookFile(path)
}
