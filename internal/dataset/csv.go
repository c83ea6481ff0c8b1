package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// CSV exports of the workbook sheets, one file per sheet
const (
	SalesCSV     = "sales_data.csv"
	InventoryCSV = "inventory_control.csv"
	ItemsCSV     = "sku_items.csv"
)

// LoadCSVDir reads the three sheet exports from dir
func LoadCSVDir(dir string) (*Dataset, error) {
	salesRows, err := readCSV(filepath.Join(dir, SalesCSV))
	if err != nil {
		return nil, err
	}
	sales, err := parseSales(salesRows)
	if err != nil {
		return nil, err
	}

	inventoryRows, err := readCSV(filepath.Join(dir, InventoryCSV))
	if err != nil {
		return nil, err
	}
	inventory, err := parseInventory(inventoryRows)
	if err != nil {
		return nil, err
	}

	itemRows, err := readCSV(filepath.Join(dir, ItemsCSV))
	if err != nil {
		return nil, err
	}
	items, err := parseItems(itemRows)
	if err != nil {
		return nil, err
	}

	return New(sales, inventory, items), nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return rows, nil
}
