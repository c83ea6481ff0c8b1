package dataset

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// LoadWorkbookFile reads the Sales Data, Inventory Control and SKU Items sheets
// of an XLSX workbook on disk.
func LoadWorkbookFile(path string) (*Dataset, error) {
	f, err := excelize.OpenFile(path, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx file %s: %w", path, err)
	}
	defer f.Close()

	return loadWorkbook(f, path)
}

// LoadWorkbook reads a workbook from r
func LoadWorkbook(r io.Reader) (*Dataset, error) {
	f, err := excelize.OpenReader(r, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx stream: %w", err)
	}
	defer f.Close()

	return loadWorkbook(f, "stream")
}

func loadWorkbook(f *excelize.File, source string) (*Dataset, error) {
	readSheet := func(sheet string) ([][]string, error) {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s from %s: %w", sheet, source, err)
		}
		return rows, nil
	}

	salesRows, err := readSheet(SheetSales)
	if err != nil {
		return nil, err
	}
	sales, err := parseSales(salesRows)
	if err != nil {
		return nil, err
	}

	inventoryRows, err := readSheet(SheetInventory)
	if err != nil {
		return nil, err
	}
	inventory, err := parseInventory(inventoryRows)
	if err != nil {
		return nil, err
	}

	itemRows, err := readSheet(SheetItems)
	if err != nil {
		return nil, err
	}
	items, err := parseItems(itemRows)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("source", source).
		Int("sales", len(sales)).
		Int("inventory", len(inventory)).
		Int("items", len(items)).
		Msg("dataset: workbook loaded")

	return New(sales, inventory, items), nil
}
