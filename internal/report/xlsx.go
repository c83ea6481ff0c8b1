package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary    = "Summary"
	SheetStock      = "Stock Levels"
	SheetOrders     = "Orders"
	SheetDeliveries = "Deliveries"
	SheetScenarios  = "Scenarios"

	dateLayout = "2006-01-02"
)

// WriteSimulationXLSX renders a report as a workbook with one sheet per table
func WriteSimulationXLSX(w io.Writer, r *domain.SimulationReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return err
	}
	for _, sheet := range []string{SheetStock, SheetOrders, SheetDeliveries} {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}

	summary := [][]interface{}{
		{"Inventory Flow Simulation"},
		{},
		{"Run", r.RunID},
		{"SKU", r.SKU.Label()},
		{"Lead Time Mode", r.Params.LeadTimeMode.Label()},
		{"Average Lead Time (days)", r.LeadTime.AverageDays},
		{"Maximum Lead Time (days)", r.LeadTime.MaxDays},
		{"Average Daily Demand", r.AverageDailyDemand},
		{"Reorder Point", r.Policy.ReorderPoint},
		{"Order Quantity", r.Policy.OrderQuantity},
		{"Warning Level", r.WarningLevel},
		{"Initial Stock", r.InitialStock},
		{"Window", fmt.Sprintf("%s to %s", r.WindowStart.Format(dateLayout), r.WindowEnd.Format(dateLayout))},
		{"Mean Stock", r.Summary.Mean},
		{"Min Stock", r.Summary.Min},
		{"Max Stock", r.Summary.Max},
		{"Stockout Days", r.Summary.StockoutDays},
		{"Days At Or Below Warning", r.Summary.DaysBelowWarning},
		{"Orders Placed", len(r.Orders)},
	}
	if err := writeRows(f, SheetSummary, summary); err != nil {
		return err
	}

	stock := [][]interface{}{{"Date", "Stock Level", "Reorder Point", "Warning Level"}}
	for _, p := range r.History {
		stock = append(stock, []interface{}{p.Date.Format(dateLayout), p.StockLevel, r.Policy.ReorderPoint, r.WarningLevel})
	}
	if err := writeRows(f, SheetStock, stock); err != nil {
		return err
	}

	orders := [][]interface{}{{"Placed", "Quantity", "Expected Arrival"}}
	for _, o := range r.Orders {
		orders = append(orders, []interface{}{o.PlacedDate.Format(dateLayout), o.Quantity, o.ExpectedArrivalDate.Format(dateLayout)})
	}
	if err := writeRows(f, SheetOrders, orders); err != nil {
		return err
	}

	deliveries := [][]interface{}{{"Date", "Quantity"}}
	for _, d := range r.Deliveries {
		deliveries = append(deliveries, []interface{}{d.Date.Format(dateLayout), d.Quantity})
	}
	if err := writeRows(f, SheetDeliveries, deliveries); err != nil {
		return err
	}

	return f.Write(w)
}

// WriteComparisonXLSX renders one summary row per scenario
func WriteComparisonXLSX(w io.Writer, results []domain.ScenarioResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetScenarios); err != nil {
		return err
	}

	rows := [][]interface{}{{
		"Scenario", "SKU", "Lead Time Mode", "Order Months", "Initial Stock",
		"Reorder Point", "Order Quantity", "Orders Placed", "Mean Stock", "Min Stock", "Stockout Days",
	}}
	for _, res := range results {
		r := res.Report
		rows = append(rows, []interface{}{
			res.Name, r.SKU.SKUID, r.Params.LeadTimeMode.Label(), r.Params.OrderMonths, r.InitialStock,
			r.Policy.ReorderPoint, r.Policy.OrderQuantity, len(r.Orders), r.Summary.Mean, r.Summary.Min, r.Summary.StockoutDays,
		})
	}
	if err := writeRows(f, SheetScenarios, rows); err != nil {
		return err
	}

	return f.Write(w)
}

// SimulationXLSX returns the workbook bytes of a report
func SimulationXLSX(r *domain.SimulationReport) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteSimulationXLSX(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileName is the download name of a report workbook
func FileName(r *domain.SimulationReport) string {
	return fmt.Sprintf("simulation_%s_%s.xlsx", r.SKU.SKUID, r.WindowEnd.Format("20060102"))
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
