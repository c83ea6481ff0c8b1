package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/domain"
)

const day = "2006-01-02"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
}

func printSKUs(w io.Writer, skus []domain.SKUOption) {
	for _, sku := range skus {
		fmt.Fprintln(w, sku.Label())
	}
}

func printReport(w io.Writer, r *domain.SimulationReport) {
	fmt.Fprintf(w, "SKU            %s\n", r.SKU.Label())
	fmt.Fprintf(w, "Lead time      %s (%.1f days)\n", r.Params.LeadTimeMode.Label(), r.Policy.LeadTimeDays)
	fmt.Fprintf(w, "Avg demand     %.2f / day\n", r.AverageDailyDemand)
	fmt.Fprintf(w, "Reorder point  %.2f\n", r.Policy.ReorderPoint)
	fmt.Fprintf(w, "Order quantity %.2f\n", r.Policy.OrderQuantity)
	fmt.Fprintf(w, "Warning level  %.2f\n", r.WarningLevel)
	fmt.Fprintf(w, "Window         %s to %s\n", r.WindowStart.Format(day), r.WindowEnd.Format(day))
	fmt.Fprintf(w, "Stock          mean %.2f  min %.2f  max %.2f  stockout days %d\n\n",
		r.Summary.Mean, r.Summary.Min, r.Summary.Max, r.Summary.StockoutDays)

	tw := newTable(w)
	fmt.Fprintln(tw, "date\tstock\t")
	for _, p := range r.History {
		fmt.Fprintf(tw, "%s\t%.2f\t\n", p.Date.Format(day), p.StockLevel)
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%d order(s)\n", len(r.Orders))
	if len(r.Orders) == 0 {
		return
	}
	tw = newTable(w)
	fmt.Fprintln(tw, "placed\tquantity\tarrives\t")
	for _, o := range r.Orders {
		fmt.Fprintf(tw, "%s\t%.2f\t%s\t\n", o.PlacedDate.Format(day), o.Quantity, o.ExpectedArrivalDate.Format(day))
	}
	tw.Flush()
}

func printComparison(w io.Writer, results []domain.ScenarioResult) {
	tw := newTable(w)
	fmt.Fprintln(tw, "scenario\treorder point\torder qty\torders\tmean stock\tmin stock\tstockout days\t")
	for _, res := range results {
		r := res.Report
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%d\t%.2f\t%.2f\t%d\t\n",
			res.Name, r.Policy.ReorderPoint, r.Policy.OrderQuantity, len(r.Orders),
			r.Summary.Mean, r.Summary.Min, r.Summary.StockoutDays)
	}
	tw.Flush()
}
