package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/config"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/domain"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/report"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/storage"
	"github.com/urfave/cli/v2"
)

func simulationFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "sku", Usage: "SKU id", Required: true},
		&cli.StringFlag{Name: "mode", Usage: "Lead time mode: average or maximum"},
		&cli.Float64Flag{Name: "months", Usage: "Months of demand per order"},
		&cli.Float64Flag{Name: "initial-stock", Usage: "Starting stock, defaults to the dataset's current stock"},
		&cli.Float64Flag{Name: "warning-ratio", Usage: "Warning level above the reorder point"},
		&cli.StringFlag{Name: "start", Usage: "First day, YYYY-MM-DD"},
		&cli.StringFlag{Name: "end", Usage: "Last day, YYYY-MM-DD"},
		&cli.IntFlag{Name: "display-days", Usage: "Trailing days shown in the report, 0 for the whole run"},
	}
}

// paramsFrom reads the simulation flags; unset flags fall back to configured defaults
func paramsFrom(c *cli.Context) (domain.SimulationParams, error) {
	p := domain.SimulationParams{
		SKUID:        strings.TrimSpace(c.String("sku")),
		LeadTimeMode: domain.LeadTimeMode(c.String("mode")),
		OrderMonths:  c.Float64("months"),
	}
	if c.IsSet("initial-stock") {
		v := c.Float64("initial-stock")
		p.InitialStock = &v
	}
	if c.IsSet("warning-ratio") {
		v := c.Float64("warning-ratio")
		p.WarningRatio = &v
	}
	if c.IsSet("display-days") {
		v := c.Int("display-days")
		p.DisplayDays = &v
	}
	for name, dst := range map[string]**time.Time{"start": &p.StartDate, "end": &p.EndDate} {
		value := strings.TrimSpace(c.String(name))
		if value == "" {
			continue
		}
		t, err := time.Parse("2006-01-02", value)
		if err != nil {
			return p, fmt.Errorf("invalid --%s %q, expected YYYY-MM-DD", name, value)
		}
		*dst = &t
	}
	return p, nil
}

// parseScenario reads name:mode:months:initial_stock
func parseScenario(raw string) (domain.Scenario, error) {
	parts := strings.Split(raw, ":")
	if len(parts) > 4 || strings.TrimSpace(parts[0]) == "" {
		return domain.Scenario{}, fmt.Errorf("invalid scenario %q, expected name:mode:months:initial_stock", raw)
	}
	for len(parts) < 4 {
		parts = append(parts, "")
	}

	sc := domain.Scenario{Name: strings.TrimSpace(parts[0])}
	if mode := strings.TrimSpace(parts[1]); mode != "" {
		parsed, err := domain.ParseLeadTimeMode(mode)
		if err != nil {
			return sc, err
		}
		sc.LeadTimeMode = parsed
	}
	floatPart := func(idx int, name string) (*float64, error) {
		value := strings.TrimSpace(parts[idx])
		if value == "" {
			return nil, nil
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: invalid %s %q", sc.Name, name, value)
		}
		return &v, nil
	}
	var err error
	if sc.OrderMonths, err = floatPart(2, "months"); err != nil {
		return sc, err
	}
	if sc.InitialStock, err = floatPart(3, "initial stock"); err != nil {
		return sc, err
	}
	return sc, nil
}

func runList(cfg *config.Config) cli.ActionFunc {
	return func(c *cli.Context) error {
		skus, err := newService(c, cfg).ListSKUs(c.Context)
		if err != nil {
			return err
		}
		printSKUs(c.App.Writer, skus)
		return nil
	}
}

func runSimulation(cfg *config.Config) cli.ActionFunc {
	return func(c *cli.Context) error {
		params, err := paramsFrom(c)
		if err != nil {
			return err
		}
		rep, err := newService(c, cfg).Run(c.Context, params)
		if err != nil {
			return err
		}
		if c.Bool("json") {
			enc := json.NewEncoder(c.App.Writer)
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		}
		printReport(c.App.Writer, rep)
		return nil
	}
}

func runExport(cfg *config.Config) cli.ActionFunc {
	return func(c *cli.Context) error {
		params, err := paramsFrom(c)
		if err != nil {
			return err
		}
		rep, err := newService(c, cfg).Run(c.Context, params)
		if err != nil {
			return err
		}

		data, err := report.SimulationXLSX(rep)
		if err != nil {
			return err
		}
		out := c.String("out")
		if out == "" {
			out = report.FileName(rep)
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		fmt.Fprintf(c.App.Writer, "wrote %s\n", out)

		if key := strings.TrimSpace(c.String("upload")); key != "" {
			client, err := storage.New(cfg.Storage)
			if err != nil {
				return err
			}
			if err := client.UploadObject(c.Context, key, data); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "uploaded %s to bucket %s\n", key, cfg.Storage.Bucket)
		}
		return nil
	}
}

func runCompare(cfg *config.Config) cli.ActionFunc {
	return func(c *cli.Context) error {
		base, err := paramsFrom(c)
		if err != nil {
			return err
		}
		var scenarios []domain.Scenario
		for _, raw := range c.StringSlice("scenario") {
			sc, err := parseScenario(raw)
			if err != nil {
				return err
			}
			scenarios = append(scenarios, sc)
		}

		results, err := newService(c, cfg).Compare(c.Context, base, scenarios)
		if err != nil {
			return err
		}
		printComparison(c.App.Writer, results)
		return nil
	}
}
