package main

import (
	"log"
	"os"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/config"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/dataset"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/service"
	"github.com/andresuchdata/inventory-flow/backend-go/pkg/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	cfg := config.Load()

	app := &cli.App{
		Name:  "simsku",
		Usage: "Simulate the stock curve of a SKU under its reorder policy",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dataset",
				Aliases: []string{"d"},
				Usage:   "Workbook (.xlsx) or directory of CSV exports",
				Value:   cfg.App.DatasetPath,
				EnvVars: []string{"DATASET_PATH"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "warn",
			},
		},
		Before: func(c *cli.Context) error {
			logger.SetLevel(c.String("log-level"))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List the SKUs that can be simulated",
				Action: runList(cfg),
			},
			{
				Name:   "run",
				Usage:  "Simulate one SKU and print the stock curve and orders",
				Flags:  append(simulationFlags(), &cli.BoolFlag{Name: "json", Usage: "Print the full report as JSON"}),
				Action: runSimulation(cfg),
			},
			{
				Name:  "export",
				Usage: "Simulate one SKU and write the report workbook",
				Flags: append(simulationFlags(),
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output path, defaults to the report file name"},
					&cli.StringFlag{Name: "upload", Usage: "Also upload the workbook to the configured bucket under this key"},
				),
				Action: runExport(cfg),
			},
			{
				Name:  "compare",
				Usage: "Run what-if scenarios for one SKU",
				Flags: append(simulationFlags(),
					&cli.StringSliceFlag{
						Name:     "scenario",
						Usage:    "name:mode:months:initial_stock, empty parts keep the base value",
						Required: true,
					},
				),
				Action: runCompare(cfg),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newService(c *cli.Context, cfg *config.Config) *service.SimulationService {
	return service.NewSimulationService(
		dataset.FileSource{Path: c.String("dataset")},
		nil,
		nil,
		nil,
		cfg.Simulation.Defaults(),
	)
}
