package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/dataset"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/repository"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/repository/postgres"
	"github.com/andresuchdata/inventory-flow/backend-go/pkg/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

type ctxKey string

const dbKey ctxKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func initDB(c *cli.Context) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.PingContext(c.Context); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFrom(c *cli.Context) (*sql.DB, error) {
	db, ok := c.Context.Value(dbKey).(*sql.DB)
	if !ok || db == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}
	return db, nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}
	logger.SetLevel(os.Getenv("LOG_LEVEL"))

	app := &cli.App{
		Name:  "seed",
		Usage: "Load inventory workbooks into the postgres dataset tables",
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Create the dataset and simulation run tables",
				Flags:  []cli.Flag{newDBURLFlag()},
				Before: initDB,
				After:  closeDB,
				Action: runMigrate,
			},
			{
				Name:  "workbook",
				Usage: "Import a local .xlsx workbook or a directory of CSV exports",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "path",
						Usage:   "Workbook file or CSV directory",
						Value:   "./data/Dynamic Inventory Analytics.xlsx",
						EnvVars: []string{"DATASET_PATH"},
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: func(c *cli.Context) error {
					return importFrom(c, dataset.FileSource{Path: c.String("path")})
				},
			},
			{
				Name:   "bucket",
				Usage:  "Download the workbook from an S3-compatible bucket and import it",
				Flags:  append([]cli.Flag{newDBURLFlag()}, bucketFlags()...),
				Before: initDB,
				After:  closeDB,
				Action: runBucketImport,
			},
			{
				Name:  "drive",
				Usage: "Download the workbook from Google Drive and import it",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:     "file-id",
						Usage:    "Drive file id of the workbook",
						Required: true,
						EnvVars:  []string{"DATASET_KEY"},
					},
					&cli.StringFlag{
						Name:     "credentials",
						Usage:    "Service account credentials JSON",
						Required: true,
						EnvVars:  []string{"GOOGLE_DRIVE_CREDENTIALS_JSON"},
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runDriveImport,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runMigrate(c *cli.Context) error {
	db, err := dbFrom(c)
	if err != nil {
		return err
	}
	if err := postgres.Wrap(db, "pgx").Migrate(c.Context); err != nil {
		return err
	}
	logger.Log.Info().Msg("schema applied")
	return nil
}

// importFrom loads a dataset from src and replaces the stored tables with it
func importFrom(c *cli.Context, src repository.DatasetRepository) error {
	db, err := dbFrom(c)
	if err != nil {
		return err
	}

	if err := postgres.Wrap(db, "pgx").Migrate(c.Context); err != nil {
		return err
	}

	ds, err := src.Load(c.Context)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	stats, err := repository.NewIngestRepository(db).Import(c.Context, ds)
	if err != nil {
		return fmt.Errorf("failed to import dataset: %w", err)
	}

	logger.Log.Info().
		Int("sales", stats.Sales).
		Int("inventory", stats.Inventory).
		Int("items", stats.Items).
		Int("selectable_skus", len(ds.SKUs())).
		Msg("dataset imported")
	return nil
}
