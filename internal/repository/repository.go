// backend-go/internal/repository/repository.go
package repository

import (
	"context"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/dataset"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/domain"
)

// DatasetRepository loads the sales, inventory control and SKU item tables
type DatasetRepository interface {
	Load(ctx context.Context) (*dataset.Dataset, error)
}

// SimulationRunRepository persists finished simulation reports
type SimulationRunRepository interface {
	// SaveRun stores the report, assigning a RunID when it has none
	SaveRun(ctx context.Context, report *domain.SimulationReport) error
	GetRun(ctx context.Context, id string) (*domain.SimulationReport, error)
	ListRuns(ctx context.Context, skuID string, limit int) ([]domain.SimulationRun, error)
}
