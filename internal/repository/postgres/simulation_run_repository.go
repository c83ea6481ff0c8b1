package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const defaultRunListLimit = 50

type simulationRunRepository struct {
	db *DB
}

func NewSimulationRunRepository(db *DB) *simulationRunRepository {
	return &simulationRunRepository{db: db}
}

func (r *simulationRunRepository) SaveRun(ctx context.Context, report *domain.SimulationReport) error {
	if report.RunID == "" {
		report.RunID = uuid.NewString()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode simulation report: %w", err)
	}

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO simulation_runs (id, sku_id, report, created_at)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := tx.ExecContext(ctx, query, report.RunID, report.SKU.SKUID, payload, report.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert simulation run: %w", err)
		}
		return nil
	})
}

func (r *simulationRunRepository) GetRun(ctx context.Context, id string) (*domain.SimulationReport, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.Wrapf(domain.ErrRunNotFound, "run %q", id)
	}

	var payload []byte
	err := r.db.QueryRowContext(ctx, `SELECT report FROM simulation_runs WHERE id = $1`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(domain.ErrRunNotFound, "run %q", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get simulation run: %w", err)
	}

	var report domain.SimulationReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("failed to decode simulation run %s: %w", id, err)
	}
	return &report, nil
}

// ListRuns returns the newest runs first, optionally for one SKU
func (r *simulationRunRepository) ListRuns(ctx context.Context, skuID string, limit int) ([]domain.SimulationRun, error) {
	if limit <= 0 {
		limit = defaultRunListLimit
	}

	query := `
		SELECT id, sku_id, created_at
		FROM simulation_runs
		WHERE ($1 = '' OR sku_id = $1)
		ORDER BY created_at DESC
		LIMIT $2
	`
	runs := []domain.SimulationRun{}
	if err := sqlx.SelectContext(ctx, r.db, &runs, query, skuID, limit); err != nil {
		return nil, fmt.Errorf("failed to list simulation runs: %w", err)
	}
	return runs, nil
}
