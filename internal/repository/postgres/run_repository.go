package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/talvik-analytics/shipkpi/internal/domain"
)

type runRepository struct {
	db *DB
}

func NewRunRepository(db *DB) *runRepository {
	return &runRepository{db: db}
}

func (r *runRepository) SaveRun(ctx context.Context, run *domain.CalculationRun) error {
	query := `
		INSERT INTO calculation_runs (
			dataset, sheet, raw_rows, valid_rows, included_rows,
			first_month, last_month, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	err := r.db.QueryRowxContext(
		ctx, query,
		run.Dataset,
		run.Sheet,
		run.RawRows,
		run.ValidRows,
		run.IncludedRows,
		run.FirstMonth,
		run.LastMonth,
	).Scan(&run.ID, &run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert calculation run: %w", err)
	}
	return nil
}

func (r *runRepository) ListRuns(ctx context.Context, limit int) ([]*domain.CalculationRun, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, dataset, sheet, raw_rows, valid_rows, included_rows,
		       first_month, last_month, created_at
		FROM calculation_runs
		ORDER BY created_at DESC
		LIMIT $1
	`

	runs := make([]*domain.CalculationRun, 0)
	if err := sqlx.SelectContext(ctx, r.db, &runs, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list calculation runs: %w", err)
	}
	return runs, nil
}
