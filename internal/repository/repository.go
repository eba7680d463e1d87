package repository

import (
	"context"

	"github.com/talvik-analytics/shipkpi/internal/domain"
)

// PresetRepository persists saved mapping/rules/filters bundles.
type PresetRepository interface {
	SavePreset(ctx context.Context, preset *domain.Preset) error
	GetPresets(ctx context.Context) ([]*domain.Preset, error)
	DeletePreset(ctx context.Context, id string) error
}

// RunRepository logs pipeline executions for the run history view.
type RunRepository interface {
	SaveRun(ctx context.Context, run *domain.CalculationRun) error
	ListRuns(ctx context.Context, limit int) ([]*domain.CalculationRun, error)
}
