package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/talvik-analytics/shipkpi/internal/cache"
	"github.com/talvik-analytics/shipkpi/internal/domain"
	"github.com/talvik-analytics/shipkpi/internal/metrics"
	"github.com/talvik-analytics/shipkpi/internal/repository"
	"github.com/talvik-analytics/shipkpi/internal/workbook"
)

// CalculationRequest carries everything one pipeline run needs besides the
// dataset itself. HeaderRow overrides header detection when >= 0.
type CalculationRequest struct {
	Sheet     string               `json:"sheet"`
	HeaderRow int                  `json:"headerRow"`
	Mapping   domain.FieldMapping  `json:"mapping"`
	Rules     domain.RulesConfig   `json:"rules"`
	Filters   domain.FiltersConfig `json:"filters"`
}

// CalculationService orchestrates dataset loading, the metrics pipeline,
// the result cache, and the run log.
type CalculationService struct {
	datasets   *DatasetService
	calculator *metrics.Calculator
	cache      cache.ResultCache
	runs       repository.RunRepository
}

func NewCalculationService(datasets *DatasetService, resultCache cache.ResultCache, runs repository.RunRepository) *CalculationService {
	if resultCache == nil {
		resultCache = cache.NewNoopResultCache()
	}
	return &CalculationService{
		datasets:   datasets,
		calculator: metrics.NewCalculator(),
		cache:      resultCache,
		runs:       runs,
	}
}

// Calculate runs the full pipeline for one dataset sheet. Identical inputs
// produce identical results, so cache hits are served without recomputing.
func (s *CalculationService) Calculate(ctx context.Context, datasetID string, req CalculationRequest) (*domain.CalculationResult, error) {
	dataset, ok := s.datasets.Get(datasetID)
	if !ok {
		return nil, fmt.Errorf("unknown dataset %s", datasetID)
	}

	sheet := req.Sheet
	key := cache.CalcKey{
		Dataset:   datasetID,
		Sheet:     sheet,
		HeaderRow: req.HeaderRow,
		Mapping:   req.Mapping,
		Rules:     req.Rules,
		Filters:   req.Filters,
	}

	if cached, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Str("dataset", datasetID).Msg("result cache get failed")
	}

	rows, err := s.loadRows(dataset, sheet, req.HeaderRow)
	if err != nil {
		return nil, err
	}

	result := s.calculator.Calculate(rows, req.Mapping, req.Rules, req.Filters)

	s.logRun(ctx, dataset, sheet, &result)

	if err := s.cache.Set(ctx, key, &result); err != nil {
		log.Warn().Err(err).Str("dataset", datasetID).Msg("result cache set failed")
	}

	return &result, nil
}

func (s *CalculationService) loadRows(dataset *domain.Dataset, sheet string, headerRow int) ([]domain.RawRow, error) {
	wb, err := workbook.Open(dataset.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", dataset.Name, err)
	}
	defer wb.Close()

	if sheet == "" {
		if sheet, err = wb.FirstSheet(); err != nil {
			return nil, err
		}
	}

	grid, err := wb.Grid(sheet)
	if err != nil {
		return nil, err
	}

	if headerRow < 0 {
		headerRow = workbook.DetectHeaderRow(grid, 100).RowIndex
	}

	rows, _ := workbook.RowsToRecords(grid, headerRow)
	return rows, nil
}

// logRun records the run in the history table. The run log is an audit
// convenience, so persistence failures only warn.
func (s *CalculationService) logRun(ctx context.Context, dataset *domain.Dataset, sheet string, result *domain.CalculationResult) {
	if s.runs == nil {
		return
	}

	run := &domain.CalculationRun{
		Dataset:      dataset.Name,
		Sheet:        sheet,
		RawRows:      result.Quality.RawRows,
		ValidRows:    result.Quality.ValidRows,
		IncludedRows: result.Quality.IncludedRows,
	}
	if len(result.Monthly) > 0 {
		run.FirstMonth = result.Monthly[0].Month
		run.LastMonth = result.Monthly[len(result.Monthly)-1].Month
	}

	if err := s.runs.SaveRun(ctx, run); err != nil {
		log.Warn().Err(err).Str("dataset", dataset.Name).Msg("failed to save calculation run")
	}
}

// ListRuns returns the persisted run history.
func (s *CalculationService) ListRuns(ctx context.Context, limit int) ([]*domain.CalculationRun, error) {
	if s.runs == nil {
		return []*domain.CalculationRun{}, nil
	}
	return s.runs.ListRuns(ctx, limit)
}
