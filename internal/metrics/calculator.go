// Package metrics implements the row classification and aggregation engine:
// raw rows plus a field mapping, rule set, and filter set go in; enriched
// rows, an exclusion taxonomy, monthly KPI summaries, and quality counts
// come out. The whole pipeline is a pure function of its four inputs.
package metrics

import (
	"github.com/talvik-analytics/shipkpi/internal/domain"
)

// Calculator runs the enrichment + classification + aggregation pipeline.
type Calculator struct {
	enricher *Enricher
}

// NewCalculator creates a calculator with the default SLA table.
func NewCalculator() *Calculator {
	return &Calculator{enricher: NewEnricher()}
}

// Enricher exposes the calculator's row enricher.
func (c *Calculator) Enricher() *Enricher {
	return c.enricher
}

// Calculate runs the full pipeline over an in-memory dataset. It never
// fails: malformed rows degrade into exclusion reasons, not errors.
// Re-running with identical inputs yields an identical result.
func (c *Calculator) Calculate(rawRows []domain.RawRow, mapping domain.FieldMapping, rules domain.RulesConfig, filters domain.FiltersConfig) domain.CalculationResult {
	enriched := make([]domain.EnrichedRow, 0, len(rawRows))
	for _, raw := range rawRows {
		enriched = append(enriched, c.enricher.Enrich(raw, mapping, filters.MonthBasis))
	}

	validCount := 0
	for i := range enriched {
		if StructurallyValid(&enriched[i], mapping) {
			validCount++
		}
	}

	included := make([]domain.EnrichedRow, 0, len(enriched))
	excluded := make([]domain.ExcludedRow, 0)
	counts := make(map[string]int)
	// First-seen order keeps the histogram, and thus the serialized result,
	// deterministic across runs.
	reasonOrder := make([]string, 0, 8)

	for i := range enriched {
		reason := Classify(&enriched[i], mapping, rules, filters)
		if reason == "" {
			included = append(included, enriched[i])
			continue
		}
		if _, seen := counts[reason]; !seen {
			reasonOrder = append(reasonOrder, reason)
		}
		counts[reason]++
		excluded = append(excluded, domain.ExcludedRow{Row: enriched[i], Reason: reason})
	}

	exclusions := make([]domain.ExclusionCount, 0, len(reasonOrder))
	for _, reason := range reasonOrder {
		exclusions = append(exclusions, domain.ExclusionCount{Reason: reason, Count: counts[reason]})
	}

	return domain.CalculationResult{
		Monthly: BuildMonthlySummary(included),
		Rows:    included,
		Quality: domain.QualityMetrics{
			RawRows:      len(rawRows),
			ValidRows:    validCount,
			IncludedRows: len(included),
			Exclusions:   exclusions,
		},
		ExcludedRows: excluded,
	}
}
