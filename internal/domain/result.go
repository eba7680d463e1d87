package domain

// Exclusion reasons reported per excluded row. These exact strings are part
// of the contract surface: they are displayed to end users and written to
// exports, so they must not be reworded.
const (
	ReasonMissingFields       = "Missing required fields"
	ReasonUnparseableDates    = "Unparseable or missing dates"
	ReasonStatusMismatch      = "Status mismatch"
	ReasonExcludedCountry     = "Excluded country"
	ReasonDeliveryNotRequired = "Excluded delivery not required"
	ReasonFilteredByMethod    = "Filtered out by method"
	ReasonFilteredByProduct   = "Filtered out by product"
	ReasonFilteredByMonth     = "Filtered out by month"
	ReasonMissingMonthBasis   = "Missing month basis"
)

// MonthlySummary aggregates included rows for one reporting month. The
// column order of the CSV/XLSX export mirrors the field order here; external
// spreadsheet tooling depends on month, shipped, onTime, late, onTimeRate,
// averageTurnover staying put.
type MonthlySummary struct {
	Month   string `json:"month"`
	Shipped int    `json:"shipped"`

	// Excel required date variant.
	OnTime     int     `json:"onTime"`
	Late       int     `json:"late"`
	OnTimeRate float64 `json:"onTimeRate"`

	// Calculated SLA variant.
	OnTimeCalculated     int     `json:"onTimeCalculated"`
	LateCalculated       int     `json:"lateCalculated"`
	OnTimeRateCalculated float64 `json:"onTimeRateCalculated"`

	MismatchCount int `json:"mismatchCount"`

	// AverageTurnover is the mean turnover in days rounded to one decimal,
	// nil when no included row in the month carries a turnover value.
	AverageTurnover *float64 `json:"averageTurnover"`
}

// ExclusionCount is one entry of the reason histogram.
type ExclusionCount struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

// QualityMetrics summarizes how much of the raw dataset survived each stage.
type QualityMetrics struct {
	RawRows      int              `json:"rawRows"`
	ValidRows    int              `json:"validRows"`
	IncludedRows int              `json:"includedRows"`
	Exclusions   []ExclusionCount `json:"exclusions"`
}

// ExcludedRow pairs an enriched row with the single reason that excluded it.
type ExcludedRow struct {
	Row    EnrichedRow `json:"row"`
	Reason string      `json:"reason"`
}

// CalculationResult is the pipeline's sole output. A new result replaces the
// previous one on every run; it is never mutated in place.
type CalculationResult struct {
	Monthly      []MonthlySummary `json:"monthly"`
	Rows         []EnrichedRow    `json:"rows"`
	Quality      QualityMetrics   `json:"quality"`
	ExcludedRows []ExcludedRow    `json:"excludedRows"`
}
