package metrics

import (
	"testing"

	"github.com/talvik-analytics/shipkpi/internal/domain"
)

func boolPtr(v bool) *bool { return &v }
func intPtr(v int) *int    { return &v }

func TestBuildMonthlySummaryRoundsTurnover(t *testing.T) {
	rows := []domain.EnrichedRow{
		{MonthKey: "2024-04", TurnoverDays: intPtr(2)},
		{MonthKey: "2024-04", TurnoverDays: intPtr(3)},
		{MonthKey: "2024-04", TurnoverDays: intPtr(3)},
	}
	monthly := BuildMonthlySummary(rows)
	if len(monthly) != 1 {
		t.Fatalf("expected one bucket, got %+v", monthly)
	}
	// 8/3 = 2.666..., rounded to one decimal.
	if monthly[0].AverageTurnover == nil || *monthly[0].AverageTurnover != 2.7 {
		t.Fatalf("expected average turnover 2.7, got %v", monthly[0].AverageTurnover)
	}
}

func TestBuildMonthlySummaryTracksBothVerdicts(t *testing.T) {
	rows := []domain.EnrichedRow{
		{
			MonthKey:           "2024-04",
			IsOnTime:           boolPtr(true),
			IsOnTimeCalculated: boolPtr(false),
			MismatchType:       domain.MismatchExcelOK,
		},
		{
			MonthKey:           "2024-04",
			IsOnTime:           boolPtr(true),
			IsOnTimeCalculated: boolPtr(true),
		},
		{MonthKey: "2024-04"},
	}
	monthly := BuildMonthlySummary(rows)
	m := monthly[0]

	if m.Shipped != 3 {
		t.Fatalf("expected 3 shipped, got %d", m.Shipped)
	}
	if m.OnTime != 2 || m.Late != 0 {
		t.Fatalf("unexpected Excel verdict counts: %+v", m)
	}
	if m.OnTimeCalculated != 1 || m.LateCalculated != 1 {
		t.Fatalf("unexpected calculated verdict counts: %+v", m)
	}
	if m.MismatchCount != 1 {
		t.Fatalf("expected 1 mismatch, got %d", m.MismatchCount)
	}
	// Rates divide by shipped, not by verdict count: rows without a verdict
	// drag the rate down.
	if m.OnTimeRate < 0.66 || m.OnTimeRate > 0.67 {
		t.Fatalf("unexpected on-time rate %v", m.OnTimeRate)
	}
}

func TestBuildMonthlySummarySkipsRowsWithoutMonth(t *testing.T) {
	rows := []domain.EnrichedRow{
		{MonthKey: ""},
		{MonthKey: "2024-04"},
	}
	monthly := BuildMonthlySummary(rows)
	if len(monthly) != 1 || monthly[0].Shipped != 1 {
		t.Fatalf("expected only the dated row to be bucketed, got %+v", monthly)
	}
}
