package metrics

import (
	"math"
	"sort"

	"github.com/talvik-analytics/shipkpi/internal/domain"
)

// BuildMonthlySummary groups included rows by month key and computes the
// per-month KPI counts. Months are sorted ascending by key, which is
// chronological for "YYYY-MM" strings.
func BuildMonthlySummary(rows []domain.EnrichedRow) []domain.MonthlySummary {
	grouped := make(map[string][]domain.EnrichedRow)
	for _, row := range rows {
		if row.MonthKey == "" {
			continue
		}
		grouped[row.MonthKey] = append(grouped[row.MonthKey], row)
	}

	months := make([]string, 0, len(grouped))
	for month := range grouped {
		months = append(months, month)
	}
	sort.Strings(months)

	summaries := make([]domain.MonthlySummary, 0, len(months))
	for _, month := range months {
		monthRows := grouped[month]
		summary := domain.MonthlySummary{
			Month:   month,
			Shipped: len(monthRows),
		}

		var turnoverSum, turnoverCount int
		for _, row := range monthRows {
			if row.IsOnTime != nil {
				if *row.IsOnTime {
					summary.OnTime++
				} else {
					summary.Late++
				}
			}
			if row.IsOnTimeCalculated != nil {
				if *row.IsOnTimeCalculated {
					summary.OnTimeCalculated++
				} else {
					summary.LateCalculated++
				}
			}
			if row.MismatchType != "" {
				summary.MismatchCount++
			}
			if row.TurnoverDays != nil {
				turnoverSum += *row.TurnoverDays
				turnoverCount++
			}
		}

		if summary.Shipped > 0 {
			summary.OnTimeRate = float64(summary.OnTime) / float64(summary.Shipped)
			summary.OnTimeRateCalculated = float64(summary.OnTimeCalculated) / float64(summary.Shipped)
		}
		if turnoverCount > 0 {
			avg := roundTo1(float64(turnoverSum) / float64(turnoverCount))
			summary.AverageTurnover = &avg
		}

		summaries = append(summaries, summary)
	}
	return summaries
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
