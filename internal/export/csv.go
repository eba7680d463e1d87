// Package export writes calculation results back out in the fixed column
// schemas that external spreadsheet tooling depends on.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/talvik-analytics/shipkpi/internal/domain"
)

// monthlyHeader is a compatibility contract: downstream tooling reads these
// columns by name and position. Do not rename or reorder.
var monthlyHeader = []string{"month", "shipped", "onTime", "late", "onTimeRate", "averageTurnover"}

var rowsHeader = []string{
	"orderDate", "shippingDate", "requiredArrivalDate", "status", "method",
	"product", "destinationCountry", "orderId", "customer", "turnoverDays",
	"isOnTime", "monthKey",
}

// WriteMonthlyCSV writes the monthly summary in the fixed export schema
// (Excel required date variant only).
func WriteMonthlyCSV(path string, monthly []domain.MonthlySummary) error {
	return writeCSV(path, monthlyHeader, len(monthly), func(i int) []string {
		return monthlyRecord(monthly[i])
	})
}

// WriteRowsCSV writes the included rows.
func WriteRowsCSV(path string, rows []domain.EnrichedRow) error {
	return writeCSV(path, rowsHeader, len(rows), func(i int) []string {
		return rowRecord(rows[i])
	})
}

// WriteExcludedCSV writes the excluded rows with their exclusion reason as
// a trailing column.
func WriteExcludedCSV(path string, excluded []domain.ExcludedRow) error {
	header := append(append([]string{}, rowsHeader...), "reason")
	return writeCSV(path, header, len(excluded), func(i int) []string {
		return append(rowRecord(excluded[i].Row), excluded[i].Reason)
	})
}

func writeCSV(path string, header []string, n int, record func(i int) []string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file %s: %w", path, err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	defer w.Flush()

	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header to %s: %w", path, err)
	}
	for i := 0; i < n; i++ {
		if err := w.Write(record(i)); err != nil {
			return fmt.Errorf("failed to write csv row to %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}

func monthlyRecord(m domain.MonthlySummary) []string {
	return []string{
		m.Month,
		strconv.Itoa(m.Shipped),
		strconv.Itoa(m.OnTime),
		strconv.Itoa(m.Late),
		strconv.FormatFloat(m.OnTimeRate, 'f', -1, 64),
		formatOptionalFloat(m.AverageTurnover),
	}
}

func rowRecord(r domain.EnrichedRow) []string {
	return []string{
		formatDate(r.OrderDate),
		formatDate(r.ShippingDate),
		formatDate(r.RequiredArrivalDate),
		r.Status,
		r.Method,
		r.Product,
		r.DestinationCountry,
		r.OrderID,
		r.Customer,
		formatOptionalInt(r.TurnoverDays),
		formatVerdict(r.IsOnTime),
		r.MonthKey,
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

func formatOptionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatOptionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatVerdict(v *bool) string {
	switch {
	case v == nil:
		return ""
	case *v:
		return "Yes"
	default:
		return "No"
	}
}
