package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/talvik-analytics/shipkpi/internal/domain"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return records
}

func TestWriteMonthlyCSVSchema(t *testing.T) {
	avg := 2.5
	monthly := []domain.MonthlySummary{
		{Month: "2024-03", Shipped: 4, OnTime: 3, Late: 1, OnTimeRate: 0.75, AverageTurnover: &avg},
		{Month: "2024-04", Shipped: 1},
	}

	path := filepath.Join(t.TempDir(), "monthly.csv")
	if err := WriteMonthlyCSV(path, monthly); err != nil {
		t.Fatalf("WriteMonthlyCSV failed: %v", err)
	}

	records := readCSV(t, path)
	wantHeader := []string{"month", "shipped", "onTime", "late", "onTimeRate", "averageTurnover"}
	if !reflect.DeepEqual(records[0], wantHeader) {
		t.Fatalf("monthly header contract broken: %v", records[0])
	}
	if !reflect.DeepEqual(records[1], []string{"2024-03", "4", "3", "1", "0.75", "2.5"}) {
		t.Fatalf("unexpected monthly record: %v", records[1])
	}
	// No turnover data renders as an empty cell, not a zero.
	if records[2][5] != "" {
		t.Fatalf("expected empty averageTurnover cell, got %q", records[2][5])
	}
}

func TestWriteRowsCSV(t *testing.T) {
	order := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	shipping := time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC)
	turnover := 2
	onTime := true

	rows := []domain.EnrichedRow{
		{
			OrderDate:          &order,
			ShippingDate:       &shipping,
			Status:             "Shipped",
			Method:             "Air",
			Product:            "A",
			DestinationCountry: "Finland",
			OrderID:            "SO-1001",
			TurnoverDays:       &turnover,
			IsOnTime:           &onTime,
			MonthKey:           "2024-04",
		},
		{Status: "Shipped"},
	}

	path := filepath.Join(t.TempDir(), "rows.csv")
	if err := WriteRowsCSV(path, rows); err != nil {
		t.Fatalf("WriteRowsCSV failed: %v", err)
	}

	records := readCSV(t, path)
	want := []string{
		"2024-03-31", "2024-04-02", "", "Shipped", "Air", "A", "Finland",
		"SO-1001", "", "2", "Yes", "2024-04",
	}
	if !reflect.DeepEqual(records[1], want) {
		t.Fatalf("unexpected row record: %v", records[1])
	}
	// Missing dates and verdicts render as empty cells.
	if records[2][0] != "" || records[2][10] != "" {
		t.Fatalf("expected empty cells for missing values, got %v", records[2])
	}
}

func TestWriteExcludedCSVAppendsReason(t *testing.T) {
	excluded := []domain.ExcludedRow{
		{Row: domain.EnrichedRow{Status: "Pending"}, Reason: "Status mismatch"},
	}

	path := filepath.Join(t.TempDir(), "excluded.csv")
	if err := WriteExcludedCSV(path, excluded); err != nil {
		t.Fatalf("WriteExcludedCSV failed: %v", err)
	}

	records := readCSV(t, path)
	if records[0][len(records[0])-1] != "reason" {
		t.Fatalf("expected trailing reason column, got %v", records[0])
	}
	if records[1][len(records[1])-1] != "Status mismatch" {
		t.Fatalf("expected verbatim reason text, got %v", records[1])
	}
}
