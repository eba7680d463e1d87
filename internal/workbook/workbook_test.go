package workbook

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeFixture(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	rows := [][]any{
		{"Order Date", "Shipping Date", "Current Status"},
		{"2024-03-31", "2024-04-02", "Shipped"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("failed to build cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("failed to write fixture row: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save fixture workbook: %v", err)
	}
	return path
}

func TestWorkbookRoundTrip(t *testing.T) {
	path := writeFixture(t)

	wb, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	if wb.Name != "fixture.xlsx" {
		t.Fatalf("expected workbook name fixture.xlsx, got %q", wb.Name)
	}

	sheet, err := wb.FirstSheet()
	if err != nil {
		t.Fatalf("FirstSheet failed: %v", err)
	}
	if sheet != "Sheet1" {
		t.Fatalf("expected Sheet1, got %q", sheet)
	}

	grid, err := wb.Grid(sheet)
	if err != nil {
		t.Fatalf("Grid failed: %v", err)
	}
	if len(grid) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(grid))
	}
	if grid[1][2] != "Shipped" {
		t.Fatalf("expected status cell to round-trip, got %q", grid[1][2])
	}

	if _, err := wb.Grid("NoSuchSheet"); err == nil {
		t.Fatalf("expected error for missing sheet")
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.xlsx")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
