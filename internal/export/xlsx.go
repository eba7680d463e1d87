package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/talvik-analytics/shipkpi/internal/domain"
)

// WriteReportXLSX writes a two-sheet workbook: the monthly summary in the
// fixed export schema and the included rows. Sheet and column names match
// the legacy export that downstream tooling already consumes.
func WriteReportXLSX(path string, result domain.CalculationResult) error {
	f := excelize.NewFile()
	defer f.Close()

	const monthlySheet = "monthly_summary"
	const rowsSheet = "included_rows"

	f.SetSheetName("Sheet1", monthlySheet)
	if _, err := f.NewSheet(rowsSheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", rowsSheet, err)
	}

	if err := writeSheet(f, monthlySheet, monthlyHeader, len(result.Monthly), func(i int) []any {
		m := result.Monthly[i]
		record := []any{m.Month, m.Shipped, m.OnTime, m.Late, m.OnTimeRate, nil}
		if m.AverageTurnover != nil {
			record[5] = *m.AverageTurnover
		}
		return record
	}); err != nil {
		return err
	}

	if err := writeSheet(f, rowsSheet, rowsHeader, len(result.Rows), func(i int) []any {
		cells := rowRecord(result.Rows[i])
		record := make([]any, len(cells))
		for j, cell := range cells {
			record[j] = cell
		}
		return record
	}); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []string, n int, record func(i int) []any) error {
	headerCells := make([]any, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := setRow(f, sheet, 1, headerCells); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := setRow(f, sheet, i+2, record(i)); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("failed to compute cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", rowNum, sheet, err)
	}
	return nil
}
