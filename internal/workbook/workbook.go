// Package workbook decodes XLSX exports into raw row records and carries
// the header plumbing around the metrics engine: header-row detection,
// duplicate header disambiguation, and column-to-field mapping suggestions.
package workbook

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Workbook wraps an open XLSX file.
type Workbook struct {
	f    *excelize.File
	Name string
}

// Open loads an XLSX workbook from disk.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx file %s: %w", path, err)
	}
	return &Workbook{f: f, Name: filepath.Base(path)}, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// SheetNames lists the workbook's sheets in file order.
func (w *Workbook) SheetNames() []string {
	return w.f.GetSheetList()
}

// FirstSheet returns the name of the first sheet, or an error for a
// workbook with no sheets.
func (w *Workbook) FirstSheet() (string, error) {
	sheets := w.SheetNames()
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook %s has no sheets", w.Name)
	}
	return sheets[0], nil
}

// Grid reads a whole sheet as a 2-D grid of cell strings.
func (w *Workbook) Grid(sheet string) ([][]string, error) {
	rows, err := w.f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %s: %w", sheet, err)
	}
	return rows, nil
}
