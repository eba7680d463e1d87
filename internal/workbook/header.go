package workbook

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/talvik-analytics/shipkpi/internal/domain"
)

// HeaderCandidate is the result of the header-row scan.
type HeaderCandidate struct {
	RowIndex   int     `json:"rowIndex"`
	Confidence float64 `json:"confidence"`
}

// requiredTokens are the normalized header names the detector scores on.
var requiredTokens = []string{
	"order_date",
	"shipping_date",
	"required_date_of_arrival",
	"shipping_method",
	"current_status",
	"product",
	"country",
}

var (
	headerCellJunk = regexp.MustCompile(`[^a-z0-9_]`)
	underscoreRuns = regexp.MustCompile(`_+`)
)

func normalizeHeaderCell(cell string) string {
	s := strings.ToLower(cell)
	s = strings.Join(strings.Fields(s), "_")
	s = headerCellJunk.ReplaceAllString(s, "")
	s = underscoreRuns.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// DetectHeaderRow scans the first maxScan rows and picks the one that looks
// most like the header: +1 per required token found (exact or partial), plus
// a small bonus for how populated the row is.
func DetectHeaderRow(grid [][]string, maxScan int) HeaderCandidate {
	best := HeaderCandidate{RowIndex: 0}
	bestScore := math.Inf(-1)

	scan := len(grid)
	if maxScan > 0 && maxScan < scan {
		scan = maxScan
	}

	for i := 0; i < scan; i++ {
		norm := make([]string, len(grid[i]))
		nonEmpty := 0
		for j, cell := range grid[i] {
			norm[j] = normalizeHeaderCell(cell)
			if norm[j] != "" {
				nonEmpty++
			}
		}
		if nonEmpty == 0 {
			continue
		}

		score := 0.0
		for _, token := range requiredTokens {
			for _, cell := range norm {
				if cell == token || strings.Contains(cell, token) {
					score++
					break
				}
			}
		}
		score += math.Min(5, float64(nonEmpty)/10)

		if score > bestScore {
			bestScore = score
			best.RowIndex = i
		}
	}

	maxScore := float64(len(requiredTokens)) + 5
	if bestScore > 0 {
		best.Confidence = math.Round(math.Min(1, bestScore/maxScore)*100) / 100
	}
	return best
}

// ExtractHeaders reads the chosen header row and disambiguates duplicate and
// empty header cells so every column has a unique name.
func ExtractHeaders(grid [][]string, headerRowIndex int) []string {
	if headerRowIndex < 0 || headerRowIndex >= len(grid) {
		return nil
	}

	seen := make(map[string]int)
	headers := make([]string, 0, len(grid[headerRowIndex]))
	for _, cell := range grid[headerRowIndex] {
		base := strings.TrimSpace(cell)
		if base == "" {
			base = "(empty)"
		}
		seen[base]++
		switch {
		case seen[base] == 1:
			headers = append(headers, base)
		case base == "(empty)":
			headers = append(headers, fmt.Sprintf("(empty %d)", seen[base]))
		default:
			headers = append(headers, fmt.Sprintf("%s (%d)", base, seen[base]))
		}
	}
	return headers
}

// RowsToRecords converts the data rows below the header into raw row
// records keyed by column name. Rows whose cells are all blank after
// normalization are dropped.
func RowsToRecords(grid [][]string, headerRowIndex int) ([]domain.RawRow, []string) {
	headers := ExtractHeaders(grid, headerRowIndex)
	if headers == nil {
		return nil, nil
	}

	records := make([]domain.RawRow, 0, len(grid)-headerRowIndex-1)
	for _, row := range grid[headerRowIndex+1:] {
		record := make(domain.RawRow, len(headers))
		blank := true
		for j, header := range headers {
			var cell string
			if j < len(row) {
				cell = row[j]
			}
			record[header] = cell
			if domain.NormalizeCell(cell) != "" {
				blank = false
			}
		}
		if !blank {
			records = append(records, record)
		}
	}
	return records, headers
}
