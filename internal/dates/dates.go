// Package dates normalizes the date representations found in spreadsheet
// exports (numeric serials, ISO strings, locale strings, native dates) into
// canonical UTC calendar dates with no time-of-day component.
package dates

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/talvik-analytics/shipkpi/internal/domain"
)

// excelEpoch is the classic off-by-two spreadsheet epoch: serial day 0.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var (
	isoPrefixRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	serialRe    = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// looseLayouts are tried in order for locale-formatted strings. The US
// month-first order comes first to match how the source data is produced.
var looseLayouts = []string{
	"1/2/2006",
	"1/2/06",
	"2.1.2006",
	"2006/1/2",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	time.RFC3339,
}

// FromSerial converts a spreadsheet serial day count into a UTC calendar
// date. Fractional day parts (time-of-day) are truncated. Non-finite input
// yields nil.
func FromSerial(value float64) *time.Time {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	days := int(math.Floor(value))
	d := excelEpoch.AddDate(0, 0, days)
	return &d
}

// Parse converts any supported cell value into a canonical UTC calendar
// date. Unparseable, blank, or nil input yields nil, never an error.
func Parse(value any) *time.Time {
	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		if v.IsZero() {
			return nil
		}
		d := truncateUTC(v.UTC())
		return &d
	case float64:
		return FromSerial(v)
	case float32:
		return FromSerial(float64(v))
	case int:
		return FromSerial(float64(v))
	case int64:
		return FromSerial(float64(v))
	case string:
		return parseString(v)
	default:
		return nil
	}
}

func parseString(value string) *time.Time {
	trimmed := strings.TrimSpace(strings.ReplaceAll(value, "_x000D_", ""))
	if trimmed == "" {
		return nil
	}

	if isoPrefixRe.MatchString(trimmed) {
		d, err := time.Parse("2006-01-02", trimmed[:10])
		if err != nil {
			return nil
		}
		d = d.UTC()
		return &d
	}

	if serialRe.MatchString(trimmed) {
		serial, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil
		}
		return FromSerial(serial)
	}

	for _, layout := range looseLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			d := truncateUTC(parsed)
			return &d
		}
	}
	return nil
}

func truncateUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays returns the UTC calendar date days after t.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// DaysBetween returns the day difference end - start, rounded to the
// nearest whole day.
func DaysBetween(start, end time.Time) int {
	return int(math.Round(end.Sub(start).Hours() / 24))
}

// MonthKey formats a canonical date as its "YYYY-MM" reporting month, or ""
// for nil.
func MonthKey(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01")
}

// AxisDate picks the date that anchors a row to a reporting month under the
// given basis. The first non-nil date in the basis's preference order wins.
func AxisDate(basis domain.MonthBasis, order, shipping, requiredArrival *time.Time) *time.Time {
	switch basis {
	case domain.BasisShipped:
		return firstNonNil(shipping, requiredArrival, order)
	case domain.BasisSLADue:
		return firstNonNil(requiredArrival, shipping, order)
	default:
		return firstNonNil(order, shipping, requiredArrival)
	}
}

func firstNonNil(dates ...*time.Time) *time.Time {
	for _, d := range dates {
		if d != nil {
			return d
		}
	}
	return nil
}
