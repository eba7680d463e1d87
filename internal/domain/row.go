package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// RawRow is one data row as read from the source sheet: raw column name to
// arbitrary scalar cell value. Immutable once read.
type RawRow map[string]any

// Value returns the cell under the column mapped to key, or "" when the
// field is unmapped or the column is absent.
func (r RawRow) Value(mapping FieldMapping, key FieldKey) any {
	column := mapping.Column(key)
	if column == "" {
		return ""
	}
	if v, ok := r[column]; ok && v != nil {
		return v
	}
	return ""
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeCell renders a cell value as display text: XLSX carriage-return
// artifacts stripped, whitespace runs collapsed to single spaces, trimmed.
func NormalizeCell(value any) string {
	var s string
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		s = v
	case time.Time:
		s = v.Format("2006-01-02")
	default:
		s = fmt.Sprint(v)
	}
	s = strings.ReplaceAll(s, "_x000D_", "")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Mismatch labels for rows where the Excel-provided and the calculated
// on-time verdicts disagree. These strings are displayed to end users.
const (
	MismatchCalculatedOK = "Calculated OK, Excel NOT OK"
	MismatchExcelOK      = "Calculated NOT OK, Excel OK"
)

// EnrichedRow is the typed, derived form of one RawRow after mapping and
// date normalization. Nil pointers mean the value was unmapped, blank, or
// unparseable.
type EnrichedRow struct {
	OrderDate           *time.Time `json:"orderDate"`
	ShippingDate        *time.Time `json:"shippingDate"`
	RequiredArrivalDate *time.Time `json:"requiredArrivalDate"`

	// CalculatedRequiredArrivalDate is order date + SLA days.
	CalculatedRequiredArrivalDate *time.Time `json:"calculatedRequiredArrivalDate"`
	// SLADays is the lead time applied for the calculation (14 or 28).
	SLADays int `json:"slaDays"`

	Status             string `json:"status"`
	Method             string `json:"method"`
	Product            string `json:"product"`
	DestinationCountry string `json:"destinationCountry"`
	OrderID            string `json:"orderId,omitempty"`
	Customer           string `json:"customer,omitempty"`

	TurnoverDays *int `json:"turnoverDays"`

	// Raw presence flags distinguish an empty date cell from one whose text
	// failed to parse when attributing exclusion reasons.
	HasOrderDateValue    bool `json:"-"`
	HasShippingDateValue bool `json:"-"`

	// IsOnTime compares the ship date against the Excel-provided required date.
	IsOnTime *bool `json:"isOnTime"`
	// IsOnTimeCalculated compares against the calculated required date.
	IsOnTimeCalculated *bool `json:"isOnTimeCalculated"`

	// MismatchType is set only when both verdicts exist and disagree.
	MismatchType string `json:"mismatchType,omitempty"`

	// MonthKey anchors the row to a reporting month ("YYYY-MM"), derived from
	// the axis date of the active month basis. Empty when no date is usable.
	MonthKey string `json:"monthKey,omitempty"`
}
