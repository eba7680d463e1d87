package metrics

import (
	"testing"
	"time"

	"github.com/talvik-analytics/shipkpi/internal/domain"
)

// Serials for the dates used across the package tests:
// 45382 = 2024-03-31, 45384 = 2024-04-02, 45385 = 2024-04-03.
const (
	serialMarch31 = 45382.0
	serialApril2  = 45384.0
	serialApril3  = 45385.0
)

func fullMapping() domain.FieldMapping {
	return domain.FieldMapping{
		domain.FieldOrderDate:           "Order Date",
		domain.FieldShippingDate:        "Shipping Date",
		domain.FieldRequiredArrivalDate: "Required Date of Arrival",
		domain.FieldStatus:              "Current Status",
		domain.FieldMethod:              "Shipping Method",
		domain.FieldProduct:             "Product",
		domain.FieldDestinationCountry:  "Country",
		domain.FieldOrderID:             "Order ID",
		domain.FieldCustomer:            "Customer",
	}
}

func sampleRow() domain.RawRow {
	return domain.RawRow{
		"Order Date":               serialMarch31,
		"Shipping Date":            serialApril2,
		"Required Date of Arrival": serialApril3,
		"Current Status":           "Shipped",
		"Shipping Method":          "Air",
		"Product":                  "A",
		"Country":                  "Finland",
		"Order ID":                 "SO-1001",
		"Customer":                 "Acme Oy",
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSLADays(t *testing.T) {
	e := NewEnricher()
	cases := []struct {
		product string
		want    int
	}{
		{"Memory Pillow", 14},
		{"PILLOW deluxe", 14},
		{"Padjapüür 50x60", 14},
		{"Sulepadi", 14},
		{"Desk Lamp", 28},
		{"", 28},
	}
	for _, tc := range cases {
		if got := e.SLADays(tc.product); got != tc.want {
			t.Fatalf("SLADays(%q) = %d, want %d", tc.product, got, tc.want)
		}
	}
}

func TestEnrichDerivesDatesAndVerdicts(t *testing.T) {
	e := NewEnricher()
	row := e.Enrich(sampleRow(), fullMapping(), domain.BasisShipped)

	if row.OrderDate == nil || !row.OrderDate.Equal(day(2024, time.March, 31)) {
		t.Fatalf("expected order date 2024-03-31, got %v", row.OrderDate)
	}
	if row.ShippingDate == nil || !row.ShippingDate.Equal(day(2024, time.April, 2)) {
		t.Fatalf("expected shipping date 2024-04-02, got %v", row.ShippingDate)
	}
	if row.SLADays != 28 {
		t.Fatalf("expected default SLA of 28 days, got %d", row.SLADays)
	}
	if row.CalculatedRequiredArrivalDate == nil || !row.CalculatedRequiredArrivalDate.Equal(day(2024, time.April, 28)) {
		t.Fatalf("expected calculated required date 2024-04-28, got %v", row.CalculatedRequiredArrivalDate)
	}
	if row.TurnoverDays == nil || *row.TurnoverDays != 2 {
		t.Fatalf("expected turnover of 2 days, got %v", row.TurnoverDays)
	}
	if row.IsOnTime == nil || !*row.IsOnTime {
		t.Fatalf("expected on-time verdict true, got %v", row.IsOnTime)
	}
	if row.IsOnTimeCalculated == nil || !*row.IsOnTimeCalculated {
		t.Fatalf("expected calculated on-time verdict true, got %v", row.IsOnTimeCalculated)
	}
	if row.MismatchType != "" {
		t.Fatalf("expected no mismatch, got %q", row.MismatchType)
	}
	if row.MonthKey != "2024-04" {
		t.Fatalf("expected month key 2024-04 under shipped basis, got %q", row.MonthKey)
	}
}

func TestEnrichMonthKeyFollowsBasis(t *testing.T) {
	e := NewEnricher()

	row := e.Enrich(sampleRow(), fullMapping(), domain.BasisOrder)
	if row.MonthKey != "2024-03" {
		t.Fatalf("expected month key 2024-03 under order basis, got %q", row.MonthKey)
	}

	row = e.Enrich(sampleRow(), fullMapping(), domain.BasisSLADue)
	if row.MonthKey != "2024-04" {
		t.Fatalf("expected month key 2024-04 under sla_due basis, got %q", row.MonthKey)
	}
}

func TestEnrichTurnoverNeverNegative(t *testing.T) {
	raw := sampleRow()
	raw["Order Date"] = serialApril2
	raw["Shipping Date"] = serialMarch31

	row := NewEnricher().Enrich(raw, fullMapping(), domain.BasisShipped)
	if row.TurnoverDays == nil || *row.TurnoverDays != 0 {
		t.Fatalf("expected turnover clamped to 0, got %v", row.TurnoverDays)
	}
}

func TestEnrichVerdictInclusiveOnEqualDates(t *testing.T) {
	raw := sampleRow()
	raw["Required Date of Arrival"] = serialApril2

	row := NewEnricher().Enrich(raw, fullMapping(), domain.BasisShipped)
	if row.IsOnTime == nil || !*row.IsOnTime {
		t.Fatalf("expected shipping on the required date to count as on time, got %v", row.IsOnTime)
	}
}

func TestEnrichMismatchLabels(t *testing.T) {
	// Excel verdict on time, calculated verdict late: order 2024-03-31 plus
	// 28 days gives 2024-04-28, ship date 2024-05-10 is past it, but the
	// sheet's own required date is even later.
	raw := sampleRow()
	raw["Shipping Date"] = "2024-05-10"
	raw["Required Date of Arrival"] = "2024-05-15"

	row := NewEnricher().Enrich(raw, fullMapping(), domain.BasisShipped)
	if row.MismatchType != domain.MismatchExcelOK {
		t.Fatalf("expected mismatch %q, got %q", domain.MismatchExcelOK, row.MismatchType)
	}

	// Opposite direction: the sheet demands an arrival before the ship date,
	// but the calculated SLA still allows it.
	raw = sampleRow()
	raw["Shipping Date"] = "2024-04-10"
	raw["Required Date of Arrival"] = "2024-04-05"

	row = NewEnricher().Enrich(raw, fullMapping(), domain.BasisShipped)
	if row.MismatchType != domain.MismatchCalculatedOK {
		t.Fatalf("expected mismatch %q, got %q", domain.MismatchCalculatedOK, row.MismatchType)
	}
}

func TestEnrichDegradesOnMissingDates(t *testing.T) {
	raw := sampleRow()
	raw["Order Date"] = ""
	raw["Shipping Date"] = ""
	raw["Required Date of Arrival"] = ""

	row := NewEnricher().Enrich(raw, fullMapping(), domain.BasisShipped)
	if row.OrderDate != nil || row.ShippingDate != nil || row.RequiredArrivalDate != nil {
		t.Fatalf("expected nil dates, got %v %v %v", row.OrderDate, row.ShippingDate, row.RequiredArrivalDate)
	}
	if row.TurnoverDays != nil {
		t.Fatalf("expected no turnover without both dates, got %v", row.TurnoverDays)
	}
	if row.IsOnTime != nil || row.IsOnTimeCalculated != nil {
		t.Fatalf("expected no verdicts without dates")
	}
	if row.MonthKey != "" {
		t.Fatalf("expected empty month key, got %q", row.MonthKey)
	}
	if row.HasOrderDateValue || row.HasShippingDateValue {
		t.Fatalf("expected raw presence flags to be false for blank cells")
	}
}

func TestEnrichFlagsUnparseableDateText(t *testing.T) {
	raw := sampleRow()
	raw["Order Date"] = "sometime in spring"

	row := NewEnricher().Enrich(raw, fullMapping(), domain.BasisShipped)
	if row.OrderDate != nil {
		t.Fatalf("expected unparseable order date to stay nil, got %v", row.OrderDate)
	}
	if !row.HasOrderDateValue {
		t.Fatalf("expected raw presence flag to be true for non-empty cell")
	}
}
