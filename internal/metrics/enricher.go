package metrics

import (
	"strings"
	"time"

	"github.com/talvik-analytics/shipkpi/internal/dates"
	"github.com/talvik-analytics/shipkpi/internal/domain"
)

// slaRule maps product-name stems to a lead time in days. The table is
// checked in order; the first stem hit wins.
type slaRule struct {
	stems []string
	days  int
}

// Enricher derives fully-typed rows from raw cells under a field mapping.
// It is stateless across rows and safe to reuse between runs.
type Enricher struct {
	slaRules   []slaRule
	defaultSLA int
}

// NewEnricher creates an enricher with the confirmed SLA table:
// pillows ship on a 14-day lead time ("padj"/"padi" cover the Estonian
// product names), everything else on 28 days.
func NewEnricher() *Enricher {
	return &Enricher{
		slaRules: []slaRule{
			{stems: []string{"pillow", "padj", "padi"}, days: 14},
		},
		defaultSLA: 28,
	}
}

// SLADays returns the lead time for a product based on its normalized text.
func (e *Enricher) SLADays(product string) int {
	normalized := strings.ToLower(strings.TrimSpace(product))
	for _, rule := range e.slaRules {
		for _, stem := range rule.stems {
			if strings.Contains(normalized, stem) {
				return rule.days
			}
		}
	}
	return e.defaultSLA
}

// Enrich converts one raw row into its typed form. It is total: absent or
// unparseable fields degrade to nil/empty instead of erroring.
func (e *Enricher) Enrich(row domain.RawRow, mapping domain.FieldMapping, basis domain.MonthBasis) domain.EnrichedRow {
	rawOrderDate := row.Value(mapping, domain.FieldOrderDate)
	rawShippingDate := row.Value(mapping, domain.FieldShippingDate)
	orderDate := dates.Parse(rawOrderDate)
	shippingDate := dates.Parse(rawShippingDate)
	requiredArrival := dates.Parse(row.Value(mapping, domain.FieldRequiredArrivalDate))

	status := domain.NormalizeCell(row.Value(mapping, domain.FieldStatus))
	method := domain.NormalizeCell(row.Value(mapping, domain.FieldMethod))
	product := domain.NormalizeCell(row.Value(mapping, domain.FieldProduct))
	country := domain.NormalizeCell(row.Value(mapping, domain.FieldDestinationCountry))
	orderID := domain.NormalizeCell(row.Value(mapping, domain.FieldOrderID))
	customer := domain.NormalizeCell(row.Value(mapping, domain.FieldCustomer))

	var turnover *int
	if orderDate != nil && shippingDate != nil {
		days := dates.DaysBetween(*orderDate, *shippingDate)
		if days < 0 {
			days = 0
		}
		turnover = &days
	}

	slaDays := e.SLADays(product)
	var calculatedRequired *time.Time
	if orderDate != nil {
		d := dates.AddDays(*orderDate, slaDays)
		calculatedRequired = &d
	}

	// Excel-provided vs calculated on-time verdicts. Kept as two parallel
	// comparisons: mismatch reporting treats them as independently meaningful.
	isOnTime := onTimeVerdict(shippingDate, requiredArrival)
	isOnTimeCalculated := onTimeVerdict(shippingDate, calculatedRequired)

	mismatch := ""
	if isOnTime != nil && isOnTimeCalculated != nil && *isOnTime != *isOnTimeCalculated {
		if *isOnTimeCalculated {
			mismatch = domain.MismatchCalculatedOK
		} else {
			mismatch = domain.MismatchExcelOK
		}
	}

	axis := dates.AxisDate(basis, orderDate, shippingDate, requiredArrival)

	return domain.EnrichedRow{
		OrderDate:                     orderDate,
		ShippingDate:                  shippingDate,
		RequiredArrivalDate:           requiredArrival,
		CalculatedRequiredArrivalDate: calculatedRequired,
		SLADays:                       slaDays,
		Status:                        status,
		Method:                        method,
		Product:                       product,
		DestinationCountry:            country,
		OrderID:                       orderID,
		Customer:                      customer,
		TurnoverDays:                  turnover,
		HasOrderDateValue:             domain.NormalizeCell(rawOrderDate) != "",
		HasShippingDateValue:          domain.NormalizeCell(rawShippingDate) != "",
		IsOnTime:                      isOnTime,
		IsOnTimeCalculated:            isOnTimeCalculated,
		MismatchType:                  mismatch,
		MonthKey:                      dates.MonthKey(axis),
	}
}

// onTimeVerdict compares inclusively: shipping on the required date counts
// as on time. Either date missing means no verdict.
func onTimeVerdict(shipping, required *time.Time) *bool {
	if shipping == nil || required == nil {
		return nil
	}
	v := !shipping.After(*required)
	return &v
}
