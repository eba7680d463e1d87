package metrics

import (
	"strings"

	"github.com/talvik-analytics/shipkpi/internal/domain"
)

// methodDeliveryNotRequired is the shipping method excluded by default.
const methodDeliveryNotRequired = "Delivery not required"

// Classify runs the ordered eligibility chain over one enriched row and
// returns "" when the row is included, or the exclusion reason of the first
// failing predicate. The chain short-circuits so a row never carries more
// than one reason.
func Classify(row *domain.EnrichedRow, mapping domain.FieldMapping, rules domain.RulesConfig, filters domain.FiltersConfig) string {
	if missingMappedFields(mapping) {
		return domain.ReasonMissingFields
	}
	if missingRequiredValues(row) {
		return domain.ReasonMissingFields
	}

	// Mandatory dates: order date + ship date.
	if row.OrderDate == nil || row.ShippingDate == nil {
		return domain.ReasonUnparseableDates
	}

	if !MatchStatus(row.Status, rules) {
		return domain.ReasonStatusMismatch
	}

	if rules.ExcludeChina && strings.Contains(strings.ToLower(row.DestinationCountry), "china") {
		return domain.ReasonExcludedCountry
	}

	if !filters.DeliveryNotRequired && row.Method == methodDeliveryNotRequired {
		return domain.ReasonDeliveryNotRequired
	}

	if len(filters.Methods) > 0 && !containsString(filters.Methods, row.Method) {
		return domain.ReasonFilteredByMethod
	}

	if len(filters.Products) > 0 && !containsString(filters.Products, row.Product) {
		return domain.ReasonFilteredByProduct
	}

	if filters.MonthRange[0] != "" && row.MonthKey != "" && row.MonthKey < filters.MonthRange[0] {
		return domain.ReasonFilteredByMonth
	}
	if filters.MonthRange[1] != "" && row.MonthKey != "" && row.MonthKey > filters.MonthRange[1] {
		return domain.ReasonFilteredByMonth
	}

	if row.MonthKey == "" {
		return domain.ReasonMissingMonthBasis
	}

	return ""
}

// StructurallyValid is the looser completeness check behind the quality
// report's validRows count: mapping complete, required values present, both
// mandatory dates parseable. Business rules (status, country, filters) are
// deliberately not part of it.
func StructurallyValid(row *domain.EnrichedRow, mapping domain.FieldMapping) bool {
	if missingMappedFields(mapping) {
		return false
	}
	if missingRequiredValues(row) {
		return false
	}
	return row.OrderDate != nil && row.ShippingDate != nil
}

func missingMappedFields(mapping domain.FieldMapping) bool {
	for _, field := range domain.RequiredMappedFields {
		if !mapping.IsMapped(field) {
			return true
		}
	}
	return false
}

func missingRequiredValues(row *domain.EnrichedRow) bool {
	for _, field := range domain.RequiredValueFields {
		switch field {
		case domain.FieldOrderDate:
			if !row.HasOrderDateValue {
				return true
			}
		case domain.FieldShippingDate:
			if !row.HasShippingDateValue {
				return true
			}
		case domain.FieldStatus:
			if row.Status == "" {
				return true
			}
		case domain.FieldMethod:
			if row.Method == "" {
				return true
			}
		case domain.FieldProduct:
			if row.Product == "" {
				return true
			}
		case domain.FieldDestinationCountry:
			if row.DestinationCountry == "" {
				return true
			}
		}
	}
	return false
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
