package workbook

import (
	"regexp"
	"strings"

	"github.com/talvik-analytics/shipkpi/internal/domain"
)

var headerJunk = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeHeader canonicalizes a raw header for lookup: lowercase,
// non-alphanumerics collapsed to single underscores, trimmed.
func NormalizeHeader(value string) string {
	s := strings.ToLower(strings.TrimSpace(value))
	s = headerJunk.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// fieldNeedles lists, per semantic field, the header names to look for in
// priority order. The "Column1.*" variants cover Power Query exports.
var fieldNeedles = map[domain.FieldKey][]string{
	domain.FieldOrderDate: {
		"Column1.order_date", "order_date", "order date", "orderdate", "order_dt",
	},
	domain.FieldShippingDate: {
		"Column1.shipping_date", "shipping_date", "shipping date", "ship date", "ship_dt",
	},
	domain.FieldRequiredArrivalDate: {
		"Column1.required_date_of_arrival", "required_date_of_arrival",
		"required_arrival_date", "sla", "sla date",
	},
	domain.FieldStatus: {
		"Column1.current_status", "current_status", "status", "order status", "shipment status",
	},
	domain.FieldMethod: {
		"Column1.shipping_method", "shipping_method", "shipping method", "method", "ship method",
	},
	domain.FieldProduct: {
		"Column1.product", "product", "sku", "item",
	},
	domain.FieldDestinationCountry: {
		"Column1.country", "country", "destination_country", "ship country", "destination",
	},
	domain.FieldOrderID: {
		"Column1.order_id", "Column1.order_number", "order_id", "order id",
		"order number", "order no", "order_no",
	},
	domain.FieldCustomer: {
		"Column1.customer", "customer", "customer name", "client",
	},
}

// SuggestMapping proposes a field mapping from the sheet's headers. Fields
// with no plausible column stay unmapped; the user confirms or edits the
// suggestion before calculating.
func SuggestMapping(headers []string) domain.FieldMapping {
	mapping := make(domain.FieldMapping, len(fieldNeedles))
	for field, needles := range fieldNeedles {
		if header := pickHeader(headers, needles); header != "" {
			mapping[field] = header
		}
	}
	return mapping
}

func pickHeader(headers []string, needles []string) string {
	// Direct match first.
	for _, needle := range needles {
		for _, header := range headers {
			if header == needle {
				return header
			}
		}
	}

	// Case-insensitive exact match.
	for _, needle := range needles {
		lower := strings.ToLower(needle)
		for _, header := range headers {
			if strings.ToLower(header) == lower {
				return header
			}
		}
	}

	// Normalized match, so "Required Date of Arrival" finds
	// "required_date_of_arrival".
	for _, needle := range needles {
		normalized := NormalizeHeader(needle)
		for _, header := range headers {
			if NormalizeHeader(header) == normalized {
				return header
			}
		}
	}

	// Partial match: needle contained in header.
	for _, needle := range needles {
		lower := strings.ToLower(needle)
		for _, header := range headers {
			if strings.Contains(strings.ToLower(header), lower) {
				return header
			}
		}
	}

	return ""
}
