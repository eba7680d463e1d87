package domain

import "strings"

// FieldKey identifies one semantic column of the shipment schema.
type FieldKey string

const (
	FieldOrderDate           FieldKey = "order_date"
	FieldShippingDate        FieldKey = "shipping_date"
	FieldRequiredArrivalDate FieldKey = "required_arrival_date"
	FieldStatus              FieldKey = "status"
	FieldMethod              FieldKey = "method"
	FieldProduct             FieldKey = "product"
	FieldDestinationCountry  FieldKey = "destination_country"
	FieldOrderID             FieldKey = "order_id"
	FieldCustomer            FieldKey = "customer"
)

// RequiredMappedFields are the columns that must be bound in the mapping
// before any row can be included. The required arrival date is mapped for
// the Excel-vs-calculated comparison but is NOT mandatory per row.
var RequiredMappedFields = []FieldKey{
	FieldOrderDate,
	FieldShippingDate,
	FieldRequiredArrivalDate,
	FieldStatus,
	FieldMethod,
	FieldProduct,
	FieldDestinationCountry,
}

// RequiredValueFields are the fields that must carry a value on a row for it
// to count toward the KPIs. Order date and ship date are mandatory; the Excel
// required date can be missing.
var RequiredValueFields = []FieldKey{
	FieldOrderDate,
	FieldShippingDate,
	FieldStatus,
	FieldMethod,
	FieldProduct,
	FieldDestinationCountry,
}

// OptionalFields are mapped when available but never gate inclusion.
var OptionalFields = []FieldKey{
	FieldOrderID,
	FieldCustomer,
}

// FieldLabels provides display names for the mapping UI and CLI output.
var FieldLabels = map[FieldKey]string{
	FieldOrderDate:           "Order date",
	FieldShippingDate:        "Shipping date",
	FieldRequiredArrivalDate: "Required arrival/SLA date",
	FieldStatus:              "Status",
	FieldMethod:              "Shipping method",
	FieldProduct:             "Product",
	FieldDestinationCountry:  "Destination country",
	FieldOrderID:             "Order ID",
	FieldCustomer:            "Customer",
}

// FieldMapping binds semantic field keys to raw column names. A missing or
// empty entry means the field is unmapped.
type FieldMapping map[FieldKey]string

// Column returns the raw column bound to key, or "" when unmapped.
func (m FieldMapping) Column(key FieldKey) string {
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[key])
}

// IsMapped reports whether key is bound to a raw column.
func (m FieldMapping) IsMapped(key FieldKey) bool {
	return m.Column(key) != ""
}
