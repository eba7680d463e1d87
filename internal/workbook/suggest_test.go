package workbook

import (
	"testing"

	"github.com/talvik-analytics/shipkpi/internal/domain"
)

func TestNormalizeHeader(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Order Date", "order_date"},
		{"  Required Date of Arrival  ", "required_date_of_arrival"},
		{"Column1.shipping_date", "column1_shipping_date"},
		{"Status!!", "status"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeHeader(tc.in); got != tc.want {
			t.Fatalf("NormalizeHeader(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSuggestMappingFromDisplayHeaders(t *testing.T) {
	headers := []string{
		"Order Date", "Shipping Date", "Required Date of Arrival",
		"Current Status", "Shipping Method", "Product", "Country",
		"Order ID", "Customer",
	}
	mapping := SuggestMapping(headers)

	for _, field := range domain.RequiredMappedFields {
		if !mapping.IsMapped(field) {
			t.Fatalf("expected %s to be mapped, got %v", field, mapping)
		}
	}
	if got := mapping[domain.FieldRequiredArrivalDate]; got != "Required Date of Arrival" {
		t.Fatalf("expected required arrival mapped to its display header, got %q", got)
	}
	if got := mapping[domain.FieldCustomer]; got != "Customer" {
		t.Fatalf("expected customer mapped, got %q", got)
	}
}

func TestSuggestMappingFromPowerQueryHeaders(t *testing.T) {
	headers := []string{
		"Column1.order_date", "Column1.shipping_date", "Column1.required_date_of_arrival",
		"Column1.current_status", "Column1.shipping_method", "Column1.product", "Column1.country",
	}
	mapping := SuggestMapping(headers)

	for _, field := range domain.RequiredMappedFields {
		if !mapping.IsMapped(field) {
			t.Fatalf("expected %s to be mapped from Power Query headers, got %v", field, mapping)
		}
	}
	if got := mapping[domain.FieldOrderDate]; got != "Column1.order_date" {
		t.Fatalf("expected exact Power Query header, got %q", got)
	}
}

func TestSuggestMappingLeavesUnknownFieldsUnmapped(t *testing.T) {
	mapping := SuggestMapping([]string{"Foo", "Bar", "Baz"})
	for _, field := range domain.RequiredMappedFields {
		if mapping.IsMapped(field) {
			t.Fatalf("expected %s to stay unmapped, got %q", field, mapping[field])
		}
	}
}
