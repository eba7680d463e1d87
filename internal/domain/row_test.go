package domain

import (
	"testing"
	"time"
)

func TestNormalizeCell(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"plain string", " Shipped ", "Shipped"},
		{"carriage return artifact", "Shipped_x000D_ out", "Shipped out"},
		{"whitespace run", "Shipped \t\n out", "Shipped out"},
		{"native date", time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), "2024-03-31"},
		{"number", 42, "42"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeCell(tc.in); got != tc.want {
				t.Fatalf("NormalizeCell(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestRawRowValue(t *testing.T) {
	row := RawRow{"Order Date": 45382.0}
	mapping := FieldMapping{FieldOrderDate: "Order Date"}

	if got := row.Value(mapping, FieldOrderDate); got != 45382.0 {
		t.Fatalf("expected mapped cell value, got %v", got)
	}
	if got := row.Value(mapping, FieldStatus); got != "" {
		t.Fatalf("expected empty value for unmapped field, got %v", got)
	}
	if got := row.Value(mapping, FieldShippingDate); got != "" {
		t.Fatalf("expected empty value for absent column, got %v", got)
	}
}

func TestFieldMappingColumn(t *testing.T) {
	var nilMapping FieldMapping
	if nilMapping.IsMapped(FieldOrderDate) {
		t.Fatalf("expected nil mapping to report unmapped fields")
	}

	mapping := FieldMapping{FieldOrderDate: "  Order Date  ", FieldStatus: "   "}
	if got := mapping.Column(FieldOrderDate); got != "Order Date" {
		t.Fatalf("expected trimmed column name, got %q", got)
	}
	if mapping.IsMapped(FieldStatus) {
		t.Fatalf("expected whitespace-only binding to count as unmapped")
	}
}
