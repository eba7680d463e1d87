package domain

// MonthBasis selects which event date anchors a row to a reporting month.
type MonthBasis string

const (
	BasisShipped MonthBasis = "shipped"
	BasisSLADue  MonthBasis = "sla_due"
	BasisOrder   MonthBasis = "order"
)

// RulesConfig holds the business rules applied during row classification.
// It is owned by the caller and passed by value into every calculation.
type RulesConfig struct {
	ExcludeChina bool `json:"excludeChina"`
	// StatusMatchers are phrases matched against the status text, either as
	// a case-insensitive exact match or as a whole-word substring.
	StatusMatchers []string `json:"statusMatchers"`
	// StatusRegex is an optional user-supplied pattern, additive to the
	// matcher list. Invalid patterns are silently ignored.
	StatusRegex string `json:"statusRegex"`
}

// FiltersConfig holds the interactive filters applied after the rules.
// Empty method/product sets mean no restriction.
type FiltersConfig struct {
	Methods  []string `json:"methods"`
	Products []string `json:"products"`
	// MonthRange bounds the month key inclusively; "" means unbounded.
	MonthRange [2]string `json:"monthRange"`
	// DeliveryNotRequired, when false, excludes rows whose shipping method is
	// exactly "Delivery not required".
	DeliveryNotRequired bool       `json:"deliveryNotRequired"`
	MonthBasis          MonthBasis `json:"monthBasis"`
}

// DefaultRules returns the rule set applied when the user has not edited one.
func DefaultRules() RulesConfig {
	return RulesConfig{
		ExcludeChina:   true,
		StatusMatchers: []string{"shipped", "shipped out", "delivered", "sampling finished"},
		StatusRegex:    "",
	}
}

// DefaultFilters returns the filter set for a fresh session.
func DefaultFilters() FiltersConfig {
	return FiltersConfig{
		Methods:             []string{},
		Products:            []string{},
		MonthRange:          [2]string{"", ""},
		DeliveryNotRequired: false,
		MonthBasis:          BasisShipped,
	}
}
