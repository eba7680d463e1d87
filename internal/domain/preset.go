package domain

import "time"

// Preset is a saved bundle of mapping, rules, and filters that a user can
// reapply to later exports of the same source system.
type Preset struct {
	ID        string        `json:"id" db:"id"`
	Name      string        `json:"name" db:"name"`
	CreatedAt time.Time     `json:"createdAt" db:"created_at"`
	Mapping   FieldMapping  `json:"mapping"`
	Rules     RulesConfig   `json:"rules"`
	Filters   FiltersConfig `json:"filters"`
}

// CalculationRun is the persisted log entry for one pipeline execution.
type CalculationRun struct {
	ID           int64     `json:"id" db:"id"`
	Dataset      string    `json:"dataset" db:"dataset"`
	Sheet        string    `json:"sheet" db:"sheet"`
	RawRows      int       `json:"rawRows" db:"raw_rows"`
	ValidRows    int       `json:"validRows" db:"valid_rows"`
	IncludedRows int       `json:"includedRows" db:"included_rows"`
	FirstMonth   string    `json:"firstMonth" db:"first_month"`
	LastMonth    string    `json:"lastMonth" db:"last_month"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
