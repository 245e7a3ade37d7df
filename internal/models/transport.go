package models

import "github.com/shopspring/decimal"

// TransportRow is one driver-service line from the transport sub-table
// embedded below the main deals table. Rows whose price or tonnage cell
// cannot be parsed are dropped at parse time, so every TransportRow holds
// valid numbers. Immutable; a single row may satisfy several sales rows.
type TransportRow struct {
	// Surname is the lowercased first token of the driver name cell,
	// used as the join key against sales rows.
	Surname string
	// FullName is the raw driver name cell for display.
	FullName string
	// ServicePrice is the per-tonne service tariff.
	ServicePrice decimal.Decimal
	// Tonnage is the transported quantity in tonnes.
	Tonnage decimal.Decimal
	// Cost is always ServicePrice × Tonnage; it is derived at parse time
	// and never set independently.
	Cost decimal.Decimal
	// RowNumber is the 1-based position in the source worksheet.
	RowNumber int
}
