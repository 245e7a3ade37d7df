package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SalesRow is one transaction line from the main deals table. Numeric
// fields are nullable: an unparseable or missing cell yields an invalid
// NullDecimal, never zero, so downstream stages can tell "absent" from
// "zero". A SalesRow is immutable after parsing.
type SalesRow struct {
	// Company is the raw display string from column A.
	Company string
	// CompanyKey is the lowercased, trimmed grouping key before synonym
	// resolution.
	CompanyKey string
	// AddendumNo is the counterparty contract addendum number (№ ДС),
	// nil when the cell is missing or non-numeric.
	AddendumNo *int
	// Tonnage is the shipped quantity in tonnes.
	Tonnage decimal.NullDecimal
	// Profit is the recorded earnings for the deal.
	Profit decimal.NullDecimal
	// PricePerTon is the counterparty price per tonne.
	PricePerTon decimal.NullDecimal
	// Paid is the amount already paid by the counterparty.
	Paid decimal.NullDecimal
	// DeferralDays is the agreed payment deferral, nil when absent.
	DeferralDays *int
	// DriverInfo is the free-text driver/vehicle/contact cell. The first
	// whitespace-delimited token is the driver surname. Empty means no
	// driver was recorded.
	DriverInfo string
	// RowNumber is the 1-based position in the source worksheet, kept for
	// traceability back to the spreadsheet.
	RowNumber int
}

// HasDriver reports whether the row names a driver.
func (r SalesRow) HasDriver() bool {
	return strings.TrimSpace(r.DriverInfo) != ""
}

// DriverSurname returns the lowercased first token of the driver cell,
// or "" when no driver is recorded.
func (r SalesRow) DriverSurname() string {
	fields := strings.Fields(r.DriverInfo)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// Debt returns the signed outstanding amount for this row:
// tonnage × price_per_ton minus the amount paid. A missing tonnage or
// price contributes zero to the product; a missing payment counts as
// zero paid. Overpayment yields a negative value and is kept signed.
func (r SalesRow) Debt() decimal.Decimal {
	amount := decimal.Zero
	if r.Tonnage.Valid && r.PricePerTon.Valid {
		amount = r.Tonnage.Decimal.Mul(r.PricePerTon.Decimal)
	}
	if r.Paid.Valid {
		amount = amount.Sub(r.Paid.Decimal)
	}
	return amount
}

// AnnotatedRow is a SalesRow carrying the derived fields later pipeline
// stages attach: the canonical company key after synonym resolution and
// the matched transport cost. The underlying SalesRow is never mutated.
type AnnotatedRow struct {
	SalesRow
	// CanonicalKey is the roster-normalized grouping key.
	CanonicalKey string
	// TransportCost is the summed cost of all matched transport rows,
	// zero when no driver was recorded or no transport line matched.
	TransportCost decimal.Decimal
}

// NetProfit returns profit minus transport cost, with a missing profit
// counted as zero.
func (r AnnotatedRow) NetProfit() decimal.Decimal {
	profit := decimal.Zero
	if r.Profit.Valid {
		profit = r.Profit.Decimal
	}
	return profit.Sub(r.TransportCost)
}
