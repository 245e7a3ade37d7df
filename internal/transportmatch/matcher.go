// Package transportmatch associates sales rows with the transport costs
// incurred by the driver named on each row.
//
// The worksheet gives no foreign key between the two tables, so the join
// is a fuzzy one: driver surname equality plus a tonnage tolerance,
// because the same load is often recorded with minor rounding differences
// between the sales ledger and the transport ledger. The rule is
// many-to-many: one transport line can be claimed by several sales rows
// that share a driver and a similar tonnage, which can inflate aggregate
// transport cost. The matcher logs every repeated claim so the operator
// can see the double count; changing the allocation needs a business
// decision, not a code one.
package transportmatch

import (
	"fjacquet/fueldesk/internal/logging"
	"fjacquet/fueldesk/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultToleranceTons is the maximum absolute tonnage difference, in
// tonnes, for a sales row and a transport row to be considered the same
// load. The boundary itself does not match.
var DefaultToleranceTons = decimal.NewFromInt(1)

// Matcher matches sales rows against a fixed set of transport rows.
type Matcher struct {
	transport []models.TransportRow
	tolerance decimal.Decimal
	logger    logging.Logger
	claims    map[int]int // transport row index -> sales rows that claimed it
}

// New creates a matcher over the given transport rows with the default
// tonnage tolerance.
func New(transport []models.TransportRow, logger logging.Logger) *Matcher {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Matcher{
		transport: transport,
		tolerance: DefaultToleranceTons,
		logger:    logger,
		claims:    make(map[int]int),
	}
}

// WithTolerance overrides the tonnage tolerance. Values must be
// positive; non-positive values keep the default.
func (m *Matcher) WithTolerance(tolerance decimal.Decimal) *Matcher {
	if tolerance.IsPositive() {
		m.tolerance = tolerance
	}
	return m
}

// MatchCost returns the total transport cost for one sales row: the sum
// of costs of every transport row with the same driver surname and a
// tonnage within the tolerance. Rows without a driver, rows without a
// tonnage, and rows with no candidate match cost zero: a driver with no
// logged transport line is normal, not an error.
func (m *Matcher) MatchCost(row models.SalesRow) decimal.Decimal {
	surname := row.DriverSurname()
	if surname == "" || !row.Tonnage.Valid {
		return decimal.Zero
	}

	total := decimal.Zero
	for i, tr := range m.transport {
		if tr.Surname != surname {
			continue
		}
		diff := tr.Tonnage.Sub(row.Tonnage.Decimal).Abs()
		if diff.Cmp(m.tolerance) >= 0 {
			continue
		}
		total = total.Add(tr.Cost)
		m.claims[i]++
		if m.claims[i] > 1 {
			m.logger.Warn("Transport row claimed by multiple deals",
				logging.Field{Key: logging.FieldSurname, Value: tr.Surname},
				logging.Field{Key: logging.FieldRow, Value: tr.RowNumber},
				logging.Field{Key: "claims", Value: m.claims[i]},
				logging.Field{Key: "sales_row", Value: row.RowNumber})
		}
	}
	return total
}

// Annotate attaches the matched transport cost to every sales row,
// preserving order. The input rows are not modified.
func (m *Matcher) Annotate(sales []models.SalesRow) []models.AnnotatedRow {
	annotated := make([]models.AnnotatedRow, 0, len(sales))
	for _, row := range sales {
		annotated = append(annotated, models.AnnotatedRow{
			SalesRow:      row,
			CanonicalKey:  row.CompanyKey,
			TransportCost: m.MatchCost(row),
		})
	}
	return annotated
}
