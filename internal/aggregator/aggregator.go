// Package aggregator groups matched, synonym-resolved sales rows by
// company and computes per-company summaries and grand totals for one
// month of deals.
package aggregator

import (
	"sort"
	"strings"

	"fjacquet/fueldesk/internal/logging"
	"fjacquet/fueldesk/internal/models"
	"fjacquet/fueldesk/internal/transportmatch"

	"github.com/shopspring/decimal"
)

// Canonicalizer maps a raw company key to its canonical roster key.
// roster.Resolver implements it; a nil Canonicalizer means identity.
type Canonicalizer interface {
	Canonical(key string) string
}

// Options control one aggregation pass.
type Options struct {
	// Filter is the set of canonical company keys to include. A nil
	// filter includes every company; an empty non-nil filter is the
	// explicit "nothing selected" state and yields an empty summary
	// with all-zero totals.
	Filter []string
	// Resolver canonicalizes company keys before grouping. Nil keeps
	// the raw lowercased keys.
	Resolver Canonicalizer
	// ToleranceTons overrides the transport matching tolerance when
	// positive.
	ToleranceTons decimal.Decimal
}

// Result is everything one dashboard render needs.
type Result struct {
	// Summaries is the per-company table, sorted by canonical key so a
	// fixed input always renders the same output.
	Summaries []models.CompanySummary
	// Totals are the grand totals over all included groups.
	Totals models.Totals
	// Rows are the annotated, filtered rows the summaries were built
	// from, in worksheet order.
	Rows []models.AnnotatedRow
	// Deferred lists deals with a payment deferral and no payment yet.
	Deferred []models.DeferredDeal
	// Attention lists deals whose tonnage is missing or non-positive.
	Attention []models.AttentionRow
	// MissingDrivers lists deals recorded without driver information.
	MissingDrivers []models.MissingDriverRow
}

// Aggregate runs the full pipeline over freshly parsed rows: transport
// matching, synonym resolution, filtering, grouping. Each call takes
// fresh input and returns fresh output; nothing is shared or mutated.
func Aggregate(sales []models.SalesRow, transport []models.TransportRow, opts Options, logger logging.Logger) Result {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	matcher := transportmatch.New(transport, logger).WithTolerance(opts.ToleranceTons)
	rows := matcher.Annotate(sales)

	if opts.Resolver != nil {
		for i := range rows {
			rows[i].CanonicalKey = opts.Resolver.Canonical(rows[i].CompanyKey)
		}
	}

	rows = filterRows(rows, opts.Filter)
	result := aggregateRows(rows)

	logger.Info("Aggregated monthly deals",
		logging.Field{Key: logging.FieldCount, Value: len(rows)},
		logging.Field{Key: "companies", Value: len(result.Summaries)})
	return result
}

func filterRows(rows []models.AnnotatedRow, filter []string) []models.AnnotatedRow {
	if filter == nil {
		return rows
	}
	allowed := make(map[string]bool, len(filter))
	for _, key := range filter {
		allowed[strings.ToLower(strings.TrimSpace(key))] = true
	}
	filtered := make([]models.AnnotatedRow, 0, len(rows))
	for _, row := range rows {
		if allowed[row.CanonicalKey] {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func aggregateRows(rows []models.AnnotatedRow) Result {
	type group struct {
		summary models.CompanySummary
	}
	groups := make(map[string]*group)
	var keys []string

	result := Result{Rows: rows, Totals: models.ZeroTotals()}

	for _, row := range rows {
		g, ok := groups[row.CanonicalKey]
		if !ok {
			g = &group{summary: models.CompanySummary{
				Key:           row.CanonicalKey,
				Company:       row.Company,
				Tonnage:       decimal.Zero,
				Profit:        decimal.Zero,
				TransportCost: decimal.Zero,
				NetProfit:     decimal.Zero,
				Debt:          decimal.Zero,
			}}
			groups[row.CanonicalKey] = g
			keys = append(keys, row.CanonicalKey)
		}

		if row.Tonnage.Valid {
			g.summary.Tonnage = g.summary.Tonnage.Add(row.Tonnage.Decimal)
		}
		if row.Profit.Valid {
			g.summary.Profit = g.summary.Profit.Add(row.Profit.Decimal)
		}
		g.summary.TransportCost = g.summary.TransportCost.Add(row.TransportCost)
		g.summary.Debt = g.summary.Debt.Add(row.Debt())
		if !row.HasDriver() {
			g.summary.MissingDriver = true
			result.MissingDrivers = append(result.MissingDrivers, models.MissingDriverRow{
				Key:        row.CanonicalKey,
				Company:    row.Company,
				AddendumNo: row.AddendumNo,
				RowNumber:  row.RowNumber,
			})
		}
		if row.AddendumNo != nil {
			if g.summary.LastAddendumNo == nil || *row.AddendumNo > *g.summary.LastAddendumNo {
				n := *row.AddendumNo
				g.summary.LastAddendumNo = &n
			}
		}

		if row.DeferralDays != nil && *row.DeferralDays >= 1 && !row.Paid.Valid {
			result.Deferred = append(result.Deferred, models.DeferredDeal{
				Key:          row.CanonicalKey,
				Company:      row.Company,
				AddendumNo:   row.AddendumNo,
				DeferralDays: *row.DeferralDays,
				RowNumber:    row.RowNumber,
			})
		}
		if !row.Tonnage.Valid {
			result.Attention = append(result.Attention, models.AttentionRow{
				Key:       row.CanonicalKey,
				Company:   row.Company,
				RowNumber: row.RowNumber,
				Reason:    "tonnage missing",
			})
		} else if !row.Tonnage.Decimal.IsPositive() {
			result.Attention = append(result.Attention, models.AttentionRow{
				Key:       row.CanonicalKey,
				Company:   row.Company,
				RowNumber: row.RowNumber,
				Reason:    "tonnage not positive",
			})
		}
	}

	sort.Strings(keys)
	for _, key := range keys {
		summary := groups[key].summary
		summary.NetProfit = summary.Profit.Sub(summary.TransportCost)
		result.Summaries = append(result.Summaries, summary)

		result.Totals.Tonnage = result.Totals.Tonnage.Add(summary.Tonnage)
		result.Totals.Profit = result.Totals.Profit.Add(summary.Profit)
		result.Totals.TransportCost = result.Totals.TransportCost.Add(summary.TransportCost)
		result.Totals.NetProfit = result.Totals.NetProfit.Add(summary.NetProfit)
		result.Totals.Debt = result.Totals.Debt.Add(summary.Debt)
	}

	return result
}
