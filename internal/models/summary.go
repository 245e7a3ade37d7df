package models

import "github.com/shopspring/decimal"

// CompanySummary is the per-company aggregate for one month. It is
// computed fresh for every render and never persisted.
type CompanySummary struct {
	// Key is the canonical company key the group was formed on.
	Key string `json:"key" csv:"key"`
	// Company is the first-seen raw display name of the group.
	Company string `json:"company" csv:"company"`
	// LastAddendumNo is the highest counterparty addendum number seen in
	// the group, nil when no row carries one.
	LastAddendumNo *int `json:"last_addendum_no,omitempty" csv:"-"`
	// Tonnage is the summed shipped quantity, missing values as zero.
	Tonnage decimal.Decimal `json:"tonnage" csv:"tonnage"`
	// Profit is the summed earnings, missing values as zero.
	Profit decimal.Decimal `json:"profit" csv:"profit"`
	// TransportCost is the summed matched transport cost.
	TransportCost decimal.Decimal `json:"transport_cost" csv:"transport_cost"`
	// NetProfit is exactly Profit minus TransportCost.
	NetProfit decimal.Decimal `json:"net_profit" csv:"net_profit"`
	// Debt is the summed signed per-row debt; negative means overpayment.
	Debt decimal.Decimal `json:"debt" csv:"debt"`
	// MissingDriver is true when at least one row in the group has no
	// driver recorded.
	MissingDriver bool `json:"missing_driver" csv:"missing_driver"`
}

// Totals are the grand totals across all included company groups.
// Sums over zero groups are zero, never null.
type Totals struct {
	Tonnage       decimal.Decimal `json:"tonnage"`
	Profit        decimal.Decimal `json:"profit"`
	TransportCost decimal.Decimal `json:"transport_cost"`
	NetProfit     decimal.Decimal `json:"net_profit"`
	Debt          decimal.Decimal `json:"debt"`
}

// ZeroTotals returns totals with every field explicitly zero, the
// representation of an empty company selection.
func ZeroTotals() Totals {
	return Totals{
		Tonnage:       decimal.Zero,
		Profit:        decimal.Zero,
		TransportCost: decimal.Zero,
		NetProfit:     decimal.Zero,
		Debt:          decimal.Zero,
	}
}

// DeferredDeal is a deal sold with a payment deferral that has no payment
// recorded yet.
type DeferredDeal struct {
	Key          string `json:"key"`
	Company      string `json:"company"`
	AddendumNo   *int   `json:"addendum_no,omitempty"`
	DeferralDays int    `json:"deferral_days"`
	RowNumber    int    `json:"row_number"`
}

// AttentionRow flags a deal whose tonnage is missing or non-positive and
// therefore needs a manual look at the source sheet.
type AttentionRow struct {
	Key       string `json:"key"`
	Company   string `json:"company"`
	RowNumber int    `json:"row_number"`
	Reason    string `json:"reason"`
}

// MissingDriverRow flags a deal recorded without driver information.
type MissingDriverRow struct {
	Key        string `json:"key"`
	Company    string `json:"company"`
	AddendumNo *int   `json:"addendum_no,omitempty"`
	RowNumber  int    `json:"row_number"`
}
