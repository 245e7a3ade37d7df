package aggregator

import (
	"strings"
	"testing"

	"fjacquet/fueldesk/internal/logging"
	"fjacquet/fueldesk/internal/models"
	"fjacquet/fueldesk/internal/roster"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func nullDec(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: dec(s), Valid: true}
}

func sale(company string, mutate func(*models.SalesRow)) models.SalesRow {
	row := models.SalesRow{
		Company:    company,
		CompanyKey: strings.ToLower(strings.TrimSpace(company)),
		DriverInfo: "Иванов Иван",
	}
	if mutate != nil {
		mutate(&row)
	}
	return row
}

func TestAggregate_GroupsAndTotals(t *testing.T) {
	sales := []models.SalesRow{
		sale("ОАО Ромашка", func(r *models.SalesRow) {
			r.Tonnage = nullDec("10")
			r.Profit = nullDec("1000")
		}),
		sale("ОАО Ромашка", func(r *models.SalesRow) {
			r.Tonnage = nullDec("5")
			r.Profit = nullDec("500")
		}),
		sale("Деко", func(r *models.SalesRow) {
			r.Tonnage = nullDec("20")
			r.Profit = nullDec("2000")
		}),
	}

	result := Aggregate(sales, nil, Options{}, &logging.MockLogger{})
	require.Len(t, result.Summaries, 2)

	// Sorted by canonical key: "деко" < "оао ромашка".
	assert.Equal(t, "деко", result.Summaries[0].Key)
	assert.Equal(t, "оао ромашка", result.Summaries[1].Key)
	assert.True(t, result.Summaries[1].Tonnage.Equal(dec("15")))
	assert.True(t, result.Summaries[1].Profit.Equal(dec("1500")))

	assert.True(t, result.Totals.Tonnage.Equal(dec("35")))
	assert.True(t, result.Totals.Profit.Equal(dec("3500")))
}

func TestAggregate_TotalsMatchGroupSums(t *testing.T) {
	sales := []models.SalesRow{
		sale("А", func(r *models.SalesRow) { r.Profit = nullDec("100"); r.Tonnage = nullDec("1") }),
		sale("Б", func(r *models.SalesRow) { r.Profit = nullDec("200"); r.Tonnage = nullDec("2") }),
		sale("В", func(r *models.SalesRow) { r.Profit = nullDec("300"); r.Tonnage = nullDec("3") }),
	}
	transport := []models.TransportRow{
		{Surname: "иванов", ServicePrice: dec("10"), Tonnage: dec("2"), Cost: dec("20")},
	}

	result := Aggregate(sales, transport, Options{}, &logging.MockLogger{})

	profit, tonnage, transportCost, netProfit := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	for _, s := range result.Summaries {
		profit = profit.Add(s.Profit)
		tonnage = tonnage.Add(s.Tonnage)
		transportCost = transportCost.Add(s.TransportCost)
		netProfit = netProfit.Add(s.NetProfit)
		assert.True(t, s.NetProfit.Equal(s.Profit.Sub(s.TransportCost)),
			"per-group net profit must equal profit minus transport cost")
	}
	assert.True(t, result.Totals.Profit.Equal(profit))
	assert.True(t, result.Totals.Tonnage.Equal(tonnage))
	assert.True(t, result.Totals.TransportCost.Equal(transportCost))
	assert.True(t, result.Totals.NetProfit.Equal(netProfit))
}

func TestAggregate_TransportCostAndNetProfit(t *testing.T) {
	sales := []models.SalesRow{
		sale("ОАО Ромашка", func(r *models.SalesRow) {
			r.Tonnage = nullDec("10")
			r.Profit = nullDec("1000")
			r.DriverInfo = "Иванов Иван КамАЗ А123ВС"
		}),
	}
	transport := []models.TransportRow{
		{Surname: "иванов", ServicePrice: dec("50"), Tonnage: dec("10.2"), Cost: dec("510")},
	}

	result := Aggregate(sales, transport, Options{}, &logging.MockLogger{})
	require.Len(t, result.Summaries, 1)
	assert.True(t, result.Summaries[0].TransportCost.Equal(dec("510")))
	assert.True(t, result.Summaries[0].NetProfit.Equal(dec("490")))
}

func TestAggregate_DebtTreatsNullPaidAsZero(t *testing.T) {
	sales := []models.SalesRow{
		sale("ОАО Ромашка", func(r *models.SalesRow) {
			r.Tonnage = nullDec("5")
			r.PricePerTon = nullDec("100")
			// Paid left null.
		}),
	}

	result := Aggregate(sales, nil, Options{}, &logging.MockLogger{})
	require.Len(t, result.Summaries, 1)
	assert.True(t, result.Summaries[0].Debt.Equal(dec("500")))
}

func TestAggregate_OverpaymentStaysNegative(t *testing.T) {
	sales := []models.SalesRow{
		sale("ОАО Ромашка", func(r *models.SalesRow) {
			r.Tonnage = nullDec("5")
			r.PricePerTon = nullDec("100")
			r.Paid = nullDec("600")
		}),
	}

	result := Aggregate(sales, nil, Options{}, &logging.MockLogger{})
	assert.True(t, result.Summaries[0].Debt.Equal(dec("-100")))
}

func TestAggregate_SynonymResolutionGroupsTogether(t *testing.T) {
	resolver := roster.NewResolver(
		map[string]roster.Client{"тритон": {}},
		map[string]string{"тритон": "тритон трейд"},
		&logging.MockLogger{},
	)
	sales := []models.SalesRow{
		sale("Тритон Трейд", func(r *models.SalesRow) { r.Profit = nullDec("100") }),
		sale("тритон", func(r *models.SalesRow) { r.Profit = nullDec("200") }),
	}

	result := Aggregate(sales, nil, Options{Resolver: resolver}, &logging.MockLogger{})
	require.Len(t, result.Summaries, 1)
	assert.Equal(t, "тритон", result.Summaries[0].Key)
	assert.True(t, result.Summaries[0].Profit.Equal(dec("300")))
}

func TestAggregate_FilterSelectsSingleCompany(t *testing.T) {
	sales := []models.SalesRow{
		sale("Ромашка", func(r *models.SalesRow) { r.Profit = nullDec("100") }),
		sale("Деко", func(r *models.SalesRow) { r.Profit = nullDec("200") }),
	}

	result := Aggregate(sales, nil, Options{Filter: []string{"ромашка"}}, &logging.MockLogger{})
	require.Len(t, result.Summaries, 1)
	assert.Equal(t, "ромашка", result.Summaries[0].Key)
	assert.True(t, result.Totals.Profit.Equal(dec("100")))
}

func TestAggregate_EmptyFilterYieldsEmptySummaryAndZeroTotals(t *testing.T) {
	sales := []models.SalesRow{
		sale("Ромашка", func(r *models.SalesRow) { r.Profit = nullDec("100") }),
	}

	result := Aggregate(sales, nil, Options{Filter: []string{}}, &logging.MockLogger{})
	assert.Empty(t, result.Summaries)
	assert.True(t, result.Totals.Profit.IsZero())
	assert.True(t, result.Totals.Tonnage.IsZero())
	assert.True(t, result.Totals.TransportCost.IsZero())
	assert.True(t, result.Totals.NetProfit.IsZero())
}

func TestAggregate_MissingDriverFlag(t *testing.T) {
	sales := []models.SalesRow{
		sale("Ромашка", func(r *models.SalesRow) { r.DriverInfo = "" }),
		sale("Ромашка", nil),
	}

	result := Aggregate(sales, nil, Options{}, &logging.MockLogger{})
	require.Len(t, result.Summaries, 1)
	assert.True(t, result.Summaries[0].MissingDriver)
	require.Len(t, result.MissingDrivers, 1)
}

func TestAggregate_DeferredDeals(t *testing.T) {
	days := 14
	num := 212
	sales := []models.SalesRow{
		sale("Ромашка", func(r *models.SalesRow) {
			r.DeferralDays = &days
			r.AddendumNo = &num
			// Paid left null: payment outstanding.
		}),
		sale("Ромашка", func(r *models.SalesRow) {
			r.DeferralDays = &days
			r.Paid = nullDec("1000")
		}),
	}

	result := Aggregate(sales, nil, Options{}, &logging.MockLogger{})
	require.Len(t, result.Deferred, 1)
	assert.Equal(t, 14, result.Deferred[0].DeferralDays)
	require.NotNil(t, result.Deferred[0].AddendumNo)
	assert.Equal(t, 212, *result.Deferred[0].AddendumNo)
}

func TestAggregate_AttentionRows(t *testing.T) {
	sales := []models.SalesRow{
		sale("Ромашка", nil), // tonnage missing
		sale("Ромашка", func(r *models.SalesRow) { r.Tonnage = nullDec("0") }),
		sale("Ромашка", func(r *models.SalesRow) { r.Tonnage = nullDec("10") }),
	}

	result := Aggregate(sales, nil, Options{}, &logging.MockLogger{})
	require.Len(t, result.Attention, 2)
	assert.Equal(t, "tonnage missing", result.Attention[0].Reason)
	assert.Equal(t, "tonnage not positive", result.Attention[1].Reason)
}

func TestAggregate_LastAddendumNumber(t *testing.T) {
	n1, n2 := 210, 212
	sales := []models.SalesRow{
		sale("Ромашка", func(r *models.SalesRow) { r.AddendumNo = &n2 }),
		sale("Ромашка", func(r *models.SalesRow) { r.AddendumNo = &n1 }),
		sale("Деко", nil),
	}

	result := Aggregate(sales, nil, Options{}, &logging.MockLogger{})
	require.Len(t, result.Summaries, 2)
	assert.Nil(t, result.Summaries[0].LastAddendumNo)
	require.NotNil(t, result.Summaries[1].LastAddendumNo)
	assert.Equal(t, 212, *result.Summaries[1].LastAddendumNo)
}

func TestAggregate_NoRowsYieldsZeroTotals(t *testing.T) {
	result := Aggregate(nil, nil, Options{}, &logging.MockLogger{})
	assert.Empty(t, result.Summaries)
	assert.True(t, result.Totals.Profit.IsZero())
}
