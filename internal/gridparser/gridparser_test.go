package gridparser

import (
	"testing"

	"fjacquet/fueldesk/internal/logging"
	"fjacquet/fueldesk/internal/models"
	"fjacquet/fueldesk/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// row builds a worksheet row of the full column width with the given
// cells set by index.
func row(cells map[int]string) []string {
	r := make([]string, ColPaid+1)
	for i, v := range cells {
		r[i] = v
	}
	return r
}

// saleRow builds a genuine transaction row: company in A, the B/F/G
// presence columns filled, and the named value columns set.
func saleRow(company string, cells map[int]string) []string {
	base := map[int]string{
		ColCompany: company,
		ColCheckB:  "x",
		ColCheckF:  "x",
	}
	if _, ok := cells[ColDriverInfo]; !ok {
		base[ColDriverInfo] = "Иванов Иван КамАЗ А123ВС"
	}
	for i, v := range cells {
		base[i] = v
	}
	return row(base)
}

func testGrid(rows ...[]string) models.Grid {
	all := [][]string{
		row(map[int]string{ColCompany: "СДЕЛКИ ЗА АВГУСТ"}),
		row(map[int]string{ColCompany: "Компания"}),
	}
	all = append(all, rows...)
	return models.GridFromStrings(all)
}

func TestParse_NoTransportMarker(t *testing.T) {
	grid := testGrid(
		saleRow("ОАО Ромашка", map[int]string{ColTonnage: "10", ColProfit: "1000"}),
		saleRow("Тритон Трейд", map[int]string{ColTonnage: "25,5", ColProfit: "2 500"}),
	)

	sales, transport, err := Parse(grid, &logging.MockLogger{})
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Empty(t, transport)

	assert.Equal(t, "ОАО Ромашка", sales[0].Company)
	assert.Equal(t, "оао ромашка", sales[0].CompanyKey)
	assert.Equal(t, 3, sales[0].RowNumber)
	require.True(t, sales[1].Tonnage.Valid)
	assert.True(t, sales[1].Tonnage.Decimal.Equal(decimal.RequireFromString("25.5")))
	require.True(t, sales[1].Profit.Valid)
	assert.True(t, sales[1].Profit.Decimal.Equal(decimal.NewFromInt(2500)))
}

func TestParse_SkipsRowsWithBlankCheckColumns(t *testing.T) {
	missingB := saleRow("Поставщик Итого", map[int]string{ColCheckB: "", ColTonnage: "99"})
	missingF := saleRow("Сводная строка", map[int]string{ColCheckF: " ", ColTonnage: "42"})
	missingG := saleRow("Без водителя и данных", map[int]string{ColDriverInfo: "nan"})
	grid := testGrid(
		missingB,
		saleRow("ОАО Ромашка", map[int]string{ColTonnage: "10"}),
		missingF,
		missingG,
	)

	sales, _, err := Parse(grid, &logging.MockLogger{})
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "ОАО Ромашка", sales[0].Company)
}

func TestParse_SkipsRowsWithEmptyCompany(t *testing.T) {
	grid := testGrid(
		row(map[int]string{ColCheckB: "x", ColCheckF: "x", ColDriverInfo: "Иванов"}),
		saleRow("ОАО Ромашка", nil),
	)

	sales, _, err := Parse(grid, &logging.MockLogger{})
	require.NoError(t, err)
	require.Len(t, sales, 1)
}

func TestParse_TransportSection(t *testing.T) {
	grid := testGrid(
		saleRow("ОАО Ромашка", map[int]string{ColTonnage: "10"}),
		row(map[int]string{ColCompany: "транспорт +"}),
		row(map[int]string{ColCompany: "Иванов Иван", ColServicePrice: "50", ColTonnage: "10,2"}),
		row(map[int]string{ColCompany: "Петров Пётр", ColServicePrice: "1 200", ColTonnage: "8"}),
		row(map[int]string{ColCompany: "Трансп Услуги", ColServicePrice: "999", ColTonnage: "999"}),
		row(map[int]string{ColCompany: "после терминатора", ColServicePrice: "1", ColTonnage: "1"}),
	)

	sales, transport, err := Parse(grid, &logging.MockLogger{})
	require.NoError(t, err)
	require.Len(t, sales, 1)
	require.Len(t, transport, 2)

	assert.Equal(t, "иванов", transport[0].Surname)
	assert.Equal(t, "Иванов Иван", transport[0].FullName)
	assert.True(t, transport[0].Cost.Equal(decimal.RequireFromString("510")),
		"cost must be service price times tonnage, got %s", transport[0].Cost)
	assert.Equal(t, "петров", transport[1].Surname)
	assert.True(t, transport[1].Cost.Equal(decimal.NewFromInt(9600)))
}

func TestParse_TransportRowsDroppedOnBadNumbers(t *testing.T) {
	grid := testGrid(
		saleRow("ОАО Ромашка", nil),
		row(map[int]string{ColCompany: "ТРАНСПОРТ +"}),
		row(map[int]string{ColCompany: "Сидоров", ColServicePrice: "abc", ColTonnage: "10"}),
		row(map[int]string{ColCompany: "Кузнецов", ColServicePrice: "40", ColTonnage: ""}),
		row(map[int]string{ColCompany: "Иванов", ColServicePrice: "40", ColTonnage: "10"}),
	)

	_, transport, err := Parse(grid, &logging.MockLogger{})
	require.NoError(t, err)
	require.Len(t, transport, 1)
	assert.Equal(t, "иванов", transport[0].Surname)
}

func TestParse_TransportBlockGapsAndMissingTerminator(t *testing.T) {
	grid := testGrid(
		saleRow("ОАО Ромашка", nil),
		row(map[int]string{ColCompany: "ТРАНСПОРТ +"}),
		row(map[int]string{ColCompany: "Иванов", ColServicePrice: "40", ColTonnage: "10"}),
		row(nil),
		row(map[int]string{ColCompany: "Петров", ColServicePrice: "30", ColTonnage: "5"}),
	)

	_, transport, err := Parse(grid, &logging.MockLogger{})
	require.NoError(t, err)
	require.Len(t, transport, 2)
}

func TestParse_UnparseableSalesCellsAreNullNotZero(t *testing.T) {
	grid := testGrid(
		saleRow("ОАО Ромашка", map[int]string{
			ColTonnage:     "не число",
			ColProfit:      "",
			ColPricePerTon: "60 500,50",
		}),
	)

	sales, _, err := Parse(grid, &logging.MockLogger{})
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.False(t, sales[0].Tonnage.Valid)
	assert.False(t, sales[0].Profit.Valid)
	require.True(t, sales[0].PricePerTon.Valid)
	assert.True(t, sales[0].PricePerTon.Decimal.Equal(decimal.RequireFromString("60500.5")))
}

func TestParse_AddendumAndDeferral(t *testing.T) {
	grid := testGrid(
		saleRow("ОАО Ромашка", map[int]string{ColAddendumNo: "212", ColDeferralDays: "14"}),
		saleRow("ОАО Ромашка", map[int]string{ColAddendumNo: ""}),
	)

	sales, _, err := Parse(grid, &logging.MockLogger{})
	require.NoError(t, err)
	require.Len(t, sales, 2)
	require.NotNil(t, sales[0].AddendumNo)
	assert.Equal(t, 212, *sales[0].AddendumNo)
	require.NotNil(t, sales[0].DeferralDays)
	assert.Equal(t, 14, *sales[0].DeferralDays)
	assert.Nil(t, sales[1].AddendumNo)
}

func TestParse_ZeroColumnGridIsStructureError(t *testing.T) {
	_, _, err := Parse(models.Grid{}, &logging.MockLogger{})
	require.Error(t, err)
	var structErr *parsererror.StructureError
	assert.ErrorAs(t, err, &structErr)

	_, _, err = Parse(models.Grid{{}, {}}, &logging.MockLogger{})
	require.Error(t, err)
	assert.ErrorAs(t, err, &structErr)
}

func TestParse_Idempotent(t *testing.T) {
	grid := testGrid(
		saleRow("ОАО Ромашка", map[int]string{ColTonnage: "10", ColProfit: "1000"}),
		row(map[int]string{ColCompany: "ТРАНСПОРТ +"}),
		row(map[int]string{ColCompany: "Иванов", ColServicePrice: "50", ColTonnage: "10,2"}),
	)

	sales1, transport1, err := Parse(grid, &logging.MockLogger{})
	require.NoError(t, err)
	sales2, transport2, err := Parse(grid, &logging.MockLogger{})
	require.NoError(t, err)

	assert.Equal(t, sales1, sales2)
	assert.Equal(t, transport1, transport2)
}
