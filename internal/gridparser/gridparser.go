// Package gridparser splits one raw, headerless month-worksheet grid into
// typed sales rows and transport-cost rows using the fixed column layout
// of the operator's spreadsheet.
//
// The parser is total over cell values: a malformed numeric cell yields a
// null field (sales section) or drops the row (transport section), never
// an error. The only error it raises is a structural one (a grid with no
// columns), which marks an integration bug rather than bad data.
package gridparser

import (
	"strings"

	"fjacquet/fueldesk/internal/logging"
	"fjacquet/fueldesk/internal/models"
	"fjacquet/fueldesk/internal/parsererror"

	"github.com/shopspring/decimal"
)

// Parse converts a raw grid into ordered sales and transport row lists.
// Both lists preserve the original worksheet order and the result is
// deterministic for identical input.
func Parse(grid models.Grid, logger logging.Logger) ([]models.SalesRow, []models.TransportRow, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if grid.Width() == 0 {
		return nil, nil, &parsererror.StructureError{Reason: "grid has zero columns"}
	}

	sentinel := findTransportMarker(grid)

	salesEnd := len(grid)
	if sentinel >= 0 {
		salesEnd = sentinel
	}

	sales := parseSalesSection(grid, salesEnd, logger)

	var transport []models.TransportRow
	if sentinel >= 0 {
		transport = parseTransportSection(grid, sentinel+1, logger)
	}

	logger.Info("Parsed month worksheet",
		logging.Field{Key: "sales_rows", Value: len(sales)},
		logging.Field{Key: "transport_rows", Value: len(transport)})
	return sales, transport, nil
}

// findTransportMarker returns the index of the "ТРАНСПОРТ +" sentinel
// row, or -1 when the worksheet has no transport sub-table.
func findTransportMarker(grid models.Grid) int {
	for i := range grid {
		if strings.EqualFold(strings.TrimSpace(grid.At(i, ColCompany).String()), transportMarker) {
			return i
		}
	}
	return -1
}

func parseSalesSection(grid models.Grid, end int, logger logging.Logger) []models.SalesRow {
	var sales []models.SalesRow
	for i := salesStartRow; i < end; i++ {
		company := strings.TrimSpace(grid.At(i, ColCompany).String())
		if company == "" {
			continue
		}
		// Rows with any of B, F, G blank are supplier or summary lines
		// injected into the sheet, not transactions.
		if grid.At(i, ColCheckB).IsBlank() ||
			grid.At(i, ColCheckF).IsBlank() ||
			grid.At(i, ColDriverInfo).IsBlank() {
			logger.Debug("Skipping non-transaction row",
				logging.Field{Key: logging.FieldRow, Value: i + 1},
				logging.Field{Key: logging.FieldCompany, Value: company})
			continue
		}
		driverInfo := strings.TrimSpace(grid.At(i, ColDriverInfo).String())
		if strings.EqualFold(driverInfo, "nan") {
			driverInfo = ""
		}
		sales = append(sales, models.SalesRow{
			Company:      company,
			CompanyKey:   strings.ToLower(company),
			AddendumNo:   parseCellInt(grid.At(i, ColAddendumNo)),
			Tonnage:      parseCellDecimal(grid.At(i, ColTonnage)),
			Profit:       parseCellDecimal(grid.At(i, ColProfit)),
			PricePerTon:  parseCellDecimal(grid.At(i, ColPricePerTon)),
			Paid:         parseCellDecimal(grid.At(i, ColPaid)),
			DeferralDays: parseCellInt(grid.At(i, ColDeferralDays)),
			DriverInfo:   driverInfo,
			RowNumber:    i + 1,
		})
	}
	return sales
}

func parseTransportSection(grid models.Grid, start int, logger logging.Logger) []models.TransportRow {
	var transport []models.TransportRow
	for i := start; i < len(grid); i++ {
		name := strings.TrimSpace(grid.At(i, ColCompany).String())
		if strings.HasPrefix(strings.ToLower(name), transportEndPrefix) {
			break
		}
		if name == "" {
			continue
		}
		price := parseCellDecimal(grid.At(i, ColServicePrice))
		tonnage := parseCellDecimal(grid.At(i, ColTonnage))
		// Transport rows feed directly into cost math; a row whose price
		// or tonnage cannot be read is dropped rather than nulled.
		if !price.Valid || !tonnage.Valid {
			logger.Debug("Dropping unparseable transport row",
				logging.Field{Key: logging.FieldRow, Value: i + 1},
				logging.Field{Key: logging.FieldSurname, Value: name})
			continue
		}
		transport = append(transport, models.TransportRow{
			Surname:      strings.ToLower(strings.Fields(name)[0]),
			FullName:     name,
			ServicePrice: price.Decimal,
			Tonnage:      tonnage.Decimal,
			Cost:         price.Decimal.Mul(tonnage.Decimal),
			RowNumber:    i + 1,
		})
	}
	return transport
}

// parseCellDecimal reads a numeric cell the way the spreadsheet writes
// numbers: optional space (or non-breaking space) thousands separators
// and a comma decimal separator. Unparseable or blank cells yield an
// invalid NullDecimal, never zero and never an error.
func parseCellDecimal(c models.Cell) decimal.NullDecimal {
	if c.Kind == models.CellNumber {
		return decimal.NullDecimal{Decimal: c.Number, Valid: true}
	}
	if c.IsBlank() {
		return decimal.NullDecimal{}
	}
	s := strings.TrimSpace(c.String())
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// parseCellInt reads an integer-valued cell, truncating any fractional
// part the sheet may carry. Returns nil for blank or unparseable cells.
func parseCellInt(c models.Cell) *int {
	d := parseCellDecimal(c)
	if !d.Valid {
		return nil
	}
	n := int(d.Decimal.IntPart())
	return &n
}
