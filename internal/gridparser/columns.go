package gridparser

// Column offsets of the month worksheet, 0-based. The layout is imposed
// by the operator's spreadsheet and has no header schema; these constants
// are the single place that encodes it. Letters refer to the spreadsheet
// columns as the operator sees them.
const (
	// ColCompany (A) holds the company name in the sales section and the
	// driver full name in the transport section.
	ColCompany = 0
	// ColCheckB (B) is one of the three presence-check columns that
	// separate genuine deals from supplier/summary rows.
	ColCheckB = 1
	// ColAddendumNo (D) holds the counterparty contract addendum number.
	ColAddendumNo = 3
	// ColCheckF (F) is a presence-check column.
	ColCheckF = 5
	// ColDriverInfo (G) holds the driver, vehicle and contact details in
	// the sales section and doubles as the third presence-check column.
	ColDriverInfo = 6
	// ColServicePrice (H) holds the per-tonne service tariff in the
	// transport section; unused in the sales section.
	ColServicePrice = 7
	// ColPricePerTon (M) holds the counterparty price per tonne.
	ColPricePerTon = 12
	// ColTonnage (O) holds the shipped quantity in both sections.
	ColTonnage = 14
	// ColDeferralDays (R) holds the payment deferral in days.
	ColDeferralDays = 17
	// ColProfit (T) holds the recorded earnings for the deal.
	ColProfit = 19
	// ColPaid (U) holds the amount already paid by the counterparty.
	ColPaid = 20
)

// salesStartRow is the first data row: row 0 is the sheet title, row 1
// carries the header band.
const salesStartRow = 2

const (
	// transportMarker is the sentinel row that separates the sales table
	// from the transport sub-table (column A, exact text up to case).
	transportMarker = "ТРАНСПОРТ +"
	// transportEndPrefix terminates the transport sub-table: the first
	// later row whose column A starts with this prefix (e.g. "Трансп
	// Услуги") is not part of it.
	transportEndPrefix = "трансп"
)
