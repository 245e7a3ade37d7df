// Package report renders aggregation results for people and for files:
// a text dashboard for the terminal, CSV for spreadsheets and JSON for
// anything downstream.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"fjacquet/fueldesk/internal/aggregator"
	"fjacquet/fueldesk/internal/logging"
	"fjacquet/fueldesk/internal/models"

	"github.com/gocarina/gocsv"
)

// MonthReport is the JSON document for one month of deals.
type MonthReport struct {
	Sheet          string                   `json:"sheet"`
	GeneratedAt    time.Time                `json:"generated_at"`
	Summaries      []models.CompanySummary  `json:"summaries"`
	Totals         models.Totals            `json:"totals"`
	Deferred       []models.DeferredDeal    `json:"deferred,omitempty"`
	Attention      []models.AttentionRow    `json:"attention,omitempty"`
	MissingDrivers []models.MissingDriverRow `json:"missing_drivers,omitempty"`
}

// Generator writes aggregation results in the supported formats.
type Generator struct {
	delimiter rune
	now       func() time.Time
	logger    logging.Logger
}

// NewGenerator creates a Generator writing comma-delimited CSV.
func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Generator{delimiter: ',', now: time.Now, logger: logger}
}

// WithDelimiter sets the CSV field delimiter.
func (g *Generator) WithDelimiter(delim rune) *Generator {
	if delim != 0 {
		g.delimiter = delim
	}
	return g
}

// WriteCSV writes the per-company summary table to path, creating the
// directory when needed.
func (g *Generator) WriteCSV(summaries []models.CompanySummary, path string) error {
	if summaries == nil {
		summaries = []models.CompanySummary{}
	}
	g.logger.Info("Writing summary CSV",
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(summaries)})

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			g.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	writer := csv.NewWriter(file)
	writer.Comma = g.delimiter
	if err := gocsv.MarshalCSV(&summaries, gocsv.NewSafeCSVWriter(writer)); err != nil {
		return fmt.Errorf("error writing CSV: %w", err)
	}
	return nil
}

// WriteJSON writes the full month report to path.
func (g *Generator) WriteJSON(result aggregator.Result, sheet, path string) error {
	report := MonthReport{
		Sheet:          sheet,
		GeneratedAt:    g.now(),
		Summaries:      result.Summaries,
		Totals:         result.Totals,
		Deferred:       result.Deferred,
		Attention:      result.Attention,
		MissingDrivers: result.MissingDrivers,
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling report: %w", err)
	}

	g.logger.Info("Writing JSON report",
		logging.Field{Key: logging.FieldOutputFile, Value: path})
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}
	return nil
}

// RenderText renders the month dashboard as aligned text for the
// terminal.
func (g *Generator) RenderText(result aggregator.Result, sheet string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Сводка по сделкам: %s\n\n", sheet)

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Компания\tТоннаж\tПрибыль\tТранспорт\tЧистая прибыль\tДолг\tВодитель")
	for _, s := range result.Summaries {
		driver := ""
		if s.MissingDriver {
			driver = "нет данных"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.Company,
			s.Tonnage.String(),
			s.Profit.StringFixed(2),
			s.TransportCost.StringFixed(2),
			s.NetProfit.StringFixed(2),
			s.Debt.StringFixed(2),
			driver)
	}
	fmt.Fprintf(w, "ИТОГО\t%s\t%s\t%s\t%s\t%s\t\n",
		result.Totals.Tonnage.String(),
		result.Totals.Profit.StringFixed(2),
		result.Totals.TransportCost.StringFixed(2),
		result.Totals.NetProfit.StringFixed(2),
		result.Totals.Debt.StringFixed(2))
	w.Flush()

	if len(result.Deferred) > 0 {
		fmt.Fprintf(&b, "\nОтсрочка платежа (%d):\n", len(result.Deferred))
		for _, d := range result.Deferred {
			no := "б/н"
			if d.AddendumNo != nil {
				no = fmt.Sprintf("№%d", *d.AddendumNo)
			}
			fmt.Fprintf(&b, "  %s %s, отсрочка %d дн. (строка %d)\n",
				d.Company, no, d.DeferralDays, d.RowNumber)
		}
	}
	if len(result.Attention) > 0 {
		fmt.Fprintf(&b, "\nТребуют внимания (%d):\n", len(result.Attention))
		for _, a := range result.Attention {
			fmt.Fprintf(&b, "  %s: %s (строка %d)\n", a.Company, a.Reason, a.RowNumber)
		}
	}
	if len(result.MissingDrivers) > 0 {
		fmt.Fprintf(&b, "\nБез водителя (%d):\n", len(result.MissingDrivers))
		for _, m := range result.MissingDrivers {
			fmt.Fprintf(&b, "  %s (строка %d)\n", m.Company, m.RowNumber)
		}
	}
	return b.String()
}
