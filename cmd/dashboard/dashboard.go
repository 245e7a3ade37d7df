// Package dashboard renders the monthly deals summary.
package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"fjacquet/fueldesk/cmd/root"
	"fjacquet/fueldesk/internal/aggregator"
	"fjacquet/fueldesk/internal/gridparser"
	"fjacquet/fueldesk/internal/report"
	"fjacquet/fueldesk/internal/roster"
	"fjacquet/fueldesk/internal/sheetloader"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	companies []string
	csvOut    bool
	jsonOut   bool
)

// Cmd represents the dashboard command
var Cmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the monthly deals summary",
	Long: `Load the deals worksheet for the selected month, match transport costs
to sales, and print the per-company summary with totals. Optionally
write the summary as CSV and the full report as JSON.`,
	RunE: dashboardFunc,
}

// Init registers the dashboard flags.
func Init() {
	Cmd.Flags().StringSliceVarP(&companies, "company", "c", nil, "Company keys to include (default: all from the roster)")
	Cmd.Flags().BoolVar(&csvOut, "csv", false, "Write the summary table as CSV")
	Cmd.Flags().BoolVar(&jsonOut, "json", false, "Write the full report as JSON")
}

func dashboardFunc(cmd *cobra.Command, args []string) error {
	date, err := root.MonthDate()
	if err != nil {
		return err
	}

	loader := sheetloader.New(root.Log).
		WithHTTPClient(&http.Client{Timeout: time.Duration(root.Cfg.Sheet.TimeoutSeconds) * time.Second}).
		WithLocalDir(root.Cfg.Sheet.LocalDir)

	ctx := context.Background()
	grid, sheet, err := loader.Load(ctx, root.SheetSource(), date)
	if err != nil {
		return err
	}

	sales, transport, err := gridparser.Parse(grid, root.Log)
	if err != nil {
		return err
	}

	store := roster.NewStore(root.Cfg.Roster.ClientsFile, root.Cfg.Roster.SynonymsFile, root.Log)
	resolver, err := store.NewResolverFromStore()
	if err != nil {
		return err
	}

	filter := companies
	if filter == nil {
		available := make([]string, 0, len(sales))
		seen := map[string]bool{}
		for _, row := range sales {
			key := resolver.Canonical(row.CompanyKey)
			if !seen[key] {
				seen[key] = true
				available = append(available, key)
			}
		}
		filter = resolver.DefaultSelection(available)
	}

	result := aggregator.Aggregate(sales, transport, aggregator.Options{
		Filter:        filter,
		Resolver:      resolver,
		ToleranceTons: decimal.NewFromFloat(root.Cfg.Matching.ToleranceTons),
	}, root.Log)

	gen := report.NewGenerator(root.Log).WithDelimiter(root.Cfg.Delimiter())
	fmt.Print(gen.RenderText(result, sheet))

	if csvOut {
		path := filepath.Join(root.OutputDir(), fmt.Sprintf("summary-%s.csv", date.Format("2006-01")))
		if err := gen.WriteCSV(result.Summaries, path); err != nil {
			return err
		}
	}
	if jsonOut {
		path := filepath.Join(root.OutputDir(), fmt.Sprintf("report-%s.json", date.Format("2006-01")))
		if err := gen.WriteJSON(result, sheet, path); err != nil {
			return err
		}
	}
	return nil
}
