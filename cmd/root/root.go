// Package root contains the root command for the application
package root

import (
	"fmt"
	"os"
	"time"

	"fjacquet/fueldesk/internal/config"
	"fjacquet/fueldesk/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags are the flags shared by multiple commands.
type CommonFlags struct {
	// Sheet overrides the configured workbook source: a local .xlsx
	// path or a cloud spreadsheet id.
	Sheet string
	// Month selects the deals month as YYYY-MM; empty means the
	// current month.
	Month string
	// Output overrides the configured output directory.
	Output string
}

var (
	// Log is the shared logger instance for commands.
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// Cfg is the loaded application configuration, available to all
	// commands after PersistentPreRun.
	Cfg *config.Config

	// SharedFlags are accessible to all commands.
	SharedFlags = CommonFlags{}

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "fueldesk",
		Short: "Monthly fuel deals dashboard and document generator.",
		Long: `fueldesk reads the monthly deals worksheet, matches transport costs
to sales, aggregates per-company results and generates supplementary
agreement documents.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to fueldesk!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg, err := config.InitializeConfig()
			if err != nil {
				fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
				os.Exit(1)
			}
			Cfg = cfg
			Log = config.ConfigureLogging(cfg)
		},
	}
)

// Init initializes the root command and all shared flags.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Sheet, "sheet", "s", "", "Workbook source: local .xlsx path or spreadsheet id")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Month, "month", "m", "", "Deals month as YYYY-MM (default: current month)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output directory")
}

// SheetSource returns the workbook source, flag over configuration.
func SheetSource() string {
	if SharedFlags.Sheet != "" {
		return SharedFlags.Sheet
	}
	return Cfg.SheetSource()
}

// MonthDate returns the selected deals month.
func MonthDate() (time.Time, error) {
	if SharedFlags.Month == "" {
		return time.Now(), nil
	}
	date, err := time.Parse("2006-01", SharedFlags.Month)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", SharedFlags.Month, err)
	}
	return date, nil
}

// OutputDir returns the output directory, flag over configuration.
func OutputDir() string {
	if SharedFlags.Output != "" {
		return SharedFlags.Output
	}
	return Cfg.Output.Directory
}
