// Package config provides Viper-based hierarchical configuration:
// defaults, then the optional config.yaml, then FUELDESK_* environment
// variables.
package config

import (
	"fmt"
	"strings"

	"fjacquet/fueldesk/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Sheet struct {
		// ID is the cloud spreadsheet id; File points at a local
		// workbook instead. File wins when both are set.
		ID             string `mapstructure:"id" yaml:"id"`
		File           string `mapstructure:"file" yaml:"file"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		// LocalDir is where the <id>.xlsx fallback copy lives.
		LocalDir string `mapstructure:"local_dir" yaml:"local_dir"`
	} `mapstructure:"sheet" yaml:"sheet"`

	Roster struct {
		ClientsFile  string `mapstructure:"clients_file" yaml:"clients_file"`
		SynonymsFile string `mapstructure:"synonyms_file" yaml:"synonyms_file"`
	} `mapstructure:"roster" yaml:"roster"`

	Dictionaries struct {
		ProductsFile  string `mapstructure:"products_file" yaml:"products_file"`
		LocationsFile string `mapstructure:"locations_file" yaml:"locations_file"`
		DepotsFile    string `mapstructure:"depots_file" yaml:"depots_file"`
	} `mapstructure:"dictionaries" yaml:"dictionaries"`

	Matching struct {
		// ToleranceTons is the transport match tonnage tolerance.
		ToleranceTons float64 `mapstructure:"tolerance_tons" yaml:"tolerance_tons"`
	} `mapstructure:"matching" yaml:"matching"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Output struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"output" yaml:"output"`
}

// InitializeConfig loads the configuration hierarchy.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.fueldesk")
	v.AddConfigPath(".fueldesk")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FUELDESK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("sheet.id", "")
	v.SetDefault("sheet.file", "")
	v.SetDefault("sheet.timeout_seconds", 30)
	v.SetDefault("sheet.local_dir", ".")

	v.SetDefault("roster.clients_file", "clients.yaml")
	v.SetDefault("roster.synonyms_file", "synonyms.yaml")

	v.SetDefault("dictionaries.products_file", "products.yaml")
	v.SetDefault("dictionaries.locations_file", "locations.yaml")
	v.SetDefault("dictionaries.depots_file", "depots.yaml")

	v.SetDefault("matching.tolerance_tons", 1.0)

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("output.directory", "output")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}
	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}
	if config.Matching.ToleranceTons <= 0 {
		return fmt.Errorf("matching.tolerance_tons must be positive, got: %f", config.Matching.ToleranceTons)
	}
	if config.Sheet.TimeoutSeconds < 1 || config.Sheet.TimeoutSeconds > 300 {
		return fmt.Errorf("sheet.timeout_seconds must be between 1 and 300, got: %d", config.Sheet.TimeoutSeconds)
	}
	return nil
}

// ConfigureLogging builds the application logger from the configuration.
func ConfigureLogging(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	return []rune(c.CSV.Delimiter)[0]
}

// SheetSource returns the workbook source the loader should open: the
// local file when set, the spreadsheet id otherwise.
func (c *Config) SheetSource() string {
	if c.Sheet.File != "" {
		return c.Sheet.File
	}
	return c.Sheet.ID
}
