package addendum

import (
	"fmt"
	"os"

	"fjacquet/fueldesk/internal/logging"
	"fjacquet/fueldesk/internal/roster"

	"gopkg.in/yaml.v3"
)

// LoadDictionaries reads the product, location and depot lookup tables.
// A missing file yields an empty table rather than an error, same as the
// client roster.
func LoadDictionaries(productsFile, locationsFile, depotsFile string, logger logging.Logger) (Dictionaries, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	products, err := loadTable(productsFile, "products.yaml", logger)
	if err != nil {
		return Dictionaries{}, err
	}
	locations, err := loadTable(locationsFile, "locations.yaml", logger)
	if err != nil {
		return Dictionaries{}, err
	}
	depots, err := loadTable(depotsFile, "depots.yaml", logger)
	if err != nil {
		return Dictionaries{}, err
	}
	return Dictionaries{Products: products, Locations: locations, Depots: depots}, nil
}

func loadTable(filename, fallback string, logger logging.Logger) (map[string]string, error) {
	if filename == "" {
		filename = fallback
	}
	path, err := roster.FindConfigFile(filename)
	if err != nil {
		logger.Warn("Dictionary file not found, starting empty",
			logging.Field{Key: logging.FieldFile, Value: filename})
		return map[string]string{}, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- operator-provided config path
	if err != nil {
		return nil, fmt.Errorf("error reading dictionary %s: %w", path, err)
	}
	table := map[string]string{}
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("error parsing dictionary %s: %w", path, err)
	}
	logger.Debug("Loaded dictionary",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(table)})
	return table, nil
}
