package roster

import (
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/fueldesk/internal/logging"

	"gopkg.in/yaml.v3"
)

// Store loads and saves the roster configuration files.
type Store struct {
	ClientsFile  string
	SynonymsFile string
	logger       logging.Logger
}

// NewStore creates a store over the given file paths. Empty paths fall
// back to the default file names resolved through the search locations.
func NewStore(clientsFile, synonymsFile string, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Store{
		ClientsFile:  clientsFile,
		SynonymsFile: synonymsFile,
		logger:       logger,
	}
}

// FindConfigFile looks for a configuration file in the standard
// locations: the path itself, ./config/, and ~/.config/fueldesk/.
func FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "fueldesk", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadClients reads the client roster. A missing file yields an empty
// roster rather than an error: the tool stays usable before the operator
// has set up their client list.
func (s *Store) LoadClients() (map[string]Client, error) {
	filename := s.ClientsFile
	if filename == "" {
		filename = "clients.yaml"
	}
	path, err := FindConfigFile(filename)
	if err != nil {
		s.logger.Warn("Client roster file not found, starting empty",
			logging.Field{Key: logging.FieldFile, Value: filename})
		return map[string]Client{}, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- operator-provided config path
	if err != nil {
		return nil, fmt.Errorf("error reading client roster %s: %w", path, err)
	}
	clients := map[string]Client{}
	if err := yaml.Unmarshal(data, &clients); err != nil {
		return nil, fmt.Errorf("error parsing client roster %s: %w", path, err)
	}
	s.logger.Debug("Loaded client roster",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(clients)})
	return clients, nil
}

// LoadSynonyms reads the abbreviation-to-full-name synonym table. A
// missing file yields an empty table.
func (s *Store) LoadSynonyms() (map[string]string, error) {
	filename := s.SynonymsFile
	if filename == "" {
		filename = "synonyms.yaml"
	}
	path, err := FindConfigFile(filename)
	if err != nil {
		return map[string]string{}, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- operator-provided config path
	if err != nil {
		return nil, fmt.Errorf("error reading synonym table %s: %w", path, err)
	}
	synonyms := map[string]string{}
	if err := yaml.Unmarshal(data, &synonyms); err != nil {
		return nil, fmt.Errorf("error parsing synonym table %s: %w", path, err)
	}
	return synonyms, nil
}

// SaveClients writes the client roster back to disk, creating the
// directory when needed.
func (s *Store) SaveClients(clients map[string]Client) error {
	filename := s.ClientsFile
	if filename == "" {
		filename = "clients.yaml"
	}
	if path, err := FindConfigFile(filename); err == nil {
		filename = path
	}

	data, err := yaml.Marshal(clients)
	if err != nil {
		return fmt.Errorf("error serializing client roster: %w", err)
	}
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("error creating config directory: %w", err)
		}
	}
	if err := os.WriteFile(filename, data, 0600); err != nil {
		return fmt.Errorf("error writing client roster %s: %w", filename, err)
	}
	s.logger.Info("Saved client roster",
		logging.Field{Key: logging.FieldFile, Value: filename},
		logging.Field{Key: logging.FieldCount, Value: len(clients)})
	return nil
}

// NewResolverFromStore loads both tables and builds a resolver.
func (s *Store) NewResolverFromStore() (*Resolver, error) {
	clients, err := s.LoadClients()
	if err != nil {
		return nil, err
	}
	synonyms, err := s.LoadSynonyms()
	if err != nil {
		return nil, err
	}
	return NewResolver(clients, synonyms, s.logger), nil
}
