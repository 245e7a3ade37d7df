// Package roster manages the client roster and company-name synonym
// configuration, and resolves raw company keys from the worksheet to
// canonical roster keys.
//
// Both tables are static, human-curated configuration: matching is exact
// string comparison after lowercasing and trimming, never fuzzy. Synonyms
// map an abbreviated roster key to the full spelling that appears in the
// worksheet (e.g. "тритон" -> "тритон трейд").
package roster

import (
	"sort"
	"strings"

	"fjacquet/fueldesk/internal/logging"
)

// Client holds the contract metadata for one roster company, keyed by
// the canonical lowercase company key. The metadata feeds the addendum
// generator; the key set feeds the dashboard filter.
type Client struct {
	Contract         string `yaml:"contract"`
	CompanyName      string `yaml:"company_name"`
	DirectorPosition string `yaml:"director_position"`
	DirectorFIO      string `yaml:"director_fio"`
	Initials         string `yaml:"initials"`
}

// Resolver canonicalizes company keys against the roster and synonym
// tables. It is read-only after construction and safe to share.
type Resolver struct {
	clients  map[string]Client
	synonyms map[string]string
	logger   logging.Logger
}

// NewResolver builds a resolver over the given roster and synonym
// tables. Keys and synonym values are normalized to lowercase trimmed
// form on the way in, so lookups never depend on file formatting.
func NewResolver(clients map[string]Client, synonyms map[string]string, logger logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	normClients := make(map[string]Client, len(clients))
	for key, c := range clients {
		normClients[normalize(key)] = c
	}
	normSynonyms := make(map[string]string, len(synonyms))
	for abbr, full := range synonyms {
		normSynonyms[normalize(abbr)] = normalize(full)
	}
	return &Resolver{
		clients:  normClients,
		synonyms: normSynonyms,
		logger:   logger,
	}
}

// Canonical maps a raw company key to its canonical roster key. A key
// that is a roster entry is canonical as-is. A key that is the full
// spelling of a synonym whose abbreviation is on the roster resolves to
// that abbreviation. Anything else is returned unchanged (lowercased and
// trimmed): unknown companies still group consistently.
func (r *Resolver) Canonical(key string) string {
	k := normalize(key)
	if _, ok := r.clients[k]; ok {
		return k
	}
	for abbr, full := range r.synonyms {
		if full != k {
			continue
		}
		if _, ok := r.clients[abbr]; ok {
			return abbr
		}
	}
	return k
}

// Client returns the roster metadata for a canonical key.
func (r *Resolver) Client(key string) (Client, bool) {
	c, ok := r.clients[normalize(key)]
	return c, ok
}

// Keys returns the sorted canonical roster keys.
func (r *Resolver) Keys() []string {
	keys := make([]string, 0, len(r.clients))
	for key := range r.clients {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// DefaultSelection returns the "my clients" filter for the given set of
// companies present in the worksheet: every available company that is on
// the roster directly or through a synonym. When the roster and the
// worksheet share nothing, the selection falls back to all available
// companies, since showing extra data beats showing none.
func (r *Resolver) DefaultSelection(available []string) []string {
	var selected []string
	for _, comp := range available {
		key := normalize(comp)
		if _, ok := r.clients[key]; ok {
			selected = append(selected, key)
			continue
		}
		for abbr, full := range r.synonyms {
			if full != key {
				continue
			}
			if _, ok := r.clients[abbr]; ok {
				selected = append(selected, key)
				break
			}
		}
	}
	if len(selected) == 0 {
		r.logger.Info("No roster companies present in the data, showing all",
			logging.Field{Key: logging.FieldCount, Value: len(available)})
		selected = make([]string, 0, len(available))
		for _, comp := range available {
			selected = append(selected, normalize(comp))
		}
	}
	sort.Strings(selected)
	return selected
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
