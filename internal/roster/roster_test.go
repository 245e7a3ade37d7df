package roster

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/fueldesk/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResolver() *Resolver {
	clients := map[string]Client{
		"ромашка": {Contract: "Д-17 от 01.02.2024", CompanyName: "ОАО «Ромашка»"},
		"тритон":  {Contract: "Д-3 от 15.01.2024", CompanyName: "ООО «Тритон Трейд»"},
	}
	synonyms := map[string]string{
		"тритон": "тритон трейд",
		"м7":     "м7 софт",
	}
	return NewResolver(clients, synonyms, &logging.MockLogger{})
}

func TestCanonical_DirectRosterMatch(t *testing.T) {
	r := testResolver()
	assert.Equal(t, "ромашка", r.Canonical("Ромашка"))
	assert.Equal(t, "ромашка", r.Canonical("  ромашка  "))
}

func TestCanonical_SynonymMapsToRosterKey(t *testing.T) {
	r := testResolver()
	// The worksheet spells out the full name; the roster holds the
	// abbreviation. The group forms under the roster key.
	assert.Equal(t, "тритон", r.Canonical("Тритон Трейд"))
}

func TestCanonical_SynonymWithoutRosterEntryIsUnchanged(t *testing.T) {
	r := testResolver()
	// "м7" is a synonym key but not a roster entry, so "м7 софт" must
	// not be remapped.
	assert.Equal(t, "м7 софт", r.Canonical("М7 Софт"))
}

func TestCanonical_UnknownKeyIsNormalizedOnly(t *testing.T) {
	r := testResolver()
	assert.Equal(t, "неизвестная компания", r.Canonical(" Неизвестная Компания "))
}

func TestDefaultSelection(t *testing.T) {
	r := testResolver()
	available := []string{"тритон трейд", "кайрос тк", "ромашка"}

	selected := r.DefaultSelection(available)
	assert.Equal(t, []string{"ромашка", "тритон трейд"}, selected)
}

func TestDefaultSelection_FallsBackToAllCompanies(t *testing.T) {
	r := testResolver()
	available := []string{"кайрос тк", "деко"}

	selected := r.DefaultSelection(available)
	assert.Equal(t, []string{"деко", "кайрос тк"}, selected,
		"zero roster intersection must fail open to the full company list")
}

func TestKeys_Sorted(t *testing.T) {
	r := testResolver()
	assert.Equal(t, []string{"ромашка", "тритон"}, r.Keys())
}

func TestStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	clientsFile := filepath.Join(dir, "clients.yaml")
	store := NewStore(clientsFile, filepath.Join(dir, "synonyms.yaml"), &logging.MockLogger{})

	clients := map[string]Client{
		"деко": {
			Contract:         "Д-42 от 03.03.2024",
			CompanyName:      "ООО «Деко»",
			DirectorPosition: "Генеральный директор",
			DirectorFIO:      "Смирнова Анна Павловна",
			Initials:         "А.П. Смирнова",
		},
	}
	require.NoError(t, store.SaveClients(clients))

	loaded, err := store.LoadClients()
	require.NoError(t, err)
	assert.Equal(t, clients, loaded)
}

func TestStore_MissingFilesYieldEmptyTables(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "absent.yaml"), filepath.Join(dir, "absent2.yaml"), &logging.MockLogger{})

	clients, err := store.LoadClients()
	require.NoError(t, err)
	assert.Empty(t, clients)

	synonyms, err := store.LoadSynonyms()
	require.NoError(t, err)
	assert.Empty(t, synonyms)
}

func TestStore_LoadSynonyms(t *testing.T) {
	dir := t.TempDir()
	synFile := filepath.Join(dir, "synonyms.yaml")
	require.NoError(t, os.WriteFile(synFile, []byte("тритон: тритон трейд\nм7: м7 софт\n"), 0600))

	store := NewStore(filepath.Join(dir, "clients.yaml"), synFile, &logging.MockLogger{})
	synonyms, err := store.LoadSynonyms()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"тритон": "тритон трейд", "м7": "м7 софт"}, synonyms)
}
