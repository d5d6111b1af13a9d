package suggest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var footwearOptions = []string{"Talla", "Color", "Material", "Estilo"}

func newTestSuggester(t *testing.T, taxonomy Taxonomy) *Suggester {
	t.Helper()
	return NewSuggester(taxonomy, Options{}, zap.NewNop())
}

func TestSuggester_Suggest(t *testing.T) {
	custom := Taxonomy{
		DefaultOptions: []string{"Color", "Tamaño"},
		Entries: []TaxonomyEntry{
			{Keywords: []string{"ropa", "camisa"}, Options: []string{"Talla", "Color", "Corte"}},
			{Keywords: []string{"tenis", "zapatillas"}, Options: footwearOptions},
		},
	}

	tests := []struct {
		name          string
		taxonomy      Taxonomy
		category      string
		expected      []string
		expectMatched bool
	}{
		{"Keyword among several words", custom, "zapatillas deportivas", footwearOptions, true},
		{"Unknown category falls back to defaults", custom, "xyz-unknown-category", []string{"Color", "Tamaño"}, false},
		{"Empty category falls back to defaults", custom, "", []string{"Color", "Tamaño"}, false},
		{"Blank category falls back to defaults", custom, "   ", []string{"Color", "Tamaño"}, false},
		{"Typo still matches", custom, "zapatilas", footwearOptions, true},
		{"Prefix still matches", custom, "zapat", footwearOptions, true},
		{"Case and accents ignored", DefaultTaxonomy(), "ELECTRÓNICA", []string{"Capacidad", "Color", "Memoria RAM", "Modelo"}, true},
		{"Stopwords ignored", DefaultTaxonomy(), "ropa de hombre", []string{"Talla", "Color", "Material", "Corte"}, true},
		{"Multiple keywords of one entry", DefaultTaxonomy(), "zapatos deportivos", footwearOptions, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSuggester(t, tt.taxonomy)

			result := s.Suggest(tt.category)

			assert.Equal(t, tt.expected, result.Options)
			assert.Equal(t, tt.expectMatched, result.Matched)
			assert.Equal(t, tt.category, result.Category)
		})
	}
}

func TestSuggester_TieKeepsTableOrder(t *testing.T) {
	s := newTestSuggester(t, Taxonomy{
		DefaultOptions: []string{"Color"},
		Entries: []TaxonomyEntry{
			{Keywords: []string{"bolsos"}, Options: []string{"Material"}},
			{Keywords: []string{"bolsos"}, Options: []string{"Tamaño"}},
		},
	})

	assert.Equal(t, []string{"Material"}, s.Suggest("bolsos").Options)

	ranked := s.Rank("bolsos")
	require.Len(t, ranked, 2)
	assert.Equal(t, 0, ranked[0].Index)
	assert.Equal(t, ranked[0].Distance, ranked[1].Distance)
}

func TestSuggester_Threshold(t *testing.T) {
	taxonomy := Taxonomy{
		DefaultOptions: []string{"Color"},
		Entries:        []TaxonomyEntry{{Keywords: []string{"zapatillas"}, Options: footwearOptions}},
	}

	loose := NewSuggester(taxonomy, Options{Threshold: 0.6}, zap.NewNop())
	strict := NewSuggester(taxonomy, Options{Threshold: 0.2}, zap.NewNop())

	assert.True(t, loose.Suggest("zapatillas rojas").Matched)
	assert.False(t, strict.Suggest("zapatillas rojas").Matched)
}

func TestSuggester_ResultIsACopy(t *testing.T) {
	s := newTestSuggester(t, DefaultTaxonomy())

	first := s.Suggest("xyz")
	first.Options[0] = "changed"

	assert.NotEqual(t, "changed", s.Suggest("xyz").Options[0])
	assert.Equal(t, DefaultTaxonomy().DefaultOptions, s.DefaultOptions())
}

func TestLoadTaxonomyFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("Valid file", func(t *testing.T) {
		path := filepath.Join(dir, "taxonomy.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
			"defaultOptions": ["Color"],
			"entries": [{"keywords": ["libros"], "options": ["Formato", "Idioma"]}]
		}`), 0o600))

		taxonomy, err := LoadTaxonomyFile(path)
		require.NoError(t, err)

		result := newTestSuggester(t, taxonomy).Suggest("Libros usados")
		assert.Equal(t, []string{"Formato", "Idioma"}, result.Options)
	})

	t.Run("Missing defaults", func(t *testing.T) {
		path := filepath.Join(dir, "empty.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"entries": []}`), 0o600))

		_, err := LoadTaxonomyFile(path)
		assert.ErrorIs(t, err, errEmptyTaxonomy)
	})

	t.Run("Entry without options", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"defaultOptions": ["Color"], "entries": [{"keywords": ["x"]}]}`), 0o600))

		_, err := LoadTaxonomyFile(path)
		assert.Error(t, err)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadTaxonomyFile(filepath.Join(dir, "nope.json"))
		assert.Error(t, err)
	})
}

func TestTokenSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, tokenSimilarity("tenis", "tenis"))
	assert.InDelta(t, 0.9, tokenSimilarity("zapatilas", "zapatillas"), 1e-9)
	assert.Equal(t, prefixSimilarity, tokenSimilarity("zapa", "zapatillas"))
	assert.Less(t, tokenSimilarity("zap", "zapatillas"), DefaultMinTokenSimilarity)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"ropa", "nino"}, tokenize("Ropa para Niño"))
	assert.Equal(t, []string{"xyz", "unknown", "category"}, tokenize("xyz-unknown-category"))
	assert.Empty(t, tokenize(" de la "))
}
