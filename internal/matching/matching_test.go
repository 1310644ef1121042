package matching

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scentquiz/internal/domain"
)

var aqua = domain.CatalogItem{
	Name:        "Aqua",
	Brand:       "X",
	Description: "fresh citrus morning scent",
	Notes:       "citrus, fresh",
}

func sampleCatalog() *domain.Catalog {
	return domain.NewCatalog([]domain.CatalogItem{
		aqua,
		{Name: "Nocturne", Brand: "Maison Y", Description: "dark oud and smoky leather for the night", Notes: "oud, spicy"},
		{Name: "Sucre", Brand: "Z", Description: "sweet vanilla gourmand", Notes: "vanilla, sweet, musky"},
		{Name: "Jardin", Brand: "Z", Description: "floral bouquet for everyday wear", Notes: "floral"},
		{Name: "Blank", Brand: "Q"},
	})
}

func TestNew(t *testing.T) {
	c := sampleCatalog()

	for _, name := range []string{"", "tfidf", " TFIDF "} {
		m, err := New(name, c)
		require.NoError(t, err)
		assert.Equal(t, StrategyTFIDF, m.Strategy())
	}

	m, err := New("keyword", c)
	require.NoError(t, err)
	assert.Equal(t, StrategyKeyword, m.Strategy())

	_, err = New("embedding", c)
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestMatch_SingleItemScenario(t *testing.T) {
	c := domain.NewCatalog([]domain.CatalogItem{aqua})
	q := domain.NewPreferenceQuery(domain.MoodFresh, domain.OccasionEveryday, domain.NoteCitrus)

	for _, name := range Strategies() {
		t.Run(name, func(t *testing.T) {
			m, err := New(name, c)
			require.NoError(t, err)

			results, err := m.Match(q)
			require.NoError(t, err)
			require.Len(t, results, 1)
			assert.Equal(t, "Aqua", results[0].Item.Name)
			assert.Greater(t, results[0].Score, 0.0)
			assert.Equal(t, 1, results[0].Rank)
		})
	}
}

func TestMatch_NoSharedTermIsEmpty(t *testing.T) {
	c := domain.NewCatalog([]domain.CatalogItem{aqua})
	q := domain.NewPreferenceQuery(domain.MoodBold, domain.OccasionParty, domain.NoteOud)

	for _, name := range Strategies() {
		t.Run(name, func(t *testing.T) {
			m, err := New(name, c)
			require.NoError(t, err)

			results, err := m.Match(q)
			require.NoError(t, err)
			assert.Empty(t, results)
		})
	}
}

func TestMatch_IncompleteQuery(t *testing.T) {
	for _, name := range Strategies() {
		m, err := New(name, sampleCatalog())
		require.NoError(t, err)

		_, err = m.Match(domain.PreferenceQuery{Mood: domain.MoodFresh})
		assert.ErrorIs(t, err, domain.ErrEmptyQuery, name)
	}
}

func TestMatch_EmptyCatalog(t *testing.T) {
	q := domain.NewPreferenceQuery(domain.MoodFresh, domain.OccasionWork)
	for _, name := range Strategies() {
		m, err := New(name, domain.NewCatalog(nil))
		require.NoError(t, err)

		results, err := m.Match(q)
		require.NoError(t, err, name)
		assert.Empty(t, results, name)
	}
}

func TestMatch_TruncatesToTopK(t *testing.T) {
	items := make([]domain.CatalogItem, 8)
	for i := range items {
		items[i] = domain.CatalogItem{Name: fmt.Sprintf("Fresh %d", i), Brand: "B", Description: "fresh citrus"}
	}
	c := domain.NewCatalog(items)
	q := domain.NewPreferenceQuery(domain.MoodFresh, domain.OccasionWork, domain.NoteCitrus)

	for _, name := range Strategies() {
		t.Run(name, func(t *testing.T) {
			m, err := New(name, c)
			require.NoError(t, err)

			results, err := m.Match(q)
			require.NoError(t, err)
			require.Len(t, results, TopK)
			for i, r := range results {
				// identical texts tie, so catalog order is kept
				assert.Equal(t, fmt.Sprintf("Fresh %d", i), r.Item.Name)
				assert.Equal(t, i+1, r.Rank)
			}
		})
	}
}

func TestMatch_DescendingScores(t *testing.T) {
	c := sampleCatalog()
	q := domain.NewPreferenceQuery(domain.MoodMysterious, domain.OccasionDateNight, domain.NoteOud, domain.NoteSpicy, domain.NoteVanilla)

	for _, name := range Strategies() {
		t.Run(name, func(t *testing.T) {
			m, err := New(name, c)
			require.NoError(t, err)

			results, err := m.Match(q)
			require.NoError(t, err)
			require.NotEmpty(t, results)
			assert.Equal(t, "Nocturne", results[0].Item.Name)
			for i := 1; i < len(results); i++ {
				assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
			}
		})
	}
}

func TestMatch_IsDeterministic(t *testing.T) {
	q := domain.NewPreferenceQuery(domain.MoodCozy, domain.OccasionEveryday, domain.NoteVanilla, domain.NoteFloral, domain.NoteCitrus)

	first, err := NewTFIDF(sampleCatalog()).Match(q)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := NewTFIDF(sampleCatalog()).Match(q)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestTFIDF_EmptyNotesStillMatch(t *testing.T) {
	m := NewTFIDF(sampleCatalog())
	results, err := m.Match(domain.NewPreferenceQuery(domain.MoodFresh, domain.OccasionEveryday))
	require.NoError(t, err)
	require.NotEmpty(t, results)

	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Item.Name
	}
	assert.Contains(t, names, "Aqua")
	assert.Contains(t, names, "Jardin")
	assert.NotContains(t, names, "Blank")
}

func TestTFIDF_StopwordsAreIgnored(t *testing.T) {
	m := NewTFIDF(domain.NewCatalog([]domain.CatalogItem{{Name: "A", Description: "the and of for"}}))
	assert.Zero(t, m.Dimension())
}

func TestKeyword_ScoreCountsDistinctTerms(t *testing.T) {
	m := NewKeyword(sampleCatalog())
	q := domain.NewPreferenceQuery(domain.MoodFresh, domain.OccasionEveryday, domain.NoteCitrus, domain.NoteFloral)

	results, err := m.Match(q)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "Aqua", results[0].Item.Name)
	assert.Equal(t, 2.0, results[0].Score) // fresh, citrus
	assert.Equal(t, "Jardin", results[1].Item.Name)
	assert.Equal(t, 2.0, results[1].Score) // everyday wear, floral
}

func TestHighlight(t *testing.T) {
	q := domain.NewPreferenceQuery(domain.MoodFresh, domain.OccasionEveryday, domain.NoteCitrus)
	mark := Delimiters("[", "]")

	tests := []struct {
		name    string
		matcher interface {
			Highlight(string, domain.PreferenceQuery, func(string) string) string
		}
		text string
		want string
	}{
		{"tfidf whole tokens", NewTFIDF(sampleCatalog()), "Fresh citrus morning scent", "[Fresh] [citrus] morning scent"},
		{"tfidf skips partial tokens", NewTFIDF(sampleCatalog()), "Citrusy freshness", "Citrusy freshness"},
		{"tfidf phrase tokens", NewTFIDF(sampleCatalog()), "for everyday wear", "for [everyday] [wear]"},
		{"keyword substrings", NewKeyword(sampleCatalog()), "Citrusy FRESH", "[Citrus]y [FRESH]"},
		{"keyword phrase", NewKeyword(sampleCatalog()), "bouquet for Everyday Wear", "bouquet for [Everyday Wear]"},
		{"no match", NewKeyword(sampleCatalog()), "dark oud", "dark oud"},
		{"empty text", NewTFIDF(sampleCatalog()), "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.matcher.Highlight(tt.text, q, mark))
		})
	}
}

func TestDelimiters(t *testing.T) {
	assert.Equal(t, "**oud**", Delimiters("**", "**")("oud"))
}
