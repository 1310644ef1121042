package matching

import (
	"regexp"
	"slices"
	"strings"

	"scentquiz/internal/domain"
)

// Keyword ranks items by how many distinct query terms their text contains.
// Terms are matched case-insensitively as literal substrings.
type Keyword struct {
	catalog *domain.Catalog
	texts   []string
}

// NewKeyword precomputes the lower-cased text of every item
func NewKeyword(catalog *domain.Catalog) *Keyword {
	texts := catalog.CombinedTexts()
	for i, t := range texts {
		texts[i] = strings.ToLower(t)
	}
	return &Keyword{catalog: catalog, texts: texts}
}

// Strategy returns "keyword"
func (m *Keyword) Strategy() string { return StrategyKeyword }

// Match counts the distinct terms each item contains and returns the top results
func (m *Keyword) Match(q domain.PreferenceQuery) ([]domain.RankedResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	terms := lowerTerms(q)

	scores := make([]float64, len(m.texts))
	for i, text := range m.texts {
		for _, term := range terms {
			if strings.Contains(text, term) {
				scores[i]++
			}
		}
	}
	return rank(m.catalog, scores), nil
}

// Highlight marks every case-insensitive occurrence of a query term, preferring
// the longest term where two start at the same position
func (m *Keyword) Highlight(text string, q domain.PreferenceQuery, mark func(string) string) string {
	terms := lowerTerms(q)
	if len(terms) == 0 {
		return text
	}
	slices.SortStableFunc(terms, func(a, b string) int { return len(b) - len(a) })

	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = regexp.QuoteMeta(t)
	}
	re := regexp.MustCompile(`(?i)(?:` + strings.Join(quoted, "|") + `)`)
	return re.ReplaceAllStringFunc(text, mark)
}

// lowerTerms returns the distinct, non-empty, lower-cased query terms
func lowerTerms(q domain.PreferenceQuery) []string {
	var out []string
	for _, t := range q.Terms() {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}
