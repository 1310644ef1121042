package matching

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"scentquiz/internal/domain"
)

var tokenPattern = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)

// TFIDF ranks items by cosine similarity between TF-IDF vectors.
// The index is built once in NewTFIDF and never mutated, so a TFIDF
// may be shared by any number of goroutines.
type TFIDF struct {
	catalog    *domain.Catalog
	vocabulary map[string]int
	idf        []float64
	vectors    [][]float64
}

// NewTFIDF builds the vocabulary, IDF weights and item vectors for catalog
func NewTFIDF(catalog *domain.Catalog) *TFIDF {
	corpus := catalog.CombinedTexts()

	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range tokenize(text) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	m := &TFIDF{
		catalog:    catalog,
		vocabulary: make(map[string]int, len(terms)),
		idf:        make([]float64, len(terms)),
	}
	n := float64(len(corpus))
	for i, term := range terms {
		m.vocabulary[term] = i
		m.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}

	m.vectors = make([][]float64, len(corpus))
	for i, text := range corpus {
		m.vectors[i] = m.embed(text)
	}
	return m
}

// Strategy returns "tfidf"
func (m *TFIDF) Strategy() string { return StrategyTFIDF }

// Dimension returns the vocabulary size
func (m *TFIDF) Dimension() int { return len(m.idf) }

// Match scores every item against the query text and returns the top results
func (m *TFIDF) Match(q domain.PreferenceQuery) ([]domain.RankedResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	qv := m.embed(q.Text())

	scores := make([]float64, len(m.vectors))
	for i, v := range m.vectors {
		scores[i] = dot(v, qv)
	}
	return rank(m.catalog, scores), nil
}

// Highlight marks every whole token of text that also appears in the query
func (m *TFIDF) Highlight(text string, q domain.PreferenceQuery, mark func(string) string) string {
	want := make(map[string]struct{})
	for _, tok := range tokenize(q.Text()) {
		want[tok] = struct{}{}
	}
	if len(want) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, loc := range tokenPattern.FindAllStringIndex(text, -1) {
		tok := text[loc[0]:loc[1]]
		if _, ok := want[strings.ToLower(tok)]; !ok {
			continue
		}
		b.WriteString(text[last:loc[0]])
		b.WriteString(mark(tok))
		last = loc[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

func (m *TFIDF) embed(text string) []float64 {
	vec := make([]float64, len(m.idf))
	tf := make(map[int]int)
	total := 0
	for _, tok := range tokenize(text) {
		if idx, ok := m.vocabulary[tok]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return vec
	}
	for idx, count := range tf {
		vec[idx] = float64(count) / float64(total) * m.idf[idx]
	}

	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// tokenize lower-cases text and returns its letter tokens without stop words
func tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, t := range raw {
		if isStopword(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func dot(a, b []float64) float64 {
	n := min(len(a), len(b))
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
