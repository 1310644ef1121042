// Package matching ranks catalog items against a preference query.
package matching

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"scentquiz/internal/domain"
	"scentquiz/internal/ports"
)

// TopK is the maximum number of recommendations returned
const TopK = 5

const (
	StrategyTFIDF   = "tfidf"
	StrategyKeyword = "keyword"
)

// ErrUnknownStrategy is returned by New for an unsupported strategy name
var ErrUnknownStrategy = errors.New("unknown matching strategy")

// Strategies lists the supported strategy names
func Strategies() []string {
	return []string{StrategyTFIDF, StrategyKeyword}
}

// New builds the matcher for a strategy. An empty name selects TF-IDF.
func New(strategy string, catalog *domain.Catalog) (ports.Matcher, error) {
	switch strings.ToLower(strings.TrimSpace(strategy)) {
	case "", StrategyTFIDF:
		return NewTFIDF(catalog), nil
	case StrategyKeyword:
		return NewKeyword(catalog), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

// Delimiters returns a marker that wraps highlighted text in open and closing
func Delimiters(open, closing string) func(string) string {
	return func(s string) string {
		return open + s + closing
	}
}

// rank keeps items with a positive score, orders them by descending score
// (ties keep catalog order) and truncates to TopK
func rank(catalog *domain.Catalog, scores []float64) []domain.RankedResult {
	idxs := make([]int, 0, len(scores))
	for i, s := range scores {
		if s > 0 {
			idxs = append(idxs, i)
		}
	}
	slices.SortStableFunc(idxs, func(a, b int) int {
		switch {
		case scores[a] > scores[b]:
			return -1
		case scores[a] < scores[b]:
			return 1
		default:
			return 0
		}
	})
	if len(idxs) > TopK {
		idxs = idxs[:TopK]
	}

	results := make([]domain.RankedResult, len(idxs))
	for r, i := range idxs {
		results[r] = domain.RankedResult{
			Item:  catalog.Item(i),
			Score: scores[i],
			Rank:  r + 1,
		}
	}
	return results
}
