package ports

import (
	"context"

	"scentquiz/internal/domain"
)

// CatalogSource loads the perfume catalog from an external tabular resource
type CatalogSource interface {
	// Name describes the source (file path or "embedded")
	Name() string

	// Load parses the source into a catalog. Failures are *application.CatalogLoadError.
	Load(ctx context.Context) (*domain.Catalog, error)
}

// Matcher ranks catalog items against a preference query
type Matcher interface {
	// Strategy names the similarity strategy (e.g., "tfidf", "keyword")
	Strategy() string

	// Match returns at most TopK results by descending score, ties in catalog order.
	// An empty slice means no item matched; it is not an error.
	Match(query domain.PreferenceQuery) ([]domain.RankedResult, error)

	// Highlight wraps every occurrence of a query term in text with mark
	Highlight(text string, query domain.PreferenceQuery, mark func(string) string) string
}
