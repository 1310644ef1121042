package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// PreferenceQuery is the completed quiz: one mood, one occasion and any subset of notes
type PreferenceQuery struct {
	Mood     Mood     `json:"mood"`
	Occasion Occasion `json:"occasion"`
	Notes    []Note   `json:"notes"`
}

// NewPreferenceQuery builds a query with notes de-duplicated and in canonical order
func NewPreferenceQuery(mood Mood, occasion Occasion, selected ...Note) PreferenceQuery {
	return PreferenceQuery{
		Mood:     mood,
		Occasion: occasion,
		Notes:    CanonicalNotes(selected),
	}
}

// CanonicalNotes de-duplicates notes and sorts them in enumeration order.
// Unknown notes sort last, in their original order.
func CanonicalNotes(selected []Note) []Note {
	out := make([]Note, 0, len(selected))
	for _, n := range selected {
		if !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	slices.SortStableFunc(out, func(a, b Note) int {
		oa, ob := noteOrder(a), noteOrder(b)
		if oa < 0 {
			oa = len(notes)
		}
		if ob < 0 {
			ob = len(notes)
		}
		return oa - ob
	})
	return out
}

// Validate reports whether the query can be matched.
// Mood and occasion are required; notes may be empty.
func (q PreferenceQuery) Validate() error {
	if q.Mood == "" || q.Occasion == "" {
		return ErrEmptyQuery
	}
	if !q.Mood.Valid() {
		return fmt.Errorf("%w: unknown mood %q", ErrInvalidChoice, q.Mood)
	}
	if !q.Occasion.Valid() {
		return fmt.Errorf("%w: unknown occasion %q", ErrInvalidChoice, q.Occasion)
	}
	for _, n := range q.Notes {
		if !n.Valid() {
			return fmt.Errorf("%w: unknown note %q", ErrInvalidChoice, n)
		}
	}
	return nil
}

// Terms flattens the query into [mood, occasion, notes...] with notes in canonical order
func (q PreferenceQuery) Terms() []string {
	terms := make([]string, 0, 2+len(q.Notes))
	terms = append(terms, string(q.Mood), string(q.Occasion))
	terms = append(terms, toStrings(CanonicalNotes(q.Notes))...)
	return terms
}

// Text joins the query terms into a single query string
func (q PreferenceQuery) Text() string {
	return strings.Join(q.Terms(), " ")
}

// Clone returns a copy that shares no memory with q
func (q PreferenceQuery) Clone() PreferenceQuery {
	q.Notes = slices.Clone(q.Notes)
	return q
}

// RankedResult is one recommendation: the item, its similarity score and 1-based rank
type RankedResult struct {
	Item  CatalogItem
	Score float64
	Rank  int
}

// Refs returns the natural keys of the results in rank order
func Refs(results []RankedResult) []ItemRef {
	refs := make([]ItemRef, len(results))
	for i, r := range results {
		refs[i] = r.Item.Ref()
	}
	return refs
}

// HistoryEntry records one completed quiz run. Entries are append-only.
type HistoryEntry struct {
	ID          int64           `json:"id"`
	UserID      string          `json:"user_id"`
	Query       PreferenceQuery `json:"query"`
	Recommended []ItemRef       `json:"recommended"`
	CreatedAt   time.Time       `json:"created_at"`
}

// User is an account known to the identity provider
type User struct {
	Username  string
	CreatedAt time.Time
}
