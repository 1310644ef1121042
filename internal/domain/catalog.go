package domain

import (
	"slices"
	"strings"
)

// CatalogItem is a single perfume in the catalog. Items are never mutated after load.
type CatalogItem struct {
	Name        string // e.g., "Aqua"
	Brand       string // e.g., "Maison X"
	Description string // free text, may be empty
	Notes       string // free-text tags, e.g., "citrus, fresh"
	ImageURL    string // optional
}

// ItemRef identifies a catalog item by its natural key
type ItemRef struct {
	Name  string `json:"name"`
	Brand string `json:"brand"`
}

// Ref returns the natural key of the item
func (i CatalogItem) Ref() ItemRef {
	return ItemRef{Name: i.Name, Brand: i.Brand}
}

// CombinedText is the searchable text of the item: description followed by notes.
// Missing fields contribute nothing.
func (i CatalogItem) CombinedText() string {
	return strings.TrimSpace(strings.TrimSpace(i.Description) + " " + strings.TrimSpace(i.Notes))
}

// String renders the reference as "Name (Brand)"
func (r ItemRef) String() string {
	if r.Brand == "" {
		return r.Name
	}
	return r.Name + " (" + r.Brand + ")"
}

// Catalog is the fixed, read-only collection of items eligible for recommendation.
// It is safe to share between goroutines.
type Catalog struct {
	items []CatalogItem
}

// NewCatalog copies items into a new catalog, preserving their order
func NewCatalog(items []CatalogItem) *Catalog {
	return &Catalog{items: slices.Clone(items)}
}

// Len returns the number of items
func (c *Catalog) Len() int {
	return len(c.items)
}

// Item returns the item at catalog position i
func (c *Catalog) Item(i int) CatalogItem {
	return c.items[i]
}

// Items returns a copy of all items in catalog order
func (c *Catalog) Items() []CatalogItem {
	return slices.Clone(c.items)
}

// CombinedTexts returns the combined text of every item in catalog order
func (c *Catalog) CombinedTexts() []string {
	out := make([]string, len(c.items))
	for i, item := range c.items {
		out[i] = item.CombinedText()
	}
	return out
}
