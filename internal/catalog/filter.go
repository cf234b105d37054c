package catalog

import (
	"fmt"
	"strings"

	"github.com/desidelights/tiffin/internal/model"
)

// Category is a filter-bar selection: "All", "Veg Only", or one of the
// known cuisine labels. The set is closed; anything else is rejected.
type Category string

const (
	CategoryAll     Category = "All"
	CategoryVegOnly Category = "Veg Only"
)

// Categories returns the filter bar's fixed ordered set.
func Categories() []Category {
	out := []Category{CategoryAll}
	for _, c := range model.Cuisines() {
		out = append(out, Category(c))
	}
	return append(out, CategoryVegOnly)
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	if c == CategoryAll || c == CategoryVegOnly {
		return true
	}
	return model.Cuisine(c).Valid()
}

// ParseCategory validates a raw label against the closed set.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.TrimSpace(s))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// Visible applies the search query and category filter to restaurants,
// preserving their relative order. A restaurant is included when the
// trimmed query is a case-insensitive substring of its name or cuisine
// (empty query matches everything) and the category predicate holds.
// An invalid category matches nothing rather than falling through.
func Visible(restaurants []model.Restaurant, query string, category Category) []model.Restaurant {
	if !category.Valid() {
		return nil
	}
	q := strings.ToLower(strings.TrimSpace(query))

	var out []model.Restaurant
	for _, r := range restaurants {
		if !matchesQuery(r, q) {
			continue
		}
		if !matchesCategory(r, category) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesQuery(r model.Restaurant, q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(string(r.Cuisine)), q)
}

func matchesCategory(r model.Restaurant, category Category) bool {
	switch category {
	case CategoryAll:
		return true
	case CategoryVegOnly:
		// Vacuously true for an empty menu.
		for _, it := range r.Menu {
			if !it.Veg {
				return false
			}
		}
		return true
	default:
		return r.Cuisine == model.Cuisine(category)
	}
}
