// Package facets derives the filter values offered for a dataset.
package facets

import (
	"sort"

	"github.com/okian/trailboard/internal/domain/category"
	"github.com/okian/trailboard/internal/domain/types"
)

// Extract returns the distinct, non-empty nationalities and categories in ds,
// each sorted ascending. Call it again whenever the dataset changes.
func Extract(ds types.Dataset) types.Facets {
	nationalities := make(map[string]struct{})
	categories := make(map[string]struct{})
	for _, r := range ds {
		nationalities[r.Nationality] = struct{}{}
		categories[category.Of(r)] = struct{}{}
	}
	return types.Facets{
		Nationalities: sortedKeys(nationalities),
		Categories:    sortedKeys(categories),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		if k == "" {
			continue
		}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
