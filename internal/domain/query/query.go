// Package query filters a dataset by a filter selection and a free-text search.
package query

import (
	"strings"

	"github.com/okian/trailboard/internal/domain/category"
	"github.com/okian/trailboard/internal/domain/types"
)

// Selection holds the optional filter criteria. An empty field means "any".
type Selection struct {
	Gender      types.Gender `json:"gender,omitempty"`
	Nationality string       `json:"nationality,omitempty"`
	Category    string       `json:"category,omitempty"`
}

// IsZero reports whether no criterion is set.
func (s Selection) IsZero() bool {
	return s == Selection{}
}

// Matches reports whether r satisfies every active criterion of s.
func (s Selection) Matches(r types.Runner) bool {
	if s.Gender != "" && r.Gender != s.Gender {
		return false
	}
	if s.Nationality != "" && r.Nationality != s.Nationality {
		return false
	}
	if s.Category != "" && category.Of(r) != s.Category {
		return false
	}
	return true
}

// MatchesSearch reports whether the name or bib of r contains q,
// ignoring case. An empty q matches everything.
func MatchesSearch(r types.Runner, q string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(r.Bib), q)
}

// Filter returns the runners of ds that match sel and search, in dataset
// order. The input is never modified and the result is always a new slice.
func Filter(ds types.Dataset, sel Selection, search string) types.Dataset {
	out := make(types.Dataset, 0, len(ds))
	for _, r := range ds {
		if !sel.Matches(r) {
			continue
		}
		out = append(out, r)
	}
	if search == "" {
		return out
	}

	q := strings.ToLower(search)
	n := 0
	for _, r := range out {
		if MatchesSearch(r, q) {
			out[n] = r
			n++
		}
	}
	return out[:n]
}
