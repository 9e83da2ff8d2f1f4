package loadtest

import (
	"fmt"

	service "github.com/okian/trailboard/internal/app"
	"github.com/okian/trailboard/internal/domain/category"
	"github.com/okian/trailboard/internal/domain/paging"
	"github.com/okian/trailboard/internal/domain/query"
)

// verifyPage checks a search response against the query that produced it:
// page arithmetic, contiguous ranks, and that every row satisfies the
// filters and the search text.
func verifyPage(q Query, p service.Page) error {
	if p.PageSize < 1 {
		return fmt.Errorf("page size %d must be positive", p.PageSize)
	}
	if len(p.Entries) > p.PageSize {
		return fmt.Errorf("%d entries exceed page size %d", len(p.Entries), p.PageSize)
	}
	if want := paging.PageCount(p.Total, p.PageSize); p.PageCount != want {
		return fmt.Errorf("page count %d, want %d for %d rows", p.PageCount, want, p.Total)
	}
	if p.Total == 0 {
		if len(p.Entries) != 0 {
			return fmt.Errorf("%d entries for an empty result", len(p.Entries))
		}
		return nil
	}
	if p.Page < 1 || p.Page > p.PageCount {
		return fmt.Errorf("page %d outside [1, %d]", p.Page, p.PageCount)
	}
	if p.Page < p.PageCount && len(p.Entries) != p.PageSize {
		return fmt.Errorf("inner page %d has %d entries, want %d", p.Page, len(p.Entries), p.PageSize)
	}

	sel := query.Selection{Gender: q.Gender, Nationality: q.Nationality, Category: q.Category}
	for i, e := range p.Entries {
		if want := paging.Rank(p.Page, p.PageSize, i); e.Rank != want {
			return fmt.Errorf("entry %d has rank %d, want %d", i, e.Rank, want)
		}
		if got := category.Of(e.Runner); e.Category != got {
			return fmt.Errorf("bib %s labelled %q, want %q", e.Runner.Bib, e.Category, got)
		}
		if !sel.Matches(e.Runner) {
			return fmt.Errorf("bib %s does not match filters %+v", e.Runner.Bib, sel)
		}
		if !query.MatchesSearch(e.Runner, q.Search) {
			return fmt.Errorf("bib %s does not match search %q", e.Runner.Bib, q.Search)
		}
	}
	return nil
}
