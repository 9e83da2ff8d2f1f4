// Package browser holds the state of one interactive browsing session:
// the selected distance, its dataset, the filter selection, the search
// text and the current page. Front ends feed it events and render View.
package browser

import (
	"context"
	"errors"

	"github.com/okian/trailboard/internal/domain/category"
	"github.com/okian/trailboard/internal/domain/facets"
	"github.com/okian/trailboard/internal/domain/paging"
	"github.com/okian/trailboard/internal/domain/query"
	"github.com/okian/trailboard/internal/domain/types"
	"github.com/okian/trailboard/pkg/logger"
)

// LoadState tracks the dataset fetch of the current distance.
type LoadState int

const (
	Loading LoadState = iota
	Loaded
	Failed
)

// Status classifies what a view shows.
type Status int

const (
	StatusLoading Status = iota
	StatusNoData
	StatusNoMatches
	StatusPopulated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusNoData:
		return "no_data"
	case StatusNoMatches:
		return "no_matches"
	case StatusPopulated:
		return "populated"
	}
	return "unknown"
}

// ErrStaleLoad is returned when a load result arrives for a distance that
// is no longer selected.
var ErrStaleLoad = errors.New("stale load result")

// View is a snapshot of what to render.
type View struct {
	Status    Status
	Distance  types.Distance
	Rows      []types.Entry
	Total     int
	Page      int
	PageCount int
	Window    []paging.Item
	Facets    types.Facets
	Selection query.Selection
	Search    string
	Err       error
}

// Session is the single owner of browsing state. It is not safe for
// concurrent use; front ends serialise events through their own loop.
type Session struct {
	distance  types.Distance
	state     LoadState
	dataset   types.Dataset
	facets    types.Facets
	selection query.Selection
	search    string
	page      int
	pageSize  int
	err       error

	logger logger.Logger
}

// Option applies a configuration option to a Session.
type Option func(*Session)

// WithLogger sets the logger used to report load failures.
func WithLogger(l logger.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPageSize sets the rows per page.
func WithPageSize(size int) Option {
	return func(s *Session) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// New returns a session waiting for its first load of d. An empty d
// stands for the default dataset.
func New(d types.Distance, opts ...Option) *Session {
	s := &Session{
		distance: d,
		state:    Loading,
		page:     1,
		pageSize: paging.DefaultPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("browser")
	}
	return s
}

// Distance returns the selected distance.
func (s *Session) Distance() types.Distance { return s.distance }

// State returns the load state of the selected distance.
func (s *Session) State() LoadState { return s.state }

// BeginLoad switches to d and drops the previous dataset. Filters and the
// search text are kept; the page goes back to 1.
func (s *Session) BeginLoad(d types.Distance) {
	s.distance = d
	s.state = Loading
	s.dataset = nil
	s.facets = types.Facets{}
	s.err = nil
	s.page = 1
}

// Loaded installs the dataset fetched for d.
func (s *Session) Loaded(d types.Distance, ds types.Dataset) error {
	if d != s.distance {
		return ErrStaleLoad
	}
	s.state = Loaded
	s.dataset = ds
	s.facets = facets.Extract(ds)
	s.err = nil
	s.page = 1
	return nil
}

// LoadFailed records a failed fetch for d. The dataset stays empty and no
// retry is attempted.
func (s *Session) LoadFailed(ctx context.Context, d types.Distance, err error) error {
	if d != s.distance {
		return ErrStaleLoad
	}
	s.logger.Error(ctx, "dataset load failed",
		logger.String("distance", string(d)),
		logger.Error(err),
	)
	s.state = Failed
	s.dataset = nil
	s.facets = types.Facets{}
	s.err = err
	s.page = 1
	return nil
}

// Selection returns the active filters.
func (s *Session) Selection() query.Selection { return s.selection }

// Search returns the search text.
func (s *Session) Search() string { return s.search }

// Page returns the current page.
func (s *Session) Page() int { return s.page }

// SetGender filters by gender; an empty value clears the filter.
func (s *Session) SetGender(g types.Gender) {
	s.selection.Gender = g
	s.page = 1
}

// SetNationality filters by nationality; an empty value clears the filter.
func (s *Session) SetNationality(n string) {
	s.selection.Nationality = n
	s.page = 1
}

// SetCategory filters by category; an empty value clears the filter.
func (s *Session) SetCategory(c string) {
	s.selection.Category = c
	s.page = 1
}

// ClearFilters drops every filter criterion. The search text is kept.
func (s *Session) ClearFilters() {
	s.selection = query.Selection{}
	s.page = 1
}

// SetSearch replaces the search text.
func (s *Session) SetSearch(q string) {
	s.search = q
	s.page = 1
}

// CycleGender steps the gender filter through any, M, F.
func (s *Session) CycleGender() {
	switch s.selection.Gender {
	case "":
		s.SetGender(types.Male)
	case types.Male:
		s.SetGender(types.Female)
	default:
		s.SetGender("")
	}
}

// CycleNationality steps the nationality filter through the facet values.
func (s *Session) CycleNationality() {
	s.SetNationality(next(s.facets.Nationalities, s.selection.Nationality))
}

// CycleCategory steps the category filter through the facet values.
func (s *Session) CycleCategory() {
	s.SetCategory(next(s.facets.Categories, s.selection.Category))
}

// next returns the option after cur, wrapping to "" (any) after the last.
func next(options []string, cur string) string {
	if cur == "" {
		if len(options) == 0 {
			return ""
		}
		return options[0]
	}
	for i, o := range options {
		if o == cur && i+1 < len(options) {
			return options[i+1]
		}
	}
	return ""
}

// SetPage moves to page p, clamped to the pages of the current result.
func (s *Session) SetPage(p int) {
	s.page = paging.ClampPage(p, s.pageCount())
}

// NextPage moves forward one page unless already on the last.
func (s *Session) NextPage() {
	s.page = paging.Next(s.page, s.pageCount())
}

// PrevPage moves back one page unless already on the first.
func (s *Session) PrevPage() {
	s.page = paging.Prev(s.page)
}

func (s *Session) matches() types.Dataset {
	return query.Filter(s.dataset, s.selection, s.search)
}

func (s *Session) pageCount() int {
	return paging.PageCount(len(s.matches()), s.pageSize)
}

// View derives the current screen from the session state.
func (s *Session) View() View {
	v := View{
		Distance:  s.distance,
		Page:      s.page,
		Facets:    s.facets,
		Selection: s.selection,
		Search:    s.search,
		Err:       s.err,
	}

	switch {
	case s.state == Loading:
		v.Status = StatusLoading
		return v
	case len(s.dataset) == 0:
		v.Status = StatusNoData
		return v
	}

	matched := s.matches()
	v.Total = len(matched)
	if v.Total == 0 {
		v.Status = StatusNoMatches
		return v
	}

	v.Status = StatusPopulated
	v.PageCount = paging.PageCount(v.Total, s.pageSize)
	v.Page = paging.ClampPage(s.page, v.PageCount)
	v.Window = paging.Window(v.Page, v.PageCount)

	rows := paging.Paginate(matched, v.Page, s.pageSize)
	v.Rows = make([]types.Entry, len(rows))
	for i, r := range rows {
		v.Rows[i] = types.Entry{
			Rank:     paging.Rank(v.Page, s.pageSize, i),
			Category: category.Of(r),
			Runner:   r,
		}
	}
	return v
}
