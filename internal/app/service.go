// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/trailboard/internal/adapters/repository"
	"github.com/okian/trailboard/internal/domain/category"
	"github.com/okian/trailboard/internal/domain/facets"
	"github.com/okian/trailboard/internal/domain/paging"
	"github.com/okian/trailboard/internal/domain/query"
	"github.com/okian/trailboard/internal/domain/types"
	"github.com/okian/trailboard/pkg/logger"
	"github.com/okian/trailboard/pkg/metrics"
)

const defaultMaxPageSize = 100

// SearchParams describes one filtered page request.
type SearchParams struct {
	query.Selection

	// Query is the free-text search over name and bib.
	Query string
	// Page is 1-based; out-of-range values are clamped.
	Page int
	// PageSize falls back to the service default when zero.
	PageSize int
}

// Page is one page of a filtered dataset.
type Page struct {
	Entries   []types.Entry `json:"entries"`
	Total     int           `json:"total"`
	Page      int           `json:"page"`
	PageSize  int           `json:"page_size"`
	PageCount int           `json:"page_count"`
	Window    []paging.Item `json:"window"`
	Facets    types.Facets  `json:"facets"`
}

// Service implements the API dependencies for the runner browser.
type Service struct {
	mu sync.RWMutex

	store repository.Store

	// Configuration
	pageSize    int
	maxPageSize int
	dataDir     string
	source      string

	// State
	started  bool
	searches atomic.Int64

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore sets the dataset store. It takes precedence over WithDataDir.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithDataDir serves datasets from files in dir instead of the embedded copies.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		s.dataDir = dir
	}
}

// WithPageSize sets the default number of rows per page.
func WithPageSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// WithMaxPageSize caps the page size a caller may request.
func WithMaxPageSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.maxPageSize = size
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		pageSize:    paging.DefaultPageSize,
		maxPageSize: defaultMaxPageSize,
	}

	for _, opt := range opts {
		opt(s)
	}
	if s.maxPageSize < s.pageSize {
		s.maxPageSize = s.pageSize
	}

	return s
}

// Start opens the dataset store.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting runner service...")

	switch {
	case s.store != nil:
		s.source = "custom"
	case s.dataDir != "":
		store, err := repository.NewFileStore(s.dataDir, repository.WithLogger(s.logger.Named("repository")))
		if err != nil {
			return err
		}
		s.store = store
		s.source = "file"
	default:
		store, err := repository.NewEmbeddedStore(ctx, repository.WithLogger(s.logger.Named("repository")))
		if err != nil {
			return err
		}
		s.store = store
		s.source = "embedded"
	}

	s.started = true
	s.logger.Info(ctx, "runner service started",
		logger.String("source", s.source),
		logger.Int("pageSize", s.pageSize),
		logger.Int("maxPageSize", s.maxPageSize),
	)

	return nil
}

// Stop shuts the service down. Queries fail with ErrNotStarted afterwards.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "runner service stopped")
}

func (s *Service) activeStore() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store, nil
}

// Runners returns the dataset of the named distance.
func (s *Service) Runners(ctx context.Context, distance string) (types.Dataset, error) {
	d, err := types.ParseDistance(distance)
	if err != nil {
		return nil, err
	}
	store, err := s.activeStore()
	if err != nil {
		return nil, err
	}
	return store.Dataset(ctx, d)
}

// DefaultRunners returns the dataset served when no distance is given.
func (s *Service) DefaultRunners(ctx context.Context) (types.Dataset, error) {
	store, err := s.activeStore()
	if err != nil {
		return nil, err
	}
	return store.Default(ctx)
}

// Facets returns the nationality and category options of a distance.
func (s *Service) Facets(ctx context.Context, distance string) (types.Facets, error) {
	ds, err := s.Runners(ctx, distance)
	if err != nil {
		return types.Facets{}, err
	}
	metrics.RecordFacetExtraction(distance)
	return facets.Extract(ds), nil
}

// Search filters the dataset of a distance and returns the requested page.
func (s *Service) Search(ctx context.Context, distance string, p SearchParams) (Page, error) {
	start := time.Now()

	ds, err := s.Runners(ctx, distance)
	if err != nil {
		return Page{}, err
	}

	size := p.PageSize
	if size <= 0 {
		size = s.pageSize
	}
	if size > s.maxPageSize {
		size = s.maxPageSize
	}

	matched := query.Filter(ds, p.Selection, p.Query)
	count := paging.PageCount(len(matched), size)
	current := paging.ClampPage(p.Page, count)
	rows := paging.Paginate(matched, current, size)

	entries := make([]types.Entry, len(rows))
	for i, r := range rows {
		entries[i] = types.Entry{
			Rank:     paging.Rank(current, size, i),
			Category: category.Of(r),
			Runner:   r,
		}
	}

	s.searches.Add(1)
	metrics.RecordSearch(distance, len(matched), float64(time.Since(start).Microseconds())/1000)

	s.logger.Debug(ctx, "search served",
		logger.String("distance", distance),
		logger.Any("selection", p.Selection),
		logger.String("query", p.Query),
		logger.Int("matched", len(matched)),
		logger.Int("page", current),
	)

	return Page{
		Entries:   entries,
		Total:     len(matched),
		Page:      current,
		PageSize:  size,
		PageCount: count,
		Window:    paging.Window(current, count),
		Facets:    facets.Extract(ds),
	}, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"pageSize":    s.pageSize,
		"maxPageSize": s.maxPageSize,
		"searches":    s.searches.Load(),
	}

	if s.started {
		stats["source"] = s.source
		stats["datasets"] = s.store.Counts(context.Background())
	}

	return stats
}
