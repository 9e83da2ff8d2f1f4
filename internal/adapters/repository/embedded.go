package repository

import (
	"context"
	"embed"

	"github.com/okian/trailboard/internal/domain/types"
	"github.com/okian/trailboard/pkg/logger"
	"github.com/okian/trailboard/pkg/metrics"
)

//go:embed data/*.json
var dataFS embed.FS

const defaultLabel = "default"

// EmbeddedStore serves the datasets compiled into the binary. They are
// decoded once at construction and shared read-only afterwards.
type EmbeddedStore struct {
	byDistance map[types.Distance]types.Dataset
	fallback   types.Dataset
}

var _ Store = (*EmbeddedStore)(nil)

// NewEmbeddedStore decodes the embedded datasets.
func NewEmbeddedStore(ctx context.Context, opts ...Option) (*EmbeddedStore, error) {
	s := newSettings(opts)
	store := &EmbeddedStore{byDistance: make(map[types.Distance]types.Dataset)}

	for _, d := range types.Distances() {
		name, err := fileFor(d)
		if err != nil {
			return nil, err
		}
		ds, err := loadEmbedded(ctx, s.logger, string(d), name)
		if err != nil {
			return nil, err
		}
		store.byDistance[d] = ds
	}

	ds, err := loadEmbedded(ctx, s.logger, defaultLabel, defaultFile)
	if err != nil {
		return nil, err
	}
	store.fallback = ds

	s.logger.Info(ctx, "embedded datasets loaded",
		logger.Int("75k", len(store.byDistance[types.Distance75K])),
		logger.Int("55k", len(store.byDistance[types.Distance55K])),
		logger.Int("default", len(store.fallback)),
	)
	return store, nil
}

func loadEmbedded(ctx context.Context, log logger.Logger, label, name string) (types.Dataset, error) {
	f, err := dataFS.Open("data/" + name)
	if err != nil {
		metrics.RecordDatasetLoad(label, "not_found")
		return nil, notFound(name, err)
	}
	defer f.Close()

	ds, err := decode(ctx, log, label, f)
	if err != nil {
		metrics.RecordDatasetLoad(label, "error")
		return nil, err
	}
	metrics.RecordDatasetLoad(label, "ok")
	metrics.UpdateDatasetRunners(label, len(ds))
	return ds, nil
}

// Dataset returns the embedded dataset for d.
func (s *EmbeddedStore) Dataset(_ context.Context, d types.Distance) (types.Dataset, error) {
	ds, ok := s.byDistance[d]
	if !ok {
		return nil, unsupported(d)
	}
	return ds, nil
}

// Default returns the embedded default dataset.
func (s *EmbeddedStore) Default(_ context.Context) (types.Dataset, error) {
	return s.fallback, nil
}

// Counts returns the runner count of every embedded dataset.
func (s *EmbeddedStore) Counts(_ context.Context) map[string]int {
	out := make(map[string]int, len(s.byDistance)+1)
	for d, ds := range s.byDistance {
		out[string(d)] = len(ds)
	}
	out[defaultLabel] = len(s.fallback)
	return out
}
