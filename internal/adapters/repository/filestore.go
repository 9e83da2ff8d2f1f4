package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/okian/trailboard/internal/domain/types"
	"github.com/okian/trailboard/pkg/logger"
	"github.com/okian/trailboard/pkg/metrics"
)

// FileStore reads datasets from a directory on every request, so the files
// can be replaced without a restart.
type FileStore struct {
	dir    string
	logger logger.Logger

	mu     sync.RWMutex
	counts map[string]int
}

var _ Store = (*FileStore)(nil)

// NewFileStore returns a store reading runners*.json from dir.
func NewFileStore(dir string, opts ...Option) (*FileStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: data dir %s: %w", ErrDatasetNotFound, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDatasetNotFound, dir)
	}
	s := newSettings(opts)
	return &FileStore{dir: dir, logger: s.logger, counts: make(map[string]int)}, nil
}

// Dataset reads the dataset file for d.
func (s *FileStore) Dataset(ctx context.Context, d types.Distance) (types.Dataset, error) {
	name, err := fileFor(d)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, string(d), name)
}

// Default reads the default dataset file.
func (s *FileStore) Default(ctx context.Context) (types.Dataset, error) {
	return s.load(ctx, defaultLabel, defaultFile)
}

// Counts returns the runner counts observed by the last successful reads.
func (s *FileStore) Counts(_ context.Context) map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int, len(s.counts))
	for k, v := range s.counts {
		out[k] = v
	}
	return out
}

func (s *FileStore) load(ctx context.Context, label, name string) (types.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	path := filepath.Join(s.dir, name)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			metrics.RecordDatasetLoad(label, "not_found")
			return nil, notFound(path, err)
		}
		metrics.RecordDatasetLoad(label, "error")
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}
	defer f.Close()

	ds, err := decode(ctx, s.logger, label, f)
	if err != nil {
		metrics.RecordDatasetLoad(label, "error")
		s.logger.Error(ctx, "dataset decode failed", logger.String("path", path), logger.Error(err))
		return nil, err
	}

	s.mu.Lock()
	s.counts[label] = len(ds)
	s.mu.Unlock()

	metrics.RecordDatasetLoad(label, "ok")
	metrics.UpdateDatasetRunners(label, len(ds))
	s.logger.Debug(ctx, "dataset read", logger.String("path", path), logger.Int("runners", len(ds)))
	return ds, nil
}

func notFound(name string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrDatasetNotFound, name, err)
}
