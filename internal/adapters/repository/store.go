// Package repository provides the runner datasets keyed by race distance.
package repository

import (
	"context"

	"github.com/okian/trailboard/internal/domain/types"
)

// Dataset file names, shared by the embedded and on-disk stores.
const defaultFile = "runners.json"

func fileFor(d types.Distance) (string, error) {
	switch d {
	case types.Distance75K, types.Distance55K:
		return "runners-" + string(d) + ".json", nil
	}
	return "", unsupported(d)
}

// Store provides read-only access to runner datasets.
type Store interface {
	// Dataset returns the runners of one distance in source order.
	// Returns ErrUnsupportedDistance for distances outside the closed set,
	// ErrDatasetNotFound when the source is missing and ErrLoad when it
	// cannot be read or decoded.
	Dataset(ctx context.Context, d types.Distance) (types.Dataset, error)

	// Default returns the dataset served when no distance is selected.
	Default(ctx context.Context) (types.Dataset, error)

	// Counts returns the number of runners per loaded dataset, keyed by
	// distance ("default" for the unparameterised dataset).
	Counts(ctx context.Context) map[string]int
}
