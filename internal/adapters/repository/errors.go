package repository

import (
	"errors"
	"fmt"

	"github.com/okian/trailboard/internal/domain/types"
)

// Sentinel kinds for dataset errors.
var (
	ErrUnsupportedDistance = types.ErrUnsupportedDistance
	ErrDatasetNotFound     = errors.New("dataset not found")
	ErrLoad                = errors.New("dataset load failed")
)

func unsupported(d types.Distance) error {
	return fmt.Errorf("%w: %q", ErrUnsupportedDistance, string(d))
}
