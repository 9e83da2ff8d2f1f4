package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/trailboard/internal/adapters/repository"
	"github.com/okian/trailboard/internal/domain/types"
	"github.com/okian/trailboard/pkg/logger"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// Body messages for service errors. Causes are logged, never sent.
const (
	InvalidDistanceMessage = "Invalid distance parameter. Use '75k' or '55k'."
	NotFoundMessage        = "Runner data not found."
	LoadFailedMessage      = "Failed to load runner data."
	InternalMessage        = "Internal server error."
)

// Error codes written in the JSON error body.
const (
	codeBadRequest      = "bad_request"
	codeInvalidDistance = "invalid_distance"
	codeNotFound        = "not_found"
	codeLoadFailed      = "load_failed"
	codeInternal        = "internal_error"
)

// writeServiceError maps an error from the service layer to a response.
func writeServiceError(ctx context.Context, log logger.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, types.ErrUnsupportedDistance):
		writeError(w, http.StatusBadRequest, codeInvalidDistance, errors.New(InvalidDistanceMessage))
	case errors.Is(err, repository.ErrDatasetNotFound):
		log.Warn(ctx, "dataset missing", logger.Error(err))
		writeError(w, http.StatusNotFound, codeNotFound, errors.New(NotFoundMessage))
	case errors.Is(err, repository.ErrLoad):
		log.Error(ctx, "dataset load failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, codeLoadFailed, errors.New(LoadFailedMessage))
	default:
		log.Error(ctx, "request failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternal, errors.New(InternalMessage))
	}
}
