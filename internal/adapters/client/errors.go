package client

import (
	"errors"
	"fmt"
)

// Sentinel kinds for client errors.
var (
	ErrInvalidDistance = errors.New("invalid distance")
	ErrLoad            = errors.New("load failed")
)

// ValidationError is the server's rejection of a distance.
type ValidationError struct {
	Status  int
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s (status %d, code %s)", e.Message, e.Status, e.Code)
}

// Unwrap lets errors.Is match ErrInvalidDistance.
func (e *ValidationError) Unwrap() error { return ErrInvalidDistance }
