package service

import "errors"

// ErrNotStarted is returned when a query reaches the service before Start.
var ErrNotStarted = errors.New("service not started")
