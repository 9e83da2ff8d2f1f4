package repository

import "github.com/okian/trailboard/pkg/logger"

type settings struct {
	logger logger.Logger
}

// Option applies a configuration option to a store.
type Option func(*settings)

// WithLogger sets the logger used to report load problems.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

func newSettings(opts []Option) settings {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = logger.Named("repository")
	}
	return s
}
