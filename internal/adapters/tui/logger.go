package tui

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/okian/trailboard/pkg/logger"
)

// charmLogger adapts a charmbracelet logger to logger.Logger so the
// browsing session and the HTTP client can log while the terminal is
// owned by the program.
type charmLogger struct {
	l *log.Logger
}

// NewLogger wraps l.
func NewLogger(l *log.Logger) logger.Logger {
	return &charmLogger{l: l}
}

func (c *charmLogger) Named(name string) logger.Logger {
	return &charmLogger{l: c.l.WithPrefix(name)}
}

func (c *charmLogger) Info(ctx context.Context, msg string, fields ...logger.Field) {
	c.l.Info(msg, keyvals(ctx, fields)...)
}

func (c *charmLogger) Error(ctx context.Context, msg string, fields ...logger.Field) {
	c.l.Error(msg, keyvals(ctx, fields)...)
}

func (c *charmLogger) Debug(ctx context.Context, msg string, fields ...logger.Field) {
	c.l.Debug(msg, keyvals(ctx, fields)...)
}

func (c *charmLogger) Warn(ctx context.Context, msg string, fields ...logger.Field) {
	c.l.Warn(msg, keyvals(ctx, fields)...)
}

func keyvals(ctx context.Context, fields []logger.Field) []interface{} {
	kv := make([]interface{}, 0, 2*len(fields)+2)
	for _, f := range fields {
		kv = append(kv, f.Key, f.Value)
	}
	if id := logger.RequestID(ctx); id != "" {
		kv = append(kv, "request_id", id)
	}
	return kv
}
