package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-postindex/internal/logging"
	"github.com/goliatone/go-postindex/pkg/interfaces"
)

// DefaultCommandTimeout bounds handler execution unless WithTimeout overrides it.
const DefaultCommandTimeout = 30 * time.Second

// EnsureContext substitutes context.Background for a nil context so handlers
// can always derive deadlines from it.
func EnsureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// EnsureLogger substitutes the shared no-op logger for a nil logger.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return logging.NoOp()
	}
	return logger
}
