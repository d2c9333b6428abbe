package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-postindex/internal/logging"
	"github.com/goliatone/go-postindex/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// TelemetryStatus classifies how a command execution ended.
type TelemetryStatus string

const (
	// TelemetryStatusSuccess marks executions that returned no error.
	TelemetryStatusSuccess TelemetryStatus = "success"
	// TelemetryStatusFailed marks executions where the wrapped function errored.
	TelemetryStatusFailed TelemetryStatus = "failed"
	// TelemetryStatusContextError marks executions cut short by cancellation
	// or a deadline.
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo is the outcome record handed to telemetry callbacks after
// every execution, successful or not.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Telemetry is the optional per-execution outcome callback. Handlers call it
// exactly once per Execute.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs outcomes through the supplied logger: success at info
// level, failures at error level with the raw execution error attached.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	if logger == nil {
		logger = logging.NoOp()
	}
	return func(_ context.Context, _ T, info TelemetryInfo) {
		entry := logging.WithFields(logger, info.Fields)
		args := []any{
			"status", string(info.Status),
			"duration_ms", info.Duration.Milliseconds(),
		}
		if info.Status == TelemetryStatusSuccess {
			entry.Info("command.execute.success", args...)
			return
		}
		event := "command.execute.failed"
		if info.Status == TelemetryStatusContextError {
			event = "command.execute.context_error"
		}
		entry.Error(event, append(args, "error", info.Error)...)
	}
}
