package indexcmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-postindex/internal/commands"
	"github.com/goliatone/go-postindex/internal/index"
	"github.com/goliatone/go-postindex/pkg/interfaces"
)

// ErrServiceRequired is returned when a handler was wired without an index service.
var ErrServiceRequired = errors.New("index command: index service is required")

// BuildIndexHandler orchestrates index builds using the shared command handler foundation.
type BuildIndexHandler struct {
	inner *commands.Handler[BuildIndexCommand]
}

// NewBuildIndexHandler constructs a handler wired to the provided index service.
func NewBuildIndexHandler(service index.Service, logger interfaces.Logger, opts ...commands.HandlerOption[BuildIndexCommand]) *BuildIndexHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg BuildIndexCommand) error {
		if service == nil {
			return ErrServiceRequired
		}

		result, err := service.Build(ctx, index.BuildRequest{
			PostsRoot: msg.PostsRoot,
			Output:    msg.Output,
			DryRun:    msg.DryRun,
		})
		invokeCallback(msg.ResultCallback, ResultEnvelope{
			Result: result,
			Metadata: map[string]any{
				"operation": "build",
			},
		})
		if err != nil {
			return commands.WrapDomainError(err)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[BuildIndexCommand]{
		commands.WithLogger[BuildIndexCommand](baseLogger),
		commands.WithOperation[BuildIndexCommand]("index.build"),
		commands.WithMessageFields(func(msg BuildIndexCommand) map[string]any {
			fields := map[string]any{
				"posts_root": msg.PostsRoot,
			}
			if msg.Output != "" {
				fields["output"] = msg.Output
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[BuildIndexCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BuildIndexHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[BuildIndexCommand].
func (h *BuildIndexHandler) Execute(ctx context.Context, msg BuildIndexCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ValidateIndexHandler runs dry builds for verification workflows.
type ValidateIndexHandler struct {
	inner *commands.Handler[ValidateIndexCommand]
}

// NewValidateIndexHandler constructs a handler that validates a posts tree without writing.
func NewValidateIndexHandler(service index.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ValidateIndexCommand]) *ValidateIndexHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ValidateIndexCommand) error {
		if service == nil {
			return ErrServiceRequired
		}

		result, err := service.Validate(ctx, index.ValidateRequest{PostsRoot: msg.PostsRoot})
		invokeCallback(msg.ResultCallback, ResultEnvelope{
			Result: result,
			Metadata: map[string]any{
				"operation": "validate",
			},
		})
		if err != nil {
			return commands.WrapDomainError(err)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ValidateIndexCommand]{
		commands.WithLogger[ValidateIndexCommand](baseLogger),
		commands.WithOperation[ValidateIndexCommand]("index.validate"),
		commands.WithMessageFields(func(msg ValidateIndexCommand) map[string]any {
			return map[string]any{
				"posts_root": msg.PostsRoot,
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ValidateIndexCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ValidateIndexHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ValidateIndexCommand].
func (h *ValidateIndexHandler) Execute(ctx context.Context, msg ValidateIndexCommand) error {
	return h.inner.Execute(ctx, msg)
}

func invokeCallback(cb ResultCallback, envelope ResultEnvelope) {
	if cb == nil {
		return
	}
	cb(envelope)
}
