package scaffoldcmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-postindex/internal/commands"
	"github.com/goliatone/go-postindex/internal/scaffold"
	"github.com/goliatone/go-postindex/pkg/interfaces"
)

// ErrServiceRequired is returned when a handler was wired without a scaffold service.
var ErrServiceRequired = errors.New("scaffold command: scaffold service is required")

// CreatePostHandler scaffolds posts using the shared command handler foundation.
type CreatePostHandler struct {
	inner *commands.Handler[CreatePostCommand]
}

// NewCreatePostHandler constructs a handler wired to the provided scaffold service.
func NewCreatePostHandler(service scaffold.Service, logger interfaces.Logger, opts ...commands.HandlerOption[CreatePostCommand]) *CreatePostHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg CreatePostCommand) error {
		if service == nil {
			return ErrServiceRequired
		}

		result, err := service.Create(ctx, scaffold.CreateRequest{
			PostsRoot:   msg.PostsRoot,
			Title:       msg.Title,
			Description: msg.Description,
			Tags:        msg.Tags,
			Slug:        msg.Slug,
		})
		if err != nil {
			return err
		}
		invokeCallback(msg.ResultCallback, ResultEnvelope{
			Result: result,
			Metadata: map[string]any{
				"operation": "create",
			},
		})
		return nil
	}

	handlerOpts := []commands.HandlerOption[CreatePostCommand]{
		commands.WithLogger[CreatePostCommand](baseLogger),
		commands.WithOperation[CreatePostCommand]("posts.create"),
		commands.WithMessageFields(func(msg CreatePostCommand) map[string]any {
			fields := map[string]any{
				"posts_root": msg.PostsRoot,
			}
			if msg.Slug != "" {
				fields["slug"] = msg.Slug
			}
			if len(msg.Tags) > 0 {
				fields["tags"] = len(msg.Tags)
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[CreatePostCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CreatePostHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[CreatePostCommand].
func (h *CreatePostHandler) Execute(ctx context.Context, msg CreatePostCommand) error {
	return h.inner.Execute(ctx, msg)
}

func invokeCallback(cb ResultCallback, envelope ResultEnvelope) {
	if cb == nil {
		return
	}
	cb(envelope)
}
