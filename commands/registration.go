package commands

import (
	"errors"

	"github.com/goliatone/go-command/dispatcher"
	internalcommands "github.com/goliatone/go-postindex/internal/commands"
	indexcmd "github.com/goliatone/go-postindex/internal/commands/index"
	scaffoldcmd "github.com/goliatone/go-postindex/internal/commands/scaffold"
	"github.com/goliatone/go-postindex/internal/di"
	"github.com/goliatone/go-postindex/pkg/interfaces"
)

// CommandRegistry records command handlers so hosts can expose them via CLI tooling.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// RegistrationOptions configures how handlers are registered during construction.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	LoggerProvider interfaces.LoggerProvider
}

// RegistrationResult captures the constructed command handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// RegisterContainerCommands builds the command handlers exposed by the provided container and
// optionally registers them with registry/dispatcher integrations. When the configuration asks
// for dispatcher auto-registration and no dispatcher override is supplied, handlers are
// subscribed to go-command's process dispatcher so hosts can Dispatch the typed messages
// directly.
func RegisterContainerCommands(container *di.Container, opts RegistrationOptions) (*RegistrationResult, error) {
	if container == nil {
		return &RegistrationResult{}, nil
	}

	cfg := container.Config
	if !cfg.Commands.Enabled {
		return &RegistrationResult{}, nil
	}

	provider := opts.LoggerProvider
	if provider == nil {
		provider = container.LoggerProvider()
	}

	result := &RegistrationResult{
		Handlers:      make([]any, 0),
		Subscriptions: make([]CommandSubscription, 0),
	}

	var errs error

	register := func(handler any) {
		if handler == nil {
			return
		}
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}
	}

	loggerFor := func(module string) interfaces.Logger {
		return internalcommands.CommandLogger(provider, module)
	}

	autoSubscribe := opts.Dispatcher == nil && cfg.Commands.AutoRegisterDispatcher

	// Index commands.
	if service := container.IndexService(); service != nil {
		indexLogger := loggerFor("index")

		buildOpts := []internalcommands.HandlerOption[indexcmd.BuildIndexCommand]{}
		validateOpts := []internalcommands.HandlerOption[indexcmd.ValidateIndexCommand]{}
		if timeout := cfg.Commands.Timeout; timeout > 0 {
			buildOpts = append(buildOpts, internalcommands.WithTimeout[indexcmd.BuildIndexCommand](timeout))
			validateOpts = append(validateOpts, internalcommands.WithTimeout[indexcmd.ValidateIndexCommand](timeout))
		}

		buildHandler := indexcmd.NewBuildIndexHandler(service, indexLogger, buildOpts...)
		register(buildHandler)
		if autoSubscribe {
			result.Subscriptions = append(result.Subscriptions, dispatcher.SubscribeCommand(buildHandler))
		}

		validateHandler := indexcmd.NewValidateIndexHandler(service, indexLogger, validateOpts...)
		register(validateHandler)
		if autoSubscribe {
			result.Subscriptions = append(result.Subscriptions, dispatcher.SubscribeCommand(validateHandler))
		}
	}

	// Scaffold commands.
	if service := container.ScaffoldService(); service != nil {
		createOpts := []internalcommands.HandlerOption[scaffoldcmd.CreatePostCommand]{}
		if timeout := cfg.Commands.Timeout; timeout > 0 {
			createOpts = append(createOpts, internalcommands.WithTimeout[scaffoldcmd.CreatePostCommand](timeout))
		}

		createHandler := scaffoldcmd.NewCreatePostHandler(service, loggerFor("posts"), createOpts...)
		register(createHandler)
		if autoSubscribe {
			result.Subscriptions = append(result.Subscriptions, dispatcher.SubscribeCommand(createHandler))
		}
	}

	if errs != nil && len(result.Handlers) == 0 {
		return result, errs
	}

	if len(result.Handlers) == 0 {
		return result, errors.New("no command handlers registered; ensure services are configured")
	}

	return result, errs
}
