package di

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-postindex/internal/index"
	"github.com/goliatone/go-postindex/internal/logging"
	"github.com/goliatone/go-postindex/internal/logging/console"
	"github.com/goliatone/go-postindex/internal/logging/gologger"
	"github.com/goliatone/go-postindex/internal/runtimeconfig"
	"github.com/goliatone/go-postindex/internal/scaffold"
	"github.com/goliatone/go-postindex/pkg/interfaces"
)

// Container wires module dependencies.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	clock          func() time.Time

	indexSvc    index.Service
	scaffoldSvc scaffold.Service
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the logger provider resolved from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithClock overrides the timestamp source used when scaffolding posts.
func WithClock(now func() time.Time) Option {
	return func(c *Container) {
		c.clock = now
	}
}

// WithIndexService overrides the default index service binding.
func WithIndexService(svc index.Service) Option {
	return func(c *Container) {
		c.indexSvc = svc
	}
}

// WithScaffoldService overrides the default scaffold service binding.
func WithScaffoldService(svc scaffold.Service) Option {
	return func(c *Container) {
		c.scaffoldSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureServices()

	return c, nil
}

// configureLoggerProvider resolves the provider named by the logging config.
// Services tolerate a nil provider, so a disabled logging feature leaves the
// field unset and every module logger degrades to a no-op.
func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	if !c.Config.Features.Logger {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return fmt.Errorf("di: configure go-logger provider: %w", err)
		}
		c.loggerProvider = provider
	default:
		c.loggerProvider = console.NewProvider(console.Options{
			MinLevel: consoleLevel(c.Config.Logging.Level),
		})
	}
	return nil
}

func (c *Container) configureServices() {
	if c.indexSvc == nil {
		c.indexSvc = index.NewService(index.Config{
			Filename:       c.Config.Index.Filename,
			OutputFilename: c.Config.Index.Output,
			Workers:        c.Config.Index.Workers,
			WordsPerMinute: c.Config.Index.WordsPerMinute,
			Logger:         logging.IndexLogger(c.loggerProvider),
			PostsLogger:    logging.PostsLogger(c.loggerProvider),
		})
		logging.IndexLogger(c.loggerProvider).Debug("index.service.configured",
			"output", c.Config.Index.Output,
			"workers", c.Config.Index.Workers,
			"words_per_minute", c.Config.Index.WordsPerMinute,
		)
	}

	if c.scaffoldSvc == nil {
		scaffoldCfg := scaffold.Config{
			Filename: c.Config.Scaffold.Filename,
			Logger:   logging.ScaffoldLogger(c.loggerProvider),
		}
		if c.clock != nil {
			scaffoldCfg.Now = c.clock
		}
		c.scaffoldSvc = scaffold.NewService(scaffoldCfg)
		logging.ScaffoldLogger(c.loggerProvider).Debug("scaffold.service.configured",
			"filename", c.Config.Scaffold.Filename,
		)
	}
}

// IndexService returns the configured index builder.
func (c *Container) IndexService() index.Service {
	return c.indexSvc
}

// ScaffoldService returns the configured post scaffolder.
func (c *Container) ScaffoldService() scaffold.Service {
	return c.scaffoldSvc
}

// LoggerProvider exposes the resolved provider so hosts can scope additional
// loggers onto the same sink. Nil when the logging feature is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// consoleLevel translates the configured level name, leaving the console
// default in place for names it cannot parse.
func consoleLevel(level string) *console.Level {
	parsed, ok := console.ParseLevel(level)
	if !ok {
		return nil
	}
	return &parsed
}
