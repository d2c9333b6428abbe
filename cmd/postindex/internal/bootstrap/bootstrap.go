package bootstrap

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-postindex"
	"github.com/goliatone/go-postindex/internal/di"
	"github.com/goliatone/go-postindex/internal/logging"
	"github.com/goliatone/go-postindex/pkg/interfaces"
)

// Options captures configuration for postindex CLI bootstraps.
type Options struct {
	Filename       string
	Workers        int
	WordsPerMinute int
	LogLevel       string
	LoggerProvider interfaces.LoggerProvider
}

// Resources bundles the module facade with the services the CLI drives.
type Resources struct {
	Module   *postindex.Module
	Index    postindex.IndexService
	Scaffold postindex.ScaffoldService
	Logger   interfaces.Logger
}

// BuildModule constructs a postindex module configured for CLI operations.
// A non-empty LogLevel enables console logging; the default build stays
// silent so generated output can be piped cleanly.
func BuildModule(opts Options) (*Resources, error) {
	cfg := postindex.DefaultConfig()
	if trimmed := strings.TrimSpace(opts.Filename); trimmed != "" {
		cfg.Index.Filename = trimmed
		cfg.Scaffold.Filename = trimmed
	}
	if opts.Workers > 0 {
		cfg.Index.Workers = opts.Workers
	}
	if opts.WordsPerMinute > 0 {
		cfg.Index.WordsPerMinute = opts.WordsPerMinute
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Features.Logger = true
		cfg.Logging.Provider = "console"
		cfg.Logging.Level = level
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := postindex.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise postindex module: %w", err)
	}

	indexSvc := module.Index()
	if indexSvc == nil {
		return nil, fmt.Errorf("index service not configured; ensure the module is enabled")
	}
	scaffoldSvc := module.Scaffold()
	if scaffoldSvc == nil {
		return nil, fmt.Errorf("scaffold service not configured; ensure the module is enabled")
	}

	logger := logging.ModuleLogger(module.Container().LoggerProvider(), "postindex.cli")

	return &Resources{
		Module:   module,
		Index:    indexSvc,
		Scaffold: scaffoldSvc,
		Logger:   logger,
	}, nil
}

// SplitTags parses a comma separated tag list into a trimmed slice.
func SplitTags(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}
