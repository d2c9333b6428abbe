package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-postindex/pkg/interfaces"
)

const (
	rootModule     = "postindex"
	postsModule    = "postindex.posts"
	indexModule    = "postindex.index"
	scaffoldModule = "postindex.scaffold"
)

const (
	fieldPostSlug = "slug"
	fieldPostPath = "post_path"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{"module": module})
}

// PostsLogger returns the logger namespace reserved for post loading and parsing.
func PostsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, postsModule)
}

// IndexLogger returns the logger namespace reserved for index builds.
func IndexLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, indexModule)
}

// ScaffoldLogger returns the logger namespace reserved for post scaffolding.
func ScaffoldLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, scaffoldModule)
}

// WithPostContext enriches the provided logger with the post slug and document
// path. Empty values are ignored.
func WithPostContext(logger interfaces.Logger, slug, path string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(slug); trimmed != "" {
		fields[fieldPostSlug] = trimmed
	}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldPostPath] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
