package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrDocumentFilenameInvalid indicates a post document filename that is not a
// bare name. Documents always live directly inside their post directory.
var ErrDocumentFilenameInvalid = errors.New("postindex config: document filename must not contain path separators")

// ErrIndexWorkersInvalid rejects negative worker counts; zero means one worker
// per CPU.
var ErrIndexWorkersInvalid = errors.New("postindex config: index workers must be zero or positive")
var ErrIndexWordsPerMinuteInvalid = errors.New("postindex config: index words per minute must be zero or positive")
var ErrCommandsTimeoutInvalid = errors.New("postindex config: command timeout must be zero or positive")
var ErrLoggingProviderRequired = errors.New("postindex config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("postindex config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("postindex config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("postindex config: logging format is invalid")

// Config aggregates behaviour toggles and adapter bindings for the module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled  bool
	Index    IndexConfig
	Scaffold ScaffoldConfig
	Commands CommandsConfig
	Features Features
	Logging  LoggingConfig
}

// IndexConfig captures behaviour for index builds.
type IndexConfig struct {
	// Filename is the document expected inside each post directory.
	Filename string
	// Output names the generated index artifact. Relative values resolve
	// against the posts root at build time.
	Output string
	// Workers bounds concurrent post loads; zero uses the CPU count.
	Workers int
	// WordsPerMinute is the assumed reading speed for reading-time estimates.
	WordsPerMinute int
}

// ScaffoldConfig captures behaviour for post scaffolding.
type ScaffoldConfig struct {
	// Filename is the document written into newly scaffolded post directories.
	Filename string
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled                bool
	AutoRegisterDispatcher bool
	Timeout                time.Duration
}

// Features toggles module functionality.
type Features struct {
	Logger bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for a conventional posts tree.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Index: IndexConfig{
			Filename:       "index.md",
			Output:         "index.json",
			Workers:        0,
			WordsPerMinute: 200,
		},
		Scaffold: ScaffoldConfig{
			Filename: "index.md",
		},
		Commands: CommandsConfig{
			Enabled: true,
		},
		Features: Features{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if name := strings.TrimSpace(cfg.Index.Filename); name != "" && strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %s", ErrDocumentFilenameInvalid, name)
	}
	if name := strings.TrimSpace(cfg.Scaffold.Filename); name != "" && strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %s", ErrDocumentFilenameInvalid, name)
	}
	if cfg.Index.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrIndexWorkersInvalid, cfg.Index.Workers)
	}
	if cfg.Index.WordsPerMinute < 0 {
		return fmt.Errorf("%w: %d", ErrIndexWordsPerMinuteInvalid, cfg.Index.WordsPerMinute)
	}
	if cfg.Commands.Timeout < 0 {
		return ErrCommandsTimeoutInvalid
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
