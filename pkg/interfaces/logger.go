package interfaces

import "context"

// Logger defines the leveled logging contract expected by the indexer
// runtime. It mirrors the interface exposed by github.com/goliatone/go-logger
// so host applications can plug that package in without additional adapters.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider hands out loggers by name. The name becomes the logger
// namespace (postindex, postindex.posts, ...); implementations are free to
// return one shared instance for every name.
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is an optional extension for loggers that carry persistent
// structured fields. WithFields returns a logger that stamps the supplied
// fields onto every subsequent entry.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
