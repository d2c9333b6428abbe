package postindex

import "github.com/goliatone/go-postindex/internal/runtimeconfig"

var (
	ErrDocumentFilenameInvalid    = runtimeconfig.ErrDocumentFilenameInvalid
	ErrIndexWorkersInvalid        = runtimeconfig.ErrIndexWorkersInvalid
	ErrIndexWordsPerMinuteInvalid = runtimeconfig.ErrIndexWordsPerMinuteInvalid
	ErrCommandsTimeoutInvalid     = runtimeconfig.ErrCommandsTimeoutInvalid
	ErrLoggingProviderRequired    = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	IndexConfig    = runtimeconfig.IndexConfig
	ScaffoldConfig = runtimeconfig.ScaffoldConfig
	CommandsConfig = runtimeconfig.CommandsConfig
	Features       = runtimeconfig.Features
	LoggingConfig  = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
