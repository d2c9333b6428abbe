package commands

import (
	"strings"

	"github.com/goliatone/go-postindex/internal/logging"
	"github.com/goliatone/go-postindex/pkg/interfaces"
)

const commandModuleRoot = "postindex.commands"

// CommandLogger returns a logger scoped under the commands namespace. The
// module segment groups handlers ("index" for builds, "posts" for scaffolding)
// and defaults to "core" when blank.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	return logging.WithFields(
		logging.ModuleLogger(provider, commandModuleRoot+"."+name),
		map[string]any{
			"component":      "command",
			"command_module": name,
		},
	)
}
