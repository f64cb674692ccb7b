// Package utils provides the /utils command group.
package utils

import (
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/store"
)

// RegisterUtilsCommands registers ping, status, help and stats under /utils
func RegisterUtilsCommands(client *discord.ExtendedClient, backend store.Backend) {
	group := client.CommandHandler.BuildCommandGroup(
		"utils",
		"Comandos de utilidad",
		createPingCommand(),
		createStatusCommand(backend),
		createHelpCommand(),
		createStatsCommand(backend),
	)
	client.CommandHandler.AddGlobalCommand(group)
}
