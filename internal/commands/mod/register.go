// Package mod provides moderation commands organized as subcommands under /mod,
// plus the top-level /report.
package mod

import (
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
)

// RegisterModCommands registers all moderation commands
func RegisterModCommands(client *discord.ExtendedClient) {
	modGroup := client.CommandHandler.BuildCommandGroup(
		"mod",
		"Comandos de moderación",
		createWarnCommand(),
		createWarnsCommand(),
		createClearWarnCommand(),
		createClearWarnsCommand(),
		createMuteCommand(),
		createUnmuteCommand(),
		createKickCommand(),
		createBanCommand(),
		createUnbanCommand(),
		createBansCommand(),
	)
	client.CommandHandler.AddGlobalCommand(modGroup)

	client.CommandHandler.RegisterCommand(CreateReportCommand())
}
