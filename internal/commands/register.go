// Package commands provides a registry for organizing bot commands.
// Commands are organized in subdirectories by category (utils, mod, options)
package commands

import (
	"github.com/PancyStudios/PancyGuardGo/internal/commands/mod"
	"github.com/PancyStudios/PancyGuardGo/internal/commands/options"
	"github.com/PancyStudios/PancyGuardGo/internal/commands/utils"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/store"
)

// RegisterAll registers all commands with the Discord client
func RegisterAll(client *discord.ExtendedClient, backend store.Backend) {
	// /utils ping, status, help, stats
	utils.RegisterUtilsCommands(client, backend)

	// /mod warn, warns, clearwarn, clearwarns, mute, unmute, kick, ban, unban, bans and /report
	mod.RegisterModCommands(client)

	// /config view, set, reset
	options.RegisterConfigCommands(client)
}
