package utils

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/store"
)

// createStatusCommand creates the /utils status subcommand
func createStatusCommand(backend store.Backend) *discord.Command {
	return discord.NewCommand(
		"status",
		"Muestra el estado del bot",
		"utils",
		func(ctx *discord.CommandContext) error {
			return ctx.Reply(statusMessage(ctx, backend))
		},
	)
}

func statusMessage(ctx *discord.CommandContext, backend store.Backend) string {
	storeStatus := "🔴 No disponible"
	if latency, err := backend.Ping(ctx.Context()); err == nil {
		storeStatus = fmt.Sprintf("🟢 %s (%dms)", backend.Name(), latency.Milliseconds())
	}

	return fmt.Sprintf(
		"📊 **Estado del Bot**\n"+
			"• Bot: 🟢 Online\n"+
			"• Base de datos: %s\n"+
			"• Servidores: %d",
		storeStatus,
		ctx.Client.GuildCount(),
	)
}
