package utils

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/errors"
)

// createPingCommand creates the /utils ping subcommand
func createPingCommand() *discord.Command {
	return discord.NewCommand(
		"ping",
		"Comprueba la latencia del bot",
		"utils",
		pingHandler,
	)
}

func pingHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()
		ctx.Reply(fmt.Sprintf("🏓 Pong! Latencia: %dms", ctx.Client.Latency().Milliseconds()))
	}()
	return nil
}
