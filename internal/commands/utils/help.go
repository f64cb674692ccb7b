package utils

import (
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/errors"
)

const helpText = "📖 **Ayuda de PancyGuard Go**\n\n" +
	"**Utilidades:**\n" +
	"• `/utils ping` - Comprueba la latencia\n" +
	"• `/utils status` - Estado del bot\n" +
	"• `/utils stats` - Estadísticas del bot\n\n" +
	"**Moderación** (administradores y rol de moderador):\n" +
	"• `/mod warn <usuario> [razón]` - Advierte a un usuario\n" +
	"• `/mod warns [usuario]` - Lista las advertencias\n" +
	"• `/mod clearwarn <usuario> <índice>` - Elimina una advertencia\n" +
	"• `/mod clearwarns <usuario>` - Elimina todas las advertencias\n" +
	"• `/mod mute <usuario> [razón]` - Silencia a un usuario\n" +
	"• `/mod unmute <usuario> [razón]` - Quita el silencio\n" +
	"• `/mod kick <usuario> [razón]` - Expulsa a un usuario\n" +
	"• `/mod ban <usuario> [razón] [días]` - Banea a un usuario\n" +
	"• `/mod unban <usuario> [razón]` - Revierte un ban\n" +
	"• `/mod bans` - Lista los bans\n" +
	"• `/config view|set|reset` - Configuración del servidor\n\n" +
	"**Para todos:**\n" +
	"• `/report <usuario> [razón]` - Reporta a un usuario"

// createHelpCommand creates the /utils help subcommand
func createHelpCommand() *discord.Command {
	return discord.NewCommand(
		"help",
		"Muestra información de ayuda",
		"utils",
		helpHandler,
	)
}

func helpHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()
		ctx.ReplyEphemeral(helpText)
	}()
	return nil
}
