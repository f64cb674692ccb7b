package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createKickCommand creates the /mod kick subcommand
func createKickCommand() *discord.Command {
	return discord.NewCommand(
		"kick",
		"Expulsa a un usuario del servidor",
		"mod",
		kickHandler,
	).WithOptions(
		userOption("Usuario a expulsar"),
		reasonOption("Razón de la expulsión"),
	).WithUserPermissions(discordgo.PermissionKickMembers).
		WithBotPermissions(discordgo.PermissionKickMembers).
		WithCooldown(modCooldown).
		AsModOnly()
}

func kickHandler(ctx *discord.CommandContext) error {
	user, ok := target(ctx)
	if !ok {
		return nil
	}
	if err := ctx.Defer(); err != nil {
		return err
	}

	reason := moderation.NormalizeReason(ctx.GetStringOption("razon"))
	if err := ctx.Client.Moderation.Kick(ctx.Context(), ctx.Interaction.GuildID, user.ID, ctx.User().ID, reason); err != nil {
		return fail(ctx, "kick", err)
	}

	return ctx.EditReplyEmbed(resultEmbed(ctx,
		"👢 Usuario expulsado",
		fmt.Sprintf("**%s** ha sido expulsado.\n\n> **Razón:** %s", user.String(), reason),
		colorWarn,
	))
}
