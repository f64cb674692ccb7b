package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createUnmuteCommand creates the /mod unmute subcommand
func createUnmuteCommand() *discord.Command {
	return discord.NewCommand(
		"unmute",
		"Devuelve la voz y los roles a un usuario silenciado",
		"mod",
		unmuteHandler,
	).WithOptions(
		userOption("Usuario a quitar el silencio"),
		reasonOption("Razón"),
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		WithBotPermissions(discordgo.PermissionManageRoles).
		WithCooldown(modCooldown).
		AsModOnly()
}

func unmuteHandler(ctx *discord.CommandContext) error {
	user, ok := target(ctx)
	if !ok {
		return nil
	}
	if err := ctx.Defer(); err != nil {
		return err
	}

	reason := moderation.NormalizeReason(ctx.GetStringOption("razon"))
	restored, err := ctx.Client.Moderation.Unmute(ctx.Context(), ctx.Interaction.GuildID, user.ID, ctx.User().ID, reason)
	if err != nil {
		return fail(ctx, "unmute", err)
	}

	return ctx.EditReplyEmbed(resultEmbed(ctx,
		"🔊 Silencio retirado",
		fmt.Sprintf("**%s** ya puede hablar de nuevo.\n\n> **Razón:** %s\n> **Roles restaurados:** %d",
			user.String(), reason, len(restored)),
		colorSuccess,
	))
}
