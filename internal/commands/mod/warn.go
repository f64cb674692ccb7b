package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createWarnCommand creates the /mod warn subcommand
func createWarnCommand() *discord.Command {
	return discord.NewCommand(
		"warn",
		"Advierte a un usuario por su mala conducta",
		"mod",
		warnHandler,
	).WithOptions(
		userOption("Usuario a advertir"),
		reasonOption("Razón de la advertencia"),
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		WithCooldown(modCooldown).
		AsModOnly()
}

func warnHandler(ctx *discord.CommandContext) error {
	user, ok := target(ctx)
	if !ok {
		return nil
	}
	if err := ctx.Defer(); err != nil {
		return err
	}

	reason := moderation.NormalizeReason(ctx.GetStringOption("razon"))
	count, err := ctx.Client.Moderation.Warn(ctx.Context(), ctx.Interaction.GuildID, user.ID, ctx.User().ID, reason)
	if err != nil {
		return fail(ctx, "warn", err)
	}

	return ctx.EditReplyEmbed(resultEmbed(ctx,
		"⚠️ Usuario advertido",
		fmt.Sprintf("**%s** ha sido advertido.\n\n> **Razón:** %s\n> **Advertencias:** %d", user.String(), reason, count),
		colorWarn,
	))
}
