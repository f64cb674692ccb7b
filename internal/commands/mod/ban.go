package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createBanCommand creates the /mod ban subcommand
func createBanCommand() *discord.Command {
	minDays := 0.0
	return discord.NewCommand(
		"ban",
		"Banea a un usuario del servidor",
		"mod",
		banHandler,
	).WithOptions(
		userOption("Usuario a banear"),
		reasonOption("Razón del ban"),
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "dias",
			Description: "Días de mensajes a eliminar (0-7)",
			Required:    false,
			MinValue:    &minDays,
			MaxValue:    7,
		},
	).WithUserPermissions(discordgo.PermissionBanMembers).
		WithBotPermissions(discordgo.PermissionBanMembers).
		WithCooldown(modCooldown).
		AsModOnly()
}

func banHandler(ctx *discord.CommandContext) error {
	user, ok := target(ctx)
	if !ok {
		return nil
	}
	if err := ctx.Defer(); err != nil {
		return err
	}

	reason := moderation.NormalizeReason(ctx.GetStringOption("razon"))
	days := int(ctx.GetIntOptionOr("dias", 0))

	if err := ctx.Client.Moderation.Ban(ctx.Context(), ctx.Interaction.GuildID, user.ID, ctx.User().ID, reason, days); err != nil {
		return fail(ctx, "ban", err)
	}

	return ctx.EditReplyEmbed(resultEmbed(ctx,
		"🔨 Usuario baneado",
		fmt.Sprintf("**%s** ha sido baneado.\n\n> **Razón:** %s", user.String(), reason),
		colorError,
	))
}
