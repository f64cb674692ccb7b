package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createClearWarnsCommand creates the /mod clearwarns subcommand
func createClearWarnsCommand() *discord.Command {
	return discord.NewCommand(
		"clearwarns",
		"Elimina todas las advertencias de un usuario",
		"mod",
		clearWarnsHandler,
	).WithOptions(
		userOption("Usuario cuyas advertencias se eliminarán"),
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		WithCooldown(modCooldown).
		AsModOnly()
}

func clearWarnsHandler(ctx *discord.CommandContext) error {
	user, ok := target(ctx)
	if !ok {
		return nil
	}
	if err := ctx.Defer(); err != nil {
		return err
	}

	removed, err := ctx.Client.Moderation.ClearWarnings(ctx.Context(), ctx.Interaction.GuildID, user.ID, ctx.User().ID)
	if err != nil {
		return fail(ctx, "clearwarns", err)
	}

	if removed == 0 {
		return ctx.EditReplyEmbed(resultEmbed(ctx, "Sin advertencias",
			fmt.Sprintf("**%s** no tiene advertencias.", user.String()), colorInfo))
	}

	return ctx.EditReplyEmbed(resultEmbed(ctx,
		"✅ Advertencias eliminadas",
		fmt.Sprintf("Se eliminaron %d %s de **%s**.", removed, plural(removed, "advertencia", "advertencias"), user.String()),
		colorSuccess,
	))
}
