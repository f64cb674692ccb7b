package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createClearWarnCommand creates the /mod clearwarn subcommand
func createClearWarnCommand() *discord.Command {
	return discord.NewCommand(
		"clearwarn",
		"Elimina una advertencia específica de un usuario",
		"mod",
		clearWarnHandler,
	).WithOptions(
		userOption("Usuario del cual eliminar la advertencia"),
		&discordgo.ApplicationCommandOption{
			Type:         discordgo.ApplicationCommandOptionInteger,
			Name:         "indice",
			Description:  "Número de la advertencia (ver /mod warns)",
			Required:     true,
			Autocomplete: true,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		WithAutoComplete(clearWarnAutoComplete).
		WithCooldown(modCooldown).
		AsModOnly()
}

func clearWarnHandler(ctx *discord.CommandContext) error {
	user, ok := target(ctx)
	if !ok {
		return nil
	}
	if err := ctx.Defer(); err != nil {
		return err
	}

	index := int(ctx.GetIntOption("indice"))
	err := ctx.Client.Moderation.ClearWarning(ctx.Context(), ctx.Interaction.GuildID, user.ID, ctx.User().ID, index)
	if err != nil {
		return fail(ctx, "clearwarn", err)
	}

	return ctx.EditReplyEmbed(resultEmbed(ctx,
		"✅ Advertencia eliminada con éxito",
		fmt.Sprintf("La advertencia #%d de **%s** ha sido eliminada.", index, user.String()),
		colorSuccess,
	))
}

// clearWarnAutoComplete suggests the target's warnings to moderators
func clearWarnAutoComplete(ctx *discord.CommandContext) {
	user := ctx.GetUserOption("usuario")
	guildID := ctx.Interaction.GuildID
	if user == nil || guildID == "" {
		ctx.SendAutoCompleteChoices(nil)
		return
	}

	svc := ctx.Client.Moderation
	opts, err := svc.Config.Get(ctx.Context(), guildID)
	if err != nil || !discord.CanModerate(ctx.Member(), opts.ModRole.String()) {
		ctx.SendAutoCompleteChoices(nil)
		return
	}

	warnings, err := svc.Ledger.ListWarnings(ctx.Context(), guildID, user.ID)
	if err != nil {
		ctx.SendAutoCompleteChoices(nil)
		return
	}
	ctx.SendAutoCompleteChoices(warningChoices(warnings))
}
