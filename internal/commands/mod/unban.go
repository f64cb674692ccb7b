package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createUnbanCommand creates the /mod unban subcommand
func createUnbanCommand() *discord.Command {
	return discord.NewCommand(
		"unban",
		"Revierte el ban de un usuario",
		"mod",
		unbanHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "usuario",
			Description: "ID o nombre del usuario baneado",
			Required:    true,
		},
		reasonOption("Razón"),
	).WithUserPermissions(discordgo.PermissionBanMembers).
		WithBotPermissions(discordgo.PermissionBanMembers).
		WithCooldown(modCooldown).
		AsModOnly()
}

func unbanHandler(ctx *discord.CommandContext) error {
	if err := ctx.Defer(); err != nil {
		return err
	}

	svc := ctx.Client.Moderation
	guildID := ctx.Interaction.GuildID

	bans, err := svc.Bans(ctx.Context(), guildID)
	if err != nil {
		return fail(ctx, "unban", err)
	}

	ban, found := findBan(bans, ctx.GetStringOption("usuario"))
	if !found {
		return ctx.EditReplyEmbed(resultEmbed(ctx, "Error", "❌ Por favor proporciona un usuario baneado válido.", colorError))
	}

	reason := moderation.NormalizeReason(ctx.GetStringOption("razon"))
	if err := svc.Unban(ctx.Context(), guildID, ban.UserID, ctx.User().ID, reason); err != nil {
		return fail(ctx, "unban", err)
	}

	return ctx.EditReplyEmbed(resultEmbed(ctx,
		"🕊️ Ban revertido",
		fmt.Sprintf("**%s** ha sido desbaneado.\n\n> **Razón:** %s", ban.Username, reason),
		colorSuccess,
	))
}

// findBan matches a ban by user id, mention or username
func findBan(bans []moderation.Ban, query string) (moderation.Ban, bool) {
	id := trimMention(query)
	for _, ban := range bans {
		if ban.UserID == id || ban.Username == query {
			return ban, true
		}
	}
	return moderation.Ban{}, false
}

func trimMention(s string) string {
	if len(s) > 3 && s[0] == '<' && s[1] == '@' && s[len(s)-1] == '>' {
		s = s[2 : len(s)-1]
		if len(s) > 0 && s[0] == '!' {
			s = s[1:]
		}
	}
	return s
}
