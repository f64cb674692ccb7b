package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createBansCommand creates the /mod bans subcommand
func createBansCommand() *discord.Command {
	return discord.NewCommand(
		"bans",
		"Muestra los bans del servidor",
		"mod",
		bansHandler,
	).WithUserPermissions(discordgo.PermissionBanMembers).
		WithCooldown(modCooldown).
		AsModOnly()
}

func bansHandler(ctx *discord.CommandContext) error {
	if err := ctx.Defer(); err != nil {
		return err
	}

	bans, err := ctx.Client.Moderation.Bans(ctx.Context(), ctx.Interaction.GuildID)
	if err != nil {
		return fail(ctx, "bans", err)
	}

	embed := bansEmbed(bans)
	embed.Footer = footer(ctx)
	return ctx.EditReplyEmbed(embed)
}

func bansEmbed(bans []moderation.Ban) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Bans",
		Description: fmt.Sprintf("Hay %d %s en este servidor.",
			len(bans), plural(len(bans), "ban", "bans")),
		Color: colorInfo,
	}

	for i, ban := range bans {
		if i == maxListedWarnings {
			embed.Description += fmt.Sprintf("\nMostrando los primeros %d.", maxListedWarnings)
			break
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s (%s)", ban.Username, ban.UserID),
			Value: truncate(moderation.NormalizeReason(ban.Reason), 1024),
		})
	}
	return embed
}
