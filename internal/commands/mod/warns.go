package mod

import (
	"fmt"
	"strings"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// maxListedWarnings keeps the embed under Discord's field limit
const maxListedWarnings = 25

// createWarnsCommand creates the /mod warns subcommand. Any member may list
// their own warnings; listing someone else's requires moderator access.
func createWarnsCommand() *discord.Command {
	return discord.NewCommand(
		"warns",
		"Lista las advertencias de un usuario",
		"mod",
		warnsHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "[STAFF] Usuario a buscar (opcional)",
			Required:    false,
		},
	).WithCooldown(modCooldown).AsGuildOnly()
}

func warnsHandler(ctx *discord.CommandContext) error {
	svc := ctx.Client.Moderation
	guildID := ctx.Interaction.GuildID

	targetUser := ctx.GetUserOption("usuario")
	if targetUser == nil {
		targetUser = ctx.User()
	}

	if targetUser.ID != ctx.User().ID {
		opts, err := svc.Config.Get(ctx.Context(), guildID)
		if err != nil {
			return ctx.ReplyEphemeral(errorMessage(err))
		}
		if !discord.CanModerate(ctx.Member(), opts.ModRole.String()) {
			return ctx.ReplyEphemeral("❌ No tienes permisos para ver la lista de advertencias de otro usuario.")
		}
	}

	warnings, err := svc.Ledger.ListWarnings(ctx.Context(), guildID, targetUser.ID)
	if err != nil {
		return ctx.ReplyEphemeral(errorMessage(err))
	}

	embed := warningsEmbed(targetUser, warnings, time.Now())
	embed.Footer = footer(ctx)
	return ctx.ReplyEphemeralEmbed(embed)
}

// warningsEmbed lists the numbered warnings of a user
func warningsEmbed(user *discordgo.User, warnings []models.Warning, at time.Time) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🔖 - Lista de advertencias de %s", user.Username),
	}

	if len(warnings) == 0 {
		embed.Color = colorSuccess
		embed.Description = fmt.Sprintf(
			"No se han encontrado advertencias del usuario en este servidor\n\n> 💫 - **Cantidad de advertencias:** 0\n> 🕒 - **Fecha de consulta:** <t:%d>",
			at.Unix())
		return embed
	}

	embed.Color = colorWarn
	for i, w := range warnings {
		if i == maxListedWarnings {
			break
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("Advertencia #%d", w.Index),
			Value: truncate(w.Reason, 1024),
		})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s** tiene %d %s.\n\n", user.String(), len(warnings), plural(len(warnings), "advertencia", "advertencias"))
	fmt.Fprintf(&b, "> 💫 - **Cantidad de advertencias:** %d\n> 🕒 - **Fecha de consulta:** <t:%d>", len(warnings), at.Unix())
	if len(warnings) > maxListedWarnings {
		fmt.Fprintf(&b, "\n> Mostrando las primeras %d.", maxListedWarnings)
	}
	embed.Description = b.String()
	return embed
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// warningChoices builds autocomplete choices for the indice option
func warningChoices(warnings []models.Warning) []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, maxListedWarnings)
	for i, w := range warnings {
		if i == maxListedWarnings {
			break
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  truncate(fmt.Sprintf("#%d - %s", w.Index, w.Reason), 100),
			Value: w.Index,
		})
	}
	return choices
}
