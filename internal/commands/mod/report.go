package mod

import (
	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
)

// CreateReportCommand creates the top-level /report command. Any member of
// the guild may report, so it is guild-only but not mod-only.
func CreateReportCommand() *discord.Command {
	return discord.NewCommand(
		"report",
		"Reporta a un usuario por romper una regla",
		"mod",
		reportHandler,
	).WithOptions(
		userOption("Usuario a reportar"),
		reasonOption("Qué ocurrió"),
	).WithCooldown(reportCooldown).
		AsGuildOnly()
}

func reportHandler(ctx *discord.CommandContext) error {
	user, ok := target(ctx)
	if !ok {
		return nil
	}

	reason := moderation.NormalizeReason(ctx.GetStringOption("razon"))
	if err := ctx.Client.Moderation.Report(ctx.Context(), ctx.Interaction.GuildID, user.ID, ctx.User().ID, reason); err != nil {
		ctx.ReplyEphemeral(errorMessage(err))
		if expected(err) {
			return nil
		}
		return err
	}

	return ctx.ReplyEphemeral("✅ " + ctx.User().Mention() + ", tu reporte fue escuchado.")
}
