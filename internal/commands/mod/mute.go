package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createMuteCommand creates the /mod mute subcommand
func createMuteCommand() *discord.Command {
	return discord.NewCommand(
		"mute",
		"Silencia a un usuario quitándole sus roles",
		"mod",
		muteHandler,
	).WithOptions(
		userOption("Usuario a silenciar"),
		reasonOption("Razón del silencio"),
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		WithBotPermissions(discordgo.PermissionManageRoles).
		WithCooldown(modCooldown).
		AsModOnly()
}

func muteHandler(ctx *discord.CommandContext) error {
	user, ok := target(ctx)
	if !ok {
		return nil
	}

	// The resolved member carries the roles to save; without it the
	// manager reads them from Discord.
	var currentRoles []string
	if member := ctx.GetResolvedMember(user.ID); member != nil {
		currentRoles = member.Roles
		if currentRoles == nil {
			currentRoles = []string{}
		}
	}

	if err := ctx.Defer(); err != nil {
		return err
	}

	reason := moderation.NormalizeReason(ctx.GetStringOption("razon"))
	result, err := ctx.Client.Moderation.Mute(ctx.Context(), ctx.Interaction.GuildID, user.ID, ctx.User().ID, reason, currentRoles)
	if err != nil {
		return fail(ctx, "mute", err)
	}

	return ctx.EditReplyEmbed(resultEmbed(ctx,
		"🔇 Usuario silenciado",
		fmt.Sprintf("**%s** ha sido silenciado.\n\n> **Razón:** %s\n> **Rol:** <@&%s>\n> **Roles guardados:** %d",
			user.String(), reason, result.RestrictiveRoleID, len(result.SavedRoleIDs)),
		colorWarn,
	))
}
