package discord

import (
	"errors"
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

var (
	errGuildOnly    = errors.New("command used outside a guild")
	errNotModerator = errors.New("member is not a moderator")
	errCooldown     = errors.New("command on cooldown")
)

// CanModerate reports whether the member has Administrator or the configured moderator role.
func CanModerate(member *discordgo.Member, modRoleID string) bool {
	if member == nil {
		return false
	}
	if member.Permissions&discordgo.PermissionAdministrator != 0 {
		return true
	}
	if modRoleID == "" {
		return false
	}
	for _, id := range member.Roles {
		if id == modRoleID {
			return true
		}
	}
	return false
}

func deniedEmbed(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       0xFF0000,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}

// ModGateMiddleware rejects guild-only commands used in DMs and mod-only
// commands invoked by members that cannot moderate.
func (c *ExtendedClient) ModGateMiddleware(ctx *CommandContext, cmd *Command) error {
	if !cmd.GuildOnly && !cmd.ModOnly {
		return nil
	}

	guildID := ctx.Interaction.GuildID
	if guildID == "" || ctx.Member() == nil {
		ctx.ReplyEphemeralEmbed(deniedEmbed("🚫 Solo en servidores", "Este comando solo se puede usar dentro de un servidor."))
		return errGuildOnly
	}
	if !cmd.ModOnly {
		return nil
	}

	modRole := ""
	if c.Moderation != nil {
		opts, err := c.Moderation.Config.Get(ctx.Context(), guildID)
		if err != nil {
			logger.Error(fmt.Sprintf("No se pudo leer la configuración de %s: %v", guildID, err), "ModGate")
		}
		modRole = opts.ModRole.String()
	}

	if CanModerate(ctx.Member(), modRole) {
		return nil
	}

	ctx.ReplyEphemeralEmbed(deniedEmbed("🚫 Acceso Denegado", "Necesitas permisos de administrador o el rol de moderador de este servidor."))
	logger.Warn(fmt.Sprintf("Usuario %s intentó usar un comando de moderación en %s", ctx.User().ID, guildID), "ModGate")
	return errNotModerator
}
