package events

import (
	"context"
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

type roleForgetter interface {
	ForgetRole(ctx context.Context, guildID, roleID string) (models.GuildOptions, bool, error)
}

// RegisterRoleEvents registers the role event handlers
func RegisterRoleEvents(client *discord.ExtendedClient) {
	client.EventHandler.OnGuildRoleDelete(func(s *discordgo.Session, r *discordgo.GuildRoleDelete) {
		if client.Moderation == nil {
			return
		}
		forgetRole(client.Moderation.Config, r.GuildID, r.RoleID)
	})
}

// forgetRole drops a deleted role from the guild options. A deleted muted
// role is recreated on the next mute.
func forgetRole(options roleForgetter, guildID, roleID string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()

	_, changed, err := options.ForgetRole(ctx, guildID, roleID)
	if err != nil {
		logger.Error(fmt.Sprintf("Error limpiando rol %s de %s: %v", roleID, guildID, err), "Role")
		return false
	}
	if changed {
		logger.Info(fmt.Sprintf("🎭 Rol %s eliminado de la configuración de %s", roleID, guildID), "Role")
	}
	return changed
}
