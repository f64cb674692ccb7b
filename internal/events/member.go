package events

import (
	"context"
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

type muteReapplier interface {
	Reapply(ctx context.Context, guildID, memberID string) (bool, error)
}

// RegisterMemberEvents registers all member-related event handlers
func RegisterMemberEvents(client *discord.ExtendedClient) {
	client.EventHandler.OnGuildMemberAdd(func(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
		if client.Moderation == nil || m.User == nil || m.User.Bot {
			return
		}
		reapplyMute(client.Moderation.Mutes, m.GuildID, m.User.ID)
	})
}

// reapplyMute puts a muted member that left and came back under the muted role again
func reapplyMute(mutes muteReapplier, guildID, memberID string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()

	reapplied, err := mutes.Reapply(ctx, guildID, memberID)
	if err != nil {
		logger.Error(fmt.Sprintf("Error restaurando silencio de %s en %s: %v", memberID, guildID, err), "Member")
		return false
	}
	if reapplied {
		logger.Info(fmt.Sprintf("🔇 %s volvió a %s y sigue silenciado", memberID, guildID), "Member")
	}
	return reapplied
}
