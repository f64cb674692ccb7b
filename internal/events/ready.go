package events

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterReadyEvent registers the ready event handler
func RegisterReadyEvent(client *discord.ExtendedClient) {
	client.EventHandler.OnReady(onReady)
}

// presence is the status shown while the bot is online
func presence() discordgo.UpdateStatusData {
	return discordgo.UpdateStatusData{
		Status: string(discordgo.StatusDoNotDisturb),
		Activities: []*discordgo.Activity{
			{
				Name: "your every move...",
				Type: discordgo.ActivityTypeWatching,
			},
		},
	}
}

// onReady is called when the bot successfully connects to Discord
func onReady(s *discordgo.Session, r *discordgo.Ready) {
	logger.Success(fmt.Sprintf("✅ Bot conectado: %s (ID: %s)", r.User.Username, r.User.ID), "Ready")
	logger.Info(fmt.Sprintf("📊 Conectado a %d servidores", len(r.Guilds)), "Ready")

	if err := s.UpdateStatusComplex(presence()); err != nil {
		logger.Error(fmt.Sprintf("Error estableciendo estado: %v", err), "Ready")
		return
	}

	logger.Debug("Estado del bot establecido correctamente", "Ready")
}
