package events

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterGuildEvents registers all guild-related event handlers
func RegisterGuildEvents(client *discord.ExtendedClient) {
	client.EventHandler.OnGuildCreate(onGuildCreate)
	client.EventHandler.OnGuildDelete(onGuildDelete)
}

// justJoined tells a fresh invite apart from the GuildCreate burst sent on connect
func justJoined(g *discordgo.Guild, now time.Time) bool {
	return !g.JoinedAt.IsZero() && !g.JoinedAt.Before(now.Add(-10*time.Second))
}

func welcomeEmbed(now time.Time) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "¡Gracias por agregarme! 🛡️",
		Description: "Hola, soy **PancyGuard**. Usa `/utils help` para ver todos mis comandos.",
		Color:       0x3498db,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "⚙️ Configuración",
				Value:  "Define los canales de logs y el rol de moderador con `/config set`",
				Inline: true,
			},
			{
				Name:   "🔨 Moderación",
				Value:  "Usa `/mod` para advertir, silenciar o banear",
				Inline: true,
			},
			{
				Name:   "📢 Reportes",
				Value:  "Cualquier miembro puede usar `/report`",
				Inline: true,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "💫 - Developed by PancyStudios",
		},
		Timestamp: now.Format(time.RFC3339),
	}
}

// onGuildCreate is called when the bot joins a server
func onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	now := time.Now()
	if !justJoined(g.Guild, now) {
		return
	}

	logger.Info(fmt.Sprintf("➕ Bot agregado a servidor: %s (ID: %s)", g.Name, g.ID), "Guild")
	logger.Debug(fmt.Sprintf("   Miembros: %d | Canales: %d", g.MemberCount, len(g.Channels)), "Guild")

	if g.SystemChannelID == "" {
		return
	}
	if _, err := s.ChannelMessageSendEmbed(g.SystemChannelID, welcomeEmbed(now)); err != nil {
		logger.Error(fmt.Sprintf("Error enviando mensaje de bienvenida: %v", err), "Guild")
	}
}

// onGuildDelete is called when the bot is removed from a server.
// Stored warnings and mutes are kept in case the bot is invited back.
func onGuildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	if g.Unavailable {
		logger.Warn(fmt.Sprintf("Servidor no disponible: %s", g.ID), "Guild")
		return
	}
	logger.Info(fmt.Sprintf("➖ Bot removido del servidor ID: %s", g.ID), "Guild")
}
