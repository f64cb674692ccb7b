package utils

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/config"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/store"
	"github.com/bwmarrin/discordgo"
)

// createStatsCommand creates the /utils stats subcommand
func createStatsCommand(backend store.Backend) *discord.Command {
	return discord.NewCommand(
		"stats",
		"Muestra estadísticas del bot",
		"utils",
		func(ctx *discord.CommandContext) error {
			return statsHandler(ctx, backend)
		},
	)
}

func statsHandler(ctx *discord.CommandContext, backend store.Backend) error {
	go func() {
		defer errors.RecoverMiddleware()()

		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		numGoroutines := runtime.NumGoroutine()
		numCPU := runtime.NumCPU()
		goVersion := strings.TrimPrefix(runtime.Version(), "go")

		guildCount := ctx.Client.GuildCount()
		memberCount := 0
		ctx.Session.State.RLock()
		for _, guild := range ctx.Session.State.Guilds {
			memberCount += guild.MemberCount
		}
		ctx.Session.State.RUnlock()

		uptime := time.Since(ctx.Client.StartTime)

		embed := &discordgo.MessageEmbed{
			Title: "📊 Estadísticas del Bot",
			Color: 0x5865F2,
			Fields: []*discordgo.MessageEmbedField{
				{
					Name:   "🤖 Versión del Bot",
					Value:  config.Version,
					Inline: true,
				},
				{
					Name:   "🐹 Versión de Go",
					Value:  goVersion,
					Inline: true,
				},
				{
					Name:   "📚 Versión de DiscordGo",
					Value:  discordgo.VERSION,
					Inline: true,
				},
				{
					Name:   "🖥 Uso de RAM",
					Value:  fmt.Sprintf("%.2f MB", float64(m.Alloc)/1024/1024),
					Inline: true,
				},
				{
					Name:   "⚙ ️Uso de CPU",
					Value:  fmt.Sprintf("%d Goroutines / %d CPUs", numGoroutines, numCPU),
					Inline: true,
				},
				{
					Name:   "⏱ Uptime",
					Value:  formatDuration(uptime),
					Inline: true,
				},
				{
					Name:   "🗄 Almacenamiento",
					Value:  backend.Name(),
					Inline: true,
				},
				{
					Name:   "🏠 Guilds",
					Value:  fmt.Sprintf("%d", guildCount),
					Inline: true,
				},
				{
					Name:   "👥 Miembros",
					Value:  fmt.Sprintf("%d", memberCount),
					Inline: true,
				},
			},
			Footer: &discordgo.MessageEmbedFooter{
				Text:    "💫 - Developed by PancyStudios",
				IconURL: avatarURL(ctx.Client.Self()),
			},
			Timestamp: time.Now().Format(time.RFC3339),
		}

		ctx.ReplyEmbed(embed)
	}()
	return nil
}

// formatDuration formats a time.Duration into a human-readable string
func formatDuration(dur time.Duration) string {
	days := int(dur.Hours() / 24)
	hours := int(dur.Hours()) % 24
	minutes := int(dur.Minutes()) % 60
	seconds := int(dur.Seconds()) % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%d días", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d horas", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d minutos", minutes))
	}
	if seconds > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%d segundos", seconds))
	}

	return strings.Join(parts, ", ")
}

func avatarURL(user *discordgo.User) string {
	if user == nil {
		return ""
	}
	return user.AvatarURL("")
}
