package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// OptionsSource resolves a guild's options
type OptionsSource interface {
	Get(ctx context.Context, guildID string) (models.GuildOptions, error)
}

// LogChannelPublisher posts moderation events to the guild's public log channel.
// Guilds without one are skipped.
type LogChannelPublisher struct {
	session *discordgo.Session
	options OptionsSource
}

// NewLogChannelPublisher creates a LogChannelPublisher
func NewLogChannelPublisher(session *discordgo.Session, options OptionsSource) *LogChannelPublisher {
	return &LogChannelPublisher{session: session, options: options}
}

func (p *LogChannelPublisher) Publish(ctx context.Context, event moderation.Event) error {
	opts, err := p.options.Get(ctx, event.GuildID)
	if err != nil {
		return err
	}
	if opts.PublicLog == "" {
		return nil
	}

	_, err = p.session.ChannelMessageSendEmbed(opts.PublicLog.String(), EventEmbed(event), discordgo.WithContext(ctx))
	return err
}

var actionDescriptions = map[moderation.Action]string{
	moderation.ActionWarn:       "Warns a user for their misconducts!",
	moderation.ActionClearWarn:  "Removes one warning from a user!",
	moderation.ActionClearWarns: "Removes every warning from a user!",
	moderation.ActionMute:       "Mutes a user for their misconducts!",
	moderation.ActionUnmute:     "Unmutes a user!",
	moderation.ActionKick:       "Kicks a user for their misconducts!",
	moderation.ActionBan:        "Bans a user for their misconducts!",
	moderation.ActionUnban:      "Unbans a user!",
	moderation.ActionReport:     "A user has been reported!",
}

func mention(id string) string {
	if id == "" {
		return "-"
	}
	return "<@" + id + ">"
}

// EventEmbed renders an event the way moderation logs show it
func EventEmbed(event moderation.Event) *discordgo.MessageEmbed {
	moderatorField := "Moderator"
	if event.Action == moderation.ActionReport {
		moderatorField = "Reporter"
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "User", Value: mention(event.TargetID), Inline: false},
		{Name: moderatorField, Value: mention(event.ModeratorID), Inline: false},
		{Name: "Reason", Value: event.Reason, Inline: false},
	}
	if event.Action == moderation.ActionWarn && event.Count > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Warns", Value: fmt.Sprintf("%d", event.Count), Inline: false})
	}

	return &discordgo.MessageEmbed{
		Title:       event.Action.Title(),
		Description: actionDescriptions[event.Action],
		Color:       0x3498DB,
		Fields:      fields,
		Footer:      &discordgo.MessageEmbedFooter{Text: "💫 - Developed by PancyStudios | " + event.ID},
		Timestamp:   event.CreatedAt.Format(time.RFC3339),
	}
}
