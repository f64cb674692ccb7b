package moderation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/google/uuid"
)

// Action names a moderation action
type Action string

const (
	ActionWarn       Action = "warn"
	ActionClearWarn  Action = "clearwarn"
	ActionClearWarns Action = "clearwarns"
	ActionMute       Action = "mute"
	ActionUnmute     Action = "unmute"
	ActionKick       Action = "kick"
	ActionBan        Action = "ban"
	ActionUnban      Action = "unban"
	ActionReport     Action = "report"
)

// Title returns the heading used in log channel embeds
func (a Action) Title() string {
	switch a {
	case ActionWarn:
		return "Warn"
	case ActionClearWarn:
		return "Clear Warn"
	case ActionClearWarns:
		return "Clear Warns"
	case ActionMute:
		return "Mute"
	case ActionUnmute:
		return "Unmute"
	case ActionKick:
		return "Kick"
	case ActionBan:
		return "Ban"
	case ActionUnban:
		return "Unban"
	case ActionReport:
		return "Report"
	default:
		return string(a)
	}
}

// Event is emitted after every successful moderation action.
type Event struct {
	ID          string    `json:"id"`
	Action      Action    `json:"action"`
	GuildID     string    `json:"guild_id"`
	TargetID    string    `json:"target_id"`
	ModeratorID string    `json:"moderator_id"`
	Reason      string    `json:"reason"`
	Count       int       `json:"count,omitempty"`
	RoleIDs     []string  `json:"role_ids,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewEvent creates an event with a fresh id and timestamp
func NewEvent(action Action, guildID, targetID, moderatorID, reason string) Event {
	return Event{
		ID:          uuid.NewString(),
		Action:      action,
		GuildID:     guildID,
		TargetID:    targetID,
		ModeratorID: moderatorID,
		Reason:      reason,
		CreatedAt:   time.Now().UTC(),
	}
}

// Publisher delivers moderation events somewhere outside the core.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// PublisherFunc adapts a function to Publisher
type PublisherFunc func(ctx context.Context, event Event) error

func (f PublisherFunc) Publish(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Publishers fans an event out to every publisher. A failing publisher is
// logged and never stops the others; the failures are joined into the result.
type Publishers []Publisher

func (p Publishers) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, pub := range p {
		if pub == nil {
			continue
		}
		if err := pub.Publish(ctx, event); err != nil {
			logger.Warn(fmt.Sprintf("No se pudo publicar el evento %s (%s): %v", event.ID, event.Action, err), "Events")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
