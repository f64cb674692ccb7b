package mqtt

import (
	"context"
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
)

// EventTopicPrefix is prepended to the action name of published events
const EventTopicPrefix = "pancy/moderation/"

const handlerTimeout = 10 * time.Second

type messagePublisher interface {
	Publish(topic string, payload interface{}) error
}

// EventPublisher forwards moderation events to the broker
type EventPublisher struct {
	client messagePublisher
}

// NewEventPublisher creates a publisher over a communicator
func NewEventPublisher(mc *MqttCommunicator) *EventPublisher {
	return &EventPublisher{client: mc}
}

// Publish sends the event to pancy/moderation/<action>
func (p *EventPublisher) Publish(_ context.Context, event moderation.Event) error {
	return p.client.Publish(EventTopicPrefix+string(event.Action), event)
}

// RegisterModerationHandlers answers read-only queries about guild state:
//
//	moderation/warnings {guildId, memberId}
//	moderation/mutes    {guildId}
//	moderation/config   {guildId}
func RegisterModerationHandlers(mc *MqttCommunicator, svc *moderation.Service) {
	mc.On("moderation/warnings", func(payload map[string]interface{}) (interface{}, error) {
		guildID, err := requireString(payload, "guildId")
		if err != nil {
			return nil, err
		}
		memberID, err := requireString(payload, "memberId")
		if err != nil {
			return nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
		defer cancel()
		return svc.Ledger.ListWarnings(ctx, guildID, memberID)
	})

	mc.On("moderation/mutes", func(payload map[string]interface{}) (interface{}, error) {
		guildID, err := requireString(payload, "guildId")
		if err != nil {
			return nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
		defer cancel()
		return svc.Mutes.Muted(ctx, guildID)
	})

	mc.On("moderation/config", func(payload map[string]interface{}) (interface{}, error) {
		guildID, err := requireString(payload, "guildId")
		if err != nil {
			return nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
		defer cancel()
		return svc.Config.Get(ctx, guildID)
	})
}

func requireString(payload map[string]interface{}, key string) (string, error) {
	value, ok := payload[key].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("missing '%s' in payload", key)
	}
	return value, nil
}
