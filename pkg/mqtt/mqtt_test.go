package mqtt

import (
	"context"
	"testing"

	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/store"
	"github.com/goccy/go-json"
)

func TestTopicMatch(t *testing.T) {
	tests := []struct {
		pattern string
		topic   string
		want    bool
	}{
		{"moderation/warnings", "moderation/warnings", true},
		{"moderation/warnings", "moderation/mutes", false},
		{"moderation/+", "moderation/mutes", true},
		{"moderation/+", "moderation/mutes/extra", false},
		{"moderation/#", "moderation/mutes/extra", true},
		{"#", "anything/at/all", true},
		{"moderation/warnings/x", "moderation/warnings", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"=>"+tt.topic, func(t *testing.T) {
			if got := topicMatch(tt.pattern, tt.topic); got != tt.want {
				t.Errorf("topicMatch(%q, %q) = %v, want %v", tt.pattern, tt.topic, got, tt.want)
			}
		})
	}
}

func newOfflineCommunicator() *MqttCommunicator {
	return &MqttCommunicator{responseHandlers: make(map[string]func(MqttResponse))}
}

func request(t *testing.T, correlationID string, payload interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(MqttRequest{CorrelationID: correlationID, Payload: payload})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	return raw
}

func TestDispatchWarnings(t *testing.T) {
	svc := moderation.NewService(store.NewMemoryBackend(), nil, ".")
	ctx := context.Background()
	if _, err := svc.Ledger.Warn(ctx, "100", "m1", "spam"); err != nil {
		t.Fatalf("Warn() returned error: %v", err)
	}

	mc := newOfflineCommunicator()
	RegisterModerationHandlers(mc, svc)

	topic, resp, ok := mc.dispatch("pancy/request/moderation/warnings",
		request(t, "abc", map[string]string{"guildId": "100", "memberId": "m1"}))
	if !ok {
		t.Fatal("dispatch() did not handle the request")
	}
	if topic != "pancy/response/moderation/warnings/abc" {
		t.Errorf("response topic = %v", topic)
	}
	if resp.Error != "" {
		t.Fatalf("response error = %v", resp.Error)
	}

	raw, _ := json.Marshal(resp.Data)
	var warnings []struct {
		Index  int    `json:"index"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(raw, &warnings); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(warnings) != 1 || warnings[0].Reason != "spam" {
		t.Errorf("warnings = %+v, want one 'spam' warning", warnings)
	}
}

func TestDispatchMissingField(t *testing.T) {
	mc := newOfflineCommunicator()
	RegisterModerationHandlers(mc, moderation.NewService(store.NewMemoryBackend(), nil, "."))

	_, resp, ok := mc.dispatch("pancy/request/moderation/mutes", request(t, "x", map[string]string{}))
	if !ok {
		t.Fatal("dispatch() did not handle the request")
	}
	if resp.Error == "" {
		t.Error("expected an error for a payload without guildId")
	}
}

func TestDispatchUnknownTopic(t *testing.T) {
	mc := newOfflineCommunicator()
	RegisterModerationHandlers(mc, moderation.NewService(store.NewMemoryBackend(), nil, "."))

	if _, _, ok := mc.dispatch("pancy/request/music/queue", request(t, "x", nil)); ok {
		t.Error("dispatch() handled a topic with no registered route")
	}
}

type capturePublisher struct {
	topic   string
	payload interface{}
}

func (c *capturePublisher) Publish(topic string, payload interface{}) error {
	c.topic = topic
	c.payload = payload
	return nil
}

func TestEventPublisherTopic(t *testing.T) {
	capture := &capturePublisher{}
	p := &EventPublisher{client: capture}

	event := moderation.NewEvent(moderation.ActionMute, "100", "m1", "mod", "flood")
	if err := p.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish() returned error: %v", err)
	}

	if capture.topic != "pancy/moderation/mute" {
		t.Errorf("topic = %v, want %v", capture.topic, "pancy/moderation/mute")
	}
	if got, ok := capture.payload.(moderation.Event); !ok || got.ID != event.ID {
		t.Errorf("payload = %#v, want the published event", capture.payload)
	}
}
