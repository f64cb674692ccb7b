package web

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

const (
	subscriberBuffer = 64
	pingInterval     = 30 * time.Second
	writeWait        = 5 * time.Second
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1 << 10,
	WriteBufferSize: 4 << 10,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type subscriber struct {
	guildID string
	events  chan []byte
}

// EventHub fans moderation events out to websocket consumers.
// A consumer that falls behind loses events instead of blocking moderation.
type EventHub struct {
	mu          sync.RWMutex
	subscribers map[uint64]*subscriber
	nextID      uint64
}

// NewEventHub creates an empty hub
func NewEventHub() *EventHub {
	return &EventHub{subscribers: make(map[uint64]*subscriber)}
}

// Publish implements moderation.Publisher
func (h *EventHub) Publish(_ context.Context, event moderation.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, sub := range h.subscribers {
		if sub.guildID != "" && sub.guildID != event.GuildID {
			continue
		}
		select {
		case sub.events <- data:
		default:
			logger.Warn(fmt.Sprintf("Consumidor %d lento, evento %s descartado", id, event.ID), "WebSocket")
		}
	}
	return nil
}

// subscribe registers a consumer, optionally limited to one guild
func (h *EventHub) subscribe(guildID string) (uint64, *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++

	sub := &subscriber{guildID: guildID, events: make(chan []byte, subscriberBuffer)}
	h.subscribers[id] = sub
	return id, sub
}

func (h *EventHub) unsubscribe(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subscribers, id)
}

// Count returns the connected consumers
func (h *EventHub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// HandleEvents upgrades the request and streams events as JSON text frames.
// ?guild=<id> limits the stream to one guild.
func (h *EventHub) HandleEvents(c *gin.Context) {
	guildID := c.Query("guild")
	if guildID != "" && !validSnowflake(guildID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": "guild debe ser un ID válido."})
		return
	}

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn(fmt.Sprintf("Error actualizando websocket: %v", err), "WebSocket")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	id, sub := h.subscribe(guildID)
	defer h.unsubscribe(id)

	logger.Info(fmt.Sprintf("Nuevo consumidor %d desde %s", id, c.ClientIP()), "WebSocket")

	// Client frames are discarded; a read error means the client went away.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case data := <-sub.events:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				logger.Warn(fmt.Sprintf("Consumidor %d desconectado: %v", id, err), "WebSocket")
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
