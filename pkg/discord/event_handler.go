package discord

import (
	"fmt"
	"sync"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// EventHandler manages event loading and registration
type EventHandler struct {
	client *ExtendedClient
	events []interface{}
	mu     sync.RWMutex
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(client *ExtendedClient) *EventHandler {
	return &EventHandler{
		client: client,
		events: make([]interface{}, 0),
	}
}

// LoadEvents reports the handlers registered so far
func (eh *EventHandler) LoadEvents() error {
	eh.mu.RLock()
	defer eh.mu.RUnlock()
	logger.System(fmt.Sprintf("Carga finalizada. Eventos registrados: %d", len(eh.events)), "EventHandler")
	return nil
}

// Count returns the number of registered handlers
func (eh *EventHandler) Count() int {
	eh.mu.RLock()
	defer eh.mu.RUnlock()
	return len(eh.events)
}

// RegisterEvent adds an event handler to the Discord session.
// discordgo only recognises unnamed func types, so typed handlers are converted first.
func (eh *EventHandler) RegisterEvent(handler interface{}) {
	eh.client.Session.AddHandler(handler)
	eh.mu.Lock()
	eh.events = append(eh.events, handler)
	eh.mu.Unlock()
}

// ReadyHandler is called when the bot is ready
type ReadyHandler func(s *discordgo.Session, r *discordgo.Ready)

// GuildCreateHandler is called when the bot joins a guild
type GuildCreateHandler func(s *discordgo.Session, g *discordgo.GuildCreate)

// GuildDeleteHandler is called when the bot leaves a guild
type GuildDeleteHandler func(s *discordgo.Session, g *discordgo.GuildDelete)

// GuildMemberAddHandler is called when a member joins a guild
type GuildMemberAddHandler func(s *discordgo.Session, m *discordgo.GuildMemberAdd)

// GuildRoleDeleteHandler is called when a role is deleted
type GuildRoleDeleteHandler func(s *discordgo.Session, r *discordgo.GuildRoleDelete)

// OnReady registers a ready event handler
func (eh *EventHandler) OnReady(handler ReadyHandler) {
	eh.RegisterEvent((func(*discordgo.Session, *discordgo.Ready))(handler))
	logger.Debug("Evento 'Ready' registrado", "EventHandler")
}

// OnGuildCreate registers a guild create event handler
func (eh *EventHandler) OnGuildCreate(handler GuildCreateHandler) {
	eh.RegisterEvent((func(*discordgo.Session, *discordgo.GuildCreate))(handler))
	logger.Debug("Evento 'GuildCreate' registrado", "EventHandler")
}

// OnGuildDelete registers a guild delete event handler
func (eh *EventHandler) OnGuildDelete(handler GuildDeleteHandler) {
	eh.RegisterEvent((func(*discordgo.Session, *discordgo.GuildDelete))(handler))
	logger.Debug("Evento 'GuildDelete' registrado", "EventHandler")
}

// OnGuildMemberAdd registers a guild member add event handler
func (eh *EventHandler) OnGuildMemberAdd(handler GuildMemberAddHandler) {
	eh.RegisterEvent((func(*discordgo.Session, *discordgo.GuildMemberAdd))(handler))
	logger.Debug("Evento 'GuildMemberAdd' registrado", "EventHandler")
}

// OnGuildRoleDelete registers a role delete event handler
func (eh *EventHandler) OnGuildRoleDelete(handler GuildRoleDeleteHandler) {
	eh.RegisterEvent((func(*discordgo.Session, *discordgo.GuildRoleDelete))(handler))
	logger.Debug("Evento 'GuildRoleDelete' registrado", "EventHandler")
}
