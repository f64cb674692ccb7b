// Package discord provides the Discord bot client and related structures.
// It wraps discordgo with slash command routing, the moderator gate and the
// moderation platform adapter.
package discord

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/config"
	"github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// commandTimeout bounds the store and platform calls of one command
const commandTimeout = 15 * time.Second

// discordgo.Logger is a function, not an interface
func init() {
	discordgo.Logger = func(msgL int, caller int, format string, a ...interface{}) {
		logger.Info(fmt.Sprintf(format, a...), "DiscordGo")
	}
}

// ExtendedClient wraps discordgo.Session with additional functionality
type ExtendedClient struct {
	Session        *discordgo.Session
	Commands       *CommandCollection
	CommandHandler *CommandHandler
	EventHandler   *EventHandler
	Moderation     *moderation.Service
	StartTime      time.Time
	mu             sync.RWMutex
	isReady        bool
	cooldowns      *cooldowns
	stop           chan struct{}
	stopOnce       sync.Once
}

// CommandCollection holds registered commands
type CommandCollection struct {
	commands map[string]*Command
	mu       sync.RWMutex
}

// NewCommandCollection creates a new CommandCollection
func NewCommandCollection() *CommandCollection {
	return &CommandCollection{
		commands: make(map[string]*Command),
	}
}

// Set adds or updates a command
func (cc *CommandCollection) Set(name string, cmd *Command) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.commands[name] = cmd
}

// Get retrieves a command by name
func (cc *CommandCollection) Get(name string) (*Command, bool) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	cmd, ok := cc.commands[name]
	return cmd, ok
}

// Size returns the number of commands
func (cc *CommandCollection) Size() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return len(cc.commands)
}

// All returns all commands
func (cc *CommandCollection) All() map[string]*Command {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	result := make(map[string]*Command)
	for k, v := range cc.commands {
		result[k] = v
	}
	return result
}

var (
	client *ExtendedClient
	once   sync.Once
)

// Init initializes the global Discord client
func Init(token string) (*ExtendedClient, error) {
	var err error
	once.Do(func() {
		client, err = NewClient(token)
	})
	return client, err
}

// Get returns the global Discord client
func Get() *ExtendedClient {
	return client
}

// NewClient creates a new ExtendedClient
func NewClient(token string) (*ExtendedClient, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentGuildModeration

	session.ShardCount = 1
	session.SyncEvents = false
	session.StateEnabled = true
	session.LogLevel = discordgo.LogWarning

	c := &ExtendedClient{
		Session:   session,
		Commands:  NewCommandCollection(),
		isReady:   false,
		cooldowns: newCooldowns(),
		stop:      make(chan struct{}),
	}

	c.CommandHandler = NewCommandHandler(c)
	c.EventHandler = NewEventHandler(c)

	return c, nil
}

// SetModeration attaches the moderation service used by commands and the moderator gate
func (c *ExtendedClient) SetModeration(svc *moderation.Service) {
	c.Moderation = svc
}

// Start initializes and starts the bot
func (c *ExtendedClient) Start() error {
	if err := c.CommandHandler.LoadCommands(); err != nil {
		logger.Error("Failed to load commands: "+err.Error(), "Client")
		return err
	}

	if err := c.EventHandler.LoadEvents(); err != nil {
		logger.Error("Failed to load events: "+err.Error(), "Client")
		return err
	}

	c.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		c.mu.Lock()
		c.isReady = true
		c.mu.Unlock()

		logger.Success("Bot conectado como: "+r.User.Username, "Client")

		c.CommandHandler.RegisterCommands()
	})

	c.Session.AddHandler(c.handleInteraction)

	c.StartTime = time.Now()
	go c.sweepCooldowns()

	return c.Session.Open()
}

func (c *ExtendedClient) sweepCooldowns() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cooldowns.sweep(10 * time.Minute)
		case <-c.stop:
			return
		}
	}
}

// resolveCommandName joins the command, group and subcommand names with dots
func resolveCommandName(data discordgo.ApplicationCommandInteractionData) string {
	name := data.Name
	if len(data.Options) == 0 {
		return name
	}

	opt := data.Options[0]
	switch opt.Type {
	case discordgo.ApplicationCommandOptionSubCommandGroup:
		if len(opt.Options) > 0 {
			name = data.Name + "." + opt.Name + "." + opt.Options[0].Name
		}
	case discordgo.ApplicationCommandOptionSubCommand:
		name = data.Name + "." + opt.Name
	}
	return name
}

// handleInteraction handles incoming Discord interactions
func (c *ExtendedClient) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	defer errors.RecoverMiddleware()()

	if i.Type != discordgo.InteractionApplicationCommand && i.Type != discordgo.InteractionApplicationCommandAutocomplete {
		return
	}

	commandName := resolveCommandName(i.ApplicationCommandData())
	cmd, ok := c.Commands.Get(commandName)
	if !ok {
		if i.Type == discordgo.InteractionApplicationCommand {
			logger.Warn("Command not found: "+commandName, "Client")
		}
		return
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	ctx := &CommandContext{
		Session:     s,
		Interaction: i,
		Client:      c,
		ctx:         reqCtx,
	}

	if i.Type == discordgo.InteractionApplicationCommandAutocomplete {
		if cmd.AutoComplete != nil {
			cmd.AutoComplete(ctx)
		}
		return
	}

	if err := c.ModGateMiddleware(ctx, cmd); err != nil {
		return
	}
	if err := c.CooldownMiddleware(ctx, cmd, commandName); err != nil {
		return
	}

	if err := cmd.Run(ctx); err != nil {
		logger.Error("Error executing command "+commandName+": "+err.Error(), "Client")
		if h := errors.Get(); h != nil {
			h.IncrementError()
		}
	}
}

// Stop stops the bot and closes the session
func (c *ExtendedClient) Stop() error {
	c.mu.Lock()
	c.isReady = false
	c.mu.Unlock()
	c.stopOnce.Do(func() { close(c.stop) })

	if c.Session != nil {
		return c.Session.Close()
	}
	return nil
}

// IsReady returns true if the bot is ready
func (c *ExtendedClient) IsReady() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isReady
}

// GuildCount returns the number of guilds the bot is in
func (c *ExtendedClient) GuildCount() int {
	if c.Session == nil || c.Session.State == nil {
		return 0
	}
	c.Session.State.RLock()
	defer c.Session.State.RUnlock()
	return len(c.Session.State.Guilds)
}

// Latency returns the gateway heartbeat latency
func (c *ExtendedClient) Latency() time.Duration {
	if c.Session == nil {
		return 0
	}
	return c.Session.HeartbeatLatency()
}

// GetConfig returns the bot configuration
func (c *ExtendedClient) GetConfig() *config.Config {
	return config.Get()
}

// Self returns the bot user once the gateway is ready
func (c *ExtendedClient) Self() *discordgo.User {
	if c.Session == nil || c.Session.State == nil {
		return nil
	}
	return c.Session.State.User
}
