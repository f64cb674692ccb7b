package discord

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/config"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// CommandHandler manages command loading and registration
type CommandHandler struct {
	client           *ExtendedClient
	slashCommands    []*discordgo.ApplicationCommand
	slashCommandsDev []*discordgo.ApplicationCommand
}

// NewCommandHandler creates a new CommandHandler
func NewCommandHandler(client *ExtendedClient) *CommandHandler {
	return &CommandHandler{
		client:           client,
		slashCommands:    make([]*discordgo.ApplicationCommand, 0),
		slashCommandsDev: make([]*discordgo.ApplicationCommand, 0),
	}
}

// LoadCommands reports the commands registered so far. Commands are added
// programmatically by internal/commands before Start.
func (ch *CommandHandler) LoadCommands() error {
	logger.System(fmt.Sprintf("Carga finalizada. %d comandos (%d globales, %d de desarrollo).",
		ch.client.Commands.Size(), len(ch.slashCommands), len(ch.slashCommandsDev)), "CommandHandler")
	return nil
}

// RegisterCommand adds a command to the handler
func (ch *CommandHandler) RegisterCommand(cmd *Command) {
	ch.client.Commands.Set(cmd.Name, cmd)

	appCmd := cmd.ToApplicationCommand()

	if cmd.IsDev {
		ch.slashCommandsDev = append(ch.slashCommandsDev, appCmd)
	} else {
		ch.slashCommands = append(ch.slashCommands, appCmd)
	}

	logger.Debug("Comando registrado: "+cmd.Name, "CommandHandler")
}

// BuildCommandGroup creates a command group with subcommands
func (ch *CommandHandler) BuildCommandGroup(name, description string, subcommands ...*Command) *discordgo.ApplicationCommand {
	options := make([]*discordgo.ApplicationCommandOption, 0, len(subcommands))

	for _, cmd := range subcommands {
		fullName := name + "." + cmd.Name
		ch.client.Commands.Set(fullName, cmd)

		opt := &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        cmd.Name,
			Description: cmd.Description,
			Options:     cmd.Options,
		}
		options = append(options, opt)
	}

	return &discordgo.ApplicationCommand{
		Name:        name,
		Description: description,
		Options:     options,
	}
}

// GlobalCommands returns the application commands registered globally
func (ch *CommandHandler) GlobalCommands() []*discordgo.ApplicationCommand {
	return ch.slashCommands
}

// DevCommands returns the application commands registered in the dev guild
func (ch *CommandHandler) DevCommands() []*discordgo.ApplicationCommand {
	return ch.slashCommandsDev
}

// RegisterCommands syncs every slash command with Discord
func (ch *CommandHandler) RegisterCommands() {
	cfg := config.Get()

	logger.Info("🔄 Registrando comandos globales...", "CommandHandler")
	if err := ch.SyncCommands(""); err != nil {
		logger.Error("Error registrando comandos globales: "+err.Error(), "CommandHandler")
	} else {
		logger.Success("✅ Comandos globales registrados.", "CommandHandler")
	}

	if cfg.DevGuildID != "" && len(ch.slashCommandsDev) > 0 {
		logger.Info("🔄 Registrando comandos de desarrollo en el servidor "+cfg.DevGuildID+"...", "CommandHandler")
		if err := ch.SyncCommands(cfg.DevGuildID); err != nil {
			logger.Error("Error registrando comandos de desarrollo: "+err.Error(), "CommandHandler")
			return
		}
		logger.Success("✅ Comandos de desarrollo registrados.", "CommandHandler")
	}
}

// SyncCommands overwrites the commands of the application with the local set.
// An empty guildID targets the global commands; otherwise the dev commands are
// written to that guild. Commands missing locally are deleted by Discord.
func (ch *CommandHandler) SyncCommands(guildID string) error {
	commands := ch.slashCommands
	if guildID != "" {
		commands = ch.slashCommandsDev
	}

	_, err := ch.client.Session.ApplicationCommandBulkOverwrite(ch.appID(), guildID, commands)
	return err
}

// ListGlobalCommands returns the global commands Discord knows about
func (ch *CommandHandler) ListGlobalCommands() ([]*discordgo.ApplicationCommand, error) {
	return ch.client.Session.ApplicationCommands(ch.appID(), "")
}

// ListGuildCommands returns the commands registered in one guild
func (ch *CommandHandler) ListGuildCommands(guildID string) ([]*discordgo.ApplicationCommand, error) {
	return ch.client.Session.ApplicationCommands(ch.appID(), guildID)
}

// UnregisterCommands removes all registered commands from Discord
func (ch *CommandHandler) UnregisterCommands() error {
	if err := ch.deleteAll(""); err != nil {
		return err
	}
	logger.Success("Comandos globales eliminados.", "CommandHandler")
	return nil
}

// UnregisterGuildCommands removes every command registered in a guild
func (ch *CommandHandler) UnregisterGuildCommands(guildID string) error {
	if err := ch.deleteAll(guildID); err != nil {
		return err
	}
	logger.Success("Comandos del servidor "+guildID+" eliminados.", "CommandHandler")
	return nil
}

func (ch *CommandHandler) deleteAll(guildID string) error {
	commands, err := ch.client.Session.ApplicationCommands(ch.appID(), guildID)
	if err != nil {
		return err
	}

	for _, cmd := range commands {
		if err := ch.client.Session.ApplicationCommandDelete(ch.appID(), guildID, cmd.ID); err != nil {
			logger.Error("Error eliminando comando "+cmd.Name+": "+err.Error(), "CommandHandler")
		}
	}
	return nil
}

func (ch *CommandHandler) appID() string {
	if ch.client.Session.State != nil && ch.client.Session.State.User != nil {
		return ch.client.Session.State.User.ID
	}
	return ""
}

// AddGlobalCommand adds a command to the global command list
func (ch *CommandHandler) AddGlobalCommand(cmd *discordgo.ApplicationCommand) {
	ch.slashCommands = append(ch.slashCommands, cmd)
}

// AddDevCommand adds a command to the dev command list
func (ch *CommandHandler) AddDevCommand(cmd *discordgo.ApplicationCommand) {
	ch.slashCommandsDev = append(ch.slashCommandsDev, cmd)
}
