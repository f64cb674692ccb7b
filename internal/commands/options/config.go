// Package options provides the /config command that edits the per-guild options.
package options

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

const footerText = "💫 - Developed by PancyStudios"

var logChannelTypes = []discordgo.ChannelType{discordgo.ChannelTypeGuildText, discordgo.ChannelTypeGuildNews}

// RegisterConfigCommands registers /config view|set|reset
func RegisterConfigCommands(client *discord.ExtendedClient) {
	group := client.CommandHandler.BuildCommandGroup(
		"config",
		"Configuración del servidor",
		createViewCommand(),
		createSetCommand(),
		createResetCommand(),
	)
	client.CommandHandler.AddGlobalCommand(group)
}

func createViewCommand() *discord.Command {
	return discord.NewCommand("view", "Muestra la configuración actual", "config", viewHandler).
		AsModOnly()
}

func createSetCommand() *discord.Command {
	return discord.NewCommand("set", "Cambia uno o más ajustes", "config", setHandler).
		WithOptions(
			&discordgo.ApplicationCommandOption{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "prefix",
				Description: "Prefijo de comandos",
				MaxLength:   5,
			},
			&discordgo.ApplicationCommandOption{
				Type:         discordgo.ApplicationCommandOptionChannel,
				Name:         "public_log",
				Description:  "Canal donde se publican las acciones y los reportes",
				ChannelTypes: logChannelTypes,
			},
			&discordgo.ApplicationCommandOption{
				Type:         discordgo.ApplicationCommandOptionChannel,
				Name:         "private_log",
				Description:  "Canal de registros privado",
				ChannelTypes: logChannelTypes,
			},
			&discordgo.ApplicationCommandOption{
				Type:        discordgo.ApplicationCommandOptionRole,
				Name:        "mod_role",
				Description: "Rol que puede usar los comandos de moderación",
			},
			&discordgo.ApplicationCommandOption{
				Type:        discordgo.ApplicationCommandOptionRole,
				Name:        "muted_role",
				Description: "Rol que se asigna a los usuarios silenciados",
			},
		).
		AsModOnly()
}

func createResetCommand() *discord.Command {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(resettable))
	for _, field := range resettable {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: field, Value: field})
	}

	return discord.NewCommand("reset", "Borra un ajuste", "config", resetHandler).
		WithOptions(&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "campo",
			Description: "Ajuste a borrar",
			Required:    true,
			Choices:     choices,
		}).
		AsModOnly()
}

func viewHandler(ctx *discord.CommandContext) error {
	opts, err := ctx.Client.Moderation.Config.Get(ctx.Context(), ctx.Interaction.GuildID)
	if err != nil {
		return ctx.ReplyEphemeral("❌ La base de datos no está disponible en este momento.")
	}
	return ctx.ReplyEphemeralEmbed(optionsEmbed("⚙️ Configuración del servidor", opts))
}

func setHandler(ctx *discord.CommandContext) error {
	var patch models.OptionsPatch

	if opt := ctx.GetOption("prefix"); opt != nil {
		prefix := opt.StringValue()
		patch.Prefix = &prefix
	}
	if ch := ctx.GetOption("public_log"); ch != nil {
		id := optionID(ch)
		patch.PublicLog = &id
	}
	if ch := ctx.GetOption("private_log"); ch != nil {
		id := optionID(ch)
		patch.PrivateLog = &id
	}
	if role := ctx.GetOption("mod_role"); role != nil {
		id := optionID(role)
		patch.ModRole = &id
	}
	if role := ctx.GetOption("muted_role"); role != nil {
		id := optionID(role)
		patch.MutedRole = &id
	}

	if patch.IsEmpty() {
		return ctx.ReplyEphemeral("❌ Indica al menos un ajuste para cambiar.")
	}

	return apply(ctx, patch, "✅ Configuración actualizada")
}

func resetHandler(ctx *discord.CommandContext) error {
	patch, ok := resetPatch(ctx.GetStringOption("campo"))
	if !ok {
		return ctx.ReplyEphemeral("❌ Ese ajuste no existe.")
	}
	return apply(ctx, patch, "✅ Ajuste borrado")
}

func apply(ctx *discord.CommandContext, patch models.OptionsPatch, title string) error {
	opts, err := ctx.Client.Moderation.Config.Set(ctx.Context(), ctx.Interaction.GuildID, patch)
	if err != nil {
		ctx.ReplyEphemeral("❌ No se pudo guardar la configuración. Inténtalo más tarde.")
		return err
	}
	return ctx.ReplyEphemeralEmbed(optionsEmbed(title, opts))
}

// optionID returns the raw id of a channel or role option
func optionID(opt *discordgo.ApplicationCommandInteractionDataOption) string {
	id, _ := opt.Value.(string)
	return id
}

// resettable lists the fields /config reset can clear
var resettable = []string{"public_log", "private_log", "mod_role", "muted_role"}

// resetPatch builds the patch that clears one field
func resetPatch(field string) (models.OptionsPatch, bool) {
	empty := ""
	var patch models.OptionsPatch
	switch field {
	case "public_log":
		patch.PublicLog = &empty
	case "private_log":
		patch.PrivateLog = &empty
	case "mod_role":
		patch.ModRole = &empty
	case "muted_role":
		patch.MutedRole = &empty
	default:
		return patch, false
	}
	return patch, true
}

func channelMention(id models.Snowflake) string {
	if id == "" {
		return "Sin configurar"
	}
	return fmt.Sprintf("<#%s>", id)
}

func roleMention(id models.Snowflake) string {
	if id == "" {
		return "Sin configurar"
	}
	return fmt.Sprintf("<@&%s>", id)
}

func optionsEmbed(title string, opts models.GuildOptions) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: title,
		Color: 0x3498DB,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Prefix", Value: fmt.Sprintf("`%s`", opts.Prefix), Inline: true},
			{Name: "Public Log", Value: channelMention(opts.PublicLog), Inline: true},
			{Name: "Private Log", Value: channelMention(opts.PrivateLog), Inline: true},
			{Name: "Mod Role", Value: roleMention(opts.ModRole), Inline: true},
			{Name: "Muted Role", Value: roleMention(opts.MutedRole), Inline: true},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: footerText},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}
