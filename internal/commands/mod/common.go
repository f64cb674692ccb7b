package mod

import (
	"errors"
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

const (
	colorInfo    = 0x3498DB
	colorSuccess = 0x00FF00
	colorWarn    = 0xFFA500
	colorError   = 0xFF0000

	footerText = "💫 - Developed by PancyStudios"

	// Moderation commands share the one-second per-member cooldown of the
	// classic prefix commands; /report uses three.
	modCooldown    = time.Second
	reportCooldown = 3 * time.Second
)

func userOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        "usuario",
		Description: description,
		Required:    true,
	}
}

func reasonOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "razon",
		Description: description,
		Required:    false,
		MaxLength:   512,
	}
}

func footer(ctx *discord.CommandContext) *discordgo.MessageEmbedFooter {
	f := &discordgo.MessageEmbedFooter{Text: footerText}
	if guild := ctx.Guild(); guild != nil {
		f.IconURL = guild.IconURL("")
	}
	return f
}

func resultEmbed(ctx *discord.CommandContext, title, description string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Footer:      footer(ctx),
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}

// errorMessage turns a moderation error into the reply shown to the moderator
func errorMessage(err error) string {
	switch {
	case errors.Is(err, moderation.ErrAlreadyMuted):
		return "❌ Ese usuario ya está silenciado."
	case errors.Is(err, moderation.ErrNoPriorMute):
		return "❌ Ese usuario no está silenciado."
	case errors.Is(err, moderation.ErrInvalidWarningIndex):
		return "❌ No existe una advertencia con ese número."
	case errors.Is(err, moderation.ErrRoleCreationFailed):
		return "❌ No pude crear el rol de silenciado. Revisa que tenga el permiso de gestionar roles."
	case errors.Is(err, moderation.ErrNoReportChannel):
		return "❌ Este servidor no tiene un canal `public_log` configurado. Un moderador puede usar `/config set`."
	case errors.Is(err, moderation.ErrReportNotDelivered):
		return "❌ No pude publicar el reporte en el canal `public_log`. Revisa que exista y que pueda escribir en él."
	case errors.Is(err, moderation.ErrStoreUnavailable):
		return "❌ La base de datos no está disponible en este momento. Inténtalo más tarde."
	default:
		return "❌ Ocurrió un error inesperado al ejecutar la acción."
	}
}

// expected reports whether err is a normal outcome rather than a failure
func expected(err error) bool {
	return errors.Is(err, moderation.ErrAlreadyMuted) ||
		errors.Is(err, moderation.ErrNoPriorMute) ||
		errors.Is(err, moderation.ErrInvalidWarningIndex) ||
		errors.Is(err, moderation.ErrNoReportChannel)
}

// fail edits the deferred reply with the error. Unexpected errors are also
// returned so the client counts them.
func fail(ctx *discord.CommandContext, command string, err error) error {
	ctx.EditReplyEmbed(resultEmbed(ctx, "Error", errorMessage(err), colorError))
	if expected(err) {
		return nil
	}
	logger.Error(fmt.Sprintf("Error en %s: %v", command, err), "CMD-Mod")
	return err
}

// target reads the user option, rejecting the invoker and the bot itself
func target(ctx *discord.CommandContext) (*discordgo.User, bool) {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		ctx.ReplyEphemeral("❌ Por favor proporciona un usuario válido.")
		return nil, false
	}
	if invoker := ctx.User(); invoker != nil && invoker.ID == user.ID {
		ctx.ReplyEphemeral("❌ No puedes usar este comando sobre ti mismo.")
		return nil, false
	}
	if self := ctx.Client.Self(); self != nil && self.ID == user.ID {
		ctx.ReplyEphemeral("❌ No puedo moderarme a mí mismo.")
		return nil, false
	}
	return user, true
}

// plural picks the singular or plural noun for n
func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}
