package mod

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
		expected bool
	}{
		{"already muted", moderation.ErrAlreadyMuted, "ya está silenciado", true},
		{"not muted", fmt.Errorf("unmute: %w", moderation.ErrNoPriorMute), "no está silenciado", true},
		{"bad index", moderation.ErrInvalidWarningIndex, "No existe una advertencia", true},
		{"no report channel", moderation.ErrNoReportChannel, "public_log", true},
		{"report not delivered", fmt.Errorf("%w: unknown channel", moderation.ErrReportNotDelivered), "No pude publicar el reporte", false},
		{"role creation", moderation.ErrRoleCreationFailed, "rol de silenciado", false},
		{"store", fmt.Errorf("load warns: %w", moderation.ErrStoreUnavailable), "base de datos", false},
		{"other", errors.New("boom"), "error inesperado", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorMessage(tt.err); !strings.Contains(got, tt.contains) {
				t.Errorf("errorMessage() = %q, want it to contain %q", got, tt.contains)
			}
			if got := expected(tt.err); got != tt.expected {
				t.Errorf("expected() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestWarningsEmbed(t *testing.T) {
	user := &discordgo.User{ID: "200", Username: "ACPlayGames"}
	at := time.Unix(1700000000, 0)

	empty := warningsEmbed(user, nil, at)
	if empty.Color != colorSuccess || len(empty.Fields) != 0 {
		t.Errorf("empty embed = %+v, want green with no fields", empty)
	}
	if !strings.Contains(empty.Description, "<t:1700000000>") {
		t.Errorf("description = %q, want the query timestamp", empty.Description)
	}

	warnings := []models.Warning{{Index: 1, Reason: "spam"}, {Index: 2, Reason: "flood"}}
	full := warningsEmbed(user, warnings, at)
	if len(full.Fields) != 2 {
		t.Fatalf("fields = %d, want %d", len(full.Fields), 2)
	}
	if full.Fields[1].Name != "Advertencia #2" || full.Fields[1].Value != "flood" {
		t.Errorf("second field = %+v", full.Fields[1])
	}
	if !strings.Contains(full.Description, "2 advertencias") {
		t.Errorf("description = %q, want the plural count", full.Description)
	}
}

func TestWarningsEmbedCapsFields(t *testing.T) {
	warnings := make([]models.Warning, 30)
	for i := range warnings {
		warnings[i] = models.Warning{Index: i + 1, Reason: "r"}
	}

	embed := warningsEmbed(&discordgo.User{ID: "1", Username: "u"}, warnings, time.Now())
	if len(embed.Fields) != maxListedWarnings {
		t.Errorf("fields = %d, want %d", len(embed.Fields), maxListedWarnings)
	}
	if !strings.Contains(embed.Description, "30 advertencias") {
		t.Errorf("description = %q, want the full count", embed.Description)
	}
}

func TestWarningChoices(t *testing.T) {
	long := strings.Repeat("x", 200)
	choices := warningChoices([]models.Warning{{Index: 1, Reason: "spam"}, {Index: 2, Reason: long}})

	if len(choices) != 2 {
		t.Fatalf("choices = %d, want %d", len(choices), 2)
	}
	if choices[0].Name != "#1 - spam" || choices[0].Value != 1 {
		t.Errorf("first choice = %+v", choices[0])
	}
	if n := len([]rune(choices[1].Name)); n != 100 {
		t.Errorf("long choice name length = %d, want %d", n, 100)
	}
}

func TestFindBan(t *testing.T) {
	bans := []moderation.Ban{
		{UserID: "111", Username: "raider", Reason: "raid"},
		{UserID: "222", Username: "spammer"},
	}

	tests := []struct {
		query string
		want  string
		found bool
	}{
		{"111", "111", true},
		{"<@222>", "222", true},
		{"<@!111>", "111", true},
		{"spammer", "222", true},
		{"333", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			ban, found := findBan(bans, tt.query)
			if found != tt.found || ban.UserID != tt.want {
				t.Errorf("findBan(%q) = %v, %v, want %v, %v", tt.query, ban.UserID, found, tt.want, tt.found)
			}
		})
	}
}

func TestBansEmbed(t *testing.T) {
	embed := bansEmbed([]moderation.Ban{{UserID: "111", Username: "raider"}})

	if embed.Description != "Hay 1 ban en este servidor." {
		t.Errorf("description = %q", embed.Description)
	}
	if len(embed.Fields) != 1 || embed.Fields[0].Value != moderation.DefaultReason {
		t.Errorf("fields = %+v, want one field with the default reason", embed.Fields)
	}
}

func TestModCommandsAreGated(t *testing.T) {
	for _, cmd := range []*discord.Command{
		createWarnCommand(),
		createClearWarnCommand(),
		createClearWarnsCommand(),
		createMuteCommand(),
		createUnmuteCommand(),
		createKickCommand(),
		createBanCommand(),
		createUnbanCommand(),
		createBansCommand(),
	} {
		if !cmd.ModOnly || !cmd.GuildOnly {
			t.Errorf("%s: ModOnly=%v GuildOnly=%v, want true/true", cmd.Name, cmd.ModOnly, cmd.GuildOnly)
		}
		if cmd.Cooldown != modCooldown {
			t.Errorf("%s: Cooldown = %v, want %v", cmd.Name, cmd.Cooldown, modCooldown)
		}
	}

	for _, cmd := range []*discord.Command{CreateReportCommand(), createWarnsCommand()} {
		if cmd.ModOnly || !cmd.GuildOnly {
			t.Errorf("%s: ModOnly=%v GuildOnly=%v, want false/true", cmd.Name, cmd.ModOnly, cmd.GuildOnly)
		}
	}
}
