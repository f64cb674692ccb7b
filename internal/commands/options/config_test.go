package options

import (
	"testing"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

func TestResetPatch(t *testing.T) {
	for _, field := range resettable {
		t.Run(field, func(t *testing.T) {
			patch, ok := resetPatch(field)
			if !ok || patch.IsEmpty() {
				t.Fatalf("resetPatch(%q) = %+v, %v", field, patch, ok)
			}

			opts := models.GuildOptions{Prefix: ".", PublicLog: "1", PrivateLog: "2", ModRole: "3", MutedRole: "4"}
			patch.Apply(&opts)

			cleared := map[string]models.Snowflake{
				"public_log":  opts.PublicLog,
				"private_log": opts.PrivateLog,
				"mod_role":    opts.ModRole,
				"muted_role":  opts.MutedRole,
			}
			for name, value := range cleared {
				if name == field && value != "" {
					t.Errorf("%s = %q, want cleared", name, value)
				}
				if name != field && value == "" {
					t.Errorf("%s was cleared by resetting %s", name, field)
				}
			}
			if opts.Prefix != "." {
				t.Errorf("Prefix = %q, want it untouched", opts.Prefix)
			}
		})
	}

	if _, ok := resetPatch("prefix"); ok {
		t.Error("the prefix cannot be reset to empty")
	}
}

func TestOptionsEmbed(t *testing.T) {
	embed := optionsEmbed("cfg", models.GuildOptions{Prefix: "!", PublicLog: "10", ModRole: "20"})

	want := []string{"`!`", "<#10>", "Sin configurar", "<@&20>", "Sin configurar"}
	if len(embed.Fields) != len(want) {
		t.Fatalf("fields = %d, want %d", len(embed.Fields), len(want))
	}
	for i, value := range want {
		if embed.Fields[i].Value != value {
			t.Errorf("field %s = %q, want %q", embed.Fields[i].Name, embed.Fields[i].Value, value)
		}
	}
}

func TestOptionID(t *testing.T) {
	tests := []struct {
		name string
		opt  *discordgo.ApplicationCommandInteractionDataOption
		want string
	}{
		{"channel", &discordgo.ApplicationCommandInteractionDataOption{Type: discordgo.ApplicationCommandOptionChannel, Value: "555"}, "555"},
		{"role", &discordgo.ApplicationCommandInteractionDataOption{Type: discordgo.ApplicationCommandOptionRole, Value: "777"}, "777"},
		{"not a string", &discordgo.ApplicationCommandInteractionDataOption{Value: 12.0}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := optionID(tt.opt); got != tt.want {
				t.Errorf("optionID() = %v, want %v", got, tt.want)
			}
		})
	}
}
