package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

// TestCommandCreation verifies that commands can be created with the builder pattern
func TestCommandCreation(t *testing.T) {
	handler := func(ctx *CommandContext) error {
		return nil
	}

	cmd := NewCommand("test", "Test command", "test", handler)

	if cmd == nil {
		t.Fatal("NewCommand returned nil")
	}

	if cmd.Name != "test" {
		t.Errorf("Name = %v, want %v", cmd.Name, "test")
	}

	if cmd.Description != "Test command" {
		t.Errorf("Description = %v, want %v", cmd.Description, "Test command")
	}

	if cmd.Category != "test" {
		t.Errorf("Category = %v, want %v", cmd.Category, "test")
	}

	if cmd.Run == nil {
		t.Error("Run function is nil")
	}
}

// TestCommandWithOptions verifies the WithOptions builder method
func TestCommandWithOptions(t *testing.T) {
	handler := func(ctx *CommandContext) error {
		return nil
	}

	option := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "test-option",
		Description: "Test option",
		Required:    true,
	}

	cmd := NewCommand("test", "Test command", "test", handler).
		WithOptions(option)

	if cmd.Options == nil {
		t.Fatal("Options is nil")
	}

	if len(cmd.Options) != 1 {
		t.Fatalf("Options length = %v, want %v", len(cmd.Options), 1)
	}

	if cmd.Options[0].Name != "test-option" {
		t.Errorf("Option name = %v, want %v", cmd.Options[0].Name, "test-option")
	}
}

// TestCommandWithPermissions verifies the permission builder methods
func TestCommandWithPermissions(t *testing.T) {
	handler := func(ctx *CommandContext) error {
		return nil
	}

	cmd := NewCommand("test", "Test command", "test", handler).
		WithUserPermissions(discordgo.PermissionAdministrator).
		WithBotPermissions(discordgo.PermissionSendMessages)

	if cmd.UserPermissions != discordgo.PermissionAdministrator {
		t.Errorf("UserPermissions = %v, want %v", cmd.UserPermissions, discordgo.PermissionAdministrator)
	}

	if cmd.BotPermissions != discordgo.PermissionSendMessages {
		t.Errorf("BotPermissions = %v, want %v", cmd.BotPermissions, discordgo.PermissionSendMessages)
	}
}

// TestCommandAsDev verifies the AsDev builder method
func TestCommandAsDev(t *testing.T) {
	handler := func(ctx *CommandContext) error {
		return nil
	}

	cmd := NewCommand("test", "Test command", "test", handler).AsDev()

	if !cmd.IsDev {
		t.Error("IsDev should be true after calling AsDev()")
	}
}

// TestCommandAsModOnly verifies that mod-only commands are guild-only too
func TestCommandAsModOnly(t *testing.T) {
	cmd := NewCommand("warn", "Warn", "mod", func(ctx *CommandContext) error { return nil }).AsModOnly()

	if !cmd.ModOnly || !cmd.GuildOnly {
		t.Errorf("ModOnly = %v, GuildOnly = %v, want both true", cmd.ModOnly, cmd.GuildOnly)
	}
}

// TestToApplicationCommand verifies conversion to Discord application command
func TestToApplicationCommand(t *testing.T) {
	handler := func(ctx *CommandContext) error {
		return nil
	}

	option := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "test-option",
		Description: "Test option",
		Required:    true,
	}

	cmd := NewCommand("test", "Test command", "test", handler).
		WithOptions(option)

	appCmd := cmd.ToApplicationCommand()

	if appCmd == nil {
		t.Fatal("ToApplicationCommand returned nil")
	}

	if appCmd.Name != "test" {
		t.Errorf("ApplicationCommand Name = %v, want %v", appCmd.Name, "test")
	}

	if appCmd.Description != "Test command" {
		t.Errorf("ApplicationCommand Description = %v, want %v", appCmd.Description, "Test command")
	}

	if len(appCmd.Options) != 1 {
		t.Fatalf("ApplicationCommand Options length = %v, want %v", len(appCmd.Options), 1)
	}

	if appCmd.DefaultMemberPermissions != nil {
		t.Errorf("DefaultMemberPermissions = %v, want nil", *appCmd.DefaultMemberPermissions)
	}

	appCmd = cmd.WithUserPermissions(discordgo.PermissionBanMembers).ToApplicationCommand()
	if appCmd.DefaultMemberPermissions == nil || *appCmd.DefaultMemberPermissions != discordgo.PermissionBanMembers {
		t.Errorf("DefaultMemberPermissions not set from UserPermissions")
	}
}

func TestResolveCommandName(t *testing.T) {
	tests := []struct {
		name string
		data discordgo.ApplicationCommandInteractionData
		want string
	}{
		{
			name: "plain",
			data: discordgo.ApplicationCommandInteractionData{Name: "ping"},
			want: "ping",
		},
		{
			name: "subcommand",
			data: discordgo.ApplicationCommandInteractionData{
				Name: "mod",
				Options: []*discordgo.ApplicationCommandInteractionDataOption{
					{Name: "warn", Type: discordgo.ApplicationCommandOptionSubCommand},
				},
			},
			want: "mod.warn",
		},
		{
			name: "group",
			data: discordgo.ApplicationCommandInteractionData{
				Name: "config",
				Options: []*discordgo.ApplicationCommandInteractionDataOption{
					{
						Name: "set",
						Type: discordgo.ApplicationCommandOptionSubCommandGroup,
						Options: []*discordgo.ApplicationCommandInteractionDataOption{
							{Name: "prefix", Type: discordgo.ApplicationCommandOptionSubCommand},
						},
					},
				},
			},
			want: "config.set.prefix",
		},
		{
			name: "plain with options",
			data: discordgo.ApplicationCommandInteractionData{
				Name: "report",
				Options: []*discordgo.ApplicationCommandInteractionDataOption{
					{Name: "usuario", Type: discordgo.ApplicationCommandOptionUser},
				},
			},
			want: "report",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveCommandName(tt.data); got != tt.want {
				t.Errorf("resolveCommandName() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindOptionNested(t *testing.T) {
	options := []*discordgo.ApplicationCommandInteractionDataOption{
		{
			Name: "warn",
			Type: discordgo.ApplicationCommandOptionSubCommand,
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{Name: "razon", Type: discordgo.ApplicationCommandOptionString, Value: "spam"},
			},
		},
	}

	opt := findOption(options, "razon")
	if opt == nil {
		t.Fatal("findOption() did not find nested option")
	}
	if opt.StringValue() != "spam" {
		t.Errorf("StringValue() = %v, want %v", opt.StringValue(), "spam")
	}
	if findOption(options, "usuario") != nil {
		t.Error("findOption() found an option that does not exist")
	}
}
