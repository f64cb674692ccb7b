package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestCanModerate(t *testing.T) {
	tests := []struct {
		name    string
		member  *discordgo.Member
		modRole string
		want    bool
	}{
		{"nil member", nil, "1", false},
		{"administrator", &discordgo.Member{Permissions: discordgo.PermissionAdministrator}, "", true},
		{"mod role", &discordgo.Member{Roles: []string{"5", "1"}}, "1", true},
		{"other roles", &discordgo.Member{Roles: []string{"5"}}, "1", false},
		{"no mod role configured", &discordgo.Member{Roles: []string{"5"}}, "", false},
		{"ban permission only", &discordgo.Member{Permissions: discordgo.PermissionBanMembers}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanModerate(tt.member, tt.modRole); got != tt.want {
				t.Errorf("CanModerate() = %v, want %v", got, tt.want)
			}
		})
	}
}
