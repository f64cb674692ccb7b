package moderation

import "context"

// RoleSpec describes a role to create on the platform
type RoleSpec struct {
	Name        string
	Color       int
	Hoist       bool
	Mentionable bool
	// DenySend asks the platform to deny sending messages to holders of the role
	DenySend bool
	Reason   string
}

// MutedRoleSpec is the role created for guilds without a usable muted role.
var MutedRoleSpec = RoleSpec{
	Name:        "Muted",
	Color:       0x979C9F,
	Hoist:       true,
	Mentionable: true,
	DenySend:    true,
	Reason:      "No muted role detected, so I automatically created one!",
}

// Ban is one entry of a guild's ban list
type Ban struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Reason   string `json:"reason"`
}

// RolePlatform is the part of the chat platform the mute manager needs.
// Role id lists never include the guild's implicit everyone role.
type RolePlatform interface {
	MemberRoles(ctx context.Context, guildID, memberID string) ([]string, error)
	SetMemberRoles(ctx context.Context, guildID, memberID string, roleIDs []string, reason string) error
	RoleExists(ctx context.Context, guildID, roleID string) (bool, error)
	CreateRole(ctx context.Context, guildID string, spec RoleSpec) (string, error)
	DeleteRole(ctx context.Context, guildID, roleID, reason string) error
}

// Platform is the full set of member actions used by the moderation service.
type Platform interface {
	RolePlatform
	Kick(ctx context.Context, guildID, memberID, reason string) error
	Ban(ctx context.Context, guildID, memberID, reason string, deleteDays int) error
	Unban(ctx context.Context, guildID, userID string) error
	Bans(ctx context.Context, guildID string) ([]Ban, error)
}
