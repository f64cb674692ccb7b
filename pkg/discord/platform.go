package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// Platform implements moderation.Platform over a discordgo session.
type Platform struct {
	session *discordgo.Session
}

// NewPlatform creates a Platform
func NewPlatform(session *discordgo.Session) *Platform {
	return &Platform{session: session}
}

var _ moderation.Platform = (*Platform)(nil)

func requestOptions(ctx context.Context, reason string) []discordgo.RequestOption {
	opts := []discordgo.RequestOption{discordgo.WithContext(ctx)}
	if reason != "" {
		opts = append(opts, discordgo.WithAuditLogReason(reason))
	}
	return opts
}

func isNotFound(err error) bool {
	var restErr *discordgo.RESTError
	return errors.As(err, &restErr) && restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound
}

// MemberRoles returns the member's roles without the everyone role
func (p *Platform) MemberRoles(ctx context.Context, guildID, memberID string) ([]string, error) {
	member, err := p.session.State.Member(guildID, memberID)
	if err != nil {
		member, err = p.session.GuildMember(guildID, memberID, discordgo.WithContext(ctx))
		if err != nil {
			return nil, err
		}
	}

	roles := make([]string, 0, len(member.Roles))
	for _, id := range member.Roles {
		if id != guildID {
			roles = append(roles, id)
		}
	}
	return roles, nil
}

// SetMemberRoles replaces the member's roles. Roles deleted from the guild
// since they were saved are skipped.
func (p *Platform) SetMemberRoles(ctx context.Context, guildID, memberID string, roleIDs []string, reason string) error {
	roles := make([]string, 0, len(roleIDs))
	for _, id := range roleIDs {
		if p.knownRole(guildID, id) {
			roles = append(roles, id)
		} else {
			logger.Debug(fmt.Sprintf("Rol %s ya no existe en %s, se omite", id, guildID), "Platform")
		}
	}

	_, err := p.session.GuildMemberEdit(guildID, memberID, &discordgo.GuildMemberParams{Roles: &roles}, requestOptions(ctx, reason)...)
	return err
}

// knownRole reports false only when the state cache holds the guild and the role is missing from it.
func (p *Platform) knownRole(guildID, roleID string) bool {
	if _, err := p.session.State.Guild(guildID); err != nil {
		return true
	}
	_, err := p.session.State.Role(guildID, roleID)
	return err == nil
}

// RoleExists checks the state cache first and falls back to the REST API
func (p *Platform) RoleExists(ctx context.Context, guildID, roleID string) (bool, error) {
	if _, err := p.session.State.Role(guildID, roleID); err == nil {
		return true, nil
	}

	roles, err := p.session.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return false, err
	}
	for _, role := range roles {
		if role.ID == roleID {
			return true, nil
		}
	}
	return false, nil
}

// CreateRole creates a role without permissions. With DenySend every text
// channel gets an overwrite denying messages to the role.
func (p *Platform) CreateRole(ctx context.Context, guildID string, spec moderation.RoleSpec) (string, error) {
	var noPerms int64
	color, hoist, mentionable := spec.Color, spec.Hoist, spec.Mentionable

	role, err := p.session.GuildRoleCreate(guildID, &discordgo.RoleParams{
		Name:        spec.Name,
		Color:       &color,
		Hoist:       &hoist,
		Mentionable: &mentionable,
		Permissions: &noPerms,
	}, requestOptions(ctx, spec.Reason)...)
	if err != nil {
		return "", err
	}

	if spec.DenySend {
		p.denySend(ctx, guildID, role.ID)
	}
	return role.ID, nil
}

// DeleteRole removes a role from the guild
func (p *Platform) DeleteRole(ctx context.Context, guildID, roleID, reason string) error {
	return p.session.GuildRoleDelete(guildID, roleID, requestOptions(ctx, reason)...)
}

func (p *Platform) denySend(ctx context.Context, guildID, roleID string) {
	channels, err := p.session.GuildChannels(guildID, discordgo.WithContext(ctx))
	if err != nil {
		logger.Warn(fmt.Sprintf("No se pudieron leer los canales de %s: %v", guildID, err), "Platform")
		return
	}

	deny := int64(discordgo.PermissionSendMessages | discordgo.PermissionSendMessagesInThreads |
		discordgo.PermissionAddReactions | discordgo.PermissionVoiceSpeak)

	for _, ch := range channels {
		if ch.Type != discordgo.ChannelTypeGuildText && ch.Type != discordgo.ChannelTypeGuildVoice &&
			ch.Type != discordgo.ChannelTypeGuildCategory && ch.Type != discordgo.ChannelTypeGuildNews {
			continue
		}
		err := p.session.ChannelPermissionSet(ch.ID, roleID, discordgo.PermissionOverwriteTypeRole, 0, deny, discordgo.WithContext(ctx))
		if err != nil {
			logger.Warn(fmt.Sprintf("No se pudo restringir el canal %s: %v", ch.ID, err), "Platform")
		}
	}
}

func (p *Platform) Kick(ctx context.Context, guildID, memberID, reason string) error {
	return p.session.GuildMemberDeleteWithReason(guildID, memberID, reason, discordgo.WithContext(ctx))
}

func (p *Platform) Ban(ctx context.Context, guildID, memberID, reason string, deleteDays int) error {
	return p.session.GuildBanCreateWithReason(guildID, memberID, reason, deleteDays, discordgo.WithContext(ctx))
}

func (p *Platform) Unban(ctx context.Context, guildID, userID string) error {
	return p.session.GuildBanDelete(guildID, userID, discordgo.WithContext(ctx))
}

// Bans pages through the guild's ban list
func (p *Platform) Bans(ctx context.Context, guildID string) ([]moderation.Ban, error) {
	var (
		out   []moderation.Ban
		after string
	)
	for {
		page, err := p.session.GuildBans(guildID, 1000, "", after, discordgo.WithContext(ctx))
		if err != nil {
			if isNotFound(err) {
				return out, nil
			}
			return nil, err
		}
		bans, last := readBanPage(page, after)
		out = append(out, bans...)
		if len(page) < 1000 || last == after {
			return out, nil
		}
		after = last
	}
}

// readBanPage converts one page of bans and returns the cursor for the next
// page: the last entry that carried a user, or after when none did.
func readBanPage(page []*discordgo.GuildBan, after string) ([]moderation.Ban, string) {
	bans := make([]moderation.Ban, 0, len(page))
	for _, b := range page {
		if b == nil || b.User == nil {
			continue
		}
		after = b.User.ID
		bans = append(bans, moderation.Ban{UserID: b.User.ID, Username: b.User.Username, Reason: b.Reason})
	}
	return bans, after
}
