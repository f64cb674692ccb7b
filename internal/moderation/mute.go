package moderation

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/store"
	"golang.org/x/sync/singleflight"
)

// MuteResult describes a successful mute
type MuteResult struct {
	RestrictiveRoleID string   `json:"restrictive_role_id"`
	SavedRoleIDs      []string `json:"saved_role_ids"`
}

// MuteManager swaps a member's roles for the muted role and restores them later.
// A mute record exists iff the member is muted. The platform call always runs
// before the record is written or deleted.
type MuteManager struct {
	mutes    *store.Document[models.MutesBlob]
	config   *ConfigResolver
	platform RolePlatform
	locks    *Locks
	flight   singleflight.Group
}

// NewMuteManager creates a MuteManager
func NewMuteManager(backend store.Backend, config *ConfigResolver, platform RolePlatform, locks *Locks) *MuteManager {
	return &MuteManager{
		mutes:    store.NewDocument(backend, store.KindMutes, func() models.MutesBlob { return models.MutesBlob{} }),
		config:   config,
		platform: platform,
		locks:    locks,
	}
}

// EnsureRestrictiveRole returns the guild's muted role, creating and storing
// one when the configured role is unset or gone. Concurrent callers for the
// same guild share a single creation.
func (m *MuteManager) EnsureRestrictiveRole(ctx context.Context, guildID string) (string, error) {
	v, err, _ := m.flight.Do(guildID, func() (interface{}, error) {
		defer m.locks.Role(guildID)()
		return m.ensureRole(ctx, guildID)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (m *MuteManager) ensureRole(ctx context.Context, guildID string) (string, error) {
	opts, err := m.config.Get(ctx, guildID)
	if err != nil {
		return "", err
	}

	if opts.MutedRole != "" {
		exists, err := m.platform.RoleExists(ctx, guildID, opts.MutedRole.String())
		if err != nil {
			return "", fmt.Errorf("checking muted role: %w", err)
		}
		if exists {
			return opts.MutedRole.String(), nil
		}
	}

	roleID, err := m.platform.CreateRole(ctx, guildID, MutedRoleSpec)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRoleCreationFailed, err)
	}
	logger.Info(fmt.Sprintf("Rol Muted creado en %s: %s", guildID, roleID), "Mute")

	if _, err := m.config.Set(ctx, guildID, models.OptionsPatch{MutedRole: &roleID}); err != nil {
		// an unrecorded role would be duplicated by every retry
		if delErr := m.platform.DeleteRole(ctx, guildID, roleID, "Muted role could not be saved"); delErr != nil {
			logger.Error(fmt.Sprintf("No se pudo borrar el rol Muted huérfano %s en %s: %v", roleID, guildID, delErr), "Mute")
		}
		return "", err
	}
	return roleID, nil
}

// Mute replaces the member's roles with the muted role and records the roles
// it had. currentRoleIDs nil means "ask the platform".
func (m *MuteManager) Mute(ctx context.Context, guildID, memberID string, currentRoleIDs []string) (MuteResult, error) {
	defer m.locks.Member(guildID, memberID)()

	blob, err := m.mutes.Get(ctx, guildID)
	if err != nil {
		return MuteResult{}, err
	}
	if _, muted := blob[memberID]; muted {
		return MuteResult{}, ErrAlreadyMuted
	}

	roleID, err := m.EnsureRestrictiveRole(ctx, guildID)
	if err != nil {
		return MuteResult{}, err
	}

	if currentRoleIDs == nil {
		currentRoleIDs, err = m.platform.MemberRoles(ctx, guildID, memberID)
		if err != nil {
			return MuteResult{}, fmt.Errorf("reading member roles: %w", err)
		}
	}
	saved := savedRoles(guildID, roleID, currentRoleIDs)

	if err := m.platform.SetMemberRoles(ctx, guildID, memberID, []string{roleID}, "Muted"); err != nil {
		return MuteResult{}, fmt.Errorf("applying muted role: %w", err)
	}

	err = m.update(ctx, guildID, func(blob models.MutesBlob) bool {
		blob[memberID] = saved
		return true
	})
	if err != nil {
		if rbErr := m.platform.SetMemberRoles(ctx, guildID, memberID, saved, "Mute rollback"); rbErr != nil {
			logger.Error(fmt.Sprintf("No se pudieron restaurar los roles de %s en %s: %v", memberID, guildID, rbErr), "Mute")
			return MuteResult{}, errors.Join(err, rbErr)
		}
		return MuteResult{}, err
	}

	return MuteResult{RestrictiveRoleID: roleID, SavedRoleIDs: saved}, nil
}

// Unmute restores the recorded roles and then forgets the mute. A platform
// failure keeps the record so the unmute can be retried.
func (m *MuteManager) Unmute(ctx context.Context, guildID, memberID string) ([]string, error) {
	defer m.locks.Member(guildID, memberID)()

	blob, err := m.mutes.Get(ctx, guildID)
	if err != nil {
		return nil, err
	}
	saved, muted := blob[memberID]
	if !muted {
		return nil, ErrNoPriorMute
	}
	if saved == nil {
		saved = []string{}
	}

	if err := m.platform.SetMemberRoles(ctx, guildID, memberID, saved, "Unmuted"); err != nil {
		return nil, fmt.Errorf("restoring roles: %w", err)
	}

	err = m.update(ctx, guildID, func(blob models.MutesBlob) bool {
		if _, ok := blob[memberID]; !ok {
			return false
		}
		delete(blob, memberID)
		return true
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// IsMuted reports whether the member has a mute record
func (m *MuteManager) IsMuted(ctx context.Context, guildID, memberID string) (bool, error) {
	blob, err := m.mutes.Get(ctx, guildID)
	if err != nil {
		return false, err
	}
	_, muted := blob[memberID]
	return muted, nil
}

// Muted returns the sorted ids of every muted member of the guild
func (m *MuteManager) Muted(ctx context.Context, guildID string) ([]string, error) {
	blob, err := m.mutes.Get(ctx, guildID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(blob))
	for id := range blob {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Snapshot returns a copy of every mute recorded for the guild, read in one
// pass.
func (m *MuteManager) Snapshot(ctx context.Context, guildID string) (models.MutesBlob, error) {
	blob, err := m.mutes.Get(ctx, guildID)
	if err != nil {
		return nil, err
	}
	out := make(models.MutesBlob, len(blob))
	for id, roles := range blob {
		out[id] = append([]string{}, roles...)
	}
	return out, nil
}

// SavedRoles returns the roles recorded for a muted member
func (m *MuteManager) SavedRoles(ctx context.Context, guildID, memberID string) ([]string, bool, error) {
	blob, err := m.mutes.Get(ctx, guildID)
	if err != nil {
		return nil, false, err
	}
	saved, muted := blob[memberID]
	return saved, muted, nil
}

// Reapply gives the muted role back to a muted member that rejoined the
// guild. It returns false when the member is not muted.
func (m *MuteManager) Reapply(ctx context.Context, guildID, memberID string) (bool, error) {
	defer m.locks.Member(guildID, memberID)()

	blob, err := m.mutes.Get(ctx, guildID)
	if err != nil {
		return false, err
	}
	if _, muted := blob[memberID]; !muted {
		return false, nil
	}

	roleID, err := m.EnsureRestrictiveRole(ctx, guildID)
	if err != nil {
		return false, err
	}
	if err := m.platform.SetMemberRoles(ctx, guildID, memberID, []string{roleID}, "Muted"); err != nil {
		return false, fmt.Errorf("applying muted role: %w", err)
	}
	return true, nil
}

func (m *MuteManager) update(ctx context.Context, guildID string, fn func(models.MutesBlob) bool) error {
	defer m.locks.Document(store.KindMutes, guildID)()

	blob, err := m.mutes.Get(ctx, guildID)
	if err != nil {
		return err
	}
	if !fn(blob) {
		return nil
	}
	return m.mutes.Put(ctx, guildID, blob)
}

// savedRoles drops the everyone role (whose id equals the guild id), the
// muted role itself and duplicates, keeping the original order.
func savedRoles(guildID, mutedRoleID string, roleIDs []string) []string {
	seen := make(map[string]struct{}, len(roleIDs))
	out := make([]string, 0, len(roleIDs))
	for _, id := range roleIDs {
		if id == "" || id == guildID || id == mutedRoleID {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
