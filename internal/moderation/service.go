// Package moderation implements the warning ledger, the mute manager and the
// guild config resolver, plus the service the commands, the HTTP API and the
// MQTT handlers call into.
package moderation

import (
	"context"
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/store"
)

// Service ties the core components to the platform and the event publishers.
// Every mutating method publishes an Event after it succeeds.
type Service struct {
	Ledger *Ledger
	Mutes  *MuteManager
	Config *ConfigResolver

	platform   Platform
	publisher  Publishers
	logChannel Publisher
}

// NewService builds the moderation core over one store backend
func NewService(backend store.Backend, platform Platform, defaultPrefix string, publishers ...Publisher) *Service {
	locks := NewLocks()
	config := NewConfigResolver(backend, locks, defaultPrefix)

	return &Service{
		Ledger:    NewLedger(backend, locks),
		Mutes:     NewMuteManager(backend, config, platform, locks),
		Config:    config,
		platform:  platform,
		publisher: publishers,
	}
}

// AddPublisher registers another event publisher. Not safe to call while
// actions are running.
func (s *Service) AddPublisher(p Publisher) {
	s.publisher = append(s.publisher, p)
}

// SetLogChannel registers the publisher that posts to the guild's public log
// channel. It receives every event, and Report fails when it fails.
func (s *Service) SetLogChannel(p Publisher) {
	s.logChannel = p
}

func (s *Service) emit(ctx context.Context, event Event) {
	logEvent(event)
	if s.logChannel != nil {
		_ = Publishers{s.logChannel}.Publish(ctx, event)
	}
	_ = s.publisher.Publish(ctx, event)
}

func logEvent(event Event) {
	logger.Info(fmt.Sprintf("%s en %s: %s por %s (%s)", event.Action, event.GuildID, event.TargetID, event.ModeratorID, event.Reason), "Moderation")
}

// Warn records a warning and returns the member's warning count
func (s *Service) Warn(ctx context.Context, guildID, targetID, moderatorID, reason string) (int, error) {
	reason = NormalizeReason(reason)
	count, err := s.Ledger.Warn(ctx, guildID, targetID, reason)
	if err != nil {
		return 0, err
	}

	event := NewEvent(ActionWarn, guildID, targetID, moderatorID, reason)
	event.Count = count
	s.emit(ctx, event)
	return count, nil
}

// ClearWarning removes one warning, returning ErrInvalidWarningIndex when the
// index does not exist.
func (s *Service) ClearWarning(ctx context.Context, guildID, targetID, moderatorID string, index int) error {
	removed, err := s.Ledger.ClearWarning(ctx, guildID, targetID, index)
	if err != nil {
		return err
	}
	if !removed {
		return ErrInvalidWarningIndex
	}

	event := NewEvent(ActionClearWarn, guildID, targetID, moderatorID, fmt.Sprintf("Warn #%d", index))
	event.Count = 1
	s.emit(ctx, event)
	return nil
}

// ClearWarnings drops every warning of a member and returns how many were removed
func (s *Service) ClearWarnings(ctx context.Context, guildID, targetID, moderatorID string) (int, error) {
	removed, err := s.Ledger.Purge(ctx, guildID, targetID)
	if err != nil || removed == 0 {
		return removed, err
	}

	event := NewEvent(ActionClearWarns, guildID, targetID, moderatorID, DefaultReason)
	event.Count = removed
	s.emit(ctx, event)
	return removed, nil
}

// Mute mutes a member. currentRoleIDs nil reads the roles from the platform.
func (s *Service) Mute(ctx context.Context, guildID, targetID, moderatorID, reason string, currentRoleIDs []string) (MuteResult, error) {
	result, err := s.Mutes.Mute(ctx, guildID, targetID, currentRoleIDs)
	if err != nil {
		return result, err
	}

	event := NewEvent(ActionMute, guildID, targetID, moderatorID, NormalizeReason(reason))
	event.RoleIDs = result.SavedRoleIDs
	s.emit(ctx, event)
	return result, nil
}

// Unmute restores a muted member's roles
func (s *Service) Unmute(ctx context.Context, guildID, targetID, moderatorID, reason string) ([]string, error) {
	restored, err := s.Mutes.Unmute(ctx, guildID, targetID)
	if err != nil {
		return nil, err
	}

	event := NewEvent(ActionUnmute, guildID, targetID, moderatorID, NormalizeReason(reason))
	event.RoleIDs = restored
	s.emit(ctx, event)
	return restored, nil
}

// Kick removes a member from the guild
func (s *Service) Kick(ctx context.Context, guildID, targetID, moderatorID, reason string) error {
	reason = NormalizeReason(reason)
	if err := s.platform.Kick(ctx, guildID, targetID, reason); err != nil {
		return fmt.Errorf("kicking member: %w", err)
	}
	s.emit(ctx, NewEvent(ActionKick, guildID, targetID, moderatorID, reason))
	return nil
}

// Ban bans a user, deleting deleteDays days of their messages
func (s *Service) Ban(ctx context.Context, guildID, targetID, moderatorID, reason string, deleteDays int) error {
	reason = NormalizeReason(reason)
	if deleteDays < 0 {
		deleteDays = 0
	}
	if deleteDays > 7 {
		deleteDays = 7
	}
	if err := s.platform.Ban(ctx, guildID, targetID, reason, deleteDays); err != nil {
		return fmt.Errorf("banning user: %w", err)
	}
	s.emit(ctx, NewEvent(ActionBan, guildID, targetID, moderatorID, reason))
	return nil
}

// Unban lifts a ban
func (s *Service) Unban(ctx context.Context, guildID, targetID, moderatorID, reason string) error {
	if err := s.platform.Unban(ctx, guildID, targetID); err != nil {
		return fmt.Errorf("unbanning user: %w", err)
	}
	s.emit(ctx, NewEvent(ActionUnban, guildID, targetID, moderatorID, NormalizeReason(reason)))
	return nil
}

// Bans lists the guild's bans
func (s *Service) Bans(ctx context.Context, guildID string) ([]Ban, error) {
	bans, err := s.platform.Bans(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("listing bans: %w", err)
	}
	return bans, nil
}

// Report forwards a member report to the guild's public log channel. It
// fails with ErrNoReportChannel when that channel is not configured and with
// ErrReportNotDelivered when posting it failed. Without a log channel
// publisher the report counts as delivered only if every publisher took it.
func (s *Service) Report(ctx context.Context, guildID, targetID, reporterID, reason string) error {
	opts, err := s.Config.Get(ctx, guildID)
	if err != nil {
		return err
	}
	if opts.PublicLog == "" {
		return ErrNoReportChannel
	}

	event := NewEvent(ActionReport, guildID, targetID, reporterID, NormalizeReason(reason))
	logEvent(event)

	if s.logChannel == nil {
		if err := s.publisher.Publish(ctx, event); err != nil {
			return fmt.Errorf("%w: %v", ErrReportNotDelivered, err)
		}
		return nil
	}

	if err := s.logChannel.Publish(ctx, event); err != nil {
		return fmt.Errorf("%w: %v", ErrReportNotDelivered, err)
	}
	_ = s.publisher.Publish(ctx, event)
	return nil
}
