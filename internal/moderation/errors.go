package moderation

import (
	"errors"

	"github.com/PancyStudios/PancyGuardGo/pkg/store"
)

var (
	// ErrAlreadyMuted is returned by Mute when the member already has a mute record
	ErrAlreadyMuted = errors.New("member is already muted")
	// ErrNoPriorMute is returned by Unmute when the member has no mute record
	ErrNoPriorMute = errors.New("member is not muted")
	// ErrInvalidWarningIndex is returned when a warning index is out of range
	ErrInvalidWarningIndex = errors.New("invalid warning index")
	// ErrRoleCreationFailed is returned when the platform refuses to create the muted role
	ErrRoleCreationFailed = errors.New("muted role creation failed")
	// ErrNoReportChannel is returned by Report when the guild has no public log channel
	ErrNoReportChannel = errors.New("public log channel not set")
	// ErrReportNotDelivered is returned by Report when the report could not be posted
	ErrReportNotDelivered = errors.New("report not delivered")
	// ErrStoreUnavailable aliases store.ErrUnavailable for callers of this package
	ErrStoreUnavailable = store.ErrUnavailable
)
