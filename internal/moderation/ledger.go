package moderation

import (
	"context"
	"strings"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/store"
)

// DefaultReason replaces an empty warning or action reason
const DefaultReason = "No reason was provided."

// Ledger is the per-guild warning log
type Ledger struct {
	warns *store.Document[models.WarnsBlob]
	locks *Locks
}

// NewLedger creates a Ledger over the warns document
func NewLedger(backend store.Backend, locks *Locks) *Ledger {
	return &Ledger{
		warns: store.NewDocument(backend, store.KindWarns, func() models.WarnsBlob { return models.WarnsBlob{} }),
		locks: locks,
	}
}

// NormalizeReason trims reason and substitutes DefaultReason when empty
func NormalizeReason(reason string) string {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return DefaultReason
	}
	return reason
}

// Warn appends a warning and returns the member's new warning count.
func (l *Ledger) Warn(ctx context.Context, guildID, memberID, reason string) (int, error) {
	defer l.locks.Member(guildID, memberID)()

	var count int
	err := l.update(ctx, guildID, func(blob models.WarnsBlob) bool {
		blob[memberID] = append(blob[memberID], NormalizeReason(reason))
		count = len(blob[memberID])
		return true
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ListWarnings returns the member's warnings in issue order, numbered from 1.
func (l *Ledger) ListWarnings(ctx context.Context, guildID, memberID string) ([]models.Warning, error) {
	defer l.locks.Member(guildID, memberID)()

	blob, err := l.warns.Get(ctx, guildID)
	if err != nil {
		return nil, err
	}
	return blob.WarningsOf(memberID), nil
}

// ClearWarning removes the warning at the 1-based index. An out of range
// index returns false and leaves the ledger untouched.
func (l *Ledger) ClearWarning(ctx context.Context, guildID, memberID string, index int) (bool, error) {
	defer l.locks.Member(guildID, memberID)()

	removed := false
	err := l.update(ctx, guildID, func(blob models.WarnsBlob) bool {
		reasons := blob[memberID]
		if index < 1 || index > len(reasons) {
			return false
		}
		blob[memberID] = append(reasons[:index-1:index-1], reasons[index:]...)
		removed = true
		return true
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// Purge drops every warning of the member and returns how many there were.
func (l *Ledger) Purge(ctx context.Context, guildID, memberID string) (int, error) {
	defer l.locks.Member(guildID, memberID)()

	var removed int
	err := l.update(ctx, guildID, func(blob models.WarnsBlob) bool {
		reasons, ok := blob[memberID]
		if !ok {
			return false
		}
		removed = len(reasons)
		delete(blob, memberID)
		return true
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// update re-reads the guild blob under the document lock and writes it back
// only when fn reports a change.
func (l *Ledger) update(ctx context.Context, guildID string, fn func(models.WarnsBlob) bool) error {
	defer l.locks.Document(store.KindWarns, guildID)()

	blob, err := l.warns.Get(ctx, guildID)
	if err != nil {
		return err
	}
	if !fn(blob) {
		return nil
	}
	return l.warns.Put(ctx, guildID, blob)
}
