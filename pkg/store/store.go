// Package store persists the moderation documents (warns, mutes, options).
// Each document is keyed by guild id and read or written as a whole guild blob.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Kind names one of the persisted documents
type Kind string

const (
	KindWarns   Kind = "warns"
	KindMutes   Kind = "mutes"
	KindOptions Kind = "options"
)

// Kinds lists every document kind
var Kinds = []Kind{KindWarns, KindMutes, KindOptions}

// ErrUnavailable is returned when the backing medium cannot be read or written,
// or when a stored blob cannot be decoded.
var ErrUnavailable = errors.New("store unavailable")

// Backend stores raw JSON blobs per (kind, guild).
// Save replaces the whole blob atomically with respect to other Load/Save
// calls for the same kind.
type Backend interface {
	Load(ctx context.Context, kind Kind, guildID string) (data []byte, found bool, err error)
	Save(ctx context.Context, kind Kind, guildID string, data []byte) error
	Ping(ctx context.Context) (time.Duration, error)
	Name() string
	Close(ctx context.Context) error
}

func unavailable(op string, kind Kind, guildID string, err error) error {
	if errors.Is(err, ErrUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %s %s/%s: %v", ErrUnavailable, op, kind, guildID, err)
}
