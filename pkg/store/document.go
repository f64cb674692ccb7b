package store

import (
	"bytes"
	"context"

	"github.com/goccy/go-json"
)

// Document is a typed view over one kind of a Backend.
type Document[T any] struct {
	backend    Backend
	kind       Kind
	newDefault func() T
}

// NewDocument creates a Document. newDefault builds the value returned for a
// guild that has no blob yet; stored fields are decoded on top of it.
func NewDocument[T any](backend Backend, kind Kind, newDefault func() T) *Document[T] {
	return &Document[T]{backend: backend, kind: kind, newDefault: newDefault}
}

// Kind returns the document kind
func (d *Document[T]) Kind() Kind {
	return d.kind
}

// Get returns the guild blob, or the default when none is stored.
func (d *Document[T]) Get(ctx context.Context, guildID string) (T, error) {
	value := d.newDefault()

	raw, found, err := d.backend.Load(ctx, d.kind, guildID)
	if err != nil {
		return value, unavailable("load", d.kind, guildID, err)
	}
	raw = bytes.TrimSpace(raw)
	if !found || len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return value, nil
	}

	if err := json.Unmarshal(raw, &value); err != nil {
		return d.newDefault(), unavailable("decode", d.kind, guildID, err)
	}
	return value, nil
}

// Put replaces the guild blob.
func (d *Document[T]) Put(ctx context.Context, guildID string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return unavailable("encode", d.kind, guildID, err)
	}
	if err := d.backend.Save(ctx, d.kind, guildID, raw); err != nil {
		return unavailable("save", d.kind, guildID, err)
	}
	return nil
}
