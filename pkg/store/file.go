package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// FileBackend keeps one JSON file per kind in a directory:
// warns.json, mutes.json and options.json, each shaped {guild: blob}.
type FileBackend struct {
	dir   string
	locks sync.Map // Kind -> *sync.RWMutex
}

// NewFileBackend creates the data directory if needed
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

func (f *FileBackend) lock(kind Kind) *sync.RWMutex {
	l, _ := f.locks.LoadOrStore(kind, &sync.RWMutex{})
	return l.(*sync.RWMutex)
}

// Path returns the file that holds a kind
func (f *FileBackend) Path(kind Kind) string {
	return filepath.Join(f.dir, string(kind)+".json")
}

func (f *FileBackend) read(kind Kind) (map[string]json.RawMessage, error) {
	doc := make(map[string]json.RawMessage)

	raw, err := os.ReadFile(f.Path(kind))
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("corrupted %s: %w", f.Path(kind), err)
	}
	if doc == nil {
		doc = make(map[string]json.RawMessage)
	}
	return doc, nil
}

func (f *FileBackend) Load(_ context.Context, kind Kind, guildID string) ([]byte, bool, error) {
	l := f.lock(kind)
	l.RLock()
	defer l.RUnlock()

	doc, err := f.read(kind)
	if err != nil {
		return nil, false, unavailable("read", kind, guildID, err)
	}
	raw, ok := doc[guildID]
	return raw, ok, nil
}

// Save rewrites the whole file through a temp file and a rename, so readers
// never observe a partial document.
func (f *FileBackend) Save(_ context.Context, kind Kind, guildID string, data []byte) error {
	l := f.lock(kind)
	l.Lock()
	defer l.Unlock()

	doc, err := f.read(kind)
	if err != nil {
		return unavailable("read", kind, guildID, err)
	}
	doc[guildID] = json.RawMessage(data)

	out, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return unavailable("encode", kind, guildID, err)
	}

	tmp, err := os.CreateTemp(f.dir, string(kind)+"-*.json.tmp")
	if err != nil {
		return unavailable("write", kind, guildID, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return unavailable("write", kind, guildID, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return unavailable("write", kind, guildID, err)
	}
	if err := os.Rename(tmpName, f.Path(kind)); err != nil {
		os.Remove(tmpName)
		return unavailable("write", kind, guildID, err)
	}
	return nil
}

func (f *FileBackend) Ping(context.Context) (time.Duration, error) {
	start := time.Now()
	_, err := os.Stat(f.dir)
	return time.Since(start), err
}

func (f *FileBackend) Name() string {
	return "file"
}

func (f *FileBackend) Close(context.Context) error {
	return nil
}
