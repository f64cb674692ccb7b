package store

import (
	"container/list"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
)

// cacheEntry holds a cached blob with its key
type cacheEntry struct {
	key   string
	data  []byte
	found bool
}

// CachedBackend is a read-through LRU in front of another Backend.
// Writes go to the backend first and refresh the cached copy on success.
type CachedBackend struct {
	backend Backend
	maxSize int

	mu    sync.Mutex
	items map[string]*list.Element
	order *list.List
	gen   uint64
}

// NewCachedBackend wraps backend. A maxSize of 0 or less returns backend unchanged.
func NewCachedBackend(backend Backend, maxSize int) Backend {
	if maxSize <= 0 {
		return backend
	}
	logger.System(fmt.Sprintf("Caché para '%s' preparada (tamaño máx: %d). Se llenará bajo demanda.", backend.Name(), maxSize), "Store")
	return &CachedBackend{
		backend: backend,
		maxSize: maxSize,
		items:   make(map[string]*list.Element),
		order:   list.New(),
	}
}

func cacheKey(kind Kind, guildID string) string {
	return string(kind) + ":" + guildID
}

func (c *CachedBackend) Load(ctx context.Context, kind Kind, guildID string) ([]byte, bool, error) {
	key := cacheKey(kind, guildID)

	c.mu.Lock()
	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		entry := elem.Value.(*cacheEntry)
		c.mu.Unlock()
		return append([]byte(nil), entry.data...), entry.found, nil
	}
	gen := c.gen
	c.mu.Unlock()

	data, found, err := c.backend.Load(ctx, kind, guildID)
	if err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	// a Save finished while we were reading; our copy may be stale
	if c.gen == gen {
		c.put(key, append([]byte(nil), data...), found)
	}
	c.mu.Unlock()

	return data, found, nil
}

func (c *CachedBackend) Save(ctx context.Context, kind Kind, guildID string, data []byte) error {
	key := cacheKey(kind, guildID)

	if err := c.backend.Save(ctx, kind, guildID, data); err != nil {
		c.mu.Lock()
		c.remove(key)
		c.gen++
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	c.put(key, append([]byte(nil), data...), true)
	c.gen++
	c.mu.Unlock()
	return nil
}

// put must be called with c.mu held
func (c *CachedBackend) put(key string, data []byte, found bool) {
	if elem, ok := c.items[key]; ok {
		elem.Value = &cacheEntry{key: key, data: data, found: found}
		c.order.MoveToFront(elem)
		return
	}

	c.items[key] = c.order.PushFront(&cacheEntry{key: key, data: data, found: found})
	if c.order.Len() > c.maxSize {
		if oldest := c.order.Back(); oldest != nil {
			delete(c.items, oldest.Value.(*cacheEntry).key)
			c.order.Remove(oldest)
		}
	}
}

func (c *CachedBackend) remove(key string) {
	if elem, ok := c.items[key]; ok {
		c.order.Remove(elem)
		delete(c.items, key)
	}
}

// Len returns the number of cached blobs
func (c *CachedBackend) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear drops every cached blob
func (c *CachedBackend) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*list.Element)
	c.order = list.New()
	c.gen++
}

func (c *CachedBackend) Ping(ctx context.Context) (time.Duration, error) {
	return c.backend.Ping(ctx)
}

func (c *CachedBackend) Name() string {
	return c.backend.Name() + "+lru"
}

func (c *CachedBackend) Close(ctx context.Context) error {
	return c.backend.Close(ctx)
}
