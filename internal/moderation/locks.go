package moderation

import (
	"sync"

	"github.com/PancyStudios/PancyGuardGo/pkg/store"
)

// keyedMutex hands out one mutex per key and forgets keys nobody holds.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*refMutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()

	return func() {
		m.Unlock()

		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

func (k *keyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}

// Locks groups the keyed mutexes shared by the ledger, the mute manager and
// the config resolver. Acquire in this order only: member, role, guild, document.
type Locks struct {
	members   keyedMutex
	roles     keyedMutex
	guilds    keyedMutex
	documents keyedMutex
}

// NewLocks creates an empty lock set
func NewLocks() *Locks {
	return &Locks{}
}

// Member serializes every ledger and mute operation on one (guild, member) pair.
func (l *Locks) Member(guildID, memberID string) (unlock func()) {
	return l.members.lock(guildID + "/" + memberID)
}

// Role serializes muted role creation for a guild.
func (l *Locks) Role(guildID string) (unlock func()) {
	return l.roles.lock(guildID)
}

// Guild serializes read-modify-write of a guild's options.
func (l *Locks) Guild(guildID string) (unlock func()) {
	return l.guilds.lock(guildID)
}

// Document serializes read-modify-write of one guild blob.
func (l *Locks) Document(kind store.Kind, guildID string) (unlock func()) {
	return l.documents.lock(string(kind) + "/" + guildID)
}
