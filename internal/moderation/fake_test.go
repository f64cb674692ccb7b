package moderation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/store"
)

type fakePlatform struct {
	mu          sync.Mutex
	members     map[string][]string
	guildRoles  map[string]map[string]bool
	nextRole    int
	createCalls int32
	deleteCalls int32
	setCalls    int32
	createDelay time.Duration
	createErr   error
	setErr      error
	kicked      []string
	banned      map[string]Ban
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		members:    make(map[string][]string),
		guildRoles: make(map[string]map[string]bool),
		banned:     make(map[string]Ban),
	}
}

func memberKey(guildID, memberID string) string {
	return guildID + "/" + memberID
}

func (f *fakePlatform) setRoles(guildID, memberID string, roles ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.members[memberKey(guildID, memberID)] = append([]string(nil), roles...)
}

func (f *fakePlatform) rolesOf(guildID, memberID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.members[memberKey(guildID, memberID)]...)
}

func (f *fakePlatform) deleteRole(guildID, roleID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.guildRoles[guildID], roleID)
}

func (f *fakePlatform) MemberRoles(_ context.Context, guildID, memberID string) ([]string, error) {
	return f.rolesOf(guildID, memberID), nil
}

func (f *fakePlatform) SetMemberRoles(_ context.Context, guildID, memberID string, roleIDs []string, _ string) error {
	atomic.AddInt32(&f.setCalls, 1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.members[memberKey(guildID, memberID)] = append([]string(nil), roleIDs...)
	return nil
}

func (f *fakePlatform) RoleExists(_ context.Context, guildID, roleID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.guildRoles[guildID][roleID], nil
}

func (f *fakePlatform) CreateRole(_ context.Context, guildID string, spec RoleSpec) (string, error) {
	atomic.AddInt32(&f.createCalls, 1)
	if f.createDelay > 0 {
		time.Sleep(f.createDelay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	f.nextRole++
	id := fmt.Sprintf("role-%d", f.nextRole)
	if f.guildRoles[guildID] == nil {
		f.guildRoles[guildID] = make(map[string]bool)
	}
	f.guildRoles[guildID][id] = true
	return id, nil
}

func (f *fakePlatform) DeleteRole(_ context.Context, guildID, roleID, _ string) error {
	atomic.AddInt32(&f.deleteCalls, 1)
	f.deleteRole(guildID, roleID)
	return nil
}

func (f *fakePlatform) roleCount(guildID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.guildRoles[guildID])
}

func (f *fakePlatform) Kick(_ context.Context, guildID, memberID, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kicked = append(f.kicked, memberKey(guildID, memberID))
	return nil
}

func (f *fakePlatform) Ban(_ context.Context, _, memberID, reason string, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.banned[memberID] = Ban{UserID: memberID, Reason: reason}
	return nil
}

func (f *fakePlatform) Unban(_ context.Context, _, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.banned[userID]; !ok {
		return errors.New("unknown ban")
	}
	delete(f.banned, userID)
	return nil
}

func (f *fakePlatform) Bans(context.Context, string) ([]Ban, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Ban, 0, len(f.banned))
	for _, b := range f.banned {
		out = append(out, b)
	}
	return out, nil
}

// recordingBackend counts saves per kind and can refuse them.
type recordingBackend struct {
	*store.MemoryBackend
	mu     sync.Mutex
	saves  map[store.Kind]int
	refuse map[store.Kind]bool
}

func newRecordingBackend() *recordingBackend {
	return &recordingBackend{
		MemoryBackend: store.NewMemoryBackend(),
		saves:         make(map[store.Kind]int),
		refuse:        make(map[store.Kind]bool),
	}
}

func (r *recordingBackend) Save(ctx context.Context, kind store.Kind, guildID string, data []byte) error {
	r.mu.Lock()
	refuse := r.refuse[kind]
	if !refuse {
		r.saves[kind]++
	}
	r.mu.Unlock()

	if refuse {
		return errors.New("disk full")
	}
	return r.MemoryBackend.Save(ctx, kind, guildID, data)
}

func (r *recordingBackend) saveCount(kind store.Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves[kind]
}

func (r *recordingBackend) setRefuse(kind store.Kind, refuse bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refuse[kind] = refuse
}

type eventSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *eventSink) Publish(_ context.Context, e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *eventSink) all() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}
