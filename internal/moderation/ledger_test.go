package moderation

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reasonsOf(warnings []models.Warning) []string {
	out := make([]string, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, w.Reason)
	}
	return out
}

func TestWarnKeepsIssueOrder(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	l := NewLedger(store.NewMemoryBackend(), NewLocks())
	reasons := []string{"spam", "flood", "insultos", "links"}

	for i, r := range reasons {
		count, err := l.Warn(ctx, "g1", "m1", r)
		require.NoError(err)
		assert.Equal(i+1, count)
	}

	warnings, err := l.ListWarnings(ctx, "g1", "m1")
	require.NoError(err)
	assert.Equal(reasons, reasonsOf(warnings))
	for i, w := range warnings {
		assert.Equal(i+1, w.Index)
	}
}

func TestWarnEmptyReason(t *testing.T) {
	l := NewLedger(store.NewMemoryBackend(), NewLocks())

	_, err := l.Warn(context.Background(), "g1", "m1", "   ")
	require.NoError(t, err)

	warnings, err := l.ListWarnings(context.Background(), "g1", "m1")
	require.NoError(t, err)
	assert.Equal(t, []string{DefaultReason}, reasonsOf(warnings))
}

func TestListWarningsEmpty(t *testing.T) {
	l := NewLedger(store.NewMemoryBackend(), NewLocks())

	warnings, err := l.ListWarnings(context.Background(), "g1", "nobody")
	require.NoError(t, err)
	assert.NotNil(t, warnings)
	assert.Empty(t, warnings)
}

func TestClearWarningShifts(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	l := NewLedger(store.NewMemoryBackend(), NewLocks())
	for _, r := range []string{"a", "b", "c", "d"} {
		_, err := l.Warn(ctx, "g1", "m1", r)
		require.NoError(err)
	}

	removed, err := l.ClearWarning(ctx, "g1", "m1", 2)
	require.NoError(err)
	assert.True(removed)

	warnings, err := l.ListWarnings(ctx, "g1", "m1")
	require.NoError(err)
	assert.Equal([]string{"a", "c", "d"}, reasonsOf(warnings))
	assert.Equal(2, warnings[1].Index)

	removed, err = l.ClearWarning(ctx, "g1", "m1", 3)
	require.NoError(err)
	assert.True(removed)

	warnings, err = l.ListWarnings(ctx, "g1", "m1")
	require.NoError(err)
	assert.Equal([]string{"a", "c"}, reasonsOf(warnings))
}

func TestClearWarningOutOfRange(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	backend := newRecordingBackend()
	l := NewLedger(backend, NewLocks())

	// empty ledger
	removed, err := l.ClearWarning(ctx, "g1", "m1", 1)
	require.NoError(err)
	assert.False(removed)
	assert.Equal(0, backend.saveCount(store.KindWarns))

	for _, r := range []string{"a", "b"} {
		_, err := l.Warn(ctx, "g1", "m1", r)
		require.NoError(err)
	}
	saves := backend.saveCount(store.KindWarns)

	for _, index := range []int{0, -1, 3, 100} {
		removed, err := l.ClearWarning(ctx, "g1", "m1", index)
		require.NoError(err)
		assert.False(removed, "index %d", index)
	}

	assert.Equal(saves, backend.saveCount(store.KindWarns))
	warnings, err := l.ListWarnings(ctx, "g1", "m1")
	require.NoError(err)
	assert.Equal([]string{"a", "b"}, reasonsOf(warnings))
}

func TestClearLastWarningKeepsRecord(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	backend := store.NewMemoryBackend()
	l := NewLedger(backend, NewLocks())

	_, err := l.Warn(ctx, "g1", "m1", "a")
	require.NoError(err)
	removed, err := l.ClearWarning(ctx, "g1", "m1", 1)
	require.NoError(err)
	require.True(removed)

	raw, found, err := backend.Load(ctx, store.KindWarns, "g1")
	require.NoError(err)
	require.True(found)
	require.JSONEq(`{"m1": []}`, string(raw))
}

func TestPurge(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	l := NewLedger(store.NewMemoryBackend(), NewLocks())
	for _, r := range []string{"a", "b", "c"} {
		_, err := l.Warn(ctx, "g1", "m1", r)
		require.NoError(err)
	}
	_, err := l.Warn(ctx, "g1", "m2", "x")
	require.NoError(err)

	removed, err := l.Purge(ctx, "g1", "m1")
	require.NoError(err)
	assert.Equal(3, removed)

	removed, err = l.Purge(ctx, "g1", "m1")
	require.NoError(err)
	assert.Equal(0, removed)

	warnings, err := l.ListWarnings(ctx, "g1", "m2")
	require.NoError(err)
	assert.Equal([]string{"x"}, reasonsOf(warnings))
}

func TestConcurrentWarnsSameGuild(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	l := NewLedger(store.NewMemoryBackend(), NewLocks())

	const members, perMember = 10, 5
	var wg sync.WaitGroup
	for m := 0; m < members; m++ {
		for i := 0; i < perMember; i++ {
			wg.Add(1)
			go func(m int) {
				defer wg.Done()
				_, err := l.Warn(ctx, "g1", fmt.Sprintf("m%d", m), "spam")
				assert.NoError(t, err)
			}(m)
		}
	}
	wg.Wait()

	for m := 0; m < members; m++ {
		warnings, err := l.ListWarnings(ctx, "g1", fmt.Sprintf("m%d", m))
		require.NoError(err)
		require.Len(warnings, perMember)
	}
}

func TestLedgerStoreUnavailable(t *testing.T) {
	backend := newRecordingBackend()
	backend.setRefuse(store.KindWarns, true)
	l := NewLedger(backend, NewLocks())

	_, err := l.Warn(context.Background(), "g1", "m1", "spam")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
