package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/goccy/go-json"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileBackendLayout(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	dir := t.TempDir()
	b, err := NewFileBackend(dir)
	require.NoError(err)

	require.NoError(newWarns(b).Put(ctx, "100", models.WarnsBlob{"7": {"spam"}}))
	require.NoError(newOptions(b).Put(ctx, "100", models.GuildOptions{Prefix: "!", MutedRole: "55"}))

	raw, err := os.ReadFile(filepath.Join(dir, "warns.json"))
	require.NoError(err)
	var warns map[string]map[string][]string
	require.NoError(json.Unmarshal(raw, &warns))
	assert.Equal([]string{"spam"}, warns["100"]["7"])

	raw, err = os.ReadFile(filepath.Join(dir, "options.json"))
	require.NoError(err)
	var opts map[string]map[string]any
	require.NoError(json.Unmarshal(raw, &opts))
	assert.Equal("!", opts["100"]["prefix"])
	assert.Equal("55", opts["100"]["muted_role"])
	assert.Nil(opts["100"]["public_log"])

	_, err = os.Stat(filepath.Join(dir, "mutes.json"))
	assert.True(os.IsNotExist(err))
}

func TestFileBackendMissingFile(t *testing.T) {
	b, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)

	raw, found, err := b.Load(context.Background(), KindMutes, "100")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, raw)
}

func TestFileBackendCorruptedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mutes.json"), []byte("{broken"), 0644))

	b, err := NewFileBackend(dir)
	require.NoError(t, err)

	_, _, err = b.Load(context.Background(), KindMutes, "100")
	assert.True(t, errors.Is(err, ErrUnavailable))

	err = b.Save(context.Background(), KindMutes, "100", []byte(`{}`))
	assert.True(t, errors.Is(err, ErrUnavailable))

	raw, err := os.ReadFile(filepath.Join(dir, "mutes.json"))
	require.NoError(t, err)
	assert.Equal(t, "{broken", string(raw))
}

func TestFileBackendConcurrentGuilds(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	b, err := NewFileBackend(t.TempDir())
	require.NoError(err)
	doc := newWarns(b)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			guild := fmt.Sprintf("%d", 1000+i)
			assert.NoError(t, doc.Put(ctx, guild, models.WarnsBlob{"7": {guild}}))
		}(i)
	}
	wg.Wait()

	for i := 0; i < 20; i++ {
		guild := fmt.Sprintf("%d", 1000+i)
		got, err := doc.Get(ctx, guild)
		require.NoError(err)
		require.Equal([]string{guild}, got["7"])
	}
}
