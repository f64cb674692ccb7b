package store

import (
	"context"
	"errors"
	"testing"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/alicebob/miniredis/v2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*RedisBackend, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	b, err := NewRedisBackend("redis://" + mr.Addr())
	if err != nil {
		t.Fatalf("creating test redis backend: %v", err)
	}
	t.Cleanup(func() { _ = b.Close(context.Background()) })
	return b, mr
}

func TestRedisBackendRoundTrip(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	b, mr := newTestRedis(t)
	doc := newWarns(b)

	got, err := doc.Get(ctx, "100")
	require.NoError(err)
	assert.Empty(got)

	require.NoError(doc.Put(ctx, "100", models.WarnsBlob{"7": {"spam"}}))

	raw, err := mr.Get("pancyguard:warns:100")
	require.NoError(err)
	assert.JSONEq(`{"7":["spam"]}`, raw)

	got, err = doc.Get(ctx, "100")
	require.NoError(err)
	assert.Equal([]string{"spam"}, got["7"])
}

func TestRedisBackendUnavailable(t *testing.T) {
	b, mr := newTestRedis(t)
	mr.Close()

	_, err := newWarns(b).Get(context.Background(), "100")
	assert.True(t, errors.Is(err, ErrUnavailable))

	err = newWarns(b).Put(context.Background(), "100", models.WarnsBlob{})
	assert.True(t, errors.Is(err, ErrUnavailable))
}
