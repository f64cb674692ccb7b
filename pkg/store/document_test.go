package store

import (
	"context"
	"errors"
	"testing"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWarns(b Backend) *Document[models.WarnsBlob] {
	return NewDocument(b, KindWarns, func() models.WarnsBlob { return models.WarnsBlob{} })
}

func newOptions(b Backend) *Document[models.GuildOptions] {
	return NewDocument(b, KindOptions, func() models.GuildOptions { return models.DefaultOptions(".") })
}

func TestDocumentMissingKeyReturnsDefault(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	warns, err := newWarns(NewMemoryBackend()).Get(ctx, "100")
	require.NoError(err)
	assert.NotNil(warns)
	assert.Empty(warns)

	opts, err := newOptions(NewMemoryBackend()).Get(ctx, "100")
	require.NoError(err)
	assert.Equal(models.DefaultOptions("."), opts)
}

func TestDocumentRoundTrip(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	b := NewMemoryBackend()
	doc := newWarns(b)

	require.NoError(doc.Put(ctx, "100", models.WarnsBlob{"7": {"spam", "flood"}}))
	require.NoError(doc.Put(ctx, "200", models.WarnsBlob{"8": {"insultos"}}))

	got, err := doc.Get(ctx, "100")
	require.NoError(err)
	assert.Equal([]string{"spam", "flood"}, got["7"])
	assert.NotContains(got, "8")
}

func TestDocumentPartialOptionsKeepDefaults(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	b := NewMemoryBackend()
	require.NoError(b.Save(ctx, KindOptions, "100", []byte(`{"muted_role": 42}`)))

	opts, err := newOptions(b).Get(ctx, "100")
	require.NoError(err)
	assert.Equal(".", opts.Prefix)
	assert.Equal(models.Snowflake("42"), opts.MutedRole)
	assert.Equal(models.Snowflake(""), opts.PublicLog)
}

func TestDocumentCorruptedBlob(t *testing.T) {
	ctx := context.Background()

	b := NewMemoryBackend()
	require.NoError(t, b.Save(ctx, KindWarns, "100", []byte(`{"7": "not a list"`)))

	_, err := newWarns(b).Get(ctx, "100")
	assert.True(t, errors.Is(err, ErrUnavailable))
}

type failingBackend struct {
	*MemoryBackend
}

func (failingBackend) Save(context.Context, Kind, string, []byte) error {
	return errors.New("disk full")
}

func TestDocumentSaveFailure(t *testing.T) {
	err := newWarns(failingBackend{NewMemoryBackend()}).Put(context.Background(), "100", models.WarnsBlob{})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "disk full")
}

func TestMutesBlobAcceptsNumericRoles(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	b := NewMemoryBackend()
	require.NoError(b.Save(ctx, KindMutes, "100", []byte(`{"7": [11, "12"]}`)))

	doc := NewDocument(b, KindMutes, func() models.MutesBlob { return models.MutesBlob{} })
	mutes, err := doc.Get(ctx, "100")
	require.NoError(err)
	assert.Equal([]string{"11", "12"}, mutes["7"])
}
