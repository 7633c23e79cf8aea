package saves

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echowave/echowave/internal/client/kv"
	"github.com/echowave/echowave/internal/client/models"
	"github.com/echowave/echowave/internal/logging"
)

func newStore(t *testing.T) (*Store, *kv.MemoryStore) {
	t.Helper()
	mem := kv.NewMemoryStore()
	return New(context.Background(), mem, logging.NewTextLogger(io.Discard, 0)), mem
}

func TestSaveAndUnsave(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	post := models.Post{ID: "p1", Content: "hi"}

	require.NoError(t, s.Save(ctx, post))
	assert.True(t, s.IsSaved("p1"))
	assert.False(t, s.IsDownloaded("p1"))

	require.NoError(t, s.Unsave(ctx, "p1"))
	assert.False(t, s.IsSaved("p1"))
	assert.Empty(t, s.Saved())
}

func TestDownload_IndependentOfSave(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	post := models.Post{ID: "p1"}

	require.NoError(t, s.Download(ctx, post, "m4a", 128_000))

	assert.True(t, s.IsDownloaded("p1"))
	assert.False(t, s.IsSaved("p1"), "downloading must not implicitly save")

	downloaded := s.Downloaded()
	require.Len(t, downloaded, 1)
	assert.Equal(t, "m4a", downloaded[0].DownloadFormat)
	assert.Equal(t, int64(128_000), downloaded[0].DownloadSize)
}

func TestUnsave_KeepsDownloadRecord(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	post := models.Post{ID: "p1"}

	require.NoError(t, s.Save(ctx, post))
	require.NoError(t, s.Download(ctx, post, "m4a", 1000))
	require.NoError(t, s.Unsave(ctx, "p1"))

	assert.False(t, s.IsSaved("p1"))
	assert.True(t, s.IsDownloaded("p1"))
}

func TestRemoveDownload_KeepsSavedRecord(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	post := models.Post{ID: "p1"}

	require.NoError(t, s.Save(ctx, post))
	require.NoError(t, s.Download(ctx, post, "m4a", 1000))
	require.NoError(t, s.RemoveDownload(ctx, "p1"))

	assert.True(t, s.IsSaved("p1"))
	assert.False(t, s.IsDownloaded("p1"))

	downloaded := s.Downloaded()
	assert.Empty(t, downloaded)
}

func TestRecordDroppedWhenBothFlagsClear(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	post := models.Post{ID: "p1"}

	require.NoError(t, s.Save(ctx, post))
	require.NoError(t, s.Download(ctx, post, "m4a", 1000))
	require.NoError(t, s.Unsave(ctx, "p1"))
	require.NoError(t, s.RemoveDownload(ctx, "p1"))

	assert.Empty(t, s.Saved())
	assert.Empty(t, s.Downloaded())
	// a later save starts a fresh record
	require.NoError(t, s.Save(ctx, post))
	saved := s.Saved()
	require.Len(t, saved, 1)
	assert.False(t, saved[0].Downloaded)
}

func TestUnsave_AbsentIsNoOp(t *testing.T) {
	s, _ := newStore(t)
	assert.NoError(t, s.Unsave(context.Background(), "ghost"))
}

func TestSaved_MostRecentFirstAcrossReload(t *testing.T) {
	s, mem := newStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.Save(ctx, models.Post{ID: id}))
	}

	reloaded := New(ctx, mem, logging.NewTextLogger(io.Discard, 0))
	saved := reloaded.Saved()
	require.Len(t, saved, 3)
	assert.Equal(t, "c", saved[0].Post.ID)
	assert.Equal(t, "a", saved[2].Post.ID)
}

func TestDownloadRoundTrip(t *testing.T) {
	s, mem := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Download(ctx, models.Post{ID: "p1"}, "mp3", 2048))

	reloaded := New(ctx, mem, logging.NewTextLogger(io.Discard, 0))
	assert.True(t, reloaded.IsDownloaded("p1"))
	assert.False(t, reloaded.IsSaved("p1"))
}

func TestSave_TagsTruncated(t *testing.T) {
	s, _ := newStore(t)

	require.NoError(t, s.Save(context.Background(), models.Post{ID: "p1", Tags: []string{"a", "b", "c", "d"}}))

	saved := s.Saved()
	require.Len(t, saved, 1)
	assert.Equal(t, []string{"a", "b", "c"}, saved[0].Post.Tags)
}
