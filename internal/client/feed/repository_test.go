package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd_AssignsIDAndTimestamp(t *testing.T) {
	r := NewRepository()
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r.nowFn = func() time.Time { return fixed }

	post := r.Add(Fields{AuthorUsername: "demo", Content: "first echo"})

	assert.NotEmpty(t, post.ID)
	assert.Equal(t, fixed, post.CreatedAt)
	assert.Zero(t, post.ListenCount)
}

func TestAdd_DistinctIDsWithinSameMillisecond(t *testing.T) {
	r := NewRepository()
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r.nowFn = func() time.Time { return fixed }

	a := r.Add(Fields{Content: "one"})
	b := r.Add(Fields{Content: "two"})

	assert.NotEqual(t, a.ID, b.ID)
}

func TestList_MostRecentFirstAndCopied(t *testing.T) {
	r := NewRepository()
	r.Add(Fields{Content: "old"})
	r.Add(Fields{Content: "new"})

	posts := r.List()
	require.Len(t, posts, 2)
	assert.Equal(t, "new", posts[0].Content)

	posts[0].Content = "mutated"
	assert.Equal(t, "new", r.List()[0].Content)
}

func TestAdd_TagsTruncated(t *testing.T) {
	r := NewRepository()

	post := r.Add(Fields{Tags: []string{"a", "b", "c", "d", "e"}})
	assert.Equal(t, []string{"a", "b", "c"}, post.Tags)
}

func TestRemove(t *testing.T) {
	r := NewRepository()
	post := r.Add(Fields{Content: "bye"})

	assert.True(t, r.Remove(post.ID))
	assert.Empty(t, r.List())
	assert.False(t, r.Remove(post.ID), "second remove is a no-op failure")
}

func TestUpdate_ShallowMerge(t *testing.T) {
	r := NewRepository()
	post := r.Add(Fields{Content: "original", Duration: 12})

	content := "edited"
	listens := 5
	ok := r.Update(post.ID, Patch{Content: &content, ListenCount: &listens})
	require.True(t, ok)

	got, found := r.Get(post.ID)
	require.True(t, found)
	assert.Equal(t, "edited", got.Content)
	assert.Equal(t, 5, got.ListenCount)
	assert.Equal(t, float64(12), got.Duration) // untouched field survives
}

func TestUpdate_AbsentID(t *testing.T) {
	r := NewRepository()
	content := "x"
	assert.False(t, r.Update("missing", Patch{Content: &content}))
}

func TestUpdate_TagsTruncated(t *testing.T) {
	r := NewRepository()
	post := r.Add(Fields{})

	tags := []string{"a", "b", "c", "d"}
	require.True(t, r.Update(post.ID, Patch{Tags: &tags}))

	got, _ := r.Get(post.ID)
	assert.Equal(t, []string{"a", "b", "c"}, got.Tags)
}
