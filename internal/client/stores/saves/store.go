// Package saves tracks saved and downloaded posts. The two flags are
// independent concerns on the same record: saving never implies a local copy
// and removing a download never unsaves. A record exists while at least one
// flag is set.
//
// Persistence follows the same write-through policy as the likes store:
// memory first, then the serialized collection; failures are returned and
// logged, never rolled back.
package saves

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/echowave/echowave/internal/client/kv"
	"github.com/echowave/echowave/internal/client/models"
	"github.com/echowave/echowave/internal/common"
	"github.com/echowave/echowave/internal/logging"
)

type Store struct {
	kv  kv.Store
	log logging.Logger

	mu    sync.RWMutex
	items *orderedmap.OrderedMap[string, models.SavedPost]

	nowFn func() time.Time
}

// New loads the persisted saved-posts blob once and returns a ready store.
func New(ctx context.Context, kvStore kv.Store, log logging.Logger) *Store {
	s := &Store{
		kv:    kvStore,
		log:   log,
		items: orderedmap.New[string, models.SavedPost](),
		nowFn: time.Now,
	}

	data, err := kvStore.Get(ctx, kv.KeySavedPosts)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			log.Warn(ctx, "failed to load saved posts", "error", err)
		}
		return s
	}

	var records []models.SavedPost
	if err := json.Unmarshal(data, &records); err != nil {
		log.Warn(ctx, "saved posts blob unreadable, starting empty", "error", err)
		return s
	}
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		r.Post.Tags = models.NormalizeTags(r.Post.Tags)
		s.items.Set(r.Post.ID, r)
	}
	return s
}

func (s *Store) IsSaved(postID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.items.Get(postID)
	return ok && r.Saved
}

func (s *Store) IsDownloaded(postID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.items.Get(postID)
	return ok && r.Downloaded
}

// Saved returns records with the saved flag set, most-recent-first.
func (s *Store) Saved() []models.SavedPost {
	return s.filter(func(r models.SavedPost) bool { return r.Saved })
}

// Downloaded returns records with the downloaded flag set, most-recent-first.
func (s *Store) Downloaded() []models.SavedPost {
	return s.filter(func(r models.SavedPost) bool { return r.Downloaded })
}

func (s *Store) filter(keep func(models.SavedPost) bool) []models.SavedPost {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.SavedPost, 0, s.items.Len())
	for pair := s.items.Newest(); pair != nil; pair = pair.Prev() {
		if keep(pair.Value) {
			out = append(out, pair.Value)
		}
	}
	return out
}

// Save marks post as saved. Saving an already-saved post is a no-op.
func (s *Store) Save(ctx context.Context, post models.Post) error {
	post.Tags = models.NormalizeTags(post.Tags)

	return s.mutate(ctx, post.ID, func(r models.SavedPost, exists bool) (models.SavedPost, bool) {
		if !exists {
			r = models.SavedPost{Post: post}
		}
		if r.Saved {
			return r, true
		}
		r.Saved = true
		r.SavedAt = s.nowFn()
		return r, true
	})
}

// Unsave clears the saved flag; the download record, if any, survives.
func (s *Store) Unsave(ctx context.Context, postID string) error {
	return s.mutate(ctx, postID, func(r models.SavedPost, exists bool) (models.SavedPost, bool) {
		if !exists {
			return r, false
		}
		r.Saved = false
		r.SavedAt = time.Time{}
		return r, r.Downloaded
	})
}

// Download records a local copy of post with its format and size. It never
// touches the saved flag.
func (s *Store) Download(ctx context.Context, post models.Post, format string, size int64) error {
	post.Tags = models.NormalizeTags(post.Tags)

	return s.mutate(ctx, post.ID, func(r models.SavedPost, exists bool) (models.SavedPost, bool) {
		if !exists {
			r = models.SavedPost{Post: post}
		}
		r.Downloaded = true
		r.DownloadFormat = format
		r.DownloadSize = size
		r.DownloadedAt = s.nowFn()
		return r, true
	})
}

// RemoveDownload clears the downloaded state; the saved flag survives.
func (s *Store) RemoveDownload(ctx context.Context, postID string) error {
	return s.mutate(ctx, postID, func(r models.SavedPost, exists bool) (models.SavedPost, bool) {
		if !exists {
			return r, false
		}
		r.Downloaded = false
		r.DownloadFormat = ""
		r.DownloadSize = 0
		r.DownloadedAt = time.Time{}
		return r, r.Saved
	})
}

// Clear drops all records from memory and deletes the persisted entry.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.items = orderedmap.New[string, models.SavedPost]()
	s.mu.Unlock()

	if err := s.kv.Delete(ctx, kv.KeySavedPosts); err != nil {
		s.log.Warn(ctx, "failed to delete saved posts blob", "error", err)
		return fmt.Errorf("clear saved posts: %w", err)
	}
	return nil
}

// mutate applies fn to the record under postID as a single state transition
// and writes the collection through. fn returns the updated record and
// whether it should remain in the map.
func (s *Store) mutate(ctx context.Context, postID string, fn func(r models.SavedPost, exists bool) (models.SavedPost, bool)) error {
	s.mu.Lock()
	current, exists := s.items.Get(postID)
	updated, keep := fn(current, exists)
	if keep {
		s.items.Set(postID, updated)
	} else if exists {
		s.items.Delete(postID)
	}
	records := make([]models.SavedPost, 0, s.items.Len())
	for pair := s.items.Newest(); pair != nil; pair = pair.Prev() {
		records = append(records, pair.Value)
	}
	s.mu.Unlock()

	return s.persist(ctx, records)
}

func (s *Store) persist(ctx context.Context, records []models.SavedPost) error {
	data, err := json.Marshal(records)
	if err != nil {
		s.log.Error(ctx, "failed to encode saved posts", "error", err)
		return fmt.Errorf("encode saved posts: %w", err)
	}
	if err := s.kv.Set(ctx, kv.KeySavedPosts, data); err != nil {
		s.log.Warn(ctx, "failed to persist saved posts", "error", err)
		return fmt.Errorf("persist saved posts: %w", err)
	}
	return nil
}
