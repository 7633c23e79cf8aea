// Package likes tracks which posts the user has liked. Membership and display
// order live in a single ordered map, so the O(1) lookup view and the
// most-recent-first list can never diverge.
//
// Mutations are write-through: memory is updated first and the full
// collection is then serialized to the key-value store. A persistence failure
// is returned to the caller and logged, but the in-memory change is never
// rolled back; memory is the local truth for the rest of the process.
package likes

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
	items *orderedmap.OrderedMap[string, models.LikedPost]

	nowFn func() time.Time
}

// New loads the persisted liked-posts blob once and returns a ready store.
// A missing key means no likes yet; an unreadable blob is logged and treated
// as empty.
func New(ctx context.Context, kvStore kv.Store, log logging.Logger) *Store {
	s := &Store{
		kv:    kvStore,
		log:   log,
		items: orderedmap.New[string, models.LikedPost](),
		nowFn: time.Now,
	}

	data, err := kvStore.Get(ctx, kv.KeyLikedPosts)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			log.Warn(ctx, "failed to load liked posts", "error", err)
		}
		return s
	}

	var records []models.LikedPost
	if err := json.Unmarshal(data, &records); err != nil {
		log.Warn(ctx, "liked posts blob unreadable, starting empty", "error", err)
		return s
	}
	// The blob is stored most-recent-first; insert in reverse so map
	// insertion order is oldest-first.
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		r.Post.Tags = models.NormalizeTags(r.Post.Tags)
		s.items.Set(r.Post.ID, r)
	}
	return s
}

// IsLiked reports membership. Synchronous and safe for display code.
func (s *Store) IsLiked(postID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.items.Get(postID)
	return ok
}

// Count returns the number of liked posts.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items.Len()
}

// Liked returns the liked posts most-recent-first.
func (s *Store) Liked() []models.LikedPost {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() []models.LikedPost {
	out := make([]models.LikedPost, 0, s.items.Len())
	for pair := s.items.Newest(); pair != nil; pair = pair.Prev() {
		out = append(out, pair.Value)
	}
	return out
}

// Toggle flips the liked state of post and persists the updated collection.
// It returns the new liked state. A non-nil error means the in-memory change
// took effect but was not persisted and may be lost on restart.
func (s *Store) Toggle(ctx context.Context, post models.Post) (bool, error) {
	post.Tags = models.NormalizeTags(post.Tags)

	s.mu.Lock()
	var nowLiked bool
	if _, ok := s.items.Get(post.ID); ok {
		s.items.Delete(post.ID)
	} else {
		s.items.Set(post.ID, models.LikedPost{Post: post, LikedAt: s.nowFn()})
		nowLiked = true
	}
	records := s.snapshotLocked()
	s.mu.Unlock()

	if err := s.persist(ctx, records); err != nil {
		return nowLiked, err
	}
	return nowLiked, nil
}

// Clear drops all likes from memory and deletes the persisted entry.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.items = orderedmap.New[string, models.LikedPost]()
	s.mu.Unlock()

	if err := s.kv.Delete(ctx, kv.KeyLikedPosts); err != nil {
		s.log.Warn(ctx, "failed to delete liked posts blob", "error", err)
		return fmt.Errorf("clear liked posts: %w", err)
	}
	return nil
}

func (s *Store) persist(ctx context.Context, records []models.LikedPost) error {
	data, err := json.Marshal(records)
	if err != nil {
		s.log.Error(ctx, "failed to encode liked posts", "error", err)
		return fmt.Errorf("encode liked posts: %w", err)
	}
	if err := s.kv.Set(ctx, kv.KeyLikedPosts, data); err != nil {
		s.log.Warn(ctx, "failed to persist liked posts", "error", err)
		return fmt.Errorf("persist liked posts: %w", err)
	}
	return nil
}
