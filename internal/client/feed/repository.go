// Package feed holds the in-memory local post repository: client-composed
// echoes that live only for the process lifetime. It is a stand-in data
// source for demoing posting without a backend round-trip, not a cache of
// server state.
//
// The repository is an explicitly constructed object created at app-session
// start and passed to consumers; there is no package-level state.
package feed

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/echowave/echowave/internal/client/models"
)

// Fields describes a new local echo. Tags beyond models.MaxTags are
// truncated, never rejected.
type Fields struct {
	AuthorID          string
	AuthorUsername    string
	AuthorDisplayName string
	AudioURL          string
	Duration          float64
	VoiceStyle        string
	Tags              []string
	Content           string
}

// Patch is a shallow merge applied by Update; nil fields are left untouched.
type Patch struct {
	AudioURL    *string
	Duration    *float64
	VoiceStyle  *string
	Tags        *[]string
	Content     *string
	ListenCount *int
	Replies     *int
}

// Repository is a process-lifetime list of user-authored posts, newest first.
type Repository struct {
	mu    sync.RWMutex
	posts []models.Post

	nowFn func() time.Time
}

func NewRepository() *Repository {
	return &Repository{nowFn: time.Now}
}

// Add creates a post from fields, assigns a generated id and creation
// timestamp, and prepends it. Ids stay unique even for calls within the same
// millisecond thanks to the random suffix.
func (r *Repository) Add(fields Fields) models.Post {
	now := r.nowFn()
	post := models.Post{
		ID:                newPostID(now),
		AuthorID:          fields.AuthorID,
		AuthorUsername:    fields.AuthorUsername,
		AuthorDisplayName: fields.AuthorDisplayName,
		AudioURL:          fields.AudioURL,
		Duration:          fields.Duration,
		VoiceStyle:        fields.VoiceStyle,
		Tags:              models.NormalizeTags(fields.Tags),
		Content:           fields.Content,
		CreatedAt:         now,
		ListenCount:       0,
	}

	r.mu.Lock()
	r.posts = append([]models.Post{post}, r.posts...)
	r.mu.Unlock()
	return post
}

// List returns a copy of the posts, most-recent-first.
func (r *Repository) List() []models.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Post, len(r.posts))
	copy(out, r.posts)
	return out
}

// Get returns the post with the given id.
func (r *Repository) Get(id string) (models.Post, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.posts {
		if p.ID == id {
			return p, true
		}
	}
	return models.Post{}, false
}

// Remove deletes the post with the given id. Returns false when absent.
func (r *Repository) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.posts {
		if p.ID == id {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			return true
		}
	}
	return false
}

// Update applies patch to the post with the given id as a shallow merge.
// Returns false when absent.
func (r *Repository) Update(id string, patch Patch) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.posts {
		if r.posts[i].ID != id {
			continue
		}
		p := &r.posts[i]
		if patch.AudioURL != nil {
			p.AudioURL = *patch.AudioURL
		}
		if patch.Duration != nil {
			p.Duration = *patch.Duration
		}
		if patch.VoiceStyle != nil {
			p.VoiceStyle = *patch.VoiceStyle
		}
		if patch.Tags != nil {
			p.Tags = models.NormalizeTags(*patch.Tags)
		}
		if patch.Content != nil {
			p.Content = *patch.Content
		}
		if patch.ListenCount != nil {
			p.ListenCount = *patch.ListenCount
		}
		if patch.Replies != nil {
			p.Replies = *patch.Replies
		}
		return true
	}
	return false
}

// newPostID builds a time-based id with a random suffix.
func newPostID(now time.Time) string {
	return fmt.Sprintf("local-%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}
