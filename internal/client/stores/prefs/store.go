// Package prefs holds single-flag user preferences. Currently that is the
// transcription-visibility toggle: whether echo transcripts are shown in the
// feed. The flag is loaded once at construction and written back on every
// change.
package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/echowave/echowave/internal/client/kv"
	"github.com/echowave/echowave/internal/common"
	"github.com/echowave/echowave/internal/logging"
)

// transcriptionsDefault is used when no value has ever been persisted.
const transcriptionsDefault = true

type Store struct {
	kv  kv.Store
	log logging.Logger

	mu             sync.RWMutex
	transcriptions bool
}

// New loads the persisted flag once. Missing or unreadable values fall back
// to the default.
func New(ctx context.Context, kvStore kv.Store, log logging.Logger) *Store {
	s := &Store{kv: kvStore, log: log, transcriptions: transcriptionsDefault}

	data, err := kvStore.Get(ctx, kv.KeyTranscriptions)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			log.Warn(ctx, "failed to load transcription preference", "error", err)
		}
		return s
	}

	var enabled bool
	if err := json.Unmarshal(data, &enabled); err != nil {
		log.Warn(ctx, "transcription preference unreadable, using default", "error", err)
		return s
	}
	s.transcriptions = enabled
	return s
}

// TranscriptionsEnabled reports the current flag. Synchronous.
func (s *Store) TranscriptionsEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transcriptions
}

// SetTranscriptions sets the flag and writes it through. The in-memory value
// is updated even when persistence fails.
func (s *Store) SetTranscriptions(ctx context.Context, enabled bool) error {
	s.mu.Lock()
	s.transcriptions = enabled
	s.mu.Unlock()

	data, _ := json.Marshal(enabled)
	if err := s.kv.Set(ctx, kv.KeyTranscriptions, data); err != nil {
		s.log.Warn(ctx, "failed to persist transcription preference", "error", err)
		return fmt.Errorf("persist transcription preference: %w", err)
	}
	return nil
}

// ToggleTranscriptions flips the flag and returns the new value.
func (s *Store) ToggleTranscriptions(ctx context.Context) (bool, error) {
	s.mu.RLock()
	next := !s.transcriptions
	s.mu.RUnlock()
	return next, s.SetTranscriptions(ctx, next)
}
