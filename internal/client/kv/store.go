// Package kv provides the device-local persistent key-value store backing
// the auth token and the preference blobs. Values are opaque byte strings;
// callers own serialization.
package kv

import "context"

// Fixed, namespaced keys used across the client. Every persisted piece of
// state lives under exactly one of these.
const (
	KeyAuthToken      = "auth.token"
	KeyLikedPosts     = "posts.liked"
	KeySavedPosts     = "posts.saved"
	KeyTranscriptions = "prefs.transcriptions"
)

// Store is a string-keyed durable store. Get returns common.ErrNotFound when
// the key is absent. Set overwrites. Delete of an absent key is a no-op.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
