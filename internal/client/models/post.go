package models

import "time"

// MaxTags is the upper bound on tags a post may carry. Producers truncate,
// they never reject.
const MaxTags = 3

// Post is a single echo: a short voice post with optional text content.
type Post struct {
	ID                string    `json:"id"`
	AuthorID          string    `json:"author_id"`
	AuthorUsername    string    `json:"author_username"`
	AuthorDisplayName string    `json:"author_display_name,omitempty"`
	AudioURL          string    `json:"audio_url,omitempty"`
	Duration          float64   `json:"duration"` // seconds, expected <= 60
	VoiceStyle        string    `json:"voice_style,omitempty"`
	Tags              []string  `json:"tags,omitempty"`
	Content           string    `json:"content,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	ListenCount       int       `json:"listen_count"`
	Replies           int       `json:"replies"`
}

// NormalizeTags returns tags truncated to at most MaxTags entries, order
// preserved. A nil input stays nil.
func NormalizeTags(tags []string) []string {
	if len(tags) <= MaxTags {
		return tags
	}
	return tags[:MaxTags]
}

// LikedPost is a post plus the moment the user liked it.
type LikedPost struct {
	Post    Post      `json:"post"`
	LikedAt time.Time `json:"liked_at"`
}

// SavedPost is a post plus save/download metadata. Saved and Downloaded are
// independent: a post may be saved without a local copy and vice versa.
type SavedPost struct {
	Post           Post      `json:"post"`
	Saved          bool      `json:"saved"`
	SavedAt        time.Time `json:"saved_at,omitempty"`
	Downloaded     bool      `json:"downloaded"`
	DownloadFormat string    `json:"download_format,omitempty"`
	DownloadSize   int64     `json:"download_size,omitempty"`
	DownloadedAt   time.Time `json:"downloaded_at,omitempty"`
}
