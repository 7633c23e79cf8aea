// Package models defines the data objects exchanged between the API client,
// the session manager, the preference stores and the UI layer.
package models

// User is the identity record of an account. It is fetched from the backend
// and cached in memory only; it goes stale until explicitly refreshed.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Bio         string `json:"bio,omitempty"`
}
