// Package common defines shared sentinel errors used across the EchoWave
// client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Auth errors (missing, rejected or expired token).
	ErrUnauthorized = errors.New("unauthorized")

	// Transport-level errors (server unreachable, connection refused).
	ErrUnavailable = errors.New("server unavailable")
)
