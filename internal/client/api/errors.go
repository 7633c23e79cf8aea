package api

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/echowave/echowave/internal/common"
)

// Error is the uniform shape every non-2xx backend response is converted to.
// Unauthorized responses additionally match common.ErrUnauthorized via
// errors.Is.
type Error struct {
	Status  int
	Message string
	Details []FieldError
}

// FieldError is one entry of a validation-error response body.
type FieldError struct {
	Loc []any  `json:"loc,omitempty"`
	Msg string `json:"msg"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

func (e *Error) Unwrap() error {
	if e.Status == 401 || e.Status == 403 {
		return common.ErrUnauthorized
	}
	return nil
}

// DecodeError marks a 2xx response whose body could not be parsed.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("api: decoding response from %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// errorBody mirrors the backend's error payload: detail is either a plain
// string or a list of field-validation errors.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// parseError builds an *Error from a non-2xx response body. Falls back to a
// generic message when the body carries no usable detail.
func parseError(status int, body []byte) *Error {
	apiErr := &Error{Status: status, Message: fmt.Sprintf("request failed with status %d", status)}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 {
		return apiErr
	}

	var msg string
	if err := json.Unmarshal(eb.Detail, &msg); err == nil && msg != "" {
		apiErr.Message = msg
		return apiErr
	}

	var fields []FieldError
	if err := json.Unmarshal(eb.Detail, &fields); err == nil && len(fields) > 0 {
		msgs := make([]string, 0, len(fields))
		for _, f := range fields {
			if f.Msg != "" {
				msgs = append(msgs, f.Msg)
			}
		}
		if len(msgs) > 0 {
			apiErr.Message = strings.Join(msgs, ", ")
		}
		apiErr.Details = fields
	}
	return apiErr
}
