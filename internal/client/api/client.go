// Package api implements the REST client for the EchoWave backend. The
// client is the single point of contact with the server and the sole owner
// of the bearer token: it loads a persisted token at construction, stores a
// fresh one on login and clears it on logout.
//
// Every call follows a uniform response contract: any status outside 2xx is
// converted to *Error, a 2xx body that fails to parse becomes *DecodeError,
// and transport failures wrap common.ErrUnavailable. Raw transport errors
// never reach callers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/echowave/echowave/internal/client/kv"
	"github.com/echowave/echowave/internal/common"
	"github.com/echowave/echowave/internal/logging"
)

// Client talks to the EchoWave REST backend.
type Client struct {
	baseURL string
	http    *http.Client
	store   kv.Store
	log     logging.Logger

	mu    sync.RWMutex
	token string
}

// New builds a Client for the given base URL. A token previously persisted in
// store is loaded into memory, so a restarted app resumes its session without
// re-authenticating.
func New(baseURL string, httpClient *http.Client, store kv.Store, log logging.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		store:   store,
		log:     log,
	}
	if v, err := store.Get(context.Background(), kv.KeyAuthToken); err == nil {
		c.token = string(v)
	}
	return c
}

// IsAuthenticated reports whether a token is currently held in memory. It is
// not a validity check against the server.
func (c *Client) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// setToken updates the in-memory token and writes it through to the store.
// The in-memory value is authoritative; a persistence failure is logged and
// the token stays usable for the rest of the process lifetime.
func (c *Client) setToken(ctx context.Context, token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	var err error
	if token == "" {
		err = c.store.Delete(ctx, kv.KeyAuthToken)
	} else {
		err = c.store.Set(ctx, kv.KeyAuthToken, []byte(token))
	}
	if err != nil {
		c.log.Warn(ctx, "failed to persist auth token", "error", err)
	}
}

// do performs a request against path (joined to the base URL), applying the
// bearer token when present, and decodes a 2xx JSON body into out (skipped
// when out is nil).
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", common.ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response from %s: %v", common.ErrUnavailable, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseError(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &DecodeError{Path: path, Err: err}
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request for %s: %w", path, err)
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, method, path, body, "application/json", out)
}
