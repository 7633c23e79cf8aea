// Package assistant bridges the conversational voice widget to the local
// data layer. The bridge identifies itself with a platform id, forwards every
// inbound widget message to an observer callback, and fires a second callback
// when a spoken command matches a trigger phrase and yields extractable
// content. The app wires that content into the local post repository as a
// new echo.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/echowave/echowave/internal/logging"
)

// DefaultTriggers are the spoken prefixes that turn a transcript into a new
// local echo.
var DefaultTriggers = []string{"post this echo", "echo this"}

// Message is a single inbound frame from the widget.
type Message struct {
	Type string `json:"type"`
	Role string `json:"role,omitempty"`
	Text string `json:"text,omitempty"`
}

// Options configures a Bridge. URL and PlatformID are required; both
// callbacks are optional.
type Options struct {
	URL        string
	PlatformID string
	Triggers   []string

	// OnMessage is invoked for every inbound widget message.
	OnMessage func(Message)
	// OnEcho is invoked with the extracted content when a transcript
	// matches a trigger phrase.
	OnEcho func(content string)

	Logger logging.Logger
	Dialer *websocket.Dialer
}

// Bridge is a live connection to the widget.
type Bridge struct {
	conn *websocket.Conn
	opts Options
	log  logging.Logger

	closeOnce sync.Once
	done      chan struct{}
}

type helloFrame struct {
	Type     string `json:"type"`
	Platform string `json:"platform"`
}

// Dial connects to the widget endpoint, announces the platform id and starts
// the read loop. The loop runs until ctx is cancelled, Close is called or a
// read fails; Done is closed when it stops.
func Dial(ctx context.Context, opts Options) (*Bridge, error) {
	if opts.URL == "" {
		return nil, fmt.Errorf("assistant: widget URL is required")
	}
	dialer := opts.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	if len(opts.Triggers) == 0 {
		opts.Triggers = DefaultTriggers
	}

	conn, resp, err := dialer.DialContext(ctx, opts.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("assistant: dial %s: %w", opts.URL, err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	b := &Bridge{conn: conn, opts: opts, log: opts.Logger, done: make(chan struct{})}

	if err := conn.WriteJSON(helloFrame{Type: "hello", Platform: opts.PlatformID}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("assistant: send hello: %w", err)
	}

	go b.readLoop(ctx)
	return b, nil
}

// Done is closed when the read loop exits.
func (b *Bridge) Done() <-chan struct{} {
	return b.done
}

// Close shuts the connection down. Safe to call more than once.
func (b *Bridge) Close() error {
	var err error
	b.closeOnce.Do(func() {
		err = b.conn.Close()
	})
	return err
}

func (b *Bridge) readLoop(ctx context.Context) {
	defer close(b.done)
	defer b.Close()

	go func() {
		<-ctx.Done()
		b.Close()
	}()

	for {
		_, data, err := b.conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil && b.log != nil {
				b.log.Warn(ctx, "assistant connection closed", "error", err)
			}
			return
		}
		b.handleFrame(ctx, data)
	}
}

func (b *Bridge) handleFrame(ctx context.Context, data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		if b.log != nil {
			b.log.Warn(ctx, "unparsable widget frame skipped", "error", err)
		}
		return
	}

	if b.opts.OnMessage != nil {
		b.opts.OnMessage(msg)
	}

	if msg.Type != "transcript" || msg.Text == "" {
		return
	}
	if content, ok := ExtractEcho(msg.Text, b.opts.Triggers); ok && b.opts.OnEcho != nil {
		b.opts.OnEcho(content)
	}
}

// ExtractEcho looks for the first trigger phrase in text (case-insensitive)
// and returns the content after it, trimmed of leading punctuation and
// surrounding whitespace. Returns false when no trigger matches or the
// remainder is empty.
func ExtractEcho(text string, triggers []string) (string, bool) {
	lower := strings.ToLower(text)
	for _, trigger := range triggers {
		idx := strings.Index(lower, strings.ToLower(trigger))
		if idx < 0 {
			continue
		}
		rest := text[idx+len(trigger):]
		rest = strings.TrimLeft(rest, ":,.!? ")
		rest = strings.TrimSpace(rest)
		if rest == "" {
			return "", false
		}
		return rest, true
	}
	return "", false
}
