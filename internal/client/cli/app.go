// Package cli is the interactive shell of the EchoWave client. It stands in
// for the mobile UI layer: every command goes through the session manager,
// the preference stores or the API client, never around them. It is also the
// only place that serializes duplicate submissions (one command at a time).
package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/echowave/echowave/internal/client/api"
	"github.com/echowave/echowave/internal/client/assistant"
	"github.com/echowave/echowave/internal/client/config"
	"github.com/echowave/echowave/internal/client/feed"
	"github.com/echowave/echowave/internal/client/kv"
	"github.com/echowave/echowave/internal/client/session"
	"github.com/echowave/echowave/internal/client/stores/likes"
	"github.com/echowave/echowave/internal/client/stores/prefs"
	"github.com/echowave/echowave/internal/client/stores/saves"
	"github.com/echowave/echowave/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	store   *kv.SQLiteStore
	api     *api.Client
	session *session.Manager
	likes   *likes.Store
	saves   *saves.Store
	prefs   *prefs.Store
	local   *feed.Repository
	bridge  *assistant.Bridge

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewTextLogger(os.Stderr, slog.LevelInfo)

	store, err := kv.OpenSQLite(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	apiClient := api.New(cfg.APIBaseURL, httpClient, store, log)

	return &App{
		config:  cfg,
		log:     log,
		store:   store,
		api:     apiClient,
		session: session.NewManager(apiClient, log),
		likes:   likes.New(ctx, store, log),
		saves:   saves.New(ctx, store, log),
		prefs:   prefs.New(ctx, store, log),
		local:   feed.NewRepository(),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.store.Close()

	a.session.Start(ctx)

	if a.config.AssistantEnabled {
		a.startAssistant(ctx)
	}
	defer func() {
		if a.bridge != nil {
			a.bridge.Close()
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

// startAssistant connects the voice widget and routes extracted commands into
// the local post repository.
func (a *App) startAssistant(ctx context.Context) {
	bridge, err := assistant.Dial(ctx, assistant.Options{
		URL:        a.config.AssistantURL,
		PlatformID: a.config.AssistantPlatform,
		Logger:     a.log,
		OnEcho: func(content string) {
			fields := feed.Fields{Content: content, VoiceStyle: "assistant"}
			if user := a.session.CurrentUser(); user != nil {
				fields.AuthorID = user.ID
				fields.AuthorUsername = user.Username
				fields.AuthorDisplayName = user.DisplayName
			}
			post := a.local.Add(fields)
			a.log.Info(ctx, "assistant echo captured", "post_id", post.ID)
		},
	})
	if err != nil {
		a.log.Warn(ctx, "voice assistant unavailable", "error", err)
		return
	}
	a.bridge = bridge
}

func (a *App) isLoggedIn() bool {
	return a.session.Status() == session.StatusAuthenticated
}

func (a *App) status() string {
	if user := a.session.CurrentUser(); user != nil {
		return "(" + user.Username + ")"
	}
	return ""
}
