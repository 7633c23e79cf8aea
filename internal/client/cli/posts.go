package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/echowave/echowave/internal/client/api"
	"github.com/echowave/echowave/internal/client/models"
)

const defaultPageSize = 20

// Feed lists a page of the public feed. Optional args: skip [limit].
func (a *App) Feed(ctx context.Context, args []string) error {
	skip, limit := parsePage(args)

	posts, err := a.api.ListPosts(ctx, skip, limit)
	if err != nil {
		return err
	}
	a.printPosts(posts)
	return nil
}

// Mine lists the authenticated user's own posts.
func (a *App) Mine(ctx context.Context) error {
	posts, err := a.api.ListMyPosts(ctx, 0, defaultPageSize)
	if err != nil {
		return err
	}
	a.printPosts(posts)
	return nil
}

// Compose submits a new echo: optional text content plus an optional audio
// file path. The backend decides whether the combination is acceptable.
func (a *App) Compose(ctx context.Context) error {
	text, err := GetMultiline(a.reader, "Echo text (optional)", a.out)
	if err != nil {
		return err
	}
	audioPath, err := getSimpleText(a.reader, "Audio file path (optional)", a.out)
	if err != nil {
		return err
	}

	req := api.CreatePostRequest{TextContent: text}
	if audioPath != "" {
		f, err := os.Open(audioPath)
		if err != nil {
			return fmt.Errorf("open audio file: %w", err)
		}
		defer f.Close()
		req.VoiceFile = f
		req.VoiceFileName = filepath.Base(audioPath)
	}

	post, err := a.api.CreatePost(ctx, req)
	if err != nil {
		return err
	}
	printlnFn("Posted echo", post.ID)
	return nil
}

// Show prints one post by id.
func (a *App) Show(ctx context.Context, args []string) error {
	id, err := requireID(args)
	if err != nil {
		return err
	}

	post, err := a.api.GetPost(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s @%s\n", post.ID, post.AuthorUsername)
	if post.Content != "" && a.prefs.TranscriptionsEnabled() {
		fmt.Fprintln(a.out, post.Content)
	}
	fmt.Fprintf(a.out, "audio: %s (%.0fs, %d listens)\n", post.AudioURL, post.Duration, post.ListenCount)
	if len(post.Tags) > 0 {
		fmt.Fprintln(a.out, "tags:", post.Tags)
	}
	return nil
}

// Delete removes one of the user's own posts.
func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := requireID(args)
	if err != nil {
		return err
	}
	if err := a.api.DeletePost(ctx, id); err != nil {
		return err
	}
	printlnFn("Deleted", id)
	return nil
}

// Local lists the process-lifetime posts composed on this device.
func (a *App) Local(_ context.Context) error {
	a.printPosts(a.local.List())
	return nil
}

func (a *App) printPosts(posts []models.Post) {
	if len(posts) == 0 {
		printlnFn("No echoes.")
		return
	}
	showText := a.prefs.TranscriptionsEnabled()
	for _, p := range posts {
		line := fmt.Sprintf("%s @%s (%.0fs)", p.ID, p.AuthorUsername, p.Duration)
		if showText && p.Content != "" {
			line += " | " + p.Content
		}
		fmt.Fprintln(a.out, line)
	}
}

func parsePage(args []string) (skip, limit int) {
	limit = defaultPageSize
	if len(args) > 0 {
		if v, err := strconv.Atoi(args[0]); err == nil && v >= 0 {
			skip = v
		}
	}
	if len(args) > 1 {
		if v, err := strconv.Atoi(args[1]); err == nil && v > 0 {
			limit = v
		}
	}
	return skip, limit
}

func requireID(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("post id required")
	}
	return args[0], nil
}
