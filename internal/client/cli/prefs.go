package cli

import (
	"context"
	"fmt"
)

// Like toggles the liked state of a post. The post is fetched first so the
// liked record carries full display data.
func (a *App) Like(ctx context.Context, args []string) error {
	id, err := requireID(args)
	if err != nil {
		return err
	}

	post, err := a.api.GetPost(ctx, id)
	if err != nil {
		return err
	}

	liked, err := a.likes.Toggle(ctx, *post)
	if err != nil {
		// the in-memory change took effect; warn about persistence only
		printlnFn("Warning: change not persisted:", err.Error())
	}
	if liked {
		printlnFn("Liked", id)
	} else {
		printlnFn("Unliked", id)
	}
	return nil
}

// Likes lists liked posts, most recently liked first.
func (a *App) Likes(_ context.Context) error {
	records := a.likes.Liked()
	if len(records) == 0 {
		printlnFn("No liked echoes.")
		return nil
	}
	for _, r := range records {
		fmt.Fprintf(a.out, "%s @%s liked %s\n", r.Post.ID, r.Post.AuthorUsername, r.LikedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// ClearLikes wipes the liked list, both in memory and on disk.
func (a *App) ClearLikes(ctx context.Context) error {
	if err := a.likes.Clear(ctx); err != nil {
		return err
	}
	printlnFn("Liked echoes cleared.")
	return nil
}

// Save marks a post as saved.
func (a *App) Save(ctx context.Context, args []string) error {
	id, err := requireID(args)
	if err != nil {
		return err
	}
	post, err := a.api.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if err := a.saves.Save(ctx, *post); err != nil {
		printlnFn("Warning: change not persisted:", err.Error())
	}
	printlnFn("Saved", id)
	return nil
}

// Unsave clears the saved flag; a download of the same post survives.
func (a *App) Unsave(ctx context.Context, args []string) error {
	id, err := requireID(args)
	if err != nil {
		return err
	}
	if err := a.saves.Unsave(ctx, id); err != nil {
		printlnFn("Warning: change not persisted:", err.Error())
	}
	printlnFn("Unsaved", id)
	return nil
}

// Download records a local copy of the post's audio.
func (a *App) Download(ctx context.Context, args []string) error {
	id, err := requireID(args)
	if err != nil {
		return err
	}
	post, err := a.api.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if err := a.saves.Download(ctx, *post, "m4a", 0); err != nil {
		printlnFn("Warning: change not persisted:", err.Error())
	}
	printlnFn("Downloaded", id)
	return nil
}

// RemoveDownload drops the local copy record; the saved flag survives.
func (a *App) RemoveDownload(ctx context.Context, args []string) error {
	id, err := requireID(args)
	if err != nil {
		return err
	}
	if err := a.saves.RemoveDownload(ctx, id); err != nil {
		printlnFn("Warning: change not persisted:", err.Error())
	}
	printlnFn("Removed download", id)
	return nil
}

// SavedList prints saved and downloaded posts.
func (a *App) SavedList(_ context.Context) error {
	saved := a.saves.Saved()
	downloaded := a.saves.Downloaded()
	if len(saved) == 0 && len(downloaded) == 0 {
		printlnFn("Nothing saved.")
		return nil
	}
	for _, r := range saved {
		fmt.Fprintf(a.out, "saved      %s @%s\n", r.Post.ID, r.Post.AuthorUsername)
	}
	for _, r := range downloaded {
		fmt.Fprintf(a.out, "downloaded %s (%s, %d bytes)\n", r.Post.ID, r.DownloadFormat, r.DownloadSize)
	}
	return nil
}

// Transcripts toggles transcript visibility in feed output.
func (a *App) Transcripts(ctx context.Context) error {
	enabled, err := a.prefs.ToggleTranscriptions(ctx)
	if err != nil {
		printlnFn("Warning: change not persisted:", err.Error())
	}
	if enabled {
		printlnFn("Transcripts on.")
	} else {
		printlnFn("Transcripts off.")
	}
	return nil
}
