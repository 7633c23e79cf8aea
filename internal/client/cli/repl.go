package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	Refresh(ctx context.Context) error
	Users(ctx context.Context) error
	Feed(ctx context.Context, args []string) error
	Mine(ctx context.Context) error
	Compose(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Like(ctx context.Context, args []string) error
	Likes(ctx context.Context) error
	ClearLikes(ctx context.Context) error
	Save(ctx context.Context, args []string) error
	Unsave(ctx context.Context, args []string) error
	Download(ctx context.Context, args []string) error
	RemoveDownload(ctx context.Context, args []string) error
	SavedList(ctx context.Context) error
	Transcripts(ctx context.Context) error
	Local(ctx context.Context) error
}

// runREPL starts a read–eval–print loop dispatching commands to a. The
// prompt shows the current status (from statusFn). The loop exits on scanner
// EOF or when the user types "exit" or "quit". Errors from command handlers
// are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("echo %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: feed, mine, post, show <id>, delete <id>, like <id>, likes, clearlikes, save <id>, unsave <id>, download <id>, undownload <id>, saves, transcripts, local, me, users, refresh, logout, exit")
			} else {
				printlnFn("Available commands: register, login, feed, transcripts, exit")
			}

		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "me":
			err = a.Me(ctx)
		case "refresh":
			err = a.Refresh(ctx)
		case "users":
			err = a.Users(ctx)
		case "f", "feed":
			err = a.Feed(ctx, args)
		case "mine":
			err = a.Mine(ctx)
		case "post":
			err = a.Compose(ctx)
		case "show":
			err = a.Show(ctx, args)
		case "delete":
			err = a.Delete(ctx, args)
		case "like":
			err = a.Like(ctx, args)
		case "likes":
			err = a.Likes(ctx)
		case "clearlikes":
			err = a.ClearLikes(ctx)
		case "save":
			err = a.Save(ctx, args)
		case "unsave":
			err = a.Unsave(ctx, args)
		case "download":
			err = a.Download(ctx, args)
		case "undownload":
			err = a.RemoveDownload(ctx, args)
		case "saves":
			err = a.SavedList(ctx)
		case "transcripts":
			err = a.Transcripts(ctx)
		case "local":
			err = a.Local(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
