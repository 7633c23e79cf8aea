package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubExec records which commands the REPL dispatched.
type stubExec struct {
	loggedIn bool
	calls    []string
	lastArgs []string
}

func (s *stubExec) record(name string) error {
	s.calls = append(s.calls, name)
	return nil
}

func (s *stubExec) isLoggedIn() bool                  { return s.loggedIn }
func (s *stubExec) Register(context.Context) error    { return s.record("register") }
func (s *stubExec) Login(context.Context) error       { return s.record("login") }
func (s *stubExec) Logout(context.Context) error      { return s.record("logout") }
func (s *stubExec) Me(context.Context) error          { return s.record("me") }
func (s *stubExec) Refresh(context.Context) error     { return s.record("refresh") }
func (s *stubExec) Users(context.Context) error       { return s.record("users") }
func (s *stubExec) Mine(context.Context) error        { return s.record("mine") }
func (s *stubExec) Compose(context.Context) error     { return s.record("post") }
func (s *stubExec) Likes(context.Context) error       { return s.record("likes") }
func (s *stubExec) ClearLikes(context.Context) error  { return s.record("clearlikes") }
func (s *stubExec) SavedList(context.Context) error   { return s.record("saves") }
func (s *stubExec) Transcripts(context.Context) error { return s.record("transcripts") }
func (s *stubExec) Local(context.Context) error       { return s.record("local") }

func (s *stubExec) Feed(_ context.Context, args []string) error {
	s.lastArgs = args
	return s.record("feed")
}
func (s *stubExec) Show(_ context.Context, args []string) error {
	s.lastArgs = args
	return s.record("show")
}
func (s *stubExec) Delete(_ context.Context, args []string) error {
	s.lastArgs = args
	return s.record("delete")
}
func (s *stubExec) Like(_ context.Context, args []string) error {
	s.lastArgs = args
	return s.record("like")
}
func (s *stubExec) Save(_ context.Context, args []string) error {
	s.lastArgs = args
	return s.record("save")
}
func (s *stubExec) Unsave(_ context.Context, args []string) error {
	s.lastArgs = args
	return s.record("unsave")
}
func (s *stubExec) Download(_ context.Context, args []string) error {
	s.lastArgs = args
	return s.record("download")
}
func (s *stubExec) RemoveDownload(_ context.Context, args []string) error {
	s.lastArgs = args
	return s.record("undownload")
}

func runScript(t *testing.T, stub *stubExec, script string) []string {
	t.Helper()

	origPrintln := printlnFn
	var output []string
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i], _ = v.(string)
		}
		output = append(output, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrintln })

	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), stub, func() string { return "" }, scanner)
	return output
}

func TestREPL_DispatchesCommands(t *testing.T) {
	stub := &stubExec{}
	runScript(t, stub, "login\nfeed 20 10\nlike p1\nexit\n")

	assert.Equal(t, []string{"login", "feed", "like"}, stub.calls)
	assert.Equal(t, []string{"p1"}, stub.lastArgs)
}

func TestREPL_UnknownCommand(t *testing.T) {
	stub := &stubExec{}
	out := runScript(t, stub, "dance\nexit\n")

	assert.Empty(t, stub.calls)
	assert.Contains(t, strings.Join(out, "\n"), "Unknown command:")
}

func TestREPL_EmptyLinesSkipped(t *testing.T) {
	stub := &stubExec{}
	runScript(t, stub, "\n\n  \nme\nquit\n")

	assert.Equal(t, []string{"me"}, stub.calls)
}

func TestREPL_ExitsOnEOF(t *testing.T) {
	stub := &stubExec{}
	runScript(t, stub, "likes\n")

	assert.Equal(t, []string{"likes"}, stub.calls)
}

func TestREPL_HelpVariesWithLogin(t *testing.T) {
	stub := &stubExec{}
	out := runScript(t, stub, "help\nexit\n")
	assert.Contains(t, strings.Join(out, "\n"), "register, login")

	stub = &stubExec{loggedIn: true}
	out = runScript(t, stub, "help\nexit\n")
	assert.Contains(t, strings.Join(out, "\n"), "logout")
}
