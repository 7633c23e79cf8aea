package config

import (
	"flag"
	"os"
	"time"

	"github.com/echowave/echowave/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the REST backend
//	-d string   path to the local preferences database
//	-w string   websocket URL of the voice-assistant widget
//	-t int      request timeout in seconds (0 disables)
//
// Arguments are filtered with flagx.FilterArgs so other config stages keep
// their own flags.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-w", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the REST backend")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the preferences database")
	fs.StringVar(&cfg.AssistantURL, "w", cfg.AssistantURL, "voice-assistant widget websocket URL")
	timeoutSec := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout in seconds (0 disables)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeoutSec) * time.Second
}
