package config

import (
	"flag"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/babycare/internal/flagx"
)

var ownFlags = []string{"-a", "-t", "-d", "-b", "-i", "-p", "-l", "-o"}

// parseFlags populates Config fields from the short command-line flags listed
// in the package documentation. args is filtered with flagx.FilterArgs so the
// cobra command tree can own the remaining arguments. Panics on malformed
// values.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, ownFlags)

	fs := flag.NewFlagSet("babycare", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the backend")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database")
	fs.StringVar(&cfg.BabyID, "b", cfg.BabyID, "baby profile id")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	persistence := fs.String("p", cfg.TogglePersistence, "toggle persistence: none, local or remote")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.InitialTab, "o", cfg.InitialTab, "tab to open after login: growth, vaccines or milestones")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Durations change only when their flag is present.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		}
	})
	cfg.TogglePersistence = strings.ToLower(*persistence)
}
