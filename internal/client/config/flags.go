package config

import (
	"flag"
	"os"
	"time"

	"babysteps/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the API server (default from Config)
//	-d string   path of the local sqlite file
//	-i int      live poll interval in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the API server")
	fs.StringVar(&cfg.LocalDBPath, "d", cfg.LocalDBPath, "path of the local database file")
	pollInterval := fs.Int("i", int(cfg.PollInterval.Seconds()), "live poll interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.PollInterval = time.Duration(*pollInterval) * time.Second
}
