package config

import (
	"flag"
	"os"
	"time"

	"github.com/daybookapp/daybook/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   data directory (default from Config)
//	-n int      featured view size (default from Config)
//	-b int      pin lockout base wait in seconds, 0 disables (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-n", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory for the diary database and secrets")
	fs.IntVar(&cfg.FeaturedCount, "n", cfg.FeaturedCount, "number of entries in the featured view")
	lockoutBase := fs.Int("b", int(cfg.LockoutBase.Seconds()), "pin lockout base wait (in seconds, 0 disables)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.LockoutBase = time.Duration(*lockoutBase) * time.Second
}
