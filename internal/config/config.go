package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the daybook CLI.
//
// Fields:
//   - DataDir: directory holding the diary database and the sealed secret file.
//   - FeaturedCount: how many entries the featured view samples.
//   - LockoutBase / LockoutMax: initial and maximum wait windows of the PIN
//     brute-force guard. A zero LockoutBase disables the guard.
type Config struct {
	DataDir       string
	FeaturedCount int
	LockoutBase   time.Duration
	LockoutMax    time.Duration
}

// LoadDefaults populates c with sensible defaults. The data directory lands
// under the user's home; when the home directory cannot be resolved it falls
// back to the working directory.
func (c *Config) LoadDefaults() {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	c.DataDir = filepath.Join(home, ".daybook")
	c.FeaturedCount = 3
	c.LockoutBase = 0
	c.LockoutMax = 5 * time.Minute
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
