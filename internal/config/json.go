package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/daybookapp/daybook/internal/flagx"
	"github.com/daybookapp/daybook/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify the lockout windows either
// as strings like "30s" or as integer nanoseconds. After parsing, values are
// copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	DataDir       string         `json:"data_dir"`
	FeaturedCount int            `json:"featured_count"`
	LockoutBase   timex.Duration `json:"lockout_base"`
	LockoutMax    timex.Duration `json:"lockout_max"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Behavior:
//   - Reads and unmarshals the JSON into JsonConfig.
//   - Copies known fields into the provided Config; absent fields keep
//     their current values.
//   - Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.FeaturedCount > 0 {
		cfg.FeaturedCount = jc.FeaturedCount
	}
	if jc.LockoutBase.Duration > 0 {
		cfg.LockoutBase = time.Duration(jc.LockoutBase.Duration)
	}
	if jc.LockoutMax.Duration > 0 {
		cfg.LockoutMax = time.Duration(jc.LockoutMax.Duration)
	}
}
