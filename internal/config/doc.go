// Package config loads runtime configuration for the daybook CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   data directory holding the diary database and sealed secrets
//	-n int      how many entries the featured view shows
//	-b int      pin lockout base wait in seconds (0 disables the guard)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the lockout windows, so values can
// be either strings like "30s" or integer nanoseconds:
//
//	{
//	  "data_dir": "/home/ana/.daybook",
//	  "featured_count": 3,
//	  "lockout_base": "30s",
//	  "lockout_max": "5m"
//	}
//
// A zero lockout_base leaves the brute-force guard disabled.
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
