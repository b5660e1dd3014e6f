// Package cli provides the interactive daybook command-line client.
//
// It wires configuration, local storage, the authentication gate, and an
// interactive REPL. Typical flow: resolve the gate (first-run enrollment,
// biometric challenge, or PIN entry), then execute user commands against the
// unlocked diary.
//
// Key features:
//   - First-run enrollment and PIN / biometric unlock
//   - Write entries with an optional image attachment
//   - List, calendar and featured views
//   - Settings: display name, PIN change, theme, clear entries, full reset
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
