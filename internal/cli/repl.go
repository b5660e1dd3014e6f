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
	NewEntry(ctx context.Context) error
	List(ctx context.Context) error
	Calendar(ctx context.Context) error
	Featured(ctx context.Context) error
	ChangeName(ctx context.Context) error
	ChangePin(ctx context.Context) error
	Theme(ctx context.Context) error
	ClearEntries(ctx context.Context) error
	Reset(ctx context.Context) (bool, error)
}

// runREPL starts a simple read–eval–print loop for the daybook CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF, when the user types
// "exit" or "quit", or after a full reset.
//
// Prompt & Commands
//
// The prompt shows the profile name (from statusFn) and accepts commands:
//
//	- help           — show available commands
//	- new            — write a new entry
//	- (l)ist         — list entries newest-first
//	- calendar       — entries grouped by day
//	- featured       — a random selection of past entries
//	- name           — change the display name
//	- changepin      — change the PIN
//	- theme          — switch the theme
//	- clearentries   — delete all entries
//	- reset          — wipe everything and exit
//	- exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("daybook (%s) > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			printlnFn("Available commands: new, (l)ist, calendar, featured, name, changepin, theme, clearentries, reset, exit")

		case "new":
			_ = a.NewEntry(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "calendar":
			_ = a.Calendar(ctx)

		case "featured":
			_ = a.Featured(ctx)

		case "name":
			_ = a.ChangeName(ctx)

		case "changepin":
			_ = a.ChangePin(ctx)

		case "theme":
			_ = a.Theme(ctx)

		case "clearentries":
			_ = a.ClearEntries(ctx)

		case "reset":
			done, _ := a.Reset(ctx)
			if done {
				printlnFn("Bye!")
				return
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
