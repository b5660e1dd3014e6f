package cli

import (
	"bufio"
	"context"
	"errors"
	"os"

	"github.com/daybookapp/daybook/internal/config"
	"github.com/daybookapp/daybook/internal/diary"
	"github.com/daybookapp/daybook/internal/gate"
	"github.com/daybookapp/daybook/internal/logging"
	"github.com/daybookapp/daybook/internal/mediax"
	"github.com/daybookapp/daybook/internal/storage"
)

// ErrBusy is returned when a write command arrives while a previous write is
// still in flight. The entry collection is a single blob with full-replace
// writes, so at most one write may be outstanding.
var ErrBusy = errors.New("a write is already in progress")

type App struct {
	config   *config.Config
	stores   *storage.Stores
	gate     *gate.Gate
	creds    diary.CredentialService
	entries  diary.EntryService
	theme    diary.ThemeService
	importer *mediax.Importer
	log      logging.Logger
	reader   *bufio.Reader

	// writeBusy is the single-outstanding-write latch. The REPL is
	// single-threaded, so a plain bool suffices; the latch exists to refuse
	// re-entrant writes from nested prompts.
	writeBusy bool
}

// NewApp opens the stores under the configured data directory and wires the
// services and the authentication gate.
func NewApp(ctx context.Context, c *config.Config, prober gate.Prober, log logging.Logger) (*App, error) {
	stores, err := storage.Open(ctx, c.DataDir)
	if err != nil {
		log.Error(ctx, "failed to open storage", "dir", c.DataDir, "error", err)
		return nil, err
	}

	creds := diary.NewCredentialService(stores.Secrets, stores.Prefs, log)
	entries := diary.NewEntryService(stores.Prefs, log)
	theme := diary.NewThemeService(stores.Prefs, log)

	var lockout *gate.LockoutPolicy
	if c.LockoutBase > 0 {
		lockout = gate.NewLockoutPolicy(c.LockoutBase, c.LockoutMax)
	}

	return &App{
		config:   c,
		stores:   stores,
		gate:     gate.New(creds, prober, lockout, log),
		creds:    creds,
		entries:  entries,
		theme:    theme,
		importer: mediax.NewImporter(c.DataDir, log),
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

// Run resolves the authentication gate and, once unlocked, hands control to
// the REPL. It blocks until the user exits.
func (a *App) Run(ctx context.Context) error {
	defer a.stores.Close()

	if err := a.Unlock(ctx); err != nil {
		return err
	}
	if !a.isUnlocked() {
		// EOF during enrollment or PIN entry.
		return nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
	return nil
}

func (a *App) isUnlocked() bool {
	return a.gate.State() == gate.StateUnlocked
}

// status feeds the REPL prompt with the current profile name.
func (a *App) status() string {
	return a.creds.CurrentName(context.Background())
}

// beginWrite acquires the single-outstanding-write latch.
func (a *App) beginWrite() error {
	if a.writeBusy {
		return ErrBusy
	}
	a.writeBusy = true
	return nil
}

func (a *App) endWrite() {
	a.writeBusy = false
}
