package cli

import (
	"context"
	"errors"
	"os"

	"github.com/daybookapp/daybook/internal/diary"
	"github.com/daybookapp/daybook/internal/shared"
)

// ChangeName prompts for and stores a new display name.
func (a *App) ChangeName(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "New name", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.beginWrite(); err != nil {
		printlnFn("Another change is still saving, try again in a moment.")
		return err
	}
	defer a.endWrite()

	if err := a.creds.ChangeName(ctx, name); err != nil {
		if errors.Is(err, diary.ErrNameTooShort) {
			printlnFn("That name is too short, please use at least 2 characters.")
		} else {
			printlnFn("Could not save the name:", err.Error())
		}
		return err
	}

	printlnFn("Done, " + a.creds.CurrentName(ctx) + "!")
	return nil
}

// ChangePin verifies the current PIN and stores a new one, entered twice.
func (a *App) ChangePin(ctx context.Context) error {
	current, err := getPIN("Current PIN", os.Stdout)
	if err != nil {
		return err
	}
	ok, err := a.creds.VerifyPIN(ctx, current)
	shared.WipeByteArray(current)
	if err != nil {
		printlnFn("Could not verify the PIN:", err.Error())
		return err
	}
	if !ok {
		printlnFn("Incorrect PIN.")
		return nil
	}

	newPin, err := getPIN("New PIN (4-6 digits)", os.Stdout)
	if err != nil {
		return err
	}
	confirm, err := getPIN("Repeat the new PIN", os.Stdout)
	if err != nil {
		shared.WipeByteArray(newPin)
		return err
	}

	if string(newPin) != string(confirm) {
		shared.WipeByteArray(newPin)
		shared.WipeByteArray(confirm)
		printlnFn("The PINs do not match.")
		return nil
	}
	shared.WipeByteArray(confirm)

	if err := a.beginWrite(); err != nil {
		shared.WipeByteArray(newPin)
		printlnFn("Another change is still saving, try again in a moment.")
		return err
	}
	defer a.endWrite()

	err = a.creds.ChangePIN(ctx, newPin)
	shared.WipeByteArray(newPin)
	if err != nil {
		if errors.Is(err, diary.ErrPinTooShort) || errors.Is(err, diary.ErrPinFormat) {
			printlnFn("The PIN must be 4 to 6 digits.")
		} else {
			printlnFn("Could not save the PIN:", err.Error())
		}
		return err
	}

	printlnFn("PIN changed.")
	return nil
}

// Theme cycles between the three theme modes: system, light, dark.
func (a *App) Theme(ctx context.Context) error {
	theme := a.theme.Current(ctx)

	switch {
	case theme.UseSystemTheme:
		theme.UseSystemTheme = false
		theme.IsDark = false
	case !theme.IsDark:
		theme.IsDark = true
	default:
		theme.UseSystemTheme = true
		theme.IsDark = false
	}

	if err := a.beginWrite(); err != nil {
		printlnFn("Another change is still saving, try again in a moment.")
		return err
	}
	defer a.endWrite()

	if err := a.theme.Save(ctx, theme); err != nil {
		printlnFn("Could not save the theme:", err.Error())
		return err
	}

	switch {
	case theme.UseSystemTheme:
		printlnFn("Theme: follow the system.")
	case theme.IsDark:
		printlnFn("Theme: dark.")
	default:
		printlnFn("Theme: light.")
	}
	return nil
}

// ClearEntries deletes every diary entry after an explicit confirmation.
func (a *App) ClearEntries(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Delete ALL entries? This cannot be undone. (yes/no)", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "yes" {
		printlnFn("Nothing deleted.")
		return nil
	}

	if err := a.beginWrite(); err != nil {
		printlnFn("Another change is still saving, try again in a moment.")
		return err
	}
	defer a.endWrite()

	if err := a.entries.ClearAll(ctx); err != nil {
		printlnFn("Could not clear the diary:", err.Error())
		return err
	}

	printlnFn("All entries deleted.")
	return nil
}

// Reset wipes credentials, preferences, entries and imported media, then
// reports true so the REPL exits; the next start runs enrollment again.
func (a *App) Reset(ctx context.Context) (bool, error) {
	answer, err := getSimpleText(a.reader, "Erase EVERYTHING and start over? (yes/no)", os.Stdout)
	if err != nil {
		return false, err
	}
	if answer != "yes" {
		printlnFn("Nothing erased.")
		return false, nil
	}

	if err := a.beginWrite(); err != nil {
		printlnFn("Another change is still saving, try again in a moment.")
		return false, err
	}
	defer a.endWrite()

	if err := a.creds.ResetAll(ctx); err != nil {
		printlnFn("Reset failed:", err.Error())
		return false, err
	}
	if err := a.importer.Clear(); err != nil {
		a.log.Warn(ctx, "failed to remove imported media during reset", "error", err)
	}

	printlnFn("Everything erased.")
	return true, nil
}
