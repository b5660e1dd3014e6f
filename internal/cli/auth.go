package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/daybookapp/daybook/internal/diary"
	"github.com/daybookapp/daybook/internal/gate"
	"github.com/daybookapp/daybook/internal/shared"
)

// getSimpleText and getPIN are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPIN = GetPIN

// Unlock resolves the authentication gate and walks whichever interactive
// flow it lands on: first-run enrollment, or PIN entry when no biometric
// unlock happened. It returns nil when the user aborts with EOF; the caller
// checks the gate state afterwards.
func (a *App) Unlock(ctx context.Context) error {
	state, err := a.gate.Resolve(ctx)
	if err != nil {
		return err
	}

	switch state {
	case gate.StateEnrolling:
		return a.enroll(ctx)
	case gate.StateAwaitingPin:
		return a.promptPin(ctx)
	case gate.StateUnlocked:
		printlnFn("Welcome back, " + a.creds.CurrentName(ctx) + "!")
	}
	return nil
}

// enroll runs the first-run flow: display name, then PIN entered twice.
// Validation failures restart the flow; storage failures abort.
func (a *App) enroll(ctx context.Context) error {
	printlnFn("Welcome! Let's set up your diary.")

	for {
		name, err := getSimpleText(a.reader, "What should we call you?", os.Stdout)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		pin, err := getPIN("Choose a PIN (4-6 digits)", os.Stdout)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		confirm, err := getPIN("Repeat the PIN", os.Stdout)
		if err != nil {
			shared.WipeByteArray(pin)
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if string(pin) != string(confirm) {
			shared.WipeByteArray(pin)
			shared.WipeByteArray(confirm)
			printlnFn("The PINs do not match, let's try again.")
			continue
		}
		shared.WipeByteArray(confirm)

		err = a.gate.Enroll(ctx, name, pin)
		shared.WipeByteArray(pin)
		if err == nil {
			printlnFn("All set. Welcome, " + a.creds.CurrentName(ctx) + "!")
			return nil
		}

		switch {
		case errors.Is(err, diary.ErrNameTooShort):
			printlnFn("That name is too short, please use at least 2 characters.")
		case errors.Is(err, diary.ErrPinTooShort), errors.Is(err, diary.ErrPinFormat):
			printlnFn("The PIN must be 4 to 6 digits.")
		default:
			return err
		}
	}
}

// promptPin loops on PIN entry until the gate unlocks, the user aborts, or
// storage fails.
func (a *App) promptPin(ctx context.Context) error {
	for {
		pin, err := getPIN("Enter your PIN", os.Stdout)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		ok, err := a.gate.SubmitPin(ctx, pin)
		shared.WipeByteArray(pin)

		if err != nil {
			var locked *gate.LockedOutError
			if errors.As(err, &locked) {
				printlnFn(locked.Error())
				continue
			}
			return err
		}

		if ok {
			printlnFn("Welcome back, " + a.creds.CurrentName(ctx) + "!")
			return nil
		}
		printlnFn("Incorrect PIN, try again.")
	}
}
