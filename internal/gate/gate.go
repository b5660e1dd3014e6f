package gate

import (
	"context"
	"errors"
	"fmt"

	"github.com/daybookapp/daybook/internal/diary"
	"github.com/daybookapp/daybook/internal/logging"
)

// State is the gate's position in the unlock flow.
type State string

const (
	// StateStart is the cold-start state before Resolve has run.
	StateStart State = "start"
	// StateEnrolling means no credentials exist yet and enrollment is required.
	StateEnrolling State = "enrolling"
	// StateAwaitingPin means credentials exist and a PIN must be entered.
	StateAwaitingPin State = "awaiting_pin"
	// StateUnlocked is terminal for the process lifetime.
	StateUnlocked State = "unlocked"
)

// SessionState is the coarse session status the presentation layer keys off.
type SessionState string

const (
	SessionLocked    SessionState = "locked"
	SessionUnlocking SessionState = "unlocking"
	SessionUnlocked  SessionState = "unlocked"
)

// ErrInvalidTransition is returned when an event arrives in a state that
// does not accept it, e.g. a PIN submitted before Resolve has run.
var ErrInvalidTransition = errors.New("event not valid in current gate state")

// Gate is the authentication state machine. It is driven from a single
// goroutine: the interactive loop delivers one event at a time, so no
// internal locking is needed.
type Gate struct {
	creds   diary.CredentialService
	prober  Prober
	lockout *LockoutPolicy
	log     logging.Logger

	state   State
	session SessionState
}

// New builds a gate in the cold-start position. prober must not be nil; pass
// NoneProber{} when the platform has no biometric path. lockout may be nil,
// which disables the brute-force guard.
func New(creds diary.CredentialService, prober Prober, lockout *LockoutPolicy, log logging.Logger) *Gate {
	return &Gate{
		creds:   creds,
		prober:  prober,
		lockout: lockout,
		log:     log,
		state:   StateStart,
		session: SessionLocked,
	}
}

// State returns the current gate state.
func (g *Gate) State() State { return g.state }

// Session returns the coarse session status.
func (g *Gate) Session() SessionState { return g.session }

// Resolve runs the cold-start decision: enrollment when no credentials
// exist, otherwise a biometric challenge when one is available, otherwise
// PIN entry. It is only valid from the start state. On a storage failure the
// gate stays at start so the caller can retry once the store recovers.
func (g *Gate) Resolve(ctx context.Context) (State, error) {
	if g.state != StateStart {
		return g.state, fmt.Errorf("%w: resolve from %s", ErrInvalidTransition, g.state)
	}

	g.session = SessionUnlocking

	enrolled, err := g.creds.IsEnrolled(ctx)
	if err != nil {
		g.session = SessionLocked
		return g.state, fmt.Errorf("failed to resolve enrollment: %w", err)
	}

	if !enrolled {
		g.state = StateEnrolling
		g.session = SessionLocked
		return g.state, nil
	}

	if !g.prober.Available(ctx) {
		g.state = StateAwaitingPin
		g.session = SessionLocked
		return g.state, nil
	}

	if err := g.prober.Challenge(ctx, "Unlock your diary"); err != nil {
		g.log.Debug(ctx, "biometric challenge failed, falling back to PIN", "error", err)
		g.state = StateAwaitingPin
		g.session = SessionLocked
		return g.state, nil
	}

	g.unlock(ctx)
	return g.state, nil
}

// Enroll stores the first name and PIN and unlocks the session. Validation
// errors leave the gate in the enrolling state for another attempt.
func (g *Gate) Enroll(ctx context.Context, name string, pin []byte) error {
	if g.state != StateEnrolling {
		return fmt.Errorf("%w: enroll from %s", ErrInvalidTransition, g.state)
	}

	if err := g.creds.Enroll(ctx, name, pin); err != nil {
		return err
	}

	g.unlock(ctx)
	return nil
}

// SubmitPin verifies a PIN attempt. A mismatch returns (false, nil) and the
// gate keeps awaiting a PIN; the caller decides how to prompt again. When a
// lockout policy is armed and the wait window is open, the attempt is
// refused with a *LockedOutError without touching the stored PIN.
func (g *Gate) SubmitPin(ctx context.Context, candidate []byte) (bool, error) {
	if g.state != StateAwaitingPin {
		return false, fmt.Errorf("%w: pin from %s", ErrInvalidTransition, g.state)
	}

	if g.lockout != nil {
		if wait := g.lockout.RemainingWait(); wait > 0 {
			return false, &LockedOutError{Wait: wait}
		}
	}

	ok, err := g.creds.VerifyPIN(ctx, candidate)
	if err != nil {
		return false, err
	}

	if !ok {
		if g.lockout != nil {
			g.lockout.Fail()
		}
		return false, nil
	}

	if g.lockout != nil {
		g.lockout.Reset()
	}
	g.unlock(ctx)
	return true, nil
}

// RetryBiometric re-issues the biometric challenge from the PIN screen. A
// denial returns (false, nil) and the PIN path stays open; an unavailable
// prober returns ErrBiometricUnavailable.
func (g *Gate) RetryBiometric(ctx context.Context) (bool, error) {
	if g.state != StateAwaitingPin {
		return false, fmt.Errorf("%w: biometric retry from %s", ErrInvalidTransition, g.state)
	}

	if !g.prober.Available(ctx) {
		return false, ErrBiometricUnavailable
	}

	if err := g.prober.Challenge(ctx, "Unlock your diary"); err != nil {
		g.log.Debug(ctx, "biometric retry failed", "error", err)
		return false, nil
	}

	g.unlock(ctx)
	return true, nil
}

func (g *Gate) unlock(ctx context.Context) {
	g.state = StateUnlocked
	g.session = SessionUnlocked
	g.log.Info(ctx, "session unlocked")
}
