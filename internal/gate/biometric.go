package gate

import (
	"context"
	"errors"
)

// Biometric outcomes. Denial keeps the session recoverable via PIN;
// unavailability means the hardware path cannot be offered at all.
var (
	ErrBiometricDenied      = errors.New("biometric challenge denied")
	ErrBiometricUnavailable = errors.New("biometric authentication unavailable")
)

// Prober abstracts the platform biometric capability: hardware presence plus
// at least one enrolled biometric, and a single yes/no challenge.
type Prober interface {
	// Available reports whether a biometric challenge can be issued.
	Available(ctx context.Context) bool

	// Challenge issues one biometric prompt. A nil return means the user
	// passed; ErrBiometricDenied means failure or cancel.
	Challenge(ctx context.Context, prompt string) error
}

// NoneProber is the default Prober on platforms with no reachable biometric
// hardware (a terminal session, headless use). It is never available.
type NoneProber struct{}

func (NoneProber) Available(ctx context.Context) bool { return false }

func (NoneProber) Challenge(ctx context.Context, prompt string) error {
	return ErrBiometricUnavailable
}
