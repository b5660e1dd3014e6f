package diary

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"unicode"

	"github.com/daybookapp/daybook/internal/logging"
	"github.com/daybookapp/daybook/internal/storage/prefs"
	"github.com/daybookapp/daybook/internal/storage/secret"
)

const (
	minNameLen = 2
	minPinLen  = 4
	maxPinLen  = 6
)

// CredentialService is the sole authority over PIN and profile-name
// persistence and validation.
//
// Contract:
//   - Enroll is an idempotent overwrite; calling it again acts as "change".
//   - VerifyPIN is exact equality against the stored value, no throttling.
//   - CurrentName and HasPINSet never fail; absent data reads as zero values.
//   - ResetAll returns the system to the pre-enrollment state. Irreversible.
type CredentialService interface {
	IsEnrolled(ctx context.Context) (bool, error)
	Enroll(ctx context.Context, name string, pin []byte) error
	VerifyPIN(ctx context.Context, candidate []byte) (bool, error)
	ChangePIN(ctx context.Context, newPin []byte) error
	ChangeName(ctx context.Context, newName string) error
	CurrentName(ctx context.Context) string
	HasPINSet(ctx context.Context) bool
	ResetAll(ctx context.Context) error
}

type credentialService struct {
	secrets secret.Store
	prefs   prefs.Repository
	log     logging.Logger
}

// NewCredentialService binds the service to its two disjoint namespaces.
func NewCredentialService(secrets secret.Store, prefStore prefs.Repository, log logging.Logger) CredentialService {
	return &credentialService{
		secrets: secrets,
		prefs:   prefStore,
		log:     log.With("component", "credentials"),
	}
}

// validateName trims the candidate and checks the minimum length in runes.
func validateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if len([]rune(trimmed)) < minNameLen {
		return "", ErrNameTooShort
	}
	return trimmed, nil
}

// validatePIN enforces the 4-6 digit shape the numeric keypad produces.
func validatePIN(pin []byte) error {
	if len(pin) < minPinLen {
		return ErrPinTooShort
	}
	if len(pin) > maxPinLen {
		return ErrPinFormat
	}
	for _, b := range pin {
		if !unicode.IsDigit(rune(b)) {
			return ErrPinFormat
		}
	}
	return nil
}

// IsEnrolled reports whether a PIN is present in the secret store.
// No side effects.
func (s *credentialService) IsEnrolled(ctx context.Context) (bool, error) {
	pin, err := s.secrets.Get(ctx, secret.KeyUserPIN)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return pin != "", nil
}

// Enroll validates and persists the credential pair: the PIN goes to the
// secret store, the trimmed name to the preference store. Validation order
// matches the enrollment screen: name first, then PIN. If the name write
// fails after the PIN write succeeded, the partial state is reported rather
// than hidden.
func (s *credentialService) Enroll(ctx context.Context, name string, pin []byte) error {
	trimmed, err := validateName(name)
	if err != nil {
		return err
	}
	if err := validatePIN(pin); err != nil {
		return err
	}

	if err := s.secrets.Set(ctx, secret.KeyUserPIN, string(pin)); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	if err := s.prefs.Set(ctx, prefs.KeyUserName, []byte(trimmed)); err != nil {
		return fmt.Errorf("%w: pin saved but name not persisted: %v", ErrStorageWrite, err)
	}

	s.log.Info(ctx, "credential enrolled", "name", trimmed)
	return nil
}

// VerifyPIN compares the candidate against the stored PIN. A missing PIN
// never matches. The comparison is constant-time but semantically plain
// string equality.
func (s *credentialService) VerifyPIN(ctx context.Context, candidate []byte) (bool, error) {
	stored, err := s.secrets.Get(ctx, secret.KeyUserPIN)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStorageRead, err)
	}
	if stored == "" {
		return false, nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), candidate) == 1, nil
}

// ChangePIN overwrites the stored PIN after the same validation as Enroll.
func (s *credentialService) ChangePIN(ctx context.Context, newPin []byte) error {
	if err := validatePIN(newPin); err != nil {
		return err
	}
	if err := s.secrets.Set(ctx, secret.KeyUserPIN, string(newPin)); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	s.log.Info(ctx, "pin changed")
	return nil
}

// ChangeName overwrites the stored profile name after trimming/validation.
func (s *credentialService) ChangeName(ctx context.Context, newName string) error {
	trimmed, err := validateName(newName)
	if err != nil {
		return err
	}
	if err := s.prefs.Set(ctx, prefs.KeyUserName, []byte(trimmed)); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	return nil
}

// CurrentName returns the stored profile name, or "" when absent or when
// the store is unreadable. Read failures are logged, never raised.
func (s *credentialService) CurrentName(ctx context.Context) string {
	value, err := s.prefs.Get(ctx, prefs.KeyUserName)
	if err != nil {
		s.log.Warn(ctx, "failed to read profile name", "error", err)
		return ""
	}
	return string(value)
}

// HasPINSet reports whether a PIN exists, treating read failures as false.
func (s *credentialService) HasPINSet(ctx context.Context) bool {
	enrolled, err := s.IsEnrolled(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to check pin presence", "error", err)
		return false
	}
	return enrolled
}

// ResetAll deletes the PIN and clears the whole preference namespace,
// returning the app to its pre-enrollment state. Both stores are attempted
// even if the first fails.
func (s *credentialService) ResetAll(ctx context.Context) error {
	secErr := s.secrets.Clear(ctx)
	prefErr := s.prefs.Clear(ctx)

	if secErr != nil || prefErr != nil {
		var details []string
		if secErr != nil {
			details = append(details, secErr.Error())
		}
		if prefErr != nil {
			details = append(details, prefErr.Error())
		}
		return fmt.Errorf("%w: %s", ErrStorageWrite, strings.Join(details, "; "))
	}

	s.log.Info(ctx, "app reset to pre-enrollment state")
	return nil
}
