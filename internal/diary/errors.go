package diary

import "errors"

// Validation errors: recovered locally by the prompting screen, nothing is
// persisted when one is returned.
var (
	ErrNameTooShort = errors.New("name must be at least 2 characters")
	ErrPinTooShort  = errors.New("pin must be at least 4 digits")
	ErrPinFormat    = errors.New("pin must be 4-6 digits")
)

// Storage errors: surfaced to the user as a non-fatal alert. State observed
// after a failed operation equals the state before it.
var (
	ErrStorageRead        = errors.New("storage read failed")
	ErrStorageWrite       = errors.New("storage write failed")
	ErrStorageUnavailable = errors.New("storage unavailable")
)
