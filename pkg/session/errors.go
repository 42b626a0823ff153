package session

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionExists indicates a Start while the player already holds a
	// record (uniqueness conflict).
	ErrSessionExists = errors.New("session.already_exists")

	// ErrSessionNotFound indicates an operation requiring an existing
	// record found none.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrSessionEnded indicates a mutation on a session that has already
	// been ended.
	ErrSessionEnded = errors.New("session.already_ended")

	// ErrVersionConflict indicates the record changed between read and
	// conditional write; the caller must re-read and retry.
	ErrVersionConflict = errors.New("session.version_conflict")

	// ErrValidation indicates a domain invariant violation detected
	// before any store write.
	ErrValidation = errors.New("session.validation_failed")

	// ErrCorruptRecord indicates a stored record that no longer decodes
	// into a valid session.
	ErrCorruptRecord = errors.New("session.corrupt_record")

	// ErrStoreUnavailable indicates a transient store/network failure;
	// safe to retry after re-reading state.
	ErrStoreUnavailable = errors.New("session.store_unavailable")
)

// validationErr wraps ErrValidation with field-level detail so callers
// can both errors.Is-match the class and read the cause.
func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
