package session

import (
	"context"
	"time"
)

// KeyPrefix namespaces session records in the key-value store. The full
// key is derived from the owning subject and never caller-supplied.
const KeyPrefix = "user:"

// Key returns the store key for a subject.
func Key(subject string) string {
	return KeyPrefix + subject
}

// Store is the persistence contract the engine consumes. Implementations
// are the sole arbiter of the single-active-session invariant: Create
// must be atomic create-only and Update an atomic compare-and-swap on
// the stored record's version. Transient transport failures wrap
// ErrStoreUnavailable.
type Store interface {
	// Get loads the subject's record; ErrSessionNotFound when absent or
	// expired.
	Get(ctx context.Context, subject string) (*Session, error)

	// Create writes a new record with the given TTL, failing with
	// ErrSessionExists if one is already present.
	Create(ctx context.Context, subject string, s *Session, ttl time.Duration) error

	// Update replaces the record with the given TTL only while the
	// stored version equals expectedVersion; ErrVersionConflict on a
	// CAS miss, ErrSessionNotFound when the record is gone.
	Update(ctx context.Context, subject string, s *Session, expectedVersion int64, ttl time.Duration) error

	// Delete removes the record, reporting whether one existed.
	// Deleting an absent record is not an error.
	Delete(ctx context.Context, subject string) (bool, error)
}
