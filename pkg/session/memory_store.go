package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// memoryRecord stores the serialized session plus its expiry deadline.
// The payload is kept as JSON so callers can never alias the stored
// aggregate, matching the Redis round trip.
type memoryRecord struct {
	payload   []byte
	version   int64
	expiresAt time.Time
}

func (r memoryRecord) expired(now time.Time) bool {
	return !r.expiresAt.IsZero() && now.After(r.expiresAt)
}

// MemoryStore is an in-process Store with the same conditional-write
// semantics as the Redis implementation. Intended for tests and local
// development.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]memoryRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]memoryRecord)}
}

func (m *MemoryStore) Get(ctx context.Context, subject string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[Key(subject)]
	if !ok || rec.expired(time.Now()) {
		delete(m.records, Key(subject))
		return nil, ErrSessionNotFound
	}

	var s Session
	if err := json.Unmarshal(rec.payload, &s); err != nil {
		return nil, ErrCorruptRecord
	}
	return &s, nil
}

func (m *MemoryStore) Create(ctx context.Context, subject string, s *Session, ttl time.Duration) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if rec, ok := m.records[Key(subject)]; ok && !rec.expired(now) {
		return ErrSessionExists
	}
	m.records[Key(subject)] = memoryRecord{
		payload:   payload,
		version:   s.Version,
		expiresAt: now.Add(ttl),
	}
	return nil
}

func (m *MemoryStore) Update(ctx context.Context, subject string, s *Session, expectedVersion int64, ttl time.Duration) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	rec, ok := m.records[Key(subject)]
	if !ok || rec.expired(now) {
		delete(m.records, Key(subject))
		return ErrSessionNotFound
	}
	if rec.version != expectedVersion {
		return ErrVersionConflict
	}
	m.records[Key(subject)] = memoryRecord{
		payload:   payload,
		version:   s.Version,
		expiresAt: now.Add(ttl),
	}
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, subject string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[Key(subject)]
	delete(m.records, Key(subject))
	return ok && !rec.expired(time.Now()), nil
}
