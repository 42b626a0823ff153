package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/pokerbankroll/sessioncore/pkg/money"
)

// Manager is the session lifecycle engine. It is stateless: every
// operation loads from the Store, applies a state-machine transition
// in memory, and writes the result back conditionally. Validation always
// happens before any write, so a rejected transition leaves no partial
// state.
type Manager struct {
	store  Store
	config Config
	log    *slog.Logger
	now    func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithStore sets the persistence backend.
func WithStore(s Store) Option {
	return func(m *Manager) {
		if s != nil {
			m.store = s
		}
	}
}

// WithConfig sets the TTL policy.
func WithConfig(cfg Config) Option {
	return func(m *Manager) { m.config = cfg }
}

// WithLogger sets the logger for transition diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// New creates a Manager. Without WithStore it falls back to an in-memory
// store, which is only suitable for tests and local development.
func New(opts ...Option) *Manager {
	m := &Manager{
		config: DefaultConfig(),
		log:    slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.store == nil {
		m.store = NewMemoryStore()
	}
	return m
}

// Start creates the subject's session. The write is create-only, so of
// two concurrent Starts exactly one wins and the loser observes
// ErrSessionExists.
func (m *Manager) Start(ctx context.Context, subject string, p StartParams) (*Session, error) {
	if subject == "" {
		return nil, validationErr("subject is required")
	}

	s, err := NewSession(p, m.now())
	if err != nil {
		return nil, err
	}

	if err := m.store.Create(ctx, subject, s, m.config.ActiveTTL); err != nil {
		if errors.Is(err, ErrSessionExists) {
			m.log.WarnContext(ctx, "start rejected, session already exists", slog.String("subject", subject))
		}
		return nil, err
	}

	m.log.InfoContext(ctx, "session started",
		slog.String("subject", subject),
		slog.String("game_type", string(s.GameType)),
		slog.String("buy_in", s.BuyIn.String()),
	)
	return s, nil
}

// End transitions the subject's ACTIVE session to ENDED and rewrites it
// with the short TTL, conditioned on the version read. A CAS miss
// surfaces as ErrVersionConflict; the caller re-reads and retries.
func (m *Manager) End(ctx context.Context, subject string, p EndParams) (*Session, error) {
	s, err := m.store.Get(ctx, subject)
	if err != nil {
		return nil, err
	}

	readVersion := s.Version
	if err := s.End(p, m.now()); err != nil {
		return nil, err
	}

	if err := m.store.Update(ctx, subject, s, readVersion, m.config.EndedTTL); err != nil {
		if errors.Is(err, ErrVersionConflict) {
			m.log.WarnContext(ctx, "end lost the version race", slog.String("subject", subject))
		}
		return nil, err
	}

	m.log.InfoContext(ctx, "session ended",
		slog.String("subject", subject),
		slog.String("final_stack", s.FinalStack.String()),
		slog.Int64("version", s.Version),
	)
	return s, nil
}

// AddRebuy appends a rebuy to the subject's ACTIVE session.
func (m *Manager) AddRebuy(ctx context.Context, subject string, amount money.Money, at time.Time) (*Session, error) {
	return m.mutate(ctx, subject, func(s *Session, now time.Time) error {
		return s.AddRebuy(amount, at, now)
	})
}

// UpdateStack records an observed live-stack value on the subject's
// ACTIVE session.
func (m *Manager) UpdateStack(ctx context.Context, subject string, stackAmount money.Money, at time.Time) (*Session, error) {
	return m.mutate(ctx, subject, func(s *Session, now time.Time) error {
		return s.ApplyStackUpdate(stackAmount, at, now)
	})
}

// AddHandNote appends a note to the subject's ACTIVE session.
func (m *Manager) AddHandNote(ctx context.Context, subject string, text string, at time.Time) (*Session, error) {
	return m.mutate(ctx, subject, func(s *Session, now time.Time) error {
		return s.AddHandNote(text, at, now)
	})
}

// mutate runs a load → transition → conditional-write cycle with the
// active TTL refreshed, keeping the session alive while it is played.
func (m *Manager) mutate(ctx context.Context, subject string, apply func(*Session, time.Time) error) (*Session, error) {
	s, err := m.store.Get(ctx, subject)
	if err != nil {
		return nil, err
	}

	readVersion := s.Version
	if err := apply(s, m.now()); err != nil {
		return nil, err
	}

	if err := m.store.Update(ctx, subject, s, readVersion, m.config.ActiveTTL); err != nil {
		return nil, err
	}
	return s, nil
}

// Discard deletes the subject's session if present. Idempotent: the
// result reports whether a record existed, and repeating it is never an
// error.
func (m *Manager) Discard(ctx context.Context, subject string) (bool, error) {
	existed, err := m.store.Delete(ctx, subject)
	if err != nil {
		return false, err
	}
	if existed {
		m.log.InfoContext(ctx, "session discarded", slog.String("subject", subject))
	}
	return existed, nil
}

// Current returns the subject's session, or nil when none exists. The
// absence of a record is not an error, so anonymous or expired callers
// degrade to "no session" rather than a failure.
func (m *Manager) Current(ctx context.Context, subject string) (*Session, error) {
	if subject == "" {
		return nil, nil
	}
	s, err := m.store.Get(ctx, subject)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// HasCurrent reports whether the subject holds a session record.
func (m *Manager) HasCurrent(ctx context.Context, subject string) (bool, error) {
	s, err := m.Current(ctx, subject)
	if err != nil {
		return false, err
	}
	return s != nil, nil
}
