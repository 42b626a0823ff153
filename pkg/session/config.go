package session

import "time"

// Config holds the TTL policy for stored records.
type Config struct {
	// ActiveTTL is how long an ACTIVE record survives without any
	// mutation before the store expires it.
	ActiveTTL time.Duration `env:"SESSION_ACTIVE_TTL" envDefault:"48h"`

	// EndedTTL is the grace window after End during which the client can
	// still read the final result.
	EndedTTL time.Duration `env:"SESSION_ENDED_TTL" envDefault:"30m"`
}

// DefaultConfig returns the default TTL policy.
func DefaultConfig() Config {
	return Config{
		ActiveTTL: 48 * time.Hour,
		EndedTTL:  30 * time.Minute,
	}
}
