// Package config loads environment-based configuration structs.
//
// Load first reads an optional .env file (once per process), then parses
// environment variables into the given struct based on `env` field tags.
//
//	type StoreConfig struct {
//	    ActiveTTL time.Duration `env:"SESSION_ACTIVE_TTL" envDefault:"48h"`
//	    EndedTTL  time.Duration `env:"SESSION_ENDED_TTL" envDefault:"30m"`
//	}
//
//	var cfg StoreConfig
//	config.MustLoad(&cfg)
//
// Configuration is expected to be loaded once at process start by
// composition code; the loader keeps no per-type cache.
package config
