package cache

import (
	"errors"
	"fmt"
	"time"
)

// Mode represents the cache operating mode.
type Mode string

const (
	// ModeSingle uses the local Ristretto cache (default).
	ModeSingle Mode = "single"

	// ModeDisabled stores nothing.
	ModeDisabled Mode = "disabled"
)

// Config defines cache configuration.
type Config struct {
	Mode      Mode            `yaml:"mode" toml:"mode"`
	Ristretto RistrettoConfig `yaml:"ristretto" toml:"ristretto"`

	// TTLSeconds bounds how long a cached resolution stays valid.
	// Zero keeps entries until evicted.
	TTLSeconds int `yaml:"ttl_seconds" toml:"ttl_seconds"`
}

// RistrettoConfig configures the Ristretto local cache.
type RistrettoConfig struct {
	// NumCounters is the number of 4-bit access counters, ~10x the expected item count.
	NumCounters int64 `yaml:"num_counters" toml:"num_counters"`

	// MaxCost is the maximum total size in bytes of cached values.
	MaxCost int64 `yaml:"max_cost" toml:"max_cost"`

	// BufferItems is the number of keys per Get buffer. 64 when unset.
	BufferItems int64 `yaml:"buffer_items" toml:"buffer_items"`
}

// TTL returns the configured entry lifetime, zero meaning no expiry.
func (c *Config) TTL() time.Duration {
	if c.TTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TTLSeconds) * time.Second
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.TTLSeconds < 0 {
		return errors.New("cache: ttl_seconds must be >= 0")
	}

	switch c.Mode {
	case ModeSingle:
		if c.Ristretto.MaxCost <= 0 {
			return errors.New("cache: ristretto.max_cost must be positive")
		}
		if c.Ristretto.NumCounters <= 0 {
			return errors.New("cache: ristretto.num_counters must be positive")
		}
	case ModeDisabled:
	case "":
		return errors.New("cache: mode is required")
	default:
		return fmt.Errorf("cache: unknown mode %q", c.Mode)
	}
	return nil
}

// DefaultConfig returns a single-mode config sized for descriptor tooling.
func DefaultConfig() Config {
	return Config{
		Mode:       ModeSingle,
		Ristretto:  DefaultRistrettoConfig(),
		TTLSeconds: 0,
	}
}

// DefaultRistrettoConfig returns a small Ristretto config: resolutions are
// a few kilobytes each and a process rarely sees more than a handful.
func DefaultRistrettoConfig() RistrettoConfig {
	return RistrettoConfig{
		NumCounters: 10_000,
		MaxCost:     8 << 20, // 8 MB
		BufferItems: 64,
	}
}
