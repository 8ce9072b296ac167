package cache

import (
	"context"
	"fmt"
)

// New creates the resolution cache for cfg.Mode. Both backends are local,
// so ctx is only checked for cancellation.
func New(ctx context.Context, cfg *Config) (Cache, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		c   Cache
		err error
	)
	switch cfg.Mode {
	case ModeSingle:
		c, err = newRistrettoCache(cfg.Ristretto)
	case ModeDisabled:
		c = newNoopCache()
	default:
		return nil, fmt.Errorf("cache: unknown mode %q", cfg.Mode)
	}
	if err != nil {
		return nil, fmt.Errorf("cache: %s backend: %w", cfg.Mode, err)
	}

	l := logger()
	l.Debug().
		Str("mode", string(cfg.Mode)).
		Dur("ttl", cfg.TTL()).
		Msg("resolution cache ready")
	return c, nil
}
