package cache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// noopCache backs cache.mode=disabled: every resolution is recomputed.
// Lookups are counted as misses so that stats still show how often a
// resolution was requested.
type noopCache struct {
	log    zerolog.Logger
	misses atomic.Uint64
	closed atomic.Bool
}

func newNoopCache() *noopCache {
	log := logger().With().Str("backend", "noop").Logger()
	log.Debug().Msg("resolution caching disabled")
	return &noopCache{log: log}
}

func (c *noopCache) Get(_ context.Context, key string) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	c.misses.Add(1)
	c.log.Debug().Str("namespace", Namespace(key)).Str("key", key).Msg("cache miss")
	return nil, ErrNotFound
}

func (c *noopCache) Set(ctx context.Context, key string, value []byte) error {
	return c.SetWithTTL(ctx, key, value, 0)
}

func (c *noopCache) SetWithTTL(_ context.Context, _ string, _ []byte, _ time.Duration) error {
	if c.closed.Load() {
		return ErrClosed
	}
	return nil
}

func (c *noopCache) Delete(_ context.Context, _ string) error {
	if c.closed.Load() {
		return ErrClosed
	}
	return nil
}

func (c *noopCache) Close() error {
	c.closed.Store(true)
	return nil
}

func (c *noopCache) Stats() Stats {
	return Stats{Misses: c.misses.Load()}
}

var (
	_ Cache         = (*noopCache)(nil)
	_ StatsProvider = (*noopCache)(nil)
)
