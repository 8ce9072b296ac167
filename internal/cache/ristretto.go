package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/rs/zerolog"
)

// ristrettoCache implements Cache on top of Ristretto.
type ristrettoCache struct {
	cache  *ristretto.Cache[string, []byte]
	log    zerolog.Logger
	closed atomic.Bool
	mu     sync.RWMutex
}

var (
	_ Cache         = (*ristrettoCache)(nil)
	_ StatsProvider = (*ristrettoCache)(nil)
)

func newRistrettoCache(cfg RistrettoConfig) (*ristrettoCache, error) {
	log := logger().With().Str("backend", "ristretto").Logger()

	bufferItems := cfg.BufferItems
	if bufferItems <= 0 {
		bufferItems = 64
	}

	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: bufferItems,
		Metrics:     true,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create ristretto cache")
		return nil, err
	}

	log.Debug().
		Int64("num_counters", cfg.NumCounters).
		Int64("max_cost", cfg.MaxCost).
		Int64("buffer_items", bufferItems).
		Msg("ristretto cache created")

	return &ristrettoCache{cache: c, log: log}, nil
}

// guard runs fn under the read lock unless the context is done or the
// cache is closed.
func (r *ristrettoCache) guard(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed.Load() {
		return ErrClosed
	}
	fn()
	return nil
}

func (r *ristrettoCache) Get(ctx context.Context, key string) ([]byte, error) {
	var (
		value []byte
		found bool
	)
	if err := r.guard(ctx, func() { value, found = r.cache.Get(key) }); err != nil {
		return nil, err
	}

	r.log.Debug().Str("namespace", Namespace(key)).Str("key", key).Bool("hit", found).Msg("cache get")
	if !found {
		return nil, ErrNotFound
	}

	// Callers must not be able to mutate cached bytes.
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (r *ristrettoCache) Set(ctx context.Context, key string, value []byte) error {
	return r.SetWithTTL(ctx, key, value, 0)
}

func (r *ristrettoCache) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	return r.guard(ctx, func() {
		// Cost is the byte length of the value.
		r.cache.SetWithTTL(key, valueCopy, int64(len(valueCopy)), ttl)
		r.log.Debug().
			Str("namespace", Namespace(key)).
			Str("key", key).
			Int("size", len(valueCopy)).
			Dur("ttl", ttl).
			Msg("cache set")
	})
}

func (r *ristrettoCache) Delete(ctx context.Context, key string) error {
	return r.guard(ctx, func() { r.cache.Del(key) })
}

// wait blocks until buffered writes are applied.
func (r *ristrettoCache) wait() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.closed.Load() {
		r.cache.Wait()
	}
}

func (r *ristrettoCache) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed.Load() {
		return nil
	}
	r.closed.Store(true)

	r.cache.Wait()
	r.cache.Close()
	r.log.Debug().Msg("ristretto cache closed")
	return nil
}

func (r *ristrettoCache) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed.Load() {
		return Stats{}
	}

	m := r.cache.Metrics
	return Stats{
		Hits:      m.Hits(),
		Misses:    m.Misses(),
		KeyCount:  m.KeysAdded() - m.KeysEvicted(),
		BytesUsed: m.CostAdded() - m.CostEvicted(),
		Evictions: m.KeysEvicted(),
	}
}

// Wait blocks until pending writes on c are visible to Get. It is a no-op
// for backends that write synchronously.
func Wait(c Cache) {
	if rc, ok := c.(*ristrettoCache); ok {
		rc.wait()
	}
}
