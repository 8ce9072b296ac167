package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agripots/appdesc/internal/cache"
)

func newSingle(t *testing.T) cache.Cache {
	t.Helper()
	cfg := cache.DefaultConfig()
	c, err := cache.New(context.Background(), &cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRistrettoGetSet(t *testing.T) {
	t.Parallel()

	c := newSingle(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "resolution:abc", []byte(`{"policy":"highest"}`)))
	cache.Wait(c)

	got, err := c.Get(ctx, "resolution:abc")
	require.NoError(t, err)
	assert.Equal(t, `{"policy":"highest"}`, string(got))

	_, err = c.Get(ctx, "resolution:missing")
	assert.ErrorIs(t, err, cache.ErrNotFound)
}

func TestRistrettoReturnsCopies(t *testing.T) {
	t.Parallel()

	c := newSingle(t)
	ctx := context.Background()

	value := []byte("immutable")
	require.NoError(t, c.Set(ctx, "k", value))
	value[0] = 'X'
	cache.Wait(c)

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "immutable", string(got))

	got[0] = 'Y'
	again, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "immutable", string(again))
}

func TestRistrettoTTLExpires(t *testing.T) {
	t.Parallel()

	c := newSingle(t)
	ctx := context.Background()

	require.NoError(t, c.SetWithTTL(ctx, "ttl", []byte("v"), 50*time.Millisecond))
	cache.Wait(c)

	assert.Eventually(t, func() bool {
		_, err := c.Get(ctx, "ttl")
		return err != nil
	}, 3*time.Second, 25*time.Millisecond)
}

func TestRistrettoDeleteAndClose(t *testing.T) {
	t.Parallel()

	c := newSingle(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v")))
	cache.Wait(c)
	require.NoError(t, c.Delete(ctx, "k"))
	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, cache.ErrNotFound)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close(), "close is idempotent")

	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, cache.ErrClosed)
	assert.ErrorIs(t, c.Set(ctx, "k", nil), cache.ErrClosed)
}

func TestRistrettoCanceledContext(t *testing.T) {
	t.Parallel()

	c := newSingle(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRistrettoStats(t *testing.T) {
	t.Parallel()

	c := newSingle(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v")))
	cache.Wait(c)
	_, _ = c.Get(ctx, "k")
	_, _ = c.Get(ctx, "nope")

	sp, ok := c.(cache.StatsProvider)
	require.True(t, ok)
	stats := sp.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
}

func TestNoopCache(t *testing.T) {
	t.Parallel()

	cfg := cache.Config{Mode: cache.ModeDisabled}
	c, err := cache.New(context.Background(), &cfg)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v")))
	cache.Wait(c)
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, cache.ErrNotFound)

	sp, ok := c.(cache.StatsProvider)
	require.True(t, ok)
	assert.Equal(t, cache.Stats{Misses: 1}, sp.Stats())

	require.NoError(t, c.Close())
	assert.ErrorIs(t, c.Delete(ctx, "k"), cache.ErrClosed)
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, cache.ErrClosed)
}

func TestNewCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := cache.DefaultConfig()
	_, err := cache.New(ctx, &cfg)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     cache.Config
		wantErr string
	}{
		{"default", cache.DefaultConfig(), ""},
		{"disabled", cache.Config{Mode: cache.ModeDisabled}, ""},
		{"missing_mode", cache.Config{}, "mode is required"},
		{"unknown_mode", cache.Config{Mode: "ha"}, "unknown mode"},
		{"no_cost", cache.Config{Mode: cache.ModeSingle, Ristretto: cache.RistrettoConfig{NumCounters: 10}}, "max_cost"},
		{"no_counters", cache.Config{Mode: cache.ModeSingle, Ristretto: cache.RistrettoConfig{MaxCost: 10}}, "num_counters"},
		{"negative_ttl", cache.Config{Mode: cache.ModeDisabled, TTLSeconds: -1}, "ttl_seconds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigTTL(t *testing.T) {
	t.Parallel()

	cfg := cache.Config{TTLSeconds: 30}
	assert.Equal(t, 30*time.Second, cfg.TTL())
	assert.Zero(t, (&cache.Config{}).TTL())
}

func TestKeyIsStable(t *testing.T) {
	t.Parallel()

	a := cache.Key("resolution", []byte("payload"))
	b := cache.Key("resolution", []byte("payload"))
	c := cache.Key("resolution", []byte("other"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, "resolution:")
}

func TestNamespace(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cache.NamespaceResolution, cache.Namespace(cache.Key(cache.NamespaceResolution, []byte("x"))))
	assert.Equal(t, "descriptor", cache.Namespace("descriptor:abc"))
	assert.Empty(t, cache.Namespace("plain"))
}
