package deps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/agripots/appdesc/internal/cache"
)

// Resolver resolves declaration lists under a fixed policy and memoizes the
// result by content fingerprint.
type Resolver struct {
	cache  cache.Cache
	log    zerolog.Logger
	policy Policy
	ttl    time.Duration
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithTTL bounds how long cached resolutions are reused.
func WithTTL(ttl time.Duration) ResolverOption {
	return func(r *Resolver) {
		r.ttl = ttl
	}
}

// WithLogger sets the resolver logger.
func WithLogger(l zerolog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.log = l
	}
}

// NewResolver creates a Resolver. A nil cache disables memoization.
func NewResolver(c cache.Cache, policy Policy, opts ...ResolverOption) (*Resolver, error) {
	p, err := ParsePolicy(string(policy))
	if err != nil {
		return nil, err
	}

	r := &Resolver{
		cache:  c,
		log:    zerolog.Nop(),
		policy: p,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Policy returns the conflict policy in use.
func (r *Resolver) Policy() Policy {
	return r.policy
}

// Stats reports cache hits and misses of the resolver's cache. It is zero
// when the resolver has no cache or the cache keeps no statistics.
func (r *Resolver) Stats() cache.Stats {
	if sp, ok := r.cache.(cache.StatsProvider); ok {
		return sp.Stats()
	}
	return cache.Stats{}
}

// Resolve returns the resolution for decls, from cache when an identical
// list was resolved before under the same policy.
func (r *Resolver) Resolve(ctx context.Context, decls []Dependency) (*Resolution, error) {
	if r.cache == nil {
		return Resolve(decls, r.policy)
	}

	key, err := r.fingerprint(decls)
	if err != nil {
		return nil, err
	}

	if data, err := r.cache.Get(ctx, key); err == nil {
		var res Resolution
		if err := json.Unmarshal(data, &res); err == nil {
			r.log.Debug().Str("key", key).Msg("resolution cache hit")
			return &res, nil
		}
		r.log.Warn().Str("key", key).Msg("discarding undecodable cached resolution")
	} else if !errors.Is(err, cache.ErrNotFound) {
		return nil, fmt.Errorf("resolution cache: %w", err)
	}

	res, err := Resolve(decls, r.policy)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("encode resolution: %w", err)
	}
	if err := r.cache.SetWithTTL(ctx, key, data, r.ttl); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("failed to cache resolution")
	} else {
		// Make the entry visible to the next reload.
		cache.Wait(r.cache)
	}

	r.log.Debug().
		Str("key", key).
		Int("dependencies", len(res.Dependencies)).
		Int("conflicts", len(res.Conflicts)).
		Msg("dependencies resolved")

	return res, nil
}

func (r *Resolver) fingerprint(decls []Dependency) (string, error) {
	payload, err := json.Marshal(struct {
		Policy Policy       `json:"policy"`
		Decls  []Dependency `json:"decls"`
	}{r.policy, decls})
	if err != nil {
		return "", fmt.Errorf("fingerprint dependencies: %w", err)
	}
	return cache.Key(cache.NamespaceResolution, payload), nil
}
