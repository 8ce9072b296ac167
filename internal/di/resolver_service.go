package di

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/agripots/appdesc/internal/deps"
)

// ResolverService wraps the cached dependency resolver.
type ResolverService struct {
	Resolver *deps.Resolver
}

// NewResolver creates a resolver with the configured conflict policy.
func NewResolver(i do.Injector) (*ResolverService, error) {
	cfg := do.MustInvoke[*ConfigService](i).Config
	logSvc := do.MustInvoke[*LoggerService](i)
	cacheSvc := do.MustInvoke[*CacheService](i)

	r, err := deps.NewResolver(
		cacheSvc.Cache,
		cfg.Resolution.GetEffectivePolicy(),
		deps.WithTTL(cfg.Cache.TTL()),
		deps.WithLogger(logSvc.Logger.With().Str("component", "resolver").Logger()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resolver: %w", err)
	}

	return &ResolverService{Resolver: r}, nil
}
