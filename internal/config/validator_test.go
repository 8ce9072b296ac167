package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agripots/appdesc/internal/cache"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	require.NoError(t, Default().Validate())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mutate  func(c *Config)
		name    string
		wantErr string
	}{
		{
			name:    "bad level",
			mutate:  func(c *Config) { c.Logging.Level = "trace" },
			wantErr: `logging.level is invalid (got "trace"`,
		},
		{
			name:    "bad format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: `logging.format is invalid (got "xml"`,
		},
		{
			name:    "bad cache mode",
			mutate:  func(c *Config) { c.Cache.Mode = "distributed" },
			wantErr: `cache: unknown mode "distributed"`,
		},
		{
			name:    "zero max cost",
			mutate:  func(c *Config) { c.Cache.Ristretto.MaxCost = 0 },
			wantErr: "ristretto.max_cost must be positive",
		},
		{
			name:    "negative ttl",
			mutate:  func(c *Config) { c.Cache.TTLSeconds = -1 },
			wantErr: "ttl_seconds must be >= 0",
		},
		{
			name:    "bad policy",
			mutate:  func(c *Config) { c.Resolution.Policy = "newest" },
			wantErr: `resolution.policy is invalid (got "newest"`,
		},
		{
			name:    "unknown lint rule",
			mutate:  func(c *Config) { c.Lint.Disabled = []string{"unused-import"} },
			wantErr: `lint.disabled contains unknown rule "unused-import"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateDisabledCacheSkipsSizing(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Cache = cache.Config{Mode: cache.ModeDisabled}
	assert.NoError(t, cfg.Validate())
}

func TestValidateCollectsEveryError(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Logging.Level = "loud"
	cfg.Resolution.Policy = "random"

	var verr *ValidationError
	require.ErrorAs(t, cfg.Validate(), &verr)
	assert.Len(t, verr.Errors, 2)
	assert.Contains(t, verr.Error(), "with 2 errors")
	assert.Contains(t, verr.Error(), `logging.level is invalid (got "loud", valid: debug, info, warn, error)`)
}

func TestValidationErrorNamesFile(t *testing.T) {
	t.Parallel()

	verr := &ValidationError{File: ".appdesc.yaml"}
	assert.NoError(t, verr.ToError())

	verr.Invalid("resolution.policy", "random", []string{"last_declared", "highest"})
	assert.EqualError(t, verr.ToError(),
		`tool config .appdesc.yaml is invalid: resolution.policy is invalid (got "random", valid: last_declared, highest)`)

	verr.File = ""
	assert.Contains(t, verr.Error(), "tool config is invalid: ")
}
