package config

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/agripots/appdesc/internal/cache"
	"github.com/agripots/appdesc/internal/deps"
)

// Log level constants.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Config represents the complete appdesc tool configuration.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging" toml:"logging"`
	Cache      cache.Config     `yaml:"cache" toml:"cache"`
	Resolution ResolutionConfig `yaml:"resolution" toml:"resolution"`
	Lint       LintConfig       `yaml:"lint" toml:"lint"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  LevelInfo,
			Format: "console",
			Output: "stderr",
		},
		Cache:      cache.DefaultConfig(),
		Resolution: ResolutionConfig{Policy: string(deps.PolicyLastDeclared)},
		Lint:       LintConfig{},
	}
}

// applyDefaults fills sections a partial config file left out.
func (c *Config) applyDefaults() {
	def := Default()
	if c.Logging.Output == "" {
		c.Logging.Output = def.Logging.Output
	}
	if c.Cache.Mode == "" {
		c.Cache = def.Cache
	}
	if c.Cache.Mode == cache.ModeSingle && c.Cache.Ristretto.MaxCost == 0 && c.Cache.Ristretto.NumCounters == 0 {
		c.Cache.Ristretto = def.Cache.Ristretto
	}
}

// ResolutionConfig controls dependency conflict resolution.
type ResolutionConfig struct {
	// Policy is last_declared (default) or highest.
	Policy string `yaml:"policy" toml:"policy"`
}

// GetEffectivePolicy returns the policy with default fallback.
func (r *ResolutionConfig) GetEffectivePolicy() deps.Policy {
	if r.Policy == "" {
		return deps.PolicyLastDeclared
	}
	return deps.Policy(r.Policy)
}

// LintConfig controls advisory descriptor checks.
type LintConfig struct {
	// Strict turns lint findings into validation failures.
	Strict bool `yaml:"strict" toml:"strict"`

	// Disabled lists rule ids that never report.
	Disabled []string `yaml:"disabled" toml:"disabled"`
}

// IsDisabled reports whether a rule id is switched off.
func (l *LintConfig) IsDisabled(rule string) bool {
	return lo.Contains(l.Disabled, rule)
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`   // debug, info, warn, error
	Format string `yaml:"format" toml:"format"` // json, console, text, pretty
	Output string `yaml:"output" toml:"output"` // stdout, stderr, or file path
	Pretty bool   `yaml:"pretty" toml:"pretty"` // force colored console output
}

// ParseLevel converts the level string to a zerolog.Level, defaulting to info.
func (l *LoggingConfig) ParseLevel() zerolog.Level {
	switch strings.ToLower(l.Level) {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
