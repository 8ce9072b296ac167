package config

import (
	"github.com/samber/lo"

	"github.com/agripots/appdesc/internal/deps"
	"github.com/agripots/appdesc/internal/descriptor"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "console", "text", "pretty"}
	policies   = []string{string(deps.PolicyLastDeclared), string(deps.PolicyHighest)}
)

// Validate checks the configuration and returns a *ValidationError listing
// every problem, or nil.
func (c *Config) Validate() error {
	errs := &ValidationError{}

	validateLogging(c, errs)
	validateCache(c, errs)
	validateResolution(c, errs)
	validateLint(c, errs)

	return errs.ToError()
}

func validateLogging(c *Config, errs *ValidationError) {
	// Empty level and format are the defaults.
	if c.Logging.Level != "" && !lo.Contains(logLevels, c.Logging.Level) {
		errs.Invalid("logging.level", c.Logging.Level, logLevels)
	}
	if c.Logging.Format != "" && !lo.Contains(logFormats, c.Logging.Format) {
		errs.Invalid("logging.format", c.Logging.Format, logFormats)
	}
}

func validateCache(c *Config, errs *ValidationError) {
	if err := c.Cache.Validate(); err != nil {
		errs.Add(err.Error())
	}
}

func validateResolution(c *Config, errs *ValidationError) {
	if _, err := deps.ParsePolicy(c.Resolution.Policy); err != nil {
		errs.Invalid("resolution.policy", c.Resolution.Policy, policies)
	}
}

func validateLint(c *Config, errs *ValidationError) {
	for _, rule := range c.Lint.Disabled {
		if !descriptor.IsKnownRule(rule) {
			errs.Addf("lint.disabled contains unknown rule %q", rule)
		}
	}
}
