package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agripots/appdesc/internal/cache"
	"github.com/agripots/appdesc/internal/deps"
)

func TestLoadFromReaderYAML(t *testing.T) {
	t.Parallel()

	yamlContent := `
logging:
  level: debug
  format: json
  output: stdout
cache:
  mode: single
  ttl_seconds: 30
  ristretto:
    num_counters: 1000
    max_cost: 1048576
resolution:
  policy: highest
lint:
  strict: true
  disabled:
    - release-debug-signing
`

	cfg, err := LoadFromReader(strings.NewReader(yamlContent), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, zerolog.DebugLevel, cfg.Logging.ParseLevel())
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "stdout", cfg.Logging.Output)
	assert.Equal(t, cache.ModeSingle, cfg.Cache.Mode)
	assert.Equal(t, int64(1000), cfg.Cache.Ristretto.NumCounters)
	assert.Equal(t, 30, cfg.Cache.TTLSeconds)
	assert.Equal(t, deps.PolicyHighest, cfg.Resolution.GetEffectivePolicy())
	assert.True(t, cfg.Lint.Strict)
	assert.True(t, cfg.Lint.IsDisabled("release-debug-signing"))
	assert.False(t, cfg.Lint.IsDisabled("duplicate-dependency"))
	require.NoError(t, cfg.Validate())
}

func TestLoadFromReaderTOML(t *testing.T) {
	t.Parallel()

	tomlContent := `
[logging]
level = "warn"

[cache]
mode = "disabled"

[resolution]
policy = "last_declared"
`

	cfg, err := LoadFromReader(strings.NewReader(tomlContent), FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, zerolog.WarnLevel, cfg.Logging.ParseLevel())
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Equal(t, cache.ModeDisabled, cfg.Cache.Mode)
	assert.Equal(t, deps.PolicyLastDeclared, cfg.Resolution.GetEffectivePolicy())
	require.NoError(t, cfg.Validate())
}

func TestLoadFromReaderAppliesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFromReader(strings.NewReader("lint:\n  strict: true\n"), FormatYAML)
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Cache, cfg.Cache)
	assert.Equal(t, def.Logging.Output, cfg.Logging.Output)
	assert.Equal(t, deps.PolicyLastDeclared, cfg.Resolution.GetEffectivePolicy())
	require.NoError(t, cfg.Validate())
}

func TestLoadFromReaderInvalid(t *testing.T) {
	t.Parallel()

	_, err := LoadFromReader(strings.NewReader("logging: [unclosed"), FormatYAML)
	assert.Error(t, err)

	_, err = LoadFromReader(strings.NewReader("[logging\nlevel="), FormatTOML)
	assert.Error(t, err)

	_, err = LoadFromReader(strings.NewReader(""), Format("ini"))
	assert.Error(t, err)
}

func TestLoadEnvExpansion(t *testing.T) {
	t.Setenv("APPDESC_TEST_LOG_LEVEL", "error")

	path := filepath.Join(t.TempDir(), "appdesc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: ${APPDESC_TEST_LOG_LEVEL}\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestLoadOrDefault(t *testing.T) {
	t.Parallel()

	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = LoadOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging: [\n"), 0o600))
	_, err = LoadOrDefault(path)
	assert.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, FormatTOML, DetectFormat("appdesc.toml"))
	assert.Equal(t, FormatTOML, DetectFormat("APPDESC.TOML"))
	assert.Equal(t, FormatYAML, DetectFormat("appdesc.yaml"))
	assert.Equal(t, FormatYAML, DetectFormat("appdesc"))
}
