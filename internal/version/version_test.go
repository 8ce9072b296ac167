package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func withVersion(t *testing.T, v string) {
	t.Helper()
	prev := Version
	Version = v
	t.Cleanup(func() { Version = prev })
}

func TestString(t *testing.T) {
	withVersion(t, "1.2.3")

	assert.Equal(t, "1.2.3 (commit: none, built: unknown)", String())
}

func TestRelease(t *testing.T) {
	tests := []struct {
		version string
		release bool
		short   string
	}{
		{"dev", false, "dev"},
		{"1.4.2", true, "v1.4"},
		{"v2.0.0", true, "v2.0"},
		{"v2.1.0-rc.1", false, "v2.1"},
	}

	for _, tt := range tests {
		withVersion(t, tt.version)
		assert.Equal(t, tt.release, IsRelease(), tt.version)
		assert.Equal(t, tt.short, Short(), tt.version)
	}
}
