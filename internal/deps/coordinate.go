// Package deps parses external library coordinates and resolves duplicate
// declarations into one version per library.
package deps

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Dependency errors.
var (
	ErrVersionMissing  = errors.New("deps: version is required")
	ErrVersionConflict = errors.New("deps: inline version conflicts with version field")
)

// Configurations a dependency can be declared in.
var knownConfigurations = []string{
	"implementation",
	"api",
	"compileOnly",
	"runtimeOnly",
	"testImplementation",
	"androidTestImplementation",
	"debugImplementation",
	"releaseImplementation",
	"kapt",
	"coreLibraryDesugaring",
}

// DefaultConfiguration is used when a declaration leaves configuration empty.
const DefaultConfiguration = "implementation"

// IsKnownConfiguration reports whether name is a supported dependency configuration.
func IsKnownConfiguration(name string) bool {
	return lo.Contains(knownConfigurations, name)
}

// KnownConfigurations returns the supported configuration names.
func KnownConfigurations() []string {
	return append([]string(nil), knownConfigurations...)
}

// Dependency is one declared library in the descriptor.
type Dependency struct {
	Configuration string `yaml:"configuration,omitempty" toml:"configuration,omitempty" json:"configuration,omitempty"`
	Coordinate    string `yaml:"coordinate" toml:"coordinate" json:"coordinate"`
	Version       string `yaml:"version,omitempty" toml:"version,omitempty" json:"version,omitempty"`

	// Platform imports the coordinate as a BOM (platform(...)) that only
	// constrains versions.
	Platform bool `yaml:"platform,omitempty" toml:"platform,omitempty" json:"platform,omitempty"`
}

// EffectiveConfiguration returns the configuration with default fallback.
func (d *Dependency) EffectiveConfiguration() string {
	if d.Configuration == "" {
		return DefaultConfiguration
	}
	return d.Configuration
}

// Resolve merges the coordinate's inline version with the Version field.
func (d *Dependency) Resolve() (Coordinate, error) {
	c, err := ParseCoordinate(d.Coordinate)
	if err != nil {
		return Coordinate{}, err
	}

	switch {
	case c.Version == "" && d.Version == "":
		return Coordinate{}, fmt.Errorf("%w: %s", ErrVersionMissing, d.Coordinate)
	case c.Version != "" && d.Version != "" && c.Version != d.Version:
		return Coordinate{}, fmt.Errorf("%w: %s vs %s", ErrVersionConflict, d.Coordinate, d.Version)
	case c.Version == "":
		c.Version = d.Version
	}

	return c, nil
}

// Key identifies the library for conflict detection. BOM imports and
// regular artifacts with the same coordinate are distinct.
func (d *Dependency) Key() (string, error) {
	c, err := ParseCoordinate(d.Coordinate)
	if err != nil {
		return "", err
	}
	if d.Platform {
		return "platform:" + c.Module(), nil
	}
	return c.Module(), nil
}

// Coordinate is a parsed group:artifact[:version] triple.
type Coordinate struct {
	Group    string
	Artifact string
	Version  string
}

// CoordinateError reports a malformed coordinate string.
type CoordinateError struct {
	Input  string
	Reason string
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("deps: invalid coordinate %q: %s", e.Input, e.Reason)
}

// ParseCoordinate parses "group:artifact" or "group:artifact:version".
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Coordinate{}, &CoordinateError{Input: s, Reason: "expected group:artifact[:version]"}
	}

	for i, part := range parts {
		if part == "" {
			return Coordinate{}, &CoordinateError{Input: s, Reason: fmt.Sprintf("segment %d is empty", i+1)}
		}
		if strings.ContainsAny(part, " \t\n/\\") {
			return Coordinate{}, &CoordinateError{Input: s, Reason: fmt.Sprintf("segment %d contains invalid characters", i+1)}
		}
	}

	c := Coordinate{Group: parts[0], Artifact: parts[1]}
	if len(parts) == 3 {
		c.Version = parts[2]
	}
	return c, nil
}

// Module returns group:artifact.
func (c Coordinate) Module() string {
	return c.Group + ":" + c.Artifact
}

// String returns group:artifact:version, or group:artifact when unversioned.
func (c Coordinate) String() string {
	if c.Version == "" {
		return c.Module()
	}
	return c.Module() + ":" + c.Version
}
