// Package sdk models Android API levels and Java language levels as they
// appear in application build descriptors.
package sdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// ErrUnknownLevel is returned when an API level string is neither a number
// nor a known platform codename.
var ErrUnknownLevel = errors.New("sdk: unknown api level")

// Level is an Android API level.
type Level int

// Released platform codenames and the API level each one shipped as.
var codenames = map[string]Level{
	"G":       9,
	"I":       14,
	"J":       16,
	"J-MR1":   17,
	"J-MR2":   18,
	"K":       19,
	"L":       21,
	"L-MR1":   22,
	"M":       23,
	"N":       24,
	"N-MR1":   25,
	"O":       26,
	"O-MR1":   27,
	"P":       28,
	"Q":       29,
	"R":       30,
	"S":       31,
	"S-V2":    32,
	"T":       33,
	"U":       34,
	"V":       35,
	"Baklava": 36,
}

var levelNames = lo.Invert(codenames)

// ParseLevel parses an API level. It accepts a plain integer ("34"), the
// "android-34" platform directory form and release codenames ("U").
func ParseLevel(s string) (Level, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "android-")
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", ErrUnknownLevel)
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 {
			return 0, fmt.Errorf("%w: %d must be >= 1", ErrUnknownLevel, n)
		}
		return Level(n), nil
	}

	if lvl, ok := codenames[s]; ok {
		return lvl, nil
	}
	if lvl, ok := codenames[strings.ToUpper(s)]; ok {
		return lvl, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// Int returns the level as an int.
func (l Level) Int() int {
	return int(l)
}

// Codename returns the release codename for the level, or "" when the level
// has no codename of its own (API 10, 15 and similar maintenance releases).
func (l Level) Codename() string {
	return levelNames[l]
}

// String formats the level the way Gradle prints it.
func (l Level) String() string {
	return strconv.Itoa(int(l))
}

// UnmarshalYAML accepts integer levels and codename strings.
func (l *Level) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: expected a scalar at line %d", ErrUnknownLevel, node.Line)
	}
	lvl, err := ParseLevel(node.Value)
	if err != nil {
		return err
	}
	*l = lvl
	return nil
}

// UnmarshalJSON accepts integer levels and codename strings.
func (l *Level) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case float64:
		if v != float64(int(v)) {
			return fmt.Errorf("%w: %v is not an integer", ErrUnknownLevel, v)
		}
		*l = Level(int(v))
		return nil
	case string:
		lvl, err := ParseLevel(v)
		if err != nil {
			return err
		}
		*l = lvl
		return nil
	case nil:
		*l = 0
		return nil
	default:
		return fmt.Errorf("%w: unsupported json value %s", ErrUnknownLevel, string(b))
	}
}
