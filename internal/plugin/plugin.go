// Package plugin describes build plugin activation and the ordering rules
// between plugins.
package plugin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Well-known plugin ids.
const (
	AndroidApplication     = "com.android.application"
	AndroidLibrary         = "com.android.library"
	KotlinAndroid          = "kotlin-android"
	KotlinAndroidQualified = "org.jetbrains.kotlin.android"
	Flutter                = "dev.flutter.flutter-gradle-plugin"
)

// ErrDuplicatePlugin is returned when the same plugin id is declared twice.
var ErrDuplicatePlugin = errors.New("plugin: duplicate plugin id")

// Plugin is one entry of the ordered activation list.
type Plugin struct {
	ID      string `yaml:"id" toml:"id" json:"id"`
	Version string `yaml:"version,omitempty" toml:"version,omitempty" json:"version,omitempty"`

	// After lists plugin ids that must be applied before this one when they
	// are present in the same list.
	After []string `yaml:"after,omitempty" toml:"after,omitempty" json:"after,omitempty"`
}

// requirement is satisfied when any one of its ids is applied earlier.
type requirement []string

func (r requirement) String() string {
	if len(r) == 1 {
		return r[0]
	}
	return "one of [" + strings.Join(r, ", ") + "]"
}

// Plugins that only work when applied after specific others.
var builtinRules = map[string][]requirement{
	Flutter: {
		{AndroidApplication, AndroidLibrary},
		{KotlinAndroid, KotlinAndroidQualified},
	},
}

// IDs returns the plugin ids in declaration order.
func IDs(plugins []Plugin) []string {
	return lo.Map(plugins, func(p Plugin, _ int) string { return p.ID })
}

// Index returns the position of the first plugin matching any of ids, or -1.
func Index(plugins []Plugin, ids ...string) int {
	_, idx, ok := lo.FindIndexOf(plugins, func(p Plugin) bool {
		return lo.Contains(ids, p.ID)
	})
	if !ok {
		return -1
	}
	return idx
}

// IsAndroid reports whether id is one of the Android Gradle plugins.
func IsAndroid(id string) bool {
	return id == AndroidApplication || id == AndroidLibrary
}

// IsKotlinAndroid reports whether id applies the Kotlin Android plugin.
func IsKotlinAndroid(id string) bool {
	return id == KotlinAndroid || id == KotlinAndroidQualified
}

// CheckOrder verifies that every plugin appears after the plugins it depends
// on. Missing prerequisites of built-in rules are reported too; custom
// After entries only constrain plugins that are actually declared.
func CheckOrder(plugins []Plugin) error {
	errs := &OrderError{}

	for i, p := range plugins {
		for _, req := range builtinRules[p.ID] {
			idx := Index(plugins, req...)
			switch {
			case idx < 0:
				errs.Addf("plugin %q requires %s to be applied", p.ID, req)
			case idx > i:
				errs.Addf("plugin %q must be applied after %q", p.ID, plugins[idx].ID)
			}
		}

		for _, dep := range p.After {
			if idx := Index(plugins, dep); idx > i {
				errs.Addf("plugin %q must be applied after %q", p.ID, dep)
			}
		}
	}

	return errs.ToError()
}

// predecessors returns the indexes of the plugins that must precede plugins[i].
func predecessors(plugins []Plugin, i int) []int {
	var out []int
	p := plugins[i]

	for _, req := range builtinRules[p.ID] {
		for _, id := range req {
			if idx := Index(plugins, id); idx >= 0 && idx != i {
				out = append(out, idx)
			}
		}
	}
	for _, id := range p.After {
		if idx := Index(plugins, id); idx >= 0 && idx != i {
			out = append(out, idx)
		}
	}

	return lo.Uniq(out)
}

// Sort returns the plugins in an order satisfying every ordering
// constraint. Among plugins that are free to go next, the earliest declared
// wins, so an already valid list comes back unchanged.
func Sort(plugins []Plugin) ([]Plugin, error) {
	if dups := lo.FindDuplicates(IDs(plugins)); len(dups) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicatePlugin, strings.Join(dups, ", "))
	}

	n := len(plugins)
	inDegree := make([]int, n)
	dependents := make([][]int, n)
	for i := range plugins {
		for _, pred := range predecessors(plugins, i) {
			inDegree[i]++
			dependents[pred] = append(dependents[pred], i)
		}
	}

	placed := make([]bool, n)
	out := make([]Plugin, 0, n)
	for len(out) < n {
		next := -1
		for i := 0; i < n; i++ {
			if !placed[i] && inDegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			remaining := lo.Filter(IDs(plugins), func(_ string, i int) bool { return !placed[i] })
			return nil, &CycleError{IDs: remaining}
		}

		placed[next] = true
		out = append(out, plugins[next])
		for _, d := range dependents[next] {
			inDegree[d]--
		}
	}

	return out, nil
}
