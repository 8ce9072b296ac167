package deps

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Policy selects which version wins when a library is declared more than once.
type Policy string

const (
	// PolicyLastDeclared keeps the version of the last declaration (default).
	PolicyLastDeclared Policy = "last_declared"

	// PolicyHighest keeps the highest version. Equal versions fall back to
	// the last declaration.
	PolicyHighest Policy = "highest"
)

// ErrUnknownPolicy is returned for unsupported conflict policies.
var ErrUnknownPolicy = errors.New("deps: unknown conflict policy")

// ParsePolicy parses a policy name. Empty selects PolicyLastDeclared.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyLastDeclared:
		return PolicyLastDeclared, nil
	case PolicyHighest:
		return PolicyHighest, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: last_declared, highest)", ErrUnknownPolicy, s)
	}
}

// Resolved is one library after conflict resolution.
type Resolved struct {
	Configuration string `json:"configuration"`
	Group         string `json:"group"`
	Artifact      string `json:"artifact"`
	Version       string `json:"version"`
	Platform      bool   `json:"platform,omitempty"`
}

// Coordinate returns the resolved group:artifact:version.
func (r Resolved) Coordinate() string {
	return Coordinate{Group: r.Group, Artifact: r.Artifact, Version: r.Version}.String()
}

// Conflict records a library declared more than once.
type Conflict struct {
	Key       string   `json:"key"`
	Requested []string `json:"requested"`
	Selected  string   `json:"selected"`
}

// Resolution is the outcome of resolving a declaration list.
type Resolution struct {
	Policy       Policy     `json:"policy"`
	Dependencies []Resolved `json:"dependencies"`
	Conflicts    []Conflict `json:"conflicts,omitempty"`
}

// Find returns the resolved entry for group:artifact.
func (r *Resolution) Find(module string) (Resolved, bool) {
	for _, d := range r.Dependencies {
		if d.Group+":"+d.Artifact == module {
			return d, true
		}
	}
	return Resolved{}, false
}

// Resolve collapses duplicate declarations so each library key appears
// once, at the position of its first declaration, carrying the version
// selected by policy. The configuration travels with the winning
// declaration.
func Resolve(decls []Dependency, policy Policy) (*Resolution, error) {
	policy, err := ParsePolicy(string(policy))
	if err != nil {
		return nil, err
	}

	type slot struct {
		winner    Resolved
		requested []string
	}

	order := make([]string, 0, len(decls))
	slots := make(map[string]*slot, len(decls))

	for i := range decls {
		d := &decls[i]
		c, err := d.Resolve()
		if err != nil {
			return nil, fmt.Errorf("dependencies[%d]: %w", i, err)
		}
		key, err := d.Key()
		if err != nil {
			return nil, fmt.Errorf("dependencies[%d]: %w", i, err)
		}

		candidate := Resolved{
			Configuration: d.EffectiveConfiguration(),
			Group:         c.Group,
			Artifact:      c.Artifact,
			Version:       c.Version,
			Platform:      d.Platform,
		}

		s, seen := slots[key]
		if !seen {
			slots[key] = &slot{winner: candidate, requested: []string{c.Version}}
			order = append(order, key)
			continue
		}

		s.requested = append(s.requested, c.Version)
		if policy == PolicyLastDeclared || CompareVersions(c.Version, s.winner.Version) >= 0 {
			s.winner = candidate
		}
	}

	res := &Resolution{
		Policy:       policy,
		Dependencies: make([]Resolved, 0, len(order)),
	}
	for _, key := range order {
		s := slots[key]
		res.Dependencies = append(res.Dependencies, s.winner)
		if len(s.requested) > 1 {
			res.Conflicts = append(res.Conflicts, Conflict{
				Key:       key,
				Requested: s.requested,
				Selected:  s.winner.Version,
			})
		}
	}

	return res, nil
}

// CompareVersions orders two library versions. Semantic versions compare by
// semver rules. Anything else is split at the first "-" into a release and
// a qualifier: releases compare segment by segment, numerically where both
// segments are numbers, and a qualified version ranks below the bare
// release (1.0-alpha01 < 1.0).
func CompareVersions(a, b string) int {
	va, vb := "v"+a, "v"+b
	if semver.IsValid(va) && semver.IsValid(vb) {
		if c := semver.Compare(va, vb); c != 0 {
			return c
		}
		// semver ignores build metadata; keep the order total.
		return strings.Compare(a, b)
	}

	aRel, aQual, aHas := strings.Cut(a, "-")
	bRel, bQual, bHas := strings.Cut(b, "-")
	if c := compareSegments(aRel, bRel); c != 0 {
		return c
	}
	switch {
	case aHas && bHas:
		return compareSegments(aQual, bQual)
	case aHas:
		return -1
	case bHas:
		return 1
	default:
		return 0
	}
}

func compareSegments(a, b string) int {
	split := func(s string) []string {
		return strings.FieldsFunc(s, func(r rune) bool { return r == '.' || r == '-' || r == '_' })
	}
	as, bs := split(a), split(b)

	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aErr := strconv.Atoi(as[i])
		bn, bErr := strconv.Atoi(bs[i])
		switch {
		case aErr == nil && bErr == nil:
			if an != bn {
				return cmpInt(an, bn)
			}
		case aErr == nil:
			return 1
		case bErr == nil:
			return -1
		default:
			if c := strings.Compare(as[i], bs[i]); c != 0 {
				return c
			}
		}
	}

	return cmpInt(len(as), len(bs))
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
