package deps

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property-based tests for conflict resolution.

// declarations decodes each seed into one of four artifacts, a version
// 1.0.0 .. 1.9.0 and the platform flag.
func declarations(seeds []int) []Dependency {
	decls := make([]Dependency, 0, len(seeds))
	for _, s := range seeds {
		decls = append(decls, Dependency{
			Coordinate: fmt.Sprintf("com.example:lib%d:1.%d.0", s%4, (s/4)%10),
			Platform:   s >= 40,
		})
	}
	return decls
}

func keysOf(t *testing.T, decls []Dependency) []string {
	t.Helper()
	var keys []string
	seen := map[string]bool{}
	for i := range decls {
		k, err := decls[i].Key()
		if err != nil {
			t.Fatal(err)
		}
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}

func resolvedKey(r Resolved) string {
	if r.Platform {
		return "platform:" + r.Group + ":" + r.Artifact
	}
	return r.Group + ":" + r.Artifact
}

func TestResolve_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	seeds := gen.SliceOf(gen.IntRange(0, 79))

	properties.Property("each key appears once in first-declaration order", prop.ForAll(
		func(seeds []int) bool {
			decls := declarations(seeds)
			for _, policy := range []Policy{PolicyLastDeclared, PolicyHighest} {
				res, err := Resolve(decls, policy)
				if err != nil {
					return false
				}
				keys := keysOf(t, decls)
				if len(res.Dependencies) != len(keys) {
					return false
				}
				for i, r := range res.Dependencies {
					if resolvedKey(r) != keys[i] {
						return false
					}
				}
			}
			return true
		},
		seeds,
	))

	properties.Property("last_declared selects the final requested version", prop.ForAll(
		func(seeds []int) bool {
			res, err := Resolve(declarations(seeds), PolicyLastDeclared)
			if err != nil {
				return false
			}
			for _, c := range res.Conflicts {
				if c.Selected != c.Requested[len(c.Requested)-1] {
					return false
				}
			}
			return true
		},
		seeds,
	))

	properties.Property("highest selects a version no lower than any requested", prop.ForAll(
		func(seeds []int) bool {
			res, err := Resolve(declarations(seeds), PolicyHighest)
			if err != nil {
				return false
			}
			for _, c := range res.Conflicts {
				for _, v := range c.Requested {
					if CompareVersions(c.Selected, v) < 0 {
						return false
					}
				}
			}
			return true
		},
		seeds,
	))

	properties.TestingRun(t)
}
