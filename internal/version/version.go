// Package version provides build version information for appdesc.
package version

import "golang.org/x/mod/semver"

var (
	// Version is the semantic version (injected at build time via ldflags).
	Version = "dev"
	// Commit is the git commit hash (injected at build time via ldflags).
	Commit = "none"
	// BuildDate is the build timestamp (injected at build time via ldflags).
	BuildDate = "unknown"
)

// String returns formatted version information.
func String() string {
	return Version + " (commit: " + Commit + ", built: " + BuildDate + ")"
}

// IsRelease reports whether Version is a semantic version without a
// prerelease suffix.
func IsRelease() bool {
	v := canonical(Version)
	return semver.IsValid(v) && semver.Prerelease(v) == ""
}

// Short returns the major.minor line of a release ("v1.4"), or Version
// unchanged for development builds.
func Short() string {
	v := canonical(Version)
	if !semver.IsValid(v) {
		return Version
	}
	return semver.MajorMinor(v)
}

func canonical(v string) string {
	if v != "" && v[0] != 'v' {
		return "v" + v
	}
	return v
}
