package sdk

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownJavaVersion is returned for language level tags outside the
// range a Gradle JavaVersion constant can express.
var ErrUnknownJavaVersion = errors.New("sdk: unknown java version")

// Supported Java feature releases.
const (
	MinJavaRelease = 6
	MaxJavaRelease = 21
)

// JavaVersion is a canonical Gradle JavaVersion constant name such as
// VERSION_1_8 or VERSION_11.
type JavaVersion string

// Common language levels.
const (
	Java8  JavaVersion = "VERSION_1_8"
	Java11 JavaVersion = "VERSION_11"
	Java17 JavaVersion = "VERSION_17"
)

// ParseJavaVersion normalizes a language level tag. Accepted spellings:
// "VERSION_11", "JavaVersion.VERSION_11", "11", "1.8", "VERSION_1_8", "8".
func ParseJavaVersion(s string) (JavaVersion, error) {
	raw := strings.TrimSpace(s)
	v := strings.TrimPrefix(raw, "JavaVersion.")
	v = strings.TrimPrefix(v, "VERSION_")
	v = strings.ReplaceAll(v, "_", ".")
	v = strings.TrimPrefix(v, "1.")

	release, err := strconv.Atoi(v)
	if err != nil || release < MinJavaRelease || release > MaxJavaRelease {
		return "", fmt.Errorf("%w: %q", ErrUnknownJavaVersion, raw)
	}

	return javaVersionOf(release), nil
}

func javaVersionOf(release int) JavaVersion {
	if release <= 8 {
		return JavaVersion(fmt.Sprintf("VERSION_1_%d", release))
	}
	return JavaVersion(fmt.Sprintf("VERSION_%d", release))
}

// Release returns the feature release number (8 for VERSION_1_8).
func (v JavaVersion) Release() int {
	s := strings.TrimPrefix(string(v), "VERSION_")
	s = strings.TrimPrefix(s, "1_")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// Number returns the dotted form used by kotlinOptions.jvmTarget ("1.8", "11").
func (v JavaVersion) Number() string {
	r := v.Release()
	if r <= 8 {
		return "1." + strconv.Itoa(r)
	}
	return strconv.Itoa(r)
}

// String returns the constant name.
func (v JavaVersion) String() string {
	return string(v)
}

// CompareJava orders two versions by feature release.
func CompareJava(a, b JavaVersion) int {
	return a.Release() - b.Release()
}
