package descriptor

import (
	"bytes"
	"os"
	"regexp"
)

// envPattern matches an escaped "$${" or a "${NAME}" reference. Bare $NAME
// is left alone so that values such as passwords keep their dollar signs.
var envPattern = regexp.MustCompile(`\$\$\{|\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ExpandEnv replaces ${NAME} with the value of the environment variable
// NAME (empty when unset) and "$${" with a literal "${".
func ExpandEnv(content []byte) []byte {
	return envPattern.ReplaceAllFunc(content, func(m []byte) []byte {
		if bytes.Equal(m, []byte("$${")) {
			return []byte("${")
		}
		return []byte(os.Getenv(string(m[2 : len(m)-1])))
	})
}

// escapeEnv is the inverse of ExpandEnv for literal text: every "${" is
// written as "$${" so that a later load reads it back unchanged.
func escapeEnv(content []byte) []byte {
	return bytes.ReplaceAll(content, []byte("${"), []byte("$${"))
}
