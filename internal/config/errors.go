// Package config provides loading, parsing, and validation of the appdesc
// tool configuration (logging, cache, resolution policy, lint rules).
package config

import (
	"fmt"
	"strings"
)

// ValidationError lists every problem found in a tool config.
type ValidationError struct {
	// File is the config file the problems were found in; empty for
	// built-in defaults.
	File   string
	Errors []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	subject := "tool config"
	if e.File != "" {
		subject += " " + e.File
	}
	switch len(e.Errors) {
	case 0:
		return subject + " is invalid"
	case 1:
		return fmt.Sprintf("%s is invalid: %s", subject, e.Errors[0])
	default:
		return fmt.Sprintf("%s is invalid with %d errors:\n  - %s",
			subject, len(e.Errors), strings.Join(e.Errors, "\n  - "))
	}
}

// Invalid records a setting whose value is not one of valid.
func (e *ValidationError) Invalid(field, got string, valid []string) {
	e.Addf("%s is invalid (got %q, valid: %s)", field, got, strings.Join(valid, ", "))
}

// Addf appends a formatted error message.
func (e *ValidationError) Addf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

// Add appends an error message.
func (e *ValidationError) Add(msg string) {
	e.Errors = append(e.Errors, msg)
}

// ToError returns e if it holds any problem, otherwise nil.
func (e *ValidationError) ToError() error {
	if len(e.Errors) > 0 {
		return e
	}
	return nil
}
