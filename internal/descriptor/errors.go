package descriptor

import (
	"errors"
	"fmt"
	"strings"
)

// Descriptor errors.
var (
	ErrUnsupportedFormat = errors.New("descriptor: unsupported format")
	ErrInvalidOverride   = errors.New("descriptor: invalid override")
	ErrFieldNotFound     = errors.New("descriptor: field not found")
)

// ValidationError collects every problem found in a descriptor.
type ValidationError struct {
	Errors []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "descriptor validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("descriptor validation failed: %s", e.Errors[0])
	}
	return fmt.Sprintf("descriptor validation failed with %d errors:\n  - %s",
		len(e.Errors), strings.Join(e.Errors, "\n  - "))
}

// Addf appends a formatted error message.
func (e *ValidationError) Addf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

// Add appends an error message.
func (e *ValidationError) Add(msg string) {
	e.Errors = append(e.Errors, msg)
}

// HasErrors returns true if there are any validation errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// ToError returns e if it has errors, otherwise nil.
func (e *ValidationError) ToError() error {
	if e.HasErrors() {
		return e
	}
	return nil
}
