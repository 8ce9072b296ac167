package plugin

import (
	"fmt"
	"strings"
)

// OrderError collects every ordering violation found in a plugin list.
type OrderError struct {
	Violations []string
}

// Error implements the error interface.
func (e *OrderError) Error() string {
	if len(e.Violations) == 1 {
		return "plugin order invalid: " + e.Violations[0]
	}
	return fmt.Sprintf("plugin order invalid with %d errors:\n  - %s",
		len(e.Violations), strings.Join(e.Violations, "\n  - "))
}

// Addf appends a formatted violation.
func (e *OrderError) Addf(format string, args ...any) {
	e.Violations = append(e.Violations, fmt.Sprintf(format, args...))
}

// ToError returns e when it holds violations, otherwise nil.
func (e *OrderError) ToError() error {
	if len(e.Violations) > 0 {
		return e
	}
	return nil
}

// CycleError is returned by Sort when ordering constraints form a cycle.
type CycleError struct {
	IDs []string
}

func (e *CycleError) Error() string {
	return "plugin: ordering cycle between " + strings.Join(e.IDs, ", ")
}
