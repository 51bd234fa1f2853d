// Package manifest defines the declarative model of assistant
// configuration artifacts, loads and saves the manifest document, and
// resolves per-target enablement and overrides.
package manifest

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for manifest operations.
var (
	// ErrNotFound indicates no manifest document exists at either
	// expected path.
	ErrNotFound = errors.New("manifest: no manifest found")

	// ErrInvalid indicates the manifest parsed but failed schema or
	// invariant validation.
	ErrInvalid = errors.New("manifest: invalid manifest")

	// ErrInvalidYAML indicates the manifest document could not be parsed.
	ErrInvalidYAML = errors.New("manifest: invalid YAML syntax")

	// ErrMixedOverride indicates a target override mixes fields from
	// both override variants.
	ErrMixedOverride = errors.New("manifest: override mixes opencode and copilot fields")

	// ErrDuplicateID indicates an artifact id is repeated within its kind.
	ErrDuplicateID = errors.New("manifest: duplicate artifact id")

	// ErrInvalidID indicates an artifact id is not kebab-case.
	ErrInvalidID = errors.New("manifest: artifact id must be kebab-case")
)

// ValidationError is a single validation failure with field context.
type ValidationError struct {
	Field   string
	Message string
	Value   any
	Wrapped error // underlying sentinel for errors.Is support
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation error: field %q: %s (got: %v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("validation error: field %q: %s", e.Field, e.Message)
}

// Unwrap returns the underlying sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Wrapped
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors struct {
	Errors []ValidationError
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "validation: no errors"
	}
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("validation failed with %d error(s): %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Is supports errors.Is by checking contained errors against the target.
func (e *ValidationErrors) Is(target error) bool {
	if target == ErrInvalid {
		return true
	}
	for _, ve := range e.Errors {
		if ve.Wrapped != nil && errors.Is(ve.Wrapped, target) {
			return true
		}
	}
	return false
}
