package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates a blueprint, answers file or config failed validation.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a generator, template or file was not found.
	ErrNotFound = errors.New("not found")

	// ErrStarterNotFound indicates no starter file exists for a requested name.
	ErrStarterNotFound = errors.New("starter not found")

	// ErrCommandNotFound indicates an installer command is not on PATH.
	ErrCommandNotFound = errors.New("command not found")

	// ErrAborted indicates the user cancelled the run.
	ErrAborted = errors.New("aborted")
)
