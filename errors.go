package complety

import (
	"errors"
	"fmt"
)

// Sentinel errors for complety. Use errors.Is to check.
var (
	ErrValidation        = errors.New("result validation failed")
	ErrRunsExhausted     = errors.New("run budget exhausted")
	ErrUnexpectedOutcome = errors.New("unexpected session outcome")
	ErrReservedToolName  = errors.New("tool name " + ToolName + " is reserved for the completion tool")
)

// ValidationError reports that the model's candidate result failed casting or
// constraint application. It is returned to the model as a tool error (never
// to the caller) so the model can self-correct; the message carries the
// expected JSON Schema for guidance.
type ValidationError struct {
	Reason string
	// Schema is the expected result schema, pretty-printed into Error().
	Schema map[string]any
	Err    error // wrapped sentinel for errors.Is/errors.As
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid result: %s\nexpected schema:\n%s", e.Reason, prettySchema(e.Schema))
}

// Unwrap supports errors.Is(err, ErrValidation) on wrapped chains.
func (e *ValidationError) Unwrap() error { return e.Err }

// IsValidationError returns true if err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ExhaustedError reports that the model never produced a valid completion
// call within the run budget. Session engines return it (or their own shape)
// when the ceiling is hit; complety's own engines always use this type.
type ExhaustedError struct {
	Runs int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("no valid %s call within %d runs", ToolName, e.Runs)
}

func (e *ExhaustedError) Unwrap() error { return ErrRunsExhausted }

// UnexpectedOutcomeError wraps a session outcome shape the normalizer does
// not recognize. Raw keeps the original value for diagnostics.
type UnexpectedOutcomeError struct {
	Raw any
}

func (e *UnexpectedOutcomeError) Error() string {
	return fmt.Sprintf("unexpected session outcome of type %T", e.Raw)
}

func (e *UnexpectedOutcomeError) Unwrap() error { return ErrUnexpectedOutcome }

// SystemError represents an internal failure (panic in a tool, broken engine).
// The model should not see the underlying message or stack.
type SystemError struct {
	Err error
}

func (e *SystemError) Error() string {
	return "internal system error during completion loop"
}

func (e *SystemError) Unwrap() error { return e.Err }

// IsSystemError returns true if err is or wraps a SystemError.
func IsSystemError(err error) bool {
	var se *SystemError
	return errors.As(err, &se)
}

// panicError wraps a recovered panic value for SystemError; used by the
// runner's recover and the WithRecovery middleware.
type panicError struct{ p any }

func (e *panicError) Error() string {
	return "panic: " + fmt.Sprint(e.p)
}
