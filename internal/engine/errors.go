package engine

import (
	"errors"
	"fmt"

	"github.com/dantswain/nushell/internal/value"
)

// ShellError represents an error surfaced by a command or by the
// evaluation machinery around it.
//
// Shell errors include:
//   - Empty input: a command required pipeline input and got none
//   - Type mismatch: an operand or argument had the wrong kind
//   - Unknown command / unknown flag: name resolution failures
//   - Missing positional: a required argument was not supplied
//
// ShellError carries a label and a source span so the CLI can point at
// the call site that caused the failure.
type ShellError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Label is the short annotation attached to the span.
	Label string

	// Span locates the offending source text.
	Span value.Span

	// Err is the wrapped cause, if any.
	Err error
}

// ErrorCode categorizes shell errors.
type ErrorCode string

const (
	// ErrCodeEmptyInput indicates input was required but absent.
	ErrCodeEmptyInput ErrorCode = "EMPTY_INPUT"

	// ErrCodeTypeMismatch indicates an operand had the wrong type.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"

	// ErrCodeUnknownCommand indicates a command name did not resolve.
	ErrCodeUnknownCommand ErrorCode = "UNKNOWN_COMMAND"

	// ErrCodeUnknownFlag indicates a flag the signature does not declare.
	ErrCodeUnknownFlag ErrorCode = "UNKNOWN_FLAG"

	// ErrCodeMissingPositional indicates a required positional was absent.
	ErrCodeMissingPositional ErrorCode = "MISSING_POSITIONAL"

	// ErrCodeVariableNotFound indicates a variable ID with no binding.
	ErrCodeVariableNotFound ErrorCode = "VARIABLE_NOT_FOUND"
)

// Error implements the error interface.
func (e *ShellError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped cause.
func (e *ShellError) Unwrap() error {
	return e.Err
}

// NewEmptyInputError creates the error for a command that required
// pipeline input and received none. The span is the command's call site.
func NewEmptyInputError(span value.Span) *ShellError {
	return &ShellError{
		Code:    ErrCodeEmptyInput,
		Message: "expected input",
		Label:   "needs input",
		Span:    span,
	}
}

// NewTypeMismatchError creates a type error for an operand.
func NewTypeMismatchError(expected string, got value.Value) *ShellError {
	return &ShellError{
		Code:    ErrCodeTypeMismatch,
		Message: fmt.Sprintf("expected %s, got %s", expected, got.Type()),
		Label:   "wrong type",
		Span:    got.Span(),
	}
}

// NewUnknownCommandError creates the error for an unresolved command name.
func NewUnknownCommandError(name string, span value.Span) *ShellError {
	return &ShellError{
		Code:    ErrCodeUnknownCommand,
		Message: fmt.Sprintf("unknown command %q", name),
		Label:   "not found",
		Span:    span,
	}
}

// NewUnknownFlagError creates the error for an undeclared flag.
func NewUnknownFlagError(command, flag string, span value.Span) *ShellError {
	return &ShellError{
		Code:    ErrCodeUnknownFlag,
		Message: fmt.Sprintf("command %q has no flag %q", command, flag),
		Label:   "unknown flag",
		Span:    span,
	}
}

// NewMissingPositionalError creates the error for an absent required
// positional argument.
func NewMissingPositionalError(command, arg string, span value.Span) *ShellError {
	return &ShellError{
		Code:    ErrCodeMissingPositional,
		Message: fmt.Sprintf("command %q requires %s", command, arg),
		Label:   "missing " + arg,
		Span:    span,
	}
}

// IsEmptyInputError reports whether err is an empty-input error.
// Uses errors.As to handle wrapped errors.
func IsEmptyInputError(err error) bool {
	var se *ShellError
	if errors.As(err, &se) {
		return se.Code == ErrCodeEmptyInput
	}
	return false
}

// IsTypeMismatchError reports whether err is a type mismatch.
// Uses errors.As to handle wrapped errors.
func IsTypeMismatchError(err error) bool {
	var se *ShellError
	if errors.As(err, &se) {
		return se.Code == ErrCodeTypeMismatch
	}
	return false
}
