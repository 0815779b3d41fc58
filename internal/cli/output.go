package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dantswain/nushell/internal/value"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Evaluation failure (shell errors, parse errors)
	ExitCommandError = 2 // Command error (invalid paths, database not found, etc.)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// PrintValue writes an evaluation result in the configured format.
// Text mode uses the shell's display rendering; JSON mode emits
// canonical JSON.
func (f *OutputFormatter) PrintValue(v value.Value) error {
	if f.Format == "json" {
		data, err := value.MarshalCanonical(v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(f.Writer, string(data))
		return err
	}

	_, err := fmt.Fprintln(f.Writer, value.Format(v))
	return err
}

// PrintData writes an arbitrary payload in the configured format.
// JSON mode encodes the payload directly; text mode prints it.
func (f *OutputFormatter) PrintData(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(data)
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}
