// Package lang implements the pipeline source language: a lexer and
// parser producing span-tagged ASTs, and an evaluator that implements
// the engine's block-evaluator boundary for parsed bodies.
package lang

import (
	"fmt"

	"github.com/dantswain/nushell/internal/value"
)

// ParseError is a syntax or resolution error with a source span.
type ParseError struct {
	Message string
	Span    value.Span
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at [%d, %d): %s", e.Span.Start, e.Span.End, e.Message)
}

func parseErrorf(span value.Span, format string, args ...any) *ParseError {
	return &ParseError{
		Message: fmt.Sprintf(format, args...),
		Span:    span,
	}
}
