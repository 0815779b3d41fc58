package engine

import (
	"github.com/dantswain/nushell/internal/value"
)

// Call is one evaluated invocation of a command: the call-site span,
// argument values already evaluated by the language layer, and the
// caller's redirect settings, which commands pass through unchanged
// when they invoke blocks.
type Call struct {
	// Head spans the command name at the call site. Errors raised by
	// the command itself are tagged with this span, as are its results.
	Head value.Span

	// Positional holds evaluated positional arguments in order.
	Positional []value.Value

	// Named holds evaluated flag values keyed by long flag name.
	// Switches are stored as Bool true.
	Named map[string]value.Value

	// RedirectStdout and RedirectStderr carry the caller's redirect
	// settings. The engine does not interpret them; they exist so a
	// command evaluating a block hands the block the same settings it
	// was invoked with.
	RedirectStdout bool
	RedirectStderr bool
}

// GetFlagValue returns the value bound to a value-carrying flag.
func (c *Call) GetFlagValue(name string) (value.Value, bool) {
	if c.Named == nil {
		return nil, false
	}
	v, ok := c.Named[name]
	return v, ok
}

// HasFlag reports whether a switch was given.
func (c *Call) HasFlag(name string) bool {
	v, ok := c.Named[name]
	if !ok {
		return false
	}
	if b, isBool := v.(value.Bool); isBool {
		return b.Val
	}
	return true
}

// ReqPositional returns the i-th positional argument or a missing-
// positional error tagged with the call head.
func (c *Call) ReqPositional(command, name string, i int) (value.Value, error) {
	if i < 0 || i >= len(c.Positional) {
		return nil, NewMissingPositionalError(command, name, c.Head)
	}
	return c.Positional[i], nil
}
