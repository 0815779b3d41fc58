package engine

import (
	"context"

	"github.com/dantswain/nushell/internal/pipeline"
	"github.com/dantswain/nushell/internal/value"
)

// Command is the interface every built-in implements.
//
// Run receives the session state, the caller's stack, the evaluated
// call, and the pipeline input. It returns the command's pipeline
// output or an error; errors are never swallowed by the evaluator.
type Command interface {
	// Name is the full command name, including the space for
	// subcommands ("str replace").
	Name() string

	// Signature declares flags and positionals.
	Signature() *Signature

	// Usage is the one-line description shown in help output.
	Usage() string

	// SearchTerms lists alternative names users might search for.
	SearchTerms() []string

	// Examples documents representative invocations with their results.
	Examples() []Example

	// Run executes the command.
	Run(ctx context.Context, state *EngineState, stack *Stack, call *Call, input pipeline.Data) (pipeline.Data, error)
}

// Example documents one command invocation for help output and for the
// example conformance tests.
type Example struct {
	Example     string
	Description string
	// Result is the expected output value, or nil when the example's
	// output is environment-dependent and not asserted.
	Result value.Value
}
