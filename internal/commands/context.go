package commands

import (
	"github.com/dantswain/nushell/internal/engine"
)

// NewEngineState creates an engine state with all built-in commands
// registered. This is the default context the CLI and the conformance
// harness build on.
func NewEngineState() *engine.EngineState {
	state := engine.NewEngineState()

	state.AddCommand(Reduce{})
	state.AddCommand(StrReplace{})
	state.AddCommand(StrLength{})

	return state
}
