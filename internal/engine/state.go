// Package engine holds the evaluation substrate commands run on: the
// engine state (command and block registries, interrupt signal), the
// stack (variable and environment bindings), call records, and the
// block-evaluator boundary.
package engine

import (
	"fmt"
	"sync/atomic"

	"github.com/dantswain/nushell/internal/value"
)

// EngineState is the shared, read-mostly state of a shell session.
//
// It owns the command registry, the block registry (blocks are referenced
// from values by ID, never by pointer), variable ID allocation for the
// parser, and the interrupt flag.
//
// Thread-safety model:
//   - Registration (AddCommand, AddBlock, AllocVarID) happens during
//     parsing, before evaluation starts, on a single goroutine.
//   - Lookup methods are safe for concurrent reads after that.
//   - Interrupt is the only cross-boundary shared state: an external
//     signal source (the CLI's SIGINT handler) writes it, operators only
//     read it.
type EngineState struct {
	commands map[string]Command
	blocks   []*Block
	nextVar  value.VarID

	// Interrupt is the cooperative cancellation flag. Operators poll it
	// at well-defined points (once per completed iteration) and stop
	// early when it is set. Nil means cancellation is not wired.
	Interrupt *atomic.Bool
}

// NewEngineState creates an empty engine state with no commands
// registered and no interrupt flag wired.
func NewEngineState() *EngineState {
	return &EngineState{
		commands: make(map[string]Command),
	}
}

// AddCommand registers a command under its declared name.
// Later registrations replace earlier ones.
func (s *EngineState) AddCommand(cmd Command) {
	s.commands[cmd.Name()] = cmd
}

// GetCommand resolves a command by name.
func (s *EngineState) GetCommand(name string) (Command, bool) {
	cmd, ok := s.commands[name]
	return cmd, ok
}

// HasCommand reports whether a command with the given name exists.
// The parser uses this to resolve multi-word names like "str replace".
func (s *EngineState) HasCommand(name string) bool {
	_, ok := s.commands[name]
	return ok
}

// AddBlock registers a parsed block and returns its ID.
// Block values reference blocks by this ID.
func (s *EngineState) AddBlock(b *Block) value.BlockID {
	s.blocks = append(s.blocks, b)
	return value.BlockID(len(s.blocks) - 1)
}

// GetBlock resolves a block ID to its registered block.
// Returns an error for IDs that were never issued - that indicates a
// value fabricated outside the parser.
func (s *EngineState) GetBlock(id value.BlockID) (*Block, error) {
	if id < 0 || int(id) >= len(s.blocks) {
		return nil, fmt.Errorf("unknown block ID %d", id)
	}
	return s.blocks[id], nil
}

// AllocVarID issues a fresh variable ID. IDs start at 1; zero is the
// "no variable" sentinel used by signature positionals that declare no
// binding.
func (s *EngineState) AllocVarID() value.VarID {
	s.nextVar++
	return s.nextVar
}

// Interrupted reports whether the interrupt flag is wired and set.
func (s *EngineState) Interrupted() bool {
	return s.Interrupt != nil && s.Interrupt.Load()
}
