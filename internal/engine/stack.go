package engine

import (
	"github.com/dantswain/nushell/internal/value"
)

// Stack holds the mutable evaluation state of one control flow: variable
// bindings by ID, environment variables by name, and the set of hidden
// environment names.
//
// Stacks are exclusively owned by a single control flow; no locking.
type Stack struct {
	vars map[value.VarID]value.Value

	// EnvVars are the ambient environment bindings visible to commands.
	EnvVars map[string]value.Value

	// EnvHidden marks environment names hidden from lookup without
	// removing the underlying binding.
	EnvHidden map[string]bool
}

// NewStack creates an empty stack.
func NewStack() *Stack {
	return &Stack{
		vars:      make(map[value.VarID]value.Value),
		EnvVars:   make(map[string]value.Value),
		EnvHidden: make(map[string]bool),
	}
}

// AddVar binds a variable ID to a value, replacing any prior binding.
func (s *Stack) AddVar(id value.VarID, v value.Value) {
	s.vars[id] = v
}

// GetVar resolves a variable ID.
func (s *Stack) GetVar(id value.VarID) (value.Value, bool) {
	v, ok := s.vars[id]
	return v, ok
}

// AddEnvVar sets an environment variable and unhides it.
func (s *Stack) AddEnvVar(name string, v value.Value) {
	s.EnvVars[name] = v
	delete(s.EnvHidden, name)
}

// GetEnvVar resolves an environment variable, respecting hidden markers.
func (s *Stack) GetEnvVar(name string) (value.Value, bool) {
	if s.EnvHidden[name] {
		return nil, false
	}
	v, ok := s.EnvVars[name]
	return v, ok
}

// HideEnvVar marks an environment name hidden without deleting it.
func (s *Stack) HideEnvVar(name string) {
	s.EnvHidden[name] = true
}

// CapturesToStack builds a fresh stack whose variables are exactly the
// given captures and whose environment is copied from the receiver.
// This is how a block's closure scope is materialized before invocation.
func (s *Stack) CapturesToStack(captures map[value.VarID]value.Value) *Stack {
	vars := make(map[value.VarID]value.Value, len(captures))
	for id, v := range captures {
		vars[id] = v
	}
	env, hidden := s.SnapshotEnv()
	return &Stack{
		vars:      vars,
		EnvVars:   env,
		EnvHidden: hidden,
	}
}

// SnapshotEnv returns copies of the environment bindings and hidden
// markers. The copies are independent of the stack: later mutations of
// either side do not leak into the other.
func (s *Stack) SnapshotEnv() (map[string]value.Value, map[string]bool) {
	env := make(map[string]value.Value, len(s.EnvVars))
	for k, v := range s.EnvVars {
		env[k] = v
	}
	hidden := make(map[string]bool, len(s.EnvHidden))
	for k, v := range s.EnvHidden {
		hidden[k] = v
	}
	return env, hidden
}

// WithEnv restores the environment from a snapshot, discarding every
// mutation made since the snapshot was taken. The snapshot maps are
// cloned on the way in, so the same snapshot can be restored repeatedly
// (the reduce operator does this once per iteration).
func (s *Stack) WithEnv(env map[string]value.Value, hidden map[string]bool) {
	fresh := make(map[string]value.Value, len(env))
	for k, v := range env {
		fresh[k] = v
	}
	freshHidden := make(map[string]bool, len(hidden))
	for k, v := range hidden {
		freshHidden[k] = v
	}
	s.EnvVars = fresh
	s.EnvHidden = freshHidden
}
