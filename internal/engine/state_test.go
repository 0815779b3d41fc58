package engine

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dantswain/nushell/internal/pipeline"
	"github.com/dantswain/nushell/internal/value"
)

type nopCommand struct{ name string }

func (c nopCommand) Name() string            { return c.name }
func (c nopCommand) Signature() *Signature   { return NewSignature(c.name) }
func (c nopCommand) Usage() string           { return "" }
func (c nopCommand) SearchTerms() []string   { return nil }
func (c nopCommand) Examples() []Example     { return nil }
func (c nopCommand) Run(ctx context.Context, state *EngineState, stack *Stack, call *Call, input pipeline.Data) (pipeline.Data, error) {
	return input, nil
}

func TestCommandRegistry(t *testing.T) {
	state := NewEngineState()
	state.AddCommand(nopCommand{name: "str replace"})

	assert.True(t, state.HasCommand("str replace"))
	assert.False(t, state.HasCommand("str"))

	cmd, ok := state.GetCommand("str replace")
	require.True(t, ok)
	assert.Equal(t, "str replace", cmd.Name())
}

func TestBlockRegistry(t *testing.T) {
	state := NewEngineState()

	id := state.AddBlock(&Block{Signature: NewSignature("block")})
	block, err := state.GetBlock(id)
	require.NoError(t, err)
	assert.NotNil(t, block.Signature)

	_, err = state.GetBlock(value.BlockID(99))
	assert.Error(t, err)
	_, err = state.GetBlock(value.BlockID(-1))
	assert.Error(t, err)
}

func TestAllocVarIDStartsAtOne(t *testing.T) {
	state := NewEngineState()
	first := state.AllocVarID()
	second := state.AllocVarID()

	assert.Equal(t, value.VarID(1), first, "zero is the no-binding sentinel")
	assert.Equal(t, value.VarID(2), second)
}

func TestInterrupted(t *testing.T) {
	state := NewEngineState()
	assert.False(t, state.Interrupted(), "unwired interrupt reads as false")

	state.Interrupt = new(atomic.Bool)
	assert.False(t, state.Interrupted())

	state.Interrupt.Store(true)
	assert.True(t, state.Interrupted())
}
