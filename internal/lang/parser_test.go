package lang

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dantswain/nushell/internal/engine"
	"github.com/dantswain/nushell/internal/pipeline"
	"github.com/dantswain/nushell/internal/value"
)

// captureCommand records the call it was invoked with and echoes its
// pipeline input.
type captureCommand struct {
	name string
	sig  *engine.Signature
	last *engine.Call
}

func (c *captureCommand) Name() string          { return c.name }
func (c *captureCommand) Signature() *engine.Signature {
	if c.sig != nil {
		return c.sig
	}
	return engine.NewSignature(c.name)
}
func (c *captureCommand) Usage() string             { return "" }
func (c *captureCommand) SearchTerms() []string     { return nil }
func (c *captureCommand) Examples() []engine.Example { return nil }
func (c *captureCommand) Run(ctx context.Context, state *engine.EngineState, stack *engine.Stack, call *engine.Call, input pipeline.Data) (pipeline.Data, error) {
	c.last = call
	return input, nil
}

func newTestState(cmds ...engine.Command) *engine.EngineState {
	state := engine.NewEngineState()
	for _, cmd := range cmds {
		state.AddCommand(cmd)
	}
	return state
}

func TestParseListLiteral(t *testing.T) {
	state := newTestState()
	pipe, err := Parse(state, "[1 two 3]")
	require.NoError(t, err)
	require.Len(t, pipe.Elements, 1)

	list, ok := pipe.Elements[0].(*ListLit)
	require.True(t, ok)
	require.Len(t, list.Elems, 3)
	_, isInt := list.Elems[0].(*IntLit)
	assert.True(t, isInt)
	str, isStr := list.Elems[1].(*StrLit)
	require.True(t, isStr, "barewords in list position read as strings")
	assert.Equal(t, "two", str.Val)
}

func TestParseUnknownCommand(t *testing.T) {
	state := newTestState()
	_, err := Parse(state, "frobnicate 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestParseTwoWordCommandName(t *testing.T) {
	cmd := &captureCommand{name: "str replace"}
	state := newTestState(cmd)

	pipe, err := Parse(state, "str replace a b")
	require.NoError(t, err)
	call, ok := pipe.Elements[0].(*CallExpr)
	require.True(t, ok)
	assert.Equal(t, "str replace", call.Name)
	assert.Len(t, call.Args, 2)
}

func TestParseBlockRegistersSignature(t *testing.T) {
	state := newTestState()
	pipe, err := Parse(state, "{|it, acc| $it}")
	require.NoError(t, err)

	lit, ok := pipe.Elements[0].(*BlockLit)
	require.True(t, ok)

	block, err := state.GetBlock(lit.ID)
	require.NoError(t, err)

	it, ok := block.Signature.GetPositional(0)
	require.True(t, ok)
	assert.Equal(t, "it", it.Name)
	assert.NotZero(t, it.VarID)

	acc, ok := block.Signature.GetPositional(1)
	require.True(t, ok)
	assert.Equal(t, "acc", acc.Name)
	assert.NotZero(t, acc.VarID)
	assert.NotEqual(t, it.VarID, acc.VarID)
}

func TestParseBlockWithoutParams(t *testing.T) {
	state := newTestState()
	pipe, err := Parse(state, "{ 42 }")
	require.NoError(t, err)

	lit, ok := pipe.Elements[0].(*BlockLit)
	require.True(t, ok)

	block, err := state.GetBlock(lit.ID)
	require.NoError(t, err)
	_, ok = block.Signature.GetPositional(0)
	assert.False(t, ok, "a block without parameters binds nothing")
}

func TestParseDuplicateParameter(t *testing.T) {
	state := newTestState()
	_, err := Parse(state, "{|a, a| $a}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate parameter")
}

func TestParseUnboundVariable(t *testing.T) {
	state := newTestState()
	_, err := Parse(state, "$nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "variable $nope not found")
}

func TestParseParamScopeEndsAtBlock(t *testing.T) {
	state := newTestState()
	_, err := Parse(state, "[{|x| $x} $x]")
	require.Error(t, err, "block parameters are not visible outside the block")
}

func TestParsePipeRequiresCommand(t *testing.T) {
	cmd := &captureCommand{name: "echo"}
	state := newTestState(cmd)
	_, err := Parse(state, "[1 2] | 3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a command after |")
}

func TestParseTrailingGarbage(t *testing.T) {
	state := newTestState()
	_, err := Parse(state, "[1] ]")
	require.Error(t, err)
}

func TestParseIfElse(t *testing.T) {
	state := newTestState()
	pipe, err := Parse(state, "if 1 > 2 { 3 } else { 4 }")
	require.NoError(t, err)

	ifExpr, ok := pipe.Elements[0].(*IfExpr)
	require.True(t, ok)
	assert.NotNil(t, ifExpr.Then)
	assert.NotNil(t, ifExpr.Else)

	_, ok = ifExpr.Cond.(*BinaryOp)
	assert.True(t, ok)
}

func TestParseSpansCoverSource(t *testing.T) {
	state := newTestState()
	src := "[1 2 3]"
	pipe, err := Parse(state, src)
	require.NoError(t, err)
	assert.Equal(t, value.NewSpan(0, len(src)), pipe.Sp)
}
