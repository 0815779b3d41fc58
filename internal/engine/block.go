package engine

import (
	"context"
	"fmt"

	"github.com/dantswain/nushell/internal/pipeline"
	"github.com/dantswain/nushell/internal/value"
)

// BlockBody is the block-evaluator boundary. The language layer
// implements it for parsed bodies; tests may implement it with plain Go
// functions. From the engine's perspective a body is an opaque,
// synchronous call: bindings in, one pipeline result or an error out.
type BlockBody interface {
	Eval(ctx context.Context, state *EngineState, stack *Stack, input pipeline.Data, redirectStdout, redirectStderr bool) (pipeline.Data, error)
}

// BodyFunc adapts a plain function to BlockBody.
type BodyFunc func(ctx context.Context, state *EngineState, stack *Stack, input pipeline.Data, redirectStdout, redirectStderr bool) (pipeline.Data, error)

// Eval implements BlockBody.
func (f BodyFunc) Eval(ctx context.Context, state *EngineState, stack *Stack, input pipeline.Data, redirectStdout, redirectStderr bool) (pipeline.Data, error) {
	return f(ctx, state, stack, input, redirectStdout, redirectStderr)
}

// Block is a registered block: the parameter signature the parser
// declared plus the body the evaluator runs. Blocks are referenced from
// values by ID (value.Block), never by pointer.
type Block struct {
	Signature *Signature
	Body      BlockBody
}

// EvalBlock invokes a block's body on the given stack and input,
// passing the caller's redirect settings through unchanged.
//
// Variable bindings for declared parameters must already be on the
// stack; EvalBlock does not bind anything itself.
func EvalBlock(ctx context.Context, state *EngineState, stack *Stack, block *Block, input pipeline.Data, redirectStdout, redirectStderr bool) (pipeline.Data, error) {
	if block.Body == nil {
		return pipeline.Data{}, fmt.Errorf("block has no body")
	}
	return block.Body.Eval(ctx, state, stack, input, redirectStdout, redirectStderr)
}

// BlockFromValue resolves a block value against the engine state.
// Returns a type mismatch error if the value is not a block.
func BlockFromValue(state *EngineState, v value.Value) (*Block, value.Block, error) {
	ref, ok := v.(value.Block)
	if !ok {
		return nil, value.Block{}, NewTypeMismatchError("block", v)
	}
	block, err := state.GetBlock(ref.ID)
	if err != nil {
		return nil, value.Block{}, err
	}
	return block, ref, nil
}
