// Package commands implements the built-in commands and the default
// engine context that registers them.
package commands

import (
	"context"

	"github.com/dantswain/nushell/internal/engine"
	"github.com/dantswain/nushell/internal/pipeline"
	"github.com/dantswain/nushell/internal/value"
)

// Reduce aggregates pipeline input to a single value by folding it
// through an accumulator block.
//
// The accumulator seeds from --fold when given, otherwise from the
// first input element. The block's first positional parameter receives
// each element (wrapped as {index, item} under --numbered), the second
// receives the running accumulator. Ambient environment mutations made
// by one block invocation are rolled back before the next; only the
// element and accumulator bindings persist across iterations.
type Reduce struct{}

// Name implements engine.Command.
func (Reduce) Name() string {
	return "reduce"
}

// Signature implements engine.Command.
func (Reduce) Signature() *engine.Signature {
	return engine.NewSignature("reduce").
		NamedFlag("fold", engine.ShapeAny, "reduce with initial value", "f").
		Required("block", engine.ShapeBlock, "reducing function").
		Switch("numbered", "iterate with an index", "n")
}

// Usage implements engine.Command.
func (Reduce) Usage() string {
	return "Aggregate a list table to a single value using an accumulator block."
}

// SearchTerms implements engine.Command.
func (Reduce) SearchTerms() []string {
	return []string{"map", "fold", "foldl"}
}

// Examples implements engine.Command.
func (Reduce) Examples() []engine.Example {
	span := value.TestSpan()
	return []engine.Example{
		{
			Example:     "[1 2 3 4] | reduce {|it, acc| $it + $acc}",
			Description: "Sum values of a list (same as 'math sum')",
			Result:      value.NewInt(10, span),
		},
		{
			Example:     "[1 2 3] | reduce -n {|it, acc| $acc + $it.item}",
			Description: "Sum values of a list (same as 'math sum')",
			Result:      value.NewInt(6, span),
		},
		{
			Example:     "[1 2 3 4] | reduce -f 10 {|it, acc| $acc + $it}",
			Description: "Sum values with a starting value (fold)",
			Result:      value.NewInt(20, span),
		},
		{
			Example:     `[i o t] | reduce -f "Arthur, King of the Britons" {|it, acc| $acc | str replace -a $it "X"}`,
			Description: "Replace selected characters in a string with 'X'",
			Result:      value.NewString("ArXhur, KXng Xf Xhe BrXXXns", span),
		},
		{
			Example:     "[one longest three bar] | reduce -n {|it, acc| if ($it.item | str length) > ($acc | str length) { $it.item } else { $acc } }",
			Description: "Find the longest string and its index",
			Result:      value.NewString("longest", span),
		},
	}
}

// Run implements engine.Command.
func (Reduce) Run(ctx context.Context, state *engine.EngineState, stack *engine.Stack, call *engine.Call, input pipeline.Data) (pipeline.Data, error) {
	span := call.Head

	fold, hasFold := call.GetFlagValue("fold")
	numbered := call.HasFlag("numbered")

	blockVal, err := call.ReqPositional("reduce", "a block", 0)
	if err != nil {
		return pipeline.Data{}, err
	}
	block, ref, err := engine.BlockFromValue(state, blockVal)
	if err != nil {
		return pipeline.Data{}, err
	}

	stack = stack.CapturesToStack(ref.Captures)
	origEnv, origHidden := stack.SnapshotEnv()

	iter := input.Iter()

	// Seed the accumulator: fold value if given, first element
	// otherwise. The offset keeps numbered indices aligned with the
	// original input - when the first element is consumed as the seed,
	// the element fed to the first block invocation is index 1.
	var off int64
	var acc value.Value
	if hasFold {
		off = 0
		acc = fold
	} else if seed, ok := iter.Next(); ok {
		off = 1
		acc = seed
	} else {
		return pipeline.Data{}, engine.NewEmptyInputError(span)
	}

	for idx := int64(0); ; idx++ {
		x, ok := iter.Next()
		if !ok {
			break
		}

		// Roll back any ambient mutation the previous invocation made.
		stack.WithEnv(origEnv, origHidden)

		// If the accumulator coming from a previous iteration is an
		// indexed wrapper, drop the index before binding it.
		acc = unwrapIndexed(acc)

		if param, ok := block.Signature.GetPositional(0); ok && param.VarID != 0 {
			it := x
			if numbered {
				it = value.NewRecord(
					[]string{"index", "item"},
					[]value.Value{value.NewInt(idx+off, span), x},
					span,
				)
			}
			stack.AddVar(param.VarID, it)
		}
		if param, ok := block.Signature.GetPositional(1); ok && param.VarID != 0 {
			stack.AddVar(param.VarID, acc)
		}

		out, err := engine.EvalBlock(ctx, state, stack, block,
			pipeline.Empty(span), call.RedirectStdout, call.RedirectStderr)
		if err != nil {
			return pipeline.Data{}, err
		}
		acc = out.IntoValue(span)

		// Cooperative cancellation: polled once per completed
		// iteration, so a block invocation always runs to completion.
		// Stopping here is a success path - the accumulator so far is
		// the result.
		if state.Interrupted() {
			break
		}
	}

	return pipeline.FromValue(acc.WithSpan(span)), nil
}

// unwrapIndexed substitutes the item field for an accumulator that is
// structurally an indexed wrapper: a record with exactly the two fields
// index and item, in that order. Any other record passes through
// unchanged. The check is structural, so a user-built record with
// exactly this shape is indistinguishable from an operator-built one.
func unwrapIndexed(v value.Value) value.Value {
	rec, ok := v.(value.Record)
	if !ok {
		return v
	}
	if len(rec.Cols) == 2 && len(rec.Vals) == 2 &&
		rec.Cols[0] == "index" && rec.Cols[1] == "item" {
		return rec.Vals[1]
	}
	return v
}
