package lang

import (
	"context"
	"strings"

	"github.com/dantswain/nushell/internal/engine"
	"github.com/dantswain/nushell/internal/pipeline"
	"github.com/dantswain/nushell/internal/value"
)

// parsedBody adapts a parsed pipeline to the engine's block-evaluator
// boundary.
type parsedBody struct {
	pipeline *Pipeline
}

// Eval implements engine.BlockBody.
func (b *parsedBody) Eval(ctx context.Context, state *engine.EngineState, stack *engine.Stack, input pipeline.Data, redirectStdout, redirectStderr bool) (pipeline.Data, error) {
	return EvalPipeline(ctx, state, stack, b.pipeline, input, redirectStdout, redirectStderr)
}

// EvalPipeline evaluates a pipeline: the first element produces the
// initial data (or consumes the given input if it is a command call),
// each following call receives the previous stage's output.
func EvalPipeline(ctx context.Context, state *engine.EngineState, stack *engine.Stack, p *Pipeline, input pipeline.Data, redirectStdout, redirectStderr bool) (pipeline.Data, error) {
	data := input
	for _, elem := range p.Elements {
		call, isCall := elem.(*CallExpr)
		if !isCall {
			// Parser guarantees non-call elements only appear first.
			v, err := EvalExpr(ctx, state, stack, elem)
			if err != nil {
				return pipeline.Data{}, err
			}
			data = pipeline.FromValue(v)
			continue
		}
		out, err := evalCall(ctx, state, stack, call, data, redirectStdout, redirectStderr)
		if err != nil {
			return pipeline.Data{}, err
		}
		data = out
	}
	return data, nil
}

// EvalExpr evaluates a single expression to a value.
func EvalExpr(ctx context.Context, state *engine.EngineState, stack *engine.Stack, e Expr) (value.Value, error) {
	switch expr := e.(type) {
	case *IntLit:
		return value.NewInt(expr.Val, expr.Sp), nil

	case *StrLit:
		return value.NewString(expr.Val, expr.Sp), nil

	case *BoolLit:
		return value.NewBool(expr.Val, expr.Sp), nil

	case *ListLit:
		vals := make([]value.Value, len(expr.Elems))
		for i, elem := range expr.Elems {
			v, err := EvalExpr(ctx, state, stack, elem)
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}
		return value.NewList(vals, expr.Sp), nil

	case *VarRef:
		v, ok := stack.GetVar(expr.ID)
		if !ok {
			return nil, &engine.ShellError{
				Code:    engine.ErrCodeVariableNotFound,
				Message: "variable $" + expr.Name + " is not bound",
				Label:   "not bound",
				Span:    expr.Sp,
			}
		}
		return v, nil

	case *FieldAccess:
		target, err := EvalExpr(ctx, state, stack, expr.Target)
		if err != nil {
			return nil, err
		}
		rec, ok := target.(value.Record)
		if !ok {
			return nil, engine.NewTypeMismatchError("record", target)
		}
		field, ok := rec.Field(expr.Field)
		if !ok {
			return nil, &engine.ShellError{
				Code:    engine.ErrCodeTypeMismatch,
				Message: "record has no field " + expr.Field,
				Label:   "unknown field",
				Span:    expr.Sp,
			}
		}
		return field, nil

	case *BinaryOp:
		return evalBinaryOp(ctx, state, stack, expr)

	case *BlockLit:
		return value.Block{
			ID:       expr.ID,
			Captures: map[value.VarID]value.Value{},
			Sp:       expr.Sp,
		}, nil

	case *SubPipeline:
		out, err := EvalPipeline(ctx, state, stack, expr.Pipe, pipeline.Empty(expr.Sp), false, false)
		if err != nil {
			return nil, err
		}
		return out.IntoValue(expr.Sp), nil

	case *IfExpr:
		cond, err := EvalExpr(ctx, state, stack, expr.Cond)
		if err != nil {
			return nil, err
		}
		b, ok := cond.(value.Bool)
		if !ok {
			return nil, engine.NewTypeMismatchError("bool", cond)
		}
		branch := expr.Else
		if b.Val {
			branch = expr.Then
		}
		if branch == nil {
			return value.NewNothing(expr.Sp), nil
		}
		out, err := EvalPipeline(ctx, state, stack, branch, pipeline.Empty(expr.Sp), false, false)
		if err != nil {
			return nil, err
		}
		return out.IntoValue(expr.Sp), nil

	case *CallExpr:
		out, err := evalCall(ctx, state, stack, expr, pipeline.Empty(expr.Sp), false, false)
		if err != nil {
			return nil, err
		}
		return out.IntoValue(expr.Sp), nil

	default:
		return nil, &engine.ShellError{
			Code:    engine.ErrCodeTypeMismatch,
			Message: "unsupported expression",
			Span:    e.Span(),
		}
	}
}

func evalBinaryOp(ctx context.Context, state *engine.EngineState, stack *engine.Stack, expr *BinaryOp) (value.Value, error) {
	left, err := EvalExpr(ctx, state, stack, expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := EvalExpr(ctx, state, stack, expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Op {
	case OpPlus:
		switch lv := left.(type) {
		case value.Int:
			rv, ok := right.(value.Int)
			if !ok {
				return nil, engine.NewTypeMismatchError("int", right)
			}
			return value.NewInt(lv.Val+rv.Val, expr.Sp), nil
		case value.String:
			rv, ok := right.(value.String)
			if !ok {
				return nil, engine.NewTypeMismatchError("string", right)
			}
			return value.NewString(lv.Val+rv.Val, expr.Sp), nil
		default:
			return nil, engine.NewTypeMismatchError("int or string", left)
		}

	case OpGt:
		lv, ok := left.(value.Int)
		if !ok {
			return nil, engine.NewTypeMismatchError("int", left)
		}
		rv, ok := right.(value.Int)
		if !ok {
			return nil, engine.NewTypeMismatchError("int", right)
		}
		return value.NewBool(lv.Val > rv.Val, expr.Sp), nil

	default:
		return nil, &engine.ShellError{
			Code:    engine.ErrCodeTypeMismatch,
			Message: "unknown operator",
			Span:    expr.Sp,
		}
	}
}

// evalCall evaluates a command call: arguments are evaluated eagerly,
// flags are assigned against the target signature (a flag with a shape
// consumes the next argument expression as its value, a switch binds to
// true), and the command runs with the given pipeline input.
func evalCall(ctx context.Context, state *engine.EngineState, stack *engine.Stack, expr *CallExpr, input pipeline.Data, redirectStdout, redirectStderr bool) (pipeline.Data, error) {
	cmd, ok := state.GetCommand(expr.Name)
	if !ok {
		return pipeline.Data{}, engine.NewUnknownCommandError(expr.Name, expr.NameSpan)
	}
	sig := cmd.Signature()

	call := &engine.Call{
		Head:           expr.NameSpan,
		Named:          map[string]value.Value{},
		RedirectStdout: redirectStdout,
		RedirectStderr: redirectStderr,
	}

	args := expr.Args
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg.FlagName == "" {
			v, err := EvalExpr(ctx, state, stack, arg.Expr)
			if err != nil {
				return pipeline.Data{}, err
			}
			call.Positional = append(call.Positional, v)
			continue
		}

		name := strings.TrimLeft(arg.FlagName, "-")
		flag, ok := sig.FindFlag(name)
		if !ok {
			return pipeline.Data{}, engine.NewUnknownFlagError(expr.Name, name, arg.FlagSpan)
		}
		if flag.IsSwitch() {
			call.Named[flag.Long] = value.NewBool(true, arg.FlagSpan)
			continue
		}

		if i+1 >= len(args) || args[i+1].Expr == nil {
			return pipeline.Data{}, &engine.ShellError{
				Code:    engine.ErrCodeMissingPositional,
				Message: "flag --" + flag.Long + " requires a value",
				Label:   "missing value",
				Span:    arg.FlagSpan,
			}
		}
		i++
		v, err := EvalExpr(ctx, state, stack, args[i].Expr)
		if err != nil {
			return pipeline.Data{}, err
		}
		call.Named[flag.Long] = v
	}

	return cmd.Run(ctx, state, stack, call, input)
}
