package lang

import (
	"github.com/dantswain/nushell/internal/value"
)

// Expr is a span-tagged expression node.
type Expr interface {
	exprNode()
	Span() value.Span
}

// Pipeline is a sequence of elements joined by pipes. The first element
// may be any expression; subsequent elements are command calls receiving
// the previous element's output as input.
type Pipeline struct {
	Elements []Expr
	Sp       value.Span
}

// Span returns the span covering the whole pipeline.
func (p *Pipeline) Span() value.Span { return p.Sp }

// IntLit is an integer literal.
type IntLit struct {
	Val int64
	Sp  value.Span
}

func (*IntLit) exprNode()          {}
func (e *IntLit) Span() value.Span { return e.Sp }

// StrLit is a string literal (quoted, or a bareword in argument and
// list position).
type StrLit struct {
	Val string
	Sp  value.Span
}

func (*StrLit) exprNode()          {}
func (e *StrLit) Span() value.Span { return e.Sp }

// BoolLit is a boolean literal (the keywords true and false).
type BoolLit struct {
	Val bool
	Sp  value.Span
}

func (*BoolLit) exprNode()          {}
func (e *BoolLit) Span() value.Span { return e.Sp }

// ListLit is a list literal.
type ListLit struct {
	Elems []Expr
	Sp    value.Span
}

func (*ListLit) exprNode()          {}
func (e *ListLit) Span() value.Span { return e.Sp }

// VarRef is a variable reference, resolved to an ID at parse time.
type VarRef struct {
	Name string
	ID   value.VarID
	Sp   value.Span
}

func (*VarRef) exprNode()          {}
func (e *VarRef) Span() value.Span { return e.Sp }

// FieldAccess selects a record field, e.g. $it.item.
type FieldAccess struct {
	Target Expr
	Field  string
	Sp     value.Span
}

func (*FieldAccess) exprNode()          {}
func (e *FieldAccess) Span() value.Span { return e.Sp }

// OpKind identifies a binary operator.
type OpKind int

const (
	// OpPlus adds integers or concatenates strings.
	OpPlus OpKind = iota + 1
	// OpGt compares integers.
	OpGt
)

// BinaryOp applies a binary operator.
type BinaryOp struct {
	Op    OpKind
	Left  Expr
	Right Expr
	Sp    value.Span
}

func (*BinaryOp) exprNode()          {}
func (e *BinaryOp) Span() value.Span { return e.Sp }

// BlockLit references a block registered with the engine state during
// parsing. Evaluating the literal yields a value.Block.
type BlockLit struct {
	ID value.BlockID
	Sp value.Span
}

func (*BlockLit) exprNode()          {}
func (e *BlockLit) Span() value.Span { return e.Sp }

// SubPipeline is a parenthesized pipeline evaluated with empty input
// and collapsed to its terminal value.
type SubPipeline struct {
	Pipe *Pipeline
	Sp   value.Span
}

func (*SubPipeline) exprNode()          {}
func (e *SubPipeline) Span() value.Span { return e.Sp }

// IfExpr evaluates Then or Else depending on the condition. The branch
// pipelines are inline: they share the enclosing variable scope.
type IfExpr struct {
	Cond Expr
	Then *Pipeline
	Else *Pipeline // nil when no else branch
	Sp   value.Span
}

func (*IfExpr) exprNode()          {}
func (e *IfExpr) Span() value.Span { return e.Sp }

// CallArg is one raw argument of a command call: either a flag token or
// an expression. Which flags consume a following expression is decided
// at evaluation time against the command's signature.
type CallArg struct {
	FlagName string // raw spelling with dashes; empty for expressions
	FlagSpan value.Span
	Expr     Expr // nil for flags
}

// CallExpr invokes a command. Name is fully resolved (including
// subcommand spaces) at parse time.
type CallExpr struct {
	Name     string
	NameSpan value.Span
	Args     []CallArg
	Sp       value.Span
}

func (*CallExpr) exprNode()          {}
func (e *CallExpr) Span() value.Span { return e.Sp }
