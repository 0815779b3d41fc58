package value

import (
	"fmt"
	"strings"
)

// VarID identifies a variable slot allocated by the parser.
// Variable references are resolved to IDs at parse time; the evaluation
// stack maps IDs to values at run time.
type VarID int

// BlockID identifies a block registered with the engine state.
// Values never hold block bodies directly - only the ID plus captured
// variables. The engine state owns the signature and body.
type BlockID int

// Value is a sealed interface over the shell's value kinds.
// Only Nothing, Bool, Int, String, List, Record, and Block implement it.
// Floats are deliberately absent from this core.
//
// Every value carries a source span used for error reporting and result
// tagging. WithSpan re-tags a value without copying its payload deeply.
type Value interface {
	valueNode() // Sealed - only these types implement it

	// Span returns the source location the value is tagged with.
	Span() Span

	// WithSpan returns the same value re-tagged with a new span.
	WithSpan(Span) Value

	// Type returns the human-readable type name used in error messages.
	Type() string
}

// Nothing is the absent value (empty pipeline output, missing field).
type Nothing struct {
	Sp Span
}

func (Nothing) valueNode()          {}
func (n Nothing) Span() Span        { return n.Sp }
func (n Nothing) WithSpan(s Span) Value { n.Sp = s; return n }
func (Nothing) Type() string        { return "nothing" }

// Bool is a boolean value.
type Bool struct {
	Val bool
	Sp  Span
}

func (Bool) valueNode()          {}
func (b Bool) Span() Span        { return b.Sp }
func (b Bool) WithSpan(s Span) Value { b.Sp = s; return b }
func (Bool) Type() string        { return "bool" }

// Int is a 64-bit integer value.
type Int struct {
	Val int64
	Sp  Span
}

func (Int) valueNode()          {}
func (i Int) Span() Span        { return i.Sp }
func (i Int) WithSpan(s Span) Value { i.Sp = s; return i }
func (Int) Type() string        { return "int" }

// String is a UTF-8 string value.
type String struct {
	Val string
	Sp  Span
}

func (String) valueNode()          {}
func (s String) Span() Span        { return s.Sp }
func (s String) WithSpan(sp Span) Value { s.Sp = sp; return s }
func (String) Type() string        { return "string" }

// List is an ordered sequence of values.
type List struct {
	Vals []Value
	Sp   Span
}

func (List) valueNode()          {}
func (l List) Span() Span        { return l.Sp }
func (l List) WithSpan(s Span) Value { l.Sp = s; return l }
func (List) Type() string        { return "list" }

// Record is an ordered mapping from field name to value.
// Cols and Vals are parallel slices; field order is significant and
// preserved through serialization. Structural checks (like the reduce
// operator's indexed-accumulator detection) depend on this order.
type Record struct {
	Cols []string
	Vals []Value
	Sp   Span
}

func (Record) valueNode()          {}
func (r Record) Span() Span        { return r.Sp }
func (r Record) WithSpan(s Span) Value { r.Sp = s; return r }
func (Record) Type() string        { return "record" }

// Field returns the value of the named field, if present.
func (r Record) Field(name string) (Value, bool) {
	for i, col := range r.Cols {
		if col == name {
			return r.Vals[i], true
		}
	}
	return nil, false
}

// Block is a reference to a parsed block: its registry ID plus the
// variables captured at the point the block literal was evaluated.
// The engine state resolves the ID to a signature and body.
type Block struct {
	ID       BlockID
	Captures map[VarID]Value
	Sp       Span
}

func (Block) valueNode()          {}
func (b Block) Span() Span        { return b.Sp }
func (b Block) WithSpan(s Span) Value { b.Sp = s; return b }
func (Block) Type() string        { return "block" }

// NewNothing creates a Nothing value tagged with span.
func NewNothing(span Span) Nothing {
	return Nothing{Sp: span}
}

// NewBool creates a Bool value tagged with span.
func NewBool(val bool, span Span) Bool {
	return Bool{Val: val, Sp: span}
}

// NewInt creates an Int value tagged with span.
func NewInt(val int64, span Span) Int {
	return Int{Val: val, Sp: span}
}

// NewString creates a String value tagged with span.
func NewString(val string, span Span) String {
	return String{Val: val, Sp: span}
}

// NewList creates a List value tagged with span.
func NewList(vals []Value, span Span) List {
	return List{Vals: vals, Sp: span}
}

// NewRecord creates a Record from parallel column/value slices.
// Panics if the slices differ in length - that is a programming error,
// not a runtime condition.
func NewRecord(cols []string, vals []Value, span Span) Record {
	if len(cols) != len(vals) {
		panic(fmt.Sprintf("record has %d cols but %d vals", len(cols), len(vals)))
	}
	return Record{Cols: cols, Vals: vals, Sp: span}
}

// Equal reports deep structural equality of two values, ignoring spans.
// Used by tests and the conformance harness; blocks compare by ID only.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Nothing:
		_, ok := b.(Nothing)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av.Val == bv.Val
	case Int:
		bv, ok := b.(Int)
		return ok && av.Val == bv.Val
	case String:
		bv, ok := b.(String)
		return ok && av.Val == bv.Val
	case List:
		bv, ok := b.(List)
		if !ok || len(av.Vals) != len(bv.Vals) {
			return false
		}
		for i := range av.Vals {
			if !Equal(av.Vals[i], bv.Vals[i]) {
				return false
			}
		}
		return true
	case Record:
		bv, ok := b.(Record)
		if !ok || len(av.Cols) != len(bv.Cols) {
			return false
		}
		for i := range av.Cols {
			if av.Cols[i] != bv.Cols[i] || !Equal(av.Vals[i], bv.Vals[i]) {
				return false
			}
		}
		return true
	case Block:
		bv, ok := b.(Block)
		return ok && av.ID == bv.ID
	default:
		return false
	}
}

// Format renders a value for terminal display.
// Scalars render bare, lists as "[a, b, c]", records as "{k: v, ...}".
func Format(v Value) string {
	switch val := v.(type) {
	case Nothing:
		return ""
	case Bool:
		if val.Val {
			return "true"
		}
		return "false"
	case Int:
		return fmt.Sprintf("%d", val.Val)
	case String:
		return val.Val
	case List:
		parts := make([]string, len(val.Vals))
		for i, elem := range val.Vals {
			parts[i] = Format(elem)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case Record:
		parts := make([]string, len(val.Cols))
		for i, col := range val.Cols {
			parts[i] = col + ": " + Format(val.Vals[i])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case Block:
		return fmt.Sprintf("<block %d>", val.ID)
	default:
		return fmt.Sprintf("<%T>", v)
	}
}
