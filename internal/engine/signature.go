package engine

import (
	"github.com/dantswain/nushell/internal/value"
)

// Shape describes the syntactic kind a signature slot accepts.
// The evaluator uses shapes only to decide whether a flag consumes a
// value; type checking proper happens inside commands.
type Shape string

const (
	// ShapeAny accepts any value.
	ShapeAny Shape = "any"
	// ShapeInt accepts an integer.
	ShapeInt Shape = "int"
	// ShapeString accepts a string.
	ShapeString Shape = "string"
	// ShapeBlock accepts a block literal.
	ShapeBlock Shape = "block"
)

// PositionalArg declares one positional parameter of a signature.
// VarID is non-zero only for block parameters, where the parser
// allocated a variable slot for the parameter name. Command signatures
// declare no bindings (VarID zero).
type PositionalArg struct {
	Name  string
	Shape Shape
	Desc  string
	VarID value.VarID
}

// Flag declares one named flag of a signature. A flag with an empty
// Shape is a switch: it consumes no value and binds to true when
// present.
type Flag struct {
	Long  string
	Short string
	Shape Shape
	Desc  string
}

// IsSwitch reports whether the flag is a boolean switch.
func (f Flag) IsSwitch() bool {
	return f.Shape == ""
}

// Signature declares a command's or block's parameter surface.
type Signature struct {
	Name       string
	Positional []PositionalArg
	Named      []Flag
}

// NewSignature starts a signature for the given command name.
func NewSignature(name string) *Signature {
	return &Signature{Name: name}
}

// Required appends a required positional parameter.
func (sig *Signature) Required(name string, shape Shape, desc string) *Signature {
	sig.Positional = append(sig.Positional, PositionalArg{
		Name:  name,
		Shape: shape,
		Desc:  desc,
	})
	return sig
}

// NamedFlag appends a value-carrying flag. Short may be empty.
func (sig *Signature) NamedFlag(long string, shape Shape, desc, short string) *Signature {
	sig.Named = append(sig.Named, Flag{
		Long:  long,
		Short: short,
		Shape: shape,
		Desc:  desc,
	})
	return sig
}

// Switch appends a boolean switch. Short may be empty.
func (sig *Signature) Switch(long, desc, short string) *Signature {
	sig.Named = append(sig.Named, Flag{
		Long:  long,
		Short: short,
		Desc:  desc,
	})
	return sig
}

// GetPositional returns the i-th declared positional parameter.
// Callers probe with increasing i; a false return means the signature
// declares fewer parameters, which for blocks means the parameter is
// simply not bound.
func (sig *Signature) GetPositional(i int) (PositionalArg, bool) {
	if i < 0 || i >= len(sig.Positional) {
		return PositionalArg{}, false
	}
	return sig.Positional[i], true
}

// FindFlag resolves a flag by long name ("--fold" without dashes) or
// short name ("f").
func (sig *Signature) FindFlag(name string) (Flag, bool) {
	for _, f := range sig.Named {
		if f.Long == name || (f.Short != "" && f.Short == name) {
			return f, true
		}
	}
	return Flag{}, false
}
