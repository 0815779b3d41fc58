// Package pipeline carries values between commands.
//
// Data models the three shapes a command can receive or produce: nothing,
// a single value, or a lazy stream of values. Streams are single-pass:
// once a consumer starts pulling, the data cannot be rewound or shared.
package pipeline

import (
	"github.com/dantswain/nushell/internal/value"
)

type dataKind int

const (
	kindEmpty dataKind = iota
	kindValue
	kindStream
)

// Data is the pipeline payload passed between commands.
// The zero value is empty data with an unknown span.
type Data struct {
	kind dataKind
	val  value.Value
	next func() (value.Value, bool)
	span value.Span
}

// Empty creates pipeline data carrying nothing.
func Empty(span value.Span) Data {
	return Data{kind: kindEmpty, span: span}
}

// FromValue wraps a single value as pipeline data.
func FromValue(v value.Value) Data {
	return Data{kind: kindValue, val: v, span: v.Span()}
}

// FromList wraps a slice of values as pipeline data backed by a list value.
func FromList(vals []value.Value, span value.Span) Data {
	return FromValue(value.NewList(vals, span))
}

// FromFunc creates lazily streamed pipeline data. The next function is
// pulled once per element and must return false when exhausted; it may
// produce elements indefinitely. The stream is single-pass.
func FromFunc(next func() (value.Value, bool), span value.Span) Data {
	return Data{kind: kindStream, next: next, span: span}
}

// Span returns the span the data was created with.
func (d Data) Span() value.Span {
	return d.span
}

// IsEmpty reports whether the data carries nothing.
// A stream that has produced no elements yet is not empty.
func (d Data) IsEmpty() bool {
	return d.kind == kindEmpty
}

// Iter returns a single-pass iterator over the data.
//
// A List value iterates element-wise, any other single value yields
// itself exactly once, empty data yields nothing, and a stream pulls
// from its producer. Calling Iter on a stream hands ownership of the
// stream to the iterator.
func (d Data) Iter() *Iter {
	switch d.kind {
	case kindEmpty:
		return &Iter{}
	case kindStream:
		return &Iter{next: d.next}
	default:
		if list, ok := d.val.(value.List); ok {
			vals := list.Vals
			i := 0
			return &Iter{next: func() (value.Value, bool) {
				if i >= len(vals) {
					return nil, false
				}
				v := vals[i]
				i++
				return v, true
			}}
		}
		v := d.val
		done := false
		return &Iter{next: func() (value.Value, bool) {
			if done {
				return nil, false
			}
			done = true
			return v, true
		}}
	}
}

// IntoValue collapses the data to a single value tagged with span.
// Empty data becomes Nothing; a stream is drained into a List (or
// Nothing if it produced no elements, or the element itself if it
// produced exactly one).
func (d Data) IntoValue(span value.Span) value.Value {
	switch d.kind {
	case kindEmpty:
		return value.NewNothing(span)
	case kindValue:
		return d.val.WithSpan(span)
	default:
		var vals []value.Value
		for {
			v, ok := d.next()
			if !ok {
				break
			}
			vals = append(vals, v)
		}
		switch len(vals) {
		case 0:
			return value.NewNothing(span)
		case 1:
			return vals[0].WithSpan(span)
		default:
			return value.NewList(vals, span)
		}
	}
}

// Iter is a single-pass pull iterator over pipeline data.
type Iter struct {
	next func() (value.Value, bool)
}

// Next returns the next element, or false when the sequence is exhausted.
func (it *Iter) Next() (value.Value, bool) {
	if it.next == nil {
		return nil, false
	}
	return it.next()
}
