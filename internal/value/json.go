package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// MarshalJSON serializes a value to plain JSON, dropping spans.
// Records marshal as objects with fields in declaration order - the
// standard library's map-based marshaling would lose that, so objects
// are written by hand.
//
// Blocks have no JSON representation and return an error.
func MarshalJSON(v Value) ([]byte, error) {
	switch val := v.(type) {
	case Nothing:
		return []byte("null"), nil
	case Bool:
		return json.Marshal(val.Val)
	case Int:
		return json.Marshal(val.Val)
	case String:
		return json.Marshal(val.Val)
	case List:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, elem := range val.Vals {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := MarshalJSON(elem)
			if err != nil {
				return nil, fmt.Errorf("list[%d]: %w", i, err)
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case Record:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, col := range val.Cols {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(col)
			if err != nil {
				return nil, fmt.Errorf("marshal key %q: %w", col, err)
			}
			buf.Write(key)
			buf.WriteByte(':')
			b, err := MarshalJSON(val.Vals[i])
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", col, err)
			}
			buf.Write(b)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	case Block:
		return nil, fmt.Errorf("block values cannot be serialized to JSON")
	default:
		return nil, fmt.Errorf("unknown value type: %T", v)
	}
}

// FromGo converts a plain Go value (as produced by YAML or JSON decoding)
// into a shell Value tagged with span. Supported inputs: nil, bool, int,
// int64, uint64 (within int64 range), string, []any, and map[string]any.
//
// Floats are rejected - this core has no float kind. Maps convert to
// records with lexically unspecified field order, so callers that care
// about order (the reduce operator's structural checks do) should build
// records explicitly instead.
func FromGo(v any, span Span) (Value, error) {
	switch val := v.(type) {
	case nil:
		return NewNothing(span), nil
	case bool:
		return NewBool(val, span), nil
	case int:
		return NewInt(int64(val), span), nil
	case int64:
		return NewInt(val, span), nil
	case uint64:
		if val > 1<<63-1 {
			return nil, fmt.Errorf("integer out of int64 range: %d", val)
		}
		return NewInt(int64(val), span), nil
	case float64:
		return nil, fmt.Errorf("floats are not supported: %v", val)
	case string:
		return NewString(val, span), nil
	case []any:
		vals := make([]Value, len(val))
		for i, elem := range val {
			converted, err := FromGo(elem, span)
			if err != nil {
				return nil, fmt.Errorf("list[%d]: %w", i, err)
			}
			vals[i] = converted
		}
		return NewList(vals, span), nil
	case map[string]any:
		cols := make([]string, 0, len(val))
		for k := range val {
			cols = append(cols, k)
		}
		// Deterministic order for map inputs: sorted by key.
		slices.Sort(cols)
		vals := make([]Value, len(cols))
		for i, col := range cols {
			converted, err := FromGo(val[col], span)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", col, err)
			}
			vals[i] = converted
		}
		return NewRecord(cols, vals, span), nil
	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}
