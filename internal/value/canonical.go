package value

import (
	"bytes"
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces canonical JSON for content-addressed hashing.
// This is the only serialization that should feed identity computation
// (history entry IDs).
//
// Canonical form here means:
//  1. Record fields serialize in declaration order (records are ordered,
//     so no key sorting is applied - two records with the same fields in
//     different order are different values and hash differently).
//  2. Strings are NFC normalized before encoding.
//  3. No HTML escaping (< > & are written as-is).
//  4. Nothing serializes as null.
//  5. Blocks are rejected - a block reference has no stable identity
//     across processes.
func MarshalCanonical(v Value) ([]byte, error) {
	switch val := v.(type) {
	case Nothing:
		return []byte("null"), nil
	case Bool:
		if val.Val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case Int:
		return []byte(fmt.Sprintf("%d", val.Val)), nil
	case String:
		return marshalCanonicalString(val.Val)
	case List:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, elem := range val.Vals {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := MarshalCanonical(elem)
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
			key, err := marshalCanonicalString(col)
			if err != nil {
				return nil, fmt.Errorf("marshal key %q: %w", col, err)
			}
			buf.Write(key)
			buf.WriteByte(':')
			b, err := MarshalCanonical(val.Vals[i])
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", col, err)
			}
			buf.Write(b)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	case Block:
		return nil, fmt.Errorf("block values are forbidden in canonical JSON")
	default:
		return nil, fmt.Errorf("unknown value type: %T", v)
	}
}

// marshalCanonicalString NFC-normalizes and JSON-encodes a string without
// HTML escaping. The encoder appends a trailing newline that must be
// trimmed.
func marshalCanonicalString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
