package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalJSONRecordOrder(t *testing.T) {
	span := TestSpan()
	rec := NewRecord(
		[]string{"z", "a"},
		[]Value{NewInt(1, span), NewInt(2, span)},
		span,
	)

	data, err := MarshalJSON(rec)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":2}`, string(data))
}

func TestMarshalJSONNothing(t *testing.T) {
	data, err := MarshalJSON(NewNothing(TestSpan()))
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestMarshalJSONRejectsBlocks(t *testing.T) {
	_, err := MarshalJSON(Block{ID: 0})
	assert.Error(t, err)
}

func TestFromGo(t *testing.T) {
	span := UnknownSpan()

	tests := []struct {
		name string
		in   any
		want Value
	}{
		{"nil", nil, NewNothing(span)},
		{"bool", true, NewBool(true, span)},
		{"int", 42, NewInt(42, span)},
		{"int64", int64(-7), NewInt(-7, span)},
		{"string", "hello", NewString("hello", span)},
		{
			"list",
			[]any{1, "two"},
			NewList([]Value{NewInt(1, span), NewString("two", span)}, span),
		},
		{
			"map sorted by key",
			map[string]any{"b": 2, "a": 1},
			NewRecord([]string{"a", "b"}, []Value{NewInt(1, span), NewInt(2, span)}, span),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromGo(tt.in, span)
			require.NoError(t, err)
			assert.True(t, Equal(tt.want, got), "expected %s, got %s", Format(tt.want), Format(got))
		})
	}
}

func TestFromGoRejectsFloats(t *testing.T) {
	_, err := FromGo(3.14, UnknownSpan())
	assert.Error(t, err)
}

func TestFromGoRejectsUnsupportedTypes(t *testing.T) {
	_, err := FromGo(struct{}{}, UnknownSpan())
	assert.Error(t, err)
}
