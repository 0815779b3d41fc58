package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalPreservesRecordOrder(t *testing.T) {
	span := TestSpan()
	rec := NewRecord(
		[]string{"index", "item"},
		[]Value{NewInt(1, span), NewString("a", span)},
		span,
	)

	data, err := MarshalCanonical(rec)
	require.NoError(t, err)
	assert.Equal(t, `{"index":1,"item":"a"}`, string(data))
}

func TestMarshalCanonicalNFCNormalization(t *testing.T) {
	// e + combining acute accent normalizes to the precomposed form.
	decomposed := NewString("cafe\u0301", TestSpan())
	precomposed := NewString("caf\u00e9", TestSpan())

	a, err := MarshalCanonical(decomposed)
	require.NoError(t, err)
	b, err := MarshalCanonical(precomposed)
	require.NoError(t, err)
	assert.Equal(t, string(b), string(a))
}

func TestMarshalCanonicalNoHTMLEscaping(t *testing.T) {
	data, err := MarshalCanonical(NewString("a<b&c>d", TestSpan()))
	require.NoError(t, err)
	assert.Equal(t, `"a<b&c>d"`, string(data))
}

func TestMarshalCanonicalNothingIsNull(t *testing.T) {
	data, err := MarshalCanonical(NewNothing(TestSpan()))
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestMarshalCanonicalRejectsBlocks(t *testing.T) {
	_, err := MarshalCanonical(Block{ID: 3})
	assert.Error(t, err)
}

func TestHistoryEntryIDDeterministic(t *testing.T) {
	result := NewInt(10, TestSpan())

	a, err := HistoryEntryID("token-1", "reduce {|it, acc| $it + $acc}", result)
	require.NoError(t, err)
	b, err := HistoryEntryID("token-1", "reduce {|it, acc| $it + $acc}", result)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestHistoryEntryIDVariesWithInputs(t *testing.T) {
	result := NewInt(10, TestSpan())

	base, err := HistoryEntryID("token-1", "source", result)
	require.NoError(t, err)

	otherToken, err := HistoryEntryID("token-2", "source", result)
	require.NoError(t, err)
	assert.NotEqual(t, base, otherToken)

	otherSource, err := HistoryEntryID("token-1", "other", result)
	require.NoError(t, err)
	assert.NotEqual(t, base, otherSource)

	otherResult, err := HistoryEntryID("token-1", "source", NewInt(11, TestSpan()))
	require.NoError(t, err)
	assert.NotEqual(t, base, otherResult)
}
