package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dantswain/nushell/internal/engine"
	"github.com/dantswain/nushell/internal/value"
)

func TestStrReplaceFirstOccurrence(t *testing.T) {
	assertResult(t, value.NewString("aZcabc", value.TestSpan()),
		`"abcabc" | str replace b Z`)
}

func TestStrReplaceAll(t *testing.T) {
	assertResult(t, value.NewString("aZcaZc", value.TestSpan()),
		`"abcabc" | str replace -a b Z`)
}

func TestStrReplaceMapsLists(t *testing.T) {
	span := value.TestSpan()
	assertResult(t, value.NewList([]value.Value{
		value.NewString("fXo", span),
		value.NewString("bar", span),
	}, span), `[foo bar] | str replace o X`)
}

func TestStrReplaceRequiresStrings(t *testing.T) {
	_, err := evalSource(t, `[1 2] | str replace a b`)
	require.Error(t, err)
	assert.True(t, engine.IsTypeMismatchError(err))
}

func TestStrReplaceMissingArgs(t *testing.T) {
	_, err := evalSource(t, `"abc" | str replace`)
	require.Error(t, err)
	var shellErr *engine.ShellError
	require.ErrorAs(t, err, &shellErr)
	assert.Equal(t, engine.ErrCodeMissingPositional, shellErr.Code)
}

func TestStrLength(t *testing.T) {
	assertResult(t, value.NewInt(5, value.TestSpan()), `"hello" | str length`)
}

func TestStrLengthCountsRunes(t *testing.T) {
	// Length is in code points, not bytes.
	assertResult(t, value.NewInt(3, value.TestSpan()), `"日本語" | str length`)
}

func TestStrLengthMapsLists(t *testing.T) {
	span := value.TestSpan()
	assertResult(t, value.NewList([]value.Value{
		value.NewInt(3, span),
		value.NewInt(7, span),
	}, span), `[one longest] | str length`)
}

func TestStrLengthRequiresStrings(t *testing.T) {
	_, err := evalSource(t, `42 | str length`)
	require.Error(t, err)
	assert.True(t, engine.IsTypeMismatchError(err))
}
