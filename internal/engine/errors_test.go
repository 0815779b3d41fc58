package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dantswain/nushell/internal/value"
)

func TestEmptyInputError(t *testing.T) {
	err := NewEmptyInputError(value.NewSpan(3, 9))
	assert.Equal(t, ErrCodeEmptyInput, err.Code)
	assert.Equal(t, value.NewSpan(3, 9), err.Span)
	assert.True(t, IsEmptyInputError(err))
	assert.False(t, IsTypeMismatchError(err))
}

func TestErrorHelpersUnwrap(t *testing.T) {
	inner := NewTypeMismatchError("int", value.NewString("x", value.TestSpan()))
	wrapped := fmt.Errorf("while evaluating block: %w", inner)

	assert.True(t, IsTypeMismatchError(wrapped))
	assert.False(t, IsEmptyInputError(wrapped))
}

func TestTypeMismatchMessage(t *testing.T) {
	err := NewTypeMismatchError("record", value.NewInt(1, value.TestSpan()))
	assert.Contains(t, err.Error(), "expected record, got int")
	assert.Contains(t, err.Error(), string(ErrCodeTypeMismatch))
}

func TestHelpersRejectForeignErrors(t *testing.T) {
	err := fmt.Errorf("plain error")
	assert.False(t, IsEmptyInputError(err))
	assert.False(t, IsTypeMismatchError(err))
}
