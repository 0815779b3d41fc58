package compiler

import (
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dantswain/nushell/internal/value"
)

func TestCompileFile(t *testing.T) {
	spec, err := CompileFile("testdata/sum.cue")
	require.NoError(t, err)

	assert.Equal(t, "sum", spec.Name)
	assert.Equal(t, "reduce {|it, acc| $it + $acc}", spec.Source)

	require.Len(t, spec.Input, 4)
	for i, want := range []int64{1, 2, 3, 4} {
		assert.True(t, value.Equal(value.NewInt(want, value.TestSpan()), spec.Input[i]))
	}
}

func TestCompileFileRecordInput(t *testing.T) {
	spec, err := CompileFile("testdata/records.cue")
	require.NoError(t, err)

	require.Len(t, spec.Input, 2)
	rec, ok := spec.Input[0].(value.Record)
	require.True(t, ok)
	// Field order follows the CUE declaration.
	assert.Equal(t, []string{"index", "item"}, rec.Cols)

	item, ok := rec.Field("item")
	require.True(t, ok)
	assert.True(t, value.Equal(value.NewString("zero", value.TestSpan()), item))
}

func TestCompileFileMissingSource(t *testing.T) {
	_, err := CompileFile("testdata/no-source.cue")
	require.Error(t, err)

	var cerr *CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "source", cerr.Field)
}

func TestCompileFileRejectsFloats(t *testing.T) {
	_, err := CompileFile("testdata/float-input.cue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "float")
}

func TestCompileFileMissingFile(t *testing.T) {
	_, err := CompileFile("testdata/does-not-exist.cue")
	assert.Error(t, err)
}

func TestCompilePipelineRequiresPipelineStruct(t *testing.T) {
	_, err := CompileFile("testdata/sum.cue")
	require.NoError(t, err)

	ctx := cuecontext.New()
	v := ctx.CompileString(`other: {source: "x"}`)

	spec, err := CompilePipeline(v.LookupPath(cue.ParsePath("pipeline")))
	assert.Error(t, err)
	assert.Nil(t, spec)
}

func TestCompilePipelineRejectsNull(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`pipeline: {source: "x", input: [null]}`)

	_, err := CompilePipeline(v.LookupPath(cue.ParsePath("pipeline")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "null")
}

func TestCompilePipelineNestedLists(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`pipeline: {source: "x", input: [[1, 2], [true, "s"]]}`)

	spec, err := CompilePipeline(v.LookupPath(cue.ParsePath("pipeline")))
	require.NoError(t, err)

	require.Len(t, spec.Input, 2)
	list, ok := spec.Input[1].(value.List)
	require.True(t, ok)
	require.Len(t, list.Vals, 2)
	assert.True(t, value.Equal(value.NewBool(true, value.TestSpan()), list.Vals[0]))
}
