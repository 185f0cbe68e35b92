package conflictfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNoConflict(t *testing.T) {
	text := "use a::b;\nuse c::d;\n"
	f, err := Parse(text)
	require.NoError(t, err)
	assert.False(t, f.ContainsConflict())
	assert.Len(t, f.Chunks, 2)
	assert.Equal(t, 1, f.Chunks[0].Line.LineNumber)
	assert.Equal(t, 2, f.Chunks[1].Line.LineNumber)
}

func TestParseSingleConflict(t *testing.T) {
	text := "use a;\n" +
		"<<<<<<< ours\n" +
		"use b;\n" +
		"use c;\n" +
		"=======\n" +
		"use d;\n" +
		">>>>>>> theirs\n" +
		"use e;\n"
	f, err := Parse(text)
	require.NoError(t, err)
	require.True(t, f.ContainsConflict())
	require.Len(t, f.Chunks, 3)

	assert.Equal(t, ChunkLine, f.Chunks[0].Kind)
	assert.Equal(t, "use a;\n", f.Chunks[0].Line.Content)
	assert.Equal(t, 1, f.Chunks[0].Line.LineNumber)

	conflict := f.Chunks[1].Conflict
	assert.Equal(t, "ours", conflict.Left.Name)
	assert.Equal(t, "theirs", conflict.Right.Name)
	require.Len(t, conflict.Left.Lines, 2)
	assert.Equal(t, 3, conflict.Left.Lines[0].LineNumber)
	assert.Equal(t, 4, conflict.Left.Lines[1].LineNumber)
	require.Len(t, conflict.Right.Lines, 1)
	assert.Equal(t, 6, conflict.Right.Lines[0].LineNumber)

	assert.Equal(t, ChunkLine, f.Chunks[2].Kind)
	assert.Equal(t, 8, f.Chunks[2].Line.LineNumber)
}

func TestParseUnterminatedConflict(t *testing.T) {
	text := "use a;\n<<<<<<< ours\nuse b;\n"
	_, err := Parse(text)
	require.Error(t, err)
	var badMarker *ErrBadMarker
	require.ErrorAs(t, err, &badMarker)
	assert.Equal(t, 2, badMarker.Line)
}

func TestParseMissingFooter(t *testing.T) {
	text := "<<<<<<< ours\nuse b;\n=======\nuse c;\n"
	_, err := Parse(text)
	require.Error(t, err)
	var badMarker *ErrBadMarker
	require.ErrorAs(t, err, &badMarker)
}

func TestLinesSelectsSide(t *testing.T) {
	text := "<<<<<<< ours\nuse b;\n=======\nuse c;\nuse d;\n>>>>>>> theirs\n"
	f, err := Parse(text)
	require.NoError(t, err)

	left := f.Lines(Left)
	require.Len(t, left, 1)
	assert.Equal(t, "use b;\n", left[0].Content)

	right := f.Lines(Right)
	require.Len(t, right, 2)
	assert.Equal(t, "use c;\n", right[0].Content)
	assert.Equal(t, "use d;\n", right[1].Content)
}

func TestBuildDerivedMapsLinesBack(t *testing.T) {
	text := "use a;\n" +
		"<<<<<<< ours\n" +
		"use b;\n" +
		"=======\n" +
		"use c;\n" +
		"use d;\n" +
		">>>>>>> theirs\n" +
		"use e;\n"
	f, err := Parse(text)
	require.NoError(t, err)

	derived := f.BuildDerived(Right)
	assert.Equal(t, "use a;\nuse c;\nuse d;\nuse e;\n", derived.Content)

	orig, ok := derived.GetOriginalLine(1)
	require.True(t, ok)
	assert.Equal(t, 1, orig)

	orig, ok = derived.GetOriginalLine(2)
	require.True(t, ok)
	assert.Equal(t, 5, orig)

	orig, ok = derived.GetOriginalLine(3)
	require.True(t, ok)
	assert.Equal(t, 6, orig)

	orig, ok = derived.GetOriginalLine(4)
	require.True(t, ok)
	assert.Equal(t, 8, orig)
}

func TestNoTrailingNewlineLastLine(t *testing.T) {
	text := "use a;\nuse b"
	f, err := Parse(text)
	require.NoError(t, err)
	require.Len(t, f.Chunks, 2)
	assert.Equal(t, "use b", f.Chunks[1].Line.Content)
}
