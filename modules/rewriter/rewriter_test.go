package rewriter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antgroup/usefix/modules/conflictfile"
)

func TestFindInsertPointOnce(t *testing.T) {
	f, err := conflictfile.Parse("use a;\nuse b;\n")
	require.NoError(t, err)
	point := FindInsertPoint(f, map[int]bool{1: true, 2: true})
	assert.Equal(t, Once, point.Kind)
	assert.Equal(t, 1, point.Line)
}

func TestFindInsertPointNowhere(t *testing.T) {
	f, err := conflictfile.Parse("use a;\n")
	require.NoError(t, err)
	point := FindInsertPoint(f, map[int]bool{})
	assert.Equal(t, Nowhere, point.Kind)
}

func TestFindInsertPointIntoConflictSameConflict(t *testing.T) {
	text := "<<<<<<< ours\nuse a;\n=======\nuse b;\n>>>>>>> theirs\n"
	f, err := conflictfile.Parse(text)
	require.NoError(t, err)
	point := FindInsertPoint(f, map[int]bool{2: true, 4: true})
	assert.Equal(t, IntoConflict, point.Kind)
	assert.Equal(t, 2, point.Line)
	assert.Equal(t, 4, point.RightLine)
}

func TestWriteCorrectedFileReplacesOnceLine(t *testing.T) {
	f, err := conflictfile.Parse("use a;\nuse b;\nuse c;\n")
	require.NoError(t, err)
	out := WriteCorrectedFile(f, map[int]bool{2: true}, "use b_formatted;\n")
	assert.Equal(t, "use a;\nuse b_formatted;\nuse c;\n", out)
}

func TestWriteCorrectedFileSplitsConflict(t *testing.T) {
	text := "keep top\n" +
		"<<<<<<< ours\n" +
		"use a;\n" +
		"use b;\n" +
		"=======\n" +
		"use c;\n" +
		">>>>>>> theirs\n" +
		"keep bottom\n"
	f, err := conflictfile.Parse(text)
	require.NoError(t, err)
	// line 3 = "use a;" (left), line 6 = "use c;" (right)
	discarded := map[int]bool{3: true, 6: true}
	out := WriteCorrectedFile(f, discarded, "use merged;\n")
	assert.Equal(t, "keep top\nuse merged;\n<<<<<<< ours\nuse b;\n=======\n>>>>>>> theirs\nkeep bottom\n", out)
}

func TestWriteCorrectedFileCollapsesIdenticalHalves(t *testing.T) {
	text := "<<<<<<< ours\n" +
		"use a;\n" +
		"use shared;\n" +
		"use extra_left;\n" +
		"=======\n" +
		"use c;\n" +
		"use shared;\n" +
		">>>>>>> theirs\n"
	f, err := conflictfile.Parse(text)
	require.NoError(t, err)
	// "use a;" (2) and "use c;" (6) are the two halves of the resolved
	// import, spliced by the formatted text below; "use extra_left;" (4)
	// was separately folded into the same formatted block, so once it's
	// dropped the two bottom halves both read "use shared;" and collapse.
	discarded := map[int]bool{2: true, 6: true, 4: true}
	out := WriteCorrectedFile(f, discarded, "use merged;\n")
	assert.Equal(t, "use merged;\nuse shared;\n", out)
}

func TestWriteCorrectedFileNoDiscardsLeavesFileUntouched(t *testing.T) {
	text := "use a;\n<<<<<<< ours\nuse b;\n=======\nuse c;\n>>>>>>> theirs\n"
	f, err := conflictfile.Parse(text)
	require.NoError(t, err)
	out := WriteCorrectedFile(f, map[int]bool{}, "unused")
	assert.Equal(t, text, out)
}

func TestWriteCorrectedFileStyledDiff3AnnotatesWideHunk(t *testing.T) {
	wide := "fn f(" + strings.Repeat("x int, ", 30) + ") {}\n"
	text := "<<<<<<< ours\n" + wide + "=======\nfn f() {}\n>>>>>>> theirs\n"
	f, err := conflictfile.Parse(text)
	require.NoError(t, err)
	out := WriteCorrectedFileStyled(f, map[int]bool{}, "unused", StyleDiff3)
	assert.Contains(t, out, "<<<<<<< ours //")
	assert.Contains(t, out, "cols")
}

func TestWriteCorrectedFileStyledDefaultOmitsAnnotation(t *testing.T) {
	wide := "fn f(" + strings.Repeat("x int, ", 30) + ") {}\n"
	text := "<<<<<<< ours\n" + wide + "=======\nfn f() {}\n>>>>>>> theirs\n"
	f, err := conflictfile.Parse(text)
	require.NoError(t, err)
	out := WriteCorrectedFile(f, map[int]bool{}, "unused")
	assert.Equal(t, text, out)
}
