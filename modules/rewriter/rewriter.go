// Package rewriter splices newly formatted text back into a file that may
// still contain unresolved conflict markers, replacing exactly the
// original lines that were successfully parsed and reformatted while
// leaving everything else — including conflicts no import was found
// inside — untouched.
package rewriter

import (
	"strings"

	"github.com/antgroup/usefix/modules/conflictfile"
)

// InsertKind discriminates the three places corrected text can go.
type InsertKind int

const (
	Nowhere InsertKind = iota
	Once
	IntoConflict
)

// InsertPoint locates where the formatted replacement text belongs: nowhere
// (nothing was discarded), at a single original line, or at one line in a
// left half and one line in a right half (of the same conflict, or of two
// different conflicts).
type InsertPoint struct {
	Kind      InsertKind
	Line      int // valid for Once and as the left line for IntoConflict
	RightLine int // valid for IntoConflict only
}

// FindInsertPoint scans the file's chunks in order. A plain line containing
// a discarded line immediately fixes the point. Inside a conflict, the
// first discarded line on each half is noted independently; if some single
// conflict has a discarded line on BOTH halves, that conflict is the
// answer immediately. Otherwise the first left-only and first right-only
// points ever seen (possibly in different conflicts) are combined once the
// whole file has been scanned.
func FindInsertPoint(file *conflictfile.File, discarded map[int]bool) InsertPoint {
	var leftOnly, rightOnly *int
	for _, c := range file.Chunks {
		switch c.Kind {
		case conflictfile.ChunkLine:
			if discarded[c.Line.LineNumber] {
				return InsertPoint{Kind: Once, Line: c.Line.LineNumber}
			}
		case conflictfile.ChunkConflict:
			left := firstDiscardedLine(c.Conflict.Left.Lines, discarded)
			right := firstDiscardedLine(c.Conflict.Right.Lines, discarded)
			if left != nil && right != nil {
				return InsertPoint{Kind: IntoConflict, Line: *left, RightLine: *right}
			}
			if left != nil && leftOnly == nil {
				leftOnly = left
			}
			if right != nil && rightOnly == nil {
				rightOnly = right
			}
		}
	}
	switch {
	case leftOnly != nil && rightOnly != nil:
		return InsertPoint{Kind: IntoConflict, Line: *leftOnly, RightLine: *rightOnly}
	case leftOnly != nil:
		return InsertPoint{Kind: Once, Line: *leftOnly}
	case rightOnly != nil:
		return InsertPoint{Kind: Once, Line: *rightOnly}
	default:
		return InsertPoint{Kind: Nowhere}
	}
}

func firstDiscardedLine(lines []conflictfile.Line, discarded map[int]bool) *int {
	for _, l := range lines {
		if discarded[l.LineNumber] {
			n := l.LineNumber
			return &n
		}
	}
	return nil
}

func findSplitIndex(lines []conflictfile.Line, lineNumber int) int {
	for i, l := range lines {
		if l.LineNumber == lineNumber {
			return i
		}
	}
	return -1
}

// trySplitConflict splits a conflict's two halves at the given line
// numbers (one per half) into top/bottom pairs. It only succeeds when both
// line numbers are actually found within this particular conflict.
func trySplitConflict(c conflictfile.Conflict, leftLine, rightLine int) (topLeft, bottomLeft, topRight, bottomRight []conflictfile.Line, ok bool) {
	li := findSplitIndex(c.Left.Lines, leftLine)
	ri := findSplitIndex(c.Right.Lines, rightLine)
	if li < 0 || ri < 0 {
		return nil, nil, nil, nil, false
	}
	return c.Left.Lines[:li], c.Left.Lines[li+1:], c.Right.Lines[:ri], c.Right.Lines[ri+1:], true
}

// WriteCorrectedFile produces the final text: every discarded original
// line is dropped, and the formatted replacement text is spliced in at the
// insertion point the discarded set implies (twice when that point names
// lines in two different conflicts; not at all for Nowhere).
func WriteCorrectedFile(file *conflictfile.File, discarded map[int]bool, formatted string) string {
	return WriteCorrectedFileStyled(file, discarded, formatted, StyleDefault)
}

// WriteCorrectedFileStyled is WriteCorrectedFile with control over how a
// surviving non-import conflict is annotated.
func WriteCorrectedFileStyled(file *conflictfile.File, discarded map[int]bool, formatted string, style Style) string {
	point := FindInsertPoint(file, discarded)
	var b strings.Builder
	inserted := false

	i := 0
	for ; i < len(file.Chunks); i++ {
		c := file.Chunks[i]
		switch c.Kind {
		case conflictfile.ChunkLine:
			if point.Kind == Once && c.Line.LineNumber == point.Line {
				b.WriteString(formatted)
				inserted = true
				goto secondPass
			}
			if discarded[c.Line.LineNumber] {
				continue
			}
			b.WriteString(c.Line.Content)
		case conflictfile.ChunkConflict:
			if point.Kind == IntoConflict {
				if topL, botL, topR, botR, ok := trySplitConflict(c.Conflict, point.Line, point.RightLine); ok {
					writeConflictLines(&b, c.Conflict.Left.Name, c.Conflict.Right.Name, topL, topR, nil, style)
					b.WriteString(formatted)
					writeConflictLines(&b, c.Conflict.Left.Name, c.Conflict.Right.Name, botL, botR, discarded, style)
					inserted = true
					goto secondPass
				}
			}
			writeConflictInjecting(&b, c.Conflict, discarded, point, &inserted, formatted, style)
		}
	}

secondPass:
	for i++; i < len(file.Chunks); i++ {
		c := file.Chunks[i]
		switch c.Kind {
		case conflictfile.ChunkLine:
			if discarded[c.Line.LineNumber] {
				continue
			}
			b.WriteString(c.Line.Content)
		case conflictfile.ChunkConflict:
			writeConflictLines(&b, c.Conflict.Left.Name, c.Conflict.Right.Name,
				filterLines(c.Conflict.Left.Lines, discarded), filterLines(c.Conflict.Right.Lines, discarded), nil, style)
		}
	}

	_ = inserted
	return b.String()
}

func filterLines(lines []conflictfile.Line, discarded map[int]bool) []conflictfile.Line {
	if discarded == nil {
		return lines
	}
	out := make([]conflictfile.Line, 0, len(lines))
	for _, l := range lines {
		if discarded[l.LineNumber] {
			continue
		}
		out = append(out, l)
	}
	return out
}

// writeConflictInjecting handles a conflict chunk that the IntoConflict
// split did not take: it filters discarded lines from both halves and
// substitutes the formatted text at the insertion line. For a Once point
// that is the single insertion line; for an IntoConflict point whose two
// lines lie in different conflicts, the formatted text goes in at each of
// them (once in a left half, once in a right half).
func writeConflictInjecting(b *strings.Builder, c conflictfile.Conflict, discarded map[int]bool, point InsertPoint, inserted *bool, formatted string, style Style) {
	inject := func(lines []conflictfile.Line) []conflictfile.Line {
		out := make([]conflictfile.Line, 0, len(lines))
		for _, l := range lines {
			atOnce := point.Kind == Once && l.LineNumber == point.Line && !*inserted
			atEither := point.Kind == IntoConflict && (l.LineNumber == point.Line || l.LineNumber == point.RightLine)
			if atOnce || atEither {
				out = append(out, conflictfile.Line{Content: formatted, LineNumber: l.LineNumber})
				*inserted = true
				continue
			}
			if discarded[l.LineNumber] {
				continue
			}
			out = append(out, l)
		}
		return out
	}
	left := inject(c.Left.Lines)
	right := inject(c.Right.Lines)
	writeConflictLines(b, c.Left.Name, c.Right.Name, left, right, nil, style)
}

// writeConflictLines writes a conflict region given its two (already
// filtered) halves: if they're textually identical, the conflict has
// become moot and only the left side is written, unmarked. discarded, if
// non-nil, is applied as an extra filter pass first (used by the
// split-conflict "bottom" half, which may still contain unrelated
// discarded lines).
func writeConflictLines(b *strings.Builder, leftName, rightName string, left, right []conflictfile.Line, discarded map[int]bool, style Style) {
	left = filterLines(left, discarded)
	right = filterLines(right, discarded)
	if linesEqual(left, right) {
		for _, l := range left {
			b.WriteString(l.Content)
		}
		return
	}
	annotation := ""
	if style == StyleDiff3 {
		annotation = wrapIndicator(append(lineContents(left), lineContents(right)...))
	}
	b.WriteString("<<<<<<< ")
	b.WriteString(leftName)
	b.WriteString(annotation)
	b.WriteString("\n")
	for _, l := range left {
		b.WriteString(l.Content)
	}
	b.WriteString("=======\n")
	for _, l := range right {
		b.WriteString(l.Content)
	}
	b.WriteString(">>>>>>> ")
	b.WriteString(rightName)
	b.WriteString("\n")
}

func lineContents(lines []conflictfile.Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Content
	}
	return out
}

func linesEqual(a, b []conflictfile.Line) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Content != b[i].Content {
			return false
		}
	}
	return true
}
