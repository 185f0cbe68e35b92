// Package conflictfile parses a text file that may contain unresolved git
// merge conflict markers, and reconstructs either side of the conflict as an
// independent "derived" file together with a line-number mapping back to the
// original.
package conflictfile

import (
	"fmt"
	"strings"
)

// Side selects which half of a conflict to read.
type Side int

const (
	Left Side = iota
	Right
)

const (
	markerHeader = "<<<<<<<"
	markerSep    = "======="
	markerFooter = ">>>>>>>"
)

// ErrBadMarker reports a conflict marker that could not be matched with its
// counterpart (an opened conflict that never hit "=======", or one that never
// hit ">>>>>>>" before EOF).
type ErrBadMarker struct {
	Line int
	Msg  string
}

func (e *ErrBadMarker) Error() string {
	return fmt.Sprintf("conflictfile: line %d: %s", e.Line, e.Msg)
}

// Line is one line of the original file, 1-indexed.
type Line struct {
	Content    string
	LineNumber int
}

// ConflictHalf is one side of a conflict region.
type ConflictHalf struct {
	Name  string
	Lines []Line
}

// Conflict is a single `<<<<<<< ... ======= ... >>>>>>> ...` region.
type Conflict struct {
	Left  ConflictHalf
	Right ConflictHalf
}

// ChunkKind discriminates the two Chunk variants.
type ChunkKind int

const (
	ChunkLine ChunkKind = iota
	ChunkConflict
)

// Chunk is a closed sum: either a single plain Line, or a Conflict.
type Chunk struct {
	Kind     ChunkKind
	Line     Line
	Conflict Conflict
}

// File is a fully parsed, possibly-conflicted text file.
type File struct {
	Chunks []Chunk
}

// ContainsConflict reports whether any chunk is a conflict region.
func (f *File) ContainsConflict() bool {
	for _, c := range f.Chunks {
		if c.Kind == ChunkConflict {
			return true
		}
	}
	return false
}

// Lines returns every line belonging to one side of the file: plain lines
// verbatim, plus the chosen half of every conflict.
func (f *File) Lines(side Side) []Line {
	lines := make([]Line, 0, len(f.Chunks))
	for _, c := range f.Chunks {
		switch c.Kind {
		case ChunkLine:
			lines = append(lines, c.Line)
		case ChunkConflict:
			half := c.Conflict.Left
			if side == Right {
				half = c.Conflict.Right
			}
			lines = append(lines, half.Lines...)
		}
	}
	return lines
}

// Derived is one side of a conflicted file, reconstructed as contiguous
// text, along with a map from its own (derived) line numbers back to the
// corresponding line number in the original conflicted file.
type Derived struct {
	Content      string
	lineMappings map[int]int
}

// GetOriginalLine maps a 1-indexed line of the derived text back to the
// original file's line number.
func (d *Derived) GetOriginalLine(derivedLine int) (int, bool) {
	n, ok := d.lineMappings[derivedLine]
	return n, ok
}

// BuildDerived concatenates one side of the file into a standalone text,
// recording the derived->original line map as it goes.
func (f *File) BuildDerived(side Side) *Derived {
	var b strings.Builder
	mapping := make(map[int]int)
	derivedLine := 1
	for _, line := range f.Lines(side) {
		mapping[derivedLine] = line.LineNumber
		b.WriteString(line.Content)
		derivedLine++
	}
	return &Derived{Content: b.String(), lineMappings: mapping}
}

// splitLines splits text into lines, each retaining its trailing "\n" (the
// final line may lack one). Mirrors the manual, bufio.Scanner-free
// line-splitting style used elsewhere in this codebase for diff/merge text.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	var lines []string
	for {
		idx := strings.IndexByte(text, '\n')
		if idx < 0 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:idx+1])
		text = text[idx+1:]
		if text == "" {
			break
		}
	}
	return lines
}

// Parse scans text into a sequence of Chunks. Conflict markers are only
// recognized at the start of a line; a header/footer may carry a trailing
// branch name, the separator may not.
func Parse(text string) (*File, error) {
	rawLines := splitLines(text)
	chunks := make([]Chunk, 0, len(rawLines))
	lineNumber := 1
	i := 0
	for i < len(rawLines) {
		raw := rawLines[i]
		if name, ok := matchMarker(raw, markerHeader); ok {
			conflict, consumed, err := parseConflict(rawLines, i, lineNumber, name)
			if err != nil {
				return nil, err
			}
			chunks = append(chunks, Chunk{Kind: ChunkConflict, Conflict: *conflict})
			lineNumber += consumed
			i += consumed
			continue
		}
		chunks = append(chunks, Chunk{Kind: ChunkLine, Line: Line{Content: raw, LineNumber: lineNumber}})
		lineNumber++
		i++
	}
	return &File{Chunks: chunks}, nil
}

// matchMarker reports whether raw (including its trailing newline) begins
// with marker at line-start, and if so returns the trimmed trailing text.
func matchMarker(raw, marker string) (string, bool) {
	if !strings.HasPrefix(raw, marker) {
		return "", false
	}
	rest := raw[len(marker):]
	trimmed := strings.TrimRight(rest, "\r\n")
	if trimmed != "" && !strings.HasPrefix(trimmed, " ") {
		// A line that merely starts with the marker bytes but continues with
		// something else (e.g. a longer run of `<`) is not a marker.
		return "", false
	}
	return strings.TrimSpace(trimmed), true
}

// parseConflict parses a single conflict region starting at rawLines[start],
// which must already be a recognized header line. Returns the parsed
// conflict and the number of raw lines consumed (header + both halves +
// separator + footer).
func parseConflict(rawLines []string, start, headerLineNumber int, leftName string) (*Conflict, int, error) {
	i := start + 1
	lineNumber := headerLineNumber + 1
	var leftLines []Line
	for {
		if i >= len(rawLines) {
			return nil, 0, &ErrBadMarker{Line: headerLineNumber, Msg: "conflict opened with '<<<<<<<' but never closed with '======='"}
		}
		raw := rawLines[i]
		if isExactSeparator(raw) {
			i++
			lineNumber++
			break
		}
		leftLines = append(leftLines, Line{Content: raw, LineNumber: lineNumber})
		i++
		lineNumber++
	}

	var rightLines []Line
	var rightName string
	for {
		if i >= len(rawLines) {
			return nil, 0, &ErrBadMarker{Line: headerLineNumber, Msg: "conflict opened with '<<<<<<<' but never closed with '>>>>>>>'"}
		}
		raw := rawLines[i]
		if name, ok := matchMarker(raw, markerFooter); ok {
			rightName = name
			i++
			lineNumber++
			break
		}
		rightLines = append(rightLines, Line{Content: raw, LineNumber: lineNumber})
		i++
		lineNumber++
	}

	return &Conflict{
		Left:  ConflictHalf{Name: leftName, Lines: leftLines},
		Right: ConflictHalf{Name: rightName, Lines: rightLines},
	}, i - start, nil
}

func isExactSeparator(raw string) bool {
	return strings.TrimRight(raw, "\r\n") == markerSep
}
