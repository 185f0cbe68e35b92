package main

import (
	"context"

	"github.com/antgroup/usefix/modules/conflictfile"
	"github.com/antgroup/usefix/modules/formatter"
	"github.com/antgroup/usefix/modules/printable"
	"github.com/antgroup/usefix/modules/rewriter"
	"github.com/antgroup/usefix/modules/trace"
	"github.com/antgroup/usefix/modules/useparse"
	"github.com/antgroup/usefix/modules/usetree"
)

// fixText runs the full pipeline — parse, extract, normalize, print,
// format, splice — over one file's text and reports whether the result
// still contains an unresolved conflict. style only affects how a
// surviving non-import conflict is annotated; the import union itself is
// unaffected. dbg receives progress tracing; pass a non-verbose Debuger to
// silence it.
func fixText(ctx context.Context, input string, f formatter.Formatter, style rewriter.Style, dbg trace.Debuger) (output string, residualConflict bool, err error) {
	file, err := conflictfile.Parse(input)
	if err != nil {
		return "", false, err
	}
	if !file.ContainsConflict() {
		return input, false, nil
	}

	leftDerived := file.BuildDerived(conflictfile.Left)
	rightDerived := file.BuildDerived(conflictfile.Right)

	leftResult, rightResult, err := useparse.ExtractBothSides(leftDerived, rightDerived)
	if err != nil {
		return "", false, err
	}

	discarded := make(map[int]bool)
	normalizer := usetree.NewNormalizer()
	for _, side := range []useparse.SideResult{leftResult, rightResult} {
		for _, item := range side.Items {
			normalizer.Add(item.Item)
		}
		for line := range side.DiscardedLines {
			discarded[line] = true
		}
	}

	merged := printable.Build(normalizer.Groups())
	dbg.DbgPrint("running formatter on %d bytes of merged imports", len(merged))
	formatted, err := f.Format(ctx, merged)
	if err != nil {
		return "", false, err
	}

	out := rewriter.WriteCorrectedFileStyled(file, discarded, formatted, style)
	return out, stillConflicted(out), nil
}

func stillConflicted(text string) bool {
	f, err := conflictfile.Parse(text)
	if err != nil {
		return true
	}
	return f.ContainsConflict()
}
