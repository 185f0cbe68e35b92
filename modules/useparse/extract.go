package useparse

import (
	"golang.org/x/sync/errgroup"

	"github.com/antgroup/usefix/modules/conflictfile"
)

// SideResult is everything recovered from one side (left/right) of a
// conflicted file: the successfully parsed items, and the set of original
// line numbers they collectively span (and should therefore be removed
// from the untouched file before the formatted replacement is spliced in).
type SideResult struct {
	Items           []ParsedItem
	DiscardedLines  map[int]bool
}

// ExtractBothSides parses the left and right derived files of a conflict in
// parallel, since the work is independent and conflicts can be large.
func ExtractBothSides(left, right *conflictfile.Derived) (SideResult, SideResult, error) {
	var leftResult, rightResult SideResult
	var g errgroup.Group
	g.Go(func() error {
		leftResult = extractSide("left", left)
		return nil
	})
	g.Go(func() error {
		rightResult = extractSide("right", right)
		return nil
	})
	if err := g.Wait(); err != nil {
		return SideResult{}, SideResult{}, err
	}
	return leftResult, rightResult, nil
}

func extractSide(side string, derived *conflictfile.Derived) SideResult {
	parsed := ParseItems(side, derived.Content)
	discarded := make(map[int]bool)
	var kept []ParsedItem
	for _, p := range parsed {
		if p.Err != nil {
			// Construction failed: drop the item silently, and leave its
			// original lines untouched rather than marking them discarded.
			continue
		}
		kept = append(kept, p)
		for derivedLine := p.StartLine; derivedLine <= p.EndLine; derivedLine++ {
			if orig, ok := derived.GetOriginalLine(derivedLine); ok {
				discarded[orig] = true
			}
		}
	}
	return SideResult{Items: kept, DiscardedLines: discarded}
}
