package rewriter

import (
	"strconv"

	"github.com/rivo/uniseg"
)

// Style selects how a surviving, truly unresolvable conflict region (never
// an import region — those always collapse to a single union) is annotated
// in the output. It has no effect on import handling.
type Style int

const (
	StyleDefault Style = iota
	StyleDiff3
)

// maxMarkerWidth is the display-column budget before a diff3-style marker
// gets a wrap-indicator comment, so a reviewer scanning wide terminal
// output knows the hunk carries content past the visible width.
const maxMarkerWidth = 100

// wrapIndicator returns a trailing comment noting a conflict hunk's widest
// line once it exceeds maxMarkerWidth, measured in terminal display columns
// (uniseg.StringWidth, which accounts for wide CJK-style runes and
// zero-width combining marks) rather than bytes or runes, so multi-byte
// identifiers don't trigger false positives. Returns "" when no line is
// wide enough to warrant one.
func wrapIndicator(lines []string) string {
	widest := 0
	for _, l := range lines {
		if w := uniseg.StringWidth(l); w > widest {
			widest = w
		}
	}
	if widest <= maxMarkerWidth {
		return ""
	}
	return " // " + strconv.Itoa(widest) + " cols"
}
