package printable

import (
	"fmt"
	"strconv"
	"strings"
)

// formatDoc renders a merged doc comment string back into Rust source
// form. A single-line doc becomes `///`. A multi-line doc becomes a block
// `/** */` comment if its text never unbalances a `/* */` nesting scan;
// otherwise it falls back to an attribute form (`#[doc = "..."]`) so an
// embedded `*/`-like sequence can't prematurely close the block comment.
func formatDoc(doc string) []string {
	if doc == "" {
		return nil
	}
	if !strings.Contains(doc, "\n") {
		return []string{"/// " + doc}
	}
	if containsBalancedBlocks(doc) {
		return []string{"/** " + doc + " */"}
	}
	return []string{fmt.Sprintf("#[doc = %s]", strconv.Quote(doc))}
}

// containsBalancedBlocks scans text as if it were already nested inside a
// `/* */` block comment, tracking additional `/*`/`*/` nesting depth. It
// must return to exactly zero and never go negative for the text to be
// safely embeddable inside a single block comment.
func containsBalancedBlocks(text string) bool {
	depth := 0
	for i := 0; i+1 < len(text); i++ {
		switch text[i : i+2] {
		case "/*":
			depth++
			i++
		case "*/":
			depth--
			if depth < 0 {
				return false
			}
			i++
		}
	}
	return depth == 0
}
