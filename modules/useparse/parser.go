package useparse

import (
	"sort"
	"strings"

	"github.com/antgroup/usefix/modules/usetree"
)

// ParsedItem is one `use` declaration recovered from a derived file, or a
// record of why one couldn't be constructed. StartLine/EndLine are 1-indexed
// positions within the derived text (the same numbering BuildDerived uses),
// spanning from the first doc-comment/attribute line through the
// terminating `;`.
type ParsedItem struct {
	Item      usetree.UseItem
	StartLine int
	EndLine   int
	Err       error
}

// ParseItems scans derived text — the reconstructed content of one side of
// a conflict — for a sequence of doc-commented, attributed `use`
// declarations. Lines that don't belong to any recognizable item are
// skipped, together with any block they open; a `use` item whose grammar doesn't parse is reported via Err but
// does not abort the scan of the rest of the file.
func ParseItems(side string, text string) []ParsedItem {
	s := newScanner(text)
	var out []ParsedItem
	for {
		s.skipSpaceAndComments()
		if s.eof() {
			break
		}
		startLine := s.line
		item, ok, err := parseOneItem(side, s)
		if !ok && err == nil {
			// Not a `use` item at all (stray non-import content); skip this
			// line and, when it opens a block, every line up to the one that
			// closes it, so a `use` nested in a block is never taken for a
			// top-level item. Braces are counted as plain characters.
			depth := 0
			for {
				line := s.readRestOfLine()
				depth += strings.Count(line, "{") - strings.Count(line, "}")
				if depth <= 0 || s.eof() {
					break
				}
			}
			continue
		}
		endLine := s.line
		if err != nil {
			out = append(out, ParsedItem{StartLine: startLine, EndLine: endLine, Err: err})
			continue
		}
		out = append(out, ParsedItem{Item: item, StartLine: startLine, EndLine: endLine})
	}
	return out
}

// parseOneItem attempts to consume one trivia-then-`use` item starting at
// the scanner's current position. ok is false (with a nil error) when the
// current position isn't the start of a `use` item at all.
func parseOneItem(side string, s *scanner) (usetree.UseItem, bool, error) {
	docs, configs, vis, hasUse, attrErr := collectTrivia(side, s)
	if !hasUse {
		return usetree.UseItem{}, false, nil
	}
	rooted := s.consumePrefix("::")
	s.skipSpaceAndComments()
	ident, node, err := parseTree(side, s)
	if err != nil {
		return usetree.UseItem{}, true, err
	}
	s.skipSpaceAndComments()
	if s.peekByte() != ';' {
		return usetree.UseItem{}, true, &ErrSyntax{Side: side, Line: s.line, Col: s.col, Msg: "expected ';' to terminate use item"}
	}
	s.advance()
	if attrErr != nil {
		// The failed item has been consumed through its `;`, so none of its
		// lines are picked up again as a separate item.
		return usetree.UseItem{}, true, attrErr
	}

	sort.Strings(configs)
	configs = dedupSorted(configs)

	item := usetree.UseItem{
		Docs:       docs,
		Configs:    configs,
		Visibility: vis,
		Root:       usetree.SimplePath{Root: usetree.TreeRoot{Rooted: rooted}},
		Tree:       singleChild(ident, node),
	}
	return item, true, nil
}

func dedupSorted(items []string) []string {
	if len(items) == 0 {
		return items
	}
	out := items[:1]
	for _, it := range items[1:] {
		if it != out[len(out)-1] {
			out = append(out, it)
		}
	}
	return out
}

// collectTrivia gathers the doc comments and `#[cfg(...)]`/`#[doc = "..."]`
// attributes and optional `pub(...)` visibility immediately preceding a
// `use` keyword. hasUse is false if this position never reaches a `use`
// keyword (i.e. isn't an importable item at all). An attribute that is
// neither a recognized `cfg` nor `doc` form fails construction of the whole
// item: err is set (for the first such attribute), collection goes on to the
// `use` keyword so the caller can consume the whole item, and the item must
// be dropped with its lines left intact.
func collectTrivia(side string, s *scanner) (docs string, configs []string, vis usetree.Visibility, hasUse bool, err error) {
	vis = usetree.ThisVisibility()
	var docLines []string
	for {
		s.skipSpaceAndComments()
		switch {
		case s.hasPrefix("///"):
			s.consumePrefix("///")
			if s.peekByte() == ' ' {
				s.advance()
			}
			docLines = append(docLines, s.readRestOfLine())
			continue
		case s.hasPrefix("//!"):
			s.consumePrefix("//!")
			if s.peekByte() == ' ' {
				s.advance()
			}
			docLines = append(docLines, s.readRestOfLine())
			continue
		case s.hasPrefix("/**"):
			s.consumePrefix("/**")
			var b strings.Builder
			for !s.eof() && !s.hasPrefix("*/") {
				b.WriteByte(s.advance())
			}
			s.consumePrefix("*/")
			docLines = append(docLines, strings.TrimSpace(b.String()))
			continue
		case s.hasPrefix("#["):
			attrLine, attrCol := s.line, s.col
			s.consumePrefix("#[")
			attr := readUntilMatchingBracket(s)
			if cfg, ok := parseCfgAttr(attr); ok {
				configs = append(configs, cfg)
			} else if doc, ok := parseDocAttr(attr); ok {
				docLines = append(docLines, doc)
			} else if err == nil {
				err = &ErrSyntax{Side: side, Line: attrLine, Col: attrCol, Msg: "unrecognized attribute: #[" + attr + "]"}
			}
			continue
		}
		break
	}
	docs = strings.Join(docLines, "\n")

	s.skipSpaceAndComments()
	if s.consumePrefix("pub") {
		s.skipSpaceAndComments()
		if s.peekByte() == '(' {
			s.advance()
			s.skipSpaceAndComments()
			switch {
			case s.consumePrefix("crate"):
				vis = usetree.CrateVisibility()
			case s.consumePrefix("super"):
				vis = usetree.SuperVisibility()
			case s.consumePrefix("self"):
				vis = usetree.ThisVisibility()
			case s.consumePrefix("in "):
				s.skipSpaceAndComments()
				path := parseSimplePath(s)
				vis = usetree.InVisibility(path)
			}
			s.skipSpaceAndComments()
			if s.peekByte() == ')' {
				s.advance()
			}
		} else {
			vis = usetree.PublicVisibility()
		}
		s.skipSpaceAndComments()
	}

	if !s.consumePrefix("use") {
		return docs, configs, vis, false, err
	}
	s.skipSpaceAndComments()
	return docs, configs, vis, true, err
}

func readUntilMatchingBracket(s *scanner) string {
	depth := 1
	start := s.pos
	for !s.eof() {
		b := s.peekByte()
		if b == '[' {
			depth++
		} else if b == ']' {
			depth--
			if depth == 0 {
				content := s.text[start:s.pos]
				s.advance()
				return content
			}
		}
		s.advance()
	}
	return s.text[start:s.pos]
}

func parseCfgAttr(attr string) (string, bool) {
	attr = strings.TrimSpace(attr)
	if !strings.HasPrefix(attr, "cfg(") || !strings.HasSuffix(attr, ")") {
		return "", false
	}
	return strings.TrimSpace(attr[len("cfg(") : len(attr)-1]), true
}

func parseDocAttr(attr string) (string, bool) {
	attr = strings.TrimSpace(attr)
	if !strings.HasPrefix(attr, "doc") {
		return "", false
	}
	attr = strings.TrimSpace(attr[len("doc"):])
	if !strings.HasPrefix(attr, "=") {
		return "", false
	}
	attr = strings.TrimSpace(attr[1:])
	return unescapeRustString(attr), true
}

func unescapeRustString(lit string) string {
	lit = strings.TrimSpace(lit)
	lit = strings.TrimPrefix(lit, "\"")
	lit = strings.TrimSuffix(lit, "\"")
	var b strings.Builder
	for i := 0; i < len(lit); i++ {
		if lit[i] == '\\' && i+1 < len(lit) {
			i++
			switch lit[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			default:
				b.WriteByte(lit[i])
			}
			continue
		}
		b.WriteByte(lit[i])
	}
	return b.String()
}

func parseIdentRaw(s *scanner) string {
	start := s.pos
	if s.hasPrefix("r#") {
		s.advance()
		s.advance()
	}
	for !s.eof() && isIdentCont(s.peekByte()) {
		s.advance()
	}
	return s.text[start:s.pos]
}

func parseSimplePath(s *scanner) usetree.SimplePath {
	rooted := s.consumePrefix("::")
	var children []usetree.Identifier
	for {
		s.skipSpaceAndComments()
		if s.eof() || !isIdentStart(s.peekByte()) {
			break
		}
		children = append(children, usetree.NewIdentifier(parseIdentRaw(s)))
		s.skipSpaceAndComments()
		if !s.consumePrefix("::") {
			break
		}
	}
	return usetree.SimplePath{Root: usetree.TreeRoot{Rooted: rooted}, Children: children}
}

// parseTree recursively parses the portion of a use-tree following an
// already-consumed leading path segment's `::`, or the top-level tree of a
// whole `use` item. It returns the first identifier encountered and
// everything nested beneath it.
func parseTree(side string, s *scanner) (usetree.Identifier, usetree.Branches, error) {
	s.skipSpaceAndComments()
	if !isIdentStart(s.peekByte()) {
		return usetree.Identifier{}, usetree.Branches{}, &ErrSyntax{Side: side, Line: s.line, Col: s.col, Msg: "expected identifier in use tree"}
	}
	ident := usetree.NewIdentifier(parseIdentRaw(s))
	s.skipSpaceAndComments()
	if s.consumePrefix("::") {
		s.skipSpaceAndComments()
		if s.consumePrefix("*") {
			return ident, usetree.Branches{Children: usetree.WildcardChildren()}, nil
		}
		if s.peekByte() == '{' {
			grp, err := parseGroup(side, s)
			if err != nil {
				return usetree.Identifier{}, usetree.Branches{}, err
			}
			return ident, grp, nil
		}
		nestedIdent, nestedNode, err := parseTree(side, s)
		if err != nil {
			return usetree.Identifier{}, usetree.Branches{}, err
		}
		return ident, singleChild(nestedIdent, nestedNode), nil
	}
	leaf := usetree.Used()
	s.skipSpaceAndComments()
	if s.consumePrefix("as") {
		s.skipSpaceAndComments()
		if !isIdentStart(s.peekByte()) {
			return usetree.Identifier{}, usetree.Branches{}, &ErrSyntax{Side: side, Line: s.line, Col: s.col, Msg: "expected identifier after 'as'"}
		}
		alias := usetree.NewIdentifier(parseIdentRaw(s))
		leaf = usetree.RenamedTo(alias)
	}
	return ident, usetree.Branches{Used: ptrNameUse(leaf)}, nil
}

// parseGroup parses a brace-delimited list of use-tree entries, including
// the special `self`/`self as X` entry which attaches to the group's own
// node rather than becoming a keyed child.
func parseGroup(side string, s *scanner) (usetree.Branches, error) {
	s.advance() // '{'
	result := usetree.Branches{Children: usetree.NewSubtrees()}
	for {
		s.skipSpaceAndComments()
		if s.peekByte() == '}' {
			s.advance()
			return result, nil
		}
		if s.eof() {
			return usetree.Branches{}, &ErrSyntax{Side: side, Line: s.line, Col: s.col, Msg: "unterminated use tree group"}
		}
		if s.hasPrefix("self") && !isIdentCont(s.peekAt(4)) {
			s.consumePrefix("self")
			leaf := usetree.Used()
			s.skipSpaceAndComments()
			if s.consumePrefix("as") {
				s.skipSpaceAndComments()
				alias := usetree.NewIdentifier(parseIdentRaw(s))
				leaf = usetree.RenamedTo(alias)
			}
			result.Used = ptrNameUse(leaf)
		} else {
			ident, node, err := parseTree(side, s)
			if err != nil {
				return usetree.Branches{}, err
			}
			mergeChild(&result.Children, ident, node)
		}
		s.skipSpaceAndComments()
		if s.peekByte() == ',' {
			s.advance()
			continue
		}
		s.skipSpaceAndComments()
		if s.peekByte() == '}' {
			s.advance()
			return result, nil
		}
		return usetree.Branches{}, &ErrSyntax{Side: side, Line: s.line, Col: s.col, Msg: "expected ',' or '}' in use tree group"}
	}
}

func singleChild(ident usetree.Identifier, node usetree.Branches) usetree.Branches {
	c := usetree.NewSubtrees()
	c.Get(ident)
	mergeChild(&c, ident, node)
	return usetree.Branches{Children: c}
}

func mergeChild(children *usetree.Children, ident usetree.Identifier, node usetree.Branches) {
	dst := children.Get(ident)
	mergeBranchesInto(dst, node)
}

func mergeBranchesInto(dst *usetree.Branches, src usetree.Branches) {
	if src.Used != nil {
		dst.Used = src.Used
	}
	switch src.Children.Kind {
	case usetree.ChildrenWildcard:
		dst.Children = src.Children
	case usetree.ChildrenSubtrees:
		if dst.Children.Kind != usetree.ChildrenSubtrees {
			dst.Children = usetree.NewSubtrees()
		}
		for _, id := range src.Children.SortedIdents() {
			childSrc := src.Children.Child(id)
			childDst := dst.Children.Get(id)
			mergeBranchesInto(childDst, *childSrc)
		}
	}
}

func ptrNameUse(n usetree.NameUse) *usetree.NameUse { return &n }
