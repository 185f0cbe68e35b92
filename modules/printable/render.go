package printable

import (
	"sort"
	"strings"

	"github.com/antgroup/usefix/modules/usetree"
)

// sortKey is the four-axis ordering the original tool actually implements:
// crate locality, then the raw cfg-gate list, then rootedness, then the
// root identifier itself. An earlier "Sort Order" design note also
// mentioned visibility as a fifth axis, but the shipped comparator never
// consulted it — visibility plays no part in ordering here either, only in
// the printed `pub(...)` prefix.
type sortKey struct {
	locality CrateLocality
	configs  string
	rooted   bool
	ident    string
}

func less(a, b sortKey) bool {
	if a.locality != b.locality {
		return a.locality < b.locality
	}
	if a.configs != b.configs {
		return a.configs < b.configs
	}
	if a.rooted != b.rooted {
		return !a.rooted
	}
	return a.ident < b.ident
}

// isSpacedFrom reports whether a blank line should separate two
// consecutively printed statements: true whenever locality differs, or
// whenever one is conditional (non-empty cfg set) and the other isn't.
func isSpacedFrom(a, b sortKey) bool {
	return a.locality != b.locality || (a.configs == "") != (b.configs == "")
}

type statement struct {
	key     sortKey
	docs    string
	configs []string
	vis     usetree.Visibility
	rooted  bool
	path    string // rendered path expression, no "use"/";"/visibility wrapper
}

type subgroupKey struct {
	docs    string
	configs string
	vis     string
	rooted  bool
	ident   string
}

func visKey(v usetree.Visibility) string {
	if v.Kind == usetree.VisIn {
		return "in:" + v.Path.String()
	}
	switch v.Kind {
	case usetree.VisPublic:
		return "pub"
	case usetree.VisCrate:
		return "crate"
	case usetree.VisSuper:
		return "super"
	default:
		return "this"
	}
}

// Build renders every normalized group into the final ordered, spaced text
// of `use` statements ready to splice into a file.
func Build(groups []usetree.Group) string {
	subtrees := make(map[subgroupKey]*Tree)
	var order []subgroupKey
	meta := make(map[subgroupKey]statement)

	for _, g := range groups {
		for _, e := range g.Entries {
			if len(e.Item.Path) == 0 {
				continue
			}
			rootIdent := e.Item.Path[0].Raw()
			sk := subgroupKey{
				docs:    e.Props.Docs,
				configs: strings.Join(g.Configs, "\x00"),
				vis:     visKey(e.Props.Visibility),
				rooted:  e.Item.Rooted,
				ident:   rootIdent,
			}
			tree, ok := subtrees[sk]
			if !ok {
				tree = newTree()
				subtrees[sk] = tree
				order = append(order, sk)
				meta[sk] = statement{
					docs:    e.Props.Docs,
					configs: g.Configs,
					vis:     e.Props.Visibility,
					rooted:  e.Item.Rooted,
					key: sortKey{
						locality: localityOf(rootIdent),
						configs:  strings.Join(g.Configs, "\x00"),
						rooted:   e.Item.Rooted,
						ident:    rootIdent,
					},
				}
			}
			tree.Insert(e.Item.Path[1:], e.Item.Leaf)
		}
	}

	statements := make([]statement, 0, len(order))
	for _, sk := range order {
		st := meta[sk]
		st.path = subtrees[sk].Render(sk.ident)
		statements = append(statements, st)
	}
	sort.SliceStable(statements, func(i, j int) bool { return less(statements[i].key, statements[j].key) })

	var b strings.Builder
	for i, st := range statements {
		if i > 0 && isSpacedFrom(statements[i-1].key, st.key) {
			b.WriteString("\n")
		}
		writeStatement(&b, st)
	}
	return b.String()
}

func writeStatement(b *strings.Builder, st statement) {
	for _, line := range formatDoc(st.docs) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	for _, cfg := range st.configs {
		b.WriteString("#[cfg(")
		b.WriteString(cfg)
		b.WriteString(")]\n")
	}
	b.WriteString(visibilityPrefix(st.vis))
	b.WriteString("use ")
	if st.rooted {
		b.WriteString("::")
	}
	b.WriteString(st.path)
	b.WriteString(";\n")
}

func visibilityPrefix(v usetree.Visibility) string {
	switch v.Kind {
	case usetree.VisPublic:
		return "pub "
	case usetree.VisCrate:
		return "pub(crate) "
	case usetree.VisSuper:
		return "pub(super) "
	case usetree.VisIn:
		return "pub(in " + v.Path.String() + ") "
	default:
		return ""
	}
}
