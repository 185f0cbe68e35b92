package printable

import (
	"sort"
	"strings"

	"github.com/antgroup/usefix/modules/usetree"
)

// Tree is a forest node built by merging every flattened import that shares
// a PrintableKey back into a single nested `use` tree for rendering.
type Tree struct {
	ThisUsage []usetree.NameUse
	Wildcard  bool
	children  map[string]*Tree
	idents    map[string]string // raw token -> raw token, as inserted
	order     []string
}

func newTree() *Tree {
	return &Tree{children: make(map[string]*Tree), idents: make(map[string]string)}
}

func (t *Tree) getOrCreateChild(raw string) *Tree {
	if c, ok := t.children[raw]; ok {
		return c
	}
	c := newTree()
	t.children[raw] = c
	t.idents[raw] = raw
	t.order = append(t.order, raw)
	return c
}

// Insert merges one flattened import's path+leaf into the tree, converting
// an already-visited bare child into a branching one transparently.
func (t *Tree) Insert(path []usetree.Identifier, leaf usetree.UsedItemLeaf) {
	if len(path) == 0 {
		t.setLeaf(leaf)
		return
	}
	child := t.getOrCreateChild(path[0].Raw())
	if len(path) == 1 {
		child.setLeaf(leaf)
		return
	}
	child.Insert(path[1:], leaf)
}

func (t *Tree) setLeaf(leaf usetree.UsedItemLeaf) {
	switch leaf.Kind {
	case usetree.LeafWildcard:
		t.Wildcard = true
	case usetree.LeafUsed:
		t.ThisUsage = append(t.ThisUsage, usetree.Used())
	case usetree.LeafRenamed:
		t.ThisUsage = append(t.ThisUsage, usetree.RenamedTo(leaf.Alias))
	}
}

func (t *Tree) sortedChildKeys() []string {
	keys := append([]string(nil), t.order...)
	sort.Slice(keys, func(i, j int) bool {
		a := strings.TrimPrefix(keys[i], "r#")
		b := strings.TrimPrefix(keys[j], "r#")
		return a < b
	})
	return keys
}

// items renders every individual import expressed at or below this node,
// in display order: self-usage first, then a wildcard, then children
// sorted by identifier.
func (t *Tree) items() []string {
	var out []string
	for _, use := range sortedNameUses(t.ThisUsage) {
		out = append(out, renderNameUse("self", use))
	}
	if t.Wildcard {
		out = append(out, "*")
	}
	for _, key := range t.sortedChildKeys() {
		child := t.children[key]
		sub := child.items()
		switch {
		case len(sub) == 1 && sub[0] == "self":
			out = append(out, key)
		case len(sub) == 1 && strings.HasPrefix(sub[0], "self as "):
			out = append(out, key+" as "+strings.TrimPrefix(sub[0], "self as "))
		case len(sub) == 1:
			out = append(out, key+"::"+sub[0])
		default:
			out = append(out, key+"::{"+strings.Join(sub, ", ")+"}")
		}
	}
	return out
}

func sortedNameUses(uses []usetree.NameUse) []usetree.NameUse {
	out := append([]usetree.NameUse(nil), uses...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind == usetree.NameUsed
		}
		if out[i].Kind == usetree.NameRenamed {
			return out[i].Alias.Less(out[j].Alias)
		}
		return false
	})
	return out
}

func renderNameUse(name string, use usetree.NameUse) string {
	if use.Kind == usetree.NameRenamed {
		return name + " as " + use.Alias.Raw()
	}
	return name
}

// Render returns the bare path expression this tree describes, without the
// `use`/visibility/`;` wrapper: e.g. `std::collections::HashMap` or
// `crate::widgets::{Button, Label as L}`. t represents everything imported
// directly under rootIdent, so a lone "self"/"self as X" entry here means
// rootIdent itself was imported bare, not that it contains a child literally
// named "self".
func (t *Tree) Render(rootIdent string) string {
	sub := t.items()
	if len(sub) == 1 {
		switch {
		case sub[0] == "self":
			return rootIdent
		case strings.HasPrefix(sub[0], "self as "):
			return rootIdent + " as " + strings.TrimPrefix(sub[0], "self as ")
		default:
			return rootIdent + "::" + sub[0]
		}
	}
	return rootIdent + "::{" + strings.Join(sub, ", ") + "}"
}
