package usetree

import (
	"github.com/emirpasic/gods/maps/treemap"
)

// identifierComparator orders Identifiers by their canonical form, so a
// treemap keyed by Identifier iterates in the same order as the original's
// BTreeMap<Identifier, _> regardless of which raw (`r#`-prefixed or not)
// spelling was inserted first.
func identifierComparator(a, b interface{}) int {
	ia, ib := a.(Identifier), b.(Identifier)
	switch {
	case ia.Less(ib):
		return -1
	case ib.Less(ia):
		return 1
	default:
		return 0
	}
}

// NameUseKind discriminates a plain `use` of a name from a `use ... as
// alias`.
type NameUseKind int

const (
	NameUsed NameUseKind = iota
	NameRenamed
)

// NameUse records how the name at a given tree position was actually
// imported: bare, or under an alias.
type NameUse struct {
	Kind  NameUseKind
	Alias Identifier // only meaningful when Kind == NameRenamed
}

func Used() NameUse                    { return NameUse{Kind: NameUsed} }
func RenamedTo(alias Identifier) NameUse { return NameUse{Kind: NameRenamed, Alias: alias} }

// ChildrenKind discriminates the two Children variants.
type ChildrenKind int

const (
	ChildrenWildcard ChildrenKind = iota
	ChildrenSubtrees
)

// Children is either a bare `*` wildcard import, or a set of named
// subtrees keyed by their first path segment. Subtrees is an ordered map
// (gods/maps/treemap) so every walk over a node's children visits them in
// canonical-sort order for free, rather than re-sorting a Go map's keys on
// every traversal.
type Children struct {
	Kind     ChildrenKind
	Subtrees *treemap.Map // Identifier -> *Branches, ordered by identifierComparator
}

func NewSubtrees() Children {
	return Children{
		Kind:     ChildrenSubtrees,
		Subtrees: treemap.NewWith(identifierComparator),
	}
}

func WildcardChildren() Children {
	return Children{Kind: ChildrenWildcard}
}

// Get returns the Branches for ident, creating an empty one if absent.
// Only valid when Kind == ChildrenSubtrees.
func (c *Children) Get(ident Identifier) *Branches {
	if v, ok := c.Subtrees.Get(ident); ok {
		return v.(*Branches)
	}
	b := &Branches{Children: NewSubtrees()}
	c.Subtrees.Put(ident, b)
	return b
}

// SortedIdents returns the child identifiers in canonical sort order,
// matching the BTreeMap<Identifier, _> iteration order of the original.
func (c *Children) SortedIdents() []Identifier {
	keys := c.Subtrees.Keys()
	idents := make([]Identifier, len(keys))
	for i, k := range keys {
		idents[i] = k.(Identifier)
	}
	return idents
}

// Child returns the Branches previously stored under ident via Get, or nil.
func (c *Children) Child(ident Identifier) *Branches {
	if v, ok := c.Subtrees.Get(ident); ok {
		return v.(*Branches)
	}
	return nil
}

// Branches is one node of the import tree: an optional use of "this name
// itself" (`self` or `self as X`), plus whatever hangs below it.
type Branches struct {
	Used     *NameUse
	Children Children
}

// UseItem is a single parsed `use` declaration together with the metadata
// (doc comment, cfg gate, visibility) it was written under.
type UseItem struct {
	Docs       string
	Configs    []string // sorted, deduplicated cfg predicate set; empty means unconditional
	Visibility Visibility
	Root       SimplePath
	Tree       Branches
}
