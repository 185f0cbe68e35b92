package usetree

// LeafKind orders the three ways a single flattened import can terminate.
// The order itself is load-bearing: Wildcard < Used < Renamed controls both
// sort position and which forms can subsume which.
type LeafKind int

const (
	LeafWildcard LeafKind = iota
	LeafUsed
	LeafRenamed
)

// UsedItemLeaf is the terminal element of one flattened import path.
type UsedItemLeaf struct {
	Kind  LeafKind
	Alias Identifier // only meaningful when Kind == LeafRenamed
}

func (l UsedItemLeaf) Less(other UsedItemLeaf) bool {
	if l.Kind != other.Kind {
		return l.Kind < other.Kind
	}
	if l.Kind == LeafRenamed {
		return l.Alias.Less(other.Alias)
	}
	return false
}

func (l UsedItemLeaf) Equal(other UsedItemLeaf) bool {
	if l.Kind != other.Kind {
		return false
	}
	if l.Kind == LeafRenamed {
		return l.Alias.Equal(other.Alias)
	}
	return true
}

// isDiscard reports whether the leaf renames the import to `_`, the
// convention for "bring this into scope for its side effect only".
func (l UsedItemLeaf) isDiscard() bool {
	return l.Kind == LeafRenamed && l.Alias.Canonical() == "_"
}

// subsumedByLeaf reports whether l is made redundant by the presence of
// other at the same path: a wildcard import already covers any bare or
// discarded use of a name below it, and a bare use already covers a
// discarded rename of that same name.
func (l UsedItemLeaf) subsumedByLeaf(other UsedItemLeaf) bool {
	switch other.Kind {
	case LeafWildcard:
		return l.Kind == LeafUsed || l.isDiscard()
	case LeafUsed:
		return l.isDiscard()
	default:
		return false
	}
}

// SingleUsedItem is one fully flattened import: a path plus how its final
// segment is brought into scope.
type SingleUsedItem struct {
	Rooted bool
	Path   []Identifier
	Leaf   UsedItemLeaf
}

func (s SingleUsedItem) pathEqual(other SingleUsedItem) bool {
	if s.Rooted != other.Rooted || len(s.Path) != len(other.Path) {
		return false
	}
	for i := range s.Path {
		if !s.Path[i].Equal(other.Path[i]) {
			return false
		}
	}
	return true
}

// IsSubsumedBy reports whether s is redundant given that other is also
// present: same rootedness and path, and s's leaf is subsumed by other's.
func (s SingleUsedItem) IsSubsumedBy(other SingleUsedItem) bool {
	return s.pathEqual(other) && s.Leaf.subsumedByLeaf(other.Leaf)
}

// Less provides the canonical sort order: rooted before unrooted, then
// lexicographically by path segment, then by leaf kind/alias.
func (s SingleUsedItem) Less(other SingleUsedItem) bool {
	if s.Rooted != other.Rooted {
		return s.Rooted
	}
	for i := 0; i < len(s.Path) && i < len(other.Path); i++ {
		a, b := s.Path[i], other.Path[i]
		if !a.Equal(b) {
			return a.Less(b)
		}
	}
	if len(s.Path) != len(other.Path) {
		return len(s.Path) < len(other.Path)
	}
	return s.Leaf.Less(other.Leaf)
}

// Flatten walks a UseItem's tree and produces one SingleUsedItem per leaf
// it contains, each paired with the item's doc comment and visibility.
func Flatten(item UseItem) []FlattenedItem {
	var out []FlattenedItem
	walkBranches(item.Root.Root, item.Root.Children, item.Tree, item.Docs, item.Visibility, &out)
	return out
}

// FlattenedItem is one leaf produced by Flatten, still paired with the
// per-declaration metadata it needs to merge against sibling declarations.
type FlattenedItem struct {
	Item       SingleUsedItem
	Docs       string
	Visibility Visibility
}

func walkBranches(root TreeRoot, prefix []Identifier, b Branches, docs string, vis Visibility, out *[]FlattenedItem) {
	if b.Used != nil {
		leaf := nameUseToLeaf(*b.Used)
		*out = append(*out, FlattenedItem{
			Item:       SingleUsedItem{Rooted: root.Rooted, Path: append([]Identifier(nil), prefix...), Leaf: leaf},
			Docs:       docs,
			Visibility: vis,
		})
	}
	switch b.Children.Kind {
	case ChildrenWildcard:
		*out = append(*out, FlattenedItem{
			Item:       SingleUsedItem{Rooted: root.Rooted, Path: append([]Identifier(nil), prefix...), Leaf: UsedItemLeaf{Kind: LeafWildcard}},
			Docs:       docs,
			Visibility: vis,
		})
	case ChildrenSubtrees:
		for _, ident := range b.Children.SortedIdents() {
			child := b.Children.Child(ident)
			childPrefix := append(append([]Identifier(nil), prefix...), ident)
			walkBranches(root, childPrefix, *child, docs, vis, out)
		}
	}
}

func nameUseToLeaf(n NameUse) UsedItemLeaf {
	if n.Kind == NameRenamed {
		return UsedItemLeaf{Kind: LeafRenamed, Alias: n.Alias}
	}
	return UsedItemLeaf{Kind: LeafUsed}
}
