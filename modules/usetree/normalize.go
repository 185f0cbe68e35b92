package usetree

import (
	"sort"
	"strings"
)

// Properties is the doc comment and visibility attached to a single
// flattened import, after merging every declaration that produced it.
type Properties struct {
	Docs       string
	Visibility Visibility
}

// Entry pairs a flattened import with its merged properties.
type Entry struct {
	Item  SingleUsedItem
	Props Properties
}

// Group is every import that shares an identical cfg-gate set.
type Group struct {
	Configs []string
	Entries []Entry
}

type groupBuilder struct {
	configs []string
	byKey   map[string]*Entry
	order   []string
}

func newGroupBuilder(configs []string) *groupBuilder {
	return &groupBuilder{configs: configs, byKey: make(map[string]*Entry)}
}

func configKey(configs []string) string {
	return strings.Join(configs, "\x00")
}

func itemKey(item SingleUsedItem) string {
	var b strings.Builder
	if item.Rooted {
		b.WriteString("R")
	}
	for _, id := range item.Path {
		b.WriteString(id.Canonical())
		b.WriteByte(0)
	}
	switch item.Leaf.Kind {
	case LeafWildcard:
		b.WriteString("*")
	case LeafUsed:
		b.WriteString("=")
	case LeafRenamed:
		b.WriteString("as:")
		b.WriteString(item.Leaf.Alias.Canonical())
	}
	return b.String()
}

func mergeDocs(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	if a == b || strings.HasPrefix(b, a) || strings.HasSuffix(b, a) {
		return b
	}
	if strings.HasPrefix(a, b) || strings.HasSuffix(a, b) {
		return a
	}
	return a + "\n" + b
}

func (g *groupBuilder) merge(flat FlattenedItem) {
	key := itemKey(flat.Item)
	if existing, ok := g.byKey[key]; ok {
		existing.Props.Docs = mergeDocs(existing.Props.Docs, flat.Docs)
		existing.Props.Visibility = MergeVisibility(existing.Props.Visibility, flat.Visibility)
		return
	}
	g.byKey[key] = &Entry{Item: flat.Item, Props: Properties{Docs: flat.Docs, Visibility: flat.Visibility}}
	g.order = append(g.order, key)
}

func (g *groupBuilder) entries() []Entry {
	out := make([]Entry, 0, len(g.order))
	for _, k := range g.order {
		out = append(out, *g.byKey[k])
	}
	return out
}

// Normalizer accumulates UseItems across an entire file and, at the end,
// produces the deduplicated, wildcard-subsumed groups ready for printing.
type Normalizer struct {
	groups     []*groupBuilder
	groupIndex map[string]*groupBuilder
}

func NewNormalizer() *Normalizer {
	return &Normalizer{groupIndex: make(map[string]*groupBuilder)}
}

// Add folds one parsed UseItem's flattened leaves into the accumulated
// groups, applying the "unconditional subsumes conditional" grouping rule:
// once any unconditional group exists, every subsequent item (conditional
// or not) merges into it; the first unconditional item seen instead
// collapses every conditional group accumulated so far into one.
func (n *Normalizer) Add(item UseItem) {
	flattened := Flatten(item)
	if len(flattened) == 0 {
		return
	}
	if uncond, ok := n.groupIndex[configKey(nil)]; ok {
		for _, f := range flattened {
			uncond.merge(f)
		}
		return
	}
	if len(item.Configs) == 0 {
		merged := newGroupBuilder(nil)
		for _, g := range n.groups {
			for _, e := range g.entries() {
				merged.merge(FlattenedItem{Item: e.Item, Docs: e.Props.Docs, Visibility: e.Props.Visibility})
			}
		}
		n.groups = []*groupBuilder{merged}
		n.groupIndex = map[string]*groupBuilder{configKey(nil): merged}
		for _, f := range flattened {
			merged.merge(f)
		}
		return
	}
	key := configKey(item.Configs)
	g, ok := n.groupIndex[key]
	if !ok {
		g = newGroupBuilder(item.Configs)
		n.groups = append(n.groups, g)
		n.groupIndex[key] = g
	}
	for _, f := range flattened {
		g.merge(f)
	}
}

// Groups returns the final groups: sorted entries per config set, with
// wildcard/discard subsumption applied as a single linear adjacent-pair
// pass over each group's sorted entries (each entry is only ever compared
// against the immediately preceding kept entry, never all prior entries).
func (n *Normalizer) Groups() []Group {
	out := make([]Group, 0, len(n.groups))
	for _, g := range n.groups {
		entries := g.entries()
		sort.Slice(entries, func(i, j int) bool { return entries[i].Item.Less(entries[j].Item) })
		kept := make([]Entry, 0, len(entries))
		for _, e := range entries {
			if len(kept) > 0 {
				last := kept[len(kept)-1]
				if e.Item.IsSubsumedBy(last.Item) && e.Props.Docs == last.Props.Docs && e.Props.Visibility.Equal(last.Props.Visibility) {
					continue
				}
			}
			kept = append(kept, e)
		}
		out = append(out, Group{Configs: g.configs, Entries: kept})
	}
	sort.Slice(out, func(i, j int) bool { return configKey(out[i].Configs) < configKey(out[j].Configs) })
	return out
}
