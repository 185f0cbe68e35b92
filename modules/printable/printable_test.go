package printable

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antgroup/usefix/modules/usetree"
)

func ident(s string) usetree.Identifier { return usetree.NewIdentifier(s) }

func usedPath(parts ...string) usetree.SingleUsedItem {
	ids := make([]usetree.Identifier, len(parts))
	for i, p := range parts {
		ids[i] = ident(p)
	}
	return usetree.SingleUsedItem{Path: ids, Leaf: usetree.UsedItemLeaf{Kind: usetree.LeafUsed}}
}

func TestContainsBalancedBlocks(t *testing.T) {
	assert.True(t, containsBalancedBlocks("plain\ntext"))
	assert.True(t, containsBalancedBlocks("has /* nested */ comment"))
	assert.False(t, containsBalancedBlocks("unbalanced */ close"))
	assert.False(t, containsBalancedBlocks("opens /* but never closes"))
}

func TestFormatDocSingleLine(t *testing.T) {
	lines := formatDoc("a single line")
	require.Len(t, lines, 1)
	assert.Equal(t, "/// a single line", lines[0])
}

func TestFormatDocMultiLineBalanced(t *testing.T) {
	lines := formatDoc("line one\nline two")
	require.Len(t, lines, 1)
	assert.Equal(t, "/** line one\nline two */", lines[0])
}

func TestFormatDocMultiLineUnbalancedFallsBackToAttr(t *testing.T) {
	lines := formatDoc("weird */ text\nsecond line")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "#[doc = "))
}

func TestTreeRenderSinglePath(t *testing.T) {
	tree := newTree()
	tree.Insert([]usetree.Identifier{ident("collections"), ident("HashMap")}, usetree.UsedItemLeaf{Kind: usetree.LeafUsed})
	assert.Equal(t, "std::collections::HashMap", tree.Render("std"))
}

func TestTreeRenderGroupsSiblings(t *testing.T) {
	tree := newTree()
	tree.Insert([]usetree.Identifier{ident("io"), ident("Read")}, usetree.UsedItemLeaf{Kind: usetree.LeafUsed})
	tree.Insert([]usetree.Identifier{ident("io"), ident("Write")}, usetree.UsedItemLeaf{Kind: usetree.LeafRenamed, Alias: ident("W")})
	assert.Equal(t, "std::io::{Read, Write as W}", tree.Render("std"))
}

func TestTreeRenderBareSelfImport(t *testing.T) {
	tree := newTree()
	tree.Insert(nil, usetree.UsedItemLeaf{Kind: usetree.LeafUsed})
	assert.Equal(t, "log", tree.Render("log"))
}

func TestTreeRenderSelfAlongsideChild(t *testing.T) {
	tree := newTree()
	tree.Insert(nil, usetree.UsedItemLeaf{Kind: usetree.LeafUsed})
	tree.Insert([]usetree.Identifier{ident("io")}, usetree.UsedItemLeaf{Kind: usetree.LeafUsed})
	assert.Equal(t, "std::{self, io}", tree.Render("std"))
}

func TestBuildOrdersStdBeforeCrate(t *testing.T) {
	groups := []usetree.Group{
		{
			Entries: []usetree.Entry{
				{Item: usedPath("crate", "widgets", "Button")},
				{Item: usedPath("std", "fmt")},
			},
		},
	}
	out := Build(groups)
	idx := func(s string) int { return strings.Index(out, s) }
	assert.True(t, idx("use std::fmt;") < idx("use crate::widgets::Button;"))
}

func TestBuildInsertsBlankLineBetweenLocalities(t *testing.T) {
	groups := []usetree.Group{
		{
			Entries: []usetree.Entry{
				{Item: usedPath("std", "fmt")},
				{Item: usedPath("crate", "widgets")},
			},
		},
	}
	out := Build(groups)
	assert.Contains(t, out, "use std::fmt;\n\nuse crate::widgets;")
}

func TestBuildKeepsDistinctCfgGroupsSeparate(t *testing.T) {
	groups := []usetree.Group{
		{
			Configs: []string{"windows"},
			Entries: []usetree.Entry{
				{Item: usedPath("foo", "bar")},
			},
		},
		{
			Configs: []string{"unix"},
			Entries: []usetree.Entry{
				{Item: usedPath("foo", "baz")},
			},
		},
	}
	out := Build(groups)
	assert.Contains(t, out, "#[cfg(windows)]\nuse foo::bar;")
	assert.Contains(t, out, "#[cfg(unix)]\nuse foo::baz;")
	assert.NotContains(t, out, "foo::{bar, baz}")
}

func TestBuildWritesCfgAndVisibility(t *testing.T) {
	groups := []usetree.Group{
		{
			Configs: []string{"feature = \"ui\""},
			Entries: []usetree.Entry{
				{Item: usedPath("crate", "widgets", "Button"), Props: usetree.Properties{Visibility: usetree.CrateVisibility()}},
			},
		},
	}
	out := Build(groups)
	assert.Contains(t, out, "#[cfg(feature = \"ui\")]\n")
	assert.Contains(t, out, "pub(crate) use crate::widgets::Button;")
}
