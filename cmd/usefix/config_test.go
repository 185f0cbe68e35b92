package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileConfigReadsCwdFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".usefix.toml"), []byte(`
formatter = "rustfmt"
style = "diff3"
`), 0o644))

	restore := chdir(t, dir)
	defer restore()

	cfg, err := loadFileConfig()
	require.NoError(t, err)
	assert.Equal(t, "rustfmt", cfg.Formatter)
	assert.Equal(t, "diff3", cfg.Style)
}

func TestLoadFileConfigAbsentReturnsZeroValue(t *testing.T) {
	restore := chdir(t, t.TempDir())
	defer restore()

	cfg, err := loadFileConfig()
	require.NoError(t, err)
	assert.Equal(t, fileConfig{}, cfg)
}

func TestApplyFileConfigFlagTakesPrecedence(t *testing.T) {
	g := Globals{Formatter: "explicit-fmt", Style: "default"}
	applyFileConfig(&g, fileConfig{Formatter: "rustfmt", Style: "diff3"})
	assert.Equal(t, "explicit-fmt", g.Formatter)
	assert.Equal(t, "diff3", g.Style)
}

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}
