package main

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// fileConfig is the shape of an optional `.usefix.toml`, searched for first
// in the current directory and then in $HOME, giving project- or
// user-level defaults for flags the caller didn't set explicitly.
type fileConfig struct {
	Formatter string `toml:"formatter"`
	Style     string `toml:"style"`
}

// loadFileConfig reads the first `.usefix.toml` found, or returns a zero
// fileConfig if none exists. A malformed file is reported as an error
// rather than silently ignored, so a typo in the config doesn't silently
// fall back to "no formatter".
func loadFileConfig() (fileConfig, error) {
	for _, dir := range configSearchDirs() {
		path := filepath.Join(dir, ".usefix.toml")
		if _, err := os.Stat(path); err != nil {
			continue
		}
		var cfg fileConfig
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return fileConfig{}, err
		}
		return cfg, nil
	}
	return fileConfig{}, nil
}

func configSearchDirs() []string {
	var dirs []string
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	return dirs
}

// applyFileConfig fills in Formatter when it is empty, and Style when it is
// empty or "default", with the config file's corresponding value. Any other
// flag value wins; an explicit --style=default cannot be told apart from
// kong's default and is overridden by a config file style.
func applyFileConfig(g *Globals, cfg fileConfig) {
	if g.Formatter == "" {
		g.Formatter = cfg.Formatter
	}
	if g.Style == "" || g.Style == "default" {
		if cfg.Style != "" {
			g.Style = cfg.Style
		}
	}
}
