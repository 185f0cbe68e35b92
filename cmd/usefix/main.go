// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Command usefix reads a conflicted Rust source file on stdin, merges and
// reformats any `use` import statements still carrying unresolved
// `<<<<<<<`/`=======`/`>>>>>>>` markers, and writes the corrected file to
// stdout.
package main

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/antgroup/usefix/modules/formatter"
	"github.com/antgroup/usefix/modules/rewriter"
	"github.com/antgroup/usefix/modules/trace"
	"github.com/antgroup/usefix/pkg/version"
)

// exitResidualConflict is returned when the output still contains at least
// one unresolved conflict after the fixer ran — the fixer did what it
// could, but the caller (a pre-commit hook, CI step, ...) should still
// treat the file as needing human attention.
const exitResidualConflict = 1

// Globals holds every command-line flag.
type Globals struct {
	Formatter string `name:"formatter" help:"External command to pipe the merged use-block through (e.g. rustfmt); if empty, the merged text is emitted as-is."`
	Style     string `name:"style" enum:"default,diff3" default:"default" help:"How a surviving non-import conflict is annotated; diff3 adds a wrap-width marker to wide hunks. Never affects import resolution."`
	Verbose   bool   `name:"verbose" short:"V" help:"Enable verbose debug output on stderr."`
	Version   kong.VersionFlag `name:"version" short:"v" help:"Print version information and exit."`
}

func main() {
	var g Globals
	parser := kong.Must(&g,
		kong.Name("usefix"),
		kong.Description("Resolve conflicted Rust `use` import blocks."),
		kong.Vars{"version": version.GetVersionString()},
	)
	_, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	cfg, err := loadFileConfig()
	parser.FatalIfErrorf(err)
	applyFileConfig(&g, cfg)

	os.Exit(run(&g))
}

func run(g *Globals) int {
	if g.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		logrus.Errorf("usefix: read stdin: %v", err)
		return 2
	}

	var f formatter.Formatter = formatter.Identity{}
	if g.Formatter != "" {
		f = formatter.NewSubprocess(g.Formatter)
	}

	style := rewriter.StyleDefault
	if g.Style == "diff3" {
		style = rewriter.StyleDiff3
	}

	dbg := trace.NewDebuger(g.Verbose)
	out, residual, err := fixText(context.Background(), string(input), f, style, dbg)
	if err != nil {
		logrus.Errorf("usefix: %v", err)
		return 2
	}
	if _, err := io.WriteString(os.Stdout, out); err != nil {
		logrus.Errorf("usefix: write stdout: %v", err)
		return 2
	}

	if residual {
		return exitResidualConflict
	}
	return 0
}
