/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package shorten provides the shorten command: rewrite verbose component
// names in input files to their shortest aliases (spec's §9 open question,
// resolved to also rewrite templated "g!...;" occurrences).
package shorten

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"grimoirecss.dev/grimoire/component"
	"grimoirecss.dev/grimoire/config"
	"grimoirecss.dev/grimoire/extractor"
	"grimoirecss.dev/grimoire/fsx"
	"grimoirecss.dev/grimoire/internal/logger"
	"grimoirecss.dev/grimoire/spell"
)

// Cmd is the shorten cobra command.
var Cmd = &cobra.Command{
	Use:   "shorten [files...]",
	Short: "Rewrite component names to their shortest alias",
	Long:  `Rewrite every recognized class token's component name (and templated g!...; occurrences) in the given files, or every configured project's input files if none are given, to its shortest alias.`,
	RunE:  run,
}

func run(cmd *cobra.Command, args []string) error {
	root, err := cmd.Flags().GetString("root")
	if err != nil {
		return fmt.Errorf("reading root flag: %w", err)
	}

	fs := fsx.NewOS()

	paths := args
	if len(paths) == 0 {
		cfg, err := config.Load(fs, root)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cfg == nil {
			logger.Warn("no config found and no files given")
			return nil
		}
		for _, proj := range cfg.Projects {
			expanded, err := config.ExpandGlobs(fs, root, proj.InputPaths)
			if err != nil {
				return fmt.Errorf("project %q: %w", proj.Name, err)
			}
			paths = append(paths, expanded...)
		}
	}

	total := 0
	for _, path := range paths {
		n, err := shortenFile(fs, path)
		if err != nil {
			logger.Warn("%s: %v", path, err)
			continue
		}
		if n > 0 {
			logger.Info("%s: %d replacement(s)", path, n)
		}
		total += n
	}

	logger.Info("shorten: %d replacement(s) across %d file(s)", total, len(paths))
	return nil
}

// shortenFile rewrites every shortenable token found in path, in place,
// returning the number of tokens actually changed.
func shortenFile(fs fsx.FileSystem, path string) (int, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content := string(data)

	tokens := extractor.Extract(content, path, 0)

	type edit struct {
		start, end int
		text       string
	}
	var edits []edit
	covered := 0
	for _, tok := range tokens {
		start, end := tok.Span.Start, tok.Span.Start+tok.Span.Len
		if start < covered {
			// Already reached by an earlier token (a templated token inside
			// a class attribute is found by both extraction passes).
			continue
		}
		covered = end
		replacement := shortenToken(tok.Text)
		if replacement == tok.Text {
			continue
		}
		edits = append(edits, edit{start: start, end: end, text: replacement})
	}
	if len(edits) == 0 {
		return 0, nil
	}

	// Apply from the end of the file backwards so earlier offsets stay valid.
	for i := len(edits) - 1; i >= 0; i-- {
		e := edits[i]
		content = content[:e.start] + e.text + content[e.end:]
	}

	if err := fs.WriteFile(path, []byte(content), 0o644); err != nil {
		return 0, err
	}
	return len(edits), nil
}

// shortenToken rewrites one extracted token's component name(s) to their
// shortest alias, leaving it unchanged if it doesn't parse as a spell (a
// scroll invocation, whose "component" position is really a scroll name that
// component.Shortest simply passes through unchanged, or malformed text).
func shortenToken(token string) string {
	if extractor.IsTemplated(token) {
		parts := extractor.TemplatedParts(token)
		changed := false
		for i, part := range parts {
			if sp, err := spell.Parse(part, 0, 0); err == nil {
				sp.Component = component.Shortest(sp.Component)
				parts[i] = spell.Render(sp)
				changed = true
			}
		}
		if !changed {
			return token
		}
		return "g!" + strings.Join(parts, "&") + ";"
	}

	sp, err := spell.Parse(token, 0, 0)
	if err != nil {
		return token
	}
	sp.Component = component.Shortest(sp.Component)
	return spell.Render(sp)
}
