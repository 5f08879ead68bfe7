/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package builder

import (
	"fmt"
	"path/filepath"
	"strings"

	"grimoirecss.dev/grimoire/animation"
	"grimoirecss.dev/grimoire/config"
	"grimoirecss.dev/grimoire/diag"
	"grimoirecss.dev/grimoire/extractor"
)

// BuildProject runs §4.9's top-level per-project algorithm against proj,
// returning one Result per output artifact: a single aggregated artifact
// when proj.SingleOutputFileName is set, otherwise one artifact per input
// file. Diagnostics accumulate into acc regardless of outcome; a project
// reaching the Failed state still returns whatever partial Results it
// produced before failing, so callers can report what did succeed.
func BuildProject(ctx *Context, proj config.Project, acc *diag.Accumulator, excluded map[tupleKey]bool) []*Result {
	paths, err := config.ExpandGlobs(ctx.FS, ctx.RootDir, proj.InputPaths)
	if err != nil {
		acc.Add(diag.Diagnostic{Kind: diag.KindIO, Message: fmt.Sprintf("project %q: %v", proj.Name, err)})
		return []*Result{{ProjectName: proj.Name, State: Failed}}
	}

	type fileTokens struct {
		path   string
		fileID int
		tokens []extractor.Token
	}

	var files []fileTokens
	for _, path := range paths {
		data, err := ctx.FS.ReadFile(path)
		if err != nil {
			acc.Add(diag.Diagnostic{Kind: diag.KindIO, Message: fmt.Sprintf("reading %s: %v", path, err)})
			continue
		}
		content := string(data)
		fileID := acc.AddFile(path, content)
		files = append(files, fileTokens{path: path, fileID: fileID, tokens: extractor.Extract(content, path, fileID)})
	}

	if proj.SingleOutputFileName != "" {
		var allTokens []extractor.Token
		seen := make(map[string]bool)
		for _, f := range files {
			for _, tok := range f.tokens {
				if seen[tok.Text] {
					continue
				}
				seen[tok.Text] = true
				allTokens = append(allTokens, tok)
			}
		}
		outPath := filepath.Join(proj.OutputDirPath, proj.SingleOutputFileName)
		return []*Result{buildArtifact(ctx, proj.Name, outPath, allTokens, acc, excluded)}
	}

	var results []*Result
	for _, f := range files {
		seen := make(map[string]bool)
		var tokens []extractor.Token
		for _, tok := range f.tokens {
			if seen[tok.Text] {
				continue
			}
			seen[tok.Text] = true
			tokens = append(tokens, tok)
		}
		outPath := outputPathFor(proj, f.path)
		results = append(results, buildArtifact(ctx, proj.Name, outPath, tokens, acc, excluded))
	}
	return results
}

// buildArtifact drives one artifact's Resolving -> Emitting -> Tracked (or
// Failed) transitions for an already-deduplicated token list. excluded, if
// non-nil, is a tuple set already emitted by a critical unit that must not
// reappear in this artifact (§4.9's critical/per-project dedup note).
func buildArtifact(ctx *Context, projectName, outPath string, tokens []extractor.Token, acc *diag.Accumulator, excluded map[tupleKey]bool) *Result {
	result := &Result{ProjectName: projectName, OutputPath: outPath, State: Resolving}

	var decls []declaration
	var animNames []string
	resolveFailed := false
	for _, tok := range tokens {
		tr, err := resolveToken(ctx, tok.Text, tok.Span.FileID, tok.Span.Start, acc)
		if err != nil {
			resolveFailed = true
			continue
		}
		decls = append(decls, tr.Declarations...)
		animNames = append(animNames, tr.Animations...)
	}
	if resolveFailed {
		result.State = Failed
		return result
	}

	result.State = Emitting
	rules := groupDeclarations(decls, excluded)
	emitted := animation.NewEmitted()
	css := assembleArtifact(nil, rules, animNames, ctx.Animations, emitted)

	processed, err := ctx.PostProc.Process(css, ctx.Browsers)
	if err != nil {
		acc.Add(diag.Diagnostic{Kind: diag.KindPostProcessor, Message: fmt.Sprintf("%s: %v", outPath, err)})
		result.State = Failed
		return result
	}

	if err := ctx.FS.WriteFile(outPath, []byte(processed), 0o644); err != nil {
		acc.Add(diag.Diagnostic{Kind: diag.KindIO, Message: fmt.Sprintf("writing %s: %v", outPath, err)})
		result.State = Failed
		return result
	}

	result.CSS = processed
	result.Animations = dedupeStrings(animNames)
	result.State = Tracked
	return result
}

// outputPathFor mirrors an input file's base name into proj.OutputDirPath
// with a .css extension, used in per-input (non single-output) mode.
func outputPathFor(proj config.Project, inputPath string) string {
	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext) + ".css"
	return filepath.Join(proj.OutputDirPath, name)
}
