/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package builder

import (
	"fmt"
	"regexp"
	"strings"

	"grimoirecss.dev/grimoire/animation"
	"grimoirecss.dev/grimoire/config"
	"grimoirecss.dev/grimoire/diag"
)

// criticalStyleTag matches an existing critical <style> element so repeat
// inlining runs replace its contents rather than appending a duplicate
// (§6's "repeat runs must be idempotent" requirement).
var criticalStyleTag = regexp.MustCompile(`(?s)<style data-grimoire="critical">.*?</style>`)

// BuildCritical runs the critical-unit pipeline: generate its CSS the same
// way a shared unit would, then inline it into every file named by
// FileToInlinePaths. It returns the tuple set produced, so the caller can
// subtract it from subsequent per-project builds.
func BuildCritical(ctx *Context, unit config.CriticalUnit, acc *diag.Accumulator) (*Result, map[tupleKey]bool) {
	decls, animNames, rawCSS, err := resolveStyles(ctx, unit.Styles, acc)
	if err != nil {
		return &Result{OutputPath: unit.OutputPath, State: Failed}, nil
	}

	tuples := make(map[tupleKey]bool, len(decls))
	for _, d := range decls {
		tuples[d.key()] = true
	}

	rules := groupDeclarations(decls, nil)
	emitted := animation.NewEmitted()
	css := assembleArtifact(unit.CSSCustomProperties, rules, animNames, ctx.Animations, emitted)
	for _, raw := range rawCSS {
		css += raw + "\n"
	}

	processed, err := ctx.PostProc.Process(css, ctx.Browsers)
	if err != nil {
		acc.Add(diag.Diagnostic{Kind: diag.KindPostProcessor, Message: fmt.Sprintf("%s: %v", unit.OutputPath, err)})
		return &Result{OutputPath: unit.OutputPath, State: Failed}, nil
	}

	if unit.OutputPath != "" {
		if err := ctx.FS.WriteFile(unit.OutputPath, []byte(processed), 0o644); err != nil {
			acc.Add(diag.Diagnostic{Kind: diag.KindIO, Message: fmt.Sprintf("writing %s: %v", unit.OutputPath, err)})
			return &Result{OutputPath: unit.OutputPath, State: Failed}, nil
		}
	}

	for _, htmlPath := range unit.FileToInlinePaths {
		if err := inlineCritical(ctx, htmlPath, processed); err != nil {
			acc.Add(diag.Diagnostic{Kind: diag.KindIO, Message: fmt.Sprintf("inlining critical CSS into %s: %v", htmlPath, err)})
		}
	}

	return &Result{OutputPath: unit.OutputPath, CSS: processed, State: Tracked, Animations: dedupeStrings(animNames)}, tuples
}

// inlineCritical locates an existing `<style data-grimoire="critical">`
// element in htmlPath and replaces its contents, or inserts a new one
// immediately before `</head>` if none exists (§6).
func inlineCritical(ctx *Context, htmlPath, css string) error {
	data, err := ctx.FS.ReadFile(htmlPath)
	if err != nil {
		return err
	}
	html := string(data)
	tag := fmt.Sprintf(`<style data-grimoire="critical">%s</style>`, css)

	var updated string
	if criticalStyleTag.MatchString(html) {
		updated = criticalStyleTag.ReplaceAllLiteralString(html, tag)
	} else if idx := strings.Index(html, "</head>"); idx >= 0 {
		updated = html[:idx] + tag + html[idx:]
	} else {
		updated = html + tag
	}

	if updated == html {
		return nil
	}
	return ctx.FS.WriteFile(htmlPath, []byte(updated), 0o644)
}
