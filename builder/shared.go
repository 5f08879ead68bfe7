/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package builder

import (
	"fmt"
	"strings"

	"grimoirecss.dev/grimoire/animation"
	"grimoirecss.dev/grimoire/config"
	"grimoirecss.dev/grimoire/diag"
)

// resolveStyles resolves a shared/critical unit's explicit style list: each
// entry is either a raw CSS file path (passed through verbatim) or a
// spell/scroll-invocation token (resolved exactly like an extracted class
// token). §4.9's shared/critical pipelines emit every entry unconditionally,
// regardless of whether any project input references it.
func resolveStyles(ctx *Context, styles []string, acc *diag.Accumulator) ([]declaration, []string, []string, error) {
	var decls []declaration
	var animNames []string
	var rawCSS []string

	for i, style := range styles {
		if strings.HasSuffix(style, ".css") {
			data, err := ctx.FS.ReadFile(style)
			if err != nil {
				acc.Add(diag.Diagnostic{Kind: diag.KindIO, Message: fmt.Sprintf("reading %s: %v", style, err)})
				return nil, nil, nil, err
			}
			rawCSS = append(rawCSS, string(data))
			continue
		}
		fileID := acc.AddFile(fmt.Sprintf("<styles[%d]>", i), style)
		tr, err := resolveToken(ctx, style, fileID, 0, acc)
		if err != nil {
			return nil, nil, nil, err
		}
		decls = append(decls, tr.Declarations...)
		animNames = append(animNames, tr.Animations...)
	}
	return decls, animNames, rawCSS, nil
}

// BuildShared runs the shared-unit pipeline for one config.SharedUnit,
// writing its output unconditionally (§4.9's "emits every spell/scroll
// even if unreferenced by any project input").
func BuildShared(ctx *Context, unit config.SharedUnit, acc *diag.Accumulator) *Result {
	decls, animNames, rawCSS, err := resolveStyles(ctx, unit.Styles, acc)
	if err != nil {
		return &Result{OutputPath: unit.OutputPath, State: Failed}
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
		return &Result{OutputPath: unit.OutputPath, State: Failed}
	}

	if err := ctx.FS.WriteFile(unit.OutputPath, []byte(processed), 0o644); err != nil {
		acc.Add(diag.Diagnostic{Kind: diag.KindIO, Message: fmt.Sprintf("writing %s: %v", unit.OutputPath, err)})
		return &Result{OutputPath: unit.OutputPath, State: Failed}
	}

	return &Result{OutputPath: unit.OutputPath, CSS: processed, State: Tracked, Animations: dedupeStrings(animNames)}
}

// DeclarationTuples returns the (media, selector, property, value) tuple
// set a resolved style list would produce, for critical's cross-artifact
// dedup subtraction (§4.9's critical pipeline note).
func DeclarationTuples(ctx *Context, styles []string, acc *diag.Accumulator) (map[tupleKey]bool, error) {
	decls, _, _, err := resolveStyles(ctx, styles, acc)
	if err != nil {
		return nil, err
	}
	out := make(map[tupleKey]bool, len(decls))
	for _, d := range decls {
		out[d.key()] = true
	}
	return out, nil
}
