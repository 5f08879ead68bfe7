/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package builder

import (
	"strings"

	"github.com/iancoleman/strcase"

	"grimoirecss.dev/grimoire/animation"
	"grimoirecss.dev/grimoire/config"
)

// emitRules renders a slice of rules (already ordered non-media-first by
// groupDeclarations) into CSS text, one rule per line, media rules wrapped
// in an @media block.
func emitRules(rules []rule) string {
	var sb strings.Builder
	for _, r := range rules {
		text := renderRule(r)
		if r.Media == "" {
			sb.WriteString(text)
			sb.WriteString("\n")
			continue
		}
		sb.WriteString("@media ")
		sb.WriteString(r.Media)
		sb.WriteString(" {\n  ")
		sb.WriteString(text)
		sb.WriteString("\n}\n")
	}
	return sb.String()
}

func renderRule(r rule) string {
	var sb strings.Builder
	sb.WriteString(strings.Join(r.Selectors, ", "))
	sb.WriteString(" { ")
	for _, d := range r.Decls {
		sb.WriteString(d.Property)
		sb.WriteString(": ")
		sb.WriteString(d.Value)
		sb.WriteString("; ")
	}
	sb.WriteString("}")
	return sb.String()
}

// emitCustomProperties renders a shared/critical unit's cssCustomProperties
// list, grouped by selector, with each property name canonicalized to
// kebab-case exactly once (authors may write either camelCase or
// kebab-case in JSON, §4.9's strcase.ToKebab wiring).
func emitCustomProperties(props []config.CustomProperty) string {
	if len(props) == 0 {
		return ""
	}

	order := make([]string, 0, len(props))
	bySelector := make(map[string][]config.CustomProperty)
	for _, p := range props {
		if _, ok := bySelector[p.Selector]; !ok {
			order = append(order, p.Selector)
		}
		bySelector[p.Selector] = append(bySelector[p.Selector], p)
	}

	var sb strings.Builder
	for _, sel := range order {
		sb.WriteString(sel)
		sb.WriteString(" { ")
		for _, p := range bySelector[sel] {
			sb.WriteString("--")
			sb.WriteString(strcase.ToKebab(p.Name))
			sb.WriteString(": ")
			sb.WriteString(p.Value)
			sb.WriteString("; ")
		}
		sb.WriteString("}\n")
	}
	return sb.String()
}

// emitAnimations renders the @keyframes block (plus, for built-ins that
// carry one, the catalog's opaque placeholder CSS is never emitted
// directly — placeholder declarations are already folded into the
// referencing rule by resolveToken) for every name in names not already
// recorded in emitted, in first-seen order, and records them as emitted.
func emitAnimations(catalog *animation.Catalog, names []string, emitted *animation.Emitted) string {
	var sb strings.Builder
	for _, name := range names {
		if !emitted.ShouldEmit(name) {
			continue
		}
		def, ok := catalog.Lookup(name)
		if !ok {
			continue
		}
		sb.WriteString(def.KeyframesCSS)
		sb.WriteString("\n")
	}
	return sb.String()
}

// assembleArtifact implements §4.9 step 5's emission order in full:
// custom-properties block, then non-media rules, then media-query blocks,
// then referenced animations (step 6).
func assembleArtifact(customProps []config.CustomProperty, rules []rule, animNames []string, catalog *animation.Catalog, emitted *animation.Emitted) string {
	var sb strings.Builder
	if cp := emitCustomProperties(customProps); cp != "" {
		sb.WriteString(cp)
	}
	sb.WriteString(emitRules(rules))
	if anim := emitAnimations(catalog, dedupeStrings(animNames), emitted); anim != "" {
		sb.WriteString(anim)
	}
	return sb.String()
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
