/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package builder

import (
	"errors"
	"strings"
	"unicode"

	"grimoirecss.dev/grimoire/component"
	"grimoirecss.dev/grimoire/diag"
	"grimoirecss.dev/grimoire/extractor"
	"grimoirecss.dev/grimoire/gfunc"
	"grimoirecss.dev/grimoire/scroll"
	"grimoirecss.dev/grimoire/spell"
	"grimoirecss.dev/grimoire/variable"
)

// tokenResult is one token's fully resolved output: its declarations plus
// any animation names it referenced, to be emitted once per artifact.
type tokenResult struct {
	Declarations []declaration
	Animations   []string
}

// resolveToken implements §4.9 step 3: parse/expand the token (§4.7), then
// for each resulting spell resolve variables (§4.5), evaluate functions
// (§4.6), and produce one declaration per (media, selector, property,
// value) tuple. fileID/offset locate the token for diagnostics.
func resolveToken(ctx *Context, token string, fileID, offset int, acc *diag.Accumulator) (tokenResult, error) {
	if extractor.IsTemplated(token) {
		return resolveTemplatedToken(ctx, token, fileID, offset, acc)
	}

	escaped := cssEscapeIdent(token)

	spells, err := scroll.Resolve(token, fileID, offset, ctx.Registry)
	if err != nil {
		return tokenResult{}, reportDiag(acc, diag.Diagnostic{
			Kind:    resolutionErrorKind(err),
			Message: err.Error(),
			Labels:  []diag.Label{{Span: diag.Span{FileID: fileID, Start: offset, Len: len(token)}, Text: token}},
		})
	}

	var result tokenResult
	for _, sp := range spells {
		selector := buildSelector(escaped, sp.Focus, sp.Effects)
		decls, anims, err := processSpell(ctx, sp, selector, acc)
		if err != nil {
			if isEvaluationError(err) {
				continue
			}
			return tokenResult{}, err
		}
		result.Declarations = append(result.Declarations, decls...)
		result.Animations = append(result.Animations, anims...)
	}
	return result, nil
}

// resolveTemplatedToken handles a "g!<spell>[&<spell>...];" occurrence
// (§4.8's glossary entry, scenario 5): every "&"-joined sub-spell resolves
// independently, but all of them share one rule under the full templated
// token's own literal text as the selector.
func resolveTemplatedToken(ctx *Context, token string, fileID, offset int, acc *diag.Accumulator) (tokenResult, error) {
	selector := "." + cssEscapeIdent(token)

	var result tokenResult
	for _, part := range extractor.TemplatedParts(token) {
		spells, err := scroll.Resolve(part, fileID, offset, ctx.Registry)
		if err != nil {
			return tokenResult{}, reportDiag(acc, diag.Diagnostic{
				Kind:    resolutionErrorKind(err),
				Message: err.Error(),
				Labels:  []diag.Label{{Span: diag.Span{FileID: fileID, Start: offset, Len: len(token)}, Text: token}},
			})
		}
		for _, sp := range spells {
			decls, anims, err := processSpell(ctx, sp, selector, acc)
			if err != nil {
				if isEvaluationError(err) {
					continue
				}
				return tokenResult{}, err
			}
			result.Declarations = append(result.Declarations, decls...)
			result.Animations = append(result.Animations, anims...)
		}
	}
	return result, nil
}

// processSpell resolves variables (§4.5) and evaluates functions (§4.6) for
// one already-parsed spell, producing its declaration(s) under the given
// selector plus any animation names it referenced.
func processSpell(ctx *Context, sp spell.Spell, selector string, acc *diag.Accumulator) ([]declaration, []string, error) {
	media := spell.MediaQuery(sp)

	target, err := variable.Resolve(sp.Target, ctx.Variables)
	if err != nil {
		return nil, nil, reportDiag(acc, diag.Diagnostic{
			Kind:    diag.KindResolution,
			Message: err.Error(),
			Labels:  []diag.Label{{Span: sp.Span, Text: sp.Source}},
		})
	}

	target, err = gfunc.Evaluate(target)
	if err != nil {
		return nil, nil, reportDiag(acc, diag.Diagnostic{
			Kind:    gfuncErrorKind(err),
			Message: err.Error(),
			Labels:  []diag.Label{{Span: sp.Span, Text: sp.Source}},
		})
	}

	property := component.Canonicalize(sp.Component)
	decls := []declaration{{Media: media, Selector: selector, Property: property, Value: target}}
	var anims []string

	if property == "animation" {
		name := firstField(target)
		if def, ok := ctx.Animations.Lookup(name); ok {
			anims = append(anims, name)
			if def.HasPlaceholderRule {
				for _, extra := range parsePlaceholderDeclarations(def.PlaceholderCSS) {
					decls = append(decls, declaration{
						Media: media, Selector: selector,
						Property: extra.Property, Value: extra.Value,
					})
				}
			}
		}
	}

	return decls, anims, nil
}

// resolutionErrorKind maps a scroll.Resolve failure to its diagnostic kind:
// malformed spell grammar is a ParseError, everything else (unknown scroll,
// arity mismatch, ambiguous spellByArgs, cyclic extends) is a
// ResolutionError per §7's taxonomy.
func resolutionErrorKind(err error) diag.Kind {
	if errors.Is(err, spell.ErrMissingEquals) || errors.Is(err, spell.ErrEmptyComponent) ||
		errors.Is(err, spell.ErrUnbalancedParens) || errors.Is(err, spell.ErrIllegalComponent) ||
		errors.Is(err, spell.ErrNeedsComponentOrTarget) {
		return diag.KindParse
	}
	return diag.KindResolution
}

// gfuncErrorKind maps a gfunc.Evaluate failure to its diagnostic kind:
// unbalanced parentheses is malformed function-call syntax, a ParseError;
// everything else (unknown function, illegal color, bad weight/degrees) is
// a domain/arithmetic failure during evaluation, an EvaluationError, per
// §7's taxonomy.
func gfuncErrorKind(err error) diag.Kind {
	if errors.Is(err, gfunc.ErrUnbalancedParens) {
		return diag.KindParse
	}
	return diag.KindEvaluation
}

// isEvaluationError reports whether err is a diagnostic tagged
// EvaluationError, the only kind §7 allows to skip just the failing spell
// rather than aborting the rest of its containing token.
func isEvaluationError(err error) bool {
	d, ok := err.(diag.Diagnostic)
	return ok && d.Kind == diag.KindEvaluation
}

// buildSelector composes the emitted rule selector from the CSS-escaped
// literal class text plus the spell's focus/effects context. Per spec.md
// §9's open question, the chosen convention is: a non-empty focus
// concatenates directly before the class compound selector (the focus text
// itself supplies any combinator/whitespace, e.g. "[hidden] > p:hover" +
// ".<class>"); otherwise each effect pseudo-class is appended directly
// after the class, colon-joined.
func buildSelector(escapedClass, focus string, effects []string) string {
	if focus != "" {
		return focus + "." + escapedClass
	}
	var sb strings.Builder
	sb.WriteString(".")
	sb.WriteString(escapedClass)
	for _, e := range effects {
		sb.WriteString(":")
		sb.WriteString(e)
	}
	return sb.String()
}

// cssEscapeIdent backslash-escapes every character in s that is not a plain
// CSS identifier character (letter, digit, hyphen, underscore), so the
// user-written class token can be reused verbatim as a CSS selector (§4.9
// step 3a: "the output selector must equal the user-written class verbatim,
// appropriately CSS-escaped").
func cssEscapeIdent(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if isIdentRune(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('\\')
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'
}

func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

type propertyValue struct {
	Property string
	Value    string
}

// parsePlaceholderDeclarations splits a custom animation's placeholder
// declaration block ("animation-duration: 1s; animation-iteration-count:
// infinite;") into individual property/value pairs.
func parsePlaceholderDeclarations(block string) []propertyValue {
	var out []propertyValue
	for _, stmt := range strings.Split(block, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		idx := strings.Index(stmt, ":")
		if idx < 0 {
			continue
		}
		prop := strings.TrimSpace(stmt[:idx])
		val := strings.TrimSpace(stmt[idx+1:])
		if prop == "" || val == "" {
			continue
		}
		out = append(out, propertyValue{Property: prop, Value: val})
	}
	return out
}
