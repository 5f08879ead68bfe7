package scroll

import (
	"fmt"
	"strings"

	"grimoirecss.dev/grimoire/diag"
	"grimoirecss.dev/grimoire/spell"
)

// ErrArityMismatch indicates a scroll's "$" placeholder count does not equal
// its provided argument count.
var ErrArityMismatch = fmt.Errorf("scroll: argument arity mismatch")

// ErrAmbiguousSpellByArgs names an argument vector matching more than one
// spellByArgs pattern. No code path returns it: spellByArgs is keyed by the
// exact argument count, so at most one pattern can match.
var ErrAmbiguousSpellByArgs = fmt.Errorf("scroll: ambiguous spellByArgs match")

// ErrTemplateDepthExceeded guards against a templated scroll reference
// chain that never bottoms out (e.g. a scroll whose own spells reference
// itself by name, outside of extends where the tri-state DFS already
// catches the cycle).
var ErrTemplateDepthExceeded = fmt.Errorf("scroll: templated reference nesting too deep")

const maxTemplateDepth = 64

// Resolve implements §4.7's resolution algorithm for a single class token:
// raw-spell-vs-scroll-reference detection, extends flattening, spellByArgs
// selection, positional "$" substitution, recursive templated-reference
// expansion, and outer-context propagation onto every resulting spell.
func Resolve(token string, fileID, offset int, reg *Registry) ([]spell.Spell, error) {
	span := diag.Span{FileID: fileID, Start: offset, Len: len(token)}

	outerArea, outerAreaIsRaw, outerFocus, outerEffects, rest, err := spell.SplitPrefix(token)
	if err != nil {
		return nil, err
	}

	name, args, hasEquals, isRef := detectReference(rest, reg)
	if !isRef {
		if !hasEquals {
			// No "=" at all means rest cannot possibly be a valid raw
			// spell (component=target always needs one), so this was
			// unambiguously meant as a bare scroll name.
			return nil, fmt.Errorf("%w: %q", ErrUnknownScroll, name)
		}
		sp, err := spell.Parse(token, fileID, offset)
		if err != nil {
			return nil, err
		}
		return []spell.Spell{sp}, nil
	}

	outer := spell.Spell{Area: outerArea, AreaIsRaw: outerAreaIsRaw, Focus: outerFocus, Effects: outerEffects}

	expanded, err := resolveScroll(reg, name, args, span, 0)
	if err != nil {
		return nil, err
	}

	out := make([]spell.Spell, 0, len(expanded))
	for _, inner := range expanded {
		composed := composePrefix(outer, inner)
		composed.Source = token
		composed.Span = span
		out = append(out, composed)
	}
	return out, nil
}

// detectReference reports whether rest names a registered scroll, either
// bare ("scroll-name") or with an argument list ("scroll-name=a_b_c"). A
// name that is not registered is never treated as a reference — it falls
// through to being parsed as a literal spell, which is how unknown/custom
// CSS properties (e.g. "--my-var=1") stay passthrough rather than failing
// as an unknown scroll.
func detectReference(rest string, reg *Registry) (name string, args []string, hasEquals bool, ok bool) {
	if rest == "" {
		return "", nil, false, false
	}
	if idx := strings.Index(rest, "="); idx >= 0 {
		hasEquals = true
		name = rest[:idx]
		argsRaw := rest[idx+1:]
		if argsRaw != "" {
			args = strings.Split(argsRaw, "_")
		}
	} else {
		name = rest
	}
	_, ok = reg.Lookup(name)
	return name, args, hasEquals, ok
}

// resolveScroll expands scroll name with the given arguments into a flat
// list of fully-parsed spells, still bearing only their own (possibly
// empty) authored context — outer-context composition is applied once, by
// the caller, after the whole reference chain bottoms out.
func resolveScroll(reg *Registry, name string, args []string, span diag.Span, depth int) ([]spell.Spell, error) {
	if depth > maxTemplateDepth {
		return nil, fmt.Errorf("%w: %q", ErrTemplateDepthExceeded, name)
	}

	s, ok := reg.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScroll, name)
	}

	effective, err := selectEffective(s, args)
	if err != nil {
		return nil, err
	}

	graph := newExtendsGraph(reg)
	ancestors, err := graph.flattenParents(name, s.Extends)
	if err != nil {
		return nil, err
	}

	combined := append(append([]string{}, ancestors...), effective...)

	substituted, err := substitutePositionalAll(combined, args)
	if err != nil {
		return nil, err
	}

	var out []spell.Spell
	for _, raw := range substituted {
		area, areaIsRaw, focus, effects, inner, err := spell.SplitPrefix(raw)
		if err != nil {
			return nil, err
		}

		refName, refArgs, hasEquals, isRef := detectReference(inner, reg)
		if !isRef {
			if !hasEquals {
				return nil, fmt.Errorf("%w: %q", ErrUnknownScroll, refName)
			}
			sp, err := spell.Parse(raw, span.FileID, span.Start)
			if err != nil {
				return nil, err
			}
			out = append(out, sp)
			continue
		}

		nested, err := resolveScroll(reg, refName, refArgs, span, depth+1)
		if err != nil {
			return nil, err
		}
		itemCtx := spell.Spell{Area: area, AreaIsRaw: areaIsRaw, Focus: focus, Effects: effects}
		for _, n := range nested {
			out = append(out, composePrefix(itemCtx, n))
		}
	}
	return out, nil
}

// selectEffective picks spellByArgs's matching list when present and
// matched by the provided argument count, else the scroll's own spells.
// Patterns are keyed by argument count, so at most one can match; the
// function never returns ErrAmbiguousSpellByArgs, and its error result is
// always nil.
func selectEffective(s Scroll, args []string) ([]string, error) {
	if len(s.SpellByArgs) == 0 {
		return s.Spells, nil
	}
	key := fmt.Sprintf("%d", len(args))
	if list, ok := s.SpellByArgs[key]; ok {
		return list, nil
	}
	return s.Spells, nil
}

// substitutePositionalAll replaces each lone "$" (not the start of a
// "$name" variable reference, which substitutePositional leaves untouched
// for the later variable-resolution pass) across items in order of
// appearance with the next argument in args. The total placeholder count
// across items must equal len(args) exactly.
func substitutePositionalAll(items []string, args []string) ([]string, error) {
	idx := 0
	out := make([]string, len(items))
	for i, item := range items {
		substituted, next := substitutePositional(item, args, idx)
		out[i] = substituted
		idx = next
	}
	if idx != len(args) {
		return nil, fmt.Errorf("%w: %d placeholder(s), %d argument(s)", ErrArityMismatch, idx, len(args))
	}
	return out, nil
}

// substitutePositional replaces every lone "$" in s (one not followed by a
// variable-name character) with args[start], args[start+1], ... in order of
// appearance, returning the substituted string and the next unused index.
func substitutePositional(s string, args []string, start int) (string, int) {
	if !strings.Contains(s, "$") {
		return s, start
	}

	var sb strings.Builder
	idx := start
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '$' {
			sb.WriteByte(c)
			continue
		}
		if i+1 < len(s) && isPlaceholderBoundary(s[i+1]) {
			// "$name" variable reference: leave untouched.
			sb.WriteByte(c)
			continue
		}
		if idx < len(args) {
			sb.WriteString(args[idx])
		}
		idx++
	}
	return sb.String(), idx
}

func isPlaceholderBoundary(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

// composePrefix applies §4.7's prefix propagation rules: outer is the
// context the reference was invoked under (area/focus/effects), inner is an
// already-resolved spell that may carry its own context.
func composePrefix(outer, inner spell.Spell) spell.Spell {
	composed := inner

	if inner.Area == "" {
		composed.Area = outer.Area
		composed.AreaIsRaw = outer.AreaIsRaw
	}

	switch {
	case outer.Focus != "" && inner.Focus != "":
		composed.Focus = outer.Focus + " " + inner.Focus
	case outer.Focus != "":
		composed.Focus = outer.Focus
	default:
		composed.Focus = inner.Focus
	}

	composed.Effects = unionEffects(outer.Effects, inner.Effects)

	return composed
}

func unionEffects(outer, inner []string) []string {
	if len(outer) == 0 {
		return inner
	}
	if len(inner) == 0 {
		return outer
	}
	seen := make(map[string]bool, len(outer)+len(inner))
	out := make([]string, 0, len(outer)+len(inner))
	for _, e := range append(append([]string{}, outer...), inner...) {
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}
