// Package spell parses the grimoire spell grammar:
//
//	spell       := [ area "__" ] ( "{" focus "}" | effects ":" )? component "=" target
//	area        := identifier | "(" media-query-body ")"
//	focus       := selector-text with "_" meaning space
//	effects     := identifier ("," identifier)*
//	component   := identifier
//	target      := value-text with "_" meaning space, "$name" variables, "g-fn(...)" functions
//
// Parsing is hand-rolled over byte offsets rather than built on a grammar
// library: the grammar is small and every parsed fragment must carry the
// originating byte span for diagnostics, which a generic parser-combinator
// or grammar-description library would only get in the way of.
package spell

import (
	"fmt"
	"strings"

	"grimoirecss.dev/grimoire/diag"
)

// Spell is the parsed form of a single spell token.
type Spell struct {
	// Source is the original token text, verbatim, used for both the
	// emitted selector and round-trip diagnostics.
	Source string

	Area      string // "" if absent; either a named area or a literal media-query body with its "(" ")" stripped
	AreaIsRaw bool   // true if Area came from literal parentheses rather than a named area
	Focus     string // "" if absent; selector fragment with "_" already unescaped to " "
	Effects   []string
	Component string
	Target    string // "" if no target; "_" already unescaped to " "

	Span diag.Span
}

// ErrMissingEquals etc. are sentinel errors so callers can errors.Is-match
// the failure reason while diag.Diagnostic carries the user-facing text.
var (
	ErrMissingEquals      = fmt.Errorf("spell: missing '=' separator")
	ErrEmptyComponent     = fmt.Errorf("spell: empty component name")
	ErrUnbalancedParens   = fmt.Errorf("spell: unbalanced parentheses")
	ErrIllegalComponent   = fmt.Errorf("spell: illegal characters in component name")
	ErrNeedsComponentOrTarget = fmt.Errorf("spell: at least one of component or target is required")
)

// Parse parses a raw spell token (e.g. "md__{hover}bgc=red") into a Spell.
// fileID and offset locate the token's span within the accumulator's file
// table; offset is the byte position of src's first character in that file.
func Parse(src string, fileID, offset int) (Spell, error) {
	sp := Spell{
		Source: src,
		Span:   diag.Span{FileID: fileID, Start: offset, Len: len(src)},
	}

	area, areaIsRaw, focus, effects, rest, err := SplitPrefix(src)
	if err != nil {
		return sp, err
	}
	sp.Area, sp.AreaIsRaw, sp.Focus, sp.Effects = area, areaIsRaw, focus, effects

	eq := strings.Index(rest, "=")
	if eq < 0 {
		if rest == "" {
			return sp, ErrNeedsComponentOrTarget
		}
		return sp, ErrMissingEquals
	}

	sp.Component = rest[:eq]
	sp.Target = unescapeUnderscore(rest[eq+1:])

	if sp.Component == "" {
		return sp, ErrEmptyComponent
	}
	if !isIdentifier(sp.Component) {
		return sp, ErrIllegalComponent
	}
	if err := checkBalancedParens(sp.Target); err != nil {
		return sp, err
	}

	return sp, nil
}

// SplitPrefix extracts the optional area/focus/effects prefix from a raw
// spell or scroll-reference token, returning the remaining
// "component=target" or "scroll-name[=args]" text. It is the shared first
// stage of Parse, also used by the scroll engine to recover a nested
// template reference's own context before recursing.
func SplitPrefix(src string) (area string, areaIsRaw bool, focus string, effects []string, rest string, err error) {
	rest = src

	// area := identifier | "(" ... ")" , followed by "__"
	if idx := strings.Index(rest, "__"); idx >= 0 {
		candidate := rest[:idx]
		if isValidArea(candidate) {
			area = unwrapParens(candidate)
			areaIsRaw = strings.HasPrefix(candidate, "(")
			rest = rest[idx+2:]
		}
	}

	// focus := "{" ... "}"
	if strings.HasPrefix(rest, "{") {
		end := findMatchingBrace(rest, 0)
		if end < 0 {
			return area, areaIsRaw, focus, effects, rest, ErrUnbalancedParens
		}
		focus = unescapeUnderscore(rest[1:end])
		rest = rest[end+1:]
	} else if idx := topLevelColonBeforeEquals(rest); idx >= 0 {
		// effects := identifier ("," identifier)* ":"
		effectsPart := rest[:idx]
		if effectsPart != "" && isIdentifierList(effectsPart) {
			effects = splitEffects(effectsPart)
			rest = rest[idx+1:]
		}
	}

	return area, areaIsRaw, focus, effects, rest, nil
}

// unwrapParens strips a single layer of "(" ")" if present, leaving a named
// area untouched.
func unwrapParens(s string) string {
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		return s[1 : len(s)-1]
	}
	return s
}

// isValidArea reports whether s looks like `area` in the grammar: either a
// bare identifier, or a balanced "(...)" media-query body.
func isValidArea(s string) bool {
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, "(") {
		return strings.HasSuffix(s, ")") && findMatchingBrace2(s, '(', ')', 0) == len(s)-1
	}
	return isIdentifier(s)
}

func findMatchingBrace2(s string, open, close byte, start int) int {
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// findMatchingBrace returns the index of the "}" matching the "{" at start.
func findMatchingBrace(s string, start int) int {
	return findMatchingBrace2(s, '{', '}', start)
}

// topLevelColonBeforeEquals returns the index of the first ":" before the
// first "=" (anywhere in s if it has no "="), or -1. Colons inside a target
// lie after the "=" and are not seen; the caller checks that the text before
// the colon is an effects list.
func topLevelColonBeforeEquals(s string) int {
	eq := strings.Index(s, "=")
	scanLimit := len(s)
	if eq >= 0 {
		scanLimit = eq
	}
	colon := strings.Index(s[:scanLimit], ":")
	return colon
}

func isIdentifierList(s string) bool {
	for _, part := range strings.Split(s, ",") {
		if !isIdentifier(part) {
			return false
		}
	}
	return true
}

func splitEffects(s string) []string {
	parts := strings.Split(s, ",")
	seen := make(map[string]bool, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		ok := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-'
		if !ok {
			return false
		}
	}
	return true
}

// unescapeUnderscore turns "_" into " " per the grammar's space-escaping
// convention, used for both focus and target text.
func unescapeUnderscore(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}

// checkBalancedParens validates that function-like targets have balanced
// parentheses, per spec's validation rule.
func checkBalancedParens(s string) error {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return ErrUnbalancedParens
			}
		}
	}
	if depth != 0 {
		return ErrUnbalancedParens
	}
	return nil
}

// Render reconstructs the canonical spell text from a Spell, used by the
// round-trip invariant (parse(render(parse(S))) == parse(S)).
func Render(s Spell) string {
	var sb strings.Builder
	if s.Area != "" {
		if s.AreaIsRaw {
			sb.WriteString("(")
			sb.WriteString(s.Area)
			sb.WriteString(")")
		} else {
			sb.WriteString(s.Area)
		}
		sb.WriteString("__")
	}
	if s.Focus != "" {
		sb.WriteString("{")
		sb.WriteString(strings.ReplaceAll(s.Focus, " ", "_"))
		sb.WriteString("}")
	} else if len(s.Effects) > 0 {
		sb.WriteString(strings.Join(s.Effects, ","))
		sb.WriteString(":")
	}
	sb.WriteString(s.Component)
	sb.WriteString("=")
	sb.WriteString(strings.ReplaceAll(s.Target, " ", "_"))
	return sb.String()
}
