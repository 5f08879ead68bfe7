// eval.go dispatches each recognized function name inside an
// already-variable-resolved spell target to its implementation and
// substitutes the call with its CSS output, left to right, non-recursively
// (grimoire functions are not composed into one another).
package gfunc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnbalancedParens reports a grimoire function call whose opening
// parenthesis never closes. It is a syntax failure, not a domain/arithmetic
// one, so callers distinguish it with errors.Is to classify it as a
// ParseError rather than an EvaluationError.
var ErrUnbalancedParens = errors.New("gfunc: unbalanced parentheses")

// knownFuncs lists every function name the evaluator recognizes, used to
// decide whether an "identifier(" occurrence in a target is a grimoire
// function call or simply CSS's own function syntax (e.g. "var(--x)",
// "calc(1px + 1px)") which must be passed through untouched.
var knownFuncs = map[string]bool{
	"mrs": true, "mfs": true,
	"g-grayscale": true, "g-complement": true, "g-invert": true,
	"g-mix": true, "g-adjust-hue": true, "g-adjust-color": true,
	"g-change-color": true, "g-scale-color": true, "g-rgba": true,
	"g-lighten": true, "g-darken": true, "g-saturate": true, "g-desaturate": true,
	"g-opacify": true, "g-fade-in": true, "g-transparentize": true, "g-fade-out": true,
}

// Evaluate scans target for recognized function calls and replaces each
// with its evaluated CSS output, returning the fully evaluated target.
func Evaluate(target string) (string, error) {
	var sb strings.Builder
	i := 0
	for i < len(target) {
		if isFuncNameChar(target[i]) {
			start := i
			for i < len(target) && isFuncNameChar(target[i]) {
				i++
			}
			name := target[start:i]
			if i < len(target) && target[i] == '(' && knownFuncs[name] {
				end := matchParen(target, i)
				if end < 0 {
					return "", fmt.Errorf("%w in %q", ErrUnbalancedParens, target)
				}
				inner := target[i+1 : end]
				args := splitTopLevelArgs(inner)
				out, err := dispatch(name, args)
				if err != nil {
					return "", err
				}
				sb.WriteString(out)
				i = end + 1
				continue
			}
			sb.WriteString(name)
			continue
		}
		sb.WriteByte(target[i])
		i++
	}
	return sb.String(), nil
}

func isFuncNameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-'
}

// matchParen returns the index of the ")" matching the "(" at open.
func matchParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevelArgs splits s on whitespace at paren-depth 0, leaving
// whitespace inside nested function calls (e.g. a color argument like
// "rgb(0 0 0)") untouched.
func splitTopLevelArgs(s string) []string {
	var args []string
	var cur strings.Builder
	depth := 0
	flush := func() {
		if cur.Len() > 0 {
			args = append(args, cur.String())
			cur.Reset()
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '(':
			depth++
			cur.WriteByte(c)
		case c == ')':
			depth--
			cur.WriteByte(c)
		case c == ' ' && depth == 0:
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return args
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func dispatch(name string, args []string) (string, error) {
	switch name {
	case "mrs":
		return Mrs(arg(args, 0), arg(args, 1), arg(args, 2), arg(args, 3))
	case "mfs":
		return Mfs(arg(args, 0), arg(args, 1))
	case "g-grayscale":
		return Grayscale(arg(args, 0))
	case "g-complement":
		return Complement(arg(args, 0))
	case "g-invert":
		return Invert(arg(args, 0), arg(args, 1))
	case "g-mix":
		return Mix(arg(args, 0), arg(args, 1), arg(args, 2))
	case "g-adjust-hue":
		return AdjustHue(arg(args, 0), arg(args, 1))
	case "g-adjust-color":
		return AdjustColor(arg(args, 0), namedDeltas(args[1:]))
	case "g-change-color":
		return ChangeColor(arg(args, 0), namedDeltas(args[1:]))
	case "g-scale-color":
		return ScaleColor(arg(args, 0), namedDeltas(args[1:]))
	case "g-rgba":
		return RGBA(arg(args, 0), arg(args, 1))
	case "g-lighten":
		return Lighten(arg(args, 0), arg(args, 1))
	case "g-darken":
		return Darken(arg(args, 0), arg(args, 1))
	case "g-saturate":
		return Saturate(arg(args, 0), arg(args, 1))
	case "g-desaturate":
		return Desaturate(arg(args, 0), arg(args, 1))
	case "g-opacify", "g-fade-in":
		return Opacify(arg(args, 0), arg(args, 1))
	case "g-transparentize", "g-fade-out":
		return Transparentize(arg(args, 0), arg(args, 1))
	default:
		return "", fmt.Errorf("gfunc: unknown function %q", name)
	}
}

// namedDeltas maps the positional remainder of an adjust/change/scale-color
// call onto its channel names, in the fixed order: red, green, blue, hue,
// saturation, lightness, alpha. A channel whose argument is the literal
// "none" (or an empty string) is skipped rather than zeroed; Evaluate's
// argument splitting never produces an empty argument.
func namedDeltas(rest []string) map[string]float64 {
	order := []string{"red", "green", "blue", "hue", "saturation", "lightness", "alpha"}
	out := make(map[string]float64, len(rest))
	for i, v := range rest {
		if i >= len(order) || v == "" || v == "none" {
			continue
		}
		f, err := parseFloatLenient(v)
		if err != nil {
			continue
		}
		out[order[i]] = f
	}
	return out
}
