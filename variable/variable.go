// Package variable substitutes "$name" references inside a spell target
// using the config's variable table. Substitution is a single textual pass:
// resolved variable values are literal CSS fragments and are never
// themselves re-scanned for further "$" references.
package variable

import (
	"fmt"
	"strings"
)

// ErrUnbound indicates a "$name" reference with no entry in the variable
// table. Per spec.md §4.5 this is always fatal.
var ErrUnbound = fmt.Errorf("variable: unbound reference")

// Resolve substitutes every "$name" occurrence in target using vars,
// returning the substituted string. An unbound name is reported via a
// ResolutionError-shaped error wrapping ErrUnbound and naming the variable.
func Resolve(target string, vars map[string]string) (string, error) {
	if !strings.Contains(target, "$") {
		return target, nil
	}

	var sb strings.Builder
	i := 0
	for i < len(target) {
		c := target[i]
		if c != '$' {
			sb.WriteByte(c)
			i++
			continue
		}

		j := i + 1
		for j < len(target) && isNameChar(target[j]) {
			j++
		}
		if j == i+1 {
			// Lone "$" with no identifier after it: pass through verbatim.
			sb.WriteByte(c)
			i++
			continue
		}

		name := target[i+1 : j]
		val, ok := vars[name]
		if !ok {
			return "", fmt.Errorf("%w: $%s", ErrUnbound, name)
		}
		sb.WriteString(val)
		i = j
	}

	return sb.String(), nil
}

func isNameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_'
}
