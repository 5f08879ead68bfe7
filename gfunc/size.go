package gfunc

import "fmt"

// Default viewport bounds for mrs/mfs when unspecified, named per spec.md
// §9's open question about default viewport bounds — earlier grimoire
// releases used different defaults, so these are pinned as named constants
// rather than left as magic numbers.
const (
	DefaultMinViewport = "320px"
	DefaultMaxViewport = "1280px"
)

// Mrs implements mrs(min_size, max_size, min_vw?, max_vw?): a clamp()
// expression whose middle term linearly interpolates between min_size at
// minVw and max_size at maxVw, saturating outside that range.
func Mrs(minSize, maxSize string, minVw, maxVw string) (string, error) {
	if minVw == "" {
		minVw = DefaultMinViewport
	}
	if maxVw == "" {
		maxVw = DefaultMaxViewport
	}
	return fmt.Sprintf(
		"clamp(%s, calc(%s + (100vw - %s) * ((%s - %s) / (%s - %s))), %s)",
		minSize, minSize, minVw, maxSize, minSize, maxVw, minVw, maxSize,
	), nil
}

// Mfs implements mfs(min_size, max_size): like Mrs but interpolated across
// the full viewport width (0 to 100vw), so the clamp saturates only at the
// true edges of the viewport rather than at named breakpoints. It is Mrs
// with its viewport bounds pinned to 0vw/100vw rather than named
// breakpoints, which keeps the same (length - length) / (length - length)
// dimensionless ratio Mrs relies on for a valid calc() expression.
func Mfs(minSize, maxSize string) (string, error) {
	return Mrs(minSize, maxSize, "0vw", "100vw")
}
