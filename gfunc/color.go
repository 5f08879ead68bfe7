// Package gfunc evaluates the closed set of grimoire functions ("g-*" color
// functions, and the mrs/mfs fluid-size helpers) that may appear inside an
// already variable-resolved spell target.
//
// Color parsing uses github.com/mazznoer/csscolorparser, which accepts the
// full CSS Color Module Level 4 surface (hex, rgb(), hsl(), hwb(), named
// colors) the spec requires. Color arithmetic (hue rotation, HSL-space
// lighten/darken/saturate, mixing, grayscale, complement) is performed with
// github.com/lucasb-eyer/go-colorful, which provides the HSL round-trip and
// blending math a hand-rolled implementation would otherwise have to
// reimplement byte-for-byte.
package gfunc

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

// colorFamily identifies the notation family a color literal was written in,
// so evaluated output can preserve it where unambiguous.
type colorFamily int

const (
	familyRGB colorFamily = iota
	familyHex
	familyHSL
	familyHWB
	familyNamed
)

// colorArg is a parsed color argument: colorful.Color for HSL/RGB math, plus
// enough bookkeeping to re-serialize in the input's notation family.
type colorArg struct {
	c      colorful.Color
	alpha  float64
	family colorFamily
}

func detectFamily(s string) colorFamily {
	trimmed := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(trimmed, "#"):
		return familyHex
	case strings.HasPrefix(trimmed, "hsl"):
		return familyHSL
	case strings.HasPrefix(trimmed, "hwb"):
		return familyHWB
	case strings.HasPrefix(trimmed, "rgb"):
		return familyRGB
	default:
		return familyNamed
	}
}

func parseColorArg(s string) (colorArg, error) {
	parsed, err := csscolorparser.Parse(s)
	if err != nil {
		return colorArg{}, fmt.Errorf("gfunc: invalid color %q: %w", s, err)
	}
	return colorArg{
		c:      colorful.Color{R: parsed.R, G: parsed.G, B: parsed.B},
		alpha:  parsed.A,
		family: detectFamily(s),
	}, nil
}

// render re-serializes a color argument, preserving its input family where
// unambiguous and falling back to rgb()/rgba() otherwise.
func render(c colorArg) string {
	switch c.family {
	case familyHex:
		if c.alpha >= 1 {
			return c.c.Clamped().Hex()
		}
	case familyHSL:
		h, s, l := c.c.Clamped().Hsl()
		if c.alpha >= 1 {
			return fmt.Sprintf("hsl(%s, %s%%, %s%%)", trimFloat(h), trimFloat(s*100), trimFloat(l*100))
		}
		return fmt.Sprintf("hsla(%s, %s%%, %s%%, %s)", trimFloat(h), trimFloat(s*100), trimFloat(l*100), trimFloat(c.alpha))
	}

	r, g, b := clamp255(c.c.R), clamp255(c.c.G), clamp255(c.c.B)
	if c.alpha >= 1 {
		return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, trimFloat(c.alpha))
}

func clamp255(v float64) int {
	i := int(math.Round(v * 255))
	if i < 0 {
		return 0
	}
	if i > 255 {
		return 255
	}
	return i
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// parseFloatLenient parses a numeric argument that may carry an implicit
// unit suffix ("%" or "deg") the evaluator supplies rather than the author.
func parseFloatLenient(s string) (float64, error) {
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSuffix(s, "deg")
	return strconv.ParseFloat(s, 64)
}

func clampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func normalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// Grayscale implements g-grayscale: set saturation to 0.
func Grayscale(color string) (string, error) {
	arg, err := parseColorArg(color)
	if err != nil {
		return "", err
	}
	h, _, l := arg.c.Hsl()
	arg.c = colorful.Hsl(h, 0, l)
	return render(arg), nil
}

// Complement implements g-complement: rotate hue by 180deg.
func Complement(color string) (string, error) {
	return AdjustHue(color, "180")
}

// Invert implements g-invert(color, weight?=100): mix the RGB inverse with
// the original color by weight percent of the inverse.
func Invert(color string, weight string) (string, error) {
	arg, err := parseColorArg(color)
	if err != nil {
		return "", err
	}
	w := 100.0
	if weight != "" {
		w, err = strconv.ParseFloat(weight, 64)
		if err != nil {
			return "", fmt.Errorf("gfunc: invalid weight %q: %w", weight, err)
		}
	}
	w = clampPercent(w) / 100
	inverse := colorful.Color{R: 1 - arg.c.R, G: 1 - arg.c.G, B: 1 - arg.c.B}
	arg.c = arg.c.BlendRgb(inverse, w)
	return render(arg), nil
}

// Mix implements g-mix(c1, c2, w): w is the percentage weight of c1.
func Mix(c1, c2, weight string) (string, error) {
	a1, err := parseColorArg(c1)
	if err != nil {
		return "", err
	}
	a2, err := parseColorArg(c2)
	if err != nil {
		return "", err
	}
	w, err := strconv.ParseFloat(weight, 64)
	if err != nil {
		return "", fmt.Errorf("gfunc: invalid weight %q: %w", weight, err)
	}
	w = clampPercent(w) / 100
	mixed := a1.c.BlendRgb(a2.c, 1-w)
	out := colorArg{c: mixed, alpha: a1.alpha*w + a2.alpha*(1-w), family: a1.family}
	return render(out), nil
}

// AdjustHue implements g-adjust-hue(color, degrees).
func AdjustHue(color, degreesStr string) (string, error) {
	arg, err := parseColorArg(color)
	if err != nil {
		return "", err
	}
	degrees, err := strconv.ParseFloat(degreesStr, 64)
	if err != nil {
		return "", fmt.Errorf("gfunc: invalid degrees %q: %w", degreesStr, err)
	}
	h, s, l := arg.c.Hsl()
	arg.c = colorful.Hsl(normalizeHue(h+degrees), s, l)
	return render(arg), nil
}

// AdjustColor implements g-adjust-color: delta RGB + delta HSL + alpha,
// applied additively. args is positional: r g b h s l a, any of which may be
// the literal "0" placeholder when unused by the call site.
func AdjustColor(color string, deltas map[string]float64) (string, error) {
	arg, err := parseColorArg(color)
	if err != nil {
		return "", err
	}
	if dr, ok := deltas["red"]; ok {
		arg.c.R = clampUnit(arg.c.R + dr/255)
	}
	if dg, ok := deltas["green"]; ok {
		arg.c.G = clampUnit(arg.c.G + dg/255)
	}
	if db, ok := deltas["blue"]; ok {
		arg.c.B = clampUnit(arg.c.B + db/255)
	}
	if dh, ok := deltas["hue"]; ok {
		h, s, l := arg.c.Hsl()
		arg.c = colorful.Hsl(normalizeHue(h+dh), s, l)
	}
	if ds, ok := deltas["saturation"]; ok {
		h, s, l := arg.c.Hsl()
		arg.c = colorful.Hsl(h, clampUnit(s+ds/100), l)
	}
	if dl, ok := deltas["lightness"]; ok {
		h, s, l := arg.c.Hsl()
		arg.c = colorful.Hsl(h, s, clampUnit(l+dl/100))
	}
	if da, ok := deltas["alpha"]; ok {
		arg.alpha = clampUnit(arg.alpha + da)
	}
	return render(arg), nil
}

// ChangeColor implements g-change-color: absolute component assignment.
func ChangeColor(color string, values map[string]float64) (string, error) {
	arg, err := parseColorArg(color)
	if err != nil {
		return "", err
	}
	h, s, l := arg.c.Hsl()
	hueSet, satSet, lightSet := false, false, false
	if v, ok := values["hue"]; ok {
		h = normalizeHue(v)
		hueSet = true
	}
	if v, ok := values["saturation"]; ok {
		s = clampUnit(v / 100)
		satSet = true
	}
	if v, ok := values["lightness"]; ok {
		l = clampUnit(v / 100)
		lightSet = true
	}
	if hueSet || satSet || lightSet {
		arg.c = colorful.Hsl(h, s, l)
	}
	if v, ok := values["red"]; ok {
		arg.c.R = clampUnit(v / 255)
	}
	if v, ok := values["green"]; ok {
		arg.c.G = clampUnit(v / 255)
	}
	if v, ok := values["blue"]; ok {
		arg.c.B = clampUnit(v / 255)
	}
	if v, ok := values["alpha"]; ok {
		arg.alpha = clampUnit(v)
	}
	return render(arg), nil
}

// ScaleColor implements g-scale-color: percentage scaling toward the
// component's maximum (positive) or minimum (negative).
func ScaleColor(color string, scales map[string]float64) (string, error) {
	arg, err := parseColorArg(color)
	if err != nil {
		return "", err
	}
	scaleChannel := func(v, pct float64) float64 {
		pct = pct / 100
		if pct >= 0 {
			return v + (1-v)*pct
		}
		return v + v*pct
	}
	if pct, ok := scales["red"]; ok {
		arg.c.R = clampUnit(scaleChannel(arg.c.R, pct))
	}
	if pct, ok := scales["green"]; ok {
		arg.c.G = clampUnit(scaleChannel(arg.c.G, pct))
	}
	if pct, ok := scales["blue"]; ok {
		arg.c.B = clampUnit(scaleChannel(arg.c.B, pct))
	}
	if pct, ok := scales["saturation"]; ok {
		h, s, l := arg.c.Hsl()
		arg.c = colorful.Hsl(h, clampUnit(scaleChannel(s, pct)), l)
	}
	if pct, ok := scales["lightness"]; ok {
		h, s, l := arg.c.Hsl()
		arg.c = colorful.Hsl(h, s, clampUnit(scaleChannel(l, pct)))
	}
	if pct, ok := scales["alpha"]; ok {
		arg.alpha = clampUnit(scaleChannel(arg.alpha, pct))
	}
	return render(arg), nil
}

// RGBA implements g-rgba(color, alpha): force the given alpha channel.
func RGBA(color, alphaStr string) (string, error) {
	arg, err := parseColorArg(color)
	if err != nil {
		return "", err
	}
	alpha, err := strconv.ParseFloat(alphaStr, 64)
	if err != nil {
		return "", fmt.Errorf("gfunc: invalid alpha %q: %w", alphaStr, err)
	}
	arg.alpha = clampUnit(alpha)
	arg.family = familyRGB
	return render(arg), nil
}

// Lighten implements g-lighten(color, amount-percent).
func Lighten(color, amountStr string) (string, error) {
	return scaleLightness(color, amountStr, 1)
}

// Darken implements g-darken(color, amount-percent).
func Darken(color, amountStr string) (string, error) {
	return scaleLightness(color, amountStr, -1)
}

func scaleLightness(color, amountStr string, sign float64) (string, error) {
	arg, err := parseColorArg(color)
	if err != nil {
		return "", err
	}
	amount, err := strconv.ParseFloat(strings.TrimSuffix(amountStr, "%"), 64)
	if err != nil {
		return "", fmt.Errorf("gfunc: invalid amount %q: %w", amountStr, err)
	}
	h, s, l := arg.c.Hsl()
	l = clampUnit(l + sign*amount/100)
	arg.c = colorful.Hsl(h, s, l)
	return render(arg), nil
}

// Saturate implements g-saturate(color, amount-percent).
func Saturate(color, amountStr string) (string, error) {
	return scaleSaturation(color, amountStr, 1)
}

// Desaturate implements g-desaturate(color, amount-percent).
func Desaturate(color, amountStr string) (string, error) {
	return scaleSaturation(color, amountStr, -1)
}

func scaleSaturation(color, amountStr string, sign float64) (string, error) {
	arg, err := parseColorArg(color)
	if err != nil {
		return "", err
	}
	amount, err := strconv.ParseFloat(strings.TrimSuffix(amountStr, "%"), 64)
	if err != nil {
		return "", fmt.Errorf("gfunc: invalid amount %q: %w", amountStr, err)
	}
	h, s, l := arg.c.Hsl()
	s = clampUnit(s + sign*amount/100)
	arg.c = colorful.Hsl(h, s, l)
	return render(arg), nil
}

// Opacify implements g-opacify/g-fade-in(color, amount).
func Opacify(color, amountStr string) (string, error) {
	return scaleAlpha(color, amountStr, 1)
}

// Transparentize implements g-transparentize/g-fade-out(color, amount).
func Transparentize(color, amountStr string) (string, error) {
	return scaleAlpha(color, amountStr, -1)
}

func scaleAlpha(color, amountStr string, sign float64) (string, error) {
	arg, err := parseColorArg(color)
	if err != nil {
		return "", err
	}
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		return "", fmt.Errorf("gfunc: invalid amount %q: %w", amountStr, err)
	}
	arg.alpha = clampUnit(arg.alpha + sign*amount)
	return render(arg), nil
}
