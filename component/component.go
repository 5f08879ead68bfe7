// Package component provides the bidirectional mapping between verbose CSS
// property names and their grimoire shorthand aliases. The map is built
// once at init and never mutated afterward, so it needs no synchronization
// even when shared across parallel project workers.
package component

// aliasToProperty and propertyToAlias are built once in init() from the
// alias table below and never written to again.
var (
	aliasToProperty = make(map[string]string, len(aliases))
	propertyToAlias = make(map[string]string, len(aliases))
)

// aliases is the canonical property -> shorthand alias table. Ordering here
// only matters for readability; lookups are by map key.
var aliases = map[string]string{
	"background-color":   "bgc",
	"background-image":   "bgi",
	"background-position": "bgp",
	"background-size":    "bgs",
	"color":               "c",
	"margin":              "m",
	"margin-top":          "mt",
	"margin-right":        "mr",
	"margin-bottom":       "mb",
	"margin-left":         "ml",
	"padding":             "p",
	"padding-top":         "pt",
	"padding-right":       "pr",
	"padding-bottom":      "pb",
	"padding-left":        "pl",
	"width":               "w",
	"height":              "h",
	"max-width":           "maxw",
	"max-height":          "maxh",
	"min-width":           "minw",
	"min-height":          "minh",
	"font-size":           "fs",
	"font-weight":         "fw",
	"font-family":         "ff",
	"line-height":         "lh",
	"letter-spacing":      "ls",
	"text-align":          "ta",
	"text-decoration":     "td",
	"text-transform":      "tt",
	"display":             "disp",
	"position":            "pos",
	"top":                 "t",
	"right":               "r",
	"bottom":              "b",
	"left":                "l",
	"z-index":             "z",
	"flex-direction":      "fd",
	"flex-wrap":           "fw-wrap",
	"justify-content":     "jc",
	"align-items":         "ai",
	"align-content":       "ac",
	"align-self":          "as",
	"gap":                 "gap",
	"grid-template-columns": "gtc",
	"grid-template-rows":  "gtr",
	"border":              "bd",
	"border-color":        "bdc",
	"border-width":        "bdw",
	"border-radius":       "br",
	"border-style":        "bds",
	"box-shadow":          "bxsh",
	"opacity":             "op",
	"overflow":            "ov",
	"cursor":              "cur",
	"transition":          "trs",
	"transform":           "tsf",
	"animation":           "anim",
	"outline":             "otl",
	"visibility":          "vis",
}

func init() {
	for property, alias := range aliases {
		propertyToAlias[property] = alias
		aliasToProperty[alias] = property
	}
}

// Canonicalize returns the canonical CSS property name for name, which may
// already be canonical, a known alias, or an unrecognized identifier. In
// the last case name passes through unchanged (a warning, not an error),
// supporting new or vendor-specific CSS properties without engine updates.
func Canonicalize(name string) string {
	if property, ok := aliasToProperty[name]; ok {
		return property
	}
	return name
}

// Shortest returns the shortest known alias for name (itself if name is
// already an alias or is unrecognized).
func Shortest(name string) string {
	if alias, ok := propertyToAlias[name]; ok {
		return alias
	}
	if _, ok := aliasToProperty[name]; ok {
		return name
	}
	return name
}

// IsKnown reports whether name is a recognized canonical property or alias.
func IsKnown(name string) bool {
	if _, ok := propertyToAlias[name]; ok {
		return true
	}
	if _, ok := aliasToProperty[name]; ok {
		return true
	}
	return false
}
