package spell

// NamedAreas maps the built-in mobile-first breakpoint names to their
// `(min-width: …)` media query. Exposed as named constants per spec.md §9's
// note that default viewport bounds (here, breakpoint widths) should be
// named and documented rather than left as magic numbers.
var NamedAreas = map[string]string{
	"sm":  "(min-width: 640px)",
	"md":  "(min-width: 768px)",
	"lg":  "(min-width: 1024px)",
	"xl":  "(min-width: 1280px)",
	"2xl": "(min-width: 1536px)",
}

// MediaQuery resolves a Spell's Area into the literal media-query predicate
// to emit, or "" if the spell has no area. Named areas resolve through
// NamedAreas; literal "(...)" areas are returned verbatim.
func MediaQuery(s Spell) string {
	if s.Area == "" {
		return ""
	}
	if s.AreaIsRaw {
		return "(" + s.Area + ")"
	}
	if mq, ok := NamedAreas[s.Area]; ok {
		return mq
	}
	return s.Area
}
