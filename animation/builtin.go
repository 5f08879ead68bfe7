package animation

// Definition is a catalog entry: an opaque @keyframes block plus optional
// declarations bound to the GRIMOIRE_CSS_ANIMATION placeholder selector,
// rewritten at emit time to the class that referenced the animation.
type Definition struct {
	Name               string
	KeyframesCSS       string
	PlaceholderCSS     string // "" if the animation carries no supplemental declarations
	HasPlaceholderRule bool
}

// builtinNames is the fixed-order name list for the built-in catalog, so
// BuiltinNames returns the same order regardless of Go's randomized map
// iteration. Emission order follows token order, not this list.
var builtinNames = []string{
	"spin", "fade-in", "fade-out", "bounce", "pulse", "ping",
}

var builtin = map[string]Definition{
	"spin": {
		Name: "spin",
		KeyframesCSS: "@keyframes spin {" +
			"from { transform: rotate(0deg); } " +
			"to { transform: rotate(360deg); } }",
	},
	"fade-in": {
		Name: "fade-in",
		KeyframesCSS: "@keyframes fade-in {" +
			"from { opacity: 0; } " +
			"to { opacity: 1; } }",
	},
	"fade-out": {
		Name: "fade-out",
		KeyframesCSS: "@keyframes fade-out {" +
			"from { opacity: 1; } " +
			"to { opacity: 0; } }",
	},
	"bounce": {
		Name: "bounce",
		KeyframesCSS: "@keyframes bounce {" +
			"0%, 100% { transform: translateY(0); animation-timing-function: cubic-bezier(0.8,0,1,1); } " +
			"50% { transform: translateY(-25%); animation-timing-function: cubic-bezier(0,0,0.2,1); } }",
	},
	"pulse": {
		Name: "pulse",
		KeyframesCSS: "@keyframes pulse {" +
			"0%, 100% { opacity: 1; } " +
			"50% { opacity: 0.5; } }",
	},
	"ping": {
		Name: "ping",
		KeyframesCSS: "@keyframes ping {" +
			"75%, 100% { transform: scale(2); opacity: 0; } }",
		PlaceholderCSS:     "animation-duration: 1s; animation-iteration-count: infinite;",
		HasPlaceholderRule: true,
	},
}
