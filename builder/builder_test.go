package builder

import (
	"strings"
	"testing"

	"grimoirecss.dev/grimoire/config"
	"grimoirecss.dev/grimoire/diag"
	"grimoirecss.dev/grimoire/fsx"
	"grimoirecss.dev/grimoire/scroll"
)

func newTestContext(t *testing.T, scrolls []scroll.Scroll, vars map[string]string) *Context {
	t.Helper()
	fs := fsx.NewMem()
	cfg := &config.Config{Scrolls: scrolls, Variables: vars, Browserslist: "defaults"}
	return NewContext(fs, "", cfg, nil)
}

func resolveAndEmit(t *testing.T, ctx *Context, token string) string {
	t.Helper()
	acc := diag.NewAccumulator()
	tr, err := resolveToken(ctx, token, acc.AddFile("t", token), 0, acc)
	if err != nil {
		t.Fatalf("resolveToken(%q): %v", token, err)
	}
	rules := groupDeclarations(tr.Declarations, nil)
	return strings.TrimSpace(emitRules(rules))
}

// Scenario 1: bgc=red -> .bgc\=red { background-color: red; }
func TestScenario1BasicSpell(t *testing.T) {
	ctx := newTestContext(t, nil, nil)
	got := resolveAndEmit(t, ctx, "bgc=red")
	want := `.bgc\=red { background-color: red; }`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// Scenario 2: md__bgc=red -> @media (min-width: 768px) { .md__bgc\=red ... }
func TestScenario2NamedArea(t *testing.T) {
	ctx := newTestContext(t, nil, nil)
	got := resolveAndEmit(t, ctx, "md__bgc=red")
	if !strings.Contains(got, "@media (min-width: 768px)") {
		t.Errorf("got %q, want a (min-width: 768px) media block", got)
	}
	if !strings.Contains(got, `.md__bgc\=red`) {
		t.Errorf("got %q, want selector .md__bgc\\=red", got)
	}
	if !strings.Contains(got, "background-color: red") {
		t.Errorf("got %q, want background-color: red", got)
	}
}

// Scenario 3: hover:c=blue -> .hover\:c\=blue:hover { color: blue; }
func TestScenario3Effect(t *testing.T) {
	ctx := newTestContext(t, nil, nil)
	got := resolveAndEmit(t, ctx, "hover:c=blue")
	want := `.hover\:c\=blue:hover { color: blue; }`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// Scenario 4: btn=4px_red_white_navy with scroll btn -> two rules (base, hover).
func TestScenario4ScrollExpansion(t *testing.T) {
	btn := scroll.Scroll{Name: "btn", Spells: []string{"p=$", "bgc=$", "c=$", "hover:bgc=$"}}
	ctx := newTestContext(t, []scroll.Scroll{btn}, nil)
	got := resolveAndEmit(t, ctx, "btn=4px_red_white_navy")

	if !strings.Contains(got, `.btn\=4px_red_white_navy { padding: 4px; background-color: red; color: white; }`) {
		t.Errorf("got %q, missing base rule", got)
	}
	if !strings.Contains(got, `.btn\=4px_red_white_navy:hover { background-color: navy; }`) {
		t.Errorf("got %q, missing hover rule", got)
	}
}

// Scenario 5: g!c=violet&disp=flex; -> one rule, combined declarations,
// selector equal to the full literal templated token.
func TestScenario5TemplatedSpell(t *testing.T) {
	ctx := newTestContext(t, nil, nil)
	got := resolveAndEmit(t, ctx, "g!c=violet&disp=flex;")
	want := `.g\!c\=violet\&disp\=flex\; { color: violet; display: flex; }`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// Scenario 6: fs=mfs(12px_36px) -> font-size: clamp(12px, ..., 36px)
func TestScenario6SizingFunction(t *testing.T) {
	ctx := newTestContext(t, nil, nil)
	got := resolveAndEmit(t, ctx, "fs=mfs(12px_36px)")
	if !strings.Contains(got, "font-size: clamp(12px") || !strings.Contains(got, "36px)") {
		t.Errorf("got %q, want a clamp(12px, ..., 36px) font-size", got)
	}
}

// Scenario 7: two identical tokens across separate files in a single-output
// project emit exactly one rule.
func TestScenario7DedupAcrossFiles(t *testing.T) {
	ctx := newTestContext(t, nil, nil)
	acc := diag.NewAccumulator()

	id1 := acc.AddFile("a.html", `class="c=red"`)
	tr1, err := resolveToken(ctx, "c=red", id1, 0, acc)
	if err != nil {
		t.Fatalf("resolveToken: %v", err)
	}
	id2 := acc.AddFile("b.html", `class="c=red"`)
	tr2, err := resolveToken(ctx, "c=red", id2, 0, acc)
	if err != nil {
		t.Fatalf("resolveToken: %v", err)
	}

	all := append(append([]declaration{}, tr1.Declarations...), tr2.Declarations...)
	rules := groupDeclarations(all, nil)
	if len(rules) != 1 {
		t.Fatalf("rules = %#v, want exactly 1", rules)
	}
}

// Scenario 8: extends cycle A->B->A yields a ResolutionError.
func TestScenario8ExtendsCycle(t *testing.T) {
	a := scroll.Scroll{Name: "a", Extends: []string{"b"}, Spells: []string{"c=red"}}
	b := scroll.Scroll{Name: "b", Extends: []string{"a"}, Spells: []string{"c=blue"}}
	ctx := newTestContext(t, []scroll.Scroll{a, b}, nil)

	acc := diag.NewAccumulator()
	_, err := resolveToken(ctx, "a", acc.AddFile("t", "a"), 0, acc)
	if err == nil {
		t.Fatal("expected a ResolutionError for the extends cycle")
	}
	if !acc.HasErrors() {
		t.Error("expected the cycle to be recorded as a diagnostic")
	}
}

// An evaluation error (here, an illegal color argument to g-grayscale) in
// one spell of a scroll must not discard the scroll's other, successfully
// evaluated spells — §7's EvaluationError policy halts only the offending
// spell, not the containing token.
func TestEvaluationErrorSkipsOnlyTheFailingSpell(t *testing.T) {
	mixed := scroll.Scroll{Name: "mixed", Spells: []string{"bgc=red", "c=g-grayscale(not-a-color)"}}
	ctx := newTestContext(t, []scroll.Scroll{mixed}, nil)
	acc := diag.NewAccumulator()

	tr, err := resolveToken(ctx, "mixed", acc.AddFile("t", "mixed"), 0, acc)
	if err != nil {
		t.Fatalf("resolveToken: %v", err)
	}
	if !acc.HasErrors() {
		t.Error("expected the illegal color to be recorded as a diagnostic")
	}

	rules := groupDeclarations(tr.Declarations, nil)
	got := strings.TrimSpace(emitRules(rules))
	want := `.mixed { background-color: red; }`
	if got != want {
		t.Errorf("got %q, want %q (color spell skipped, background-color spell still emitted)", got, want)
	}
}

// Boundary: unknown component passes through unchanged.
func TestUnknownComponentPassesThrough(t *testing.T) {
	ctx := newTestContext(t, nil, nil)
	got := resolveAndEmit(t, ctx, "--my-var=1")
	want := `.--my-var\=1 { --my-var: 1; }`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// Boundary: target with embedded spaces.
func TestTargetWithEmbeddedSpaces(t *testing.T) {
	ctx := newTestContext(t, nil, nil)
	got := resolveAndEmit(t, ctx, "m=10px_20px")
	if !strings.Contains(got, "margin: 10px 20px") {
		t.Errorf("got %q, want margin: 10px 20px", got)
	}
}

// Boundary: focus with a nested selector composes class directly after it.
func TestFocusWithNestedSelector(t *testing.T) {
	ctx := newTestContext(t, nil, nil)
	got := resolveAndEmit(t, ctx, "{[hidden]_>_p:hover}c=red")
	if !strings.Contains(got, `[hidden] > p:hover.`) {
		t.Errorf("got %q, want a selector starting with '[hidden] > p:hover.'", got)
	}
	if !strings.Contains(got, "color: red") {
		t.Errorf("got %q, want color: red", got)
	}
}

// Boundary: empty input file still produces an (empty) single-output
// artifact.
func TestEmptyProjectProducesEmptyArtifact(t *testing.T) {
	fs := fsx.NewMem()
	writeFile(t, fs, "src/empty.html", "")
	cfg := &config.Config{Browserslist: "defaults"}
	ctx := NewContext(fs, "", cfg, nil)
	acc := diag.NewAccumulator()

	proj := config.Project{Name: "site", InputPaths: []string{"src/empty.html"}, OutputDirPath: "dist", SingleOutputFileName: "site.css"}
	results := BuildProject(ctx, proj, acc, nil)
	if len(results) != 1 {
		t.Fatalf("results = %#v, want 1", results)
	}
	if results[0].State != Tracked {
		t.Fatalf("state = %v, want Tracked", results[0].State)
	}
	if !fs.Exists("dist/site.css") {
		t.Error("expected dist/site.css to be written even though empty")
	}
}

// Invariant 2 (via groupDeclarations): identical canonical tuples collapse
// to one declaration regardless of repetition count.
func TestGroupDeclarationsDedupsIdenticalTuples(t *testing.T) {
	decls := []declaration{
		{Media: "", Selector: ".c\\=red", Property: "color", Value: "red"},
		{Media: "", Selector: ".c\\=red", Property: "color", Value: "red"},
	}
	rules := groupDeclarations(decls, nil)
	if len(rules) != 1 || len(rules[0].Decls) != 1 {
		t.Fatalf("rules = %#v, want exactly 1 rule with 1 declaration", rules)
	}
}

// Invariant 6: non-media rules precede every media-query block.
func TestNonMediaRulesPrecedeMediaBlocks(t *testing.T) {
	decls := []declaration{
		{Media: "(min-width: 768px)", Selector: ".a", Property: "color", Value: "red"},
		{Media: "", Selector: ".b", Property: "color", Value: "blue"},
	}
	rules := groupDeclarations(decls, nil)
	if len(rules) != 2 {
		t.Fatalf("rules = %#v, want 2", rules)
	}
	if rules[0].Media != "" || rules[1].Media == "" {
		t.Errorf("rules = %#v, want non-media rule first", rules)
	}
}

// Grouping: two selectors with identical declaration sets merge under a
// comma-joined selector.
func TestMergesIdenticalDeclarationSets(t *testing.T) {
	decls := []declaration{
		{Media: "", Selector: ".a", Property: "color", Value: "red"},
		{Media: "", Selector: ".b", Property: "color", Value: "red"},
	}
	rules := groupDeclarations(decls, nil)
	if len(rules) != 1 {
		t.Fatalf("rules = %#v, want 1 merged rule", rules)
	}
	if strings.Join(rules[0].Selectors, ", ") != ".a, .b" {
		t.Errorf("Selectors = %v, want [.a .b]", rules[0].Selectors)
	}
}

func writeFile(t *testing.T, fs fsx.FileSystem, path, content string) {
	t.Helper()
	if err := fs.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
}
