package gfunc_test

import (
	"strings"
	"testing"

	"grimoirecss.dev/grimoire/gfunc"
)

func TestEvaluateMfs(t *testing.T) {
	out, err := gfunc.Evaluate("mfs(12px 36px)")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "clamp(12px,") || !strings.HasSuffix(out, "36px)") {
		t.Errorf("Evaluate(mfs) = %q", out)
	}
}

func TestEvaluateMrsDefaults(t *testing.T) {
	out, err := gfunc.Evaluate("mrs(1rem 2rem)")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "320px") || !strings.Contains(out, "1280px") {
		t.Errorf("Evaluate(mrs) missing default viewport bounds: %q", out)
	}
}

func TestEvaluatePassthrough(t *testing.T) {
	out, err := gfunc.Evaluate("var(--x)")
	if err != nil {
		t.Fatal(err)
	}
	if out != "var(--x)" {
		t.Errorf("Evaluate should pass through non-grimoire functions, got %q", out)
	}
}

func TestEvaluateColorFunctions(t *testing.T) {
	out, err := gfunc.Evaluate("g-lighten(#336699 20)")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "#") {
		t.Errorf("g-lighten on hex input should preserve hex family, got %q", out)
	}

	out, err = gfunc.Evaluate("g-mix(red blue 50)")
	if err != nil {
		t.Fatal(err)
	}
	if out == "" {
		t.Error("g-mix produced empty output")
	}
}

func TestEvaluateUnbalanced(t *testing.T) {
	if _, err := gfunc.Evaluate("mfs(12px 36px"); err == nil {
		t.Error("expected error for unbalanced parens")
	}
}
