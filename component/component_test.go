package component_test

import (
	"testing"

	"grimoirecss.dev/grimoire/component"
)

func TestCanonicalize(t *testing.T) {
	if got := component.Canonicalize("bgc"); got != "background-color" {
		t.Errorf("Canonicalize(bgc) = %q", got)
	}
	if got := component.Canonicalize("background-color"); got != "background-color" {
		t.Errorf("Canonicalize(background-color) = %q", got)
	}
	if got := component.Canonicalize("--my-var"); got != "--my-var" {
		t.Errorf("Canonicalize(--my-var) = %q, want passthrough", got)
	}
}

func TestShortest(t *testing.T) {
	if got := component.Shortest("background-color"); got != "bgc" {
		t.Errorf("Shortest(background-color) = %q", got)
	}
	if got := component.Shortest("bgc"); got != "bgc" {
		t.Errorf("Shortest(bgc) = %q", got)
	}
	if got := component.Shortest("--my-var"); got != "--my-var" {
		t.Errorf("Shortest(--my-var) = %q, want passthrough", got)
	}
}

func TestIsKnown(t *testing.T) {
	if !component.IsKnown("bgc") || !component.IsKnown("color") {
		t.Error("expected known components to be recognized")
	}
	if component.IsKnown("--does-not-exist") {
		t.Error("unexpected IsKnown for unrecognized name")
	}
}
