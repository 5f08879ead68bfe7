package extractor_test

import (
	"testing"

	"grimoirecss.dev/grimoire/extractor"
)

func texts(tokens []extractor.Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}

func TestExtractClassAttributeDoubleQuoted(t *testing.T) {
	src := `<div class="bgc=red c=white"></div>`
	toks := extractor.Extract(src, "page.unknown", 0)
	got := texts(toks)
	if len(got) != 2 || got[0] != "bgc=red" || got[1] != "c=white" {
		t.Errorf("Extract = %v", got)
	}
}

func TestExtractClassAttributeSingleQuoted(t *testing.T) {
	src := `<div class='bgc=red'></div>`
	toks := extractor.Extract(src, "page.unknown", 0)
	got := texts(toks)
	if len(got) != 1 || got[0] != "bgc=red" {
		t.Errorf("Extract = %v", got)
	}
}

func TestExtractClassNameAttribute(t *testing.T) {
	src := `<div className="bgc=red"></div>`
	toks := extractor.Extract(src, "page.unknown", 0)
	got := texts(toks)
	if len(got) != 1 || got[0] != "bgc=red" {
		t.Errorf("Extract = %v", got)
	}
}

func TestExtractLeadingDotOptional(t *testing.T) {
	src := `<div class=".bgc=red c=white"></div>`
	toks := extractor.Extract(src, "page.unknown", 0)
	got := texts(toks)
	if len(got) != 2 || got[0] != "bgc=red" {
		t.Errorf("Extract = %v, leading dot should be stripped", got)
	}
}

func TestExtractTemplatedBoundaryRule(t *testing.T) {
	src := "xg!c=red; g!disp=flex;"
	toks := extractor.Extract(src, "page.unknown", 0)
	got := texts(toks)
	if len(got) != 1 || got[0] != "g!disp=flex;" {
		t.Errorf("Extract = %v, expected only the boundary-preceded occurrence", got)
	}
}

func TestExtractTemplatedCombinedSpellsScenario(t *testing.T) {
	src := "some text g!c=violet&disp=flex; more text"
	toks := extractor.Extract(src, "page.unknown", 0)
	got := texts(toks)
	if len(got) != 1 || got[0] != "g!c=violet&disp=flex;" {
		t.Errorf("Extract = %v", got)
	}
	if !extractor.IsTemplated(got[0]) {
		t.Error("expected IsTemplated true")
	}
	parts := extractor.TemplatedParts(got[0])
	if len(parts) != 2 || parts[0] != "c=violet" || parts[1] != "disp=flex" {
		t.Errorf("TemplatedParts = %v", parts)
	}
}

func TestExtractNestedBraceAttribute(t *testing.T) {
	src := `<div class={"bgc=red c=white"}></div>`
	toks := extractor.Extract(src, "page.unknown", 0)
	got := texts(toks)
	if len(got) < 1 {
		t.Errorf("Extract produced no tokens for brace attribute: %v", got)
	}
}

func TestExtractEmptyInputYieldsNoTokens(t *testing.T) {
	toks := extractor.Extract("", "empty.unknown", 0)
	if len(toks) != 0 {
		t.Errorf("Extract(empty) = %v, want none", toks)
	}
}
