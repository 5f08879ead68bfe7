package scroll_test

import (
	"errors"
	"strings"
	"testing"

	"grimoirecss.dev/grimoire/scroll"
)

func reg(scrolls ...scroll.Scroll) *scroll.Registry {
	return scroll.NewRegistry(scrolls)
}

func TestResolveRawSpellPassesThrough(t *testing.T) {
	spells, err := scroll.Resolve("bgc=red", 0, 0, reg())
	if err != nil {
		t.Fatal(err)
	}
	if len(spells) != 1 || spells[0].Component != "bgc" || spells[0].Target != "red" {
		t.Errorf("Resolve(bgc=red) = %+v", spells)
	}
}

func TestResolveUnknownComponentPassesThrough(t *testing.T) {
	spells, err := scroll.Resolve("--my-var=1", 0, 0, reg())
	if err != nil {
		t.Fatal(err)
	}
	if len(spells) != 1 || spells[0].Component != "--my-var" {
		t.Errorf("Resolve(--my-var=1) = %+v", spells)
	}
}

func TestResolveScrollWithArguments(t *testing.T) {
	r := reg(scroll.Scroll{
		Name:   "btn",
		Spells: []string{"p=$", "bgc=$", "c=$", "hover:bgc=$"},
	})
	spells, err := scroll.Resolve("btn=4px_red_white_navy", 0, 0, r)
	if err != nil {
		t.Fatal(err)
	}
	want := []struct {
		component, target string
		effects           []string
	}{
		{"p", "4px", nil},
		{"bgc", "red", nil},
		{"c", "white", nil},
		{"bgc", "navy", []string{"hover"}},
	}
	if len(spells) != len(want) {
		t.Fatalf("got %d spells, want %d: %+v", len(spells), len(want), spells)
	}
	for i, w := range want {
		if spells[i].Component != w.component || spells[i].Target != w.target {
			t.Errorf("spell[%d] = %+v, want component=%s target=%s", i, spells[i], w.component, w.target)
		}
		if strings.Join(spells[i].Effects, ",") != strings.Join(w.effects, ",") {
			t.Errorf("spell[%d] effects = %v, want %v", i, spells[i].Effects, w.effects)
		}
	}
}

func TestResolveArityMismatchIsFatal(t *testing.T) {
	r := reg(scroll.Scroll{Name: "btn", Spells: []string{"p=$", "bgc=$"}})
	if _, err := scroll.Resolve("btn=onlyone", 0, 0, r); !errors.Is(err, scroll.ErrArityMismatch) {
		t.Errorf("expected ErrArityMismatch, got %v", err)
	}
}

func TestResolveExtendsFlattensParentsBeforeOwnSpells(t *testing.T) {
	r := reg(
		scroll.Scroll{Name: "base", Spells: []string{"p=1px"}},
		scroll.Scroll{Name: "derived", Extends: []string{"base"}, Spells: []string{"m=2px"}},
	)
	spells, err := scroll.Resolve("derived", 0, 0, r)
	if err != nil {
		t.Fatal(err)
	}
	if len(spells) != 2 || spells[0].Component != "p" || spells[1].Component != "m" {
		t.Errorf("Resolve(derived) = %+v, want [p=1px, m=2px]", spells)
	}
}

func TestResolveExtendsCycleIsFatal(t *testing.T) {
	r := reg(
		scroll.Scroll{Name: "a", Extends: []string{"b"}},
		scroll.Scroll{Name: "b", Extends: []string{"a"}},
	)
	if _, err := scroll.Resolve("a", 0, 0, r); !errors.Is(err, scroll.ErrCyclicExtends) {
		t.Errorf("expected ErrCyclicExtends, got %v", err)
	}
}

func TestResolveUnknownScrollBareName(t *testing.T) {
	if _, err := scroll.Resolve("nonexistent", 0, 0, reg()); !errors.Is(err, scroll.ErrUnknownScroll) {
		t.Errorf("expected ErrUnknownScroll, got %v", err)
	}
}

func TestResolveSpellByArgsSelectsVariant(t *testing.T) {
	r := reg(scroll.Scroll{
		Name:   "sz",
		Spells: []string{"p=1px"},
		SpellByArgs: map[string][]string{
			"1": {"p=$"},
		},
	})
	spells, err := scroll.Resolve("sz=10px", 0, 0, r)
	if err != nil {
		t.Fatal(err)
	}
	if len(spells) != 1 || spells[0].Target != "10px" {
		t.Errorf("Resolve(sz=10px) = %+v, want p=10px from spellByArgs variant", spells)
	}
}

func TestResolveTemplatedScrollReference(t *testing.T) {
	r := reg(
		scroll.Scroll{Name: "base-btn", Spells: []string{"p=$"}},
		scroll.Scroll{Name: "primary-btn", Spells: []string{"base-btn=8px", "bgc=blue"}},
	)
	spells, err := scroll.Resolve("primary-btn", 0, 0, r)
	if err != nil {
		t.Fatal(err)
	}
	if len(spells) != 2 || spells[0].Component != "p" || spells[0].Target != "8px" || spells[1].Component != "bgc" {
		t.Errorf("Resolve(primary-btn) = %+v", spells)
	}
}

func TestResolveOuterContextPropagatesNearestWinsArea(t *testing.T) {
	r := reg(scroll.Scroll{Name: "btn", Spells: []string{"md__p=1px", "bgc=red"}})
	spells, err := scroll.Resolve("sm__btn", 0, 0, r)
	if err != nil {
		t.Fatal(err)
	}
	if spells[0].Area != "md" {
		t.Errorf("inner area should win over outer: got %q, want md", spells[0].Area)
	}
	if spells[1].Area != "sm" {
		t.Errorf("outer area should apply when inner has none: got %q, want sm", spells[1].Area)
	}
}

func TestResolveOuterFocusConcatenatesWithDescendantCombinator(t *testing.T) {
	r := reg(scroll.Scroll{Name: "btn", Spells: []string{"{span}c=red"}})
	spells, err := scroll.Resolve("{.wrap}btn", 0, 0, r)
	if err != nil {
		t.Fatal(err)
	}
	if spells[0].Focus != ".wrap span" {
		t.Errorf("Focus = %q, want %q", spells[0].Focus, ".wrap span")
	}
}

func TestResolveOuterEffectsUnionPreservesFirstSeenOrder(t *testing.T) {
	r := reg(scroll.Scroll{Name: "btn", Spells: []string{"focus:c=red"}})
	spells, err := scroll.Resolve("hover:btn", 0, 0, r)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"hover", "focus"}
	if len(spells[0].Effects) != 2 || spells[0].Effects[0] != want[0] || spells[0].Effects[1] != want[1] {
		t.Errorf("Effects = %v, want %v", spells[0].Effects, want)
	}
}
