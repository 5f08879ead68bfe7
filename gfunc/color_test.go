package gfunc_test

import (
	"strings"
	"testing"

	"grimoirecss.dev/grimoire/gfunc"
)

func TestGrayscale(t *testing.T) {
	out, err := gfunc.Grayscale("#ff0000")
	if err != nil {
		t.Fatal(err)
	}
	if out == "#ff0000" {
		t.Errorf("Grayscale did not change color: %q", out)
	}
}

func TestComplementIsOppositeHue(t *testing.T) {
	out, err := gfunc.Complement("#ff0000")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "#") {
		t.Errorf("Complement(hex) should stay hex, got %q", out)
	}
	if out != "#00ffff" {
		t.Errorf("Complement(#ff0000) = %q, want #00ffff (hue 0 rotated to 180)", out)
	}
}

func TestInvertFull(t *testing.T) {
	out, err := gfunc.Invert("#000000", "100")
	if err != nil {
		t.Fatal(err)
	}
	if out != "#ffffff" {
		t.Errorf("Invert(#000000, 100) = %q, want #ffffff", out)
	}
}

func TestInvertDefaultWeight(t *testing.T) {
	out, err := gfunc.Invert("#000000", "")
	if err != nil {
		t.Fatal(err)
	}
	if out != "#ffffff" {
		t.Errorf("Invert with default weight = %q, want #ffffff", out)
	}
}

func TestMixEvenSplit(t *testing.T) {
	out, err := gfunc.Mix("#ffffff", "#000000", "50")
	if err != nil {
		t.Fatal(err)
	}
	if out == "" {
		t.Error("Mix produced empty output")
	}
}

func TestAdjustHueWrapsAround(t *testing.T) {
	out, err := gfunc.AdjustHue("#ff0000", "540")
	if err != nil {
		t.Fatal(err)
	}
	if out == "" {
		t.Error("AdjustHue produced empty output")
	}
}

func TestRGBAForcesAlpha(t *testing.T) {
	out, err := gfunc.RGBA("#336699", "0.5")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "rgba(") {
		t.Errorf("RGBA should render as rgba(), got %q", out)
	}
}

func TestLightenDarkenRoundTripBounds(t *testing.T) {
	lightened, err := gfunc.Lighten("#808080", "1000")
	if err != nil {
		t.Fatal(err)
	}
	if lightened != "#ffffff" {
		t.Errorf("Lighten past 100%% should clamp to white, got %q", lightened)
	}

	darkened, err := gfunc.Darken("#808080", "1000")
	if err != nil {
		t.Fatal(err)
	}
	if darkened != "#000000" {
		t.Errorf("Darken past 100%% should clamp to black, got %q", darkened)
	}
}

func TestSaturateDesaturateInvalidAmount(t *testing.T) {
	if _, err := gfunc.Saturate("#336699", "not-a-number"); err == nil {
		t.Error("expected error for non-numeric amount")
	}
}

func TestOpacifyTransparentize(t *testing.T) {
	faded, err := gfunc.Transparentize("#336699", "1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(faded, "rgba(") {
		t.Errorf("Transparentize should yield rgba(), got %q", faded)
	}

	opaque, err := gfunc.Opacify("#336699", "1")
	if err != nil {
		t.Fatal(err)
	}
	if opaque != "#336699" {
		t.Errorf("Opacify on already-opaque color should stay hex, got %q", opaque)
	}
}

func TestAdjustColorChangeColorScaleColor(t *testing.T) {
	adjusted, err := gfunc.AdjustColor("#336699", map[string]float64{"red": 10})
	if err != nil {
		t.Fatal(err)
	}
	if adjusted == "#336699" {
		t.Error("AdjustColor with a red delta should change the color")
	}

	changed, err := gfunc.ChangeColor("#336699", map[string]float64{"lightness": 90})
	if err != nil {
		t.Fatal(err)
	}
	if changed == "" {
		t.Error("ChangeColor produced empty output")
	}

	scaled, err := gfunc.ScaleColor("#336699", map[string]float64{"saturation": 50})
	if err != nil {
		t.Fatal(err)
	}
	if scaled == "" {
		t.Error("ScaleColor produced empty output")
	}
}

func TestParseColorArgInvalid(t *testing.T) {
	if _, err := gfunc.Grayscale("not-a-color"); err == nil {
		t.Error("expected error for invalid color literal")
	}
}
