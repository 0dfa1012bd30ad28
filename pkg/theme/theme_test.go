package theme

import (
	"testing"

	"github.com/go-anvil/anvil/pkg/scalar"
)

func TestValues_SingleVariant(t *testing.T) {
	v := Of(scalar.ColorRed)

	if got := v.LightValue(); got != scalar.ColorRed {
		t.Errorf("LightValue() = %v, want red", got)
	}
	if _, ok := v.DarkValue(); ok {
		t.Error("expected no dark variant")
	}
}

func TestValues_PairedVariants(t *testing.T) {
	v := OfPair(scalar.ColorWhite, scalar.ColorBlack)

	if got := v.LightValue(); got != scalar.ColorWhite {
		t.Errorf("LightValue() = %v, want white", got)
	}
	dark, ok := v.DarkValue()
	if !ok {
		t.Fatal("expected a dark variant")
	}
	if dark != scalar.ColorBlack {
		t.Errorf("DarkValue() = %v, want black", dark)
	}
}

func TestValues_ImplementsPair(t *testing.T) {
	var _ Pair = Of("hello")
	var _ Pair = OfPair(1.0, 2.0)
}

func TestBrightnessString(t *testing.T) {
	if BrightnessLight.String() != "light" {
		t.Errorf("BrightnessLight.String() = %q", BrightnessLight.String())
	}
	if BrightnessDark.String() != "dark" {
		t.Errorf("BrightnessDark.String() = %q", BrightnessDark.String())
	}
}
