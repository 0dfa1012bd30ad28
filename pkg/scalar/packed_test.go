package scalar

import (
	"math"
	"testing"
)

func TestColorPack_RoundTripTolerance(t *testing.T) {
	const tolerance = 1.0 / 65535.0

	values := []float64{0, 1.0 / 65535.0, 0.1, 0.25, 0.5, 1.0 / 3.0, 0.999, 1}
	for _, r := range values {
		for _, g := range values {
			c := Color{R: r, G: g, B: 1 - r, A: 1 - g}
			got := UnpackColor(c.Pack())

			checks := []struct {
				name string
				want float64
				got  float64
			}{
				{"R", c.R, got.R},
				{"G", c.G, got.G},
				{"B", c.B, got.B},
				{"A", c.A, got.A},
			}
			for _, ch := range checks {
				if math.Abs(ch.got-ch.want) > tolerance {
					t.Errorf("channel %s: got %v, want %v ± %v", ch.name, ch.got, ch.want, tolerance)
				}
			}
		}
	}
}

func TestColorPack_ChannelOrder(t *testing.T) {
	// Full red must occupy the top 16 bits, full alpha the bottom 16.
	red := Color{R: 1}.Pack()
	if red != Word(0xFFFF)<<48 {
		t.Errorf("red channel packed to %#x, want %#x", red, Word(0xFFFF)<<48)
	}
	alpha := Color{A: 1}.Pack()
	if alpha != Word(0xFFFF) {
		t.Errorf("alpha channel packed to %#x, want %#x", alpha, Word(0xFFFF))
	}
}

func TestColorPack_ClampsOutOfRange(t *testing.T) {
	c := Color{R: -0.5, G: 2, B: 0.5, A: 1}
	got := UnpackColor(c.Pack())
	if got.R != 0 {
		t.Errorf("negative channel should clamp to 0, got %v", got.R)
	}
	if got.G != 1 {
		t.Errorf("overflowing channel should clamp to 1, got %v", got.G)
	}
}

func TestColorPack_StableEncoding(t *testing.T) {
	// Packing is pure: the same input always yields the same word.
	c := Color{R: 0.3, G: 0.6, B: 0.9, A: 0.5}
	if c.Pack() != c.Pack() {
		t.Error("expected identical words for identical colors")
	}
}

func TestLayoutPack_RoundTripExact(t *testing.T) {
	alignments := []Alignment{AlignStart, AlignCenter, AlignEnd, AlignFill}
	for _, align := range alignments {
		for _, expand := range []bool{false, true} {
			l := Layout{Align: align, Expand: expand}
			got := UnpackLayout(l.Pack())
			if got != l {
				t.Errorf("UnpackLayout(Pack(%+v)) = %+v", l, got)
			}
		}
	}
}

func TestLayoutPack_BitLayout(t *testing.T) {
	w := Layout{Align: AlignEnd, Expand: true}.Pack()
	if w>>32 != Word(AlignEnd) {
		t.Errorf("high 32 bits = %d, want alignment ordinal %d", w>>32, AlignEnd)
	}
	if w&0xFFFFFFFF != 1 {
		t.Errorf("low 32 bits = %d, want 1", w&0xFFFFFFFF)
	}

	w = Layout{Align: AlignCenter}.Pack()
	if w&0xFFFFFFFF != 0 {
		t.Errorf("low 32 bits = %d, want 0 when expansion disabled", w&0xFFFFFFFF)
	}
}

func TestAlignmentString(t *testing.T) {
	tests := []struct {
		align Alignment
		want  string
	}{
		{AlignStart, "start"},
		{AlignCenter, "center"},
		{AlignEnd, "end"},
		{AlignFill, "fill"},
		{Alignment(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.align.String(); got != tt.want {
			t.Errorf("Alignment(%d).String() = %q, want %q", tt.align, got, tt.want)
		}
	}
}
