// Package scalar packs small attribute values into fixed 8-byte words so the
// reconciler can compare and carry them without heap allocation.
package scalar

// Word is an 8-byte packed value. The layout of the bits depends on the
// value kind that produced it; a Word is only meaningful to the codec that
// encoded it.
type Word uint64

// channelMax is the largest value of a 16-bit color channel.
const channelMax = 65535.0

// Color is a four-channel color with float channels in [0, 1].
type Color struct {
	R, G, B, A float64
}

// RGBA constructs an opaque-by-default color from normalized channels.
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Pack encodes the color into a Word with 16 bits per channel, ordered
// R, G, B, A from the most significant bits down. Each channel is clamped
// to [0, 1], scaled by 65535 and truncated, so the encoding is lossy:
// Unpack(Pack(c)) differs from c by at most 1/65535 per channel. A boxed
// float representation would be exact but costs an allocation per value on
// every render pass; the reconciler compares colors far more often than it
// displays them, and no display stack resolves more than 16 bits per
// channel, so the truncation is never observable.
func (c Color) Pack() Word {
	return Word(channel16(c.R))<<48 |
		Word(channel16(c.G))<<32 |
		Word(channel16(c.B))<<16 |
		Word(channel16(c.A))
}

// UnpackColor decodes a Word produced by Color.Pack.
func UnpackColor(w Word) Color {
	return Color{
		R: float64(uint16(w>>48)) / channelMax,
		G: float64(uint16(w>>32)) / channelMax,
		B: float64(uint16(w>>16)) / channelMax,
		A: float64(uint16(w)) / channelMax,
	}
}

// channel16 converts a normalized channel to its 16-bit encoding.
func channel16(v float64) uint16 {
	return uint16(clamp01(v) * channelMax)
}

// clamp01 clamps a value to the range [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Common colors.
var (
	ColorTransparent = Color{}
	ColorBlack       = Color{A: 1}
	ColorWhite       = Color{R: 1, G: 1, B: 1, A: 1}
	ColorRed         = Color{R: 1, A: 1}
	ColorGreen       = Color{G: 1, A: 1}
	ColorBlue        = Color{B: 1, A: 1}
)

// Alignment positions a view inside the space granted by its parent.
type Alignment uint32

const (
	AlignStart Alignment = iota
	AlignCenter
	AlignEnd
	AlignFill
)

func (a Alignment) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	case AlignFill:
		return "fill"
	default:
		return "unknown"
	}
}

// Layout describes how a view claims space: an alignment plus whether the
// view expands into any extra space its parent offers.
type Layout struct {
	Align  Alignment
	Expand bool
}

// Pack encodes the layout into a Word: the alignment ordinal occupies the
// high 32 bits, the low 32 bits hold 1 when Expand is set. Unlike color
// packing this round-trip is exact.
func (l Layout) Pack() Word {
	w := Word(l.Align) << 32
	if l.Expand {
		w |= 1
	}
	return w
}

// UnpackLayout decodes a Word produced by Layout.Pack.
func UnpackLayout(w Word) Layout {
	return Layout{
		Align:  Alignment(w >> 32),
		Expand: w&1 == 1,
	}
}
