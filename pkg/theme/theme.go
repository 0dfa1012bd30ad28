// Package theme carries theme-paired attribute values: a light variant that
// always applies, and an optional dark variant resolved by the target.
package theme

// Brightness indicates whether a theme variant targets light or dark mode.
type Brightness int

const (
	// BrightnessLight is the default appearance.
	BrightnessLight Brightness = iota
	// BrightnessDark is the dark-mode appearance.
	BrightnessDark
)

func (b Brightness) String() string {
	if b == BrightnessDark {
		return "dark"
	}
	return "light"
}

// Pair is the type-erased view of a theme-paired value consumed by the
// engine. Attribute authors construct Values; the engine only needs the
// erased accessors.
type Pair interface {
	// LightValue returns the value applied in light mode.
	LightValue() any
	// DarkValue returns the dark-mode value and whether one was provided.
	DarkValue() (any, bool)
}

// Values holds one attribute value per theme variant. Dark is optional;
// when nil the light value applies in both modes.
type Values[T any] struct {
	Light T
	Dark  *T
}

// Of constructs a single-variant value.
func Of[T any](light T) Values[T] {
	return Values[T]{Light: light}
}

// OfPair constructs a value with distinct light and dark variants.
func OfPair[T any](light, dark T) Values[T] {
	return Values[T]{Light: light, Dark: &dark}
}

// LightValue implements Pair.
func (v Values[T]) LightValue() any {
	return v.Light
}

// DarkValue implements Pair.
func (v Values[T]) DarkValue() (any, bool) {
	if v.Dark == nil {
		return nil, false
	}
	return *v.Dark, true
}
