// Package bindings consumes binding metadata derived offline from a
// toolkit's reflection data: tables mapping attribute names to native
// slots, default values, and type names. The engine never reads reflection
// data itself; these tables are the only input it needs to materialize
// attribute and widget definitions for a toolkit.
package bindings

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-anvil/anvil/pkg/core"
	"github.com/go-anvil/anvil/pkg/errors"
	"github.com/go-anvil/anvil/pkg/platform"
	"github.com/go-anvil/anvil/pkg/scalar"
)

// SchemaMajor is the metadata schema generation this engine understands.
const SchemaMajor = "v1"

// Metadata is one toolkit's binding table.
type Metadata struct {
	Schema  string          `yaml:"schema"`
	Toolkit string          `yaml:"toolkit,omitempty"`
	Widgets []WidgetBinding `yaml:"widgets"`
}

// WidgetBinding maps one widget name to its native target type and the
// attribute and event slots that type exposes.
type WidgetBinding struct {
	Name       string             `yaml:"name"`
	Target     string             `yaml:"target"`
	Attributes []AttributeBinding `yaml:"attributes,omitempty"`
	Events     []EventBinding     `yaml:"events,omitempty"`
}

// AttributeBinding maps one attribute name to a native slot, its value
// type, and an optional default rendered as text.
type AttributeBinding struct {
	Name    string `yaml:"name"`
	Slot    string `yaml:"slot"`
	Type    string `yaml:"type"`
	Default string `yaml:"default,omitempty"`
}

// EventBinding maps one event-coupled attribute to its native event slot
// and the optional value slot written alongside the subscription.
type EventBinding struct {
	Name  string `yaml:"name"`
	Slot  string `yaml:"slot,omitempty"`
	Event string `yaml:"event"`
}

// Load reads and parses a metadata file.
func Load(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bindings: reading %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes metadata and validates its schema version. The schema is a
// semver major tag; only SchemaMajor is accepted, so regenerated metadata
// from a newer, incompatible producer fails loudly instead of misbinding.
func Parse(data []byte, source string) (*Metadata, error) {
	var m Metadata
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("bindings: parsing %s: %w", source, err)
	}
	if !semver.IsValid(m.Schema) {
		return nil, &errors.DecodeError{Source: source, DataType: "schema version", Got: m.Schema}
	}
	if semver.Major(m.Schema) != SchemaMajor {
		return nil, fmt.Errorf("bindings: %s uses schema %s, this engine understands %s", source, m.Schema, SchemaMajor)
	}
	return &m, nil
}

// DefaultValue renders the binding's textual default into the value the
// attribute applies. Child and collection bindings have no defaults.
func (b AttributeBinding) DefaultValue() (any, error) {
	if b.Default == "" {
		return nil, nil
	}
	switch b.Type {
	case "string":
		return b.Default, nil
	case "bool":
		return strconv.ParseBool(b.Default)
	case "float":
		return strconv.ParseFloat(b.Default, 64)
	case "color":
		return ParseColor(b.Default)
	case "layout":
		return parseLayout(b.Default)
	default:
		return nil, fmt.Errorf("bindings: attribute %s: no default for type %q", b.Name, b.Type)
	}
}

// Register materializes the attribute definition for this binding. Colors
// and layouts become packed attributes decoding their 8-byte words; child
// and collection types become structural attributes; everything else is
// applied boxed.
func (b AttributeBinding) Register() (core.AttributeDefinition, error) {
	switch b.Type {
	case "color":
		return core.NewPackedAttribute(b.Name, b.Slot, func(w scalar.Word) any {
			return scalar.UnpackColor(w)
		}), nil
	case "layout":
		return core.NewPackedAttribute(b.Name, b.Slot, func(w scalar.Word) any {
			return scalar.UnpackLayout(w)
		}), nil
	case "widget":
		return core.NewChildAttribute(b.Name, b.Slot), nil
	case "collection":
		return core.NewCollectionAttribute(b.Name, b.Slot), nil
	case "string", "bool", "float":
		return core.NewBoxedAttribute(b.Name, b.Slot, nil, nil), nil
	default:
		return nil, fmt.Errorf("bindings: attribute %s has unknown type %q", b.Name, b.Type)
	}
}

// Register materializes the event-coupled attribute for this binding.
func (e EventBinding) Register() core.AttributeDefinition {
	return core.NewEventAttribute(e.Name, e.Slot, e.Event, nil)
}

// Register materializes the widget definition and every attribute and
// event it declares. newTarget instantiates the native type; setup may be
// nil.
func (w WidgetBinding) Register(newTarget func(*core.TreeContext) platform.Target, setup func(platform.Target, *core.TreeContext)) (*core.WidgetDefinition, error) {
	for _, attr := range w.Attributes {
		if _, err := attr.Register(); err != nil {
			return nil, err
		}
	}
	for _, event := range w.Events {
		event.Register()
	}
	return core.RegisterWidget(core.WidgetSpec{
		Name:       w.Name,
		TargetType: w.Target,
		New:        newTarget,
		Setup:      setup,
	}), nil
}

// ParseColor resolves a textual color: an SVG 1.1 color name, or a
// #rrggbb / #rrggbbaa hex literal.
func ParseColor(s string) (scalar.Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if named, ok := colornames.Map[name]; ok {
		return scalar.Color{
			R: float64(named.R) / 255,
			G: float64(named.G) / 255,
			B: float64(named.B) / 255,
			A: float64(named.A) / 255,
		}, nil
	}
	if strings.HasPrefix(name, "#") {
		hex := name[1:]
		if len(hex) != 6 && len(hex) != 8 {
			return scalar.Color{}, fmt.Errorf("bindings: hex color %q must be 6 or 8 digits", s)
		}
		v, err := strconv.ParseUint(hex, 16, 64)
		if err != nil {
			return scalar.Color{}, fmt.Errorf("bindings: hex color %q: %w", s, err)
		}
		a := 255.0
		if len(hex) == 8 {
			a = float64(v & 0xFF)
			v >>= 8
		}
		return scalar.Color{
			R: float64(v>>16&0xFF) / 255,
			G: float64(v>>8&0xFF) / 255,
			B: float64(v&0xFF) / 255,
			A: a / 255,
		}, nil
	}
	return scalar.Color{}, fmt.Errorf("bindings: unknown color %q", s)
}

// parseLayout parses "alignment" or "alignment,expand".
func parseLayout(s string) (scalar.Layout, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	var l scalar.Layout
	switch strings.TrimSpace(parts[0]) {
	case "start":
		l.Align = scalar.AlignStart
	case "center":
		l.Align = scalar.AlignCenter
	case "end":
		l.Align = scalar.AlignEnd
	case "fill":
		l.Align = scalar.AlignFill
	default:
		return scalar.Layout{}, fmt.Errorf("bindings: unknown alignment %q", parts[0])
	}
	if len(parts) > 1 {
		if strings.TrimSpace(parts[1]) != "expand" {
			return scalar.Layout{}, fmt.Errorf("bindings: unknown layout flag %q", parts[1])
		}
		l.Expand = true
	}
	return l, nil
}
