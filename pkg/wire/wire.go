// Package wire decodes widget descriptions from the authoring layer's wire
// shape into core values. The shape is a widget key plus an ordered list of
// (attribute key, value kind, payload) entries; nested child widgets recurse
// into the same shape.
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/go-anvil/anvil/pkg/core"
	"github.com/go-anvil/anvil/pkg/errors"
	"github.com/go-anvil/anvil/pkg/scalar"
)

// Value kinds carried on the wire.
const (
	KindBoxed      = "boxed"
	KindPacked     = "packed-u64"
	KindChild      = "child-widget"
	KindCollection = "child-collection"
)

type wireWidget struct {
	Widget int        `json:"widget"`
	Attrs  []wireAttr `json:"attrs"`
}

type wireAttr struct {
	Key     int             `json:"key"`
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

type wireCollection struct {
	Template string `json:"template"`
	Items    []any  `json:"items"`
}

// Collection templates cannot travel on the wire; the authoring layer names
// one registered here instead.
var (
	templateMu sync.RWMutex
	templates  = make(map[string]func(item any) core.Widget)
)

// RegisterTemplate makes a collection template addressable from the wire by
// name. Registering a name again replaces the previous template.
func RegisterTemplate(name string, template func(item any) core.Widget) {
	templateMu.Lock()
	templates[name] = template
	templateMu.Unlock()
}

func templateOf(name string) (func(item any) core.Widget, bool) {
	templateMu.RLock()
	defer templateMu.RUnlock()
	t, ok := templates[name]
	return t, ok
}

// DecodeWidget parses one widget description from JSON wire data.
func DecodeWidget(data []byte) (core.Widget, error) {
	var raw wireWidget
	if err := json.Unmarshal(data, &raw); err != nil {
		return core.Widget{}, fmt.Errorf("wire: invalid widget document: %w", err)
	}
	return buildWidget(raw)
}

func buildWidget(raw wireWidget) (core.Widget, error) {
	attrs := make([]core.AttributeValue, 0, len(raw.Attrs))
	for _, attr := range raw.Attrs {
		slot, err := buildSlot(attr)
		if err != nil {
			return core.Widget{}, err
		}
		attrs = append(attrs, core.Attr(core.AttributeKey(attr.Key), slot))
	}
	return core.NewWidget(core.WidgetKey(raw.Widget), attrs...), nil
}

func buildSlot(attr wireAttr) (core.ValueSlot, error) {
	switch attr.Kind {
	case KindBoxed:
		var v any
		if err := json.Unmarshal(attr.Payload, &v); err != nil {
			return core.ValueSlot{}, fmt.Errorf("wire: boxed payload for key %d: %w", attr.Key, err)
		}
		return core.Boxed(v), nil

	case KindPacked:
		word, err := decodeWord(attr.Payload)
		if err != nil {
			return core.ValueSlot{}, fmt.Errorf("wire: packed payload for key %d: %w", attr.Key, err)
		}
		return core.Packed(word), nil

	case KindChild:
		var child wireWidget
		if err := json.Unmarshal(attr.Payload, &child); err != nil {
			return core.ValueSlot{}, fmt.Errorf("wire: child payload for key %d: %w", attr.Key, err)
		}
		widget, err := buildWidget(child)
		if err != nil {
			return core.ValueSlot{}, err
		}
		return core.ChildWidget(widget), nil

	case KindCollection:
		var coll wireCollection
		if err := json.Unmarshal(attr.Payload, &coll); err != nil {
			return core.ValueSlot{}, fmt.Errorf("wire: collection payload for key %d: %w", attr.Key, err)
		}
		template, ok := templateOf(coll.Template)
		if !ok {
			return core.ValueSlot{}, fmt.Errorf("wire: unregistered collection template %q", coll.Template)
		}
		return core.ChildCollection(coll.Items, template), nil

	default:
		return core.ValueSlot{}, &errors.DecodeError{
			Source:   "wire",
			DataType: "value kind",
			Got:      attr.Kind,
		}
	}
}

// decodeWord parses a packed word. JSON numbers lose integer precision past
// 53 bits when routed through float64, so the payload is re-parsed as a
// decimal literal.
func decodeWord(payload json.RawMessage) (scalar.Word, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	var num json.Number
	if err := dec.Decode(&num); err != nil {
		return 0, err
	}
	u, err := strconv.ParseUint(num.String(), 10, 64)
	if err != nil {
		return 0, err
	}
	return scalar.Word(u), nil
}
