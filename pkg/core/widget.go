// Package core implements the reconciliation engine: widget descriptions,
// the attribute and widget registries, live view nodes, and the diff-and-
// apply algorithm that keeps a native tree matching the latest description.
package core

import (
	"github.com/go-anvil/anvil/pkg/scalar"
)

// WidgetKey is the process-lifetime-stable identity of a widget type,
// assigned once by the widget registry.
type WidgetKey int

// AttributeKey is the process-lifetime-stable identity of an attribute,
// assigned once by the attribute registry.
type AttributeKey int

// SlotKind tags the representation carried by a ValueSlot.
type SlotKind uint8

const (
	// SlotAbsent marks an attribute with no value.
	SlotAbsent SlotKind = iota
	// SlotBoxed carries a heap-allocated value of any type.
	SlotBoxed
	// SlotPacked carries a value packed into an 8-byte word.
	SlotPacked
	// SlotChild carries a nested widget description.
	SlotChild
	// SlotCollection carries model items plus a templating function.
	SlotCollection
)

func (k SlotKind) String() string {
	switch k {
	case SlotAbsent:
		return "absent"
	case SlotBoxed:
		return "boxed"
	case SlotPacked:
		return "packed"
	case SlotChild:
		return "child"
	case SlotCollection:
		return "collection"
	default:
		return "invalid"
	}
}

// ValueSlot is one attribute value in a widget description. Exactly one
// representation is populated, selected by Kind.
type ValueSlot struct {
	Kind     SlotKind
	Boxed    any
	Packed   scalar.Word
	Child    *Widget
	Items    []any
	Template func(item any) Widget
}

// Absent returns the empty value slot.
func Absent() ValueSlot {
	return ValueSlot{Kind: SlotAbsent}
}

// Boxed wraps a value of any type.
func Boxed(v any) ValueSlot {
	return ValueSlot{Kind: SlotBoxed, Boxed: v}
}

// Packed wraps an 8-byte packed word.
func Packed(w scalar.Word) ValueSlot {
	return ValueSlot{Kind: SlotPacked, Packed: w}
}

// ChildWidget wraps a nested widget description.
func ChildWidget(w Widget) ValueSlot {
	return ValueSlot{Kind: SlotChild, Child: &w}
}

// ChildCollection wraps an ordered sequence of opaque model items and the
// template that turns one item into a widget description.
func ChildCollection(items []any, template func(item any) Widget) ValueSlot {
	return ValueSlot{Kind: SlotCollection, Items: items, Template: template}
}

// AttributeValue is one (key, value) entry in a widget's attribute list.
type AttributeValue struct {
	Key  AttributeKey
	Slot ValueSlot
}

// Attr constructs one attribute entry.
func Attr(key AttributeKey, slot ValueSlot) AttributeValue {
	return AttributeValue{Key: key, Slot: slot}
}

// Widget is an immutable description of desired native-object state: a type
// identity plus an ordered attribute list with no duplicate keys. Widgets
// are created fresh each render pass and discarded after reconciliation.
type Widget struct {
	Key        WidgetKey
	Attributes []AttributeValue
}

// NewWidget constructs a widget description.
func NewWidget(key WidgetKey, attrs ...AttributeValue) Widget {
	return Widget{Key: key, Attributes: attrs}
}

// Attribute returns the value for key, if the widget carries one.
func (w Widget) Attribute(key AttributeKey) (ValueSlot, bool) {
	for _, av := range w.Attributes {
		if av.Key == key {
			return av.Slot, true
		}
	}
	return ValueSlot{}, false
}
