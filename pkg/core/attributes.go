package core

import (
	"fmt"
	"reflect"

	"github.com/go-anvil/anvil/pkg/errors"
	"github.com/go-anvil/anvil/pkg/platform"
	"github.com/go-anvil/anvil/pkg/scalar"
	"github.com/go-anvil/anvil/pkg/theme"
)

// AttributeDefinition is the pluggable strategy for one named property or
// event slot: how to compare two description values, and how to transition
// a live target from the previous value to the next. Apply receives Absent
// slots to express "no previous value" and "value removed".
type AttributeDefinition interface {
	Key() AttributeKey
	Name() string
	// AlwaysDirty reports whether Compare can never short-circuit, so the
	// reconciler must apply on every pass. Event-coupled attributes are
	// always dirty because the handler half is a fresh closure each render.
	AlwaysDirty() bool
	// Compare reports whether next differs from prev.
	Compare(prev, next ValueSlot) bool
	// Apply transitions node's target from prev to next.
	Apply(prev, next ValueSlot, node *ViewNode)
}

// attributeBase carries the identity shared by every definition kind.
type attributeBase struct {
	key  AttributeKey
	name string
	slot string
}

func (a *attributeBase) Key() AttributeKey { return a.key }
func (a *attributeBase) Name() string      { return a.name }
func (a *attributeBase) AlwaysDirty() bool { return false }

// BoxedAttribute applies heap-allocated scalar values: convert translates
// the model value to the target representation, equal decides change.
type BoxedAttribute struct {
	attributeBase
	convert     func(any) any
	equal       func(a, b any) bool
	alwaysDirty bool
}

// NewBoxedAttribute registers a boxed scalar attribute writing to the given
// native slot. A nil convert applies the model value as-is; a nil equal
// compares structurally.
func NewBoxedAttribute(name, slot string, convert func(any) any, equal func(a, b any) bool) *BoxedAttribute {
	return registerAttribute(name, func(key AttributeKey) AttributeDefinition {
		return &BoxedAttribute{
			attributeBase: attributeBase{key: key, name: name, slot: slot},
			convert:       convert,
			equal:         equal,
		}
	}).(*BoxedAttribute)
}

// NewVolatileAttribute registers a boxed attribute whose comparator always
// reports a change, for values whose equality is meaningless (fresh
// closures, mutable handles).
func NewVolatileAttribute(name, slot string, convert func(any) any) *BoxedAttribute {
	return registerAttribute(name, func(key AttributeKey) AttributeDefinition {
		return &BoxedAttribute{
			attributeBase: attributeBase{key: key, name: name, slot: slot},
			convert:       convert,
			alwaysDirty:   true,
		}
	}).(*BoxedAttribute)
}

func (a *BoxedAttribute) AlwaysDirty() bool { return a.alwaysDirty }

func (a *BoxedAttribute) Compare(prev, next ValueSlot) bool {
	if a.alwaysDirty {
		return true
	}
	if prev.Kind != next.Kind {
		return true
	}
	if next.Kind == SlotAbsent {
		return false
	}
	if a.equal != nil {
		return !a.equal(prev.Boxed, next.Boxed)
	}
	return !reflect.DeepEqual(prev.Boxed, next.Boxed)
}

func (a *BoxedAttribute) Apply(prev, next ValueSlot, node *ViewNode) {
	if next.Kind == SlotAbsent {
		node.target.Clear(a.slot)
		return
	}
	v := next.Boxed
	if a.convert != nil {
		v = a.convert(v)
	}
	node.target.Set(a.slot, v)
}

// PackedAttribute applies small scalars carried as 8-byte words. Comparison
// is word equality, so the skip path never allocates; the decoded instance
// is only materialized when a write actually happens.
type PackedAttribute struct {
	attributeBase
	decode func(scalar.Word) any
}

// NewPackedAttribute registers a packed scalar attribute. decode turns the
// word into the value the target expects.
func NewPackedAttribute(name, slot string, decode func(scalar.Word) any) *PackedAttribute {
	return registerAttribute(name, func(key AttributeKey) AttributeDefinition {
		return &PackedAttribute{
			attributeBase: attributeBase{key: key, name: name, slot: slot},
			decode:        decode,
		}
	}).(*PackedAttribute)
}

func (a *PackedAttribute) Compare(prev, next ValueSlot) bool {
	if prev.Kind != next.Kind {
		return true
	}
	return prev.Packed != next.Packed
}

func (a *PackedAttribute) Apply(prev, next ValueSlot, node *ViewNode) {
	if next.Kind == SlotAbsent {
		node.target.Clear(a.slot)
		return
	}
	node.target.Set(a.slot, a.decode(next.Packed))
}

// ThemedAttribute applies theme-paired values. With no dark variant the
// light value is set directly; with one, a ThemedTarget receives both
// variants and resolves them natively. Targets without theme support get
// the light value alone.
type ThemedAttribute struct {
	attributeBase
	convert func(any) any
}

// NewThemedAttribute registers a theme-paired scalar attribute. Values must
// implement theme.Pair. A nil convert applies variants as-is.
func NewThemedAttribute(name, slot string, convert func(any) any) *ThemedAttribute {
	return registerAttribute(name, func(key AttributeKey) AttributeDefinition {
		return &ThemedAttribute{
			attributeBase: attributeBase{key: key, name: name, slot: slot},
			convert:       convert,
		}
	}).(*ThemedAttribute)
}

func (a *ThemedAttribute) Compare(prev, next ValueSlot) bool {
	if prev.Kind != next.Kind {
		return true
	}
	if next.Kind == SlotAbsent {
		return false
	}
	return !reflect.DeepEqual(prev.Boxed, next.Boxed)
}

func (a *ThemedAttribute) Apply(prev, next ValueSlot, node *ViewNode) {
	if next.Kind == SlotAbsent {
		node.target.Clear(a.slot)
		return
	}
	pair, ok := next.Boxed.(theme.Pair)
	if !ok {
		errors.Report(&errors.AnvilError{
			Op:        "core.ThemedAttribute.Apply",
			Kind:      errors.KindApply,
			Err:       fmt.Errorf("value %T does not implement theme.Pair", next.Boxed),
			Attribute: a.name,
		})
		return
	}
	light := pair.LightValue()
	if a.convert != nil {
		light = a.convert(light)
	}
	if dark, hasDark := pair.DarkValue(); hasDark {
		if themed, capable := node.target.(platform.ThemedTarget); capable {
			if a.convert != nil {
				dark = a.convert(dark)
			}
			themed.SetThemed(a.slot, light, dark)
			return
		}
	}
	node.target.Set(a.slot, light)
}

// ChildAttribute applies a nested widget: it creates, recursively
// reconciles, or tears down the child node owned through this attribute,
// and keeps the target slot pointing at the child's live instance.
type ChildAttribute struct {
	attributeBase
}

// NewChildAttribute registers a child-widget attribute writing the child's
// native instance into the given slot.
func NewChildAttribute(name, slot string) *ChildAttribute {
	return registerAttribute(name, func(key AttributeKey) AttributeDefinition {
		return &ChildAttribute{
			attributeBase: attributeBase{key: key, name: name, slot: slot},
		}
	}).(*ChildAttribute)
}

func (a *ChildAttribute) Compare(prev, next ValueSlot) bool {
	if prev.Kind != next.Kind {
		return true
	}
	if next.Kind == SlotAbsent {
		return false
	}
	return !reflect.DeepEqual(prev.Child, next.Child)
}

func (a *ChildAttribute) Apply(prev, next ValueSlot, node *ViewNode) {
	existing := node.Child(a.key)

	if next.Kind == SlotAbsent {
		if existing != nil {
			existing.Teardown()
			node.setChild(a.key, nil)
		}
		node.target.Clear(a.slot)
		return
	}

	widget := *next.Child
	if existing == nil {
		def := WidgetDefinitionOf(widget.Key)
		child, instance := def.CreateView(widget, node.ctx, node)
		node.setChild(a.key, child)
		node.target.Set(a.slot, instance)
		return
	}

	var prevWidget *Widget
	if prev.Kind == SlotChild {
		prevWidget = prev.Child
	}
	result := Update(prevWidget, widget, existing)
	if result != existing {
		// A type change replaced the child's instance.
		node.setChild(a.key, result)
		node.target.Set(a.slot, result.Target())
	}
}

// CollectionAttribute applies data-driven child lists. The collection is
// compared by value identity and re-templated wholesale on change; there is
// no positional diffing at this layer, so a changed collection rebuilds
// every child.
type CollectionAttribute struct {
	attributeBase
}

// NewCollectionAttribute registers a child-collection attribute writing the
// templated instances into the given slot.
func NewCollectionAttribute(name, slot string) *CollectionAttribute {
	return registerAttribute(name, func(key AttributeKey) AttributeDefinition {
		return &CollectionAttribute{
			attributeBase: attributeBase{key: key, name: name, slot: slot},
		}
	}).(*CollectionAttribute)
}

func (a *CollectionAttribute) Compare(prev, next ValueSlot) bool {
	if prev.Kind != next.Kind {
		return true
	}
	if next.Kind == SlotAbsent {
		return false
	}
	return !sameItems(prev.Items, next.Items)
}

// sameItems reports whether two item sequences are the same collection
// value, by identity of the backing storage rather than element equality.
func sameItems(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}

func (a *CollectionAttribute) Apply(prev, next ValueSlot, node *ViewNode) {
	for _, kid := range node.Children(a.key) {
		kid.Teardown()
	}
	node.setChildren(a.key, nil)

	if next.Kind == SlotAbsent {
		node.target.Clear(a.slot)
		return
	}

	kids := make([]*ViewNode, 0, len(next.Items))
	instances := make([]any, 0, len(next.Items))
	for _, item := range next.Items {
		widget := next.Template(item)
		def := WidgetDefinitionOf(widget.Key)
		child, instance := def.CreateView(widget, node.ctx, node)
		kids = append(kids, child)
		instances = append(instances, instance)
	}
	node.setChildren(a.key, kids)

	if container, ok := node.target.(platform.ContainerTarget); ok {
		container.SetChildren(a.slot, instances)
		return
	}
	node.target.Set(a.slot, instances)
}

// ValueEventData couples an attribute value with the converter that turns a
// raised native event into an application message.
type ValueEventData struct {
	Value   any
	Message func(args any) platform.Message
}

// EventAttribute applies event-coupled values. The handler half of the
// value is a fresh closure every render, so comparison always reports a
// change and the live subscription is replaced on every pass: the previous
// handler is detached strictly before the next one is attached, keeping at
// most one subscription live per attribute on a node.
type EventAttribute struct {
	attributeBase
	event   string
	convert func(any) any
}

// NewEventAttribute registers an event-coupled attribute. valueSlot may be
// empty for pure event attributes that carry no property value; event names
// the target's event slot. A nil convert applies the value as-is.
func NewEventAttribute(name, valueSlot, event string, convert func(any) any) *EventAttribute {
	return registerAttribute(name, func(key AttributeKey) AttributeDefinition {
		return &EventAttribute{
			attributeBase: attributeBase{key: key, name: name, slot: valueSlot},
			event:         event,
			convert:       convert,
		}
	}).(*EventAttribute)
}

func (a *EventAttribute) AlwaysDirty() bool { return true }

func (a *EventAttribute) Compare(prev, next ValueSlot) bool { return true }

func (a *EventAttribute) Apply(prev, next ValueSlot, node *ViewNode) {
	if next.Kind == SlotAbsent {
		node.detachHandler(a.key)
		if prev.Kind != SlotAbsent && a.slot != "" {
			node.target.Clear(a.slot)
		}
		return
	}

	data, ok := next.Boxed.(ValueEventData)
	if !ok {
		errors.Report(&errors.AnvilError{
			Op:        "core.EventAttribute.Apply",
			Kind:      errors.KindApply,
			Err:       fmt.Errorf("value %T is not a ValueEventData", next.Boxed),
			Attribute: a.name,
		})
		return
	}

	node.detachHandler(a.key)

	if a.slot != "" {
		v := data.Value
		if a.convert != nil {
			v = a.convert(v)
		}
		node.target.Set(a.slot, v)
	}

	dispatcher := node.ctx.Dispatcher
	toMessage := data.Message
	token := node.target.AddHandler(a.event, func(args any) {
		if toMessage == nil || dispatcher == nil {
			return
		}
		dispatcher.Dispatch(toMessage(args))
	})
	node.setHandler(a.key, a.event, token)
}
