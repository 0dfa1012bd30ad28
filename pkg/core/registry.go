package core

import (
	"fmt"
	"sync"

	"github.com/go-anvil/anvil/pkg/platform"
)

// The attribute and widget registries are process-wide and append-only.
// Keys are assigned sequentially on first registration and never change for
// the lifetime of the process, so widget trees authored in independently
// compiled packages still agree on keys when diffed. Registration is
// serialized by one mutex; lookups are read-locked.
var (
	registryMu    sync.RWMutex
	attributeKeys = make(map[string]AttributeKey)
	attributeDefs []AttributeDefinition
	widgetKeys    = make(map[string]WidgetKey)
	widgetDefs    []*WidgetDefinition
)

// registerAttribute assigns the stable key for name and records the
// definition built by construct. Registering the same name again returns
// the existing definition and never creates a duplicate entry.
func registerAttribute(name string, construct func(AttributeKey) AttributeDefinition) AttributeDefinition {
	registryMu.Lock()
	defer registryMu.Unlock()
	if key, ok := attributeKeys[name]; ok {
		return attributeDefs[key]
	}
	key := AttributeKey(len(attributeDefs))
	def := construct(key)
	attributeKeys[name] = key
	attributeDefs = append(attributeDefs, def)
	return def
}

// AttributeDefinitionOf returns the definition registered under key.
// An unknown key means the authoring code and the registry were built from
// mismatched metadata; that is not recoverable at runtime, so it aborts.
func AttributeDefinitionOf(key AttributeKey) AttributeDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()
	if int(key) < 0 || int(key) >= len(attributeDefs) {
		panic(fmt.Sprintf("core: unknown attribute key %d, authoring code and registry are out of sync", key))
	}
	return attributeDefs[key]
}

// AttributeKeyOf returns the key registered for name, if any.
func AttributeKeyOf(name string) (AttributeKey, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	key, ok := attributeKeys[name]
	return key, ok
}

// WidgetDefinition is the strategy for instantiating and initializing one
// native object type. Definitions are registered once and immutable after.
type WidgetDefinition struct {
	key        WidgetKey
	name       string
	targetType string
	create     func(*TreeContext) platform.Target
	setup      func(platform.Target, *TreeContext)
}

// WidgetSpec describes a widget definition to register.
type WidgetSpec struct {
	// Name is the stable registration identity.
	Name string
	// TargetType names the native type the definition instantiates.
	TargetType string
	// New instantiates a native object using its default initializer.
	New func(*TreeContext) platform.Target
	// Setup optionally finishes configuring native types whose default
	// initializer under-configures them. May be nil.
	Setup func(platform.Target, *TreeContext)
}

// RegisterWidget assigns the stable key for spec.Name and records the
// definition. Registering the same name again returns the existing
// definition.
func RegisterWidget(spec WidgetSpec) *WidgetDefinition {
	registryMu.Lock()
	defer registryMu.Unlock()
	if key, ok := widgetKeys[spec.Name]; ok {
		return widgetDefs[key]
	}
	key := WidgetKey(len(widgetDefs))
	def := &WidgetDefinition{
		key:        key,
		name:       spec.Name,
		targetType: spec.TargetType,
		create:     spec.New,
		setup:      spec.Setup,
	}
	widgetKeys[spec.Name] = key
	widgetDefs = append(widgetDefs, def)
	return def
}

// WidgetDefinitionOf returns the definition registered under key.
// Unknown keys abort, as for attributes.
func WidgetDefinitionOf(key WidgetKey) *WidgetDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()
	if int(key) < 0 || int(key) >= len(widgetDefs) {
		panic(fmt.Sprintf("core: unknown widget key %d, authoring code and registry are out of sync", key))
	}
	return widgetDefs[key]
}

// WidgetKeyOf returns the key registered for name, if any.
func WidgetKeyOf(name string) (WidgetKey, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	key, ok := widgetKeys[name]
	return key, ok
}

// Key returns the definition's stable identity.
func (d *WidgetDefinition) Key() WidgetKey {
	return d.key
}

// Name returns the registration identity.
func (d *WidgetDefinition) Name() string {
	return d.name
}

// TargetType names the native type the definition instantiates.
func (d *WidgetDefinition) TargetType() string {
	return d.targetType
}

// CreateView realizes widget: it instantiates a native object, builds a
// node parented to parent sharing ctx, records the instance-to-node
// association, runs the optional setup hook, and applies every attribute of
// widget through an initial reconciliation. The returned node owns the
// returned instance.
func (d *WidgetDefinition) CreateView(widget Widget, ctx *TreeContext, parent *ViewNode) (*ViewNode, platform.Target) {
	target := d.create(ctx)
	node := newViewNode(parent, ctx, target)
	if d.setup != nil {
		d.setup(target, ctx)
	}
	Update(nil, widget, node)
	return node, target
}
