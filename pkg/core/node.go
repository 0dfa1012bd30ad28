package core

import (
	"sync"

	"github.com/go-anvil/anvil/pkg/platform"
	"github.com/go-anvil/anvil/pkg/theme"
)

// TreeContext carries the ambient, read-only services shared by every node
// in one UI tree.
type TreeContext struct {
	// CanReuseView reports whether a live view realized for oldKey may be
	// mutated in place to host newKey. It is only consulted when oldKey
	// equals newKey; nil means views are always reusable for their own key.
	CanReuseView func(oldKey, newKey WidgetKey) bool
	// Dispatcher delivers messages raised by event-coupled attributes.
	Dispatcher *platform.Dispatcher
	// Brightness is the ambient theme variant of the tree.
	Brightness theme.Brightness
}

// NodeID addresses a node in the arena. IDs are stable for the lifetime of
// the node and recycled after teardown.
type NodeID int

// handlerEntry records one live event subscription on a node.
type handlerEntry struct {
	event string
	token platform.HandlerToken
}

// ViewNode is the live binding between one native instance and its
// reconciliation state: the attribute values last written to the instance,
// the live handler tokens, and the child nodes owned through child-widget
// and child-collection attributes. The parent owns the node; the node owns
// its instance and its children.
type ViewNode struct {
	id        NodeID
	parent    *ViewNode
	ctx       *TreeContext
	target    platform.Target
	widgetKey WidgetKey
	applied   map[AttributeKey]ValueSlot
	handlers  map[AttributeKey]handlerEntry
	children  map[AttributeKey][]*ViewNode
}

// nodeArena stores live nodes at stable indices and maintains the side
// lookup from native instance to owning node. Both are cleared together at
// teardown so a released instance can never resolve to a stale node.
type nodeArena struct {
	mu       sync.RWMutex
	nodes    []*ViewNode
	free     []NodeID
	byTarget map[platform.Target]NodeID
}

var arena = &nodeArena{byTarget: make(map[platform.Target]NodeID)}

func (a *nodeArena) add(n *ViewNode) NodeID {
	a.mu.Lock()
	defer a.mu.Unlock()
	var id NodeID
	if len(a.free) > 0 {
		id = a.free[len(a.free)-1]
		a.free = a.free[:len(a.free)-1]
		a.nodes[id] = n
	} else {
		id = NodeID(len(a.nodes))
		a.nodes = append(a.nodes, n)
	}
	if n.target != nil {
		a.byTarget[n.target] = id
	}
	return id
}

func (a *nodeArena) release(n *ViewNode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if n.target != nil {
		delete(a.byTarget, n.target)
	}
	if int(n.id) < len(a.nodes) && a.nodes[n.id] == n {
		a.nodes[n.id] = nil
		a.free = append(a.free, n.id)
	}
}

// NodeOf returns the node owning the given live instance, or nil if the
// instance is unknown or already torn down. This is the entry point for
// updates originating outside the description-driven path, such as an
// externally triggered re-layout.
func NodeOf(target platform.Target) *ViewNode {
	arena.mu.RLock()
	defer arena.mu.RUnlock()
	id, ok := arena.byTarget[target]
	if !ok {
		return nil
	}
	return arena.nodes[id]
}

func newViewNode(parent *ViewNode, ctx *TreeContext, target platform.Target) *ViewNode {
	n := &ViewNode{
		parent:   parent,
		ctx:      ctx,
		target:   target,
		applied:  make(map[AttributeKey]ValueSlot),
		handlers: make(map[AttributeKey]handlerEntry),
		children: make(map[AttributeKey][]*ViewNode),
	}
	n.id = arena.add(n)
	return n
}

// NewRootNode creates the node hosting the root of a tree, bound to a
// pre-existing native container supplied by the host.
func NewRootNode(ctx *TreeContext, target platform.Target) *ViewNode {
	return newViewNode(nil, ctx, target)
}

// ID returns the node's stable arena index.
func (n *ViewNode) ID() NodeID {
	return n.id
}

// Parent returns the owning node, or nil for a root.
func (n *ViewNode) Parent() *ViewNode {
	return n.parent
}

// Context returns the tree context shared by the node's tree.
func (n *ViewNode) Context() *TreeContext {
	return n.ctx
}

// Target returns the native instance the node owns, or nil after teardown.
func (n *ViewNode) Target() platform.Target {
	return n.target
}

// WidgetKey returns the identity of the widget the node currently realizes.
func (n *ViewNode) WidgetKey() WidgetKey {
	return n.widgetKey
}

// Applied returns the value last written to the instance for key.
func (n *ViewNode) Applied(key AttributeKey) (ValueSlot, bool) {
	slot, ok := n.applied[key]
	return slot, ok
}

// AppliedCount returns the number of attributes currently applied.
func (n *ViewNode) AppliedCount() int {
	return len(n.applied)
}

// Handler returns the live subscription token for key, if one exists.
func (n *ViewNode) Handler(key AttributeKey) (platform.HandlerToken, bool) {
	entry, ok := n.handlers[key]
	return entry.token, ok
}

// Child returns the single child node owned through key, if any.
func (n *ViewNode) Child(key AttributeKey) *ViewNode {
	kids := n.children[key]
	if len(kids) == 0 {
		return nil
	}
	return kids[0]
}

// Children returns the child nodes owned through key.
func (n *ViewNode) Children(key AttributeKey) []*ViewNode {
	return n.children[key]
}

// setHandler records a live subscription for key. At most one subscription
// is live per attribute on a node; the previous one must have been detached
// before this is called.
func (n *ViewNode) setHandler(key AttributeKey, event string, token platform.HandlerToken) {
	n.handlers[key] = handlerEntry{event: event, token: token}
}

// detachHandler removes the live subscription for key, if one exists.
// Detaching an attribute that never attached is a no-op.
func (n *ViewNode) detachHandler(key AttributeKey) {
	entry, ok := n.handlers[key]
	if !ok {
		return
	}
	delete(n.handlers, key)
	if n.target != nil {
		n.target.RemoveHandler(entry.event, entry.token)
	}
}

// setChild replaces the single child owned through key. A nil child removes
// the entry.
func (n *ViewNode) setChild(key AttributeKey, child *ViewNode) {
	if child == nil {
		delete(n.children, key)
		return
	}
	n.children[key] = []*ViewNode{child}
}

// setChildren replaces the child list owned through key.
func (n *ViewNode) setChildren(key AttributeKey, kids []*ViewNode) {
	if len(kids) == 0 {
		delete(n.children, key)
		return
	}
	n.children[key] = kids
}

// Teardown releases everything the node owns: children first, depth-first,
// then every live handler, then the native instance itself. The arena entry
// and the instance-to-node lookup are invalidated in the same step, after
// which Target returns nil.
func (n *ViewNode) Teardown() {
	for _, kids := range n.children {
		for _, kid := range kids {
			kid.Teardown()
		}
	}
	clear(n.children)

	for key := range n.handlers {
		n.detachHandler(key)
	}
	clear(n.applied)

	arena.release(n)
	if releaser, ok := n.target.(platform.Releaser); ok {
		releaser.Release()
	}
	n.target = nil
}
