// Package platform defines the boundary between the reconciliation engine
// and a native toolkit binding: the capability interfaces a live native
// object must expose, and the dispatcher that carries native events back
// into the application's message loop.
package platform

// HandlerToken identifies one live event subscription on a target. Tokens
// are issued by AddHandler and are only meaningful to the target that
// issued them.
type HandlerToken uint64

// Target is the capability interface a native binding implements for each
// live toolkit object. Slots and events are named by the binding metadata;
// Clear restores the platform default for the slot.
type Target interface {
	Get(slot string) any
	Set(slot string, value any)
	Clear(slot string)
	AddHandler(event string, callback func(args any)) HandlerToken
	RemoveHandler(event string, token HandlerToken)
}

// ThemedTarget is implemented by bindings whose toolkit resolves light and
// dark variants natively. When a target does not implement it, the engine
// falls back to applying the light value alone.
type ThemedTarget interface {
	Target
	SetThemed(slot string, light, dark any)
}

// ContainerTarget is implemented by bindings whose toolkit exposes
// collection slots holding an ordered list of child objects.
type ContainerTarget interface {
	Target
	SetChildren(slot string, children []any)
}

// Releaser is implemented by bindings that need an explicit disposal call
// when the engine tears a target down.
type Releaser interface {
	Release()
}
