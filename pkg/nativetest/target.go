// Package nativetest provides a recording fake native target for testing
// reconciliation without a real toolkit binding.
package nativetest

import (
	"fmt"

	"github.com/go-anvil/anvil/pkg/platform"
)

// Target is an in-memory platform.Target recording every mutation the
// engine performs. The Journal holds one entry per call in order, so tests
// can assert both final state and operation ordering.
type Target struct {
	TypeName string
	Released bool
	Journal  []string

	slots    map[string]any
	handlers map[string]map[platform.HandlerToken]func(args any)
	next     platform.HandlerToken
}

// NewTarget creates a fake target of the given native type name.
func NewTarget(typeName string) *Target {
	return &Target{
		TypeName: typeName,
		slots:    make(map[string]any),
		handlers: make(map[string]map[platform.HandlerToken]func(args any)),
	}
}

// Get returns the current slot value, or nil when the slot holds its
// platform default.
func (t *Target) Get(slot string) any {
	return t.slots[slot]
}

// Set writes a slot value.
func (t *Target) Set(slot string, value any) {
	t.slots[slot] = value
	t.Journal = append(t.Journal, fmt.Sprintf("set %s=%v", slot, value))
}

// Clear restores a slot to its platform default.
func (t *Target) Clear(slot string) {
	delete(t.slots, slot)
	t.Journal = append(t.Journal, "clear "+slot)
}

// AddHandler subscribes a callback to an event slot.
func (t *Target) AddHandler(event string, callback func(args any)) platform.HandlerToken {
	t.next++
	token := t.next
	if t.handlers[event] == nil {
		t.handlers[event] = make(map[platform.HandlerToken]func(args any))
	}
	t.handlers[event][token] = callback
	t.Journal = append(t.Journal, fmt.Sprintf("subscribe %s #%d", event, token))
	return token
}

// RemoveHandler cancels a subscription. Unknown tokens are ignored, as a
// real binding must tolerate removal of a never-attached handler.
func (t *Target) RemoveHandler(event string, token platform.HandlerToken) {
	delete(t.handlers[event], token)
	t.Journal = append(t.Journal, fmt.Sprintf("unsubscribe %s #%d", event, token))
}

// Release implements platform.Releaser.
func (t *Target) Release() {
	t.Released = true
	t.Journal = append(t.Journal, "release")
}

// Raise fires an event, invoking every live subscription with args.
func (t *Target) Raise(event string, args any) {
	for _, callback := range t.handlers[event] {
		callback(args)
	}
}

// HandlerCount returns the number of live subscriptions on an event slot.
func (t *Target) HandlerCount(event string) int {
	return len(t.handlers[event])
}

// ContainerTarget is a Target with a collection slot accepting an ordered
// child list, as container bindings expose.
type ContainerTarget struct {
	Target
	ChildLists map[string][]any
}

// NewContainerTarget creates a fake container target.
func NewContainerTarget(typeName string) *ContainerTarget {
	return &ContainerTarget{
		Target:     *NewTarget(typeName),
		ChildLists: make(map[string][]any),
	}
}

// SetChildren implements platform.ContainerTarget.
func (t *ContainerTarget) SetChildren(slot string, children []any) {
	t.ChildLists[slot] = children
	t.Journal = append(t.Journal, fmt.Sprintf("children %s n=%d", slot, len(children)))
}

// ThemedTarget is a Target that resolves light and dark variants natively.
type ThemedTarget struct {
	Target
	ThemedSlots map[string][2]any
}

// NewThemedTarget creates a fake theme-capable target.
func NewThemedTarget(typeName string) *ThemedTarget {
	return &ThemedTarget{
		Target:      *NewTarget(typeName),
		ThemedSlots: make(map[string][2]any),
	}
}

// SetThemed implements platform.ThemedTarget.
func (t *ThemedTarget) SetThemed(slot string, light, dark any) {
	t.ThemedSlots[slot] = [2]any{light, dark}
	t.Journal = append(t.Journal, fmt.Sprintf("themed %s light=%v dark=%v", slot, light, dark))
}
