package core

// Update reconciles node against next, applying the minimal set of target
// mutations between the previous description and the new one. prev is the
// widget applied by the preceding pass, or nil on first realization.
//
// The returned node is the one now hosting next: the same node for an
// in-place update, or a freshly created one when a widget-type change
// forced the old instance to be torn down and replaced. Attribute slots are
// assumed mutually independent, so the relative order of independent
// applications within one call is unspecified.
//
// Update is idempotent for ordinary attributes: a second call with the same
// arguments compares everything equal and performs no applies. Event-coupled
// attributes are the exception, re-subscribing on every pass.
func Update(prev *Widget, next Widget, node *ViewNode) *ViewNode {
	if prev == nil {
		applyInitial(next, node)
		return node
	}

	if prev.Key == next.Key && canReuseView(node.ctx, prev.Key, next.Key) {
		applyDiff(prev, next, node)
		return node
	}

	// The existing instance cannot host the new widget type. Tear the old
	// node down completely and realize next from scratch in its place.
	parent := node.parent
	ctx := node.ctx
	node.Teardown()
	def := WidgetDefinitionOf(next.Key)
	fresh, _ := def.CreateView(next, ctx, parent)
	return fresh
}

// canReuseView consults the tree's reuse policy for two identical keys.
func canReuseView(ctx *TreeContext, oldKey, newKey WidgetKey) bool {
	if ctx == nil || ctx.CanReuseView == nil {
		return true
	}
	return ctx.CanReuseView(oldKey, newKey)
}

// applyInitial realizes every attribute of next on a fresh node.
func applyInitial(next Widget, node *ViewNode) {
	node.widgetKey = next.Key
	for _, av := range next.Attributes {
		def := AttributeDefinitionOf(av.Key)
		def.Apply(Absent(), av.Slot, node)
		node.applied[av.Key] = av.Slot
	}
}

// applyDiff walks the symmetric difference of the two attribute sets:
// attributes only in prev are removed (restoring target defaults),
// attributes only in next are added, and shared attributes are applied only
// when their definition reports a change.
func applyDiff(prev *Widget, next Widget, node *ViewNode) {
	node.widgetKey = next.Key

	prevByKey := make(map[AttributeKey]ValueSlot, len(prev.Attributes))
	for _, av := range prev.Attributes {
		prevByKey[av.Key] = av.Slot
	}

	for _, av := range next.Attributes {
		def := AttributeDefinitionOf(av.Key)
		old, shared := prevByKey[av.Key]
		if shared {
			delete(prevByKey, av.Key)
			if def.AlwaysDirty() || def.Compare(old, av.Slot) {
				def.Apply(old, av.Slot, node)
			}
		} else {
			def.Apply(Absent(), av.Slot, node)
		}
		node.applied[av.Key] = av.Slot
	}

	// Whatever is left in prevByKey was removed from the description.
	for key, old := range prevByKey {
		def := AttributeDefinitionOf(key)
		def.Apply(old, Absent(), node)
		delete(node.applied, key)
	}
}
