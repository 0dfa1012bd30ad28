package core

import (
	"testing"

	"github.com/go-anvil/anvil/pkg/nativetest"
	"github.com/go-anvil/anvil/pkg/platform"
)

func TestNodeOf_LookupAndInvalidation(t *testing.T) {
	target := nativetest.NewTarget("fake.Button")
	node := NewRootNode(&TreeContext{}, target)

	if NodeOf(target) != node {
		t.Fatal("expected live instance to resolve to its node")
	}

	node.Teardown()

	// The lookup and the instance handle are invalidated together.
	if NodeOf(target) != nil {
		t.Error("expected torn-down instance to no longer resolve")
	}
	if node.Target() != nil {
		t.Error("expected instance handle dropped at teardown")
	}
	if !target.Released {
		t.Error("expected instance released at teardown")
	}
}

func TestNodeOf_UnknownTarget(t *testing.T) {
	if NodeOf(nativetest.NewTarget("fake.Stranger")) != nil {
		t.Error("expected unknown instance to resolve to nil")
	}
}

func TestTeardown_DepthFirstAndHandlersBeforeRelease(t *testing.T) {
	ctx := &TreeContext{Dispatcher: platform.NewDispatcher(func(platform.Message) {})}
	target := nativetest.NewTarget("fake.Button")
	node := NewRootNode(ctx, target)

	child := NewWidget(defLabel.Key(), Attr(attrText.Key(), Boxed("inner")))
	w := NewWidget(defButton.Key(),
		Attr(attrContent.Key(), ChildWidget(child)),
		Attr(attrClicked.Key(), Boxed(ValueEventData{
			Value:   "go",
			Message: func(any) platform.Message { return "msg" },
		})),
	)
	Update(nil, w, node)

	childTarget := node.Child(attrContent.Key()).Target().(*nativetest.Target)

	node.Teardown()

	if !childTarget.Released {
		t.Error("expected child instance released")
	}
	if target.HandlerCount("clicked") != 0 {
		t.Error("expected handlers detached at teardown")
	}

	// On the parent, detaching must come before releasing the instance.
	unsub := journalIndex(target.Journal, "unsubscribe clicked")
	release := journalIndex(target.Journal, "release")
	if unsub < 0 || release < 0 || unsub > release {
		t.Errorf("expected detach before release, journal: %v", target.Journal)
	}
}

func TestDetachHandler_NeverAttachedIsNoop(t *testing.T) {
	target := nativetest.NewTarget("fake.Button")
	node := NewRootNode(&TreeContext{}, target)

	before := len(target.Journal)
	node.detachHandler(attrClicked.Key())
	if len(target.Journal) != before {
		t.Error("expected no target mutation for a never-attached handler")
	}
}

func TestArena_RecyclesIDs(t *testing.T) {
	first := NewRootNode(&TreeContext{}, nativetest.NewTarget("fake.A"))
	id := first.ID()
	first.Teardown()

	second := NewRootNode(&TreeContext{}, nativetest.NewTarget("fake.B"))
	if second.ID() != id {
		t.Errorf("expected recycled id %d, got %d", id, second.ID())
	}
	second.Teardown()
}

func TestViewNode_Accessors(t *testing.T) {
	ctx := &TreeContext{}
	parentTarget := nativetest.NewTarget("fake.Panel")
	parent := NewRootNode(ctx, parentTarget)

	w := NewWidget(defButton.Key(),
		Attr(attrContent.Key(), ChildWidget(NewWidget(defLabel.Key()))))
	Update(nil, w, parent)

	child := parent.Child(attrContent.Key())
	if child.Parent() != parent {
		t.Error("expected child to link back to its owner")
	}
	if child.Context() != ctx {
		t.Error("expected child to share the tree context")
	}
	if parent.WidgetKey() != defButton.Key() {
		t.Errorf("parent widget key = %d, want %d", parent.WidgetKey(), defButton.Key())
	}
	if child.WidgetKey() != defLabel.Key() {
		t.Errorf("child widget key = %d, want %d", child.WidgetKey(), defLabel.Key())
	}
	parent.Teardown()
}
