package wire

import (
	"strconv"
	"testing"

	"github.com/go-anvil/anvil/pkg/core"
	"github.com/go-anvil/anvil/pkg/scalar"
)

func TestDecodeWidget_BoxedAndPacked(t *testing.T) {
	// A 64-bit word above 2^53 must survive decoding bit-exactly.
	word := scalar.Word(1<<63 | 12345)
	doc := `{
		"widget": 4,
		"attrs": [
			{"key": 1, "kind": "boxed", "payload": "Hi"},
			{"key": 2, "kind": "boxed", "payload": true},
			{"key": 3, "kind": "packed-u64", "payload": ` + strconv.FormatUint(uint64(word), 10) + `}
		]
	}`

	w, err := DecodeWidget([]byte(doc))
	if err != nil {
		t.Fatalf("DecodeWidget: %v", err)
	}

	if w.Key != core.WidgetKey(4) {
		t.Errorf("widget key = %d, want 4", w.Key)
	}
	if len(w.Attributes) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(w.Attributes))
	}

	if slot, _ := w.Attribute(1); slot.Kind != core.SlotBoxed || slot.Boxed != "Hi" {
		t.Errorf("attribute 1 = %+v", slot)
	}
	if slot, _ := w.Attribute(2); slot.Boxed != true {
		t.Errorf("attribute 2 = %+v", slot)
	}
	slot, _ := w.Attribute(3)
	if slot.Kind != core.SlotPacked || slot.Packed != word {
		t.Errorf("attribute 3 packed = %d, want %d", slot.Packed, word)
	}
}

func TestDecodeWidget_NestedChild(t *testing.T) {
	doc := `{
		"widget": 1,
		"attrs": [
			{"key": 9, "kind": "child-widget", "payload": {
				"widget": 2,
				"attrs": [{"key": 1, "kind": "boxed", "payload": "inner"}]
			}}
		]
	}`

	w, err := DecodeWidget([]byte(doc))
	if err != nil {
		t.Fatalf("DecodeWidget: %v", err)
	}

	slot, ok := w.Attribute(9)
	if !ok || slot.Kind != core.SlotChild {
		t.Fatalf("attribute 9 = %+v", slot)
	}
	child := slot.Child
	if child.Key != core.WidgetKey(2) {
		t.Errorf("child key = %d, want 2", child.Key)
	}
	if inner, _ := child.Attribute(1); inner.Boxed != "inner" {
		t.Errorf("child attribute = %+v", inner)
	}
}

func TestDecodeWidget_Collection(t *testing.T) {
	RegisterTemplate("wire-test.row", func(item any) core.Widget {
		return core.NewWidget(7, core.Attr(1, core.Boxed(item)))
	})

	doc := `{
		"widget": 5,
		"attrs": [
			{"key": 6, "kind": "child-collection", "payload": {
				"template": "wire-test.row",
				"items": ["a", "b", "c"]
			}}
		]
	}`

	w, err := DecodeWidget([]byte(doc))
	if err != nil {
		t.Fatalf("DecodeWidget: %v", err)
	}

	slot, _ := w.Attribute(6)
	if slot.Kind != core.SlotCollection {
		t.Fatalf("attribute 6 kind = %v", slot.Kind)
	}
	if len(slot.Items) != 3 {
		t.Errorf("expected 3 items, got %d", len(slot.Items))
	}
	row := slot.Template(slot.Items[1])
	if row.Key != core.WidgetKey(7) {
		t.Errorf("templated widget key = %d, want 7", row.Key)
	}
	if v, _ := row.Attribute(1); v.Boxed != "b" {
		t.Errorf("templated attribute = %+v", v)
	}
}

func TestDecodeWidget_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown kind", `{"widget": 1, "attrs": [{"key": 1, "kind": "mystery", "payload": 1}]}`},
		{"unregistered template", `{"widget": 1, "attrs": [{"key": 1, "kind": "child-collection", "payload": {"template": "nope", "items": []}}]}`},
		{"malformed document", `{"widget": `},
		{"non-integer packed", `{"widget": 1, "attrs": [{"key": 1, "kind": "packed-u64", "payload": 1.5}]}`},
		{"negative packed", `{"widget": 1, "attrs": [{"key": 1, "kind": "packed-u64", "payload": -1}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeWidget([]byte(tt.doc)); err == nil {
				t.Error("expected a decode error")
			}
		})
	}
}
