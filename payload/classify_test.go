package payload_test

import (
	"testing"

	"github.com/NetRider88/POSV2/payload"
)

func TestClassifyMenuPush(t *testing.T) {
	got := payload.Classify(map[string]any{
		"items": map[string]any{
			"prod_1": map[string]any{"type": "Product"},
		},
	})

	if got != payload.TypeMenuPush {
		t.Fatalf("expected %q, got %q", payload.TypeMenuPush, got)
	}
}

func TestClassifyOrder(t *testing.T) {
	got := payload.Classify(map[string]any{"orderId": "o1"})

	if got != payload.TypeOrder {
		t.Fatalf("expected %q, got %q", payload.TypeOrder, got)
	}
}

func TestClassifyOrderIDWinsOverItems(t *testing.T) {
	// A top-level orderId routes to the order schema even when a
	// non-empty items object is also present.
	got := payload.Classify(map[string]any{
		"orderId": "o1",
		"items": map[string]any{
			"prod_1": map[string]any{"type": "Product"},
		},
	})

	if got != payload.TypeOrder {
		t.Fatalf("expected %q, got %q", payload.TypeOrder, got)
	}
}

func TestClassifyEmptyItemsIsUnknown(t *testing.T) {
	got := payload.Classify(map[string]any{"items": map[string]any{}})

	if got != payload.TypeUnknown {
		t.Fatalf("expected %q, got %q", payload.TypeUnknown, got)
	}
}

func TestClassifyItemsArrayWithoutOrderIDIsUnknown(t *testing.T) {
	got := payload.Classify(map[string]any{"items": []any{map[string]any{"id": "i1"}}})

	if got != payload.TypeUnknown {
		t.Fatalf("expected %q, got %q", payload.TypeUnknown, got)
	}
}

func TestClassifyNonObject(t *testing.T) {
	for _, v := range []any{nil, "plain text", 42.0, []any{"a"}} {
		if got := payload.Classify(v); got != payload.TypeUnknown {
			t.Fatalf("Classify(%v): expected %q, got %q", v, payload.TypeUnknown, got)
		}
	}
}

func TestDecodeJSONString(t *testing.T) {
	v := payload.Decode(`{"orderId":"o1"}`)

	obj, ok := payload.Object(v)
	if !ok {
		t.Fatalf("expected decoded object, got %T", v)
	}
	if obj["orderId"] != "o1" {
		t.Fatalf("expected orderId o1, got %v", obj["orderId"])
	}
}

func TestDecodeMalformedStringPassesThrough(t *testing.T) {
	v := payload.Decode("not json {")

	if v != "not json {" {
		t.Fatalf("malformed string should pass through, got %v", v)
	}
	if payload.Classify(v) != payload.TypeUnknown {
		t.Fatal("malformed string should classify as Unknown")
	}
}

func TestDecodeNonStringPassesThrough(t *testing.T) {
	in := map[string]any{"orderId": "o1"}
	if v := payload.Decode(in); v == nil {
		t.Fatal("non-string body should pass through")
	}
}
