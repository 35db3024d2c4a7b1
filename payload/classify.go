package payload

// Classify decides which schema family a decoded payload belongs to.
// The classification is provisional: it selects the schema to validate
// against, not final validity.
//
// Ordering matters. A top-level orderId always routes to the order
// schema, even when an items key is also present, so a catalog push is
// only recognized when the payload carries a non-empty items object and
// no orderId at all. An empty items object is not a catalog push.
func Classify(value any) RequestType {
	obj, ok := value.(map[string]any)
	if !ok {
		return TypeUnknown
	}

	_, hasOrderID := obj["orderId"]
	items, itemsIsObject := obj["items"].(map[string]any)

	if itemsIsObject && len(items) > 0 && !hasOrderID {
		return TypeMenuPush
	}
	if hasOrderID {
		return TypeOrder
	}
	return TypeUnknown
}
