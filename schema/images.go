package schema

import "sort"

// ImageRef is an Image-typed catalog entry referenced by a catalog push,
// extracted for the asynchronous dimension check.
type ImageRef struct {
	// ItemID is the caller-assigned key of the item in the items object.
	ItemID string

	// URL is the item's url field.
	URL string

	// Alt holds the item's optional localized alt object, used by the
	// logo exclusion filter.
	Alt map[string]any
}

// ImageRefs collects every Image-typed item carrying a string url from a
// catalog push payload, sorted by item ID. Items of other types, items
// without a url, and non-object entries are skipped.
func ImageRefs(obj map[string]any) []ImageRef {
	items, ok := obj["items"].(map[string]any)
	if !ok {
		return nil
	}

	var refs []ImageRef
	for itemID, raw := range items {
		item, isObject := raw.(map[string]any)
		if !isObject {
			continue
		}
		if tag, _ := item["type"].(string); ItemType(tag) != ItemImage {
			continue
		}
		u, isString := item["url"].(string)
		if !isString || u == "" {
			continue
		}

		alt, _ := item["alt"].(map[string]any)
		refs = append(refs, ImageRef{ItemID: itemID, URL: u, Alt: alt})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].ItemID < refs[j].ItemID })
	return refs
}
