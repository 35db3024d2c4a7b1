package schema

import (
	"fmt"
	"sort"
)

// ItemType is the discriminator selecting which catalog item variant
// schema applies to an entry in a catalog push.
type ItemType string

// The closed catalog item variant set.
const (
	ItemMenu          ItemType = "Menu"
	ItemProduct       ItemType = "Product"
	ItemCategory      ItemType = "Category"
	ItemTopping       ItemType = "Topping"
	ItemImage         ItemType = "Image"
	ItemScheduleEntry ItemType = "ScheduleEntry"
)

// ItemTypes lists the known variants in reporting order.
var ItemTypes = []ItemType{ItemMenu, ItemProduct, ItemCategory, ItemTopping, ItemImage, ItemScheduleEntry}

// MenuTypes is the closed set of accepted menuType values.
var MenuTypes = []string{"DELIVERY", "DINE_IN", "PICK_UP"}

func knownItemType(t string) bool {
	for _, it := range ItemTypes {
		if string(it) == t {
			return true
		}
	}
	return false
}

// ValidateMenuPush walks a catalog push payload and collects every
// violation; it never stops at the first error. Each entry in the items
// object is validated independently against the variant schema selected
// by its type tag. Fields outside the required subset pass through
// unvalidated.
func ValidateMenuPush(obj map[string]any) []Violation {
	var out []Violation
	itemsPath := Path{"items"}

	items, ok := obj["items"].(map[string]any)
	if !ok || len(items) == 0 {
		out = append(out, Violation{
			Path:     itemsPath,
			Message:  "Menu push must contain at least one item.",
			Received: obj["items"],
			Expected: "non-empty object of catalog items",
		})
		return out
	}

	// Go maps iterate in random order; walk item IDs sorted so the
	// violation list is deterministic for a given payload.
	ids := make([]string, 0, len(items))
	for itemID := range items {
		ids = append(ids, itemID)
	}
	sort.Strings(ids)

	for _, itemID := range ids {
		itemPath := itemsPath.Child(itemID)
		item, isObject := items[itemID].(map[string]any)
		if !isObject {
			out = append(out, Violation{
				Path:     itemPath,
				Message:  fmt.Sprintf("Expected object, received %s", typeName(items[itemID])),
				Received: items[itemID],
				Expected: "catalog item object",
			})
			continue
		}
		out = append(out, validateCatalogItem(itemPath, item)...)
	}
	return out
}

// validateCatalogItem dispatches one catalog entry to its variant schema
// based on the type tag. An unrecognized tag is itself a violation on
// that item, never a fatal error for the whole payload.
func validateCatalogItem(itemPath Path, item map[string]any) []Violation {
	typePath := itemPath.Child("type")

	rawType, present := item["type"]
	if !present {
		return []Violation{{
			Path:     typePath,
			Message:  "Item type is required.",
			Expected: "one of Menu, Product, Category, Topping, Image, ScheduleEntry",
		}}
	}

	tag, isString := rawType.(string)
	if !isString {
		return []Violation{{
			Path:     typePath,
			Message:  fmt.Sprintf("Expected string, received %s", typeName(rawType)),
			Received: rawType,
			Expected: "one of Menu, Product, Category, Topping, Image, ScheduleEntry",
		}}
	}

	if !knownItemType(tag) {
		return []Violation{{
			Path:     typePath,
			Message:  fmt.Sprintf("Unrecognized item type %q. Expected one of Menu, Product, Category, Topping, Image, ScheduleEntry.", tag),
			Received: tag,
			Expected: "one of Menu, Product, Category, Topping, Image, ScheduleEntry",
		}}
	}

	switch ItemType(tag) {
	case ItemMenu:
		return validateMenuItem(itemPath, item)
	case ItemProduct:
		return validateProductItem(itemPath, item)
	case ItemImage:
		return validateImageItem(itemPath, item)
	case ItemCategory, ItemTopping, ItemScheduleEntry:
		// Minimal tagged shells: the tag is the only required field.
		return nil
	}
	return nil
}

func validateMenuItem(itemPath Path, item map[string]any) []Violation {
	var out []Violation
	out = append(out, validateLocalizedString(itemPath.Child("title"), "Title", item, "title", true)...)
	out = append(out, validateMenuType(itemPath.Child("menuType"), item)...)
	out = append(out, validateReferenceMap(itemPath.Child("products"), "Menu", "product", item, "products", true)...)
	out = append(out, validateReferenceMap(itemPath.Child("schedules"), "Menu", "schedule", item, "schedules", false)...)
	out = append(out, validateReferenceMap(itemPath.Child("images"), "Menu", "image", item, "images", false)...)
	out = append(out, validateActive(itemPath.Child("active"), item)...)
	return out
}

func validateProductItem(itemPath Path, item map[string]any) []Violation {
	var out []Violation
	out = append(out, validateLocalizedString(itemPath.Child("title"), "Title", item, "title", true)...)
	out = append(out, validatePrice(itemPath.Child("price"), item)...)
	out = append(out, validateLocalizedString(itemPath.Child("description"), "Description", item, "description", false)...)
	out = append(out, validateReferenceMap(itemPath.Child("images"), "Product", "image", item, "images", false)...)
	out = append(out, validateReferenceMap(itemPath.Child("toppings"), "Product", "topping", item, "toppings", false)...)
	out = append(out, validateActive(itemPath.Child("active"), item)...)
	return out
}

func validateImageItem(itemPath Path, item map[string]any) []Violation {
	urlPath := itemPath.Child("url")

	raw, present := item["url"]
	if !present {
		return []Violation{{
			Path:     urlPath,
			Message:  "Image URL is required.",
			Expected: "valid image URL",
		}}
	}

	u, isString := raw.(string)
	if !isString {
		return []Violation{{
			Path:     urlPath,
			Message:  fmt.Sprintf("Expected string, received %s", typeName(raw)),
			Received: raw,
			Expected: "valid image URL",
		}}
	}

	switch CheckImageURL(u) {
	case URLMalformed:
		return []Violation{{
			Path:     urlPath,
			Message:  "Image URL must be a valid URL.",
			Received: u,
			Expected: "valid image URL",
		}}
	case URLIncomplete:
		return []Violation{{
			Path:     urlPath,
			Message:  "Image URL appears incomplete: expected an image file extension or a full CDN path.",
			Received: u,
			Expected: "valid image URL",
		}}
	}
	return nil
}

// validateLocalizedString checks a localized text object: a "default"
// entry with a non-empty string value, plus zero or more locale-keyed
// entries that are left unvalidated.
func validateLocalizedString(path Path, label string, parent map[string]any, field string, required bool) []Violation {
	raw, present := parent[field]
	if !present {
		if !required {
			return nil
		}
		return []Violation{{
			Path:     path,
			Message:  label + " is required.",
			Expected: "localized text object with a default entry",
		}}
	}

	obj, isObject := raw.(map[string]any)
	if !isObject {
		return []Violation{{
			Path:     path,
			Message:  fmt.Sprintf("Expected object, received %s", typeName(raw)),
			Received: raw,
			Expected: "localized text object with a default entry",
		}}
	}

	defPath := path.Child("default")
	rawDefault, hasDefault := obj["default"]
	if !hasDefault {
		return []Violation{{
			Path:     defPath,
			Message:  label + " default text is required.",
			Expected: "non-empty string",
		}}
	}

	s, isString := rawDefault.(string)
	if !isString {
		return []Violation{{
			Path:     defPath,
			Message:  fmt.Sprintf("Expected string, received %s", typeName(rawDefault)),
			Received: rawDefault,
			Expected: "non-empty string",
		}}
	}
	if s == "" {
		return []Violation{{
			Path:     defPath,
			Message:  label + " default text cannot be empty.",
			Received: s,
			Expected: "non-empty string",
		}}
	}
	return nil
}

func validateMenuType(path Path, item map[string]any) []Violation {
	raw, present := item["menuType"]
	if !present {
		return []Violation{{
			Path:     path,
			Message:  "Menu type is required.",
			Expected: "one of DELIVERY, DINE_IN, PICK_UP",
		}}
	}

	s, isString := raw.(string)
	if !isString {
		return []Violation{{
			Path:     path,
			Message:  fmt.Sprintf("Expected string, received %s", typeName(raw)),
			Received: raw,
			Expected: "one of DELIVERY, DINE_IN, PICK_UP",
		}}
	}

	for _, mt := range MenuTypes {
		if s == mt {
			return nil
		}
	}
	return []Violation{{
		Path:     path,
		Message:  "Menu type must be one of DELIVERY, DINE_IN, PICK_UP.",
		Received: s,
		Expected: "one of DELIVERY, DINE_IN, PICK_UP",
	}}
}

// validateReferenceMap checks an object of {id, type} references keyed by
// caller-assigned names. When required, the object must be present and
// non-empty.
func validateReferenceMap(path Path, owner, kind string, parent map[string]any, field string, required bool) []Violation {
	raw, present := parent[field]
	if !present {
		if !required {
			return nil
		}
		return []Violation{{
			Path:     path,
			Message:  fmt.Sprintf("%s must contain at least one %s reference.", owner, kind),
			Expected: "non-empty object of {id, type} references",
		}}
	}

	refs, isObject := raw.(map[string]any)
	if !isObject {
		return []Violation{{
			Path:     path,
			Message:  fmt.Sprintf("Expected object, received %s", typeName(raw)),
			Received: raw,
			Expected: "object of {id, type} references",
		}}
	}
	if required && len(refs) == 0 {
		return []Violation{{
			Path:     path,
			Message:  fmt.Sprintf("%s must contain at least one %s reference.", owner, kind),
			Received: refs,
			Expected: "non-empty object of {id, type} references",
		}}
	}

	keys := make([]string, 0, len(refs))
	for k := range refs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []Violation
	for _, k := range keys {
		out = append(out, validateReference(path.Child(k), refs[k])...)
	}
	return out
}

func validateReference(path Path, raw any) []Violation {
	ref, isObject := raw.(map[string]any)
	if !isObject {
		return []Violation{{
			Path:     path,
			Message:  fmt.Sprintf("Expected object, received %s", typeName(raw)),
			Received: raw,
			Expected: "{id, type} reference",
		}}
	}

	var out []Violation

	idPath := path.Child("id")
	rawID, hasID := ref["id"]
	switch {
	case !hasID:
		out = append(out, Violation{
			Path:     idPath,
			Message:  "Reference id is required.",
			Expected: "non-empty string",
		})
	default:
		if s, isString := rawID.(string); !isString {
			out = append(out, Violation{
				Path:     idPath,
				Message:  fmt.Sprintf("Expected string, received %s", typeName(rawID)),
				Received: rawID,
				Expected: "non-empty string",
			})
		} else if s == "" {
			out = append(out, Violation{
				Path:     idPath,
				Message:  "Reference id cannot be empty.",
				Received: s,
				Expected: "non-empty string",
			})
		}
	}

	typePath := path.Child("type")
	rawType, hasType := ref["type"]
	switch {
	case !hasType:
		out = append(out, Violation{
			Path:     typePath,
			Message:  "Reference type is required.",
			Expected: "string",
		})
	default:
		if _, isString := rawType.(string); !isString {
			out = append(out, Violation{
				Path:     typePath,
				Message:  fmt.Sprintf("Expected string, received %s", typeName(rawType)),
				Received: rawType,
				Expected: "string",
			})
		}
	}

	return out
}

func validateActive(path Path, item map[string]any) []Violation {
	raw, present := item["active"]
	if !present {
		return nil // absent means active
	}
	if _, isBool := raw.(bool); !isBool {
		return []Violation{{
			Path:     path,
			Message:  fmt.Sprintf("Expected boolean, received %s", typeName(raw)),
			Received: raw,
			Expected: "boolean",
		}}
	}
	return nil
}

func validatePrice(path Path, item map[string]any) []Violation {
	raw, present := item["price"]
	if !present {
		return []Violation{{
			Path:     path,
			Message:  "Price is required.",
			Expected: "non-empty string",
		}}
	}

	// Vendor formatting is preserved, so price is a string, not a number.
	s, isString := raw.(string)
	if !isString {
		return []Violation{{
			Path:     path,
			Message:  fmt.Sprintf("Expected string, received %s", typeName(raw)),
			Received: raw,
			Expected: "non-empty string",
		}}
	}
	if s == "" {
		return []Violation{{
			Path:     path,
			Message:  "Price cannot be empty.",
			Received: s,
			Expected: "non-empty string",
		}}
	}
	return nil
}
