package schema

import (
	"fmt"
	"math"
)

// ValidateOrder walks an order payload and collects every violation; it
// never stops at the first error.
func ValidateOrder(obj map[string]any) []Violation {
	var out []Violation

	out = append(out, validateNonEmptyString(Path{"orderId"}, "Order ID", obj, "orderId")...)
	out = append(out, validateCustomerDetails(Path{"customerDetails"}, obj)...)
	out = append(out, validateOrderItems(Path{"items"}, obj)...)
	out = append(out, validatePositiveNumber(Path{"totalAmount"}, "Total amount", obj, "totalAmount", false)...)
	out = append(out, validateCurrency(Path{"currency"}, obj)...)

	return out
}

func validateCustomerDetails(path Path, obj map[string]any) []Violation {
	raw, present := obj["customerDetails"]
	if !present {
		return []Violation{{
			Path:     path,
			Message:  "Customer details are required.",
			Expected: "object with name and phone",
		}}
	}

	details, isObject := raw.(map[string]any)
	if !isObject {
		return []Violation{{
			Path:     path,
			Message:  fmt.Sprintf("Expected object, received %s", typeName(raw)),
			Received: raw,
			Expected: "object with name and phone",
		}}
	}

	var out []Violation
	out = append(out, validateNonEmptyString(path.Child("name"), "Customer name", details, "name")...)
	out = append(out, validateNonEmptyString(path.Child("phone"), "Customer phone", details, "phone")...)
	return out
}

func validateOrderItems(path Path, obj map[string]any) []Violation {
	raw, present := obj["items"]
	items, isArray := raw.([]any)
	if !present || !isArray || len(items) == 0 {
		return []Violation{{
			Path:     path,
			Message:  "Order must have at least one item.",
			Received: raw,
			Expected: "non-empty array of order items",
		}}
	}

	var out []Violation
	for i, rawItem := range items {
		itemPath := path.Index(i)
		item, isObject := rawItem.(map[string]any)
		if !isObject {
			out = append(out, Violation{
				Path:     itemPath,
				Message:  fmt.Sprintf("Expected object, received %s", typeName(rawItem)),
				Received: rawItem,
				Expected: "order item object",
			})
			continue
		}

		out = append(out, validateNonEmptyString(itemPath.Child("id"), "Item ID", item, "id")...)
		out = append(out, validatePositiveNumber(itemPath.Child("quantity"), "Quantity", item, "quantity", true)...)
		out = append(out, validatePositiveNumber(itemPath.Child("price"), "Price", item, "price", false)...)

		if si, hasSI := item["specialInstructions"]; hasSI {
			if _, isString := si.(string); !isString {
				out = append(out, Violation{
					Path:     itemPath.Child("specialInstructions"),
					Message:  fmt.Sprintf("Expected string, received %s", typeName(si)),
					Received: si,
					Expected: "string",
				})
			}
		}
	}
	return out
}

func validateCurrency(path Path, obj map[string]any) []Violation {
	raw, present := obj["currency"]
	if !present {
		return []Violation{{
			Path:     path,
			Message:  "Currency is required.",
			Expected: "3-letter currency code",
		}}
	}

	s, isString := raw.(string)
	if !isString {
		return []Violation{{
			Path:     path,
			Message:  fmt.Sprintf("Expected string, received %s", typeName(raw)),
			Received: raw,
			Expected: "3-letter currency code",
		}}
	}
	if len(s) != 3 {
		return []Violation{{
			Path:     path,
			Message:  "Currency must be a 3-letter code (e.g., AED).",
			Received: s,
			Expected: "3-letter currency code",
		}}
	}
	return nil
}

func validateNonEmptyString(path Path, label string, parent map[string]any, field string) []Violation {
	raw, present := parent[field]
	if !present {
		return []Violation{{
			Path:     path,
			Message:  label + " is required.",
			Expected: "non-empty string",
		}}
	}

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
			Message:  label + " cannot be empty.",
			Received: s,
			Expected: "non-empty string",
		}}
	}
	return nil
}

// validatePositiveNumber checks a required numeric field. With integral
// set, the value must also be a whole number.
func validatePositiveNumber(path Path, label string, parent map[string]any, field string, integral bool) []Violation {
	raw, present := parent[field]
	if !present {
		return []Violation{{
			Path:     path,
			Message:  label + " is required.",
			Expected: positiveExpectation(integral),
		}}
	}

	n, isNumber := raw.(float64)
	if !isNumber {
		return []Violation{{
			Path:     path,
			Message:  fmt.Sprintf("Expected number, received %s", typeName(raw)),
			Received: raw,
			Expected: positiveExpectation(integral),
		}}
	}

	if integral && n != math.Trunc(n) {
		return []Violation{{
			Path:     path,
			Message:  label + " must be a positive integer.",
			Received: n,
			Expected: positiveExpectation(integral),
		}}
	}
	if n <= 0 {
		msg := label + " must be a positive number."
		if integral {
			msg = label + " must be a positive integer."
		}
		return []Violation{{
			Path:     path,
			Message:  msg,
			Received: n,
			Expected: positiveExpectation(integral),
		}}
	}
	return nil
}

func positiveExpectation(integral bool) string {
	if integral {
		return "positive integer"
	}
	return "positive number"
}
