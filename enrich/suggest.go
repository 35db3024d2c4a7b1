package enrich

import (
	"fmt"
	"strings"

	"github.com/NetRider88/POSV2/schema"
)

// suggestionRule is one entry in the fix-suggestion priority chain. The
// chain is an explicit ordered list, not a lookup map: ordering decides
// precedence when several patterns could match, and only the first
// matching rule applies per violation.
type suggestionRule struct {
	match func(msg string, path schema.Path) bool
	text  func(v schema.Violation, msg string) string
}

// pathContains reports whether any path segment equals seg.
func pathContains(path schema.Path, seg string) bool {
	for _, s := range path {
		if s == seg {
			return true
		}
	}
	return false
}

// receivedType extracts the "received X" type name from a type-mismatch
// message, or "" when the message has a different shape.
func receivedType(msg string) string {
	_, after, found := strings.Cut(msg, ", received ")
	if !found {
		return ""
	}
	return strings.TrimRight(after, ".")
}

// expectedType extracts the "Expected X" type name from a type-mismatch
// message.
func expectedType(msg string) string {
	after, found := strings.CutPrefix(msg, "expected ")
	if !found {
		return ""
	}
	name, _, _ := strings.Cut(after, ",")
	return name
}

// suggestionRules is evaluated top to bottom; the final rule always
// matches. Patterns are checked against the lower-cased message text.
var suggestionRules = []suggestionRule{
	{
		// Scalar type mismatch (string/number/boolean expected).
		match: func(msg string, _ schema.Path) bool {
			return strings.HasPrefix(msg, "expected ") &&
				strings.Contains(msg, ", received ") &&
				!strings.HasPrefix(msg, "expected object")
		},
		text: func(_ schema.Violation, msg string) string {
			return fmt.Sprintf("Change the value to a %s; the payload sent a %s.", expectedType(msg), receivedType(msg))
		},
	},
	{
		// Object expected. A plain string usually means a localized
		// text object was flattened.
		match: func(msg string, _ schema.Path) bool {
			return strings.HasPrefix(msg, "expected object")
		},
		text: func(_ schema.Violation, msg string) string {
			if receivedType(msg) == "string" {
				return `Use an object like {"default": "Your text"} instead of a plain string.`
			}
			return "Provide an object value for this field."
		},
	},
	{
		match: func(msg string, _ schema.Path) bool {
			return strings.Contains(msg, "required") || strings.Contains(msg, "missing")
		},
		text: func(v schema.Violation, _ string) string {
			return fmt.Sprintf("Add the missing `%s` field to the payload.", v.Path.Last())
		},
	},
	{
		match: func(msg string, _ schema.Path) bool {
			return strings.Contains(msg, "url") || strings.Contains(msg, "incomplete") || strings.Contains(msg, "extension")
		},
		text: func(_ schema.Violation, _ string) string {
			return "Provide a complete, publicly reachable image URL ending in .jpg, .jpeg, .png, .gif, or .webp."
		},
	},
	{
		match: func(_ string, path schema.Path) bool {
			return pathContains(path, "menuType")
		},
		text: func(_ schema.Violation, _ string) string {
			return "Set menuType to one of DELIVERY, DINE_IN, PICK_UP."
		},
	},
	{
		match: func(msg string, _ schema.Path) bool {
			return strings.Contains(msg, "at least one")
		},
		text: func(v schema.Violation, _ string) string {
			return fmt.Sprintf("Add at least one entry to `%s`.", v.Path.Last())
		},
	},
	{
		match: func(msg string, _ schema.Path) bool {
			return strings.Contains(msg, "positive")
		},
		text: func(_ schema.Violation, _ string) string {
			return "Use a value greater than zero."
		},
	},
	{
		match: func(_ string, path schema.Path) bool {
			return path.Last() == "currency"
		},
		text: func(_ schema.Violation, _ string) string {
			return "Use a 3-letter ISO 4217 currency code such as AED."
		},
	},
	{
		match: func(_ string, _ schema.Path) bool { return true },
		text: func(_ schema.Violation, _ string) string {
			return "Review the API documentation for the expected payload format."
		},
	},
}

// FixSuggestionFor generates remediation guidance for a violation by
// running the suggestion chain. Heuristic by design: it matches message
// wording and paths rather than the schema's formal type, trading
// precision for coverage across schema evolution.
func FixSuggestionFor(v schema.Violation) string {
	msg := strings.ToLower(v.Message)
	for _, r := range suggestionRules {
		if r.match(msg, v.Path) {
			return r.text(v, msg)
		}
	}
	return "" // unreachable: the final rule always matches
}

// descriptionRule is one entry in the expected-format description chain,
// evaluated independently from the suggestion chain.
type descriptionRule struct {
	match func(msg string, path schema.Path) bool
	text  string
}

var descriptionRules = []descriptionRule{
	{func(msg string, _ schema.Path) bool { return strings.Contains(msg, "expected string") }, "a string value"},
	{func(msg string, _ schema.Path) bool { return strings.Contains(msg, "expected number") }, "a numeric value"},
	{func(msg string, _ schema.Path) bool { return strings.Contains(msg, "expected boolean") }, "a boolean (true or false)"},
	{func(msg string, _ schema.Path) bool { return strings.Contains(msg, "expected object") }, "a JSON object"},
	{func(_ string, path schema.Path) bool { return pathContains(path, "menuType") }, "one of DELIVERY, DINE_IN, PICK_UP"},
	{func(_ string, path schema.Path) bool { return path.Last() == "currency" }, "a 3-character currency code"},
	{func(msg string, _ schema.Path) bool { return strings.Contains(msg, "url") }, "a complete, publicly reachable image URL"},
	{func(msg string, _ schema.Path) bool { return strings.Contains(msg, "positive integer") }, "a positive whole number"},
	{func(msg string, _ schema.Path) bool { return strings.Contains(msg, "positive") }, "a number greater than zero"},
}

// ExpectedDescriptionFor derives a short expected-format phrase for a
// violation, falling back to a documentation pointer.
func ExpectedDescriptionFor(v schema.Violation) string {
	msg := strings.ToLower(v.Message)
	for _, r := range descriptionRules {
		if r.match(msg, v.Path) {
			return r.text
		}
	}
	return "see documentation"
}
