// Package schema defines the structural specifications for the two
// payload families (catalog push, order) and the validators that walk a
// classified payload collecting every violation.
package schema

import (
	"strconv"
	"strings"
)

// Path locates a violation inside a payload as a sequence of key and
// index segments (e.g. ["items", "prod_1", "title", "default"]).
type Path []string

// Child returns a new Path extended with a key segment. The receiver is
// never mutated; violations collected at sibling paths must not alias.
func (p Path) Child(seg string) Path {
	child := make(Path, len(p), len(p)+1)
	copy(child, p)
	return append(child, seg)
}

// Index returns a new Path extended with an array index segment.
func (p Path) Index(i int) Path {
	return p.Child(strconv.Itoa(i))
}

// Last returns the final segment, or "" for an empty path.
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// String renders the path in dotted form (e.g. "items.prod_1.title").
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Violation is a single structural rule failure found during validation,
// before code and suggestion enrichment.
type Violation struct {
	// Path locates the offending value.
	Path Path

	// Message is the human-readable rule failure.
	Message string

	// Received is the raw value found at Path, if any.
	Received any

	// Expected describes what the schema wanted at Path.
	Expected string
}

// typeName reports the JSON type of a decoded value, for use in
// type-mismatch messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case float64, int, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}
