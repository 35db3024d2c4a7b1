// Package payload decodes raw request bodies and classifies them into
// the schema families the validation engine understands.
package payload

import "encoding/json"

// RequestType identifies which schema family a payload belongs to.
// The string values are part of the wire contract with consumers.
type RequestType string

// Known request types.
const (
	TypeMenuPush RequestType = "Menu Push"
	TypeOrder    RequestType = "Order Payload"
	TypeUnknown  RequestType = "Unknown"
)

// UnknownTypeMessage is the fixed corrective message reported when a
// payload matches neither schema family.
const UnknownTypeMessage = "Could not determine the request type. Ensure the payload has an `items` or `orderId` top-level key."

// Decode normalizes a raw request body. String bodies get one JSON parse
// attempt; a string that does not decode is kept as-is so the classifier
// can report it as unrecognized. Any other value passes through untouched.
func Decode(body any) any {
	s, ok := body.(string)
	if !ok {
		return body
	}

	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return body
	}
	return v
}

// Object returns the payload as a JSON object, if it is one.
func Object(value any) (map[string]any, bool) {
	obj, ok := value.(map[string]any)
	return obj, ok
}
