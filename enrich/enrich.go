package enrich

import (
	"github.com/NetRider88/POSV2/payload"
	"github.com/NetRider88/POSV2/result"
	"github.com/NetRider88/POSV2/schema"
)

// Enrich converts a violation list into detailed errors for the given
// request type. Output order follows the input violation list, so the
// Nth detailed error corresponds to the Nth violation.
func Enrich(rt payload.RequestType, vs []schema.Violation) []result.DetailedError {
	detailed := make([]result.DetailedError, 0, len(vs))
	for _, v := range vs {
		detailed = append(detailed, result.DetailedError{
			Path:                v.Path.String(),
			Message:             v.Message,
			ErrorCode:           CodeFor(rt, v.Path),
			ReceivedValue:       v.Received,
			ExpectedDescription: ExpectedDescriptionFor(v),
			FixSuggestion:       FixSuggestionFor(v),
		})
	}
	return detailed
}

// UnknownRequest builds the single detailed error reported for payloads
// that match neither schema family.
func UnknownRequest() result.DetailedError {
	return result.DetailedError{
		Message:             payload.UnknownTypeMessage,
		ErrorCode:           CodeUnknownRequestType,
		ExpectedDescription: "a payload with an `items` or `orderId` top-level key",
		FixSuggestion:       "Send either a catalog push (top-level `items` object) or an order payload (top-level `orderId`).",
	}
}
