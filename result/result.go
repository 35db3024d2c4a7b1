// Package result defines the unified validation outcome returned to
// consumers of the validation engine.
package result

import (
	"fmt"

	"github.com/NetRider88/POSV2/payload"
)

// DetailedError annotates a single violation with a stable error code
// and remediation guidance.
type DetailedError struct {
	// Path locates the offending value in dotted form (e.g.
	// "items.prod_1.title.default").
	Path string `json:"path"`

	// Message is the human-readable rule failure.
	Message string `json:"message"`

	// ErrorCode is a stable string code from the published vocabulary.
	ErrorCode string `json:"errorCode"`

	// ReceivedValue is the raw value found at Path, if any.
	ReceivedValue any `json:"receivedValue,omitempty"`

	// ExpectedDescription describes what the schema wanted at Path.
	ExpectedDescription string `json:"expectedDescription,omitempty"`

	// FixSuggestion is generated guidance on how to fix the violation.
	FixSuggestion string `json:"fixSuggestion,omitempty"`
}

// ValidationResult is the complete outcome of one validation call.
//
// When IsValid is true, Errors is nil and ErrorCodes/DetailedErrors are
// empty. The three error sequences are positionally aligned: the Nth
// code always corresponds to the Nth detailed error and the Nth human
// message. A result is never mutated after being returned; the merge
// step replaces it wholesale with a fresh copy.
type ValidationResult struct {
	IsValid        bool                `json:"isValid"`
	RequestType    payload.RequestType `json:"requestType"`
	Errors         []string            `json:"errors"`
	ErrorCodes     []string            `json:"errorCodes"`
	DetailedErrors []DetailedError     `json:"detailedErrors"`
}

// Valid returns a passing result for the given request type.
func Valid(rt payload.RequestType) *ValidationResult {
	return &ValidationResult{
		IsValid:        true,
		RequestType:    rt,
		ErrorCodes:     []string{},
		DetailedErrors: []DetailedError{},
	}
}

// Invalid builds a failing result from detailed errors, deriving the
// aligned human messages and code sequence.
func Invalid(rt payload.RequestType, detailed []DetailedError) *ValidationResult {
	errs := make([]string, 0, len(detailed))
	codes := make([]string, 0, len(detailed))
	for _, d := range detailed {
		errs = append(errs, humanMessage(d))
		codes = append(codes, d.ErrorCode)
	}

	return &ValidationResult{
		IsValid:        false,
		RequestType:    rt,
		Errors:         errs,
		ErrorCodes:     codes,
		DetailedErrors: detailed,
	}
}

// humanMessage renders a detailed error as "[path] message", or just the
// message when the violation has no path (e.g. unrecognized payloads).
func humanMessage(d DetailedError) string {
	if d.Path == "" {
		return d.Message
	}
	return fmt.Sprintf("[%s] %s", d.Path, d.Message)
}
