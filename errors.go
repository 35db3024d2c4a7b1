package posv2

import "errors"

// Sentinel errors returned by Validator operations. Validation outcomes
// themselves are never errors — a malformed payload produces an invalid
// ValidationResult, not a non-nil error. Errors here mean the caller
// misused the API or misconfigured the validator.
var (
	// ErrUnknownPreset is returned when a criteria preset name is not registered.
	ErrUnknownPreset = errors.New("posv2: unknown criteria preset")

	// ErrInvalidOverlaySchema is returned when an overlay schema document fails to compile.
	ErrInvalidOverlaySchema = errors.New("posv2: invalid overlay schema")
)
