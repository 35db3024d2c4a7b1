package posv2

import (
	"context"
	"fmt"

	"github.com/NetRider88/POSV2/enrich"
	"github.com/NetRider88/POSV2/imagecheck"
	"github.com/NetRider88/POSV2/payload"
	"github.com/NetRider88/POSV2/result"
	"github.com/NetRider88/POSV2/schema"
)

// ValidateRequest classifies a raw payload and validates it against the
// schema family it belongs to.
//
// The critical path:
//  1. Decode string bodies (one JSON parse attempt; failures pass through).
//  2. Classify: catalog push, order payload, or unknown.
//  3. Structurally validate against the matching schema, collecting the
//     complete violation list (never just the first failure).
//  4. For catalog pushes, append caller-registered overlay schema violations.
//  5. Enrich every violation with an error code, expected-value
//     description, and fix suggestion.
//
// The call is total: any input yields a ValidationResult, never an error.
func (v *Validator) ValidateRequest(body any) *result.ValidationResult {
	value := payload.Decode(body)
	rt := payload.Classify(value)

	switch rt {
	case payload.TypeMenuPush:
		obj, _ := payload.Object(value)
		violations := schema.ValidateMenuPush(obj)
		violations = append(violations, v.overlay.CheckMenuPush(obj)...)
		if len(violations) == 0 {
			return result.Valid(rt)
		}
		return result.Invalid(rt, enrich.Enrich(rt, violations))

	case payload.TypeOrder:
		obj, _ := payload.Object(value)
		violations := schema.ValidateOrder(obj)
		if len(violations) == 0 {
			return result.Valid(rt)
		}
		return result.Invalid(rt, enrich.Enrich(rt, violations))

	default:
		return result.Invalid(payload.TypeUnknown, []result.DetailedError{enrich.UnknownRequest()})
	}
}

// Validate runs the full pipeline: structural validation, then, when
// the payload is a structurally valid catalog push that references
// non-logo image URLs with recognized image extensions, the concurrent
// image dimension pass under the Standard criteria, merged into the
// final result. The extension requirement is the auto-detection
// heuristic; URLs accepted by the CDN path clause alone are not fetched
// here.
func (v *Validator) Validate(ctx context.Context, body any) *result.ValidationResult {
	return v.validateWithImages(ctx, body, imagecheck.Standard, true)
}

// ValidateImageDimensions runs structural validation and then the image
// dimension pass under explicitly chosen criteria. The image pass only
// applies to structurally valid catalog pushes; for any other outcome
// the structural result is returned as-is. Unlike Validate, the pass
// was explicitly requested, so every non-logo image URL is fetched,
// extension-less CDN-style URLs included.
func (v *Validator) ValidateImageDimensions(ctx context.Context, body any, crit imagecheck.Criteria) *result.ValidationResult {
	return v.validateWithImages(ctx, body, crit, false)
}

// ValidateWithPreset is ValidateImageDimensions with a named criteria
// preset ("standard", "product", "menu", "thumbnail").
func (v *Validator) ValidateWithPreset(ctx context.Context, body any, preset string) (*result.ValidationResult, error) {
	crit, ok := imagecheck.PresetByName(preset)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, preset)
	}
	return v.ValidateImageDimensions(ctx, body, crit), nil
}

func (v *Validator) validateWithImages(ctx context.Context, body any, crit imagecheck.Criteria, requireExtension bool) *result.ValidationResult {
	primary := v.ValidateRequest(body)
	if !primary.IsValid || primary.RequestType != payload.TypeMenuPush {
		return primary
	}

	obj, ok := payload.Object(payload.Decode(body))
	if !ok {
		return primary
	}

	// A push with no checkable image URLs settles immediately on the
	// structural result; no fetches are launched.
	refs := eligibleImageRefs(obj, requireExtension)
	if len(refs) == 0 {
		return primary
	}

	return v.mergeImageFailures(ctx, primary, refs, crit)
}
