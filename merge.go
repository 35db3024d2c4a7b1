package posv2

import (
	"context"

	"github.com/NetRider88/POSV2/enrich"
	"github.com/NetRider88/POSV2/imagecheck"
	"github.com/NetRider88/POSV2/result"
	"github.com/NetRider88/POSV2/schema"
)

// Fix suggestions attached to image dimension failures.
const (
	fixResize = "Resize or re-export the image so it meets the required dimensions and size limits."
	fixFetch  = "Ensure the image URL is publicly reachable and serves image content."
)

// eligibleImageRefs selects the Image-typed items whose URLs undergo the
// dimension check. Logo-like items are always excluded. The extension
// filter belongs to the auto-detection trigger only: when the caller
// explicitly requests the dimension pass, every non-logo image URL is
// fetched, including extension-less CDN-style URLs.
func eligibleImageRefs(obj map[string]any, requireExtension bool) []schema.ImageRef {
	var refs []schema.ImageRef
	for _, ref := range schema.ImageRefs(obj) {
		if imagecheck.IsLogo(ref.ItemID, ref.Alt) {
			continue
		}
		if requireExtension && !schema.HasImageExtension(ref.URL) {
			continue
		}
		refs = append(refs, ref)
	}
	return refs
}

// mergeImageFailures fans out one fetch-and-measure per distinct URL,
// waits for all of them, and folds any failures into a fresh result.
// The primary result is never mutated: if every image passes it is
// returned unchanged, otherwise a new failing result replaces it
// wholesale, preserving the classified request type.
func (v *Validator) mergeImageFailures(ctx context.Context, primary *result.ValidationResult, refs []schema.ImageRef, crit imagecheck.Criteria) *result.ValidationResult {
	urls := make([]string, 0, len(refs))
	seen := make(map[string]bool, len(refs))
	for _, ref := range refs {
		if !seen[ref.URL] {
			seen[ref.URL] = true
			urls = append(urls, ref.URL)
		}
	}

	results := v.checker.CheckAll(ctx, urls, crit)

	var detailed []result.DetailedError
	for _, ref := range refs {
		res, ok := results[ref.URL]
		if !ok || res.IsValid {
			continue
		}

		code := enrich.CodeInvalidImageDims
		suggestion := fixResize
		if res.FetchFailed {
			code = enrich.CodeImageValidationError
			suggestion = fixFetch
		}
		for _, msg := range res.Errors {
			detailed = append(detailed, result.DetailedError{
				Path:          "items." + ref.ItemID + ".url",
				Message:       msg,
				ErrorCode:     code,
				ReceivedValue: ref.URL,
				FixSuggestion: suggestion,
			})
		}
	}

	if len(detailed) == 0 {
		return primary
	}

	v.logger.DebugContext(ctx, "image dimension check failed",
		"images", len(urls),
		"failures", len(detailed),
	)
	return result.Invalid(primary.RequestType, detailed)
}
