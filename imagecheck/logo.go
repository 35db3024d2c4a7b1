package imagecheck

import "regexp"

// logoPatterns identifies "logo" class images by item id or alt text.
// Brand and restaurant logos are commonly small and are not held to
// product-photo dimension minimums. The pattern set is best-effort
// configuration data with no documented ground truth; preserve it as-is
// rather than tightening or loosening it.
var logoPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)logo`),
	regexp.MustCompile(`(?i)restaurant.*image`),
	regexp.MustCompile(`(?i)store.*image`),
	regexp.MustCompile(`(?i)brand`),
	regexp.MustCompile(`(?i)icon`),
}

// IsLogo reports whether an Image-typed catalog item should be excluded
// from dimension validation. An item counts as a logo when its id or
// any string value inside its localized alt object matches one of the
// logo patterns, case-insensitively.
func IsLogo(itemID string, alt map[string]any) bool {
	for _, p := range logoPatterns {
		if p.MatchString(itemID) {
			return true
		}
	}
	for _, v := range alt {
		s, ok := v.(string)
		if !ok {
			continue
		}
		for _, p := range logoPatterns {
			if p.MatchString(s) {
				return true
			}
		}
	}
	return false
}
