package schema

import (
	"net/url"
	"strings"
)

// URLIssue classifies the outcome of the image URL shape check.
type URLIssue int

const (
	// URLOK means the URL passed the shape check.
	URLOK URLIssue = iota

	// URLMalformed means the value is not a syntactically valid
	// absolute http(s) URL.
	URLMalformed

	// URLIncomplete means the URL parses but carries neither a
	// recognized image file extension nor a plausible CDN path. This
	// usually indicates a truncated or placeholder URL.
	URLIncomplete
)

// imageExtensions are the recognized image file extensions, lower-case.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".tiff", ".bmp"}

// cdnPathMarkers identify managed image CDNs whose URLs legitimately
// omit file extensions (transformation parameters live in the path).
var cdnPathMarkers = []string{"/image/upload/", "/images/", "/media/", "/img/"}

// minCDNPathLen is the minimum path length for the CDN clause to apply.
// Shorter paths are treated as truncated.
const minCDNPathLen = 20

// CheckImageURL validates the shape of an image URL without fetching it.
// The URL must parse as an absolute http(s) URL and either end in a
// recognized image file extension or match a known CDN path pattern of
// sufficient length. The CDN clause is a heuristic guard against
// truncated or incomplete URLs.
func CheckImageURL(raw string) URLIssue {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return URLMalformed
	}

	if HasImageExtension(raw) {
		return URLOK
	}

	lowerPath := strings.ToLower(u.Path)
	for _, marker := range cdnPathMarkers {
		if strings.Contains(lowerPath, marker) && len(u.Path) >= minCDNPathLen {
			return URLOK
		}
	}
	return URLIncomplete
}

// HasImageExtension reports whether the URL path ends in a recognized
// image file extension (query string and fragment ignored).
func HasImageExtension(raw string) bool {
	p := raw
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		p = u.Path
	}
	p = strings.ToLower(p)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(p, ext) {
			return true
		}
	}
	return false
}
