// Package imagecheck fetches catalog image URLs and checks their pixel
// dimensions, byte size, and aspect ratio against named criteria
// presets.
package imagecheck

// Criteria is an immutable bundle of image constraints. A zero-valued
// field means unconstrained.
type Criteria struct {
	MinWidth  int `json:"minWidth,omitempty"`
	MaxWidth  int `json:"maxWidth,omitempty"`
	MinHeight int `json:"minHeight,omitempty"`
	MaxHeight int `json:"maxHeight,omitempty"`

	// MaxAreaMpx caps total pixel area in megapixels
	// (width × height / 1,000,000).
	MaxAreaMpx float64 `json:"maxArea,omitempty"`

	// AspectRatio pins width/height. Checked within
	// AspectRatioTolerance, which defaults to 0.01 when unset.
	AspectRatio          float64 `json:"aspectRatio,omitempty"`
	AspectRatioTolerance float64 `json:"aspectRatioTolerance,omitempty"`

	// MaxFileSize caps the downloaded byte size.
	MaxFileSize int64 `json:"maxFileSize,omitempty"`
}

// defaultAspectTolerance applies when AspectRatio is set without an
// explicit tolerance.
const defaultAspectTolerance = 0.01

const maxUploadBytes = 20 * 1024 * 1024

// Named presets matching the vendor's published image quality
// guidelines: at most 16Mpx² of pixel area and 20MB per file, with
// per-purpose minimum dimensions.
var (
	// Standard applies to all image purposes.
	Standard = Criteria{MaxAreaMpx: 16, MaxFileSize: maxUploadBytes}

	// Product covers product photos.
	Product = Criteria{MinWidth: 800, MinHeight: 800, MaxAreaMpx: 16, MaxFileSize: maxUploadBytes}

	// Menu covers menu and category banner images.
	Menu = Criteria{MinWidth: 1200, MinHeight: 400, MaxAreaMpx: 16, MaxFileSize: maxUploadBytes}

	// Thumbnail covers thumbnail images.
	Thumbnail = Criteria{MinWidth: 200, MinHeight: 200, MaxAreaMpx: 16, MaxFileSize: maxUploadBytes}
)

// presets maps preset names to criteria, for lookup by external callers
// selecting dimension validation.
var presets = map[string]Criteria{
	"standard":  Standard,
	"product":   Product,
	"menu":      Menu,
	"thumbnail": Thumbnail,
}

// PresetByName returns a named criteria preset.
func PresetByName(name string) (Criteria, bool) {
	c, ok := presets[name]
	return c, ok
}
