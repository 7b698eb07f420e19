package tga

// Flags controls TGA encode/decode behavior beyond the literal wire format.
type Flags uint32

const (
	// FlagBGR keeps truecolor/colormapped pixels in on-disk B-then-R channel
	// order instead of canonicalizing them to R-then-B. Decode selects
	// FormatB8G8R8A8Unorm/FormatB8G8R8Unorm instead of the R8G8B8A8
	// siblings. Encode does not consult this flag; its R/B swizzle follows
	// the image's format.
	FlagBGR Flags = 1 << iota
	// FlagAllowAllZeroAlpha disables the heuristic that forces the alpha
	// channel opaque when every decoded pixel's alpha byte was zero (most
	// legacy TGA writers never set alpha and leave it zeroed).
	FlagAllowAllZeroAlpha
	// FlagIgnoreSRGB skips gamma-based sRGB promotion from the 2.0
	// extension area entirely, leaving the format exactly as selected by
	// the header's pixel layout.
	FlagIgnoreSRGB
	// FlagDefaultSRGB promotes the loaded format to its sRGB sibling when
	// no extension area (or no valid gamma pair) is present to decide one
	// way or the other.
	FlagDefaultSRGB
	// FlagForceLinear forces the saved file's extension gamma to 1/1
	// regardless of the source format.
	FlagForceLinear
	// FlagForceSRGB forces the saved file's extension gamma to 2.2
	// regardless of the source format.
	FlagForceSRGB
)
