// Package scanline implements the byte-level transforms the DDS and TGA
// codecs apply per scanline or per subresource while loading and saving:
// plain copy with optional alpha forcing, R/B channel swizzle, and bit
// expansion between known legacy/modern format pairs.
//
// Generic pixel-conversion (ConvertTo*/ConvertFrom*, covering arbitrary
// format pairs) is deliberately left unspecified here — see Converter.
package scanline

import (
	"encoding/binary"

	"github.com/echotex/texpipe/internal/pixfmt"
)

// Format is an alias for the pixel-format taxonomy's Format type, so
// callers of this package never need to import pixfmt directly just to
// name a constant.
type Format = pixfmt.Format

const (
	FormatR8G8B8A8Unorm     = pixfmt.FormatR8G8B8A8Unorm
	FormatR8G8B8A8UnormSrgb = pixfmt.FormatR8G8B8A8UnormSrgb
	FormatR8G8B8A8Uint      = pixfmt.FormatR8G8B8A8Uint
	FormatR8G8B8A8Snorm     = pixfmt.FormatR8G8B8A8Snorm
	FormatR8G8B8A8Sint      = pixfmt.FormatR8G8B8A8Sint
	FormatB8G8R8A8Unorm     = pixfmt.FormatB8G8R8A8Unorm
	FormatB8G8R8A8UnormSrgb = pixfmt.FormatB8G8R8A8UnormSrgb
	FormatR10G10B10A2Unorm  = pixfmt.FormatR10G10B10A2Unorm
	FormatR10G10B10A2Uint   = pixfmt.FormatR10G10B10A2Uint
	FormatR16G16B16A16Float = pixfmt.FormatR16G16B16A16Float
	FormatR32G32B32A32Float = pixfmt.FormatR32G32B32A32Float
	FormatR16G16B16A16Snorm = pixfmt.FormatR16G16B16A16Snorm
	FormatR16G16B16A16Sint  = pixfmt.FormatR16G16B16A16Sint
)

// TransformFlags modifies how CopyScanline behaves.
type TransformFlags uint32

// SetAlpha requests that CopyScanline force the destination's alpha
// channel to fully opaque, using the per-format encoding in
// forceAlphaOpaque, both when dst and src alias the same storage and after
// copying src into a separate dst.
const SetAlpha TransformFlags = 1 << 0

func samePointer(a, b []byte) bool {
	if len(a) == 0 || len(b) == 0 {
		return len(a) == 0 && len(b) == 0
	}
	return &a[0] == &b[0]
}

// CopyScanline copies min(len(dst), len(src)) bytes from src to dst. If dst
// and src alias the same backing storage and SetAlpha is set, it instead
// forces the destination's alpha channel opaque in place (the copy would be
// a no-op, so only the alpha rewrite has any effect); otherwise it performs
// a plain copy and, if SetAlpha is set, forces alpha on the freshly copied
// destination.
func CopyScanline(dst, src []byte, format Format, flags TransformFlags) {
	if flags&SetAlpha != 0 && samePointer(dst, src) {
		forceAlphaOpaque(dst, format)
		return
	}
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	copy(dst, src[:n])
	if flags&SetAlpha != 0 {
		forceAlphaOpaque(dst[:n], format)
	}
}

// forceAlphaOpaque rewrites every pixel's alpha channel to fully opaque,
// using the bit pattern appropriate to format. Formats with no recognized
// alpha encoding are left untouched.
func forceAlphaOpaque(buf []byte, format Format) {
	switch format {
	case FormatR8G8B8A8Unorm, FormatR8G8B8A8UnormSrgb, FormatR8G8B8A8Uint,
		FormatB8G8R8A8Unorm, FormatB8G8R8A8UnormSrgb:
		for i := 0; i+4 <= len(buf); i += 4 {
			buf[i+3] = 0xFF
		}
	case FormatR10G10B10A2Unorm, FormatR10G10B10A2Uint:
		for i := 0; i+4 <= len(buf); i += 4 {
			buf[i+3] |= 0xC0
		}
	case FormatR16G16B16A16Float:
		for i := 0; i+8 <= len(buf); i += 8 {
			binary.LittleEndian.PutUint16(buf[i+6:i+8], 0x3C00)
		}
	case FormatR32G32B32A32Float:
		for i := 0; i+16 <= len(buf); i += 16 {
			binary.LittleEndian.PutUint32(buf[i+12:i+16], 0x3F800000)
		}
	case FormatR8G8B8A8Snorm, FormatR8G8B8A8Sint:
		for i := 0; i+4 <= len(buf); i += 4 {
			buf[i+3] = 0x7F
		}
	case FormatR16G16B16A16Snorm, FormatR16G16B16A16Sint:
		for i := 0; i+8 <= len(buf); i += 8 {
			binary.LittleEndian.PutUint16(buf[i+6:i+8], 0x7FFF)
		}
	}
}

// SwizzleScanline copies src to dst, exchanging the first and third byte of
// every pixelSize-byte pixel (R<->B for byte-order RGBA/BGRA and RGB/BGR
// layouts). dst and src may alias; pixels are processed left to right so an
// in-place swap is safe.
func SwizzleScanline(dst, src []byte, pixelSize int) {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	if !samePointer(dst, src) {
		copy(dst, src[:n])
	}
	for i := 0; i+pixelSize <= n; i += pixelSize {
		dst[i], dst[i+2] = dst[i+2], dst[i]
	}
}
