package dds

import "github.com/echotex/texpipe/internal/pixfmt"

func fourCC(a, b, c, d byte) uint32 {
	return uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24
}

// legacyEntry is one row of the legacy pixel-format matching table. Rows
// are matched top to bottom; the first match wins, which matters because
// several rows describe bit-for-bit identical masks with different
// conversion flags (D3DX-era mask-reversal quirks).
type legacyEntry struct {
	format    pixfmt.Format
	convFlags ConvFlags
	pf        PixelFormat
}

func pfFourCC(a, b, c, d byte) PixelFormat {
	return pfFourCCValue(fourCC(a, b, c, d))
}

// pfFourCCValue builds a fourCC pixel-format template from a raw numeric
// fourCC, for the handful of legacy D3DFMT enum values (e.g. D3DFMT_R32F)
// that DDS stores directly in the fourCC field rather than as four ASCII
// characters.
func pfFourCCValue(cc uint32) PixelFormat {
	return PixelFormat{Size: PixelFormatSize, Flags: PFFourCC, FourCC: cc}
}

func pfRGB(bits, r, g, b, a uint32, hasAlpha bool) PixelFormat {
	flags := PFRGB
	if hasAlpha {
		flags |= PFAlphaPixels
	}
	return PixelFormat{Size: PixelFormatSize, Flags: flags, RGBBitCount: bits, RBitMask: r, GBitMask: g, BBitMask: b, ABitMask: a}
}

func pfLuminance(bits, l, a uint32, hasAlpha bool) PixelFormat {
	flags := PFLuminance
	if hasAlpha {
		flags |= PFAlphaPixels
	}
	return PixelFormat{Size: PixelFormatSize, Flags: flags, RGBBitCount: bits, RBitMask: l, ABitMask: a}
}

func pfAlpha(bits, a uint32) PixelFormat {
	return PixelFormat{Size: PixelFormatSize, Flags: PFAlpha, RGBBitCount: bits, ABitMask: a}
}

func pfBumpDUDV(bits, r, g, b, a uint32) PixelFormat {
	return PixelFormat{Size: PixelFormatSize, Flags: PFBumpDUDV, RGBBitCount: bits, RBitMask: r, GBitMask: g, BBitMask: b, ABitMask: a}
}

func pfPal8(bits uint32, hasAlpha bool) PixelFormat {
	flags := PFPAL8
	if hasAlpha {
		flags |= PFAlphaPixels
	}
	return PixelFormat{Size: PixelFormatSize, Flags: flags, RGBBitCount: bits}
}

// legacyTable is the static, program-wide read-only legacy-format matching
// table. Entries are ordered: block compression first, then 32-bit and
// 24-bit RGB(A), then packed 16-bit and 8-bit RGB, then luminance/alpha,
// then floating-point fourCCs, then 4-4-4-4 and A4L4, then video fourCCs,
// then signed bump formats, then palettized formats.
var legacyTable = []legacyEntry{
	{pixfmt.FormatBC1Unorm, 0, pfFourCC('D', 'X', 'T', '1')},
	{pixfmt.FormatBC2Unorm, 0, pfFourCC('D', 'X', 'T', '3')},
	{pixfmt.FormatBC3Unorm, 0, pfFourCC('D', 'X', 'T', '5')},
	{pixfmt.FormatBC2Unorm, ConvPremultiplied, pfFourCC('D', 'X', 'T', '2')},
	{pixfmt.FormatBC3Unorm, ConvPremultiplied, pfFourCC('D', 'X', 'T', '4')},
	// These DXT5 variants have various swizzled channels; decoded as-is as BC3.
	{pixfmt.FormatBC3Unorm, 0, pfFourCC('A', '2', 'D', '5')},
	{pixfmt.FormatBC3Unorm, 0, pfFourCC('x', 'G', 'B', 'R')},
	{pixfmt.FormatBC3Unorm, 0, pfFourCC('R', 'x', 'B', 'G')},
	{pixfmt.FormatBC3Unorm, 0, pfFourCC('R', 'B', 'x', 'G')},
	{pixfmt.FormatBC3Unorm, 0, pfFourCC('x', 'R', 'B', 'G')},
	{pixfmt.FormatBC3Unorm, 0, pfFourCC('R', 'G', 'x', 'B')},
	{pixfmt.FormatBC3Unorm, 0, pfFourCC('x', 'G', 'x', 'R')},
	{pixfmt.FormatBC3Unorm, 0, pfFourCC('G', 'X', 'R', 'B')},
	{pixfmt.FormatBC3Unorm, 0, pfFourCC('G', 'R', 'X', 'B')},
	{pixfmt.FormatBC3Unorm, 0, pfFourCC('R', 'X', 'G', 'B')},
	{pixfmt.FormatBC3Unorm, 0, pfFourCC('B', 'R', 'G', 'X')},

	{pixfmt.FormatBC4Unorm, 0, pfFourCC('A', 'T', 'I', '1')},
	{pixfmt.FormatBC4Unorm, 0, pfFourCC('B', 'C', '4', 'U')},
	{pixfmt.FormatBC4Snorm, 0, pfFourCC('B', 'C', '4', 'S')},
	{pixfmt.FormatBC5Unorm, 0, pfFourCC('A', 'T', 'I', '2')},
	{pixfmt.FormatBC5Unorm, 0, pfFourCC('B', 'C', '5', 'U')},
	{pixfmt.FormatBC5Snorm, 0, pfFourCC('B', 'C', '5', 'S')},
	{pixfmt.FormatBC5Unorm, 0, pfFourCC('A', '2', 'X', 'Y')},

	{pixfmt.FormatBC6HUF16, 0, pfFourCC('B', 'C', '6', 'H')},
	{pixfmt.FormatBC7Unorm, 0, pfFourCC('B', 'C', '7', 'L')},
	{pixfmt.FormatBC7Unorm, 0, pfFourCC('B', 'C', '7', 0)},

	{pixfmt.FormatB8G8R8A8Unorm, 0, pfRGB(32, 0x00ff0000, 0x0000ff00, 0x000000ff, 0xff000000, true)},  // A8R8G8B8
	{pixfmt.FormatB8G8R8X8Unorm, 0, pfRGB(32, 0x00ff0000, 0x0000ff00, 0x000000ff, 0, false)},          // X8R8G8B8
	{pixfmt.FormatR8G8B8A8Unorm, 0, pfRGB(32, 0x000000ff, 0x0000ff00, 0x00ff0000, 0xff000000, true)},  // A8B8G8R8
	{pixfmt.FormatR8G8B8A8Unorm, ConvNoAlpha, pfRGB(32, 0x000000ff, 0x0000ff00, 0x00ff0000, 0, false)}, // X8B8G8R8
	{pixfmt.FormatR16G16Unorm, 0, pfRGB(32, 0x0000ffff, 0xffff0000, 0, 0, false)},                     // G16R16

	{pixfmt.FormatR10G10B10A2Unorm, ConvSwizzle, pfRGB(32, 0x3ff00000, 0x000ffc00, 0x000003ff, 0xc0000000, true)}, // A2R10G10B10, D3DX reversal
	{pixfmt.FormatR10G10B10A2Unorm, 0, pfRGB(32, 0x000003ff, 0x000ffc00, 0x3ff00000, 0xc0000000, true)},           // A2B10G10R10

	{pixfmt.FormatR8G8B8A8Unorm, ConvExpand | ConvNoAlpha | ConvR8G8B8, pfRGB(24, 0xff0000, 0x00ff00, 0x0000ff, 0, false)}, // R8G8B8

	{pixfmt.FormatB5G6R5Unorm, 0, pfRGB(16, 0xf800, 0x07e0, 0x001f, 0, false)},                  // R5G6B5
	{pixfmt.FormatB5G5R5A1Unorm, 0, pfRGB(16, 0x7c00, 0x03e0, 0x001f, 0x8000, true)},            // A1R5G5B5
	{pixfmt.FormatB5G5R5A1Unorm, ConvNoAlpha, pfRGB(16, 0x7c00, 0x03e0, 0x001f, 0, false)},      // X1R5G5B5

	{pixfmt.FormatR8G8B8A8Unorm, ConvExpand | ConvA8R3G3B2, pfRGB(16, 0x00e0, 0x001c, 0x0003, 0xff00, true)}, // A8R3G3B2
	{pixfmt.FormatB5G6R5Unorm, ConvExpand | ConvR3G3B2, pfRGB(8, 0xe0, 0x1c, 0x03, 0, false)},                // R3G3B2

	{pixfmt.FormatR8Unorm, 0, pfLuminance(8, 0xff, 0, false)},          // L8
	{pixfmt.FormatR16Unorm, 0, pfLuminance(16, 0xffff, 0, false)},      // L16
	{pixfmt.FormatR8G8Unorm, 0, pfLuminance(16, 0x00ff, 0xff00, true)}, // A8L8
	{pixfmt.FormatR8G8Unorm, 0, pfLuminance(8, 0x00ff, 0xff00, true)},  // A8L8 alt bitcount

	// NVTT v1 wrote these luminance formats with the RGB flag instead of
	// LUMINANCE; decoded identically to their standard counterparts above.
	{pixfmt.FormatR8Unorm, 0, pfRGB(8, 0xff, 0, 0, 0, false)},              // L8 (NVTT1)
	{pixfmt.FormatR16Unorm, 0, pfRGB(16, 0xffff, 0, 0, 0, false)},          // L16 (NVTT1)
	{pixfmt.FormatR8G8Unorm, 0, pfRGB(16, 0x00ff, 0, 0, 0xff00, true)},     // A8L8 (NVTT1)

	{pixfmt.FormatA8Unorm, 0, pfAlpha(8, 0xff)},

	{pixfmt.FormatR16G16B16A16Unorm, 0, pfFourCCValue(36)},  // D3DFMT_A16B16G16R16
	{pixfmt.FormatR16G16B16A16Snorm, 0, pfFourCCValue(110)}, // D3DFMT_Q16W16V16U16
	{pixfmt.FormatR16Float, 0, pfFourCCValue(111)},          // D3DFMT_R16F
	{pixfmt.FormatR16G16Float, 0, pfFourCCValue(112)},       // D3DFMT_G16R16F
	{pixfmt.FormatR16G16B16A16Float, 0, pfFourCCValue(113)}, // D3DFMT_A16B16G16R16F
	{pixfmt.FormatR32Float, 0, pfFourCCValue(114)},          // D3DFMT_R32F
	{pixfmt.FormatR32G32Float, 0, pfFourCCValue(115)},       // D3DFMT_G32R32F
	{pixfmt.FormatR32G32B32A32Float, 0, pfFourCCValue(116)}, // D3DFMT_A32B32G32R32F

	{pixfmt.FormatR32Float, 0, pfRGB(32, 0xffffffff, 0, 0, 0, false)}, // D3DFMT_R32F, alternate RGB-flagged encoding some writers use instead of fourCC 114

	{pixfmt.FormatB4G4R4A4Unorm, 0, pfRGB(16, 0x0f00, 0x00f0, 0x000f, 0xf000, true)},             // A4R4G4B4
	{pixfmt.FormatB4G4R4A4Unorm, ConvNoAlpha, pfRGB(16, 0x0f00, 0x00f0, 0x000f, 0, false)},       // X4R4G4B4
	{pixfmt.FormatR8G8B8A8Unorm, ConvExpand | ConvA4L4, pfLuminance(8, 0x0f, 0xf0, true)},        // A4L4

	{pixfmt.FormatYUY2, 0, pfFourCC('Y', 'U', 'Y', '2')},
	{pixfmt.FormatYUY2, ConvSwizzle, pfFourCC('U', 'Y', 'V', 'Y')},

	{pixfmt.FormatR8G8Snorm, 0, pfBumpDUDV(16, 0x00ff, 0xff00, 0, 0)},                 // V8U8
	{pixfmt.FormatR8G8B8A8Snorm, 0, pfBumpDUDV(32, 0x000000ff, 0x0000ff00, 0x00ff0000, 0xff000000)}, // Q8W8V8U8
	{pixfmt.FormatR16G16Snorm, 0, pfBumpDUDV(32, 0x0000ffff, 0xffff0000, 0, 0)},        // V16U16

	{pixfmt.FormatR8G8B8A8Unorm, ConvExpand | ConvL6V5U5, pfBumpDUDV(16, 0x001f, 0x03e0, 0xfc00, 0)}, // L6V5U5
	{pixfmt.FormatR8G8B8A8Unorm, ConvX8L8V8U8, pfBumpDUDV(32, 0x000000ff, 0x0000ff00, 0x00ff0000, 0)}, // X8L8V8U8
	{pixfmt.FormatR10G10B10A2Unorm, ConvA2W10V10U10, pfBumpDUDV(32, 0x3ff00000, 0x000ffc00, 0x000003ff, 0xc0000000)}, // A2W10V10U10

	{pixfmt.FormatP8, 0, pfPal8(8, false)},
	{pixfmt.FormatA8P8, 0, pfPal8(16, true)},
}

// matchLegacy scans legacyTable top to bottom, returning the first entry
// whose predicate matches pf. FourCC entries compare the fourCC alone;
// other entries compare flags and bit count, then the channel masks
// appropriate to whichever category bit (PAL8/ALPHA/LUMINANCE/BUMPDUDV/
// ALPHAPIXELS/RGB) is set.
func matchLegacy(pf *PixelFormat) (legacyEntry, bool) {
	for _, e := range legacyTable {
		if e.pf.Flags&PFFourCC != 0 {
			if pf.Flags&PFFourCC != 0 && pf.FourCC == e.pf.FourCC {
				return e, true
			}
			continue
		}
		if pf.Flags != e.pf.Flags || pf.RGBBitCount != e.pf.RGBBitCount {
			continue
		}
		switch {
		case e.pf.Flags&PFPAL8 != 0:
			return e, true
		case e.pf.Flags&PFAlpha != 0:
			if pf.ABitMask == e.pf.ABitMask {
				return e, true
			}
		case e.pf.Flags&PFLuminance != 0:
			if pf.RBitMask == e.pf.RBitMask && pf.ABitMask == e.pf.ABitMask {
				return e, true
			}
		case e.pf.Flags&PFBumpDUDV != 0:
			if pf.RBitMask == e.pf.RBitMask && pf.GBitMask == e.pf.GBitMask &&
				pf.BBitMask == e.pf.BBitMask && pf.ABitMask == e.pf.ABitMask {
				return e, true
			}
		case e.pf.Flags&PFAlphaPixels != 0, e.pf.Flags&PFRGB != 0:
			if pf.RBitMask == e.pf.RBitMask && pf.GBitMask == e.pf.GBitMask &&
				pf.BBitMask == e.pf.BBitMask && pf.ABitMask == e.pf.ABitMask {
				return e, true
			}
		}
	}
	return legacyEntry{}, false
}

// legacyTemplateFor returns the DDS_PIXELFORMAT template to write for a
// canonical format when encoding a legacy (non-DX10) header: the first
// zero-conv-flag entry in legacyTable naming that format.
func legacyTemplateFor(f pixfmt.Format) (PixelFormat, bool) {
	for _, e := range legacyTable {
		if e.format == f && e.convFlags == 0 {
			return e.pf, true
		}
	}
	return PixelFormat{}, false
}
