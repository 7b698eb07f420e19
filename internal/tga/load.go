package tga

import (
	"encoding/binary"
	"math"

	"github.com/echotex/texpipe/internal/imagebuf"
	"github.com/echotex/texpipe/internal/layout"
	"github.com/echotex/texpipe/internal/pixfmt"
)

// Load decodes a complete TGA file, including any RLE compression and
// optional 2.0 footer/extension area, into an ImageArray.
func Load(data []byte, flags Flags) (*imagebuf.ImageArray, error) {
	res, err := DecodeHeader(data, flags)
	if err != nil {
		return nil, err
	}

	img, err := imagebuf.NewImageArray(res.Description, pixfmt.CPFlagsNone)
	if err != nil {
		return nil, err
	}
	sub := &img.Subresources()[0]

	payload := data[res.PayloadOffset:]
	minAlpha, maxAlpha, tracked, err := decodePixels(sub.Pixels, sub.RowPitch, payload, sub.Width, sub.Height, res.Description.Format, res.ConvFlags, res.Palette)
	if err != nil {
		return nil, err
	}

	forcedOpaque := false
	if tracked {
		if maxAlpha == 0 && flags&FlagAllowAllZeroAlpha == 0 {
			forceAlphaOpaque(sub.Pixels, res.Description.Format)
			forcedOpaque = true
		} else if minAlpha == 0xFF {
			forcedOpaque = true
		}
	}

	ext, hasExt := parseFooterExtension(data)

	format := res.Description.Format
	if flags&FlagIgnoreSRGB == 0 {
		format = resolveSRGB(format, ext, hasExt, flags)
	}

	desc := img.Description()
	desc.Format = format
	switch {
	case forcedOpaque:
		desc.SetAlphaMode(layout.AlphaModeOpaque)
	case hasExt:
		desc.SetAlphaMode(alphaModeFromExtension(ext))
	}
	img2, err := retagFormat(img, desc)
	if err != nil {
		return nil, err
	}
	return img2, nil
}

// retagFormat rebuilds an ImageArray with the same pixel bytes under a
// different (but layout-compatible) description, used to apply the
// post-decode sRGB/alpha-mode corrections without re-copying through the
// scanline pipeline a second time.
func retagFormat(img *imagebuf.ImageArray, desc layout.TextureDescription) (*imagebuf.ImageArray, error) {
	out, err := imagebuf.NewImageArray(desc, pixfmt.CPFlagsNone)
	if err != nil {
		return nil, err
	}
	copy(out.Bytes(), img.Bytes())
	return out, nil
}

// decodePixels walks every row of a single 2D image, decoding either its
// RLE-compressed or literal pixel stream into dst, and returns the min/max
// alpha byte observed across every decoded pixel for formats the alpha
// heuristic tracks.
func decodePixels(dst []byte, rowPitch uint64, src []byte, width, height uint32, format pixfmt.Format, conv ConvFlags, palette []byte) (minAlpha, maxAlpha uint8, tracked bool, err error) {
	pxSize := pixelSize(format)
	minAlpha = 0xFF
	maxAlpha = 0
	_, tracked = pixelAlpha(format, make([]byte, pxSize))

	invertX := conv&ConvInvertX != 0
	invertY := conv&ConvInvertY != 0
	pos := 0

	for y := uint32(0); y < height; y++ {
		destY := y
		if !invertY {
			destY = height - 1 - y
		}
		rowStart := uint64(destY) * rowPitch
		startX := uint32(0)
		step := 1
		if invertX {
			startX = width - 1
			step = -1
		}
		x := int(startX)

		decodeAndTrack := func() error {
			px := make([]byte, pxSize)
			n, ok := decodeOnePixel(px, src[pos:], format, conv, palette)
			if !ok {
				return errorf("truncated pixel data at row %d", y)
			}
			pos += n
			off := rowStart + uint64(x)*uint64(pxSize)
			copy(dst[off:off+uint64(pxSize)], px)
			if a, ok := pixelAlpha(format, px); ok {
				if a < minAlpha {
					minAlpha = a
				}
				if a > maxAlpha {
					maxAlpha = a
				}
			}
			x += step
			return nil
		}

		if conv&ConvRLE != 0 {
			for remaining := int(width); remaining > 0; {
				if pos >= len(src) {
					return 0, 0, false, errorf("truncated RLE stream at row %d", y)
				}
				ctrl := src[pos]
				pos++
				count := int(ctrl&0x7F) + 1
				if count > remaining {
					count = remaining
				}
				if ctrl&0x80 != 0 {
					px := make([]byte, pxSize)
					n, ok := decodeOnePixel(px, src[pos:], format, conv, palette)
					if !ok {
						return 0, 0, false, errorf("truncated RLE run at row %d", y)
					}
					pos += n
					for j := 0; j < count; j++ {
						off := rowStart + uint64(x)*uint64(pxSize)
						copy(dst[off:off+uint64(pxSize)], px)
						if a, ok := pixelAlpha(format, px); ok {
							if a < minAlpha {
								minAlpha = a
							}
							if a > maxAlpha {
								maxAlpha = a
							}
						}
						x += step
					}
				} else {
					for j := 0; j < count; j++ {
						if err := decodeAndTrack(); err != nil {
							return 0, 0, false, err
						}
					}
				}
				remaining -= count
			}
		} else {
			for i := uint32(0); i < width; i++ {
				if err := decodeAndTrack(); err != nil {
					return 0, 0, false, err
				}
			}
		}
	}
	return minAlpha, maxAlpha, tracked, nil
}

// pixelSize returns the canonical byte width of one pixel in format, for
// the small set of formats this package's decode/encode paths produce.
func pixelSize(format pixfmt.Format) int {
	return int(pixfmt.BitsPerPixel(format)+7) / 8
}

// decodeOnePixel reads one pixel's worth of on-disk bytes from the front of
// src and writes its canonical-format bytes into dst (already sized to
// pixelSize(format)). It returns the number of source bytes consumed.
func decodeOnePixel(dst, src []byte, format pixfmt.Format, conv ConvFlags, palette []byte) (int, bool) {
	if conv&ConvPaletted != 0 {
		if len(src) < 1 || len(palette) < 256*4 {
			return 0, false
		}
		idx := int(src[0])
		switch format {
		case pixfmt.FormatB8G8R8Unorm:
			copy(dst, palette[idx*4:idx*4+3])
		default:
			copy(dst, palette[idx*4:idx*4+4])
		}
		return 1, true
	}

	switch format {
	case pixfmt.FormatR8Unorm:
		if len(src) < 1 {
			return 0, false
		}
		dst[0] = src[0]
		return 1, true

	case pixfmt.FormatB5G5R5A1Unorm:
		if len(src) < 2 {
			return 0, false
		}
		dst[0], dst[1] = src[0], src[1]
		return 2, true

	case pixfmt.FormatB8G8R8Unorm:
		if len(src) < 3 {
			return 0, false
		}
		dst[0], dst[1], dst[2] = src[0], src[1], src[2]
		return 3, true

	case pixfmt.FormatB8G8R8A8Unorm:
		if len(src) < 4 {
			return 0, false
		}
		copy(dst, src[:4])
		return 4, true

	case pixfmt.FormatR8G8B8A8Unorm:
		if conv&ConvExpand != 0 {
			if len(src) < 3 {
				return 0, false
			}
			dst[0], dst[1], dst[2], dst[3] = src[2], src[1], src[0], 0xFF
			return 3, true
		}
		if len(src) < 4 {
			return 0, false
		}
		dst[0], dst[1], dst[2], dst[3] = src[2], src[1], src[0], src[3]
		return 4, true
	}
	return 0, false
}

// pixelAlpha extracts the alpha contribution of a single decoded pixel for
// the formats the opaque-alpha heuristic tracks (per-pixel RGBA8/BGRA8
// alpha bytes, or the single bit of B5G5R5A1's top-bit alpha, widened to
// 0/0xFF). It reports false for formats with no alpha channel at all.
func pixelAlpha(format pixfmt.Format, px []byte) (uint8, bool) {
	switch format {
	case pixfmt.FormatR8G8B8A8Unorm, pixfmt.FormatB8G8R8A8Unorm:
		if len(px) < 4 {
			return 0, false
		}
		return px[3], true
	case pixfmt.FormatB5G5R5A1Unorm:
		if len(px) < 2 {
			return 0, false
		}
		if binary.LittleEndian.Uint16(px)&0x8000 != 0 {
			return 0xFF, true
		}
		return 0, true
	}
	return 0, false
}

// forceAlphaOpaque rewrites every pixel's alpha channel to fully opaque in
// place, for the formats decodePixels tracks alpha on.
func forceAlphaOpaque(buf []byte, format pixfmt.Format) {
	switch format {
	case pixfmt.FormatR8G8B8A8Unorm, pixfmt.FormatB8G8R8A8Unorm:
		for i := 3; i < len(buf); i += 4 {
			buf[i] = 0xFF
		}
	case pixfmt.FormatB5G5R5A1Unorm:
		for i := 0; i+2 <= len(buf); i += 2 {
			v := binary.LittleEndian.Uint16(buf[i : i+2])
			binary.LittleEndian.PutUint16(buf[i:i+2], v|0x8000)
		}
	}
}

// parseFooterExtension looks for a valid TGA 2.0 footer and extension area
// at the end of data, returning ok=false if neither is present or the
// extension offset/size don't check out.
func parseFooterExtension(data []byte) (Extension, bool) {
	if len(data) < FooterSize {
		return Extension{}, false
	}
	var foot Footer
	sigOK := foot.decode(data[len(data)-FooterSize:])
	if !sigOK || foot.ExtensionOffset == 0 {
		return Extension{}, false
	}
	start := int(foot.ExtensionOffset)
	if start < 0 || start+ExtensionSize > len(data) {
		return Extension{}, false
	}
	var ext Extension
	ext.decode(data[start : start+ExtensionSize])
	return ext, true
}

// alphaModeFromExtension maps the 2.0 extension's bAttributesType field to
// the canonical AlphaMode vocabulary.
func alphaModeFromExtension(ext Extension) layout.AlphaMode {
	switch ext.AttributesType {
	case AttributeIgnored:
		return layout.AlphaModeOpaque
	case AttributeUndefined:
		return layout.AlphaModeCustom
	case AttributeAlpha:
		return layout.AlphaModeStraight
	case AttributePremultiplied:
		return layout.AlphaModePremultiplied
	default:
		return layout.AlphaModeUnknown
	}
}

// resolveSRGB promotes format to its sRGB sibling based on the extension
// area's gamma pair (2.2 or 2.4 within a small tolerance), or, absent a
// usable extension, FlagDefaultSRGB.
func resolveSRGB(format pixfmt.Format, ext Extension, hasExt bool, flags Flags) pixfmt.Format {
	srgb := false
	if hasExt && ext.GammaDenominator != 0 {
		gamma := float64(ext.GammaNumerator) / float64(ext.GammaDenominator)
		srgb = math.Abs(gamma-2.2) < 0.01 || math.Abs(gamma-2.4) < 0.01
	} else {
		srgb = flags&FlagDefaultSRGB != 0
	}
	if !srgb {
		return format
	}
	return pixfmt.MakeSRGB(format)
}
