package dds

import (
	"github.com/echotex/texpipe/internal/imagebuf"
	"github.com/echotex/texpipe/internal/pixfmt"
	"github.com/echotex/texpipe/internal/scanline"
)

// Load decodes a complete DDS file into an ImageArray. If the file used a
// legacy pixel format that doesn't match the canonical taxonomy bit for
// bit, each scanline is expanded or swizzled into the canonical encoding as
// it's copied; otherwise the payload is copied verbatim.
func Load(data []byte, opts Options) (*imagebuf.ImageArray, error) {
	res, err := DecodeHeader(data, opts)
	if err != nil {
		return nil, err
	}

	img, err := imagebuf.NewImageArray(res.Description, opts.CPFlags)
	if err != nil {
		return nil, err
	}

	payload := data[res.PayloadOffset:]
	if res.ConvFlags == 0 {
		err = loadDirect(img, payload)
	} else {
		err = loadConverted(img, payload, res.PixelFormat, res.ConvFlags, res.Description.Format, res.SourceFormat)
	}
	if err != nil {
		return nil, err
	}
	return img, nil
}

// loadDirect copies each subresource's bytes straight from the payload; the
// on-disk layout already matches the canonical format's pitch.
func loadDirect(img *imagebuf.ImageArray, payload []byte) error {
	subs := img.Subresources()
	off := uint64(0)
	for i := range subs {
		n := subs[i].SlicePitch
		if off+n > uint64(len(payload)) {
			return errorf("payload truncated at subresource %d: need %d more bytes", i, off+n-uint64(len(payload)))
		}
		copy(subs[i].Pixels, payload[off:off+n])
		off += n
	}
	return nil
}

// loadConverted walks each subresource, computing the source row pitch from
// the matched legacy pixel format's bit count, and converts every scanline
// into the canonical destination format in place.
func loadConverted(img *imagebuf.ImageArray, payload []byte, pf *PixelFormat, conv ConvFlags, format, sourceFormat pixfmt.Format) error {
	if conv&(ConvPal8|ConvA8Pal8) != 0 {
		return errorf("palettized legacy DDS formats require an external palette, which this loader does not accept")
	}

	srcBytesPerPixel := uint64(pf.RGBBitCount+7) / 8
	subs := img.Subresources()
	off := uint64(0)
	for i := range subs {
		sub := &subs[i]
		srcRowPitch := srcBytesPerPixel * uint64(sub.Width)
		srcSlicePitch := srcRowPitch * uint64(sub.Height)
		if off+srcSlicePitch > uint64(len(payload)) {
			return errorf("payload truncated at subresource %d: need %d more bytes", i, off+srcSlicePitch-uint64(len(payload)))
		}
		srcSlice := payload[off : off+srcSlicePitch]
		for y := uint32(0); y < sub.Height; y++ {
			srcRow := srcSlice[uint64(y)*srcRowPitch : uint64(y+1)*srcRowPitch]
			dstRow := sub.Pixels[uint64(y)*sub.RowPitch : uint64(y+1)*sub.RowPitch]
			if !convertRow(dstRow, srcRow, format, sourceFormat, conv) {
				return errorf("subresource %d row %d: unsupported legacy conversion (flags=%#x)", i, y, conv)
			}
		}
		off += srcSlicePitch
	}
	return nil
}

// convertRow dispatches one scanline's worth of legacy-encoded bytes to the
// scanline package primitive that knows how to expand or swizzle it into
// the canonical destination format.
func convertRow(dst, src []byte, format, sourceFormat pixfmt.Format, conv ConvFlags) bool {
	switch {
	case conv&ConvR8G8B8 != 0:
		return scanline.LegacyExpandScanline(dst, src, scanline.LegacyR8G8B8, nil)
	case conv&ConvR3G3B2 != 0:
		return scanline.LegacyExpandScanline(dst, src, scanline.LegacyR3G3B2, nil)
	case conv&ConvA8R3G3B2 != 0:
		return scanline.LegacyExpandScanline(dst, src, scanline.LegacyA8R3G3B2, nil)
	case conv&ConvA4L4 != 0:
		return scanline.LegacyExpandScanline(dst, src, scanline.LegacyA4L4, nil)
	case conv&ConvL8 != 0:
		return scanline.LegacyExpandScanline(dst, src, scanline.LegacyL8, nil)
	case conv&ConvA8L8 != 0:
		return scanline.LegacyExpandScanline(dst, src, scanline.LegacyA8L8, nil)
	case conv&ConvL16 != 0:
		return scanline.LegacyExpandScanline(dst, src, scanline.LegacyL16, nil)
	case conv&ConvL6V5U5 != 0:
		return scanline.LegacyExpandScanline(dst, src, scanline.LegacyL6V5U5, nil)
	case conv&ConvX8L8V8U8 != 0:
		return scanline.LegacyConvertScanline(dst, src, scanline.LegacyX8L8V8U8)
	case conv&ConvA2W10V10U10 != 0:
		return scanline.LegacyConvertScanline(dst, src, scanline.LegacyA2W10V10U10)

	case conv&ConvSwizzle != 0 && format == pixfmt.FormatR10G10B10A2Unorm:
		swizzle1010102(dst, src)
		return true

	case conv&ConvSwizzle != 0 && format == pixfmt.FormatYUY2:
		// UYVY on disk, YUY2 canonical: swap each byte pair within the
		// 4-byte macropixel (U,Y0,V,Y1 -> Y0,U,Y1,V).
		swizzlePairs(dst, src)
		return true

	case conv&ConvSwizzle != 0:
		scanline.SwizzleScanline(dst, src, 4)
		if conv&ConvNoAlpha != 0 {
			forceOpaque4(dst)
		}
		return true

	case conv&ConvNoAlpha != 0:
		copy(dst, src)
		forceOpaque4(dst)
		return true

	case conv&ConvExpand != 0:
		return scanline.ExpandScanline(dst, src, sourceFormat, format)

	default:
		copy(dst, src)
		return true
	}
}

// swizzle1010102 reverses the R and B 10-bit fields of a packed
// 10:10:10:2 pixel, the D3DX-era mask-reversal quirk between A2R10G10B10
// and A2B10G10R10.
func swizzle1010102(dst, src []byte) {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	for i := 0; i+4 <= n; i += 4 {
		v := uint32(src[i]) | uint32(src[i+1])<<8 | uint32(src[i+2])<<16 | uint32(src[i+3])<<24
		r := v & 0x3FF
		g := (v >> 10) & 0x3FF
		b := (v >> 20) & 0x3FF
		a := (v >> 30) & 0x3
		out := a<<30 | r<<20 | g<<10 | b
		dst[i] = byte(out)
		dst[i+1] = byte(out >> 8)
		dst[i+2] = byte(out >> 16)
		dst[i+3] = byte(out >> 24)
	}
}

// swizzlePairs swaps each pair of adjacent bytes within every 4-byte
// macropixel, converting between UYVY and YUY2 byte order.
func swizzlePairs(dst, src []byte) {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	for i := 0; i+4 <= n; i += 4 {
		dst[i], dst[i+1] = src[i+1], src[i]
		dst[i+2], dst[i+3] = src[i+3], src[i+2]
	}
}

// forceOpaque4 sets the fourth byte of every 4-byte pixel to 0xFF.
func forceOpaque4(buf []byte) {
	for i := 3; i < len(buf); i += 4 {
		buf[i] = 0xFF
	}
}
