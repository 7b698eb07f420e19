package pixfmt

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrArithmeticOverflow is returned by ComputePitch when an intermediate
// row or slice pitch would not fit in a uint32.
var ErrArithmeticOverflow = errors.New("pixfmt: pitch arithmetic overflow")

// ErrOddPlanarHeight is returned by ComputePitch for planar 4:2:0 formats
// whose height is not even.
var ErrOddPlanarHeight = errors.New("pixfmt: planar 4:2:0 format requires even height")

// ErrUnsupportedScanlineFormat is returned by ComputePitch
// for formats the pitch dispatcher has no rule for.
var ErrUnsupportedScanlineFormat = errors.New("pixfmt: format has no pitch rule")

// CPFlags controls ComputePitch's alignment and legacy-emulation behavior.
type CPFlags uint32

const (
	CPFlagsNone CPFlags = 0
	// CPFlagLegacyDWORD aligns uncompressed row pitch to 4 bytes.
	CPFlagLegacyDWORD CPFlags = 1 << 0
	// CPFlagParagraph aligns uncompressed row pitch to 16 bytes.
	CPFlagParagraph CPFlags = 1 << 1
	// CPFlagYMM aligns uncompressed row pitch to 32 bytes.
	CPFlagYMM CPFlags = 1 << 2
	// CPFlagZMM aligns uncompressed row pitch to 64 bytes.
	CPFlagZMM CPFlags = 1 << 3
	// CPFlagPage4K aligns uncompressed row pitch to 4096 bytes.
	CPFlagPage4K CPFlags = 1 << 4
	// CPFlagBadDXTNTails computes the final BC/EAC mip using a plain
	// right-shift instead of a ceiling divide, matching tools that write
	// truncated tail mips.
	CPFlagBadDXTNTails CPFlags = 1 << 5
	// CPFlag24BPP overrides the computed bits-per-pixel to 24.
	CPFlag24BPP CPFlags = 1 << 6
	// CPFlag16BPP overrides the computed bits-per-pixel to 16.
	CPFlag16BPP CPFlags = 1 << 7
	// CPFlag8BPP overrides the computed bits-per-pixel to 8.
	CPFlag8BPP CPFlags = 1 << 8
	// CPFlagLimit4GB forces overflow checking against a 32-bit byte budget
	// even on a 64-bit host.
	CPFlagLimit4GB CPFlags = 1 << 9
)

const maxU32 = uint64(^uint32(0))

func ceilDiv(a, b uint32) uint32 {
	return (a + b - 1) / b
}

// ComputePitch returns the row and slice pitch in bytes for an image of the
// given format and dimensions, per the format's layout class.
func ComputePitch(f Format, w, h uint32, flags CPFlags) (rowPitch, slicePitch uint64, err error) {
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}

	switch {
	case bytesPerBlockFor4x4(f) != 0:
		bpb := uint64(bytesPerBlockFor4x4(f))
		var nbw, nbh uint32
		if flags&CPFlagBadDXTNTails != 0 {
			nbw, nbh = w>>2, h>>2
			if nbw == 0 {
				nbw = 1
			}
			if nbh == 0 {
				nbh = 1
			}
		} else {
			nbw, nbh = ceilDiv(w, 4), ceilDiv(h, 4)
		}
		rowPitch = uint64(nbw) * bpb
		slicePitch = rowPitch * uint64(nbh)

	case astcBlockFootprint(f) != nil:
		fp := astcBlockFootprint(f)
		nbw := ceilDiv(w, fp.BlockW)
		nbh := ceilDiv(h, fp.BlockH)
		rowPitch = uint64(nbw) * 16
		slicePitch = rowPitch * uint64(nbh)

	case isPacked422Format(f):
		unit := uint32(4)
		if bitsPerColor422(f) > 8 {
			unit = 8
		}
		rowPitch = uint64(ceilDiv(w+1, 2)) * uint64(unit)
		slicePitch = rowPitch * uint64(h)

	case isPlanar420Format(f):
		if h%2 != 0 {
			return 0, 0, ErrOddPlanarHeight
		}
		unit := uint32(2)
		if bitsPerColor420(f) > 8 {
			unit = 4
		}
		rowPitch = uint64(ceilDiv(w+1, 2)) * uint64(unit)
		slicePitch = rowPitch * (uint64(h) + uint64(ceilDiv(h, 2)))

	case IsCompressed(f):
		return 0, 0, fmt.Errorf("pixfmt: %s: %w", f, ErrUnsupportedScanlineFormat)

	default:
		bpp := uint64(effectiveBPP(f, flags))
		if bpp == 0 {
			return 0, 0, fmt.Errorf("pixfmt: %s: %w", f, ErrUnsupportedScanlineFormat)
		}
		rowPitch = (uint64(w)*bpp + 7) / 8
		rowPitch = alignPitch(rowPitch, flags)
		slicePitch = rowPitch * uint64(h)
	}

	limit := flags&CPFlagLimit4GB != 0
	if (limit || bits.UintSize == 32) && rowPitch > maxU32 {
		return 0, 0, ErrArithmeticOverflow
	}
	if (limit || bits.UintSize == 32) && slicePitch > maxU32 {
		return 0, 0, ErrArithmeticOverflow
	}
	return rowPitch, slicePitch, nil
}

func alignPitch(p uint64, flags CPFlags) uint64 {
	var align uint64
	switch {
	case flags&CPFlagPage4K != 0:
		align = 4096
	case flags&CPFlagZMM != 0:
		align = 64
	case flags&CPFlagYMM != 0:
		align = 32
	case flags&CPFlagParagraph != 0:
		align = 16
	case flags&CPFlagLegacyDWORD != 0:
		align = 4
	default:
		return p
	}
	return (p + align - 1) / align * align
}

func effectiveBPP(f Format, flags CPFlags) uint32 {
	switch {
	case flags&CPFlag8BPP != 0:
		return 8
	case flags&CPFlag16BPP != 0:
		return 16
	case flags&CPFlag24BPP != 0:
		return 24
	}
	return BitsPerPixel(f)
}

// ComputeScanlines returns the number of scanlines an image of height h
// occupies in its on-disk layout: block-row count for BC/EAC/ETC/ASTC
// formats, plane-expanded row count for planar 4:2:0, else h unchanged.
func ComputeScanlines(f Format, h uint32) uint32 {
	if h == 0 {
		h = 1
	}
	switch {
	case bytesPerBlockFor4x4(f) != 0:
		return ceilDiv(h, 4)
	case astcBlockFootprint(f) != nil:
		return ceilDiv(h, astcBlockFootprint(f).BlockH)
	case isPlanar420Format(f):
		return h + ceilDiv(h, 2)
	default:
		return h
	}
}

func bytesPerBlockFor4x4(f Format) uint32 {
	switch f {
	case FormatBC1Typeless, FormatBC1Unorm, FormatBC1UnormSrgb,
		FormatBC4Typeless, FormatBC4Unorm, FormatBC4Snorm,
		FormatBC2Typeless, FormatBC2Unorm, FormatBC2UnormSrgb,
		FormatBC3Typeless, FormatBC3Unorm, FormatBC3UnormSrgb,
		FormatBC5Typeless, FormatBC5Unorm, FormatBC5Snorm,
		FormatBC6HTypeless, FormatBC6HUF16, FormatBC6HSF16,
		FormatBC7Typeless, FormatBC7Unorm, FormatBC7UnormSrgb,
		FormatETC2RGB8Unorm, FormatETC2RGB8Srgb,
		FormatETC2RGB8A1Unorm, FormatETC2RGB8A1Srgb,
		FormatETC2RGBA8Unorm, FormatETC2RGBA8Srgb,
		FormatEACR11Unorm, FormatEACR11Snorm,
		FormatEACRG11Unorm, FormatEACRG11Snorm:
		return BytesPerBlock(f)
	}
	return 0
}

func astcBlockFootprint(f Format) *ASTCFootprint {
	idx, _, ok := astcIndex(f)
	if !ok {
		return nil
	}
	return &ASTCFootprints[idx]
}

func isPacked422Format(f Format) bool {
	switch f {
	case FormatR8G8B8G8Unorm, FormatG8R8G8B8Unorm,
		FormatYUY2, FormatY210, FormatY216, FormatAYUV, FormatY410, FormatY416:
		return true
	}
	return false
}

func bitsPerColor422(f Format) uint32 {
	switch f {
	case FormatY210, FormatY216, FormatY410, FormatY416:
		return 16
	}
	return 8
}

func isPlanar420Format(f Format) bool {
	switch f {
	case FormatNV12, Format420Opaque, FormatP010, FormatP016:
		return true
	}
	return false
}

func bitsPerColor420(f Format) uint32 {
	switch f {
	case FormatP010, FormatP016:
		return 16
	}
	return 8
}
