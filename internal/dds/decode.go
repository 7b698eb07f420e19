package dds

import (
	"encoding/binary"

	"github.com/echotex/texpipe/internal/layout"
	"github.com/echotex/texpipe/internal/pixfmt"
)

// Options controls decode_dds_header's permissiveness and legacy-expansion
// behavior.
type Options struct {
	Permissive         bool
	ForceRGB           bool
	No16BPP            bool
	ExpandLuminance    bool
	NoLegacyExpansion  bool
	NoR10B10G10A2Fixup bool
	AllowLargeFiles    bool
	IgnoreMips         bool

	// CPFlags is passed through to the layout engine when Load computes
	// the pixel buffer's subresource table (pitch alignment, BADDXTN_TAILS).
	CPFlags pixfmt.CPFlags
}

const nvttSignature uint32 = 0x5454564e // "NVTT" little-endian read of reserved1[9]

const (
	maxDimension = 16384
	maxMipLevels = 15
	maxArraySize = 2048
	maxDepth     = 2048
)

// DecodeHeader parses a DDS file's magic, header, and optional DXT10
// extension, returning the texture description decode_dds_header would
// produce plus the scanline conversion flags the load pipeline must apply.
func DecodeHeader(data []byte, opts Options) (*Result, error) {
	if len(data) < 4 {
		return nil, errorf("truncated: need at least 4 bytes, got %d", len(data))
	}
	magic := binary.LittleEndian.Uint32(data[0:4])
	if magic != Magic {
		return nil, errorf("bad magic %#x", magic)
	}
	if len(data) < 4+HeaderSize {
		return nil, errorf("truncated: need %d bytes for header, got %d", 4+HeaderSize, len(data))
	}

	var hdr Header
	hdr.decode(data[4 : 4+HeaderSize])

	validSize := hdr.Size == HeaderSize || (opts.Permissive && hdr.Size == 24)
	if !validSize {
		return nil, errorf("bad header.size %d", hdr.Size)
	}
	validPFSize := hdr.PixelFormat.Size == PixelFormatSize || (opts.Permissive && hdr.PixelFormat.Size == 24)
	if !validPFSize {
		return nil, errorf("bad pixelFormat.size %d", hdr.PixelFormat.Size)
	}

	desc := layout.TextureDescription{
		Width:  hdr.Width,
		Height: hdr.Height,
		Depth:  1,
	}
	var conv ConvFlags
	var res Result

	isDX10 := hdr.PixelFormat.Flags&PFFourCC != 0 && hdr.PixelFormat.FourCC == FourCCDX10
	if isDX10 {
		if len(data) < 4+HeaderSize+DXT10HeaderSize {
			return nil, errorf("truncated: DX10 header needs %d bytes, got %d", 4+HeaderSize+DXT10HeaderSize, len(data))
		}
		var ext HeaderDXT10
		ext.decode(data[4+HeaderSize : 4+HeaderSize+DXT10HeaderSize])
		res.PayloadOffset = 4 + HeaderSize + DXT10HeaderSize

		desc.Format = pixfmt.Format(ext.DXGIFormat)

		switch ext.ResourceDimension {
		case ResourceDimensionTexture1D:
			desc.Dimension = layout.Dimension1D
			desc.Height, desc.Depth = 1, 1
		case ResourceDimensionTexture2D:
			desc.Dimension = layout.Dimension2D
			desc.Depth = 1
		case ResourceDimensionTexture3D:
			if ext.ArraySize > 1 {
				return nil, errorf("3D texture cannot have arraySize > 1")
			}
			if hdr.Flags&FlagDepth == 0 {
				return nil, errorf("3D texture requires the VOLUME/DEPTH flag")
			}
			desc.Dimension = layout.Dimension3D
			desc.Depth = hdr.Depth
		default:
			return nil, errorf("unknown resourceDimension %d", ext.ResourceDimension)
		}

		desc.ArraySize = ext.ArraySize
		if desc.ArraySize == 0 {
			desc.ArraySize = 1
		}
		if ext.MiscFlag&MiscFlagTextureCube != 0 {
			desc.MiscFlags |= layout.MiscFlagCubemap
			desc.ArraySize *= 6
		}
		desc.MiscFlags2 = ext.MiscFlags2
	} else {
		res.PayloadOffset = 4 + HeaderSize

		matchPF := hdr.PixelFormat
		if hdr.Reserved1[9] == nvttSignature {
			// NVTT steals the otherwise-unused SRGB/NORMAL bits to stash its
			// own markers; strip them before matching against legacyTable,
			// whose entries were never written with those bits set.
			matchPF.Flags &^= PFSRGB | PFNormal
		}
		entry, ok := matchLegacy(&matchPF)
		if !ok {
			return nil, errorf("unrecognized legacy pixel format (flags=%#x bitCount=%d)", hdr.PixelFormat.Flags, hdr.PixelFormat.RGBBitCount)
		}
		desc.Format = entry.format
		conv = entry.convFlags
		res.PixelFormat = &hdr.PixelFormat

		desc.Dimension = layout.Dimension2D
		desc.ArraySize = 1
		if hdr.Caps2&Caps2Cubemap != 0 {
			desc.MiscFlags |= layout.MiscFlagCubemap
			desc.ArraySize = 6
		} else if hdr.Caps2&Caps2Volume != 0 && hdr.Flags&FlagDepth != 0 {
			desc.Dimension = layout.Dimension3D
			desc.Depth = hdr.Depth
		}
	}

	if hdr.Reserved1[9] == nvttSignature && hdr.PixelFormat.Flags&PFSRGB != 0 {
		// NVTT stamps its signature into reserved1[9] and sets the
		// otherwise-unused DDPF_SRGB bit in the pixel format's own flags;
		// promote the format rather than reinterpret any header field.
		desc.Format = pixfmt.MakeSRGB(desc.Format)
	}

	if !opts.NoR10B10G10A2Fixup && desc.Format == pixfmt.FormatR10G10B10A2Unorm && conv&ConvSwizzle != 0 {
		// D3DX-era mask reversal: leave the swizzle flag as matched.
	} else if opts.NoR10B10G10A2Fixup {
		conv &^= ConvSwizzle
	}

	if opts.ForceRGB {
		switch desc.Format {
		case pixfmt.FormatB8G8R8A8Unorm:
			desc.Format = pixfmt.FormatR8G8B8A8Unorm
			conv |= ConvSwizzle
		case pixfmt.FormatB8G8R8X8Unorm:
			desc.Format = pixfmt.FormatR8G8B8A8Unorm
			conv |= ConvSwizzle | ConvNoAlpha
		}
	}

	if opts.No16BPP {
		switch desc.Format {
		case pixfmt.FormatB5G6R5Unorm, pixfmt.FormatB5G5R5A1Unorm, pixfmt.FormatB4G4R4A4Unorm:
			res.SourceFormat = desc.Format
			desc.Format = pixfmt.FormatR8G8B8A8Unorm
			conv |= ConvExpand
		}
	}

	if opts.ExpandLuminance {
		switch desc.Format {
		case pixfmt.FormatR8Unorm:
			desc.Format = pixfmt.FormatR8G8B8A8Unorm
			conv |= ConvExpand | ConvL8
		case pixfmt.FormatR8G8Unorm:
			desc.Format = pixfmt.FormatR8G8B8A8Unorm
			conv |= ConvExpand | ConvA8L8
		case pixfmt.FormatR16Unorm:
			desc.Format = pixfmt.FormatR16G16B16A16Unorm
			conv |= ConvExpand | ConvL16
		}
	}

	if conv&ConvExpand != 0 && opts.NoLegacyExpansion {
		return nil, errorf("legacy expansion required but NoLegacyExpansion is set")
	}

	if conv&ConvNoAlpha != 0 {
		desc.SetAlphaMode(layout.AlphaModeOpaque)
	} else if conv&ConvPremultiplied != 0 {
		desc.SetAlphaMode(layout.AlphaModePremultiplied)
	} else if isDX10 {
		desc.SetAlphaMode(layout.AlphaMode(desc.MiscFlags2 & 0x7))
	}

	mipLevels := hdr.MipMapCount
	if mipLevels == 0 {
		mipLevels = 1
	}
	if opts.Permissive {
		full := layout.FullMipChain(desc.Width, desc.Height, desc.Depth, desc.Dimension)
		if mipLevels > full {
			mipLevels = full
		}
	}
	desc.MipLevels = mipLevels

	if !opts.AllowLargeFiles {
		if desc.Width > maxDimension || desc.Height > maxDimension {
			return nil, errorf("dimension exceeds %d", maxDimension)
		}
		if desc.MipLevels > maxMipLevels {
			return nil, errorf("mip_levels exceeds %d", maxMipLevels)
		}
		if desc.ArraySize > maxArraySize {
			return nil, errorf("array_size exceeds %d", maxArraySize)
		}
		if desc.Depth > maxDepth {
			return nil, errorf("depth exceeds %d", maxDepth)
		}
	}

	if opts.IgnoreMips && desc.ArraySize == 1 {
		desc.MipLevels = 1
	}

	if err := desc.Validate(); err != nil {
		return nil, err
	}

	res.Description = desc
	res.ConvFlags = conv
	return &res, nil
}
