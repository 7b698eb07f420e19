package pixfmt

// IsCompressed reports whether f stores a fixed-size byte block per tile
// (BC1-BC7, ETC2/EAC, ASTC, PVRTC).
func IsCompressed(f Format) bool {
	switch f {
	case FormatBC1Typeless, FormatBC1Unorm, FormatBC1UnormSrgb,
		FormatBC2Typeless, FormatBC2Unorm, FormatBC2UnormSrgb,
		FormatBC3Typeless, FormatBC3Unorm, FormatBC3UnormSrgb,
		FormatBC4Typeless, FormatBC4Unorm, FormatBC4Snorm,
		FormatBC5Typeless, FormatBC5Unorm, FormatBC5Snorm,
		FormatBC6HTypeless, FormatBC6HUF16, FormatBC6HSF16,
		FormatBC7Typeless, FormatBC7Unorm, FormatBC7UnormSrgb,
		FormatETC2RGB8Unorm, FormatETC2RGB8Srgb,
		FormatETC2RGB8A1Unorm, FormatETC2RGB8A1Srgb,
		FormatETC2RGBA8Unorm, FormatETC2RGBA8Srgb,
		FormatEACR11Unorm, FormatEACR11Snorm,
		FormatEACRG11Unorm, FormatEACRG11Snorm,
		FormatPVRTC1_2BPPUnorm, FormatPVRTC1_2BPPSrgb,
		FormatPVRTC1_4BPPUnorm, FormatPVRTC1_4BPPSrgb,
		FormatPVRTC2_2BPPUnorm, FormatPVRTC2_2BPPSrgb,
		FormatPVRTC2_4BPPUnorm, FormatPVRTC2_4BPPSrgb:
		return true
	}
	if _, _, ok := astcIndex(f); ok {
		return true
	}
	return false
}

// IsPacked reports whether f coalesces multiple components into one ≤32-bit
// unit, or is a packed 4:2:2 YCbCr layout.
func IsPacked(f Format) bool {
	switch f {
	case FormatR8G8B8G8Unorm, FormatG8R8G8B8Unorm,
		FormatR10G10B10XRBiasA2Unorm,
		FormatB5G6R5Unorm, FormatB5G5R5A1Unorm, FormatB4G4R4A4Unorm,
		FormatR10G10B10A2Typeless, FormatR10G10B10A2Unorm, FormatR10G10B10A2Uint,
		FormatR11G11B10Float, FormatR9G9B9E5Sharedexp,
		FormatAYUV, FormatY410, FormatYUY2, FormatY210, FormatY216, FormatY416,
		FormatAI44, FormatIA44:
		return true
	}
	return false
}

// IsPlanar reports whether f stores its components in separate 2D planes.
// The two depth/stencil combined formats have distinct plane layouts between
// the D3D11 and D3D12 memory models; d3d12 selects which convention applies.
func IsPlanar(f Format, d3d12 bool) bool {
	switch f {
	case FormatNV12, FormatP010, FormatP016, Format420Opaque, FormatNV11, FormatP208:
		return true
	case FormatD24UnormS8Uint, FormatD32FloatS8X24Uint:
		return d3d12
	}
	return false
}

// IsVideo reports whether f is a YCbCr video format (planar or packed,
// 4:2:0/4:2:2/4:4:4, 8/10/12/16-bit).
func IsVideo(f Format) bool {
	switch f {
	case FormatAYUV, FormatY410, FormatY416,
		FormatNV12, FormatP010, FormatP016, Format420Opaque,
		FormatYUY2, FormatY210, FormatY216,
		FormatNV11, FormatAI44, FormatIA44, FormatP8, FormatA8P8,
		FormatP208, FormatV208, FormatV408:
		return true
	}
	return false
}

// IsDepthStencil reports whether f is a depth, stencil, or combined
// depth-stencil format.
func IsDepthStencil(f Format) bool {
	switch f {
	case FormatD16Unorm, FormatD24UnormS8Uint, FormatD32Float, FormatD32FloatS8X24Uint,
		FormatR24G8Typeless, FormatR32G8X24Typeless:
		return true
	}
	return false
}

// IsSRGB reports whether f is an explicitly sRGB-encoded format.
func IsSRGB(f Format) bool {
	switch f {
	case FormatR8G8B8A8UnormSrgb, FormatBC1UnormSrgb, FormatBC2UnormSrgb, FormatBC3UnormSrgb,
		FormatBC7UnormSrgb, FormatB8G8R8A8UnormSrgb, FormatB8G8R8X8UnormSrgb,
		FormatETC2RGB8Srgb, FormatETC2RGB8A1Srgb, FormatETC2RGBA8Srgb,
		FormatPVRTC1_2BPPSrgb, FormatPVRTC1_4BPPSrgb, FormatPVRTC2_2BPPSrgb, FormatPVRTC2_4BPPSrgb,
		FormatB8G8R8Srgb:
		return true
	}
	if idx, variant, ok := astcIndex(f); ok {
		_ = idx
		return variant == 1
	}
	return false
}

// IsBGR reports whether f stores its color channels in B-first order.
func IsBGR(f Format) bool {
	switch f {
	case FormatB5G6R5Unorm, FormatB5G5R5A1Unorm,
		FormatB8G8R8A8Unorm, FormatB8G8R8X8Unorm,
		FormatB8G8R8A8Typeless, FormatB8G8R8A8UnormSrgb,
		FormatB8G8R8X8Typeless, FormatB8G8R8X8UnormSrgb,
		FormatB4G4R4A4Unorm, FormatB8G8R8Unorm, FormatB8G8R8Srgb:
		return true
	}
	return false
}

// HasAlpha reports whether f has a dedicated alpha channel.
func HasAlpha(f Format) bool {
	switch f {
	case FormatR32G32B32A32Typeless, FormatR32G32B32A32Float, FormatR32G32B32A32Uint, FormatR32G32B32A32Sint,
		FormatR16G16B16A16Typeless, FormatR16G16B16A16Float, FormatR16G16B16A16Unorm, FormatR16G16B16A16Uint,
		FormatR16G16B16A16Snorm, FormatR16G16B16A16Sint,
		FormatR10G10B10A2Typeless, FormatR10G10B10A2Unorm, FormatR10G10B10A2Uint, FormatR10G10B10XRBiasA2Unorm,
		FormatR8G8B8A8Typeless, FormatR8G8B8A8Unorm, FormatR8G8B8A8UnormSrgb, FormatR8G8B8A8Uint,
		FormatR8G8B8A8Snorm, FormatR8G8B8A8Sint,
		FormatA8Unorm, FormatA8P8,
		FormatB5G5R5A1Unorm, FormatB4G4R4A4Unorm,
		FormatB8G8R8A8Unorm, FormatB8G8R8A8Typeless, FormatB8G8R8A8UnormSrgb,
		FormatBC1Unorm, FormatBC1UnormSrgb, FormatBC1Typeless, // DXT1 1-bit alpha; presence varies at runtime but the type carries a channel
		FormatBC2Typeless, FormatBC2Unorm, FormatBC2UnormSrgb,
		FormatBC3Typeless, FormatBC3Unorm, FormatBC3UnormSrgb,
		FormatBC7Typeless, FormatBC7Unorm, FormatBC7UnormSrgb,
		FormatAYUV, FormatY410, FormatY416,
		FormatETC2RGB8A1Unorm, FormatETC2RGB8A1Srgb, FormatETC2RGBA8Unorm, FormatETC2RGBA8Srgb,
		FormatPVRTC1_2BPPUnorm, FormatPVRTC1_2BPPSrgb, FormatPVRTC1_4BPPUnorm, FormatPVRTC1_4BPPSrgb,
		FormatPVRTC2_2BPPUnorm, FormatPVRTC2_2BPPSrgb, FormatPVRTC2_4BPPUnorm, FormatPVRTC2_4BPPSrgb:
		return true
	}
	return false
}

// IsPalettized always returns false: palettes are expanded to RGBA8 at load
// time and never held as the canonical format.
func IsPalettized(Format) bool {
	return false
}

// BitsPerPixel returns the pixel's effective bit width including padding, or
// 0 for compressed and unknown formats.
func BitsPerPixel(f Format) uint32 {
	switch f {
	case FormatR32G32B32A32Typeless, FormatR32G32B32A32Float, FormatR32G32B32A32Uint, FormatR32G32B32A32Sint:
		return 128
	case FormatR32G32B32Typeless, FormatR32G32B32Float, FormatR32G32B32Uint, FormatR32G32B32Sint:
		return 96
	case FormatR16G16B16A16Typeless, FormatR16G16B16A16Float, FormatR16G16B16A16Unorm, FormatR16G16B16A16Uint,
		FormatR16G16B16A16Snorm, FormatR16G16B16A16Sint,
		FormatR32G32Typeless, FormatR32G32Float, FormatR32G32Uint, FormatR32G32Sint,
		FormatR32G8X24Typeless, FormatD32FloatS8X24Uint, FormatR32FloatX8X24Typeless, FormatX32TypelessG8X24Uint,
		FormatY416, FormatY216:
		return 64
	case FormatR10G10B10A2Typeless, FormatR10G10B10A2Unorm, FormatR10G10B10A2Uint, FormatR10G10B10XRBiasA2Unorm,
		FormatR11G11B10Float, FormatR9G9B9E5Sharedexp,
		FormatR8G8B8A8Typeless, FormatR8G8B8A8Unorm, FormatR8G8B8A8UnormSrgb, FormatR8G8B8A8Uint,
		FormatR8G8B8A8Snorm, FormatR8G8B8A8Sint,
		FormatR16G16Typeless, FormatR16G16Float, FormatR16G16Unorm, FormatR16G16Uint, FormatR16G16Snorm, FormatR16G16Sint,
		FormatR24G8Typeless, FormatD24UnormS8Uint, FormatR24UnormX8Typeless, FormatX24TypelessG8Uint,
		FormatR8G8B8G8Unorm, FormatG8R8G8B8Unorm,
		FormatB8G8R8A8Unorm, FormatB8G8R8X8Unorm, FormatB8G8R8A8Typeless, FormatB8G8R8A8UnormSrgb,
		FormatB8G8R8X8Typeless, FormatB8G8R8X8UnormSrgb,
		FormatAYUV, FormatY410, FormatYUY2, FormatY210,
		FormatR32Typeless, FormatD32Float, FormatR32Float, FormatR32Uint, FormatR32Sint:
		return 32
	case FormatR8G8Typeless, FormatR8G8Unorm, FormatR8G8Uint, FormatR8G8Snorm, FormatR8G8Sint,
		FormatR16Typeless, FormatR16Float, FormatD16Unorm, FormatR16Unorm, FormatR16Uint, FormatR16Snorm, FormatR16Sint,
		FormatB5G6R5Unorm, FormatB5G5R5A1Unorm, FormatB4G4R4A4Unorm,
		FormatA8P8:
		return 16
	case FormatB8G8R8Unorm, FormatB8G8R8Srgb:
		return 24
	case FormatR8Typeless, FormatR8Unorm, FormatR8Uint, FormatR8Snorm, FormatR8Sint,
		FormatA8Unorm, FormatP8, FormatAI44, FormatIA44:
		return 8
	case FormatR1Unorm:
		return 1
	case FormatNV12, Format420Opaque, FormatNV11:
		return 12
	case FormatP010, FormatP016:
		return 24
	}
	return 0
}

// BitsPerColor returns the dominant per-component bit depth. RGB9E5 and
// 11_11_10 report the special values 9 and 11 the spec calls out.
func BitsPerColor(f Format) uint32 {
	switch f {
	case FormatR32G32B32A32Typeless, FormatR32G32B32A32Float, FormatR32G32B32A32Uint, FormatR32G32B32A32Sint,
		FormatR32G32B32Typeless, FormatR32G32B32Float, FormatR32G32B32Uint, FormatR32G32B32Sint,
		FormatR32G32Typeless, FormatR32G32Float, FormatR32G32Uint, FormatR32G32Sint,
		FormatR32Typeless, FormatD32Float, FormatR32Float, FormatR32Uint, FormatR32Sint:
		return 32
	case FormatR16G16B16A16Typeless, FormatR16G16B16A16Float, FormatR16G16B16A16Unorm, FormatR16G16B16A16Uint,
		FormatR16G16B16A16Snorm, FormatR16G16B16A16Sint,
		FormatR16G16Typeless, FormatR16G16Float, FormatR16G16Unorm, FormatR16G16Uint, FormatR16G16Snorm, FormatR16G16Sint,
		FormatR16Typeless, FormatR16Float, FormatD16Unorm, FormatR16Unorm, FormatR16Uint, FormatR16Snorm, FormatR16Sint:
		return 16
	case FormatR10G10B10A2Typeless, FormatR10G10B10A2Unorm, FormatR10G10B10A2Uint, FormatR10G10B10XRBiasA2Unorm:
		return 10
	case FormatR11G11B10Float:
		return 11
	case FormatR9G9B9E5Sharedexp:
		return 9
	case FormatR8G8B8A8Typeless, FormatR8G8B8A8Unorm, FormatR8G8B8A8UnormSrgb, FormatR8G8B8A8Uint,
		FormatR8G8B8A8Snorm, FormatR8G8B8A8Sint,
		FormatR8G8Typeless, FormatR8G8Unorm, FormatR8G8Uint, FormatR8G8Snorm, FormatR8G8Sint,
		FormatR8Typeless, FormatR8Unorm, FormatR8Uint, FormatR8Snorm, FormatR8Sint,
		FormatB8G8R8A8Unorm, FormatB8G8R8X8Unorm, FormatB8G8R8A8Typeless, FormatB8G8R8A8UnormSrgb,
		FormatB8G8R8X8Typeless, FormatB8G8R8X8UnormSrgb:
		return 8
	case FormatB5G6R5Unorm, FormatB5G5R5A1Unorm:
		return 5
	case FormatB4G4R4A4Unorm:
		return 4
	}
	return 0
}

// bcnBytesPerBlock maps ASTC-independent block-compressed formats that use
// the fixed 4x4 BC/ETC footprint to their payload size in bytes.
var bcnBytesPerBlock = map[Format]uint32{
	FormatBC1Typeless: 8, FormatBC1Unorm: 8, FormatBC1UnormSrgb: 8,
	FormatBC4Typeless: 8, FormatBC4Unorm: 8, FormatBC4Snorm: 8,
	FormatBC2Typeless: 16, FormatBC2Unorm: 16, FormatBC2UnormSrgb: 16,
	FormatBC3Typeless: 16, FormatBC3Unorm: 16, FormatBC3UnormSrgb: 16,
	FormatBC5Typeless: 16, FormatBC5Unorm: 16, FormatBC5Snorm: 16,
	FormatBC6HTypeless: 16, FormatBC6HUF16: 16, FormatBC6HSF16: 16,
	FormatBC7Typeless: 16, FormatBC7Unorm: 16, FormatBC7UnormSrgb: 16,
	FormatETC2RGB8Unorm: 8, FormatETC2RGB8Srgb: 8,
	FormatETC2RGB8A1Unorm: 8, FormatETC2RGB8A1Srgb: 8,
	FormatETC2RGBA8Unorm: 16, FormatETC2RGBA8Srgb: 16,
	FormatEACR11Unorm: 8, FormatEACR11Snorm: 8,
	FormatEACRG11Unorm: 16, FormatEACRG11Snorm: 16,
}

// BytesPerBlock returns the block-compressed payload size (8 or 16 bytes for
// BC/ETC/EAC; 16 bytes for any ASTC footprint; PVRTC has no fixed block size
// and returns 0 here, and ComputePitch has no rule for it), or 0 for
// non-block-compressed formats.
func BytesPerBlock(f Format) uint32 {
	if n, ok := bcnBytesPerBlock[f]; ok {
		return n
	}
	if _, _, ok := astcIndex(f); ok {
		return 16
	}
	return 0
}

// srgbSiblings maps UNORM formats to their SRGB counterpart.
var srgbSiblings = map[Format]Format{
	FormatR8G8B8A8Unorm:  FormatR8G8B8A8UnormSrgb,
	FormatBC1Unorm:       FormatBC1UnormSrgb,
	FormatBC2Unorm:       FormatBC2UnormSrgb,
	FormatBC3Unorm:       FormatBC3UnormSrgb,
	FormatBC7Unorm:       FormatBC7UnormSrgb,
	FormatB8G8R8A8Unorm:  FormatB8G8R8A8UnormSrgb,
	FormatB8G8R8X8Unorm:  FormatB8G8R8X8UnormSrgb,
	FormatETC2RGB8Unorm:   FormatETC2RGB8Srgb,
	FormatETC2RGB8A1Unorm: FormatETC2RGB8A1Srgb,
	FormatETC2RGBA8Unorm:  FormatETC2RGBA8Srgb,
	FormatPVRTC1_2BPPUnorm: FormatPVRTC1_2BPPSrgb,
	FormatPVRTC1_4BPPUnorm: FormatPVRTC1_4BPPSrgb,
	FormatPVRTC2_2BPPUnorm: FormatPVRTC2_2BPPSrgb,
	FormatPVRTC2_4BPPUnorm: FormatPVRTC2_4BPPSrgb,
	FormatB8G8R8Unorm:      FormatB8G8R8Srgb,
}

// MakeSRGB maps known UNORM formats to their SRGB sibling, returning f
// unchanged if none exists (e.g. float formats like RGBA32_FLOAT, which have
// no sRGB sibling because sRGB only applies to normalized integer storage).
func MakeSRGB(f Format) Format {
	if idx, variant, ok := astcIndex(f); ok && variant == 0 {
		return ASTCFormat(idx, 1)
	}
	if s, ok := srgbSiblings[f]; ok {
		return s
	}
	return f
}
