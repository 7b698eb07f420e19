package dds

import (
	"encoding/binary"

	"github.com/echotex/texpipe/internal/layout"
	"github.com/echotex/texpipe/internal/pixfmt"
)

// EncodeHeader builds the on-disk header bytes (magic + DDS_HEADER, plus a
// DDS_HEADER_DXT10 extension when required) for desc. It returns the full
// header region only; pixel payload is appended separately by the load/save
// pipeline.
func EncodeHeader(desc *layout.TextureDescription, flags Flags) ([]byte, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	legacyPF, saveConv, haveLegacy := selectSaveFormat(desc, flags)

	// Uncompressed formats the legacy table matches without any conversion
	// are written with the DXT10 extension; legacy templates are kept for
	// block-compressed formats and for explicit conversions such as
	// FlagForce24BPPRGB.
	useDX10 := flags&(FlagForceDX10Ext|FlagForceDX10ExtMisc2) != 0 || !haveLegacy ||
		(saveConv == 0 && !pixfmt.IsCompressed(desc.Format))
	if flags&FlagForceDX9Legacy != 0 {
		if !haveLegacy {
			return nil, errorf("format %v has no legacy DDS representation", desc.Format)
		}
		useDX10 = false
	}

	hdr := Header{
		Size:  HeaderSize,
		Flags: FlagCaps | FlagHeight | FlagWidth | FlagPixelFormat,
		Height: desc.Height,
		Width:  desc.Width,
		Depth:  1,
		MipMapCount: desc.MipLevels,
		Caps:        CapsTexture,
	}
	if desc.MipLevels > 1 {
		hdr.Flags |= FlagMipmapCount
		hdr.Caps |= CapsComplex | CapsMipmap
	}
	if desc.Dimension == layout.Dimension3D {
		hdr.Flags |= FlagDepth
		hdr.Depth = desc.Depth
		hdr.Caps |= CapsComplex
		hdr.Caps2 = Caps2Volume
	}
	if desc.IsCubemap() {
		hdr.Caps |= CapsComplex
		hdr.Caps2 = Caps2Cubemap | Caps2AllFaces
	}

	pitchFormat := desc.Format
	if saveConv&ConvR8G8B8 != 0 {
		// The payload pass narrows canonical RGBA8 down to legacy 3-byte
		// R8G8B8; the declared pitch must reflect what actually lands on
		// disk, not the 4-byte-per-pixel canonical buffer.
		pitchFormat = pixfmt.FormatB8G8R8Unorm
	}
	rowPitch, slicePitch, err := pixfmt.ComputePitch(pitchFormat, desc.Width, desc.Height, pixfmt.CPFlagsNone)
	if err != nil {
		return nil, err
	}
	if pixfmt.IsCompressed(desc.Format) {
		// Only the compressed path sets the LINEARSIZE flag; pitchOrLinearSize
		// is still filled in for uncompressed formats, but DDS_HEADER_FLAGS_PITCH
		// is left unset, matching the reference encoder.
		hdr.Flags |= FlagLinearSize
		hdr.PitchOrLinearSize = uint32(slicePitch)
	} else {
		hdr.PitchOrLinearSize = uint32(rowPitch)
	}

	var out []byte
	if useDX10 {
		hdr.PixelFormat = pfFourCCValue(FourCCDX10)
		out = make([]byte, 4+HeaderSize+DXT10HeaderSize)
		hdr.encode(out[4 : 4+HeaderSize])

		ext := HeaderDXT10{
			DXGIFormat: uint32(desc.Format),
			ArraySize:  1,
		}
		switch desc.Dimension {
		case layout.Dimension1D:
			ext.ResourceDimension = ResourceDimensionTexture1D
		case layout.Dimension2D:
			ext.ResourceDimension = ResourceDimensionTexture2D
		case layout.Dimension3D:
			ext.ResourceDimension = ResourceDimensionTexture3D
		}
		if desc.IsCubemap() {
			ext.MiscFlag |= MiscFlagTextureCube
			ext.ArraySize = desc.ArraySize / 6
		} else if desc.Dimension != layout.Dimension3D {
			ext.ArraySize = desc.ArraySize
		}
		if flags&FlagForceDX10ExtMisc2 != 0 || desc.AlphaMode() != layout.AlphaModeUnknown {
			ext.MiscFlags2 = uint32(desc.AlphaMode())
		}
		ext.encode(out[4+HeaderSize : 4+HeaderSize+DXT10HeaderSize])
	} else {
		hdr.PixelFormat = legacyPF
		out = make([]byte, 4+HeaderSize)
		hdr.encode(out[4 : 4+HeaderSize])
	}

	binary.LittleEndian.PutUint32(out[0:4], Magic)
	return out, nil
}

// selectSaveFormat picks the on-disk pixel-format template Save's header
// and payload pass must agree on. Most formats either have no legacy
// representation (DXT10 only, byte-identical to the canonical buffer) or a
// zero-conv legacy template (also byte-identical). FlagForce24BPPRGB is the
// one case where the template narrows the canonical 4-byte-per-pixel RGBA8
// buffer down to a legacy 3-byte-per-pixel on-disk layout, so its conv
// flags are returned alongside the template for the payload pass to act on.
func selectSaveFormat(desc *layout.TextureDescription, flags Flags) (legacyPF PixelFormat, conv ConvFlags, haveLegacy bool) {
	if flags&FlagForce24BPPRGB != 0 && desc.Format == pixfmt.FormatR8G8B8A8Unorm {
		if alt, ok := legacyTemplateForConv(desc.Format, ConvExpand|ConvNoAlpha|ConvR8G8B8); ok {
			return alt, ConvExpand | ConvNoAlpha | ConvR8G8B8, true
		}
	}
	legacyPF, haveLegacy = legacyTemplateFor(desc.Format)
	return legacyPF, 0, haveLegacy
}

// legacyTemplateForConv is legacyTemplateFor generalized to an explicit
// conv-flag match, used when the caller wants a specific legacy variant
// (e.g. the 24bpp R8G8B8 template) rather than the canonical zero-conv-flag
// one.
func legacyTemplateForConv(f pixfmt.Format, conv ConvFlags) (PixelFormat, bool) {
	for _, e := range legacyTable {
		if e.format == f && e.convFlags == conv {
			return e.pf, true
		}
	}
	return PixelFormat{}, false
}
