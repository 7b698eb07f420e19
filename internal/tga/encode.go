package tga

import (
	"github.com/echotex/texpipe/internal/layout"
	"github.com/echotex/texpipe/internal/pixfmt"
)

// EncodeHeader builds the on-disk 18-byte header for desc, along with the
// conversion flags the pixel-writing pipeline must apply per scanline.
// Unlike DecodeHeader, the encoder has no legacy-expansion fallback: only
// the formats TGA can represent natively are accepted.
func EncodeHeader(desc *layout.TextureDescription, flags Flags) (Header, ConvFlags, error) {
	if err := desc.Validate(); err != nil {
		return Header{}, 0, err
	}
	if desc.Dimension != layout.Dimension2D || desc.ArraySize != 1 || desc.MipLevels != 1 {
		return Header{}, 0, errorf("TGA only supports a single 2D image (no arrays, mips, or volumes)")
	}
	if desc.Width > maxDimension || desc.Height > maxDimension {
		return Header{}, 0, errorf("dimension exceeds %d", maxDimension)
	}

	hdr := Header{
		Width: uint16(desc.Width), Height: uint16(desc.Height),
		ImageType:  ImageTrueColor,
		Descriptor: DescriptorInvertY,
	}
	var conv ConvFlags

	switch desc.Format {
	case pixfmt.FormatR8G8B8A8Unorm, pixfmt.FormatR8G8B8A8UnormSrgb:
		hdr.BitsPerPixel = 32
		hdr.Descriptor |= 8
		conv |= ConvSwizzle
	case pixfmt.FormatB8G8R8A8Unorm, pixfmt.FormatB8G8R8A8UnormSrgb:
		hdr.BitsPerPixel = 32
		hdr.Descriptor |= 8
	case pixfmt.FormatB8G8R8Unorm, pixfmt.FormatB8G8R8Srgb:
		hdr.BitsPerPixel = 24
		conv |= Conv888
	case pixfmt.FormatR8Unorm, pixfmt.FormatA8Unorm:
		hdr.ImageType = ImageBlackAndWhite
		hdr.BitsPerPixel = 8
	case pixfmt.FormatB5G5R5A1Unorm:
		hdr.BitsPerPixel = 16
		hdr.Descriptor |= 1
	default:
		return Header{}, 0, errorf("format %v has no TGA representation", desc.Format)
	}

	return hdr, conv, nil
}
