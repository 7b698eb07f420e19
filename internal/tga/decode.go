package tga

import (
	"github.com/echotex/texpipe/internal/layout"
	"github.com/echotex/texpipe/internal/pixfmt"
)

// ConvFlags records how the pixel payload must be transformed on its way
// from on-disk bytes to the canonical in-memory format DecodeHeader chose.
type ConvFlags uint32

const (
	// ConvExpand marks 24bpp truecolor data that must be widened to a
	// 4-byte RGBA8 destination (no on-disk alpha channel to carry over).
	ConvExpand ConvFlags = 1 << iota
	// ConvInvertX mirrors every row horizontally while decoding/encoding.
	ConvInvertX
	// ConvInvertY marks rows stored top-down; without it the rows are
	// stored bottom-up and are flipped vertically while decoding.
	ConvInvertY
	// ConvRLE marks run-length-encoded pixel data (image types 9-11).
	ConvRLE
	// ConvPaletted marks 8-bit color-mapped data requiring a palette
	// lookup per pixel.
	ConvPaletted
	// ConvSwizzle marks data whose R and B bytes must be exchanged between
	// on-disk and canonical order.
	ConvSwizzle
	// Conv888 marks 24-bit packed data (3 bytes/pixel on disk, no padding).
	Conv888
)

// Result bundles the decoded description, conversion flags, and payload
// layout DecodeHeader produces.
type Result struct {
	Description   layout.TextureDescription
	ConvFlags      ConvFlags
	PayloadOffset  int
	PayloadLength  int
	Palette        []byte // 256*4 RGBA8 (or BGR-ordered under FlagBGR) entries, or nil
}

const (
	maxDimension = 65535
)

// DecodeHeader parses a TGA file's 18-byte header and, for color-mapped
// images, its palette, returning the texture description DecodeTGAHeader
// would produce plus the scanline conversion flags the load pipeline must
// apply. It does not touch the pixel payload itself.
func DecodeHeader(data []byte, flags Flags) (*Result, error) {
	if len(data) < HeaderSize {
		return nil, errorf("truncated: need at least %d bytes, got %d", HeaderSize, len(data))
	}
	var hdr Header
	hdr.decode(data[:HeaderSize])

	if hdr.ImageType == ImageNone || hdr.ImageType == ImageColorMappedRLE {
		return nil, errorf("unsupported image_type %d", hdr.ImageType)
	}
	if hdr.Descriptor&(DescriptorInterleaved2Way|DescriptorInterleaved4Way) != 0 {
		return nil, errorf("interleaved TGA files are not supported")
	}
	if hdr.Width == 0 || hdr.Height == 0 {
		return nil, errorf("width and height must be non-zero")
	}
	if hdr.Width > maxDimension || hdr.Height > maxDimension {
		return nil, errorf("dimension exceeds %d", maxDimension)
	}

	bgr := flags&FlagBGR != 0
	desc := layout.TextureDescription{
		Width: uint32(hdr.Width), Height: uint32(hdr.Height), Depth: 1,
		ArraySize: 1, MipLevels: 1,
		Dimension: layout.Dimension2D,
	}
	var conv ConvFlags
	var palette []byte
	off := HeaderSize + int(hdr.IDLength)

	switch hdr.ImageType {
	case ImageColorMapped:
		if hdr.ColorMapType != 1 || hdr.ColorMapLength == 0 || hdr.BitsPerPixel != 8 {
			return nil, errorf("unsupported color-mapped header (colorMapType=%d colorMapLength=%d bpp=%d)",
				hdr.ColorMapType, hdr.ColorMapLength, hdr.BitsPerPixel)
		}
		switch hdr.ColorMapEntrySize {
		case 24:
			if bgr {
				desc.Format = pixfmt.FormatB8G8R8Unorm
			} else {
				desc.Format = pixfmt.FormatR8G8B8A8Unorm
				desc.SetAlphaMode(layout.AlphaModeOpaque)
			}
		default:
			return nil, errorf("unsupported color-map entry size %d", hdr.ColorMapEntrySize)
		}
		conv |= ConvPaletted
		pal, palSize, err := readPalette(data, HeaderSize+int(hdr.IDLength), hdr, bgr)
		if err != nil {
			return nil, err
		}
		palette = pal
		off += palSize

	case ImageTrueColor, ImageTrueColorRLE:
		if hdr.ColorMapType != 0 || hdr.ColorMapLength != 0 {
			return nil, errorf("truecolor image must not declare a color map")
		}
		switch hdr.BitsPerPixel {
		case 16:
			desc.Format = pixfmt.FormatB5G5R5A1Unorm
		case 24:
			if bgr {
				desc.Format = pixfmt.FormatB8G8R8Unorm
			} else {
				desc.Format = pixfmt.FormatR8G8B8A8Unorm
				desc.SetAlphaMode(layout.AlphaModeOpaque)
			}
			conv |= ConvExpand
		case 32:
			if bgr {
				desc.Format = pixfmt.FormatB8G8R8A8Unorm
			} else {
				desc.Format = pixfmt.FormatR8G8B8A8Unorm
				conv |= ConvSwizzle
			}
		default:
			return nil, errorf("unsupported truecolor bits_per_pixel %d", hdr.BitsPerPixel)
		}
		if hdr.ImageType == ImageTrueColorRLE {
			conv |= ConvRLE
		}

	case ImageBlackAndWhite, ImageBlackAndWhiteRLE:
		if hdr.ColorMapType != 0 || hdr.ColorMapLength != 0 {
			return nil, errorf("black-and-white image must not declare a color map")
		}
		if hdr.BitsPerPixel != 8 {
			return nil, errorf("unsupported grayscale bits_per_pixel %d", hdr.BitsPerPixel)
		}
		desc.Format = pixfmt.FormatR8Unorm
		desc.SetAlphaMode(layout.AlphaModeOpaque)
		if hdr.ImageType == ImageBlackAndWhiteRLE {
			conv |= ConvRLE
		}

	default:
		return nil, errorf("unknown image_type %d", hdr.ImageType)
	}

	if hdr.Descriptor&DescriptorInvertX != 0 {
		conv |= ConvInvertX
	}
	if hdr.Descriptor&DescriptorInvertY != 0 {
		conv |= ConvInvertY
	}
	if pixfmt.IsBGR(desc.Format) && pixfmt.BitsPerPixel(desc.Format) == 24 {
		conv |= Conv888
	}

	if err := desc.Validate(); err != nil {
		return nil, err
	}

	if off > len(data) {
		return nil, errorf("truncated: header+ID+palette need %d bytes, got %d", off, len(data))
	}

	return &Result{
		Description:   desc,
		ConvFlags:      conv,
		PayloadOffset:  off,
		PayloadLength:  len(data) - off,
		Palette:        palette,
	}, nil
}

// readPalette decodes a TGA color-map table starting at off, per
// DecodeTGAHeader's rules: only 24-bit-per-entry maps are supported, and the
// result is always a 256-entry RGBA8 table with unpopulated entries left
// zero. If bgr is set, entries are stored in B,G,R order (matching
// FormatB8G8R8Unorm's canonical layout) with alpha left at zero rather than
// forced opaque, since the 3-byte packed output format never reads byte 3.
func readPalette(data []byte, off int, hdr Header, bgr bool) ([]byte, int, error) {
	if hdr.ColorMapType != 1 || hdr.ColorMapLength == 0 {
		return nil, 0, errorf("missing required color map")
	}
	if hdr.ColorMapLength > 256 {
		return nil, 0, errorf("color map length %d exceeds 256", hdr.ColorMapLength)
	}
	if hdr.ColorMapEntrySize != 24 {
		return nil, 0, errorf("unsupported color map entry size %d", hdr.ColorMapEntrySize)
	}
	first, length := int(hdr.ColorMapFirst), int(hdr.ColorMapLength)
	if first+length > 256 {
		return nil, 0, errorf("color map first+length %d exceeds 256", first+length)
	}
	bytesPerEntry := (int(hdr.ColorMapEntrySize) + 7) / 8
	size := length * bytesPerEntry
	if off+size > len(data) {
		return nil, 0, errorf("truncated: color map needs %d bytes", size)
	}

	palette := make([]byte, 256*4)
	src := data[off : off+size]
	for i := 0; i < length; i++ {
		b, g, r := src[i*3+0], src[i*3+1], src[i*3+2]
		o := palette[(first+i)*4 : (first+i)*4+4]
		if bgr {
			o[0], o[1], o[2], o[3] = b, g, r, 0
		} else {
			o[0], o[1], o[2], o[3] = r, g, b, 0xFF
		}
	}
	return palette, size, nil
}
