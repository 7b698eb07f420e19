// Package dds implements the DDS (DirectDraw Surface) container codec:
// decoding both legacy DX9 and modern DX10-extended headers into a texture
// description plus conversion flags, and encoding a description back into
// either header form.
package dds

import (
	"encoding/binary"
	"fmt"

	"github.com/echotex/texpipe/internal/layout"
	"github.com/echotex/texpipe/internal/pixfmt"
)

// Magic is the 4-byte "DDS " signature at the start of every DDS file.
const Magic uint32 = 0x20534444

// HeaderSize is the fixed size of DDS_HEADER, not counting the 4-byte magic.
const HeaderSize = 124

// PixelFormatSize is the fixed size of the embedded DDS_PIXELFORMAT struct.
const PixelFormatSize = 32

// DXT10HeaderSize is the size of the optional DDS_HEADER_DXT10 extension.
const DXT10HeaderSize = 20

// FourCCDX10 is the pixel-format fourCC value signaling a DXT10 extension
// follows the legacy header.
const FourCCDX10 uint32 = 0x30315844 // "DX10"

// Header flag bits (DDS_HEADER.dwFlags).
const (
	FlagCaps        uint32 = 0x1
	FlagHeight      uint32 = 0x2
	FlagWidth       uint32 = 0x4
	FlagPitch       uint32 = 0x8
	FlagPixelFormat uint32 = 0x1000
	FlagMipmapCount uint32 = 0x20000
	FlagLinearSize  uint32 = 0x80000
	FlagDepth       uint32 = 0x800000
)

// DDS_PIXELFORMAT flag bits (DDS_PIXELFORMAT.dwFlags).
const (
	PFAlphaPixels uint32 = 0x1
	PFAlpha       uint32 = 0x2
	PFFourCC      uint32 = 0x4
	PFPAL8        uint32 = 0x20
	PFRGB         uint32 = 0x40
	PFLuminance   uint32 = 0x20000
	PFBumpDUDV    uint32 = 0x80000
	PFSRGB        uint32 = 0x40000000 // non-standard, NVTT-only sRGB marker
	PFNormal      uint32 = 0x80000000 // non-standard, NVTT-only normal-map marker
)

// Caps bits (DDS_HEADER.dwCaps).
const (
	CapsComplex uint32 = 0x8
	CapsMipmap  uint32 = 0x400000
	CapsTexture uint32 = 0x1000
)

// Caps2 bits (DDS_HEADER.dwCaps2): cubemap and volume.
const (
	Caps2Cubemap   uint32 = 0x200
	Caps2PositiveX uint32 = 0x400
	Caps2NegativeX uint32 = 0x800
	Caps2PositiveY uint32 = 0x1000
	Caps2NegativeY uint32 = 0x2000
	Caps2PositiveZ uint32 = 0x4000
	Caps2NegativeZ uint32 = 0x8000
	Caps2Volume    uint32 = 0x200000

	Caps2AllFaces = Caps2PositiveX | Caps2NegativeX | Caps2PositiveY | Caps2NegativeY | Caps2PositiveZ | Caps2NegativeZ
)

// DXT10 resourceDimension values.
const (
	ResourceDimensionTexture1D uint32 = 2
	ResourceDimensionTexture2D uint32 = 3
	ResourceDimensionTexture3D uint32 = 4
)

// DXT10 miscFlag bits.
const MiscFlagTextureCube uint32 = 0x4

// PixelFormat mirrors the 32-byte DDS_PIXELFORMAT struct.
type PixelFormat struct {
	Size        uint32
	Flags       uint32
	FourCC      uint32
	RGBBitCount uint32
	RBitMask    uint32
	GBitMask    uint32
	BBitMask    uint32
	ABitMask    uint32
}

func (pf *PixelFormat) decode(b []byte) {
	pf.Size = binary.LittleEndian.Uint32(b[0:4])
	pf.Flags = binary.LittleEndian.Uint32(b[4:8])
	pf.FourCC = binary.LittleEndian.Uint32(b[8:12])
	pf.RGBBitCount = binary.LittleEndian.Uint32(b[12:16])
	pf.RBitMask = binary.LittleEndian.Uint32(b[16:20])
	pf.GBitMask = binary.LittleEndian.Uint32(b[20:24])
	pf.BBitMask = binary.LittleEndian.Uint32(b[24:28])
	pf.ABitMask = binary.LittleEndian.Uint32(b[28:32])
}

func (pf *PixelFormat) encode(b []byte) {
	binary.LittleEndian.PutUint32(b[0:4], pf.Size)
	binary.LittleEndian.PutUint32(b[4:8], pf.Flags)
	binary.LittleEndian.PutUint32(b[8:12], pf.FourCC)
	binary.LittleEndian.PutUint32(b[12:16], pf.RGBBitCount)
	binary.LittleEndian.PutUint32(b[16:20], pf.RBitMask)
	binary.LittleEndian.PutUint32(b[20:24], pf.GBitMask)
	binary.LittleEndian.PutUint32(b[24:28], pf.BBitMask)
	binary.LittleEndian.PutUint32(b[28:32], pf.ABitMask)
}

// Header mirrors the 124-byte DDS_HEADER struct (magic not included).
type Header struct {
	Size              uint32
	Flags             uint32
	Height            uint32
	Width             uint32
	PitchOrLinearSize uint32
	Depth             uint32
	MipMapCount       uint32
	Reserved1         [11]uint32
	PixelFormat       PixelFormat
	Caps              uint32
	Caps2             uint32
	Caps3             uint32
	Caps4             uint32
	Reserved2         uint32
}

func (h *Header) decode(b []byte) {
	h.Size = binary.LittleEndian.Uint32(b[0:4])
	h.Flags = binary.LittleEndian.Uint32(b[4:8])
	h.Height = binary.LittleEndian.Uint32(b[8:12])
	h.Width = binary.LittleEndian.Uint32(b[12:16])
	h.PitchOrLinearSize = binary.LittleEndian.Uint32(b[16:20])
	h.Depth = binary.LittleEndian.Uint32(b[20:24])
	h.MipMapCount = binary.LittleEndian.Uint32(b[24:28])
	for i := 0; i < 11; i++ {
		h.Reserved1[i] = binary.LittleEndian.Uint32(b[28+i*4 : 32+i*4])
	}
	h.PixelFormat.decode(b[72:104])
	h.Caps = binary.LittleEndian.Uint32(b[104:108])
	h.Caps2 = binary.LittleEndian.Uint32(b[108:112])
	h.Caps3 = binary.LittleEndian.Uint32(b[112:116])
	h.Caps4 = binary.LittleEndian.Uint32(b[116:120])
	h.Reserved2 = binary.LittleEndian.Uint32(b[120:124])
}

func (h *Header) encode(b []byte) {
	binary.LittleEndian.PutUint32(b[0:4], h.Size)
	binary.LittleEndian.PutUint32(b[4:8], h.Flags)
	binary.LittleEndian.PutUint32(b[8:12], h.Height)
	binary.LittleEndian.PutUint32(b[12:16], h.Width)
	binary.LittleEndian.PutUint32(b[16:20], h.PitchOrLinearSize)
	binary.LittleEndian.PutUint32(b[20:24], h.Depth)
	binary.LittleEndian.PutUint32(b[24:28], h.MipMapCount)
	for i := 0; i < 11; i++ {
		binary.LittleEndian.PutUint32(b[28+i*4:32+i*4], h.Reserved1[i])
	}
	h.PixelFormat.encode(b[72:104])
	binary.LittleEndian.PutUint32(b[104:108], h.Caps)
	binary.LittleEndian.PutUint32(b[108:112], h.Caps2)
	binary.LittleEndian.PutUint32(b[112:116], h.Caps3)
	binary.LittleEndian.PutUint32(b[116:120], h.Caps4)
	binary.LittleEndian.PutUint32(b[120:124], h.Reserved2)
}

// HeaderDXT10 mirrors the 20-byte DDS_HEADER_DXT10 extension.
type HeaderDXT10 struct {
	DXGIFormat        uint32
	ResourceDimension uint32
	MiscFlag          uint32
	ArraySize         uint32
	MiscFlags2        uint32
}

func (h *HeaderDXT10) decode(b []byte) {
	h.DXGIFormat = binary.LittleEndian.Uint32(b[0:4])
	h.ResourceDimension = binary.LittleEndian.Uint32(b[4:8])
	h.MiscFlag = binary.LittleEndian.Uint32(b[8:12])
	h.ArraySize = binary.LittleEndian.Uint32(b[12:16])
	h.MiscFlags2 = binary.LittleEndian.Uint32(b[16:20])
}

func (h *HeaderDXT10) encode(b []byte) {
	binary.LittleEndian.PutUint32(b[0:4], h.DXGIFormat)
	binary.LittleEndian.PutUint32(b[4:8], h.ResourceDimension)
	binary.LittleEndian.PutUint32(b[8:12], h.MiscFlag)
	binary.LittleEndian.PutUint32(b[12:16], h.ArraySize)
	binary.LittleEndian.PutUint32(b[16:20], h.MiscFlags2)
}

// ConvFlags records the conversion this decode requires the load pipeline
// to apply to each scanline.
type ConvFlags uint32

const (
	ConvExpand         ConvFlags = 1 << 0
	ConvSwizzle        ConvFlags = 1 << 1
	ConvNoAlpha        ConvFlags = 1 << 2
	ConvPremultiplied  ConvFlags = 1 << 3
	ConvL8             ConvFlags = 1 << 4
	ConvA8L8           ConvFlags = 1 << 5
	ConvL16            ConvFlags = 1 << 6
	ConvR8G8B8         ConvFlags = 1 << 7
	ConvR3G3B2         ConvFlags = 1 << 8
	ConvA8R3G3B2       ConvFlags = 1 << 9
	ConvA4L4           ConvFlags = 1 << 10
	ConvPal8           ConvFlags = 1 << 11
	ConvA8Pal8         ConvFlags = 1 << 12
	ConvL6V5U5         ConvFlags = 1 << 13
	ConvX8L8V8U8       ConvFlags = 1 << 14
	ConvA2W10V10U10    ConvFlags = 1 << 15
)

// Result bundles the decoded description, conversion flags, and payload
// offset decode_dds_header produces.
type Result struct {
	Description  layout.TextureDescription
	ConvFlags    ConvFlags
	PayloadOffset int
	PixelFormat  *PixelFormat // only set on the legacy (non-DX10) path

	// SourceFormat is the on-disk pixel format before any ConvExpand
	// rewrite to Description.Format; it is only meaningful when ConvFlags
	// has ConvExpand set and tells the load pipeline which legacy packed
	// encoding the payload is actually stored in.
	SourceFormat pixfmt.Format
}

func errorf(format string, args ...any) error {
	return fmt.Errorf("dds: "+format, args...)
}
