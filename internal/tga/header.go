// Package tga implements the TGA (Truevision TARGA) container codec:
// decoding paletted, truecolor, grayscale, and RLE-compressed images
// including the 2.0 footer/extension area, and encoding a texture
// description's single image back into a TGA 2.0 file.
package tga

import (
	"encoding/binary"
	"fmt"
)

// HeaderSize is the fixed size of the 18-byte TGA header.
const HeaderSize = 18

// FooterSize is the fixed size of the TGA 2.0 footer.
const FooterSize = 26

// ExtensionSize is the fixed size of the TGA 2.0 extension area.
const ExtensionSize = 495

// signature is the 18-byte footer string (including the trailing NUL)
// identifying a TGA 2.0 file.
var signature = [18]byte{'T', 'R', 'U', 'E', 'V', 'I', 'S', 'I', 'O', 'N', '-', 'X', 'F', 'I', 'L', 'E', '.', 0}

// ImageType enumerates the TGA image_type byte.
type ImageType uint8

const (
	ImageNone            ImageType = 0
	ImageColorMapped     ImageType = 1
	ImageTrueColor       ImageType = 2
	ImageBlackAndWhite   ImageType = 3
	ImageColorMappedRLE  ImageType = 9
	ImageTrueColorRLE    ImageType = 10
	ImageBlackAndWhiteRLE ImageType = 11
)

// Descriptor flag bits (Header.Descriptor).
const (
	DescriptorInvertX          uint8 = 0x10
	DescriptorInvertY          uint8 = 0x20
	DescriptorInterleaved2Way  uint8 = 0x40
	DescriptorInterleaved4Way  uint8 = 0x80
)

// AttributesType enumerates the 2.0 extension area's bAttributesType byte.
type AttributesType uint8

const (
	AttributeNone          AttributesType = 0
	AttributeIgnored        AttributesType = 1
	AttributeUndefined     AttributesType = 2
	AttributeAlpha          AttributesType = 3
	AttributePremultiplied AttributesType = 4
)

// Header mirrors the 18-byte TGA_HEADER struct.
type Header struct {
	IDLength         uint8
	ColorMapType     uint8
	ImageType        ImageType
	ColorMapFirst    uint16
	ColorMapLength   uint16
	ColorMapEntrySize uint8
	XOrigin          uint16
	YOrigin          uint16
	Width            uint16
	Height           uint16
	BitsPerPixel     uint8
	Descriptor       uint8
}

func (h *Header) decode(b []byte) {
	h.IDLength = b[0]
	h.ColorMapType = b[1]
	h.ImageType = ImageType(b[2])
	h.ColorMapFirst = binary.LittleEndian.Uint16(b[3:5])
	h.ColorMapLength = binary.LittleEndian.Uint16(b[5:7])
	h.ColorMapEntrySize = b[7]
	h.XOrigin = binary.LittleEndian.Uint16(b[8:10])
	h.YOrigin = binary.LittleEndian.Uint16(b[10:12])
	h.Width = binary.LittleEndian.Uint16(b[12:14])
	h.Height = binary.LittleEndian.Uint16(b[14:16])
	h.BitsPerPixel = b[16]
	h.Descriptor = b[17]
}

func (h *Header) encode(b []byte) {
	b[0] = h.IDLength
	b[1] = h.ColorMapType
	b[2] = byte(h.ImageType)
	binary.LittleEndian.PutUint16(b[3:5], h.ColorMapFirst)
	binary.LittleEndian.PutUint16(b[5:7], h.ColorMapLength)
	b[7] = h.ColorMapEntrySize
	binary.LittleEndian.PutUint16(b[8:10], h.XOrigin)
	binary.LittleEndian.PutUint16(b[10:12], h.YOrigin)
	binary.LittleEndian.PutUint16(b[12:14], h.Width)
	binary.LittleEndian.PutUint16(b[14:16], h.Height)
	b[16] = h.BitsPerPixel
	b[17] = h.Descriptor
}

// Footer mirrors the 26-byte TGA 2.0 footer.
type Footer struct {
	ExtensionOffset uint32
	DeveloperOffset uint32
}

func (f *Footer) decode(b []byte) bool {
	f.ExtensionOffset = binary.LittleEndian.Uint32(b[0:4])
	f.DeveloperOffset = binary.LittleEndian.Uint32(b[4:8])
	return [18]byte(b[8:26]) == signature
}

func (f *Footer) encode(b []byte) {
	binary.LittleEndian.PutUint32(b[0:4], f.ExtensionOffset)
	binary.LittleEndian.PutUint32(b[4:8], f.DeveloperOffset)
	copy(b[8:26], signature[:])
}

// Extension mirrors the fields of the 495-byte TGA 2.0 extension area this
// codec reads and writes; the author/job/key-color/postage-stamp fields the
// format reserves are preserved as zero but not individually modeled.
type Extension struct {
	SoftwareID       string
	VersionNumber    uint16
	VersionLetter    byte
	StampMonth       uint16
	StampDay         uint16
	StampYear        uint16
	StampHour        uint16
	StampMinute      uint16
	StampSecond      uint16
	GammaNumerator   uint16
	GammaDenominator uint16
	AttributesType   AttributesType
}

// Byte offsets of the fields Extension models within the 495-byte area, per
// the TGA 2.0 specification's fixed layout.
const (
	extOffSize             = 0
	extOffAuthorName       = 2
	extOffAuthorComment    = 43
	extOffStampMonth       = 367
	extOffJobName          = 379
	extOffJobTime          = 420
	extOffSoftwareID       = 426
	extOffSoftwareVersion  = 467
	extOffKeyColor         = 470
	extOffPixelAspectRatio = 474
	extOffGamma            = 478
	extOffColorCorrection  = 482
	extOffPostageStamp     = 486
	extOffScanLine         = 490
	extOffAttributesType   = 494
)

func (e *Extension) decode(b []byte) {
	n := binary.LittleEndian.Uint16(b[extOffSize : extOffSize+2])
	if n != ExtensionSize {
		*e = Extension{}
		return
	}
	e.SoftwareID = cString(b[extOffSoftwareID : extOffSoftwareID+41])
	e.VersionNumber = binary.LittleEndian.Uint16(b[extOffSoftwareVersion : extOffSoftwareVersion+2])
	e.VersionLetter = b[extOffSoftwareVersion+2]
	e.StampMonth = binary.LittleEndian.Uint16(b[extOffStampMonth+0 : extOffStampMonth+2])
	e.StampDay = binary.LittleEndian.Uint16(b[extOffStampMonth+2 : extOffStampMonth+4])
	e.StampYear = binary.LittleEndian.Uint16(b[extOffStampMonth+4 : extOffStampMonth+6])
	e.StampHour = binary.LittleEndian.Uint16(b[extOffStampMonth+6 : extOffStampMonth+8])
	e.StampMinute = binary.LittleEndian.Uint16(b[extOffStampMonth+8 : extOffStampMonth+10])
	e.StampSecond = binary.LittleEndian.Uint16(b[extOffStampMonth+10 : extOffStampMonth+12])
	e.GammaNumerator = binary.LittleEndian.Uint16(b[extOffGamma : extOffGamma+2])
	e.GammaDenominator = binary.LittleEndian.Uint16(b[extOffGamma+2 : extOffGamma+4])
	e.AttributesType = AttributesType(b[extOffAttributesType])
}

func (e *Extension) encode(b []byte) {
	binary.LittleEndian.PutUint16(b[extOffSize:extOffSize+2], ExtensionSize)
	copy(b[extOffSoftwareID:extOffSoftwareID+41], e.SoftwareID)
	binary.LittleEndian.PutUint16(b[extOffSoftwareVersion:extOffSoftwareVersion+2], e.VersionNumber)
	b[extOffSoftwareVersion+2] = e.VersionLetter
	binary.LittleEndian.PutUint16(b[extOffStampMonth+0:extOffStampMonth+2], e.StampMonth)
	binary.LittleEndian.PutUint16(b[extOffStampMonth+2:extOffStampMonth+4], e.StampDay)
	binary.LittleEndian.PutUint16(b[extOffStampMonth+4:extOffStampMonth+6], e.StampYear)
	binary.LittleEndian.PutUint16(b[extOffStampMonth+6:extOffStampMonth+8], e.StampHour)
	binary.LittleEndian.PutUint16(b[extOffStampMonth+8:extOffStampMonth+10], e.StampMinute)
	binary.LittleEndian.PutUint16(b[extOffStampMonth+10:extOffStampMonth+12], e.StampSecond)
	binary.LittleEndian.PutUint16(b[extOffGamma:extOffGamma+2], e.GammaNumerator)
	binary.LittleEndian.PutUint16(b[extOffGamma+2:extOffGamma+4], e.GammaDenominator)
	b[extOffAttributesType] = byte(e.AttributesType)
}

func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

func errorf(format string, args ...any) error {
	return fmt.Errorf("tga: "+format, args...)
}
