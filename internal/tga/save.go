package tga

import (
	"time"

	"github.com/echotex/texpipe/internal/imagebuf"
	"github.com/echotex/texpipe/internal/layout"
	"github.com/echotex/texpipe/internal/pixfmt"
	"github.com/echotex/texpipe/internal/scanline"
)

// SaveOptions controls Save's extension-area and flag behavior.
type SaveOptions struct {
	Flags Flags
	// WriteExtension includes the 495-byte TGA 2.0 extension area recording
	// gamma and alpha-channel interpretation. The 2.0 footer is written
	// either way; without the extension its extension offset is zero.
	WriteExtension bool
	// Now supplies the extension area's timestamp fields; defaults to
	// time.Now when nil, and exists so callers can produce byte-identical
	// output in tests.
	Now func() time.Time
}

// softwareID identifies this encoder in the 2.0 extension area's
// szSoftwareId field.
const softwareID = "texpipe"

// softwareVersion is the extension area's wVersionNumber, in the format's
// usual hundredths-of-a-version encoding (100 == "1.00").
const softwareVersion = 100

// Save serializes an ImageArray into a complete TGA file: the 18-byte
// header, the pixel payload (scanline-converted per EncodeHeader's
// dispatch), the 2.0 extension area if requested, and the 2.0 footer.
func Save(img *imagebuf.ImageArray, opts SaveOptions) ([]byte, error) {
	desc := img.Description()
	hdr, conv, err := EncodeHeader(&desc, opts.Flags)
	if err != nil {
		return nil, err
	}

	rowPitch, slicePitch, err := pixfmt.ComputePitch(desc.Format, desc.Width, desc.Height, pixfmt.CPFlagsNone)
	if err != nil {
		return nil, err
	}

	size := uint64(HeaderSize) + slicePitch
	if opts.WriteExtension {
		size += ExtensionSize + FooterSize
	} else {
		size += FooterSize
	}

	out := make([]byte, int(size))
	hdr.encode(out[:HeaderSize])

	sub := &img.Subresources()[0]
	dstPixels := out[HeaderSize : HeaderSize+int(slicePitch)]
	writeScanlines(dstPixels, rowPitch, sub.Pixels, sub.RowPitch, desc.Height, conv)

	var extOffset uint32
	pos := HeaderSize + int(slicePitch)
	if opts.WriteExtension {
		ext := buildExtension(&desc, opts)
		extOffset = uint32(pos)
		ext.encode(out[pos : pos+ExtensionSize])
		pos += ExtensionSize
	}

	foot := Footer{ExtensionOffset: extOffset}
	foot.encode(out[pos : pos+FooterSize])

	return out, nil
}

// writeScanlines copies height rows from src (canonical format, srcPitch
// bytes/row) into dst (on-disk format, dstPitch bytes/row), applying the
// R/B swizzle EncodeHeader selected. Rows are written top-down in both
// buffers, matching the DescriptorInvertY bit Save always sets.
func writeScanlines(dst []byte, dstPitch uint64, src []byte, srcPitch uint64, height uint32, conv ConvFlags) {
	for y := uint32(0); y < height; y++ {
		dstRow := dst[uint64(y)*dstPitch : uint64(y+1)*dstPitch]
		srcRow := src[uint64(y)*srcPitch : uint64(y+1)*srcPitch]
		if conv&ConvSwizzle != 0 {
			scanline.SwizzleScanline(dstRow, srcRow, 4)
		} else {
			copy(dstRow, srcRow)
		}
	}
}

// buildExtension assembles the 2.0 extension area's gamma and
// alpha-interpretation fields for desc, per opts.Flags' linear/sRGB
// overrides and opts.Now's timestamp.
func buildExtension(desc *layout.TextureDescription, opts SaveOptions) Extension {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	t := now().UTC()

	ext := Extension{
		SoftwareID:    softwareID,
		VersionNumber: softwareVersion,
		VersionLetter: ' ',
		StampMonth:    uint16(t.Month()),
		StampDay:      uint16(t.Day()),
		StampYear:     uint16(t.Year()),
		StampHour:     uint16(t.Hour()),
		StampMinute:   uint16(t.Minute()),
		StampSecond:   uint16(t.Second()),
	}

	srgb := opts.Flags&FlagForceSRGB != 0 || pixfmt.IsSRGB(desc.Format)
	switch {
	case opts.Flags&FlagForceLinear != 0:
		ext.GammaNumerator, ext.GammaDenominator = 1, 1
	case srgb:
		ext.GammaNumerator, ext.GammaDenominator = 22, 10
	}

	switch desc.AlphaMode() {
	case layout.AlphaModeStraight:
		ext.AttributesType = AttributeAlpha
	case layout.AlphaModePremultiplied:
		ext.AttributesType = AttributePremultiplied
	case layout.AlphaModeOpaque:
		ext.AttributesType = AttributeIgnored
	case layout.AlphaModeCustom:
		ext.AttributesType = AttributeUndefined
	default:
		if pixfmt.HasAlpha(desc.Format) {
			ext.AttributesType = AttributeUndefined
		} else {
			ext.AttributesType = AttributeNone
		}
	}
	return ext
}
