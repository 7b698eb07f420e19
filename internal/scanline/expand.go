package scanline

import (
	"encoding/binary"

	"github.com/echotex/texpipe/internal/pixfmt"
)

// expandPair identifies a (source, destination) format pair ExpandScanline
// knows how to bit-replicate between.
type expandPair struct {
	in, out Format
}

// ExpandScanline rewrites src, packed in the in format, into dst as out,
// replicating bits the way the legacy 16-bit packed formats need (e.g.
// 5-6-5 -> 8-8-8-8). It returns false if the (in, out) pair isn't one of
// the known expansions.
func ExpandScanline(dst, src []byte, in, out Format) bool {
	switch (expandPair{in, out}) {
	case expandPair{pixfmtB5G6R5, pixfmtRGBA8}:
		return expand565(dst, src, false)
	case expandPair{pixfmtB5G5R5A1, pixfmtRGBA8}:
		return expand5551(dst, src, false)
	case expandPair{pixfmtB4G4R4A4, pixfmtRGBA8}:
		return expand4444(dst, src, false)
	}
	return false
}

func expand565(dst, src []byte, bgr bool) bool {
	n := len(src) / 2
	if len(dst) < n*4 {
		return false
	}
	for i := 0; i < n; i++ {
		v := binary.LittleEndian.Uint16(src[i*2 : i*2+2])
		r := uint8(uint32((v>>11)&0x1F) * 255 / 31)
		g := uint8(uint32((v>>5)&0x3F) * 255 / 63)
		b := uint8(uint32(v&0x1F) * 255 / 31)
		o := dst[i*4 : i*4+4]
		o[0], o[1], o[2], o[3] = r, g, b, 0xFF
	}
	return true
}

func expand5551(dst, src []byte, bgr bool) bool {
	n := len(src) / 2
	if len(dst) < n*4 {
		return false
	}
	for i := 0; i < n; i++ {
		v := binary.LittleEndian.Uint16(src[i*2 : i*2+2])
		r := uint8(uint32((v>>10)&0x1F) * 255 / 31)
		g := uint8(uint32((v>>5)&0x1F) * 255 / 31)
		b := uint8(uint32(v&0x1F) * 255 / 31)
		a := uint8(0)
		if v&0x8000 != 0 {
			a = 0xFF
		}
		o := dst[i*4 : i*4+4]
		o[0], o[1], o[2], o[3] = r, g, b, a
	}
	return true
}

func expand4444(dst, src []byte, bgr bool) bool {
	n := len(src) / 2
	if len(dst) < n*4 {
		return false
	}
	for i := 0; i < n; i++ {
		v := binary.LittleEndian.Uint16(src[i*2 : i*2+2])
		b := uint8(v&0xF) * 17
		g := uint8((v>>4)&0xF) * 17
		r := uint8((v>>8)&0xF) * 17
		a := uint8((v>>12)&0xF) * 17
		o := dst[i*4 : i*4+4]
		o[0], o[1], o[2], o[3] = r, g, b, a
	}
	return true
}

// LegacyExpandScanline expands a D3D9-era legacy format into RGBA8,
// applying palette lookup for paletted sources. palette is ignored for
// non-paletted formats and may be nil.
func LegacyExpandScanline(dst, src []byte, legacy LegacyFormat, palette []byte) bool {
	switch legacy {
	case LegacyR8G8B8:
		n := len(src) / 3
		if len(dst) < n*4 {
			return false
		}
		for i := 0; i < n; i++ {
			o := dst[i*4 : i*4+4]
			o[0], o[1], o[2], o[3] = src[i*3+2], src[i*3+1], src[i*3+0], 0xFF
		}
		return true

	case LegacyR3G3B2:
		n := len(src)
		if len(dst) < n*4 {
			return false
		}
		for i := 0; i < n; i++ {
			v := src[i]
			r := (v >> 5) & 0x7 * 255 / 7
			g := (v >> 2) & 0x7 * 255 / 7
			b := v & 0x3 * 255 / 3
			o := dst[i*4 : i*4+4]
			o[0], o[1], o[2], o[3] = b, g, r, 0xFF
		}
		return true

	case LegacyA8R3G3B2:
		n := len(src) / 2
		if len(dst) < n*4 {
			return false
		}
		for i := 0; i < n; i++ {
			v := binary.LittleEndian.Uint16(src[i*2 : i*2+2])
			r := uint8(v>>5) & 0x7 * 255 / 7
			g := uint8(v>>2) & 0x7 * 255 / 7
			b := uint8(v) & 0x3 * 255 / 3
			a := uint8(v >> 8)
			o := dst[i*4 : i*4+4]
			o[0], o[1], o[2], o[3] = b, g, r, a
		}
		return true

	case LegacyP8:
		n := len(src)
		if len(dst) < n*4 || len(palette) < 256*4 {
			return false
		}
		for i := 0; i < n; i++ {
			copy(dst[i*4:i*4+4], palette[int(src[i])*4:int(src[i])*4+4])
		}
		return true

	case LegacyA8P8:
		n := len(src) / 2
		if len(dst) < n*4 || len(palette) < 256*4 {
			return false
		}
		for i := 0; i < n; i++ {
			idx, a := src[i*2], src[i*2+1]
			o := dst[i*4 : i*4+4]
			copy(o, palette[int(idx)*4:int(idx)*4+4])
			o[3] = a
		}
		return true

	case LegacyA4L4:
		n := len(src)
		if len(dst) < n*4 {
			return false
		}
		for i := 0; i < n; i++ {
			v := src[i]
			l := (v & 0xF) * 17
			a := (v >> 4) * 17
			o := dst[i*4 : i*4+4]
			o[0], o[1], o[2], o[3] = l, l, l, a
		}
		return true

	case LegacyL8:
		n := len(src)
		if len(dst) < n*4 {
			return false
		}
		for i := 0; i < n; i++ {
			l := src[i]
			o := dst[i*4 : i*4+4]
			o[0], o[1], o[2], o[3] = l, l, l, 0xFF
		}
		return true

	case LegacyL16:
		n := len(src) / 2
		if len(dst) < n*8 {
			return false
		}
		for i := 0; i < n; i++ {
			l := binary.LittleEndian.Uint16(src[i*2 : i*2+2])
			o := dst[i*8 : i*8+8]
			binary.LittleEndian.PutUint16(o[0:2], l)
			binary.LittleEndian.PutUint16(o[2:4], l)
			binary.LittleEndian.PutUint16(o[4:6], l)
			binary.LittleEndian.PutUint16(o[6:8], 0xFFFF)
		}
		return true

	case LegacyA8L8:
		n := len(src) / 2
		if len(dst) < n*4 {
			return false
		}
		for i := 0; i < n; i++ {
			l, a := src[i*2], src[i*2+1]
			o := dst[i*4 : i*4+4]
			o[0], o[1], o[2], o[3] = l, l, l, a
		}
		return true

	case LegacyL6V5U5:
		n := len(src) / 2
		if len(dst) < n*4 {
			return false
		}
		for i := 0; i < n; i++ {
			v := binary.LittleEndian.Uint16(src[i*2 : i*2+2])
			l := uint8((v>>10)&0x3F) * 255 / 63
			u := uint8((v>>5)&0x1F) * 255 / 31
			vv := uint8(v&0x1F) * 255 / 31
			o := dst[i*4 : i*4+4]
			o[0], o[1], o[2], o[3] = vv, u, l, 0xFF
		}
		return true

	case LegacyB4G4R4A4:
		return expand4444(dst, src, true)
	}
	return false
}

// LegacyNarrowScanline is the save-side inverse of LegacyExpandScanline for
// formats whose legacy on-disk encoding is narrower than the canonical
// RGBA8 buffer. Only LegacyR8G8B8 is implemented: it's the only legacy
// format the save path ever selects, since every other legacy template
// EncodeHeader chooses is a zero-conversion, same-width match for the
// canonical buffer.
func LegacyNarrowScanline(dst, src []byte, legacy LegacyFormat) bool {
	switch legacy {
	case LegacyR8G8B8:
		n := len(dst) / 3
		if len(src) < n*4 {
			return false
		}
		for i := 0; i < n; i++ {
			o := dst[i*3 : i*3+3]
			s := src[i*4 : i*4+4]
			o[0], o[1], o[2] = s[2], s[1], s[0]
		}
		return true
	}
	return false
}

// LegacyFormat enumerates the D3D9-era formats LegacyExpandScanline knows.
type LegacyFormat int

const (
	LegacyR8G8B8 LegacyFormat = iota
	LegacyR3G3B2
	LegacyA8R3G3B2
	LegacyP8
	LegacyA8P8
	LegacyA4L4
	LegacyL8
	LegacyL16
	LegacyA8L8
	LegacyL6V5U5
	LegacyB4G4R4A4
)

// LegacyConvertScanline converts signed bump-map formats (X8L8V8U8,
// A2W10V10U10) into their unsigned modern equivalents by shifting each
// signed component's zero point from the middle of its range to the floor:
// unsigned = component XOR (1 << (bits-1)).
func LegacyConvertScanline(dst, src []byte, legacy LegacyBumpFormat) bool {
	switch legacy {
	case LegacyX8L8V8U8:
		n := len(src) / 4
		if len(dst) < n*4 {
			return false
		}
		for i := 0; i < n; i++ {
			u := src[i*4+0] ^ 0x80
			v := src[i*4+1] ^ 0x80
			l := src[i*4+2]
			o := dst[i*4 : i*4+4]
			o[0], o[1], o[2], o[3] = u, v, l, 0xFF
		}
		return true

	case LegacyA2W10V10U10:
		n := len(src) / 4
		if len(dst) < n*4 {
			return false
		}
		for i := 0; i < n; i++ {
			v := binary.LittleEndian.Uint32(src[i*4 : i*4+4])
			u := (v >> 0) & 0x3FF
			vv := (v >> 10) & 0x3FF
			w := (v >> 20) & 0x3FF
			a := (v >> 30) & 0x3
			u ^= 1 << 9
			vv ^= 1 << 9
			w ^= 1 << 9
			out := a<<30 | w<<20 | vv<<10 | u
			binary.LittleEndian.PutUint32(dst[i*4:i*4+4], out)
		}
		return true
	}
	return false
}

// LegacyBumpFormat enumerates the signed bump-map formats
// LegacyConvertScanline knows.
type LegacyBumpFormat int

const (
	LegacyX8L8V8U8 LegacyBumpFormat = iota
	LegacyA2W10V10U10
)

// Source-side format codes ExpandScanline dispatches on; all three name
// formats already present in the taxonomy.
const (
	pixfmtB5G6R5   = pixfmt.FormatB5G6R5Unorm
	pixfmtB5G5R5A1 = pixfmt.FormatB5G5R5A1Unorm
	pixfmtB4G4R4A4 = pixfmt.FormatB4G4R4A4Unorm
	pixfmtRGBA8    = FormatR8G8B8A8Unorm
)
