package scanline

import (
	"bytes"
	"testing"
)

func TestCopyScanlinePlain(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5, 6}
	dst := make([]byte, 4)
	CopyScanline(dst, src, FormatR8G8B8A8Unorm, 0)
	if !bytes.Equal(dst, []byte{1, 2, 3, 4}) {
		t.Errorf("dst = %v", dst)
	}
}

func TestCopyScanlineSetAlphaInPlace(t *testing.T) {
	buf := []byte{10, 20, 30, 0, 40, 50, 60, 0}
	CopyScanline(buf, buf, FormatR8G8B8A8Unorm, SetAlpha)
	want := []byte{10, 20, 30, 0xFF, 40, 50, 60, 0xFF}
	if !bytes.Equal(buf, want) {
		t.Errorf("buf = %v, want %v", buf, want)
	}
}

func TestCopyScanlineSetAlphaOnFreshCopy(t *testing.T) {
	src := []byte{10, 20, 30, 0}
	dst := make([]byte, 4)
	CopyScanline(dst, src, FormatR8G8B8A8Unorm, SetAlpha)
	want := []byte{10, 20, 30, 0xFF}
	if !bytes.Equal(dst, want) {
		t.Errorf("dst = %v, want %v", dst, want)
	}
	// src must be untouched.
	if src[3] != 0 {
		t.Errorf("src mutated: %v", src)
	}
}

func TestSwizzleScanlineRBSwap(t *testing.T) {
	src := []byte{1, 2, 3, 4}
	dst := make([]byte, 4)
	SwizzleScanline(dst, src, 4)
	if !bytes.Equal(dst, []byte{3, 2, 1, 4}) {
		t.Errorf("dst = %v", dst)
	}
}

func TestSwizzleScanlineInPlace(t *testing.T) {
	buf := []byte{1, 2, 3, 4}
	SwizzleScanline(buf, buf, 4)
	if !bytes.Equal(buf, []byte{3, 2, 1, 4}) {
		t.Errorf("buf = %v", buf)
	}
}

func TestExpandScanline565(t *testing.T) {
	// 0xFFFF = white at 5-6-5.
	src := []byte{0xFF, 0xFF}
	dst := make([]byte, 4)
	if !ExpandScanline(dst, src, pixfmtB5G6R5, pixfmtRGBA8) {
		t.Fatal("ExpandScanline returned false for a known pair")
	}
	if !bytes.Equal(dst, []byte{0xFF, 0xFF, 0xFF, 0xFF}) {
		t.Errorf("dst = %v, want all-0xFF", dst)
	}
}

func TestExpandScanlineUnknownPairFails(t *testing.T) {
	if ExpandScanline(make([]byte, 4), []byte{0, 0}, FormatR8G8B8A8Unorm, FormatR8G8B8A8Unorm) {
		t.Error("expected false for an unsupported pair")
	}
}

func TestLegacyExpandScanlineR8G8B8(t *testing.T) {
	src := []byte{0x10, 0x20, 0x30} // B,G,R on disk
	dst := make([]byte, 4)
	if !LegacyExpandScanline(dst, src, LegacyR8G8B8, nil) {
		t.Fatal("LegacyExpandScanline returned false")
	}
	want := []byte{0x30, 0x20, 0x10, 0xFF}
	if !bytes.Equal(dst, want) {
		t.Errorf("dst = %v, want %v", dst, want)
	}
}

func TestLegacyExpandScanlineP8Palette(t *testing.T) {
	palette := make([]byte, 256*4)
	copy(palette[5*4:5*4+4], []byte{9, 8, 7, 6})
	src := []byte{5}
	dst := make([]byte, 4)
	if !LegacyExpandScanline(dst, src, LegacyP8, palette) {
		t.Fatal("LegacyExpandScanline(P8) returned false")
	}
	if !bytes.Equal(dst, []byte{9, 8, 7, 6}) {
		t.Errorf("dst = %v", dst)
	}
}

func TestLegacyExpandScanlineP8MissingPaletteFails(t *testing.T) {
	if LegacyExpandScanline(make([]byte, 4), []byte{0}, LegacyP8, nil) {
		t.Error("expected false with a nil palette")
	}
}

func TestLegacyConvertScanlineX8L8V8U8(t *testing.T) {
	// U=0x80 (signed minimum, -128), V=0x80 (signed minimum, -128), L=0x7F.
	src := []byte{0x80, 0x80, 0x7F, 0}
	dst := make([]byte, 4)
	if !LegacyConvertScanline(dst, src, LegacyX8L8V8U8) {
		t.Fatal("LegacyConvertScanline returned false")
	}
	want := []byte{0x00, 0x00, 0x7F, 0xFF}
	if !bytes.Equal(dst, want) {
		t.Errorf("dst = %v, want %v", dst, want)
	}
}
