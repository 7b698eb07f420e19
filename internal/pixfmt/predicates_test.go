package pixfmt

import "testing"

func TestIsCompressed(t *testing.T) {
	for _, f := range []Format{FormatBC1Unorm, FormatBC7UnormSrgb, FormatETC2RGBA8Unorm, ASTCFormat(3, 0), FormatPVRTC1_4BPPUnorm} {
		if !IsCompressed(f) {
			t.Errorf("IsCompressed(%v) = false, want true", f)
		}
	}
	for _, f := range []Format{FormatR8G8B8A8Unorm, FormatNV12, FormatUnknown} {
		if IsCompressed(f) {
			t.Errorf("IsCompressed(%v) = true, want false", f)
		}
	}
}

func TestIsPlanarD3D12(t *testing.T) {
	if IsPlanar(FormatD24UnormS8Uint, false) {
		t.Error("D24S8 should not be planar under D3D11 convention")
	}
	if !IsPlanar(FormatD24UnormS8Uint, true) {
		t.Error("D24S8 should be planar under D3D12 convention")
	}
	if !IsPlanar(FormatNV12, false) {
		t.Error("NV12 is always planar")
	}
}

func TestBitsPerPixelCompressedIsZero(t *testing.T) {
	if got := BitsPerPixel(FormatBC1Unorm); got != 0 {
		t.Errorf("BitsPerPixel(BC1) = %d, want 0", got)
	}
	if got := BitsPerPixel(FormatR8G8B8A8Unorm); got != 32 {
		t.Errorf("BitsPerPixel(RGBA8) = %d, want 32", got)
	}
}

func TestBitsPerColorSpecialValues(t *testing.T) {
	if got := BitsPerColor(FormatR9G9B9E5Sharedexp); got != 9 {
		t.Errorf("BitsPerColor(RGB9E5) = %d, want 9", got)
	}
	if got := BitsPerColor(FormatR11G11B10Float); got != 11 {
		t.Errorf("BitsPerColor(R11G11B10) = %d, want 11", got)
	}
}

func TestBytesPerBlock(t *testing.T) {
	cases := map[Format]uint32{
		FormatBC1Unorm:      8,
		FormatBC3Unorm:      16,
		FormatETC2RGB8Unorm: 8,
		FormatETC2RGBA8Unorm: 16,
		ASTCFormat(0, 0):    16,
		FormatR8G8B8A8Unorm: 0,
	}
	for f, want := range cases {
		if got := BytesPerBlock(f); got != want {
			t.Errorf("BytesPerBlock(%v) = %d, want %d", f, got, want)
		}
	}
}

func TestMakeSRGBRoundTrip(t *testing.T) {
	if got := MakeSRGB(FormatR8G8B8A8Unorm); got != FormatR8G8B8A8UnormSrgb {
		t.Errorf("MakeSRGB(RGBA8) = %v, want RGBA8_SRGB", got)
	}
	if got := MakeSRGB(FormatBC7Unorm); got != FormatBC7UnormSrgb {
		t.Errorf("MakeSRGB(BC7) = %v, want BC7_SRGB", got)
	}
	// No sRGB sibling: returned unchanged.
	if got := MakeSRGB(FormatR32G32B32A32Float); got != FormatR32G32B32A32Float {
		t.Errorf("MakeSRGB(RGBA32F) = %v, want unchanged", got)
	}
	if got := MakeSRGB(ASTCFormat(2, 0)); got != ASTCFormat(2, 1) {
		t.Errorf("MakeSRGB(ASTC UNORM) = %v, want SRGB variant", got)
	}
}

func TestHasAlpha(t *testing.T) {
	if !HasAlpha(FormatR8G8B8A8Unorm) {
		t.Error("RGBA8 should have alpha")
	}
	if HasAlpha(FormatR8G8B8G8Unorm) {
		t.Error("R8G8_B8G8 packed format has no dedicated alpha channel")
	}
}

func TestIsPalettizedAlwaysFalse(t *testing.T) {
	if IsPalettized(FormatR8G8B8A8Unorm) || IsPalettized(FormatBC1Unorm) {
		t.Error("IsPalettized must always be false")
	}
}
