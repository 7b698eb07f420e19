package layout

import (
	"errors"
	"testing"

	"github.com/echotex/texpipe/internal/pixfmt"
)

func TestFullMipChain(t *testing.T) {
	cases := []struct {
		w, h, d uint32
		dim     Dimension
		want    uint32
	}{
		{1, 1, 1, Dimension2D, 1},
		{256, 256, 1, Dimension2D, 9},
		{7, 7, 1, Dimension2D, 3},
		{16, 4, 8, Dimension3D, 5},
	}
	for _, c := range cases {
		if got := FullMipChain(c.w, c.h, c.d, c.dim); got != c.want {
			t.Errorf("FullMipChain(%d,%d,%d) = %d, want %d", c.w, c.h, c.d, got, c.want)
		}
	}
}

func TestResolveMipLevels(t *testing.T) {
	got, err := ResolveMipLevels(0, 256, 256, 1, Dimension2D)
	if err != nil || got != 9 {
		t.Fatalf("ResolveMipLevels(0,...) = (%d,%v), want (9,nil)", got, err)
	}
	got, err = ResolveMipLevels(1, 256, 256, 1, Dimension2D)
	if err != nil || got != 1 {
		t.Fatalf("ResolveMipLevels(1,...) = (%d,%v), want (1,nil)", got, err)
	}
	if _, err := ResolveMipLevels(20, 256, 256, 1, Dimension2D); !errors.Is(err, ErrMipLevelsTooLarge) {
		t.Fatalf("expected ErrMipLevelsTooLarge, got %v", err)
	}
}

func TestValidateDimensionInvariants(t *testing.T) {
	d := &TextureDescription{Width: 4, Height: 4, Depth: 1, ArraySize: 1, MipLevels: 1, Format: pixfmt.FormatR8G8B8A8Unorm, Dimension: Dimension1D}
	if err := d.Validate(); err == nil {
		t.Error("1D with height != 1 should fail validation")
	}

	d = &TextureDescription{Width: 4, Height: 1, Depth: 1, ArraySize: 1, MipLevels: 1, Format: pixfmt.FormatR8G8B8A8Unorm, Dimension: Dimension1D}
	if err := d.Validate(); err != nil {
		t.Errorf("valid 1D description failed validation: %v", err)
	}

	d = &TextureDescription{Width: 4, Height: 4, Depth: 1, ArraySize: 5, MipLevels: 1, Format: pixfmt.FormatR8G8B8A8Unorm, Dimension: Dimension2D, MiscFlags: MiscFlagCubemap}
	if err := d.Validate(); err == nil {
		t.Error("cubemap with array_size not a multiple of 6 should fail")
	}

	d = &TextureDescription{Width: 4, Height: 4, Depth: 2, ArraySize: 2, MipLevels: 1, Format: pixfmt.FormatR8G8B8A8Unorm, Dimension: Dimension3D}
	if err := d.Validate(); err == nil {
		t.Error("3D texture with array_size != 1 should fail")
	}
}

func TestAlphaModeRoundTrip(t *testing.T) {
	d := &TextureDescription{}
	d.SetAlphaMode(AlphaModePremultiplied)
	if got := d.AlphaMode(); got != AlphaModePremultiplied {
		t.Errorf("AlphaMode() = %v, want premultiplied", got)
	}
}

func TestDetermineImageArray2D(t *testing.T) {
	d := &TextureDescription{Width: 4, Height: 4, Depth: 1, ArraySize: 1, MipLevels: 3, Format: pixfmt.FormatBC1Unorm, Dimension: Dimension2D}
	n, total, err := DetermineImageArray(d, pixfmt.CPFlagsNone)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("n = %d, want 3", n)
	}
	// 4x4 -> 8, 2x2 -> 8, 1x1 -> 8: all BC1 mips clamp to a minimum 1 block.
	if total != 24 {
		t.Errorf("total = %d, want 24", total)
	}
}

func TestSetupImageArrayTraversalMatchesComputeIndex(t *testing.T) {
	d := &TextureDescription{Width: 8, Height: 8, Depth: 1, ArraySize: 2, MipLevels: 4, Format: pixfmt.FormatR8G8B8A8Unorm, Dimension: Dimension2D}
	_, total, err := DetermineImageArray(d, pixfmt.CPFlagsNone)
	if err != nil {
		t.Fatal(err)
	}
	subs, err := SetupImageArray(total, d, pixfmt.CPFlagsNone)
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range subs {
		idx, err := ComputeIndex(d, s.Mip, s.Item, s.Slice)
		if err != nil {
			t.Fatalf("ComputeIndex(%d,%d,%d): %v", s.Mip, s.Item, s.Slice, err)
		}
		if int(idx) != i {
			t.Errorf("subresource %d: ComputeIndex = %d", i, idx)
		}
	}
}

func TestSetupImageArrayTooSmallFails(t *testing.T) {
	d := &TextureDescription{Width: 8, Height: 8, Depth: 1, ArraySize: 1, MipLevels: 1, Format: pixfmt.FormatR8G8B8A8Unorm, Dimension: Dimension2D}
	if _, err := SetupImageArray(4, d, pixfmt.CPFlagsNone); err == nil {
		t.Error("expected failure for undersized buffer")
	}
}

func TestComputeIndex3DContiguousPerMip(t *testing.T) {
	d := &TextureDescription{Width: 4, Height: 4, Depth: 4, ArraySize: 1, MipLevels: 3, Format: pixfmt.FormatR8G8B8A8Unorm, Dimension: Dimension3D}
	// mip0 has 4 slices (indices 0-3), mip1 has 2 slices (4-5), mip2 has 1 (6).
	idx, err := ComputeIndex(d, 1, 0, 1)
	if err != nil || idx != 5 {
		t.Errorf("ComputeIndex(mip1,slice1) = (%d,%v), want (5,nil)", idx, err)
	}
	idx, err = ComputeIndex(d, 2, 0, 0)
	if err != nil || idx != 6 {
		t.Errorf("ComputeIndex(mip2,slice0) = (%d,%v), want (6,nil)", idx, err)
	}
}

func TestComputeIndexOutOfRange(t *testing.T) {
	d := &TextureDescription{Width: 4, Height: 4, Depth: 1, ArraySize: 1, MipLevels: 2, Format: pixfmt.FormatR8G8B8A8Unorm, Dimension: Dimension2D}
	if _, err := ComputeIndex(d, 5, 0, 0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}
