package pixfmt

import "testing"

func TestComputePitchBC1(t *testing.T) {
	cases := []struct {
		w, h                 uint32
		wantRow, wantSlice uint64
	}{
		{1, 1, 8, 8},
		{4, 4, 8, 8},
		{7, 7, 16, 32},
		{8, 8, 16, 32},
	}
	for _, c := range cases {
		row, slice, err := ComputePitch(FormatBC1Unorm, c.w, c.h, CPFlagsNone)
		if err != nil {
			t.Fatalf("ComputePitch(%d,%d): %v", c.w, c.h, err)
		}
		if row != c.wantRow || slice != c.wantSlice {
			t.Errorf("ComputePitch(%d,%d) = (%d,%d), want (%d,%d)", c.w, c.h, row, slice, c.wantRow, c.wantSlice)
		}
	}
}

func TestComputePitchBC2DoubleWidthBlock(t *testing.T) {
	row, slice, err := ComputePitch(FormatBC2Unorm, 7, 7, CPFlagsNone)
	if err != nil {
		t.Fatal(err)
	}
	if row != 32 || slice != 64 {
		t.Errorf("got (%d,%d), want (32,64)", row, slice)
	}
}

func TestComputePitchBadDXTNTails(t *testing.T) {
	// A tail mip of 2x2 texels: plain right-shift floors to 0, clamped to 1.
	row, slice, err := ComputePitch(FormatBC1Unorm, 2, 2, CPFlagBadDXTNTails)
	if err != nil {
		t.Fatal(err)
	}
	if row != 8 || slice != 8 {
		t.Errorf("got (%d,%d), want (8,8)", row, slice)
	}
}

func TestComputePitchPlanarOddHeightFails(t *testing.T) {
	_, _, err := ComputePitch(FormatNV12, 16, 15, CPFlagsNone)
	if err == nil {
		t.Fatal("expected an error for odd planar height")
	}
}

func TestComputePitchPlanar420(t *testing.T) {
	row, slice, err := ComputePitch(FormatNV12, 16, 16, CPFlagsNone)
	if err != nil {
		t.Fatal(err)
	}
	if row != 18 {
		t.Errorf("row = %d, want 18", row)
	}
	if slice != row*(16+8) {
		t.Errorf("slice = %d, want %d", slice, row*(16+8))
	}
}

func TestComputePitchPacked422(t *testing.T) {
	row, slice, err := ComputePitch(FormatYUY2, 16, 4, CPFlagsNone)
	if err != nil {
		t.Fatal(err)
	}
	if row != 36 {
		t.Errorf("row = %d, want 36", row)
	}
	if slice != row*4 {
		t.Errorf("slice = %d, want %d", slice, row*4)
	}
}

func TestComputePitchUncompressedAlignment(t *testing.T) {
	row, _, err := ComputePitch(FormatR8G8B8A8Unorm, 3, 3, CPFlagParagraph)
	if err != nil {
		t.Fatal(err)
	}
	// 3 pixels * 32bpp = 96 bits = 12 bytes, aligned up to 16.
	if row != 16 {
		t.Errorf("row = %d, want 16", row)
	}
}

func TestComputePitchLimit4GB(t *testing.T) {
	// 2^30 pixels wide at 32bpp gives a row pitch of exactly 2^32, one past
	// the uint32 max ComputePitch clamps against.
	const hugeWidth = 1 << 30

	row, _, err := ComputePitch(FormatR8G8B8A8Unorm, hugeWidth, 1, CPFlagsNone)
	if err != nil {
		t.Fatalf("expected no error on a 64-bit host without CPFlagLimit4GB, got %v (row=%d)", err, row)
	}

	_, _, err = ComputePitch(FormatR8G8B8A8Unorm, hugeWidth, 1, CPFlagLimit4GB)
	if err == nil {
		t.Fatal("expected ErrArithmeticOverflow with CPFlagLimit4GB set")
	}
}

func TestComputeScanlines(t *testing.T) {
	if got := ComputeScanlines(FormatBC1Unorm, 7); got != 2 {
		t.Errorf("ComputeScanlines(BC1,7) = %d, want 2", got)
	}
	if got := ComputeScanlines(FormatNV12, 16); got != 24 {
		t.Errorf("ComputeScanlines(NV12,16) = %d, want 24", got)
	}
	if got := ComputeScanlines(FormatR8G8B8A8Unorm, 10); got != 10 {
		t.Errorf("ComputeScanlines(RGBA8,10) = %d, want 10", got)
	}
}
