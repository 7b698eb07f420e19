package pixfmt

import "testing"

func TestIsValid(t *testing.T) {
	cases := []struct {
		f    Format
		want bool
	}{
		{FormatUnknown, false},
		{FormatR8G8B8A8Unorm, true},
		{FormatBC1Unorm, true},
		{FormatV408, true},
		{Format(120), false}, // gap between V408's siblings and P208
		{FormatETC2RGB8Unorm, true},
		{ASTCFormat(0, 0), true},
		{ASTCFormat(13, 2), true},
		{ASTCFormat(14, 0), false}, // one past the last footprint
	}
	for _, c := range cases {
		if got := IsValid(c.f); got != c.want {
			t.Errorf("IsValid(%v) = %v, want %v", c.f, got, c.want)
		}
	}
}

func TestFormatString(t *testing.T) {
	if got := FormatR8G8B8A8Unorm.String(); got != "R8G8B8A8_UNORM" {
		t.Errorf("String() = %q", got)
	}
	if got := ASTCFormat(0, 1).String(); got != "ASTC_4x4_SRGB" {
		t.Errorf("String() = %q", got)
	}
	if got := Format(999999).String(); got != "Format(999999)" {
		t.Errorf("String() = %q", got)
	}
}

func TestASTCFormatRoundTrip(t *testing.T) {
	for i := range ASTCFootprints {
		for variant := 0; variant < 3; variant++ {
			f := ASTCFormat(i, variant)
			idx, v, ok := astcIndex(f)
			if !ok || idx != i || v != variant {
				t.Errorf("astcIndex(ASTCFormat(%d,%d)) = (%d,%d,%v)", i, variant, idx, v, ok)
			}
		}
	}
}
