package imagebuf

import (
	"bytes"
	"errors"
	"testing"

	"github.com/echotex/texpipe/internal/layout"
	"github.com/echotex/texpipe/internal/pixfmt"
)

func TestBlobResizeCopiesMin(t *testing.T) {
	b := NewBlob(4)
	copy(b.Bytes(), []byte{1, 2, 3, 4})
	b.Resize(8)
	if b.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", b.Len())
	}
	want := []byte{1, 2, 3, 4, 0, 0, 0, 0}
	if !bytes.Equal(b.Bytes(), want) {
		t.Errorf("Bytes() = %v, want %v", b.Bytes(), want)
	}
	b.Resize(2)
	if !bytes.Equal(b.Bytes(), []byte{1, 2}) {
		t.Errorf("shrink Resize: Bytes() = %v", b.Bytes())
	}
}

func TestBlobTrim(t *testing.T) {
	b := NewBlob(8)
	if err := b.Trim(4); err != nil {
		t.Fatal(err)
	}
	if b.Len() != 4 {
		t.Errorf("Len() = %d, want 4", b.Len())
	}
	if err := b.Trim(5); !errors.Is(err, ErrTrimTooLarge) {
		t.Errorf("expected ErrTrimTooLarge, got %v", err)
	}
	empty := NewBlob(0)
	if err := empty.Trim(0); !errors.Is(err, ErrTrimEmpty) {
		t.Errorf("expected ErrTrimEmpty, got %v", err)
	}
}

func TestBlobWriteGrows(t *testing.T) {
	b := NewBlob(0)
	n, err := b.Write([]byte("hello"))
	if err != nil || n != 5 {
		t.Fatalf("Write = (%d,%v)", n, err)
	}
	if !bytes.Equal(b.Bytes(), []byte("hello")) {
		t.Errorf("Bytes() = %q", b.Bytes())
	}
}

func TestBlobReadFrom(t *testing.T) {
	b := NewBlob(0)
	n, err := b.ReadFrom(bytes.NewReader([]byte("payload")))
	if err != nil || n != 7 {
		t.Fatalf("ReadFrom = (%d,%v)", n, err)
	}
	if !bytes.Equal(b.Bytes(), []byte("payload")) {
		t.Errorf("Bytes() = %q", b.Bytes())
	}
}

func TestNewImageArrayZeroInitialized(t *testing.T) {
	desc := layout.TextureDescription{
		Width: 8, Height: 8, Depth: 1, ArraySize: 1, MipLevels: 1,
		Format: pixfmt.FormatR8G8B8A8Unorm, Dimension: layout.Dimension2D,
	}
	arr, err := NewImageArray(desc, pixfmt.CPFlagsNone)
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range arr.Bytes() {
		if b != 0 {
			t.Fatal("ImageArray buffer not zero-initialized")
		}
	}
	if len(arr.Subresources()) != 1 {
		t.Fatalf("len(Subresources()) = %d, want 1", len(arr.Subresources()))
	}
}

func TestImageArraySubresourceLookup(t *testing.T) {
	desc := layout.TextureDescription{
		Width: 8, Height: 8, Depth: 1, ArraySize: 2, MipLevels: 2,
		Format: pixfmt.FormatBC1Unorm, Dimension: layout.Dimension2D,
	}
	arr, err := NewImageArray(desc, pixfmt.CPFlagsNone)
	if err != nil {
		t.Fatal(err)
	}
	sub, err := arr.Subresource(1, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if sub.Width != 4 || sub.Height != 4 {
		t.Errorf("mip1 extents = %dx%d, want 4x4", sub.Width, sub.Height)
	}
	if _, err := arr.Subresource(5, 0, 0); err == nil {
		t.Error("expected error for out-of-range mip")
	}
}

func TestImageArrayInvalidDescriptionFails(t *testing.T) {
	desc := layout.TextureDescription{
		Width: 8, Height: 2, Depth: 1, ArraySize: 1, MipLevels: 1,
		Format: pixfmt.FormatR8G8B8A8Unorm, Dimension: layout.Dimension1D,
	}
	if _, err := NewImageArray(desc, pixfmt.CPFlagsNone); err == nil {
		t.Error("expected validation failure for 1D texture with height != 1")
	}
}
