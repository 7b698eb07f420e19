// Package imagebuf implements the two owned byte-buffer types the rest of
// the library builds on: Blob, a resizable buffer for serialized file data,
// and ImageArray, the buffer plus subresource table backing a decoded
// texture.
package imagebuf

import (
	"errors"
	"fmt"
	"io"

	"github.com/echotex/texpipe/internal/layout"
	"github.com/echotex/texpipe/internal/pixfmt"
)

// Alignment is the allocation granularity the spec's buffer types round up
// to. Go's allocator doesn't expose a byte-address alignment guarantee
// without unsafe, so this package honors the "round the logical size up"
// half of the rule and leaves address alignment to the runtime.
const Alignment = 16

func alignUp(n uint64) uint64 {
	return (n + Alignment - 1) &^ (Alignment - 1)
}

// Blob is an owned buffer used as a sink or source for serialized file
// data. The zero value is an empty, usable Blob.
type Blob struct {
	data []byte
}

// NewBlob allocates a Blob whose logical length is n, rounded up to the
// allocation granularity; the backing storage is zeroed.
func NewBlob(n uint64) *Blob {
	return &Blob{data: make([]byte, alignUp(n))[:n]}
}

// Bytes returns the Blob's current contents. The returned slice aliases the
// Blob's storage and must not be retained past the next Resize/Trim.
func (b *Blob) Bytes() []byte {
	return b.data
}

// Len returns the Blob's current logical length.
func (b *Blob) Len() uint64 {
	return uint64(len(b.data))
}

// Resize reallocates the Blob to a new logical length, copying
// min(old, new) bytes from the previous contents and zeroing the rest.
func (b *Blob) Resize(n uint64) {
	next := make([]byte, alignUp(n))[:n]
	copy(next, b.data)
	b.data = next
}

// ErrTrimTooLarge is returned by Trim when asked to grow instead of shrink.
var ErrTrimTooLarge = errors.New("imagebuf: trim size exceeds current length")

// ErrTrimEmpty is returned by Trim when the Blob is already empty.
var ErrTrimEmpty = errors.New("imagebuf: cannot trim an empty blob")

// Trim reduces the Blob's logical length without reallocating. It fails if
// n exceeds the current length or the Blob is empty.
func (b *Blob) Trim(n uint64) error {
	if len(b.data) == 0 {
		return ErrTrimEmpty
	}
	if n > uint64(len(b.data)) {
		return fmt.Errorf("%w: %d > %d", ErrTrimTooLarge, n, len(b.data))
	}
	b.data = b.data[:n]
	return nil
}

// Write implements io.Writer by appending to the Blob, growing it as
// needed. It exists so codecs can build a Blob incrementally via bufio or
// io.Copy rather than precomputing an exact size up front.
func (b *Blob) Write(p []byte) (int, error) {
	old := uint64(len(b.data))
	b.Resize(old + uint64(len(p)))
	copy(b.data[old:], p)
	return len(p), nil
}

// ReadFrom implements io.ReaderFrom, reading r to completion into the Blob.
func (b *Blob) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	buf := make([]byte, 64*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			b.Write(buf[:n])
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// Subresource is one (mip, item, slice) tile, with a borrowed view into its
// owning ImageArray's pixel buffer.
type Subresource struct {
	layout.Subresource
	Pixels []byte
}

// ImageArray owns the full decoded pixel payload of a texture: a single
// contiguous, zero-initialized buffer, and the ordered Subresource table
// indexing into it. Subresource views borrow from the buffer and are only
// valid for the ImageArray's lifetime.
type ImageArray struct {
	desc  layout.TextureDescription
	data  []byte
	subs  []Subresource
}

// NewImageArray allocates and zero-initializes the pixel buffer for desc,
// and populates the subresource table over it.
func NewImageArray(desc layout.TextureDescription, flags pixfmt.CPFlags) (*ImageArray, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	_, total, err := layout.DetermineImageArray(&desc, flags)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, alignUp(total))[:total]
	rawSubs, err := layout.SetupImageArray(total, &desc, flags)
	if err != nil {
		return nil, err
	}
	subs := make([]Subresource, len(rawSubs))
	for i, s := range rawSubs {
		subs[i] = Subresource{
			Subresource: s,
			Pixels:      buf[s.Offset : s.Offset+s.SlicePitch],
		}
	}
	return &ImageArray{desc: desc, data: buf, subs: subs}, nil
}

// Description returns the texture description this ImageArray was built
// from.
func (a *ImageArray) Description() layout.TextureDescription {
	return a.desc
}

// SizeInBytes returns the total size of the owned pixel buffer.
func (a *ImageArray) SizeInBytes() uint64 {
	return uint64(len(a.data))
}

// Bytes returns the full pixel buffer backing every subresource.
func (a *ImageArray) Bytes() []byte {
	return a.data
}

// Subresources returns the subresource table in traversal order.
func (a *ImageArray) Subresources() []Subresource {
	return a.subs
}

// Subresource returns the tile at (mip, item, slice), or an error if the
// coordinate doesn't exist in this array.
func (a *ImageArray) Subresource(mip, item, slice uint32) (*Subresource, error) {
	idx, err := layout.ComputeIndex(&a.desc, mip, item, slice)
	if err != nil {
		return nil, err
	}
	if idx >= uint64(len(a.subs)) {
		return nil, layout.ErrOutOfRange
	}
	return &a.subs[idx], nil
}

// Release drops the ImageArray's ownership of its buffer and table,
// returning it to a usable empty state. Go's garbage collector reclaims
// the storage once nothing else references it; this exists to mirror the
// spec's explicit release/move-transfer vocabulary for callers who want to
// make the hand-off visible in their own code.
func (a *ImageArray) Release() {
	a.data = nil
	a.subs = nil
	a.desc = layout.TextureDescription{}
}
