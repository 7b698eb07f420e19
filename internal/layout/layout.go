// Package layout computes the subresource table for a texture description:
// how many mips/slices/array items a texture has, where each one lives
// inside a single contiguous allocation, and how to translate a
// (mip, item, slice) coordinate into an index into that table.
package layout

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/echotex/texpipe/internal/pixfmt"
)

// Dimension identifies a texture's base shape.
type Dimension int

const (
	Dimension1D Dimension = iota + 1
	Dimension2D
	Dimension3D
)

func (d Dimension) String() string {
	switch d {
	case Dimension1D:
		return "1D"
	case Dimension2D:
		return "2D"
	case Dimension3D:
		return "3D"
	}
	return fmt.Sprintf("Dimension(%d)", int(d))
}

// MiscFlags holds the boolean flags carried alongside a TextureDescription.
type MiscFlags uint32

// MiscFlagCubemap marks an array of 2D textures as a cubemap (or cubemap
// array); ArraySize must then be a multiple of 6.
const MiscFlagCubemap MiscFlags = 1 << 0

// AlphaMode describes how a texture's alpha channel should be interpreted.
// It's stored in the low 3 bits of MiscFlags2.
type AlphaMode uint32

const (
	AlphaModeUnknown AlphaMode = iota
	AlphaModeStraight
	AlphaModePremultiplied
	AlphaModeOpaque
	AlphaModeCustom
)

const alphaModeMask = 0x7

// TextureDescription is the canonical identity of a texture: everything
// that must round-trip unchanged across a load/save cycle.
type TextureDescription struct {
	Width, Height, Depth uint32
	ArraySize            uint32
	MipLevels            uint32
	Format               pixfmt.Format
	Dimension            Dimension
	MiscFlags            MiscFlags
	MiscFlags2           uint32
}

// AlphaMode extracts the alpha interpretation packed into MiscFlags2.
func (d *TextureDescription) AlphaMode() AlphaMode {
	return AlphaMode(d.MiscFlags2 & alphaModeMask)
}

// SetAlphaMode packs a into the low 3 bits of MiscFlags2, preserving any
// other bits already set there.
func (d *TextureDescription) SetAlphaMode(a AlphaMode) {
	d.MiscFlags2 = (d.MiscFlags2 &^ alphaModeMask) | uint32(a)&alphaModeMask
}

// IsCubemap reports whether MiscFlagCubemap is set.
func (d *TextureDescription) IsCubemap() bool {
	return d.MiscFlags&MiscFlagCubemap != 0
}

// Validate checks the description's invariants: dimension-dependent extent
// constraints, cubemap array-size multiple, and that Format is not a
// palettized format (palettes only ever exist on the wire, never as the
// canonical in-memory format).
func (d *TextureDescription) Validate() error {
	if d.Width == 0 {
		return errors.New("layout: width must be non-zero")
	}
	if d.ArraySize == 0 {
		return errors.New("layout: array_size must be non-zero")
	}
	if d.MipLevels == 0 {
		return errors.New("layout: mip_levels must be non-zero")
	}
	if !pixfmt.IsValid(d.Format) {
		return fmt.Errorf("layout: %v is not a valid format", d.Format)
	}
	if pixfmt.IsPalettized(d.Format) {
		return fmt.Errorf("layout: %v is palettized, not a valid canonical format", d.Format)
	}
	switch d.Dimension {
	case Dimension1D:
		if d.Height != 1 || d.Depth != 1 {
			return errors.New("layout: 1D texture must have height=1 and depth=1")
		}
	case Dimension2D:
		if d.Depth != 1 {
			return errors.New("layout: 2D texture must have depth=1")
		}
		if d.IsCubemap() && d.ArraySize%6 != 0 {
			return errors.New("layout: cubemap array_size must be a multiple of 6")
		}
	case Dimension3D:
		if d.ArraySize != 1 {
			return errors.New("layout: 3D texture cannot be an array (array_size must be 1)")
		}
		if d.Depth == 0 {
			return errors.New("layout: 3D texture depth must be non-zero")
		}
	default:
		return fmt.Errorf("layout: unknown dimension %v", d.Dimension)
	}
	full := FullMipChain(d.Width, d.Height, d.Depth, d.Dimension)
	if d.MipLevels > full {
		return fmt.Errorf("layout: mip_levels %d exceeds full chain %d for %dx%dx%d", d.MipLevels, full, d.Width, d.Height, d.Depth)
	}
	return nil
}

// FullMipChain returns 1 + floor(log2(max(w,h[,d]))), the number of mip
// levels a full chain down to 1x1(x1) requires.
func FullMipChain(w, h, d uint32, dim Dimension) uint32 {
	m := w
	if h > m {
		m = h
	}
	if dim == Dimension3D && d > m {
		m = d
	}
	if m == 0 {
		m = 1
	}
	return uint32(bits.Len32(m))
}

// ErrMipLevelsTooLarge is returned by ResolveMipLevels when an explicit,
// non-zero, non-one mip count exceeds the full chain for the given extents.
var ErrMipLevelsTooLarge = errors.New("layout: mip_levels exceeds full chain")

// ResolveMipLevels implements the mip-count calculator: 0 means "compute the
// full chain", 1 is left as-is, anything else must not exceed the full
// chain.
func ResolveMipLevels(mipLevelsIn, w, h, d uint32, dim Dimension) (uint32, error) {
	switch mipLevelsIn {
	case 0:
		return FullMipChain(w, h, d, dim), nil
	case 1:
		return 1, nil
	default:
		full := FullMipChain(w, h, d, dim)
		if mipLevelsIn > full {
			return 0, fmt.Errorf("%w: %d > %d", ErrMipLevelsTooLarge, mipLevelsIn, full)
		}
		return mipLevelsIn, nil
	}
}

func nextMipExtent(v uint32) uint32 {
	v >>= 1
	if v == 0 {
		return 1
	}
	return v
}

// Subresource describes one (mip, item, slice) tile's placement within the
// owning Image Array's pixel buffer: its extents, pitch, and byte range.
// It does not itself hold the bytes — imagebuf.Subresource borrows a slice
// view using this Offset/Size pair.
type Subresource struct {
	Mip, Item, Slice uint32
	Width, Height    uint32
	Format           pixfmt.Format
	RowPitch         uint64
	SlicePitch       uint64
	Offset           uint64
}

// ErrOutOfRange is returned when a computed total or index would exceed the
// u32 byte budget enforced by pixfmt.CPFlagLimit4GB, or 32-bit hosts.
var ErrOutOfRange = errors.New("layout: value out of range")

// DetermineImageArray walks every subresource a TextureDescription
// describes and returns how many there are and how many bytes they
// collectively need, without allocating or writing anything.
func DetermineImageArray(desc *TextureDescription, flags pixfmt.CPFlags) (nSubresources int, totalBytes uint64, err error) {
	return walk(desc, flags, nil)
}

// SetupImageArray walks the same traversal as DetermineImageArray and
// returns the concrete Subresource table, with Offset set to each tile's
// starting byte within a buffer of the given size. It fails if the total
// required size exceeds size.
func SetupImageArray(size uint64, desc *TextureDescription, flags pixfmt.CPFlags) ([]Subresource, error) {
	var subs []Subresource
	n, total, err := walk(desc, flags, &subs)
	if err != nil {
		return nil, err
	}
	if total > size {
		return nil, fmt.Errorf("layout: %d subresources need %d bytes, buffer has %d", n, total, size)
	}
	return subs, nil
}

// walk performs the single shared traversal used by DetermineImageArray and
// SetupImageArray. When out is non-nil, it is populated with the full
// Subresource table; the traversal order (item-major for 1D/2D/array,
// mip-major for 3D) must match ComputeIndex exactly.
func walk(desc *TextureDescription, flags pixfmt.CPFlags, out *[]Subresource) (int, uint64, error) {
	count := 0
	var total uint64

	limit := flags&pixfmt.CPFlagLimit4GB != 0

	appendSub := func(mip, item, slice, w, h uint32, rowPitch, slicePitch uint64) {
		if out != nil {
			*out = append(*out, Subresource{
				Mip: mip, Item: item, Slice: slice,
				Width: w, Height: h,
				Format:     desc.Format,
				RowPitch:   rowPitch,
				SlicePitch: slicePitch,
				Offset:     total,
			})
		}
		total += slicePitch
		count++
	}

	if desc.Dimension == Dimension3D {
		d := desc.Depth
		w, h := desc.Width, desc.Height
		for mip := uint32(0); mip < desc.MipLevels; mip++ {
			row, slice, err := pixfmt.ComputePitch(desc.Format, w, h, flags)
			if err != nil {
				return 0, 0, fmt.Errorf("layout: mip %d: %w", mip, err)
			}
			for s := uint32(0); s < d; s++ {
				appendSub(mip, 0, s, w, h, row, slice)
			}
			w, h, d = nextMipExtent(w), nextMipExtent(h), nextMipExtent(d)
		}
	} else {
		for item := uint32(0); item < desc.ArraySize; item++ {
			w, h := desc.Width, desc.Height
			for mip := uint32(0); mip < desc.MipLevels; mip++ {
				row, slice, err := pixfmt.ComputePitch(desc.Format, w, h, flags)
				if err != nil {
					return 0, 0, fmt.Errorf("layout: item %d mip %d: %w", item, mip, err)
				}
				appendSub(mip, item, 0, w, h, row, slice)
				w, h = nextMipExtent(w), nextMipExtent(h)
			}
		}
	}

	if (limit || bits.UintSize == 32) && total > maxU32 {
		return 0, 0, fmt.Errorf("layout: total size %d exceeds 32-bit limit: %w", total, ErrOutOfRange)
	}
	return count, total, nil
}

const maxU32 = uint64(^uint32(0))

// ComputeIndex maps a (mip, item, slice) coordinate to its subresource
// index, matching SetupImageArray's traversal order exactly. It returns
// ErrOutOfRange if the coordinate doesn't exist in desc.
func ComputeIndex(desc *TextureDescription, mip, item, slice uint32) (uint64, error) {
	if mip >= desc.MipLevels {
		return 0, ErrOutOfRange
	}
	if desc.Dimension == Dimension3D {
		if item != 0 {
			return 0, ErrOutOfRange
		}
		d := desc.Depth
		var idx uint64
		for l := uint32(0); l < mip; l++ {
			idx += uint64(d)
			d = nextMipExtent(d)
		}
		if slice >= d {
			return 0, ErrOutOfRange
		}
		return idx + uint64(slice), nil
	}
	if item >= desc.ArraySize || slice != 0 {
		return 0, ErrOutOfRange
	}
	return uint64(item)*uint64(desc.MipLevels) + uint64(mip), nil
}
