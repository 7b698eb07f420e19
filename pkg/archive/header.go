// Package archive provides the zstd-compressed container format .texbox
// atlas files are wrapped in: a fixed Header naming the uncompressed and
// compressed lengths of the framed manifest-plus-payload body that follows
// it, and the Reader/Writer pair that stream a texture atlas through it.
package archive

import (
	"encoding/binary"
	"fmt"
)

// Magic bytes identifying a .texbox container header.
var Magic = [4]byte{0x5a, 0x53, 0x54, 0x44} // "ZSTD"

// HeaderSize is the fixed binary size of a .texbox container header.
const HeaderSize = 24 // 4 + 4 + 8 + 8 bytes

// Header is the fixed-size prefix of a .texbox file: the zstd-framed body
// that follows it is a manifest-length prefix, the marshaled manifest, and
// the concatenated texture payload — see Writer.EncodeBox/Reader.DecodeBox.
type Header struct {
	Magic            [4]byte
	HeaderLength     uint32
	Length           uint64 // Uncompressed size of the framed manifest+payload body
	CompressedLength uint64 // Compressed size on disk
}

// Size returns the binary size of the header.
func (h *Header) Size() int {
	return HeaderSize
}

// Validate checks the header for validity.
func (h *Header) Validate() error {
	if h.Magic != Magic {
		return fmt.Errorf("texbox: invalid container magic: expected %x, got %x", Magic, h.Magic)
	}
	if h.HeaderLength != 16 {
		return fmt.Errorf("texbox: invalid header length: expected 16, got %d", h.HeaderLength)
	}
	if h.Length == 0 {
		return fmt.Errorf("texbox: uncompressed body size is zero")
	}
	if h.CompressedLength == 0 {
		return fmt.Errorf("texbox: compressed body size is zero")
	}
	return nil
}

// MarshalBinary encodes the header to binary format.
// Uses direct encoding to avoid allocations.
func (h *Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)
	h.EncodeTo(buf)
	return buf, nil
}

// EncodeTo writes the header to the given buffer.
// The buffer must be at least HeaderSize bytes.
func (h *Header) EncodeTo(buf []byte) {
	copy(buf[0:4], h.Magic[:])
	binary.LittleEndian.PutUint32(buf[4:8], h.HeaderLength)
	binary.LittleEndian.PutUint64(buf[8:16], h.Length)
	binary.LittleEndian.PutUint64(buf[16:24], h.CompressedLength)
}

// UnmarshalBinary decodes the header from binary format.
// Uses direct decoding to avoid allocations.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("texbox: container header truncated: need %d bytes, got %d", HeaderSize, len(data))
	}
	h.DecodeFrom(data)
	return h.Validate()
}

// DecodeFrom reads the header from the given buffer.
// Does not validate - use UnmarshalBinary for validation.
func (h *Header) DecodeFrom(data []byte) {
	copy(h.Magic[:], data[0:4])
	h.HeaderLength = binary.LittleEndian.Uint32(data[4:8])
	h.Length = binary.LittleEndian.Uint64(data[8:16])
	h.CompressedLength = binary.LittleEndian.Uint64(data[16:24])
}

// NewHeader creates a new .texbox container header for a body of the given
// uncompressed and compressed sizes.
func NewHeader(uncompressedSize, compressedSize uint64) *Header {
	return &Header{
		Magic:            Magic,
		HeaderLength:     16,
		Length:           uncompressedSize,
		CompressedLength: compressedSize,
	}
}
