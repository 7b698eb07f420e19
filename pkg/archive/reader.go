package archive

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/DataDog/zstd"
)

const (
	// DefaultCompressionLevel is the default compression level for encoding.
	DefaultCompressionLevel = zstd.BestSpeed
)

// ErrBoxTruncated is returned by Reader.DecodeBox when the decompressed
// box is shorter than its own manifest-length prefix claims, or too short
// to hold one.
var ErrBoxTruncated = fmt.Errorf("texbox: box truncated before manifest end")

// Reader wraps an io.ReadSeeker to decompress a .texbox container's body.
type Reader struct {
	header    *Header
	zReader   io.ReadCloser
	headerBuf [HeaderSize]byte // Reusable buffer for header decoding
}

// NewReader creates a new .texbox container reader from the given source.
// It reads and validates the header, then returns a reader for the
// decompressed body that follows it.
func NewReader(r io.ReadSeeker) (*Reader, error) {
	reader := &Reader{
		header: &Header{},
	}

	if _, err := r.Read(reader.headerBuf[:]); err != nil {
		return nil, fmt.Errorf("texbox: read container header: %w", err)
	}

	if err := reader.header.UnmarshalBinary(reader.headerBuf[:]); err != nil {
		return nil, fmt.Errorf("texbox: parse container header: %w", err)
	}

	reader.zReader = zstd.NewReader(r)
	return reader, nil
}

// Header returns the container header.
func (r *Reader) Header() *Header {
	return r.header
}

// Read reads decompressed body bytes into p.
func (r *Reader) Read(p []byte) (n int, err error) {
	return r.zReader.Read(p)
}

// Close closes the reader.
func (r *Reader) Close() error {
	return r.zReader.Close()
}

// Length returns the uncompressed body length.
func (r *Reader) Length() int {
	return int(r.header.Length)
}

// CompressedLength returns the compressed body length.
func (r *Reader) CompressedLength() int {
	return int(r.header.CompressedLength)
}

// ReadAll reads and decompresses a .texbox container's entire body, with no
// manifest/payload framing assumed. DecodeBox is the atlas-aware
// counterpart used to read back a manifest and texture payload packed
// together by EncodeBox.
func ReadAll(r io.ReadSeeker) ([]byte, error) {
	reader, err := NewReader(r)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	data := make([]byte, reader.Length())
	n, err := io.ReadFull(reader, data)
	if err != nil {
		return nil, fmt.Errorf("texbox: read body: %w", err)
	}
	if n != reader.Length() {
		return nil, fmt.Errorf("texbox: incomplete body read: expected %d, got %d", reader.Length(), n)
	}

	return data, nil
}

// DecodeBox reads and decompresses a framed .texbox atlas from r, then
// splits its body at the manifest-length prefix EncodeBox wrote, returning
// the manifest bytes and the packed texture payload separately.
func DecodeBox(r io.ReadSeeker) (manifestBytes, payload []byte, err error) {
	data, err := ReadAll(r)
	if err != nil {
		return nil, nil, err
	}

	if len(data) < boxPrefixSize {
		return nil, nil, ErrBoxTruncated
	}
	manifestLen := binary.LittleEndian.Uint32(data[:boxPrefixSize])
	if uint64(manifestLen) > maxManifestSize {
		return nil, nil, ErrManifestTooLarge
	}
	end := uint64(boxPrefixSize) + uint64(manifestLen)
	if end > uint64(len(data)) {
		return nil, nil, ErrBoxTruncated
	}

	return data[boxPrefixSize:end], data[end:], nil
}
