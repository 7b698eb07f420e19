package archive

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/DataDog/zstd"
)

// boxPrefixSize is the width of the little-endian manifest-length prefix
// Writer.EncodeBox writes ahead of the manifest bytes, before the texture
// payload, inside the zstd-framed body.
const boxPrefixSize = 4

// maxManifestSize caps the manifest length EncodeBox/DecodeBox will trust,
// guarding a corrupted or truncated box against slicing an absurd payload
// range out of the decompressed body.
const maxManifestSize = 64 << 20 // 64MiB

// ErrManifestTooLarge is returned by Writer.EncodeBox or Reader.DecodeBox
// when a manifest's length exceeds maxManifestSize.
var ErrManifestTooLarge = fmt.Errorf("texbox: manifest length exceeds %d bytes", maxManifestSize)

// Writer wraps an io.WriteSeeker to stream a zstd-compressed .texbox
// container to it, back-patching the header's compressed length once the
// body is fully written.
type Writer struct {
	dst     io.WriteSeeker
	zWriter *zstd.Writer
	header  *Header
	level   int
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithCompressionLevel sets the compression level for the writer.
func WithCompressionLevel(level int) WriterOption {
	return func(w *Writer) {
		w.level = level
	}
}

// NewWriter creates a new .texbox container writer that writes to dst.
// uncompressedSize is the expected size of the framed manifest+payload
// body Write will be called with.
func NewWriter(dst io.WriteSeeker, uncompressedSize uint64, opts ...WriterOption) (*Writer, error) {
	w := &Writer{
		dst:   dst,
		level: DefaultCompressionLevel,
		header: &Header{
			Magic:            Magic,
			HeaderLength:     16,
			Length:           uncompressedSize,
			CompressedLength: 0, // Will be updated after writing
		},
	}

	for _, opt := range opts {
		opt(w)
	}

	// Write placeholder header
	headerBytes, err := w.header.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("texbox: marshal container header: %w", err)
	}
	if _, err := dst.Write(headerBytes); err != nil {
		return nil, fmt.Errorf("texbox: write container header: %w", err)
	}

	w.zWriter = zstd.NewWriterLevel(dst, w.level)
	return w, nil
}

// Write compresses p into the container body.
func (w *Writer) Write(p []byte) (n int, err error) {
	return w.zWriter.Write(p)
}

// Close finalizes the container by back-patching the header with the
// compressed body size now that it's known.
func (w *Writer) Close() error {
	if err := w.zWriter.Close(); err != nil {
		return fmt.Errorf("texbox: close compressor: %w", err)
	}

	// Get current position to determine compressed size
	pos, err := w.dst.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("texbox: get position: %w", err)
	}

	// Update header with actual compressed size
	w.header.CompressedLength = uint64(pos) - uint64(w.header.Size())

	// Seek to beginning and rewrite header
	if _, err := w.dst.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("texbox: seek to start: %w", err)
	}

	headerBytes, err := w.header.MarshalBinary()
	if err != nil {
		return fmt.Errorf("texbox: marshal container header: %w", err)
	}

	if _, err := w.dst.Write(headerBytes); err != nil {
		return fmt.Errorf("texbox: rewrite container header: %w", err)
	}

	// Seek back to end
	if _, err := w.dst.Seek(pos, io.SeekStart); err != nil {
		return fmt.Errorf("texbox: seek to end: %w", err)
	}

	return nil
}

// Encode compresses data and writes it as a .texbox container to dst,
// with no manifest/payload framing of its own. EncodeBox is the atlas-aware
// counterpart used to pack a manifest and texture payload together.
func Encode(dst io.WriteSeeker, data []byte, opts ...WriterOption) error {
	w, err := NewWriter(dst, uint64(len(data)), opts...)
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("texbox: write body: %w", err)
	}

	return w.Close()
}

// EncodeBox frames a .texbox atlas's manifest bytes and packed texture
// payload behind a manifest-length prefix, then streams the framed result
// through a Writer exactly as Encode does for an unframed body. The
// manifest package's MarshalBinary output has no length field of its own
// (it treats the rest of its input as a trailing name blob), so this
// prefix is what lets a manifest and its payload share one compressed body
// without the name blob absorbing payload bytes.
func EncodeBox(dst io.WriteSeeker, manifestBytes, payload []byte, opts ...WriterOption) error {
	if uint64(len(manifestBytes)) > maxManifestSize {
		return ErrManifestTooLarge
	}

	w, err := NewWriter(dst, uint64(boxPrefixSize+len(manifestBytes)+len(payload)), opts...)
	if err != nil {
		return err
	}

	prefix := make([]byte, boxPrefixSize)
	binary.LittleEndian.PutUint32(prefix, uint32(len(manifestBytes)))
	if _, err := w.Write(prefix); err != nil {
		return fmt.Errorf("texbox: write manifest length prefix: %w", err)
	}
	if _, err := w.Write(manifestBytes); err != nil {
		return fmt.Errorf("texbox: write manifest: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("texbox: write payload: %w", err)
	}

	return w.Close()
}
