// Package manifest provides types and functions for working with texture
// atlas manifest files: a named, offset-indexed table of DDS/TGA payloads
// packed into a single .texbox archive.
package manifest

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/echotex/texpipe/pkg/archive"
)

// Container identifies the binary format of an entry's packed bytes.
type Container uint8

const (
	ContainerDDS Container = 0
	ContainerTGA Container = 1
)

// Manifest represents a parsed texture atlas manifest.
type Manifest struct {
	Header   Header
	Entries  []Entry
	NameBlob []byte // concatenated, non-terminated entry names
}

// Header contains manifest metadata.
type Header struct {
	EntryCount uint32
	Reserved   uint32
}

// Entry describes one texture packed into the atlas payload.
type Entry struct {
	NameLength uint32
	NameOffset uint32 // into NameBlob
	Offset     uint64 // byte offset of this texture's raw bytes within the payload
	Length     uint64 // byte length
	Container  Container
	_          [7]byte // padding
}

// EntryCount returns the number of textures indexed by this manifest.
func (m *Manifest) EntryCount() int {
	return len(m.Entries)
}

// Name returns the name of the entry at index i, read from the trailing
// name blob.
func (m *Manifest) Name(i int) string {
	e := m.Entries[i]
	return string(m.NameBlob[e.NameOffset : e.NameOffset+e.NameLength])
}

// AddEntry appends a new texture to the manifest, recording name in the
// name blob and offset/length/container in a new Entry.
func (m *Manifest) AddEntry(name string, offset, length uint64, container Container) {
	e := Entry{
		NameLength: uint32(len(name)),
		NameOffset: uint32(len(m.NameBlob)),
		Offset:     offset,
		Length:     length,
		Container:  container,
	}
	m.NameBlob = append(m.NameBlob, name...)
	m.Entries = append(m.Entries, e)
	m.Header.EntryCount = uint32(len(m.Entries))
}

// UnmarshalBinary decodes a manifest from binary data.
func (m *Manifest) UnmarshalBinary(data []byte) error {
	reader := bytes.NewReader(data)

	if err := binary.Read(reader, binary.LittleEndian, &m.Header); err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	m.Entries = make([]Entry, m.Header.EntryCount)
	if err := binary.Read(reader, binary.LittleEndian, &m.Entries); err != nil {
		return fmt.Errorf("read entries: %w", err)
	}

	blob := make([]byte, reader.Len())
	if _, err := reader.Read(blob); err != nil {
		return fmt.Errorf("read name blob: %w", err)
	}
	m.NameBlob = blob

	return nil
}

// MarshalBinary encodes a manifest to binary data.
func (m *Manifest) MarshalBinary() ([]byte, error) {
	buf := bytes.NewBuffer(nil)

	sections := []any{
		m.Header,
		m.Entries,
	}

	for _, section := range sections {
		if err := binary.Write(buf, binary.LittleEndian, section); err != nil {
			return nil, fmt.Errorf("write section: %w", err)
		}
	}

	if _, err := buf.Write(m.NameBlob); err != nil {
		return nil, fmt.Errorf("write name blob: %w", err)
	}

	return buf.Bytes(), nil
}

// ReadFile reads and parses a manifest from a .texbox archive.
func ReadFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	data, err := archive.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}

	manifest := &Manifest{}
	if err := manifest.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	return manifest, nil
}

// WriteFile writes a manifest to a .texbox archive.
func WriteFile(path string, m *Manifest) error {
	data, err := m.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if err := archive.Encode(f, data); err != nil {
		return fmt.Errorf("encode archive: %w", err)
	}

	return nil
}
