package manifest

import (
	"testing"
)

func TestManifest(t *testing.T) {
	t.Run("MarshalUnmarshal", func(t *testing.T) {
		original := &Manifest{}
		original.AddEntry("diffuse.dds", 0, 65536, ContainerDDS)
		original.AddEntry("normal.dds", 65536, 32768, ContainerDDS)
		original.AddEntry("logo.tga", 98304, 4096, ContainerTGA)

		data, err := original.MarshalBinary()
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}

		decoded := &Manifest{}
		if err := decoded.UnmarshalBinary(data); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}

		if decoded.EntryCount() != original.EntryCount() {
			t.Fatalf("EntryCount: got %d, want %d", decoded.EntryCount(), original.EntryCount())
		}
		for i := range original.Entries {
			if decoded.Name(i) != original.Name(i) {
				t.Errorf("entry %d name: got %q, want %q", i, decoded.Name(i), original.Name(i))
			}
			if decoded.Entries[i].Offset != original.Entries[i].Offset {
				t.Errorf("entry %d offset: got %d, want %d", i, decoded.Entries[i].Offset, original.Entries[i].Offset)
			}
			if decoded.Entries[i].Length != original.Entries[i].Length {
				t.Errorf("entry %d length: got %d, want %d", i, decoded.Entries[i].Length, original.Entries[i].Length)
			}
			if decoded.Entries[i].Container != original.Entries[i].Container {
				t.Errorf("entry %d container: got %d, want %d", i, decoded.Entries[i].Container, original.Entries[i].Container)
			}
		}
	})

	t.Run("EntryCount", func(t *testing.T) {
		m := &Manifest{}
		for i := 0; i < 5; i++ {
			m.AddEntry("tex", uint64(i), 1, ContainerDDS)
		}
		if m.EntryCount() != 5 {
			t.Errorf("EntryCount: got %d, want 5", m.EntryCount())
		}
	})
}
