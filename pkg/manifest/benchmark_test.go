package manifest

import (
	"fmt"
	"testing"
)

// BenchmarkManifest benchmarks manifest marshal/unmarshal at atlas scale.
func BenchmarkManifest(b *testing.B) {
	m := &Manifest{}
	for i := 0; i < 2000; i++ {
		m.AddEntry(fmt.Sprintf("texture_%04d.dds", i), uint64(i)*65536, 65536, ContainerDDS)
	}

	b.Run("Marshal", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, err := m.MarshalBinary()
			if err != nil {
				b.Fatal(err)
			}
		}
	})

	data, _ := m.MarshalBinary()

	b.Run("Unmarshal", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			decoded := &Manifest{}
			if err := decoded.UnmarshalBinary(data); err != nil {
				b.Fatal(err)
			}
		}
	})
}

// BenchmarkNameLookup benchmarks two strategies for resolving a texture
// name to its entry index: linear scan versus a prebuilt map.
func BenchmarkNameLookup(b *testing.B) {
	const entries = 2000
	m := &Manifest{}
	for i := 0; i < entries; i++ {
		m.AddEntry(fmt.Sprintf("texture_%04d.dds", i), uint64(i)*65536, 65536, ContainerDDS)
	}
	target := "texture_1500.dds"

	b.Run("LinearScan", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			for j := 0; j < m.EntryCount(); j++ {
				if m.Name(j) == target {
					break
				}
			}
		}
	})

	b.Run("PrebuiltIndex", func(b *testing.B) {
		index := make(map[string]int, entries)
		for i := 0; i < m.EntryCount(); i++ {
			index[m.Name(i)] = i
		}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = index[target]
		}
	})
}
