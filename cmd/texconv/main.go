// texconv batch-processes a directory of DDS/TGA textures: either
// normalizing each file into the output directory (decode through the core
// and re-encode, useful for bringing legacy DDS headers up to DX10) or packing the whole
// set into a single .texbox atlas.
//
// Usage:
//   texconv -mode normalize -input dir/ -output out/
//   texconv -mode pack -input dir/ -output atlas.texbox
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/echotex/texpipe/internal/dds"
	"github.com/echotex/texpipe/internal/imagebuf"
	"github.com/echotex/texpipe/internal/tga"
	"github.com/echotex/texpipe/pkg/archive"
	"github.com/echotex/texpipe/pkg/manifest"
)

var (
	mode      string
	inputDir  string
	outputDir string
)

func init() {
	flag.StringVar(&mode, "mode", "", "Operation mode: normalize, pack")
	flag.StringVar(&inputDir, "input", "", "Input directory of DDS/TGA files")
	flag.StringVar(&outputDir, "output", "", "Output directory (normalize) or .texbox path (pack)")
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if inputDir == "" || outputDir == "" {
		flag.Usage()
		return fmt.Errorf("-input and -output are required")
	}

	switch mode {
	case "normalize":
		return runNormalize()
	case "pack":
		return runPack()
	default:
		flag.Usage()
		return fmt.Errorf("mode must be 'normalize' or 'pack'")
	}
}

// textureFiles walks inputDir and returns the paths of every .dds/.tga file
// found, sorted by filepath.Walk's lexical order.
func textureFiles(inputDir string) ([]string, error) {
	var files []string
	err := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".dds", ".tga":
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func loadTexture(path string) (*imagebuf.ImageArray, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if strings.ToLower(filepath.Ext(path)) == ".tga" {
		return tga.Load(data, 0)
	}
	return dds.Load(data, dds.Options{})
}

// runNormalize decodes each input texture and re-encodes it in its native
// container, bringing legacy DDS headers up to the DX10 extension and
// rewriting TGA files with a fresh 2.0 extension area.
func runNormalize() error {
	files, err := textureFiles(inputDir)
	if err != nil {
		return fmt.Errorf("scan input: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	count, errors := 0, 0
	for _, path := range files {
		rel, err := filepath.Rel(inputDir, path)
		if err != nil {
			return fmt.Errorf("relativize %s: %w", path, err)
		}
		outPath := filepath.Join(outputDir, rel)
		if err := normalizeOne(path, outPath); err != nil {
			fmt.Fprintf(os.Stderr, "normalize %s: %v\n", path, err)
			errors++
			continue
		}
		count++
	}
	fmt.Printf("Normalized %d files, %d errors\n", count, errors)
	return nil
}

func normalizeOne(inPath, outPath string) error {
	img, err := loadTexture(inPath)
	if err != nil {
		return err
	}

	var data []byte
	if strings.ToLower(filepath.Ext(inPath)) == ".tga" {
		data, err = tga.Save(img, tga.SaveOptions{WriteExtension: true})
	} else {
		data, err = dds.Save(img, dds.FlagForceDX10Ext)
	}
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	return nil
}

// runPack walks inputDir and concatenates every texture's raw on-disk bytes
// into a single .texbox atlas, indexed by a manifest recording each file's
// name, byte range, and container kind.
func runPack() error {
	files, err := textureFiles(inputDir)
	if err != nil {
		return fmt.Errorf("scan input: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no .dds/.tga files found under %s", inputDir)
	}

	m := &manifest.Manifest{}
	var payload []byte
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		container := manifest.ContainerDDS
		if strings.ToLower(filepath.Ext(path)) == ".tga" {
			container = manifest.ContainerTGA
		}
		rel, err := filepath.Rel(inputDir, path)
		if err != nil {
			return fmt.Errorf("relativize %s: %w", path, err)
		}
		m.AddEntry(rel, uint64(len(payload)), uint64(len(data)), container)
		payload = append(payload, data...)
	}

	manifestBytes, err := m.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	f, err := os.Create(outputDir)
	if err != nil {
		return fmt.Errorf("create %s: %w", outputDir, err)
	}
	defer f.Close()

	if err := archive.EncodeBox(f, manifestBytes, payload); err != nil {
		return fmt.Errorf("encode box: %w", err)
	}
	fmt.Printf("Packed %d files into %s\n", len(files), outputDir)
	return nil
}
