// Package main provides a command-line tool for working with individual
// texture files.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/echotex/texpipe/internal/dds"
	"github.com/echotex/texpipe/internal/imagebuf"
	"github.com/echotex/texpipe/internal/pixfmt"
	"github.com/echotex/texpipe/internal/tga"
	"github.com/echotex/texpipe/pkg/archive"
	"github.com/echotex/texpipe/pkg/manifest"
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(1)
	}

	var err error
	switch cmd := flag.Arg(0); cmd {
	case "info":
		err = runInfo(flag.Args()[1:])
	case "convert":
		err = runConvert(flag.Args()[1:])
	case "validate":
		err = runValidate(flag.Args()[1:])
	case "box":
		err = runBox(flag.Args()[1:])
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", cmd)
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  texpipe info <file>                   show texture description and subresource pitch table")
	fmt.Fprintln(os.Stderr, "  texpipe convert <in> <out>             convert between DDS and TGA (by file extension)")
	fmt.Fprintln(os.Stderr, "  texpipe validate <file>                decode strictly and report invariant violations")
	fmt.Fprintln(os.Stderr, "  texpipe box pack <out.texbox> <files...>   pack files into a .texbox atlas")
	fmt.Fprintln(os.Stderr, "  texpipe box unpack <in.texbox> <outdir>    unpack a .texbox atlas")
}

// loadAny decodes a DDS or TGA file, dispatching on its extension.
func loadAny(path string) (*imagebuf.ImageArray, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".dds":
		return dds.Load(data, dds.Options{})
	case ".tga":
		return tga.Load(data, 0)
	default:
		return nil, fmt.Errorf("unrecognized extension %q", ext)
	}
}

func runInfo(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: texpipe info <file>")
	}
	img, err := loadAny(args[0])
	if err != nil {
		return err
	}
	desc := img.Description()
	fmt.Printf("File: %s\n", args[0])
	fmt.Printf("Dimensions: %dx%dx%d (%s)\n", desc.Width, desc.Height, desc.Depth, desc.Dimension)
	fmt.Printf("Array size: %d\n", desc.ArraySize)
	fmt.Printf("Mip levels: %d\n", desc.MipLevels)
	fmt.Printf("Format: %s\n", desc.Format)
	fmt.Printf("Alpha mode: %d\n", desc.AlphaMode())
	fmt.Printf("Cubemap: %v\n", desc.IsCubemap())
	fmt.Printf("Total size: %d bytes\n", img.SizeInBytes())
	fmt.Println("Subresources:")
	for _, sub := range img.Subresources() {
		fmt.Printf("  mip=%d item=%d slice=%d  %dx%d  rowPitch=%d slicePitch=%d offset=%d\n",
			sub.Mip, sub.Item, sub.Slice, sub.Width, sub.Height, sub.RowPitch, sub.SlicePitch, sub.Offset)
	}
	return nil
}

func runConvert(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: texpipe convert <in> <out>")
	}
	in, out := args[0], args[1]
	img, err := loadAny(in)
	if err != nil {
		return err
	}

	var data []byte
	switch ext := strings.ToLower(filepath.Ext(out)); ext {
	case ".dds":
		data, err = dds.Save(img, 0)
	case ".tga":
		if pixfmt.IsCompressed(img.Description().Format) {
			return fmt.Errorf("%s: block-compressed formats cannot be written to TGA", img.Description().Format)
		}
		data, err = tga.Save(img, tga.SaveOptions{WriteExtension: true})
	default:
		return fmt.Errorf("unrecognized output extension %q", ext)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", out, err)
	}

	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Printf("Converted %s -> %s\n", in, out)
	return nil
}

func runValidate(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: texpipe validate <file>")
	}
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".dds":
		res, err := dds.DecodeHeader(data, dds.Options{})
		if err != nil {
			return fmt.Errorf("invalid: %w", err)
		}
		if err := res.Description.Validate(); err != nil {
			return fmt.Errorf("invalid: %w", err)
		}
	case ".tga":
		res, err := tga.DecodeHeader(data, 0)
		if err != nil {
			return fmt.Errorf("invalid: %w", err)
		}
		if err := res.Description.Validate(); err != nil {
			return fmt.Errorf("invalid: %w", err)
		}
	default:
		return fmt.Errorf("unrecognized extension %q", ext)
	}

	fmt.Printf("%s: valid\n", path)
	return nil
}

func runBox(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: texpipe box pack|unpack ...")
	}
	switch args[0] {
	case "pack":
		return runBoxPack(args[1:])
	case "unpack":
		return runBoxUnpack(args[1:])
	default:
		return fmt.Errorf("unknown box subcommand %q", args[0])
	}
}

func runBoxPack(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: texpipe box pack <out.texbox> <files...>")
	}
	outPath, files := args[0], args[1:]

	m := &manifest.Manifest{}
	var payload []byte
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		container := manifest.ContainerDDS
		if strings.ToLower(filepath.Ext(f)) == ".tga" {
			container = manifest.ContainerTGA
		}
		m.AddEntry(filepath.Base(f), uint64(len(payload)), uint64(len(data)), container)
		payload = append(payload, data...)
	}

	manifestBytes, err := m.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()

	if err := archive.EncodeBox(f, manifestBytes, payload); err != nil {
		return fmt.Errorf("encode box: %w", err)
	}
	fmt.Printf("Packed %d files into %s\n", len(files), outPath)
	return nil
}

func runBoxUnpack(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: texpipe box unpack <in.texbox> <outdir>")
	}
	inPath, outDir := args[0], args[1]

	f, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", inPath, err)
	}
	defer f.Close()

	manifestBytes, payload, err := archive.DecodeBox(f)
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}

	m := &manifest.Manifest{}
	if err := m.UnmarshalBinary(manifestBytes); err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for i := 0; i < m.EntryCount(); i++ {
		e := m.Entries[i]
		name := m.Name(i)
		outPath := filepath.Join(outDir, name)
		if err := os.WriteFile(outPath, payload[e.Offset:e.Offset+e.Length], 0644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
	}
	fmt.Printf("Unpacked %d files into %s\n", m.EntryCount(), outDir)
	return nil
}
