package dds

import (
	"github.com/echotex/texpipe/internal/imagebuf"
	"github.com/echotex/texpipe/internal/pixfmt"
	"github.com/echotex/texpipe/internal/scanline"
)

// Save serializes an ImageArray into a complete DDS file: the header
// EncodeHeader produces, followed by the pixel payload. Most formats either
// have no legacy representation or a zero-conversion legacy template, so the
// payload is the canonical buffer copied byte for byte. FlagForce24BPPRGB is
// the one case where the on-disk template narrows canonical RGBA8 down to a
// 3-byte-per-pixel legacy layout, so that case rewrites every scanline
// instead of copying it.
func Save(img *imagebuf.ImageArray, flags Flags) ([]byte, error) {
	desc := img.Description()
	header, err := EncodeHeader(&desc, flags)
	if err != nil {
		return nil, err
	}

	_, conv, _ := selectSaveFormat(&desc, flags)
	var payload []byte
	if conv&ConvR8G8B8 != 0 {
		payload, err = narrow24BPPPayload(img)
		if err != nil {
			return nil, err
		}
	} else {
		payload = img.Bytes()
	}

	out := make([]byte, len(header)+len(payload))
	copy(out, header)
	copy(out[len(header):], payload)
	return out, nil
}

// narrow24BPPPayload drops the alpha byte of every pixel in every
// subresource, rewriting the canonical RGBA8 buffer into the legacy 3-byte
// R8G8B8 on-disk layout FlagForce24BPPRGB selects.
func narrow24BPPPayload(img *imagebuf.ImageArray) ([]byte, error) {
	var out []byte
	for i, sub := range img.Subresources() {
		rowPitch, _, err := pixfmt.ComputePitch(pixfmt.FormatB8G8R8Unorm, sub.Width, sub.Height, pixfmt.CPFlagsNone)
		if err != nil {
			return nil, err
		}
		dstRow := make([]byte, rowPitch)
		for y := uint32(0); y < sub.Height; y++ {
			srcOff := uint64(y) * sub.RowPitch
			srcRow := sub.Pixels[srcOff : srcOff+uint64(sub.Width)*4]
			if !scanline.LegacyNarrowScanline(dstRow, srcRow, scanline.LegacyR8G8B8) {
				return nil, errorf("narrow 24bpp subresource %d row %d: conversion failed", i, y)
			}
			out = append(out, dstRow...)
		}
	}
	return out, nil
}
