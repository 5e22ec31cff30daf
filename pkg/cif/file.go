package cif

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// zstdMagic opens a zstandard frame. Archival files (.cif.zst) wrap the
// complete CIF stream in zstd; the wrapping lives entirely in the storage
// layer and does not change the wire contract.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// ReadFile reads a CIF file from disk, transparently unwrapping a zstd
// archival layer when present.
func ReadFile(path string, opts DecodeOptions) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	if bytes.HasPrefix(data, zstdMagic) {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("initializing zstd: %w", err)
		}
		defer dec.Close()
		data, err = dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: zstd unwrap: %v", ErrFormat, err)
		}
	}

	return DecodeBytes(data, opts)
}

// WriteFile encodes img and meta to disk. A path ending in ".zst" gets the
// zstd archival wrapping.
func WriteFile(path string, img *Image, meta Metadata, opts EncodeOptions) error {
	data, err := EncodeBytes(img, meta, opts)
	if err != nil {
		return err
	}

	if strings.HasSuffix(path, ".zst") {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return fmt.Errorf("initializing zstd: %w", err)
		}
		data = enc.EncodeAll(data, nil)
		if err := enc.Close(); err != nil {
			return fmt.Errorf("closing zstd: %w", err)
		}
	}

	return os.WriteFile(path, data, 0o644)
}
