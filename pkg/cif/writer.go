package cif

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"

	"github.com/norimage/norimage/pkg/compress"
)

// DefaultLossyQuality is used when EncodeOptions.Quality is left zero.
const DefaultLossyQuality = 50

// EncodeOptions configures container encoding. The delta stride is not an
// option: the container always deltas at the color mode's channel count so
// the header alone determines how to decode.
type EncodeOptions struct {
	// Compression selects the payload strategy.
	Compression compress.Type
	// Quality tunes the lossy quantizer (1..100); 0 selects
	// DefaultLossyQuality. Ignored by the lossless strategies.
	Quality int
	// ChunkSize is the raw bytes per payload chunk; 0 selects
	// DefaultChunkSize.
	ChunkSize int
	// Workers enables parallel chunk compression when > 1. The output
	// stream is byte-identical either way.
	Workers int
	// Cache, when non-nil, memoizes chunk compression by fingerprint.
	Cache *ChunkCache
}

func (o EncodeOptions) strategyOptions(mode ColorMode) (compress.Options, error) {
	opts := compress.Options{Stride: mode.Channels()}
	if o.Compression == compress.Lossy {
		q := o.Quality
		if q == 0 {
			q = DefaultLossyQuality
		}
		if q < 1 || q > 100 {
			return compress.Options{}, fmt.Errorf("%w: lossy quality %d", ErrParameter, o.Quality)
		}
		opts.Quality = q
	}
	return opts, nil
}

// Encode serializes img and meta to w using the configured compression.
// Field order: magic, version, color mode, width, height, compression tag,
// metadata length, metadata JSON, chunked payload, SHA-256 footer. All
// multi-byte integers are little-endian.
func Encode(w io.Writer, img *Image, meta Metadata, opts EncodeOptions) error {
	data, err := EncodeBytes(img, meta, opts)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// EncodeBytes serializes to a byte slice. See Encode.
func EncodeBytes(img *Image, meta Metadata, opts EncodeOptions) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrParameter)
	}
	// Re-validate: the Image invariant is the construction contract, but
	// callers can build the struct directly.
	if _, err := NewImage(img.Width, img.Height, img.Mode, img.Samples); err != nil {
		return nil, err
	}

	strategyOpts, err := opts.strategyOptions(img.Mode)
	if err != nil {
		return nil, err
	}
	codec, err := compress.ForType(opts.Compression, strategyOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParameter, err)
	}
	if opts.Compression == compress.Lossy {
		// Copy-on-write so the caller's metadata map is never mutated.
		fields := make(map[string]string, len(meta.CustomFields)+1)
		for k, v := range meta.CustomFields {
			fields[k] = v
		}
		fields["quality"] = strconv.Itoa(strategyOpts.Quality)
		meta.CustomFields = fields
	}

	scheduler := &Scheduler{ChunkSize: opts.ChunkSize, Workers: opts.Workers, Cache: opts.Cache}
	chunks, err := scheduler.Compress(img.Samples, codec, strategyOpts)
	if err != nil {
		return nil, err
	}

	metaBytes, err := marshalMetadata(meta)
	if err != nil {
		return nil, err
	}

	payloadLen := 0
	for _, c := range chunks {
		payloadLen += 8 + len(c.Data)
	}

	buf := bytes.NewBuffer(make([]byte, 0, len(magic)+15+len(metaBytes)+payloadLen+sha256.Size))
	buf.Write(magic)
	buf.WriteByte(Version)
	buf.WriteByte(byte(img.Mode))
	binary.Write(buf, binary.LittleEndian, img.Width)
	binary.Write(buf, binary.LittleEndian, img.Height)
	buf.WriteByte(byte(opts.Compression))
	binary.Write(buf, binary.LittleEndian, uint32(len(metaBytes)))
	buf.Write(metaBytes)

	for _, c := range chunks {
		binary.Write(buf, binary.LittleEndian, uint32(c.RawLen))
		binary.Write(buf, binary.LittleEndian, uint32(len(c.Data)))
		buf.Write(c.Data)
	}

	sum := sha256.Sum256(buf.Bytes())
	buf.Write(sum[:])
	return buf.Bytes(), nil
}
