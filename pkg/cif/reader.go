package cif

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/norimage/norimage/pkg/compress"
)

// headerLen is the fixed-size portion before the metadata bytes.
const headerLen = 4 + 1 + 1 + 4 + 4 + 1 + 4

// minStreamLen is the smallest structurally possible stream: fixed header,
// empty metadata, empty payload, checksum.
const minStreamLen = headerLen + sha256.Size

// DecodeOptions configures container decoding.
type DecodeOptions struct {
	// Workers enables parallel chunk decompression when > 1.
	Workers int
	// Cache, when non-nil, memoizes chunk decompression by fingerprint.
	Cache *ChunkCache
}

// File is a fully decoded container: the pixel buffer plus everything the
// viewer consumes alongside it.
type File struct {
	Image       *Image
	Meta        Metadata
	Compression compress.Type
}

// Decode reads a complete CIF stream from r. See DecodeBytes for the
// validation order.
func Decode(r io.Reader, opts DecodeOptions) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading stream: %w", err)
	}
	return DecodeBytes(data, opts)
}

// DecodeBytes deserializes a CIF stream. Validation proceeds strictly
// outside-in: structural header checks first (ErrFormat), then the checksum
// over header+metadata+payload (ErrIntegrity), then the declared dimensions
// against the chunk records (ErrDimension, before any width*height
// allocation), and only then is the payload decompressed.
func DecodeBytes(data []byte, opts DecodeOptions) (*File, error) {
	if len(data) < minStreamLen {
		return nil, fmt.Errorf("%w: stream too short (%d bytes)", ErrFormat, len(data))
	}

	if string(data[0:4]) != string(magic) {
		return nil, fmt.Errorf("%w: bad magic %q", ErrFormat, data[0:4])
	}
	if v := data[4]; v != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrFormat, v)
	}
	mode, err := parseColorMode(data[5])
	if err != nil {
		return nil, err
	}
	width := binary.LittleEndian.Uint32(data[6:10])
	height := binary.LittleEndian.Uint32(data[10:14])
	if err := validateDimensions(width, height); err != nil {
		return nil, err
	}
	compression := compress.Type(data[14])
	if compression > compress.Lossy {
		return nil, fmt.Errorf("%w: unsupported compression tag %d", ErrFormat, data[14])
	}

	metaLen := int(binary.LittleEndian.Uint32(data[15:19]))
	body := data[:len(data)-sha256.Size]
	if headerLen+metaLen > len(body) {
		return nil, fmt.Errorf("%w: metadata length %d exceeds stream", ErrFormat, metaLen)
	}

	// Verify integrity before reading anything out of the metadata or
	// payload, so a corrupted stream is always reported as corruption, never
	// as some downstream parse failure.
	sum := sha256.Sum256(body)
	if subtle.ConstantTimeCompare(sum[:], data[len(data)-sha256.Size:]) != 1 {
		return nil, ErrIntegrity
	}

	var meta Metadata
	if metaLen > 0 {
		meta, err = unmarshalMetadata(body[headerLen : headerLen+metaLen])
		if err != nil {
			return nil, err
		}
	}

	payload := body[headerLen+metaLen:]
	expected := int(width) * int(height) * mode.Channels()
	chunks, err := scanPayload(payload, expected)
	if err != nil {
		return nil, err
	}

	strategyOpts := compress.Options{Stride: mode.Channels()}
	codec, err := compress.ForType(compression, strategyOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	scheduler := &Scheduler{Workers: opts.Workers, Cache: opts.Cache}
	samples, err := scheduler.Decompress(chunks, codec, strategyOpts)
	if err != nil {
		return nil, err
	}

	img, err := NewImage(width, height, mode, samples)
	if err != nil {
		return nil, err
	}
	return &File{Image: img, Meta: meta, Compression: compression}, nil
}

// scanPayload walks the chunk records without decompressing anything and
// checks that the declared raw lengths add up to exactly the sample count
// the header implies. Chunk slices alias the input.
func scanPayload(payload []byte, expected int) ([]Chunk, error) {
	var chunks []Chunk
	total := 0
	for pos := 0; pos < len(payload); {
		if pos+8 > len(payload) {
			return nil, fmt.Errorf("%w: truncated chunk record at offset %d", ErrFormat, pos)
		}
		rawLen := int(binary.LittleEndian.Uint32(payload[pos : pos+4]))
		compLen := int(binary.LittleEndian.Uint32(payload[pos+4 : pos+8]))
		pos += 8
		if rawLen == 0 {
			return nil, fmt.Errorf("%w: empty chunk at offset %d", ErrFormat, pos-8)
		}
		if pos+compLen > len(payload) {
			return nil, fmt.Errorf("%w: chunk data exceeds stream at offset %d", ErrFormat, pos-8)
		}
		total += rawLen
		if total > expected {
			return nil, fmt.Errorf("%w: payload declares %d+ raw bytes, dimensions imply %d",
				ErrDimension, total, expected)
		}
		chunks = append(chunks, Chunk{RawLen: rawLen, Data: payload[pos : pos+compLen]})
		pos += compLen
	}
	if total != expected {
		return nil, fmt.Errorf("%w: payload raw length %d, dimensions imply %d",
			ErrDimension, total, expected)
	}
	return chunks, nil
}
