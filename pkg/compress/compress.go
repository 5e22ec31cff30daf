// Package compress provides the pluggable compression strategies used for
// CIF pixel payloads. Each strategy is a stateless Codec that operates on
// raw sample bytes; the container stores a single strategy tag per file.
package compress

import (
	"fmt"

	"github.com/norimage/norimage/pkg/compress/delta"
	"github.com/norimage/norimage/pkg/compress/lossy"
	"github.com/norimage/norimage/pkg/compress/rle"
)

// Type identifies a compression strategy. The numeric values are wire
// constants stored in the container header; changing them breaks format
// compatibility.
type Type uint8

const (
	// None stores samples verbatim.
	None Type = 0
	// RLE run-length encodes samples as (value, count) pairs. Lossless.
	RLE Type = 1
	// Delta stores differences against a configurable stride. Lossless.
	Delta Type = 2
	// Lossy quantizes samples then run-length encodes the result. The only
	// strategy permitted to lose information.
	Lossy Type = 3
)

// String returns the human-readable name of a compression type.
func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case RLE:
		return "rle"
	case Delta:
		return "delta"
	case Lossy:
		return "lossy"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// ParseType parses a compression type from its string representation.
func ParseType(name string) (Type, error) {
	switch name {
	case "none", "":
		return None, nil
	case "rle":
		return RLE, nil
	case "delta":
		return Delta, nil
	case "lossy":
		return Lossy, nil
	default:
		return 0, fmt.Errorf("unknown compression type: %q", name)
	}
}

// Options carries strategy configuration. The zero value selects defaults.
type Options struct {
	// Stride is the delta reference distance in bytes. Zero means 1
	// (previous byte). Set it to the channel count so deltas compare the
	// same channel of the previous pixel.
	Stride int
	// Quality tunes the lossy quantizer, 0..100. Higher keeps more levels.
	Quality int
}

// Codec is the uniform contract all strategies implement. Implementations
// must be stateless and reentrant: the chunk scheduler invokes them
// concurrently on independent chunks.
type Codec interface {
	// Encode compresses raw sample bytes.
	Encode(raw []byte) ([]byte, error)
	// Decode decompresses, rawLen being the expected decoded length.
	Decode(compressed []byte, rawLen int) ([]byte, error)
	// Name returns the strategy identifier (e.g. "rle").
	Name() string
	// Type returns the wire tag for this strategy.
	Type() Type
}

// noneCodec implements Codec as an identity copy.
type noneCodec struct{}

func (noneCodec) Encode(raw []byte) ([]byte, error) {
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

func (noneCodec) Decode(compressed []byte, rawLen int) ([]byte, error) {
	if len(compressed) != rawLen {
		return nil, fmt.Errorf("none: expected %d bytes, have %d", rawLen, len(compressed))
	}
	out := make([]byte, len(compressed))
	copy(out, compressed)
	return out, nil
}

func (noneCodec) Name() string { return "none" }
func (noneCodec) Type() Type   { return None }

// rleCodec implements Codec over the rle package.
type rleCodec struct{}

func (rleCodec) Encode(raw []byte) ([]byte, error) {
	return rle.Encode(raw), nil
}

func (rleCodec) Decode(compressed []byte, rawLen int) ([]byte, error) {
	return rle.Decode(compressed, rawLen)
}

func (rleCodec) Name() string { return "rle" }
func (rleCodec) Type() Type   { return RLE }

// deltaCodec implements Codec over the delta package.
type deltaCodec struct {
	stride int
}

func (c deltaCodec) Encode(raw []byte) ([]byte, error) {
	return delta.Encode(raw, c.stride), nil
}

func (c deltaCodec) Decode(compressed []byte, rawLen int) ([]byte, error) {
	if len(compressed) != rawLen {
		return nil, fmt.Errorf("delta: expected %d bytes, have %d", rawLen, len(compressed))
	}
	return delta.Decode(compressed, c.stride), nil
}

func (c deltaCodec) Name() string { return "delta" }
func (c deltaCodec) Type() Type   { return Delta }

// lossyCodec implements Codec over the lossy package.
type lossyCodec struct {
	quality int
}

func (c lossyCodec) Encode(raw []byte) ([]byte, error) {
	return lossy.Encode(raw, c.quality)
}

func (c lossyCodec) Decode(compressed []byte, rawLen int) ([]byte, error) {
	return lossy.Decode(compressed, rawLen)
}

func (c lossyCodec) Name() string { return "lossy" }
func (c lossyCodec) Type() Type   { return Lossy }

// ForType returns the codec for a compression type, configured from opts.
func ForType(t Type, opts Options) (Codec, error) {
	switch t {
	case None:
		return noneCodec{}, nil
	case RLE:
		return rleCodec{}, nil
	case Delta:
		stride := opts.Stride
		if stride <= 0 {
			stride = 1
		}
		return deltaCodec{stride: stride}, nil
	case Lossy:
		q := opts.Quality
		if q < 0 || q > 100 {
			return nil, fmt.Errorf("lossy quality %d out of range 0..100", q)
		}
		return lossyCodec{quality: q}, nil
	default:
		return nil, fmt.Errorf("unsupported compression type: %d", uint8(t))
	}
}
