// Package rle implements byte-oriented run-length encoding for CIF pixel
// payloads. Runs of identical bytes become (value, count) pairs with counts
// in 1..255; longer runs split into multiple pairs.
package rle

import (
	"bytes"
	"errors"
	"fmt"
)

// maxRun is the largest run a single pair can describe.
const maxRun = 255

// ErrTruncated reports compressed data that ends mid-pair.
var ErrTruncated = errors.New("rle: compressed data truncated")

// Encode compresses data into (value, count) pairs. The output for
// high-entropy input can be up to twice the input size; strategy selection
// is the caller's concern.
func Encode(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}

	var buf bytes.Buffer
	i := 0
	for i < len(data) {
		run := 1
		for i+run < len(data) && run < maxRun && data[i+run] == data[i] {
			run++
		}
		buf.WriteByte(data[i])
		buf.WriteByte(byte(run))
		i += run
	}
	return buf.Bytes()
}

// Decode expands (value, count) pairs. rawLen is the expected decoded
// length; a stream that ends mid-pair, contains a zero count, or expands to
// the wrong length is an error.
func Decode(data []byte, rawLen int) ([]byte, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("%w: odd length %d", ErrTruncated, len(data))
	}

	out := make([]byte, 0, rawLen)
	for i := 0; i < len(data); i += 2 {
		value := data[i]
		count := int(data[i+1])
		if count == 0 {
			return nil, fmt.Errorf("rle: zero run length at offset %d", i)
		}
		if len(out)+count > rawLen {
			return nil, fmt.Errorf("rle: decoded data exceeds expected length %d", rawLen)
		}
		for k := 0; k < count; k++ {
			out = append(out, value)
		}
	}
	if len(out) != rawLen {
		return nil, fmt.Errorf("rle: decoded %d bytes, expected %d", len(out), rawLen)
	}
	return out, nil
}
