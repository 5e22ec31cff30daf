// Package lossy implements the quantizing strategy for CIF pixel payloads.
// Samples are snapped to a reduced set of evenly spaced levels selected by a
// quality parameter, then the quantized stream is run-length encoded. This
// is the only strategy that loses information; the loss per sample is
// bounded by half the quantization step.
//
// The quality mapping is levels = 2 + quality*254/100, so quality 0 keeps
// two levels and quality 100 keeps all 256 (no loss). The step between
// representatives is 255/(levels-1). Higher quality always means an equal or
// smaller error bound.
package lossy

import (
	"fmt"
	"math"

	"github.com/norimage/norimage/pkg/compress/rle"
)

// Levels returns the number of representable sample values for a quality
// setting in 0..100.
func Levels(quality int) int {
	if quality < 0 {
		quality = 0
	}
	if quality > 100 {
		quality = 100
	}
	return 2 + quality*254/100
}

// MaxError returns the per-sample absolute error bound for a quality
// setting. Monotonically non-increasing in quality.
func MaxError(quality int) int {
	step := 255.0 / float64(Levels(quality)-1)
	return int(step/2) + 1
}

// quantTable builds the 256-entry sample-to-representative lookup.
func quantTable(quality int) [256]byte {
	step := 255.0 / float64(Levels(quality)-1)
	var table [256]byte
	for v := 0; v < 256; v++ {
		idx := math.Round(float64(v) / step)
		rep := math.Round(idx * step)
		if rep > 255 {
			rep = 255
		}
		table[v] = byte(rep)
	}
	return table
}

// Encode quantizes data at the given quality and run-length encodes the
// result. Quality must be in 0..100.
func Encode(data []byte, quality int) ([]byte, error) {
	if quality < 0 || quality > 100 {
		return nil, fmt.Errorf("lossy: quality %d out of range 0..100", quality)
	}

	table := quantTable(quality)
	quantized := make([]byte, len(data))
	for i, v := range data {
		quantized[i] = table[v]
	}
	return rle.Encode(quantized), nil
}

// Decode expands the run-length encoded representative stream. The stored
// values are already representatives, so no further dequantization is
// needed and quality is not required to decode.
func Decode(data []byte, rawLen int) ([]byte, error) {
	return rle.Decode(data, rawLen)
}
