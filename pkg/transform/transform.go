// Package transform provides pure pixel-buffer transforms: brightness,
// contrast, grayscale conversion, resize, and edge detection. Every
// transform takes an image and returns a new one; inputs are never
// mutated. Parameters are validated at the call boundary and out-of-domain
// values are rejected before any processing. Transforms are applied in
// exactly the order the caller requests.
package transform

import (
	"fmt"
	"math"

	"github.com/norimage/norimage/pkg/cif"
)

// Luminance weights for RGB to gray conversion (ITU-R BT.601).
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// Brightness shifts every sample by delta, clamping to 0..255. Gray and
// RGB samples are treated independently per channel. delta must be in
// [-255, 255].
func Brightness(img *cif.Image, delta int) (*cif.Image, error) {
	if delta < -255 || delta > 255 {
		return nil, fmt.Errorf("%w: brightness delta %d outside [-255,255]", cif.ErrParameter, delta)
	}

	out := make([]byte, len(img.Samples))
	parallelRows(int(img.Height), rowStride(img), img.Samples, out, func(src, dst []byte) {
		for i, v := range src {
			dst[i] = clampInt(int(v) + delta)
		}
	})
	return cif.NewImage(img.Width, img.Height, img.Mode, out)
}

// ContrastFactor maps a contrast delta in [-255, 255] to a multiplicative
// factor. The curve is monotonically increasing and passes through 1.0 at
// zero: factor = 259*(delta+255) / (255*(259-delta)).
func ContrastFactor(delta int) float64 {
	return (259.0 * (float64(delta) + 255.0)) / (255.0 * (259.0 - float64(delta)))
}

// Contrast rescales samples around the midpoint:
// clamp((s-128)*factor+128, 0, 255). delta must be in [-255, 255].
func Contrast(img *cif.Image, delta int) (*cif.Image, error) {
	if delta < -255 || delta > 255 {
		return nil, fmt.Errorf("%w: contrast delta %d outside [-255,255]", cif.ErrParameter, delta)
	}

	factor := ContrastFactor(delta)
	// Precompute the per-sample mapping once; it is identical for every
	// channel.
	var table [256]byte
	for v := 0; v < 256; v++ {
		table[v] = clampFloat(factor*(float64(v)-128.0) + 128.0)
	}

	out := make([]byte, len(img.Samples))
	parallelRows(int(img.Height), rowStride(img), img.Samples, out, func(src, dst []byte) {
		for i, v := range src {
			dst[i] = table[v]
		}
	})
	return cif.NewImage(img.Width, img.Height, img.Mode, out)
}

// Grayscale converts an RGB image to single-channel luminance using fixed
// weights. Gray input is returned as a copy. The conversion is
// irreversible: it changes the color mode and sample count.
func Grayscale(img *cif.Image) (*cif.Image, error) {
	if img.Mode == cif.Gray {
		return img.Clone(), nil
	}

	out := make([]byte, int(img.Width)*int(img.Height))
	parallelDo(0, int(img.Height), func(y int) {
		srcRow := img.Samples[y*int(img.Width)*3:]
		dstRow := out[y*int(img.Width):]
		for x := 0; x < int(img.Width); x++ {
			r := float64(srcRow[x*3])
			g := float64(srcRow[x*3+1])
			b := float64(srcRow[x*3+2])
			dstRow[x] = clampFloat(lumaR*r + lumaG*g + lumaB*b)
		}
	})
	return cif.NewImage(img.Width, img.Height, cif.Gray, out)
}

// rowStride returns the bytes per row.
func rowStride(img *cif.Image) int {
	return int(img.Width) * img.Mode.Channels()
}

func clampInt(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

func clampFloat(x float64) byte {
	v := int64(math.Round(x))
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
