// Package cif implements the Custom Image Format container: a little-endian
// binary layout of magic, version, color mode, dimensions, compression tag,
// JSON metadata, a chunked compressed pixel payload, and a SHA-256 footer.
//
// Basic usage:
//
//	img, err := cif.NewImage(w, h, cif.RGB, samples)
//	...
//	var buf bytes.Buffer
//	err = cif.Encode(&buf, img, meta, cif.EncodeOptions{Compression: compress.RLE})
//	...
//	file, err := cif.Decode(bytes.NewReader(buf.Bytes()), cif.DecodeOptions{})
package cif

import "fmt"

// Format constants. These are wire values; changing any of them breaks
// compatibility with existing files.
const (
	// Version is the current format revision.
	Version = 2
	// MaxDimension bounds width and height.
	MaxDimension = 32768
)

// magic is the 4-byte tag opening every CIF stream.
var magic = []byte("CIMG")

// Extension returns the conventional CIF file extension.
func Extension() string {
	return ".cif"
}

// ColorMode identifies the sample layout of an image.
type ColorMode uint8

const (
	// Gray is single-channel luminance.
	Gray ColorMode = 0
	// RGB is three interleaved channels.
	RGB ColorMode = 1
)

// Channels returns the number of samples per pixel.
func (m ColorMode) Channels() int {
	if m == RGB {
		return 3
	}
	return 1
}

// String returns the mode name.
func (m ColorMode) String() string {
	switch m {
	case Gray:
		return "gray"
	case RGB:
		return "rgb"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(m))
	}
}

func parseColorMode(v uint8) (ColorMode, error) {
	switch ColorMode(v) {
	case Gray, RGB:
		return ColorMode(v), nil
	default:
		return 0, fmt.Errorf("%w: unsupported color mode %d", ErrFormat, v)
	}
}

// Image is a decoded pixel buffer: dimensions, color mode, and exactly
// width*height*channels raw samples in row-major interleaved order.
// Transforms never mutate an Image in place; they produce a new one.
type Image struct {
	Width   uint32
	Height  uint32
	Mode    ColorMode
	Samples []byte
}

// validateDimensions rejects zero or oversized dimensions.
func validateDimensions(width, height uint32) error {
	if width == 0 || height == 0 || width > MaxDimension || height > MaxDimension {
		return fmt.Errorf("%w: %dx%d", ErrDimension, width, height)
	}
	return nil
}

// NewImage constructs an Image, validating that the sample count matches
// the declared dimensions exactly.
func NewImage(width, height uint32, mode ColorMode, samples []byte) (*Image, error) {
	if err := validateDimensions(width, height); err != nil {
		return nil, err
	}
	expected := int(width) * int(height) * mode.Channels()
	if len(samples) != expected {
		return nil, fmt.Errorf("%w: %dx%d %s needs %d samples, have %d",
			ErrDimension, width, height, mode, expected, len(samples))
	}
	return &Image{Width: width, Height: height, Mode: mode, Samples: samples}, nil
}

// Clone returns a deep copy.
func (img *Image) Clone() *Image {
	samples := make([]byte, len(img.Samples))
	copy(samples, img.Samples)
	return &Image{Width: img.Width, Height: img.Height, Mode: img.Mode, Samples: samples}
}
