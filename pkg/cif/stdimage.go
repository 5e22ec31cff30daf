package cif

import (
	"image"
	"image/color"
)

// ToImage converts to a standard library image: *image.Gray for Gray mode,
// *image.NRGBA (opaque) for RGB. The pixel data is copied.
func (img *Image) ToImage() image.Image {
	w, h := int(img.Width), int(img.Height)
	switch img.Mode {
	case Gray:
		out := image.NewGray(image.Rect(0, 0, w, h))
		copy(out.Pix, img.Samples)
		return out
	default:
		out := image.NewNRGBA(image.Rect(0, 0, w, h))
		for i := 0; i < w*h; i++ {
			out.Pix[i*4] = img.Samples[i*3]
			out.Pix[i*4+1] = img.Samples[i*3+1]
			out.Pix[i*4+2] = img.Samples[i*3+2]
			out.Pix[i*4+3] = 0xFF
		}
		return out
	}
}

// FromImage converts a standard library image into the given color mode,
// dropping any alpha channel.
func FromImage(src image.Image, mode ColorMode) (*Image, error) {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, validateDimensions(uint32(w), uint32(h))
	}

	samples := make([]byte, w*h*mode.Channels())
	switch mode {
	case Gray:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := color.GrayModel.Convert(src.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
				samples[y*w+x] = c.Y
			}
		}
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := color.NRGBAModel.Convert(src.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
				i := (y*w + x) * 3
				samples[i] = c.R
				samples[i+1] = c.G
				samples[i+2] = c.B
			}
		}
	}
	return NewImage(uint32(w), uint32(h), mode, samples)
}
