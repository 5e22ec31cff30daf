package transform

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/norimage/norimage/pkg/cif"
)

// Resize scales img to exactly width x height using a Catmull-Rom scaler,
// which holds up well for both upscaling and downscaling. Aspect ratio is
// not preserved automatically; the caller supplies the exact target.
func Resize(img *cif.Image, width, height uint32) (*cif.Image, error) {
	if width == 0 || height == 0 || width > cif.MaxDimension || height > cif.MaxDimension {
		return nil, fmt.Errorf("%w: resize target %dx%d", cif.ErrParameter, width, height)
	}
	if width == img.Width && height == img.Height {
		return img.Clone(), nil
	}

	src := img.ToImage()
	rect := image.Rect(0, 0, int(width), int(height))

	switch img.Mode {
	case cif.Gray:
		dst := image.NewGray(rect)
		draw.CatmullRom.Scale(dst, rect, src, src.Bounds(), draw.Src, nil)
		samples := make([]byte, len(dst.Pix))
		copy(samples, dst.Pix)
		return cif.NewImage(width, height, cif.Gray, samples)
	default:
		dst := image.NewNRGBA(rect)
		draw.CatmullRom.Scale(dst, rect, src, src.Bounds(), draw.Src, nil)
		samples := make([]byte, int(width)*int(height)*3)
		for i := 0; i < int(width)*int(height); i++ {
			samples[i*3] = dst.Pix[i*4]
			samples[i*3+1] = dst.Pix[i*4+1]
			samples[i*3+2] = dst.Pix[i*4+2]
		}
		return cif.NewImage(width, height, cif.RGB, samples)
	}
}
