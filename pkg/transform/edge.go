package transform

import (
	"fmt"
	"math"

	"github.com/norimage/norimage/pkg/cif"
)

// Sobel kernels for horizontal and vertical gradients.
var (
	sobelX = [3][3]int{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY = [3][3]int{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
)

// EdgeDetect runs a 3x3 Sobel operator over the image's luminance (derived
// on the fly for RGB input) and marks pixels whose gradient magnitude
// exceeds threshold with maximal brightness, all others with minimal. The
// result is always Gray; border pixels stay dark. threshold must be in
// [0, 255].
func EdgeDetect(img *cif.Image, threshold int) (*cif.Image, error) {
	if threshold < 0 || threshold > 255 {
		return nil, fmt.Errorf("%w: edge threshold %d outside [0,255]", cif.ErrParameter, threshold)
	}

	gray, err := Grayscale(img)
	if err != nil {
		return nil, err
	}

	w, h := int(img.Width), int(img.Height)
	out := make([]byte, w*h)
	if w < 3 || h < 3 {
		return cif.NewImage(img.Width, img.Height, cif.Gray, out)
	}

	lum := gray.Samples
	parallelDo(1, h-1, func(y int) {
		for x := 1; x < w-1; x++ {
			var gx, gy int
			for ky := 0; ky < 3; ky++ {
				for kx := 0; kx < 3; kx++ {
					p := int(lum[(y+ky-1)*w+(x+kx-1)])
					gx += p * sobelX[ky][kx]
					gy += p * sobelY[ky][kx]
				}
			}
			mag := int(math.Sqrt(float64(gx*gx + gy*gy)))
			if mag > 255 {
				mag = 255
			}
			if mag > threshold {
				out[y*w+x] = 255
			}
		}
	})
	return cif.NewImage(img.Width, img.Height, cif.Gray, out)
}
