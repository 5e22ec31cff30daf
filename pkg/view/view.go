// Package view maintains interactive display state over a decoded image:
// cumulative brightness and contrast adjustments plus an edge overlay
// toggle. The source image is never mutated; each Frame call renders the
// current state into a fresh RGBA frame.
package view

import (
	"fmt"
	"image"
	"image/color"

	"github.com/norimage/norimage/pkg/cif"
	"github.com/norimage/norimage/pkg/transform"
)

// DefaultEdgeThreshold is the Sobel magnitude cutoff used by the edge
// overlay.
const DefaultEdgeThreshold = 100

// Session holds the adjustable display state for one image.
type Session struct {
	src *cif.Image

	brightness    int
	contrast      int
	edges         bool
	edgeThreshold int
}

// NewSession starts a session over img. The image is cloned so later
// mutations by the caller do not leak into rendered frames.
func NewSession(img *cif.Image) (*Session, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", cif.ErrParameter)
	}
	if _, err := cif.NewImage(img.Width, img.Height, img.Mode, img.Samples); err != nil {
		return nil, err
	}
	return &Session{src: img.Clone(), edgeThreshold: DefaultEdgeThreshold}, nil
}

// AdjustBrightness shifts the cumulative brightness by delta, clamped to
// [-255, 255].
func (s *Session) AdjustBrightness(delta int) {
	s.brightness = clampDelta(s.brightness + delta)
}

// AdjustContrast shifts the cumulative contrast by delta, clamped to
// [-255, 255].
func (s *Session) AdjustContrast(delta int) {
	s.contrast = clampDelta(s.contrast + delta)
}

// ToggleEdges flips the edge overlay and reports the new state.
func (s *Session) ToggleEdges() bool {
	s.edges = !s.edges
	return s.edges
}

// SetEdgeThreshold sets the Sobel cutoff for the edge overlay.
func (s *Session) SetEdgeThreshold(threshold int) error {
	if threshold < 0 || threshold > 255 {
		return fmt.Errorf("%w: edge threshold %d out of [0, 255]", cif.ErrParameter, threshold)
	}
	s.edgeThreshold = threshold
	return nil
}

// Brightness returns the cumulative brightness adjustment.
func (s *Session) Brightness() int { return s.brightness }

// Contrast returns the cumulative contrast adjustment.
func (s *Session) Contrast() int { return s.contrast }

// Edges reports whether the edge overlay is active.
func (s *Session) Edges() bool { return s.edges }

// Reset restores the neutral state: no adjustments, overlay off.
func (s *Session) Reset() {
	s.brightness = 0
	s.contrast = 0
	s.edges = false
}

// Render applies the session state to the source and returns the result.
// Adjustments always apply in the same order regardless of the order the
// state was changed in: brightness, contrast, then the edge overlay.
func (s *Session) Render() (*cif.Image, error) {
	img := s.src
	var err error
	if s.brightness != 0 {
		if img, err = transform.Brightness(img, s.brightness); err != nil {
			return nil, err
		}
	}
	if s.contrast != 0 {
		if img, err = transform.Contrast(img, s.contrast); err != nil {
			return nil, err
		}
	}
	if s.edges {
		if img, err = transform.EdgeDetect(img, s.edgeThreshold); err != nil {
			return nil, err
		}
	}
	if img == s.src {
		img = s.src.Clone()
	}
	return img, nil
}

// Frame renders the session state as a standard RGBA frame suitable for
// display surfaces.
func (s *Session) Frame() (*image.RGBA, error) {
	img, err := s.Render()
	if err != nil {
		return nil, err
	}

	frame := image.NewRGBA(image.Rect(0, 0, int(img.Width), int(img.Height)))
	w := int(img.Width)
	for y := 0; y < int(img.Height); y++ {
		for x := 0; x < w; x++ {
			var c color.RGBA
			if img.Mode == cif.Gray {
				v := img.Samples[y*w+x]
				c = color.RGBA{R: v, G: v, B: v, A: 255}
			} else {
				i := (y*w + x) * 3
				c = color.RGBA{R: img.Samples[i], G: img.Samples[i+1], B: img.Samples[i+2], A: 255}
			}
			frame.SetRGBA(x, y, c)
		}
	}
	return frame, nil
}

func clampDelta(v int) int {
	if v < -255 {
		return -255
	}
	if v > 255 {
		return 255
	}
	return v
}
