package transform

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/norimage/norimage/pkg/cif"
)

func grayImage(t *testing.T, w, h uint32, samples []byte) *cif.Image {
	t.Helper()
	img, err := cif.NewImage(w, h, cif.Gray, samples)
	require.NoError(t, err)
	return img
}

func uniformRGB(t *testing.T, w, h uint32, r, g, b byte) *cif.Image {
	t.Helper()
	samples := make([]byte, int(w)*int(h)*3)
	for i := 0; i < int(w)*int(h); i++ {
		samples[i*3] = r
		samples[i*3+1] = g
		samples[i*3+2] = b
	}
	img, err := cif.NewImage(w, h, cif.RGB, samples)
	require.NoError(t, err)
	return img
}

func TestBrightness_ClampsAtBounds(t *testing.T) {
	img := grayImage(t, 2, 1, []byte{250, 10})

	bright, err := Brightness(img, 255)
	require.NoError(t, err)
	assert.Equal(t, byte(255), bright.Samples[0], "250+255 must clamp to 255")

	dark, err := Brightness(img, -255)
	require.NoError(t, err)
	assert.Equal(t, byte(0), dark.Samples[1], "10-255 must clamp to 0")
}

func TestBrightness_DoesNotMutateInput(t *testing.T) {
	original := []byte{1, 2, 3, 4}
	img := grayImage(t, 2, 2, append([]byte(nil), original...))

	_, err := Brightness(img, 100)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(original, img.Samples), "input buffer must stay untouched")
}

func TestBrightness_ParameterDomain(t *testing.T) {
	img := grayImage(t, 1, 1, []byte{0})

	_, err := Brightness(img, 256)
	require.ErrorIs(t, err, cif.ErrParameter)
	_, err = Brightness(img, -256)
	require.ErrorIs(t, err, cif.ErrParameter)
}

func TestContrast_ZeroDeltaIsIdentity(t *testing.T) {
	samples := []byte{0, 50, 128, 200, 255, 13}
	img := grayImage(t, 3, 2, append([]byte(nil), samples...))

	out, err := Contrast(img, 0)
	require.NoError(t, err)
	assert.Equal(t, samples, out.Samples)
}

func TestContrast_FactorCurve(t *testing.T) {
	assert.InDelta(t, 1.0, ContrastFactor(0), 1e-9)
	assert.Greater(t, ContrastFactor(100), ContrastFactor(0))
	assert.Less(t, ContrastFactor(-100), ContrastFactor(0))

	prev := ContrastFactor(-255)
	for d := -254; d <= 255; d++ {
		f := ContrastFactor(d)
		assert.Greater(t, f, prev, "factor must be strictly increasing at delta=%d", d)
		prev = f
	}
}

func TestContrast_SpreadsAroundMidpoint(t *testing.T) {
	img := grayImage(t, 2, 1, []byte{100, 156})

	out, err := Contrast(img, 128)
	require.NoError(t, err)
	assert.Less(t, out.Samples[0], byte(100), "below-midpoint samples move down")
	assert.Greater(t, out.Samples[1], byte(156), "above-midpoint samples move up")

	_, err = Contrast(img, 300)
	require.ErrorIs(t, err, cif.ErrParameter)
}

func TestGrayscale_LuminanceWeights(t *testing.T) {
	img := uniformRGB(t, 2, 2, 255, 0, 0)

	gray, err := Grayscale(img)
	require.NoError(t, err)
	require.Equal(t, cif.Gray, gray.Mode)
	require.Len(t, gray.Samples, 4)
	// 0.299 * 255 = 76.245
	assert.Equal(t, byte(76), gray.Samples[0])
}

func TestGrayscale_GrayPassthroughCopies(t *testing.T) {
	img := grayImage(t, 2, 1, []byte{5, 6})
	out, err := Grayscale(img)
	require.NoError(t, err)
	assert.Equal(t, img.Samples, out.Samples)

	out.Samples[0] = 99
	assert.Equal(t, byte(5), img.Samples[0], "result must not alias the input")
}

func TestResize_Dimensions(t *testing.T) {
	img := uniformRGB(t, 4, 4, 10, 20, 30)

	down, err := Resize(img, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), down.Width)
	assert.Equal(t, uint32(2), down.Height)
	assert.Len(t, down.Samples, 2*2*3)

	up, err := Resize(img, 8, 8)
	require.NoError(t, err)
	assert.Len(t, up.Samples, 8*8*3)
}

func TestResize_UniformStaysUniform(t *testing.T) {
	img := uniformRGB(t, 8, 8, 40, 80, 120)

	out, err := Resize(img, 3, 5)
	require.NoError(t, err)
	for i := 0; i < len(out.Samples); i += 3 {
		assert.Equal(t, byte(40), out.Samples[i])
		assert.Equal(t, byte(80), out.Samples[i+1])
		assert.Equal(t, byte(120), out.Samples[i+2])
	}
}

func TestResize_ParameterDomain(t *testing.T) {
	img := uniformRGB(t, 4, 4, 0, 0, 0)
	_, err := Resize(img, 0, 4)
	require.ErrorIs(t, err, cif.ErrParameter)
	_, err = Resize(img, 4, 0)
	require.ErrorIs(t, err, cif.ErrParameter)
}

func TestEdgeDetect_FlatImageHasNoEdges(t *testing.T) {
	img := uniformRGB(t, 8, 8, 90, 90, 90)

	out, err := EdgeDetect(img, 50)
	require.NoError(t, err)
	require.Equal(t, cif.Gray, out.Mode)
	for _, v := range out.Samples {
		require.Equal(t, byte(0), v)
	}
}

func TestEdgeDetect_FindsVerticalStep(t *testing.T) {
	// Left half black, right half white: a strong vertical edge.
	w, h := 8, 8
	samples := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := w / 2; x < w; x++ {
			samples[y*w+x] = 255
		}
	}
	img := grayImage(t, uint32(w), uint32(h), samples)

	out, err := EdgeDetect(img, 50)
	require.NoError(t, err)

	// The step column must be marked, far columns must not.
	assert.Equal(t, byte(255), out.Samples[3*w+w/2-1])
	assert.Equal(t, byte(0), out.Samples[3*w+1])
	assert.Equal(t, byte(0), out.Samples[3*w+w-2])
}

func TestEdgeDetect_ParameterDomain(t *testing.T) {
	img := uniformRGB(t, 4, 4, 0, 0, 0)
	_, err := EdgeDetect(img, -1)
	require.ErrorIs(t, err, cif.ErrParameter)
	_, err = EdgeDetect(img, 256)
	require.ErrorIs(t, err, cif.ErrParameter)
}
