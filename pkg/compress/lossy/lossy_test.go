package lossy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradient(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i % 256)
	}
	return data
}

func maxDiff(a, b []byte) int {
	max := 0
	for i := range a {
		d := int(a[i]) - int(b[i])
		if d < 0 {
			d = -d
		}
		if d > max {
			max = d
		}
	}
	return max
}

func TestLossy_ErrorWithinBound(t *testing.T) {
	raw := gradient(4096)

	for _, quality := range []int{0, 10, 25, 50, 75, 90, 100} {
		compressed, err := Encode(raw, quality)
		require.NoError(t, err)

		decoded, err := Decode(compressed, len(raw))
		require.NoError(t, err)
		require.Len(t, decoded, len(raw))

		diff := maxDiff(raw, decoded)
		t.Logf("quality=%d levels=%d maxDiff=%d bound=%d size=%d/%d",
			quality, Levels(quality), diff, MaxError(quality), len(compressed), len(raw))
		assert.LessOrEqual(t, diff, MaxError(quality))
	}
}

func TestLossy_BoundMonotoneInQuality(t *testing.T) {
	prevBound := math.MaxInt
	for quality := 0; quality <= 100; quality++ {
		bound := MaxError(quality)
		assert.LessOrEqual(t, bound, prevBound, "bound must not grow with quality (q=%d)", quality)
		prevBound = bound
	}
}

func TestLossy_FullQualityIsExact(t *testing.T) {
	raw := gradient(1024)
	require.Equal(t, 256, Levels(100))

	compressed, err := Encode(raw, 100)
	require.NoError(t, err)
	decoded, err := Decode(compressed, len(raw))
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)
}

func TestLossy_QuantizationImprovesRuns(t *testing.T) {
	// A slow ramp quantizes to long runs of the same representative.
	raw := make([]byte, 1024)
	for i := range raw {
		raw[i] = byte(i / 64)
	}

	low, err := Encode(raw, 10)
	require.NoError(t, err)
	high, err := Encode(raw, 100)
	require.NoError(t, err)

	t.Logf("q=10: %d bytes, q=100: %d bytes, raw: %d", len(low), len(high), len(raw))
	assert.Less(t, len(low), len(high))
}

func TestLossy_QualityOutOfRange(t *testing.T) {
	_, err := Encode([]byte{1, 2, 3}, -1)
	require.Error(t, err)
	_, err = Encode([]byte{1, 2, 3}, 101)
	require.Error(t, err)
}
