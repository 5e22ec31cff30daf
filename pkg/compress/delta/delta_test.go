package delta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelta_RoundTrip(t *testing.T) {
	cases := map[string][]byte{
		"empty":    nil,
		"single":   {200},
		"ramp":     {10, 11, 12, 13, 14},
		"wrapping": {250, 5, 250, 5},
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			decoded := Decode(Encode(raw, 1), 1)
			assert.Equal(t, raw, decoded)
		})
	}
}

func TestDelta_FirstByteVerbatim(t *testing.T) {
	encoded := Encode([]byte{100, 101, 103}, 1)
	require.Equal(t, []byte{100, 1, 2}, encoded)
}

func TestDelta_WrapsMod256(t *testing.T) {
	// 5 - 250 underflows; decoding must wrap back.
	encoded := Encode([]byte{250, 5}, 1)
	require.Equal(t, byte(11), encoded[1])
	assert.Equal(t, []byte{250, 5}, Decode(encoded, 1))
}

func TestDelta_PixelStride(t *testing.T) {
	// Interleaved RGB where each channel ramps independently. A stride of 3
	// compares the same channel of the previous pixel.
	raw := []byte{
		10, 100, 200,
		11, 101, 201,
		12, 102, 202,
	}
	encoded := Encode(raw, 3)

	// First pixel verbatim, then per-channel differences of 1.
	require.Equal(t, []byte{10, 100, 200, 1, 1, 1, 1, 1, 1}, encoded)
	assert.Equal(t, raw, Decode(encoded, 3))
}

func TestDelta_StrideLongerThanData(t *testing.T) {
	raw := []byte{1, 2}
	assert.Equal(t, raw, Encode(raw, 8))
	assert.Equal(t, raw, Decode(raw, 8))
}
