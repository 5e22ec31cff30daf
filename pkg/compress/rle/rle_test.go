package rle

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRLE_RoundTrip(t *testing.T) {
	cases := map[string][]byte{
		"empty":     nil,
		"single":    {42},
		"short run": {10, 10},
		"runs":      {0, 0, 0, 0, 7, 7, 255, 255, 255},
		"gradient":  {0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			compressed := Encode(raw)
			decoded, err := Decode(compressed, len(raw))
			require.NoError(t, err, "Decode failed")
			assert.True(t, bytes.Equal(raw, decoded), "round trip mismatch")
		})
	}
}

func TestRLE_SinglePairForShortRun(t *testing.T) {
	// A 2-sample run must encode as exactly one (value, count) pair.
	compressed := Encode([]byte{10, 10})
	require.Equal(t, []byte{10, 2}, compressed)
}

func TestRLE_LongRunSplits(t *testing.T) {
	raw := bytes.Repeat([]byte{9}, 600)
	compressed := Encode(raw)

	// 600 = 255 + 255 + 90, three pairs.
	require.Equal(t, []byte{9, 255, 9, 255, 9, 90}, compressed)

	decoded, err := Decode(compressed, len(raw))
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)
}

func TestRLE_UniformDataCompresses(t *testing.T) {
	raw := bytes.Repeat([]byte{128}, 64*1024)
	compressed := Encode(raw)
	t.Logf("Compressed size: %d / %d", len(compressed), len(raw))
	assert.Less(t, len(compressed), len(raw)/100)
}

func TestRLE_HighEntropyExpands(t *testing.T) {
	raw := make([]byte, 256)
	for i := range raw {
		raw[i] = byte(i)
	}
	compressed := Encode(raw)
	t.Logf("Compressed size: %d / %d", len(compressed), len(raw))
	// No runs: every byte becomes a pair.
	assert.Equal(t, 2*len(raw), len(compressed))
}

func TestRLE_DecodeErrors(t *testing.T) {
	_, err := Decode([]byte{10, 2, 7}, 3)
	require.ErrorIs(t, err, ErrTruncated, "odd-length stream")

	_, err = Decode([]byte{10, 0}, 1)
	require.Error(t, err, "zero run length")

	_, err = Decode([]byte{10, 5}, 3)
	require.Error(t, err, "overlong expansion")

	_, err = Decode([]byte{10, 2}, 5)
	require.Error(t, err, "short expansion")
}
