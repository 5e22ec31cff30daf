// Package delta implements difference coding for CIF pixel payloads. Each
// byte is stored as the difference (mod 256) from the byte stride positions
// earlier; the first stride bytes are stored verbatim. A stride equal to the
// pixel channel count compares the same channel of the previous pixel, which
// keeps deltas small on smooth multi-channel data.
//
// The transform is length-preserving and lossless. Encoding never carries
// state across calls, so chunked payloads reset the baseline at every chunk
// boundary and chunks stay independently decodable.
package delta

// Encode produces the difference stream for data. A stride <= 0 is treated
// as 1.
func Encode(data []byte, stride int) []byte {
	if stride <= 0 {
		stride = 1
	}
	out := make([]byte, len(data))
	for i := range data {
		if i < stride {
			out[i] = data[i]
		} else {
			out[i] = data[i] - data[i-stride]
		}
	}
	return out
}

// Decode reconstructs the original bytes via a running sum (mod 256). It is
// the exact inverse of Encode for the same stride.
func Decode(data []byte, stride int) []byte {
	if stride <= 0 {
		stride = 1
	}
	out := make([]byte, len(data))
	for i := range data {
		if i < stride {
			out[i] = data[i]
		} else {
			out[i] = out[i-stride] + data[i]
		}
	}
	return out
}
