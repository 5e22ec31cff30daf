package cif

import "errors"

// Error kinds surfaced by the codec. Callers classify failures with
// errors.Is; every kind is fatal to the operation that raised it and none is
// retried internally; encode/decode are deterministic over their input.
var (
	// ErrFormat reports a structurally invalid stream: bad magic,
	// unsupported version, or a malformed metadata length.
	ErrFormat = errors.New("cif: invalid format")

	// ErrIntegrity reports a checksum mismatch. The file must be treated
	// as corrupt; no pixel data is returned.
	ErrIntegrity = errors.New("cif: checksum mismatch")

	// ErrDimension reports zero or oversized dimensions, or a payload
	// inconsistent with the declared dimensions. Raised before any large
	// allocation.
	ErrDimension = errors.New("cif: invalid dimensions")

	// ErrParameter reports a transform or option value outside its
	// declared domain, rejected before any processing.
	ErrParameter = errors.New("cif: parameter out of range")

	// ErrCompression reports a strategy-specific decode failure such as a
	// truncated run.
	ErrCompression = errors.New("cif: compression error")
)
