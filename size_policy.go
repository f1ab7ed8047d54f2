package ubj

// SizePolicy bounds the resources a [Decoder] will spend reconstructing
// a single top-level Value from an untrusted stream. Every limit is
// hard: exceeding it aborts the decode with an error wrapping
// [ErrPolicyViolation].
//
// A SizePolicy is immutable once passed to [NewDecoder]; callers that
// need different limits per stream construct a new one.
type SizePolicy struct {
	// MaxValueDepth bounds nested container depth.
	MaxValueDepth int
	// MaxObjectSize bounds the total bytes consumed decoding one
	// top-level value.
	MaxObjectSize int
	// MaxStringSize bounds the byte length of one String payload.
	MaxStringSize int
	// MaxBinarySize bounds the byte length of one Binary payload.
	MaxBinarySize int
	// MaxKeySize bounds the byte length of one Map key. The wire
	// format's one-byte key-length prefix caps this at 255 regardless
	// of what is configured here.
	MaxKeySize int
	// MaxChildren bounds the direct child count of one container.
	MaxChildren int
}

// DefaultPolicy returns the suggested default SizePolicy: depth 32,
// 64 MiB total, 8 MiB strings, 64 MiB binaries, 255-byte keys, 1024
// children.
func DefaultPolicy() SizePolicy {
	return SizePolicy{
		MaxValueDepth: 32,
		MaxObjectSize: 64 * 1024 * 1024,
		MaxStringSize: 8 * 1024 * 1024,
		MaxBinarySize: 64 * 1024 * 1024,
		MaxKeySize:    255,
		MaxChildren:   1024,
	}
}

func (p SizePolicy) keyLimit() int {
	if p.MaxKeySize <= 0 || p.MaxKeySize > 255 {
		return 255
	}
	return p.MaxKeySize
}
