// Package ubj implements a self-describing, length-prefixed,
// big-endian binary interchange format in the UBJSON family: a
// [Value] tree of ten variants (Null, Bool, Char, SignedInt,
// UnsignedInt, Float, String, Binary, Array, Map), and a streaming
// [Encoder]/[Decoder] pair that reads and writes it.
//
// # Values
//
// A [Value] is built with one of the constructor functions —
// [Null], [Bool], [Char], [Int64], [Uint64], [Float64], [String],
// [Binary], [Array], [Map] — and inspected with [Value.Type]. Arrays
// and Maps own their children exclusively: [Value.Clone] deep-copies
// a subtree, and [Value.Take] moves a Value's contents out without
// copying, leaving the receiver Null.
//
// Lossy conversions ([Value.AsBool], [Value.AsInt64], ...) always
// succeed, coercing across variants the way a dynamically typed
// language would. Strict accessors ([Value.SignedInt],
// [Value.Str], ...) fail with a [CastError] unless the receiver
// already holds the requested variant.
//
// # Wire format
//
// Encoding and decoding are streaming: [NewEncoder]
// wraps an [io.Writer] and [Encoder.Encode] writes one Value at a
// time; [NewDecoder] wraps an [io.Reader] and [Decoder.Decode] reads
// one Value at a time. A failed Decode leaves the underlying
// [io.Reader] positioned wherever parsing stopped — there is no
// resync or skip-to-next-value recovery, so a Decoder is not safe to
// reuse after an error unless the caller knows the stream's framing
// well enough to realign it first. [Marshal] and [Unmarshal] are
// convenience wrappers around a single Encode/Decode.
//
// Every integer is narrowed to the smallest wire representation of
// its signedness that holds its value. A float is written as Float32
// whenever its magnitude is within float32's finite range, even if
// that loses precision, and as Float64 otherwise. Decoding always
// widens back to the variant's native 64-bit width. Arrays
// whose elements share one scalar marker encode in the compact
// homogeneous form; everything else falls back to the general,
// individually-tagged form.
//
// # Resource limits
//
// A [Decoder] enforces a [SizePolicy] against the stream it reads:
// nesting depth, total bytes, and per-string/binary/key/container
// sizes are all bounded, so that decoding attacker-controlled input
// cannot exhaust memory or the call stack. Exceeding any limit
// returns an error wrapping [ErrPolicyViolation].
package ubj
