package ubj

import (
	"errors"
	"fmt"
)

// ValueError is returned by [Value] indexing, [Value.Append], and
// [Encoder.Encode] when the receiver's variant doesn't support the
// requested operation. Strict typed extraction fails with [CastError]
// instead.
type ValueError struct {
	// Op names the operation that failed, e.g. "index", "append".
	Op string
	// Type is the variant the Value actually held.
	Type Type
	// Reason is a human-readable explanation.
	Reason error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("ubj: cannot %s a %s value: %s", e.Op, e.Type, e.Reason)
}

func (e *ValueError) Unwrap() error {
	return e.Reason
}

func valueErr(op string, t Type, reason string, args ...any) error {
	return &ValueError{Op: op, Type: t, Reason: fmt.Errorf(reason, args...)}
}

// CastError is returned by a [Value]'s strict typed accessors (e.g.
// [Value.SignedInt], [Value.Str]) when the receiver's variant does not
// match the requested type. Unlike the lossy AsXxx family, these
// accessors never coerce.
type CastError struct {
	Type Type
	Want string
}

func (e *CastError) Error() string {
	return fmt.Sprintf("ubj: bad value cast: %s value cannot be cast to %s", e.Type, e.Want)
}

func castErr(t Type, want string) error {
	return &CastError{Type: t, Want: want}
}

// ParseError is returned by a [Decoder] when the wire data is
// malformed: an unexpected marker, a truncated stream, or a frame
// whose end marker doesn't match its start.
type ParseError struct {
	// Offset is the number of bytes consumed from the stream when the
	// error was detected.
	Offset int
	Reason error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ubj: parse error at offset %d: %s", e.Offset, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Reason
}

func parseErr(offset int, reason string, args ...any) error {
	return &ParseError{Offset: offset, Reason: fmt.Errorf(reason, args...)}
}

// ErrPolicyViolation is the sentinel wrapped by every error a
// [Decoder] returns when a [SizePolicy] limit is exceeded. Test with
// errors.Is(err, ErrPolicyViolation).
var ErrPolicyViolation = errors.New("size policy violation")

// PolicyError is the concrete type behind [ErrPolicyViolation]. It
// names which limit was exceeded and the offset at which decoding
// stopped.
type PolicyError struct {
	// Limit names the SizePolicy field that was exceeded, e.g.
	// "max_value_depth".
	Limit string
	Offset int
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("ubj: policy violation: %s exceeded at offset %d", e.Limit, e.Offset)
}

func (e *PolicyError) Unwrap() error {
	return ErrPolicyViolation
}

func policyErr(limit string, offset int) error {
	return &PolicyError{Limit: limit, Offset: offset}
}
