package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrLimitExceeded is returned (wrapped) by [Reader.Read] and
// [Reader.ReadByte] when honoring the request would read past the
// configured byte budget.
var ErrLimitExceeded = errors.New("wire: read would exceed configured byte limit")

// A Reader reads big-endian framed values off an underlying
// [io.Reader], counting every byte consumed against an optional
// budget so that a decoder built on top of it can enforce a
// [ubj's] SizePolicy without trusting claimed lengths ahead of time.
//
// Reader performs no buffering beyond a single-byte pushback slot,
// used to resolve the one genuine lookahead the wire format requires
// (see [Reader.ReadByte] and [Reader.UnreadByte]).
type Reader struct {
	in  io.Reader
	n   int // bytes read so far
	max int // budget; 0 means unlimited

	pushed    byte
	hasPushed bool
}

// NewReader returns a Reader that reads from in, failing any read
// that would bring the total bytes consumed past max. A max of 0
// means unlimited.
func NewReader(in io.Reader, max int) *Reader {
	return &Reader{in: in, max: max}
}

// BytesRead returns the total number of bytes consumed so far.
func (r *Reader) BytesRead() int { return r.n }

func (r *Reader) checkBudget(want int) error {
	if r.max > 0 && r.n+want > r.max {
		return fmt.Errorf("%w: %d read, %d requested, limit %d", ErrLimitExceeded, r.n, want, r.max)
	}
	return nil
}

// Read reads exactly n bytes, or returns an error. Short reads from
// the underlying stream are reported as errors, never returned
// partially.
func (r *Reader) Read(n int) ([]byte, error) {
	if err := r.checkBudget(n); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.in, buf); err != nil {
		return nil, fmt.Errorf("wire: short read (%d of %d bytes): %w", r.n, r.n+n, err)
	}
	r.n += n
	return buf, nil
}

// ReadByte reads and returns a single byte, preferring a byte stashed
// by a prior call to [Reader.UnreadByte].
func (r *Reader) ReadByte() (byte, error) {
	if r.hasPushed {
		r.hasPushed = false
		return r.pushed, nil
	}
	bs, err := r.Read(1)
	if err != nil {
		return 0, err
	}
	return bs[0], nil
}

// UnreadByte stashes b to be returned by the next call to
// [Reader.ReadByte]. Only one byte of pushback is supported; it is a
// programming error to call UnreadByte twice without an intervening
// ReadByte.
func (r *Reader) UnreadByte(b byte) {
	if r.hasPushed {
		panic("wire: UnreadByte called with a byte already pushed back")
	}
	r.pushed = b
	r.hasPushed = true
}

// ReadMarker reads one byte and returns it as a Marker.
func (r *Reader) ReadMarker() (Marker, error) {
	b, err := r.ReadByte()
	return Marker(b), err
}

// ReadUint8 reads one unsigned byte.
func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.ReadByte()
	return b, err
}

// ReadUint16 reads a big-endian uint16.
func (r *Reader) ReadUint16() (uint16, error) {
	bs, err := r.Read(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(bs), nil
}

// ReadUint32 reads a big-endian uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	bs, err := r.Read(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(bs), nil
}

// ReadUint64 reads a big-endian uint64.
func (r *Reader) ReadUint64() (uint64, error) {
	bs, err := r.Read(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(bs), nil
}

// ReadInt16 reads a big-endian int16.
func (r *Reader) ReadInt16() (int16, error) {
	u, err := r.ReadUint16()
	return int16(u), err
}

// ReadInt32 reads a big-endian int32.
func (r *Reader) ReadInt32() (int32, error) {
	u, err := r.ReadUint32()
	return int32(u), err
}

// ReadInt64 reads a big-endian int64.
func (r *Reader) ReadInt64() (int64, error) {
	u, err := r.ReadUint64()
	return int64(u), err
}

// ReadFloat32 reads a big-endian IEEE-754 single-precision float.
func (r *Reader) ReadFloat32() (float32, error) {
	u, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(u), nil
}

// ReadFloat64 reads a big-endian IEEE-754 double-precision float.
func (r *Reader) ReadFloat64() (float64, error) {
	u, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(u), nil
}

// ReadCount reads a count token: a marker in {Uint8, Uint16, Uint32}
// followed by 1/2/4 bytes of unsigned length, per the wire format's
// "count" production. It returns the decoded value and ok=true. If
// the marker read is not a count marker, ok is false and m holds the
// marker that was read instead (the caller decides what to make of
// it: a container-end marker, or a width hint).
func (r *Reader) ReadCount() (value int, m Marker, ok bool, err error) {
	m, err = r.ReadMarker()
	if err != nil {
		return 0, 0, false, err
	}
	if !m.IsCount() {
		return 0, m, false, nil
	}
	switch m {
	case Uint8:
		b, err := r.ReadUint8()
		if err != nil {
			return 0, 0, false, err
		}
		return int(b), m, true, nil
	case Uint16:
		v, err := r.ReadUint16()
		if err != nil {
			return 0, 0, false, err
		}
		return int(v), m, true, nil
	case Uint32:
		v, err := r.ReadUint32()
		if err != nil {
			return 0, 0, false, err
		}
		return int(v), m, true, nil
	default:
		return 0, m, false, nil
	}
}
