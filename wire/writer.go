package wire

import (
	"encoding/binary"
	"io"
	"math"
)

// A Writer writes big-endian framed values to an underlying
// [io.Writer]. It performs no buffering of its own: each call issues
// a Write to the sink, and the first sink error is latched and
// returned from every subsequent call, matching the "encoder assumes
// the sink accepts all writes; errors propagate as success=false"
// contract.
type Writer struct {
	out io.Writer
	n   int
	err error
}

// NewWriter returns a Writer that writes to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// BytesWritten returns the number of bytes successfully written so far.
func (w *Writer) BytesWritten() int { return w.n }

// Err returns the first error encountered by the underlying sink, if any.
func (w *Writer) Err() error { return w.err }

func (w *Writer) write(bs []byte) {
	if w.err != nil {
		return
	}
	n, err := w.out.Write(bs)
	w.n += n
	if err != nil {
		w.err = err
	}
}

// WriteMarker writes a single marker byte.
func (w *Writer) WriteMarker(m Marker) {
	w.write([]byte{byte(m)})
}

// WriteBytes writes raw bytes verbatim, with no framing.
func (w *Writer) WriteBytes(bs []byte) {
	w.write(bs)
}

// WriteUint8 writes a single unsigned byte.
func (w *Writer) WriteUint8(v uint8) {
	w.write([]byte{v})
}

// WriteUint16 writes a big-endian uint16.
func (w *Writer) WriteUint16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.write(b[:])
}

// WriteUint32 writes a big-endian uint32.
func (w *Writer) WriteUint32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.write(b[:])
}

// WriteUint64 writes a big-endian uint64.
func (w *Writer) WriteUint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.write(b[:])
}

// WriteInt16 writes a big-endian int16.
func (w *Writer) WriteInt16(v int16) { w.WriteUint16(uint16(v)) }

// WriteInt32 writes a big-endian int32.
func (w *Writer) WriteInt32(v int32) { w.WriteUint32(uint32(v)) }

// WriteInt64 writes a big-endian int64.
func (w *Writer) WriteInt64(v int64) { w.WriteUint64(uint64(v)) }

// WriteFloat32 writes a big-endian IEEE-754 single-precision float.
func (w *Writer) WriteFloat32(v float32) { w.WriteUint32(math.Float32bits(v)) }

// WriteFloat64 writes a big-endian IEEE-754 double-precision float.
func (w *Writer) WriteFloat64(v float64) { w.WriteUint64(math.Float64bits(v)) }

// WriteCount writes the narrowest count token — a marker in
// {Uint8, Uint16, Uint32} plus its payload — that can represent n.
// Counts never widen to Uint64: sizes are bounded to 32 bits on the
// wire.
func (w *Writer) WriteCount(n int) {
	switch {
	case n <= 0xFF:
		w.WriteMarker(Uint8)
		w.WriteUint8(uint8(n))
	case n <= 0xFFFF:
		w.WriteMarker(Uint16)
		w.WriteUint16(uint16(n))
	default:
		w.WriteMarker(Uint32)
		w.WriteUint32(uint32(n))
	}
}
