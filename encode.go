package ubj

import (
	"bytes"
	"io"
	"math"

	"github.com/danderson/ubj/wire"
)

// An Encoder writes a sequence of Map-rooted Values to an underlying
// stream in ubj wire format.
type Encoder struct {
	w *wire.Writer
}

// NewEncoder returns an Encoder that writes to out.
func NewEncoder(out io.Writer) *Encoder {
	return &Encoder{w: wire.NewWriter(out)}
}

// Encode writes v to the underlying stream and returns the number of
// bytes written. The root of v must be a Map; any other variant
// fails with (0, error) without writing anything.
func (e *Encoder) Encode(v Value) (int, error) {
	if v.typ != TypeMap {
		return 0, valueErr("encode", v.typ, "root value must be a map")
	}
	start := e.w.BytesWritten()
	e.writeMap(v)
	n := e.w.BytesWritten() - start
	if err := e.w.Err(); err != nil {
		return n, err
	}
	return n, nil
}

// Marshal is a convenience wrapper that encodes v to a freshly
// allocated byte slice.
func Marshal(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Encoder) writeValue(v Value) {
	switch v.typ {
	case TypeNull:
		e.w.WriteMarker(wire.Null)
	case TypeBool:
		if v.b {
			e.w.WriteMarker(wire.True)
		} else {
			e.w.WriteMarker(wire.False)
		}
	case TypeChar:
		e.w.WriteMarker(wire.Char)
		e.w.WriteUint8(v.c)
	case TypeSignedInt:
		e.writeSignedInt(v.i)
	case TypeUnsignedInt:
		e.writeUnsignedInt(v.u)
	case TypeFloat:
		e.writeFloat(v.f)
	case TypeString:
		e.writeString(v.s)
	case TypeBinary:
		e.writeBinary(v.bin)
	case TypeArray:
		e.writeArray(v.arr)
	case TypeMap:
		e.writeMap(v)
	}
}

func (e *Encoder) writeSignedInt(i int64) {
	m := signedMarker(i)
	e.w.WriteMarker(m)
	e.writeScalarPayload(m, Value{typ: TypeSignedInt, i: i})
}

func (e *Encoder) writeUnsignedInt(u uint64) {
	m := unsignedMarker(u)
	e.w.WriteMarker(m)
	e.writeScalarPayload(m, Value{typ: TypeUnsignedInt, u: u})
}

func (e *Encoder) writeFloat(f float64) {
	m := floatMarker(f)
	e.w.WriteMarker(m)
	e.writeScalarPayload(m, Value{typ: TypeFloat, f: f})
}

func (e *Encoder) writeString(s string) {
	e.w.WriteCount(len(s))
	e.w.WriteMarker(wire.String)
	e.w.WriteBytes([]byte(s))
}

func (e *Encoder) writeBinary(b []byte) {
	e.w.WriteCount(len(b))
	e.w.WriteMarker(wire.Binary)
	e.w.WriteBytes(b)
}

// writeArray chooses between the homogeneous and heterogeneous array
// frames. A homogeneous frame is legal only when every element
// narrows to the same fixed-width scalar marker: Bool is excluded
// because True/False carry no payload bytes of their own to
// distinguish elements once the per-element marker is gone.
func (e *Encoder) writeArray(arr []*Value) {
	if len(arr) == 0 {
		e.w.WriteMarker(wire.ArrayStart)
		e.w.WriteMarker(wire.ArrayEnd)
		return
	}
	if m, ok := scalarMarker(*arr[0]); ok {
		homogeneous := true
		for _, el := range arr[1:] {
			em, eok := scalarMarker(*el)
			if !eok || em != m {
				homogeneous = false
				break
			}
		}
		if homogeneous {
			e.writeHomogeneousArray(m, arr)
			return
		}
	}
	e.writeHeterogeneousArray(arr)
}

func (e *Encoder) writeHeterogeneousArray(arr []*Value) {
	e.w.WriteMarker(wire.ArrayStart)
	e.w.WriteCount(len(arr))
	for _, el := range arr {
		e.writeValue(*el)
	}
	e.w.WriteMarker(wire.ArrayEnd)
}

func (e *Encoder) writeHomogeneousArray(m wire.Marker, arr []*Value) {
	e.w.WriteMarker(wire.HomoStart)
	e.w.WriteMarker(m)
	e.w.WriteCount(len(arr))
	for _, el := range arr {
		e.writeScalarPayload(m, *el)
	}
	e.w.WriteMarker(wire.HomoEnd)
}

// writeMap emits v's entries in v.mkeys order — the order keys were
// first inserted — rather than Go's randomized native map iteration,
// so repeated encoding of an unmutated Map Value produces identical
// bytes every time.
func (e *Encoder) writeMap(v Value) {
	if len(v.m) == 0 {
		e.w.WriteMarker(wire.ObjectStart)
		e.w.WriteMarker(wire.ObjectEnd)
		return
	}
	e.w.WriteMarker(wire.ObjectStart)
	e.w.WriteCount(len(v.m))
	for _, k := range v.mkeys {
		e.w.WriteUint8(uint8(len(k)))
		e.w.WriteBytes([]byte(k))
		e.writeValue(*v.m[k])
	}
	e.w.WriteMarker(wire.ObjectEnd)
}

// writeScalarPayload writes only the fixed-width payload bytes for a
// scalar already known to narrow to marker m — no marker, no
// count. Used both for ordinary scalar values and for the elements
// of a homogeneous array.
func (e *Encoder) writeScalarPayload(m wire.Marker, v Value) {
	switch m {
	case wire.Null, wire.True, wire.False:
	case wire.Char:
		e.w.WriteUint8(v.c)
	case wire.Int8:
		e.w.WriteUint8(uint8(int8(v.i)))
	case wire.Uint8:
		e.w.WriteUint8(uint8(v.u))
	case wire.Int16:
		e.w.WriteInt16(int16(v.i))
	case wire.Uint16:
		e.w.WriteUint16(uint16(v.u))
	case wire.Int32:
		e.w.WriteInt32(int32(v.i))
	case wire.Uint32:
		e.w.WriteUint32(uint32(v.u))
	case wire.Int64:
		e.w.WriteInt64(v.i)
	case wire.Uint64:
		e.w.WriteUint64(v.u)
	case wire.Float32:
		e.w.WriteFloat32(float32(v.f))
	case wire.Float64:
		e.w.WriteFloat64(v.f)
	}
}

// scalarMarker returns the wire marker a homogeneous-array-eligible
// scalar would narrow to. Bool deliberately returns ok=false: see
// writeArray.
func scalarMarker(v Value) (wire.Marker, bool) {
	switch v.typ {
	case TypeNull:
		return wire.Null, true
	case TypeChar:
		return wire.Char, true
	case TypeSignedInt:
		return signedMarker(v.i), true
	case TypeUnsignedInt:
		return unsignedMarker(v.u), true
	case TypeFloat:
		return floatMarker(v.f), true
	default:
		return 0, false
	}
}

func signedMarker(i int64) wire.Marker {
	switch {
	case i >= math.MinInt8 && i <= math.MaxInt8:
		return wire.Int8
	case i >= math.MinInt16 && i <= math.MaxInt16:
		return wire.Int16
	case i >= math.MinInt32 && i <= math.MaxInt32:
		return wire.Int32
	default:
		return wire.Int64
	}
}

func unsignedMarker(u uint64) wire.Marker {
	switch {
	case u <= math.MaxUint8:
		return wire.Uint8
	case u <= math.MaxUint16:
		return wire.Uint16
	case u <= math.MaxUint32:
		return wire.Uint32
	default:
		return wire.Uint64
	}
}

// floatMarker picks Float32 whenever f's magnitude fits the finite
// range of a float32, comparing only against the representable range
// (±math.MaxFloat32) and never against float32's smallest normal
// value — a comparison against the smallest normal would wrongly
// route small-magnitude finite values to Float64. Mantissa precision
// loss when narrowing to Float32 is accepted, not guarded against.
func floatMarker(f float64) wire.Marker {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return wire.Float32
	}
	if math.Abs(f) <= math.MaxFloat32 {
		return wire.Float32
	}
	return wire.Float64
}
