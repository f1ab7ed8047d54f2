package ubj

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/danderson/ubj/wire"
)

// A Decoder reads a sequence of Map-rooted Values from an underlying
// stream in ubj wire format, enforcing a [SizePolicy] against each
// one independently.
type Decoder struct {
	r      io.Reader
	policy SizePolicy

	total   int
	lastErr error
}

// NewDecoder returns a Decoder that reads from r under policy.
func NewDecoder(r io.Reader, policy SizePolicy) *Decoder {
	return &Decoder{r: r, policy: policy}
}

// BytesRead returns the total number of bytes consumed across every
// call to Decode so far.
func (d *Decoder) BytesRead() int { return d.total }

// LastError returns the error from the most recent call to Decode,
// or nil if the last call succeeded (or none has been made).
func (d *Decoder) LastError() error { return d.lastErr }

// Decode reads one top-level Value (a Map) from the stream. The
// [SizePolicy]'s MaxObjectSize budget applies to this call alone; it
// does not accumulate across multiple calls to Decode on the same
// Decoder.
func (d *Decoder) Decode() (Value, error) {
	wr := wire.NewReader(d.r, d.policy.MaxObjectSize)
	v, err := d.decodeRoot(wr)
	d.total += wr.BytesRead()
	d.lastErr = err
	if err != nil {
		return Value{}, err
	}
	return v, nil
}

// DecodeInto is Decode, storing the result through v instead of
// returning it.
func (d *Decoder) DecodeInto(v *Value) error {
	got, err := d.Decode()
	if err != nil {
		return err
	}
	*v = got
	return nil
}

// Unmarshal decodes a single Map-rooted Value from data using
// [DefaultPolicy].
func Unmarshal(data []byte) (Value, error) {
	d := NewDecoder(bytes.NewReader(data), DefaultPolicy())
	return d.Decode()
}

func (d *Decoder) decodeRoot(wr *wire.Reader) (Value, error) {
	m, err := d.marker(wr)
	if err != nil {
		return Value{}, err
	}
	if m != wire.ObjectStart {
		return Value{}, parseErr(wr.BytesRead(), "expected object start, got %q", m)
	}
	return d.decodeMapBody(wr, 1)
}

func (d *Decoder) decodeValue(wr *wire.Reader, depth int) (Value, error) {
	m, err := d.marker(wr)
	if err != nil {
		return Value{}, err
	}
	return d.decodeValueMarker(wr, m, depth)
}

func (d *Decoder) decodeValueMarker(wr *wire.Reader, m wire.Marker, depth int) (Value, error) {
	switch m {
	case wire.Null:
		return Null(), nil
	case wire.True:
		return Bool(true), nil
	case wire.False:
		return Bool(false), nil
	case wire.Char:
		b, err := wr.ReadUint8()
		if err != nil {
			return Value{}, d.wrap(wr, err)
		}
		return Char(b), nil
	case wire.Int8:
		b, err := wr.ReadUint8()
		if err != nil {
			return Value{}, d.wrap(wr, err)
		}
		return Int64(int64(int8(b))), nil
	case wire.Int16:
		v, err := wr.ReadInt16()
		if err != nil {
			return Value{}, d.wrap(wr, err)
		}
		return Int64(int64(v)), nil
	case wire.Int32:
		v, err := wr.ReadInt32()
		if err != nil {
			return Value{}, d.wrap(wr, err)
		}
		return Int64(int64(v)), nil
	case wire.Int64:
		v, err := wr.ReadInt64()
		if err != nil {
			return Value{}, d.wrap(wr, err)
		}
		return Int64(v), nil
	case wire.Uint64:
		v, err := wr.ReadUint64()
		if err != nil {
			return Value{}, d.wrap(wr, err)
		}
		return Uint64(v), nil
	case wire.Float32:
		v, err := wr.ReadFloat32()
		if err != nil {
			return Value{}, d.wrap(wr, err)
		}
		return Float64(float64(v)), nil
	case wire.Float64:
		v, err := wr.ReadFloat64()
		if err != nil {
			return Value{}, d.wrap(wr, err)
		}
		return Float64(v), nil
	case wire.Uint8, wire.Uint16, wire.Uint32:
		return d.decodeCountOrScalar(wr, m)
	case wire.ArrayStart:
		return d.decodeArray(wr, depth+1)
	case wire.HomoStart:
		return d.decodeHomogeneousArray(wr, depth+1)
	case wire.ObjectStart:
		return d.decodeMapBody(wr, depth+1)
	default:
		return Value{}, parseErr(wr.BytesRead(), "unexpected marker %q at value position", m)
	}
}

// decodeCountOrScalar resolves the one genuine ambiguity in the wire
// format: at a value position, Uint8/16/32 markers are shared between
// a bare unsigned scalar and a String/Binary's length prefix. It
// reads the count-width payload, then peeks one more byte: if that
// byte is the String or Binary marker, the payload was a length
// prefix and the peeked byte is consumed; otherwise the byte is
// pushed back and the payload stands as the final scalar value.
func (d *Decoder) decodeCountOrScalar(wr *wire.Reader, m wire.Marker) (Value, error) {
	var n int
	var err error
	switch m {
	case wire.Uint8:
		var b uint8
		b, err = wr.ReadUint8()
		n = int(b)
	case wire.Uint16:
		var v uint16
		v, err = wr.ReadUint16()
		n = int(v)
	case wire.Uint32:
		var v uint32
		v, err = wr.ReadUint32()
		n = int(v)
	}
	if err != nil {
		return Value{}, d.wrap(wr, err)
	}

	next, err := wr.ReadByte()
	if err != nil {
		return Value{}, d.wrap(wr, err)
	}
	switch wire.Marker(next) {
	case wire.String:
		return d.readStringBody(wr, n)
	case wire.Binary:
		return d.readBinaryBody(wr, n)
	default:
		wr.UnreadByte(next)
		return Uint64(uint64(n)), nil
	}
}

func (d *Decoder) readStringBody(wr *wire.Reader, n int) (Value, error) {
	if d.policy.MaxStringSize > 0 && n > d.policy.MaxStringSize {
		return Value{}, policyErr("max_string_size", wr.BytesRead())
	}
	bs, err := wr.Read(n)
	if err != nil {
		return Value{}, d.wrap(wr, err)
	}
	return String(string(bs)), nil
}

func (d *Decoder) readBinaryBody(wr *wire.Reader, n int) (Value, error) {
	if d.policy.MaxBinarySize > 0 && n > d.policy.MaxBinarySize {
		return Value{}, policyErr("max_binary_size", wr.BytesRead())
	}
	bs, err := wr.Read(n)
	if err != nil {
		return Value{}, d.wrap(wr, err)
	}
	return Binary(bs), nil
}

func (d *Decoder) decodeArray(wr *wire.Reader, depth int) (Value, error) {
	if d.policy.MaxValueDepth > 0 && depth > d.policy.MaxValueDepth {
		return Value{}, policyErr("max_value_depth", wr.BytesRead())
	}
	wantEnd, _ := wire.ArrayStart.MatchingEnd()
	n, empty, err := d.readCount(wr, wantEnd, false)
	if err != nil {
		return Value{}, err
	}
	if empty {
		return Array(), nil
	}
	if d.policy.MaxChildren > 0 && n > d.policy.MaxChildren {
		return Value{}, policyErr("max_children", wr.BytesRead())
	}
	elems := make([]*Value, 0, n)
	for i := 0; i < n; i++ {
		v, err := d.decodeValue(wr, depth)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, &v)
	}
	if err := d.expectContainerEnd(wr, wantEnd); err != nil {
		return Value{}, err
	}
	return Value{typ: TypeArray, arr: elems}, nil
}

// decodeHomogeneousArray disallows nested containers: the element
// marker read immediately after '(' must itself be a scalar marker.
func (d *Decoder) decodeHomogeneousArray(wr *wire.Reader, depth int) (Value, error) {
	if d.policy.MaxValueDepth > 0 && depth > d.policy.MaxValueDepth {
		return Value{}, policyErr("max_value_depth", wr.BytesRead())
	}
	elemMarker, err := d.marker(wr)
	if err != nil {
		return Value{}, err
	}
	if !elemMarker.IsScalar() {
		return Value{}, parseErr(wr.BytesRead(), "homogeneous array element marker %q is not scalar", elemMarker)
	}
	wantEnd, _ := wire.HomoStart.MatchingEnd()
	n, m, ok, err := wr.ReadCount()
	if err != nil {
		return Value{}, d.wrap(wr, err)
	}
	if !ok {
		if m == wantEnd {
			return Array(), nil
		}
		return Value{}, parseErr(wr.BytesRead(), "expected homogeneous array count or end, got %q", m)
	}
	if d.policy.MaxChildren > 0 && n > d.policy.MaxChildren {
		return Value{}, policyErr("max_children", wr.BytesRead())
	}
	elems := make([]*Value, 0, n)
	for i := 0; i < n; i++ {
		v, err := d.decodeScalarPayload(wr, elemMarker)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, &v)
	}
	if err := d.expectContainerEnd(wr, wantEnd); err != nil {
		return Value{}, err
	}
	return Value{typ: TypeArray, arr: elems}, nil
}

// decodeScalarPayload reads only the fixed-width payload for a
// scalar marker already consumed by the caller — the counterpart to
// [Encoder.writeScalarPayload].
func (d *Decoder) decodeScalarPayload(wr *wire.Reader, m wire.Marker) (Value, error) {
	switch m {
	case wire.Null:
		return Null(), nil
	case wire.True:
		return Bool(true), nil
	case wire.False:
		return Bool(false), nil
	case wire.Char:
		b, err := wr.ReadUint8()
		return Char(b), d.wrap(wr, err)
	case wire.Int8:
		b, err := wr.ReadUint8()
		return Int64(int64(int8(b))), d.wrap(wr, err)
	case wire.Uint8:
		b, err := wr.ReadUint8()
		return Uint64(uint64(b)), d.wrap(wr, err)
	case wire.Int16:
		v, err := wr.ReadInt16()
		return Int64(int64(v)), d.wrap(wr, err)
	case wire.Uint16:
		v, err := wr.ReadUint16()
		return Uint64(uint64(v)), d.wrap(wr, err)
	case wire.Int32:
		v, err := wr.ReadInt32()
		return Int64(int64(v)), d.wrap(wr, err)
	case wire.Uint32:
		v, err := wr.ReadUint32()
		return Uint64(uint64(v)), d.wrap(wr, err)
	case wire.Int64:
		v, err := wr.ReadInt64()
		return Int64(v), d.wrap(wr, err)
	case wire.Uint64:
		v, err := wr.ReadUint64()
		return Uint64(v), d.wrap(wr, err)
	case wire.Float32:
		v, err := wr.ReadFloat32()
		return Float64(float64(v)), d.wrap(wr, err)
	case wire.Float64:
		v, err := wr.ReadFloat64()
		return Float64(v), d.wrap(wr, err)
	default:
		return Value{}, parseErr(wr.BytesRead(), "unsupported homogeneous element marker %q", m)
	}
}

func (d *Decoder) decodeMapBody(wr *wire.Reader, depth int) (Value, error) {
	if d.policy.MaxValueDepth > 0 && depth > d.policy.MaxValueDepth {
		return Value{}, policyErr("max_value_depth", wr.BytesRead())
	}
	wantEnd, _ := wire.ObjectStart.MatchingEnd()
	n, empty, err := d.readCount(wr, wantEnd, true)
	if err != nil {
		return Value{}, err
	}
	if empty {
		return Map(), nil
	}
	if d.policy.MaxChildren > 0 && n > d.policy.MaxChildren {
		return Value{}, policyErr("max_children", wr.BytesRead())
	}
	m := make(map[string]*Value, n)
	keys := make([]string, 0, n)
	keyLimit := d.policy.keyLimit()
	for i := 0; i < n; i++ {
		keyLen, err := wr.ReadUint8()
		if err != nil {
			return Value{}, d.wrap(wr, err)
		}
		if int(keyLen) > keyLimit {
			return Value{}, policyErr("max_key_size", wr.BytesRead())
		}
		keyBytes, err := wr.Read(int(keyLen))
		if err != nil {
			return Value{}, d.wrap(wr, err)
		}
		val, err := d.decodeValue(wr, depth)
		if err != nil {
			return Value{}, err
		}
		key := string(keyBytes)
		if _, dup := m[key]; !dup {
			keys = append(keys, key)
		}
		m[key] = &val
	}
	if err := d.expectContainerEnd(wr, wantEnd); err != nil {
		return Value{}, err
	}
	return Value{typ: TypeMap, m: m, mkeys: keys}, nil
}

// expectContainerEnd reads the next marker and fails unless it is
// exactly want, the frame-end marker a container-start's
// [wire.Marker.MatchingEnd] identified. It also guards against a
// decodeMapBody/decodeArray/decodeHomogeneousArray caller ever passing
// a non-container-end marker for want, which would indicate a bug in
// this package rather than malformed input.
func (d *Decoder) expectContainerEnd(wr *wire.Reader, want wire.Marker) error {
	if !want.IsContainerEnd() {
		panic(fmt.Sprintf("wire: expectContainerEnd called with non-container-end marker %q", want))
	}
	end, err := d.marker(wr)
	if err != nil {
		return err
	}
	if end != want {
		return parseErr(wr.BytesRead(), "expected %q, got %q", want, end)
	}
	return nil
}

// readCount reads a container's item count, recognizing an
// immediately-following endMarker as an empty container and, when
// allowWidthHint is set, a leading 'W' width hint (an informational
// byte-size preamble, consumed and discarded) before the real count.
func (d *Decoder) readCount(wr *wire.Reader, endMarker wire.Marker, allowWidthHint bool) (n int, empty bool, err error) {
	val, m, ok, err := wr.ReadCount()
	if err != nil {
		return 0, false, d.wrap(wr, err)
	}
	if ok {
		return val, false, nil
	}
	if m == endMarker {
		return 0, true, nil
	}
	if allowWidthHint && m == wire.Width {
		_, _, hok, herr := wr.ReadCount()
		if herr != nil {
			return 0, false, d.wrap(wr, herr)
		}
		if !hok {
			return 0, false, parseErr(wr.BytesRead(), "width hint not followed by a count")
		}
		return d.readCount(wr, endMarker, false)
	}
	return 0, false, parseErr(wr.BytesRead(), "expected count or %q, got %q", endMarker, m)
}

func (d *Decoder) marker(wr *wire.Reader) (wire.Marker, error) {
	m, err := wr.ReadMarker()
	if err != nil {
		return 0, d.wrap(wr, err)
	}
	return m, nil
}

func (d *Decoder) wrap(wr *wire.Reader, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, wire.ErrLimitExceeded) {
		return policyErr("max_object_size", wr.BytesRead())
	}
	return parseErr(wr.BytesRead(), "%v", err)
}
