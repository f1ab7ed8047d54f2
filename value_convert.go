package ubj

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
)

// Bool returns the receiver's bool, failing if it does not hold Bool.
func (v Value) Bool() (bool, error) {
	if v.typ != TypeBool {
		return false, castErr(v.typ, "bool")
	}
	return v.b, nil
}

// Char returns the receiver's byte, failing if it does not hold Char.
func (v Value) Char() (byte, error) {
	if v.typ != TypeChar {
		return 0, castErr(v.typ, "char")
	}
	return v.c, nil
}

// SignedInt returns the receiver's int64, failing if it does not
// hold SignedInt.
func (v Value) SignedInt() (int64, error) {
	if v.typ != TypeSignedInt {
		return 0, castErr(v.typ, "signed int")
	}
	return v.i, nil
}

// UnsignedInt returns the receiver's uint64, failing if it does not
// hold UnsignedInt.
func (v Value) UnsignedInt() (uint64, error) {
	if v.typ != TypeUnsignedInt {
		return 0, castErr(v.typ, "unsigned int")
	}
	return v.u, nil
}

// Float returns the receiver's float64, failing if it does not hold
// Float.
func (v Value) Float() (float64, error) {
	if v.typ != TypeFloat {
		return 0, castErr(v.typ, "float")
	}
	return v.f, nil
}

// Str returns the receiver's string, failing if it does not hold
// String.
func (v Value) Str() (string, error) {
	if v.typ != TypeString {
		return "", castErr(v.typ, "string")
	}
	return v.s, nil
}

// RawBinary returns the receiver's bytes, failing if it does not
// hold Binary. The returned slice aliases the Value's storage and
// must not be modified.
func (v Value) RawBinary() ([]byte, error) {
	if v.typ != TypeBinary {
		return nil, castErr(v.typ, "binary")
	}
	return v.bin, nil
}

// AsBool coerces the receiver to a bool. Null, zero-valued numerics,
// an empty string/binary/array/map, and a false Bool are false;
// everything else is true.
func (v Value) AsBool() bool {
	switch v.typ {
	case TypeNull:
		return false
	case TypeBool:
		return v.b
	case TypeChar:
		return v.c != 0
	case TypeSignedInt:
		return v.i != 0
	case TypeUnsignedInt:
		return v.u != 0
	case TypeFloat:
		return v.f != 0
	default:
		return v.Len() != 0
	}
}

// AsInt64 coerces the receiver to an int64. Bool yields 0 or 1, a
// String is parsed as a base-10 integer (0 if it does not parse), and
// Null, Binary, and containers yield 0.
func (v Value) AsInt64() int64 {
	switch v.typ {
	case TypeBool:
		if v.b {
			return 1
		}
		return 0
	case TypeChar:
		return int64(v.c)
	case TypeSignedInt:
		return v.i
	case TypeUnsignedInt:
		return int64(v.u)
	case TypeFloat:
		return int64(v.f)
	case TypeString:
		n, _ := strconv.ParseInt(v.s, 10, 64)
		return n
	default:
		return 0
	}
}

// AsUint64 coerces the receiver to a uint64. Bool yields 0 or 1, a
// String is parsed as a base-10 unsigned integer (0 if it does not
// parse), and Null, Binary, and containers yield 0; negative signed
// values wrap per Go's int64-to-uint64 conversion rules.
func (v Value) AsUint64() uint64 {
	switch v.typ {
	case TypeBool:
		if v.b {
			return 1
		}
		return 0
	case TypeChar:
		return uint64(v.c)
	case TypeSignedInt:
		return uint64(v.i)
	case TypeUnsignedInt:
		return v.u
	case TypeFloat:
		return uint64(v.f)
	case TypeString:
		n, _ := strconv.ParseUint(v.s, 10, 64)
		return n
	default:
		return 0
	}
}

// AsFloat coerces the receiver to a float64. Bool yields 0 or 1, a
// String is parsed as a float (0 if it does not parse), and Null,
// Binary, and containers yield 0.
func (v Value) AsFloat() float64 {
	switch v.typ {
	case TypeBool:
		if v.b {
			return 1
		}
		return 0
	case TypeChar:
		return float64(v.c)
	case TypeSignedInt:
		return float64(v.i)
	case TypeUnsignedInt:
		return float64(v.u)
	case TypeFloat:
		return v.f
	case TypeString:
		f, _ := strconv.ParseFloat(v.s, 64)
		return f
	default:
		return 0
	}
}

// AsString renders the receiver as a string. Containers render as a
// short diagnostic summary rather than their full contents.
func (v Value) AsString() string {
	switch v.typ {
	case TypeNull:
		return ""
	case TypeBool:
		return strconv.FormatBool(v.b)
	case TypeChar:
		return string(rune(v.c))
	case TypeSignedInt:
		return strconv.FormatInt(v.i, 10)
	case TypeUnsignedInt:
		return strconv.FormatUint(v.u, 10)
	case TypeFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case TypeString:
		return v.s
	case TypeBinary:
		return fmt.Sprintf("<%d bytes>", len(v.bin))
	case TypeArray:
		return fmt.Sprintf("<array, %d elements>", len(v.arr))
	case TypeMap:
		return fmt.Sprintf("<map, %d entries>", len(v.m))
	default:
		return ""
	}
}

// AsBinary coerces the receiver to a byte slice. String and Binary
// convert directly; a scalar renders as the little-endian bytes of
// its underlying representation (Bool and Char as a single byte,
// SignedInt/UnsignedInt/Float as 8 bytes); Null and containers (Array,
// Map) yield nil.
func (v Value) AsBinary() []byte {
	switch v.typ {
	case TypeString:
		return []byte(v.s)
	case TypeBinary:
		cp := make([]byte, len(v.bin))
		copy(cp, v.bin)
		return cp
	case TypeBool:
		if v.b {
			return []byte{1}
		}
		return []byte{0}
	case TypeChar:
		return []byte{v.c}
	case TypeSignedInt:
		buf := make([]byte, 8)
		binary.LittleEndian.PutUint64(buf, uint64(v.i))
		return buf
	case TypeUnsignedInt:
		buf := make([]byte, 8)
		binary.LittleEndian.PutUint64(buf, v.u)
		return buf
	case TypeFloat:
		buf := make([]byte, 8)
		binary.LittleEndian.PutUint64(buf, math.Float64bits(v.f))
		return buf
	default:
		return nil
	}
}
