package ubj

// Type identifies the variant a [Value] currently holds.
type Type int

const (
	TypeNull Type = iota
	TypeBool
	TypeChar
	TypeSignedInt
	TypeUnsignedInt
	TypeFloat
	TypeString
	TypeBinary
	TypeArray
	TypeMap
)

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeChar:
		return "char"
	case TypeSignedInt:
		return "signed int"
	case TypeUnsignedInt:
		return "unsigned int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeBinary:
		return "binary"
	case TypeArray:
		return "array"
	case TypeMap:
		return "map"
	default:
		return "invalid"
	}
}

// A Value is a polymorphic node in a ubj document tree: exactly one
// of Null, Bool, Char, a signed or unsigned 64-bit integer, a 64-bit
// float, a String, a Binary blob, an ordered Array of Values, or a
// Map from string keys to Values.
//
// The zero Value is Null. Array elements and Map values are owned
// exclusively by their parent: [Value.Clone] deep-copies a subtree,
// and [Value.Take] transfers ownership out of the receiver, leaving
// it Null.
//
// A Map Value iterates (via [Value.All] and encoding) in the order
// its keys were first inserted; that order is stable until the Map is
// mutated, regardless of Go's randomized native map iteration.
// [Value.Keys] returns an unordered set.
//
// A Value is not safe for concurrent use; callers sharing a Value
// across goroutines must provide their own synchronization.
type Value struct {
	typ Type

	b   bool
	c   byte
	i   int64
	u   uint64
	f   float64
	s   string
	bin   []byte
	arr   []*Value
	m     map[string]*Value
	mkeys []string // insertion order of m's keys; kept in sync with m
}

// Null returns a Null Value. Equivalent to the zero Value.
func Null() Value { return Value{} }

// Bool returns a Bool Value.
func Bool(b bool) Value { return Value{typ: TypeBool, b: b} }

// Char returns a Char Value.
func Char(c byte) Value { return Value{typ: TypeChar, c: c} }

// Int64 returns a SignedInt Value.
func Int64(i int64) Value { return Value{typ: TypeSignedInt, i: i} }

// Uint64 returns an UnsignedInt Value.
func Uint64(u uint64) Value { return Value{typ: TypeUnsignedInt, u: u} }

// Float64 returns a Float Value.
func Float64(f float64) Value { return Value{typ: TypeFloat, f: f} }

// String returns a String Value.
func String(s string) Value { return Value{typ: TypeString, s: s} }

// Binary returns a Binary Value. The supplied bytes are copied.
func Binary(b []byte) Value {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Value{typ: TypeBinary, bin: cp}
}

// Map returns an empty Map Value.
func Map() Value {
	return Value{typ: TypeMap, m: map[string]*Value{}}
}

// Array builds an Array Value from vs, except that a single Map
// element delegates directly to that element rather than being
// wrapped in a one-element array — this mirrors the construction
// rule for a Value built from an initializer list.
func Array(vs ...Value) Value {
	if len(vs) == 1 && vs[0].typ == TypeMap {
		return vs[0].Clone()
	}
	arr := make([]*Value, len(vs))
	for i := range vs {
		c := vs[i].Clone()
		arr[i] = &c
	}
	return Value{typ: TypeArray, arr: arr}
}

// Type returns the variant v currently holds.
func (v Value) Type() Type { return v.typ }

// Len returns 0 for Null, the element/entry/byte count for Array,
// Map, String, and Binary, and 1 for every other (scalar) variant.
func (v Value) Len() int {
	switch v.typ {
	case TypeNull:
		return 0
	case TypeString:
		return len(v.s)
	case TypeBinary:
		return len(v.bin)
	case TypeArray:
		return len(v.arr)
	case TypeMap:
		return len(v.m)
	default:
		return 1
	}
}

// IsNull reports whether v holds Null.
func (v Value) IsNull() bool { return v.typ == TypeNull }
