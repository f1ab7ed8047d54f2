package ubj

import (
	"iter"

	"github.com/creachadair/mds/mapset"
)

// Index returns a reference to the i'th element of an Array Value,
// suitable for further mutation through the returned pointer. It
// fails if the receiver is not an Array or i is out of bounds.
func (v *Value) Index(i int) (*Value, error) {
	if v.typ != TypeArray {
		return nil, valueErr("index", v.typ, "not an array")
	}
	if i < 0 || i >= len(v.arr) {
		return nil, valueErr("index", v.typ, "index %d out of bounds (len %d)", i, len(v.arr))
	}
	return v.arr[i], nil
}

// Field returns a reference to the Value stored under key in a Map
// Value. A Null receiver is silently promoted to an empty Map, so
// that v.Field("x") on a freshly zero-valued Value can be used to
// build a map in place. The returned entry is created (as Null) if
// key is absent. It fails if the receiver holds any other variant.
func (v *Value) Field(key string) (*Value, error) {
	if v.typ == TypeNull {
		*v = Map()
	}
	if v.typ != TypeMap {
		return nil, valueErr("index", v.typ, "not a map")
	}
	e, ok := v.m[key]
	if !ok {
		e = new(Value)
		v.m[key] = e
		v.mkeys = append(v.mkeys, key)
	}
	return e, nil
}

// Append adds x to the end of an Array Value. A Null receiver is
// promoted to an empty Array first. It fails if the receiver holds
// any other variant.
func (v *Value) Append(x Value) error {
	if v.typ == TypeNull {
		*v = Value{typ: TypeArray}
	}
	if v.typ != TypeArray {
		return valueErr("append", v.typ, "not an array")
	}
	c := x.Clone()
	v.arr = append(v.arr, &c)
	return nil
}

// Contains reports whether an Array Value has an element equal to x,
// or whether a Map Value has a key equal to x's string contents. It
// returns false for every other variant.
func (v *Value) Contains(x Value) bool {
	switch v.typ {
	case TypeArray:
		for _, e := range v.arr {
			if e.Equal(x) {
				return true
			}
		}
		return false
	case TypeMap:
		if x.typ != TypeString {
			return false
		}
		_, ok := v.m[x.s]
		return ok
	default:
		return false
	}
}

// Remove deletes the first element of an Array Value equal to x, or
// the Map entry keyed by x's string contents, reporting whether
// anything was removed. It is the inverse of Contains and is a no-op
// if the target is absent.
func (v *Value) Remove(x Value) bool {
	switch v.typ {
	case TypeArray:
		for i, e := range v.arr {
			if e.Equal(x) {
				v.arr = append(v.arr[:i], v.arr[i+1:]...)
				return true
			}
		}
		return false
	case TypeMap:
		if x.typ != TypeString {
			return false
		}
		if _, ok := v.m[x.s]; ok {
			delete(v.m, x.s)
			for i, k := range v.mkeys {
				if k == x.s {
					v.mkeys = append(v.mkeys[:i], v.mkeys[i+1:]...)
					break
				}
			}
			return true
		}
		return false
	default:
		return false
	}
}

// Lookup returns a copy of the Value stored under key in a Map
// Value, without creating an entry if key is absent, unlike Field.
func (v Value) Lookup(key string) (Value, bool) {
	if v.typ != TypeMap {
		return Value{}, false
	}
	e, ok := v.m[key]
	if !ok {
		return Value{}, false
	}
	return *e, true
}

// Elem returns a copy of the i'th element of an Array Value, without
// the bounds-check error of Index.
func (v Value) Elem(i int) (Value, bool) {
	if v.typ != TypeArray || i < 0 || i >= len(v.arr) {
		return Value{}, false
	}
	return *v.arr[i], true
}

// Keys returns the key set of a Map Value, or an empty set for every
// other variant.
func (v *Value) Keys() mapset.Set[string] {
	if v.typ != TypeMap {
		return mapset.New[string]()
	}
	return mapset.New(v.mkeys...)
}

// All iterates the direct children of an Array or Map Value, in
// insertion order for both variants: Array order is the order
// elements were appended, and Map order is the order keys were first
// inserted (stable until the Map is mutated, independent of Go's
// randomized native map iteration). It yields nothing for every other
// variant.
func (v *Value) All() iter.Seq[*Value] {
	return func(yield func(*Value) bool) {
		switch v.typ {
		case TypeArray:
			for _, e := range v.arr {
				if !yield(e) {
					return
				}
			}
		case TypeMap:
			for _, k := range v.mkeys {
				if !yield(v.m[k]) {
					return
				}
			}
		}
	}
}
