package ubj

// Clone deep-copies v: every Array element and Map entry is
// recursively copied, so mutating the result never affects v or
// vice versa.
func (v Value) Clone() Value {
	switch v.typ {
	case TypeBinary:
		cp := make([]byte, len(v.bin))
		copy(cp, v.bin)
		return Value{typ: TypeBinary, bin: cp}
	case TypeArray:
		arr := make([]*Value, len(v.arr))
		for i, e := range v.arr {
			c := e.Clone()
			arr[i] = &c
		}
		return Value{typ: TypeArray, arr: arr}
	case TypeMap:
		m := make(map[string]*Value, len(v.m))
		keys := make([]string, len(v.mkeys))
		copy(keys, v.mkeys)
		for _, k := range keys {
			c := v.m[k].Clone()
			m[k] = &c
		}
		return Value{typ: TypeMap, m: m, mkeys: keys}
	default:
		return v
	}
}

// Take returns the receiver's current contents and resets the
// receiver to Null, transferring ownership of any nested Array
// elements or Map entries to the caller without copying them.
func (v *Value) Take() Value {
	out := *v
	*v = Value{}
	return out
}
