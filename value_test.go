package ubj_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/danderson/ubj"
	"github.com/google/go-cmp/cmp"
)

func TestValueConstruction(t *testing.T) {
	tests := []struct {
		name string
		v    ubj.Value
		typ  ubj.Type
		len  int
	}{
		{"null", ubj.Null(), ubj.TypeNull, 0},
		{"bool", ubj.Bool(true), ubj.TypeBool, 1},
		{"char", ubj.Char('x'), ubj.TypeChar, 1},
		{"signed", ubj.Int64(-5), ubj.TypeSignedInt, 1},
		{"unsigned", ubj.Uint64(5), ubj.TypeUnsignedInt, 1},
		{"float", ubj.Float64(1.5), ubj.TypeFloat, 1},
		{"string", ubj.String("abc"), ubj.TypeString, 3},
		{"binary", ubj.Binary([]byte{1, 2}), ubj.TypeBinary, 2},
		{"array", ubj.Array(ubj.Int64(1), ubj.Int64(2)), ubj.TypeArray, 2},
		{"map", ubj.Map(), ubj.TypeMap, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Type(); got != tt.typ {
				t.Errorf("Type() = %s, want %s", got, tt.typ)
			}
			if got := tt.v.Len(); got != tt.len {
				t.Errorf("Len() = %d, want %d", got, tt.len)
			}
		})
	}
}

func TestArrayOfSingleMapDelegates(t *testing.T) {
	m := ubj.Map()
	f, err := m.Field("k")
	if err != nil {
		t.Fatal(err)
	}
	*f = ubj.Int64(1)

	got := ubj.Array(m)
	if got.Type() != ubj.TypeMap {
		t.Errorf("Array(singleMap).Type() = %s, want map", got.Type())
	}
	if !got.Equal(m) {
		t.Errorf("Array(singleMap) != the map it was given")
	}
}

func TestNullPromotesOnFieldAndAppend(t *testing.T) {
	var v ubj.Value
	f, err := v.Field("x")
	if err != nil {
		t.Fatal(err)
	}
	if v.Type() != ubj.TypeMap {
		t.Errorf("Field() on Null left type %s, want map", v.Type())
	}
	if !f.IsNull() {
		t.Errorf("newly-created entry is not null")
	}

	var a ubj.Value
	if err := a.Append(ubj.Int64(1)); err != nil {
		t.Fatal(err)
	}
	if a.Type() != ubj.TypeArray {
		t.Errorf("Append() on Null left type %s, want array", a.Type())
	}
}

func TestIndexingWrongVariantFails(t *testing.T) {
	v := ubj.Int64(1)
	if _, err := v.Index(0); err == nil {
		t.Error("Index on a scalar should fail")
	}
	if _, err := v.Field("x"); err == nil {
		t.Error("Field on a scalar should fail")
	}
	if err := v.Append(ubj.Null()); err == nil {
		t.Error("Append on a scalar should fail")
	}
}

func TestContainsAndRemove(t *testing.T) {
	arr := ubj.Array(ubj.Int64(1), ubj.Int64(2), ubj.Int64(3))
	if !arr.Contains(ubj.Int64(2)) {
		t.Error("Contains(2) = false, want true")
	}
	if !arr.Remove(ubj.Int64(2)) {
		t.Error("Remove(2) = false, want true")
	}
	if arr.Contains(ubj.Int64(2)) {
		t.Error("still contains 2 after Remove")
	}
	if arr.Remove(ubj.Int64(99)) {
		t.Error("Remove of absent element reported true")
	}

	m := ubj.Map()
	f, err := m.Field("k")
	if err != nil {
		t.Fatal(err)
	}
	*f = ubj.Int64(1)
	if !m.Contains(ubj.String("k")) {
		t.Error("map does not contain its own key")
	}
	if !m.Remove(ubj.String("k")) {
		t.Error("Remove(k) = false, want true")
	}
	if len(m.Keys()) != 0 {
		t.Errorf("len(Keys()) = %d, want 0 after remove", len(m.Keys()))
	}
}

func TestEqualityNoCrossNumericEquality(t *testing.T) {
	if ubj.Int64(1).Equal(ubj.Uint64(1)) {
		t.Error("SignedInt(1) should not equal UnsignedInt(1)")
	}
	if !ubj.Int64(1).Equal(ubj.Int64(1)) {
		t.Error("Int64(1) should equal Int64(1)")
	}
}

func TestEqualityBitwiseFloat(t *testing.T) {
	nan := ubj.Float64(nanValue())
	if !nan.Equal(nan) {
		t.Error("a NaN should equal itself under bitwise comparison")
	}
	if ubj.Float64(0).Equal(ubj.Float64(negZero())) {
		t.Error("+0 should not equal -0 under bitwise comparison")
	}
}

func nanValue() float64 {
	var zero float64
	return zero / zero
}

func negZero() float64 {
	var zero float64
	return -zero
}

func TestCloneIsDeep(t *testing.T) {
	a := ubj.Map()
	inner, err := a.Field("child")
	if err != nil {
		t.Fatal(err)
	}
	*inner = ubj.Int64(1)

	b := a.Clone()
	child, err := a.Field("child")
	if err != nil {
		t.Fatal(err)
	}
	*child = ubj.Int64(2)

	bChild, err := b.Field("child")
	if err != nil {
		t.Fatal(err)
	}
	got, err := bChild.SignedInt()
	if err != nil || got != 1 {
		t.Errorf("clone observed mutation of original: got (%d, %v), want (1, nil)", got, err)
	}
}

func TestTakeResetsSourceToNull(t *testing.T) {
	a := ubj.String("hello")
	b := a.Take()
	if !a.IsNull() {
		t.Error("source not Null after Take")
	}
	if got, err := b.Str(); err != nil || got != "hello" {
		t.Errorf("got (%q, %v), want (%q, nil)", got, err, "hello")
	}
}

func TestAllIteratesChildren(t *testing.T) {
	arr := ubj.Array(ubj.Int64(1), ubj.Int64(2), ubj.Int64(3))
	var got []int64
	for e := range arr.All() {
		n, err := e.SignedInt()
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, n)
	}
	want := []int64{1, 2, 3}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
}

func TestMapEncodingStableAcrossCalls(t *testing.T) {
	// Insert enough keys that Go's randomized native map iteration
	// would, absent the cached insertion order documented on Value,
	// be very likely to produce a different byte sequence on at least
	// one of several repeated encodes of the same unmutated Map.
	m := ubj.Map()
	for i := 0; i < 20; i++ {
		f, err := m.Field(string(rune('a' + i)))
		if err != nil {
			t.Fatal(err)
		}
		*f = ubj.Int64(int64(i))
	}

	first, err := ubj.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		got, err := ubj.Marshal(m)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(first, got) {
			t.Fatalf("Marshal output changed between calls on an unmutated Map")
		}
	}
}

func TestAsConversionsNeverFail(t *testing.T) {
	vals := []ubj.Value{
		ubj.Null(), ubj.Bool(true), ubj.Char('a'), ubj.Int64(-1),
		ubj.Uint64(1), ubj.Float64(1.5), ubj.String("3"), ubj.Binary([]byte("x")),
		ubj.Array(ubj.Int64(1)), ubj.Map(),
	}
	for _, v := range vals {
		_ = v.AsBool()
		_ = v.AsInt64()
		_ = v.AsUint64()
		_ = v.AsFloat()
		_ = v.AsString()
		_ = v.AsBinary()
	}
}

func TestAsBinaryScalarEncoding(t *testing.T) {
	le64 := func(u uint64) []byte {
		buf := make([]byte, 8)
		binary.LittleEndian.PutUint64(buf, u)
		return buf
	}
	tests := []struct {
		name string
		v    ubj.Value
		want []byte
	}{
		{"null", ubj.Null(), nil},
		{"bool true", ubj.Bool(true), []byte{1}},
		{"bool false", ubj.Bool(false), []byte{0}},
		{"char", ubj.Char('a'), []byte{'a'}},
		{"signed int", ubj.Int64(-1), le64(uint64(int64(-1)))},
		{"unsigned int", ubj.Uint64(300), le64(300)},
		{"float", ubj.Float64(1.5), le64(math.Float64bits(1.5))},
		{"string", ubj.String("hi"), []byte("hi")},
		{"binary", ubj.Binary([]byte{1, 2, 3}), []byte{1, 2, 3}},
		{"array", ubj.Array(ubj.Int64(1)), nil},
		{"map", ubj.Map(), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.v.AsBinary()); diff != "" {
				t.Errorf("AsBinary() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStrictCastMismatchFails(t *testing.T) {
	_, err := ubj.Int64(1).Str()
	var ce *ubj.CastError
	if !errors.As(err, &ce) {
		t.Fatalf("got err of type %T, want *ubj.CastError", err)
	}
}
