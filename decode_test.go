package ubj_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/danderson/ubj"
	"github.com/danderson/ubj/internal/ubjtest"
)

func TestDecodeRoundTrip(t *testing.T) {
	// Scenario F.
	v := ubj.Map()
	name, err := v.Field("name")
	if err != nil {
		t.Fatal(err)
	}
	*name = ubj.String("X")
	id, err := v.Field("id")
	if err != nil {
		t.Fatal(err)
	}
	*id = ubj.Int64(9)

	bs, err := ubj.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ubj.Unmarshal(bs)
	if err != nil {
		t.Fatal(err)
	}
	if diff := ubjtest.Diff(got, v); diff != "" {
		t.Errorf("decoded value differs from original (-got +want):\n%s", diff)
	}
	if got.Len() != 2 {
		t.Errorf("Len() = %d, want 2", got.Len())
	}
}

func TestDecodeEmptyMap(t *testing.T) {
	got, err := ubj.Unmarshal([]byte{'{', '}'})
	if err != nil {
		t.Fatal(err)
	}
	if diff := ubjtest.Diff(got, ubj.Map()); diff != "" {
		t.Errorf("got unexpected diff from empty map (-got +want):\n%s", diff)
	}
}

func TestDecodeScalarVsStringAmbiguity(t *testing.T) {
	// A bare Uint8 scalar value (marker+payload, nothing follows) and
	// a String whose length prefix happens to use the same marker
	// must decode to different variants depending on what follows.
	scalar := []byte{'{', 'I', 0x01, 0x01, 'x', 'I', 0x01, '}'}
	v, err := ubj.Unmarshal(scalar)
	if err != nil {
		t.Fatal(err)
	}
	f, err := v.Field("x")
	if err != nil {
		t.Fatal(err)
	}
	if f.Type() != ubj.TypeUnsignedInt {
		t.Errorf("got type %s, want unsigned int", f.Type())
	}

	str := []byte{'{', 'I', 0x01, 0x01, 'x', 'I', 0x01, 's', 'y', '}'}
	v2, err := ubj.Unmarshal(str)
	if err != nil {
		t.Fatal(err)
	}
	f2, err := v2.Field("x")
	if err != nil {
		t.Fatal(err)
	}
	if f2.Type() != ubj.TypeString {
		t.Errorf("got type %s, want string", f2.Type())
	}
	got, err := f2.Str()
	if err != nil || got != "y" {
		t.Errorf("got (%q, %v), want (%q, nil)", got, err, "y")
	}
}

func TestDecodeHomogeneousArray(t *testing.T) {
	inner := ubj.Array(ubj.Uint64(1), ubj.Uint64(2), ubj.Uint64(3))
	v := ubj.Map()
	a, err := v.Field("a")
	if err != nil {
		t.Fatal(err)
	}
	*a = inner

	bs, err := ubj.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	// All three elements narrow to the same Uint8 marker, so the
	// encoder is expected to have taken the homogeneous path.
	if !bytes.Contains(bs, []byte{'(', 'I'}) {
		t.Errorf("expected a homogeneous array frame in %x", bs)
	}

	got, err := ubj.Unmarshal(bs)
	if err != nil {
		t.Fatal(err)
	}
	if diff := ubjtest.Diff(got, v); diff != "" {
		t.Errorf("round trip mismatch (-got +want):\n%s", diff)
	}
}

func TestDecodeDepthPolicy(t *testing.T) {
	// Scenario D: 33 levels of nested single-entry maps with
	// max_value_depth=32 must fail as a policy violation.
	v := ubj.Map()
	cur := &v
	for i := 0; i < 33; i++ {
		f, err := cur.Field("n")
		if err != nil {
			t.Fatal(err)
		}
		*f = ubj.Map()
		cur = f
	}

	bs, err := ubj.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	policy := ubj.DefaultPolicy()
	d := ubj.NewDecoder(bytes.NewReader(bs), policy)
	_, err = d.Decode()
	if !errors.Is(err, ubj.ErrPolicyViolation) {
		t.Fatalf("got err=%v, want ErrPolicyViolation", err)
	}
	if d.BytesRead() > policy.MaxObjectSize+1 {
		t.Errorf("BytesRead() = %d, exceeds limit+1", d.BytesRead())
	}
}

func TestDecodeMalformedEndMarker(t *testing.T) {
	_, err := ubj.Unmarshal([]byte{'{', 'I', 0x01, 0x01, 'x', 'I', 0x01, ']'})
	if err == nil {
		t.Fatal("expected parse error on mismatched end marker")
	}
}

func TestDecodeStringSizePolicy(t *testing.T) {
	v := ubj.Map()
	f, err := v.Field("s")
	if err != nil {
		t.Fatal(err)
	}
	*f = ubj.String("0123456789")

	bs, err := ubj.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	policy := ubj.DefaultPolicy()
	policy.MaxStringSize = 5
	d := ubj.NewDecoder(bytes.NewReader(bs), policy)
	_, err = d.Decode()
	if !errors.Is(err, ubj.ErrPolicyViolation) {
		t.Fatalf("got err=%v, want ErrPolicyViolation", err)
	}
}
