package wire_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/danderson/ubj/wire"
)

func TestReader(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		run  func(*testing.T, *wire.Reader)
	}{
		{
			"read n",
			[]byte{1, 2, 3},
			func(t *testing.T, r *wire.Reader) {
				bs, err := r.Read(3)
				if err != nil {
					t.Fatal(err)
				}
				if !bytes.Equal(bs, []byte{1, 2, 3}) {
					t.Errorf("got %v", bs)
				}
			},
		},
		{
			"count uint8",
			[]byte{'I', 0x05},
			func(t *testing.T, r *wire.Reader) {
				n, m, ok, err := r.ReadCount()
				if err != nil || !ok || n != 5 || m != wire.Uint8 {
					t.Errorf("got (%d, %v, %v, %v)", n, m, ok, err)
				}
			},
		},
		{
			"count not present, end marker returned",
			[]byte{'}'},
			func(t *testing.T, r *wire.Reader) {
				n, m, ok, err := r.ReadCount()
				if err != nil || ok || m != wire.ObjectEnd || n != 0 {
					t.Errorf("got (%d, %v, %v, %v)", n, m, ok, err)
				}
			},
		},
		{
			"pushback",
			[]byte{'x', 'y'},
			func(t *testing.T, r *wire.Reader) {
				b, _ := r.ReadByte()
				r.UnreadByte(b)
				got, _ := r.ReadByte()
				if got != b {
					t.Errorf("got %c, want %c", got, b)
				}
				next, _ := r.ReadByte()
				if next != 'y' {
					t.Errorf("got %c, want y", next)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := wire.NewReader(bytes.NewReader(tt.in), 0)
			tt.run(t, r)
		})
	}
}

func TestReaderBudget(t *testing.T) {
	r := wire.NewReader(bytes.NewReader([]byte{1, 2, 3, 4}), 2)
	if _, err := r.Read(2); err != nil {
		t.Fatalf("first read within budget failed: %v", err)
	}
	if _, err := r.Read(1); !errors.Is(err, wire.ErrLimitExceeded) {
		t.Errorf("got err=%v, want ErrLimitExceeded", err)
	}
}

func TestReaderShortRead(t *testing.T) {
	r := wire.NewReader(bytes.NewReader([]byte{1}), 0)
	if _, err := r.Read(4); err == nil {
		t.Fatal("expected error on short read")
	}
}
