package wire_test

import (
	"bytes"
	"testing"

	"github.com/danderson/ubj/wire"
)

func TestWriter(t *testing.T) {
	tests := []struct {
		name string
		in   func(*wire.Writer)
		want []byte
	}{
		{
			"marker",
			func(w *wire.Writer) { w.WriteMarker(wire.Null) },
			[]byte{'n'},
		},
		{
			"uint8 narrow count",
			func(w *wire.Writer) { w.WriteCount(1) },
			[]byte{'I', 0x01},
		},
		{
			"uint16 count",
			func(w *wire.Writer) { w.WriteCount(300) },
			[]byte{'J', 0x01, 0x2c},
		},
		{
			"uint32 count",
			func(w *wire.Writer) { w.WriteCount(70000) },
			[]byte{'K', 0x00, 0x01, 0x11, 0x70},
		},
		{
			"int16",
			func(w *wire.Writer) { w.WriteInt16(-1) },
			[]byte{0xff, 0xff},
		},
		{
			"raw bytes",
			func(w *wire.Writer) { w.WriteBytes([]byte{1, 2, 3}) },
			[]byte{1, 2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := wire.NewWriter(&buf)
			tt.in(w)
			if err := w.Err(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := buf.Bytes(); !bytes.Equal(got, tt.want) {
				t.Errorf("got % x, want % x", got, tt.want)
			}
			if w.BytesWritten() != len(tt.want) {
				t.Errorf("BytesWritten() = %d, want %d", w.BytesWritten(), len(tt.want))
			}
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, bytes.ErrTooLarge
}

func TestWriterSinkError(t *testing.T) {
	w := wire.NewWriter(failingWriter{})
	w.WriteMarker(wire.Null)
	if err := w.Err(); err == nil {
		t.Fatal("expected sink error, got nil")
	}
	w.WriteUint32(42) // further writes must not panic once latched
	if w.BytesWritten() != 0 {
		t.Errorf("BytesWritten() = %d, want 0", w.BytesWritten())
	}
}
