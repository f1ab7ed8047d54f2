package wire_test

import (
	"testing"

	"github.com/danderson/ubj/wire"
)

func TestMarkerPredicates(t *testing.T) {
	tests := []struct {
		name        string
		m           wire.Marker
		isCount     bool
		isScalar    bool
		isContEnd   bool
		matchingEnd wire.Marker
		hasEnd      bool
	}{
		{"Uint8", wire.Uint8, true, true, false, 0, false},
		{"Uint16", wire.Uint16, true, true, false, 0, false},
		{"Uint32", wire.Uint32, true, true, false, 0, false},
		{"Uint64", wire.Uint64, false, true, false, 0, false},
		{"Null", wire.Null, false, true, false, 0, false},
		{"String", wire.String, false, false, false, 0, false},
		{"ObjectStart", wire.ObjectStart, false, false, false, wire.ObjectEnd, true},
		{"ObjectEnd", wire.ObjectEnd, false, false, true, 0, false},
		{"ArrayStart", wire.ArrayStart, false, false, false, wire.ArrayEnd, true},
		{"ArrayEnd", wire.ArrayEnd, false, false, true, 0, false},
		{"HomoStart", wire.HomoStart, false, false, false, wire.HomoEnd, true},
		{"HomoEnd", wire.HomoEnd, false, false, true, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.IsCount(); got != tt.isCount {
				t.Errorf("IsCount() = %v, want %v", got, tt.isCount)
			}
			if got := tt.m.IsScalar(); got != tt.isScalar {
				t.Errorf("IsScalar() = %v, want %v", got, tt.isScalar)
			}
			if got := tt.m.IsContainerEnd(); got != tt.isContEnd {
				t.Errorf("IsContainerEnd() = %v, want %v", got, tt.isContEnd)
			}
			end, ok := tt.m.MatchingEnd()
			if ok != tt.hasEnd {
				t.Errorf("MatchingEnd() ok = %v, want %v", ok, tt.hasEnd)
			}
			if ok && end != tt.matchingEnd {
				t.Errorf("MatchingEnd() = %q, want %q", end, tt.matchingEnd)
			}
		})
	}
}
