// Package ubjtest provides go-cmp plumbing shared by this module's
// test files, mirroring the teacher's own per-type cmp.Comparer
// registrations (see variant_test.go's Signature comparer).
package ubjtest

import (
	"github.com/danderson/ubj"
	"github.com/google/go-cmp/cmp"
)

// comparer treats two Values as equal exactly when [ubj.Value.Equal]
// does: bitwise float comparison, no cross-numeric equality, and
// order-independent map comparison.
var comparer = cmp.Comparer(func(a, b ubj.Value) bool {
	return a.Equal(b)
})

// Diff reports a human-readable diff between got and want, or "" if
// they are Equal. Intended as a drop-in for cmp.Diff in this module's
// tests so every Value comparison goes through the same registered
// comparer.
func Diff(got, want ubj.Value) string {
	return cmp.Diff(got, want, comparer)
}
