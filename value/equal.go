// SPDX-License-Identifier: MIT

package value

import "github.com/dmbarbour/glas/bitstring"

// Equal reports whether a and b are structurally equal, ignoring
// representation: a Branch built from a pair chain compares equal to
// the logically equivalent List-term. Equality is defined via ToKey so
// the two notions can never drift apart.
func Equal(a, b Value) bool {
	return bitstring.Equal(ToKey(a), ToKey(b))
}

// Compare gives a total order over Values, consistent with Equal.
func Compare(a, b Value) int {
	return bitstring.Compare(ToKey(a), ToKey(b))
}

// Hash returns an equality-consistent hash of v.
func Hash(v Value) uint64 {
	k := ToKey(v)
	h := uint64(14695981039346656037)
	for i := 0; i < k.Len(); i++ {
		h ^= uint64(k.At(i))
		h *= 1099511628211
	}
	return h
}
