// SPDX-License-Identifier: MIT

package bitstring_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmbarbour/glas/bitstring"
)

func TestAppendSplitRoundTrip(t *testing.T) {
	a := bitstring.OfByte(0xAB)
	b := bitstring.OfByte(0xCD)
	ab := bitstring.Append(a, b)
	require.Equal(t, a.Len()+b.Len(), ab.Len())

	head, tail := bitstring.SplitAt(a.Len(), ab)
	require.True(t, bitstring.Equal(a, head))
	require.True(t, bitstring.Equal(b, tail))
}

func TestConsHeadTail(t *testing.T) {
	bs := bitstring.OfByte(0x80) // 1000_0000
	withBit := bitstring.Cons(1, bs)
	require.EqualValues(t, 1, bitstring.Head(withBit))
	require.True(t, bitstring.Equal(bs, bitstring.Tail(withBit)))
	require.Equal(t, 9, withBit.Len())
}

func TestEmptyHeadPanics(t *testing.T) {
	require.Panics(t, func() { bitstring.Head(bitstring.Empty()) })
	require.Panics(t, func() { bitstring.Tail(bitstring.Empty()) })
}

func TestBitwiseRequiresEqualLength(t *testing.T) {
	a := bitstring.OfUint64(0b101, 3)
	b := bitstring.OfUint64(0b10, 2)
	require.Panics(t, func() { bitstring.And(a, b) })
}

func TestBitwiseOps(t *testing.T) {
	a := bitstring.OfUint64(0b1010, 4)
	b := bitstring.OfUint64(0b0110, 4)

	and := bitstring.And(a, b)
	v, err := bitstring.ToUint64(and)
	require.NoError(t, err)
	require.EqualValues(t, 0b0010, v)

	or := bitstring.Or(a, b)
	v, err = bitstring.ToUint64(or)
	require.NoError(t, err)
	require.EqualValues(t, 0b1110, v)

	xor := bitstring.Xor(a, b)
	v, err = bitstring.ToUint64(xor)
	require.NoError(t, err)
	require.EqualValues(t, 0b1100, v)

	neg := bitstring.Neg(a)
	v, err = bitstring.ToUint64(neg)
	require.NoError(t, err)
	require.EqualValues(t, 0b0101, v)
}

func TestSharedPrefixLen(t *testing.T) {
	a := bitstring.OfUint64(0b11010, 5)
	b := bitstring.OfUint64(0b11001, 5)
	require.Equal(t, 3, bitstring.SharedPrefixLen(a, b))
}

func TestNatConvention(t *testing.T) {
	for _, v := range []uint64{0, 1, 2, 3, 255, 256, 1 << 40} {
		bs := bitstring.OfNat(v)
		if v != 0 {
			require.EqualValues(t, 1, bitstring.Head(bs))
		} else {
			require.True(t, bs.IsEmpty())
		}
		got, err := bitstring.ToNat(bs)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestToNatRejectsLeadingZero(t *testing.T) {
	bad := bitstring.OfUint64(0b001, 3)
	_, err := bitstring.ToNat(bad)
	require.Error(t, err)
}

func TestBytesRoundTrip(t *testing.T) {
	in := []byte{0x00, 0xFF, 0x42, 0x13}
	bs := bitstring.OfBytes(in)
	require.Equal(t, len(in)*8, bs.Len())
	out, err := bitstring.ToBytes(bs)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

// TestLengthAndSplitProperty exercises property 2 from spec.md §8:
// length(append a b) = length a + length b and splitAt round-trips.
func TestLengthAndSplitProperty(t *testing.T) {
	cases := []struct{ a, b uint64 }{
		{0, 0}, {1, 0}, {0, 1}, {0xFF, 0xAB}, {1 << 40, 7},
	}
	for _, c := range cases {
		a := bitstring.OfNat(c.a)
		b := bitstring.OfNat(c.b)
		ab := bitstring.Append(a, b)
		require.Equal(t, a.Len()+b.Len(), ab.Len())
		gotA, gotB := bitstring.SplitAt(a.Len(), ab)
		require.True(t, bitstring.Equal(a, gotA))
		require.True(t, bitstring.Equal(b, gotB))
	}
}

func TestCompareOrdering(t *testing.T) {
	a := bitstring.OfUint64(0b10, 2)
	b := bitstring.OfUint64(0b11, 2)
	require.Equal(t, -1, bitstring.Compare(a, b))
	require.Equal(t, 1, bitstring.Compare(b, a))
	require.Equal(t, 0, bitstring.Compare(a, a))

	prefix := bitstring.OfUint64(0b1, 1)
	longer := bitstring.OfUint64(0b10, 2)
	require.Equal(t, -1, bitstring.Compare(prefix, longer))
}
