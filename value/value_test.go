// SPDX-License-Identifier: MIT

package value_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/dmbarbour/glas/bitstring"
	"github.com/dmbarbour/glas/value"
)

func TestUnitAndPair(t *testing.T) {
	u := value.Unit()
	require.True(t, u.IsUnit())
	require.False(t, u.IsPair())

	p := value.Pair(value.OfByte(1), value.OfByte(2))
	require.True(t, p.IsPair())
	require.False(t, p.IsUnit())
	require.EqualValues(t, 1, mustByte(t, value.VFst(p)))
	require.EqualValues(t, 2, mustByte(t, value.VSnd(p)))
}

func mustByte(t *testing.T, v value.Value) byte {
	t.Helper()
	b, ok := v.AsByte()
	require.True(t, ok)
	return b
}

func TestVFstVSndPanicOnNonPair(t *testing.T) {
	require.Panics(t, func() { value.VFst(value.Unit()) })
	require.Panics(t, func() { value.VSnd(value.OfByte(9)) })
}

func TestLeftRight(t *testing.T) {
	v := value.OfByte(7)
	l := value.Left(v)
	r := value.Right(v)
	require.True(t, l.IsLeft())
	require.False(t, l.IsRight())
	require.True(t, r.IsRight())
	require.False(t, value.Unit().IsLeft())
}

func TestSymbolVariant(t *testing.T) {
	s := value.Symbol("ok")
	v := value.Variant("ok", value.Unit())
	require.True(t, value.Equal(s, v))

	other := value.Symbol("no")
	require.False(t, value.Equal(s, other))
}

func TestIsListAndIsBinary(t *testing.T) {
	require.True(t, value.Unit().IsList())

	listVal := value.OfList([]value.Value{value.OfByte(1), value.OfByte(2), value.OfByte(3)})
	require.True(t, listVal.IsList())
	require.True(t, listVal.IsBinary())

	pairChain := value.Pair(value.OfByte(1), value.Pair(value.OfByte(2), value.Unit()))
	require.True(t, pairChain.IsList())
	require.True(t, pairChain.IsBinary())

	notList := value.Pair(value.OfByte(1), value.OfByte(2))
	require.False(t, notList.IsList())
}

// TestListRepresentationsAreEqual exercises the spec invariant that a
// Branch-encoded list and a rope-encoded list of the same elements
// compare equal regardless of representation.
func TestListRepresentationsAreEqual(t *testing.T) {
	elems := []value.Value{value.OfByte(10), value.OfByte(20), value.OfByte(30)}
	asRope := value.OfList(elems)
	asPairs := value.Pair(elems[0], value.Pair(elems[1], value.Pair(elems[2], value.Unit())))

	require.True(t, value.Equal(asRope, asPairs))
	require.Equal(t, 0, value.Compare(asRope, asPairs))
	require.Equal(t, value.Hash(asRope), value.Hash(asPairs))

	if diff := cmp.Diff(value.ToKey(asRope).String(), value.ToKey(asPairs).String()); diff != "" {
		t.Fatalf("ToKey representations diverged (-rope +pairs):\n%s", diff)
	}
}

func TestOfBinaryIsBinaryList(t *testing.T) {
	b := value.OfBinary([]byte{0xDE, 0xAD, 0xBE, 0xEF})
	require.True(t, b.IsList())
	require.True(t, b.IsBinary())
}

func TestOfBitsRoundTripsThroughBitstring(t *testing.T) {
	bs := bitstring.OfUint64(0b1011, 4)
	v := value.OfBits(bs)
	require.True(t, v.IsBits())
	got, ok := value.AsBits(v)
	require.True(t, ok)
	require.True(t, bitstring.Equal(bs, got))
}

func TestDebugStringDoesNotPanic(t *testing.T) {
	v := value.Pair(value.OfByte(1), value.Symbol("tag"))
	require.NotEmpty(t, v.DebugString())
}
