// SPDX-License-Identifier: MIT

package value

import (
	"github.com/dmbarbour/glas/bitstring"
	"github.com/dmbarbour/glas/rope"
)

// AsBits returns v's stem as a plain bitstring, if v is a Leaf-terminal
// (IsBits) value. Every Leaf value's stem IS its bit content.
func AsBits(v Value) (bitstring.Bits, bool) {
	if v.kind != KindLeaf {
		return bitstring.Bits{}, false
	}
	return v.stem, true
}

// AsVariant decodes v's leading null-terminated UTF-8 label from its
// stem, returning the label and the value with that label's bits
// stripped from the front of the stem. Fails if the stem does not
// start with a byte-aligned, null-terminated label.
func AsVariant(v Value) (label string, payload Value, ok bool) {
	rem := v.stem
	var raw []byte
	for rem.Len() >= 8 {
		b, tail := bitstring.SplitAt(8, rem)
		by, err := bitstring.ToByte(b)
		if err != nil {
			return "", Value{}, false
		}
		rem = tail
		if by == 0 {
			out := v
			out.stem = rem
			return string(raw), out, true
		}
		raw = append(raw, by)
	}
	return "", Value{}, false
}

// AsOperator reports whether v is exactly a reserved-operator-shaped
// value: a label with no further stem or structure beyond it (the
// label's null-terminated bits form the entirety of v).
func AsOperator(v Value) (string, bool) {
	label, payload, ok := AsVariant(v)
	if !ok || !payload.IsUnit() {
		return "", false
	}
	return label, true
}

// AsListElems materializes a list-shaped Value (pair chain, rope
// List-term, or a mix) into an ordered slice. Fails if v is not
// list-shaped.
func AsListElems(v Value) ([]Value, bool) {
	if !v.IsList() {
		return nil, false
	}
	var out []Value
	cur := v
	for {
		if cur.kind == KindList {
			out = append(out, rope.ToSeq(cur.list)...)
			return out, true
		}
		if cur.IsUnit() {
			return out, true
		}
		out = append(out, *cur.left)
		cur = *cur.right
	}
}
