// SPDX-License-Identifier: MIT

package value

import (
	"github.com/dmbarbour/glas/bitstring"
	"github.com/dmbarbour/glas/rope"
)

// edge tags used by ToKey/OfKey, two bits per structural step.
const (
	edgeLeaf   = 0b00
	edgeLeft   = 0b01
	edgeRight  = 0b10
	edgeBranch = 0b11
)

func tagBits(tag uint64) bitstring.Bits { return bitstring.OfUint64(tag, 2) }

// ToKey encodes v as a unique-prefix bitstring: a depth-first walk of
// v's stem and terminal, two tag bits per step. Two Values compare
// equal (by Equal) iff their keys are identical, and no key is a bit
// prefix of another key, so ToKey's output is safe to use directly as
// a record key for storing Values.
//
// A List terminal is encoded exactly as its pair-chain expansion would
// be, so list-as-pairs and list-as-rope representations of the same
// logical sequence always produce the same key.
func ToKey(v Value) bitstring.Bits {
	if !v.stem.IsEmpty() {
		bit := bitstring.Head(v.stem)
		rest := v
		rest.stem = bitstring.Tail(v.stem)
		tag := tagBits(edgeLeft)
		if bit == 1 {
			tag = tagBits(edgeRight)
		}
		return bitstring.Append(tag, ToKey(rest))
	}
	switch v.kind {
	case KindLeaf:
		return tagBits(edgeLeaf)
	case KindBranch:
		return bitstring.Append(tagBits(edgeBranch), bitstring.Append(ToKey(*v.left), ToKey(*v.right)))
	case KindList:
		head, tail, ok := viewListHead(v)
		if !ok {
			return tagBits(edgeLeaf)
		}
		return bitstring.Append(tagBits(edgeBranch), bitstring.Append(ToKey(head), ToKey(tail)))
	default:
		domainPanic("ToKey", "unreachable value kind")
		return bitstring.Empty()
	}
}

// viewListHead decomposes a List-shaped Value (terminal kind List) into
// its head element and list-shaped tail, if non-empty.
func viewListHead(v Value) (head, tail Value, ok bool) {
	h, rest, ok := rope.ViewL(v.list)
	if !ok {
		return Value{}, Value{}, false
	}
	return h, Value{kind: KindList, list: rest}, true
}

// OfKey decodes a bitstring produced by ToKey back into a Value. The
// reconstructed Value is logically equal (Equal) to the original but
// may differ in representation: List terminals decode as pair chains.
func OfKey(bs bitstring.Bits) (Value, bool) {
	v, rest, ok := decodeKey(bs)
	if !ok || !rest.IsEmpty() {
		return Value{}, false
	}
	return v, true
}

func decodeKey(bs bitstring.Bits) (Value, bitstring.Bits, bool) {
	if bs.Len() < 2 {
		return Value{}, bs, false
	}
	tagBs, rest := bitstring.SplitAt(2, bs)
	tag, err := bitstring.ToUint64(tagBs)
	if err != nil {
		return Value{}, bs, false
	}
	switch tag {
	case edgeLeaf:
		return Unit(), rest, true
	case edgeLeft:
		v, rest2, ok := decodeKey(rest)
		if !ok {
			return Value{}, bs, false
		}
		return Left(v), rest2, true
	case edgeRight:
		v, rest2, ok := decodeKey(rest)
		if !ok {
			return Value{}, bs, false
		}
		return Right(v), rest2, true
	case edgeBranch:
		l, rest2, ok := decodeKey(rest)
		if !ok {
			return Value{}, bs, false
		}
		r, rest3, ok := decodeKey(rest2)
		if !ok {
			return Value{}, bs, false
		}
		return Pair(l, r), rest3, true
	default:
		return Value{}, bs, false
	}
}
