// SPDX-License-Identifier: MIT

// Package value implements Value, the single immutable data
// representation shared by every layer of the interpreter: bitstrings,
// pairs, sum-tagged variants, records, and lists are all the same
// stem-plus-terminal shape, distinguished only by how far the stem
// walks before it reaches a terminal.
//
// A Value is a bitstring "stem" terminating in one of three terminals:
// a Leaf (the unit value), a Branch (a pair of Values), or a List (a
// rope of Values, semantically the right-spine of pairs ending in
// unit). The stem carries sum tags (left prepends 0, right prepends 1)
// and label bits (variant/symbol), exactly as the routing-table trie
// carries prefix bits ahead of a fixed-width address: path compression
// here is just unbounded instead of byte-strided.
package value

import (
	"fmt"
	"strings"

	"github.com/dmbarbour/glas/bitstring"
	"github.com/dmbarbour/glas/rope"
)

// Kind identifies a Value's terminal. The zero Kind is KindLeaf, so the
// zero Value is exactly Unit().
type Kind uint8

const (
	KindLeaf Kind = iota
	KindBranch
	KindList
)

// Value is an immutable stem-plus-terminal tree. Construct one with the
// package-level constructors; there are no mutating methods.
type Value struct {
	stem bitstring.Bits
	kind Kind
	left, right *Value
	list rope.Rope[Value]
}

// DomainError reports a programmer contract violation, such as
// projecting vfst of a non-pair. It is not a recoverable program
// failure.
type DomainError struct {
	Op  string
	Msg string
}

func (e DomainError) Error() string {
	return fmt.Sprintf("value: %s: %s", e.Op, e.Msg)
}

func domainPanic(op, msg string) {
	panic(DomainError{Op: op, Msg: msg})
}

// Unit is the empty-stem, Leaf-terminal value.
func Unit() Value { return Value{} }

// Pair constructs a Branch of a and b.
func Pair(a, b Value) Value {
	return Value{kind: KindBranch, left: &a, right: &b}
}

// Left prepends bit 0 to v's stem.
func Left(v Value) Value {
	v.stem = bitstring.Cons(0, v.stem)
	return v
}

// Right prepends bit 1 to v's stem.
func Right(v Value) Value {
	v.stem = bitstring.Cons(1, v.stem)
	return v
}

// OfBits wraps a bitstring as a Leaf-terminated Value whose stem is bs.
func OfBits(bs bitstring.Bits) Value { return Value{stem: bs, kind: KindLeaf} }

// OfByte encodes b as an 8-bit Value.
func OfByte(b byte) Value { return OfBits(bitstring.OfByte(b)) }

// OfNat encodes v under the natural-number bitstring convention.
func OfNat(v uint64) Value { return OfBits(bitstring.OfNat(v)) }

// labelBits encodes label as a null-terminated, msb-first bitstring.
func labelBits(label string) bitstring.Bits {
	raw := append([]byte(label), 0)
	return bitstring.OfBytes(raw)
}

// Variant prepends label's null-terminated encoding to v's stem.
func Variant(label string, v Value) Value {
	v.stem = bitstring.Append(labelBits(label), v.stem)
	return v
}

// Symbol is Variant(label, Unit()).
func Symbol(label string) Value { return Variant(label, Unit()) }

// OfString encodes s's raw UTF-8 bytes as a bitstring Value, msb-first,
// with no label framing (distinct from Symbol/Variant, which add a
// null terminator for use as record keys).
func OfString(s string) Value { return OfBits(bitstring.OfBytes([]byte(s))) }

// OfBinary builds a List Value whose elements are all byte Values,
// using the rope's byte-leaf representation.
func OfBinary(b []byte) Value {
	items := make([]Value, len(b))
	for i, x := range b {
		items[i] = OfByte(x)
	}
	return Value{kind: KindList, list: rope.FromSeq(items)}
}

// OfList builds a List Value from items.
func OfList(items []Value) Value {
	return Value{kind: KindList, list: rope.FromSeq(items)}
}

// IsUnit reports whether v is the unit value.
func (v Value) IsUnit() bool { return v.stem.IsEmpty() && v.kind == KindLeaf }

// IsPair reports whether v is a bare Branch (no sum tag ahead of it).
func (v Value) IsPair() bool { return v.stem.IsEmpty() && v.kind == KindBranch }

// IsLeft reports whether v's leading stem bit is 0.
func (v Value) IsLeft() bool { return !v.stem.IsEmpty() && bitstring.Head(v.stem) == 0 }

// IsRight reports whether v's leading stem bit is 1.
func (v Value) IsRight() bool { return !v.stem.IsEmpty() && bitstring.Head(v.stem) == 1 }

// IsBits reports whether v is a plain bitstring: a Leaf terminal, with
// the stem carrying the entire bit content.
func (v Value) IsBits() bool { return v.kind == KindLeaf }

// IsList reports whether v has list shape: Leaf-as-unit (the empty
// list), a List terminal, or a Branch whose right side is recursively
// list-shaped.
func (v Value) IsList() bool {
	switch v.kind {
	case KindList:
		return true
	case KindLeaf:
		return v.stem.IsEmpty()
	case KindBranch:
		return v.stem.IsEmpty() && v.right.IsList()
	default:
		return false
	}
}

// IsBinary reports whether v is list-shaped with every element
// byte-shaped.
func (v Value) IsBinary() bool {
	if !v.IsList() {
		return false
	}
	if v.kind == KindList {
		return v.list.IsBinary()
	}
	if v.IsUnit() {
		return true
	}
	if _, ok := v.left.AsByte(); !ok {
		return false
	}
	return v.right.IsBinary()
}

// IsRecord reports whether v can be interpreted as a record. Every
// Value is structurally eligible (records and plain pair/stem trees
// share a representation); record-ness is a property of how labels
// were used to reach a position, not of shape, so this always holds.
func (v Value) IsRecord() bool { return true }

// VFst projects the left component of a pair. Panics if v is not a pair.
func VFst(v Value) Value {
	if !v.IsPair() {
		domainPanic("vfst", "not a pair")
	}
	return *v.left
}

// VSnd projects the right component of a pair. Panics if v is not a pair.
func VSnd(v Value) Value {
	if !v.IsPair() {
		domainPanic("vsnd", "not a pair")
	}
	return *v.right
}

// AsByte implements the rope package's optional byte-leaf capability:
// a Value is byte-shaped iff it is an 8-bit Leaf.
func (v Value) AsByte() (byte, bool) {
	if v.kind != KindLeaf || v.stem.Len() != 8 {
		return 0, false
	}
	b, err := bitstring.ToByte(v.stem)
	if err != nil {
		return 0, false
	}
	return b, true
}

// FromByte implements the rope package's byte-leaf reconstruction
// capability, called on a zero Value.
func (Value) FromByte(b byte) Value { return OfByte(b) }

// DebugString renders v for logging; it is not canonical or parseable
// and must never be relied on for equality or serialization.
func (v Value) DebugString() string {
	var sb strings.Builder
	writeDebug(&sb, v)
	return sb.String()
}

func writeDebug(sb *strings.Builder, v Value) {
	if !v.stem.IsEmpty() {
		sb.WriteString(v.stem.String())
		sb.WriteByte(':')
	}
	switch v.kind {
	case KindLeaf:
		sb.WriteString("unit")
	case KindBranch:
		sb.WriteByte('(')
		writeDebug(sb, *v.left)
		sb.WriteByte(',')
		writeDebug(sb, *v.right)
		sb.WriteByte(')')
	case KindList:
		sb.WriteByte('[')
		seq := rope.ToSeq(v.list)
		for i, e := range seq {
			if i > 0 {
				sb.WriteByte(' ')
			}
			writeDebug(sb, e)
		}
		sb.WriteByte(']')
	}
}
