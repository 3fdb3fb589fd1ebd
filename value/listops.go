// SPDX-License-Identifier: MIT

package value

import "github.com/dmbarbour/glas/rope"

// Uncons splits a non-empty list-shaped Value into its head element and
// list-shaped tail, using the rope's O(log n) view when v is already a
// List terminal and falling back to a single pair projection otherwise.
func Uncons(v Value) (head, tail Value, ok bool) {
	if v.kind == KindList {
		return viewListHead(v)
	}
	if !v.IsPair() {
		return Value{}, Value{}, false
	}
	return *v.left, *v.right, true
}

// UnconsRight splits a non-empty list-shaped Value into its list-shaped
// init and its last element.
func UnconsRight(v Value) (init, last Value, ok bool) {
	if !v.IsList() {
		return Value{}, Value{}, false
	}
	if v.kind == KindList {
		l, t, ok := rope.ViewR(v.list)
		if !ok {
			return Value{}, Value{}, false
		}
		return Value{kind: KindList, list: l}, t, true
	}
	elems, ok := AsListElems(v)
	if !ok || len(elems) == 0 {
		return Value{}, Value{}, false
	}
	return OfList(elems[:len(elems)-1]), elems[len(elems)-1], true
}

// PushRight appends val to the right (tail) end of list v.
func PushRight(v Value, val Value) Value {
	if v.kind == KindList {
		return Value{kind: KindList, list: rope.Snoc(v.list, val)}
	}
	elems, _ := AsListElems(v)
	return OfList(append(elems, val))
}

// JoinLists concatenates two list-shaped Values.
func JoinLists(a, b Value) Value {
	if a.kind == KindList && b.kind == KindList {
		return Value{kind: KindList, list: rope.Append(a.list, b.list)}
	}
	aElems, _ := AsListElems(a)
	bElems, _ := AsListElems(b)
	return OfList(append(aElems, bElems...))
}

// ListLen returns the number of elements in a list-shaped Value.
func ListLen(v Value) (int, bool) {
	if !v.IsList() {
		return 0, false
	}
	if v.kind == KindList {
		return v.list.Len(), true
	}
	n := 0
	cur := v
	for !cur.IsUnit() {
		n++
		cur = *cur.right
	}
	return n, true
}

// ListSplit divides a list-shaped Value into its first n elements and
// the remainder. Fails if n exceeds the list's length.
func ListSplit(v Value, n int) (left, right Value, ok bool) {
	length, ok := ListLen(v)
	if !ok || n < 0 || n > length {
		return Value{}, Value{}, false
	}
	if v.kind == KindList {
		l, r := v.list.Split(n)
		return Value{kind: KindList, list: l}, Value{kind: KindList, list: r}, true
	}
	elems, _ := AsListElems(v)
	return OfList(elems[:n:n]), OfList(elems[n:]), true
}
