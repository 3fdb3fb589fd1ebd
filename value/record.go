// SPDX-License-Identifier: MIT

package value

import "github.com/dmbarbour/glas/bitstring"

// RecordLookup walks key bit by bit through stem matches and Branch
// selection, returning the Value stored at key, if any.
func RecordLookup(key bitstring.Bits, r Value) (Value, bool) {
	n := bitstring.SharedPrefixLen(key, r.stem)
	if n == key.Len() {
		if n == r.stem.Len() {
			return stripStem(r), true
		}
		// key ends inside r's stem: the stem bits past it belong to the
		// stored value itself.
		_, rest := bitstring.SplitAt(n, r.stem)
		r.stem = rest
		return r, true
	}
	if n < r.stem.Len() {
		return Value{}, false
	}
	// r.stem fully matched, key continues: descend via r's terminal.
	if r.kind != KindBranch {
		return Value{}, false
	}
	bit := key.At(n)
	_, restKey := bitstring.SplitAt(n+1, key)
	if bit == 0 {
		return RecordLookup(restKey, *r.left)
	}
	return RecordLookup(restKey, *r.right)
}

// stripStem returns r with its (already-matched) stem bits removed,
// i.e. just its terminal content.
func stripStem(r Value) Value {
	r.stem = bitstring.Empty()
	return r
}

// RecordInsert stores val at key within r, splitting stems as needed.
// For "valid records" (null-terminated labels forming a prefix-free key
// set) this never conflicts with an existing shorter or longer key; if
// it is given a non-prefix-free key set, the newly inserted key wins.
func RecordInsert(key bitstring.Bits, val Value, r Value) Value {
	n := bitstring.SharedPrefixLen(key, r.stem)
	switch {
	case n == key.Len() && n == r.stem.Len():
		return val
	case n == key.Len():
		// key ends strictly inside r's stem: no room to keep both r's
		// deeper content and val at the same position, so val wins.
		return val
	case n == r.stem.Len():
		bit := key.At(n)
		_, restKey := bitstring.SplitAt(n+1, key)
		switch r.kind {
		case KindBranch:
			if bit == 0 {
				nl := RecordInsert(restKey, val, *r.left)
				return Value{stem: r.stem, kind: KindBranch, left: &nl, right: r.right}
			}
			nr := RecordInsert(restKey, val, *r.right)
			return Value{stem: r.stem, kind: KindBranch, left: r.left, right: &nr}
		default:
			sub := RecordInsert(restKey, val, Unit())
			u := Unit()
			if bit == 0 {
				return Value{stem: r.stem, kind: KindBranch, left: &sub, right: &u}
			}
			return Value{stem: r.stem, kind: KindBranch, left: &u, right: &sub}
		}
	default:
		// genuine divergence mid-stem: split r's stem into a branch.
		stemBit := r.stem.At(n)
		common, _ := bitstring.SplitAt(n, r.stem)
		_, rRestStem := bitstring.SplitAt(n+1, r.stem)
		rSub := r
		rSub.stem = rRestStem
		_, keyRest := bitstring.SplitAt(n+1, key)
		valSub := RecordInsert(keyRest, val, Unit())
		if stemBit == 0 {
			return Value{stem: common, kind: KindBranch, left: &rSub, right: &valSub}
		}
		return Value{stem: common, kind: KindBranch, left: &valSub, right: &rSub}
	}
}

// RecordDelete removes key from r, pruning branches back into stems
// where a subtree becomes unit. A no-op if key is not present.
func RecordDelete(key bitstring.Bits, r Value) Value {
	n := bitstring.SharedPrefixLen(key, r.stem)
	if n == key.Len() {
		// key ends at or inside r's stem: all of r past the key is the
		// stored value.
		return Unit()
	}
	if n < r.stem.Len() {
		return r
	}
	if r.kind != KindBranch {
		return r
	}
	bit := key.At(n)
	_, restKey := bitstring.SplitAt(n+1, key)
	if bit == 0 {
		nl := RecordDelete(restKey, *r.left)
		return collapse(r.stem, nl, *r.right)
	}
	nr := RecordDelete(restKey, *r.right)
	return collapse(r.stem, *r.left, nr)
}

// collapse folds a Branch back into a plain stem when one side becomes
// unit, restoring path compression after a delete.
func collapse(stem bitstring.Bits, left, right Value) Value {
	switch {
	case left.IsUnit() && right.IsUnit():
		return Value{stem: stem, kind: KindLeaf}
	case left.IsUnit():
		combined := bitstring.Append(stem, bitstring.Cons(1, right.stem))
		right.stem = combined
		return right
	case right.IsUnit():
		combined := bitstring.Append(stem, bitstring.Cons(0, left.stem))
		left.stem = combined
		return left
	default:
		return Value{stem: stem, kind: KindBranch, left: &left, right: &right}
	}
}
