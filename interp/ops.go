// SPDX-License-Identifier: MIT

package interp

import (
	"github.com/dmbarbour/glas/bitstring"
	"github.com/dmbarbour/glas/value"
)

// compileOperator builds the op for a reserved operator label. Binary
// operators consume the stack in (a, b --) order, with b on top, so the
// first pop always yields the more recently pushed argument.
func compileOperator(name string) op {
	switch name {
	case "copy":
		return func(s *State) bool { s.push(s.top()); return true }
	case "drop":
		return func(s *State) bool { s.pop(); return true }
	case "swap":
		return func(s *State) bool {
			b, a := s.pop(), s.pop()
			s.push(b)
			s.push(a)
			return true
		}
	case "eq":
		return func(s *State) bool {
			b, a := s.pop(), s.pop()
			return value.Equal(a, b)
		}
	case "fail":
		return func(s *State) bool { return false }
	case "eff":
		return func(s *State) bool {
			req := s.pop()
			resp, ok := s.Handler.Effect(req)
			if !ok {
				return false
			}
			s.push(resp)
			return true
		}
	case "get":
		return func(s *State) bool {
			k, r := s.pop(), s.pop()
			v, ok := value.RecordLookup(value.ToKey(k), r)
			if !ok {
				return false
			}
			s.push(v)
			return true
		}
	case "put":
		return func(s *State) bool {
			v, k, r := s.pop(), s.pop(), s.pop()
			s.push(value.RecordInsert(value.ToKey(k), v, r))
			return true
		}
	case "del":
		return func(s *State) bool {
			k, r := s.pop(), s.pop()
			s.push(value.RecordDelete(value.ToKey(k), r))
			return true
		}
	case "pushl":
		return func(s *State) bool {
			v, l := s.pop(), s.pop()
			if !l.IsList() {
				return false
			}
			s.push(value.Pair(v, l))
			return true
		}
	case "popl":
		return func(s *State) bool {
			head, tail, ok := value.Uncons(s.pop())
			if !ok {
				return false
			}
			s.push(tail)
			s.push(head)
			return true
		}
	case "pushr":
		return func(s *State) bool {
			v, l := s.pop(), s.pop()
			if !l.IsList() {
				return false
			}
			s.push(value.PushRight(l, v))
			return true
		}
	case "popr":
		return func(s *State) bool {
			init, last, ok := value.UnconsRight(s.pop())
			if !ok {
				return false
			}
			s.push(init)
			s.push(last)
			return true
		}
	case "join":
		return func(s *State) bool {
			b, a := s.pop(), s.pop()
			if !a.IsList() || !b.IsList() {
				return false
			}
			s.push(value.JoinLists(a, b))
			return true
		}
	case "split":
		return func(s *State) bool {
			n, l := s.pop(), s.pop()
			k, ok := asNat(n)
			if !ok {
				return false
			}
			left, right, ok := value.ListSplit(l, int(k))
			if !ok {
				return false
			}
			s.push(left)
			s.push(right)
			return true
		}
	case "len":
		return func(s *State) bool {
			n, ok := value.ListLen(s.pop())
			if !ok {
				return false
			}
			s.push(value.OfNat(uint64(n)))
			return true
		}
	case "bjoin":
		return func(s *State) bool {
			b, a := s.pop(), s.pop()
			ab, ok1 := value.AsBits(a)
			bb, ok2 := value.AsBits(b)
			if !ok1 || !ok2 {
				return false
			}
			s.push(value.OfBits(bitstring.Append(ab, bb)))
			return true
		}
	case "bsplit":
		return func(s *State) bool {
			n, bv := s.pop(), s.pop()
			k, ok := asNat(n)
			if !ok {
				return false
			}
			bits, ok := value.AsBits(bv)
			if !ok || int(k) > bits.Len() {
				return false
			}
			l, r := bitstring.SplitAt(int(k), bits)
			s.push(value.OfBits(l))
			s.push(value.OfBits(r))
			return true
		}
	case "blen":
		return func(s *State) bool {
			bits, ok := value.AsBits(s.pop())
			if !ok {
				return false
			}
			s.push(value.OfNat(uint64(bits.Len())))
			return true
		}
	case "bneg":
		return func(s *State) bool {
			bits, ok := value.AsBits(s.pop())
			if !ok {
				return false
			}
			s.push(value.OfBits(bitstring.Neg(bits)))
			return true
		}
	case "bmax":
		return compileBitPick(func(cmp int) bool { return cmp >= 0 })
	case "bmin":
		return compileBitPick(func(cmp int) bool { return cmp <= 0 })
	case "beq":
		return func(s *State) bool {
			b, a := s.pop(), s.pop()
			ab, ok1 := value.AsBits(a)
			bb, ok2 := value.AsBits(b)
			return ok1 && ok2 && bitstring.Equal(ab, bb)
		}
	case "add":
		return func(s *State) bool {
			b, a := s.pop(), s.pop()
			ab, ok1 := value.AsBits(a)
			bb, ok2 := value.AsBits(b)
			if !ok1 || !ok2 {
				return false
			}
			sum, carry := value.Add(ab, bb)
			s.push(value.OfBits(sum))
			s.push(value.OfBits(carry))
			return true
		}
	case "mul":
		return func(s *State) bool {
			b, a := s.pop(), s.pop()
			ab, ok1 := value.AsBits(a)
			bb, ok2 := value.AsBits(b)
			if !ok1 || !ok2 {
				return false
			}
			prod, overflow := value.Mul(ab, bb)
			s.push(value.OfBits(prod))
			s.push(value.OfBits(overflow))
			return true
		}
	case "sub":
		return func(s *State) bool {
			b, a := s.pop(), s.pop()
			ab, ok1 := value.AsBits(a)
			bb, ok2 := value.AsBits(b)
			if !ok1 || !ok2 {
				return false
			}
			diff, err := value.Sub(ab, bb)
			if err != nil {
				return false
			}
			s.push(value.OfBits(diff))
			return true
		}
	case "div":
		return func(s *State) bool {
			b, a := s.pop(), s.pop()
			ab, ok1 := value.AsBits(a)
			bb, ok2 := value.AsBits(b)
			if !ok1 || !ok2 {
				return false
			}
			q, r, err := value.Div(ab, bb)
			if err != nil {
				return false
			}
			s.push(value.OfBits(q))
			s.push(value.OfBits(r))
			return true
		}
	default:
		panic("interp: unreachable reserved operator " + name)
	}
}

// compileBitPick builds bmax/bmin: both select one of their two
// bitstring arguments whole, ordered by bitstring.Compare, rather than
// computing a numeric max/min independently of representation.
func compileBitPick(keep func(cmp int) bool) op {
	return func(s *State) bool {
		b, a := s.pop(), s.pop()
		ab, ok1 := value.AsBits(a)
		bb, ok2 := value.AsBits(b)
		if !ok1 || !ok2 {
			return false
		}
		if keep(bitstring.Compare(ab, bb)) {
			s.push(value.OfBits(ab))
		} else {
			s.push(value.OfBits(bb))
		}
		return true
	}
}

func asNat(v value.Value) (uint64, bool) {
	bits, ok := value.AsBits(v)
	if !ok {
		return 0, false
	}
	n, err := bitstring.ToNat(bits)
	if err != nil {
		return 0, false
	}
	return n, true
}
