// SPDX-License-Identifier: MIT

package value

import (
	"errors"
	"math/big"

	"github.com/dmbarbour/glas/bitstring"
)

// bitsToBig interprets bs as a big-endian unsigned integer.
func bitsToBig(bs bitstring.Bits) *big.Int {
	n := bs.Len()
	if n == 0 {
		return new(big.Int)
	}
	bytes, err := bitstring.ToBytes(padToByteBoundary(bs))
	if err != nil {
		// padToByteBoundary guarantees byte alignment.
		panic(err)
	}
	v := new(big.Int).SetBytes(bytes)
	// padToByteBoundary pads on the right (low bits), so undo that shift.
	pad := len(bytes)*8 - n
	return v.Rsh(v, uint(pad))
}

// padToByteBoundary right-pads bs with zero bits up to a multiple of 8.
func padToByteBoundary(bs bitstring.Bits) bitstring.Bits {
	rem := bs.Len() % 8
	if rem == 0 {
		return bs
	}
	pad := bitstring.OfUint64(0, 8-rem)
	return bitstring.Append(bs, pad)
}

// bigToBits renders v's low width bits as a big-endian bitstring.
func bigToBits(v *big.Int, width int) bitstring.Bits {
	if width == 0 {
		return bitstring.Empty()
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(width))
	v = new(big.Int).Mod(v, mod)
	bytes := v.Bytes()
	need := (width + 7) / 8
	padded := make([]byte, need)
	copy(padded[need-len(bytes):], bytes)
	full := bitstring.OfBytes(padded)
	_, low := bitstring.SplitAt(full.Len()-width, full)
	return low
}

// Add computes n1+n2. sum has the bit-width of n1; carry (the
// high-order surplus) has the bit-width of n2.
func Add(n1, n2 bitstring.Bits) (sum, carry bitstring.Bits) {
	a, b := bitsToBig(n1), bitsToBig(n2)
	total := new(big.Int).Add(a, b)
	sum = bigToBits(total, n1.Len())
	hi := new(big.Int).Rsh(total, uint(n1.Len()))
	carry = bigToBits(hi, n2.Len())
	return sum, carry
}

// Mul computes n1*n2. prod has the bit-width of n1; overflow has the
// bit-width of n2.
func Mul(n1, n2 bitstring.Bits) (prod, overflow bitstring.Bits) {
	a, b := bitsToBig(n1), bitsToBig(n2)
	total := new(big.Int).Mul(a, b)
	prod = bigToBits(total, n1.Len())
	hi := new(big.Int).Rsh(total, uint(n1.Len()))
	overflow = bigToBits(hi, n2.Len())
	return prod, overflow
}

// ErrUnderflow is returned by Sub when n1 < n2.
var ErrUnderflow = errors.New("value: sub: n1 < n2")

// Sub computes n1-n2, with the bit-width of n1. Fails if n1 < n2.
func Sub(n1, n2 bitstring.Bits) (bitstring.Bits, error) {
	a, b := bitsToBig(n1), bitsToBig(n2)
	if a.Cmp(b) < 0 {
		return bitstring.Bits{}, ErrUnderflow
	}
	diff := new(big.Int).Sub(a, b)
	return bigToBits(diff, n1.Len()), nil
}

// ErrDivByZero is returned by Div when divisor is zero.
var ErrDivByZero = errors.New("value: div: division by zero")

// Div computes dividend/divisor, returning a quotient of dividend's
// bit-width and a remainder of divisor's bit-width. Fails if divisor
// is zero.
func Div(dividend, divisor bitstring.Bits) (quotient, remainder bitstring.Bits, err error) {
	a, b := bitsToBig(dividend), bitsToBig(divisor)
	if b.Sign() == 0 {
		return bitstring.Bits{}, bitstring.Bits{}, ErrDivByZero
	}
	q, r := new(big.Int).QuoRem(a, b, new(big.Int))
	return bigToBits(q, dividend.Len()), bigToBits(r, divisor.Len()), nil
}
