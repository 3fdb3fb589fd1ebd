// SPDX-License-Identifier: MIT

package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmbarbour/glas/bitstring"
	"github.com/dmbarbour/glas/value"
)

func TestAddWithinWidth(t *testing.T) {
	a := bitstring.OfUint64(3, 4)
	b := bitstring.OfUint64(4, 4)
	sum, carry := value.Add(a, b)
	sv, err := bitstring.ToUint64(sum)
	require.NoError(t, err)
	cv, err := bitstring.ToUint64(carry)
	require.NoError(t, err)
	require.EqualValues(t, 7, sv)
	require.EqualValues(t, 0, cv)
}

func TestAddOverflowsIntoCarry(t *testing.T) {
	a := bitstring.OfUint64(0b1111, 4)
	b := bitstring.OfUint64(0b0011, 4)
	sum, carry := value.Add(a, b)
	sv, _ := bitstring.ToUint64(sum)
	cv, _ := bitstring.ToUint64(carry)
	require.EqualValues(t, 0b0010, sv) // 15+3=18, low 4 bits = 2
	require.EqualValues(t, 1, cv)      // high bit carries into 4-bit carry
}

func TestMulOverflow(t *testing.T) {
	a := bitstring.OfUint64(200, 8)
	b := bitstring.OfUint64(200, 8)
	prod, overflow := value.Mul(a, b)
	pv, _ := bitstring.ToUint64(prod)
	ov, _ := bitstring.ToUint64(overflow)
	total := ov<<8 | pv
	require.EqualValues(t, 40000, total)
}

func TestSubUnderflowFails(t *testing.T) {
	a := bitstring.OfUint64(1, 8)
	b := bitstring.OfUint64(2, 8)
	_, err := value.Sub(a, b)
	require.ErrorIs(t, err, value.ErrUnderflow)
}

func TestSubSucceeds(t *testing.T) {
	a := bitstring.OfUint64(10, 8)
	b := bitstring.OfUint64(3, 8)
	d, err := value.Sub(a, b)
	require.NoError(t, err)
	dv, _ := bitstring.ToUint64(d)
	require.EqualValues(t, 7, dv)
}

func TestDivByZeroFails(t *testing.T) {
	a := bitstring.OfUint64(10, 8)
	z := bitstring.OfUint64(0, 8)
	_, _, err := value.Div(a, z)
	require.ErrorIs(t, err, value.ErrDivByZero)
}

func TestDivQuotientRemainder(t *testing.T) {
	a := bitstring.OfUint64(17, 8)
	b := bitstring.OfUint64(5, 8)
	q, r, err := value.Div(a, b)
	require.NoError(t, err)
	qv, _ := bitstring.ToUint64(q)
	rv, _ := bitstring.ToUint64(r)
	require.EqualValues(t, 3, qv)
	require.EqualValues(t, 2, rv)
}
