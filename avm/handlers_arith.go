// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The ProbeChain is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the ProbeChain. If not, see <http://www.gnu.org/licenses/>.

package avm

import (
	"encoding/binary"
	"math/bits"

	"github.com/holiman/uint256"
)

// All binary arithmetic pops rhs then lhs, so the operation reads lhs OP rhs
// (spec.md §4.5).

func popLhsRhs(m *Machine) (lhs, rhs uint64, err error) {
	rhs, err = m.popUint64()
	if err != nil {
		return 0, 0, err
	}
	lhs, err = m.popUint64()
	if err != nil {
		return 0, 0, err
	}
	return lhs, rhs, nil
}

func opAdd(m *Machine) error {
	lhs, rhs, err := popLhsRhs(m)
	if err != nil {
		return err
	}
	sum, carry := bits.Add64(lhs, rhs, 0)
	if carry != 0 {
		return errIntegerOverflow()
	}
	m.push(Uint64Value(sum))
	return nil
}

func opSub(m *Machine) error {
	lhs, rhs, err := popLhsRhs(m)
	if err != nil {
		return err
	}
	if rhs > lhs {
		return errIntegerUnderflow()
	}
	m.push(Uint64Value(lhs - rhs))
	return nil
}

func opMul(m *Machine) error {
	lhs, rhs, err := popLhsRhs(m)
	if err != nil {
		return err
	}
	hi, lo := bits.Mul64(lhs, rhs)
	if hi != 0 {
		return errIntegerOverflow()
	}
	m.push(Uint64Value(lo))
	return nil
}

func opDiv(m *Machine) error {
	lhs, rhs, err := popLhsRhs(m)
	if err != nil {
		return err
	}
	if rhs == 0 {
		return errDivisionByZero()
	}
	m.push(Uint64Value(lhs / rhs))
	return nil
}

func opMod(m *Machine) error {
	lhs, rhs, err := popLhsRhs(m)
	if err != nil {
		return err
	}
	if rhs == 0 {
		return errDivisionByZero()
	}
	m.push(Uint64Value(lhs % rhs))
	return nil
}

// opMulw computes the full 128-bit product of two u64s and pushes
// (high, low) with low on top. math/bits.Mul64 is the exact stdlib
// primitive for a single 64x64->128 widen; no pack library does this more
// simply (see DESIGN.md).
func opMulw(m *Machine) error {
	lhs, rhs, err := popLhsRhs(m)
	if err != nil {
		return err
	}
	hi, lo := bits.Mul64(lhs, rhs)
	m.push(Uint64Value(hi))
	m.push(Uint64Value(lo))
	return nil
}

// opAddw computes the full 128-bit sum of two u64s and pushes (high, low)
// with low on top.
func opAddw(m *Machine) error {
	lhs, rhs, err := popLhsRhs(m)
	if err != nil {
		return err
	}
	lo, carry := bits.Add64(lhs, rhs, 0)
	m.push(Uint64Value(carry))
	m.push(Uint64Value(lo))
	return nil
}

// opDivModw pops d, c, b, a (d on top), forms the 128-bit values
// ab = (a<<64)|b and cd = (c<<64)|d, and pushes q_high, q_low, r_high,
// r_low (r_low on top). The 128/128 division is delegated to
// holiman/uint256, which already does correct constant-space wide division
// (see DESIGN.md for why this is the one place a pack library earns its
// keep over a hand-rolled long-division routine).
func opDivModw(m *Machine) error {
	d, err := m.popUint64()
	if err != nil {
		return err
	}
	c, err := m.popUint64()
	if err != nil {
		return err
	}
	b, err := m.popUint64()
	if err != nil {
		return err
	}
	a, err := m.popUint64()
	if err != nil {
		return err
	}

	ab := new(uint256.Int).SetBytes(pack128(a, b))
	cd := new(uint256.Int).SetBytes(pack128(c, d))
	if cd.IsZero() {
		return errDivisionByZero()
	}

	var q, r uint256.Int
	q.Div(ab, cd)
	r.Mod(ab, cd)

	qHi, qLo := unpack128(q.Bytes32())
	rHi, rLo := unpack128(r.Bytes32())

	m.push(Uint64Value(qHi))
	m.push(Uint64Value(qLo))
	m.push(Uint64Value(rHi))
	m.push(Uint64Value(rLo))
	return nil
}

// pack128 renders a 128-bit value (hi:lo) as a 16-byte big-endian buffer
// suitable for uint256.Int.SetBytes.
func pack128(hi, lo uint64) []byte {
	buf := make([]byte, 16)
	binary.BigEndian.PutUint64(buf[0:8], hi)
	binary.BigEndian.PutUint64(buf[8:16], lo)
	return buf
}

// unpack128 extracts the low 128 bits of a uint256.Int's big-endian
// Bytes32 representation as (hi, lo). Safe whenever the value is known to
// fit in 128 bits, which both operands and q/r of divmodw always do.
func unpack128(b [32]byte) (hi, lo uint64) {
	hi = binary.BigEndian.Uint64(b[16:24])
	lo = binary.BigEndian.Uint64(b[24:32])
	return hi, lo
}
