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

func opLt(m *Machine) error {
	lhs, rhs, err := popLhsRhs(m)
	if err != nil {
		return err
	}
	m.push(BoolValue(lhs < rhs))
	return nil
}

func opGt(m *Machine) error {
	lhs, rhs, err := popLhsRhs(m)
	if err != nil {
		return err
	}
	m.push(BoolValue(lhs > rhs))
	return nil
}

func opLe(m *Machine) error {
	lhs, rhs, err := popLhsRhs(m)
	if err != nil {
		return err
	}
	m.push(BoolValue(lhs <= rhs))
	return nil
}

func opGe(m *Machine) error {
	lhs, rhs, err := popLhsRhs(m)
	if err != nil {
		return err
	}
	m.push(BoolValue(lhs >= rhs))
	return nil
}

// opLogicalAnd and opLogicalOr treat any nonzero u64 as true.
func opLogicalAnd(m *Machine) error {
	lhs, rhs, err := popLhsRhs(m)
	if err != nil {
		return err
	}
	m.push(BoolValue(lhs != 0 && rhs != 0))
	return nil
}

func opLogicalOr(m *Machine) error {
	lhs, rhs, err := popLhsRhs(m)
	if err != nil {
		return err
	}
	m.push(BoolValue(lhs != 0 || rhs != 0))
	return nil
}

func opNot(m *Machine) error {
	v, err := m.popUint64()
	if err != nil {
		return err
	}
	m.push(BoolValue(v == 0))
	return nil
}

// opEq and opNeq allow either both Uint64 or both Bytes; mixed tags fail
// IncompatibleTypes via Value.Equal.
func opEq(m *Machine) error {
	rhs, err := m.pop()
	if err != nil {
		return err
	}
	lhs, err := m.pop()
	if err != nil {
		return err
	}
	eq, err := lhs.Equal(rhs)
	if err != nil {
		return err
	}
	m.push(BoolValue(eq))
	return nil
}

func opNeq(m *Machine) error {
	rhs, err := m.pop()
	if err != nil {
		return err
	}
	lhs, err := m.pop()
	if err != nil {
		return err
	}
	eq, err := lhs.Equal(rhs)
	if err != nil {
		return err
	}
	m.push(BoolValue(!eq))
	return nil
}
