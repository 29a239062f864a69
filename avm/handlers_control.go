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

func opBnz(m *Machine) error {
	offset, err := m.readInt16()
	if err != nil {
		return err
	}
	x, err := m.popUint64()
	if err != nil {
		return err
	}
	if x != 0 {
		return m.branch(offset)
	}
	return nil
}

func opBz(m *Machine) error {
	offset, err := m.readInt16()
	if err != nil {
		return err
	}
	x, err := m.popUint64()
	if err != nil {
		return err
	}
	if x == 0 {
		return m.branch(offset)
	}
	return nil
}

func opB(m *Machine) error {
	offset, err := m.readInt16()
	if err != nil {
		return err
	}
	return m.branch(offset)
}

func opReturn(m *Machine) error {
	v, err := m.popUint64()
	if err != nil {
		return err
	}
	m.stack = m.stack[:0]
	m.push(Uint64Value(v))
	m.pc = len(m.program)
	return nil
}

func opAssert(m *Machine) error {
	pos := m.pc - 1
	v, err := m.popUint64()
	if err != nil {
		return err
	}
	if v == 0 {
		return errAssertionFailed(pos)
	}
	return nil
}

func opErr(m *Machine) error { return errErrOpcode() }
