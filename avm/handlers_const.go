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

func opPushInt(m *Machine) error {
	v, err := m.readVarUint64()
	if err != nil {
		return err
	}
	m.push(Uint64Value(v))
	return nil
}

func opPushBytes(m *Machine) error {
	b, err := m.readVarBytes()
	if err != nil {
		return err
	}
	m.push(BytesValue(append([]byte(nil), b...)))
	return nil
}

func opIntcBlock(m *Machine) error {
	n, err := m.readVarUint64()
	if err != nil {
		return err
	}
	values := make([]uint64, 0, n)
	for i := uint64(0); i < n; i++ {
		v, err := m.readVarUint64()
		if err != nil {
			return err
		}
		values = append(values, v)
	}
	m.intc = values
	return nil
}

func opBytecBlock(m *Machine) error {
	n, err := m.readVarUint64()
	if err != nil {
		return err
	}
	// Entries are borrowed slices into the program buffer until a push
	// materialises one as an owned stack value (spec.md §3, §9).
	values := make([][]byte, 0, n)
	for i := uint64(0); i < n; i++ {
		b, err := m.readVarBytes()
		if err != nil {
			return err
		}
		values = append(values, b)
	}
	m.bytec = values
	return nil
}

func opIntc(m *Machine) error {
	idx, err := m.readVarUint64()
	if err != nil {
		return err
	}
	return pushIntc(m, idx)
}

func opIntc0(m *Machine) error { return pushIntc(m, 0) }
func opIntc1(m *Machine) error { return pushIntc(m, 1) }
func opIntc2(m *Machine) error { return pushIntc(m, 2) }
func opIntc3(m *Machine) error { return pushIntc(m, 3) }

func pushIntc(m *Machine, idx uint64) error {
	if idx >= uint64(len(m.intc)) {
		return errIntcOutOfRange(idx, uint64(len(m.intc)))
	}
	m.push(Uint64Value(m.intc[idx]))
	return nil
}

func opBytec(m *Machine) error {
	idx, err := m.readVarUint64()
	if err != nil {
		return err
	}
	return pushBytec(m, idx)
}

func opBytec0(m *Machine) error { return pushBytec(m, 0) }
func opBytec1(m *Machine) error { return pushBytec(m, 1) }
func opBytec2(m *Machine) error { return pushBytec(m, 2) }
func opBytec3(m *Machine) error { return pushBytec(m, 3) }

func pushBytec(m *Machine, idx uint64) error {
	if idx >= uint64(len(m.bytec)) {
		return errBytecOutOfRange(idx, uint64(len(m.bytec)))
	}
	// Materialise as an owned copy: bytec entries may alias program bytes
	// until pushed (spec.md §3, §9).
	owned := append([]byte(nil), m.bytec[idx]...)
	m.push(BytesValue(owned))
	return nil
}
