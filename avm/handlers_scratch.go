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

// opLoad and opStore address scratch space with an immediate byte index, so
// they can never go out of bounds (ScratchSize == 256).
func opLoad(m *Machine) error {
	idx, err := m.readByte()
	if err != nil {
		return err
	}
	m.push(m.scratch.GetByte(idx))
	return nil
}

func opStore(m *Machine) error {
	idx, err := m.readByte()
	if err != nil {
		return err
	}
	v, err := m.pop()
	if err != nil {
		return err
	}
	m.scratch.SetByte(idx, v)
	return nil
}

// opLoads and opStores address scratch space with a stack-popped u64 index,
// which must be bounds-checked against ScratchSize.
func opLoads(m *Machine) error {
	idx, err := m.popUint64()
	if err != nil {
		return err
	}
	v, err := m.scratch.Get(idx)
	if err != nil {
		return err
	}
	m.push(v)
	return nil
}

func opStores(m *Machine) error {
	v, err := m.pop()
	if err != nil {
		return err
	}
	idx, err := m.popUint64()
	if err != nil {
		return err
	}
	return m.scratch.Set(idx, v)
}
