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

import "encoding/binary"

func opLen(m *Machine) error {
	b, err := m.popBytes()
	if err != nil {
		return err
	}
	m.push(Uint64Value(uint64(len(b))))
	return nil
}

func opItob(m *Machine) error {
	v, err := m.popUint64()
	if err != nil {
		return err
	}
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	m.push(BytesValue(buf))
	return nil
}

func opBtoi(m *Machine) error {
	b, err := m.popBytes()
	if err != nil {
		return err
	}
	if len(b) > 8 {
		return errBtoiTooLong(len(b))
	}
	var buf [8]byte
	copy(buf[8-len(b):], b)
	m.push(Uint64Value(binary.BigEndian.Uint64(buf[:])))
	return nil
}
