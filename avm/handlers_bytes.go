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

func opConcat(m *Machine) error {
	rhs, err := m.popBytes()
	if err != nil {
		return err
	}
	lhs, err := m.popBytes()
	if err != nil {
		return err
	}
	total := len(lhs) + len(rhs)
	if total > MaxBytesLen {
		return errBytesTooLong()
	}
	out := make([]byte, 0, total)
	out = append(out, lhs...)
	out = append(out, rhs...)
	m.push(BytesValue(out))
	return nil
}

// opSubstring takes its bounds as two immediate bytes s, e and yields
// bytes[s:e]. e < s or e > len(bytes) is InvalidSubstringAccess.
func opSubstring(m *Machine) error {
	s, err := m.readByte()
	if err != nil {
		return err
	}
	e, err := m.readByte()
	if err != nil {
		return err
	}
	return substring(m, uint64(s), uint64(e))
}

// opSubstring3 takes its bounds off the stack: pop e, then s, then bytes.
func opSubstring3(m *Machine) error {
	e, err := m.popUint64()
	if err != nil {
		return err
	}
	s, err := m.popUint64()
	if err != nil {
		return err
	}
	return substring(m, s, e)
}

func substring(m *Machine, s, e uint64) error {
	b, err := m.popBytes()
	if err != nil {
		return err
	}
	if e < s || e > uint64(len(b)) {
		return errInvalidSubstringAccess(s, e, uint64(len(b)))
	}
	out := append([]byte(nil), b[s:e]...)
	m.push(BytesValue(out))
	return nil
}
