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

func opPop(m *Machine) error {
	_, err := m.popMnemonic()
	return err
}

func opDup(m *Machine) error {
	v, err := m.peek()
	if err != nil {
		return err
	}
	m.push(v.clone())
	return nil
}

func opDup2(m *Machine) error {
	n := len(m.stack)
	if n < 2 {
		return errStackUnderflow()
	}
	a, b := m.stack[n-2], m.stack[n-1]
	m.push(a.clone())
	m.push(b.clone())
	return nil
}

func opSwap(m *Machine) error {
	n := len(m.stack)
	if n < 2 {
		return errStackUnderflow()
	}
	m.stack[n-1], m.stack[n-2] = m.stack[n-2], m.stack[n-1]
	return nil
}

// opDig pushes a copy of the element n below the top, leaving the existing
// stack untouched.
func opDig(m *Machine) error {
	n, err := m.readByte()
	if err != nil {
		return err
	}
	idx, err := stackIndexFromTop(m, uint64(n))
	if err != nil {
		return err
	}
	m.push(m.stack[idx].clone())
	return nil
}

// opBury pops v and writes it at depth n (1 = second-from-top before the
// pop, len(stack)-1 = the bottom slot). n == 0 or n >= len(stack) is
// InvalidStackAccess.
func opBury(m *Machine) error {
	n, err := m.readByte()
	if err != nil {
		return err
	}
	if n == 0 || uint64(n) >= uint64(len(m.stack)) {
		return errInvalidStackAccess(uint64(n))
	}
	v, err := m.pop()
	if err != nil {
		return err
	}
	idx := len(m.stack) - int(n)
	m.stack[idx] = v
	return nil
}

// opCover pops v and inserts it n positions below the (new) top.
func opCover(m *Machine) error {
	n, err := m.readByte()
	if err != nil {
		return err
	}
	idx, err := stackIndexFromTop(m, uint64(n))
	if err != nil {
		return err
	}
	v, err := m.pop()
	if err != nil {
		return err
	}
	m.stack = append(m.stack, Value{})
	copy(m.stack[idx+1:], m.stack[idx:len(m.stack)-1])
	m.stack[idx] = v
	return nil
}

// opUncover removes the element n below the top and pushes it.
func opUncover(m *Machine) error {
	n, err := m.readByte()
	if err != nil {
		return err
	}
	idx, err := stackIndexFromTop(m, uint64(n))
	if err != nil {
		return err
	}
	v := m.stack[idx]
	copy(m.stack[idx:], m.stack[idx+1:])
	m.stack[len(m.stack)-1] = v
	return nil
}

func opSelect(m *Machine) error {
	c, err := m.popUint64()
	if err != nil {
		return err
	}
	b, err := m.pop()
	if err != nil {
		return err
	}
	a, err := m.pop()
	if err != nil {
		return err
	}
	if c == 0 {
		m.push(a)
	} else {
		m.push(b)
	}
	return nil
}

func opPopN(m *Machine) error {
	n, err := m.readByte()
	if err != nil {
		return err
	}
	return m.popN(int(n))
}

func opDupN(m *Machine) error {
	n, err := m.readByte()
	if err != nil {
		return err
	}
	v, err := m.pop()
	if err != nil {
		return err
	}
	for i := 0; i < int(n)+1; i++ {
		m.push(v.clone())
	}
	return nil
}

// stackIndexFromTop resolves an immediate n (element n below the top,
// counted before any mutation) into an absolute stack index, failing
// InvalidStackAccess if n >= len(stack).
func stackIndexFromTop(m *Machine, n uint64) (int, error) {
	if n >= uint64(len(m.stack)) {
		return 0, errInvalidStackAccess(n)
	}
	return len(m.stack) - 1 - int(n), nil
}
