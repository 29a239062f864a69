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

// MaxCost is the cumulative per-opcode cost budget. Reaching it without
// completing the program is not an error; the machine simply stops.
const MaxCost uint64 = 700

// MinVersion and MaxVersion bound the declared program version (program[0]).
const (
	MinVersion = 1
	MaxVersion = 10
)

// Machine is the interpreter's entire execution state: the program being
// run, the program counter, the declared version, the data stack, the
// scratch space, and the two constant pools. It is created fresh for a
// single Evaluate call and is not safe for concurrent or repeated use.
//
// Generalized from the teacher's register-based VM struct: program/pc/
// version/stack/scratch/constants play the same role New's fields did there,
// just shaped for a stack machine instead of 256 registers.
type Machine struct {
	program []byte
	pc      int
	version int

	stack   []Value
	scratch *Scratch

	intc  []uint64
	bytec [][]byte

	cost uint64
}

// ForProgram constructs a Machine from a program byte slice. It fails
// EmptyProgram if the program is empty, or InvalidAvmVersion if program[0]
// is not in [MinVersion, MaxVersion].
func ForProgram(program []byte) (*Machine, error) {
	if len(program) == 0 {
		return nil, errEmptyProgram()
	}
	v := program[0]
	if v < MinVersion || v > MaxVersion {
		return nil, errInvalidAvmVersion(v)
	}
	return &Machine{
		program: program,
		pc:      1,
		version: int(v),
		stack:   make([]Value, 0, 16),
		scratch: newScratch(),
	}, nil
}

// PC returns the current program counter.
func (m *Machine) PC() int { return m.pc }

// Version returns the program's declared version.
func (m *Machine) Version() int { return m.version }

// Cost returns the cumulative cost consumed so far.
func (m *Machine) Cost() uint64 { return m.cost }

// Terminated reports whether the machine has reached the end of the
// program. It is false when evaluation stopped because the cost budget ran
// out before the end; it is true when the opcode that reached the budget was
// also the program's last, so compare Cost against MaxCost to tell those
// apart.
func (m *Machine) Terminated() bool { return m.pc >= len(m.program) }

// Stack returns the data stack, top element last. The returned slice aliases
// the machine's internal storage and must be treated as read-only.
func (m *Machine) Stack() []Value { return m.stack }

// Scratch returns the machine's scratch space.
func (m *Machine) Scratch() *Scratch { return m.scratch }

// Intc returns the current integer constant pool.
func (m *Machine) Intc() []uint64 { return m.intc }

// Bytec returns the current byte-string constant pool.
func (m *Machine) Bytec() [][]byte { return m.bytec }

// ---- stack primitives -------------------------------------------------

func (m *Machine) push(v Value) { m.stack = append(m.stack, v) }

// pop removes and returns the top of the stack, failing with
// StackUnderflow if empty. Most handlers use this; the `pop` mnemonic
// specifically uses popMnemonic instead (spec: EmptyStack, not
// StackUnderflow).
func (m *Machine) pop() (Value, error) {
	if len(m.stack) == 0 {
		return Value{}, errStackUnderflow()
	}
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v, nil
}

func (m *Machine) popMnemonic() (Value, error) {
	if len(m.stack) == 0 {
		return Value{}, errEmptyStack()
	}
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v, nil
}

func (m *Machine) popN(n int) error {
	if len(m.stack) < n {
		return errStackUnderflow()
	}
	m.stack = m.stack[:len(m.stack)-n]
	return nil
}

func (m *Machine) peek() (Value, error) {
	if len(m.stack) == 0 {
		return Value{}, errStackUnderflow()
	}
	return m.stack[len(m.stack)-1], nil
}

func (m *Machine) popUint64() (uint64, error) {
	v, err := m.pop()
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, errIncompatibleTypes(v.Tag().String(), TagUint64.String())
	}
	return v.AsUint64(), nil
}

func (m *Machine) popBytes() ([]byte, error) {
	v, err := m.pop()
	if err != nil {
		return nil, err
	}
	if !v.IsBytes() {
		return nil, errIncompatibleTypes(v.Tag().String(), TagBytes.String())
	}
	return v.AsBytes(), nil
}

// ---- instruction stream primitives -------------------------------------

func (m *Machine) readByte() (byte, error) {
	if m.pc >= len(m.program) {
		return 0, errPcOutOfBounds()
	}
	b := m.program[m.pc]
	m.pc++
	return b, nil
}

// readInt16 reads a signed, big-endian 16-bit branch offset immediate.
func (m *Machine) readInt16() (int16, error) {
	if m.pc+2 > len(m.program) {
		return 0, errPcOutOfBounds()
	}
	v := int16(uint16(m.program[m.pc])<<8 | uint16(m.program[m.pc+1]))
	m.pc += 2
	return v, nil
}

func (m *Machine) readVarUint64() (uint64, error) {
	v, n, err := decodeVarUint64(m.program[m.pc:])
	if err != nil {
		return 0, err
	}
	m.pc += n
	return v, nil
}

func (m *Machine) readVarBytes() ([]byte, error) {
	b, n, err := decodeVarBytes(m.program[m.pc:])
	if err != nil {
		return nil, err
	}
	m.pc += n
	return b, nil
}

// branch moves pc to pc+offset (offset already read and pc already past the
// immediate), failing PcOutOfBounds unless the target lies in
// [0, len(program)] inclusive.
func (m *Machine) branch(offset int16) error {
	target := m.pc + int(offset)
	if target < 0 || target > len(m.program) {
		return errPcOutOfBounds()
	}
	m.pc = target
	return nil
}
