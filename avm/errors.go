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

import "fmt"

// Kind identifies one of the fixed set of ways an evaluation can fail. Every
// Kind is fatal to the current execution; the interpreter never retries.
type Kind uint8

const (
	KindEmptyProgram Kind = iota
	KindInvalidAvmVersion
	KindUnknownOpcode
	KindPcOutOfBounds
	KindInvalidVarUint64
	KindInvalidVarBytes
	KindIntegerOverflow
	KindIntegerUnderflow
	KindDivisionByZero
	KindStackUnderflow
	KindEmptyStack
	KindInvalidStackAccess
	KindIncompatibleTypes
	KindBytesTooLong
	KindBtoiTooLong
	KindIntcOutOfRange
	KindBytecOutOfRange
	KindScratchAccessOutOfBounds
	KindAssertionFailed
	KindInvalidSubstringAccess
	KindErrOpcode
)

// Error is the single error type every avm operation returns. Its payload
// fields are populated according to Kind; fields irrelevant to a given Kind
// are left zero.
type Error struct {
	Kind Kind

	Opcode byte // UnknownOpcode, InvalidAvmVersion
	Index  uint64
	Len    uint64 // IntcOutOfRange, BytecOutOfRange: pool size
	Pos    uint64 // ScratchAccessOutOfBounds
	PC     int    // AssertionFailed

	S, E, L uint64 // InvalidSubstringAccess: start, end, actual length

	Got, Want string // IncompatibleTypes

	BtoiLen int // BtoiTooLong
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindEmptyProgram:
		return "vm: empty program"
	case KindInvalidAvmVersion:
		return fmt.Sprintf("vm: invalid avm version byte 0x%02x", e.Opcode)
	case KindUnknownOpcode:
		return fmt.Sprintf("vm: unknown opcode 0x%02x (%s)", e.Opcode, mnemonicOrUnknown(e.Opcode))
	case KindPcOutOfBounds:
		return "vm: pc out of bounds"
	case KindInvalidVarUint64:
		return "vm: invalid varuint64 encoding"
	case KindInvalidVarBytes:
		return "vm: invalid varbytes encoding"
	case KindIntegerOverflow:
		return "vm: integer overflow"
	case KindIntegerUnderflow:
		return "vm: integer underflow"
	case KindDivisionByZero:
		return "vm: division by zero"
	case KindStackUnderflow:
		return "vm: stack underflow"
	case KindEmptyStack:
		return "vm: pop on empty stack"
	case KindInvalidStackAccess:
		return fmt.Sprintf("vm: invalid stack access at depth %d", e.Index)
	case KindIncompatibleTypes:
		return fmt.Sprintf("vm: incompatible types: got %s, want %s", e.Got, e.Want)
	case KindBytesTooLong:
		return fmt.Sprintf("vm: byte string exceeds %d bytes", MaxBytesLen)
	case KindBtoiTooLong:
		return fmt.Sprintf("vm: btoi input too long: %d bytes", e.BtoiLen)
	case KindIntcOutOfRange:
		return fmt.Sprintf("vm: intc index %d out of range (pool size %d)", e.Index, e.Len)
	case KindBytecOutOfRange:
		return fmt.Sprintf("vm: bytec index %d out of range (pool size %d)", e.Index, e.Len)
	case KindScratchAccessOutOfBounds:
		return fmt.Sprintf("vm: scratch access out of bounds: pos %d", e.Pos)
	case KindAssertionFailed:
		return fmt.Sprintf("vm: assertion failed at pc %d", e.PC)
	case KindInvalidSubstringAccess:
		return fmt.Sprintf("vm: invalid substring access: start=%d end=%d len=%d", e.S, e.E, e.L)
	case KindErrOpcode:
		return "vm: err opcode"
	default:
		return "vm: unknown error"
	}
}

func mnemonicOrUnknown(b byte) string {
	if spec, ok := opcodeByByte[b]; ok {
		return spec.Name
	}
	return "?"
}

func errEmptyProgram() error              { return &Error{Kind: KindEmptyProgram} }
func errInvalidAvmVersion(b byte) error   { return &Error{Kind: KindInvalidAvmVersion, Opcode: b} }
func errUnknownOpcode(b byte) error       { return &Error{Kind: KindUnknownOpcode, Opcode: b} }
func errPcOutOfBounds() error             { return &Error{Kind: KindPcOutOfBounds} }
func errInvalidVarUint64() error          { return &Error{Kind: KindInvalidVarUint64} }
func errInvalidVarBytes() error           { return &Error{Kind: KindInvalidVarBytes} }
func errIntegerOverflow() error           { return &Error{Kind: KindIntegerOverflow} }
func errIntegerUnderflow() error          { return &Error{Kind: KindIntegerUnderflow} }
func errDivisionByZero() error            { return &Error{Kind: KindDivisionByZero} }
func errStackUnderflow() error            { return &Error{Kind: KindStackUnderflow} }
func errEmptyStack() error                { return &Error{Kind: KindEmptyStack} }
func errInvalidStackAccess(n uint64) error {
	return &Error{Kind: KindInvalidStackAccess, Index: n}
}
func errIncompatibleTypes(got, want string) error {
	return &Error{Kind: KindIncompatibleTypes, Got: got, Want: want}
}
func errBytesTooLong() error { return &Error{Kind: KindBytesTooLong} }
func errBtoiTooLong(n int) error {
	return &Error{Kind: KindBtoiTooLong, BtoiLen: n}
}
func errIntcOutOfRange(i, n uint64) error {
	return &Error{Kind: KindIntcOutOfRange, Index: i, Len: n}
}
func errBytecOutOfRange(i, n uint64) error {
	return &Error{Kind: KindBytecOutOfRange, Index: i, Len: n}
}
func errScratchOutOfBounds(pos uint64) error {
	return &Error{Kind: KindScratchAccessOutOfBounds, Pos: pos}
}
func errAssertionFailed(pc int) error { return &Error{Kind: KindAssertionFailed, PC: pc} }
func errInvalidSubstringAccess(s, e, l uint64) error {
	return &Error{Kind: KindInvalidSubstringAccess, S: s, E: e, L: l}
}
func errErrOpcode() error { return &Error{Kind: KindErrOpcode} }
