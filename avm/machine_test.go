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
	"bytes"
	"testing"
)

// ---- Bytecode builder helpers ----------------------------------------------

// asm concatenates byte fragments into a single program, prefixing it with
// the given avm version byte.
func asm(version byte, frags ...[]byte) []byte {
	out := []byte{version}
	for _, f := range frags {
		out = append(out, f...)
	}
	return out
}

// op wraps a single opcode byte as a fragment.
func op(o Opcode) []byte { return []byte{byte(o)} }

// varuint encodes n as a varuint64 fragment (7 bits per byte, LE, high bit
// continues).
func varuint(n uint64) []byte {
	var out []byte
	for {
		b := byte(n & 0x7f)
		n >>= 7
		if n != 0 {
			out = append(out, b|0x80)
		} else {
			out = append(out, b)
			break
		}
	}
	return out
}

// pushint encodes the pushint opcode followed by its varuint64 immediate.
func pushint(v uint64) []byte { return append(op(OpPushInt), varuint(v)...) }

// pushbytes encodes the pushbytes opcode followed by a varbytes immediate.
func pushbytes(b []byte) []byte {
	return append(append(op(OpPushBytes), varuint(uint64(len(b)))...), b...)
}

// imm16 encodes a signed 16-bit big-endian branch offset.
func imm16(off int16) []byte {
	return []byte{byte(uint16(off) >> 8), byte(uint16(off))}
}

// branch wraps a branch opcode with its offset immediate.
func branch(o Opcode, off int16) []byte { return append(op(o), imm16(off)...) }

// runOK runs program to termination, failing the test if it halts with an
// error, and returns the final machine.
func runOK(t *testing.T, program []byte) *Machine {
	t.Helper()
	m, err := Execute(program)
	if err != nil {
		t.Fatalf("Execute: unexpected error: %v", err)
	}
	return m
}

// runErr runs program to termination, failing the test unless it halts with
// an *Error of the given Kind.
func runErr(t *testing.T, program []byte, want Kind) *Error {
	t.Helper()
	_, err := Execute(program)
	if err == nil {
		t.Fatalf("Execute: got nil error; want Kind %v", want)
	}
	avmErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("Execute: error %v is not *avm.Error", err)
	}
	if avmErr.Kind != want {
		t.Fatalf("Execute: got Kind %v; want %v", avmErr.Kind, want)
	}
	return avmErr
}

func topUint64(t *testing.T, m *Machine) uint64 {
	t.Helper()
	stack := m.Stack()
	if len(stack) == 0 {
		t.Fatal("stack is empty")
	}
	top := stack[len(stack)-1]
	if !top.IsUint64() {
		t.Fatalf("top of stack is not a Uint64: %v", top)
	}
	return top.AsUint64()
}

// ---- Varint decoding --------------------------------------------------------

func TestDecodeVarUint64RoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 127, 128, 300, 1 << 32, ^uint64(0)}
	for _, v := range cases {
		enc := varuint(v)
		got, n, err := decodeVarUint64(enc)
		if err != nil {
			t.Fatalf("decodeVarUint64(%d): %v", v, err)
		}
		if got != v || n != len(enc) {
			t.Errorf("decodeVarUint64(%d): got (%d, %d); want (%d, %d)", v, got, n, v, len(enc))
		}
	}
}

func TestDecodeVarUint64Truncated(t *testing.T) {
	if _, _, err := decodeVarUint64([]byte{0x80}); err == nil {
		t.Error("expected error decoding truncated varuint64")
	}
}

func TestDecodeVarBytesOverflowGuard(t *testing.T) {
	// A length prefix claiming far more payload than is actually present
	// must fail cleanly, not silently wrap the bounds arithmetic.
	huge := []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}
	if _, _, err := decodeVarBytes(huge); err == nil {
		t.Error("expected InvalidVarBytes for an oversized length prefix")
	}
}

// ---- Program framing --------------------------------------------------------

func TestForProgramEmpty(t *testing.T) {
	_, err := ForProgram(nil)
	avmErr, ok := err.(*Error)
	if !ok || avmErr.Kind != KindEmptyProgram {
		t.Fatalf("ForProgram(nil): got %v; want EmptyProgram", err)
	}
}

func TestForProgramBadVersion(t *testing.T) {
	_, err := ForProgram([]byte{0x00})
	avmErr, ok := err.(*Error)
	if !ok || avmErr.Kind != KindInvalidAvmVersion {
		t.Fatalf("ForProgram(version 0): got %v; want InvalidAvmVersion", err)
	}
}

func TestUnknownOpcode(t *testing.T) {
	runErr(t, asm(1, []byte{0xff}), KindUnknownOpcode)
}

func TestOpcodeGatedByVersion(t *testing.T) {
	// addw is introduced at v2; under v1 its byte is simply unknown. Operands
	// are loaded via intcblock/intc0 (both v1) rather than pushint, which is
	// itself gated to v3 and would fail before ever reaching addw.
	program := asm(1,
		op(OpIntcBlock), varuint(1), varuint(1),
		op(OpIntc0), op(OpIntc0),
		op(OpAddw),
	)
	runErr(t, program, KindUnknownOpcode)
}

// ---- Arithmetic -------------------------------------------------------------

func TestAdd(t *testing.T) {
	m := runOK(t, asm(3, pushint(10), pushint(32), op(OpAdd)))
	if got := topUint64(t, m); got != 42 {
		t.Errorf("Add: got %d; want 42", got)
	}
}

func TestAddOverflow(t *testing.T) {
	runErr(t, asm(3, pushint(^uint64(0)), pushint(1), op(OpAdd)), KindIntegerOverflow)
}

func TestSubUnderflow(t *testing.T) {
	runErr(t, asm(3, pushint(1), pushint(2), op(OpSub)), KindIntegerUnderflow)
}

func TestMulOverflow(t *testing.T) {
	runErr(t, asm(3, pushint(1<<32), pushint(1<<32), op(OpMul)), KindIntegerOverflow)
}

func TestDivByZero(t *testing.T) {
	runErr(t, asm(3, pushint(10), pushint(0), op(OpDiv)), KindDivisionByZero)
}

func TestMod(t *testing.T) {
	m := runOK(t, asm(3, pushint(127), pushint(5), op(OpMod)))
	if got := topUint64(t, m); got != 2 {
		t.Errorf("Mod: got %d; want 2", got)
	}
}

func TestMulw(t *testing.T) {
	m := runOK(t, asm(3, pushint(1<<32), pushint(1<<32), op(OpMulw)))
	stack := m.Stack()
	if len(stack) != 2 {
		t.Fatalf("Mulw: stack has %d elements; want 2", len(stack))
	}
	if hi := stack[0].AsUint64(); hi != 1 {
		t.Errorf("Mulw: hi = %d; want 1", hi)
	}
	if lo := stack[1].AsUint64(); lo != 0 {
		t.Errorf("Mulw: lo = %d; want 0", lo)
	}
}

func TestAddw(t *testing.T) {
	m := runOK(t, asm(3, pushint(^uint64(0)), pushint(2), op(OpAddw)))
	stack := m.Stack()
	if carry := stack[0].AsUint64(); carry != 1 {
		t.Errorf("Addw: carry = %d; want 1", carry)
	}
	if lo := stack[1].AsUint64(); lo != 1 {
		t.Errorf("Addw: lo = %d; want 1", lo)
	}
}

// TestDivModwFullWidth mirrors a full-width 128/128 division scenario: given
// ab = 0xFFFA8E32D6BD7F742C811B4AC78A0750 and cd =
// 0x00000000002CCD18797B150BA583E510, the quotient/remainder quadruple
// (top to bottom) is (r_lo, r_hi, q_lo, q_hi).
func TestDivModwFullWidth(t *testing.T) {
	// ab = 0xFFFA8E32D6BD7F742C811B4AC78A0750 split into high/low 64 bits.
	a := uint64(0xFFFA8E32D6BD7F74)
	b := uint64(0x2C811B4AC78A0750)
	// cd = 0x00000000002CCD18797B150BA583E510 split into high/low 64 bits.
	c := uint64(0x00000000002CCD18)
	d := uint64(0x797B150BA583E510)

	m := runOK(t, asm(4, pushint(a), pushint(b), pushint(c), pushint(d), op(OpDivModw)))
	stack := m.Stack()
	if len(stack) != 4 {
		t.Fatalf("DivModw: stack has %d elements; want 4", len(stack))
	}
	qHi, qLo := stack[0].AsUint64(), stack[1].AsUint64()
	rHi, rLo := stack[2].AsUint64(), stack[3].AsUint64()
	if qHi != 0 {
		t.Errorf("DivModw: q_hi = 0x%x; want 0", qHi)
	}
	if qLo != 0x05B6B2AA6607 {
		t.Errorf("DivModw: q_lo = 0x%x; want 0x05B6B2AA6607", qLo)
	}
	if rHi != 0x0029B280 {
		t.Errorf("DivModw: r_hi = 0x%x; want 0x0029B280", rHi)
	}
	if rLo != 0x7DB11BCB770A63E0 {
		t.Errorf("DivModw: r_lo = 0x%x; want 0x7DB11BCB770A63E0", rLo)
	}
}

func TestDivModwByZero(t *testing.T) {
	runErr(t, asm(4, pushint(1), pushint(0), pushint(0), pushint(0), op(OpDivModw)), KindDivisionByZero)
}

// ---- Bitwise ----------------------------------------------------------------

func TestBitwise(t *testing.T) {
	m := runOK(t, asm(3, pushint(0xFF), pushint(0x0F), op(OpBAnd)))
	if got := topUint64(t, m); got != 0x0F {
		t.Errorf("BAnd: got 0x%x; want 0x0F", got)
	}
}

func TestBNot(t *testing.T) {
	m := runOK(t, asm(3, pushint(0), op(OpBNot)))
	if got := topUint64(t, m); got != ^uint64(0) {
		t.Errorf("BNot: got 0x%x; want all-ones", got)
	}
}

// ---- Comparison / logic -----------------------------------------------------

func TestComparisons(t *testing.T) {
	cases := []struct {
		o    Opcode
		a, b uint64
		want uint64
	}{
		{OpLt, 3, 7, 1},
		{OpLt, 7, 3, 0},
		{OpGt, 10, 3, 1},
		{OpLe, 3, 3, 1},
		{OpGe, 2, 3, 0},
	}
	for _, tc := range cases {
		m := runOK(t, asm(3, pushint(tc.a), pushint(tc.b), op(tc.o)))
		if got := topUint64(t, m); got != tc.want {
			t.Errorf("opcode %v (%d,%d): got %d; want %d", tc.o, tc.a, tc.b, got, tc.want)
		}
	}
}

func TestEqBytes(t *testing.T) {
	m := runOK(t, asm(3, pushbytes([]byte("abc")), pushbytes([]byte("abc")), op(OpEq)))
	if got := topUint64(t, m); got != 1 {
		t.Errorf("Eq(bytes): got %d; want 1", got)
	}
}

func TestEqIncompatibleTypes(t *testing.T) {
	runErr(t, asm(3, pushint(1), pushbytes([]byte("x")), op(OpEq)), KindIncompatibleTypes)
}

// ---- Conversion --------------------------------------------------------------

func TestItobBtoiIdentity(t *testing.T) {
	m := runOK(t, asm(3, pushint(0xDEADBEEF), op(OpItob), op(OpBtoi)))
	if got := topUint64(t, m); got != 0xDEADBEEF {
		t.Errorf("itob/btoi round trip: got 0x%x; want 0xDEADBEEF", got)
	}
}

func TestBtoiTooLong(t *testing.T) {
	runErr(t, asm(3, pushbytes(make([]byte, 9)), op(OpBtoi)), KindBtoiTooLong)
}

func TestLen(t *testing.T) {
	m := runOK(t, asm(3, pushbytes([]byte("hello")), op(OpLen)))
	if got := topUint64(t, m); got != 5 {
		t.Errorf("Len: got %d; want 5", got)
	}
}

// ---- Constants ---------------------------------------------------------------

func TestIntcBlockAndAccessors(t *testing.T) {
	program := asm(1,
		op(OpIntcBlock), varuint(3), varuint(10), varuint(20), varuint(30),
		op(OpIntc0), op(OpIntc2),
	)
	m := runOK(t, program)
	stack := m.Stack()
	if len(stack) != 2 || stack[0].AsUint64() != 10 || stack[1].AsUint64() != 30 {
		t.Errorf("intc accessors: got %v; want [10 30]", stack)
	}
}

func TestIntcOutOfRange(t *testing.T) {
	program := asm(1, op(OpIntcBlock), varuint(1), varuint(5), op(OpIntc1))
	runErr(t, program, KindIntcOutOfRange)
}

func TestBytecBlockMaterializesOwnedCopy(t *testing.T) {
	program := asm(1,
		op(OpBytecBlock), varuint(1), varuint(3), []byte("abc"),
		op(OpBytec0),
	)
	m := runOK(t, program)
	got := m.Stack()[0].AsBytes()
	if !bytes.Equal(got, []byte("abc")) {
		t.Errorf("bytec0: got %q; want %q", got, "abc")
	}
}

func TestIntcBlockIdempotentOverwrite(t *testing.T) {
	program := asm(1,
		op(OpIntcBlock), varuint(1), varuint(1),
		op(OpIntcBlock), varuint(1), varuint(2),
		op(OpIntc0),
	)
	m := runOK(t, program)
	if got := topUint64(t, m); got != 2 {
		t.Errorf("intcblock re-issue: got %d; want 2 (last block wins)", got)
	}
}

// ---- Scratch space ------------------------------------------------------------

// TestScratchRoundTrip matches the worked example: store bytes at slot 5,
// load via store/load pairs ending with stack top-to-bottom
// [Bytes(DEADBEEF), Uint64(1), Bytes(DEADBEEF)].
func TestScratchRoundTrip(t *testing.T) {
	program := asm(3,
		pushint(1),
		pushbytes([]byte{0xDE, 0xAD, 0xBE, 0xEF}),
		append(op(OpStore), 5),
		append(op(OpStore), 3),
		append(op(OpLoad), 5),
		append(op(OpLoad), 3),
		append(op(OpLoad), 5),
	)
	m := runOK(t, program)
	stack := m.Stack()
	if len(stack) != 3 {
		t.Fatalf("scratch round trip: stack has %d elements; want 3", len(stack))
	}
	if !bytes.Equal(stack[0].AsBytes(), []byte{0xDE, 0xAD, 0xBE, 0xEF}) {
		t.Errorf("scratch round trip: bottom = %v; want DEADBEEF", stack[0])
	}
	if stack[1].AsUint64() != 1 {
		t.Errorf("scratch round trip: middle = %v; want Uint64(1)", stack[1])
	}
	if !bytes.Equal(stack[2].AsBytes(), []byte{0xDE, 0xAD, 0xBE, 0xEF}) {
		t.Errorf("scratch round trip: top = %v; want DEADBEEF", stack[2])
	}
}

func TestStoresBoundsCheck(t *testing.T) {
	// stores pops the value (top) first, then the position beneath it.
	program := asm(5, pushint(256), pushint(1), op(OpStores))
	runErr(t, program, KindScratchAccessOutOfBounds)
}

// ---- Control flow --------------------------------------------------------------

// TestBranchThenReturn mirrors the worked example program
// 0A 81 03 81 02 0C 41 00 06 81 01 43 42 00 03 81 00 43, yielding stack [0].
func TestBranchThenReturn(t *testing.T) {
	program := []byte{
		0x0A,
		0x81, 0x03,
		0x81, 0x02,
		0x0C,
		0x41, 0x00, 0x06,
		0x81, 0x01,
		0x43,
		0x42, 0x00, 0x03,
		0x81, 0x00,
		0x43,
	}
	m := runOK(t, program)
	stack := m.Stack()
	if len(stack) != 1 || stack[0].AsUint64() != 0 {
		t.Errorf("BranchThenReturn: got %v; want [0]", stack)
	}
}

func TestReturnClearsStack(t *testing.T) {
	m := runOK(t, asm(3, pushint(1), pushint(2), pushint(3), op(OpReturn)))
	stack := m.Stack()
	if len(stack) != 1 || stack[0].AsUint64() != 3 {
		t.Errorf("Return: got %v; want [3]", stack)
	}
}

func TestAssertFailure(t *testing.T) {
	runErr(t, asm(3, pushint(0), op(OpAssert)), KindAssertionFailed)
}

func TestErrOpcode(t *testing.T) {
	runErr(t, asm(1, op(OpErr)), KindErrOpcode)
}

// TestLoopViaBackwardBranch initializes 0, increments by 1, duplicates,
// compares against 5, and branches backward until the counter reaches 5.
func TestLoopViaBackwardBranch(t *testing.T) {
	program := asm(3,
		pushint(0), // counter
		// loop:
		pushint(1),
		op(OpAdd),
		op(OpDup),
		pushint(5),
		op(OpLt),
		branch(OpBnz, -10),
	)
	m := runOK(t, program)
	if got := topUint64(t, m); got != 5 {
		t.Errorf("LoopViaBackwardBranch: got %d; want 5", got)
	}
}

// ---- Stack shuffling -------------------------------------------------------

func TestPopEmptyStack(t *testing.T) {
	runErr(t, asm(1, op(OpPop)), KindEmptyStack)
}

func TestDupUnderflow(t *testing.T) {
	runErr(t, asm(1, op(OpDup)), KindStackUnderflow)
}

func TestDup2(t *testing.T) {
	m := runOK(t, asm(3, pushint(1), pushint(2), op(OpDup2)))
	stack := m.Stack()
	want := []uint64{1, 2, 1, 2}
	if len(stack) != len(want) {
		t.Fatalf("Dup2: got %d elements; want %d", len(stack), len(want))
	}
	for i, w := range want {
		if stack[i].AsUint64() != w {
			t.Errorf("Dup2[%d]: got %d; want %d", i, stack[i].AsUint64(), w)
		}
	}
}

func TestSwap(t *testing.T) {
	m := runOK(t, asm(3, pushint(1), pushint(2), op(OpSwap)))
	stack := m.Stack()
	if stack[0].AsUint64() != 2 || stack[1].AsUint64() != 1 {
		t.Errorf("Swap: got %v; want [2 1]", stack)
	}
}

func TestDig(t *testing.T) {
	program := asm(3, pushint(1), pushint(2), pushint(3), append(op(OpDig), 2))
	m := runOK(t, program)
	if got := topUint64(t, m); got != 1 {
		t.Errorf("Dig(2): got %d; want 1", got)
	}
}

func TestDigInvalidAccess(t *testing.T) {
	program := asm(3, pushint(1), append(op(OpDig), 5))
	runErr(t, program, KindInvalidStackAccess)
}

func TestBury(t *testing.T) {
	// stack ..1,2,3; bury 2 pops 3 and writes it at depth 2 (1-indexed from
	// second-from-top before the pop) -> [3,2].
	program := asm(8, pushint(1), pushint(2), pushint(3), append(op(OpBury), 2))
	m := runOK(t, program)
	stack := m.Stack()
	if len(stack) != 2 || stack[0].AsUint64() != 3 || stack[1].AsUint64() != 2 {
		t.Errorf("Bury(2): got %v; want [3 2]", stack)
	}
}

func TestBuryZeroIsInvalid(t *testing.T) {
	program := asm(8, pushint(1), append(op(OpBury), 0))
	runErr(t, program, KindInvalidStackAccess)
}

// TestBuryDepthEqualsStackLenIsInvalid checks that bury n, where n equals the
// stack length just before the pop, is rejected rather than indexing below
// the bottom of the (now one-shorter) stack.
func TestBuryDepthEqualsStackLenIsInvalid(t *testing.T) {
	program := asm(8, pushint(1), pushint(2), append(op(OpBury), 2))
	runErr(t, program, KindInvalidStackAccess)
}

func TestCoverUncoverRoundTrip(t *testing.T) {
	program := asm(5,
		pushint(1), pushint(2), pushint(3),
		append(op(OpCover), 2),
		append(op(OpUncover), 2),
	)
	m := runOK(t, program)
	stack := m.Stack()
	want := []uint64{1, 2, 3}
	for i, w := range want {
		if stack[i].AsUint64() != w {
			t.Errorf("CoverUncover[%d]: got %d; want %d", i, stack[i].AsUint64(), w)
		}
	}
}

func TestSelect(t *testing.T) {
	// select pops c, b, a; pushes a if c==0 else b.
	m := runOK(t, asm(3, pushint(11), pushint(22), pushint(0), op(OpSelect)))
	if got := topUint64(t, m); got != 11 {
		t.Errorf("Select(c=0): got %d; want 11", got)
	}
	m = runOK(t, asm(3, pushint(11), pushint(22), pushint(1), op(OpSelect)))
	if got := topUint64(t, m); got != 22 {
		t.Errorf("Select(c=1): got %d; want 22", got)
	}
}

func TestPopN(t *testing.T) {
	program := asm(8, pushint(1), pushint(2), pushint(3), append(op(OpPopN), 2))
	m := runOK(t, program)
	if len(m.Stack()) != 1 {
		t.Errorf("PopN(2): stack len = %d; want 1", len(m.Stack()))
	}
}

func TestDupN(t *testing.T) {
	program := asm(8, pushint(7), append(op(OpDupN), 2))
	m := runOK(t, program)
	if len(m.Stack()) != 3 {
		t.Fatalf("DupN(2): stack len = %d; want 3", len(m.Stack()))
	}
	for _, v := range m.Stack() {
		if v.AsUint64() != 7 {
			t.Errorf("DupN(2): got %v; want all 7", m.Stack())
			break
		}
	}
}

// ---- Byte slicing ------------------------------------------------------------

func TestConcat(t *testing.T) {
	m := runOK(t, asm(3, pushbytes([]byte("foo")), pushbytes([]byte("bar")), op(OpConcat)))
	got := m.Stack()[0].AsBytes()
	if !bytes.Equal(got, []byte("foobar")) {
		t.Errorf("Concat: got %q; want %q", got, "foobar")
	}
}

func TestConcatTooLong(t *testing.T) {
	a := make([]byte, MaxBytesLen)
	b := make([]byte, 1)
	runErr(t, asm(3, pushbytes(a), pushbytes(b), op(OpConcat)), KindBytesTooLong)
}

func TestSubstring(t *testing.T) {
	program := asm(3, pushbytes([]byte("hello world")), append(op(OpSubstring), 6, 11))
	m := runOK(t, program)
	got := m.Stack()[0].AsBytes()
	if !bytes.Equal(got, []byte("world")) {
		t.Errorf("Substring: got %q; want %q", got, "world")
	}
}

func TestSubstring3InvalidAccess(t *testing.T) {
	program := asm(3, pushbytes([]byte("abc")), pushint(2), pushint(1), op(OpSubstring3))
	runErr(t, program, KindInvalidSubstringAccess)
}

// ---- Budget ------------------------------------------------------------------

// TestBudgetExhaustionIsBenign checks that running out of cost budget
// terminates the machine without producing an error.
func TestBudgetExhaustionIsBenign(t *testing.T) {
	var frags [][]byte
	for i := 0; i < int(MaxCost)+10; i++ {
		frags = append(frags, pushint(1), op(OpPop))
	}
	program := asm(3, frags...)
	m, err := Execute(program)
	if err != nil {
		t.Fatalf("budget exhaustion should be benign, got error: %v", err)
	}
	if m.Cost() < MaxCost {
		t.Errorf("Cost() = %d; want >= %d", m.Cost(), MaxCost)
	}
	if m.Terminated() {
		t.Error("machine should not report Terminated when budget ran out mid-program")
	}
}
