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

// Opcode byte values, per the wire format in spec.md §6.
const (
	OpErr Opcode = 0x00

	OpAdd   Opcode = 0x08
	OpSub   Opcode = 0x09
	OpDiv   Opcode = 0x0a
	OpMul   Opcode = 0x0b
	OpLt    Opcode = 0x0c
	OpGt    Opcode = 0x0d
	OpLe    Opcode = 0x0e
	OpGe    Opcode = 0x0f
	OpAnd   Opcode = 0x10
	OpOr    Opcode = 0x11
	OpEq    Opcode = 0x12
	OpNeq   Opcode = 0x13
	OpNot   Opcode = 0x14
	OpLen   Opcode = 0x15
	OpItob  Opcode = 0x16
	OpBtoi  Opcode = 0x17
	OpMod   Opcode = 0x18
	OpBOr   Opcode = 0x19
	OpBAnd  Opcode = 0x1a
	OpBXor  Opcode = 0x1b
	OpBNot  Opcode = 0x1c
	OpMulw  Opcode = 0x1d
	OpAddw  Opcode = 0x1e
	OpDivModw Opcode = 0x1f

	OpIntcBlock Opcode = 0x20
	OpIntc      Opcode = 0x21
	OpIntc0     Opcode = 0x22
	OpIntc1     Opcode = 0x23
	OpIntc2     Opcode = 0x24
	OpIntc3     Opcode = 0x25

	OpBytecBlock Opcode = 0x26
	OpBytec      Opcode = 0x27
	OpBytec0     Opcode = 0x28
	OpBytec1     Opcode = 0x29
	OpBytec2     Opcode = 0x2a
	OpBytec3     Opcode = 0x2b

	OpLoad  Opcode = 0x34
	OpStore Opcode = 0x35

	OpLoads  Opcode = 0x3e
	OpStores Opcode = 0x3f

	OpBnz    Opcode = 0x40
	OpBz     Opcode = 0x41
	OpB      Opcode = 0x42
	OpReturn Opcode = 0x43
	OpAssert Opcode = 0x44

	OpBury   Opcode = 0x45
	OpPopN   Opcode = 0x46
	OpDupN   Opcode = 0x47
	OpPop    Opcode = 0x48
	OpDup    Opcode = 0x49
	OpDup2   Opcode = 0x4a
	OpDig    Opcode = 0x4b
	OpSwap   Opcode = 0x4c
	OpSelect Opcode = 0x4d
	OpCover  Opcode = 0x4e
	OpUncover Opcode = 0x4f

	OpConcat     Opcode = 0x50
	OpSubstring  Opcode = 0x51
	OpSubstring3 Opcode = 0x52

	OpPushBytes Opcode = 0x80
	OpPushInt   Opcode = 0x81
)

// Opcode is an 8-bit instruction code for the avm bytecode stream.
//
// Grounded on the teacher's Opcode type in probe-lang/lang/vm/opcodes.go,
// generalized from a dense iota-numbered enum (register VM, no version
// gating) to the spec's sparse, explicitly-numbered, version-gated catalog.
type Opcode uint8

// handlerFunc executes one decoded opcode against the machine, consuming
// any immediates it needs directly from the instruction stream.
type handlerFunc func(*Machine) error

// opSpec is one catalog entry: opcode byte, mnemonic, introduced-in version,
// per-execution cost, and handler.
//
// Grounded on the teacher's opcodeInfo{name, operands} struct, extended with
// version and cost fields the spec's catalog requires.
type opSpec struct {
	Opcode  Opcode
	Name    string
	Version int
	Cost    uint64
	handler handlerFunc
}

// catalog is the static, ordered opcode table. Ordered by opcode byte for
// readability; per spec.md §4.3 and §9, correctness never depends on this
// order since every opcode byte used here appears exactly once.
var catalog = []opSpec{
	{OpErr, "err", 1, 1, opErr},

	{OpAdd, "+", 1, 1, opAdd},
	{OpSub, "-", 1, 1, opSub},
	{OpDiv, "/", 1, 1, opDiv},
	{OpMul, "*", 1, 1, opMul},
	{OpLt, "<", 1, 1, opLt},
	{OpGt, ">", 1, 1, opGt},
	{OpLe, "<=", 1, 1, opLe},
	{OpGe, ">=", 1, 1, opGe},
	{OpAnd, "&&", 1, 1, opLogicalAnd},
	{OpOr, "||", 1, 1, opLogicalOr},
	{OpEq, "==", 1, 1, opEq},
	{OpNeq, "!=", 1, 1, opNeq},
	{OpNot, "!", 1, 1, opNot},
	{OpLen, "len", 1, 1, opLen},
	{OpItob, "itob", 1, 1, opItob},
	{OpBtoi, "btoi", 1, 1, opBtoi},
	{OpMod, "%", 1, 1, opMod},
	{OpBOr, "|", 1, 1, opBOr},
	{OpBAnd, "&", 1, 1, opBAnd},
	{OpBXor, "^", 1, 1, opBXor},
	{OpBNot, "~", 1, 1, opBNot},
	{OpMulw, "mulw", 1, 1, opMulw},
	{OpAddw, "addw", 2, 1, opAddw},
	{OpDivModw, "divmodw", 4, 20, opDivModw},

	{OpIntcBlock, "intcblock", 1, 1, opIntcBlock},
	{OpIntc, "intc", 1, 1, opIntc},
	{OpIntc0, "intc_0", 1, 1, opIntc0},
	{OpIntc1, "intc_1", 1, 1, opIntc1},
	{OpIntc2, "intc_2", 1, 1, opIntc2},
	{OpIntc3, "intc_3", 1, 1, opIntc3},

	{OpBytecBlock, "bytecblock", 1, 1, opBytecBlock},
	{OpBytec, "bytec", 1, 1, opBytec},
	{OpBytec0, "bytec_0", 1, 1, opBytec0},
	{OpBytec1, "bytec_1", 1, 1, opBytec1},
	{OpBytec2, "bytec_2", 1, 1, opBytec2},
	{OpBytec3, "bytec_3", 1, 1, opBytec3},

	{OpLoad, "load", 1, 1, opLoad},
	{OpStore, "store", 1, 1, opStore},

	{OpLoads, "loads", 5, 1, opLoads},
	{OpStores, "stores", 5, 1, opStores},

	{OpBnz, "bnz", 1, 1, opBnz},
	{OpBz, "bz", 2, 1, opBz},
	{OpB, "b", 2, 1, opB},
	{OpReturn, "return", 2, 1, opReturn},
	{OpAssert, "assert", 3, 1, opAssert},

	{OpBury, "bury", 8, 1, opBury},
	{OpPopN, "popn", 8, 1, opPopN},
	{OpDupN, "dupn", 8, 1, opDupN},
	{OpPop, "pop", 1, 1, opPop},
	{OpDup, "dup", 1, 1, opDup},
	{OpDup2, "dup2", 2, 1, opDup2},
	{OpDig, "dig", 3, 1, opDig},
	{OpSwap, "swap", 3, 1, opSwap},
	{OpSelect, "select", 3, 1, opSelect},
	{OpCover, "cover", 5, 1, opCover},
	{OpUncover, "uncover", 5, 1, opUncover},

	{OpConcat, "concat", 2, 1, opConcat},
	{OpSubstring, "substring", 2, 1, opSubstring},
	{OpSubstring3, "substring3", 2, 1, opSubstring3},

	{OpPushBytes, "pushbytes", 3, 1, opPushBytes},
	{OpPushInt, "pushint", 3, 1, opPushInt},
}

// opcodeByByte indexes catalog by opcode byte, ignoring version, for
// disassembly-style error messages (errors.go's mnemonicOrUnknown). Every
// opcode byte in this catalog is unique, so "first match" and "any match"
// coincide here.
var opcodeByByte = func() map[byte]opSpec {
	m := make(map[byte]opSpec, len(catalog))
	for _, s := range catalog {
		m[byte(s.Opcode)] = s
	}
	return m
}()

// lookup finds the catalog entry for opcode whose version does not exceed
// the program's declared version. An opcode whose version field exceeds the
// program's declared version is treated as unknown (spec.md §3 invariants).
//
// A linear scan of ~60 entries is what the spec explicitly calls
// acceptable (spec.md §9); the teacher's own lookup (Opcode.String /
// Operands, array-indexed by the dense register-VM enum) can't be reused
// directly since this catalog is sparse and version-gated, so this mirrors
// the teacher's "small static table, simple scan" texture instead of its
// exact indexing trick.
func lookup(opcode byte, version int) (opSpec, error) {
	for _, s := range catalog {
		if byte(s.Opcode) == opcode && s.Version <= version {
			return s, nil
		}
	}
	return opSpec{}, errUnknownOpcode(opcode)
}
