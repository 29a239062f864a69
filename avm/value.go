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

// Package avm implements the stack-based bytecode interpreter used to
// evaluate short, deterministic programs against a versioned opcode catalog
// and a bounded execution budget.
package avm

// MaxBytesLen is the longest byte string concat may produce. Only concat
// checks it; pushbytes and bytecblock take their lengths from the program's
// immediates and do not check them against this ceiling.
const MaxBytesLen = 4096

// Tag distinguishes the two variants a Value may hold.
type Tag uint8

const (
	TagUint64 Tag = iota
	TagBytes
)

func (t Tag) String() string {
	if t == TagBytes {
		return "bytes"
	}
	return "uint64"
}

// Value is the tagged union the machine's stack, scratch, and constant pools
// hold: either a 64-bit unsigned integer or a byte string. The zero Value is
// Uint64(0).
type Value struct {
	tag Tag
	u   uint64
	b   []byte
}

// Uint64Value wraps a u64 as a Value.
func Uint64Value(v uint64) Value { return Value{tag: TagUint64, u: v} }

// BytesValue wraps a byte slice as a Value. The caller transfers ownership.
func BytesValue(b []byte) Value { return Value{tag: TagBytes, b: b} }

// BoolValue maps true to Uint64Value(1) and false to Uint64Value(0).
func BoolValue(b bool) Value {
	if b {
		return Uint64Value(1)
	}
	return Uint64Value(0)
}

// IsUint64 reports whether v holds the Uint64 variant.
func (v Value) IsUint64() bool { return v.tag == TagUint64 }

// IsBytes reports whether v holds the Bytes variant.
func (v Value) IsBytes() bool { return v.tag == TagBytes }

// Tag returns the value's variant tag.
func (v Value) Tag() Tag { return v.tag }

// AsUint64 returns the value's integer payload. It is meaningless if
// IsUint64 is false; callers that need the type check should use
// (*Machine).popUint64 instead.
func (v Value) AsUint64() uint64 { return v.u }

// AsBytes returns the value's byte payload. It is meaningless if IsBytes is
// false; callers that need the type check should use (*Machine).popBytes
// instead.
func (v Value) AsBytes() []byte { return v.b }

// Equal compares two values of the same tag for equality. Cross-tag
// comparison is a type error, not false, matching spec semantics for == and
// !=.
func (v Value) Equal(o Value) (bool, error) {
	if v.tag != o.tag {
		return false, errIncompatibleTypes(o.tag.String(), v.tag.String())
	}
	if v.tag == TagUint64 {
		return v.u == o.u, nil
	}
	if len(v.b) != len(o.b) {
		return false, nil
	}
	for i := range v.b {
		if v.b[i] != o.b[i] {
			return false, nil
		}
	}
	return true, nil
}

// clone returns a value safe to push onto the stack twice independently of
// its source slot (dup, dup2, dig, dupn). Uint64 values are copied by
// value already; byte slices are given a fresh backing array so a later
// mutation through one copy (there is none in this machine, but the rule
// keeps scratch/stack aliasing obviously safe) can't be observed by the
// other.
func (v Value) clone() Value {
	if v.tag == TagUint64 {
		return v
	}
	cp := make([]byte, len(v.b))
	copy(cp, v.b)
	return Value{tag: TagBytes, b: cp}
}
