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

// ScratchSize is the fixed number of addressable scratch slots.
const ScratchSize = 256

// Scratch is the machine's fixed-size auxiliary value store, addressable
// either by an immediate byte index (always in range) or by a popped u64
// index (bounds-checked, see Get/Set). Every slot starts at Uint64Value(0).
//
// Adapted from the teacher's byte-addressable, bounds-checked Memory type:
// same "reject any access outside the live range with a named error"
// discipline, generalized from a growable byte heap to a fixed array of
// typed Values.
type Scratch struct {
	slots [ScratchSize]Value
}

func newScratch() *Scratch {
	s := &Scratch{}
	for i := range s.slots {
		s.slots[i] = Uint64Value(0)
	}
	return s
}

// GetByte reads the slot at an immediate byte index, which is always in
// range.
func (s *Scratch) GetByte(i uint8) Value { return s.slots[i] }

// SetByte writes the slot at an immediate byte index.
func (s *Scratch) SetByte(i uint8, v Value) { s.slots[i] = v }

// Get reads the slot at a u64 index produced at runtime (loads), returning
// ScratchAccessOutOfBounds if pos is not a valid slot.
func (s *Scratch) Get(pos uint64) (Value, error) {
	if pos >= ScratchSize {
		return Value{}, errScratchOutOfBounds(pos)
	}
	return s.slots[pos], nil
}

// Set writes the slot at a u64 index produced at runtime (stores), returning
// ScratchAccessOutOfBounds if pos is not a valid slot.
func (s *Scratch) Set(pos uint64, v Value) error {
	if pos >= ScratchSize {
		return errScratchOutOfBounds(pos)
	}
	s.slots[pos] = v
	return nil
}
