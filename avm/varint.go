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

// maxVarintBytes bounds decodeVarUint64: 9 bytes of 7 data bits plus one
// bit from the 10th byte is exactly 64 bits.
const maxVarintBytes = 10

// decodeVarUint64 decodes a LEB128-style unsigned 64-bit integer from the
// front of input. It returns the decoded value and the number of bytes
// consumed. It never allocates; the input slice is only read.
func decodeVarUint64(input []byte) (uint64, int, error) {
	var result uint64
	for i := 0; i < maxVarintBytes; i++ {
		if i >= len(input) {
			return 0, 0, errInvalidVarUint64()
		}
		b := input[i]
		if i == maxVarintBytes-1 && b&0xFE != 0 {
			// The 10th byte may contribute at most one more bit (9*7+1=64);
			// anything else, including a set continuation bit, overflows.
			return 0, 0, errInvalidVarUint64()
		}
		result |= uint64(b&0x7f) << uint(7*i)
		if b&0x80 == 0 {
			return result, i + 1, nil
		}
	}
	return 0, 0, errInvalidVarUint64()
}

// decodeVarBytes decodes a varuint64 length prefix followed by that many
// payload bytes. The returned slice is a borrowed view into input.
func decodeVarBytes(input []byte) ([]byte, int, error) {
	length, n, err := decodeVarUint64(input)
	if err != nil {
		return nil, 0, err
	}
	remaining := uint64(len(input) - n) // n <= len(input), decodeVarUint64 only reads in-bounds bytes
	if length > remaining {
		return nil, 0, errInvalidVarBytes()
	}
	total := n + int(length)
	return input[n:total], total, nil
}
