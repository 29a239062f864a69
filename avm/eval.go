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

// Evaluate runs m from its current pc until one of:
//
//   - the cost budget (MaxCost) is reached before a fetch — benign, not an
//     error;
//   - pc reaches len(program) — natural termination, including after
//     op_return forces it there;
//   - a handler returns an error, which halts execution immediately.
//
// It returns the machine's final error, if any. Evaluate never panics on
// malformed programs; every failure mode in spec.md §7 is returned as an
// *Error.
//
// Grounded on the teacher's Run/Step pair in probe-lang/lang/vm/vm.go: Run
// loops calling Step until halted or erroring, Step fetches one instruction
// and dispatches it. This keeps that two-level shape, replacing the
// fixed-4-byte-word fetch with opcode-byte-then-handler-reads-its-own-
// immediates, and checking the cost budget before each fetch instead of
// deducting a flat per-instruction gas amount after.
func Evaluate(m *Machine) error {
	for m.cost < MaxCost && m.pc < len(m.program) {
		if err := m.step(); err != nil {
			return err
		}
	}
	return nil
}

// step fetches one opcode byte, looks up its catalog entry under the
// program's declared version, runs its handler, and charges the catalog
// cost. The budget check happens in Evaluate's loop condition, before the
// fetch; a step that pushes cumulative cost over MaxCost still completes in
// full (spec.md §4.4, §9 "budget check timing").
func (m *Machine) step() error {
	opcode := m.program[m.pc]
	m.pc++

	spec, err := lookup(opcode, m.version)
	if err != nil {
		return err
	}
	if err := spec.handler(m); err != nil {
		return err
	}
	m.cost += spec.Cost
	return nil
}

// Create decodes a program into a fresh Machine without running it. It is
// the spec's create(program) -> Machine | Error entry point; ForProgram is
// its internal name, kept for symmetry with the teacher's New.
func Create(program []byte) (*Machine, error) {
	return ForProgram(program)
}

// Run evaluates m to termination and returns it, or the typed error that
// halted it. It is the spec's execute(machine) -> Machine | Error entry
// point.
func Run(m *Machine) (*Machine, error) {
	if err := Evaluate(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Execute decodes and runs program from scratch in one call, returning the
// terminal Machine or the typed error that halted it. Most callers want
// this; Create/Run exist separately for callers that need to inspect a
// freshly-decoded Machine before running it.
func Execute(program []byte) (*Machine, error) {
	m, err := Create(program)
	if err != nil {
		return nil, err
	}
	return Run(m)
}
