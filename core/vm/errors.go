// Copyright 2014 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package vm

import "fmt"

// Sentinel errors for the opcodes that can terminate a frame. Every one of
// these converts the current frame to reverted; none of them ever escapes
// the engine as a host-level panic.
var (
	ErrOutOfGas               = fmt.Errorf("out of gas")
	ErrStackUnderflow         = fmt.Errorf("stack underflow")
	ErrStackOverflow          = fmt.Errorf("stack overflow")
	ErrMemoryOutOfBounds      = fmt.Errorf("memory out of bounds")
	ErrInvalidJumpDestination = fmt.Errorf("invalid jump destination")
	ErrExecutionReverted      = fmt.Errorf("execution reverted")
	ErrWriteProtection        = fmt.Errorf("write protection: state modification in static context")
	ErrDepth                  = fmt.Errorf("max call depth exceeded")
)

// InvalidOpcodeError reports a byte with no opcode mapping.
type InvalidOpcodeError struct {
	Opcode byte
}

func (e *InvalidOpcodeError) Error() string {
	return fmt.Sprintf("invalid opcode 0x%02x", e.Opcode)
}

// UnknownError wraps structural violations and decoded-but-unimplemented
// system opcodes (CREATE, CREATE2, CALLCODE, SELFDESTRUCT).
type UnknownError struct {
	Message string
}

func (e *UnknownError) Error() string {
	return "unknown: " + e.Message
}
