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

// Sub-call machinery (C9): CALL, DELEGATECALL, STATICCALL spawn a child
// frame, run it synchronously to completion, and fold its outcome back into
// the parent (§4.9, §5).

package vm

import (
	"github.com/holiman/uint256"

	"github.com/ricardo-perello/evm/internal/log"
)

func opCall(f *Frame, _ OpCode) error {
	args, err := popCallArgs(f, true)
	if err != nil {
		return err
	}
	if f.Static && !args.value.IsZero() {
		return ErrWriteProtection
	}
	return f.dispatchCall(args, CALL)
}

func opDelegatecall(f *Frame, _ OpCode) error {
	args, err := popCallArgs(f, false)
	if err != nil {
		return err
	}
	return f.dispatchCall(args, DELEGATECALL)
}

func opStaticcall(f *Frame, _ OpCode) error {
	args, err := popCallArgs(f, false)
	if err != nil {
		return err
	}
	return f.dispatchCall(args, STATICCALL)
}

type callArgs struct {
	gas      uint256.Int
	to       Address
	value    uint256.Int
	argsOff  uint256.Int
	argsSize uint256.Int
	retOff   uint256.Int
	retSize  uint256.Int
}

// popCallArgs pops the call opcode's stack signature (§4.9): CALL carries an
// extra value operand that DELEGATECALL/STATICCALL omit.
func popCallArgs(f *Frame, hasValue bool) (callArgs, error) {
	var a callArgs
	var err error
	if a.gas, err = f.Stack.pop(); err != nil {
		return a, err
	}
	var toWord uint256.Int
	if toWord, err = f.Stack.pop(); err != nil {
		return a, err
	}
	a.to = WordToAddress(&toWord)
	if hasValue {
		if a.value, err = f.Stack.pop(); err != nil {
			return a, err
		}
	}
	if a.argsOff, err = f.Stack.pop(); err != nil {
		return a, err
	}
	if a.argsSize, err = f.Stack.pop(); err != nil {
		return a, err
	}
	if a.retOff, err = f.Stack.pop(); err != nil {
		return a, err
	}
	if a.retSize, err = f.Stack.pop(); err != nil {
		return a, err
	}
	return a, nil
}

// dispatchCall implements steps 1-10 of §4.9 for all three call opcodes.
func (f *Frame) dispatchCall(args callArgs, op OpCode) error {
	argOff, argSize, err := asMemoryRange(&args.argsOff, &args.argsSize)
	if err != nil {
		return err
	}
	callData, err := f.Memory.Read(argOff, argSize)
	if err != nil {
		return err
	}

	code := codeAt(f.world, args.to)
	if len(code) == 0 {
		// Missing/empty target: push failure, clear RETURNDATA, continue
		// (§9 open question, resolved against the reference corpus).
		f.ReturnData = nil
		var zero uint256.Int
		return f.Stack.push(&zero)
	}

	if f.depth+1 > maxCallDepth {
		var zero uint256.Int
		return f.Stack.push(&zero)
	}

	child := f.buildChild(args, op, code, callData)

	mark := child.Storage.mark()
	log.Info("sub-call", "op", op, "to", args.to, "depth", child.depth)
	child.Run()
	if child.Reverted {
		child.Storage.rollback(mark)
	}

	// Gas accounting: the parent pays for exactly what the child used;
	// the rest (if any) is implicitly returned.
	_ = f.Gas.Consume(child.Gas.Used())

	f.ReturnData = child.ReturnData

	retOff, retSize, err := asMemoryRange(&args.retOff, &args.retSize)
	if err != nil {
		return err
	}
	n := retSize
	if uint64(len(child.ReturnData)) < n {
		n = uint64(len(child.ReturnData))
	}
	if n > 0 {
		if err := f.Memory.Write(retOff, child.ReturnData[:n]); err != nil {
			return err
		}
	}

	var result uint256.Int
	if child.Reverted {
		result.Clear()
	} else {
		result.SetOne()
	}
	return f.Stack.push(&result)
}

// buildChild wires storage binding per §4.9 step 5: CALL and STATICCALL
// target the callee's own storage handle (from the shared arena, so repeat
// calls to the same address observe each other's writes); DELEGATECALL
// reuses the caller's handle and keeps the caller's address and value.
func (f *Frame) buildChild(args callArgs, op OpCode, code, callData []byte) *Frame {
	gasLimit := args.gas.Uint64()
	if !args.gas.IsUint64() || gasLimit > f.Gas.Remaining() {
		gasLimit = f.Gas.Remaining()
	}

	child := &Frame{
		Code:     code,
		CallData: callData,
		Stack:    newStack(),
		Memory:   newMemory(),
		Gas:      newGasMeter(gasLimit),
		dests:    analyzeJumpdests(code),
		world:    f.world,
		block:    f.block,
		tx:       f.tx,
		keccak:   f.keccak,
		arena:    f.arena,
		depth:    f.depth + 1,
	}

	switch op {
	case DELEGATECALL:
		child.Address = f.Address
		child.Caller = f.Caller
		child.Value = f.Value
		child.Storage = f.Storage
		child.Static = f.Static
	case STATICCALL:
		child.Address = args.to
		child.Caller = f.Address
		child.Storage = f.arena.get(args.to)
		child.Static = true
	default: // CALL
		child.Address = args.to
		child.Caller = f.Address
		child.Value = args.value
		child.Storage = f.arena.get(args.to)
		child.Static = f.Static
	}
	child.Origin = f.Origin
	return child
}
