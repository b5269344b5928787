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

// Environmental/block getters, memory/storage access, and control-flow
// opcodes of C8.

package vm

import "github.com/holiman/uint256"

func pushAddress(f *Frame, a Address) error {
	w := a.Word()
	return f.Stack.push(&w)
}

func opAddress(f *Frame, _ OpCode) error { return pushAddress(f, f.Address) }
func opCaller(f *Frame, _ OpCode) error  { return pushAddress(f, f.Caller) }
func opOrigin(f *Frame, _ OpCode) error  { return pushAddress(f, f.Origin) }
func opCoinbase(f *Frame, _ OpCode) error {
	return pushAddress(f, f.block.Coinbase)
}

// opBalance looks up the real world-state balance for an address (§9 open
// question: the teacher hardcodes a single address; the general lookup is
// authoritative here).
func opBalance(f *Frame, _ OpCode) error {
	addrWord, err := f.Stack.peek(1)
	if err != nil {
		return err
	}
	addr := WordToAddress(addrWord)
	bal := balanceOf(f.world, addr)
	*addrWord = bal
	return nil
}

func balanceOf(world WorldState, addr Address) uint256.Int {
	if acct, ok := world[addr]; ok && acct != nil {
		return acct.Balance
	}
	return uint256.Int{}
}

func opSelfbalance(f *Frame, _ OpCode) error {
	bal := balanceOf(f.world, f.Address)
	return f.Stack.push(&bal)
}

func opCallvalue(f *Frame, _ OpCode) error {
	v := f.Value
	return f.Stack.push(&v)
}

func opGasprice(f *Frame, _ OpCode) error {
	v := f.tx.GasPrice
	return f.Stack.push(&v)
}

func opChainid(f *Frame, _ OpCode) error {
	var w uint256.Int
	w.SetUint64(f.block.ChainID)
	return f.Stack.push(&w)
}

func opTimestamp(f *Frame, _ OpCode) error {
	var w uint256.Int
	w.SetUint64(f.block.Timestamp)
	return f.Stack.push(&w)
}

func opNumber(f *Frame, _ OpCode) error {
	var w uint256.Int
	w.SetUint64(f.block.Number)
	return f.Stack.push(&w)
}

func opDifficulty(f *Frame, _ OpCode) error {
	v := f.block.Difficulty
	return f.Stack.push(&v)
}

func opGaslimit(f *Frame, _ OpCode) error {
	var w uint256.Int
	w.SetUint64(f.block.GasLimit)
	return f.Stack.push(&w)
}

func opBasefee(f *Frame, _ OpCode) error {
	v := f.block.BaseFee
	return f.Stack.push(&v)
}

// opBlockhash is unmodelled; always pushes zero (§4.8).
func opBlockhash(f *Frame, _ OpCode) error {
	if _, err := f.Stack.pop(); err != nil {
		return err
	}
	var zero uint256.Int
	return f.Stack.push(&zero)
}

func opCalldataload(f *Frame, _ OpCode) error {
	offWord, err := f.Stack.peek(1)
	if err != nil {
		return err
	}
	var buf [32]byte
	if offWord.IsUint64() {
		off := offWord.Uint64()
		for i := 0; i < 32; i++ {
			idx := off + uint64(i)
			if idx < uint64(len(f.CallData)) {
				buf[i] = f.CallData[idx]
			}
		}
	}
	offWord.SetBytes(buf[:])
	return nil
}

func opCalldatasize(f *Frame, _ OpCode) error {
	var w uint256.Int
	w.SetUint64(uint64(len(f.CallData)))
	return f.Stack.push(&w)
}

func opCodesize(f *Frame, _ OpCode) error {
	var w uint256.Int
	w.SetUint64(uint64(len(f.Code)))
	return f.Stack.push(&w)
}

func opReturndatasize(f *Frame, _ OpCode) error {
	var w uint256.Int
	w.SetUint64(uint64(len(f.ReturnData)))
	return f.Stack.push(&w)
}

// copyToMemory implements the common CALLDATACOPY/CODECOPY/RETURNDATACOPY
// shape: pop (destOffset, srcOffset, size), zero-pad reads past src's end.
func copyToMemory(f *Frame, src []byte) error {
	destOff, err := f.Stack.pop()
	if err != nil {
		return err
	}
	srcOff, err := f.Stack.pop()
	if err != nil {
		return err
	}
	size, err := f.Stack.pop()
	if err != nil {
		return err
	}
	dst, sz, err := asMemoryRange(&destOff, &size)
	if err != nil {
		return err
	}
	out := make([]byte, sz)
	if srcOff.IsUint64() {
		so := srcOff.Uint64()
		for i := uint64(0); i < sz; i++ {
			idx := so + i
			if idx < uint64(len(src)) {
				out[i] = src[idx]
			}
		}
	}
	return f.Memory.Write(dst, out)
}

func opCalldatacopy(f *Frame, _ OpCode) error   { return copyToMemory(f, f.CallData) }
func opCodecopy(f *Frame, _ OpCode) error       { return copyToMemory(f, f.Code) }
func opReturndatacopy(f *Frame, _ OpCode) error { return copyToMemory(f, f.ReturnData) }

func opExtcodesize(f *Frame, _ OpCode) error {
	addrWord, err := f.Stack.peek(1)
	if err != nil {
		return err
	}
	addr := WordToAddress(addrWord)
	var w uint256.Int
	w.SetUint64(uint64(len(codeAt(f.world, addr))))
	*addrWord = w
	return nil
}

func opExtcodecopy(f *Frame, _ OpCode) error {
	addrWord, err := f.Stack.pop()
	if err != nil {
		return err
	}
	addr := WordToAddress(&addrWord)
	return copyToMemory(f, codeAt(f.world, addr))
}

func opExtcodehash(f *Frame, _ OpCode) error {
	addrWord, err := f.Stack.peek(1)
	if err != nil {
		return err
	}
	addr := WordToAddress(addrWord)
	code := codeAt(f.world, addr)
	var w uint256.Int
	if len(code) > 0 {
		digest := f.keccak(code)
		w.SetBytes(digest[:])
	}
	*addrWord = w
	return nil
}

func opPop(f *Frame, _ OpCode) error {
	_, err := f.Stack.pop()
	return err
}

func opMload(f *Frame, _ OpCode) error {
	offWord, err := f.Stack.peek(1)
	if err != nil {
		return err
	}
	off, _, err := asMemoryRange(offWord, thirtyTwo())
	if err != nil {
		return err
	}
	data, err := f.Memory.Read(off, 32)
	if err != nil {
		return err
	}
	offWord.SetBytes(data)
	return nil
}

func opMstore(f *Frame, _ OpCode) error {
	offset, err := f.Stack.pop()
	if err != nil {
		return err
	}
	value, err := f.Stack.pop()
	if err != nil {
		return err
	}
	off, _, err := asMemoryRange(&offset, thirtyTwo())
	if err != nil {
		return err
	}
	buf := value.Bytes32()
	return f.Memory.Write(off, buf[:])
}

func opMstore8(f *Frame, _ OpCode) error {
	offset, err := f.Stack.pop()
	if err != nil {
		return err
	}
	value, err := f.Stack.pop()
	if err != nil {
		return err
	}
	if !offset.IsUint64() || offset.Uint64() >= maxMemory {
		return ErrMemoryOutOfBounds
	}
	return f.Memory.WriteByte(offset.Uint64(), byte(value.Uint64()))
}

func thirtyTwo() *uint256.Int {
	var w uint256.Int
	w.SetUint64(32)
	return &w
}

func opSload(f *Frame, _ OpCode) error {
	key, err := f.Stack.peek(1)
	if err != nil {
		return err
	}
	v := f.Storage.Get(*key)
	*key = v
	return nil
}

func opSstore(f *Frame, _ OpCode) error {
	if f.Static {
		return ErrWriteProtection
	}
	key, err := f.Stack.pop()
	if err != nil {
		return err
	}
	value, err := f.Stack.pop()
	if err != nil {
		return err
	}
	old := f.Storage.Get(key)
	cost := sstoreCost(old.IsZero(), value.IsZero())
	if err := f.Gas.Consume(cost); err != nil {
		return err
	}
	f.Storage.Set(key, value)
	return nil
}

func opJump(f *Frame, _ OpCode) error {
	dest, err := f.Stack.pop()
	if err != nil {
		return err
	}
	return f.jump(&dest)
}

func opJumpi(f *Frame, _ OpCode) error {
	dest, err := f.Stack.pop()
	if err != nil {
		return err
	}
	cond, err := f.Stack.pop()
	if err != nil {
		return err
	}
	if cond.IsZero() {
		return nil
	}
	return f.jump(&dest)
}

func opPc(f *Frame, _ OpCode) error {
	var w uint256.Int
	w.SetUint64(f.pc)
	return f.Stack.push(&w)
}

func opMsize(f *Frame, _ OpCode) error {
	var w uint256.Int
	w.SetUint64(f.Memory.Size())
	return f.Stack.push(&w)
}

// opGas follows the Open Question resolution: push MAX_WORD rather than the
// true remaining gas, matching the reference corpus's test vectors.
func opGas(f *Frame, _ OpCode) error {
	var w uint256.Int
	w.SetAllOne()
	return f.Stack.push(&w)
}

func opJumpdest(f *Frame, _ OpCode) error { return nil }

func opPush0(f *Frame, _ OpCode) error {
	var w uint256.Int
	return f.Stack.push(&w)
}

func opPush(f *Frame, op OpCode) error {
	size := op.PushSize()
	start := f.pc + 1
	if start+uint64(size) > uint64(len(f.Code)) {
		return &UnknownError{Message: "PUSH immediate runs past end of code"}
	}
	var w uint256.Int
	w.SetBytes(f.Code[start : start+uint64(size)])
	if err := f.Stack.push(&w); err != nil {
		return err
	}
	f.pc += uint64(size)
	return nil
}

func opDup(f *Frame, op OpCode) error {
	return f.Stack.dup(op.DupPosition())
}

func opSwap(f *Frame, op OpCode) error {
	return f.Stack.swap(op.SwapPosition())
}
