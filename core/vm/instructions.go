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

// This file implements C1 (word arithmetic) as applied by C8 (opcode
// semantics) for the arithmetic, comparison and bitwise opcode families.
// Operand order follows §4.8: pops happen left-to-right in stack order.

package vm

import "github.com/holiman/uint256"

func opAdd(f *Frame, _ OpCode) error {
	a, err := f.Stack.pop()
	if err != nil {
		return err
	}
	b, err := f.Stack.peek(1)
	if err != nil {
		return err
	}
	b.Add(&a, b)
	return nil
}

func opSub(f *Frame, _ OpCode) error {
	a, err := f.Stack.pop()
	if err != nil {
		return err
	}
	b, err := f.Stack.peek(1)
	if err != nil {
		return err
	}
	b.Sub(&a, b)
	return nil
}

func opMul(f *Frame, _ OpCode) error {
	a, err := f.Stack.pop()
	if err != nil {
		return err
	}
	b, err := f.Stack.peek(1)
	if err != nil {
		return err
	}
	b.Mul(&a, b)
	return nil
}

func opDiv(f *Frame, _ OpCode) error {
	a, err := f.Stack.pop()
	if err != nil {
		return err
	}
	b, err := f.Stack.peek(1)
	if err != nil {
		return err
	}
	b.Div(&a, b)
	return nil
}

func opSdiv(f *Frame, _ OpCode) error {
	a, err := f.Stack.pop()
	if err != nil {
		return err
	}
	b, err := f.Stack.peek(1)
	if err != nil {
		return err
	}
	b.SDiv(&a, b)
	return nil
}

func opMod(f *Frame, _ OpCode) error {
	a, err := f.Stack.pop()
	if err != nil {
		return err
	}
	b, err := f.Stack.peek(1)
	if err != nil {
		return err
	}
	b.Mod(&a, b)
	return nil
}

func opSmod(f *Frame, _ OpCode) error {
	a, err := f.Stack.pop()
	if err != nil {
		return err
	}
	b, err := f.Stack.peek(1)
	if err != nil {
		return err
	}
	b.SMod(&a, b)
	return nil
}

func opAddmod(f *Frame, _ OpCode) error {
	a, err := f.Stack.pop()
	if err != nil {
		return err
	}
	b, err := f.Stack.pop()
	if err != nil {
		return err
	}
	n, err := f.Stack.peek(1)
	if err != nil {
		return err
	}
	n.AddMod(&a, &b, n)
	return nil
}

func opMulmod(f *Frame, _ OpCode) error {
	a, err := f.Stack.pop()
	if err != nil {
		return err
	}
	b, err := f.Stack.pop()
	if err != nil {
		return err
	}
	n, err := f.Stack.peek(1)
	if err != nil {
		return err
	}
	n.MulMod(&a, &b, n)
	return nil
}

func opExp(f *Frame, _ OpCode) error {
	base, err := f.Stack.pop()
	if err != nil {
		return err
	}
	exponent, err := f.Stack.peek(1)
	if err != nil {
		return err
	}
	exponent.Exp(&base, exponent)
	return nil
}

func opSignextend(f *Frame, _ OpCode) error {
	b, err := f.Stack.pop()
	if err != nil {
		return err
	}
	x, err := f.Stack.peek(1)
	if err != nil {
		return err
	}
	x.ExtendSign(x, &b)
	return nil
}

func opLt(f *Frame, _ OpCode) error {
	a, err := f.Stack.pop()
	if err != nil {
		return err
	}
	b, err := f.Stack.peek(1)
	if err != nil {
		return err
	}
	setBool(b, a.Lt(b))
	return nil
}

func opGt(f *Frame, _ OpCode) error {
	a, err := f.Stack.pop()
	if err != nil {
		return err
	}
	b, err := f.Stack.peek(1)
	if err != nil {
		return err
	}
	setBool(b, a.Gt(b))
	return nil
}

func opSlt(f *Frame, _ OpCode) error {
	a, err := f.Stack.pop()
	if err != nil {
		return err
	}
	b, err := f.Stack.peek(1)
	if err != nil {
		return err
	}
	setBool(b, a.Slt(b))
	return nil
}

func opSgt(f *Frame, _ OpCode) error {
	a, err := f.Stack.pop()
	if err != nil {
		return err
	}
	b, err := f.Stack.peek(1)
	if err != nil {
		return err
	}
	setBool(b, a.Sgt(b))
	return nil
}

func opEq(f *Frame, _ OpCode) error {
	a, err := f.Stack.pop()
	if err != nil {
		return err
	}
	b, err := f.Stack.peek(1)
	if err != nil {
		return err
	}
	setBool(b, a.Eq(b))
	return nil
}

func opIszero(f *Frame, _ OpCode) error {
	a, err := f.Stack.peek(1)
	if err != nil {
		return err
	}
	setBool(a, a.IsZero())
	return nil
}

func opAnd(f *Frame, _ OpCode) error {
	a, err := f.Stack.pop()
	if err != nil {
		return err
	}
	b, err := f.Stack.peek(1)
	if err != nil {
		return err
	}
	b.And(&a, b)
	return nil
}

func opOr(f *Frame, _ OpCode) error {
	a, err := f.Stack.pop()
	if err != nil {
		return err
	}
	b, err := f.Stack.peek(1)
	if err != nil {
		return err
	}
	b.Or(&a, b)
	return nil
}

func opXor(f *Frame, _ OpCode) error {
	a, err := f.Stack.pop()
	if err != nil {
		return err
	}
	b, err := f.Stack.peek(1)
	if err != nil {
		return err
	}
	b.Xor(&a, b)
	return nil
}

func opNot(f *Frame, _ OpCode) error {
	a, err := f.Stack.peek(1)
	if err != nil {
		return err
	}
	a.Not(a)
	return nil
}

func opByte(f *Frame, _ OpCode) error {
	i, err := f.Stack.pop()
	if err != nil {
		return err
	}
	x, err := f.Stack.peek(1)
	if err != nil {
		return err
	}
	x.Byte(&i)
	return nil
}

func opShl(f *Frame, _ OpCode) error {
	shift, err := f.Stack.pop()
	if err != nil {
		return err
	}
	value, err := f.Stack.peek(1)
	if err != nil {
		return err
	}
	if shift.LtUint64(256) {
		value.Lsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil
}

func opShr(f *Frame, _ OpCode) error {
	shift, err := f.Stack.pop()
	if err != nil {
		return err
	}
	value, err := f.Stack.peek(1)
	if err != nil {
		return err
	}
	if shift.LtUint64(256) {
		value.Rsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil
}

func opSar(f *Frame, _ OpCode) error {
	shift, err := f.Stack.pop()
	if err != nil {
		return err
	}
	value, err := f.Stack.peek(1)
	if err != nil {
		return err
	}
	if shift.GtUint64(255) {
		if value.Sign() >= 0 {
			value.Clear()
		} else {
			value.SetAllOne()
		}
		return nil
	}
	value.SRsh(value, uint(shift.Uint64()))
	return nil
}

func opSha3(f *Frame, _ OpCode) error {
	offset, err := f.Stack.pop()
	if err != nil {
		return err
	}
	size, err := f.Stack.pop()
	if err != nil {
		return err
	}
	off, sz, err := asMemoryRange(&offset, &size)
	if err != nil {
		return err
	}
	data, err := f.Memory.Read(off, sz)
	if err != nil {
		return err
	}
	digest := f.keccak(data)
	var word uint256.Int
	word.SetBytes(digest[:])
	return f.Stack.push(&word)
}

func setBool(z *uint256.Int, v bool) {
	if v {
		z.SetOne()
	} else {
		z.Clear()
	}
}

// asMemoryRange converts offset/size words to host uint64s, rejecting
// anything that cannot possibly address real memory.
func asMemoryRange(offset, size *uint256.Int) (uint64, uint64, error) {
	if size.IsZero() {
		return 0, 0, nil
	}
	if !offset.IsUint64() || !size.IsUint64() {
		return 0, 0, ErrMemoryOutOfBounds
	}
	off, sz := offset.Uint64(), size.Uint64()
	if off+sz < off || off+sz > maxMemory {
		return 0, 0, ErrMemoryOutOfBounds
	}
	return off, sz, nil
}
