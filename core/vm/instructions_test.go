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

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func newTestFrame(code []byte) *Frame {
	arena := newStorageArena(WorldState{})
	return &Frame{
		Code:    code,
		Stack:   newStack(),
		Memory:  newMemory(),
		Gas:     newGasMeter(1_000_000),
		Storage: arena.get(Address{}),
		dests:   analyzeJumpdests(code),
		world:   WorldState{},
		block:   &BlockContext{},
		tx:      &TransactionContext{},
		keccak:  func(b []byte) [32]byte { return [32]byte{} },
		arena:   arena,
		depth:   1,
	}
}

func TestOpAddWraps(t *testing.T) {
	f := newTestFrame(nil)
	var max uint256.Int
	max.SetAllOne()
	one := word(1)
	require.NoError(t, f.Stack.push(&max))
	require.NoError(t, f.Stack.push(&one))
	require.NoError(t, opAdd(f, ADD))
	top, _ := f.Stack.peek(1)
	require.True(t, top.IsZero())
}

func TestOpSubZero(t *testing.T) {
	f := newTestFrame(nil)
	a, b := word(0), word(0)
	require.NoError(t, f.Stack.push(&a))
	require.NoError(t, f.Stack.push(&b))
	require.NoError(t, opSub(f, SUB))
	top, _ := f.Stack.peek(1)
	require.True(t, top.IsZero())
}

func TestOpSubUnderflowWraps(t *testing.T) {
	f := newTestFrame(nil)
	a, b := word(1), word(0)
	require.NoError(t, f.Stack.push(&a))
	require.NoError(t, f.Stack.push(&b))
	require.NoError(t, opSub(f, SUB))
	top, _ := f.Stack.peek(1)
	var max uint256.Int
	max.SetAllOne()
	require.True(t, top.Eq(&max))
}

func TestOpDivByZeroIsZero(t *testing.T) {
	f := newTestFrame(nil)
	// Stack convention: numerator is popped first (it must be pushed last,
	// i.e. on top); divisor is the element below it.
	numerator, divisor := word(10), word(0)
	require.NoError(t, f.Stack.push(&divisor))
	require.NoError(t, f.Stack.push(&numerator))
	require.NoError(t, opDiv(f, DIV))
	top, _ := f.Stack.peek(1)
	require.True(t, top.IsZero())
}

func TestOpXorSelfIsZero(t *testing.T) {
	f := newTestFrame(nil)
	a := word(0xabc)
	b := word(0xabc)
	require.NoError(t, f.Stack.push(&a))
	require.NoError(t, f.Stack.push(&b))
	require.NoError(t, opXor(f, XOR))
	top, _ := f.Stack.peek(1)
	require.True(t, top.IsZero())
}

func TestOpNotInvolution(t *testing.T) {
	f := newTestFrame(nil)
	a := word(0xdeadbeef)
	orig := a
	require.NoError(t, f.Stack.push(&a))
	require.NoError(t, opNot(f, NOT))
	require.NoError(t, opNot(f, NOT))
	top, _ := f.Stack.peek(1)
	require.True(t, top.Eq(&orig))
}

func TestOpShlShrRoundTrip(t *testing.T) {
	f := newTestFrame(nil)
	// Value with zero high bits so SHL then SHR recovers it exactly.
	// Stack convention: shift amount is popped first, so it must be pushed
	// last (on top); value is pushed first (below it).
	x := word(0x1234)
	n := word(8)
	require.NoError(t, f.Stack.push(&x))
	require.NoError(t, f.Stack.push(&n))
	require.NoError(t, opShl(f, SHL))

	nCopy := n
	require.NoError(t, f.Stack.push(&nCopy))
	require.NoError(t, opShr(f, SHR))
	top, _ := f.Stack.peek(1)
	require.True(t, top.Eq(&x))
}

func TestOpShrBy256IsZero(t *testing.T) {
	f := newTestFrame(nil)
	x := word(0xffff)
	n := word(256)
	require.NoError(t, f.Stack.push(&x))
	require.NoError(t, f.Stack.push(&n))
	require.NoError(t, opShr(f, SHR))
	top, _ := f.Stack.peek(1)
	require.True(t, top.IsZero())
}

func TestOpSarNegativeBy256IsAllOnes(t *testing.T) {
	f := newTestFrame(nil)
	var negOne uint256.Int
	negOne.SetAllOne()
	n := word(256)
	require.NoError(t, f.Stack.push(&negOne))
	require.NoError(t, f.Stack.push(&n))
	require.NoError(t, opSar(f, SAR))
	top, _ := f.Stack.peek(1)
	var allOnes uint256.Int
	allOnes.SetAllOne()
	require.True(t, top.Eq(&allOnes))
}

func TestOpByteOutOfRangeIsZero(t *testing.T) {
	f := newTestFrame(nil)
	x := word(0xff)
	i := word(32)
	require.NoError(t, f.Stack.push(&x))
	require.NoError(t, f.Stack.push(&i))
	require.NoError(t, opByte(f, BYTE))
	top, _ := f.Stack.peek(1)
	require.True(t, top.IsZero())
}

func TestOpMstoreMloadRoundTrip(t *testing.T) {
	f := newTestFrame(nil)
	off, val := word(0), word(0x1234)
	require.NoError(t, f.Stack.push(&val))
	require.NoError(t, f.Stack.push(&off))
	require.NoError(t, opMstore(f, MSTORE))

	off2 := word(0)
	require.NoError(t, f.Stack.push(&off2))
	require.NoError(t, opMload(f, MLOAD))
	top, _ := f.Stack.peek(1)
	require.True(t, top.Eq(&val))
}

func TestOpSstoreForbiddenInStatic(t *testing.T) {
	f := newTestFrame(nil)
	f.Static = true
	k, v := word(1), word(2)
	require.NoError(t, f.Stack.push(&v))
	require.NoError(t, f.Stack.push(&k))
	require.ErrorIs(t, opSstore(f, SSTORE), ErrWriteProtection)
}

func TestOpLogForbiddenInStatic(t *testing.T) {
	f := newTestFrame(nil)
	f.Static = true
	off, size := word(0), word(0)
	require.NoError(t, f.Stack.push(&off))
	require.NoError(t, f.Stack.push(&size))
	require.ErrorIs(t, opLog(f, LOG0), ErrWriteProtection)
}

func TestOpPushReadsImmediate(t *testing.T) {
	code := []byte{byte(PUSH2), 0x12, 0x34}
	f := newTestFrame(code)
	require.NoError(t, opPush(f, PUSH2))
	top, _ := f.Stack.peek(1)
	require.Equal(t, uint64(0x1234), top.Uint64())
	require.Equal(t, uint64(2), f.pc)
}
