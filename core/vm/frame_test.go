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

	"github.com/stretchr/testify/require"
)

func runCode(code []byte, gasLimit uint64) *Frame {
	f := NewFrame(code, gasLimit, FrameConfig{
		World:  WorldState{},
		Block:  &BlockContext{},
		Tx:     &TransactionContext{},
		Keccak: func(b []byte) [32]byte { return [32]byte{} },
	})
	f.Run()
	return f
}

func TestFrameStopAlone(t *testing.T) {
	f := runCode([]byte{byte(STOP)}, 1_000_000)
	r := f.Result()
	require.True(t, r.Success)
	require.Empty(t, r.Stack)
	require.Equal(t, uint64(2), r.GasUsed)
}

func TestFramePushAdd(t *testing.T) {
	code := []byte{byte(PUSH1), 0x06, byte(PUSH1), 0x07, byte(ADD)}
	f := runCode(code, 1_000_000)
	r := f.Result()
	require.True(t, r.Success)
	require.Len(t, r.Stack, 1)
	require.Equal(t, uint64(0x0d), r.Stack[0].Uint64())
}

func TestFrameBadJumpReverts(t *testing.T) {
	code := []byte{byte(PUSH1), 0x01, byte(JUMP)}
	f := runCode(code, 1_000_000)
	r := f.Result()
	require.False(t, r.Success)
}

func TestFrameJumpToValidDest(t *testing.T) {
	// PUSH1 3 JUMP JUMPDEST STOP: jumps over nothing into the JUMPDEST at 3.
	code := []byte{byte(PUSH1), 0x03, byte(JUMP), byte(JUMPDEST), byte(STOP)}
	f := runCode(code, 1_000_000)
	r := f.Result()
	require.True(t, r.Success)
}

func TestFrameOutOfGasReverts(t *testing.T) {
	code := []byte{byte(PUSH1), 0x01, byte(PUSH1), 0x02, byte(ADD)}
	f := runCode(code, 1) // not enough for even the first PUSH
	r := f.Result()
	require.False(t, r.Success)
}

func TestFrameInvalidOpcodeReverts(t *testing.T) {
	f := runCode([]byte{0x0c}, 1_000_000)
	r := f.Result()
	require.False(t, r.Success)
}

func TestFrameLog1Emission(t *testing.T) {
	// MSTORE 0xdeadbeef at offset 0, then LOG1 offset=28 size=4 topic=T.
	code := []byte{
		byte(PUSH4), 0xde, 0xad, 0xbe, 0xef,
		byte(PUSH1), 0x00,
		byte(MSTORE),
		byte(PUSH1), 0x2a, // topic T = 42
		byte(PUSH1), 0x04, // size
		byte(PUSH1), 0x1c, // offset 28
		byte(LOG1),
	}
	f := runCode(code, 1_000_000)
	r := f.Result()
	require.True(t, r.Success)
	require.Len(t, r.Logs, 1)
	require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, r.Logs[0].Data)
	require.Equal(t, uint64(42), r.Logs[0].Topics[0].Uint64())
}

func TestFrameSstoreSload(t *testing.T) {
	code := []byte{
		byte(PUSH1), 0x2a, // value 42
		byte(PUSH1), 0x01, // key 1
		byte(SSTORE),
		byte(PUSH1), 0x01, // key 1
		byte(SLOAD),
	}
	f := runCode(code, 1_000_000)
	r := f.Result()
	require.True(t, r.Success)
	require.Len(t, r.Stack, 1)
	require.Equal(t, uint64(42), r.Stack[0].Uint64())
}
