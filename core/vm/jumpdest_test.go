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

func TestAnalyzeJumpdestsSkipsPushImmediates(t *testing.T) {
	// PUSH1 0x5b JUMPDEST: the 0x5b inside the PUSH1 immediate is not a
	// valid destination; the JUMPDEST byte that follows it is.
	code := []byte{byte(PUSH1), 0x5b, byte(JUMPDEST)}
	dests := analyzeJumpdests(code)
	require.False(t, dests.has(1))
	require.True(t, dests.has(2))
}

func TestAnalyzeJumpdestsPlain(t *testing.T) {
	code := []byte{byte(JUMPDEST), byte(STOP), byte(JUMPDEST)}
	dests := analyzeJumpdests(code)
	require.True(t, dests.has(0))
	require.False(t, dests.has(1))
	require.True(t, dests.has(2))
}

func TestAnalyzeJumpdestsLongPush(t *testing.T) {
	code := make([]byte, 0, 34)
	code = append(code, byte(PUSH32))
	code = append(code, make([]byte, 32)...)
	code[len(code)-1] = 0x5b // last immediate byte happens to be 0x5b
	code = append(code, byte(JUMPDEST))
	dests := analyzeJumpdests(code)
	require.False(t, dests.has(32))
	require.True(t, dests.has(33))
}
