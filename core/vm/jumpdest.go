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

// jumpdests is the precomputed set of valid JUMP/JUMPI targets (C6).
type jumpdests map[uint64]struct{}

// analyzeJumpdests scans code once, skipping PUSH immediate data, recording
// every 0x5b (JUMPDEST) byte that is not itself inside an immediate.
func analyzeJumpdests(code []byte) jumpdests {
	dests := make(jumpdests)
	for i := 0; i < len(code); {
		op := OpCode(code[i])
		if op.IsPush() {
			i += 1 + op.PushSize()
			continue
		}
		if op == JUMPDEST {
			dests[uint64(i)] = struct{}{}
		}
		i++
	}
	return dests
}

func (d jumpdests) has(pos uint64) bool {
	_, ok := d[pos]
	return ok
}
