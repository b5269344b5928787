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

import "github.com/holiman/uint256"

func opStop(f *Frame, _ OpCode) error {
	f.Halted = true
	return nil
}

func opReturn(f *Frame, _ OpCode) error {
	data, err := popMemoryRange(f)
	if err != nil {
		return err
	}
	f.ReturnData = data
	f.Halted = true
	return nil
}

func opRevert(f *Frame, _ OpCode) error {
	data, err := popMemoryRange(f)
	if err != nil {
		return err
	}
	f.ReturnData = data
	f.Reverted = true
	return nil
}

func popMemoryRange(f *Frame) ([]byte, error) {
	offset, err := f.Stack.pop()
	if err != nil {
		return nil, err
	}
	size, err := f.Stack.pop()
	if err != nil {
		return nil, err
	}
	off, sz, err := asMemoryRange(&offset, &size)
	if err != nil {
		return nil, err
	}
	return f.Memory.Read(off, sz)
}

// opLog implements LOG0..LOG4: pop (offset, size, topic1..topicn), read
// memory, append to the frame's log list. Forbidden in static context.
func opLog(f *Frame, op OpCode) error {
	if f.Static {
		return ErrWriteProtection
	}
	offset, err := f.Stack.pop()
	if err != nil {
		return err
	}
	size, err := f.Stack.pop()
	if err != nil {
		return err
	}
	n := op.LogTopics()
	collected := make([]uint256.Int, n)
	for i := 0; i < n; i++ {
		t, err := f.Stack.pop()
		if err != nil {
			return err
		}
		collected[i] = t
	}
	off, sz, err := asMemoryRange(&offset, &size)
	if err != nil {
		return err
	}
	// dynamic LOG gas: 375 base-per-topic + 8-per-byte (approximate).
	cost := uint64(375)*uint64(n) + sz*8
	if err := f.Gas.Consume(cost); err != nil {
		return err
	}
	data, err := f.Memory.Read(off, sz)
	if err != nil {
		return err
	}
	f.Logs = append(f.Logs, Log{Address: f.Address, Topics: collected, Data: data})
	return nil
}

func opUnimplemented(f *Frame, op OpCode) error {
	return &UnknownError{Message: op.String() + " is decoded but not executed"}
}
