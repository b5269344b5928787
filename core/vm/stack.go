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

// maxStackDepth is the EVM's bounded operand stack size.
const maxStackDepth = 1024

// Stack is a bounded LIFO of 256-bit words (C2).
type Stack struct {
	data []uint256.Int
}

func newStack() *Stack {
	return &Stack{data: make([]uint256.Int, 0, 16)}
}

func (st *Stack) Len() int { return len(st.data) }

func (st *Stack) push(v *uint256.Int) error {
	if len(st.data) >= maxStackDepth {
		return ErrStackOverflow
	}
	st.data = append(st.data, *v)
	return nil
}

func (st *Stack) pop() (uint256.Int, error) {
	n := len(st.data)
	if n == 0 {
		return uint256.Int{}, ErrStackUnderflow
	}
	v := st.data[n-1]
	st.data = st.data[:n-1]
	return v, nil
}

// peek returns a pointer to the n-th element from the top, 1-indexed
// (peek(1) is the top element). The caller may mutate it in place, which
// is how in-place binary opcodes overwrite their second operand.
func (st *Stack) peek(n int) (*uint256.Int, error) {
	if n < 1 || len(st.data) < n {
		return nil, ErrStackUnderflow
	}
	return &st.data[len(st.data)-n], nil
}

// dup pushes a copy of the n-th element from the top (1-indexed).
func (st *Stack) dup(n int) error {
	v, err := st.peek(n)
	if err != nil {
		return err
	}
	cp := *v
	return st.push(&cp)
}

// swap exchanges the top element with the element n positions below it
// (1-indexed: swap(1) exchanges top with the second-from-top element).
func (st *Stack) swap(n int) error {
	if len(st.data) < n+1 {
		return ErrStackUnderflow
	}
	top := len(st.data) - 1
	st.data[top], st.data[top-n] = st.data[top-n], st.data[top]
	return nil
}

// snapshot returns the stack contents top-first, for reporting.
func (st *Stack) snapshot() []uint256.Int {
	out := make([]uint256.Int, len(st.data))
	for i, v := range st.data {
		out[len(st.data)-1-i] = v
	}
	return out
}
