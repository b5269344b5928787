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

// maxMemory caps the byte-addressable region the host is willing to back;
// a request beyond it is a MemoryOutOfBounds error rather than an attempt to
// allocate an unbounded slice.
const maxMemory = 32 * 1024 * 1024

// Memory is the byte-addressable, lazily zero-extended working memory of a
// frame (C3). Bytes outside the ever-written region always read as zero.
type Memory struct {
	store     []byte
	wordCount uint64 // high-water mark, in 32-byte words
}

func newMemory() *Memory {
	return &Memory{}
}

// Len returns the current physical backing size in bytes.
func (m *Memory) Len() int { return len(m.store) }

// Size returns MSIZE: the word high-water mark times 32.
func (m *Memory) Size() uint64 { return m.wordCount * 32 }

func wordsFor(end uint64) uint64 {
	return (end + 31) / 32
}

func (m *Memory) touch(offset, size uint64) error {
	if size == 0 {
		return nil
	}
	end := offset + size
	if end < offset || end > maxMemory {
		return ErrMemoryOutOfBounds
	}
	if end > uint64(len(m.store)) {
		grown := make([]byte, end)
		copy(grown, m.store)
		m.store = grown
	}
	if w := wordsFor(end); w > m.wordCount {
		m.wordCount = w
	}
	return nil
}

// Read returns size bytes starting at offset, growing and zero-filling as
// needed (§4.3). A pathologically large offset+size is MemoryOutOfBounds.
func (m *Memory) Read(offset, size uint64) ([]byte, error) {
	if err := m.touch(offset, size); err != nil {
		return nil, err
	}
	out := make([]byte, size)
	copy(out, m.store[offset:offset+size])
	return out, nil
}

// Write copies data into memory at offset, growing as needed.
func (m *Memory) Write(offset uint64, data []byte) error {
	if err := m.touch(offset, uint64(len(data))); err != nil {
		return err
	}
	copy(m.store[offset:], data)
	return nil
}

// WriteByte writes a single byte at offset (used by MSTORE8).
func (m *Memory) WriteByte(offset uint64, b byte) error {
	if err := m.touch(offset, 1); err != nil {
		return err
	}
	m.store[offset] = b
	return nil
}
