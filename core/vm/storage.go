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

// Address is a fixed 20-byte account identifier.
type Address [20]byte

// BytesToAddress right-aligns up to 20 low-order bytes of b into an Address.
func BytesToAddress(b []byte) Address {
	var a Address
	if len(b) > 20 {
		b = b[len(b)-20:]
	}
	copy(a[20-len(b):], b)
	return a
}

// WordToAddress extracts the low 20 bytes of a word as an Address, per the
// right-aligned convention of §3.
func WordToAddress(w *uint256.Int) Address {
	var buf [32]byte
	w.WriteToArray32(&buf)
	return BytesToAddress(buf[:])
}

// Word returns the address right-aligned into a 256-bit word.
func (a Address) Word() uint256.Int {
	var buf [32]byte
	copy(buf[32-20:], a[:])
	var w uint256.Int
	w.SetBytes(buf[:])
	return w
}

// journalEntry records a storage slot's prior value so a reverted frame can
// be rolled back (§9 "cyclic shared state" design note).
type journalEntry struct {
	key uint256.Int
	had bool
	old uint256.Int
}

// Storage is the handle-indexed storage map shared between a
// DELEGATECALL parent and child: both operate on the same *Storage handle
// rather than a copy, so mutations are immediately mutually visible.
type Storage struct {
	slots   map[uint256.Int]uint256.Int
	journal []journalEntry
}

// NewStorage returns an empty storage handle, optionally seeded from a
// world-state account snapshot.
func NewStorage(seed map[uint256.Int]uint256.Int) *Storage {
	s := &Storage{slots: make(map[uint256.Int]uint256.Int, len(seed))}
	for k, v := range seed {
		s.slots[k] = v
	}
	return s
}

// Get returns the value at key, or zero if absent.
func (s *Storage) Get(key uint256.Int) uint256.Int {
	return s.slots[key]
}

// Set writes value at key, journalling the prior value for rollback. A zero
// value deletes the slot; Get treats an absent slot as zero.
func (s *Storage) Set(key, value uint256.Int) {
	old, had := s.slots[key]
	s.journal = append(s.journal, journalEntry{key: key, had: had, old: old})
	if value.IsZero() {
		delete(s.slots, key)
		return
	}
	s.slots[key] = value
}

// mark returns a replay point for rollback.
func (s *Storage) mark() int { return len(s.journal) }

// rollback undoes every Set since mark, in reverse order.
func (s *Storage) rollback(mark int) {
	for i := len(s.journal) - 1; i >= mark; i-- {
		e := s.journal[i]
		if e.had {
			s.slots[e.key] = e.old
		} else {
			delete(s.slots, e.key)
		}
	}
	s.journal = s.journal[:mark]
}

// Log is an append-only record emitted by LOG0..LOG4 (§3).
type Log struct {
	Address Address
	Topics  []uint256.Int
	Data    []byte
}
