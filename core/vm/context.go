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

// Account is one entry of the external WorldState (§3). All fields are
// read-only from the engine's perspective: Storage only seeds the Storage
// handle a frame reads and writes via SLOAD/SSTORE.
type Account struct {
	Balance uint256.Int
	Code    []byte
	Storage map[uint256.Int]uint256.Int
}

// WorldState maps addresses to account records. The engine never writes to
// it directly; SSTORE mutates a frame-local Storage handle that the caller
// may choose to reconcile back into a WorldState between invocations.
type WorldState map[Address]*Account

// BlockContext is immutable for the life of a top-level invocation.
type BlockContext struct {
	Coinbase    Address
	Timestamp   uint64
	Number      uint64
	Difficulty  uint256.Int
	GasLimit    uint64
	BaseFee     uint256.Int
	ChainID     uint64
}

// TransactionContext is immutable for the life of a top-level invocation.
type TransactionContext struct {
	To       Address
	From     Address
	Origin   Address
	Value    uint256.Int
	GasPrice uint256.Int
	Data     []byte
}

// Keccak256Func is the hash collaborator the engine consumes for SHA3 and
// EXTCODEHASH; it is injected rather than imported so the core stays
// decoupled from a specific crypto implementation (§1 "out of scope").
type Keccak256Func func(data []byte) [32]byte
