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
	"github.com/holiman/uint256"

	"github.com/ricardo-perello/evm/internal/log"
)

// maxCallDepth bounds sub-call recursion (§9 "sub-call recursion depth").
const maxCallDepth = 1024

// Frame is one activation of the engine on a (code, context) pair (§3).
type Frame struct {
	Address Address
	Caller  Address
	Origin  Address
	Value   uint256.Int

	CallData []byte
	Code     []byte

	pc uint64

	Stack  *Stack
	Memory *Memory
	Gas    *GasMeter

	Storage *Storage
	dests   jumpdests

	ReturnData []byte
	Logs       []Log

	Halted   bool
	Reverted bool
	Static   bool

	depth int

	world  WorldState
	block  *BlockContext
	tx     *TransactionContext
	keccak Keccak256Func
	arena  *storageArena

	lastJumped bool
}

// storageArena hands out one Storage handle per address for the lifetime of
// a top-level invocation, so that CALL into the same address twice (or a
// CALL followed by a DELEGATECALL reading the same address's slots) observes
// a consistent view (§9 "cyclic shared state" design note).
type storageArena struct {
	handles map[Address]*Storage
	world   WorldState
}

func newStorageArena(world WorldState) *storageArena {
	return &storageArena{handles: make(map[Address]*Storage), world: world}
}

func (a *storageArena) get(addr Address) *Storage {
	if h, ok := a.handles[addr]; ok {
		return h
	}
	h := loadStorage(a.world, addr)
	a.handles[addr] = h
	return h
}

// FrameConfig bundles everything a new top-level or child Frame needs that
// is not part of the calling convention of CALL/DELEGATECALL/STATICCALL
// itself.
type FrameConfig struct {
	World   WorldState
	Block   *BlockContext
	Tx      *TransactionContext
	Keccak  Keccak256Func
	GasHint uint64 // not read by NewFrame, which takes the gas limit as an argument
}

// NewFrame builds a top-level frame: address/caller/origin/value/calldata
// come from the transaction context, storage is the target account's own
// handle, gas is the full configured limit.
func NewFrame(code []byte, gasLimit uint64, cfg FrameConfig) *Frame {
	arena := newStorageArena(cfg.World)
	return &Frame{
		Address:  cfg.Tx.To,
		Caller:   cfg.Tx.From,
		Origin:   cfg.Tx.Origin,
		Value:    cfg.Tx.Value,
		CallData: cfg.Tx.Data,
		Code:     code,
		Stack:    newStack(),
		Memory:   newMemory(),
		Gas:      newGasMeter(gasLimit),
		Storage:  arena.get(cfg.Tx.To),
		dests:    analyzeJumpdests(code),
		world:    cfg.World,
		block:    cfg.Block,
		tx:       cfg.Tx,
		keccak:   cfg.Keccak,
		arena:    arena,
		depth:    1,
	}
}

func loadStorage(world WorldState, addr Address) *Storage {
	if acct, ok := world[addr]; ok && acct != nil {
		return NewStorage(acct.Storage)
	}
	return NewStorage(nil)
}

func codeAt(world WorldState, addr Address) []byte {
	if acct, ok := world[addr]; ok && acct != nil {
		return acct.Code
	}
	return nil
}

// Run executes steps until the frame halts, reverts, or errors (§4.7,
// §5 "blocks until the frame halts"). Any step error converts the frame to
// reverted rather than propagating as a host-level exception (§7).
func (f *Frame) Run() {
	for !f.Halted && !f.Reverted {
		if err := f.Step(); err != nil {
			f.Reverted = true
			log.Debug("frame step failed", "address", f.Address, "pc", f.pc, "err", err)
			return
		}
	}
}

// Step executes a single instruction per §4.7.
func (f *Frame) Step() error {
	if f.Halted || f.Reverted {
		return nil
	}
	if f.pc >= uint64(len(f.Code)) {
		f.Halted = true
		return nil
	}

	opByte := f.Code[f.pc]
	op := OpCode(opByte)
	cost, known := baseGasCost(op)
	if !known {
		return &InvalidOpcodeError{Opcode: opByte}
	}
	log.Debug("step", "op", op, "pc", f.pc, "gas", f.Gas.Remaining())
	if err := f.Gas.Consume(cost); err != nil {
		return err
	}

	exec, ok := jumpTable[op]
	if !ok {
		return &InvalidOpcodeError{Opcode: opByte}
	}

	f.lastJumped = false
	if err := exec(f, op); err != nil {
		return err
	}

	if !f.lastJumped && !f.Halted && !f.Reverted {
		f.pc++
	}
	return nil
}

// jump validates and applies a JUMP/JUMPI target (§4.6).
func (f *Frame) jump(dest *uint256.Int) error {
	if !dest.IsUint64() || !f.dests.has(dest.Uint64()) {
		return ErrInvalidJumpDestination
	}
	f.pc = dest.Uint64()
	f.lastJumped = true
	return nil
}

// ExecutionStatus mirrors the reference implementation's Running / Halted /
// Reverted / Errored enum; Errored collapses into Reverted here since every
// opcode error already converts the frame to reverted (§7).
type ExecutionStatus int

const (
	StatusRunning ExecutionStatus = iota
	StatusHalted
	StatusReverted
)

func (s ExecutionStatus) String() string {
	switch s {
	case StatusHalted:
		return "halted"
	case StatusReverted:
		return "reverted"
	default:
		return "running"
	}
}

// Status reports the frame's execution status derived from its halted/
// reverted flags.
func (f *Frame) Status() ExecutionStatus {
	switch {
	case f.Reverted:
		return StatusReverted
	case f.Halted:
		return StatusHalted
	default:
		return StatusRunning
	}
}

// Result is the externally visible outcome of running a frame (§6).
type Result struct {
	Success    bool
	GasUsed    uint64
	Stack      []uint256.Int
	ReturnData []byte
	Logs       []Log
}

// Result extracts the externally visible outcome of a frame that has
// finished running (§6).
func (f *Frame) Result() Result {
	return Result{
		Success:    !f.Reverted,
		GasUsed:    f.Gas.Used(),
		Stack:      f.Stack.snapshot(),
		ReturnData: f.ReturnData,
		Logs:       f.Logs,
	}
}
