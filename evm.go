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

package evm

import (
	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"

	"github.com/ricardo-perello/evm/core/vm"
)

// Result is the externally visible outcome of a top-level invocation (§6).
type Result struct {
	Success    bool
	GasUsed    uint64
	Stack      []uint256.Int
	ReturnData []byte
	Logs       []vm.Log
}

// EVM is the long-lived virtual machine, mirroring the reference corpus's
// Evm/EvmBuilder pair (§6, SUPPLEMENTED FEATURES).
type EVM struct {
	config Config
}

// New builds an EVM bound to config.
func New(config Config) *EVM {
	return &EVM{config: config}
}

// Config returns the EVM's current configuration.
func (e *EVM) Config() Config { return e.config }

// UpdateConfig replaces the EVM's configuration for subsequent Execute
// calls.
func (e *EVM) UpdateConfig(config Config) { e.config = config }

// Execute runs code to completion against e's configuration and returns the
// externally visible result (§6). It never panics: every internal error
// converts the frame to reverted per §7.
func (e *EVM) Execute(code []byte) Result {
	return Execute(code, e.config)
}

// Execute is the package-level convenience entry point: build a frame from
// cfg, run it, and translate the outcome to a Result.
func Execute(code []byte, cfg Config) Result {
	keccak := cfg.Keccak256
	if keccak == nil {
		keccak = defaultKeccak256
	}

	frameCfg := vm.FrameConfig{
		World: cfg.WorldState,
		Block: &vm.BlockContext{
			Coinbase:   cfg.Coinbase,
			Timestamp:  cfg.BlockTimestamp,
			Number:     cfg.BlockNumber,
			Difficulty: cfg.BlockDifficulty,
			GasLimit:   cfg.BlockGasLimit,
			BaseFee:    cfg.BlockBaseFee,
			ChainID:    cfg.ChainID,
		},
		Tx: &vm.TransactionContext{
			To:       cfg.TxTo,
			From:     cfg.TxFrom,
			Origin:   cfg.TxOrigin,
			Value:    cfg.TxValue,
			GasPrice: cfg.TxGasPrice,
			Data:     cfg.TxData,
		},
		Keccak: keccak,
	}
	if frameCfg.World == nil {
		frameCfg.World = vm.WorldState{}
	}

	frame := vm.NewFrame(code, cfg.GasLimit, frameCfg)
	frame.Run()
	r := frame.Result()

	return Result{
		Success:    r.Success,
		GasUsed:    r.GasUsed,
		Stack:      r.Stack,
		ReturnData: r.ReturnData,
		Logs:       r.Logs,
	}
}

// defaultKeccak256 backstops callers that never supply a Keccak256Func: it
// is the same true Keccak-256 the test-vector harness wires in (the
// pre-NIST-finalization variant, matching Ethereum's own SHA3 opcode
// naming), so Execute alone never needs a collaborator to run SHA3 or
// EXTCODEHASH correctly.
func defaultKeccak256(data []byte) [32]byte {
	var out [32]byte
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	h.Sum(out[:0])
	return out
}
