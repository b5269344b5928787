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

// Package testvector loads the JSON conformance fixtures consumed by the
// CLI harness (§6): a file is a JSON array of Cases, each naming a code
// string, an optional expected stack/success, and optional block/tx/state
// overrides in the "0x"-prefixed canonical hex form.
package testvector

import (
	"encoding/hex"
	"encoding/json"
	"os"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/ricardo-perello/evm/core/vm"
)

// Code is the dual hex/display representation of a case's bytecode.
type Code struct {
	Bin string `json:"bin"`
	Asm string `json:"asm,omitempty"`
}

// Expectation is the optional expected outcome of running a case.
type Expectation struct {
	Stack   []string `json:"stack,omitempty"`
	Success *bool    `json:"success,omitempty"`
}

// Block is an optional block-context override.
type Block struct {
	Coinbase   *string `json:"coinbase,omitempty"`
	BaseFee    *string `json:"basefee,omitempty"`
	GasLimit   *string `json:"gaslimit,omitempty"`
	Number     *string `json:"number,omitempty"`
	Timestamp  *string `json:"timestamp,omitempty"`
	Difficulty *string `json:"difficulty,omitempty"`
	ChainID    *string `json:"chainid,omitempty"`
}

// Transaction is an optional transaction-context override.
type Transaction struct {
	To       *string `json:"to,omitempty"`
	From     *string `json:"from,omitempty"`
	Value    *string `json:"value,omitempty"`
	GasPrice *string `json:"gasprice,omitempty"`
	Data     *string `json:"data,omitempty"`
}

// Account is one entry of an optional world-state override.
type Account struct {
	Balance *string           `json:"balance,omitempty"`
	Code    *string           `json:"code,omitempty"`
	Storage map[string]string `json:"storage,omitempty"`
}

// Case is a single test vector.
type Case struct {
	Name   string             `json:"name"`
	Hint   string             `json:"hint,omitempty"`
	Code   Code               `json:"code"`
	Expect Expectation        `json:"expect,omitempty"`
	Block  *Block             `json:"block,omitempty"`
	Tx     *Transaction       `json:"tx,omitempty"`
	State  map[string]Account `json:"state,omitempty"`
}

// Load reads and parses a JSON array of Cases from path.
func Load(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading test vector file %q", path)
	}
	var cases []Case
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, errors.Wrapf(err, "parsing test vector file %q", path)
	}
	return cases, nil
}

// DecodeHex parses the canonical "0x"-prefixed hex form used throughout
// test vectors: odd-length input is left-zero-padded before decoding.
func DecodeHex(s string) ([]byte, error) {
	s = trimPrefix(s)
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding hex %q", s)
	}
	return b, nil
}

// DecodeWord parses a hex string into a 256-bit word.
func DecodeWord(s string) (uint256.Int, error) {
	b, err := DecodeHex(s)
	if err != nil {
		return uint256.Int{}, err
	}
	var w uint256.Int
	w.SetBytes(b)
	return w, nil
}

// DecodeAddress parses a hex string into an Address, right-aligning the
// decoded bytes into the low-order 20 bytes per the canonical convention.
func DecodeAddress(s string) (vm.Address, error) {
	b, err := DecodeHex(s)
	if err != nil {
		return vm.Address{}, err
	}
	return vm.BytesToAddress(b), nil
}

func trimPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}
