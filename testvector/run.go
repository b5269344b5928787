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

package testvector

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"

	rootevm "github.com/ricardo-perello/evm"
	"github.com/ricardo-perello/evm/core/vm"
)

// Keccak256 is the default hash collaborator the harness wires into every
// case (§1 "out of scope": SHA-3 is an external collaborator of the core).
func Keccak256(data []byte) [32]byte {
	var out [32]byte
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	h.Sum(out[:0])
	return out
}

// Outcome is the observed-vs-expected report for one Case.
type Outcome struct {
	Case    Case
	Result  rootevm.Result
	Passed  bool
	Mismatch string
}

// Run builds a Config from c's overrides, executes c.Code.Bin, and compares
// against c.Expect.
func Run(c Case) (Outcome, error) {
	cfg := rootevm.DefaultConfig()
	cfg.Keccak256 = Keccak256

	code, err := DecodeHex(c.Code.Bin)
	if err != nil {
		return Outcome{}, errors.Wrapf(err, "case %q: decoding code", c.Name)
	}

	if err := applyBlock(&cfg, c.Block); err != nil {
		return Outcome{}, errors.Wrapf(err, "case %q: block override", c.Name)
	}
	if err := applyTx(&cfg, c.Tx); err != nil {
		return Outcome{}, errors.Wrapf(err, "case %q: tx override", c.Name)
	}
	ws, err := applyState(c.State)
	if err != nil {
		return Outcome{}, errors.Wrapf(err, "case %q: state override", c.Name)
	}
	if ws != nil {
		cfg.WorldState = ws
	}

	result := rootevm.Execute(code, cfg)
	outcome := Outcome{Case: c, Result: result, Passed: true}

	if c.Expect.Success != nil && *c.Expect.Success != result.Success {
		outcome.Passed = false
		outcome.Mismatch = fmt.Sprintf("success: want %v, got %v", *c.Expect.Success, result.Success)
		return outcome, nil
	}
	if c.Expect.Stack != nil {
		want := make([]uint256.Int, len(c.Expect.Stack))
		for i, s := range c.Expect.Stack {
			w, err := DecodeWord(s)
			if err != nil {
				return Outcome{}, errors.Wrapf(err, "case %q: expect.stack[%d]", c.Name, i)
			}
			want[i] = w
		}
		if !stacksEqual(want, result.Stack) {
			outcome.Passed = false
			outcome.Mismatch = fmt.Sprintf("stack: want %v, got %v", want, result.Stack)
		}
	}
	return outcome, nil
}

func stacksEqual(a, b []uint256.Int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Eq(&b[i]) {
			return false
		}
	}
	return true
}

func applyBlock(cfg *rootevm.Config, b *Block) error {
	if b == nil {
		return nil
	}
	if b.Coinbase != nil {
		addr, err := DecodeAddress(*b.Coinbase)
		if err != nil {
			return err
		}
		cfg.Coinbase = addr
	}
	if b.BaseFee != nil {
		w, err := DecodeWord(*b.BaseFee)
		if err != nil {
			return err
		}
		cfg.BlockBaseFee = w
	}
	if b.GasLimit != nil {
		w, err := DecodeWord(*b.GasLimit)
		if err != nil {
			return err
		}
		cfg.BlockGasLimit = w.Uint64()
	}
	if b.Number != nil {
		w, err := DecodeWord(*b.Number)
		if err != nil {
			return err
		}
		cfg.BlockNumber = w.Uint64()
	}
	if b.Timestamp != nil {
		w, err := DecodeWord(*b.Timestamp)
		if err != nil {
			return err
		}
		cfg.BlockTimestamp = w.Uint64()
	}
	if b.Difficulty != nil {
		w, err := DecodeWord(*b.Difficulty)
		if err != nil {
			return err
		}
		cfg.BlockDifficulty = w
	}
	if b.ChainID != nil {
		w, err := DecodeWord(*b.ChainID)
		if err != nil {
			return err
		}
		cfg.ChainID = w.Uint64()
	}
	return nil
}

func applyTx(cfg *rootevm.Config, tx *Transaction) error {
	if tx == nil {
		return nil
	}
	if tx.To != nil {
		addr, err := DecodeAddress(*tx.To)
		if err != nil {
			return err
		}
		cfg.TxTo = addr
	}
	if tx.From != nil {
		addr, err := DecodeAddress(*tx.From)
		if err != nil {
			return err
		}
		cfg.TxFrom = addr
		cfg.TxOrigin = addr
	}
	if tx.Value != nil {
		w, err := DecodeWord(*tx.Value)
		if err != nil {
			return err
		}
		cfg.TxValue = w
	}
	if tx.GasPrice != nil {
		w, err := DecodeWord(*tx.GasPrice)
		if err != nil {
			return err
		}
		cfg.TxGasPrice = w
	}
	if tx.Data != nil {
		data, err := DecodeHex(*tx.Data)
		if err != nil {
			return err
		}
		cfg.TxData = data
	}
	return nil
}

func applyState(state map[string]Account) (vm.WorldState, error) {
	if state == nil {
		return nil, nil
	}
	ws := make(vm.WorldState, len(state))
	for addrHex, acct := range state {
		addr, err := DecodeAddress(addrHex)
		if err != nil {
			return nil, err
		}
		a := &vm.Account{}
		if acct.Balance != nil {
			w, err := DecodeWord(*acct.Balance)
			if err != nil {
				return nil, err
			}
			a.Balance = w
		}
		if acct.Code != nil {
			code, err := DecodeHex(*acct.Code)
			if err != nil {
				return nil, err
			}
			a.Code = code
		}
		if acct.Storage != nil {
			a.Storage = make(map[uint256.Int]uint256.Int, len(acct.Storage))
			for k, v := range acct.Storage {
				kw, err := DecodeWord(k)
				if err != nil {
					return nil, err
				}
				vw, err := DecodeWord(v)
				if err != nil {
					return nil, err
				}
				a.Storage[kw] = vw
			}
		}
		ws[addr] = a
	}
	return ws, nil
}
