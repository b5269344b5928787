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

// Command evm runs a JSON test-vector file against the interpreter and
// reports PASS/FAIL per case (§6).
package main

import (
	"fmt"
	"os"

	"gopkg.in/urfave/cli.v1"

	"github.com/ricardo-perello/evm/internal/log"
	"github.com/ricardo-perello/evm/testvector"
)

func main() {
	app := cli.NewApp()
	app.Name = "evm"
	app.Usage = "run EVM bytecode test vectors"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "enable debug-level step tracing",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.Bool("verbose") {
		log.SetVerbosity(log.LevelDebug)
	}
	if c.NArg() != 1 {
		return cli.NewExitError("usage: evm <test-vector.json>", 2)
	}
	path := c.Args().Get(0)

	cases, err := testvector.Load(path)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	for _, tc := range cases {
		outcome, err := testvector.Run(tc)
		if err != nil {
			return cli.NewExitError(fmt.Sprintf("FAIL %s: %v", tc.Name, err), 1)
		}
		if !outcome.Passed {
			return cli.NewExitError(fmt.Sprintf("FAIL %s: %s", tc.Name, outcome.Mismatch), 1)
		}
		fmt.Printf("PASS %s\n", tc.Name)
	}

	return nil
}
