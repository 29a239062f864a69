// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The ProbeChain is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the ProbeChain. If not, see <http://www.gnu.org/licenses/>.

// Command avmrun loads a bytecode program and evaluates it against the avm
// interpreter, printing the terminal machine state or the typed error that
// halted it.
//
// Usage:
//
//	avmrun [flags] <program-file>
//
// Flags:
//
//	-hex           Program file holds hex text rather than raw bytes (default: false)
//	-trace         Lower log verbosity to debug level
//	-version       Print version and exit
package main

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/probechain/avm/avm"
	"github.com/probechain/avm/internal/avmlog"
	"gopkg.in/urfave/cli.v1"
)

const appVersion = "0.1.0"

func main() {
	app := cli.NewApp()
	app.Name = "avmrun"
	app.Usage = "evaluate an avm bytecode program"
	app.Version = appVersion
	app.ArgsUsage = "<program-file>"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "hex",
			Usage: "program file holds hex text rather than raw bytes",
		},
		cli.BoolFlag{
			Name:  "trace",
			Usage: "lower log verbosity to debug level",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		avmlog.Crit("avmrun failed", "err", err)
	}
}

func run(c *cli.Context) error {
	if c.Bool("trace") {
		avmlog.SetOutput(slog.LevelDebug, os.Stderr)
	}

	if c.NArg() < 1 {
		return cli.NewExitError("usage: avmrun [flags] <program-file>", 1)
	}
	filename := c.Args().Get(0)

	raw, err := os.ReadFile(filename)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("reading %s: %v", filename, err), 1)
	}

	program := raw
	if c.Bool("hex") {
		program, err = decodeHexProgram(raw)
		if err != nil {
			return cli.NewExitError(fmt.Sprintf("decoding %s: %v", filename, err), 1)
		}
	}

	avmlog.Info("evaluating program", "file", filename, "bytes", len(program))

	m, err := avm.Execute(program)
	if err != nil {
		avmlog.Error("program halted with error", "err", err)
		return cli.NewExitError(err.Error(), 1)
	}

	printResult(m)
	return nil
}

// decodeHexProgram strips surrounding whitespace and an optional 0x prefix
// before hex-decoding the program file's contents.
func decodeHexProgram(raw []byte) ([]byte, error) {
	s := strings.TrimSpace(string(raw))
	s = strings.TrimPrefix(s, "0x")
	return hex.DecodeString(s)
}

func printResult(m *avm.Machine) {
	fmt.Printf("pc=%d version=%d cost=%d terminated=%v\n", m.PC(), m.Version(), m.Cost(), m.Terminated())
	fmt.Println("stack (bottom to top):")
	for i, v := range m.Stack() {
		if v.IsUint64() {
			fmt.Printf("  [%d] uint64 %d\n", i, v.AsUint64())
		} else {
			fmt.Printf("  [%d] bytes  %s\n", i, hex.EncodeToString(v.AsBytes()))
		}
	}
}
