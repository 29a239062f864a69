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

// Package avmlog provides the leveled, structured logging convention used by
// cmd/avmrun: message-first calls with trailing key/value pairs. The avm
// interpreter package itself never logs; this lives entirely at the CLI
// boundary.
package avmlog

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-stack/stack"
)

var root = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

// SetOutput redirects where subsequent log records are written, letting the
// CLI turn on -trace verbosity or silence logging during tests.
func SetOutput(level slog.Level, w *os.File) {
	root = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Debug logs at debug level: msg followed by alternating key, value pairs.
func Debug(msg string, keyvals ...interface{}) { root.Debug(msg, keyvals...) }

// Info logs at info level.
func Info(msg string, keyvals ...interface{}) { root.Info(msg, keyvals...) }

// Warn logs at warn level.
func Warn(msg string, keyvals ...interface{}) { root.Warn(msg, keyvals...) }

// Error logs at error level.
func Error(msg string, keyvals ...interface{}) { root.Error(msg, keyvals...) }

// Crit logs at error level with the caller's frame attached and then exits
// the process with status 1. It is reserved for the CLI driver's
// unrecoverable failures (bad flags, unreadable program file); the
// interpreter core never calls it.
func Crit(msg string, keyvals ...interface{}) {
	call := stack.Caller(1)
	keyvals = append(keyvals, "caller", fmt.Sprintf("%+v", call))
	root.Error(msg, keyvals...)
	os.Exit(1)
}
