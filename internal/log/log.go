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

// Package log is a small glog-style leveled logger in the teacher's manner:
// a package-level Verbosity controls what gets written, and each record
// carries the caller's frame captured via go-stack so log lines survive
// being read out of context.
package log

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-stack/stack"
)

type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "ERRO"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DBUG"
	default:
		return "????"
	}
}

var (
	mu        sync.Mutex
	Verbosity = LevelInfo
	out       = os.Stderr
)

// SetVerbosity adjusts the package-level log level, analogous to the
// teacher's glog.SetV.
func SetVerbosity(l Level) {
	mu.Lock()
	defer mu.Unlock()
	Verbosity = l
}

func Debug(msg string, ctx ...interface{}) { logAt(LevelDebug, msg, ctx) }
func Info(msg string, ctx ...interface{})  { logAt(LevelInfo, msg, ctx) }
func Warn(msg string, ctx ...interface{})  { logAt(LevelWarn, msg, ctx) }
func Error(msg string, ctx ...interface{}) { logAt(LevelError, msg, ctx) }

func logAt(level Level, msg string, ctx []interface{}) {
	mu.Lock()
	enabled := level <= Verbosity
	mu.Unlock()
	if !enabled {
		return
	}

	call := stack.Caller(2)
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%s] %s %+v", level, time.Now().UTC().Format("15:04:05.000"), msg, call)
	for i := 0; i+1 < len(ctx); i += 2 {
		fmt.Fprintf(&b, " %v=%v", ctx[i], ctx[i+1])
	}
	fmt.Fprintln(out, b.String())
}
