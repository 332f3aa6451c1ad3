// Copyright (c) 2017-2020 The qitmeer developers

package log

import (
	"io"

	gethlog "github.com/ethereum/go-ethereum/log"
)

// Logger is the logging interface used throughout the node; it is the
// same interface go-ethereum's log package exposes so handlers, level
// filters and the glog-style verbosity control can be reused as-is.
type Logger = gethlog.Logger

// Lvl is a logging severity level, the same enum geth's log package uses.
type Lvl = gethlog.Lvl

const (
	LvlCrit Lvl = gethlog.LvlCrit
	LvlError Lvl = gethlog.LvlError
	LvlWarn Lvl = gethlog.LvlWarn
	LvlInfo Lvl = gethlog.LvlInfo
	LvlDebug Lvl = gethlog.LvlDebug
	LvlTrace Lvl = gethlog.LvlTrace
)

// GlogHandler filters log records by both a global and a per-package
// verbosity level, the same vmodule-style scheme geth's node uses.
type GlogHandler = gethlog.GlogHandler

// NewGlogHandler wraps h with glog-style verbosity filtering.
func NewGlogHandler(h gethlog.Handler) *GlogHandler {
	return gethlog.NewGlogHandler(h)
}

// StreamHandler writes log records to w using fmtr.
func StreamHandler(w io.Writer, fmtr gethlog.Format) gethlog.Handler {
	return gethlog.StreamHandler(w, fmtr)
}

// TerminalFormat formats log records for human-readable terminal output,
// optionally colorized.
func TerminalFormat(usecolor bool) gethlog.Format {
	return gethlog.TerminalFormat(usecolor)
}

// New returns a new logger with the given context.
func New(ctx ...interface{}) Logger {
	return gethlog.New(ctx...)
}

// Root returns the root logger.
func Root() Logger {
	return gethlog.Root()
}
