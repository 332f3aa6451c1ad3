// Copyright (c) 2017-2020 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package term reports whether a file descriptor refers to a terminal,
// the check the logger uses to decide whether to colorize output.
package term

import "github.com/mattn/go-isatty"

// IsTty reports whether fd refers to a terminal.
func IsTty(fd uintptr) bool {
	return isatty.IsTerminal(fd)
}
