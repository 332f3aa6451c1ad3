// Copyright (c) 2017-2018 The qitmeer developers
// Copyright (c) 2013-2014 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"os/signal"
)

// interruptSignals is the set of signals the node treats as a graceful
// shutdown request.
var interruptSignals = []os.Signal{os.Interrupt}

// interruptListener returns a channel closed the first time an
// interrupt signal is received, or immediately on a second signal the
// process is forcibly killed instead of waiting on shutdown again.
func interruptListener() <-chan struct{} {
	c := make(chan struct{})
	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, interruptSignals...)
		<-sigs
		close(c)
		<-sigs
		os.Exit(1)
	}()
	return c
}
